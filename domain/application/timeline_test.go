package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func states(stages []Stage) []StageState {
	out := make([]StageState, len(stages))
	for i, s := range stages {
		out[i] = s.State
	}
	return out
}

func TestTimeline(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	reviewed := now.Add(time.Hour)
	decided := now.Add(2 * time.Hour)
	closed := now.Add(3 * time.Hour)

	tests := []struct {
		name   string
		status Status
		ts     Timestamps
		cert   bool
		want   []StageState
	}{
		{"submitted", StatusSubmitted, Timestamps{Submitted: now}, false,
			[]StageState{StageCurrent, StageUpcoming, StageUpcoming, StageUpcoming}},
		{"under review", StatusUnderReview, Timestamps{Submitted: now, ReviewStarted: &reviewed}, false,
			[]StageState{StageComplete, StageCurrent, StageUpcoming, StageUpcoming}},
		{"approved with certificate", StatusApproved, Timestamps{Submitted: now, ReviewStarted: &reviewed, Decided: &decided}, true,
			[]StageState{StageComplete, StageComplete, StageComplete, StageComplete}},
		{"rejected without review", StatusRejected, Timestamps{Submitted: now, Decided: &decided}, false,
			[]StageState{StageComplete, StageSkipped, StageComplete, StageSkipped}},
		{"closed", StatusClosed, Timestamps{Submitted: now, Closed: &closed}, false,
			[]StageState{StageComplete, StageSkipped, StageSkipped, StageSkipped, StageComplete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, states(Timeline(tt.status, tt.ts, tt.cert)))
		})
	}
}

func TestTimeline_ActionRequired(t *testing.T) {
	stages := Timeline(StatusPendingInfo, Timestamps{Submitted: time.Now()}, false)
	require.Len(t, stages, 4)
	assert.True(t, stages[1].ActionRequired)
	assert.Equal(t, labelPendingInfo, stages[1].Label)
}
