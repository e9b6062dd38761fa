package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusSubmitted, StatusUnderReview, true},
		{StatusSubmitted, StatusApproved, false},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusSubmitted, false},
		{StatusCorrectionsRequested, StatusSubmitted, true},
		{StatusPendingInfo, StatusUnderReview, true},
		{StatusRejected, StatusClosed, true},
		{StatusRejected, StatusApproved, false},
		{StatusApproved, StatusClosed, false},
		{StatusApproved, StatusRejected, false},
		{StatusClosed, StatusSubmitted, false},
		{StatusUnderReview, StatusUnderReview, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusRejected.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
}

func TestEveryStatusHasTransitionEntry(t *testing.T) {
	for _, s := range Statuses() {
		_, ok := transitions[s]
		assert.True(t, ok, "missing transition entry for %s", s)
	}
}

func TestApplication_TransitionStampsMilestones(t *testing.T) {
	app := NewApplication(ServiceTypeESG, Applicant{Name: "Layla"}, "Green Co", "Manufacturing", "")
	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	reviewing, err := app.Transition(StatusUnderReview, t1)
	require.NoError(t, err)
	require.NotNil(t, reviewing.Timestamps().ReviewStarted)
	assert.Equal(t, t1, *reviewing.Timestamps().ReviewStarted)
	assert.Equal(t, StatusSubmitted, app.Status(), "original is unchanged")

	approved, err := reviewing.Transition(StatusApproved, t2)
	require.NoError(t, err)
	require.NotNil(t, approved.Timestamps().Decided)
	assert.Equal(t, t2, *approved.Timestamps().Decided)

	_, err = approved.Transition(StatusClosed, t2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplication_Revise(t *testing.T) {
	app := NewApplication(ServiceTypeChamberBoost, Applicant{Name: "Omar"}, "Old Name", "Retail", "first")

	_, err := app.Revise(Applicant{Name: "Omar"}, "New Name", "Retail", "second")
	assert.ErrorIs(t, err, ErrNotEditable)

	waiting, err := app.Transition(StatusCorrectionsRequested, time.Now())
	require.NoError(t, err)
	revised, err := waiting.Revise(Applicant{Name: "Omar"}, "New Name", "Retail", "second")
	require.NoError(t, err)
	assert.Equal(t, "New Name", revised.Organization())

	resubmitted, err := revised.Transition(StatusSubmitted, time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, resubmitted.Status())
}

func TestApplication_Validate(t *testing.T) {
	esg := NewApplication(ServiceTypeESG, Applicant{}, "Org", "", "")
	assert.ErrorIs(t, esg.Validate(), ErrInvalidDetails)
	assert.ErrorIs(t, esg.WithESG(ESGDetails{}).Validate(), ErrInvalidDetails)
	assert.NoError(t, esg.WithESG(ESGDetails{TradeLicense: "CN-1"}).Validate())

	ks := NewApplication(ServiceTypeKnowledgeSharing, Applicant{}, "Org", "", "")
	assert.ErrorIs(t, ks.WithKnowledgeSharing(KnowledgeSharingDetails{ProgramType: "Workshop"}).Validate(), ErrInvalidDetails)
	assert.NoError(t, ks.WithKnowledgeSharing(KnowledgeSharingDetails{ProgramType: "Workshop", Topic: "Export"}).Validate())

	assert.NoError(t, NewApplication(ServiceTypeChamberBoost, Applicant{}, "Org", "", "").Validate())
}

func TestApplication_ValidateRejectsForeignDetails(t *testing.T) {
	esgDetails := ESGDetails{TradeLicense: "CN-1"}
	ksDetails := KnowledgeSharingDetails{ProgramType: "Workshop", Topic: "Export"}

	esg := NewApplication(ServiceTypeESG, Applicant{}, "Org", "", "").WithESG(esgDetails)
	assert.ErrorIs(t, esg.WithKnowledgeSharing(ksDetails).Validate(), ErrInvalidDetails)

	ks := NewApplication(ServiceTypeKnowledgeSharing, Applicant{}, "Org", "", "").WithKnowledgeSharing(ksDetails)
	assert.ErrorIs(t, ks.WithESG(esgDetails).Validate(), ErrInvalidDetails)

	boost := NewApplication(ServiceTypeChamberBoost, Applicant{}, "Org", "", "")
	assert.ErrorIs(t, boost.WithESG(esgDetails).Validate(), ErrInvalidDetails)
	assert.ErrorIs(t, boost.WithKnowledgeSharing(ksDetails).Validate(), ErrInvalidDetails)
}

func TestParseEnums(t *testing.T) {
	st, err := ParseServiceType("knowledge-sharing")
	require.NoError(t, err)
	assert.Equal(t, ServiceTypeKnowledgeSharing, st)

	_, err = ParseServiceType("visa")
	assert.ErrorIs(t, err, ErrUnknownServiceType)

	s, err := ParseStatus("under_review")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, s)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, ok := ParseAuthorType("system")
	assert.False(t, ok, "SYSTEM is reserved")
}
