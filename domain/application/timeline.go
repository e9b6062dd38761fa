package application

import (
	"time"

	"github.com/chamberhub/bizportal/domain/locale"
)

// StageKey identifies a timeline stage.
type StageKey string

// Stage keys in display order.
const (
	StageSubmitted   StageKey = "submitted"
	StageReview      StageKey = "review"
	StageDecision    StageKey = "decision"
	StageCertificate StageKey = "certificate"
	StageClosed      StageKey = "closed"
)

// StageState is how a stage is rendered.
type StageState string

// StageState values.
const (
	StageComplete StageState = "complete"
	StageCurrent  StageState = "current"
	StageUpcoming StageState = "upcoming"
	StageSkipped  StageState = "skipped"
)

// Stage is one step of the applicant-facing progress timeline.
type Stage struct {
	Key            StageKey
	Label          locale.Text
	State          StageState
	At             *time.Time
	ActionRequired bool
}

var (
	labelSubmitted   = locale.NewText("Submitted", "تم التقديم")
	labelReview      = locale.NewText("Under review", "قيد المراجعة")
	labelCorrections = locale.NewText("Corrections requested", "مطلوب تصحيحات")
	labelPendingInfo = locale.NewText("Information requested", "مطلوب معلومات إضافية")
	labelDecision    = locale.NewText("Decision", "القرار")
	labelApproved    = locale.NewText("Approved", "تمت الموافقة")
	labelRejected    = locale.NewText("Rejected", "مرفوض")
	labelCertificate = locale.NewText("Certificate issued", "تم إصدار الشهادة")
	labelClosed      = locale.NewText("Closed", "مغلق")
)

// Timeline maps a status and its milestones to display stages. It is a pure
// lookup and performs no transition validation.
func Timeline(status Status, ts Timestamps, hasCertificate bool) []Stage {
	submitted := ts.Submitted
	stages := []Stage{
		{Key: StageSubmitted, Label: labelSubmitted, State: StageComplete, At: &submitted},
		{Key: StageReview, Label: labelReview, State: StageUpcoming, At: ts.ReviewStarted},
		{Key: StageDecision, Label: labelDecision, State: StageUpcoming, At: ts.Decided},
		{Key: StageCertificate, Label: labelCertificate, State: StageUpcoming},
	}
	review, decision, certificate := &stages[1], &stages[2], &stages[3]

	switch status {
	case StatusSubmitted:
		stages[0].State = StageCurrent
	case StatusUnderReview:
		review.State = StageCurrent
	case StatusCorrectionsRequested, StatusPendingInfo:
		review.State = StageCurrent
		review.ActionRequired = true
		review.Label = labelCorrections
		if status == StatusPendingInfo {
			review.Label = labelPendingInfo
		}
	case StatusApproved:
		review.State = StageComplete
		decision.State = StageComplete
		decision.Label = labelApproved
		if hasCertificate {
			certificate.State = StageComplete
			certificate.At = ts.Decided
		} else {
			certificate.State = StageCurrent
		}
	case StatusRejected:
		review.State = completeOrSkipped(ts.ReviewStarted)
		decision.State = StageComplete
		decision.Label = labelRejected
		certificate.State = StageSkipped
	case StatusClosed:
		review.State = completeOrSkipped(ts.ReviewStarted)
		decision.State = completeOrSkipped(ts.Decided)
		certificate.State = StageSkipped
		stages = append(stages, Stage{Key: StageClosed, Label: labelClosed, State: StageComplete, At: ts.Closed})
	}
	return stages
}

func completeOrSkipped(at *time.Time) StageState {
	if at != nil {
		return StageComplete
	}
	return StageSkipped
}
