package application

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition indicates a status change the workflow does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the allowed next statuses. APPROVED and CLOSED have no
// successors so a certificate never outlives its approval.
var transitions = map[Status][]Status{
	StatusSubmitted: {
		StatusUnderReview,
		StatusCorrectionsRequested,
		StatusPendingInfo,
		StatusRejected,
		StatusClosed,
	},
	StatusUnderReview: {
		StatusApproved,
		StatusRejected,
		StatusCorrectionsRequested,
		StatusPendingInfo,
	},
	StatusCorrectionsRequested: {
		StatusSubmitted,
		StatusUnderReview,
		StatusClosed,
	},
	StatusPendingInfo: {
		StatusSubmitted,
		StatusUnderReview,
		StatusClosed,
	},
	StatusRejected: {
		StatusClosed,
	},
	StatusApproved: nil,
	StatusClosed:   nil,
}

// AllowedTransitions returns the statuses reachable from s.
func AllowedTransitions(s Status) []Status {
	return slices.Clone(transitions[s])
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not allowed.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
