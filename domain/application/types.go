// Package application models submissions to chamber services and their
// review workflow: statuses, review notes and certificates.
package application

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownServiceType indicates an unsupported service type value.
var ErrUnknownServiceType = errors.New("unknown service type")

// ErrUnknownStatus indicates an unsupported status value.
var ErrUnknownStatus = errors.New("unknown application status")

// ServiceType identifies the service an application was submitted to.
type ServiceType string

// ServiceType values.
const (
	ServiceTypeESG              ServiceType = "ESG"
	ServiceTypeKnowledgeSharing ServiceType = "KNOWLEDGE_SHARING"
	ServiceTypeChamberBoost     ServiceType = "CHAMBER_BOOST"
)

// ServiceTypes returns every supported service type.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceTypeESG, ServiceTypeKnowledgeSharing, ServiceTypeChamberBoost}
}

// ParseServiceType parses a service type, accepting any case and "-" separators.
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(normalizeEnum(s))
	for _, known := range ServiceTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
}

// CertificatePrefix returns the prefix used in certificate numbers.
func (t ServiceType) CertificatePrefix() string {
	switch t {
	case ServiceTypeESG:
		return "ESG"
	case ServiceTypeKnowledgeSharing:
		return "KS"
	case ServiceTypeChamberBoost:
		return "CB"
	default:
		return "GEN"
	}
}

// CertificateValidityYears returns how long a certificate for t stays valid.
func (t ServiceType) CertificateValidityYears() int {
	if t == ServiceTypeESG {
		return 1
	}
	return 2
}

// Status is the review state of an application.
type Status string

// Status values.
const (
	StatusSubmitted            Status = "SUBMITTED"
	StatusUnderReview          Status = "UNDER_REVIEW"
	StatusApproved             Status = "APPROVED"
	StatusRejected             Status = "REJECTED"
	StatusCorrectionsRequested Status = "CORRECTIONS_REQUESTED"
	StatusPendingInfo          Status = "PENDING_INFO"
	StatusClosed               Status = "CLOSED"
)

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusUnderReview,
		StatusCorrectionsRequested,
		StatusPendingInfo,
		StatusApproved,
		StatusRejected,
		StatusClosed,
	}
}

// ParseStatus parses a status, accepting any case and "-" separators.
func ParseStatus(s string) (Status, error) {
	st := Status(normalizeEnum(s))
	for _, known := range Statuses() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// AwaitsApplicant reports whether the applicant must act before review continues.
func (s Status) AwaitsApplicant() bool {
	return s == StatusCorrectionsRequested || s == StatusPendingInfo
}

// IsDecided reports whether a final decision has been recorded.
func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// AuthorType discriminates who wrote a review note.
type AuthorType string

// AuthorType values.
const (
	AuthorSystem    AuthorType = "SYSTEM"
	AuthorStaff     AuthorType = "STAFF"
	AuthorApplicant AuthorType = "APPLICANT"
)

// ParseAuthorType parses a comment author. SYSTEM is reserved for status changes.
func ParseAuthorType(s string) (AuthorType, bool) {
	switch AuthorType(normalizeEnum(s)) {
	case AuthorStaff:
		return AuthorStaff, true
	case AuthorApplicant:
		return AuthorApplicant, true
	default:
		return "", false
	}
}

func normalizeEnum(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
