package application

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDetails indicates missing or malformed service-specific fields.
var ErrInvalidDetails = errors.New("invalid application details")

// ESGDetails holds the ESG labelling extension of an application.
type ESGDetails struct {
	SubSector               string
	TradeLicense            string
	EmployeeCount           int
	HasSustainabilityPolicy bool
	Frameworks              []string
	Initiatives             string
}

// Validate checks the required ESG fields.
func (d ESGDetails) Validate() error {
	if strings.TrimSpace(d.TradeLicense) == "" {
		return errors.Join(ErrInvalidDetails, errors.New("trade license is required"))
	}
	if d.EmployeeCount < 0 {
		return errors.Join(ErrInvalidDetails, errors.New("employee count cannot be negative"))
	}
	return nil
}

// SessionFormat is how a knowledge-sharing session is held.
type SessionFormat string

// SessionFormat values.
const (
	FormatOnline   SessionFormat = "ONLINE"
	FormatInPerson SessionFormat = "IN_PERSON"
	FormatHybrid   SessionFormat = "HYBRID"
)

// ParseSessionFormat parses a format, defaulting to in-person.
func ParseSessionFormat(s string) SessionFormat {
	switch SessionFormat(normalizeEnum(s)) {
	case FormatOnline:
		return FormatOnline
	case FormatHybrid:
		return FormatHybrid
	default:
		return FormatInPerson
	}
}

// KnowledgeSharingDetails holds the Knowledge-Sharing extension of an application.
type KnowledgeSharingDetails struct {
	ProgramType       string
	Topic             string
	SessionDate       *time.Time
	Format            SessionFormat
	ExpectedAttendees int
	Topics            []string
}

// Validate checks the required session fields.
func (d KnowledgeSharingDetails) Validate() error {
	if strings.TrimSpace(d.ProgramType) == "" {
		return errors.Join(ErrInvalidDetails, errors.New("program type is required"))
	}
	if strings.TrimSpace(d.Topic) == "" {
		return errors.Join(ErrInvalidDetails, errors.New("topic is required"))
	}
	if d.ExpectedAttendees < 0 {
		return errors.Join(ErrInvalidDetails, errors.New("expected attendees cannot be negative"))
	}
	return nil
}
