package application

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotApproved indicates a certificate was requested for an application
// that is not approved.
var ErrNotApproved = errors.New("application is not approved")

// Certificate is issued exactly once, when an application is approved.
type Certificate struct {
	id            int64
	applicationID string
	number        string
	serviceType   ServiceType
	holder        string
	issuedAt      time.Time
	validUntil    time.Time
}

// FormatCertificateNumber renders PREFIX-YEAR-NNNNN.
func FormatCertificateNumber(t ServiceType, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%05d", t.CertificatePrefix(), year, sequence)
}

// CertificateNumberPrefix returns the PREFIX-YEAR- part shared by a year's numbers.
func CertificateNumberPrefix(t ServiceType, year int) string {
	return fmt.Sprintf("%s-%d-", t.CertificatePrefix(), year)
}

// NewCertificate creates the certificate for an approved application.
// sequence is the 1-based ordinal within the prefix and year.
func NewCertificate(app Application, sequence int, issuedAt time.Time) (Certificate, error) {
	if app.Status() != StatusApproved {
		return Certificate{}, fmt.Errorf("%w: %s is %s", ErrNotApproved, app.ID(), app.Status())
	}
	if sequence < 1 {
		return Certificate{}, fmt.Errorf("certificate sequence must be positive, got %d", sequence)
	}
	issuedAt = issuedAt.UTC()
	return Certificate{
		applicationID: app.ID(),
		number:        FormatCertificateNumber(app.ServiceType(), issuedAt.Year(), sequence),
		serviceType:   app.ServiceType(),
		holder:        app.Organization(),
		issuedAt:      issuedAt,
		validUntil:    issuedAt.AddDate(app.ServiceType().CertificateValidityYears(), 0, 0),
	}, nil
}

// ReconstructCertificate recreates a certificate from persistence.
func ReconstructCertificate(
	id int64,
	applicationID, number string,
	serviceType ServiceType,
	holder string,
	issuedAt, validUntil time.Time,
) Certificate {
	return Certificate{
		id:            id,
		applicationID: applicationID,
		number:        number,
		serviceType:   serviceType,
		holder:        holder,
		issuedAt:      issuedAt,
		validUntil:    validUntil,
	}
}

// ID returns the certificate identifier.
func (c Certificate) ID() int64 { return c.id }

// ApplicationID returns the approved application.
func (c Certificate) ApplicationID() string { return c.applicationID }

// Number returns the public certificate number.
func (c Certificate) Number() string { return c.number }

// ServiceType returns the certified service.
func (c Certificate) ServiceType() ServiceType { return c.serviceType }

// Holder returns the certified organization.
func (c Certificate) Holder() string { return c.holder }

// IssuedAt returns the issue date.
func (c Certificate) IssuedAt() time.Time { return c.issuedAt }

// ValidUntil returns the expiry date.
func (c Certificate) ValidUntil() time.Time { return c.validUntil }

// IsValidAt reports whether the certificate is in force at t.
func (c Certificate) IsValidAt(t time.Time) bool {
	return !t.Before(c.issuedAt) && t.Before(c.validUntil)
}
