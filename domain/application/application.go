package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotEditable indicates the applicant tried to change an application that
// is not waiting on them.
var ErrNotEditable = errors.New("application is not open for changes")

// Applicant identifies the person who submitted an application.
type Applicant struct {
	Name  string
	Email string
	Phone string
}

// Timestamps records when an application passed each workflow milestone.
type Timestamps struct {
	Created       time.Time
	Submitted     time.Time
	ReviewStarted *time.Time
	Decided       *time.Time
	Closed        *time.Time
}

// Application is the shared parent row for every service submission.
// Service-specific fields live in the ESG and KnowledgeSharing extensions.
type Application struct {
	id               string
	serviceType      ServiceType
	serviceID        string
	applicant        Applicant
	organization     string
	sector           string
	description      string
	status           Status
	aiPrecheck       string
	assignedReviewer string
	esg              *ESGDetails
	knowledgeSharing *KnowledgeSharingDetails
	createdAt        time.Time
	updatedAt        time.Time
	submittedAt      time.Time
	reviewStartedAt  *time.Time
	decidedAt        *time.Time
	closedAt         *time.Time
}

// NewApplication creates a submitted application with a fresh UUID.
func NewApplication(serviceType ServiceType, applicant Applicant, organization, sector, description string) Application {
	now := time.Now().UTC()
	return Application{
		id:           uuid.NewString(),
		serviceType:  serviceType,
		applicant:    applicant,
		organization: organization,
		sector:       sector,
		description:  description,
		status:       StatusSubmitted,
		createdAt:    now,
		updatedAt:    now,
		submittedAt:  now,
	}
}

// ReconstructApplication recreates an application from persistence.
func ReconstructApplication(
	id string,
	serviceType ServiceType,
	serviceID string,
	applicant Applicant,
	organization, sector, description string,
	status Status,
	aiPrecheck, assignedReviewer string,
	ts Timestamps,
	updatedAt time.Time,
) Application {
	return Application{
		id:               id,
		serviceType:      serviceType,
		serviceID:        serviceID,
		applicant:        applicant,
		organization:     organization,
		sector:           sector,
		description:      description,
		status:           status,
		aiPrecheck:       aiPrecheck,
		assignedReviewer: assignedReviewer,
		createdAt:        ts.Created,
		updatedAt:        updatedAt,
		submittedAt:      ts.Submitted,
		reviewStartedAt:  ts.ReviewStarted,
		decidedAt:        ts.Decided,
		closedAt:         ts.Closed,
	}
}

// ID returns the application UUID.
func (a Application) ID() string { return a.id }

// ServiceType returns the service the application targets.
func (a Application) ServiceType() ServiceType { return a.serviceType }

// ServiceID returns the linked directory entry, if any.
func (a Application) ServiceID() string { return a.serviceID }

// Applicant returns the submitter.
func (a Application) Applicant() Applicant { return a.applicant }

// Organization returns the applying organization.
func (a Application) Organization() string { return a.organization }

// Sector returns the organization's sector.
func (a Application) Sector() string { return a.sector }

// Description returns the free-text description.
func (a Application) Description() string { return a.description }

// Status returns the current review status.
func (a Application) Status() Status { return a.status }

// AIPrecheck returns the stored AI readiness comment.
func (a Application) AIPrecheck() string { return a.aiPrecheck }

// AssignedReviewer returns the staff member handling the application.
func (a Application) AssignedReviewer() string { return a.assignedReviewer }

// ESG returns the ESG extension, or nil.
func (a Application) ESG() *ESGDetails { return a.esg }

// KnowledgeSharing returns the Knowledge-Sharing extension, or nil.
func (a Application) KnowledgeSharing() *KnowledgeSharingDetails { return a.knowledgeSharing }

// CreatedAt returns when the row was created.
func (a Application) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns when the row was last changed.
func (a Application) UpdatedAt() time.Time { return a.updatedAt }

// Timestamps returns the workflow milestones.
func (a Application) Timestamps() Timestamps {
	return Timestamps{
		Created:       a.createdAt,
		Submitted:     a.submittedAt,
		ReviewStarted: a.reviewStartedAt,
		Decided:       a.decidedAt,
		Closed:        a.closedAt,
	}
}

// IsEditable reports whether the applicant may revise and resubmit.
func (a Application) IsEditable() bool {
	return a.status.AwaitsApplicant()
}

// AcceptsPrecheck reports whether an AI precheck may still be stored: the
// application is submitted or waiting on the applicant, not yet decided.
func (a Application) AcceptsPrecheck() bool {
	return a.status == StatusSubmitted || a.status.AwaitsApplicant()
}

// Validate checks that the extension matching the service type is present
// and that no other service type's extension is attached.
func (a Application) Validate() error {
	switch a.serviceType {
	case ServiceTypeESG:
		if a.knowledgeSharing != nil {
			return fmt.Errorf("%w: %s application cannot carry session details", ErrInvalidDetails, a.serviceType)
		}
		if a.esg == nil {
			return fmt.Errorf("%w: %s application requires ESG details", ErrInvalidDetails, a.serviceType)
		}
		return a.esg.Validate()
	case ServiceTypeKnowledgeSharing:
		if a.esg != nil {
			return fmt.Errorf("%w: %s application cannot carry ESG details", ErrInvalidDetails, a.serviceType)
		}
		if a.knowledgeSharing == nil {
			return fmt.Errorf("%w: %s application requires session details", ErrInvalidDetails, a.serviceType)
		}
		return a.knowledgeSharing.Validate()
	case ServiceTypeChamberBoost:
		if a.esg != nil || a.knowledgeSharing != nil {
			return fmt.Errorf("%w: %s application takes no extension details", ErrInvalidDetails, a.serviceType)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownServiceType, a.serviceType)
	}
}

// Transition returns a copy moved to status to, stamping the milestone
// reached. It fails with ErrInvalidTransition when the move is not allowed.
func (a Application) Transition(to Status, at time.Time) (Application, error) {
	if err := ValidateTransition(a.status, to); err != nil {
		return a, err
	}
	at = at.UTC()
	switch to {
	case StatusSubmitted:
		a.submittedAt = at
	case StatusUnderReview:
		if a.reviewStartedAt == nil {
			a.reviewStartedAt = &at
		}
	case StatusApproved, StatusRejected:
		a.decidedAt = &at
	case StatusClosed:
		a.closedAt = &at
	}
	a.status = to
	a.updatedAt = at
	return a, nil
}

// Revise returns a copy with applicant-editable fields replaced. Only allowed
// while the application awaits the applicant.
func (a Application) Revise(applicant Applicant, organization, sector, description string) (Application, error) {
	if !a.IsEditable() {
		return a, fmt.Errorf("%w: status is %s", ErrNotEditable, a.status)
	}
	a.applicant = applicant
	a.organization = organization
	a.sector = sector
	a.description = description
	a.updatedAt = time.Now().UTC()
	return a, nil
}

// WithServiceID returns a copy linked to a directory entry.
func (a Application) WithServiceID(id string) Application {
	a.serviceID = id
	return a
}

// WithAIPrecheck returns a copy with the AI readiness comment stored.
func (a Application) WithAIPrecheck(text string) Application {
	a.aiPrecheck = text
	a.updatedAt = time.Now().UTC()
	return a
}

// WithAssignedReviewer returns a copy assigned to reviewer.
func (a Application) WithAssignedReviewer(reviewer string) Application {
	a.assignedReviewer = reviewer
	a.updatedAt = time.Now().UTC()
	return a
}

// WithESG returns a copy carrying ESG details.
func (a Application) WithESG(d ESGDetails) Application {
	d.Frameworks = append([]string(nil), d.Frameworks...)
	a.esg = &d
	return a
}

// WithKnowledgeSharing returns a copy carrying session details.
func (a Application) WithKnowledgeSharing(d KnowledgeSharingDetails) Application {
	d.Topics = append([]string(nil), d.Topics...)
	a.knowledgeSharing = &d
	return a
}

// WithCreatedAt returns a copy whose creation and submission times are t.
// Used when importing historical records.
func (a Application) WithCreatedAt(t time.Time) Application {
	t = t.UTC()
	a.createdAt = t
	a.submittedAt = t
	a.updatedAt = t
	return a
}
