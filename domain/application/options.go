package application

import "github.com/chamberhub/bizportal/domain/repository"

// WithStatus filters by the "status" column.
func WithStatus(s Status) repository.Option {
	return repository.WithCondition("status", string(s))
}

// WithStatusIn filters by any of the given statuses.
func WithStatusIn(statuses ...Status) repository.Option {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return repository.WithConditionIn("status", values)
}

// WithServiceType filters by the "service_type" column.
func WithServiceType(t ServiceType) repository.Option {
	return repository.WithCondition("service_type", string(t))
}

// WithAssignedReviewer filters by the "assigned_reviewer" column.
func WithAssignedReviewer(reviewer string) repository.Option {
	return repository.WithCondition("assigned_reviewer", reviewer)
}

// WithApplicationID filters child rows by the "application_id" column.
func WithApplicationID(id string) repository.Option {
	return repository.WithCondition("application_id", id)
}

// WithApplicationIDIn filters child rows by several parents.
func WithApplicationIDIn(ids []string) repository.Option {
	return repository.WithConditionIn("application_id", ids)
}

// WithApplicantEmail filters by the "applicant_email" column.
func WithApplicantEmail(email string) repository.Option {
	return repository.WithCondition("applicant_email", email)
}

// WithText matches term against applicant, organization and description.
func WithText(term string) repository.Option {
	return repository.WithSearch(term, "organization", "applicant_name", "applicant_email", "sector", "description")
}

// Sort is a supported ordering of application listings.
type Sort string

// Sort values.
const (
	SortNewest       Sort = "newest"
	SortOldest       Sort = "oldest"
	SortOrganization Sort = "organization"
	SortUpdated      Sort = "updated"
)

// ParseSort returns the sort for s, defaulting to newest first.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortOrganization, SortUpdated:
		return Sort(s)
	default:
		return SortNewest
	}
}

// Options returns the ordering for the sort. Ties break on id so pages are stable.
func (s Sort) Options() []repository.Option {
	switch s {
	case SortOldest:
		return []repository.Option{repository.WithOrderAsc("created_at"), repository.WithOrderAsc("id")}
	case SortOrganization:
		return []repository.Option{repository.WithOrderAsc("organization"), repository.WithOrderAsc("id")}
	case SortUpdated:
		return []repository.Option{repository.WithOrderDesc("updated_at"), repository.WithOrderAsc("id")}
	default:
		return []repository.Option{repository.WithOrderDesc("created_at"), repository.WithOrderAsc("id")}
	}
}

// WithNoteOrder sorts review notes oldest first.
func WithNoteOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("created_at"), repository.WithOrderAsc("id")}
}
