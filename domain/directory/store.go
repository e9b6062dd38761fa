package directory

import (
	"context"

	"github.com/chamberhub/bizportal/domain/repository"
)

// ServiceStore persists directory entries.
type ServiceStore interface {
	repository.Store[Service]

	// Upsert inserts or replaces entries by ID.
	Upsert(ctx context.Context, services []Service) error

	// Departments returns the distinct department names.
	Departments(ctx context.Context) ([]string, error)
}
