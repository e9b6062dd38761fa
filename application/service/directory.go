package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/domain/repository"
)

// Transactor runs a unit of work atomically.
type Transactor interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// DirectoryFilter narrows a directory listing. Zero values match everything.
type DirectoryFilter struct {
	Department   string
	Channel      directory.ChannelType
	Platform     string
	Query        string
	FeaturedOnly bool
}

// Directory serves the public service directory.
// Embeds Collection for Find/Get/Count.
type Directory struct {
	repository.Collection[directory.Service]
	services directory.ServiceStore
	logger   *slog.Logger
}

// NewDirectory creates a new Directory service.
func NewDirectory(services directory.ServiceStore, logger *slog.Logger) *Directory {
	return &Directory{
		Collection: repository.NewCollection[directory.Service](services),
		services:   services,
		logger:     logger,
	}
}

// List returns the services matching f in display order. Column filters run
// in SQL; the free-text query is matched in memory so Arabic letter variants
// and diacritics fold the same way in every database.
func (s *Directory) List(ctx context.Context, f DirectoryFilter) ([]directory.Service, error) {
	var opts []repository.Option
	if d := strings.TrimSpace(f.Department); d != "" {
		opts = append(opts, directory.WithDepartment(d))
	}
	if f.Channel != "" {
		opts = append(opts, directory.WithChannel(f.Channel))
	}
	if p := strings.TrimSpace(f.Platform); p != "" {
		opts = append(opts, directory.WithPlatform(p))
	}
	if f.FeaturedOnly {
		opts = append(opts, directory.WithFeatured())
	}
	opts = append(opts, directory.WithDisplayOrder()...)

	services, err := s.services.Find(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if strings.TrimSpace(f.Query) == "" {
		return services, nil
	}

	matched := make([]directory.Service, 0, len(services))
	for _, svc := range services {
		if locale.Matches(f.Query, svc.SearchText()...) {
			matched = append(matched, svc)
		}
	}
	return matched, nil
}

// ByID returns the service with the given slug.
func (s *Directory) ByID(ctx context.Context, id string) (directory.Service, error) {
	svc, err := s.services.FindOne(ctx, repository.WithID(strings.TrimSpace(id)))
	if err != nil {
		return directory.Service{}, fmt.Errorf("service %q: %w", id, err)
	}
	return svc, nil
}

// Departments returns the distinct department names, sorted.
func (s *Directory) Departments(ctx context.Context) ([]string, error) {
	return s.services.Departments(ctx)
}
