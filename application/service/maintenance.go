package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/infrastructure/seed"
)

// SeedReport describes what Seed wrote.
type SeedReport struct {
	Services            int
	Applications        int
	Certificates        int
	ApplicationsSkipped bool
}

// CleanupReport describes the orphans found and removed.
type CleanupReport struct {
	ApplicationIDs      []string
	ApplicationsDeleted int64
	NotesDeleted        int64
	DryRun              bool
}

// Maintenance runs the one-shot data scripts.
type Maintenance struct {
	services     directory.ServiceStore
	apps         application.ApplicationStore
	notes        application.NoteStore
	certificates application.CertificateStore
	tx           Transactor
	logger       *slog.Logger
}

// NewMaintenance creates a new Maintenance service.
func NewMaintenance(
	services directory.ServiceStore,
	apps application.ApplicationStore,
	notes application.NoteStore,
	certificates application.CertificateStore,
	tx Transactor,
	logger *slog.Logger,
) *Maintenance {
	return &Maintenance{
		services:     services,
		apps:         apps,
		notes:        notes,
		certificates: certificates,
		tx:           tx,
		logger:       logger,
	}
}

// Seed upserts the directory and, when no application exists yet, loads the
// demo applications with their notes and certificate. Running it again only
// refreshes the directory.
func (s *Maintenance) Seed(ctx context.Context) (SeedReport, error) {
	services, err := seed.Services()
	if err != nil {
		return SeedReport{}, err
	}
	fixtures, err := seed.Applications()
	if err != nil {
		return SeedReport{}, err
	}

	var report SeedReport
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.services.Upsert(ctx, services); err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		report.Services = len(services)

		existing, err := s.apps.Count(ctx)
		if err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		if existing > 0 {
			report.ApplicationsSkipped = true
			return nil
		}

		for _, f := range fixtures {
			app, err := s.apps.Create(ctx, f.Application)
			if err != nil {
				return fmt.Errorf("seed application %s: %w", f.Application.ID(), err)
			}
			for _, n := range f.Notes {
				if _, err := s.notes.Append(ctx, n); err != nil {
					return fmt.Errorf("seed notes of %s: %w", app.ID(), err)
				}
			}
			if f.CertifiedAt != nil {
				if _, err := s.certificates.Issue(ctx, app, *f.CertifiedAt); err != nil {
					return fmt.Errorf("seed certificate of %s: %w", app.ID(), err)
				}
				report.Certificates++
			}
			report.Applications++
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}

	s.logger.Info("seed complete",
		slog.Int("services", report.Services),
		slog.Int("applications", report.Applications),
		slog.Int("certificates", report.Certificates),
		slog.Bool("applications_skipped", report.ApplicationsSkipped),
	)
	return report, nil
}

// CleanupKnowledgeSharingOrphans deletes KNOWLEDGE_SHARING applications that
// have no session row, together with their notes. With dryRun the orphans
// are only reported.
func (s *Maintenance) CleanupKnowledgeSharingOrphans(ctx context.Context, dryRun bool) (CleanupReport, error) {
	report := CleanupReport{DryRun: dryRun}
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		ids, err := s.apps.KnowledgeSharingOrphans(ctx)
		if err != nil {
			return fmt.Errorf("find orphans: %w", err)
		}
		report.ApplicationIDs = ids
		if dryRun || len(ids) == 0 {
			return nil
		}

		if report.NotesDeleted, err = s.notes.DeleteByApplicationIDs(ctx, ids); err != nil {
			return fmt.Errorf("delete orphan notes: %w", err)
		}
		if report.ApplicationsDeleted, err = s.apps.DeleteByIDs(ctx, ids); err != nil {
			return fmt.Errorf("delete orphans: %w", err)
		}
		return nil
	})
	if err != nil {
		return CleanupReport{}, err
	}

	s.logger.Info("knowledge-sharing orphan cleanup",
		slog.Int("orphans", len(report.ApplicationIDs)),
		slog.Int64("deleted", report.ApplicationsDeleted),
		slog.Bool("dry_run", dryRun),
	)
	return report, nil
}
