package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/repository"
)

// Review listing defaults.
const (
	DefaultReviewPageSize = 20
	MaxReviewPageSize     = 100
)

// ReviewFilter narrows the staff console listing.
type ReviewFilter struct {
	Status      application.Status
	ServiceType application.ServiceType
	Reviewer    string
	Query       string
	Sort        application.Sort
	Page        int
	PageSize    int
}

func (f ReviewFilter) normalized() ReviewFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PageSize < 1:
		f.PageSize = DefaultReviewPageSize
	case f.PageSize > MaxReviewPageSize:
		f.PageSize = MaxReviewPageSize
	}
	if f.Sort == "" {
		f.Sort = application.SortNewest
	}
	return f
}

func (f ReviewFilter) conditions() []repository.Option {
	var opts []repository.Option
	if f.Status != "" {
		opts = append(opts, application.WithStatus(f.Status))
	}
	if f.ServiceType != "" {
		opts = append(opts, application.WithServiceType(f.ServiceType))
	}
	if r := strings.TrimSpace(f.Reviewer); r != "" {
		opts = append(opts, application.WithAssignedReviewer(r))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		opts = append(opts, application.WithText(q))
	}
	return opts
}

// ApplicationPage is one page of the staff console listing.
type ApplicationPage struct {
	Items      []application.Application
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ReviewPatch is a staff edit of an application. Nil fields are left alone.
type ReviewPatch struct {
	Status   *application.Status
	Reason   string
	Reviewer *string
	Comment  string
	Internal bool
	Actor    string
}

func (p ReviewPatch) empty() bool {
	return p.Status == nil && p.Reviewer == nil && strings.TrimSpace(p.Comment) == ""
}

// Review serves the staff review console.
type Review struct {
	applications *Applications
	apps         application.ApplicationStore
	notes        application.NoteStore
	certificates application.CertificateStore
	tx           Transactor
	logger       *slog.Logger
}

// NewReview creates a new Review service.
func NewReview(
	applications *Applications,
	apps application.ApplicationStore,
	notes application.NoteStore,
	certificates application.CertificateStore,
	tx Transactor,
	logger *slog.Logger,
) *Review {
	return &Review{
		applications: applications,
		apps:         apps,
		notes:        notes,
		certificates: certificates,
		tx:           tx,
		logger:       logger,
	}
}

// List returns a page of applications for the console.
func (s *Review) List(ctx context.Context, f ReviewFilter) (ApplicationPage, error) {
	f = f.normalized()
	conditions := f.conditions()

	total, err := s.apps.Count(ctx, conditions...)
	if err != nil {
		return ApplicationPage{}, fmt.Errorf("count applications: %w", err)
	}

	page := ApplicationPage{
		Items:      []application.Application{},
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: int((total + int64(f.PageSize) - 1) / int64(f.PageSize)),
	}
	// Past the last page; also keeps (Page-1)*PageSize from overflowing.
	if f.Page > page.TotalPages {
		return page, nil
	}

	opts := append([]repository.Option{}, conditions...)
	opts = append(opts, f.Sort.Options()...)
	opts = append(opts, repository.WithPagination(f.PageSize, (f.Page-1)*f.PageSize)...)
	items, err := s.apps.Find(ctx, opts...)
	if err != nil {
		return ApplicationPage{}, fmt.Errorf("list applications: %w", err)
	}
	page.Items = items
	return page, nil
}

// StatusCounts returns the number of applications in every status.
func (s *Review) StatusCounts(ctx context.Context) (map[application.Status]int64, error) {
	return s.apps.StatusCounts(ctx)
}

// Get returns the staff detail of an application, internal notes included.
func (s *Review) Get(ctx context.Context, id string) (Detail, error) {
	return s.applications.Get(ctx, id)
}

// ChangeStatus moves an application to status to, appending exactly one
// SYSTEM note. Approval issues the certificate in the same transaction.
func (s *Review) ChangeStatus(ctx context.Context, id string, to application.Status, actor, reason string) (Detail, error) {
	return s.Update(ctx, id, ReviewPatch{Status: &to, Reason: reason, Actor: actor})
}

// Update applies a staff patch atomically: reviewer assignment, an optional
// status change and an optional comment.
func (s *Review) Update(ctx context.Context, id string, patch ReviewPatch) (Detail, error) {
	if patch.empty() {
		return Detail{}, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	actor := strings.TrimSpace(patch.Actor)
	if actor == "" {
		actor = application.SystemAuthorName
	}

	var (
		from    application.Status
		changed bool
	)
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		app, err := s.apps.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("application %s: %w", id, err)
		}
		from = app.Status()

		if patch.Reviewer != nil {
			app = app.WithAssignedReviewer(strings.TrimSpace(*patch.Reviewer))
		}

		now := time.Now()
		if patch.Status != nil {
			app, err = app.Transition(*patch.Status, now)
			if err != nil {
				return err
			}
			changed = true
		}

		if patch.Reviewer != nil || changed {
			if app, err = s.apps.Update(ctx, app); err != nil {
				return err
			}
		}

		if changed {
			note := application.NewStatusChangeNote(id, from, app.Status(), actor, patch.Reason)
			if _, err := s.notes.Append(ctx, note); err != nil {
				return err
			}
			if app.Status() == application.StatusApproved {
				if _, err := s.certificates.Issue(ctx, app, now); err != nil {
					return fmt.Errorf("issue certificate: %w", err)
				}
			}
		}

		if c := strings.TrimSpace(patch.Comment); c != "" {
			note := application.NewComment(id, application.AuthorStaff, actor, c, patch.Internal)
			if _, err := s.notes.Append(ctx, note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Detail{}, err
	}

	if changed {
		s.logger.Info("application status changed",
			slog.String("application_id", id),
			slog.String("from", string(from)),
			slog.String("to", string(*patch.Status)),
			slog.String("actor", actor),
		)
	}
	return s.applications.Get(ctx, id)
}

// IssueCertificate issues the certificate of an approved application that
// lacks one and returns it. An existing certificate is returned unchanged.
func (s *Review) IssueCertificate(ctx context.Context, id string) (application.Certificate, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return application.Certificate{}, fmt.Errorf("application %s: %w", id, err)
	}
	cert, err := s.certificates.Issue(ctx, app, time.Now())
	if err != nil {
		return application.Certificate{}, fmt.Errorf("issue certificate: %w", err)
	}
	return cert, nil
}

// CertificateByNumber looks a certificate up by its public number.
func (s *Review) CertificateByNumber(ctx context.Context, number string) (application.Certificate, error) {
	cert, err := s.certificates.ByNumber(ctx, number)
	if err != nil {
		return application.Certificate{}, fmt.Errorf("certificate %s: %w", number, err)
	}
	return cert, nil
}
