package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/chamberhub/bizportal/internal/database"
)

// chamberBoostServiceID is the directory entry Chamber Boost requests link to.
const chamberBoostServiceID = "chamber-boost"

// ApplicationParams carries the applicant-editable fields of an application.
type ApplicationParams struct {
	ServiceType      application.ServiceType
	ServiceID        string
	Applicant        application.Applicant
	Organization     string
	Sector           string
	Description      string
	AIPrecheck       string
	ESG              *application.ESGDetails
	KnowledgeSharing *application.KnowledgeSharingDetails
}

func (p ApplicationParams) validate() error {
	var problems []string
	if strings.TrimSpace(p.Applicant.Name) == "" {
		problems = append(problems, "applicant name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(p.Applicant.Email)); err != nil {
		problems = append(problems, "applicant email is invalid")
	}
	if strings.TrimSpace(p.Organization) == "" {
		problems = append(problems, "organization is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func (p ApplicationParams) applicant() application.Applicant {
	return application.Applicant{
		Name:  strings.TrimSpace(p.Applicant.Name),
		Email: strings.ToLower(strings.TrimSpace(p.Applicant.Email)),
		Phone: strings.TrimSpace(p.Applicant.Phone),
	}
}

// Detail is an application with everything its detail views render.
type Detail struct {
	Application application.Application
	Notes       []application.ReviewNote
	Certificate *application.Certificate
	Timeline    []application.Stage
}

// Applications serves the applicant-facing workflow.
// Embeds Collection for Find/Get/Count.
type Applications struct {
	repository.Collection[application.Application]
	apps         application.ApplicationStore
	notes        application.NoteStore
	certificates application.CertificateStore
	services     directory.ServiceStore
	tx           Transactor
	logger       *slog.Logger
}

// NewApplications creates a new Applications service.
func NewApplications(
	apps application.ApplicationStore,
	notes application.NoteStore,
	certificates application.CertificateStore,
	services directory.ServiceStore,
	tx Transactor,
	logger *slog.Logger,
) *Applications {
	return &Applications{
		Collection:   repository.NewCollection[application.Application](apps),
		apps:         apps,
		notes:        notes,
		certificates: certificates,
		services:     services,
		tx:           tx,
		logger:       logger,
	}
}

// Submit creates an application in SUBMITTED with its extension row and the
// submission note.
func (s *Applications) Submit(ctx context.Context, params ApplicationParams) (Detail, error) {
	if err := params.validate(); err != nil {
		return Detail{}, err
	}
	if params.ServiceType == "" {
		return Detail{}, fmt.Errorf("%w: service type is required", ErrValidation)
	}
	if err := s.checkService(ctx, params.ServiceID); err != nil {
		return Detail{}, err
	}

	app := application.NewApplication(
		params.ServiceType,
		params.applicant(),
		strings.TrimSpace(params.Organization),
		strings.TrimSpace(params.Sector),
		strings.TrimSpace(params.Description),
	).WithServiceID(strings.TrimSpace(params.ServiceID))
	if params.AIPrecheck != "" {
		app = app.WithAIPrecheck(params.AIPrecheck)
	}
	app = withDetails(app, params)
	if err := app.Validate(); err != nil {
		return Detail{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	err := s.tx.Run(ctx, func(ctx context.Context) error {
		created, err := s.apps.Create(ctx, app)
		if err != nil {
			return err
		}
		app = created
		_, err = s.notes.Append(ctx, application.NewSubmissionNote(app.ID(), app.ServiceType()))
		return err
	})
	if err != nil {
		return Detail{}, fmt.Errorf("submit application: %w", err)
	}

	s.logger.Info("application submitted",
		slog.String("application_id", app.ID()),
		slog.String("service_type", string(app.ServiceType())),
	)
	return s.detail(ctx, app, true)
}

// RequestChamberBoost submits a Chamber Boost request, linking it to the
// Chamber Boost directory entry when one is seeded.
func (s *Applications) RequestChamberBoost(ctx context.Context, params ApplicationParams) (Detail, error) {
	params.ServiceType = application.ServiceTypeChamberBoost
	params.ESG = nil
	params.KnowledgeSharing = nil
	if params.ServiceID == "" {
		exists, err := s.services.Exists(ctx, repository.WithID(chamberBoostServiceID))
		if err != nil {
			return Detail{}, fmt.Errorf("find chamber boost service: %w", err)
		}
		if exists {
			params.ServiceID = chamberBoostServiceID
		}
	}
	return s.Submit(ctx, params)
}

// Get returns the full detail of an application, internal notes included.
func (s *Applications) Get(ctx context.Context, id string) (Detail, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("application %s: %w", id, err)
	}
	return s.detail(ctx, app, true)
}

// MemberView returns the detail shown to applicants and members: internal
// staff notes are left out.
func (s *Applications) MemberView(ctx context.Context, id string) (Detail, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("application %s: %w", id, err)
	}
	return s.detail(ctx, app, false)
}

// Update revises an application waiting on the applicant and resubmits it.
// Extension rows are replaced only when params carry them.
func (s *Applications) Update(ctx context.Context, id string, params ApplicationParams) (Detail, error) {
	if err := params.validate(); err != nil {
		return Detail{}, err
	}

	var updated application.Application
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		app, err := s.apps.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("application %s: %w", id, err)
		}
		if params.ServiceType != "" && params.ServiceType != app.ServiceType() {
			return fmt.Errorf("%w: service type cannot change", ErrValidation)
		}

		revised, err := app.Revise(
			params.applicant(),
			strings.TrimSpace(params.Organization),
			strings.TrimSpace(params.Sector),
			strings.TrimSpace(params.Description),
		)
		if err != nil {
			return err
		}
		revised = withDetails(revised, params)
		if err := revised.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		from := revised.Status()
		revised, err = revised.Transition(application.StatusSubmitted, time.Now())
		if err != nil {
			return err
		}
		if updated, err = s.apps.Update(ctx, revised); err != nil {
			return err
		}
		note := application.NewStatusChangeNote(id, from, application.StatusSubmitted, revised.Applicant().Name, "Applicant resubmitted the application")
		_, err = s.notes.Append(ctx, note)
		return err
	})
	if err != nil {
		return Detail{}, err
	}

	s.logger.Info("application resubmitted", slog.String("application_id", id))
	return s.detail(ctx, updated, false)
}

// AddNote appends a free-text comment. Applicant comments are never internal.
func (s *Applications) AddNote(ctx context.Context, id string, author application.AuthorType, authorName, content string, internal bool) (application.ReviewNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return application.ReviewNote{}, fmt.Errorf("%w: note content is required", ErrValidation)
	}
	if author != application.AuthorStaff && author != application.AuthorApplicant {
		return application.ReviewNote{}, fmt.Errorf("%w: author must be STAFF or APPLICANT", ErrValidation)
	}
	if strings.TrimSpace(authorName) == "" {
		return application.ReviewNote{}, fmt.Errorf("%w: author name is required", ErrValidation)
	}

	exists, err := s.apps.Exists(ctx, repository.WithID(id))
	if err != nil {
		return application.ReviewNote{}, fmt.Errorf("find application: %w", err)
	}
	if !exists {
		return application.ReviewNote{}, fmt.Errorf("application %s: %w", id, database.ErrNotFound)
	}

	note, err := s.notes.Append(ctx, application.NewComment(id, author, strings.TrimSpace(authorName), content, internal))
	if err != nil {
		return application.ReviewNote{}, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}

// StorePrecheck saves an AI readiness comment on an application. Only
// applications still open to the applicant accept one.
func (s *Applications) StorePrecheck(ctx context.Context, id, text string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		app, err := s.apps.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("application %s: %w", id, err)
		}
		if !app.AcceptsPrecheck() {
			return fmt.Errorf("%w: cannot store a precheck while %s", application.ErrNotEditable, app.Status())
		}
		_, err = s.apps.Update(ctx, app.WithAIPrecheck(text))
		return err
	})
}

func (s *Applications) checkService(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	exists, err := s.services.Exists(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("find service: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: unknown service %q", ErrValidation, id)
	}
	return nil
}

func (s *Applications) detail(ctx context.Context, app application.Application, includeInternal bool) (Detail, error) {
	notes, err := s.notes.ForApplication(ctx, app.ID(), includeInternal)
	if err != nil {
		return Detail{}, fmt.Errorf("load notes: %w", err)
	}

	var cert *application.Certificate
	c, err := s.certificates.ForApplication(ctx, app.ID())
	switch {
	case err == nil:
		cert = &c
	case !errors.Is(err, database.ErrNotFound):
		return Detail{}, fmt.Errorf("load certificate: %w", err)
	}

	return Detail{
		Application: app,
		Notes:       notes,
		Certificate: cert,
		Timeline:    application.Timeline(app.Status(), app.Timestamps(), cert != nil),
	}, nil
}

func withDetails(app application.Application, params ApplicationParams) application.Application {
	if params.ESG != nil {
		app = app.WithESG(*params.ESG)
	}
	if params.KnowledgeSharing != nil {
		app = app.WithKnowledgeSharing(*params.KnowledgeSharing)
	}
	return app
}
