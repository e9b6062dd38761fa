package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
	"github.com/chamberhub/bizportal/internal/access"
)

// ApplicationsRouter handles application submission, resubmission, notes
// and the staff status and certificate actions.
type ApplicationsRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewApplicationsRouter creates a new ApplicationsRouter.
func NewApplicationsRouter(client *bizportal.Client) *ApplicationsRouter {
	return &ApplicationsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for application endpoints.
func (r *ApplicationsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Submit)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Update)
	router.Post("/{id}/notes", r.AddNote)
	router.Put("/{id}/status", r.ChangeStatus)
	router.Post("/{id}/certificate", r.IssueCertificate)

	return router
}

// Submit handles POST /api/applications.
func (r *ApplicationsRouter) Submit(w http.ResponseWriter, req *http.Request) {
	var body dto.ApplicationRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	params, err := paramsFromDTO(body)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail, err := r.client.Applications.Submit(req.Context(), params)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail.Notes = application.PublicNotes(detail.Notes)
	middleware.WriteJSON(w, http.StatusCreated, detailToDTO(detail, requestLocale(req)))
}

// Get handles GET /api/applications/{id}. Internal staff notes are hidden.
func (r *ApplicationsRouter) Get(w http.ResponseWriter, req *http.Request) {
	detail, err := r.client.Applications.MemberView(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

// Update handles PUT /api/applications/{id}: the applicant revises and
// resubmits an application that is waiting on them.
func (r *ApplicationsRouter) Update(w http.ResponseWriter, req *http.Request) {
	var body dto.ApplicationRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	params, err := paramsFromDTO(body)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail, err := r.client.Applications.Update(req.Context(), chi.URLParam(req, "id"), params)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail.Notes = application.PublicNotes(detail.Notes)
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

// AddNote handles POST /api/applications/{id}/notes.
func (r *ApplicationsRouter) AddNote(w http.ResponseWriter, req *http.Request) {
	var body dto.NoteRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	author, ok := application.ParseAuthorType(body.AuthorType)
	if !ok {
		middleware.WriteError(w, req, fmt.Errorf("%w: authorType must be STAFF or APPLICANT", service.ErrValidation), r.logger)
		return
	}
	// Only staff may see or write internal notes.
	if author == application.AuthorStaff && middleware.RoleFrom(req.Context()) != access.RoleStaff {
		middleware.WriteError(w, req, middleware.ErrForbidden, r.logger)
		return
	}
	internal := body.Internal && author == application.AuthorStaff

	note, err := r.client.Applications.AddNote(req.Context(), chi.URLParam(req, "id"), author, body.AuthorName, body.Content, internal)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.NoteResponse{
		Success: true,
		Note:    noteToDTO(note),
	})
}

// ChangeStatus handles PUT /api/applications/{id}/status.
func (r *ApplicationsRouter) ChangeStatus(w http.ResponseWriter, req *http.Request) {
	var body dto.StatusRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	to, err := application.ParseStatus(body.Status)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail, err := r.client.Review.ChangeStatus(req.Context(), chi.URLParam(req, "id"), to, body.Actor, body.Reason)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

// IssueCertificate handles POST /api/applications/{id}/certificate. Issuing
// twice returns the certificate already on file.
func (r *ApplicationsRouter) IssueCertificate(w http.ResponseWriter, req *http.Request) {
	cert, err := r.client.Review.IssueCertificate(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.CertificateResponse{
		Success:     true,
		Certificate: certificateToDTO(cert),
	})
}

// CertificatesRouter serves public certificate verification.
type CertificatesRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewCertificatesRouter creates a new CertificatesRouter.
func NewCertificatesRouter(client *bizportal.Client) *CertificatesRouter {
	return &CertificatesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for certificate endpoints.
func (r *CertificatesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{number}", r.Verify)
	return router
}

// Verify handles GET /api/certificates/{number}.
func (r *CertificatesRouter) Verify(w http.ResponseWriter, req *http.Request) {
	cert, err := r.client.Review.CertificateByNumber(req.Context(), chi.URLParam(req, "number"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.CertificateResponse{
		Success:     true,
		Certificate: certificateToDTO(cert),
	})
}
