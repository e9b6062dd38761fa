package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
)

// ServicesRouter handles the public service directory.
type ServicesRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewServicesRouter creates a new ServicesRouter.
func NewServicesRouter(client *bizportal.Client) *ServicesRouter {
	return &ServicesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for directory endpoints.
func (r *ServicesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/chamber-boost", r.RequestChamberBoost)
	router.Get("/{id}", r.Get)

	return router
}

// List handles GET /api/services.
//
// Query parameters: department, channel, platform, q, featured, locale.
func (r *ServicesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	loc := requestLocale(req)
	query := req.URL.Query()

	filter := service.DirectoryFilter{
		Department:   strings.TrimSpace(query.Get("department")),
		Platform:     strings.TrimSpace(query.Get("platform")),
		Query:        strings.TrimSpace(query.Get("q")),
		FeaturedOnly: queryBool(req, "featured"),
	}
	if raw := query.Get("channel"); raw != "" {
		channel, ok := directory.ParseChannelType(raw)
		if !ok {
			middleware.WriteError(w, req, fmt.Errorf("%w: unknown channel %q", service.ErrValidation, raw), r.logger)
			return
		}
		filter.Channel = channel
	}

	services, err := r.client.Directory.List(ctx, filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	departments, err := r.client.Directory.Departments(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ServiceListResponse{
		LocaleInfo: localeInfo(loc),
		Success:    true,
		Filters: dto.ServiceFilters{
			Department: filter.Department,
			Channel:    string(filter.Channel),
			Platform:   filter.Platform,
			Query:      filter.Query,
			Featured:   filter.FeaturedOnly,
		},
		Departments: departments,
		Total:       len(services),
		Items:       servicesToDTO(services, loc),
	})
}

// Get handles GET /api/services/{id}.
func (r *ServicesRouter) Get(w http.ResponseWriter, req *http.Request) {
	loc := requestLocale(req)

	svc, err := r.client.Directory.ByID(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ServiceResponse{
		LocaleInfo: localeInfo(loc),
		Success:    true,
		Service:    serviceToDTO(svc, loc),
	})
}

// RequestChamberBoost handles POST /api/services/chamber-boost.
func (r *ServicesRouter) RequestChamberBoost(w http.ResponseWriter, req *http.Request) {
	var body dto.ChamberBoostRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail, err := r.client.Applications.RequestChamberBoost(req.Context(), service.ApplicationParams{
		ServiceType: application.ServiceTypeChamberBoost,
		Applicant: application.Applicant{
			Name:  body.ApplicantName,
			Email: body.ApplicantEmail,
			Phone: body.ApplicantPhone,
		},
		Organization: body.Organization,
		Sector:       body.Sector,
		Description:  body.Description,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	detail.Notes = application.PublicNotes(detail.Notes)
	middleware.WriteJSON(w, http.StatusCreated, detailToDTO(detail, requestLocale(req)))
}
