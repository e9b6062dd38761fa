package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
)

// StaffRouter serves the review console.
type StaffRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewStaffRouter creates a new StaffRouter.
func NewStaffRouter(client *bizportal.Client) *StaffRouter {
	return &StaffRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for console endpoints.
func (r *StaffRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/applications", r.List)
	router.Get("/applications/stats", r.Stats)
	router.Get("/applications/{id}", r.Get)
	router.Patch("/applications/{id}", r.Update)

	return router
}

// List handles GET /api/staff/applications.
//
// Query parameters: status, serviceType, assignedReviewer, q, sort, page,
// pageSize.
func (r *StaffRouter) List(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	filter := service.ReviewFilter{
		Reviewer: strings.TrimSpace(query.Get("assignedReviewer")),
		Query:    strings.TrimSpace(query.Get("q")),
		Sort:     application.ParseSort(query.Get("sort")),
		Page:     queryInt(req, "page"),
		PageSize: queryInt(req, "pageSize", "page_size"),
	}
	if raw := query.Get("status"); raw != "" {
		status, err := application.ParseStatus(raw)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		filter.Status = status
	}
	if raw := firstNonEmpty(query.Get("serviceType"), query.Get("service_type")); raw != "" {
		serviceType, err := application.ParseServiceType(raw)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		filter.ServiceType = serviceType
	}

	page, err := r.client.Review.List(req.Context(), filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ApplicationListResponse{
		Success: true,
		Filters: dto.ApplicationFilters{
			Status:      string(filter.Status),
			ServiceType: string(filter.ServiceType),
			Reviewer:    filter.Reviewer,
			Query:       filter.Query,
			Sort:        string(filter.Sort),
		},
		Pagination: pagination(page.Page, page.PageSize, page.Total, page.TotalPages),
		Items:      applicationsToDTO(page.Items),
	})
}

// Stats handles GET /api/staff/applications/stats.
func (r *StaffRouter) Stats(w http.ResponseWriter, req *http.Request) {
	counts, err := r.client.Review.StatusCounts(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resp := dto.StatusCountsResponse{
		Success: true,
		Counts:  make(map[string]int64, len(application.Statuses())),
	}
	for _, status := range application.Statuses() {
		resp.Counts[string(status)] = counts[status]
		resp.Total += counts[status]
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/staff/applications/{id}. Internal notes are included.
func (r *StaffRouter) Get(w http.ResponseWriter, req *http.Request) {
	detail, err := r.client.Review.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

// Update handles PATCH /api/staff/applications/{id}.
func (r *StaffRouter) Update(w http.ResponseWriter, req *http.Request) {
	var body dto.ReviewPatchRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	patch := service.ReviewPatch{
		Reason:   body.Reason,
		Reviewer: body.Reviewer,
		Comment:  body.Comment,
		Internal: body.Internal,
		Actor:    body.Actor,
	}
	if body.Status != nil {
		status, err := application.ParseStatus(*body.Status)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		patch.Status = &status
	}

	detail, err := r.client.Review.Update(req.Context(), chi.URLParam(req, "id"), patch)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
