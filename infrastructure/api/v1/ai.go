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

// AIRouter handles the assistant endpoints. Every answer is advisory text
// and nothing here changes an application's status.
type AIRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewAIRouter creates a new AIRouter.
func NewAIRouter(client *bizportal.Client) *AIRouter {
	return &AIRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for AI endpoints.
func (r *AIRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/precheck", r.Precheck)
	router.Post("/service-match", r.ServiceMatch)
	router.Post("/summary", r.Summary)
	router.Post("/comment", r.Comment)
	router.Post("/reviewer-assist", r.ReviewerAssist)

	return router
}

// Precheck handles POST /api/ai/precheck.
func (r *AIRouter) Precheck(w http.ResponseWriter, req *http.Request) {
	var body dto.PrecheckRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	in := service.PrecheckInput{
		ApplicationID:    strings.TrimSpace(body.ApplicationID),
		Organization:     body.Organization,
		Sector:           body.Sector,
		Description:      body.Description,
		ESG:              esgFromDTO(body.ESG),
		KnowledgeSharing: knowledgeSharingFromDTO(body.KnowledgeSharing),
		Locale:           bodyLocale(req, body.Locale),
	}
	if body.ServiceType != "" {
		serviceType, err := application.ParseServiceType(body.ServiceType)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		in.ServiceType = serviceType
	}

	result, err := r.client.Assistant.Precheck(req.Context(), in)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.PrecheckResponse{
		Success: true,
		Comment: result.Comment,
		Stored:  result.Stored,
	})
}

// ServiceMatch handles POST /api/ai/service-match. It works without a text
// provider: ranking falls back to keyword overlap.
func (r *AIRouter) ServiceMatch(w http.ResponseWriter, req *http.Request) {
	var body dto.ServiceMatchRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.Assistant.ServiceMatch(req.Context(), body.Query, body.Limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	loc := bodyLocale(req, body.Locale)
	matches := make([]dto.ServiceMatchSchema, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = dto.ServiceMatchSchema{
			Service: serviceToDTO(m.Service, loc),
			Score:   m.Score,
		}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ServiceMatchResponse{
		LocaleInfo: localeInfo(loc),
		Success:    true,
		Strategy:   string(result.Strategy),
		Matches:    matches,
	})
}

// Summary handles POST /api/ai/summary.
func (r *AIRouter) Summary(w http.ResponseWriter, req *http.Request) {
	var body dto.ApplicationAIRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	summary, err := r.client.Assistant.Summary(req.Context(), body.ApplicationID, bodyLocale(req, body.Locale))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SummaryResponse{
		Success: true,
		Summary: summary,
	})
}

// Comment handles POST /api/ai/comment.
func (r *AIRouter) Comment(w http.ResponseWriter, req *http.Request) {
	var body dto.ApplicationAIRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	intent, err := service.ParseCommentIntent(body.Intent)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	comment, err := r.client.Assistant.Comment(req.Context(), body.ApplicationID, intent, body.Draft, bodyLocale(req, body.Locale))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CommentResponse{
		Success: true,
		Intent:  string(intent),
		Comment: comment,
	})
}

// ReviewerAssist handles POST /api/ai/reviewer-assist.
func (r *AIRouter) ReviewerAssist(w http.ResponseWriter, req *http.Request) {
	var body dto.ApplicationAIRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	assessment, err := r.client.Assistant.ReviewerAssist(req.Context(), body.ApplicationID, bodyLocale(req, body.Locale))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	concerns := assessment.Concerns
	if concerns == nil {
		concerns = []string{}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ReviewerAssistResponse{
		Success:        true,
		Recommendation: string(assessment.Recommendation),
		Confidence:     assessment.Confidence,
		Rationale:      assessment.Rationale,
		Concerns:       concerns,
		Advisory:       true,
	})
}
