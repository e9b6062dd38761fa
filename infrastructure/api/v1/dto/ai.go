package dto

// PrecheckRequest is the body of POST /api/ai/precheck. When ApplicationID
// is set the stored application is checked and the other fields are ignored.
type PrecheckRequest struct {
	ApplicationID    string                         `json:"applicationId" validate:"omitempty,uuid"`
	ServiceType      string                         `json:"serviceType"`
	Organization     string                         `json:"organization" validate:"max=300"`
	Sector           string                         `json:"sector" validate:"max=100"`
	Description      string                         `json:"description" validate:"max=5000"`
	ESG              *ESGDetailsSchema              `json:"esg" validate:"-"`
	KnowledgeSharing *KnowledgeSharingDetailsSchema `json:"knowledgeSharing" validate:"-"`
	Locale           string                         `json:"locale"`
}

// PrecheckResponse is the body returned by the precheck endpoint.
type PrecheckResponse struct {
	Success bool   `json:"success"`
	Comment string `json:"comment"`
	Stored  bool   `json:"stored"`
}

// ApplicationAIRequest is the body of the staff AI endpoints.
type ApplicationAIRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	Intent        string `json:"intent"`
	Draft         string `json:"draft" validate:"max=5000"`
	Locale        string `json:"locale"`
}

// SummaryResponse is the body returned by POST /api/ai/summary.
type SummaryResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

// CommentResponse is the body returned by POST /api/ai/comment.
type CommentResponse struct {
	Success bool   `json:"success"`
	Intent  string `json:"intent"`
	Comment string `json:"comment"`
}

// ReviewerAssistResponse is the body returned by POST /api/ai/reviewer-assist.
// The assessment is advisory and never changes the application.
type ReviewerAssistResponse struct {
	Success        bool     `json:"success"`
	Recommendation string   `json:"recommendation"`
	Confidence     float64  `json:"confidence"`
	Rationale      string   `json:"rationale"`
	Concerns       []string `json:"concerns"`
	Advisory       bool     `json:"advisory"`
}

// ServiceMatchRequest is the body of POST /api/ai/service-match.
type ServiceMatchRequest struct {
	Query  string `json:"query" validate:"required,max=500"`
	Limit  int    `json:"limit" validate:"gte=0,lte=20"`
	Locale string `json:"locale"`
}

// ServiceMatchSchema is one ranked service.
type ServiceMatchSchema struct {
	Service ServiceSchema `json:"service"`
	Score   float64       `json:"score"`
}

// ServiceMatchResponse is the body returned by POST /api/ai/service-match.
type ServiceMatchResponse struct {
	LocaleInfo

	Success  bool                 `json:"success"`
	Strategy string               `json:"strategy"`
	Matches  []ServiceMatchSchema `json:"matches"`
}
