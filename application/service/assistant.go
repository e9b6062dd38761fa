package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/infrastructure/provider"
)

// Service match limits.
const (
	DefaultMatchLimit = 5
	MaxMatchLimit     = 20
)

// PrecheckInput describes a draft application to comment on. When
// ApplicationID is set the stored application is used and the comment is
// saved on it.
type PrecheckInput struct {
	ApplicationID    string
	ServiceType      application.ServiceType
	Organization     string
	Sector           string
	Description      string
	ESG              *application.ESGDetails
	KnowledgeSharing *application.KnowledgeSharingDetails
	Locale           locale.Locale
}

// PrecheckResult is the AI readiness comment for a draft.
type PrecheckResult struct {
	Comment string
	Stored  bool
}

// CommentIntent is what a drafted reviewer comment should achieve.
type CommentIntent string

// CommentIntent values.
const (
	IntentGeneral            CommentIntent = "GENERAL"
	IntentRequestCorrections CommentIntent = "REQUEST_CORRECTIONS"
	IntentRequestInfo        CommentIntent = "REQUEST_INFO"
	IntentApprove            CommentIntent = "APPROVE"
	IntentReject             CommentIntent = "REJECT"
)

// ParseCommentIntent returns the intent for s. Dashes and spaces are read as
// underscores and an empty intent is GENERAL. Anything else is ErrValidation.
func ParseCommentIntent(s string) (CommentIntent, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return IntentGeneral, nil
	}
	i := CommentIntent(strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(raw)))
	switch i {
	case IntentGeneral, IntentRequestCorrections, IntentRequestInfo, IntentApprove, IntentReject:
		return i, nil
	default:
		return "", fmt.Errorf("%w: unknown comment intent %q", ErrValidation, s)
	}
}

// Recommendation is the reviewer-assist verdict.
type Recommendation string

// Recommendation values.
const (
	RecommendApprove            Recommendation = "APPROVE"
	RecommendRequestCorrections Recommendation = "REQUEST_CORRECTIONS"
	RecommendReject             Recommendation = "REJECT"
)

// Assessment is advisory output for reviewers. It is never applied.
type Assessment struct {
	Recommendation Recommendation
	Confidence     float64
	Rationale      string
	Concerns       []string
}

// MatchResult is a ranked service match and the strategy that produced it.
type MatchResult struct {
	Strategy directory.MatchStrategy
	Matches  []directory.Match
}

// Assistant serves the AI endpoints. Either provider may be nil: text
// operations then fail with ErrAIUnavailable and service matching falls back
// to keyword ranking.
type Assistant struct {
	text         provider.TextGenerator
	embedder     provider.Embedder
	applications *Applications
	directory    *Directory
	logger       *slog.Logger
}

// NewAssistant creates a new Assistant service.
func NewAssistant(
	text provider.TextGenerator,
	embedder provider.Embedder,
	applications *Applications,
	directory *Directory,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		text:         text,
		embedder:     embedder,
		applications: applications,
		directory:    directory,
		logger:       logger,
	}
}

// TextAvailable reports whether a text-completion provider is configured.
func (s *Assistant) TextAvailable() bool { return s.text != nil }

// Precheck drafts a readiness comment for an application before submission.
func (s *Assistant) Precheck(ctx context.Context, in PrecheckInput) (PrecheckResult, error) {
	if s.text == nil {
		return PrecheckResult{}, ErrAIUnavailable
	}

	draft := in
	if in.ApplicationID != "" {
		d, err := s.applications.Get(ctx, in.ApplicationID)
		if err != nil {
			return PrecheckResult{}, err
		}
		app := d.Application
		if !app.AcceptsPrecheck() {
			return PrecheckResult{}, fmt.Errorf("%w: cannot precheck an application that is %s", application.ErrNotEditable, app.Status())
		}
		draft = PrecheckInput{
			ServiceType:      app.ServiceType(),
			Organization:     app.Organization(),
			Sector:           app.Sector(),
			Description:      app.Description(),
			ESG:              app.ESG(),
			KnowledgeSharing: app.KnowledgeSharing(),
			Locale:           in.Locale,
		}
	}
	if strings.TrimSpace(draft.Organization) == "" && strings.TrimSpace(draft.Description) == "" {
		return PrecheckResult{}, fmt.Errorf("%w: organization or description is required", ErrValidation)
	}

	comment, err := s.complete(ctx, "precheck", precheckSystemPrompt+languageInstruction(in.Locale), draftPrompt(draft), false)
	if err != nil {
		return PrecheckResult{}, err
	}

	result := PrecheckResult{Comment: comment}
	if in.ApplicationID != "" {
		if err := s.applications.StorePrecheck(ctx, in.ApplicationID, comment); err != nil {
			return PrecheckResult{}, fmt.Errorf("store precheck: %w", err)
		}
		result.Stored = true
	}
	return result, nil
}

// Summary summarises an application and its review history for staff.
func (s *Assistant) Summary(ctx context.Context, id string, loc locale.Locale) (string, error) {
	if s.text == nil {
		return "", ErrAIUnavailable
	}
	d, err := s.applications.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, "summary", summarySystemPrompt+languageInstruction(loc), detailPrompt(d), false)
}

// Comment drafts a reviewer comment addressed to the applicant.
func (s *Assistant) Comment(ctx context.Context, id string, intent CommentIntent, draft string, loc locale.Locale) (string, error) {
	if s.text == nil {
		return "", ErrAIUnavailable
	}
	d, err := s.applications.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(detailPrompt(d))
	fmt.Fprintf(&b, "\nIntent: %s\n", intent)
	if strings.TrimSpace(draft) != "" {
		fmt.Fprintf(&b, "Reviewer draft to improve:\n%s\n", strings.TrimSpace(draft))
	}
	return s.complete(ctx, "comment", commentSystemPrompt+languageInstruction(loc), b.String(), false)
}

type assessmentPayload struct {
	Recommendation string   `json:"recommendation"`
	Confidence     float64  `json:"confidence"`
	Rationale      string   `json:"rationale"`
	Concerns       []string `json:"concerns"`
}

// ReviewerAssist asks the model for an approve / correct / reject
// recommendation. The JSON answer is validated before it is returned.
func (s *Assistant) ReviewerAssist(ctx context.Context, id string, loc locale.Locale) (Assessment, error) {
	if s.text == nil {
		return Assessment{}, ErrAIUnavailable
	}
	d, err := s.applications.Get(ctx, id)
	if err != nil {
		return Assessment{}, err
	}

	raw, err := s.complete(ctx, "reviewer_assist", reviewerAssistSystemPrompt+languageInstruction(loc), detailPrompt(d), true)
	if err != nil {
		return Assessment{}, err
	}
	return ParseAssessment(raw)
}

// ParseAssessment validates a reviewer-assist JSON answer. Markdown code
// fences around the object are tolerated.
func ParseAssessment(raw string) (Assessment, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var p assessmentPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return Assessment{}, fmt.Errorf("%w: decode assessment: %w", ErrAIResponse, err)
	}

	rec := Recommendation(strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(strings.TrimSpace(p.Recommendation))))
	switch rec {
	case RecommendApprove, RecommendRequestCorrections, RecommendReject:
	default:
		return Assessment{}, fmt.Errorf("%w: unknown recommendation %q", ErrAIResponse, p.Recommendation)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return Assessment{}, fmt.Errorf("%w: confidence %v outside 0..1", ErrAIResponse, p.Confidence)
	}
	if strings.TrimSpace(p.Rationale) == "" {
		return Assessment{}, fmt.Errorf("%w: rationale is empty", ErrAIResponse)
	}

	concerns := make([]string, 0, len(p.Concerns))
	for _, c := range p.Concerns {
		if c = strings.TrimSpace(c); c != "" {
			concerns = append(concerns, c)
		}
	}
	return Assessment{
		Recommendation: rec,
		Confidence:     p.Confidence,
		Rationale:      strings.TrimSpace(p.Rationale),
		Concerns:       concerns,
	}, nil
}

// ServiceMatch ranks directory services against a free-text need. Embedding
// ranking is used when an embedder is configured and answers; otherwise
// services are ranked by keyword overlap.
func (s *Assistant) ServiceMatch(ctx context.Context, query string, limit int) (MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return MatchResult{}, fmt.Errorf("%w: query is required", ErrValidation)
	}
	switch {
	case limit <= 0:
		limit = DefaultMatchLimit
	case limit > MaxMatchLimit:
		limit = MaxMatchLimit
	}

	services, err := s.directory.List(ctx, DirectoryFilter{})
	if err != nil {
		return MatchResult{}, err
	}

	if s.embedder != nil && len(services) > 0 {
		matches, err := s.embeddingMatch(ctx, query, services, limit)
		if err == nil {
			return MatchResult{Strategy: directory.MatchEmbedding, Matches: matches}, nil
		}
		if ctx.Err() != nil {
			return MatchResult{}, ctx.Err()
		}
		s.logger.Warn("embedding match failed, using keyword ranking", slog.Any("error", err))
	}

	return MatchResult{
		Strategy: directory.MatchKeyword,
		Matches:  directory.RankByKeywords(query, services, limit),
	}, nil
}

func (s *Assistant) embeddingMatch(ctx context.Context, query string, services []directory.Service, limit int) ([]directory.Match, error) {
	texts := make([]string, 0, len(services)+1)
	texts = append(texts, query)
	for _, svc := range services {
		texts = append(texts, svc.EmbeddingText())
	}

	resp, err := s.embedder.Embed(ctx, provider.NewEmbeddingRequest(texts))
	if err != nil {
		return nil, err
	}
	vectors := resp.Embeddings()
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrAIResponse, len(vectors), len(texts))
	}
	return directory.RankByVectors(vectors[0], services, vectors[1:], limit), nil
}

func (s *Assistant) complete(ctx context.Context, operation, system, user string, jsonOutput bool) (string, error) {
	req := provider.NewChatCompletionRequest(
		provider.SystemMessage(system),
		provider.UserMessage(user),
	).WithTemperature(0.2)
	if jsonOutput {
		req = req.WithJSONOutput()
	}

	resp, err := s.text.ChatCompletion(ctx, req)
	if err != nil {
		s.logger.Error("AI request failed", slog.String("operation", operation), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", operation, err)
	}
	s.logger.Debug("AI request completed",
		slog.String("operation", operation),
		slog.Int("total_tokens", resp.Usage().TotalTokens()),
	)
	return strings.TrimSpace(resp.Content()), nil
}
