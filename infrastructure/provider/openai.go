package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chamberhub/bizportal/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// errEmbeddingCountMismatch indicates the API returned fewer embedding vectors
// than requested. Retryable: routing providers sometimes answer 200 with a
// partial body under load.
var errEmbeddingCountMismatch = errors.New("embedding response count mismatch")

// OpenAIProvider implements text generation and embedding against any
// OpenAI-compatible endpoint. One instance serves one model.
type OpenAIProvider struct {
	client        *openai.Client
	model         string
	maxTokens     int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIOption is a functional option for OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithModel sets the model used for every request.
func WithModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) { p.model = model }
}

// WithDefaultMaxTokens sets the completion limit used when a request has none.
func WithDefaultMaxTokens(n int) OpenAIOption {
	return func(p *OpenAIProvider) { p.maxTokens = n }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) OpenAIOption {
	return func(p *OpenAIProvider) { p.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) OpenAIOption {
	return func(p *OpenAIProvider) { p.initialDelay = d }
}

// WithBackoffFactor sets the backoff multiplier.
func WithBackoffFactor(f float64) OpenAIOption {
	return func(p *OpenAIProvider) { p.backoffFactor = f }
}

// NewOpenAIProvider creates a provider for baseURL. An empty baseURL targets
// the OpenAI API.
func NewOpenAIProvider(baseURL, apiKey string, httpClient *http.Client, opts ...OpenAIOption) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	p := &OpenAIProvider{
		client:        openai.NewClientWithConfig(cfg),
		model:         "gpt-4o-mini",
		maxRetries:    config.DefaultEndpointMaxRetries,
		initialDelay:  config.DefaultEndpointInitialDelay,
		backoffFactor: config.DefaultEndpointBackoffFactor,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewOpenAIProviderFromEndpoint creates a provider from endpoint configuration.
func NewOpenAIProviderFromEndpoint(e config.Endpoint) *OpenAIProvider {
	var client *http.Client
	if e.Timeout() > 0 {
		client = &http.Client{Timeout: e.Timeout()}
	}
	return NewOpenAIProvider(e.BaseURL(), e.APIKey(), client,
		WithModel(e.Model()),
		WithDefaultMaxTokens(e.MaxTokens()),
		WithMaxRetries(e.MaxRetries()),
		WithInitialDelay(e.InitialDelay()),
		WithBackoffFactor(e.BackoffFactor()),
	)
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string { return p.model }

// ChatCompletion generates a chat completion.
func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages()))
	for _, m := range req.Messages() {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role(), Content: m.Content()})
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	}
	switch {
	case req.MaxTokens() > 0:
		openaiReq.MaxTokens = req.MaxTokens()
	case p.maxTokens > 0:
		openaiReq.MaxTokens = p.maxTokens
	}
	if req.Temperature() > 0 {
		openaiReq.Temperature = float32(req.Temperature())
	}
	if req.JSONOutput() {
		openaiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var resp openai.ChatCompletionResponse
	err := p.withRetry(ctx, func() error {
		var err error
		resp, err = p.client.CreateChatCompletion(ctx, openaiReq)
		return err
	})
	if err != nil {
		return ChatCompletionResponse{}, p.wrapError("chat_completion", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return ChatCompletionResponse{}, NewProviderError("chat_completion", 0, "no content in response", ErrEmptyResponse)
	}

	return NewChatCompletionResponse(
		resp.Choices[0].Message.Content,
		string(resp.Choices[0].FinishReason),
		NewUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens),
	), nil
}

// Embed generates embeddings for the given texts in a single API call.
func (p *OpenAIProvider) Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	texts := req.Texts()
	if len(texts) == 0 {
		return NewEmbeddingResponse(nil, NewUsage(0, 0, 0)), nil
	}

	openaiReq := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: texts,
	}

	var resp openai.EmbeddingResponse
	err := p.withRetry(ctx, func() error {
		var err error
		resp, err = p.client.CreateEmbeddings(ctx, openaiReq)
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("%w: got %d vectors for %d texts", errEmbeddingCountMismatch, len(resp.Data), len(texts))
		}
		return nil
	})
	if err != nil {
		return EmbeddingResponse{}, p.wrapError("embedding", err)
	}

	embeddings := make([][]float64, len(resp.Data))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(embeddings) {
			return EmbeddingResponse{}, NewProviderError("embedding", 0, fmt.Sprintf("embedding index %d out of range", data.Index), nil)
		}
		vec := make([]float64, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float64(v)
		}
		embeddings[data.Index] = vec
	}

	return NewEmbeddingResponse(embeddings, NewUsage(resp.Usage.PromptTokens, 0, resp.Usage.TotalTokens)), nil
}

// withRetry executes fn with exponential backoff.
func (p *OpenAIProvider) withRetry(ctx context.Context, fn func() error) error {
	delay := p.initialDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * p.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable reports whether err is transient: rate limits, upstream 5xx,
// timeouts and connection failures.
func isRetryable(err error) bool {
	if errors.Is(err, errEmbeddingCountMismatch) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var reqErr *openai.RequestError
	return errors.As(err, &reqErr)
}

// wrapError wraps an OpenAI error into a ProviderError.
func (p *OpenAIProvider) wrapError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError(operation, 0, err.Error(), err)
}

var (
	_ TextGenerator = (*OpenAIProvider)(nil)
	_ Embedder      = (*OpenAIProvider)(nil)
)
