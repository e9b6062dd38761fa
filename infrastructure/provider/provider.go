// Package provider provides AI provider abstractions for text generation and
// embedding generation, plus an OpenAI-compatible implementation.
package provider

import (
	"context"
	"errors"
	"net/http"
)

// Common errors.
var (
	// ErrUnsupportedOperation indicates the provider doesn't support the requested operation.
	ErrUnsupportedOperation = errors.New("operation not supported by this provider")

	// ErrEmptyResponse indicates the provider answered without usable content.
	ErrEmptyResponse = errors.New("empty provider response")
)

// Message represents a chat message.
type Message struct {
	role    string
	content string
}

// NewMessage creates a new Message.
func NewMessage(role, content string) Message {
	return Message{role: role, content: content}
}

// Role returns the message role (e.g., "system", "user", "assistant").
func (m Message) Role() string { return m.role }

// Content returns the message content.
func (m Message) Content() string { return m.content }

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return NewMessage("system", content)
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return NewMessage("user", content)
}

// ChatCompletionRequest represents a request for text generation.
type ChatCompletionRequest struct {
	messages    []Message
	maxTokens   int
	temperature float64
	jsonOutput  bool
}

// NewChatCompletionRequest creates a new ChatCompletionRequest. Zero max
// tokens and temperature mean the provider default.
func NewChatCompletionRequest(messages ...Message) ChatCompletionRequest {
	return ChatCompletionRequest{messages: append([]Message(nil), messages...)}
}

// WithMaxTokens returns a new request with the specified max tokens.
func (r ChatCompletionRequest) WithMaxTokens(n int) ChatCompletionRequest {
	r.maxTokens = n
	return r
}

// WithTemperature returns a new request with the specified temperature.
func (r ChatCompletionRequest) WithTemperature(t float64) ChatCompletionRequest {
	r.temperature = t
	return r
}

// WithJSONOutput returns a new request that asks for a JSON object reply.
func (r ChatCompletionRequest) WithJSONOutput() ChatCompletionRequest {
	r.jsonOutput = true
	return r
}

// Messages returns the messages.
func (r ChatCompletionRequest) Messages() []Message {
	return append([]Message(nil), r.messages...)
}

// MaxTokens returns the max tokens setting.
func (r ChatCompletionRequest) MaxTokens() int { return r.maxTokens }

// Temperature returns the temperature setting.
func (r ChatCompletionRequest) Temperature() float64 { return r.temperature }

// JSONOutput reports whether a JSON object reply was requested.
func (r ChatCompletionRequest) JSONOutput() bool { return r.jsonOutput }

// ChatCompletionResponse represents a text generation response.
type ChatCompletionResponse struct {
	content      string
	finishReason string
	usage        Usage
}

// NewChatCompletionResponse creates a new ChatCompletionResponse.
func NewChatCompletionResponse(content, finishReason string, usage Usage) ChatCompletionResponse {
	return ChatCompletionResponse{
		content:      content,
		finishReason: finishReason,
		usage:        usage,
	}
}

// Content returns the generated content.
func (r ChatCompletionResponse) Content() string { return r.content }

// FinishReason returns why generation stopped.
func (r ChatCompletionResponse) FinishReason() string { return r.finishReason }

// Usage returns token usage information.
func (r ChatCompletionResponse) Usage() Usage { return r.usage }

// Usage represents token usage information.
type Usage struct {
	promptTokens     int
	completionTokens int
	totalTokens      int
}

// NewUsage creates a new Usage.
func NewUsage(prompt, completion, total int) Usage {
	return Usage{
		promptTokens:     prompt,
		completionTokens: completion,
		totalTokens:      total,
	}
}

// PromptTokens returns the number of prompt tokens.
func (u Usage) PromptTokens() int { return u.promptTokens }

// CompletionTokens returns the number of completion tokens.
func (u Usage) CompletionTokens() int { return u.completionTokens }

// TotalTokens returns the total number of tokens.
func (u Usage) TotalTokens() int { return u.totalTokens }

// EmbeddingRequest represents a request for embeddings.
type EmbeddingRequest struct {
	texts []string
}

// NewEmbeddingRequest creates a new EmbeddingRequest.
func NewEmbeddingRequest(texts []string) EmbeddingRequest {
	return EmbeddingRequest{texts: append([]string(nil), texts...)}
}

// Texts returns the texts to embed.
func (r EmbeddingRequest) Texts() []string {
	return append([]string(nil), r.texts...)
}

// EmbeddingResponse represents an embedding response.
type EmbeddingResponse struct {
	embeddings [][]float64
	usage      Usage
}

// NewEmbeddingResponse creates a new EmbeddingResponse.
func NewEmbeddingResponse(embeddings [][]float64, usage Usage) EmbeddingResponse {
	return EmbeddingResponse{embeddings: copyVectors(embeddings), usage: usage}
}

// Embeddings returns the embedding vectors.
func (r EmbeddingResponse) Embeddings() [][]float64 {
	return copyVectors(r.embeddings)
}

// Usage returns token usage information.
func (r EmbeddingResponse) Usage() Usage { return r.usage }

func copyVectors(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, v := range in {
		out[i] = append([]float64(nil), v...)
	}
	return out
}

// TextGenerator generates text completions.
type TextGenerator interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error)
}

// Embedder generates embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error)
}

// ProviderError wraps provider errors with additional context.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a new ProviderError.
func NewProviderError(operation string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		cause:      cause,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.cause != nil && e.cause.Error() != e.message {
		return e.operation + ": " + e.message + ": " + e.cause.Error()
	}
	return e.operation + ": " + e.message
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.cause
}

// Operation returns the operation that failed.
func (e *ProviderError) Operation() string { return e.operation }

// StatusCode returns the HTTP status code if available.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// Message returns the error message.
func (e *ProviderError) Message() string { return e.message }

// IsRateLimited returns true if the error is due to rate limiting.
func (e *ProviderError) IsRateLimited() bool {
	return e.statusCode == http.StatusTooManyRequests
}
