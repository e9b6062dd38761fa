package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/infrastructure/provider"
	"github.com/chamberhub/bizportal/internal/access"
	"github.com/chamberhub/bizportal/internal/database"
)

// ErrForbidden is returned when a caller's role may not use a route.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized is returned when a route needs a key the caller did not present.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is an error with an explicit HTTP status, raised by handlers for
// malformed requests.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// StatusFor maps an error onto the HTTP status the API answers with.
func StatusFor(err error) int {
	var apiErr *APIError
	var providerErr *provider.ProviderError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code()
	case errors.Is(err, ErrUnauthorized), errors.Is(err, access.ErrUnknownKey):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, database.ErrNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, application.ErrInvalidDetails),
		errors.Is(err, application.ErrUnknownServiceType),
		errors.Is(err, application.ErrUnknownStatus),
		errors.Is(err, catalog.ErrUnknownSort):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, application.ErrNotEditable),
		errors.Is(err, application.ErrNotApproved):
		return http.StatusConflict
	case errors.Is(err, service.ErrAIUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrAIResponse), errors.As(err, &providerErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteError writes the error envelope and logs the failure.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := StatusFor(err)
	correlationID := GetCorrelationID(r)

	message := err.Error()
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		message = apiErr.Message()
	case status == http.StatusBadGateway && !errors.Is(err, service.ErrAIResponse):
		message = "AI provider request failed"
	case status == http.StatusInternalServerError:
		message = "internal server error"
	}

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(r.Context(), level, "request error",
			slog.Int("status", status),
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorResponse{
		Success:       false,
		Error:         message,
		CorrelationID: correlationID,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
