package service

import "errors"

// Errors returned by the use cases. The HTTP layer maps each onto a status code.
var (
	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")

	// ErrAIUnavailable indicates no text-completion endpoint is configured.
	ErrAIUnavailable = errors.New("AI assistant is not configured")

	// ErrAIResponse indicates the model answered with something unusable.
	ErrAIResponse = errors.New("AI response could not be used")
)

// ErrNotFound indicates a requested hub item does not exist.
var ErrNotFound = errors.New("not found")
