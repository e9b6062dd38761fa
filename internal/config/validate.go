package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var envValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("dburl", func(fl validator.FieldLevel) bool {
		url := fl.Field().String()
		for _, prefix := range []string{"sqlite:///", "postgres://", "postgresql://"} {
			if strings.HasPrefix(url, prefix) && len(url) > len(prefix) {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
		case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
			return true
		}
		return false
	})
	return v
})

// Validate reports out-of-range or malformed environment values, naming
// the offending variables.
func (e EnvConfig) Validate() error {
	err := envValidator().Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = fmt.Sprintf("%s=%v fails %s", envName(fe.StructNamespace()), fe.Value(), fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// envName maps a struct namespace such as EnvConfig.AIEndpoint.BaseURL to
// the variable that sets it.
func envName(namespace string) string {
	names := map[string]string{
		"Port":              "PORT",
		"DBURL":             "DB_URL",
		"LogLevel":          "LOG_LEVEL",
		"LogFormat":         "LOG_FORMAT",
		"AIEndpoint":        "AI_ENDPOINT",
		"EmbeddingEndpoint": "EMBEDDING_ENDPOINT",
		"AICache":           "AI_CACHE",
		"BaseURL":           "BASE_URL",
		"Timeout":           "TIMEOUT",
		"MaxRetries":        "MAX_RETRIES",
		"InitialDelay":      "INITIAL_DELAY",
		"BackoffFactor":     "BACKOFF_FACTOR",
		"MaxTokens":         "MAX_TOKENS",
		"RequestsPerSecond": "REQUESTS_PER_SECOND",
		"Size":              "SIZE",
		"TTLSeconds":        "TTL_SECONDS",
	}
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if n, ok := names[p]; ok {
			parts[i] = n
		}
	}
	return strings.Join(parts, "_")
}
