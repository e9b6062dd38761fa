package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., AI_ENDPOINT_BASE_URL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080" validate:"gte=1,lte=65535"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.bizportal
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/bizportal.db
	DBURL string `envconfig:"DB_URL" validate:"omitempty,dburl"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO" validate:"omitempty,loglevel"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"omitempty,oneof=pretty json PRETTY JSON"`

	// StaffAPIKeys is a comma-separated list of keys granting the staff role.
	// Env: STAFF_API_KEYS
	StaffAPIKeys string `envconfig:"STAFF_API_KEYS"`

	// MemberAPIKeys is a comma-separated list of keys granting the member role.
	// Env: MEMBER_API_KEYS
	MemberAPIKeys string `envconfig:"MEMBER_API_KEYS"`

	// CORSAllowedOrigins is a comma-separated list of allowed browser origins.
	// Env: CORS_ALLOWED_ORIGINS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`

	// SeedOnStart loads demo data when the server starts.
	// Env: SEED_ON_START (default: false)
	SeedOnStart bool `envconfig:"SEED_ON_START" default:"false"`

	// AIEndpoint configures the text-completion service.
	AIEndpoint EndpointEnv `envconfig:"AI_ENDPOINT"`

	// EmbeddingEndpoint configures the embedding service used for service matching.
	EmbeddingEndpoint EndpointEnv `envconfig:"EMBEDDING_ENDPOINT"`

	// AICache configures caching of AI responses.
	AICache AICacheEnv `envconfig:"AI_CACHE"`
}

// EndpointEnv holds environment configuration for an AI endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: *_BASE_URL
	BaseURL string `envconfig:"BASE_URL" validate:"omitempty,http_url"`

	// Model is the model identifier.
	// Env: *_MODEL
	Model string `envconfig:"MODEL"`

	// APIKey is the API key for authentication.
	// Env: *_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: *_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60" validate:"gt=0"`

	// MaxRetries is the maximum number of retries.
	// Env: *_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3" validate:"gte=0,lte=10"`

	// InitialDelay is the initial retry delay in seconds.
	// Env: *_INITIAL_DELAY (default: 1.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"1.0" validate:"gte=0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: *_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0" validate:"gte=1"`

	// MaxTokens is the maximum completion token limit.
	// Env: *_MAX_TOKENS (default: 800)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"800" validate:"gt=0"`

	// RequestsPerSecond limits upstream calls. Zero disables limiting.
	// Env: *_REQUESTS_PER_SECOND (default: 5)
	RequestsPerSecond float64 `envconfig:"REQUESTS_PER_SECOND" default:"5" validate:"gte=0"`
}

// AICacheEnv holds environment configuration for AI response caching.
type AICacheEnv struct {
	// Size is the number of cached responses. Zero disables caching.
	// Env: AI_CACHE_SIZE (default: 256)
	Size int `envconfig:"SIZE" default:"256" validate:"gte=0"`

	// TTLSeconds is the lifetime of a cached response.
	// Env: AI_CACHE_TTL_SECONDS (default: 600)
	TTLSeconds float64 `envconfig:"TTL_SECONDS" default:"600" validate:"gte=0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "BIZPORTAL" would require BIZPORTAL_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.StaffAPIKeys != "" {
		cfg = applyOption(cfg, WithStaffAPIKeys(ParseAPIKeys(e.StaffAPIKeys)))
	}
	if e.MemberAPIKeys != "" {
		cfg = applyOption(cfg, WithMemberAPIKeys(ParseAPIKeys(e.MemberAPIKeys)))
	}
	if e.CORSAllowedOrigins != "" {
		cfg = applyOption(cfg, WithAllowedOrigins(splitList(e.CORSAllowedOrigins)))
	}
	cfg = applyOption(cfg, WithSeedOnStart(e.SeedOnStart))

	if e.AIEndpoint.IsConfigured() {
		cfg = applyOption(cfg, WithAIEndpoint(e.AIEndpoint.ToEndpoint()))
	}
	if e.EmbeddingEndpoint.IsConfigured() {
		cfg = applyOption(cfg, WithEmbeddingEndpoint(e.EmbeddingEndpoint.ToEndpoint()))
	}

	cfg = applyOption(cfg, WithAICacheConfig(e.AICache.ToAICacheConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// IsConfigured returns true if the endpoint has a model configured.
func (e EndpointEnv) IsConfigured() bool {
	return e.Model != ""
}

// ToEndpoint converts EndpointEnv to Endpoint.
func (e EndpointEnv) ToEndpoint() Endpoint {
	opts := []EndpointOption{
		WithModel(e.Model),
		WithTimeout(seconds(e.Timeout)),
		WithMaxRetries(e.MaxRetries),
		WithInitialDelay(seconds(e.InitialDelay)),
		WithBackoffFactor(e.BackoffFactor),
		WithMaxTokens(e.MaxTokens),
		WithRequestsPerSecond(e.RequestsPerSecond),
	}

	if e.BaseURL != "" {
		opts = append(opts, WithBaseURL(e.BaseURL))
	}
	if e.APIKey != "" {
		opts = append(opts, WithAPIKey(e.APIKey))
	}

	return NewEndpointWithOptions(opts...)
}

// ToAICacheConfig converts AICacheEnv to AICacheConfig.
func (a AICacheEnv) ToAICacheConfig() AICacheConfig {
	return NewAICacheConfig().
		WithSize(a.Size).
		WithTTL(seconds(a.TTLSeconds))
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
