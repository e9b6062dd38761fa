// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost                  = "0.0.0.0"
	DefaultPort                  = 8080
	DefaultLogLevel              = "INFO"
	DefaultDatabaseFile          = "bizportal.db"
	DefaultEndpointTimeout       = 60 * time.Second
	DefaultEndpointMaxRetries    = 3
	DefaultEndpointInitialDelay  = 1 * time.Second
	DefaultEndpointBackoffFactor = 2.0
	DefaultEndpointMaxTokens     = 800
	DefaultEndpointRPS           = 5.0
	DefaultAICacheSize           = 256
	DefaultAICacheTTL            = 10 * time.Minute
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AICacheConfig configures the in-memory cache placed in front of AI calls.
type AICacheConfig struct {
	size int
	ttl  time.Duration
}

// NewAICacheConfig creates a new AICacheConfig with defaults.
func NewAICacheConfig() AICacheConfig {
	return AICacheConfig{
		size: DefaultAICacheSize,
		ttl:  DefaultAICacheTTL,
	}
}

// Size returns the maximum number of cached responses. Zero disables caching.
func (c AICacheConfig) Size() int { return c.size }

// TTL returns how long a cached response stays valid.
func (c AICacheConfig) TTL() time.Duration { return c.ttl }

// Enabled reports whether caching is enabled.
func (c AICacheConfig) Enabled() bool { return c.size > 0 }

// WithSize returns a new config with the specified size.
func (c AICacheConfig) WithSize(n int) AICacheConfig {
	c.size = n
	return c
}

// WithTTL returns a new config with the specified TTL.
func (c AICacheConfig) WithTTL(d time.Duration) AICacheConfig {
	c.ttl = d
	return c
}

// Endpoint configures an AI service endpoint.
type Endpoint struct {
	baseURL           string
	model             string
	apiKey            string
	timeout           time.Duration
	maxRetries        int
	initialDelay      time.Duration
	backoffFactor     float64
	maxTokens         int
	requestsPerSecond float64
}

// NewEndpoint creates a new Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		timeout:           DefaultEndpointTimeout,
		maxRetries:        DefaultEndpointMaxRetries,
		initialDelay:      DefaultEndpointInitialDelay,
		backoffFactor:     DefaultEndpointBackoffFactor,
		maxTokens:         DefaultEndpointMaxTokens,
		requestsPerSecond: DefaultEndpointRPS,
	}
}

// BaseURL returns the base URL for the endpoint.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// MaxTokens returns the maximum completion token limit.
func (e Endpoint) MaxTokens() int { return e.maxTokens }

// RequestsPerSecond returns the upstream rate limit. Zero means unlimited.
func (e Endpoint) RequestsPerSecond() float64 { return e.requestsPerSecond }

// IsConfigured returns true if the endpoint has required configuration.
func (e Endpoint) IsConfigured() bool {
	return e.model != ""
}

// EndpointOption is a functional option for Endpoint.
type EndpointOption func(*Endpoint)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) EndpointOption {
	return func(e *Endpoint) { e.baseURL = url }
}

// WithModel sets the model.
func WithModel(model string) EndpointOption {
	return func(e *Endpoint) { e.model = model }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EndpointOption {
	return func(e *Endpoint) { e.apiKey = key }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.timeout = d }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) EndpointOption {
	return func(e *Endpoint) { e.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.initialDelay = d }
}

// WithBackoffFactor sets the retry backoff multiplier.
func WithBackoffFactor(f float64) EndpointOption {
	return func(e *Endpoint) { e.backoffFactor = f }
}

// WithMaxTokens sets the maximum completion token limit.
func WithMaxTokens(n int) EndpointOption {
	return func(e *Endpoint) { e.maxTokens = n }
}

// WithRequestsPerSecond sets the upstream rate limit.
func WithRequestsPerSecond(rps float64) EndpointOption {
	return func(e *Endpoint) { e.requestsPerSecond = rps }
}

// NewEndpointWithOptions creates an Endpoint with functional options.
func NewEndpointWithOptions(opts ...EndpointOption) Endpoint {
	e := NewEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host              string
	port              int
	dataDir           string
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	staffAPIKeys      []string
	memberAPIKeys     []string
	allowedOrigins    []string
	seedOnStart       bool
	aiEndpoint        *Endpoint
	embeddingEndpoint *Endpoint
	aiCache           AICacheConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bizportal"
	}
	return filepath.Join(home, ".bizportal")
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		dataDir:        dataDir,
		dbURL:          "sqlite:///" + filepath.Join(dataDir, DefaultDatabaseFile),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		staffAPIKeys:   []string{},
		memberAPIKeys:  []string{},
		allowedOrigins: []string{},
		aiCache:        NewAICacheConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// StaffAPIKeys returns a copy of the keys granting the staff role.
func (c AppConfig) StaffAPIKeys() []string {
	return append([]string(nil), c.staffAPIKeys...)
}

// MemberAPIKeys returns a copy of the keys granting the member role.
func (c AppConfig) MemberAPIKeys() []string {
	return append([]string(nil), c.memberAPIKeys...)
}

// AllowedOrigins returns the CORS origins. Empty means any origin.
func (c AppConfig) AllowedOrigins() []string {
	return append([]string(nil), c.allowedOrigins...)
}

// SeedOnStart reports whether demo data is loaded when the server starts.
func (c AppConfig) SeedOnStart() bool { return c.seedOnStart }

// AIEndpoint returns the text-completion endpoint, or nil.
func (c AppConfig) AIEndpoint() *Endpoint { return c.aiEndpoint }

// EmbeddingEndpoint returns the embedding endpoint, or nil.
func (c AppConfig) EmbeddingEndpoint() *Endpoint { return c.embeddingEndpoint }

// AICache returns the AI response cache configuration.
func (c AppConfig) AICache() AICacheConfig { return c.aiCache }

// AuthEnabled reports whether any API key is configured.
func (c AppConfig) AuthEnabled() bool {
	return len(c.staffAPIKeys) > 0 || len(c.memberAPIKeys) > 0
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDatabaseFile) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDatabaseFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithStaffAPIKeys sets the staff API keys.
func WithStaffAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) { c.staffAPIKeys = append([]string{}, keys...) }
}

// WithMemberAPIKeys sets the member API keys.
func WithMemberAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) { c.memberAPIKeys = append([]string{}, keys...) }
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) { c.allowedOrigins = append([]string{}, origins...) }
}

// WithSeedOnStart sets whether demo data is loaded at startup.
func WithSeedOnStart(seed bool) AppConfigOption {
	return func(c *AppConfig) { c.seedOnStart = seed }
}

// WithAIEndpoint sets the text-completion endpoint.
func WithAIEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.aiEndpoint = &e }
}

// WithEmbeddingEndpoint sets the embedding endpoint.
func WithEmbeddingEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.embeddingEndpoint = &e }
}

// WithAICacheConfig sets the AI cache config.
func WithAICacheConfig(a AICacheConfig) AppConfigOption {
	return func(c *AppConfig) { c.aiCache = a }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Sensitive values like API keys are masked or shown as counts.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("ai_base_url", c.endpointBaseURL(c.aiEndpoint)),
		slog.String("ai_model", c.endpointModel(c.aiEndpoint)),
		slog.String("embedding_base_url", c.endpointBaseURL(c.embeddingEndpoint)),
		slog.String("embedding_model", c.endpointModel(c.embeddingEndpoint)),
		slog.Int("staff_keys_count", len(c.staffAPIKeys)),
		slog.Int("member_keys_count", len(c.memberAPIKeys)),
		slog.Int("ai_cache_size", c.aiCache.Size()),
		slog.Bool("seed_on_start", c.seedOnStart),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

func (c AppConfig) endpointBaseURL(e *Endpoint) string {
	if e == nil {
		return "(not configured)"
	}
	if e.BaseURL() == "" {
		return "(provider default)"
	}
	return e.BaseURL()
}

func (c AppConfig) endpointModel(e *Endpoint) string {
	if e == nil {
		return "(not configured)"
	}
	return e.Model()
}

// ParseAPIKeys parses a comma-separated string of API keys.
func ParseAPIKeys(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
