package bizportal

import (
	"io"
	"log/slog"

	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/infrastructure/provider"
	"github.com/chamberhub/bizportal/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL             string
	dataDir           string
	textProvider      provider.TextGenerator
	embeddingProvider provider.Embedder
	aiEndpoint        *config.Endpoint
	embeddingEndpoint *config.Endpoint
	aiCache           config.AICacheConfig
	content           *catalog.Catalog
	seed              bool
	logger            *slog.Logger
	closers           []io.Closer
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
		aiCache: config.NewAICacheConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores portal data in the SQLite file at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres stores portal data in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL sets the database from a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithTextProvider sets the text-completion provider used by the assistant.
// The provider is used as given, without caching.
func WithTextProvider(p provider.TextGenerator) Option {
	return func(c *clientConfig) {
		c.textProvider = p
	}
}

// WithEmbeddingProvider sets the embedding provider used for service matching.
func WithEmbeddingProvider(p provider.Embedder) Option {
	return func(c *clientConfig) {
		c.embeddingProvider = p
	}
}

// WithAIEndpoint builds an OpenAI-compatible text provider for the endpoint,
// wrapped in the response cache and rate limiter.
func WithAIEndpoint(e config.Endpoint) Option {
	return func(c *clientConfig) {
		c.aiEndpoint = &e
	}
}

// WithEmbeddingEndpoint builds an OpenAI-compatible embedding provider for
// the endpoint, wrapped in the response cache and rate limiter.
func WithEmbeddingEndpoint(e config.Endpoint) Option {
	return func(c *clientConfig) {
		c.embeddingEndpoint = &e
	}
}

// WithAICache configures the cache placed in front of endpoint providers.
func WithAICache(cfg config.AICacheConfig) Option {
	return func(c *clientConfig) {
		c.aiCache = cfg
	}
}

// WithCatalog replaces the bundled member hub content.
func WithCatalog(content catalog.Catalog) Option {
	return func(c *clientConfig) {
		c.content = &content
	}
}

// WithSeed loads the demo services and applications on start.
func WithSeed(seed bool) Option {
	return func(c *clientConfig) {
		c.seed = seed
	}
}

// WithDataDir sets the directory holding the default SQLite database.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithCloser registers a resource to be closed when the Client shuts down.
func WithCloser(closer io.Closer) Option {
	return func(c *clientConfig) {
		c.closers = append(c.closers, closer)
	}
}

// WithConfig applies an application configuration loaded from the environment.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dbURL = cfg.DBURL()
		c.dataDir = cfg.DataDir()
		c.seed = cfg.SeedOnStart()
		c.aiCache = cfg.AICache()
		if e := cfg.AIEndpoint(); e != nil && e.IsConfigured() {
			c.aiEndpoint = e
		}
		if e := cfg.EmbeddingEndpoint(); e != nil && e.IsConfigured() {
			c.embeddingEndpoint = e
		}
	}
}
