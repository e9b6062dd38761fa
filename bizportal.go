// Package bizportal is the backend of a bilingual chamber-of-commerce
// business portal: a service directory, the ESG, Knowledge-Sharing and
// Chamber Boost application workflow, the staff review console, AI helpers
// and member-only content hubs.
//
// Basic usage:
//
//	client, err := bizportal.New(
//	    bizportal.WithSQLite(".bizportal/portal.db"),
//	    bizportal.WithSeed(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	services, err := client.Directory.List(ctx, service.DirectoryFilter{Query: "membership"})
package bizportal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/infrastructure/persistence"
	"github.com/chamberhub/bizportal/infrastructure/provider"
	"github.com/chamberhub/bizportal/infrastructure/seed"
	"github.com/chamberhub/bizportal/internal/config"
	"github.com/chamberhub/bizportal/internal/database"
)

// Client is the main entry point of the portal backend.
//
// Access use cases via struct fields:
//
//	client.Directory.List(ctx, filter)
//	client.Applications.Submit(ctx, params)
//	client.Review.ChangeStatus(ctx, id, application.StatusApproved, "Reviewer", "")
type Client struct {
	Directory    *service.Directory
	Applications *service.Applications
	Review       *service.Review
	Assistant    *service.Assistant
	Catalog      *service.Catalog
	Maintenance  *service.Maintenance

	db      database.Database
	closers []io.Closer
	logger  *slog.Logger
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	if path, ok := strings.CutPrefix(cfg.dbURL, "sqlite:///"); ok {
		if _, err := config.PrepareDataDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}
	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	content := cfg.content
	if content == nil {
		bundled, err := seed.Catalog()
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("load catalog: %w", err), errClose)
		}
		content = &bundled
	}

	services := persistence.NewServiceStore(db)
	apps := persistence.NewApplicationStore(db)
	notes := persistence.NewNoteStore(db)
	certificates := persistence.NewCertificateStore(db)
	tx := persistence.NewTransactor(db)

	text, embedder := buildProviders(cfg, logger)

	client := &Client{
		db:      db,
		closers: cfg.closers,
		logger:  logger,
	}
	client.Directory = service.NewDirectory(services, logger)
	client.Applications = service.NewApplications(apps, notes, certificates, services, tx, logger)
	client.Review = service.NewReview(client.Applications, apps, notes, certificates, tx, logger)
	client.Assistant = service.NewAssistant(text, embedder, client.Applications, client.Directory, logger)
	client.Catalog = service.NewCatalog(*content, logger)
	client.Maintenance = service.NewMaintenance(services, apps, notes, certificates, tx, logger)

	if cfg.seed {
		report, err := client.Maintenance.Seed(ctx)
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("seed: %w", err), errClose)
		}
		logger.Info("demo data loaded",
			slog.Int("services", report.Services),
			slog.Int("applications", report.Applications),
			slog.Bool("applications_skipped", report.ApplicationsSkipped),
		)
	}

	return client, nil
}

// buildProviders picks explicit providers first, then configured endpoints.
// A nil result leaves the matching assistant feature disabled.
func buildProviders(cfg *clientConfig, logger *slog.Logger) (provider.TextGenerator, provider.Embedder) {
	var text provider.TextGenerator
	switch {
	case cfg.textProvider != nil:
		text = cfg.textProvider
	case cfg.aiEndpoint != nil && cfg.aiEndpoint.IsConfigured():
		inner := provider.NewOpenAIProviderFromEndpoint(*cfg.aiEndpoint)
		text = provider.NewCachedTextGenerator(inner, cfg.aiCache, cfg.aiEndpoint.RequestsPerSecond())
		logger.Info("AI text provider enabled", slog.String("model", inner.Model()))
	}

	var embedder provider.Embedder
	switch {
	case cfg.embeddingProvider != nil:
		embedder = cfg.embeddingProvider
	case cfg.embeddingEndpoint != nil && cfg.embeddingEndpoint.IsConfigured():
		inner := provider.NewOpenAIProviderFromEndpoint(*cfg.embeddingEndpoint)
		embedder = provider.NewCachedEmbedder(inner, cfg.aiCache, cfg.embeddingEndpoint.RequestsPerSecond())
		logger.Info("embedding provider enabled", slog.String("model", inner.Model()))
	}
	return text, embedder
}

// Close releases the database and any registered resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.logger.Error("failed to close resource", slog.Any("error", err))
		}
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("bizportal client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
