package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chamberhub/bizportal/infrastructure/api"
	"github.com/chamberhub/bizportal/internal/config"
	"github.com/chamberhub/bizportal/internal/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
		seed    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: .bizportal)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/portal.db)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  STAFF_API_KEYS               Comma-separated keys granting the staff role
  MEMBER_API_KEYS              Comma-separated keys granting the member role
  CORS_ALLOWED_ORIGINS         Comma-separated browser origins (default: *)
  SEED_ON_START                Load demo services and applications (default: false)

  AI_ENDPOINT_*                Text generation service configuration
    BASE_URL                   Base URL (e.g., https://api.openai.com/v1)
    MODEL                      Model identifier
    API_KEY                    API key for authentication
    TIMEOUT                    Request timeout in seconds (default: 60)
    MAX_RETRIES                Retry attempts (default: 3)
    MAX_TOKENS                 Completion token limit (default: 800)
    REQUESTS_PER_SECOND        Client-side rate limit (default: 5)

  EMBEDDING_ENDPOINT_*         Embedding service used by service matching
    (same fields as AI_ENDPOINT)

  AI_CACHE_SIZE                Cached AI responses (default: 256, 0 disables)
  AI_CACHE_TTL_SECONDS         Cached response lifetime (default: 600)

When neither STAFF_API_KEYS nor MEMBER_API_KEYS is set every caller is treated as staff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port, seed)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Load demo data before serving")

	return cmd
}

func runServe(envFile, host string, port int, seed bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port, seed)

	slogger := log.Configure(cfg).Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting bizportal", attrs...)

	client, err := openClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	server, err := api.NewAPIServer(client, api.AccessFromConfig(cfg), version)
	if err != nil {
		return fmt.Errorf("create api server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe(cfg.Addr())
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errs
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int, seed bool) config.AppConfig {
	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	if seed {
		opts = append(opts, config.WithSeedOnStart(true))
	}
	return cfg.Apply(opts...)
}
