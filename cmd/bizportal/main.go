// Package main is the entry point for the bizportal CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bizportal",
		Short: "Chamber of commerce business portal backend",
		Long: `bizportal serves the bilingual chamber of commerce business portal: the service
directory, ESG, Knowledge-Sharing and Chamber Boost applications, the staff review
console, AI helpers and the member hubs.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(seedCmd())
	cmd.AddCommand(cleanupCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openClient prepares the data directory and opens a portal client.
func openClient(cfg config.AppConfig, logger *slog.Logger, opts ...bizportal.Option) (*bizportal.Client, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	all := append([]bizportal.Option{
		bizportal.WithConfig(cfg),
		bizportal.WithLogger(logger),
	}, opts...)

	client, err := bizportal.New(all...)
	if err != nil {
		return nil, fmt.Errorf("create portal client: %w", err)
	}
	return client, nil
}

func closeClient(client *bizportal.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close portal client", slog.Any("error", err))
	}
}
