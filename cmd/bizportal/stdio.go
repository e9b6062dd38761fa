package main

import (
	"log/slog"
	"os"

	"github.com/chamberhub/bizportal/internal/log"
	"github.com/chamberhub/bizportal/internal/mcp"
	"github.com/spf13/cobra"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants search the chamber service directory and match
business needs to services. Configuration is loaded from environment
variables and .env file. Logs are written to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol.
	slogger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel()).Slog()

	slogger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	client, err := openClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	return mcp.NewServer(client.Directory, client.Assistant, version, slogger).ServeStdio()
}
