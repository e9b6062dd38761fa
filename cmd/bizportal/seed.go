package main

import (
	"context"
	"fmt"

	"github.com/chamberhub/bizportal/internal/log"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo services and applications",
		Long: `Load the bundled service directory and demo applications into the database.

Services are upserted on every run. Demo applications are only written when the
applications table is empty, so running seed twice is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			slogger := log.Configure(cfg).Slog()

			client, err := openClient(cfg, slogger)
			if err != nil {
				return err
			}
			defer closeClient(client, slogger)

			report, err := client.Maintenance.Seed(context.Background())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "services upserted:    %d\n", report.Services)
			if report.ApplicationsSkipped {
				_, _ = fmt.Fprintln(out, "applications:         skipped (table not empty)")
				return nil
			}
			_, _ = fmt.Fprintf(out, "applications created: %d\n", report.Applications)
			_, _ = fmt.Fprintf(out, "certificates issued:  %d\n", report.Certificates)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}
