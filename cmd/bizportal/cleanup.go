package main

import (
	"context"
	"fmt"

	"github.com/chamberhub/bizportal/internal/log"
	"github.com/spf13/cobra"
)

func cleanupCmd() *cobra.Command {
	var (
		envFile string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup-ks-orphans",
		Short: "Remove Knowledge-Sharing applications without session details",
		Long: `Find KNOWLEDGE_SHARING applications whose session details row is missing and
delete them together with their notes.

Use --dry-run to list the affected application IDs without deleting anything.`,
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

			report, err := client.Maintenance.CleanupKnowledgeSharingOrphans(context.Background(), dryRun)
			if err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(report.ApplicationIDs) == 0 {
				_, _ = fmt.Fprintln(out, "no orphaned knowledge-sharing applications found")
				return nil
			}
			for _, id := range report.ApplicationIDs {
				_, _ = fmt.Fprintln(out, id)
			}
			if report.DryRun {
				_, _ = fmt.Fprintf(out, "%d orphaned applications found (dry run, nothing deleted)\n", len(report.ApplicationIDs))
				return nil
			}
			_, _ = fmt.Fprintf(out, "deleted %d applications and %d notes\n", report.ApplicationsDeleted, report.NotesDeleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List orphans without deleting them")

	return cmd
}
