package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/cleanup"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run backups on a cron schedule",
	Long: `Runs in the foreground and triggers a backup on the configured cron
expression. When backup.cleanup_on_schedule is set, a non-interactive cleanup
follows each successful backup.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s := gocron.NewScheduler(time.Local)
		_, err := s.Cron(cfg.Backup.Schedule).Do(func() {
			runScheduled(ctx)
		})
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Scheduler started", "schedule", cfg.Backup.Schedule)
		s.StartBlocking()
		return nil
	},
}

func runScheduled(ctx context.Context) {
	if err := doBackup(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "Scheduled backup failed", "error", err)
		return
	}

	if !cfg.Backup.CleanupOnSchedule {
		return
	}

	if err := doCleanup(ctx, cfg, cleanup.Options{AssumeYes: true}); err != nil {
		slog.ErrorContext(ctx, "Scheduled cleanup failed", "error", err)
	}
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
