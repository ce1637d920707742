package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/cleanup"
)

var (
	cleanupAssumeYes bool
	cleanupDryRun    bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Apply the retention policy to stored backups",
	Long: `Lists all storage locations, computes which backups the month-based
retention policy keeps (current month: all, previous month: every 7th once
there are at least 7, older months: the earliest only) and deletes the rest
after confirmation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return doCleanup(cmd.Context(), cfg, cleanup.Options{
			AssumeYes: cleanupAssumeYes,
			DryRun:    cleanupDryRun,
		})
	},
}

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupAssumeYes, "yes", "y", false, "Delete without asking for confirmation")
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", false, "Only print the report, delete nothing")
	rootCmd.AddCommand(cleanupCmd)
}
