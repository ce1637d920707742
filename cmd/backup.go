package cmd

import (
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive, encrypt and upload the vault to all storage locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return doBackup(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
