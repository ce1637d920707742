package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/backup"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups stored in each location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		stores, err := buildStores(ctx, cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		for _, store := range stores {
			keys, err := store.List(ctx)
			if err != nil {
				return fmt.Errorf("listing %s: %w", store.Name(), err)
			}

			names := store.TrimPrefix(keys)
			sort.Strings(names)
			for _, name := range names {
				month := ""
				if parsed, pErr := backup.ParseName(name); pErr == nil {
					month = parsed.YearMonth()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", store.Name(), month, name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
