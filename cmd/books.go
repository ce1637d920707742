package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/books"
)

var booksDelimiter string

var booksCmd = &cobra.Command{
	Use:   "books <csv-file> <output-dir>",
	Short: "Convert a Book Track CSV export to markdown notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		count, err := books.Convert(ctx, args[0], args[1], books.ParseDelimiter(booksDelimiter))
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Book notes written", "count", count, "output", args[1])
		return nil
	},
}

func init() {
	booksCmd.Flags().StringVarP(&booksDelimiter, "delimiter", "d", string(books.DefaultDelimiter), "CSV field delimiter")
	rootCmd.AddCommand(booksCmd)
}
