package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/bookmarks"
)

var bookmarksOutput string

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks [plist-file]",
	Short: "Export Safari bookmarks to a markdown note",
	Long: `Reads the Safari bookmarks plist (converted to JSON via plutil) and
writes a markdown note with one section per bookmark folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		plistPath := ""
		if len(args) == 1 {
			plistPath = args[0]
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			plistPath = filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
		}

		extractor := bookmarks.NewExtractor(exec.NewExec())
		items, err := extractor.Extract(ctx, plistPath)
		if err != nil {
			return err
		}

		rendered := bookmarks.RenderMarkdown(items)
		if err := os.WriteFile(bookmarksOutput, []byte(rendered), 0644); err != nil {
			return err
		}

		slog.InfoContext(ctx, "Bookmarks exported", "count", len(items), "output", bookmarksOutput)
		return nil
	},
}

func init() {
	bookmarksCmd.Flags().StringVarP(&bookmarksOutput, "output", "o", "Bookmarks.md", "Output markdown file")
	rootCmd.AddCommand(bookmarksCmd)
}
