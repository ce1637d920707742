package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/transcript"
)

var mergeOutputDir string

var mergeCmd = &cobra.Command{
	Use:   "merge <diarization-file> <srt-file> <date> <name>",
	Short: "Merge a transcript and speaker segments into a markdown note",
	Long: `Assigns each caption of the SRT transcript to the speaker segment it
overlaps most and writes the result as a markdown note named
"<date> <name>.md" with one "[[SPEAKER]]: text" line per turn.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		diarizationPath, srtPath, date, name := args[0], args[1], args[2], args[3]

		diarizationFile, err := os.Open(diarizationPath)
		if err != nil {
			return err
		}
		defer diarizationFile.Close()

		segments, err := transcript.ParseSegments(diarizationFile)
		if err != nil {
			return err
		}

		srtFile, err := os.Open(srtPath)
		if err != nil {
			return err
		}
		defer srtFile.Close()

		captions, err := transcript.ParseSRT(srtFile)
		if err != nil {
			return err
		}

		lines := transcript.Merge(segments, captions)
		notePath := filepath.Join(mergeOutputDir, transcript.NoteFilename(date, name))
		if err := os.WriteFile(notePath, []byte(transcript.RenderMarkdown(lines)), 0644); err != nil {
			return err
		}

		slog.InfoContext(ctx, "Note written", "output", notePath, "turns", len(lines))
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutputDir, "output-dir", "o", ".", "Directory to write the note into")
	rootCmd.AddCommand(mergeCmd)
}
