package cmd

import (
	"log/slog"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/diarize"
)

var diarizeCmd = &cobra.Command{
	Use:   "diarize <wav-file>",
	Short: "Detect speaker segments in a recording",
	Long: `Runs the configured diarization tool on the recording and writes the
speaker segments to a .diarization.txt file next to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		diarizer := diarize.NewDiarizer(cfg, exec.NewExec())
		outPath, err := diarizer.Diarize(ctx, args[0])
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Diarization complete", "output", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diarizeCmd)
}
