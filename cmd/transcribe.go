package cmd

import (
	"log/slog"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/spf13/cobra"
	"github.com/zettelkit/zettelkit/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio recording to an SRT file",
	Long: `Converts the recording to 16 kHz mono WAV with ffmpeg and runs
whisper.cpp on it. The SRT file is written next to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		transcriber := transcribe.NewTranscriber(cfg, exec.NewExec())
		srtPath, err := transcriber.Transcribe(ctx, args[0])
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Transcription complete", "output", srtPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
}
