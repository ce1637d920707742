// Package transcribe converts audio recordings into SRT transcripts by
// orchestrating ffmpeg and whisper.cpp.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/zettelkit/zettelkit/internal/config"
)

// TranscriberIface defines the interface for transcription operations.
// revive:disable-next-line exported
type TranscriberIface interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Transcriber runs the ffmpeg + whisper.cpp pipeline.
type Transcriber struct {
	cfg  *config.Config
	exec exec.ExecIface
}

func (t *Transcriber) runPreChecks(audioPath string) error {
	if _, err := os.Stat(audioPath); err != nil {
		return fmt.Errorf("audio file %s: %w", audioPath, err)
	}
	if t.cfg.Transcribe.ModelPath == "" {
		return fmt.Errorf("whisper model path is not configured")
	}

	for _, bin := range []string{"ffmpeg", t.cfg.Transcribe.WhisperBin} {
		if _, err := t.exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", bin, err)
		}
	}
	return nil
}

// convert extracts a 16 kHz mono PCM WAV, the input format whisper.cpp
// expects.
func (t *Transcriber) convert(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".tmp.wav"

	args := []string{
		"-i", audioPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	slog.InfoContext(ctx, "Converting audio", "file", audioPath)
	out, err := t.exec.Command(ctx, "ffmpeg", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg conversion failed: %w: %s", err, string(out))
	}
	return wavPath, nil
}

func (t *Transcriber) whisper(ctx context.Context, wavPath, outputPrefix string) error {
	args := []string{
		"-m", t.cfg.Transcribe.ModelPath,
		"-f", wavPath,
		"-osrt",
		"-l", t.cfg.Transcribe.Language,
		"-t", strconv.Itoa(t.cfg.Transcribe.Threads),
		"--output-file", outputPrefix,
	}

	slog.InfoContext(ctx, "Transcribing", "file", wavPath, "language", t.cfg.Transcribe.Language, "threads", t.cfg.Transcribe.Threads)
	out, err := t.exec.Command(ctx, t.cfg.Transcribe.WhisperBin, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("whisper transcription failed: %w: %s", err, string(out))
	}
	return nil
}

// Transcribe converts the audio file and produces an SRT transcript next to
// it. Returns the path of the transcript.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := t.runPreChecks(audioPath); err != nil {
		return "", err
	}

	wavPath, err := t.convert(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if rErr := os.Remove(wavPath); rErr != nil && !os.IsNotExist(rErr) {
			slog.WarnContext(ctx, "Failed to remove temp audio", "file", wavPath, "error", rErr)
		}
	}()

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	if err := t.whisper(ctx, wavPath, outputPrefix); err != nil {
		return "", err
	}

	srtPath := outputPrefix + ".srt"
	slog.InfoContext(ctx, "Transcription complete", "file", srtPath)
	return srtPath, nil
}

// NewTranscriber creates a new Transcriber with the provided configuration
// and executor.
func NewTranscriber(cfg *config.Config, exec exec.ExecIface) *Transcriber {
	return &Transcriber{cfg: cfg, exec: exec}
}
