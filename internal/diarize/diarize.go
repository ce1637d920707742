// Package diarize runs the external speaker-diarization CLI and captures its
// segment output.
package diarize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/zettelkit/zettelkit/internal/config"
)

// DiarizerIface defines the interface for diarization operations.
// revive:disable-next-line exported
type DiarizerIface interface {
	Diarize(ctx context.Context, wavPath string) (string, error)
}

// Diarizer shells out to the configured diarization tool. The tool prints
// one segment per line on stdout, "0.000s - 3.142s: SPEAKER_01"; device and
// progress chatter goes to stderr and is passed through.
type Diarizer struct {
	cfg  *config.Config
	exec exec.ExecIface
}

func (d *Diarizer) runPreChecks(wavPath string) error {
	if _, err := os.Stat(wavPath); err != nil {
		return fmt.Errorf("audio file %s: %w", wavPath, err)
	}
	if _, err := d.exec.LookPath(d.cfg.Diarize.Bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", d.cfg.Diarize.Bin, err)
	}
	return nil
}

// Diarize runs diarization on a WAV file and writes the segments to
// <input>.diarization.txt, returning that path.
func (d *Diarizer) Diarize(ctx context.Context, wavPath string) (string, error) {
	if err := d.runPreChecks(wavPath); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Running diarization", "file", wavPath, "tool", d.cfg.Diarize.Bin)
	output, err := d.exec.Command(ctx, d.cfg.Diarize.Bin, wavPath).
		WithStderr(os.Stderr).
		Output()
	if err != nil {
		return "", fmt.Errorf("diarization failed: %w", err)
	}

	outPath := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".diarization.txt"
	if err := os.WriteFile(outPath, output, 0600); err != nil {
		return "", fmt.Errorf("writing segments: %w", err)
	}

	slog.InfoContext(ctx, "Diarization complete", "file", outPath)
	return outPath, nil
}

// NewDiarizer creates a new Diarizer with the provided configuration and
// executor.
func NewDiarizer(cfg *config.Config, exec exec.ExecIface) *Diarizer {
	return &Diarizer{cfg: cfg, exec: exec}
}
