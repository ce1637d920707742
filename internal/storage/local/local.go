// Package local implements the storage interface for a local directory.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zettelkit/zettelkit/internal/config"
)

// Local stores backup artifacts as plain files in a directory, typically a
// mounted sync folder or an external disk.
type Local struct {
	cfg *config.Config
}

// Init verifies the configured directory exists. A missing directory is a
// missing prerequisite, not something to create silently: it usually means
// the backup disk is not mounted.
func (l *Local) Init(_ context.Context) error {
	dir := l.cfg.Storage.Local.Dir
	if dir == "" {
		return fmt.Errorf("local storage directory is not configured")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("local storage directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local storage path %s is not a directory", dir)
	}
	return nil
}

// Name returns the name of the storage location.
func (l *Local) Name() string {
	return fmt.Sprintf("local (%s)", l.cfg.Storage.Local.Dir)
}

// Upload copies a local file into the storage directory and returns its key.
func (l *Local) Upload(_ context.Context, localPath string) (string, error) {
	src, err := os.Open(localPath) // #nosec G304 -- path is produced by the backup pipeline
	if err != nil {
		return "", err
	}
	defer src.Close() //nolint:errcheck

	key := filepath.Base(localPath)
	dstPath := filepath.Join(l.cfg.Storage.Local.Dir, key)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return key, nil
}

// List returns the file names present in the storage directory.
func (l *Local) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.cfg.Storage.Local.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.Name(), err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, entry.Name())
	}
	return keys, nil
}

// Delete removes the named backup from the storage directory. A file that is
// not present in this location is not an error.
func (l *Local) Delete(_ context.Context, name string) error {
	path := filepath.Join(l.cfg.Storage.Local.Dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TrimPrefix is a no-op for local storage; keys are plain file names.
func (l *Local) TrimPrefix(keys []string) []string {
	return keys
}

// NewLocalStorage creates a new local directory storage location.
func NewLocalStorage(cfg *config.Config) *Local {
	return &Local{cfg: cfg}
}
