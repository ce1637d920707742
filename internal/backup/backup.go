// Package backup creates encrypted Zettelkasten backup archives and uploads
// them to the configured storage locations.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibare/GoCommon/v2/pkg/file"
	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/zettelkit/zettelkit/internal/config"
	"github.com/zettelkit/zettelkit/internal/constants"
	"github.com/zettelkit/zettelkit/internal/storage"
)

// BackuperIface defines the interface for backup operations.
// revive:disable-next-line exported
type BackuperIface interface {
	CreateBackup(ctx context.Context) (*BackupResponse, error)
}

// BackupResponse holds information about a completed backup.
// revive:disable-next-line exported
type BackupResponse struct {
	ArtifactName string
	StorageKeys  map[string]string
}

// Backuper archives the vault, encrypts the archive with age and uploads the
// artifact to every configured storage location.
type Backuper struct {
	stores  []storage.StorageIface
	cfg     *config.Config
	exec    exec.ExecIface
	workDir string
}

func (b *Backuper) runPreChecks() error {
	if b.cfg.Vault.Dir == "" {
		return errors.New("vault directory is not configured")
	}
	info, err := os.Stat(b.cfg.Vault.Dir)
	if err != nil {
		return fmt.Errorf("vault directory %s: %w", b.cfg.Vault.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path %s is not a directory", b.cfg.Vault.Dir)
	}

	if b.cfg.Backup.AgeRecipient == "" {
		return errors.New("no age recipient configured")
	}
	if _, err := b.exec.LookPath("age"); err != nil {
		return fmt.Errorf("age not found in PATH: %w", err)
	}

	// Fresh scratch directory per run
	if err := os.RemoveAll(b.workDir); err != nil {
		return err
	}
	return os.MkdirAll(b.workDir, 0750)
}

func (b *Backuper) encrypt(ctx context.Context, plainPath string) (string, error) {
	encryptedPath := plainPath + ".age"

	slog.DebugContext(ctx, "Encrypting archive", "file", plainPath, "recipient", b.cfg.Backup.AgeRecipient)
	out, err := b.exec.Command(ctx, "age", "-r", b.cfg.Backup.AgeRecipient, "-o", encryptedPath, plainPath).
		WithDir(b.workDir).
		CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("age encryption failed: %w: %s", err, string(out))
	}
	return encryptedPath, nil
}

// CreateBackup archives the vault directory, encrypts it and uploads the
// artifact to all storage locations. It fails if any location refuses the
// upload; a backup that silently landed in only one place is how the last
// copy gets lost later.
func (b *Backuper) CreateBackup(ctx context.Context) (*BackupResponse, error) {
	if err := b.runPreChecks(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Archiving vault", "dir", b.cfg.Vault.Dir)
	archiveResp, err := file.ArchiveDir(b.cfg.Vault.Dir, nil)
	if err != nil {
		return nil, fmt.Errorf("archiving vault: %w", err)
	}

	timestamp := time.Now().UTC()
	plainName := constants.BackupPrefix + timestamp.Format(constants.BackupTimeLayout) + ".tar.gz"
	plainPath := filepath.Join(b.workDir, plainName)
	if err := os.Rename(archiveResp.ArchivePath, plainPath); err != nil {
		return nil, fmt.Errorf("staging archive: %w", err)
	}

	// The name contract every other component parses requires the .age
	// suffix, so an unencrypted artifact would never be listed or pruned.
	uploadPath, err := b.encrypt(ctx, plainPath)
	if err != nil {
		return nil, err
	}

	resp := &BackupResponse{
		ArtifactName: filepath.Base(uploadPath),
		StorageKeys:  map[string]string{},
	}

	for _, store := range b.stores {
		slog.InfoContext(ctx, "Uploading backup", "file", uploadPath, "storage", store.Name())
		key, uErr := store.Upload(ctx, uploadPath)
		if uErr != nil {
			return nil, fmt.Errorf("uploading to %s: %w", store.Name(), uErr)
		}
		slog.InfoContext(ctx, "Backup uploaded", "storage", store.Name(), "key", key)
		resp.StorageKeys[store.Name()] = key
	}

	return resp, nil
}

// NewBackuper creates a new Backuper for the given storage locations.
func NewBackuper(cfg *config.Config, stores []storage.StorageIface, exec exec.ExecIface) *Backuper {
	return &Backuper{
		stores:  stores,
		cfg:     cfg,
		exec:    exec,
		workDir: filepath.Join(os.TempDir(), constants.WorkDir),
	}
}
