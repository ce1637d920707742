package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/zettelkit/zettelkit/internal/backup"
	"github.com/zettelkit/zettelkit/internal/cleanup"
	"github.com/zettelkit/zettelkit/internal/config"
	"github.com/zettelkit/zettelkit/internal/notifiers"
	"github.com/zettelkit/zettelkit/internal/prompt"
	"github.com/zettelkit/zettelkit/internal/storage"
	"github.com/zettelkit/zettelkit/internal/storage/local"
	"github.com/zettelkit/zettelkit/internal/storage/s3"
)

// buildStores assembles and initializes the enabled storage locations.
func buildStores(ctx context.Context, cfg *config.Config) ([]storage.StorageIface, error) {
	var stores []storage.StorageIface
	if cfg.Storage.Local.Enabled {
		stores = append(stores, local.NewLocalStorage(cfg))
	}
	if cfg.Storage.S3.Enabled {
		stores = append(stores, s3.NewS3Storage(cfg))
	}
	if len(stores) == 0 {
		return nil, errors.New("no storage locations enabled")
	}

	for _, store := range stores {
		if err := store.Init(ctx); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", store.Name(), err)
		}
	}
	return stores, nil
}

func buildNotifier(cfg *config.Config) (notifiers.NotifierStoreIface, error) {
	notify := notifiers.NewNotifier(cfg)
	if err := notify.InitStore(); err != nil {
		return nil, err
	}
	return notify, nil
}

func doBackup(ctx context.Context, cfg *config.Config) error {
	stores, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}

	notify, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	backuper := backup.NewBackuper(cfg, stores, exec.NewExec())

	resp, err := backuper.CreateBackup(ctx)
	if err != nil {
		if nErr := notify.NotifyBackupFailure(ctx, err); nErr != nil && !errors.Is(nErr, notifiers.ErrNotifierDisabled) {
			slog.ErrorContext(ctx, "Failed to send NotifyBackupFailure", "error", nErr)
		}
		return err
	}

	if nErr := notify.NotifyBackupSuccess(ctx, resp.ArtifactName); nErr != nil && !errors.Is(nErr, notifiers.ErrNotifierDisabled) {
		slog.ErrorContext(ctx, "Failed to send NotifyBackupSuccess", "error", nErr)
	}
	return nil
}

func doCleanup(ctx context.Context, cfg *config.Config, opts cleanup.Options) error {
	stores, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}

	notify, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	cleaner := cleanup.NewCleaner(stores, prompt.NewPrompter(), opts)

	result, err := cleaner.Run(ctx)
	if err != nil {
		if nErr := notify.NotifyCleanupFailure(ctx, err); nErr != nil && !errors.Is(nErr, notifiers.ErrNotifierDisabled) {
			slog.ErrorContext(ctx, "Failed to send NotifyCleanupFailure", "error", nErr)
		}
		return err
	}

	if result.Aborted || opts.DryRun {
		return nil
	}

	kept := len(result.Decision.Keep)
	if nErr := notify.NotifyCleanupSummary(ctx, kept, len(result.Deleted), len(result.Failures)); nErr != nil && !errors.Is(nErr, notifiers.ErrNotifierDisabled) {
		slog.ErrorContext(ctx, "Failed to send NotifyCleanupSummary", "error", nErr)
	}

	if len(result.Failures) > 0 {
		return fmt.Errorf("%d deletions failed", len(result.Failures))
	}
	return nil
}
