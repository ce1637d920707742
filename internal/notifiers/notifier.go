// Package notifiers implements notification mechanisms for backup and
// cleanup events.
package notifiers

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/zettelkit/zettelkit/internal/config"
	"github.com/zettelkit/zettelkit/internal/notifiers/discord"
)

var (
	// ErrNotifiersDisabled is returned when notifiers are globally disabled.
	ErrNotifiersDisabled = errors.New("notifiers are disabled")

	// ErrNotifierDisabled is returned when a specific notifier is disabled.
	ErrNotifierDisabled = errors.New("notifier is disabled")
)

// NotifiersIface defines the interface that all notifier implementations
// must satisfy.
// revive:disable-next-line exported
type NotifiersIface interface {
	Enabled() bool
	NotifyBackupSuccess(ctx context.Context, artifact string) error
	NotifyBackupFailure(ctx context.Context, err error) error
	NotifyCleanupSummary(ctx context.Context, kept, deleted, failed int) error
	NotifyCleanupFailure(ctx context.Context, err error) error
}

// NotifierStoreIface defines the interface for managing multiple notifiers.
type NotifierStoreIface interface {
	Enabled() bool
	NotifyBackupSuccess(ctx context.Context, artifact string) error
	NotifyBackupFailure(ctx context.Context, err error) error
	NotifyCleanupSummary(ctx context.Context, kept, deleted, failed int) error
	NotifyCleanupFailure(ctx context.Context, err error) error
	InitStore() error
}

// Notifier manages multiple notifier implementations.
type Notifier struct {
	cfg   *config.Config
	mu    sync.RWMutex
	store []NotifiersIface
}

func (n *Notifier) register(nf NotifiersIface) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.store = append(n.store, nf)
}

// Enabled checks if notifiers are globally enabled in the configuration.
func (n *Notifier) Enabled() bool {
	return n.cfg.Notifiers.Enabled
}

func (n *Notifier) each(ctx context.Context, event string, fn func(NotifiersIface) error) error {
	if !n.Enabled() {
		return ErrNotifierDisabled
	}

	for _, notifier := range n.store {
		if !notifier.Enabled() {
			slog.DebugContext(ctx, "Notifier disabled; skipping", "event", event)
			continue
		}
		if err := fn(notifier); err != nil {
			slog.ErrorContext(ctx, "Failed to send notification", "event", event, "error", err)
		}
	}

	return nil
}

// NotifyBackupSuccess sends a backup success notification using all enabled
// notifiers.
func (n *Notifier) NotifyBackupSuccess(ctx context.Context, artifact string) error {
	return n.each(ctx, "BackupSuccess", func(nf NotifiersIface) error {
		return nf.NotifyBackupSuccess(ctx, artifact)
	})
}

// NotifyBackupFailure sends a backup failure notification using all enabled
// notifiers.
func (n *Notifier) NotifyBackupFailure(ctx context.Context, nErr error) error {
	return n.each(ctx, "BackupFailure", func(nf NotifiersIface) error {
		return nf.NotifyBackupFailure(ctx, nErr)
	})
}

// NotifyCleanupSummary sends a cleanup summary notification using all
// enabled notifiers.
func (n *Notifier) NotifyCleanupSummary(ctx context.Context, kept, deleted, failed int) error {
	return n.each(ctx, "CleanupSummary", func(nf NotifiersIface) error {
		return nf.NotifyCleanupSummary(ctx, kept, deleted, failed)
	})
}

// NotifyCleanupFailure sends a cleanup failure notification using all
// enabled notifiers.
func (n *Notifier) NotifyCleanupFailure(ctx context.Context, nErr error) error {
	return n.each(ctx, "CleanupFailure", func(nf NotifiersIface) error {
		return nf.NotifyCleanupFailure(ctx, nErr)
	})
}

// InitStore initializes and registers all available notifiers.
func (n *Notifier) InitStore() error {
	d, err := discord.NewDiscordNotifier(n.cfg)
	if err != nil {
		return err
	}

	n.register(d)

	return nil
}

// NewNotifier creates a new Notifier instance with the provided configuration.
func NewNotifier(cfg *config.Config) NotifierStoreIface {
	return &Notifier{cfg: cfg}
}
