package notifiers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zettelkit/zettelkit/internal/config"
)

type fakeNotifier struct {
	enabled  bool
	events   []string
	sendErr  error
	lastKept int
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) NotifyBackupSuccess(_ context.Context, _ string) error {
	f.events = append(f.events, "backup_success")
	return f.sendErr
}

func (f *fakeNotifier) NotifyBackupFailure(_ context.Context, _ error) error {
	f.events = append(f.events, "backup_failure")
	return f.sendErr
}

func (f *fakeNotifier) NotifyCleanupSummary(_ context.Context, kept, _, _ int) error {
	f.events = append(f.events, "cleanup_summary")
	f.lastKept = kept
	return f.sendErr
}

func (f *fakeNotifier) NotifyCleanupFailure(_ context.Context, _ error) error {
	f.events = append(f.events, "cleanup_failure")
	return f.sendErr
}

func newTestNotifier(enabled bool, fakes ...NotifiersIface) *Notifier {
	cfg := &config.Config{}
	cfg.Notifiers.Enabled = enabled
	n := &Notifier{cfg: cfg}
	for _, f := range fakes {
		n.register(f)
	}
	return n
}

func TestNotifier_GloballyDisabled(t *testing.T) {
	fake := &fakeNotifier{enabled: true}
	n := newTestNotifier(false, fake)

	err := n.NotifyBackupSuccess(t.Context(), "zettelkasten-2025-03-15-0300.tar.gz.age")
	require.ErrorIs(t, err, ErrNotifierDisabled)
	assert.Empty(t, fake.events)
}

func TestNotifier_SkipsDisabledNotifier(t *testing.T) {
	disabled := &fakeNotifier{enabled: false}
	enabled := &fakeNotifier{enabled: true}
	n := newTestNotifier(true, disabled, enabled)

	require.NoError(t, n.NotifyBackupFailure(t.Context(), errors.New("boom")))

	assert.Empty(t, disabled.events)
	assert.Equal(t, []string{"backup_failure"}, enabled.events)
}

func TestNotifier_SendErrorsAreNotFatal(t *testing.T) {
	failing := &fakeNotifier{enabled: true, sendErr: errors.New("webhook down")}
	working := &fakeNotifier{enabled: true}
	n := newTestNotifier(true, failing, working)

	require.NoError(t, n.NotifyCleanupSummary(t.Context(), 5, 8, 0))

	assert.Equal(t, []string{"cleanup_summary"}, failing.events)
	assert.Equal(t, []string{"cleanup_summary"}, working.events)
	assert.Equal(t, 5, working.lastKept)
}

func TestNotifier_AllEvents(t *testing.T) {
	fake := &fakeNotifier{enabled: true}
	n := newTestNotifier(true, fake)

	ctx := t.Context()
	require.NoError(t, n.NotifyBackupSuccess(ctx, "artifact"))
	require.NoError(t, n.NotifyBackupFailure(ctx, errors.New("boom")))
	require.NoError(t, n.NotifyCleanupSummary(ctx, 1, 2, 3))
	require.NoError(t, n.NotifyCleanupFailure(ctx, errors.New("boom")))

	assert.Equal(t, []string{"backup_success", "backup_failure", "cleanup_summary", "cleanup_failure"}, fake.events)
}
