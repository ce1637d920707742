// Package cleanup implements the backup cleanup workflow: list every
// storage location, compute the retention decision, confirm with the user
// and delete what did not survive.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/zettelkit/zettelkit/internal/backup"
	"github.com/zettelkit/zettelkit/internal/prompt"
	"github.com/zettelkit/zettelkit/internal/retention"
	"github.com/zettelkit/zettelkit/internal/storage"
)

// ErrListing marks a storage location that could not be enumerated. The run
// aborts before any decision is computed: deciding on a partial view could
// delete the only remaining copy of a backup.
var ErrListing = errors.New("listing storage location failed")

// DeleteAttempt records one delete against one location. Err is nil when
// the location accepted the delete.
type DeleteAttempt struct {
	Name    string
	Storage string
	Err     error
}

// DeleteFailure records a single failed deletion.
type DeleteFailure struct {
	Name    string
	Storage string
	Err     error
}

// Result summarizes one cleanup run. Attempts carries the per-location
// outcome of every delete, so a name that was removed from one location but
// refused by another is fully accounted for.
type Result struct {
	Decision retention.Decision
	Deleted  []string
	Attempts []DeleteAttempt
	Failures []DeleteFailure
	Aborted  bool
}

// Options control a cleanup run.
type Options struct {
	// AssumeYes skips the confirmation prompt (scheduled runs).
	AssumeYes bool
	// DryRun stops after printing the report.
	DryRun bool
	// Now overrides the reference date; defaults to time.Now.
	Now func() time.Time
	// Out is the report stream; defaults to stderr.
	Out io.Writer
}

// Cleaner runs the cleanup workflow over a set of storage locations.
type Cleaner struct {
	stores   []storage.StorageIface
	prompter prompt.PrompterIface
	opts     Options
}

// listAll aggregates the backup names of every location into one
// deduplicated, sorted set. Entries that are not backup artifacts are
// skipped with a warning so an untidy directory cannot poison the decision.
func (c *Cleaner) listAll(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}

	for _, store := range c.stores {
		keys, err := store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrListing, store.Name(), err)
		}

		for _, key := range store.TrimPrefix(keys) {
			if _, pErr := backup.ParseName(key); pErr != nil {
				slog.WarnContext(ctx, "Ignoring non-backup entry", "storage", store.Name(), "entry", key)
				continue
			}
			seen[key] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Cleaner) printReport(decision retention.Decision) {
	for _, month := range decision.Months {
		fmt.Fprintf(c.opts.Out, "%s (%s): keep %d, delete %d\n",
			month.Month, month.Class, len(month.Keep), len(month.Delete))
		for _, name := range month.Delete {
			fmt.Fprintf(c.opts.Out, "  delete %s\n", name)
		}
	}
	fmt.Fprintf(c.opts.Out, "total: keep %d, delete %d\n",
		len(decision.Keep), len(decision.Delete))
}

// deleteAll removes every selected backup from every location. Deletions are
// independent, so a failure is recorded and the batch continues; every
// attempt lands in the result regardless of outcome.
func (c *Cleaner) deleteAll(ctx context.Context, names []string) ([]string, []DeleteAttempt, []DeleteFailure) {
	var deleted []string
	var attempts []DeleteAttempt
	var failures []DeleteFailure

	for _, name := range names {
		ok := true
		for _, store := range c.stores {
			err := store.Delete(ctx, name)
			attempts = append(attempts, DeleteAttempt{Name: name, Storage: store.Name(), Err: err})
			if err != nil {
				slog.ErrorContext(ctx, "Error deleting backup", "key", name, "storage", store.Name(), "error", err)
				failures = append(failures, DeleteFailure{Name: name, Storage: store.Name(), Err: err})
				ok = false
				continue
			}
			slog.InfoContext(ctx, "Deleted backup", "key", name, "storage", store.Name())
		}
		if ok {
			deleted = append(deleted, name)
		}
	}

	return deleted, attempts, failures
}

// Run executes one cleanup pass.
func (c *Cleaner) Run(ctx context.Context) (*Result, error) {
	names, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}

	decision, err := retention.Select(names, c.opts.Now())
	if err != nil {
		return nil, err
	}

	result := &Result{Decision: decision}
	c.printReport(decision)

	if len(decision.Delete) == 0 {
		slog.InfoContext(ctx, "No backups to delete")
		return result, nil
	}

	if c.opts.DryRun {
		return result, nil
	}

	if !c.opts.AssumeYes {
		question := fmt.Sprintf("Delete %d backups listed above?", len(decision.Delete))
		confirmed, pErr := c.prompter.Confirm(question)
		if pErr != nil {
			return nil, pErr
		}
		if !confirmed {
			slog.InfoContext(ctx, "Cleanup aborted by user")
			result.Aborted = true
			return result, nil
		}
	}

	result.Deleted, result.Attempts, result.Failures = c.deleteAll(ctx, decision.Delete)

	slog.InfoContext(ctx, "Cleanup finished",
		"kept", len(decision.Keep),
		"deleted", len(result.Deleted),
		"failed", len(result.Failures))
	return result, nil
}

// NewCleaner creates a Cleaner over the given storage locations.
func NewCleaner(stores []storage.StorageIface, prompter prompt.PrompterIface, opts Options) *Cleaner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	return &Cleaner{
		stores:   stores,
		prompter: prompter,
		opts:     opts,
	}
}
