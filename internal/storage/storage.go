// Package storage defines the interface for backup storage locations.
package storage

import "context"

// StorageIface is a storage location holding backup artifacts. A backup may
// exist in several locations at once; the cleanup workflow treats them
// uniformly as named sources of a flat filename set.
// revive:disable-next-line exported
type StorageIface interface {
	// Init prepares the location (checks the directory, establishes a session)
	Init(context.Context) error

	// Upload copies a local file into the location and returns the remote key
	Upload(context.Context, string) (string, error)

	// List returns keys/identifiers under the configured prefix
	List(context.Context) ([]string, error)

	// Delete removes the named backup; absence is not an error
	Delete(context.Context, string) error

	// TrimPrefix trims the configured prefix from the given keys, if present
	TrimPrefix(keys []string) []string

	// Name returns a human-readable name for the location (e.g. "s3 (bucket)")
	Name() string
}
