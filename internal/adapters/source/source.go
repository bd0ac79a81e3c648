// Package source acquires the raw player dataset onto the local disk.
//
// The pipeline itself only ever reads a local path; where the bytes come
// from is behind the Source interface so core tests never touch the
// network. The HTTP implementation downloads to a cache path and treats a
// failed download as non-fatal when a previously fetched copy exists.
package source

import (
	"context"
	"os"
)

// Source makes the raw dataset available at a local path.
type Source interface {
	// Ensure guarantees the dataset exists at the returned path, fetching
	// it if needed. Returns ErrMissingInput when neither a cached copy nor
	// a successful fetch can provide it.
	Ensure(ctx context.Context) (string, error)
}

// Local serves a dataset that must already exist on disk.
type Local struct {
	path string
}

// NewLocal creates a Source backed by an existing local file.
func NewLocal(path string) *Local {
	return &Local{path: path}
}

// Ensure checks the file exists; it never fetches.
func (l *Local) Ensure(_ context.Context) (string, error) {
	if _, err := os.Stat(l.path); err != nil {
		return "", wrapMissing(l.path, err)
	}
	return l.path, nil
}
