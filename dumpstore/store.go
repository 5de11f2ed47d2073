package dumpstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a dump does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading posting dumps and writing reports.
type Store interface {
	// Open opens a dump for sequential reading.
	Open(ctx context.Context, name string) (Dump, error)

	// Create creates a named report for writing. The write is complete when
	// the returned writer is closed.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Dump is a read-only handle to one dump file.
type Dump interface {
	io.ReadCloser

	// Size returns the stored (possibly compressed) size in bytes.
	Size() int64
}
