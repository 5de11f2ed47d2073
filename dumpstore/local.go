package dumpstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a dump for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Dump, error) {
	path := filepath.Join(s.root, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &localDump{f: f, size: info.Size()}, nil
}

// Create creates a report file, making parent directories as needed.
func (s *LocalStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

type localDump struct {
	f    *os.File
	size int64
}

func (d *localDump) Read(p []byte) (int, error) {
	return d.f.Read(p)
}

func (d *localDump) Close() error {
	return d.f.Close()
}

func (d *localDump) Size() int64 {
	return d.size
}
