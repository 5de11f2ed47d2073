package dumpstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	dumps map[string][]byte
}

// NewMemoryStore creates a new in-memory dump store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dumps: make(map[string][]byte),
	}
}

// Open opens a dump for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Dump, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.dumps[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy to prevent external mutation.
	copied := make([]byte, len(data))
	copy(copied, data)

	return &memoryDump{Reader: bytes.NewReader(copied), size: int64(len(copied))}, nil
}

// Create creates a dump; the data is visible once the writer is closed.
func (m *MemoryStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return &memoryWriter{store: m, name: name}, nil
}

// Put writes a dump atomically. Handy for test setup.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.dumps[name] = copied
	return nil
}

type memoryDump struct {
	*bytes.Reader
	size int64
}

func (d *memoryDump) Close() error { return nil }

func (d *memoryDump) Size() int64 { return d.size }

type memoryWriter struct {
	store *MemoryStore
	name  string
	buf   bytes.Buffer
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	return w.store.Put(context.Background(), w.name, w.buf.Bytes())
}
