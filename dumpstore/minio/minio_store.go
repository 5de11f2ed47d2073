// Package minio provides a MinIO / S3-compatible implementation of the
// dumpstore.Store interface.
package minio

import (
	"context"
	"errors"
	"io"
	"path"
	"sync/atomic"

	"github.com/hupe1980/langclust/dumpstore"
	"github.com/minio/minio-go/v7"
)

// Store implements dumpstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO dump store.
// rootPrefix is prepended to all keys (e.g. "dumps/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open streams a dump for reading.
func (s *Store) Open(ctx context.Context, name string) (dumpstore.Dump, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, dumpstore.ErrNotFound
		}
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	return &minioDump{obj: obj, size: info.Size}, nil
}

// Create creates a report for streaming writes.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.key(name)
	pr, pw := io.Pipe()

	w := &minioWriter{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// minioDump implements dumpstore.Dump.
type minioDump struct {
	obj  *minio.Object
	size int64
}

func (d *minioDump) Read(p []byte) (int, error) {
	return d.obj.Read(p)
}

func (d *minioDump) Close() error {
	return d.obj.Close()
}

func (d *minioDump) Size() int64 {
	return d.size
}

// minioWriter implements io.WriteCloser over a streamed PutObject.
type minioWriter struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (w *minioWriter) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return w.pw.Write(p)
}

func (w *minioWriter) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return errors.New("already closed")
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
