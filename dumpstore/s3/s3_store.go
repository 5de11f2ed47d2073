// Package s3 provides an Amazon S3 implementation of the dumpstore.Store
// interface. Dumps are streamed with GetObject; reports are uploaded through
// the transfer manager so large tables never buffer fully in memory.
package s3

import (
	"context"
	"errors"
	"io"
	"path"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/langclust/dumpstore"
)

// Client is the subset of the S3 API the store uses. *s3.Client satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	manager.UploadAPIClient
}

// Store implements dumpstore.Store for S3.
type Store struct {
	client Client
	bucket string
	prefix string
}

// NewStore creates a new S3 dump store.
// rootPrefix is prepended to all keys (e.g. "dumps/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
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

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, dumpstore.ErrNotFound
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, dumpstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Dump{
		body: resp.Body,
		size: aws.ToInt64(resp.ContentLength),
	}, nil
}

// Create creates a report for streaming writes.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.key(name)
	pr, pw := io.Pipe()

	w := &s3Writer{
		pw:       pw,
		done:     make(chan error, 1),
		uploader: manager.NewUploader(s.client),
	}

	// Upload runs in the background while the caller writes into the pipe.
	go func() {
		_, err := w.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   pr,
		})
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// s3Dump implements dumpstore.Dump.
type s3Dump struct {
	body io.ReadCloser
	size int64
}

func (d *s3Dump) Read(p []byte) (int, error) {
	return d.body.Read(p)
}

func (d *s3Dump) Close() error {
	return d.body.Close()
}

func (d *s3Dump) Size() int64 {
	return d.size
}

// s3Writer implements io.WriteCloser over a managed upload.
type s3Writer struct {
	pw       *io.PipeWriter
	done     chan error
	uploader *manager.Uploader
	closed   atomic.Bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return w.pw.Write(p)
}

func (w *s3Writer) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return io.ErrClosedPipe
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
