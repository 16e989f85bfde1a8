// Package gcs stores redemption proof documents in Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/heartmarshall/hrwallet-backend/internal/config"
)

const pdfContentType = "application/pdf"

// objectOpener returns a writer for a new object. The object is committed
// when the writer is closed.
type objectOpener func(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser

// Store writes documents under a prefix of one bucket.
type Store struct {
	bucket string
	prefix string
	open   objectOpener
	client *storage.Client
}

// New creates a Cloud Storage client. Explicit credentials are optional;
// without them Application Default Credentials are used.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	bucket := client.Bucket(cfg.Bucket)
	s := newStore(cfg.Bucket, cfg.Prefix, func(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser {
		w := bucket.Object(object).NewWriter(ctx)
		w.ContentType = contentType
		w.Metadata = metadata
		return w
	})
	s.client = client
	return s, nil
}

func newStore(bucket, prefix string, open objectOpener) *Store {
	return &Store{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		open:   open,
	}
}

// StoreDocument uploads data as filename and returns its gs:// reference.
func (s *Store) StoreDocument(ctx context.Context, data []byte, filename string, metadata map[string]string) (string, error) {
	object := path.Join(s.prefix, path.Base(filename))

	w := s.open(ctx, object, pdfContentType, metadata)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", object, err)
	}

	return "gs://" + s.bucket + "/" + object, nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
