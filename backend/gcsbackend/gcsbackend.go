// Package gcsbackend implements a Google Cloud Storage persistent backend.
package gcsbackend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cespare/xxhash/v2"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/internal/codec"
	"github.com/owlworks/recall/internal/codec/noopcodec"
	"github.com/owlworks/recall/internal/codec/zstdcodec"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend stores values as GCS objects. Object names are derived by
// hashing the cache key under an optional prefix. Values are
// zstd-compressed unless an option says otherwise.
type Backend struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// Option configures a Backend.
type Option func(*Backend)

// WithPrefix sets a key prefix for all objects.
func WithPrefix(prefix string) Option {
	return func(b *Backend) {
		b.prefix = strings.TrimSuffix(prefix, "/")
		if b.prefix != "" {
			b.prefix += "/"
		}
	}
}

// WithoutCompression stores values uncompressed.
func WithoutCompression() Option {
	return func(b *Backend) {
		b.codec = noopcodec.New()
	}
}

// New creates a new GCS backend. The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Backend, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	b := &Backend{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  zstdcodec.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Contains reports whether an object is stored for key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	_, err := b.bucket.Object(b.objectName(key)).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading object attrs: %w", err)
	}
	return true, nil
}

// Get reads and decompresses the object stored for key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := b.bucket.Object(b.objectName(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	compressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object: %w", err)
	}

	data, err := b.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing object: %w", err)
	}
	return data, nil
}

// Set compresses and writes the object for key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	compressed, err := b.codec.Compress(value)
	if err != nil {
		return fmt.Errorf("compressing value: %w", err)
	}

	writer := b.bucket.Object(b.objectName(key)).NewWriter(ctx)
	if _, err := writer.Write(compressed); err != nil {
		writer.Close()
		return fmt.Errorf("writing object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}
	return nil
}

// Close releases the underlying GCS client.
func (b *Backend) Close() error {
	return b.client.Close()
}

// objectName returns the full object name for a cache key.
func (b *Backend) objectName(key string) string {
	name := fmt.Sprintf("%016x.bin", xxhash.Sum64String(key))
	if ext := b.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return b.prefix + name
}
