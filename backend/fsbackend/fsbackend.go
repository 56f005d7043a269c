// Package fsbackend implements a filesystem-backed persistent backend.
// Each key is stored as one file under a root directory.
package fsbackend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/internal/codec"
	"github.com/owlworks/recall/internal/codec/gzipcodec"
	"github.com/owlworks/recall/internal/codec/noopcodec"
	"github.com/owlworks/recall/internal/codec/zstdcodec"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend stores values as files under a root directory.
// Filenames are derived by hashing the key, so arbitrary key strings are
// safe regardless of filesystem naming rules.
type Backend struct {
	root  string
	codec codec.Codec
}

// Option configures a Backend.
type Option func(*Backend)

// WithGzip stores values gzip-compressed.
func WithGzip() Option {
	return func(b *Backend) {
		b.codec = gzipcodec.New()
	}
}

// WithoutCompression stores values uncompressed.
func WithoutCompression() Option {
	return func(b *Backend) {
		b.codec = noopcodec.New()
	}
}

// New creates a filesystem backend rooted at dir, creating the directory
// if needed. Values are zstd-compressed unless an option says otherwise.
// Returns an error if dir exists and is not a directory.
func New(dir string, opts ...Option) (*Backend, error) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("stat cache directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("%s exists and is not a directory", dir)
	}

	b := &Backend{
		root:  dir,
		codec: zstdcodec.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Contains reports whether a file exists for key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(b.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat cache file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Get reads and decompresses the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	data, err := b.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing cache file: %w", err)
	}
	return data, nil
}

// Set compresses and writes the value for key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compressed, err := b.codec.Compress(value)
	if err != nil {
		return fmt.Errorf("compressing value: %w", err)
	}
	if err := os.WriteFile(b.path(key), compressed, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// path returns the filesystem path for a key.
func (b *Backend) path(key string) string {
	name := fmt.Sprintf("%016x.bin", xxhash.Sum64String(key))
	if ext := b.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return filepath.Join(b.root, name)
}
