// Package s3backend implements an AWS S3 persistent backend.
package s3backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cespare/xxhash/v2"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/internal/codec"
	"github.com/owlworks/recall/internal/codec/noopcodec"
	"github.com/owlworks/recall/internal/codec/zstdcodec"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend stores values as S3 objects. Object keys are derived by hashing
// the cache key under an optional prefix. Values are zstd-compressed
// unless an option says otherwise.
type Backend struct {
	client *s3.Client
	bucket string
	prefix string
	codec  codec.Codec
}

// Option configures a Backend.
type Option func(*Backend) error

// WithPrefix sets a key prefix for all objects.
func WithPrefix(prefix string) Option {
	return func(b *Backend) error {
		b.prefix = strings.TrimSuffix(prefix, "/")
		if b.prefix != "" {
			b.prefix += "/"
		}
		return nil
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(b *Backend) error {
		cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
		if err != nil {
			return fmt.Errorf("loading AWS config with region: %w", err)
		}
		b.client = s3.NewFromConfig(cfg)
		return nil
	}
}

// WithEndpoint sets a custom endpoint (for S3-compatible services like MinIO).
func WithEndpoint(endpoint string) Option {
	return func(b *Backend) error {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return fmt.Errorf("loading AWS config for endpoint: %w", err)
		}
		b.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
		return nil
	}
}

// WithoutCompression stores values uncompressed.
func WithoutCompression() Option {
	return func(b *Backend) error {
		b.codec = noopcodec.New()
		return nil
	}
}

// New creates a new S3 backend. The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Backend, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	b := &Backend{
		client: s3.NewFromConfig(cfg),
		bucket: bucketName,
		codec:  zstdcodec.New(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Contains reports whether an object is stored for key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("heading object: %w", err)
	}
	return true, nil
}

// Get reads and decompresses the object stored for key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("reading object: %w", err)
	}
	defer result.Body.Close()

	compressed, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
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

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(key)),
		Body:   bytes.NewReader(compressed),
	})
	if err != nil {
		return fmt.Errorf("writing object: %w", err)
	}
	return nil
}

// objectKey returns the full object key for a cache key.
func (b *Backend) objectKey(key string) string {
	name := fmt.Sprintf("%016x.bin", xxhash.Sum64String(key))
	if ext := b.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return b.prefix + name
}
