package gzipcodec

import (
	"bytes"
	"testing"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := New()

	original := []byte("some cached value that should survive compression")

	compressed, err := c.Compress(original)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	decompressed, err := c.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}

	if !bytes.Equal(decompressed, original) {
		t.Errorf("Decompress() = %q, want %q", decompressed, original)
	}
}

func TestCodec_DecompressGarbage(t *testing.T) {
	c := New()

	if _, err := c.Decompress([]byte("not gzip data")); err == nil {
		t.Error("Decompress() error = nil, want error for invalid data")
	}
}

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "gz" {
		t.Errorf("Extension() = %q, want %q", got, "gz")
	}
}
