package fsbackend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/owlworks/recall/backend"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	if _, err := New(dir); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("cache path is not a directory")
	}
}

func TestNew_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "occupied")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := New(file); err == nil {
		t.Error("New() error = nil, want error when path is a file")
	}
}

func TestBackend_RoundTrip(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	key := `compute:[1,2,"add"]`
	value := []byte("serialized result")

	ok, err := b.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Contains() error = %v", err)
	}
	if ok {
		t.Error("Contains() = true before Set, want false")
	}

	if err := b.Set(ctx, key, value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ok, err = b.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Contains() error = %v", err)
	}
	if !ok {
		t.Error("Contains() = false after Set, want true")
	}

	got, err := b.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestBackend_GetMissing(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = b.Get(context.Background(), "missing")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestBackend_Overwrite(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := b.Set(ctx, "key", []byte("old")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Set(ctx, "key", []byte("new")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := b.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
}

func TestBackend_CompressionOptions(t *testing.T) {
	ctx := context.Background()
	value := bytes.Repeat([]byte("payload "), 64)

	for name, opts := range map[string][]Option{
		"zstd": nil,
		"gzip": {WithGzip()},
		"none": {WithoutCompression()},
	} {
		t.Run(name, func(t *testing.T) {
			b, err := New(t.TempDir(), opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if err := b.Set(ctx, "key", value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := b.Get(ctx, "key")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !bytes.Equal(got, value) {
				t.Error("Get() did not restore original value")
			}
		})
	}
}

func TestBackend_ContextCanceled(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Set(ctx, "key", []byte("v")); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}
