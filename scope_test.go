package recall

import (
	"context"
	"testing"

	"github.com/owlworks/recall/backend/membackend"
)

func TestActiveBackend_Empty(t *testing.T) {
	if _, ok := ActiveBackend(context.Background()); ok {
		t.Error("ActiveBackend() ok = true for plain context, want false")
	}
}

func TestWithBackend(t *testing.T) {
	b := membackend.New()
	ctx := WithBackend(context.Background(), b)

	got, ok := ActiveBackend(ctx)
	if !ok {
		t.Fatal("ActiveBackend() ok = false, want true")
	}
	if got != b {
		t.Error("ActiveBackend() returned a different backend")
	}
}

func TestWithBackend_NestedShadowing(t *testing.T) {
	outer := membackend.New()
	inner := membackend.New()

	outerCtx := WithBackend(context.Background(), outer)
	innerCtx := WithBackend(outerCtx, inner)

	if got, _ := ActiveBackend(innerCtx); got != inner {
		t.Error("inner scope does not see the inner backend")
	}
	// Leaving the inner scope restores the outer binding.
	if got, _ := ActiveBackend(outerCtx); got != outer {
		t.Error("outer scope lost its backend after nesting")
	}
}

func TestWithoutBackend_Masks(t *testing.T) {
	ctx := WithBackend(context.Background(), membackend.New())
	masked := WithoutBackend(ctx)

	if _, ok := ActiveBackend(masked); ok {
		t.Error("ActiveBackend() ok = true inside WithoutBackend, want false")
	}
	if _, ok := ActiveBackend(ctx); !ok {
		t.Error("masking leaked into the enclosing scope")
	}
}

func TestScope_GoroutineIsolation(t *testing.T) {
	scoped := WithBackend(context.Background(), membackend.New())

	visible := make(chan bool)
	go func() {
		// A goroutine running with its own context must not observe a
		// scope it never entered.
		_, ok := ActiveBackend(context.Background())
		visible <- ok
	}()

	if <-visible {
		t.Error("backend scope leaked into an unrelated goroutine")
	}
	if _, ok := ActiveBackend(scoped); !ok {
		t.Error("scoped context lost its backend")
	}
}
