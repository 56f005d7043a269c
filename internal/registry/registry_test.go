package registry

import "testing"

func TestRegistry_LazyCreate(t *testing.T) {
	r := New()

	if got := r.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}

	c := r.Cache("abc")
	if c == nil {
		t.Fatal("Cache() = nil")
	}
	if got := r.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestRegistry_SameInstance(t *testing.T) {
	r := New()

	c1 := r.Cache(DefaultName)
	c2 := r.Cache(DefaultName)
	if c1 != c2 {
		t.Error("Cache() returned different instances for the same name")
	}

	other := r.Cache("other")
	if other == c1 {
		t.Error("Cache() returned the same instance for different names")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := New()

	r.Cache("a").Put("k", 1, 5)
	r.Cache("b").Put("k", 2, 5)

	if got := r.Entries(); got != 2 {
		t.Fatalf("Entries() = %d, want 2", got)
	}

	r.Clear()

	if got := r.Entries(); got != 0 {
		t.Errorf("Entries() = %d after Clear, want 0", got)
	}
	// Named caches survive a clear, only their entries go.
	if got := r.Len(); got != 2 {
		t.Errorf("Len() = %d after Clear, want 2", got)
	}
}
