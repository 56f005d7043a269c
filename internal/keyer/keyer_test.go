package keyer

import (
	"errors"
	"testing"
)

func TestCanonical_Deterministic(t *testing.T) {
	k := NewCanonical()

	key1, err := k.Key([]any{1, 2, "add"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := k.Key([]any{1, 2, "add"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if key1 != key2 {
		t.Errorf("Key() = %v and %v, want equal keys for equal arguments", key1, key2)
	}
}

func TestCanonical_DistinctArguments(t *testing.T) {
	k := NewCanonical()

	key1, err := k.Key([]any{1, 2, "add"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := k.Key([]any{1, 2, "subtract"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if key1 == key2 {
		t.Errorf("Key() = %v for different arguments, want distinct keys", key1)
	}
}

func TestCanonical_MapOrdering(t *testing.T) {
	k := NewCanonical()

	// Maps with identical contents must produce the same key regardless
	// of insertion order.
	m1 := map[string]any{"a": 1, "b": 2, "c": 3}
	m2 := map[string]any{"c": 3, "b": 2, "a": 1}

	key1, err := k.Key([]any{m1})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := k.Key([]any{m2})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if key1 != key2 {
		t.Errorf("Key() = %v and %v, want equal keys for equal maps", key1, key2)
	}
}

func TestCanonical_Nested(t *testing.T) {
	k := NewCanonical()

	key, err := k.Key([]any{[]any{1, map[string]any{"x": nil}}})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if key != `[[1,{"x":null}]]` {
		t.Errorf("Key() = %v, want canonical nested encoding", key)
	}
}

func TestCanonical_Unkeyable(t *testing.T) {
	k := NewCanonical()

	_, err := k.Key([]any{make(chan int)})
	if !errors.Is(err, ErrUnkeyable) {
		t.Errorf("Key() error = %v, want ErrUnkeyable", err)
	}

	_, err = k.Key([]any{func() {}})
	if !errors.Is(err, ErrUnkeyable) {
		t.Errorf("Key() error = %v, want ErrUnkeyable", err)
	}
}

func TestEncode_String(t *testing.T) {
	got, err := Encode("hello")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got != `"hello"` {
		t.Errorf("Encode() = %q, want %q", got, `"hello"`)
	}
}
