// Package keyer derives cache keys from call arguments.
package keyer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnkeyable indicates the arguments cannot be turned into a cache key.
var ErrUnkeyable = errors.New("keyer: arguments cannot be keyed")

// Keyer derives a cache key from a call's arguments.
//
// Two argument lists producing equal keys are treated as equivalent for
// memoization. Implementations must be deterministic regardless of map
// iteration order and safe for concurrent use.
type Keyer interface {
	// Key derives a cache key from the argument list.
	// The returned value must be usable as a map key.
	Key(args []any) (any, error)
}

// Compile-time check that Canonical implements Keyer.
var _ Keyer = (*Canonical)(nil)

// Canonical derives string keys from the canonical JSON form of the
// argument list. Maps are encoded with sorted keys so the same arguments
// always produce the same key.
type Canonical struct{}

// NewCanonical returns a new canonical keyer.
func NewCanonical() *Canonical {
	return &Canonical{}
}

// Key encodes the argument list canonically.
func (c *Canonical) Key(args []any) (any, error) {
	encoded, err := Encode(args)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// Encode produces the canonical string form of a value.
// Values that cannot be serialized (functions, channels) yield ErrUnkeyable.
func Encode(v any) (string, error) {
	var sb strings.Builder
	if err := encode(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encode(sb *strings.Builder, v any) error {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
		return nil
	case map[string]any:
		return encodeMap(sb, val)
	case []any:
		return encodeSlice(sb, val)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnkeyable, err)
		}
		sb.Write(data)
		return nil
	}
}

// encodeMap writes a JSON object with keys in sorted order.
func encodeMap(sb *strings.Builder, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		keyData, err := json.Marshal(k)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnkeyable, err)
		}
		sb.Write(keyData)
		sb.WriteByte(':')
		if err := encode(sb, m[k]); err != nil {
			return err
		}
	}
	sb.WriteByte('}')
	return nil
}

func encodeSlice(sb *strings.Builder, s []any) error {
	sb.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := encode(sb, v); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}
