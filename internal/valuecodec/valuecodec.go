// Package valuecodec serializes memoized results for persistent storage.
package valuecodec

import "github.com/vmihailenco/msgpack/v5"

// Codec encodes and decodes memoized results. Stored payloads are opaque
// bytes from the backend's perspective.
type Codec interface {
	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

// Compile-time check that Msgpack implements Codec.
var _ Codec = (*Msgpack)(nil)

// Msgpack encodes values with MessagePack.
type Msgpack struct{}

// NewMsgpack returns a new MessagePack codec.
func NewMsgpack() *Msgpack {
	return &Msgpack{}
}

// Marshal encodes v with msgpack.
func (m *Msgpack) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes msgpack data into v.
func (m *Msgpack) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
