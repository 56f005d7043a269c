// Package codec provides compression and decompression for stored cache
// payloads.
package codec

// Codec compresses and decompresses byte payloads before they reach a
// persistent backend.
type Codec interface {
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)
	// Decompress returns the original form of compressed data.
	Decompress(data []byte) ([]byte, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}
