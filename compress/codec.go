// Package compress provides the compression codecs used when archiving the
// untouched original activity file next to its cleaned backup.
//
// Activity files are small (hundreds of KB) and compress well, so the codecs
// favor simplicity: whole-buffer Compress/Decompress with no streaming.
package compress

import (
	"fmt"
	"strings"
)

// Compressor compresses a whole buffer.
//
// The returned slice is newly allocated and owned by the caller; the input is
// not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a buffer previously produced by the matching
// Compressor. Corrupted or mismatched input yields an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions plus the file suffix appended to archived
// originals.
type Codec interface {
	Compressor
	Decompressor

	// Ext returns the filename suffix for archives produced by this codec,
	// including the leading dot; empty for the no-op codec.
	Ext() string
}

// ForName returns the codec selected by a configuration value. Recognized
// names are "none", "zstd", "s2" and "lz4".
func ForName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NewNoOpCodec(), nil
	case "zstd":
		return NewZstdCodec(), nil
	case "s2":
		return NewS2Codec(), nil
	case "lz4":
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("unknown compression codec %q", name)
	}
}
