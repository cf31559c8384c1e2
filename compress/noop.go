package compress

// NoOpCodec bypasses compression, for users who want plain copies of the
// original files in the backup directory.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec that passes data through unchanged.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input slice as-is without copying.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is without copying.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// Ext returns an empty suffix; archived files keep their original name.
func (c NoOpCodec) Ext() string {
	return ""
}
