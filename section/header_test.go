package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsync/errs"
)

func TestHeaderRoundTrip(t *testing.T) {
	t.Run("WithCRC", func(t *testing.T) {
		h := NewHeader()
		h.DataSize = 4096

		data := h.Bytes()
		require.Len(t, data, HeaderSizeCRC)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, h.Size, parsed.Size)
		require.Equal(t, h.ProtocolVersion, parsed.ProtocolVersion)
		require.Equal(t, h.ProfileVersion, parsed.ProfileVersion)
		require.Equal(t, uint32(4096), parsed.DataSize)
		require.NotEqual(t, uint16(0), parsed.CRC)
	})

	t.Run("WithoutCRC", func(t *testing.T) {
		h := Header{
			Size:            HeaderSizeMin,
			ProtocolVersion: ProtocolVersionV1,
			ProfileVersion:  100,
			DataSize:        12,
		}

		data := h.Bytes()
		require.Len(t, data, HeaderSizeMin)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, uint8(HeaderSizeMin), parsed.Size)
		require.Equal(t, uint16(0), parsed.CRC)
	})
}

func TestHeaderParseErrors(t *testing.T) {
	t.Run("TooShort", func(t *testing.T) {
		_, err := ParseHeader(make([]byte, HeaderSizeMin-1))
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
	})

	t.Run("BadSignature", func(t *testing.T) {
		h := NewHeader()
		data := h.Bytes()
		data[8] = 'X'

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
	})

	t.Run("UnsupportedHeaderSize", func(t *testing.T) {
		h := NewHeader()
		data := h.Bytes()
		data[0] = 20

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
	})

	t.Run("DeclaredSizeExceedsData", func(t *testing.T) {
		h := NewHeader()
		data := h.Bytes()[:HeaderSizeMin]
		data[0] = HeaderSizeCRC

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
	})

	t.Run("HeaderChecksumMismatch", func(t *testing.T) {
		h := NewHeader()
		data := h.Bytes()
		data[12] ^= 0xFF

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("ZeroHeaderChecksumAccepted", func(t *testing.T) {
		h := NewHeader()
		data := h.Bytes()
		data[12] = 0
		data[13] = 0

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, uint16(0), parsed.CRC)
	})
}
