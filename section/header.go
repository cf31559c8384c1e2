package section

import (
	"fmt"

	"github.com/arloliu/fitsync/endian"
	"github.com/arloliu/fitsync/errs"
)

const (
	// HeaderSizeMin is the size of a header without the optional checksum.
	HeaderSizeMin = 12
	// HeaderSizeCRC is the size of a header carrying the optional checksum.
	HeaderSizeCRC = 14

	// TrailerSize is the size of the checksum trailer at the end of the file.
	TrailerSize = 2

	// Signature is the fixed 4-byte ASCII marker at bytes 8-11 of the header.
	Signature = ".FIT"

	// ProtocolVersionV1 and ProtocolVersionV2 are the protocol version bytes
	// for major versions 1 and 2 (major version in the high nibble).
	ProtocolVersionV1 = 0x10
	ProtocolVersionV2 = 0x20

	// DefaultProfileVersion is written by the encoder when the caller does
	// not supply one.
	DefaultProfileVersion = 2132
)

// Header represents the file header section at the start of an activity file.
type Header struct {
	// Size is the header byte count, 12 or 14. byte offset 0
	Size uint8
	// ProtocolVersion is the format protocol version. byte offset 1
	ProtocolVersion uint8
	// ProfileVersion is the profile version. byte offset 2-3
	ProfileVersion uint16
	// DataSize is the payload byte count between header and trailer. byte offset 4-7
	DataSize uint32
	// CRC is the optional header checksum, present when Size >= 14; zero
	// means the checksum was not computed. byte offset 12-13
	CRC uint16
}

// NewHeader creates a header for the encoder with the default protocol and
// profile versions. DataSize is patched when the encoder finishes.
func NewHeader() Header {
	return Header{
		Size:            HeaderSizeCRC,
		ProtocolVersion: ProtocolVersionV2,
		ProfileVersion:  DefaultProfileVersion,
	}
}

// Parse parses the header from the start of data.
//
// It validates the declared header size, the format signature, and the
// optional header checksum (a stored value of zero disables the check).
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSizeMin {
		return fmt.Errorf("%w: %d bytes available, need at least %d",
			errs.ErrMalformedHeader, len(data), HeaderSizeMin)
	}

	h.Size = data[0]
	if h.Size != HeaderSizeMin && h.Size != HeaderSizeCRC {
		return fmt.Errorf("%w: unsupported header size %d", errs.ErrMalformedHeader, h.Size)
	}
	if len(data) < int(h.Size) {
		return fmt.Errorf("%w: declared header size %d exceeds %d bytes available",
			errs.ErrMalformedHeader, h.Size, len(data))
	}

	engine := endian.GetLittleEndianEngine()

	h.ProtocolVersion = data[1]
	h.ProfileVersion = engine.Uint16(data[2:4])
	h.DataSize = engine.Uint32(data[4:8])

	if string(data[8:12]) != Signature {
		return fmt.Errorf("%w: bad signature %q", errs.ErrMalformedHeader, data[8:12])
	}

	if h.Size >= HeaderSizeCRC {
		h.CRC = engine.Uint16(data[12:14])
		if h.CRC != 0 && h.CRC != CRC16(data[:12]) {
			return fmt.Errorf("%w: header checksum", errs.ErrChecksumMismatch)
		}
	}

	return nil
}

// Bytes serializes the header, computing the header checksum when Size >= 14.
func (h *Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, h.Size)
	b = append(b, h.Size, h.ProtocolVersion)
	b = engine.AppendUint16(b, h.ProfileVersion)
	b = engine.AppendUint32(b, h.DataSize)
	b = append(b, Signature...)

	if h.Size >= HeaderSizeCRC {
		b = engine.AppendUint16(b, CRC16(b))
	}

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
