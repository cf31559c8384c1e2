package fit

import (
	"fmt"
	"io"

	"github.com/arloliu/fitsync/endian"
	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
	"github.com/arloliu/fitsync/section"
)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithChecksumValidation makes the decoder verify the 2-byte checksum trailer
// against the checksum computed over header and payload. Validation happens
// eagerly in NewDecoder.
func WithChecksumValidation() DecoderOption {
	return func(d *Decoder) {
		d.validateCRC = true
	}
}

// Decoder consumes an activity file byte buffer and produces its messages in
// a single forward pass.
//
// Note: the Decoder is NOT thread-safe and NOT restartable. After the stream
// is drained a new decoder must be created for further decoding.
type Decoder struct {
	registry *message.Registry
	data     []byte
	header   section.Header
	off      int
	end      int
	validateCRC bool
}

// NewDecoder creates a Decoder over data.
//
// The header is parsed and validated eagerly; the record stream is decoded
// lazily by Next. When checksum validation is enabled the trailer is also
// verified here, before any record is decoded.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		data:     data,
		registry: message.NewRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	d.header = header
	d.off = int(header.Size)
	d.end = d.off + int(header.DataSize)

	if d.end > len(data) {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, %d available",
			errs.ErrTruncated, header.DataSize, len(data)-d.off)
	}

	if d.validateCRC {
		if len(data) < d.end+section.TrailerSize {
			return nil, fmt.Errorf("%w: missing checksum trailer", errs.ErrTruncated)
		}
		want := endian.GetLittleEndianEngine().Uint16(data[d.end : d.end+section.TrailerSize])
		if got := section.CRC16(data[:d.end]); got != want {
			return nil, fmt.Errorf("%w: computed 0x%04X, trailer 0x%04X",
				errs.ErrChecksumMismatch, got, want)
		}
	}

	return d, nil
}

// Header returns the parsed file header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Next decodes and returns the next data message. Definition records are
// consumed internally to update the local type registry and are not returned.
// It returns io.EOF once the payload is exhausted.
func (d *Decoder) Next() (*message.Message, error) {
	for {
		if d.off >= d.end {
			return nil, io.EOF
		}

		hdr := d.data[d.off]
		recordStart := d.off
		d.off++

		if hdr&format.CompressedHeaderMask != 0 {
			return nil, fmt.Errorf("%w: compressed timestamp header at offset %d",
				errs.ErrUnsupportedFeature, recordStart)
		}

		slot := hdr & format.LocalTypeMask

		if hdr&format.DefinitionMask != 0 {
			if err := d.readDefinition(slot, recordStart); err != nil {
				return nil, err
			}

			continue
		}

		return d.readData(slot, recordStart)
	}
}

// DecodeAll drains the stream and returns every data message in order.
func (d *Decoder) DecodeAll() ([]*message.Message, error) {
	var msgs []*message.Message
	for {
		msg, err := d.Next()
		if err == io.EOF {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
}

// readDefinition parses a definition record body and binds it to slot.
func (d *Decoder) readDefinition(slot uint8, recordStart int) error {
	// reserved byte, architecture byte, global message kind, field count
	body, err := d.take(5, recordStart)
	if err != nil {
		return err
	}

	arch := body[1]
	if arch > 1 {
		return fmt.Errorf("%w: architecture byte 0x%02X at offset %d",
			errs.ErrUnsupportedFeature, arch, recordStart)
	}

	def := &message.Definition{BigEndian: arch == 1}
	engine := endian.Select(def.BigEndian)
	def.MesgNum = format.MesgNum(engine.Uint16(body[2:4]))

	fieldCount := int(body[4])
	descriptors, err := d.take(fieldCount*3, recordStart)
	if err != nil {
		return err
	}

	def.Fields = make([]message.FieldDef, fieldCount)
	for i := 0; i < fieldCount; i++ {
		def.Fields[i] = message.FieldDef{
			Num:  descriptors[i*3],
			Size: descriptors[i*3+1],
			Type: format.BaseType(descriptors[i*3+2]),
		}
	}

	return d.registry.Bind(slot, def)
}

// readData parses a data record body against the definition bound to slot.
func (d *Decoder) readData(slot uint8, recordStart int) (*message.Message, error) {
	def, err := d.registry.Lookup(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: data record at offset %d", err, recordStart)
	}

	body, err := d.take(def.DataSize(), recordStart)
	if err != nil {
		return nil, err
	}

	engine := endian.Select(def.BigEndian)
	msg := message.New(def.MesgNum)

	off := 0
	for _, f := range def.Fields {
		raw := body[off : off+int(f.Size)]
		off += int(f.Size)

		if v, ok := decodeField(f, raw, engine); ok {
			msg.Set(f.Num, v)
		}
	}

	return msg, nil
}

// take consumes n payload bytes, failing when the record declared at
// recordStart crosses the end of the payload.
func (d *Decoder) take(n, recordStart int) ([]byte, error) {
	if d.off+n > d.end {
		return nil, fmt.Errorf("%w: record at offset %d needs %d more bytes, %d remain",
			errs.ErrTruncated, recordStart, n, d.end-d.off)
	}

	b := d.data[d.off : d.off+n]
	d.off += n

	return b, nil
}
