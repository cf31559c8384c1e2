package fit

import (
	"fmt"
	"math"

	"github.com/arloliu/fitsync/endian"
	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
)

// decodeField interprets the raw bytes of one field per its descriptor.
// It returns ok=false when the bytes equal the base type's invalid sentinel,
// meaning the field is absent from the message.
func decodeField(def message.FieldDef, raw []byte, engine endian.EndianEngine) (message.Value, bool) {
	typ := def.Type

	// String and array fields (declared size differs from the scalar size)
	// and unknown base types are carried verbatim; they are never consulted
	// by the pipeline, only re-emitted.
	if !typ.Valid() || typ == format.TypeString || len(raw) != typ.Size() {
		buf := make([]byte, len(raw))
		copy(buf, raw)

		return message.Bytes(typ, buf), true
	}

	var bits uint64
	switch len(raw) {
	case 1:
		bits = uint64(raw[0])
	case 2:
		bits = uint64(engine.Uint16(raw))
	case 4:
		bits = uint64(engine.Uint32(raw))
	case 8:
		bits = engine.Uint64(raw)
	}

	if bits == typ.Invalid() {
		return message.Value{}, false
	}

	switch {
	case typ.Float():
		if typ == format.TypeFloat32 {
			return message.Float(typ, float64(math.Float32frombits(uint32(bits)))), true
		}

		return message.Float(typ, math.Float64frombits(bits)), true
	case typ.Signed():
		return message.Int(typ, signExtend(bits, len(raw))), true
	default:
		return message.Uint(typ, bits), true
	}
}

// signExtend converts a size-byte unsigned bit pattern to a signed int64.
func signExtend(bits uint64, size int) int64 {
	shift := uint(64 - size*8)
	return int64(bits<<shift) >> shift
}

// encodeField appends the serialized bytes of one field to buf.
// A value that is not present in the message is written as the base type's
// invalid sentinel.
func encodeField(buf []byte, def message.FieldDef, v message.Value, present bool, engine endian.EndianEngine) ([]byte, error) {
	if !present {
		return appendInvalid(buf, def, engine), nil
	}

	if v.Kind() == message.KindBytes {
		raw := v.Raw()
		if len(raw) != int(def.Size) {
			return nil, fmt.Errorf("%w: field %d raw size %d does not match definition size %d",
				errs.ErrInternalInconsistency, def.Num, len(raw), def.Size)
		}

		return append(buf, raw...), nil
	}

	if int(def.Size) != def.Type.Size() {
		return nil, fmt.Errorf("%w: field %d scalar value for %d-byte definition of %s",
			errs.ErrInternalInconsistency, def.Num, def.Size, def.Type)
	}

	var bits uint64
	switch {
	case def.Type.Float():
		if def.Type == format.TypeFloat32 {
			bits = uint64(math.Float32bits(float32(v.AsFloat64())))
		} else {
			bits = math.Float64bits(v.AsFloat64())
		}
	case v.Kind() == message.KindInt:
		bits = uint64(v.Int64())
	default:
		bits = v.Uint64()
	}

	return appendBits(buf, bits, int(def.Size), engine), nil
}

// appendInvalid writes the absent sentinel for a definition field. For
// string and array fields the scalar sentinel byte is repeated across the
// declared size.
func appendInvalid(buf []byte, def message.FieldDef, engine endian.EndianEngine) []byte {
	if !def.Type.Valid() || def.Type == format.TypeString || int(def.Size) != def.Type.Size() {
		fill := byte(0xFF)
		if def.Type == format.TypeString || def.Type == format.TypeUint8z {
			fill = 0x00
		}
		for i := 0; i < int(def.Size); i++ {
			buf = append(buf, fill)
		}

		return buf
	}

	return appendBits(buf, def.Type.Invalid(), int(def.Size), engine)
}

func appendBits(buf []byte, bits uint64, size int, engine endian.EndianEngine) []byte {
	switch size {
	case 1:
		return append(buf, byte(bits))
	case 2:
		return engine.AppendUint16(buf, uint16(bits))
	case 4:
		return engine.AppendUint32(buf, uint32(bits))
	default:
		return engine.AppendUint64(buf, bits)
	}
}
