package message

import "github.com/arloliu/fitsync/format"

// ValueKind discriminates the scalar representation held by a Value.
type ValueKind uint8

const (
	KindUint ValueKind = iota
	KindInt
	KindFloat
	// KindBytes carries string and array fields verbatim; their declared size
	// differs from the base type's scalar size and they pass through the
	// pipeline untouched.
	KindBytes
)

// Value is a typed scalar tagged with its wire base type. The zero Value is
// an absent uint of type enum; callers should only construct values through
// the Uint, Int, Float and Bytes constructors.
type Value struct {
	raw  []byte
	u    uint64
	i    int64
	f    float64
	typ  format.BaseType
	kind ValueKind
}

// Uint creates an unsigned integer value of the given base type.
func Uint(typ format.BaseType, v uint64) Value {
	return Value{typ: typ, kind: KindUint, u: v}
}

// Int creates a signed integer value of the given base type.
func Int(typ format.BaseType, v int64) Value {
	return Value{typ: typ, kind: KindInt, i: v}
}

// Float creates a floating point value of the given base type.
func Float(typ format.BaseType, v float64) Value {
	return Value{typ: typ, kind: KindFloat, f: v}
}

// Bytes creates a raw-byte value of the given base type. The declared field
// size is len(raw), which may exceed the base type's scalar size for string
// and array fields.
func Bytes(typ format.BaseType, raw []byte) Value {
	return Value{typ: typ, kind: KindBytes, raw: raw}
}

// Type returns the wire base type of the value.
func (v Value) Type() format.BaseType {
	return v.typ
}

// Kind returns the scalar representation of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Uint64 returns the value as an unsigned integer. Only meaningful for
// KindUint values.
func (v Value) Uint64() uint64 {
	return v.u
}

// Int64 returns the value as a signed integer. Only meaningful for KindInt
// values.
func (v Value) Int64() int64 {
	return v.i
}

// Float64 returns the value as a float. Only meaningful for KindFloat values.
func (v Value) Float64() float64 {
	return v.f
}

// Raw returns the raw bytes of a KindBytes value.
func (v Value) Raw() []byte {
	return v.raw
}

// AsFloat64 converts any numeric value to float64 for aggregation. KindBytes
// values convert to 0.
func (v Value) AsFloat64() float64 {
	switch v.kind {
	case KindUint:
		return float64(v.u)
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	default:
		return 0
	}
}

// Size returns the serialized byte count of the value.
func (v Value) Size() int {
	if v.kind == KindBytes {
		return len(v.raw)
	}

	return v.typ.Size()
}
