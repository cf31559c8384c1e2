package message

import "github.com/arloliu/fitsync/format"

// Field pairs a field identifier with its value.
type Field struct {
	Value Value
	Num   uint8
}

// Message is one decoded data record: a global message kind plus an ordered
// field-identifier to value table. Field order is preserved from the wire so
// re-encoding a pass-through message keeps its layout stable.
//
// The decoder constructs messages, the pipeline consumes or rebuilds them,
// and the encoder consumes them without retaining them past emission.
type Message struct {
	MesgNum format.MesgNum
	fields  []Field
}

// New creates an empty message of the given global kind.
func New(num format.MesgNum) *Message {
	return &Message{MesgNum: num}
}

// Get returns the value bound to the field identifier, and whether the field
// is present.
func (m *Message) Get(num uint8) (Value, bool) {
	for i := range m.fields {
		if m.fields[i].Num == num {
			return m.fields[i].Value, true
		}
	}

	return Value{}, false
}

// Has reports whether the field identifier is present.
func (m *Message) Has(num uint8) bool {
	_, ok := m.Get(num)
	return ok
}

// Set binds a value to the field identifier, replacing an existing binding in
// place or appending a new field at the end of the table.
func (m *Message) Set(num uint8, v Value) {
	for i := range m.fields {
		if m.fields[i].Num == num {
			m.fields[i].Value = v
			return
		}
	}

	m.fields = append(m.fields, Field{Num: num, Value: v})
}

// Remove deletes the field identifier from the table if present, preserving
// the order of the remaining fields. It reports whether a field was removed.
func (m *Message) Remove(num uint8) bool {
	for i := range m.fields {
		if m.fields[i].Num == num {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of present fields.
func (m *Message) Len() int {
	return len(m.fields)
}

// Fields returns the ordered field table. The returned slice is owned by the
// message and must not be mutated by the caller.
func (m *Message) Fields() []Field {
	return m.fields
}
