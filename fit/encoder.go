package fit

import (
	"fmt"

	"github.com/arloliu/fitsync/endian"
	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
	"github.com/arloliu/fitsync/section"
)

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithProfileVersion overrides the profile version written into the header.
func WithProfileVersion(v uint16) EncoderOption {
	return func(e *Encoder) {
		e.header.ProfileVersion = v
	}
}

// Encoder serializes messages into a byte-valid activity file.
//
// The encoder maintains its own 16-slot definition registry. For every
// outgoing message it derives the field layout from the present fields; when
// an equal definition is already bound to a slot, the data record reuses that
// slot, otherwise a fresh definition record is emitted first on the next slot
// in round-robin order.
//
// Note: the Encoder is NOT thread-safe. After Finish the encoder must not be
// reused.
type Encoder struct {
	engine   endian.EndianEngine
	payload  []byte
	header   section.Header
	slots    [format.MaxLocalTypes]*message.Definition
	nextSlot uint8
	finished bool
}

// NewEncoder creates an Encoder producing a little-endian file.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		engine: endian.GetLittleEndianEngine(),
		header: section.NewHeader(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WriteMessage serializes one message, emitting a definition record first
// when no bound slot matches the message's layout.
func (e *Encoder) WriteMessage(msg *message.Message) error {
	if e.finished {
		return fmt.Errorf("%w: write after Finish", errs.ErrInternalInconsistency)
	}

	def := deriveDefinition(msg)

	slot, ok := e.findSlot(def)
	if !ok {
		slot = e.bindSlot(def)
		e.writeDefinition(slot, def)
	}

	return e.writeData(slot, def, msg)
}

// Finish patches the payload length into the header, computes the checksum
// over header and payload, and returns the complete file bytes.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, fmt.Errorf("%w: Finish called twice", errs.ErrInternalInconsistency)
	}
	e.finished = true

	e.header.DataSize = uint32(len(e.payload))

	out := e.header.Bytes()
	out = append(out, e.payload...)
	out = e.engine.AppendUint16(out, section.CRC16(out))

	return out, nil
}

// deriveDefinition builds the little-endian field layout covering exactly the
// fields present in the message, in table order.
func deriveDefinition(msg *message.Message) *message.Definition {
	fields := msg.Fields()
	def := &message.Definition{
		MesgNum: msg.MesgNum,
		Fields:  make([]message.FieldDef, len(fields)),
	}
	for i, f := range fields {
		def.Fields[i] = message.FieldDef{
			Num:  f.Num,
			Size: uint8(f.Value.Size()),
			Type: f.Value.Type(),
		}
	}

	return def
}

// findSlot returns the slot already bound to an equal definition.
func (e *Encoder) findSlot(def *message.Definition) (uint8, bool) {
	for slot, bound := range e.slots {
		if bound != nil && bound.Equal(def) {
			return uint8(slot), true
		}
	}

	return 0, false
}

// bindSlot binds the definition to the next slot in round-robin order,
// evicting whatever definition held it before.
func (e *Encoder) bindSlot(def *message.Definition) uint8 {
	slot := e.nextSlot
	e.nextSlot = (e.nextSlot + 1) % format.MaxLocalTypes
	e.slots[slot] = def

	return slot
}

func (e *Encoder) writeDefinition(slot uint8, def *message.Definition) {
	e.payload = append(e.payload, format.DefinitionMask|slot)
	e.payload = append(e.payload, 0) // reserved
	e.payload = append(e.payload, 0) // architecture: little-endian
	e.payload = e.engine.AppendUint16(e.payload, uint16(def.MesgNum))
	e.payload = append(e.payload, uint8(len(def.Fields)))
	for _, f := range def.Fields {
		e.payload = append(e.payload, f.Num, f.Size, uint8(f.Type))
	}
}

func (e *Encoder) writeData(slot uint8, def *message.Definition, msg *message.Message) error {
	e.payload = append(e.payload, slot)

	for _, f := range def.Fields {
		v, present := msg.Get(f.Num)

		var err error
		e.payload, err = encodeField(e.payload, f, v, present, e.engine)
		if err != nil {
			return fmt.Errorf("%w: message kind %s", err, msg.MesgNum)
		}
	}

	return nil
}
