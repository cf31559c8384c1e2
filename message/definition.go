package message

import (
	"fmt"

	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/format"
)

// FieldDef is one 3-byte field descriptor of a definition record.
type FieldDef struct {
	Num  uint8
	Size uint8
	Type format.BaseType
}

// Definition binds a global message kind to an ordered field layout. Data
// records are decoded and encoded against the definition bound to their
// local type slot.
type Definition struct {
	Fields    []FieldDef
	MesgNum   format.MesgNum
	BigEndian bool
}

// DataSize returns the total byte count of a data record body using this
// definition.
func (d *Definition) DataSize() int {
	total := 0
	for _, f := range d.Fields {
		total += int(f.Size)
	}

	return total
}

// Equal reports whether two definitions describe the same layout: same global
// kind, same byte order, and the same ordered field descriptors.
func (d *Definition) Equal(other *Definition) bool {
	if other == nil || d.MesgNum != other.MesgNum || d.BigEndian != other.BigEndian {
		return false
	}
	if len(d.Fields) != len(other.Fields) {
		return false
	}
	for i := range d.Fields {
		if d.Fields[i] != other.Fields[i] {
			return false
		}
	}

	return true
}

// Registry binds local type slots to message definitions. A slot holds the
// most recently bound definition; rebinding replaces it (last-write-wins) and
// does not affect data records already decoded against the old binding.
type Registry struct {
	slots [format.MaxLocalTypes]*Definition
}

// NewRegistry creates an empty registry with all 16 slots unbound.
func NewRegistry() *Registry {
	return &Registry{}
}

// Bind stores the definition in the given slot, replacing any previous
// binding.
func (r *Registry) Bind(slot uint8, def *Definition) error {
	if int(slot) >= len(r.slots) {
		return fmt.Errorf("%w: local type slot %d out of range", errs.ErrInternalInconsistency, slot)
	}
	r.slots[slot] = def

	return nil
}

// Lookup returns the definition bound to the slot.
func (r *Registry) Lookup(slot uint8) (*Definition, error) {
	if int(slot) >= len(r.slots) || r.slots[slot] == nil {
		return nil, fmt.Errorf("%w: slot %d", errs.ErrUnknownLocalType, slot)
	}

	return r.slots[slot], nil
}

// Reset unbinds all slots.
func (r *Registry) Reset() {
	for i := range r.slots {
		r.slots[i] = nil
	}
}
