// Package format defines the wire-level constants of the compact binary
// activity-file format: base type codes, global message kinds, record header
// bits, and the field identifiers consumed by the rewrite pipeline.
package format

import "math"

// BaseType is a primitive field encoding. The code is taken verbatim from the
// wire format: bit 7 marks multi-byte endian-sensitive types, bits 0-4 select
// the type number.
type BaseType uint8

const (
	TypeEnum    BaseType = 0x00
	TypeSint8   BaseType = 0x01
	TypeUint8   BaseType = 0x02
	TypeSint16  BaseType = 0x83
	TypeUint16  BaseType = 0x84
	TypeSint32  BaseType = 0x85
	TypeUint32  BaseType = 0x86
	TypeString  BaseType = 0x07
	TypeFloat32 BaseType = 0x88
	TypeFloat64 BaseType = 0x89
	TypeUint8z  BaseType = 0x0A
	TypeUint16z BaseType = 0x8B
	TypeUint32z BaseType = 0x8C
	TypeByte    BaseType = 0x0D
	TypeSint64  BaseType = 0x8E
	TypeUint64  BaseType = 0x8F
	TypeUint64z BaseType = 0x90
)

// baseTypeInfo holds the static properties of one base type.
type baseTypeInfo struct {
	name    string
	size    int
	invalid uint64
	signed  bool
	float   bool
}

var baseTypes = map[BaseType]baseTypeInfo{
	TypeEnum:    {"enum", 1, 0xFF, false, false},
	TypeSint8:   {"sint8", 1, 0x7F, true, false},
	TypeUint8:   {"uint8", 1, 0xFF, false, false},
	TypeSint16:  {"sint16", 2, 0x7FFF, true, false},
	TypeUint16:  {"uint16", 2, 0xFFFF, false, false},
	TypeSint32:  {"sint32", 4, 0x7FFFFFFF, true, false},
	TypeUint32:  {"uint32", 4, 0xFFFFFFFF, false, false},
	TypeString:  {"string", 1, 0x00, false, false},
	TypeFloat32: {"float32", 4, 0xFFFFFFFF, false, true},
	TypeFloat64: {"float64", 8, math.MaxUint64, false, true},
	TypeUint8z:  {"uint8z", 1, 0x00, false, false},
	TypeUint16z: {"uint16z", 2, 0x0000, false, false},
	TypeUint32z: {"uint32z", 4, 0x00000000, false, false},
	TypeByte:    {"byte", 1, 0xFF, false, false},
	TypeSint64:  {"sint64", 8, 0x7FFFFFFFFFFFFFFF, true, false},
	TypeUint64:  {"uint64", 8, math.MaxUint64, false, false},
	TypeUint64z: {"uint64z", 8, 0, false, false},
}

// Valid reports whether the code is a known base type.
func (t BaseType) Valid() bool {
	_, ok := baseTypes[t]
	return ok
}

// Size returns the byte size of a single value of this base type.
// For TypeString this is the size of one character; string fields declare
// their full length in the field descriptor.
func (t BaseType) Size() int {
	return baseTypes[t].size
}

// Invalid returns the "invalid" sentinel for this base type, as an unsigned
// bit pattern of Size() bytes. A field whose raw bytes equal this sentinel is
// absent, which is distinct from present-with-zero.
func (t BaseType) Invalid() uint64 {
	return baseTypes[t].invalid
}

// Signed reports whether values of this type are two's-complement signed.
func (t BaseType) Signed() bool {
	return baseTypes[t].signed
}

// Float reports whether values of this type are IEEE-754 floating point.
func (t BaseType) Float() bool {
	return baseTypes[t].float
}

func (t BaseType) String() string {
	if info, ok := baseTypes[t]; ok {
		return info.name
	}

	return "unknown"
}

// MesgNum is a global message kind identifier, stable across files and
// independent of the local type slot a definition happens to occupy.
type MesgNum uint16

const (
	MesgFileID      MesgNum = 0
	MesgSession     MesgNum = 18
	MesgLap         MesgNum = 19
	MesgRecord      MesgNum = 20
	MesgEvent       MesgNum = 21
	MesgDeviceInfo  MesgNum = 23
	MesgActivity    MesgNum = 34
	MesgFileCreator MesgNum = 49
)

func (m MesgNum) String() string {
	switch m {
	case MesgFileID:
		return "file_id"
	case MesgSession:
		return "session"
	case MesgLap:
		return "lap"
	case MesgRecord:
		return "record"
	case MesgEvent:
		return "event"
	case MesgDeviceInfo:
		return "device_info"
	case MesgActivity:
		return "activity"
	case MesgFileCreator:
		return "file_creator"
	default:
		return "other"
	}
}

// Record header byte layout.
const (
	// CompressedHeaderMask marks a compressed-timestamp record header (bit 7).
	// Compressed timestamps are not supported and fail decoding.
	CompressedHeaderMask = 0x80
	// DefinitionMask selects a definition record over a data record (bit 6).
	DefinitionMask = 0x40
	// LocalTypeMask extracts the local type slot (bits 0-3).
	LocalTypeMask = 0x0F

	// MaxLocalTypes is the number of local type slots.
	MaxLocalTypes = 16
)

// Field identifiers within record messages.
const (
	RecordHeartRate   = 3
	RecordCadence     = 4
	RecordPower       = 7
	RecordTemperature = 13
	RecordTimestamp   = 253
)

// Field identifiers within session messages.
const (
	SessionEvent            = 0
	SessionEventType        = 1
	SessionStartTime        = 2
	SessionSport            = 5
	SessionSubSport         = 6
	SessionTotalElapsedTime = 7
	SessionTotalTimerTime   = 8
	SessionTotalDistance    = 9
	SessionTotalCalories    = 11
	SessionAvgSpeed         = 14
	SessionMaxSpeed         = 15
	SessionAvgHeartRate     = 16
	SessionMaxHeartRate     = 17
	SessionAvgCadence       = 18
	SessionMaxCadence       = 19
	SessionAvgPower         = 20
	SessionMaxPower         = 21
	SessionFirstLapIndex    = 25
	SessionNumLaps          = 26
	SessionTimestamp        = 253
	SessionMessageIndex     = 254
)

// Field identifiers within lap messages.
const (
	LapStartTime        = 2
	LapTotalElapsedTime = 7
	LapTotalTimerTime   = 8
	LapTotalDistance    = 9
	LapTotalCalories    = 11
	LapAvgSpeed         = 13
	LapMaxSpeed         = 14
	LapAvgHeartRate     = 15
	LapMaxHeartRate     = 16
	LapAvgCadence       = 17
	LapMaxCadence       = 18
	LapTimestamp        = 253
)

// Field identifiers within file creator messages.
const (
	FileCreatorSoftwareVersion = 0
	FileCreatorHardwareVersion = 1
)
