// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine interface, so codec code can read fixed-width
// integers and append them to a growing buffer through one handle.
//
// Activity files are little-endian by default, but every definition record
// carries its own byte-order flag, so both engines are used.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// making it fully compatible with existing code while providing both
// read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default byte
// order of the file format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Select returns the engine matching a definition record's byte-order flag.
func Select(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
