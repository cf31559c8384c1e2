// Package message models decoded activity-file messages: typed field values,
// the field-identifier to value table of a message, message definitions, and
// the 16-slot registry binding local type slots to definitions.
//
// A field is either present with a value or absent from the message entirely;
// absent is distinct from present-with-zero. The decoder maps wire values
// equal to a base type's invalid sentinel to absent, and the encoder writes
// the sentinel for fields a definition declares but a message does not carry.
package message
