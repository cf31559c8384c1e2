// Package fit implements the streaming codec for compact binary activity
// files: a forward-only Decoder that turns bytes into message values, and an
// Encoder that serializes messages back into a byte-valid file with a
// patched payload length and checksum trailer.
//
// Both sides share the message definition model from the message package: a
// definition record binds one of 16 local type slots to a field layout, and
// every data record is decoded or encoded against the definition currently
// bound to its slot.
package fit
