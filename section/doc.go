// Package section implements the fixed structural sections of an activity
// file: the file header at the start and the 16-bit checksum trailer at the
// end. The variable-length record stream between them is handled by the fit
// package.
package section
