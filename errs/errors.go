// Package errs defines the sentinel errors shared across fitsync packages.
//
// All errors are wrapped with fmt.Errorf("%w: ...") at the point of failure
// to attach context (byte offset, slot number, message kind), so callers
// should match them with errors.Is.
package errs

import "errors"

// Decode errors.
var (
	// ErrMalformedHeader indicates the file header signature mismatched or the
	// declared header size is inconsistent with the bytes available.
	ErrMalformedHeader = errors.New("malformed file header")

	// ErrTruncated indicates the input ended before a record's declared length.
	ErrTruncated = errors.New("truncated input")

	// ErrUnknownLocalType indicates a data record referenced a local type slot
	// with no definition bound to it.
	ErrUnknownLocalType = errors.New("unknown local message type")

	// ErrUnsupportedFeature indicates a record used a format feature the
	// decoder does not support (compressed timestamp headers).
	ErrUnsupportedFeature = errors.New("unsupported format feature")

	// ErrChecksumMismatch indicates the trailing checksum did not match the
	// checksum computed over header and payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Encode errors.
var (
	// ErrDefinitionLimit indicates more than 16 mutually distinct message
	// layouts were required simultaneously with no reuse opportunity.
	ErrDefinitionLimit = errors.New("local definition limit exceeded")

	// ErrInternalInconsistency indicates the encoder reached a state that
	// violates its own invariants, e.g. a field value that does not fit the
	// definition derived for it.
	ErrInternalInconsistency = errors.New("internal encoder inconsistency")
)

// Collaborator errors.
var (
	// ErrNoActivityFiles indicates no activity files were found in the
	// configured activity directory.
	ErrNoActivityFiles = errors.New("no activity files found")

	// ErrInvalidBackupDir indicates the configured backup directory does not
	// exist or is not a directory.
	ErrInvalidBackupDir = errors.New("invalid backup directory")

	// ErrNotAuthenticated indicates no usable session token is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDuplicateActivity indicates the remote service rejected the upload
	// as a duplicate of an existing activity.
	ErrDuplicateActivity = errors.New("duplicate activity")
)
