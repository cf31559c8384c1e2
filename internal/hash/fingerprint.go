// Package hash computes content fingerprints for activity files. The sync
// flow uses them to recognize a source file it has already cleaned and
// uploaded, so an unchanged file is skipped instead of re-processed.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of the file content.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintString returns the fingerprint formatted as a fixed-width hex
// string, the form persisted in the sync state file.
func FingerprintString(data []byte) string {
	return fmt.Sprintf("%016x", Fingerprint(data))
}
