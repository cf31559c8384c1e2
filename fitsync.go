// Package fitsync cleans compact binary activity files and prepares them for
// upload: it decodes the typed message stream, strips the temperature field
// from record messages, rebuilds session average statistics in a single
// forward pass, and re-encodes a byte-valid file with a fresh length and
// checksum trailer.
//
// # Basic Usage
//
// Cleaning a file already loaded into memory:
//
//	import "github.com/arloliu/fitsync"
//
//	cleaned, err := fitsync.Clean(data)
//	if err != nil {
//	    // the input is left untouched; no partial output exists
//	}
//
// Streaming from an io.Reader:
//
//	cleaned, err := fitsync.CleanReader(f)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// pipeline packages. For fine-grained control use fit.Decoder, fit.Encoder
// and pipeline.Cleaner directly; the backup and garmin packages implement the
// file-discovery and upload collaborators around the core.
package fitsync

import (
	"fmt"
	"io"

	"github.com/arloliu/fitsync/fit"
	"github.com/arloliu/fitsync/pipeline"
)

// Clean decodes data, applies the rewrite pipeline to every message, and
// re-encodes the result. On any decode or encode error no output bytes are
// produced.
func Clean(data []byte, opts ...fit.DecoderOption) ([]byte, error) {
	decoder, err := fit.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	encoder := fit.NewEncoder(fit.WithProfileVersion(decoder.Header().ProfileVersion))
	cleaner := pipeline.NewCleaner()

	for {
		msg, err := decoder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if err := encoder.WriteMessage(cleaner.Process(msg)); err != nil {
			return nil, err
		}
	}

	return encoder.Finish()
}

// CleanReader reads the whole source and cleans it. The source is consumed
// even when cleaning fails.
func CleanReader(r io.Reader, opts ...fit.DecoderOption) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return Clean(data, opts...)
}
