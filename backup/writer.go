package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arloliu/fitsync/compress"
	"github.com/arloliu/fitsync/errs"
)

// Writer stores cleaned activity files and compressed copies of their
// originals in the backup directory.
type Writer struct {
	codec compress.Codec
	dir   string
}

// NewWriter creates a Writer for the backup directory. The directory must
// already exist; a missing backup target means the user's choice is stale
// and should be re-made, not silently recreated.
func NewWriter(dir string, codec compress.Codec) (*Writer, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBackupDir, dir)
	}

	return &Writer{dir: dir, codec: codec}, nil
}

// TimestampName derives the backup filename for a source file:
// <stem>_YYYY-MM-DD_HHMMSS.fit.
func TimestampName(src string, t time.Time) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return fmt.Sprintf("%s_%s.fit", stem, t.Format("2006-01-02_150405"))
}

// SaveCleaned writes the cleaned bytes under the timestamped name and
// returns the full path. Nothing is written for a failed transform; callers
// only reach this with complete output bytes.
func (w *Writer) SaveCleaned(src string, data []byte, t time.Time) (string, error) {
	dst := filepath.Join(w.dir, TimestampName(src, t))

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cleaned file: %w", err)
	}

	log.Info().Str("path", dst).Int("bytes", len(data)).Msg("saved cleaned activity")

	return dst, nil
}

// ArchiveOriginal stores a compressed copy of the untouched source next to
// the cleaned backups, named after the cleaned file plus the codec suffix.
func (w *Writer) ArchiveOriginal(src string, data []byte, t time.Time) (string, error) {
	compressed, err := w.codec.Compress(data)
	if err != nil {
		return "", fmt.Errorf("failed to compress original: %w", err)
	}

	dst := filepath.Join(w.dir, TimestampName(src, t)+".orig"+w.codec.Ext())
	if err := os.WriteFile(dst, compressed, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	log.Debug().Str("path", dst).
		Int("original_bytes", len(data)).
		Int("archived_bytes", len(compressed)).
		Msg("archived original activity")

	return dst, nil
}
