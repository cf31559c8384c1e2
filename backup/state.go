package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/fitsync/internal/hash"
)

// stateFile is the sync-state filename inside the backup directory.
const stateFile = ".fitsync-state.toml"

// State records what the last successful sync processed, keyed by a content
// fingerprint of the source file. A source whose fingerprint matches is
// skipped instead of being cleaned and uploaded again.
type State struct {
	LastFingerprint string    `toml:"last_fingerprint"`
	LastSource      string    `toml:"last_source"`
	LastSynced      time.Time `toml:"last_synced"`
}

// LoadState reads the sync state from the backup directory. A missing state
// file yields the zero State.
func LoadState(dir string) (State, error) {
	var st State

	if _, err := toml.DecodeFile(filepath.Join(dir, stateFile), &st); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}

		return State{}, fmt.Errorf("failed to read sync state: %w", err)
	}

	return st, nil
}

// SaveState persists the sync state into the backup directory.
func SaveState(dir string, st State) error {
	f, err := os.Create(filepath.Join(dir, stateFile))
	if err != nil {
		return fmt.Errorf("failed to create sync state: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(st); err != nil {
		return fmt.Errorf("failed to encode sync state: %w", err)
	}

	return nil
}

// AlreadySynced reports whether the source bytes match the fingerprint of
// the last successful sync.
func (s State) AlreadySynced(data []byte) bool {
	return s.LastFingerprint != "" && s.LastFingerprint == hash.FingerprintString(data)
}

// MarkSynced returns the state recording a successful sync of src.
func MarkSynced(src string, data []byte, t time.Time) State {
	return State{
		LastFingerprint: hash.FingerprintString(data),
		LastSource:      src,
		LastSynced:      t,
	}
}
