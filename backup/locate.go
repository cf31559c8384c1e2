// Package backup implements the file collaborators around the codec core:
// locating the trainer's activity directory, picking the newest activity
// file, writing the cleaned output with a timestamp suffix, archiving the
// untouched original, and tracking fingerprints of already-synced sources.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arloliu/fitsync/errs"
)

// windowsPackagePrefix identifies the trainer's package directory under
// AppData/Local/Packages on Windows installs.
const windowsPackagePrefix = "MyWhooshTechnologyService."

// LocateActivityDir returns the per-OS directory the trainer writes activity
// files into.
func LocateActivityDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	if runtime.GOOS == "windows" {
		return locateWindows(home)
	}

	return locatePosix(home)
}

func locatePosix(home string) (string, error) {
	dir := filepath.Join(home,
		"Library", "Containers", "com.whoosh.whooshgame",
		"Data", "Library", "Application Support",
		"Epic", "MyWhoosh", "Content", "Data")

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: activity directory %s does not exist", errs.ErrNoActivityFiles, dir)
	}

	return dir, nil
}

func locateWindows(home string) (string, error) {
	packages := filepath.Join(home, "AppData", "Local", "Packages")

	entries, err := os.ReadDir(packages)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", errs.ErrNoActivityFiles, packages, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) < len(windowsPackagePrefix) ||
			entry.Name()[:len(windowsPackagePrefix)] != windowsPackagePrefix {
			continue
		}

		candidate := filepath.Join(packages, entry.Name(),
			"LocalCache", "Local", "MyWhoosh", "Content", "Data")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no trainer package under %s", errs.ErrNoActivityFiles, packages)
}
