package backup

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arloliu/fitsync/errs"
)

// activityPattern matches the trainer's output files; the suffix after the
// dash is the trainer version, e.g. MyNewActivity-3.8.5.fit.
const activityPattern = "MyNewActivity-*.fit"

var versionDigits = regexp.MustCompile(`\d+`)

// MostRecent returns the newest activity file in dir, ordered by the numeric
// version components embedded in the filename rather than by mtime, which
// the trainer does not update reliably.
func MostRecent(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, activityPattern))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %s in %s", errs.ErrNoActivityFiles, activityPattern, dir)
	}

	sort.Slice(matches, func(i, j int) bool {
		return versionLess(extractVersion(matches[j]), extractVersion(matches[i]))
	})

	return matches[0], nil
}

// extractVersion pulls the numeric version components out of the filename,
// e.g. "MyNewActivity-3.8.5.fit" -> [3 8 5].
func extractVersion(path string) []int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "-")
	digits := versionDigits.FindAllString(parts[len(parts)-1], -1)

	version := make([]int, 0, len(digits))
	for _, d := range digits {
		n, _ := strconv.Atoi(d)
		version = append(version, n)
	}

	return version
}

func versionLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}
