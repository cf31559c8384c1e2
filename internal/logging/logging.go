// Package logging configures the process-wide zerolog logger. Runtime
// invocations log human-readable output to stderr; tests use a quieter
// profile. Environment variables override both profiles.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel  = "FITSYNC_LOG_LEVEL"
	EnvLogFormat = "FITSYNC_LOG_FORMAT"
)

// Profile selects a logging baseline before env overrides apply.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

// ConfigureRuntime sets up logging for CLI invocations.
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests sets up quiet logging for test binaries.
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure initializes the global logger exactly once per process.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		level := zerolog.InfoLevel
		var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

		if profile == ProfileTest {
			level = zerolog.WarnLevel
		}

		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}
		if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
			out = os.Stderr
		}

		zerolog.SetGlobalLevel(level)
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	})
}

func parseLevel(s string) (zerolog.Level, bool) {
	if s == "" {
		return zerolog.NoLevel, false
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, false
	}

	return lvl, true
}
