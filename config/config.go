// Package config loads and persists the tool configuration: the backup
// directory choice, archive compression codec, session token path, and an
// optional activity directory override. Values come from a TOML file with
// environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"

	"github.com/arloliu/fitsync/compress"
)

// Config holds the persisted tool settings.
type Config struct {
	// BackupDir is where cleaned files and archived originals are written.
	BackupDir string `toml:"backup_dir" env:"FITSYNC_BACKUP_DIR"`
	// ActivityDir overrides per-OS activity directory discovery when set.
	ActivityDir string `toml:"activity_dir" env:"FITSYNC_ACTIVITY_DIR"`
	// ArchiveCompression selects the codec for archived originals:
	// none, zstd, s2 or lz4.
	ArchiveCompression string `toml:"archive_compression" env:"FITSYNC_ARCHIVE_COMPRESSION"`
	// TokenPath is where the remote-service session token is persisted.
	TokenPath string `toml:"token_path" env:"FITSYNC_TOKEN_PATH"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		ArchiveCompression: "zstd",
		TokenPath:          filepath.Join(configDir(), "token.json"),
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = home
	}

	return filepath.Join(base, "fitsync")
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, then applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the config file, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if _, err := compress.ForName(c.ArchiveCompression); err != nil {
		return err
	}

	return nil
}

// ArchiveCodec returns the codec selected by ArchiveCompression. Validate
// must have passed.
func (c Config) ArchiveCodec() compress.Codec {
	codec, err := compress.ForName(c.ArchiveCompression)
	if err != nil {
		return compress.NewNoOpCodec()
	}

	return codec
}
