// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the application reads from its environment. All
// fields have working defaults so a bare invocation needs no setup.
type Config struct {
	// DataDir is the directory holding the database and progress snapshot.
	// Empty means a pathinformatica directory under the user config dir.
	DataDir string `env:"PATHINFORMATICA_DATA_DIR"`

	// DBFile overrides the database filename inside DataDir.
	DBFile string `env:"PATHINFORMATICA_DB" envDefault:"pathinformatica.db"`

	// UserID pins the learner identity instead of minting one on first run.
	UserID string `env:"PATHINFORMATICA_USER"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"PATHINFORMATICA_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables and resolves the
// data directory to an absolute path, creating it if needed.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "pathinformatica")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return cfg, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
	}
	return cfg, nil
}

// DBPath is the full path of the SQLite database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// SnapshotPath is the full path of the persisted progress snapshot.
func (c Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "progress.json")
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
