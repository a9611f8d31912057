package config

import (
	"os"
	"path/filepath"

	"github.com/icebreaker-games/icebreaker/internal/logging"
)

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	// File receives logs while the TUI owns the terminal. Empty means stderr.
	File string `yaml:"file" env:"LOG_FILE"`
}

// ToLoggingConfig converts the config section into a logging.Config.
//   - Level and Format are copied directly
//   - a non-empty File selects file output, otherwise stderr
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// EnsureLogDir creates the directory of the configured log file.
func (lc LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(lc.File), configDirFileMode)
}
