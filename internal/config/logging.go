package config

import (
	"path/filepath"

	"github.com/rshade/gridview/internal/logging"
)

// defaultLogFileName is used when the TUI needs a log file and none is configured.
const defaultLogFileName = "gridview.log"

// LoggingConfig is the logging section of the configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file"   yaml:"file,omitempty"`
}

// ToLoggingConfig converts the logging section to logging.Config.
//
// The conversion applies these rules:
//   - Level and Format are copied directly
//   - If File is set, Output becomes "file"
//   - If File is empty, Output is "stderr", unless interactive is set, in which case
//     logs are discarded so they cannot corrupt the terminal UI
func (lc *LoggingConfig) ToLoggingConfig(interactive bool) logging.Config {
	output := logging.OutputStderr
	switch {
	case lc.File != "":
		output = logging.OutputFile
	case interactive:
		output = logging.OutputDiscard
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Level == "debug" || lc.Level == "trace",
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global configuration.
// Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

// DefaultLogFile returns the log file used by the TUI in debug mode.
func DefaultLogFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(".", defaultLogFileName)
	}
	return filepath.Join(dir, defaultLogFileName)
}
