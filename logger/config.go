package logger

import (
	"time"
)

const defaultTimestampFormat = time.RFC3339

// Config provides configuration for a logger.
type Config struct {
	Level      string
	Formatter  string
	OutputFile string
	TextFormat TextFormatConfig
	JSONFormat JSONFormatConfig
}

// TextFormatConfig provides configuration for the text logger.
type TextFormatConfig struct {
	// Set to true to bypass checking for a TTY before outputting colors.
	ForceColors bool
	// Force disabling colors.
	DisableColors bool
	// Disable timestamp logging. useful when output is redirected to logging
	// system that already adds timestamps.
	DisableTimestamp bool
	// Enable logging the full timestamp when a TTY is attached instead of just
	// the time passed since beginning of execution.
	FullTimestamp bool
	// TimestampFormat to use for display when a full timestamp is printed
	TimestampFormat string
	// The fields are sorted by default for a consistent output. For applications
	// that log extremely frequently and don't use the JSON formatter this may not
	// be desired.
	DisableSorting bool
	Indent         string
}

// JSONFormatConfig provides configuration for the JSON logger.
type JSONFormatConfig struct {
	DisableTimestamp bool
	TimestampFormat  string
}

// DefaultConfig returns a Config instance with default values.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Formatter: "text",
		TextFormat: TextFormatConfig{
			FullTimestamp:   true,
			TimestampFormat: defaultTimestampFormat,
		},
		JSONFormat: JSONFormatConfig{
			TimestampFormat: defaultTimestampFormat,
		},
	}
}

// DebugConfig returns a Config instance with default values useful for testing/debugging.
func DebugConfig() Config {
	return Config{
		Level:     "debug",
		Formatter: "text",
		TextFormat: TextFormatConfig{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: defaultTimestampFormat,
		},
		JSONFormat: JSONFormatConfig{
			TimestampFormat: defaultTimestampFormat,
		},
	}
}
