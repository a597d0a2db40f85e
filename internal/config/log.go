package config

import (
	"github.com/lgbarn/chess-ai-go/internal/logging"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string

	// JSON selects JSON lines instead of console output.
	JSON bool
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// Validate checks that the level name is known.
func (l *LogConfig) Validate() error {
	_, err := logging.ParseLevel(l.Level)
	return err
}
