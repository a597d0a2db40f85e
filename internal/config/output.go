package config

import (
	"fmt"

	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// OutputFormat selects how moves are written.
type OutputFormat int

const (
	SAN OutputFormat = iota // Short algebraic (Nf3, exd5, a8=Q)
	UCI                     // Coordinate form (g1f3)
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	if f == UCI {
		return "uci"
	}
	return "san"
}

// ParseOutputFormat maps "san" or "uci" to a format.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "", "san":
		return SAN, nil
	case "uci":
		return UCI, nil
	}
	return SAN, fmt.Errorf("output format %q: %w", name, errors.ErrInvalidConfig)
}

// OutputConfig holds settings related to move text output.
type OutputConfig struct {
	// Format specifies the move notation.
	Format OutputFormat

	// MaxLineLength is the maximum line length of move text.
	MaxLineLength uint

	// KeepMoveNumbers controls whether move numbers are included.
	KeepMoveNumbers bool

	// KeepChecks controls whether check symbols (+, #) are included.
	KeepChecks bool

	// ShowBoard prints the board after every move in interactive play.
	ShowBoard bool

	// JSONFormat writes finished games as JSON instead of move text.
	JSONFormat bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepChecks:      true,
		ShowBoard:       true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength != 0 && o.MaxLineLength < 10 {
		return fmt.Errorf("line length %d too short: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
