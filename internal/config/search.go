package config

import (
	"fmt"

	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// MaxSearchDepth caps the configured depth; the search has no time control.
const MaxSearchDepth = 8

// SearchConfig holds settings for the move search.
type SearchConfig struct {
	// Depth is the number of plies searched.
	Depth int

	// Seed seeds the move shuffle. Zero seeds from the clock.
	Seed int64
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{Depth: 3}
}

// Validate checks that the search configuration is valid.
func (s *SearchConfig) Validate() error {
	if s.Depth < 0 || s.Depth > MaxSearchDepth {
		return fmt.Errorf("search depth %d outside 0..%d: %w", s.Depth, MaxSearchDepth, errors.ErrInvalidConfig)
	}
	return nil
}
