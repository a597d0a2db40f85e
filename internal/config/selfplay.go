package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// DuplicateKey selects what makes two self-play games the same game.
type DuplicateKey int

const (
	FinalPosition DuplicateKey = iota // Same final position and side to move
	AllPositions                      // Same positions in the same order
	MoveSequence                      // Same moves
)

// String returns the flag spelling of the key.
func (k DuplicateKey) String() string {
	switch k {
	case AllPositions:
		return "positions"
	case MoveSequence:
		return "moves"
	}
	return "final"
}

// ParseDuplicateKey maps "final", "positions" or "moves" to a key.
func ParseDuplicateKey(name string) (DuplicateKey, error) {
	switch name {
	case "", "final":
		return FinalPosition, nil
	case "positions":
		return AllPositions, nil
	case "moves":
		return MoveSequence, nil
	}
	return FinalPosition, fmt.Errorf("duplicate key %q: %w", name, errors.ErrInvalidConfig)
}

// SelfPlayConfig holds settings for AI-versus-AI runs.
type SelfPlayConfig struct {
	// Games is the number of games to play.
	Games int

	// Workers is the number of games played concurrently.
	Workers int

	// MaxPlies stops a game unfinished when reached.
	MaxPlies int

	// DuplicateKey decides which games count as duplicates.
	DuplicateKey DuplicateKey
}

// NewSelfPlayConfig creates a SelfPlayConfig with default values.
func NewSelfPlayConfig() *SelfPlayConfig {
	return &SelfPlayConfig{
		Games:    1,
		Workers:  runtime.NumCPU(),
		MaxPlies: 200,
	}
}

// Validate checks that the self-play configuration is valid.
func (s *SelfPlayConfig) Validate() error {
	if s.Games < 0 {
		return fmt.Errorf("negative game count %d: %w", s.Games, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("worker count %d must be positive: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.MaxPlies < 1 {
		return fmt.Errorf("ply limit %d must be positive: %w", s.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
