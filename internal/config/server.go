package config

import (
	"fmt"

	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// AllowOrigins is the CORS origin list passed to the server.
	AllowOrigins string

	// AIReplies makes the server answer every human move with an AI move
	// unless a game opts out.
	AIReplies bool
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":3000",
		AllowOrigins: "*",
		AIReplies:    true,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	return nil
}
