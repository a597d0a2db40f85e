// Package config provides configuration for the chess engine, its command
// line interface, self-play runner and game server.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	// StartFEN is the position new games start from. Empty means the
	// standard starting position.
	StartFEN string

	Search   *SearchConfig
	Server   *ServerConfig
	SelfPlay *SelfPlayConfig
	Log      *LogConfig
	Output   *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:     NewSearchConfig(),
		Server:     NewServerConfig(),
		SelfPlay:   NewSelfPlayConfig(),
		Log:        NewLogConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer that receives move text and reports.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{c.Search, c.Server, c.SelfPlay, c.Log, c.Output}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
