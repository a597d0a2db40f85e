package config

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/testutil"
)

// TestSearchConfig_Defaults verifies SearchConfig has sensible defaults
func TestSearchConfig_Defaults(t *testing.T) {
	cfg := NewSearchConfig()

	if cfg.Depth != 3 {
		t.Errorf("Depth = %d, want 3", cfg.Depth)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0 (clock seeded)", cfg.Seed)
	}
}

// TestOutputConfig_Defaults verifies OutputConfig has sensible defaults
func TestOutputConfig_Defaults(t *testing.T) {
	cfg := NewOutputConfig()

	if cfg.Format != SAN {
		t.Errorf("Format = %v, want %v", cfg.Format, SAN)
	}
	if cfg.MaxLineLength != 80 {
		t.Errorf("MaxLineLength = %d, want 80", cfg.MaxLineLength)
	}
	if !cfg.KeepMoveNumbers {
		t.Error("KeepMoveNumbers should be true by default")
	}
	if !cfg.KeepChecks {
		t.Error("KeepChecks should be true by default")
	}
}

func TestServerConfig_Defaults(t *testing.T) {
	cfg := NewServerConfig()

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if !cfg.AIReplies {
		t.Error("AIReplies should be true by default")
	}
}

func TestSelfPlayConfig_Defaults(t *testing.T) {
	cfg := NewSelfPlayConfig()

	if cfg.Games != 1 {
		t.Errorf("Games = %d, want 1", cfg.Games)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
	if cfg.MaxPlies != 200 {
		t.Errorf("MaxPlies = %d, want 200", cfg.MaxPlies)
	}
	if cfg.DuplicateKey != FinalPosition {
		t.Errorf("DuplicateKey = %v, want final", cfg.DuplicateKey)
	}
}

// TestConfig_Validate verifies every section is validated
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"depth zero", func(c *Config) { c.Search.Depth = 0 }, false},
		{"negative depth", func(c *Config) { c.Search.Depth = -1 }, true},
		{"depth too large", func(c *Config) { c.Search.Depth = MaxSearchDepth + 1 }, true},
		{"empty address", func(c *Config) { c.Server.Addr = "" }, true},
		{"negative games", func(c *Config) { c.SelfPlay.Games = -2 }, true},
		{"no workers", func(c *Config) { c.SelfPlay.Workers = 0 }, true},
		{"no plies", func(c *Config) { c.SelfPlay.MaxPlies = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }, true},
		{"short lines", func(c *Config) { c.Output.MaxLineLength = 5 }, true},
		{"unlimited lines", func(c *Config) { c.Output.MaxLineLength = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    OutputFormat
		wantErr bool
	}{
		{"", SAN, false},
		{"san", SAN, false},
		{"uci", UCI, false},
		{"pgn", SAN, true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	testutil.AssertEqual(t, UCI.String(), "uci")
}

func TestParseDuplicateKey(t *testing.T) {
	tests := []struct {
		name    string
		want    DuplicateKey
		wantErr bool
	}{
		{"", FinalPosition, false},
		{"final", FinalPosition, false},
		{"positions", AllPositions, false},
		{"moves", MoveSequence, false},
		{"fuzzy", FinalPosition, true},
	}
	for _, tt := range tests {
		got, err := ParseDuplicateKey(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuplicateKey(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDuplicateKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	_, err := ParseDuplicateKey("x")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	testutil.AssertEqual(t, MoveSequence.String(), "moves")
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	logs := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithStartFEN("8/8/8/8/8/8/8/K6k w - - 0 1").
		WithDepth(4).
		WithSeed(17).
		WithAddr(":8080").
		WithAIReplies(false).
		WithSelfPlay(10, 2, 120).
		WithLogLevel("debug").
		WithJSONLogs(true).
		WithOutputFormat(UCI).
		WithMaxLineLength(120).
		WithLogOutput(logs).
		Build()

	if cfg.Search.Depth != 4 || cfg.Search.Seed != 17 {
		t.Errorf("Search = %+v, want depth 4 seed 17", cfg.Search)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.AIReplies {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.SelfPlay.Games != 10 || cfg.SelfPlay.Workers != 2 || cfg.SelfPlay.MaxPlies != 120 {
		t.Errorf("SelfPlay = %+v", cfg.SelfPlay)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Output.Format != UCI {
		t.Errorf("Format = %v, want UCI", cfg.Output.Format)
	}
	if cfg.Output.MaxLineLength != 120 {
		t.Errorf("MaxLineLength = %d, want 120", cfg.Output.MaxLineLength)
	}
	if cfg.LogFile != logs {
		t.Error("WithLogOutput did not set LogFile")
	}
	if cfg.StartFEN == "" {
		t.Error("StartFEN not set")
	}
	testutil.AssertNoError(t, cfg.Validate())
}
