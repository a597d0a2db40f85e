// chess-ai plays chess against a negamax alpha-beta engine, runs self-play
// matches, counts perft trees and serves games over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/logging"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-ai-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdin); err != nil {
		log.Error().Err(err).Msg("exiting")
		stop()
		os.Exit(1)
	}
}

// run dispatches to the selected mode. An explicit -play wins over the
// other modes.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, in io.Reader) error {
	switch {
	case *play:
		return runPlay(cfg, log, in, *playBlack)
	case *perftDepth > 0:
		return runPerft(cfg, *perftDepth)
	case *verifyDepth > 0:
		return runVerify(cfg, log, *verifyDepth)
	case *selfPlayGames > 0:
		return runSelfPlay(ctx, cfg, log)
	case *serve:
		return runServer(ctx, cfg, log)
	}
	return runPlay(cfg, log, in, *playBlack)
}

// newLogger builds the program logger from the log settings.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.New(cfg.LogFile, level, !cfg.Log.JSON), nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-ai [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against a negamax alpha-beta engine.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (default -play):\n")
	fmt.Fprintf(os.Stderr, "  -play        Interactive game; enter moves as e2e4, a square to list its moves\n")
	fmt.Fprintf(os.Stderr, "  -selfplay N  AI-versus-AI games on -workers goroutines\n")
	fmt.Fprintf(os.Stderr, "  -perft N     Leaf counts of the legal move tree\n")
	fmt.Fprintf(os.Stderr, "  -verify N    Perft cross-check against the reference generator\n")
	fmt.Fprintf(os.Stderr, "  -serve       HTTP API under /api/games, websocket at /ws/games/:id\n")
}
