// modes.go - Non-interactive program modes
package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/eco"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/selfplay"
	"github.com/lgbarn/chess-ai-go/internal/server"
	"github.com/lgbarn/chess-ai-go/internal/service"
	"github.com/lgbarn/chess-ai-go/internal/verify"
)

// verifySuite is checked by -verify when no -fen is given.
var verifySuite = []string{
	engine.InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
}

func positionFEN(cfg *config.Config) string {
	if cfg.StartFEN != "" {
		return cfg.StartFEN
	}
	return engine.InitialFEN
}

// loadOpenings returns the opening classifier selected by -e.
func loadOpenings() (*eco.ECOClassifier, error) {
	if *ecoFile == "" {
		return eco.Default(), nil
	}
	ec := eco.NewECOClassifier()
	if err := ec.LoadFromFile(*ecoFile); err != nil {
		return nil, err
	}
	return ec, nil
}

// runPerft prints the node count below every root move and the total.
func runPerft(cfg *config.Config, depth int) error {
	pos, toMove, err := engine.NewPositionFromFEN(positionFEN(cfg))
	if err != nil {
		return err
	}

	divide := engine.Divide(pos, toMove, depth)
	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	w := cfg.OutputFile
	var total uint64
	for _, m := range moves {
		fmt.Fprintf(w, "%s: %d\n", m, divide[m])
		total += divide[m]
	}
	fmt.Fprintf(w, "\nNodes searched: %d\n", total)
	return nil
}

// runVerify compares perft counts with the reference generator.
func runVerify(cfg *config.Config, log zerolog.Logger, depth int) error {
	fens := verifySuite
	if cfg.StartFEN != "" {
		fens = []string{cfg.StartFEN}
	}
	if err := verify.Suite(log, fens, depth); err != nil {
		return err
	}
	fmt.Fprintf(cfg.OutputFile, "%d position(s) agree to depth %d\n", len(fens), depth)
	return nil
}

// runSelfPlay plays the configured games and writes them out.
func runSelfPlay(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	opts := selfplay.FromConfig(cfg, log)
	openings, err := loadOpenings()
	if err != nil {
		return err
	}
	opts.Openings = openings

	matcher, err := buildMatcher()
	if err != nil {
		return err
	}

	summary, runErr := selfplay.Run(ctx, opts)
	if summary == nil {
		return runErr
	}

	writer := output.NewGameWriter(cfg.OutputFile, cfg.Output.JSONFormat, cfg.Output)
	written := 0
	for _, res := range summary.Results {
		if !selectGame(res, matcher) {
			continue
		}
		if err := writer.WriteGame(res.Record); err != nil {
			return err
		}
		written++
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if !cfg.Output.JSONFormat {
		fmt.Fprintf(cfg.OutputFile, "%d game(s): +%d -%d =%d, %d unfinished, %d duplicate(s), %d written (seed %d)\n",
			summary.Games, summary.WhiteWins, summary.BlackWins, summary.Draws, summary.Unfinished,
			summary.Duplicates, written, summary.Seed)
	}
	return runErr
}

// runServer serves games until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	openings, err := loadOpenings()
	if err != nil {
		return err
	}
	srv := server.New(cfg, service.NewGameManager(cfg, log, service.WithOpenings(openings)), log)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return srv.Shutdown()
	}
}
