// Package selfplay plays AI-versus-AI games concurrently. Each game owns its
// position and searcher; the searcher of game i is seeded with seed+i so a run
// can be repeated from its logged base seed.
package selfplay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/eco"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/game"
	"github.com/lgbarn/chess-ai-go/internal/hashing"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/search"
	"github.com/lgbarn/chess-ai-go/internal/worker"
)

// Terminations written to records of games that did not end on the board.
const (
	MoveLimit = "move limit"
	Aborted   = "aborted"
)

// Options configures a self-play run.
type Options struct {
	Games    int
	Workers  int
	MaxPlies int
	Depth    int
	Seed     int64
	StartFEN string
	Logger   zerolog.Logger

	// Openings names the opening of each finished game. Nil skips naming.
	Openings *eco.ECOClassifier

	// DuplicateKey decides which games are flagged as duplicates.
	DuplicateKey hashing.HashType
}

// FromConfig builds run options from the program configuration.
func FromConfig(cfg *config.Config, log zerolog.Logger) Options {
	return Options{
		Games:    cfg.SelfPlay.Games,
		Workers:  cfg.SelfPlay.Workers,
		MaxPlies: cfg.SelfPlay.MaxPlies,
		Depth:    cfg.Search.Depth,
		Seed:     cfg.Search.Seed,
		StartFEN: cfg.StartFEN,
		Logger:   log,
		Openings: eco.Default(),

		DuplicateKey: hashing.HashTypeFor(cfg.SelfPlay.DuplicateKey),
	}
}

// Summary tallies a run.
type Summary struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int
	Duplicates int
	Plies      int
	Nodes      uint64
	Elapsed    time.Duration
	Seed       int64
	Results    []worker.ProcessResult
}

// Records returns the game records in game order.
func (s *Summary) Records() []*output.GameRecord {
	recs := make([]*output.GameRecord, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Record != nil {
			recs = append(recs, r.Record)
		}
	}
	return recs
}

func (s *Summary) add(res worker.ProcessResult) {
	s.Results = append(s.Results, res)
	s.Nodes += res.Nodes
	if res.Record == nil {
		return
	}
	s.Games++
	s.Plies += res.Record.PlyCount()
	if res.Duplicate {
		s.Duplicates++
	}
	switch res.Record.Result {
	case output.WhiteWins:
		s.WhiteWins++
	case output.BlackWins:
		s.BlackWins++
	case output.Draw:
		s.Draws++
	default:
		s.Unfinished++
	}
}

// Run plays opts.Games games on a worker pool and returns the tally. It
// returns ctx's error if the run was cancelled; games finished before that
// are still in the summary.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.StartFEN == "" {
		opts.StartFEN = engine.InitialFEN
	}
	if _, _, err := engine.NewPositionFromFEN(opts.StartFEN); err != nil {
		return nil, err
	}

	log := opts.Logger
	log.Info().
		Int("games", opts.Games).
		Int("workers", opts.Workers).
		Int("depth", opts.Depth).
		Int64("seed", opts.Seed).
		Msg("self-play started")

	items := make([]worker.WorkItem, opts.Games)
	for i := range items {
		items[i] = worker.WorkItem{Index: i, StartFEN: opts.StartFEN, Seed: opts.Seed + int64(i)}
	}

	seen := hashing.NewThreadSafeDuplicateDetector(true, 0)
	seen.SetHashType(opts.DuplicateKey)
	pool := worker.NewPoolWithOptions(
		func(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
			res := PlayGame(ctx, item, opts.Depth, opts.MaxPlies, log)
			if res.Record != nil && res.Record.Termination != Aborted {
				res.Duplicate = seen.CheckAndAdd(res.Record)
				if opts.Openings != nil {
					opts.Openings.AddECOTags(res.Record)
				}
			}
			return res
		},
		worker.WithWorkers(opts.Workers),
		worker.WithBufferSize(opts.Workers),
		worker.WithContext(ctx),
	)

	summary := &Summary{Seed: opts.Seed}
	for _, res := range pool.Run(items) {
		if res.Error != nil {
			log.Error().Err(res.Error).Int("index", res.Index).Msg("game failed")
		}
		summary.add(res)
	}
	summary.Elapsed = time.Since(start)

	log.Info().
		Int("games", summary.Games).
		Int("white", summary.WhiteWins).
		Int("black", summary.BlackWins).
		Int("draws", summary.Draws).
		Int("unfinished", summary.Unfinished).
		Int("duplicates", summary.Duplicates).
		Uint64("nodes", summary.Nodes).
		Dur("elapsed", summary.Elapsed).
		Msg("self-play finished")

	return summary, ctx.Err()
}

// PlayGame plays one game to the end, to maxPlies or until ctx is done.
// A game stopped at maxPlies keeps the unfinished result "*".
func PlayGame(ctx context.Context, item worker.WorkItem, depth, maxPlies int, log zerolog.Logger) worker.ProcessResult {
	id := fmt.Sprintf("selfplay-%d", item.Index+1)
	searcher := search.NewSearcher(depth, search.WithSeed(item.Seed), search.WithLogger(log))

	fen := item.StartFEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	g, err := game.NewFromFEN(fen, game.WithID(id), game.WithSearcher(searcher), game.WithLogger(log))
	if err != nil {
		return worker.ProcessResult{Index: item.Index, Error: err}
	}

	var nodes uint64
	aborted := false
	for !g.IsOver() && g.Plies() < maxPlies {
		if ctx.Err() != nil {
			aborted = true
			break
		}
		if _, err := g.AIMove(); err != nil {
			return worker.ProcessResult{Index: item.Index, Record: g.Record(), Nodes: nodes, Error: err}
		}
		nodes += searcher.Stats().Nodes
	}

	rec := g.Record()
	name := fmt.Sprintf("AI depth %d", depth)
	rec.White, rec.Black = name, name
	switch {
	case aborted:
		rec.Termination = Aborted
	case !g.IsOver():
		rec.Termination = MoveLimit
	}

	log.Info().
		Str("game", id).
		Str("result", rec.Result).
		Int("plies", rec.PlyCount()).
		Int64("seed", item.Seed).
		Msg("game finished")

	return worker.ProcessResult{Index: item.Index, Record: rec, Nodes: nodes}
}
