// Package search picks moves with a fixed-depth negamax search with
// alpha-beta pruning. The position is explored by make/undo and is always
// restored before a call returns.
package search

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
)

// MaxScore bounds every evaluation. Being mated scores -MaxScore for the side
// to move.
const MaxScore = 10000

// DefaultDepth is the search depth used when none is configured.
const DefaultDepth = 3

// Stats describes the most recent search.
type Stats struct {
	Nodes     uint64
	Cutoffs   uint64
	BestScore int
	Elapsed   time.Duration
	// Fallback is set when no move beat the sentinel and a random legal
	// move was chosen instead.
	Fallback bool
}

// Searcher runs searches for one game at a time. It is not safe for
// concurrent use.
type Searcher struct {
	depth int
	rng   *rand.Rand
	log   zerolog.Logger

	best  chess.Move
	found bool
	stats Stats
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger that receives per-search statistics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Searcher) {
		s.log = log
	}
}

// WithSeed seeds the move shuffle and the random fallback. Zero seeds from
// the clock.
func WithSeed(seed int64) Option {
	return func(s *Searcher) {
		s.rng = NewRand(seed)
	}
}

// WithRand injects the random source directly.
func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		s.rng = r
	}
}

// NewRand creates a random source from seed, or from the clock if seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}

// NewSearcher creates a searcher looking depth plies ahead. A depth below
// zero is treated as zero.
func NewSearcher(depth int, opts ...Option) *Searcher {
	if depth < 0 {
		depth = 0
	}
	s := &Searcher{
		depth: depth,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	return s
}

// Depth returns the configured search depth.
func (s *Searcher) Depth() int { return s.depth }

// SetDepth changes the search depth for later searches.
func (s *Searcher) SetDepth(depth int) {
	if depth >= 0 {
		s.depth = depth
	}
}

// Stats returns the statistics of the most recent FindMove.
func (s *Searcher) Stats() Stats { return s.stats }

// FindMove searches for the best move of colour. It returns false only when
// colour has no legal moves. When the search finds nothing better than being
// mated a random legal move is returned.
func (s *Searcher) FindMove(pos *chess.Position, colour chess.Colour) (chess.Move, bool) {
	start := time.Now()
	s.stats = Stats{}

	moves, status := engine.LegalMoves(pos, colour)
	if len(moves) == 0 {
		return chess.Move{}, false
	}

	score := s.NegaMaxAlphaBeta(pos, moves, status, s.depth, -MaxScore, MaxScore, Multiplier(colour))
	s.stats.BestScore = score

	best := s.best
	if !s.found {
		best = moves[s.rng.Intn(len(moves))]
		s.stats.Fallback = true
	}
	s.stats.Elapsed = time.Since(start)

	s.log.Debug().
		Str("colour", colour.String()).
		Int("depth", s.depth).
		Str("move", best.UCI()).
		Int("score", score).
		Uint64("nodes", s.stats.Nodes).
		Uint64("cutoffs", s.stats.Cutoffs).
		Bool("fallback", s.stats.Fallback).
		Dur("elapsed", s.stats.Elapsed).
		Msg("search complete")

	return best, true
}

// Multiplier returns +1 when white is to move and -1 otherwise.
func Multiplier(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return -1
}

func colourOf(multiplier int) chess.Colour {
	if multiplier > 0 {
		return chess.White
	}
	return chess.Black
}

// NegaMaxAlphaBeta returns the score of the position for the side to move,
// given its legal moves and their status. The moves slice is reordered in
// place. The best move is recorded only at the root call, where depth equals
// the searcher's configured depth.
func (s *Searcher) NegaMaxAlphaBeta(pos *chess.Position, moves []chess.Move, status engine.Status, depth, alpha, beta, multiplier int) int {
	root := depth == s.depth
	if root {
		s.found = false
	}
	return s.negamax(pos, moves, status, depth, alpha, beta, multiplier, root)
}

// BestMove returns the move recorded by the last root search, if any beat
// the sentinel score.
func (s *Searcher) BestMove() (chess.Move, bool) {
	return s.best, s.found
}

func (s *Searcher) negamax(pos *chess.Position, moves []chess.Move, status engine.Status, depth, alpha, beta, multiplier int, root bool) int {
	s.stats.Nodes++
	if depth == 0 {
		return multiplier * pos.Score()
	}
	if len(moves) == 0 {
		if status.InCheck {
			return -MaxScore
		}
		return 0
	}

	s.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	opponent := colourOf(multiplier).Opposite()
	maxScore := -MaxScore
	for _, m := range moves {
		pos.MakeMove(m)
		var replies []chess.Move
		var replyStatus engine.Status
		if depth > 1 {
			replies, replyStatus = engine.LegalMoves(pos, opponent)
		}
		score := -s.negamax(pos, replies, replyStatus, depth-1, -beta, -alpha, -multiplier, false)
		pos.UndoMove(m)

		if score > maxScore {
			maxScore = score
			if root {
				s.best = m
				s.found = true
			}
		}
		if maxScore > alpha {
			alpha = maxScore
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return maxScore
}
