// Package verify cross-checks the move generator against the dragontoothmg
// bitboard generator. The reference moves are filtered down to the rules the
// engine plays: no castling, no en passant and promotion to a queen only.
package verify

import (
	"fmt"
	"sort"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// Diff is one root move on which the two generators disagree. A count of -1
// means the generator did not produce the move at all.
type Diff struct {
	Move string
	Got  int64
	Want int64
}

func (d Diff) String() string {
	return fmt.Sprintf("%s: got %d, want %d", d.Move, d.Got, d.Want)
}

// Result is the outcome of a perft comparison.
type Result struct {
	FEN   string
	Depth int
	Got   uint64
	Want  uint64
	Diffs []Diff
}

// OK reports whether both generators agree.
func (r *Result) OK() bool {
	return r.Got == r.Want && len(r.Diffs) == 0
}

// ReferenceMoves returns the legal moves of b that exist under the engine's
// rules.
func ReferenceMoves(b *dragontoothmg.Board) []dragontoothmg.Move {
	all := b.GenerateLegalMoves()
	moves := all[:0]
	for _, m := range all {
		if allowed(b, m) {
			moves = append(moves, m)
		}
	}
	return moves
}

func allowed(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	own, opp := &b.White, &b.Black
	if !b.Wtomove {
		own, opp = opp, own
	}
	from, to := uint64(1)<<m.From(), uint64(1)<<m.To()
	fileFrom, fileTo := int(m.From()%8), int(m.To()%8)

	if p := m.Promote(); p != dragontoothmg.Nothing && p != dragontoothmg.Queen {
		return false
	}
	if own.Kings&from != 0 && abs(fileTo-fileFrom) == 2 {
		return false
	}
	if own.Pawns&from != 0 && fileFrom != fileTo && opp.All&to == 0 {
		return false
	}
	return true
}

// ReferencePerft counts rule-subset leaf nodes of b to the given depth.
func ReferencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := ReferenceMoves(b)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += ReferencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

// ReferenceDivide returns the reference perft count below each root move.
func ReferenceDivide(b *dragontoothmg.Board, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	for _, m := range ReferenceMoves(b) {
		unapply := b.Apply(m)
		counts[m.String()] = ReferencePerft(b, depth-1)
		unapply()
	}
	return counts
}

// Compare runs perft on the position with both generators. It returns a
// result together with an error wrapping ErrPerftMismatch when the counts
// differ.
func Compare(pos *chess.Position, toMove chess.Colour, depth int) (*Result, error) {
	fen := engine.PositionToFEN(pos, toMove)
	b := dragontoothmg.ParseFen(fen)

	got := engine.Divide(pos, toMove, depth)
	want := ReferenceDivide(&b, depth)

	res := &Result{FEN: fen, Depth: depth, Diffs: diff(got, want)}
	if depth <= 0 {
		res.Got, res.Want = 1, 1
	}
	for _, n := range got {
		res.Got += n
	}
	for _, n := range want {
		res.Want += n
	}
	if !res.OK() {
		return res, fmt.Errorf("%s depth %d: %d nodes, reference %d: %w",
			fen, depth, res.Got, res.Want, errors.ErrPerftMismatch)
	}
	return res, nil
}

// CompareFEN is Compare for a FEN string.
func CompareFEN(fen string, depth int) (*Result, error) {
	pos, toMove, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return Compare(pos, toMove, depth)
}

// Suite compares each FEN up to maxDepth, logging every result, and returns
// the first mismatch.
func Suite(log zerolog.Logger, fens []string, maxDepth int) error {
	for _, fen := range fens {
		for depth := 1; depth <= maxDepth; depth++ {
			res, err := CompareFEN(fen, depth)
			if res == nil {
				return err
			}
			ev := log.Info()
			if err != nil {
				ev = log.Error().Err(err)
			}
			ev.Str("fen", fen).Int("depth", depth).Uint64("nodes", res.Got).Uint64("reference", res.Want).Msg("perft")
			if err != nil {
				for _, d := range res.Diffs {
					log.Error().Str("move", d.Move).Int64("got", d.Got).Int64("want", d.Want).Msg("divide")
				}
				return err
			}
		}
	}
	return nil
}

// diff lists the root moves whose counts differ, sorted by move.
func diff(got, want map[string]uint64) []Diff {
	var diffs []Diff
	for m, n := range got {
		w, ok := want[m]
		switch {
		case !ok:
			diffs = append(diffs, Diff{Move: m, Got: int64(n), Want: -1})
		case w != n:
			diffs = append(diffs, Diff{Move: m, Got: int64(n), Want: int64(w)})
		}
	}
	for m, w := range want {
		if _, ok := got[m]; !ok {
			diffs = append(diffs, Diff{Move: m, Got: -1, Want: int64(w)})
		}
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Move < diffs[j].Move })
	return diffs
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
