package engine_test

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/testutil"
	"github.com/lgbarn/chess-ai-go/internal/verify"
)

// TestLegalMoves_AgainstReference walks random games and compares the move
// set of every position with the reference generator.
func TestLegalMoves_AgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 20; game++ {
		pos := chess.NewPosition()
		colour := chess.White

		for ply := 0; ply < 80; ply++ {
			fen := engine.PositionToFEN(pos, colour)
			moves, status := engine.LegalMoves(pos, colour)

			b := dragontoothmg.ParseFen(fen)
			var want []string
			for _, m := range verify.ReferenceMoves(&b) {
				want = append(want, m.String())
			}
			sort.Strings(want)

			testutil.AssertMoveSet(t, moves, want, "game %d ply %d: %s", game, ply, fen)
			if t.Failed() || status.IsOver() {
				break
			}

			m := moves[rng.Intn(len(moves))]
			pos.MakeMove(m)
			colour = colour.Opposite()
		}
		if t.Failed() {
			return
		}
	}
}
