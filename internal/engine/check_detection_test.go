package engine

import (
	"testing"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/testutil"
)

func TestChecksAndPins(t *testing.T) {
	tests := []struct {
		name       string
		pieces     placement
		colour     chess.Colour
		wantCheck  bool
		wantChecks []Vector
		wantPins   Pins
	}{
		{
			name: "rook on the file",
			pieces: placement{
				chess.Sq(4, 7): chess.W(chess.King),
				chess.Sq(4, 0): chess.B(chess.Rook),
			},
			colour:     chess.White,
			wantCheck:  true,
			wantChecks: []Vector{{Square: chess.Sq(4, 0), Dir: Direction{0, -1}}},
		},
		{
			name: "rook and bishop",
			pieces: placement{
				chess.Sq(4, 7): chess.W(chess.King),
				chess.Sq(4, 0): chess.B(chess.Rook),
				chess.Sq(0, 3): chess.B(chess.Bishop),
			},
			colour:    chess.White,
			wantCheck: true,
			wantChecks: []Vector{
				{Square: chess.Sq(4, 0), Dir: Direction{0, -1}},
				{Square: chess.Sq(0, 3), Dir: Direction{-1, -1}},
			},
		},
		{
			name: "rook and knight",
			pieces: placement{
				chess.Sq(4, 7): chess.W(chess.King),
				chess.Sq(4, 0): chess.B(chess.Rook),
				chess.Sq(3, 5): chess.B(chess.Knight),
			},
			colour:    chess.White,
			wantCheck: true,
			wantChecks: []Vector{
				{Square: chess.Sq(4, 0), Dir: Direction{0, -1}},
				{Square: chess.Sq(3, 5), Dir: Direction{-1, -2}},
			},
		},
		{
			name: "bishop on a file does not check",
			pieces: placement{
				chess.Sq(4, 7): chess.W(chess.King),
				chess.Sq(4, 0): chess.B(chess.Bishop),
			},
			colour: chess.White,
		},
		{
			name: "black pawn checks white king from above",
			pieces: placement{
				chess.Sq(4, 4): chess.W(chess.King),
				chess.Sq(3, 3): chess.B(chess.Pawn),
			},
			colour:     chess.White,
			wantCheck:  true,
			wantChecks: []Vector{{Square: chess.Sq(3, 3), Dir: Direction{-1, -1}}},
		},
		{
			name: "black pawn behind white king does not check",
			pieces: placement{
				chess.Sq(4, 4): chess.W(chess.King),
				chess.Sq(3, 5): chess.B(chess.Pawn),
			},
			colour: chess.White,
		},
		{
			name: "white pawn checks black king from below",
			pieces: placement{
				chess.Sq(4, 4): chess.B(chess.King),
				chess.Sq(5, 5): chess.W(chess.Pawn),
			},
			colour:     chess.Black,
			wantCheck:  true,
			wantChecks: []Vector{{Square: chess.Sq(5, 5), Dir: Direction{1, 1}}},
		},
		{
			name: "pawn in front does not check",
			pieces: placement{
				chess.Sq(4, 4): chess.B(chess.King),
				chess.Sq(4, 5): chess.W(chess.Pawn),
			},
			colour: chess.Black,
		},
		{
			name: "adjacent king",
			pieces: placement{
				chess.Sq(4, 4): chess.W(chess.King),
				chess.Sq(5, 3): chess.B(chess.King),
			},
			colour:     chess.White,
			wantCheck:  true,
			wantChecks: []Vector{{Square: chess.Sq(5, 3), Dir: Direction{1, -1}}},
		},
		{
			name: "queen pins rook",
			pieces: placement{
				chess.Sq(0, 0): chess.W(chess.King),
				chess.Sq(1, 0): chess.W(chess.Rook),
				chess.Sq(2, 0): chess.B(chess.Queen),
			},
			colour:   chess.White,
			wantPins: Pins{chess.Sq(1, 0): {1, 0}},
		},
		{
			name: "two friendly pieces break the pin",
			pieces: placement{
				chess.Sq(0, 0): chess.W(chess.King),
				chess.Sq(1, 0): chess.W(chess.Rook),
				chess.Sq(2, 0): chess.W(chess.Knight),
				chess.Sq(5, 0): chess.B(chess.Queen),
			},
			colour: chess.White,
		},
		{
			name: "enemy knight shields the king",
			pieces: placement{
				chess.Sq(4, 7): chess.W(chess.King),
				chess.Sq(4, 5): chess.B(chess.Knight),
				chess.Sq(4, 0): chess.B(chess.Rook),
			},
			colour: chess.White,
		},
		{
			name: "rook cannot pin on a diagonal",
			pieces: placement{
				chess.Sq(0, 7): chess.B(chess.King),
				chess.Sq(1, 6): chess.B(chess.Bishop),
				chess.Sq(4, 3): chess.W(chess.Rook),
			},
			colour: chess.Black,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.Place(tt.pieces)
			info := ChecksAndPins(pos, tt.colour)

			testutil.AssertEqual(t, info.InCheck, tt.wantCheck, "in check")
			testutil.AssertEqual(t, info.Checks, tt.wantChecks, "checks")
			want := tt.wantPins
			if want == nil {
				want = Pins{}
			}
			testutil.AssertEqual(t, info.Pins, want, "pins")
			testutil.AssertEqual(t, IsInCheck(pos, tt.colour), tt.wantCheck)
		})
	}
}

func TestChecksAndPins_NoKing(t *testing.T) {
	pos := testutil.Place(placement{chess.Sq(3, 3): chess.B(chess.Queen)})
	info := ChecksAndPins(pos, chess.White)
	testutil.AssertFalse(t, info.InCheck)
	testutil.AssertEqual(t, len(info.Checks), 0)
}

func TestBlockingSquares(t *testing.T) {
	king := chess.Sq(4, 7)

	t.Run("slider", func(t *testing.T) {
		got := blockingSquares(king, Vector{Square: chess.Sq(4, 4), Dir: Direction{0, -1}})
		testutil.AssertEqual(t, got, map[chess.Square]bool{
			chess.Sq(4, 6): true, chess.Sq(4, 5): true, chess.Sq(4, 4): true,
		})
	})

	t.Run("knight", func(t *testing.T) {
		got := blockingSquares(king, Vector{Square: chess.Sq(3, 5), Dir: Direction{-1, -2}})
		testutil.AssertEqual(t, got, map[chess.Square]bool{chess.Sq(3, 5): true})
	})
}
