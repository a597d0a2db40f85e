package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-ai-go/internal/chess"
)

// ParseDiagram builds a position from eight rows of eight characters, row 0
// (rank 8) first. Pieces use FEN letters, '.' marks an empty square and
// spaces are ignored. It returns nil if the diagram is malformed.
func ParseDiagram(rows ...string) *chess.Position {
	if len(rows) != chess.BoardSize {
		return nil
	}
	pos := chess.NewEmptyPosition()
	for j, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != chess.BoardSize {
			return nil
		}
		for i := 0; i < chess.BoardSize; i++ {
			c := row[i]
			if c == '.' {
				continue
			}
			cp, ok := pieceFromLetter(c)
			if !ok {
				return nil
			}
			pos.Set(chess.Sq(i, j), cp)
		}
	}
	return pos
}

// MustPosition is ParseDiagram that aborts the test on a malformed diagram.
func MustPosition(t *testing.T, rows ...string) *chess.Position {
	t.Helper()
	pos := ParseDiagram(rows...)
	if pos == nil {
		t.Fatalf("malformed board diagram:\n%s", strings.Join(rows, "\n"))
	}
	return pos
}

// Place builds an otherwise empty position holding the given pieces.
func Place(pieces map[chess.Square]chess.ColouredPiece) *chess.Position {
	pos := chess.NewEmptyPosition()
	for sq, cp := range pieces {
		pos.Set(sq, cp)
	}
	return pos
}

func pieceFromLetter(c byte) (chess.ColouredPiece, bool) {
	colour := chess.White
	if c >= 'a' && c <= 'z' {
		colour = chess.Black
		c -= 'a' - 'A'
	}
	for p := chess.Pawn; p <= chess.King; p++ {
		if p.Letter() == c {
			return chess.MakeColouredPiece(colour, p), true
		}
	}
	return chess.NoPiece, false
}
