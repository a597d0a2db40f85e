package chess

import "fmt"

// Move represents a single move together with the data needed to undo it.
type Move struct {
	// Source square.
	From Square

	// Destination square.
	To Square

	// The piece captured on the destination (NoPiece if not a capture).
	Captured ColouredPiece

	// Whether a pawn lands on its farthest row with this move.
	Promotion bool
}

// NewMove creates a quiet move between two squares.
func NewMove(i, j, ni, nj int) Move {
	return Move{From: Sq(i, j), To: Sq(ni, nj)}
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion
}

// Equal compares moves by their endpoints only. Capture and promotion data
// describe a move but do not identify it.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// MaterialGain returns the material the mover wins with this move: the value
// of the captured piece plus the queen-for-pawn swap of a promotion.
func (m Move) MaterialGain() int {
	gain := m.Captured.Piece.Value()
	if m.Promotion {
		gain += Queen.Value() - Pawn.Value()
	}
	return gain
}

// UCI returns the coordinate form of the move, e.g. "e2e4" or "a7a8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion {
		s += "q"
	}
	return s
}

// String returns a debugging representation of the move.
func (m Move) String() string {
	s := fmt.Sprintf("(%d, %d) -> (%d, %d)", m.From.Col, m.From.Row, m.To.Col, m.To.Row)
	if m.IsCapture() {
		s += " x" + m.Captured.String()
	}
	if m.Promotion {
		s += " =Q"
	}
	return s
}

// ContainsMove reports whether moves holds a move with the same endpoints as m.
func ContainsMove(moves []Move, m Move) bool {
	return IndexMove(moves, m) >= 0
}

// IndexMove returns the index of the first move with the same endpoints as m,
// or -1.
func IndexMove(moves []Move, m Move) int {
	for i := range moves {
		if moves[i].Equal(m) {
			return i
		}
	}
	return -1
}
