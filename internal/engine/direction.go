package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Direction is a step on the grid: a unit ray direction for sliding pieces,
// or an offset for leapers.
type Direction struct {
	DI int // column step
	DJ int // row step
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DI: -d.DI, DJ: -d.DJ}
}

// IsOrthogonal reports whether d runs along a row or a column.
func (d Direction) IsOrthogonal() bool {
	return (d.DI == 0) != (d.DJ == 0)
}

// IsDiagonal reports whether d runs along a diagonal.
func (d Direction) IsDiagonal() bool {
	return d.DI != 0 && abs(d.DI) == abs(d.DJ)
}

// step returns sq moved n times along d.
func (d Direction) step(sq chess.Square, n int) chess.Square {
	return sq.Add(d.DI*n, d.DJ*n)
}

// Ray directions, orthogonal first. Check detection relies on this order:
// indexes 0-3 are rook lines and 4-7 bishop lines.
var (
	orthogonalDirs = []Direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs   = []Direction{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	allDirs        = append(append([]Direction{}, orthogonalDirs...), diagonalDirs...)
)

var knightOffsets = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}

var kingOffsets = []Direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// InferDirection returns the unit direction of a move: the sign of its column
// and row displacement.
func InferDirection(m chess.Move) Direction {
	return Direction{
		DI: sign(m.To.Col - m.From.Col),
		DJ: sign(m.To.Row - m.From.Row),
	}
}
