package chess

import "strings"

// Position represents the board: the grid of square contents, the cached king
// squares and the log of applied moves.
type Position struct {
	// The board squares, indexed grid[row][col].
	grid [BoardSize][BoardSize]ColouredPiece

	// Keep track of where the two kings are for check detection.
	// Indexed by Colour.
	kings [2]Square

	// Moves accepted for display, in the order they were played.
	log []Move
}

var backRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewEmptyPosition creates a position with no pieces on it.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// NewPosition creates a position set up for the start of a game.
func NewPosition() *Position {
	p := NewEmptyPosition()
	p.SetupInitialPosition()
	return p
}

// Clear removes every piece from the grid and forgets the king squares.
func (p *Position) Clear() {
	p.grid = [BoardSize][BoardSize]ColouredPiece{}
	p.kings = [2]Square{{Col: -1, Row: -1}, {Col: -1, Row: -1}}
	p.log = nil
}

// SetupInitialPosition sets up the standard chess starting position.
func (p *Position) SetupInitialPosition() {
	p.Clear()
	for col := 0; col < BoardSize; col++ {
		p.Set(Sq(col, 0), B(backRank[col]))
		p.Set(Sq(col, 1), B(Pawn))
		p.Set(Sq(col, 6), W(Pawn))
		p.Set(Sq(col, 7), W(backRank[col]))
	}
}

// Get returns the content of a square. Squares off the board read as empty.
func (p *Position) Get(sq Square) ColouredPiece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return p.grid[sq.Row][sq.Col]
}

// At returns the content of square (i, j).
func (p *Position) At(i, j int) ColouredPiece {
	return p.Get(Sq(i, j))
}

// Set places a piece on a square. Placing a king also moves that colour's
// cached king square; overwriting the cached king square with anything else
// forgets it.
func (p *Position) Set(sq Square, cp ColouredPiece) {
	if !sq.OnBoard() {
		return
	}
	old := p.grid[sq.Row][sq.Col]
	if old.Piece == King && p.kings[old.Colour] == sq {
		p.kings[old.Colour] = Square{Col: -1, Row: -1}
	}
	p.grid[sq.Row][sq.Col] = cp
	if cp.Piece == King {
		p.kings[cp.Colour] = sq
	}
}

// KingSquare returns the cached king square of a colour. The square is off
// the board when that colour has no king.
func (p *Position) KingSquare(colour Colour) Square {
	return p.kings[colour]
}

// SetKingSquare overwrites the cached king square without touching the grid.
// The move generator uses it to probe candidate king destinations.
func (p *Position) SetKingSquare(colour Colour, sq Square) {
	p.kings[colour] = sq
}

// MakeMove applies a move to the grid. A pawn reaching its farthest row
// becomes a queen. The source square must hold a piece.
func (p *Position) MakeMove(m Move) {
	piece := p.grid[m.From.Row][m.From.Col]
	p.grid[m.From.Row][m.From.Col] = NoPiece
	if target := p.grid[m.To.Row][m.To.Col]; target.Piece == King {
		p.kings[target.Colour] = Square{Col: -1, Row: -1}
	}

	if piece.Piece == Pawn && m.To.Row == PromotionRow(piece.Colour) {
		piece.Piece = Queen
	}
	p.grid[m.To.Row][m.To.Col] = piece

	if piece.Piece == King {
		p.kings[piece.Colour] = m.To
	}
}

// UndoMove reverses the most recent MakeMove, which must have been given m.
func (p *Position) UndoMove(m Move) {
	piece := p.grid[m.To.Row][m.To.Col]
	if m.Promotion {
		piece.Piece = Pawn
	}
	p.grid[m.From.Row][m.From.Col] = piece
	p.grid[m.To.Row][m.To.Col] = m.Captured

	if piece.Piece == King {
		p.kings[piece.Colour] = m.From
	}
	if m.Captured.Piece == King {
		p.kings[m.Captured.Colour] = m.To
	}
}

// Score sums the signed material on the board, white positive.
func (p *Position) Score() int {
	score := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			score += p.grid[row][col].SignedValue()
		}
	}
	return score
}

// ReturnValidMove classifies the destination of the piece standing on from.
// It returns a quiet move onto an empty square, a capture onto an enemy piece,
// and false when the destination holds a friendly piece or is off the board.
func (p *Position) ReturnValidMove(from, to Square) (Move, bool) {
	if !to.OnBoard() {
		return Move{}, false
	}
	mover := p.Get(from)
	target := p.grid[to.Row][to.Col]
	if target.IsEmpty() {
		return Move{From: from, To: to}, true
	}
	if target.Colour == mover.Colour {
		return Move{}, false
	}
	return Move{From: from, To: to, Captured: target}, true
}

// LogMove records an applied move for display.
func (p *Position) LogMove(m Move) {
	p.log = append(p.log, m)
}

// Log returns the moves recorded with LogMove.
func (p *Position) Log() []Move {
	return p.log
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	c := &Position{
		grid:  p.grid,
		kings: p.kings,
	}
	if len(p.log) > 0 {
		c.log = append([]Move(nil), p.log...)
	}
	return c
}

// Equal reports whether two positions hold the same pieces and king squares.
// The move log is not compared.
func (p *Position) Equal(other *Position) bool {
	return p.grid == other.grid && p.kings == other.kings
}

// String renders the grid one row per line with two-character piece codes.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.grid[row][col].String())
		}
		if row < BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
