// Package chess provides the position model: pieces, squares, moves and the
// mutable 8x8 grid the move generator and search operate on.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns 'w' or 'b'.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Piece represents a chess piece kind.
type Piece int

const (
	Empty Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{'-', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Value returns the material value of a piece kind. The king carries a large
// value so that a line ending in its capture is never scored as favourable.
func (p Piece) Value() int {
	switch p {
	case Pawn:
		return 10
	case Knight, Bishop:
		return 30
	case Rook:
		return 50
	case Queen:
		return 90
	case King:
		return 900
	}
	return 0
}

// ColouredPiece is the content of a square: a piece kind with its colour.
// The zero value is an empty square.
type ColouredPiece struct {
	Colour Colour
	Piece  Piece
}

// NoPiece is the content of an empty square.
var NoPiece = ColouredPiece{}

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) ColouredPiece {
	if piece == Empty {
		return NoPiece
	}
	return ColouredPiece{Colour: colour, Piece: piece}
}

// W creates a white piece.
func W(piece Piece) ColouredPiece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) ColouredPiece {
	return MakeColouredPiece(Black, piece)
}

// IsEmpty reports whether the square content is empty.
func (cp ColouredPiece) IsEmpty() bool {
	return cp.Piece == Empty
}

// Is reports whether the square holds the given colour and kind.
func (cp ColouredPiece) Is(colour Colour, piece Piece) bool {
	return cp.Piece == piece && cp.Colour == colour && piece != Empty
}

// IsColour reports whether the square holds a piece of the given colour.
func (cp ColouredPiece) IsColour(colour Colour) bool {
	return cp.Piece != Empty && cp.Colour == colour
}

// SignedValue returns the piece value, positive for white and negative for black.
func (cp ColouredPiece) SignedValue() int {
	if cp.Colour == White {
		return cp.Piece.Value()
	}
	return -cp.Piece.Value()
}

// String returns the two-character code used for board dumps ("wK", "bP", "--").
func (cp ColouredPiece) String() string {
	if cp.IsEmpty() {
		return "--"
	}
	return string([]byte{cp.Colour.Letter(), cp.Piece.Letter()})
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	ColBase = 'a'
)

// Square addresses a cell of the grid. Col is the i coordinate (0 is the
// a-file) and Row is the j coordinate (0 is the eighth rank).
type Square struct {
	Col int
	Row int
}

// Sq is shorthand for Square{Col: i, Row: j}.
func Sq(i, j int) Square {
	return Square{Col: i, Row: j}
}

// OnBoard reports whether the square lies inside the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.Col >= 0 && s.Col < BoardSize && s.Row >= 0 && s.Row < BoardSize
}

// Add returns the square offset by (di, dj).
func (s Square) Add(di, dj int) Square {
	return Square{Col: s.Col + di, Row: s.Row + dj}
}

// File returns the file letter of the square ('a'-'h').
func (s Square) File() byte {
	return byte(ColBase + s.Col)
}

// Rank returns the rank digit of the square ('1'-'8').
func (s Square) Rank() byte {
	return byte('0' + BoardSize - s.Row)
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.OnBoard() {
		return "??"
	}
	return string([]byte{s.File(), s.Rank()})
}

// PawnDirection returns the row step of a pawn of the given colour.
func PawnDirection(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row from which pawns of the given colour may
// advance two squares.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}

// PromotionRow returns the farthest row for pawns of the given colour.
func PromotionRow(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}
