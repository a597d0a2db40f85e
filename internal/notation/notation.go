// Package notation converts between grid coordinates, square names and the
// short algebraic move text shown to players.
package notation

import (
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// SquareName returns the algebraic name of a square: (0, 0) is "a8".
func SquareName(sq chess.Square) string {
	return sq.String()
}

// ParseSquare converts a name such as "e4" to a square.
func ParseSquare(name string) (chess.Square, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) != 2 {
		return chess.Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Expected: "file and rank"}
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' {
		return chess.Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Field: 1, Expected: "file a-h", Got: string(file)}
	}
	if rank < '1' || rank > '8' {
		return chess.Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Field: 2, Expected: "rank 1-8", Got: string(rank)}
	}
	return chess.Sq(int(file-'a'), chess.BoardSize-int(rank-'0')), nil
}

// ParseCoordinates splits coordinate input into its squares. It accepts
// "e2e4", "e2-e4", "e2 e4" and a trailing promotion letter, which is ignored
// because pawns always become queens. A lone square ("e2") returns ok=false
// for the destination.
func ParseCoordinates(text string) (from, to chess.Square, hasTo bool, err error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	if len(s) == 5 && strings.ContainsRune("qrbn", rune(s[4])) {
		s = s[:4]
	}

	switch len(s) {
	case 2:
		from, err = ParseSquare(s)
		return from, chess.Square{}, false, err
	case 4:
		if from, err = ParseSquare(s[:2]); err != nil {
			return from, to, false, err
		}
		to, err = ParseSquare(s[2:])
		return from, to, err == nil, err
	}
	return from, to, false, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: text, Expected: "coordinate move such as e2e4"}
}

// SAN returns the short algebraic text of a move that has already been made
// on pos: the moved piece is read from the destination square. Pieces are
// prefixed with their letter, pawn captures with the source file, and
// promotions end in "=Q".
func SAN(pos *chess.Position, m chess.Move) string {
	var sb strings.Builder
	piece := pos.Get(m.To).Piece

	switch {
	case m.Promotion:
		if m.IsCapture() {
			sb.WriteByte(m.From.File())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		sb.WriteString("=Q")
		return sb.String()
	case piece == chess.Pawn:
		if m.IsCapture() {
			sb.WriteByte(m.From.File())
			sb.WriteByte('x')
		}
	default:
		sb.WriteByte(piece.Letter())
		if m.IsCapture() {
			sb.WriteByte('x')
		}
	}
	sb.WriteString(m.To.String())
	return sb.String()
}

// SANWithSuffix is SAN followed by "+" when the move gives check and "#"
// when it mates. The move must already have been made on pos by mover.
func SANWithSuffix(pos *chess.Position, m chess.Move, mover chess.Colour) string {
	san := SAN(pos, m)
	_, status := engine.LegalMoves(pos, mover.Opposite())
	switch {
	case status.Checkmate:
		return san + "#"
	case status.InCheck:
		return san + "+"
	}
	return san
}
