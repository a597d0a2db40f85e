package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// FENLetter returns the FEN letter of a coloured piece: uppercase for white,
// lowercase for black.
func FENLetter(cp chess.ColouredPiece) byte {
	letter := cp.Piece.Letter()
	if cp.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewPositionFromFEN creates a position from a FEN string and returns the side
// to move. Only the placement and side-to-move fields are used; castling, en
// passant and the clocks are accepted and ignored.
func NewPositionFromFEN(fen string) (*chess.Position, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pos := chess.NewEmptyPosition()
	if err := parsePiecePositions(pos, fen, parts[0]); err != nil {
		return nil, chess.White, err
	}

	colour, err := parseSideToMove(fen, parts)
	if err != nil {
		return nil, chess.White, err
	}
	return pos, colour, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// FEN lists rank 8 first, which is row 0 of the grid.
func parsePiecePositions(pos *chess.Position, fen, placement string) error {
	row, col := 0, 0
	kings := [2]int{}

	for i, c := range placement {
		switch {
		case c == '/':
			if col != chess.BoardSize {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: i + 1,
					Expected: "8 squares per rank", Got: fmt.Sprintf("%d", col)}
			}
			row++
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
		default:
			piece := ConvertFENCharToPiece(byte(c))
			if piece == chess.Empty {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: i + 1,
					Expected: "piece letter", Got: string(c)}
			}
			if col >= chess.BoardSize || row >= chess.BoardSize {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if piece == chess.King {
				kings[colour]++
			}
			pos.Set(chess.Sq(col, row), chess.MakeColouredPiece(colour, piece))
			col++
		}
		if col > chess.BoardSize {
			return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
		}
	}
	if row != chess.BoardSize-1 || col != chess.BoardSize {
		return fmt.Errorf("placement does not cover 64 squares: %w", errors.ErrInvalidFEN)
	}
	if kings[chess.White] > 1 || kings[chess.Black] > 1 {
		return fmt.Errorf("more than one king per side: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field. It defaults to white.
func parseSideToMove(fen string, parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: 2,
		Expected: "side to move", Got: parts[1]}
}

// PositionToFEN converts a position and side to move to a FEN string. The
// castling and en passant fields are always "-".
func PositionToFEN(pos *chess.Position, toMove chess.Colour) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	sb.WriteByte(toMove.Letter())
	sb.WriteString(" - - 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			cp := pos.At(col, row)
			if cp.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(FENLetter(cp))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}
