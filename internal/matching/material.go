package matching

import (
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// Material counts pieces per colour and kind, indexed [colour][piece].
type Material [2][chess.NumPieceValues]int

// CountMaterial counts the pieces on the board.
func CountMaterial(pos *chess.Position) Material {
	var m Material
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if cp := pos.At(col, row); !cp.IsEmpty() {
				m[cp.Colour][cp.Piece]++
			}
		}
	}
	return m
}

// ParseMaterial reads a balance such as "KQR:kqrr": FEN letters of the white
// pieces, a colon, then those of the black pieces. Either side may be empty.
func ParseMaterial(balance string) (Material, error) {
	var m Material
	white, black, _ := strings.Cut(balance, ":")
	sides := []struct {
		colour  chess.Colour
		letters string
	}{{chess.White, white}, {chess.Black, black}}

	for _, side := range sides {
		for i := 0; i < len(side.letters); i++ {
			c := side.letters[i]
			piece := engine.ConvertFENCharToPiece(c)
			if piece == chess.Empty || engine.FENLetter(chess.MakeColouredPiece(side.colour, piece)) != c {
				return Material{}, errors.Wrapf(errors.ErrInvalidConfig,
					"material %q: %q is not a %s piece", balance, c, strings.ToLower(side.colour.String()))
			}
			m[side.colour][piece]++
		}
	}
	return m, nil
}

// covers reports whether m has at least the pieces of want.
func (m Material) covers(want Material) bool {
	for colour := range want {
		for piece, n := range want[colour] {
			if m[colour][piece] < n {
				return false
			}
		}
	}
	return true
}

// MaterialMatcher accepts games that reach a material balance at some point.
// An exact matcher needs the balance piece for piece; otherwise the board
// may hold more than the balance names.
type MaterialMatcher struct {
	balance string
	want    Material
	exact   bool
}

// NewMaterialMatcher creates a matcher for a balance in ParseMaterial form.
func NewMaterialMatcher(balance string, exact bool) (*MaterialMatcher, error) {
	want, err := ParseMaterial(balance)
	if err != nil {
		return nil, err
	}
	return &MaterialMatcher{balance: balance, want: want, exact: exact}, nil
}

// Match implements GameMatcher.
func (mm *MaterialMatcher) Match(game *output.GameRecord) bool {
	return replay(game, func(pos *chess.Position, _ chess.Colour) bool {
		have := CountMaterial(pos)
		if mm.exact {
			return have == mm.want
		}
		return have.covers(mm.want)
	})
}

// Name implements GameMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exact {
		return "MaterialMatcher(=" + mm.balance + ")"
	}
	return "MaterialMatcher(" + mm.balance + ")"
}
