package matching

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/hashing"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// FENPattern is a position a game must pass through. An exact pattern is a
// full FEN compared by hash, side to move included. Otherwise Pattern holds
// FEN-like ranks, rank 8 first, where besides piece letters and digit runs of
// empty squares
//
//	?  any square
//	!  an occupied square
//	_  an empty square
//	A  a white piece
//	a  a black piece
//	*  any number of squares, including none
type FENPattern struct {
	Pattern string
	Label   string
	Hash    uint64
	IsExact bool

	// ranks holds the wildcard ranks with digit runs spelled out as '_'.
	ranks []string
}

// PositionMatcher accepts games that reach one of its patterns.
type PositionMatcher struct {
	patterns []*FENPattern
	byHash   map[uint64]*FENPattern
}

// NewPositionMatcher creates a matcher without patterns.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{byHash: make(map[uint64]*FENPattern)}
}

// AddFEN adds an exact position.
func (pm *PositionMatcher) AddFEN(fen, label string) error {
	pos, toMove, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	p := &FENPattern{
		Pattern: fen,
		Label:   label,
		Hash:    hashing.GenerateZobristHash(pos, toMove),
		IsExact: true,
	}
	pm.patterns = append(pm.patterns, p)
	pm.byHash[p.Hash] = p
	return nil
}

// AddPattern adds a wildcard pattern. With invert the same pattern with the
// colours swapped and the board flipped is added under the same label.
func (pm *PositionMatcher) AddPattern(pattern, label string, invert bool) {
	pm.patterns = append(pm.patterns, newWildcard(pattern, label))
	if invert {
		pm.patterns = append(pm.patterns, newWildcard(invertPattern(pattern), label))
	}
}

func newWildcard(pattern, label string) *FENPattern {
	p := &FENPattern{Pattern: pattern, Label: label}
	for _, rank := range strings.Split(pattern, "/") {
		p.ranks = append(p.ranks, expandEmpty(rank))
	}
	return p
}

// expandEmpty spells out digit runs of empty squares as '_'.
func expandEmpty(rank string) string {
	var sb strings.Builder
	for i := 0; i < len(rank); i++ {
		if c := rank[i]; c >= '1' && c <= '8' {
			sb.WriteString(strings.Repeat("_", int(c-'0')))
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// MatchGame returns the first pattern the game reaches, or nil.
func (pm *PositionMatcher) MatchGame(game *output.GameRecord) *FENPattern {
	if len(pm.patterns) == 0 {
		return nil
	}
	var found *FENPattern
	replay(game, func(pos *chess.Position, toMove chess.Colour) bool {
		found = pm.matchPosition(pos, toMove)
		return found != nil
	})
	return found
}

// Match implements GameMatcher.
func (pm *PositionMatcher) Match(game *output.GameRecord) bool {
	return pm.MatchGame(game) != nil
}

// Name implements GameMatcher.
func (pm *PositionMatcher) Name() string {
	return "PositionMatcher"
}

// PatternCount returns the number of patterns, inverted copies included.
func (pm *PositionMatcher) PatternCount() int {
	return len(pm.patterns)
}

func (pm *PositionMatcher) matchPosition(pos *chess.Position, toMove chess.Colour) *FENPattern {
	if p, ok := pm.byHash[hashing.GenerateZobristHash(pos, toMove)]; ok {
		return p
	}
	for _, p := range pm.patterns {
		if !p.IsExact && p.matchBoard(pos) {
			return p
		}
	}
	return nil
}

// matchBoard compares the pattern ranks with the board, rank 8 first. Ranks
// the pattern leaves out are not checked.
func (p *FENPattern) matchBoard(pos *chess.Position) bool {
	if len(p.ranks) == 0 {
		return false
	}
	for row := 0; row < len(p.ranks) && row < chess.BoardSize; row++ {
		var squares [chess.BoardSize]chess.ColouredPiece
		for col := range squares {
			squares[col] = pos.At(col, row)
		}
		if !matchRow(squares[:], p.ranks[row]) {
			return false
		}
	}
	return true
}

// matchRow matches the squares of one rank against an expanded pattern rank.
func matchRow(squares []chess.ColouredPiece, rank string) bool {
	for len(rank) > 0 {
		if rank[0] == '*' {
			rest := rank[1:]
			for skip := 0; skip <= len(squares); skip++ {
				if matchRow(squares[skip:], rest) {
					return true
				}
			}
			return false
		}
		if len(squares) == 0 || !squareMatches(rank[0], squares[0]) {
			return false
		}
		squares, rank = squares[1:], rank[1:]
	}
	return len(squares) == 0
}

// squareMatches reports whether one pattern symbol accepts a square.
func squareMatches(sym byte, cp chess.ColouredPiece) bool {
	switch sym {
	case '?':
		return true
	case '!':
		return !cp.IsEmpty()
	case '_':
		return cp.IsEmpty()
	case 'A':
		return cp.IsColour(chess.White)
	case 'a':
		return cp.IsColour(chess.Black)
	}
	return !cp.IsEmpty() && engine.FENLetter(cp) == sym
}

// invertPattern swaps the colours of a pattern and flips the board top to
// bottom.
func invertPattern(pattern string) string {
	swapped := strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, pattern)
	ranks := strings.Split(swapped, "/")
	slices.Reverse(ranks)
	return strings.Join(ranks, "/")
}
