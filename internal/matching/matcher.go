// Package matching selects games by their header tags, the positions they
// pass through, their material and their length.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// GameMatcher is the interface for all game matching implementations.
// Any component that can evaluate whether a game matches certain criteria
// should implement this interface.
type GameMatcher interface {
	// Match returns true if the game matches the matcher's criteria.
	Match(game *output.GameRecord) bool

	// Name returns a descriptive name for this matcher.
	Name() string
}

// MatchMode specifies how multiple matchers are combined.
type MatchMode int

const (
	// MatchAll requires all matchers to match (AND logic).
	MatchAll MatchMode = iota

	// MatchAny requires at least one matcher to match (OR logic).
	MatchAny
)

// CompositeMatcher combines multiple GameMatchers with AND or OR logic.
type CompositeMatcher struct {
	matchers []GameMatcher
	mode     MatchMode
}

// NewCompositeMatcher creates a new CompositeMatcher with the given mode and matchers.
func NewCompositeMatcher(mode MatchMode, matchers ...GameMatcher) *CompositeMatcher {
	return &CompositeMatcher{
		matchers: matchers,
		mode:     mode,
	}
}

// Match implements GameMatcher.
func (c *CompositeMatcher) Match(game *output.GameRecord) bool {
	if len(c.matchers) == 0 {
		// Empty composite: AND mode is vacuously true, OR mode has no conditions
		return c.mode == MatchAll
	}

	switch c.mode {
	case MatchAll:
		for _, m := range c.matchers {
			if !m.Match(game) {
				return false
			}
		}
		return true
	case MatchAny:
		for _, m := range c.matchers {
			if m.Match(game) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Name implements GameMatcher.
func (c *CompositeMatcher) Name() string {
	if len(c.matchers) == 0 {
		return "CompositeMatcher(empty)"
	}

	names := make([]string, len(c.matchers))
	for i, m := range c.matchers {
		names[i] = m.Name()
	}

	modeStr := "AND"
	if c.mode == MatchAny {
		modeStr = "OR"
	}

	return fmt.Sprintf("CompositeMatcher(%s: %s)", modeStr, strings.Join(names, ", "))
}

// Add adds a matcher to the composite.
func (c *CompositeMatcher) Add(m GameMatcher) {
	c.matchers = append(c.matchers, m)
}

// Matchers returns the list of matchers in this composite.
func (c *CompositeMatcher) Matchers() []GameMatcher {
	return c.matchers
}

// Mode returns the match mode (MatchAll or MatchAny).
func (c *CompositeMatcher) Mode() MatchMode {
	return c.mode
}

// Negated inverts another matcher.
type Negated struct {
	M GameMatcher
}

// Match implements GameMatcher.
func (n Negated) Match(game *output.GameRecord) bool { return !n.M.Match(game) }

// Name implements GameMatcher.
func (n Negated) Name() string { return "NOT " + n.M.Name() }

// PlyRange matches games whose length lies in [Min, Max]. A zero Max is
// unbounded.
type PlyRange struct {
	Min, Max int
}

// Match implements GameMatcher.
func (p PlyRange) Match(game *output.GameRecord) bool {
	n := game.PlyCount()
	return n >= p.Min && (p.Max == 0 || n <= p.Max)
}

// Name implements GameMatcher.
func (p PlyRange) Name() string {
	if p.Max == 0 {
		return fmt.Sprintf("PlyRange(%d-)", p.Min)
	}
	return fmt.Sprintf("PlyRange(%d-%d)", p.Min, p.Max)
}

// Termination matches games that ended in a particular way, e.g.
// "checkmate".
type Termination string

// Match implements GameMatcher.
func (t Termination) Match(game *output.GameRecord) bool {
	return strings.EqualFold(game.Termination, string(t))
}

// Name implements GameMatcher.
func (t Termination) Name() string { return "Termination(" + string(t) + ")" }

// replay calls visit with the start position of the game and again after
// every move, stopping early when visit returns true. It reports whether
// visit did.
func replay(game *output.GameRecord, visit func(pos *chess.Position, toMove chess.Colour) bool) bool {
	start := game.StartFEN
	if start == "" {
		start = engine.InitialFEN
	}
	pos, toMove, err := engine.NewPositionFromFEN(start)
	if err != nil {
		return false
	}

	if visit(pos, toMove) {
		return true
	}
	for _, e := range game.Moves {
		pos.MakeMove(e.Move)
		toMove = toMove.Opposite()
		if visit(pos, toMove) {
			return true
		}
	}
	return false
}
