package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Status describes the situation of the side a move list was generated for.
type Status struct {
	InCheck   bool
	Checkmate bool
	Stalemate bool

	// Winner is the side that delivered mate. Only meaningful when
	// Checkmate is set.
	Winner chess.Colour
}

// IsOver reports whether the side has no legal moves.
func (s Status) IsOver() bool {
	return s.Checkmate || s.Stalemate
}

// String returns a short description, e.g. "checkmate, White wins".
func (s Status) String() string {
	switch {
	case s.Checkmate:
		return "checkmate, " + s.Winner.String() + " wins"
	case s.Stalemate:
		return "stalemate"
	case s.InCheck:
		return "check"
	}
	return "in play"
}

func classify(colour chess.Colour, inCheck, hasMoves bool) Status {
	s := Status{InCheck: inCheck}
	if !hasMoves {
		if inCheck {
			s.Checkmate = true
			s.Winner = colour.Opposite()
		} else {
			s.Stalemate = true
		}
	}
	return s
}

// IsCheckmate returns true if colour is in check and has no legal moves.
func IsCheckmate(pos *chess.Position, colour chess.Colour) bool {
	return IsInCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// IsStalemate returns true if colour is not in check and has no legal moves.
func IsStalemate(pos *chess.Position, colour chess.Colour) bool {
	return !IsInCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// Generator holds the legal moves of the side last refreshed, with the
// status flags that refresh produced. It operates on a shared position.
type Generator struct {
	pos    *chess.Position
	colour chess.Colour
	moves  []chess.Move
	status Status
}

// NewGenerator creates a generator over pos. Call Refresh before reading.
func NewGenerator(pos *chess.Position) *Generator {
	return &Generator{pos: pos}
}

// Refresh recomputes the legal moves of colour and the status flags.
func (g *Generator) Refresh(colour chess.Colour) []chess.Move {
	g.colour = colour
	g.moves, g.status = LegalMoves(g.pos, colour)
	return g.moves
}

// Moves returns the moves computed by the last Refresh.
func (g *Generator) Moves() []chess.Move { return g.moves }

// Colour returns the side of the last Refresh.
func (g *Generator) Colour() chess.Colour { return g.colour }

// Status returns the flags computed by the last Refresh.
func (g *Generator) Status() Status { return g.status }

func (g *Generator) InCheck() bool   { return g.status.InCheck }
func (g *Generator) Checkmate() bool { return g.status.Checkmate }
func (g *Generator) Stalemate() bool { return g.status.Stalemate }

// Winner returns the mating side and whether there is one.
func (g *Generator) Winner() (chess.Colour, bool) {
	return g.status.Winner, g.status.Checkmate
}

// Position returns the position the generator reads.
func (g *Generator) Position() *chess.Position { return g.pos }
