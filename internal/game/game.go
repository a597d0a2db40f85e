// Package game runs a single game: it owns the position, tracks the side to
// move and the game-over flags, applies player moves and asks the search for
// AI moves.
//
// A Game is not safe for concurrent use; callers serialise access.
package game

import (
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/notation"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/search"
)

// Game is one game in progress.
type Game struct {
	id       string
	startFEN string

	pos    *chess.Position
	gen    *engine.Generator
	toMove chess.Colour

	searcher *search.Searcher
	moves    *notation.Log
	log      zerolog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithID names the game in logs and errors.
func WithID(id string) Option {
	return func(g *Game) {
		g.id = id
	}
}

// WithLogger sets the logger. The game id is added to every event.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}

// WithSearcher sets the searcher used by AIMove.
func WithSearcher(s *search.Searcher) Option {
	return func(g *Game) {
		g.searcher = s
	}
}

// New creates a game from the initial position with White to move.
func New(opts ...Option) *Game {
	g, _ := NewFromFEN(engine.InitialFEN, opts...)
	return g
}

// NewFromFEN creates a game from a FEN string. Castling rights, the en
// passant square and the clocks are ignored.
func NewFromFEN(fen string, opts ...Option) (*Game, error) {
	pos, toMove, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		startFEN: fen,
		pos:      pos,
		gen:      engine.NewGenerator(pos),
		toMove:   toMove,
		moves:    notation.NewLog(toMove),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.searcher == nil {
		g.searcher = search.NewSearcher(search.DefaultDepth, search.WithLogger(g.log))
	}
	if g.id != "" {
		g.log = g.log.With().Str("game", g.id).Logger()
	}

	g.Refresh()
	return g, nil
}

// ID returns the game id.
func (g *Game) ID() string { return g.id }

// Position returns the live position. Callers must not modify it.
func (g *Game) Position() *chess.Position { return g.pos }

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour { return g.toMove }

// Searcher returns the searcher used for AI moves.
func (g *Game) Searcher() *search.Searcher { return g.searcher }

// Refresh regenerates the legal moves and status of the side to move.
func (g *Game) Refresh() []chess.Move {
	return g.gen.Refresh(g.toMove)
}

// LegalMoves returns a copy of the legal moves of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return append([]chess.Move(nil), g.gen.Moves()...)
}

// MovesFrom returns the legal moves of the piece on sq. It is empty when sq
// does not hold a piece of the side to move.
func (g *Game) MovesFrom(sq chess.Square) []chess.Move {
	var moves []chess.Move
	for _, m := range g.gen.Moves() {
		if m.From == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

// Status returns the check, checkmate and stalemate flags of the side to
// move.
func (g *Game) Status() engine.Status { return g.gen.Status() }

// IsOver reports whether the side to move has no legal moves.
func (g *Game) IsOver() bool { return g.gen.Status().IsOver() }

// Score returns the material balance, white positive.
func (g *Game) Score() int { return g.pos.Score() }

// FEN returns the current position with the side to move.
func (g *Game) FEN() string {
	return engine.PositionToFEN(g.pos, g.toMove)
}

// Notation returns the moves played so far.
func (g *Game) Notation() []notation.Entry {
	return g.moves.Entries()
}

// Plies returns the number of half-moves played.
func (g *Game) Plies() int { return g.moves.Len() }

// Apply plays the move from -> to for the side to move. The move must be in
// the legal move list.
func (g *Game) Apply(from, to chess.Square) (notation.Entry, error) {
	if g.IsOver() {
		return notation.Entry{}, g.errorf(errors.ErrGameOver, "")
	}
	moves := g.gen.Moves()
	i := chess.IndexMove(moves, chess.Move{From: from, To: to})
	if i < 0 {
		return notation.Entry{}, g.errorf(errors.ErrIllegalMove, from.String()+to.String())
	}
	return g.play(moves[i]), nil
}

// ApplyText plays a move given in coordinate form ("e2e4", "e2-e4").
func (g *Game) ApplyText(text string) (notation.Entry, error) {
	from, to, hasTo, err := notation.ParseCoordinates(text)
	if err != nil {
		return notation.Entry{}, g.errorf(err, text)
	}
	if !hasTo {
		return notation.Entry{}, g.errorf(errors.ErrIllegalMove, text)
	}
	return g.Apply(from, to)
}

// AIMove searches for a move for the side to move and plays it.
func (g *Game) AIMove() (notation.Entry, error) {
	if g.IsOver() {
		return notation.Entry{}, g.errorf(errors.ErrGameOver, "")
	}
	m, ok := g.searcher.FindMove(g.pos, g.toMove)
	if !ok {
		return notation.Entry{}, g.errorf(errors.ErrGameOver, "")
	}
	if i := chess.IndexMove(g.gen.Moves(), m); i >= 0 {
		m = g.gen.Moves()[i]
	}
	return g.play(m), nil
}

func (g *Game) play(m chess.Move) notation.Entry {
	mover := g.toMove
	g.pos.MakeMove(m)
	g.pos.LogMove(m)
	entry := g.moves.Record(g.pos, m, mover)

	g.toMove = mover.Opposite()
	g.Refresh()

	ev := g.log.Info()
	if !g.IsOver() {
		ev = g.log.Debug()
	}
	ev.Str("colour", mover.String()).
		Str("move", entry.SAN).
		Int("ply", g.moves.Len()).
		Int("score", g.pos.Score()).
		Str("status", g.Status().String()).
		Msg("move played")
	return entry
}

// Result returns the result string of the game so far.
func (g *Game) Result() string {
	st := g.Status()
	return output.ResultFor(st.Checkmate, st.Stalemate, st.Winner)
}

// Termination describes how the game ended, or "" while it is in play.
func (g *Game) Termination() string {
	st := g.Status()
	switch {
	case st.Checkmate:
		return "checkmate"
	case st.Stalemate:
		return "stalemate"
	}
	return ""
}

// Record returns the game in a form the output writers accept.
func (g *Game) Record() *output.GameRecord {
	rec := &output.GameRecord{
		ID:          g.id,
		FinalFEN:    g.FEN(),
		Result:      g.Result(),
		Termination: g.Termination(),
		Moves:       g.Notation(),
	}
	if g.startFEN != engine.InitialFEN {
		rec.StartFEN = g.startFEN
	}
	return rec
}

func (g *Game) errorf(err error, moveText string) error {
	return &errors.GameError{
		Err:      err,
		GameID:   g.id,
		PlyNum:   g.moves.Len() + 1,
		MoveText: moveText,
	}
}
