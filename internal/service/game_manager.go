// Package service keeps the games played through the server. Sessions are
// stored in a map guarded by a read-write mutex; each session serialises its
// own moves with a mutex so games progress independently.
package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/eco"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/game"
	"github.com/lgbarn/chess-ai-go/internal/notation"
	"github.com/lgbarn/chess-ai-go/internal/search"
)

// Session is one game and the side the engine plays in it.
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	ai       chess.Colour
	hasAI    bool
	openings *eco.ECOClassifier
}

// GameManager owns all sessions.
type GameManager struct {
	games    map[string]*Session
	mu       sync.RWMutex
	cfg      *config.Config
	log      zerolog.Logger
	openings *eco.ECOClassifier
}

// ManagerOption configures a GameManager.
type ManagerOption func(*GameManager)

// WithOpenings sets the classifier used to name the opening of each game.
// A nil classifier turns naming off.
func WithOpenings(ec *eco.ECOClassifier) ManagerOption {
	return func(gm *GameManager) {
		gm.openings = ec
	}
}

// NewGameManager creates an empty manager. New games use the search and
// start position settings of cfg unless a request overrides them.
func NewGameManager(cfg *config.Config, log zerolog.Logger, opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games:    make(map[string]*Session),
		cfg:      cfg,
		log:      log,
		openings: eco.Default(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

// CreateGame starts a new session. When the engine plays the side to move it
// makes its first move before the state is returned.
func (gm *GameManager) CreateGame(req CreateRequest) (GameState, error) {
	depth := gm.cfg.Search.Depth
	if req.Depth != nil {
		depth = *req.Depth
		if depth < 0 || depth > config.MaxSearchDepth {
			return GameState{}, errors.Wrapf(errors.ErrInvalidConfig, "depth %d", depth)
		}
	}
	if req.AI == "" && !gm.cfg.Server.AIReplies {
		req.AI = "none"
	} else if req.AI == "" {
		req.AI = "black"
	}
	ai, hasAI, err := parseSide(req.AI)
	if err != nil {
		return GameState{}, err
	}

	fen := req.FEN
	if fen == "" {
		fen = gm.cfg.StartFEN
	}
	if fen == "" {
		fen = engine.InitialFEN
	}
	seed := req.Seed
	if seed == 0 {
		seed = gm.cfg.Search.Seed
	}

	id := uuid.New().String()
	log := gm.log.With().Str("game", id).Logger()
	g, err := game.NewFromFEN(fen,
		game.WithID(id),
		game.WithLogger(log),
		game.WithSearcher(search.NewSearcher(depth, search.WithSeed(seed), search.WithLogger(log))),
	)
	if err != nil {
		return GameState{}, err
	}

	s := &Session{game: g, ai: ai, hasAI: hasAI, openings: gm.openings}

	// The session is registered only once its opening reply is on the board.
	s.mu.Lock()
	err = s.replyIfAITurn()
	state := s.state()
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("opening reply failed")
		return GameState{}, err
	}

	gm.mu.Lock()
	gm.games[id] = s
	gm.mu.Unlock()

	log.Info().Str("fen", fen).Int("depth", depth).Str("ai", req.AI).Msg("game created")
	return state, nil
}

// Session returns the session with the given id.
func (gm *GameManager) Session(id string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, ok := gm.games[id]
	if !ok {
		return nil, &errors.GameError{Err: errors.ErrGameNotFound, GameID: id}
	}
	return s, nil
}

// GetGameState returns the current state of a game.
func (gm *GameManager) GetGameState(id string) (GameState, error) {
	s, err := gm.Session(id)
	if err != nil {
		return GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// LegalMoves returns the legal moves of the side to move, or only those of
// the piece on from when from is not empty.
func (gm *GameManager) LegalMoves(id, from string) ([]MoveView, error) {
	s, err := gm.Session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	moves := s.game.LegalMoves()
	if from != "" {
		sq, err := notation.ParseSquare(from)
		if err != nil {
			return nil, err
		}
		moves = s.game.MovesFrom(sq)
	}

	views := make([]MoveView, 0, len(moves))
	for _, m := range moves {
		views = append(views, newMoveView(m))
	}
	return views, nil
}

// MakeMove plays a move for the side to move and, if the engine plays the
// other side, its reply.
func (gm *GameManager) MakeMove(id string, req MoveRequest) (GameState, error) {
	s, err := gm.Session(id)
	if err != nil {
		return GameState{}, err
	}
	from, err := notation.ParseSquare(req.From)
	if err != nil {
		return GameState{}, err
	}
	to, err := notation.ParseSquare(req.To)
	if err != nil {
		return GameState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.game.Apply(from, to); err != nil {
		return GameState{}, err
	}
	if err := s.replyIfAITurn(); err != nil {
		return GameState{}, err
	}
	return s.state(), nil
}

// AIMove makes the engine play the side to move, whichever it is.
func (gm *GameManager) AIMove(id string) (GameState, error) {
	s, err := gm.Session(id)
	if err != nil {
		return GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.game.AIMove(); err != nil {
		return GameState{}, err
	}
	return s.state(), nil
}

// DeleteGame removes a session.
func (gm *GameManager) DeleteGame(id string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if _, ok := gm.games[id]; !ok {
		return &errors.GameError{Err: errors.ErrGameNotFound, GameID: id}
	}
	delete(gm.games, id)
	gm.log.Info().Str("game", id).Msg("game deleted")
	return nil
}

// Count returns the number of sessions.
func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// replyIfAITurn lets the engine move when it plays the side to move. The
// caller holds s.mu.
func (s *Session) replyIfAITurn() error {
	if !s.hasAI || s.game.IsOver() || s.game.ToMove() != s.ai {
		return nil
	}
	_, err := s.game.AIMove()
	return err
}

// state builds the client view. The caller holds s.mu.
func (s *Session) state() GameState {
	g := s.game
	st := g.Status()
	state := GameState{
		ID:        g.ID(),
		FEN:       g.FEN(),
		ToMove:    colourName(g.ToMove()),
		AI:        "none",
		InCheck:   st.InCheck,
		Checkmate: st.Checkmate,
		Stalemate: st.Stalemate,
		Result:    g.Result(),
		Score:     g.Score(),
		Moves:     append([]notation.Entry{}, g.Notation()...),
	}
	if s.hasAI {
		state.AI = colourName(s.ai)
	}
	if st.Checkmate {
		state.Winner = colourName(st.Winner)
	}
	if s.openings != nil {
		rec := g.Record()
		if s.openings.AddECOTags(rec) {
			state.ECO, state.Opening, state.Variation = rec.ECO, rec.Opening, rec.Variation
		}
	}
	pos := g.Position()
	for j := 0; j < chess.BoardSize; j++ {
		for i := 0; i < chess.BoardSize; i++ {
			state.Board[j][i] = pos.At(i, j).String()
		}
	}
	return state
}
