package service

import (
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/notation"
)

// CreateRequest is the body of a new-game request. Every field is optional.
type CreateRequest struct {
	FEN   string `json:"fen"`
	Depth *int   `json:"depth"`
	Seed  int64  `json:"seed"`
	// AI is the side the engine plays: "white", "black" or "none". Empty
	// picks black when the server answers moves, none otherwise.
	AI string `json:"ai"`
}

// MoveRequest is the body of a move request, in square names.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GameState is the client view of a game.
type GameState struct {
	ID        string           `json:"id"`
	FEN       string           `json:"fen"`
	Board     [8][8]string     `json:"board"`
	ToMove    string           `json:"toMove"`
	AI        string           `json:"ai"`
	InCheck   bool             `json:"inCheck"`
	Checkmate bool             `json:"checkmate"`
	Stalemate bool             `json:"stalemate"`
	Winner    string           `json:"winner,omitempty"`
	Result    string           `json:"result"`
	Score     int              `json:"score"`
	ECO       string           `json:"eco,omitempty"`
	Opening   string           `json:"opening,omitempty"`
	Variation string           `json:"variation,omitempty"`
	Moves     []notation.Entry `json:"moves"`
}

// MoveView is a legal move as sent to clients.
type MoveView struct {
	From      string `json:"from"`
	To        string `json:"to"`
	UCI       string `json:"uci"`
	Capture   bool   `json:"capture"`
	Promotion bool   `json:"promotion"`
}

func newMoveView(m chess.Move) MoveView {
	return MoveView{
		From:      m.From.String(),
		To:        m.To.String(),
		UCI:       m.UCI(),
		Capture:   m.IsCapture(),
		Promotion: m.Promotion,
	}
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// parseSide maps "white", "black" or "none" to a colour.
func parseSide(name string) (chess.Colour, bool, error) {
	switch strings.ToLower(name) {
	case "white", "w":
		return chess.White, true, nil
	case "black", "b":
		return chess.Black, true, nil
	case "none", "":
		return chess.White, false, nil
	}
	return chess.White, false, errors.Wrapf(errors.ErrInvalidConfig, "ai side %q", name)
}
