package output

import (
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID          string     `json:"id,omitempty"`
	White       string     `json:"white,omitempty"`
	Black       string     `json:"black,omitempty"`
	Moves       []JSONMove `json:"moves"`
	Result      string     `json:"result"`
	Termination string     `json:"termination,omitempty"`
	ECO         string     `json:"eco,omitempty"`
	Opening     string     `json:"opening,omitempty"`
	Variation   string     `json:"variation,omitempty"`
	PlyCount    int        `json:"plyCount"`
	InitialFEN  string     `json:"initialFEN,omitempty"`
	FinalFEN    string     `json:"finalFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Captured   string `json:"captured,omitempty"`
	Promotion  bool   `json:"promotion,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game record to JSON format.
func GameToJSON(game *GameRecord) *JSONGame {
	jg := &JSONGame{
		ID:          game.ID,
		White:       game.White,
		Black:       game.Black,
		Result:      game.Result,
		Termination: game.Termination,
		ECO:         game.ECO,
		Opening:     game.Opening,
		Variation:   game.Variation,
		PlyCount:    game.PlyCount(),
		InitialFEN:  game.StartFEN,
		FinalFEN:    game.FinalFEN,
		Moves:       make([]JSONMove, 0, len(game.Moves)),
	}
	if jg.Result == "" {
		jg.Result = Unfinished
	}

	for _, e := range game.Moves {
		jm := JSONMove{
			MoveNumber: e.Number,
			Color:      strings.ToLower(e.Colour.String()),
			SAN:        e.SAN,
			UCI:        e.UCI,
			From:       e.Move.From.String(),
			To:         e.Move.To.String(),
			Promotion:  e.Move.Promotion,
		}
		if e.Move.IsCapture() {
			jm.Captured = pieceTypeName(e.Move.Captured.Piece)
		}
		jg.Moves = append(jg.Moves, jm)
	}
	return jg
}

// pieceTypeName returns the lowercase name of a piece kind.
func pieceTypeName(p chess.Piece) string {
	if p == chess.Empty {
		return ""
	}
	return strings.ToLower(p.String())
}
