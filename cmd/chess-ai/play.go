// play.go - Interactive game against the engine on standard input
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/eco"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/game"
	"github.com/lgbarn/chess-ai-go/internal/notation"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/search"
)

// runPlay reads moves from in until the game ends, the input runs out or the
// player types quit. The engine answers every move.
func runPlay(cfg *config.Config, log zerolog.Logger, in io.Reader, asBlack bool) error {
	g, err := game.NewFromFEN(positionFEN(cfg),
		game.WithID("play"),
		game.WithLogger(log),
		game.WithSearcher(search.NewSearcher(cfg.Search.Depth,
			search.WithSeed(cfg.Search.Seed), search.WithLogger(log))),
	)
	if err != nil {
		return err
	}

	human := chess.White
	if asBlack {
		human = chess.Black
	}

	openings, err := loadOpenings()
	if err != nil {
		return err
	}

	w := cfg.OutputFile
	sc := bufio.NewScanner(in)

	for !g.IsOver() {
		if g.ToMove() != human {
			entry, err := g.AIMove()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "AI plays %s\n", entry.SAN)
			continue
		}

		if cfg.Output.ShowBoard {
			fmt.Fprintln(w, renderBoard(g.Position()))
		}
		if st := g.Status(); st.InCheck {
			fmt.Fprintln(w, "Check!")
		}
		fmt.Fprintf(w, "%s to move: ", g.ToMove())

		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "resign":
			finishPlay(g, openings, w, cfg.Output)
			return nil
		case "moves":
			fmt.Fprintln(w, formatMoves(g.LegalMoves()))
			continue
		}

		from, _, hasTo, err := notation.ParseCoordinates(line)
		if err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		if !hasTo {
			fmt.Fprintln(w, formatMoves(g.MovesFrom(from)))
			continue
		}
		if _, err := g.ApplyText(line); err != nil {
			fmt.Fprintf(w, "%v\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	finishPlay(g, openings, w, cfg.Output)
	return nil
}

// finishPlay prints the final board, the outcome, the opening and the move
// text.
func finishPlay(g *game.Game, openings *eco.ECOClassifier, w io.Writer, opts *config.OutputConfig) {
	if opts.ShowBoard {
		fmt.Fprintln(w, renderBoard(g.Position()))
	}
	if g.IsOver() {
		fmt.Fprintf(w, "Game over: %s\n", g.Status())
	}
	if rec := g.Record(); openings.AddECOTags(rec) {
		name := rec.Opening
		if rec.Variation != "" {
			name += ", " + rec.Variation
		}
		fmt.Fprintf(w, "Opening: %s %s\n", rec.ECO, name)
	}
	output.WriteMoveText(w, g.Notation(), g.Result(), opts)
}

// formatMoves lists moves in coordinate form separated by spaces.
func formatMoves(moves []chess.Move) string {
	if len(moves) == 0 {
		return "(no moves)"
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.UCI()
	}
	return strings.Join(names, " ")
}

// renderBoard draws the position with rank 8 at the top, using FEN letters
// for pieces and '.' for empty squares.
func renderBoard(pos *chess.Position) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte('8' - row))
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(' ')
			cp := pos.At(col, row)
			if cp.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(engine.FENLetter(cp))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
