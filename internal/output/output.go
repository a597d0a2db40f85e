// Package output writes finished games as numbered move text or JSON.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/notation"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// Result strings used in move text.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	Draw       = "1/2-1/2"
	Unfinished = "*"
)

// ResultFor returns the move text result for a game state: a checkmate is a
// win for winner, a stalemate a draw, anything else unfinished.
func ResultFor(checkmate, stalemate bool, winner chess.Colour) string {
	switch {
	case checkmate && winner == chess.White:
		return WhiteWins
	case checkmate:
		return BlackWins
	case stalemate:
		return Draw
	}
	return Unfinished
}

// WriteMoveText writes the numbered move list followed by the result.
func WriteMoveText(w io.Writer, entries []notation.Entry, result string, opts *config.OutputConfig) {
	ow := NewOutputWriter(w, int(opts.MaxLineLength))

	for i, e := range entries {
		if opts.KeepMoveNumbers {
			if e.Colour == chess.White {
				ow.Write(strconv.Itoa(e.Number) + ".")
			} else if i == 0 {
				// Black to move at start
				ow.Write(strconv.Itoa(e.Number) + "...")
			}
		}
		ow.Write(formatMove(e, opts))
	}

	if result != "" {
		ow.Write(result)
	}
	ow.NewLine()
}

// formatMove formats a move in the configured notation.
func formatMove(e notation.Entry, opts *config.OutputConfig) string {
	if opts.Format == config.UCI {
		return e.UCI
	}
	if opts.KeepChecks {
		return e.SAN
	}
	return stripCheck(e.SAN)
}

func stripCheck(san string) string {
	for len(san) > 0 && (san[len(san)-1] == '+' || san[len(san)-1] == '#') {
		san = san[:len(san)-1]
	}
	return san
}
