package notation

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Entry is one played move as it appears in the move list.
type Entry struct {
	Number int          `json:"number"`
	Colour chess.Colour `json:"-"`
	Move   chess.Move   `json:"-"`
	SAN    string       `json:"san"`
	UCI    string       `json:"uci"`
}

// Log accumulates the notation of the moves of one game.
type Log struct {
	first   chess.Colour
	entries []Entry
}

// NewLog creates a log for a game in which first makes the opening move.
func NewLog(first chess.Colour) *Log {
	return &Log{first: first}
}

// Record appends a move that mover has just made on pos and returns its
// entry.
func (l *Log) Record(pos *chess.Position, m chess.Move, mover chess.Colour) Entry {
	ply := len(l.entries)
	if l.first == chess.Black {
		ply++
	}
	e := Entry{
		Number: ply/2 + 1,
		Colour: mover,
		Move:   m,
		SAN:    SANWithSuffix(pos, m, mover),
		UCI:    m.UCI(),
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns the recorded moves in order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Len returns the number of recorded plies.
func (l *Log) Len() int {
	return len(l.entries)
}

// First returns the colour that made the first move.
func (l *Log) First() chess.Colour {
	return l.first
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
