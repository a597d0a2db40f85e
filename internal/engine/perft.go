package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree of the given depth,
// starting with colour to move. The position is walked by make/undo and is
// unchanged on return.
func Perft(pos *chess.Position, colour chess.Colour, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves, _ := LegalMoves(pos, colour)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.MakeMove(m)
		nodes += Perft(pos, colour.Opposite(), depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its
// coordinate form ("e2e4").
func Divide(pos *chess.Position, colour chess.Colour, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	moves, _ := LegalMoves(pos, colour)
	for _, m := range moves {
		pos.MakeMove(m)
		counts[m.UCI()] = Perft(pos, colour.Opposite(), depth-1)
		pos.UndoMove(m)
	}
	return counts
}
