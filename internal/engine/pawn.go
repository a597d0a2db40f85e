package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// PawnMoves returns the moves of a pawn standing on from: single and double
// pushes onto empty squares, diagonal captures onto enemy pieces. Moves that
// land on the farthest row are flagged as promotions.
func PawnMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	pawn := pos.Get(from)
	dir := chess.PawnDirection(pawn.Colour)
	pin, pinned := pins.Lookup(from)

	allowed := func(to chess.Square) bool {
		if !pinned {
			return true
		}
		d := InferDirection(chess.Move{From: from, To: to})
		return d == pin || d == pin.Opposite()
	}

	var moves []chess.Move
	add := func(m chess.Move) {
		m.Promotion = m.To.Row == chess.PromotionRow(pawn.Colour)
		moves = append(moves, m)
	}

	// Forward moves
	one := from.Add(0, dir)
	if one.OnBoard() && pos.Get(one).IsEmpty() && allowed(one) {
		add(chess.Move{From: from, To: one})
		two := from.Add(0, 2*dir)
		if from.Row == chess.PawnStartRow(pawn.Colour) && pos.Get(two).IsEmpty() {
			add(chess.Move{From: from, To: two})
		}
	}

	// Captures
	for _, dc := range []int{-1, 1} {
		to := from.Add(dc, dir)
		if !to.OnBoard() {
			continue
		}
		target := pos.Get(to)
		if target.IsColour(pawn.Colour.Opposite()) && allowed(to) {
			add(chess.Move{From: from, To: to, Captured: target})
		}
	}
	return moves
}
