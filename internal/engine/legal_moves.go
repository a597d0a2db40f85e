// Package engine generates legal moves on a chess.Position: per-piece move
// generation, check and pin detection, terminal classification and perft.
package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// LegalMoves returns every legal move of colour together with the status of
// that side. It does not modify the position apart from transient king cache
// probes, which are always restored.
func LegalMoves(pos *chess.Position, colour chess.Colour) ([]chess.Move, Status) {
	info := ChecksAndPins(pos, colour)
	moves := legalMoves(pos, colour, info)
	return moves, classify(colour, info.InCheck, len(moves) > 0)
}

// LegalMovesFrom returns the legal moves of the piece standing on from, or nil
// if the square is empty.
func LegalMovesFrom(pos *chess.Position, from chess.Square) []chess.Move {
	cp := pos.Get(from)
	if cp.IsEmpty() {
		return nil
	}
	info := ChecksAndPins(pos, cp.Colour)
	return filterCheckResponses(pos, cp.Colour, info, PieceMoves(pos, from, info.Pins))
}

// HasLegalMoves reports whether colour has at least one legal move.
func HasLegalMoves(pos *chess.Position, colour chess.Colour) bool {
	info := ChecksAndPins(pos, colour)
	for _, from := range pieceSquares(pos, colour) {
		if len(filterCheckResponses(pos, colour, info, PieceMoves(pos, from, info.Pins))) > 0 {
			return true
		}
	}
	return false
}

func legalMoves(pos *chess.Position, colour chess.Colour, info CheckInfo) []chess.Move {
	var pseudo []chess.Move
	for _, from := range pieceSquares(pos, colour) {
		pseudo = append(pseudo, PieceMoves(pos, from, info.Pins)...)
	}
	return filterCheckResponses(pos, colour, info, pseudo)
}

// filterCheckResponses keeps the moves that answer the checks in info. King
// moves arrive already filtered for safety.
func filterCheckResponses(pos *chess.Position, colour chess.Colour, info CheckInfo, moves []chess.Move) []chess.Move {
	if !info.InCheck {
		return moves
	}
	king := pos.KingSquare(colour)

	var targets map[chess.Square]bool
	if len(info.Checks) == 1 {
		targets = blockingSquares(king, info.Checks[0])
	}

	legal := moves[:0:0]
	for _, m := range moves {
		if m.From == king {
			legal = append(legal, m)
			continue
		}
		// Double check leaves targets nil: only the king may move.
		if targets[m.To] {
			legal = append(legal, m)
		}
	}
	return legal
}

// pieceSquares lists the squares holding pieces of colour, row by row.
func pieceSquares(pos *chess.Position, colour chess.Colour) []chess.Square {
	var squares []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			sq := chess.Sq(col, row)
			if pos.Get(sq).IsColour(colour) {
				squares = append(squares, sq)
			}
		}
	}
	return squares
}
