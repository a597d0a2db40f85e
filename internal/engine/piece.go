package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Pins maps the square of a pinned piece to the direction of the pin, seen
// from its king. It is built once per refresh and only read afterwards.
type Pins map[chess.Square]Direction

// Lookup returns the pin direction of the piece on sq, if it is pinned.
func (p Pins) Lookup(sq chess.Square) (Direction, bool) {
	d, ok := p[sq]
	return d, ok
}

// movesInDirection walks from the origin along d, collecting quiet moves and
// at most one capture. It stops at the edge, a friendly piece, or right after
// a capture.
func movesInDirection(pos *chess.Position, from chess.Square, d Direction) []chess.Move {
	var moves []chess.Move
	for to := d.step(from, 1); to.OnBoard(); to = d.step(to, 1) {
		move, ok := pos.ReturnValidMove(from, to)
		if !ok {
			break
		}
		moves = append(moves, move)
		if move.IsCapture() {
			break
		}
	}
	return moves
}

// slidingMoves generates the moves of a sliding piece along the given
// directions, keeping only moves on the pin line when the piece is pinned.
func slidingMoves(pos *chess.Position, from chess.Square, dirs []Direction, pins Pins) []chess.Move {
	pin, pinned := pins.Lookup(from)
	var moves []chess.Move
	for _, d := range dirs {
		if pinned && d != pin && d != pin.Opposite() {
			continue
		}
		moves = append(moves, movesInDirection(pos, from, d)...)
	}
	return moves
}

// RookMoves returns the moves of a rook standing on from.
func RookMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	return slidingMoves(pos, from, orthogonalDirs, pins)
}

// BishopMoves returns the moves of a bishop standing on from.
func BishopMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	return slidingMoves(pos, from, diagonalDirs, pins)
}

// QueenMoves returns the moves of a queen standing on from: the union of the
// rook and bishop moves.
func QueenMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	return append(RookMoves(pos, from, pins), BishopMoves(pos, from, pins)...)
}

// leaperMoves tries each offset once, accepting empty and enemy squares.
func leaperMoves(pos *chess.Position, from chess.Square, offsets []Direction) []chess.Move {
	var moves []chess.Move
	for _, off := range offsets {
		if move, ok := pos.ReturnValidMove(from, from.Add(off.DI, off.DJ)); ok {
			moves = append(moves, move)
		}
	}
	return moves
}

// KnightMoves returns the moves of a knight standing on from. A pinned knight
// cannot move.
func KnightMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	if _, pinned := pins.Lookup(from); pinned {
		return nil
	}
	return leaperMoves(pos, from, knightOffsets)
}

// KingMoves returns the king moves from the given square that do not leave
// the king in check. Each destination is probed by moving the cached king
// square there and rerunning check detection; the cache is restored after.
func KingMoves(pos *chess.Position, from chess.Square) []chess.Move {
	colour := pos.Get(from).Colour
	saved := pos.KingSquare(colour)
	defer pos.SetKingSquare(colour, saved)

	var moves []chess.Move
	for _, move := range leaperMoves(pos, from, kingOffsets) {
		pos.SetKingSquare(colour, move.To)
		if !ChecksAndPins(pos, colour).InCheck {
			moves = append(moves, move)
		}
	}
	return moves
}

// PieceMoves returns the pin-filtered moves of whatever piece stands on from.
// King moves are already filtered for safety.
func PieceMoves(pos *chess.Position, from chess.Square, pins Pins) []chess.Move {
	switch pos.Get(from).Piece {
	case chess.Pawn:
		return PawnMoves(pos, from, pins)
	case chess.Knight:
		return KnightMoves(pos, from, pins)
	case chess.Bishop:
		return BishopMoves(pos, from, pins)
	case chess.Rook:
		return RookMoves(pos, from, pins)
	case chess.Queen:
		return QueenMoves(pos, from, pins)
	case chess.King:
		return KingMoves(pos, from)
	}
	return nil
}
