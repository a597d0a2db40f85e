package engine

import "github.com/lgbarn/chess-ai-go/internal/chess"

// Vector identifies a piece relative to a king: a pinned friendly piece or a
// checking enemy piece, together with the direction from the king towards it.
// For a knight check the direction is the knight offset.
type Vector struct {
	Square chess.Square
	Dir    Direction
}

// CheckInfo is the result of scanning outward from a king.
type CheckInfo struct {
	InCheck bool
	Checks  []Vector
	Pins    Pins
}

// ChecksAndPins scans the eight rays and the knight offsets around the cached
// king square of colour. The king itself is transparent so that the scan also
// works while the cache has been moved to a candidate destination.
func ChecksAndPins(pos *chess.Position, colour chess.Colour) CheckInfo {
	info := CheckInfo{Pins: Pins{}}
	king := pos.KingSquare(colour)
	if !king.OnBoard() {
		return info
	}
	enemy := colour.Opposite()

	for idx, d := range allDirs {
		orthogonal := idx < len(orthogonalDirs)
		var candidate *Vector

		for n := 1; ; n++ {
			sq := d.step(king, n)
			if !sq.OnBoard() {
				break
			}
			cp := pos.Get(sq)
			if cp.IsEmpty() || cp.Is(colour, chess.King) {
				continue
			}
			if cp.Colour == colour {
				if candidate != nil {
					// Two friendly pieces on the ray: nothing pinned.
					break
				}
				candidate = &Vector{Square: sq, Dir: d}
				continue
			}

			if attacksAlongRay(cp, d, n, orthogonal, colour) {
				if candidate == nil {
					info.InCheck = true
					info.Checks = append(info.Checks, Vector{Square: sq, Dir: d})
				} else {
					info.Pins[candidate.Square] = candidate.Dir
				}
			}
			break
		}
	}

	for _, off := range knightOffsets {
		sq := king.Add(off.DI, off.DJ)
		if pos.Get(sq).Is(enemy, chess.Knight) {
			info.InCheck = true
			info.Checks = append(info.Checks, Vector{Square: sq, Dir: off})
		}
	}
	return info
}

// attacksAlongRay reports whether an enemy piece found at distance n along d
// from a king of kingColour attacks that king.
func attacksAlongRay(cp chess.ColouredPiece, d Direction, n int, orthogonal bool, kingColour chess.Colour) bool {
	switch cp.Piece {
	case chess.Rook:
		return orthogonal
	case chess.Bishop:
		return !orthogonal
	case chess.Queen:
		return true
	case chess.King:
		return n == 1
	case chess.Pawn:
		// The enemy pawn must stand one row ahead of the king, as seen by
		// the king's own pawns.
		return n == 1 && !orthogonal && d.DJ == chess.PawnDirection(kingColour)
	}
	return false
}

// IsInCheck reports whether the king of colour is attacked.
func IsInCheck(pos *chess.Position, colour chess.Colour) bool {
	return ChecksAndPins(pos, colour).InCheck
}

// blockingSquares returns the squares a non-king move may land on to answer
// a single check: the checker's square, plus for a sliding checker every
// square strictly between it and the king.
func blockingSquares(king chess.Square, check Vector) map[chess.Square]bool {
	squares := map[chess.Square]bool{check.Square: true}
	if isKnightOffset(check.Dir) {
		return squares
	}
	for sq := check.Dir.step(king, 1); sq != check.Square && sq.OnBoard(); sq = check.Dir.step(sq, 1) {
		squares[sq] = true
	}
	return squares
}

func isKnightOffset(d Direction) bool {
	return abs(d.DI)+abs(d.DJ) == 3
}
