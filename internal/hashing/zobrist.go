package hashing

import (
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chess-ai-go/internal/chess"
)

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed = 0x5a0b15e

var (
	// pieceKeys is indexed [colour][piece][row][col].
	pieceKeys [2][chess.NumPieceValues][chess.BoardSize][chess.BoardSize]uint64
	sideKey   uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for p := range pieceKeys[c] {
			for row := range pieceKeys[c][p] {
				for col := range pieceKeys[c][p][row] {
					pieceKeys[c][p][row][col] = r.Uint64()
				}
			}
		}
	}
	sideKey = r.Uint64()
}

// GenerateZobristHash hashes the pieces on the board and the side to move.
func GenerateZobristHash(pos *chess.Position, toMove chess.Colour) uint64 {
	var hash uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			cp := pos.At(col, row)
			if cp.IsEmpty() {
				continue
			}
			hash ^= pieceKeys[cp.Colour][cp.Piece][row][col]
		}
	}
	if toMove == chess.Black {
		hash ^= sideKey
	}
	return hash
}

// WeakHash is a cheap second opinion on a position: a weighted sum of the
// occupied squares. It ignores the side to move.
func WeakHash(pos *chess.Position) uint32 {
	var hash uint32
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			cp := pos.At(col, row)
			if cp.IsEmpty() {
				continue
			}
			sq := uint32(row*chess.BoardSize + col + 1)
			code := uint32(cp.Piece)*2 + uint32(cp.Colour) + 1
			hash += sq * code * 2654435761
		}
	}
	return hash
}
