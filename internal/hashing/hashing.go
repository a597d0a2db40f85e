// Package hashing detects repeated games. Games are compared by a key hash
// (the Zobrist hash of the final position unless another GameHasher key is
// chosen), a weak positional hash of the final position and optionally the
// number of moves played.
package hashing

import (
	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// DuplicateDetector tracks seen positions for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen hash codes
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal move counts
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity bounds the number of stored signatures; 0 is unlimited
	maxCapacity int
	size        int
	// hasher replaces the final position hash as the table key
	hasher *GameHasher
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// WeakHash is a fast hash for quick comparison
	WeakHash uint32
}

// NewDuplicateDetector creates a new duplicate detector. maxCapacity of 0
// means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// SetHashType chooses the key games are stored under. Games only match when
// their keys are equal, so HashAllPositions and HashMoveSequence tell apart
// games that transpose into the same final position.
func (d *DuplicateDetector) SetHashType(ht HashType) {
	if ht == HashFinalPosition {
		d.hasher = nil
		return
	}
	d.hasher = NewGameHasher(ht)
}

// Signature computes the signature of a game record from its final position.
func Signature(rec *output.GameRecord) (GameSignature, error) {
	pos, toMove, err := engine.NewPositionFromFEN(rec.FinalFEN)
	if err != nil {
		return GameSignature{}, err
	}
	return GameSignature{
		Hash:      GenerateZobristHash(pos, toMove),
		MoveCount: rec.PlyCount(),
		WeakHash:  WeakHash(pos),
	}, nil
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Records without a readable final
// position are never duplicates. Once the detector is full new signatures are
// still checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(rec *output.GameRecord) bool {
	if rec == nil {
		return false
	}
	sig, err := Signature(rec)
	if err != nil {
		return false
	}
	if d.hasher != nil {
		if sig.Hash, err = d.hasher.HashGame(rec); err != nil {
			return false
		}
	}

	if existing, ok := d.hashTable[sig.Hash]; ok {
		for _, existingSig := range existing {
			if d.signaturesMatch(sig, existingSig) {
				d.duplicateCount++
				return true
			}
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.MoveCount != b.MoveCount {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull reports whether the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.size = 0
}

// HashType specifies what to hash for duplicate detection.
type HashType int

const (
	// HashFinalPosition hashes only the final position
	HashFinalPosition HashType = iota
	// HashAllPositions combines the hashes of every position in the game
	HashAllPositions
	// HashMoveSequence hashes the moves in coordinate form
	HashMoveSequence
)

// HashTypeFor returns the hash type that implements a configured duplicate key.
func HashTypeFor(key config.DuplicateKey) HashType {
	switch key {
	case config.AllPositions:
		return HashAllPositions
	case config.MoveSequence:
		return HashMoveSequence
	}
	return HashFinalPosition
}

// GameHasher provides different hashing strategies for games.
type GameHasher struct {
	hashType HashType
}

// NewGameHasher creates a new game hasher with the specified strategy.
func NewGameHasher(ht HashType) *GameHasher {
	return &GameHasher{hashType: ht}
}

// HashGame generates a hash for the game based on the hash type.
func (gh *GameHasher) HashGame(rec *output.GameRecord) (uint64, error) {
	switch gh.hashType {
	case HashAllPositions:
		return hashAllPositions(rec)
	case HashMoveSequence:
		return hashMoveSequence(rec), nil
	default:
		sig, err := Signature(rec)
		return sig.Hash, err
	}
}

// hashAllPositions replays the game from its start position and folds every
// position's hash into the result, rotating so that order matters.
func hashAllPositions(rec *output.GameRecord) (uint64, error) {
	start := rec.StartFEN
	if start == "" {
		start = engine.InitialFEN
	}
	pos, toMove, err := engine.NewPositionFromFEN(start)
	if err != nil {
		return 0, err
	}

	hash := GenerateZobristHash(pos, toMove)
	for _, e := range rec.Moves {
		pos.MakeMove(e.Move)
		toMove = toMove.Opposite()
		hash = hash<<1 | hash>>63
		hash ^= GenerateZobristHash(pos, toMove)
	}
	return hash, nil
}

// hashMoveSequence creates a hash from the coordinate move texts.
func hashMoveSequence(rec *output.GameRecord) uint64 {
	var hash uint64
	multiplier := uint64(31)

	for _, e := range rec.Moves {
		for _, c := range e.UCI {
			hash = hash*multiplier + uint64(c)
		}
	}
	return hash
}

