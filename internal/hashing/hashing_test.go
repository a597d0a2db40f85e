package hashing

import (
	"testing"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/game"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// playRecord plays the coordinate moves from the initial position.
func playRecord(t *testing.T, moves ...string) *output.GameRecord {
	t.Helper()
	g := game.New()
	for _, m := range moves {
		if _, err := g.ApplyText(m); err != nil {
			t.Fatalf("ApplyText(%q): %v", m, err)
		}
	}
	return g.Record()
}

func TestZobristHashConsistency(t *testing.T) {
	hash1 := GenerateZobristHash(chess.NewPosition(), chess.White)
	hash2 := GenerateZobristHash(chess.NewPosition(), chess.White)

	if hash1 != hash2 {
		t.Errorf("Identical positions produced different hashes: %x != %x", hash1, hash2)
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	pos1 := chess.NewPosition()
	pos2 := chess.NewPosition()
	pos2.MakeMove(chess.NewMove(4, 6, 4, 4))

	if GenerateZobristHash(pos1, chess.White) == GenerateZobristHash(pos2, chess.White) {
		t.Error("Different positions produced the same hash")
	}
}

func TestZobristHashMatchesFEN(t *testing.T) {
	pos := chess.NewPosition()
	pos.MakeMove(chess.NewMove(4, 6, 4, 4))

	fenPos, toMove, err := engine.NewPositionFromFEN(engine.PositionToFEN(pos, chess.Black))
	if err != nil {
		t.Fatal(err)
	}
	if GenerateZobristHash(pos, chess.Black) != GenerateZobristHash(fenPos, toMove) {
		t.Error("Position rebuilt from its FEN hashes differently")
	}
}

func TestSideToMoveAffectsHash(t *testing.T) {
	pos := chess.NewPosition()
	if GenerateZobristHash(pos, chess.White) == GenerateZobristHash(pos, chess.Black) {
		t.Error("Same position with different side to move should have different hashes")
	}
}

func TestWeakHashConsistency(t *testing.T) {
	hash1 := WeakHash(chess.NewPosition())
	hash2 := WeakHash(chess.NewPosition())

	if hash1 != hash2 {
		t.Errorf("Identical positions produced different weak hashes: %x != %x", hash1, hash2)
	}
	if hash1 == WeakHash(chess.NewEmptyPosition()) {
		t.Error("Full and empty boards produced the same weak hash")
	}
}

func TestDuplicateDetector(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	rec := playRecord(t, "e2e4", "e7e5")

	// First game should not be a duplicate
	if detector.CheckAndAdd(rec) {
		t.Error("First game was marked as duplicate")
	}

	// Same game should be a duplicate
	if !detector.CheckAndAdd(playRecord(t, "e2e4", "e7e5")) {
		t.Error("Duplicate game was not detected")
	}

	if detector.DuplicateCount() != 1 {
		t.Errorf("Expected 1 duplicate, got %d", detector.DuplicateCount())
	}
}

func TestDuplicateDetectorTransposition(t *testing.T) {
	// Both games reach the same position in the same number of moves.
	a := playRecord(t, "g1f3", "g8f6", "b1c3")
	b := playRecord(t, "b1c3", "g8f6", "g1f3")
	longer := playRecord(t, "g1f3", "g8f6", "b1c3", "f6g8", "c3b1", "g8f6", "b1c3")

	loose := NewDuplicateDetector(false, 0)
	loose.CheckAndAdd(a)
	if !loose.CheckAndAdd(b) {
		t.Error("Transposed game was not detected")
	}

	exact := NewDuplicateDetector(true, 0)
	exact.CheckAndAdd(a)
	if exact.CheckAndAdd(longer) {
		t.Error("Exact matching should compare move counts")
	}
	if !loose.CheckAndAdd(longer) {
		t.Error("Loose matching should ignore move counts")
	}
}

func TestDuplicateDetectorHashType(t *testing.T) {
	a := playRecord(t, "g1f3", "g8f6", "b1c3")
	b := playRecord(t, "b1c3", "g8f6", "g1f3")

	tests := []struct {
		name     string
		hashType HashType
		wantDup  bool
	}{
		{"final position", HashFinalPosition, true},
		{"all positions", HashAllPositions, false},
		{"move sequence", HashMoveSequence, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDuplicateDetector(true, 0)
			d.SetHashType(tt.hashType)
			if d.CheckAndAdd(a) {
				t.Fatal("First game reported as duplicate")
			}
			if got := d.CheckAndAdd(b); got != tt.wantDup {
				t.Errorf("CheckAndAdd(transposition) = %v; want %v", got, tt.wantDup)
			}
			if !d.CheckAndAdd(playRecord(t, "g1f3", "g8f6", "b1c3")) {
				t.Error("Replayed game was not detected")
			}
		})
	}
}

func TestHashTypeFor(t *testing.T) {
	tests := []struct {
		key  config.DuplicateKey
		want HashType
	}{
		{config.FinalPosition, HashFinalPosition},
		{config.AllPositions, HashAllPositions},
		{config.MoveSequence, HashMoveSequence},
	}
	for _, tt := range tests {
		if got := HashTypeFor(tt.key); got != tt.want {
			t.Errorf("HashTypeFor(%v) = %v; want %v", tt.key, got, tt.want)
		}
	}
}

func TestDuplicateDetectorDifferentGames(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)

	if detector.CheckAndAdd(playRecord(t)) {
		t.Error("Game 1 was incorrectly marked as duplicate")
	}
	if detector.CheckAndAdd(playRecord(t, "e2e4")) {
		t.Error("Game 2 was incorrectly marked as duplicate")
	}

	if detector.DuplicateCount() != 0 {
		t.Errorf("Expected 0 duplicates, got %d", detector.DuplicateCount())
	}
	if detector.UniqueCount() != 2 {
		t.Errorf("Expected 2 unique games, got %d", detector.UniqueCount())
	}
}

func TestDuplicateDetectorUnreadableRecord(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	rec := &output.GameRecord{FinalFEN: "garbage"}

	if detector.CheckAndAdd(rec) || detector.CheckAndAdd(rec) || detector.CheckAndAdd(nil) {
		t.Error("Unreadable records should never be duplicates")
	}
	if detector.UniqueCount() != 0 {
		t.Errorf("Expected nothing stored, got %d", detector.UniqueCount())
	}
}

func TestDuplicateDetectorCapacity(t *testing.T) {
	detector := NewDuplicateDetector(false, 1)

	detector.CheckAndAdd(playRecord(t))
	if !detector.IsFull() {
		t.Fatal("Detector with capacity 1 should be full after one game")
	}
	if detector.CheckAndAdd(playRecord(t, "d2d4")) {
		t.Error("New game reported as duplicate")
	}
	if !detector.CheckAndAdd(playRecord(t)) {
		t.Error("Stored game should still be detected when full")
	}
	if detector.UniqueCount() != 1 {
		t.Errorf("Expected 1 unique game, got %d", detector.UniqueCount())
	}
}

func TestDuplicateDetectorReset(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	rec := playRecord(t)

	detector.CheckAndAdd(rec)
	detector.CheckAndAdd(rec)

	if detector.DuplicateCount() != 1 {
		t.Errorf("Expected 1 duplicate before reset, got %d", detector.DuplicateCount())
	}

	detector.Reset()

	if detector.DuplicateCount() != 0 {
		t.Errorf("Expected 0 duplicates after reset, got %d", detector.DuplicateCount())
	}
	if detector.UniqueCount() != 0 {
		t.Errorf("Expected 0 unique games after reset, got %d", detector.UniqueCount())
	}
}

func TestGameHasher(t *testing.T) {
	a := playRecord(t, "g1f3", "g8f6", "b1c3")
	b := playRecord(t, "b1c3", "g8f6", "g1f3")

	tests := []struct {
		name     string
		hashType HashType
		wantSame bool
	}{
		{"final position ignores move order", HashFinalPosition, true},
		{"all positions see move order", HashAllPositions, false},
		{"move sequence sees move order", HashMoveSequence, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := NewGameHasher(tt.hashType)
			ha, err := gh.HashGame(a)
			if err != nil {
				t.Fatal(err)
			}
			hb, err := gh.HashGame(b)
			if err != nil {
				t.Fatal(err)
			}
			if (ha == hb) != tt.wantSame {
				t.Errorf("hashes equal = %v; want %v", ha == hb, tt.wantSame)
			}
		})
	}
}

func TestHashAllPositionsMatchesReplay(t *testing.T) {
	rec := playRecord(t, "e2e4", "d7d5", "e4d5")
	gh := NewGameHasher(HashAllPositions)

	h1, err := gh.HashGame(rec)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := gh.HashGame(playRecord(t, "e2e4", "d7d5", "e4d5"))
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("Same game hashed differently: %x != %x", h1, h2)
	}

	rec.StartFEN = "bad"
	if _, err := gh.HashGame(rec); err == nil {
		t.Error("Expected an error for an unreadable start position")
	}
}
