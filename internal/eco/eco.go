// Package eco provides ECO (Encyclopaedia of Chess Openings) classification.
//
// Openings are read from a tab separated table, one line per opening:
//
//	ECO<TAB>Opening<TAB>Variation<TAB>e2e4 c7c5 g1f3
//
// Blank lines and lines starting with '#' are ignored. Moves are given in
// coordinate form from the initial position. A built-in table is used unless
// another is loaded.
package eco

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/hashing"
	"github.com/lgbarn/chess-ai-go/internal/notation"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// ECOHalfMoveLimit is the maximum distance from an ECO line for a match.
const ECOHalfMoveLimit = 6

// ECOTableSize is the size of the ECO hash table.
const ECOTableSize = 4096

//go:embed openings.tsv
var builtinOpenings string

// ECOEntry represents a single ECO classification entry.
type ECOEntry struct {
	ECOCode        string // e.g., "B33"
	Opening        string // e.g., "Sicilian"
	Variation      string // e.g., "Sveshnikov"
	RequiredHash   uint64 // Position hash for matching
	CumulativeHash uint64 // Cumulative hash of all moves
	HalfMoves      int    // Number of half-moves to reach this position
	Next           *ECOEntry
}

// ECOClassifier provides ECO classification for chess games.
type ECOClassifier struct {
	table         [ECOTableSize]*ECOEntry
	maxHalfMoves  int
	entriesLoaded int
}

// NewECOClassifier creates a new, empty ECO classifier.
func NewECOClassifier() *ECOClassifier {
	return &ECOClassifier{
		maxHalfMoves: ECOHalfMoveLimit,
	}
}

// Default returns a classifier loaded with the built-in opening table.
func Default() *ECOClassifier {
	ec := NewECOClassifier()
	if err := ec.LoadFromReader(strings.NewReader(builtinOpenings)); err != nil {
		panic(fmt.Sprintf("eco: built-in table: %v", err))
	}
	return ec
}

// LoadFromFile loads ECO data from a table file.
func (ec *ECOClassifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return ec.LoadFromReader(file)
}

// LoadFromReader loads ECO data from a reader. Loading stops at the first
// malformed line.
func (ec *ECOClassifier) LoadFromReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ec.addLine(line); err != nil {
			return fmt.Errorf("error parsing ECO line %d: %w", lineNum, err)
		}
	}
	return sc.Err()
}

// addLine parses one table line and adds its entry.
func (ec *ECOClassifier) addLine(line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return &errors.ParseError{
			Err:      errors.ErrInvalidConfig,
			Input:    line,
			Expected: "4 tab separated fields",
			Got:      fmt.Sprintf("%d", len(fields)),
		}
	}

	pos, colour, _ := engine.NewPositionFromFEN(engine.InitialFEN)
	var cumulativeHash uint64
	halfMoves := 0

	for _, text := range strings.Fields(fields[3]) {
		from, to, hasTo, err := notation.ParseCoordinates(text)
		if err != nil {
			return err
		}
		moves, _ := engine.LegalMoves(pos, colour)
		i := chess.IndexMove(moves, chess.Move{From: from, To: to})
		if !hasTo || i < 0 {
			return errors.Wrapf(errors.ErrIllegalMove, "%s after %d half-moves", text, halfMoves)
		}
		pos.MakeMove(moves[i])
		colour = colour.Opposite()
		halfMoves++
		cumulativeHash ^= hashing.GenerateZobristHash(pos, colour)
	}

	if halfMoves == 0 {
		return nil // No moves in this entry
	}

	ec.addEntry(&ECOEntry{
		ECOCode:        strings.TrimSpace(fields[0]),
		Opening:        strings.TrimSpace(fields[1]),
		Variation:      strings.TrimSpace(fields[2]),
		RequiredHash:   hashing.GenerateZobristHash(pos, colour),
		CumulativeHash: cumulativeHash,
		HalfMoves:      halfMoves,
	})
	return nil
}

// addEntry adds an entry to the table unless an identical line is present.
func (ec *ECOClassifier) addEntry(entry *ECOEntry) {
	ix := entry.RequiredHash % ECOTableSize
	for existing := ec.table[ix]; existing != nil; existing = existing.Next {
		if existing.RequiredHash == entry.RequiredHash &&
			existing.HalfMoves == entry.HalfMoves &&
			existing.CumulativeHash == entry.CumulativeHash {
			// Collision - skip this entry
			return
		}
	}

	entry.Next = ec.table[ix]
	ec.table[ix] = entry
	ec.entriesLoaded++

	if entry.HalfMoves+ECOHalfMoveLimit > ec.maxHalfMoves {
		ec.maxHalfMoves = entry.HalfMoves + ECOHalfMoveLimit
	}
}

// ClassifyGame finds the best ECO match for a game: the last position of the
// game's opening that appears in the table. Games from a custom start
// position are not classified. Returns nil if no match is found.
func (ec *ECOClassifier) ClassifyGame(rec *output.GameRecord) *ECOEntry {
	if ec.entriesLoaded == 0 || rec.StartFEN != "" {
		return nil
	}

	pos, colour, _ := engine.NewPositionFromFEN(engine.InitialFEN)

	var bestMatch *ECOEntry
	var cumulativeHash uint64

	for i, e := range rec.Moves {
		halfMoves := i + 1
		// Don't bother checking if we're past max ECO depth
		if halfMoves > ec.maxHalfMoves {
			break
		}
		pos.MakeMove(e.Move)
		colour = colour.Opposite()

		posHash := hashing.GenerateZobristHash(pos, colour)
		cumulativeHash ^= posHash

		if match := ec.findMatch(posHash, cumulativeHash, halfMoves); match != nil {
			bestMatch = match
		}
	}

	return bestMatch
}

// findMatch looks up a position in the ECO table.
func (ec *ECOClassifier) findMatch(posHash, cumulativeHash uint64, halfMoves int) *ECOEntry {
	ix := posHash % ECOTableSize
	var possible *ECOEntry

	for entry := ec.table[ix]; entry != nil; entry = entry.Next {
		if entry.RequiredHash == posHash {
			// Exact match on position and cumulative hash
			if entry.HalfMoves == halfMoves && entry.CumulativeHash == cumulativeHash {
				return entry
			}
			// Transposition within limit
			if abs(halfMoves-entry.HalfMoves) <= ECOHalfMoveLimit {
				possible = entry
			}
		}
	}

	return possible
}

// AddECOTags fills in the ECO, Opening and Variation fields of a record.
func (ec *ECOClassifier) AddECOTags(rec *output.GameRecord) bool {
	match := ec.ClassifyGame(rec)
	if match == nil {
		return false
	}

	rec.ECO = match.ECOCode
	rec.Opening = match.Opening
	rec.Variation = match.Variation
	return true
}

// EntriesLoaded returns the number of ECO entries loaded.
func (ec *ECOClassifier) EntriesLoaded() int {
	return ec.entriesLoaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
