package matching

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chess-ai-go/internal/chess"
	"github.com/lgbarn/chess-ai-go/internal/engine"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/game"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/testutil"
)

// playRecord plays the coordinate moves from fen (the initial position when
// empty) and names the players.
func playRecord(t *testing.T, fen, moves string) *output.GameRecord {
	t.Helper()
	g := game.New()
	if fen != "" {
		var err error
		if g, err = game.NewFromFEN(fen); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range strings.Fields(moves) {
		if _, err := g.ApplyText(m); err != nil {
			t.Fatalf("ApplyText(%q): %v", m, err)
		}
	}
	rec := g.Record()
	rec.White, rec.Black = "AI depth 2", "Human"
	return rec
}

const foolsMate = "f2f3 e7e5 g2g4 d8h4"

// ---------------------------------------------------------------------------
// CompositeMatcher
// ---------------------------------------------------------------------------

type fixed bool

func (f fixed) Match(*output.GameRecord) bool { return bool(f) }
func (f fixed) Name() string                  { return "fixed" }

func TestCompositeMatcher(t *testing.T) {
	rec := playRecord(t, "", "")
	tests := []struct {
		name string
		mode MatchMode
		ms   []GameMatcher
		want bool
	}{
		{"empty AND", MatchAll, nil, true},
		{"empty OR", MatchAny, nil, false},
		{"AND all true", MatchAll, []GameMatcher{fixed(true), fixed(true)}, true},
		{"AND one false", MatchAll, []GameMatcher{fixed(true), fixed(false)}, false},
		{"OR one true", MatchAny, []GameMatcher{fixed(false), fixed(true)}, true},
		{"OR all false", MatchAny, []GameMatcher{fixed(false), fixed(false)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompositeMatcher(tt.mode, tt.ms...)
			if got := c.Match(rec); got != tt.want {
				t.Errorf("Match() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCompositeMatcher_NameAndAdd(t *testing.T) {
	c := NewCompositeMatcher(MatchAny)
	testutil.AssertEqual(t, c.Name(), "CompositeMatcher(empty)")

	c.Add(PlyRange{Min: 2, Max: 4})
	c.Add(Termination("checkmate"))
	testutil.AssertEqual(t, len(c.Matchers()), 2)
	testutil.AssertEqual(t, c.Mode(), MatchAny)
	testutil.AssertEqual(t, c.Name(), "CompositeMatcher(OR: PlyRange(2-4), Termination(checkmate))")
}

func TestNegated(t *testing.T) {
	rec := playRecord(t, "", "")
	n := Negated{M: fixed(true)}
	testutil.AssertFalse(t, n.Match(rec))
	testutil.AssertEqual(t, n.Name(), "NOT fixed")
}

// ---------------------------------------------------------------------------
// PlyRange and Termination
// ---------------------------------------------------------------------------

func TestPlyRange(t *testing.T) {
	rec := playRecord(t, "", foolsMate)
	tests := []struct {
		r    PlyRange
		want bool
	}{
		{PlyRange{}, true},
		{PlyRange{Min: 4}, true},
		{PlyRange{Min: 5}, false},
		{PlyRange{Max: 4}, true},
		{PlyRange{Max: 3}, false},
		{PlyRange{Min: 2, Max: 6}, true},
	}

	for _, tt := range tests {
		if got := tt.r.Match(rec); got != tt.want {
			t.Errorf("%s.Match() = %v; want %v", tt.r.Name(), got, tt.want)
		}
	}
}

func TestTermination(t *testing.T) {
	rec := playRecord(t, "", foolsMate)
	testutil.AssertTrue(t, Termination("checkmate").Match(rec))
	testutil.AssertTrue(t, Termination("Checkmate").Match(rec))
	testutil.AssertFalse(t, Termination("stalemate").Match(rec))
}

// ---------------------------------------------------------------------------
// TagMatcher
// ---------------------------------------------------------------------------

func TestTagMatcher_ParseCriterion(t *testing.T) {
	rec := playRecord(t, "", foolsMate)
	tests := []struct {
		line string
		want bool
	}{
		{`Result "0-1"`, true},
		{`Result = "1-0"`, false},
		{`Result != "1-0"`, true},
		{`Termination ~ "^check"`, true},
		{`ECO ^ "A"`, false},
		{`PlyCount >= 4`, true},
		{`PlyCount < 4`, false},
		{`PlyCount > 3`, true},
		{`PlyCount <= 3`, false},
		{`Opening != "Sicilian"`, true}, // missing tag
		{`Opening "Sicilian"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tm := NewTagMatcher()
			if err := tm.ParseCriterion(tt.line); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, tm.CriteriaCount(), 1)
			if got := tm.Match(rec); got != tt.want {
				t.Errorf("Match() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestTagMatcher_CommentsAndBlank(t *testing.T) {
	tm := NewTagMatcher()
	testutil.AssertNoError(t, tm.ParseCriterion(""))
	testutil.AssertNoError(t, tm.ParseCriterion("# nothing here"))
	testutil.AssertEqual(t, tm.CriteriaCount(), 0)
	testutil.AssertTrue(t, tm.Match(playRecord(t, "", "")), "no criteria matches everything")
}

func TestTagMatcher_BadRegex(t *testing.T) {
	tm := NewTagMatcher()
	testutil.AssertErrorIs(t, tm.AddCriterion("White", "([", OpRegex), errors.ErrInvalidConfig)
}

func TestTagMatcher_Player(t *testing.T) {
	rec := playRecord(t, "", "e2e4")

	tm := NewTagMatcher()
	testutil.AssertNoError(t, tm.AddPlayer("human"))
	testutil.AssertTrue(t, tm.Match(rec))

	tm = NewTagMatcher()
	testutil.AssertNoError(t, tm.AddPlayer("depth 3"))
	testutil.AssertFalse(t, tm.Match(rec))

	tm = NewTagMatcher()
	testutil.AssertNoError(t, tm.ParseCriterion(`Player "AI depth 2"`))
	testutil.AssertTrue(t, tm.Match(rec), "the Player tag is usable in criteria lines")
}

func TestTagMatcher_MalformedCriterion(t *testing.T) {
	for _, line := range []string{"Result", `= "1-0"`, `White ~ "(["`} {
		t.Run(line, func(t *testing.T) {
			tm := NewTagMatcher()
			testutil.AssertErrorIs(t, tm.ParseCriterion(line), errors.ErrInvalidConfig)
			testutil.AssertEqual(t, tm.CriteriaCount(), 0)
		})
	}
}

func TestTagMatcher_MatchAny(t *testing.T) {
	rec := playRecord(t, "", foolsMate)
	tm := NewTagMatcher()
	testutil.AssertNoError(t, tm.AddEqual("Result", "1-0"))
	testutil.AssertNoError(t, tm.AddEqual("Result", "0-1"))
	testutil.AssertFalse(t, tm.Match(rec))

	tm.SetMatchAll(false)
	testutil.AssertTrue(t, tm.Match(rec))
}

func TestTagMatcher_LoadTagFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")
	data := "# games Black won\nResult \"0-1\"\nPlyCount <= 10\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	tm := NewTagMatcher()
	testutil.AssertNoError(t, tm.LoadTagFile(path))
	testutil.AssertEqual(t, tm.CriteriaCount(), 2)
	testutil.AssertTrue(t, tm.Match(playRecord(t, "", foolsMate)))
	testutil.AssertFalse(t, tm.Match(playRecord(t, "", "e2e4")))

	testutil.AssertTrue(t, tm.LoadTagFile(filepath.Join(t.TempDir(), "absent")) != nil)
}

func TestTagMatcher_LoadCriteriaReportsLine(t *testing.T) {
	tm := NewTagMatcher()
	err := tm.LoadCriteria(strings.NewReader("Result \"0-1\"\n\nWhite ~ \"([\"\n"), "picks.txt")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	testutil.AssertContains(t, err.Error(), "picks.txt:3")
}

// ---------------------------------------------------------------------------
// MaterialMatcher
// ---------------------------------------------------------------------------

func TestMaterialMatcher(t *testing.T) {
	// 1. e4 d5 2. exd5 leaves Black a pawn down.
	rec := playRecord(t, "", "e2e4 d7d5 e4d5")
	tests := []struct {
		pattern string
		exact   bool
		want    bool
	}{
		{"KQ:kq", false, true},
		{"PPPPPPPP:pppppppp", false, true},
		{"KQRRBBNNPPPPPPPP:kqrrbbnnppppppp", true, true},
		{"KQRRBBNNPPPPPPP:kqrrbbnnppppppp", true, false},
		{"QQ:", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			mm, err := NewMaterialMatcher(tt.pattern, tt.exact)
			testutil.AssertNoError(t, err)
			if got := mm.Match(rec); got != tt.want {
				t.Errorf("%s.Match() = %v; want %v", mm.Name(), got, tt.want)
			}
		})
	}
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial("KQRR:kq")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m[chess.White][chess.Rook], 2)
	testutil.AssertEqual(t, m[chess.Black][chess.Queen], 1)
	testutil.AssertEqual(t, m[chess.Black][chess.Rook], 0)

	for _, bad := range []string{"Kx:k", "kq:k", "K:Q"} {
		_, err := ParseMaterial(bad)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig, bad)
	}

	_, err = NewMaterialMatcher("QZ:", false)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestCountMaterial(t *testing.T) {
	m := CountMaterial(chess.NewPosition())
	testutil.AssertEqual(t, m[chess.White][chess.Pawn], 8)
	testutil.AssertEqual(t, m[chess.Black][chess.Knight], 2)
	testutil.AssertEqual(t, m[chess.White][chess.King], 1)
}

// ---------------------------------------------------------------------------
// PositionMatcher
// ---------------------------------------------------------------------------

func TestPositionMatcher_AddFEN(t *testing.T) {
	pm := NewPositionMatcher()
	after := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"
	testutil.AssertNoError(t, pm.AddFEN(after, "king's pawn"))
	testutil.AssertEqual(t, pm.PatternCount(), 1)

	match := pm.MatchGame(playRecord(t, "", "e2e4 e7e5"))
	if match == nil {
		t.Fatal("MatchGame() = nil; want the king's pawn position")
	}
	testutil.AssertEqual(t, match.Label, "king's pawn")

	testutil.AssertFalse(t, pm.Match(playRecord(t, "", "d2d4 d7d5")))
	testutil.AssertErrorIs(t, pm.AddFEN("nonsense", ""), errors.ErrInvalidFEN)
}

func TestPositionMatcher_SideToMoveMatters(t *testing.T) {
	pm := NewPositionMatcher()
	testutil.AssertNoError(t, pm.AddFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1", ""))
	testutil.AssertFalse(t, pm.Match(playRecord(t, "", "e2e4")))
}

func TestPositionMatcher_Patterns(t *testing.T) {
	rec := playRecord(t, "", "e2e4 d7d5 e4d5")
	tests := []struct {
		name    string
		pattern string
		invert  bool
		want    bool
	}{
		{"white pawn on d5", "*/*/*/3P*/*/*/*/*", false, true},
		{"black pawn on e5", "*/*/*/4p*/*/*/*/*", false, false},
		{"black pawn on e5 or white on e4", "*/*/*/4p*/*/*/*/*", true, true},
		{"any piece on d5", "*/*/*/???!*/*/*/*/*", false, true},
		{"white piece on e4", "*/*/*/*/????A*/*/*/*", false, true},
		{"black piece on e4", "*/*/*/*/????a*/*/*/*", false, false},
		{"empty rank 6", "*/*/8/*/*/*/*/*", false, true},
		{"empty squares by underscore", "*/*/________/*/*/*/*/*", false, true},
		{"exact back rank", "rnbqkbnr/*/*/*/*/*/*/RNBQKBNR", false, true},
		{"nothing on a1", "*/*/*/*/*/*/*/_*", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPositionMatcher()
			pm.AddPattern(tt.pattern, tt.name, tt.invert)
			if got := pm.Match(rec); got != tt.want {
				t.Errorf("Match() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestPositionMatcher_Empty(t *testing.T) {
	pm := NewPositionMatcher()
	testutil.AssertEqual(t, pm.Name(), "PositionMatcher")
	if pm.MatchGame(playRecord(t, "", "e2e4")) != nil {
		t.Error("empty matcher should not match")
	}
}

// topRank returns the squares of rank 8 of a FEN placement's first rank.
func topRank(t *testing.T, rank string) []chess.ColouredPiece {
	t.Helper()
	pos, _, err := engine.NewPositionFromFEN(rank + "/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	squares := make([]chess.ColouredPiece, chess.BoardSize)
	for col := range squares {
		squares[col] = pos.At(col, 0)
	}
	return squares
}

func TestMatchRow(t *testing.T) {
	tests := []struct {
		rank, pattern string
		want          bool
	}{
		{"rnbqkbnr", "rnbqkbnr", true},
		{"rnbqkbnr", "rnbqkbn", false},
		{"8", "________", true},
		{"3P4", "___P____", true},
		{"3P4", "___P*", true},
		{"3P4", "*P*", true},
		{"3P4", "*p*", false},
		{"3P4", "???!????", true},
		{"3P4", "????!???", false},
		{"3Pp3", "*Aa*", true},
		{"3Pp3", "*aA*", false},
	}

	for _, tt := range tests {
		if got := matchRow(topRank(t, tt.rank), tt.pattern); got != tt.want {
			t.Errorf("matchRow(%q, %q) = %v; want %v", tt.rank, tt.pattern, got, tt.want)
		}
	}
}

func TestExpandEmpty(t *testing.T) {
	testutil.AssertEqual(t, expandEmpty("3P4"), "___P____")
	testutil.AssertEqual(t, expandEmpty("*2!"), "*__!")
}

func TestInvertPattern(t *testing.T) {
	testutil.AssertEqual(t, invertPattern("K7/8/8/8/8/8/8/7k"), "7K/8/8/8/8/8/8/k7")
}
