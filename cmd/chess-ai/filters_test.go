package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/matching"
	"github.com/lgbarn/chess-ai-go/internal/output"
	"github.com/lgbarn/chess-ai-go/internal/testutil"
	"github.com/lgbarn/chess-ai-go/internal/worker"
)

// stalemateFEN has Black stalemated, so games from it end at once.
const stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

func TestBuildMatcher_None(t *testing.T) {
	m, err := buildMatcher()
	testutil.AssertNoError(t, err)
	if m != nil {
		t.Errorf("buildMatcher() = %s; want nil", m.Name())
	}
}

func TestBuildMatcher(t *testing.T) {
	stalemate := &output.GameRecord{
		Result:      output.Draw,
		Termination: "stalemate",
		StartFEN:    stalemateFEN,
		FinalFEN:    stalemateFEN,
	}

	tests := []struct {
		name  string
		setup func() func()
		want  bool
	}{
		{"result matches", func() func() { return saveRestoreString(resultFilter, "1/2-1/2") }, true},
		{"result differs", func() func() { return saveRestoreString(resultFilter, "1-0") }, false},
		{"stalemate", func() func() { return saveRestoreBool(stalemateFilter, true) }, true},
		{"checkmate", func() func() { return saveRestoreBool(checkmateFilter, true) }, false},
		{"negated checkmate", func() func() {
			a := saveRestoreBool(checkmateFilter, true)
			b := saveRestoreBool(negateMatch, true)
			return func() { b(); a() }
		}, true},
		{"material", func() func() { return saveRestoreString(materialMatch, "KQ:k") }, true},
		{"exact material", func() func() { return saveRestoreString(materialMatchExact, "KQ:kp") }, false},
		{"min plies", func() func() { return saveRestoreInt(minPly, 1) }, false},
		{"position", func() func() { return saveRestoreString(fenFilter, stalemateFEN) }, true},
		{"eco", func() func() { return saveRestoreString(ecoFilter, "B") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.setup()()
			m, err := buildMatcher()
			testutil.AssertNoError(t, err)
			if m == nil {
				t.Fatal("buildMatcher() = nil")
			}
			if got := m.Match(stalemate); got != tt.want {
				t.Errorf("%s.Match() = %v; want %v", m.Name(), got, tt.want)
			}
		})
	}
}

func TestBuildMatcher_BadFEN(t *testing.T) {
	defer saveRestoreString(fenFilter, "xx")()
	_, err := buildMatcher()
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestBuildMatcher_BadMaterial(t *testing.T) {
	defer saveRestoreString(materialMatchExact, "KQ:kx")()
	_, err := buildMatcher()
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestSelectGame(t *testing.T) {
	rec := &output.GameRecord{Result: output.Draw}
	dup := worker.ProcessResult{Record: rec, Duplicate: true}

	testutil.AssertFalse(t, selectGame(worker.ProcessResult{}, nil), "no record")
	testutil.AssertTrue(t, selectGame(dup, nil))
	testutil.AssertFalse(t, selectGame(dup, matching.Termination("checkmate")))

	defer saveRestoreBool(suppressDuplicates, true)()
	testutil.AssertFalse(t, selectGame(dup, nil))
}

func TestRunSelfPlay_SuppressDuplicates(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()

	var buf bytes.Buffer
	cfg := testConfig(&buf)
	cfg.StartFEN = stalemateFEN
	cfg.SelfPlay.Games = 3

	testutil.AssertNoError(t, runSelfPlay(context.Background(), cfg, zerolog.Nop()))

	out := buf.String()
	testutil.AssertEqual(t, strings.Count(out, "[Result "), 1)
	testutil.AssertContains(t, out, "3 game(s): +0 -0 =3, 0 unfinished, 2 duplicate(s), 1 written")
}
