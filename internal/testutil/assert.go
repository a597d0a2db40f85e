// Package testutil provides shared test helpers: go-cmp based assertions and
// board fixtures drawn from text diagrams.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chess-ai-go/internal/chess"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		reportf(t, formatMessage(msgAndArgs...), "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		reportf(t, formatMessage(msgAndArgs...), "unexpected error: %v", err)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		reportf(t, formatMessage(msgAndArgs...), "error %v is not %v", err, target)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		reportf(t, formatMessage(msgAndArgs...), "%q does not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		reportf(t, formatMessage(msgAndArgs...), "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		reportf(t, formatMessage(msgAndArgs...), "expected false but got true")
	}
}

// AssertDestinations compares the destination squares of moves against want,
// ignoring order.
func AssertDestinations(t *testing.T, moves []chess.Move, want []chess.Square, msgAndArgs ...interface{}) {
	t.Helper()
	got := make([]chess.Square, 0, len(moves))
	for _, m := range moves {
		got = append(got, m.To)
	}
	if want == nil {
		want = []chess.Square{}
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(squareLess)); diff != "" {
		reportf(t, formatMessage(msgAndArgs...), "destinations mismatch (-want +got):\n%s", diff)
	}
}

// AssertMoveSet compares two move lists as sets of coordinate moves.
func AssertMoveSet(t *testing.T, got []chess.Move, want []string, msgAndArgs ...interface{}) {
	t.Helper()
	gotUCI := make([]string, 0, len(got))
	for _, m := range got {
		gotUCI = append(gotUCI, m.UCI())
	}
	if want == nil {
		want = []string{}
	}
	less := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, gotUCI, cmpopts.SortSlices(less)); diff != "" {
		reportf(t, formatMessage(msgAndArgs...), "move set mismatch (-want +got):\n%s", diff)
	}
}

func squareLess(a, b chess.Square) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

func reportf(t *testing.T, msg, format string, args ...interface{}) {
	t.Helper()
	if msg != "" {
		t.Errorf("%s: "+format, append([]interface{}{msg}, args...)...)
		return
	}
	t.Errorf(format, args...)
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
