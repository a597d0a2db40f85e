package matching

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/output"
)

// TagOperator compares a header tag with a criterion value.
type TagOperator int

const (
	OpNone TagOperator = iota
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains // substring
	OpRegex
	OpPrefix // e.g. an ECO letter
)

// operatorTokens lists the criterion-line spellings, longest first.
var operatorTokens = []struct {
	token string
	op    TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"<>", OpNotEqual},
	{"!=", OpNotEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"=", OpEqual},
	{"~", OpRegex},
	{"^", OpPrefix},
}

// PlayerTag is a pseudo-tag matching the White or the Black player.
const PlayerTag = "Player"

// TagCriterion is one test on a header tag. Text comparisons ignore case.
type TagCriterion struct {
	Tag   string
	Value string
	Op    TagOperator

	re    *regexp.Regexp
	lower string
}

// accepts reports whether a tag value passes the criterion.
func (c *TagCriterion) accepts(value string) bool {
	switch c.Op {
	case OpNone, OpEqual:
		return strings.EqualFold(value, c.Value)
	case OpNotEqual:
		return !strings.EqualFold(value, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(value), c.lower)
	case OpPrefix:
		return strings.HasPrefix(strings.ToLower(value), c.lower)
	case OpRegex:
		return c.re.MatchString(value)
	}
	return c.ordered(value)
}

// ordered applies a relational operator, numerically when both sides are
// numbers (PlyCount) and alphabetically otherwise.
func (c *TagCriterion) ordered(value string) bool {
	var order int
	a, errA := strconv.ParseFloat(value, 64)
	b, errB := strconv.ParseFloat(c.Value, 64)
	switch {
	case errA == nil && errB == nil && a < b:
		order = -1
	case errA == nil && errB == nil && a > b:
		order = 1
	case errA == nil && errB == nil:
		order = 0
	default:
		order = strings.Compare(strings.ToLower(value), c.lower)
	}

	switch c.Op {
	case OpLessThan:
		return order < 0
	case OpLessOrEqual:
		return order <= 0
	case OpGreaterThan:
		return order > 0
	case OpGreaterOrEqual:
		return order >= 0
	}
	return false
}

// TagMatcher selects games by their header tags. By default every criterion
// must hold; SetMatchAll(false) needs only one.
type TagMatcher struct {
	criteria []*TagCriterion
	matchAll bool
}

// NewTagMatcher creates a matcher without criteria, which accepts every game.
func NewTagMatcher() *TagMatcher {
	return &TagMatcher{matchAll: true}
}

// SetMatchAll chooses between all (true) and any (false) of the criteria.
func (tm *TagMatcher) SetMatchAll(all bool) {
	tm.matchAll = all
}

// AddCriterion adds a test of tag against value.
func (tm *TagMatcher) AddCriterion(tag, value string, op TagOperator) error {
	c := &TagCriterion{Tag: tag, Value: value, Op: op, lower: strings.ToLower(value)}
	if op == OpRegex {
		re, err := regexp.Compile(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "tag %s pattern %q: %v", tag, value, err)
		}
		c.re = re
	}
	tm.criteria = append(tm.criteria, c)
	return nil
}

// AddEqual adds a case-insensitive equality test.
func (tm *TagMatcher) AddEqual(tag, value string) error {
	return tm.AddCriterion(tag, value, OpEqual)
}

// AddPlayer adds a test that either player's name contains name.
func (tm *TagMatcher) AddPlayer(name string) error {
	return tm.AddCriterion(PlayerTag, name, OpContains)
}

// LoadTagFile adds the criteria of a file, one per line.
func (tm *TagMatcher) LoadTagFile(filename string) error {
	f, err := os.Open(filename) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return fmt.Errorf("cannot open tag file: %w", err)
	}
	defer f.Close()
	return tm.LoadCriteria(f, filename)
}

// LoadCriteria adds one criterion per line of r; name prefixes errors.
func (tm *TagMatcher) LoadCriteria(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		if err := tm.ParseCriterion(sc.Text()); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	return sc.Err()
}

// ParseCriterion adds the criterion of a line such as
//
//	Result "0-1"
//	PlyCount >= 40
//	Opening ~ "Sicilian|French"
//
// A missing operator means equality. Blank lines and '#' comments add
// nothing.
func (tm *TagMatcher) ParseCriterion(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	end := strings.IndexAny(line, " \t<>=!~^")
	if end <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "criterion %q has no value", line)
	}
	tag, rest := line[:end], strings.TrimSpace(line[end:])

	op := OpEqual
	for _, t := range operatorTokens {
		if strings.HasPrefix(rest, t.token) {
			op = t.op
			rest = strings.TrimSpace(rest[len(t.token):])
			break
		}
	}
	if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
		rest = rest[1 : len(rest)-1]
	}
	return tm.AddCriterion(tag, rest, op)
}

// Match implements GameMatcher.
func (tm *TagMatcher) Match(game *output.GameRecord) bool {
	if len(tm.criteria) == 0 {
		return true
	}
	for _, c := range tm.criteria {
		if tm.holds(game, c) != tm.matchAll {
			return !tm.matchAll
		}
	}
	return tm.matchAll
}

// holds evaluates one criterion. A missing tag only satisfies "!=".
func (tm *TagMatcher) holds(game *output.GameRecord, c *TagCriterion) bool {
	if c.Tag == PlayerTag {
		return c.accepts(game.White) || c.accepts(game.Black)
	}
	value, ok := game.Tag(c.Tag)
	if !ok {
		return c.Op == OpNotEqual
	}
	return c.accepts(value)
}

// CriteriaCount returns the number of criteria.
func (tm *TagMatcher) CriteriaCount() int {
	return len(tm.criteria)
}

// Name implements GameMatcher.
func (tm *TagMatcher) Name() string {
	return fmt.Sprintf("TagMatcher(%d)", len(tm.criteria))
}
