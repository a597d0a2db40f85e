package output

import (
	"strconv"

	"github.com/lgbarn/chess-ai-go/internal/notation"
)

// GameRecord is a finished (or abandoned) game ready to be written.
type GameRecord struct {
	ID          string
	White       string
	Black       string
	StartFEN    string
	FinalFEN    string
	Result      string
	Termination string
	Moves       []notation.Entry

	// Opening classification, filled in by an ECO classifier
	ECO       string
	Opening   string
	Variation string
}

// PlyCount returns the number of half-moves played.
func (r *GameRecord) PlyCount() int {
	return len(r.Moves)
}

// tags returns the header pairs in output order. Empty values are skipped.
func (r *GameRecord) tags() [][2]string {
	all := [][2]string{
		{"Game", r.ID},
		{"White", r.White},
		{"Black", r.Black},
		{"Result", r.Result},
		{"ECO", r.ECO},
		{"Opening", r.Opening},
		{"Variation", r.Variation},
		{"FEN", r.StartFEN},
		{"Termination", r.Termination},
	}
	out := all[:0]
	for _, t := range all {
		if t[1] != "" {
			out = append(out, t)
		}
	}
	return out
}

// Tag returns the value of a header tag. Empty tags are reported missing.
// PlyCount is always present.
func (r *GameRecord) Tag(name string) (string, bool) {
	if name == "PlyCount" {
		return strconv.Itoa(r.PlyCount()), true
	}
	for _, t := range r.tags() {
		if t[0] == name {
			return t[1], true
		}
	}
	return "", false
}
