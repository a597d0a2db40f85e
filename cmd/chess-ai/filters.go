// filters.go - Selection of the self-play games that are written out
package main

import (
	"github.com/lgbarn/chess-ai-go/internal/matching"
	"github.com/lgbarn/chess-ai-go/internal/worker"
)

// buildMatcher combines the selection flags into one matcher. It returns nil
// when no selection flag is set.
func buildMatcher() (matching.GameMatcher, error) {
	all := matching.NewCompositeMatcher(matching.MatchAll)

	tags := matching.NewTagMatcher()
	if *tagFile != "" {
		if err := tags.LoadTagFile(*tagFile); err != nil {
			return nil, err
		}
	}
	if *playerFilter != "" {
		if err := tags.AddPlayer(*playerFilter); err != nil {
			return nil, err
		}
	}
	if *ecoFilter != "" {
		if err := tags.AddCriterion("ECO", *ecoFilter, matching.OpPrefix); err != nil {
			return nil, err
		}
	}
	if *resultFilter != "" {
		if err := tags.AddEqual("Result", *resultFilter); err != nil {
			return nil, err
		}
	}
	if tags.CriteriaCount() > 0 {
		all.Add(tags)
	}

	if *fenFilter != "" {
		pm := matching.NewPositionMatcher()
		if err := pm.AddFEN(*fenFilter, ""); err != nil {
			return nil, err
		}
		all.Add(pm)
	}
	for _, balance := range []struct {
		flag  string
		exact bool
	}{{*materialMatch, false}, {*materialMatchExact, true}} {
		if balance.flag == "" {
			continue
		}
		mm, err := matching.NewMaterialMatcher(balance.flag, balance.exact)
		if err != nil {
			return nil, err
		}
		all.Add(mm)
	}
	if *minPly > 0 || *maxPly > 0 {
		all.Add(matching.PlyRange{Min: *minPly, Max: *maxPly})
	}
	if *checkmateFilter {
		all.Add(matching.Termination("checkmate"))
	}
	if *stalemateFilter {
		all.Add(matching.Termination("stalemate"))
	}

	if len(all.Matchers()) == 0 {
		return nil, nil
	}
	if *negateMatch {
		return matching.Negated{M: all}, nil
	}
	return all, nil
}

// selectGame reports whether a finished game should be written.
func selectGame(res worker.ProcessResult, m matching.GameMatcher) bool {
	if res.Record == nil {
		return false
	}
	if *suppressDuplicates && res.Duplicate {
		return false
	}
	return m == nil || m.Match(res.Record)
}
