package trigger

import (
	"sort"

	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/spec"
)

// Matcher scores a request against every skill in a registry. It holds
// no per-request state and is safe for concurrent use.
type Matcher struct {
	scorer spec.TriggerScorer
}

// NewMatcher wraps a scoring strategy. A nil scorer falls back to the
// default overlap scorer.
func NewMatcher(scorer spec.TriggerScorer) *Matcher {
	if scorer == nil {
		scorer = NewOverlapScorer(Config{})
	}
	return &Matcher{scorer: scorer}
}

// Match returns results for every skill that matched at least one
// trigger, ordered by descending score with ties broken by
// registration order (first-declared wins).
func (m *Matcher) Match(requestText string, reg *registry.Registry) []spec.MatchResult {
	var out []spec.MatchResult
	for _, sk := range reg.Skills() {
		res := m.scorer.Score(requestText, sk)
		if res.Score <= 0 && len(res.MatchedTerms) == 0 {
			continue
		}
		out = append(out, res)
	}
	// Stable sort keeps registration order for equal scores.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
