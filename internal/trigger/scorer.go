package trigger

import (
	"github.com/flexigpt/skillrouter-go/spec"
)

const (
	DefaultPhraseWeight  = 3.0
	DefaultKeywordWeight = 1.0
)

// Config holds the scoring weights. Weights are configurable by
// design; the defaults favor explicit phrase matches over single
// keyword overlaps.
type Config struct {
	PhraseWeight  float64
	KeywordWeight float64
}

func (c Config) withDefaults() Config {
	if c.PhraseWeight <= 0 {
		c.PhraseWeight = DefaultPhraseWeight
	}
	if c.KeywordWeight <= 0 {
		c.KeywordWeight = DefaultKeywordWeight
	}
	return c
}

// OverlapScorer is the baseline keyword/phrase-overlap implementation
// of spec.TriggerScorer. It is stateless and safe for concurrent use.
type OverlapScorer struct {
	cfg Config
}

func NewOverlapScorer(cfg Config) *OverlapScorer {
	return &OverlapScorer{cfg: cfg.withDefaults()}
}

// Score decomposes the skill's description into triggers and sums the
// weights of the matched ones, normalized by the skill's trigger
// count. Matching is case-insensitive with morphological folding.
func (s *OverlapScorer) Score(requestText string, sk spec.Skill) spec.MatchResult {
	res := spec.MatchResult{SkillID: sk.ID, FirstMention: -1}

	triggers := ParseTriggers(sk.Description)
	if len(triggers) == 0 {
		return res
	}

	req := ContentTokens(Tokenize(requestText))
	if len(req) == 0 {
		return res
	}

	var sum float64
	for _, trig := range triggers {
		offset, ok := findTokens(req, trig.Tokens)
		if !ok {
			continue
		}
		if trig.Phrase {
			sum += s.cfg.PhraseWeight
		} else {
			sum += s.cfg.KeywordWeight
		}
		res.MatchedTerms = append(res.MatchedTerms, trig.Text)
		if res.FirstMention < 0 || offset < res.FirstMention {
			res.FirstMention = offset
		}
	}

	res.Score = sum / float64(len(triggers))
	return res
}

// findTokens locates the folded token sequence `want` as a consecutive
// run within the request tokens, returning the byte offset of the
// first matched token.
func findTokens(req []Token, want []string) (offset int, ok bool) {
	if len(want) == 0 {
		return 0, false
	}
	for i := 0; i+len(want) <= len(req); i++ {
		match := true
		for j, w := range want {
			if req[i+j].Fold != w {
				match = false
				break
			}
		}
		if match {
			return req[i].Offset, true
		}
	}
	return 0, false
}
