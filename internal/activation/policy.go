// Package activation decides which scored candidates actually fire
// for a request. Activation is the only stage allowed to drop a
// candidate, and it may only do so below the threshold: nothing that
// clears the threshold is ever dropped, and no skill activates twice.
package activation

import (
	"sort"
	"strings"

	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/internal/trigger"
	"github.com/flexigpt/skillrouter-go/spec"
)

// DefaultThreshold separates "scored but irrelevant" from "candidate".
// With default weights a single keyword hit on a three-trigger skill
// (score 1/3) clears it.
const DefaultThreshold = 0.3

type Config struct {
	Threshold float64
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	return c
}

// Policy applies the threshold and the explicit name-mention override.
type Policy struct {
	cfg Config
}

func NewPolicy(cfg Config) *Policy {
	return &Policy{cfg: cfg.withDefaults()}
}

// Threshold returns the configured activation threshold.
func (p *Policy) Threshold() float64 { return p.cfg.Threshold }

// Activate builds the active set for one request:
//
//   - every candidate with score >= threshold fires; simultaneous
//     activation of multiple skills is expected, not exceptional;
//   - a skill named explicitly in the request (by ID, or by its full
//     display name) force-activates regardless of score;
//   - ordering is deterministic: most matched triggers first, then
//     earliest first mention in the request, then registration order.
//
// Normalized scores are relative to each skill's own trigger count and
// are not comparable across skills, so cross-skill ranking uses the
// absolute matched-trigger count instead.
func (p *Policy) Activate(
	candidates []spec.MatchResult,
	requestText string,
	reg *registry.Registry,
) spec.ActiveSet {
	type ranked struct {
		act      spec.Activation
		matched  int
		orderIdx int
	}

	byID := make(map[string]spec.MatchResult, len(candidates))
	for _, c := range candidates {
		byID[c.SkillID] = c
	}

	var rows []ranked
	active := map[string]struct{}{}

	for _, c := range candidates {
		if c.Score < p.cfg.Threshold {
			continue
		}
		active[c.SkillID] = struct{}{}
		rows = append(rows, ranked{
			act: spec.Activation{
				SkillID:      c.SkillID,
				Score:        c.Score,
				FirstMention: c.FirstMention,
			},
			matched:  len(c.MatchedTerms),
			orderIdx: reg.OrderIndex(c.SkillID),
		})
	}

	// Override path: explicit mentions bypass the threshold.
	for _, sk := range reg.Skills() {
		if _, ok := active[sk.ID]; ok {
			continue
		}
		mention := mentionOffset(requestText, sk)
		if mention < 0 {
			continue
		}
		act := spec.Activation{SkillID: sk.ID, FirstMention: mention, Forced: true}
		matched := 0
		if c, ok := byID[sk.ID]; ok {
			act.Score = c.Score
			matched = len(c.MatchedTerms)
			if c.FirstMention >= 0 && c.FirstMention < mention {
				act.FirstMention = c.FirstMention
			}
		}
		active[sk.ID] = struct{}{}
		rows = append(rows, ranked{act: act, matched: matched, orderIdx: reg.OrderIndex(sk.ID)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.matched != b.matched {
			return a.matched > b.matched
		}
		am, bm := mentionKey(a.act.FirstMention), mentionKey(b.act.FirstMention)
		if am != bm {
			return am < bm
		}
		return a.orderIdx < b.orderIdx
	})

	out := spec.ActiveSet{}
	for _, r := range rows {
		out.Activations = append(out.Activations, r.act)
	}
	return out
}

// mentionKey sorts unmatched (-1) positions last.
func mentionKey(offset int) int {
	if offset < 0 {
		return int(^uint(0) >> 1)
	}
	return offset
}

// mentionOffset finds an explicit, unambiguous mention of the skill in
// the request: the skill ID as a standalone word-bounded substring, or
// the full display name as a consecutive token sequence.
func mentionOffset(requestText string, sk spec.Skill) int {
	best := -1

	if off := indexWordBounded(requestText, sk.ID); off >= 0 {
		best = off
	}

	nameToks := trigger.ContentTokens(trigger.Tokenize(sk.Name))
	// Single-token names are too ambiguous to force-activate on; they
	// are covered by regular trigger matching anyway.
	if len(nameToks) >= 2 {
		want := make([]string, 0, len(nameToks))
		for _, t := range nameToks {
			want = append(want, t.Fold)
		}
		reqToks := trigger.ContentTokens(trigger.Tokenize(requestText))
		for i := 0; i+len(want) <= len(reqToks); i++ {
			ok := true
			for j, w := range want {
				if reqToks[i+j].Fold != w {
					ok = false
					break
				}
			}
			if ok {
				if best < 0 || reqToks[i].Offset < best {
					best = reqToks[i].Offset
				}
				break
			}
		}
	}
	return best
}

func indexWordBounded(s, sub string) int {
	if strings.TrimSpace(sub) == "" {
		return -1
	}
	ls, lsub := strings.ToLower(s), strings.ToLower(sub)
	from := 0
	for {
		i := strings.Index(ls[from:], lsub)
		if i < 0 {
			return -1
		}
		i += from
		if boundaryAt(ls, i-1) && boundaryAt(ls, i+len(lsub)) {
			return i
		}
		from = i + 1
	}
}

func boundaryAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
