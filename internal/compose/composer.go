// Package compose assembles the bodies of active skills into one
// ordered, labeled artifact. Composition is a pure function: bodies
// are emitted verbatim in active-set order, never deduplicated or
// truncated. Overlapping topics are marked for the conflict resolver,
// not merged away.
package compose

import (
	"strings"

	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/internal/trigger"
	"github.com/flexigpt/skillrouter-go/spec"
)

type Composer struct{}

func New() *Composer { return &Composer{} }

// Compose emits one labeled block per active skill, in active-set
// order, with the markdown headings of each body attached as topics.
// Topics appearing (near-)identically in two blocks are recorded as
// overlaps for the resolver.
func (c *Composer) Compose(active spec.ActiveSet, reg *registry.Registry) spec.MergedGuidance {
	out := spec.MergedGuidance{}

	for _, act := range active.Activations {
		sk, ok := reg.Get(act.SkillID)
		if !ok {
			continue
		}
		out.Blocks = append(out.Blocks, spec.GuidanceBlock{
			SkillID: sk.ID,
			Name:    sk.Name,
			Body:    sk.Body,
			Topics:  ExtractHeadings(sk.Body),
		})
	}

	out.Overlaps = topicOverlaps(out.Blocks)
	return out
}

func topicOverlaps(blocks []spec.GuidanceBlock) []spec.TopicOverlap {
	var out []spec.TopicOverlap
	seen := map[string]struct{}{}

	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			for _, ta := range blocks[i].Topics {
				for _, tb := range blocks[j].Topics {
					if !nearIdentical(ta, tb) {
						continue
					}
					key := blocks[i].SkillID + "\x00" + blocks[j].SkillID + "\x00" + topicKey(ta)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					out = append(out, spec.TopicOverlap{
						SkillA: blocks[i].SkillID,
						SkillB: blocks[j].SkillID,
						Topic:  ta,
					})
				}
			}
		}
	}
	return out
}

// nearIdentical reports whether two headings address the same topic:
// equal after folding, or one topic's tokens contained in the other
// (minimum two tokens, so "Testing" does not swallow "Testing Tools").
func nearIdentical(a, b string) bool {
	ta, tb := topicTokens(a), topicTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if strings.Join(ta, " ") == strings.Join(tb, " ") {
		return true
	}
	small, large := ta, tb
	if len(small) > len(large) {
		small, large = large, small
	}
	if len(small) < 2 {
		return false
	}
	set := make(map[string]struct{}, len(large))
	for _, t := range large {
		set[t] = struct{}{}
	}
	for _, t := range small {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

func topicTokens(topic string) []string {
	toks := trigger.ContentTokens(trigger.Tokenize(topic))
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Fold)
	}
	return out
}

func topicKey(topic string) string {
	return strings.Join(topicTokens(topic), " ")
}
