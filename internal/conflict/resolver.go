// Package conflict classifies the topic overlaps the composer marked.
// The resolver only annotates: automatic conflict resolution on free
// text is unreliable, so overlapping guidance is surfaced for a
// human/agent decision and skill content is never edited or dropped.
package conflict

import (
	"fmt"
	"strings"

	"github.com/flexigpt/skillrouter-go/internal/trigger"
	"github.com/flexigpt/skillrouter-go/spec"
)

type Resolver struct{}

func New() *Resolver { return &Resolver{} }

// Resolve turns each marked overlap into one advisory. Overlaps whose
// two sections pull in opposite directions (one encourages what the
// other warns against) are contradictory; the rest are redundant.
// Output order follows the composer's overlap order, so resolution is
// deterministic for identical guidance.
func (r *Resolver) Resolve(g spec.MergedGuidance) []spec.Advisory {
	if len(g.Overlaps) == 0 {
		return nil
	}

	bodies := make(map[string]spec.GuidanceBlock, len(g.Blocks))
	for _, b := range g.Blocks {
		bodies[b.SkillID] = b
	}

	out := make([]spec.Advisory, 0, len(g.Overlaps))
	for _, ov := range g.Overlaps {
		pa := polarity(sectionFor(bodies[ov.SkillA].Body, ov.Topic))
		pb := polarity(sectionFor(bodies[ov.SkillB].Body, ov.Topic))

		adv := spec.Advisory{
			SkillA: ov.SkillA,
			SkillB: ov.SkillB,
			Topic:  ov.Topic,
		}
		if (pa > 0 && pb < 0) || (pa < 0 && pb > 0) {
			adv.Kind = spec.AdvisoryContradictory
			adv.Note = fmt.Sprintf(
				"skills %q and %q give opposing guidance on %q; resolve manually before acting",
				ov.SkillA, ov.SkillB, ov.Topic,
			)
		} else {
			adv.Kind = spec.AdvisoryRedundant
			adv.Note = fmt.Sprintf(
				"skills %q and %q both give guidance on %q; content may be redundant",
				ov.SkillA, ov.SkillB, ov.Topic,
			)
		}
		out = append(out, adv)
	}
	return out
}

// sectionFor returns the body text under the heading matching topic,
// up to the next heading. Falls back to the whole body when the topic
// heading is not found (the overlap may name the other block's
// spelling of it).
func sectionFor(body, topic string) string {
	want := foldJoin(topic)
	lines := strings.Split(body, "\n")

	var section []string
	collecting := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if heading, ok := strings.CutPrefix(trimmed, "#"); ok {
			heading = strings.TrimLeft(heading, "#")
			if collecting {
				break
			}
			if foldJoin(heading) == want {
				collecting = true
			}
			continue
		}
		if collecting {
			section = append(section, line)
		}
	}
	if !collecting {
		return body
	}
	return strings.Join(section, "\n")
}

func foldJoin(s string) string {
	toks := trigger.ContentTokens(trigger.Tokenize(s))
	folds := make([]string, 0, len(toks))
	for _, t := range toks {
		folds = append(folds, t.Fold)
	}
	return strings.Join(folds, " ")
}

// Polarity cues. Folded at init so morphological variants count
// ("discouraged" vs "discourage").
var (
	// "don" covers the tokenizer splitting "don't" at the apostrophe.
	negativeCues = foldCues("avoid", "never", "not", "don", "dont",
		"discourage", "discouraged", "forbid", "disallow", "skip", "without")
	positiveCues = foldCues("always", "prefer", "preferred", "recommend",
		"recommended", "should", "must", "encourage", "encouraged", "heavily")
)

func foldCues(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[trigger.FoldWord(w)] = struct{}{}
	}
	return out
}

func polarity(section string) int {
	score := 0
	for _, t := range trigger.Tokenize(section) {
		if _, ok := negativeCues[t.Fold]; ok {
			score--
		}
		if _, ok := positiveCues[t.Fold]; ok {
			score++
		}
	}
	return score
}
