package conflict

import (
	"strings"
	"testing"

	"github.com/flexigpt/skillrouter-go/spec"
)

func guidanceOf(topic string, bodyA, bodyB string) spec.MergedGuidance {
	return spec.MergedGuidance{
		Blocks: []spec.GuidanceBlock{
			{SkillID: "skill-a", Name: "Skill A", Body: bodyA},
			{SkillID: "skill-b", Name: "Skill B", Body: bodyB},
		},
		Overlaps: []spec.TopicOverlap{
			{SkillA: "skill-a", SkillB: "skill-b", Topic: topic},
		},
	}
}

func TestResolve_NoOverlaps(t *testing.T) {
	t.Parallel()

	g := spec.MergedGuidance{
		Blocks: []spec.GuidanceBlock{{SkillID: "only", Body: "## Topic\nText.\n"}},
	}
	if got := New().Resolve(g); got != nil {
		t.Fatalf("advisories = %+v, want none", got)
	}
}

func TestResolve_RedundantOverlap(t *testing.T) {
	t.Parallel()

	g := guidanceOf("Keep setup minimal",
		"## Keep setup minimal\nOne helper per suite is enough.\n",
		"## Keep setup minimal\nShared fixtures are fine in moderation.\n",
	)

	got := New().Resolve(g)
	if len(got) != 1 {
		t.Fatalf("advisories = %+v, want one", got)
	}
	adv := got[0]
	if adv.Kind != spec.AdvisoryRedundant {
		t.Fatalf("kind = %v, want redundant", adv.Kind)
	}
	if adv.SkillA != "skill-a" || adv.SkillB != "skill-b" || adv.Topic != "Keep setup minimal" {
		t.Fatalf("advisory = %+v", adv)
	}
	for _, want := range []string{"skill-a", "skill-b", "Keep setup minimal", "redundant"} {
		if !strings.Contains(adv.Note, want) {
			t.Errorf("note %q missing %q", adv.Note, want)
		}
	}
}

func TestResolve_ContradictoryOverlap(t *testing.T) {
	t.Parallel()

	g := guidanceOf("Table driven tests",
		"## Table driven tests\nAlways structure cases as tables; this should be the default.\n",
		"## Table driven tests\nAvoid tables here; never hide the arrange step.\n",
	)

	got := New().Resolve(g)
	if len(got) != 1 {
		t.Fatalf("advisories = %+v, want one", got)
	}
	adv := got[0]
	if adv.Kind != spec.AdvisoryContradictory {
		t.Fatalf("kind = %v, want contradictory", adv.Kind)
	}
	if !strings.Contains(adv.Note, "opposing guidance") {
		t.Fatalf("note %q should flag the contradiction", adv.Note)
	}
}

func TestResolve_PolarityScopedToTopicSection(t *testing.T) {
	t.Parallel()

	// The negative cue under an unrelated heading must not drag the
	// Naming section's polarity negative.
	g := guidanceOf("Naming",
		"## Other\nNever commit secrets.\n\n## Naming\nPick clear names; short is preferred.\n",
		"## Naming\nAvoid abbreviations; don't shorten words.\n",
	)

	got := New().Resolve(g)
	if len(got) != 1 || got[0].Kind != spec.AdvisoryContradictory {
		t.Fatalf("advisories = %+v, want one contradictory", got)
	}
}

func TestResolve_TopicSpelledLikeOtherBlock(t *testing.T) {
	t.Parallel()

	// The overlap carries block A's spelling; block B's heading differs
	// morphologically but folds to the same topic.
	g := guidanceOf("Keep setup minimal",
		"## Keep setup minimal\nPrefer tiny fixtures.\n",
		"## Keeping setup minimal\nAvoid fixtures entirely; never share them.\n",
	)

	got := New().Resolve(g)
	if len(got) != 1 || got[0].Kind != spec.AdvisoryContradictory {
		t.Fatalf("advisories = %+v, want one contradictory", got)
	}
}

func TestResolve_DeterministicOrder(t *testing.T) {
	t.Parallel()

	g := spec.MergedGuidance{
		Blocks: []spec.GuidanceBlock{
			{SkillID: "a", Body: "## One\nText.\n\n## Two\nText.\n"},
			{SkillID: "b", Body: "## One\nText.\n\n## Two\nText.\n"},
		},
		Overlaps: []spec.TopicOverlap{
			{SkillA: "a", SkillB: "b", Topic: "One"},
			{SkillA: "a", SkillB: "b", Topic: "Two"},
		},
	}

	first := New().Resolve(g)
	second := New().Resolve(g)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d/%d advisories, want 2 each", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("advisory %d differs across runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
