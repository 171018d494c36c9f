package activation

import (
	"testing"

	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/spec"
)

func regOf(t *testing.T, ids ...string) *registry.Registry {
	t.Helper()
	sources := make([]spec.Source, 0, len(ids))
	for _, id := range ids {
		sources = append(sources, spec.Source{
			ID:          id,
			Name:        "Skill " + id,
			Description: "Guidance for " + id + ".",
			Body:        "body",
		})
	}
	reg, errs := registry.Load(sources)
	if len(errs) > 0 {
		t.Fatalf("registry load failed: %v", errs)
	}
	return reg
}

func activeIDs(set spec.ActiveSet) []string {
	return set.SkillIDs()
}

func TestActivate_ThresholdGate(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "weak", "strong", "exact")
	candidates := []spec.MatchResult{
		{SkillID: "weak", Score: 0.2, MatchedTerms: []string{"x"}, FirstMention: 0},
		{SkillID: "strong", Score: 0.8, MatchedTerms: []string{"y"}, FirstMention: 4},
		{SkillID: "exact", Score: 0.3, MatchedTerms: []string{"z"}, FirstMention: 9},
	}

	set := NewPolicy(Config{}).Activate(candidates, "unrelated request", reg)
	got := activeIDs(set)
	want := []string{"strong", "exact"}
	if len(got) != len(want) {
		t.Fatalf("active = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("active = %v, want %v", got, want)
		}
	}
}

func TestActivate_CustomThreshold(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "a")
	candidates := []spec.MatchResult{
		{SkillID: "a", Score: 0.5, MatchedTerms: []string{"x"}, FirstMention: 0},
	}

	set := NewPolicy(Config{Threshold: 0.6}).Activate(candidates, "req", reg)
	if !set.Empty() {
		t.Fatalf("active = %v, want empty under raised threshold", activeIDs(set))
	}
}

func TestActivate_OrdersByMatchedCountThenMentionThenRegistration(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "tie-first", "tie-second", "rich", "nowhere")
	candidates := []spec.MatchResult{
		{SkillID: "tie-second", Score: 0.5, MatchedTerms: []string{"a"}, FirstMention: 12},
		{SkillID: "tie-first", Score: 0.5, MatchedTerms: []string{"b"}, FirstMention: 12},
		{SkillID: "rich", Score: 0.4, MatchedTerms: []string{"c", "d"}, FirstMention: 30},
		{SkillID: "nowhere", Score: 0.5, MatchedTerms: []string{"e"}, FirstMention: -1},
	}

	set := NewPolicy(Config{}).Activate(candidates, "req", reg)
	got := activeIDs(set)
	// rich matched two triggers so it leads despite the lower score and
	// later mention; the equal-count pair falls back to mention position
	// and then registration order; a missing mention sorts last.
	want := []string{"rich", "tie-first", "tie-second", "nowhere"}
	if len(got) != len(want) {
		t.Fatalf("active = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("active = %v, want %v", got, want)
		}
	}
}

func TestActivate_EqualCountAndMentionUsesRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "one", "two")
	candidates := []spec.MatchResult{
		{SkillID: "two", Score: 0.5, MatchedTerms: []string{"a"}, FirstMention: 3},
		{SkillID: "one", Score: 0.5, MatchedTerms: []string{"b"}, FirstMention: 3},
	}

	set := NewPolicy(Config{}).Activate(candidates, "req", reg)
	got := activeIDs(set)
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("active = %v, want [one two]", got)
	}
}

func TestActivate_ForcedByIDMention(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "release-notes")

	set := NewPolicy(Config{}).Activate(nil, "use the release-notes skill here", reg)
	if len(set.Activations) != 1 {
		t.Fatalf("active = %v, want forced release-notes", activeIDs(set))
	}
	act := set.Activations[0]
	if act.SkillID != "release-notes" || !act.Forced {
		t.Fatalf("activation = %+v, want forced release-notes", act)
	}
	if act.FirstMention != 8 {
		t.Fatalf("first mention = %d, want 8", act.FirstMention)
	}
}

func TestActivate_IDMentionMustBeWordBounded(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "test")

	set := NewPolicy(Config{}).Activate(nil, "the latest news", reg)
	if !set.Empty() {
		t.Fatalf("active = %v, want empty: embedded substring is not a mention", activeIDs(set))
	}
}

func TestActivate_ForcedByDisplayName(t *testing.T) {
	t.Parallel()

	sources := []spec.Source{{
		ID:          "gcm",
		Name:        "Git Commit Message",
		Description: "Guidance for commits.",
		Body:        "body",
	}}
	reg, errs := registry.Load(sources)
	if len(errs) > 0 {
		t.Fatalf("registry load failed: %v", errs)
	}

	set := NewPolicy(Config{}).Activate(nil, "follow the Git commit messages advice", reg)
	if len(set.Activations) != 1 || set.Activations[0].SkillID != "gcm" || !set.Activations[0].Forced {
		t.Fatalf("activations = %+v, want forced gcm", set.Activations)
	}
}

func TestActivate_SingleTokenNameDoesNotForce(t *testing.T) {
	t.Parallel()

	sources := []spec.Source{{
		ID:          "tst",
		Name:        "Tests",
		Description: "Guidance for tests.",
		Body:        "body",
	}}
	reg, errs := registry.Load(sources)
	if len(errs) > 0 {
		t.Fatalf("registry load failed: %v", errs)
	}

	set := NewPolicy(Config{}).Activate(nil, "tests are great", reg)
	if !set.Empty() {
		t.Fatalf("active = %v, want empty: one-word names are ambiguous", activeIDs(set))
	}
}

func TestActivate_MentionDoesNotDuplicateActiveSkill(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "release-notes")
	candidates := []spec.MatchResult{
		{SkillID: "release-notes", Score: 0.9, MatchedTerms: []string{"notes"}, FirstMention: 8},
	}

	set := NewPolicy(Config{}).Activate(candidates, "use the release-notes skill", reg)
	if len(set.Activations) != 1 {
		t.Fatalf("activations = %+v, want exactly one", set.Activations)
	}
	if set.Activations[0].Forced {
		t.Fatal("threshold-passing skill should not be marked forced")
	}
}

func TestActivate_ForcedKeepsSubThresholdScore(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "release-notes")
	candidates := []spec.MatchResult{
		{SkillID: "release-notes", Score: 0.1, MatchedTerms: []string{"notes"}, FirstMention: 25},
	}

	set := NewPolicy(Config{}).Activate(candidates, "use the release-notes skill", reg)
	if len(set.Activations) != 1 {
		t.Fatalf("activations = %+v, want one forced entry", set.Activations)
	}
	act := set.Activations[0]
	if !act.Forced || act.Score != 0.1 {
		t.Fatalf("activation = %+v, want forced with the scored value kept", act)
	}
}

func TestActivate_ForcedSortsAfterMatched(t *testing.T) {
	t.Parallel()

	reg := regOf(t, "release-notes", "writing-tests")
	candidates := []spec.MatchResult{
		{SkillID: "writing-tests", Score: 0.5, MatchedTerms: []string{"test"}, FirstMention: 40},
	}

	set := NewPolicy(Config{}).Activate(candidates, "use the release-notes skill and write tests", reg)
	got := activeIDs(set)
	if len(got) != 2 || got[0] != "writing-tests" || got[1] != "release-notes" {
		t.Fatalf("active = %v, want matched skill before forced-only skill", got)
	}
}
