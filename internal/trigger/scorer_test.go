package trigger

import (
	"math"
	"testing"

	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/spec"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverlapScorer_Score(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		description  string
		request      string
		wantScore    float64
		wantTerms    []string
		wantFirstPos int
	}{
		{
			name:         "SingleKeywordOfThree",
			description:  `Triggers: "test", "spec", "coverage".`,
			request:      "write tests for the login flow",
			wantScore:    1.0 / 3.0,
			wantTerms:    []string{"test"},
			wantFirstPos: 6,
		},
		{
			name:         "PhraseOutweighsKeyword",
			description:  `Triggers: "commit message", "git commit".`,
			request:      "prepare a commit message",
			wantScore:    3.0 / 2.0,
			wantTerms:    []string{"commit message"},
			wantFirstPos: 10,
		},
		{
			name:         "CaseInsensitiveMorphological",
			description:  `Triggers: "test", "spec", "coverage".`,
			request:      "Write TESTS and improve COVERAGE",
			wantScore:    2.0 / 3.0,
			wantTerms:    []string{"test", "coverage"},
			wantFirstPos: 6,
		},
		{
			name:         "NoMatch",
			description:  `Triggers: "test", "spec", "coverage".`,
			request:      "summarize this pdf",
			wantScore:    0,
			wantTerms:    nil,
			wantFirstPos: -1,
		},
		{
			name:         "EmptyDescription",
			description:  "",
			request:      "write tests",
			wantScore:    0,
			wantTerms:    nil,
			wantFirstPos: -1,
		},
		{
			name:         "EmptyRequest",
			description:  `Triggers: "test".`,
			request:      "",
			wantScore:    0,
			wantTerms:    nil,
			wantFirstPos: -1,
		},
		{
			name:         "PhraseTokensMustBeConsecutive",
			description:  `Triggers: "commit message".`,
			request:      "the commit needs a clearer message",
			wantScore:    0,
			wantTerms:    nil,
			wantFirstPos: -1,
		},
	}

	scorer := NewOverlapScorer(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sk := spec.Skill{ID: "sk", Description: tt.description}
			got := scorer.Score(tt.request, sk)

			if !almostEqual(got.Score, tt.wantScore) {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.FirstMention != tt.wantFirstPos {
				t.Errorf("first mention = %d, want %d", got.FirstMention, tt.wantFirstPos)
			}
			if len(got.MatchedTerms) != len(tt.wantTerms) {
				t.Fatalf("matched terms = %v, want %v", got.MatchedTerms, tt.wantTerms)
			}
			for i := range tt.wantTerms {
				if got.MatchedTerms[i] != tt.wantTerms[i] {
					t.Fatalf("matched terms = %v, want %v", got.MatchedTerms, tt.wantTerms)
				}
			}
		})
	}
}

func TestOverlapScorer_CustomWeights(t *testing.T) {
	t.Parallel()

	scorer := NewOverlapScorer(Config{PhraseWeight: 5, KeywordWeight: 2})
	sk := spec.Skill{ID: "sk", Description: `Triggers: "git commit", "test".`}

	got := scorer.Score("git commit the test", sk)
	if want := 7.0 / 2.0; !almostEqual(got.Score, want) {
		t.Fatalf("score = %v, want %v", got.Score, want)
	}
}

func TestOverlapScorer_Deterministic(t *testing.T) {
	t.Parallel()

	scorer := NewOverlapScorer(Config{})
	sk := spec.Skill{ID: "sk", Description: `Triggers: "test", "coverage".`}

	first := scorer.Score("improve test coverage", sk)
	for range 5 {
		again := scorer.Score("improve test coverage", sk)
		if !almostEqual(again.Score, first.Score) ||
			again.FirstMention != first.FirstMention ||
			len(again.MatchedTerms) != len(first.MatchedTerms) {
			t.Fatalf("scoring not deterministic: %+v vs %+v", again, first)
		}
	}
}

func mustRegistry(t *testing.T, sources ...spec.Source) *registry.Registry {
	t.Helper()
	reg, errs := registry.Load(sources)
	if len(errs) > 0 {
		t.Fatalf("registry load failed: %v", errs)
	}
	return reg
}

func srcWith(id, description string) spec.Source {
	return spec.Source{
		ID:          id,
		Name:        "Skill " + id,
		Description: description,
		Body:        "body of " + id,
	}
}

func TestMatcher_OrdersByScore(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		srcWith("lo", `Triggers: "alpha", "gamma".`),
		srcWith("hi", `Triggers: "alpha beta".`),
	)

	got := NewMatcher(nil).Match("alpha beta", reg)
	if len(got) != 2 || got[0].SkillID != "hi" || got[1].SkillID != "lo" {
		t.Fatalf("got %+v, want hi before lo", got)
	}
}

func TestMatcher_TiesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		srcWith("first", `Triggers: "alpha".`),
		srcWith("second", `Triggers: "beta".`),
		srcWith("third", `Triggers: "gamma".`),
	)

	got := NewMatcher(nil).Match("beta alpha", reg)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	// Both score 1.0; registration order decides.
	if got[0].SkillID != "first" || got[1].SkillID != "second" {
		t.Fatalf("got [%s %s], want [first second]", got[0].SkillID, got[1].SkillID)
	}
}

func TestMatcher_ExcludesNonMatches(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		srcWith("tests", `Triggers: "test".`),
		srcWith("docs", `Triggers: "documentation".`),
	)

	got := NewMatcher(nil).Match("write a test", reg)
	if len(got) != 1 || got[0].SkillID != "tests" {
		t.Fatalf("got %+v, want only tests", got)
	}
}

type fixedScorer struct{ score float64 }

func (f fixedScorer) Score(_ string, sk spec.Skill) spec.MatchResult {
	return spec.MatchResult{SkillID: sk.ID, Score: f.score, FirstMention: 0}
}

func TestMatcher_PluggableScorer(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, srcWith("any", "no triggers here at all"))

	got := NewMatcher(fixedScorer{score: 0.9}).Match("unrelated", reg)
	if len(got) != 1 || !almostEqual(got[0].Score, 0.9) {
		t.Fatalf("got %+v, want the injected score", got)
	}
}
