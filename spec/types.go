package spec

// RequestID identifies a single routing request (UUIDv7 string).
type RequestID string

// Skill is the registry record for one guideline document.
type Skill struct {
	// ID is the unique, stable identifier within a registry. For
	// filesystem sources this is the skill directory name.
	ID string `json:"id"`

	// Name is the display label from the source header.
	Name string `json:"name"`

	// Description is the free-text trigger specification.
	Description string `json:"description"`

	// Body is the full guidance text (markdown, frontmatter stripped).
	Body string `json:"body"`

	// Location is the path of the backing SKILL.md, if any.
	Location string `json:"location,omitempty"`

	// Digest is implementation-defined. This engine uses "sha256:<hex>"
	// over the source bytes for filesystem skills.
	Digest string `json:"digest,omitempty"`

	// Properties contains the full parsed source header.
	Properties map[string]any `json:"properties,omitempty"`
}

// Source is one skill definition prior to validation. Registry
// construction consumes sources; nothing else does.
type Source struct {
	// Origin names the source in validation reports (file path or a
	// caller-chosen label for in-memory sources).
	Origin string `json:"origin"`

	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Body        string         `json:"body"`
	Digest      string         `json:"digest,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// MatchResult is the score of one skill against one request.
// Results are request-scoped and never persisted.
type MatchResult struct {
	SkillID string `json:"skill_id"`

	// Score is the sum of matched trigger weights normalized by the
	// skill's trigger count. Zero means no trigger matched.
	Score float64 `json:"score"`

	// MatchedTerms lists the trigger texts that matched, in trigger
	// declaration order.
	MatchedTerms []string `json:"matched_terms,omitempty"`

	// FirstMention is the byte offset of the earliest matched trigger
	// within the request text, or -1 when nothing matched.
	FirstMention int `json:"first_mention"`
}

// Activation records why a skill made it into the active set.
type Activation struct {
	SkillID string  `json:"skill_id"`
	Score   float64 `json:"score"`

	// FirstMention mirrors MatchResult.FirstMention; for forced
	// activations without a trigger match it is the offset of the
	// name mention instead.
	FirstMention int `json:"first_mention"`

	// Forced is true when the request named the skill explicitly,
	// bypassing the threshold.
	Forced bool `json:"forced,omitempty"`
}

// ActiveSet is the ordered set of skills chosen for one request.
// Ordering is deterministic: most matched triggers first, then
// earliest first mention in the request, then registration order.
type ActiveSet struct {
	Activations []Activation `json:"activations"`
}

// SkillIDs returns the active skill IDs in activation order.
func (s ActiveSet) SkillIDs() []string {
	ids := make([]string, 0, len(s.Activations))
	for _, a := range s.Activations {
		ids = append(ids, a.SkillID)
	}
	return ids
}

// Empty reports whether no skill activated.
func (s ActiveSet) Empty() bool { return len(s.Activations) == 0 }

// GuidanceBlock is one active skill's body, labeled and ordered.
type GuidanceBlock struct {
	SkillID string `json:"skill_id"`
	Name    string `json:"name"`

	// Body is emitted verbatim; the composer never deduplicates or
	// truncates guidance text.
	Body string `json:"body"`

	// Topics are the markdown headings found in Body, in document
	// order. They exist so overlaps can be flagged, not merged.
	Topics []string `json:"topics,omitempty"`
}

// TopicOverlap marks a textually identical or near-identical topic
// appearing in two active skills. The composer records overlaps; the
// conflict resolver classifies them.
type TopicOverlap struct {
	SkillA string `json:"skill_a"`
	SkillB string `json:"skill_b"`
	Topic  string `json:"topic"`
}

// AdvisoryKind distinguishes safe redundancy from apparent
// contradiction.
type AdvisoryKind string

const (
	AdvisoryRedundant     AdvisoryKind = "redundant"
	AdvisoryContradictory AdvisoryKind = "contradictory"
)

// Advisory annotates overlapping guidance between two active skills.
// Advisories never delete or edit skill content.
type Advisory struct {
	SkillA string       `json:"skill_a"`
	SkillB string       `json:"skill_b"`
	Topic  string       `json:"topic"`
	Kind   AdvisoryKind `json:"kind"`
	Note   string       `json:"note"`
}

// MergedGuidance is the final artifact handed to the consumer: one
// block per active skill in active-set order, plus advisories.
type MergedGuidance struct {
	Blocks     []GuidanceBlock `json:"blocks"`
	Overlaps   []TopicOverlap  `json:"overlaps,omitempty"`
	Advisories []Advisory      `json:"advisories,omitempty"`
}

// Empty reports whether there is no guidance to inject.
func (g MergedGuidance) Empty() bool { return len(g.Blocks) == 0 }

// RouteResult is the full output of one pass through the pipeline.
type RouteResult struct {
	RequestID RequestID      `json:"request_id"`
	Matches   []MatchResult  `json:"matches,omitempty"`
	Active    ActiveSet      `json:"active"`
	Guidance  MergedGuidance `json:"guidance"`
}
