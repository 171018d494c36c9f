package spec

// TriggerScorer scores one request against one skill's trigger
// description. It is the pluggable piece of the matcher: the default
// is a keyword/phrase-overlap scorer, but a semantic-similarity
// implementation can be dropped in without touching the registry,
// activation policy, or composer.
//
// Implementations MUST be deterministic and side-effect free: the same
// (requestText, skill) pair always yields the same result, and they
// must be safe for concurrent use.
type TriggerScorer interface {
	Score(requestText string, sk Skill) MatchResult
}
