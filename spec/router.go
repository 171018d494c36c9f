package spec

import "context"

// Router is the interface that tools and hosts bind to.
// Implementations (like package skillrouter Engine) own the registry
// snapshot; everything else is request-scoped.
type Router interface {
	Match(ctx context.Context, requestText string) ([]MatchResult, error)
	Route(ctx context.Context, requestText string) (RouteResult, error)
	ListSkills() []Skill
}

type RouteArgs struct {
	Request string `json:"request"`
}

type ListSkillsArgs struct{}

type ListSkillsResult struct {
	Skills []Skill `json:"skills"`
}
