package skillrouter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/flexigpt/skillrouter-go/fsskillsource"
	"github.com/flexigpt/skillrouter-go/internal/activation"
	"github.com/flexigpt/skillrouter-go/internal/compose"
	"github.com/flexigpt/skillrouter-go/internal/conflict"
	"github.com/flexigpt/skillrouter-go/internal/promptxml"
	"github.com/flexigpt/skillrouter-go/internal/registry"
	"github.com/flexigpt/skillrouter-go/internal/trigger"
	"github.com/flexigpt/skillrouter-go/spec"
)

// Engine wires the pipeline: match -> activate -> compose -> resolve.
// The registry pointer is the only shared state; it is replaced
// wholesale under mu and read as a snapshot, so concurrent requests
// need no further synchronization.
type Engine struct {
	mu     sync.RWMutex
	reg    *registry.Registry
	logger *slog.Logger

	matcher  *trigger.Matcher
	policy   *activation.Policy
	composer *compose.Composer
	resolver *conflict.Resolver
}

func New(opts ...Option) (*Engine, error) {
	o := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	scorer := o.scorer
	if scorer == nil {
		scorer = trigger.NewOverlapScorer(trigger.Config{
			PhraseWeight:  o.phraseWeight,
			KeywordWeight: o.keywordWeight,
		})
	}

	return &Engine{
		logger:   o.logger,
		matcher:  trigger.NewMatcher(scorer),
		policy:   activation.NewPolicy(activation.Config{Threshold: o.threshold}),
		composer: compose.New(),
		resolver: conflict.New(),
	}, nil
}

// LoadDirs builds the registry from directories of SKILL.md skills.
// It fails if the engine is already loaded; use ReloadDirs to swap.
func (e *Engine) LoadDirs(ctx context.Context, dirs ...string) error {
	return e.load(ctx, dirs, nil, false)
}

// LoadSources builds the registry from pre-parsed sources (in-memory
// or embedded catalogs).
func (e *Engine) LoadSources(ctx context.Context, sources []spec.Source) error {
	return e.load(ctx, nil, sources, false)
}

// ReloadDirs replaces the registry wholesale. In-flight requests keep
// the snapshot they started with.
func (e *Engine) ReloadDirs(ctx context.Context, dirs ...string) error {
	return e.load(ctx, dirs, nil, true)
}

// ReloadSources replaces the registry wholesale from pre-parsed
// sources.
func (e *Engine) ReloadSources(ctx context.Context, sources []spec.Source) error {
	return e.load(ctx, nil, sources, true)
}

func (e *Engine) load(ctx context.Context, dirs []string, sources []spec.Source, reload bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !reload && e.Loaded() {
		return spec.ErrAlreadyLoaded
	}

	report := &spec.ValidationReport{}

	if len(dirs) > 0 {
		collected, verrs, err := fsskillsource.Collect(ctx, dirs)
		if err != nil {
			return err
		}
		for _, ve := range verrs {
			report.Append(ve)
		}
		sources = append(collected, sources...)
	}

	reg, verrs := registry.Load(sources)
	for _, ve := range verrs {
		report.Append(ve)
	}
	if err := report.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if !reload && e.reg != nil {
		e.mu.Unlock()
		return spec.ErrAlreadyLoaded
	}
	e.reg = reg
	e.mu.Unlock()

	e.logger.Info("skill registry loaded", "skills", reg.Len(), "reload", reload)
	return nil
}

// Loaded reports whether a registry is available.
func (e *Engine) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg != nil
}

func (e *Engine) snapshot() (*registry.Registry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.reg == nil {
		return nil, spec.ErrNotLoaded
	}
	return e.reg, nil
}

// ListSkills returns all registered skills in registration order.
func (e *Engine) ListSkills() []spec.Skill {
	reg, err := e.snapshot()
	if err != nil {
		return nil
	}
	return reg.Skills()
}

// Match scores the request against every skill, ordered by descending
// score with ties broken by registration order. It applies no
// threshold; see Route for the full pipeline.
func (e *Engine) Match(ctx context.Context, requestText string) ([]spec.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return e.matcher.Match(requestText, reg), nil
}

// Route runs the full pipeline for one request. A request that
// matches nothing is not an error: the result carries an empty active
// set and empty guidance, and the consumer proceeds unaugmented.
func (e *Engine) Route(ctx context.Context, requestText string) (spec.RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return spec.RouteResult{}, err
	}
	reg, err := e.snapshot()
	if err != nil {
		return spec.RouteResult{}, err
	}

	res := spec.RouteResult{
		RequestID: spec.RequestID(uuid.Must(uuid.NewV7()).String()),
	}

	res.Matches = e.matcher.Match(requestText, reg)
	if err := ctx.Err(); err != nil {
		return spec.RouteResult{}, err
	}

	res.Active = e.policy.Activate(res.Matches, requestText, reg)
	if err := ctx.Err(); err != nil {
		return spec.RouteResult{}, err
	}

	res.Guidance = e.composer.Compose(res.Active, reg)
	if err := ctx.Err(); err != nil {
		return spec.RouteResult{}, err
	}

	res.Guidance.Advisories = e.resolver.Resolve(res.Guidance)

	e.logger.Debug("request routed",
		"request_id", res.RequestID,
		"candidates", len(res.Matches),
		"active", res.Active.SkillIDs(),
		"advisories", len(res.Guidance.Advisories),
	)
	return res, nil
}

// AvailableSkillsPromptXML builds <available_skills> XML for system
// prompts.
func (e *Engine) AvailableSkillsPromptXML() (string, error) {
	reg, err := e.snapshot()
	if err != nil {
		return "", err
	}
	return promptxml.AvailableSkillsXML(reg.Skills())
}

// RoutePromptXML routes the request and renders the merged guidance
// as a <merged_guidance> XML block for prompt injection.
func (e *Engine) RoutePromptXML(ctx context.Context, requestText string) (string, error) {
	res, err := e.Route(ctx, requestText)
	if err != nil {
		return "", err
	}
	return promptxml.MergedGuidanceXML(res.RequestID, res.Guidance)
}

var _ spec.Router = (*Engine)(nil)
