// Package registry builds the immutable skill registry. Construction
// validates every source in one pass and either returns a complete
// registry or an itemized list of failures; no partial registry is
// ever exposed.
package registry

import (
	"fmt"
	"strings"

	"github.com/flexigpt/skillrouter-go/spec"
)

// Registry maps skill IDs to skills. It is read-only after Load and
// therefore safe for concurrent use without locking. Registration
// order is retained for deterministic tie-breaking.
type Registry struct {
	byID  map[string]spec.Skill
	order []string
}

// Load validates all sources and constructs a registry. It collects
// every failure rather than stopping at the first; on any failure the
// returned registry is nil and errs names every offending source.
// An empty source collection yields a valid empty registry.
func Load(sources []spec.Source) (*Registry, []*spec.ValidationError) {
	r := &Registry{byID: make(map[string]spec.Skill, len(sources))}

	var errs []*spec.ValidationError
	origins := make(map[string]string, len(sources))

	fail := func(src spec.Source, i int, reason string) {
		errs = append(errs, &spec.ValidationError{
			Origin:  originOf(src, i),
			SkillID: src.ID,
			Reason:  reason,
		})
	}

	for i, src := range sources {
		id := strings.TrimSpace(src.ID)
		if id == "" {
			fail(src, i, "missing skill id")
			continue
		}
		if strings.TrimSpace(src.Name) == "" {
			fail(src, i, "missing name")
		}
		if strings.TrimSpace(src.Description) == "" {
			fail(src, i, "missing description")
		}
		if strings.TrimSpace(src.Body) == "" {
			fail(src, i, "missing body (empty guidance text)")
		}
		if first, dup := origins[id]; dup {
			fail(src, i, fmt.Sprintf("duplicate skill id %q (also defined in %s)", id, first))
			continue
		}
		origins[id] = originOf(src, i)

		if len(errs) > 0 {
			// Keep collecting errors; indexing no longer matters.
			continue
		}
		r.byID[id] = spec.Skill{
			ID:          id,
			Name:        strings.TrimSpace(src.Name),
			Description: src.Description,
			Body:        src.Body,
			Location:    src.Origin,
			Digest:      src.Digest,
			Properties:  src.Properties,
		}
		r.order = append(r.order, id)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return r, nil
}

func originOf(src spec.Source, i int) string {
	if strings.TrimSpace(src.Origin) != "" {
		return src.Origin
	}
	return fmt.Sprintf("source[%d]", i)
}

// Get returns the skill with the given ID.
func (r *Registry) Get(id string) (spec.Skill, bool) {
	sk, ok := r.byID[id]
	return sk, ok
}

// Skills returns all skills in registration order.
func (r *Registry) Skills() []spec.Skill {
	out := make([]spec.Skill, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// OrderIndex returns the registration position of id, or -1.
func (r *Registry) OrderIndex(id string) int {
	for i, o := range r.order {
		if o == id {
			return i
		}
	}
	return -1
}

// Len returns the number of registered skills.
func (r *Registry) Len() int { return len(r.order) }
