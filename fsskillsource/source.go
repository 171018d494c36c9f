// Package fsskillsource collects skill sources from directories of
// SKILL.md files. Each immediate subdirectory of a root that contains
// a SKILL.md becomes one source; the subdirectory name is the skill
// ID. Per-skill problems are reported, not fatal: collection returns
// every problem alongside the sources that did parse so registry
// construction can produce one itemized report.
package fsskillsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/flexigpt/skillrouter-go/spec"
)

type collector struct {
	include []glob.Glob
	exclude []glob.Glob
}

type Option func(*collector) error

// WithInclude restricts collection to skill IDs matching at least one
// of the given glob patterns (e.g. "git-*").
func WithInclude(patterns ...string) Option {
	return func(c *collector) error {
		gs, err := compileGlobs(patterns)
		if err != nil {
			return err
		}
		c.include = append(c.include, gs...)
		return nil
	}
}

// WithExclude skips skill IDs matching any of the given glob patterns.
func WithExclude(patterns ...string) Option {
	return func(c *collector) error {
		gs, err := compileGlobs(patterns)
		if err != nil {
			return err
		}
		c.exclude = append(c.exclude, gs...)
		return nil
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Collect gathers skill sources from the given roots. Roots are
// scanned in the order given; subdirectories of one root in name
// order, so registration order is reproducible. Unreadable roots are
// hard errors; invalid individual skills come back as validation
// errors next to the sources that parsed.
func Collect(
	ctx context.Context,
	roots []string,
	opts ...Option,
) ([]spec.Source, []*spec.ValidationError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(roots) == 0 {
		return nil, nil, spec.ErrNoSources
	}

	c := &collector{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(c); err != nil {
			return nil, nil, err
		}
	}

	var (
		sources []spec.Source
		verrs   []*spec.ValidationError
	)
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, nil, fmt.Errorf("read skills root %s: %w", root, err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if !c.wants(name) {
				continue
			}
			dir := filepath.Join(root, name)
			if _, err := os.Stat(filepath.Join(dir, skillFileName)); err != nil {
				// Not a skill directory; skip silently like any other
				// unrelated subdirectory.
				continue
			}
			src, err := readSkillDir(ctx, dir)
			if err != nil {
				if ctx.Err() != nil {
					return nil, nil, err
				}
				verrs = append(verrs, &spec.ValidationError{
					Origin:  filepath.Join(dir, skillFileName),
					SkillID: name,
					Reason:  err.Error(),
				})
				continue
			}
			sources = append(sources, src)
		}
	}
	return sources, verrs, nil
}

func (c *collector) wants(id string) bool {
	for _, g := range c.exclude {
		if g.Match(id) {
			return false
		}
	}
	if len(c.include) == 0 {
		return true
	}
	for _, g := range c.include {
		if g.Match(id) {
			return true
		}
	}
	return false
}
