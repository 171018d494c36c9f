package skillrouter

import (
	"log/slog"

	"github.com/flexigpt/skillrouter-go/spec"
)

type engineOptions struct {
	logger *slog.Logger

	scorer        spec.TriggerScorer
	phraseWeight  float64
	keywordWeight float64
	threshold     float64
}

type Option func(*engineOptions) error

func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) error {
		o.logger = l
		return nil
	}
}

// WithScorer replaces the default keyword/phrase-overlap scorer with a
// custom strategy (e.g. semantic similarity). Weight options are
// ignored when a custom scorer is set.
func WithScorer(s spec.TriggerScorer) Option {
	return func(o *engineOptions) error {
		o.scorer = s
		return nil
	}
}

// WithPhraseWeight sets the weight of an explicit phrase match for the
// default scorer. Default 3.
func WithPhraseWeight(w float64) Option {
	return func(o *engineOptions) error {
		o.phraseWeight = w
		return nil
	}
}

// WithKeywordWeight sets the weight of a single-keyword match for the
// default scorer. Default 1.
func WithKeywordWeight(w float64) Option {
	return func(o *engineOptions) error {
		o.keywordWeight = w
		return nil
	}
}

// WithThreshold sets the activation threshold separating "scored but
// irrelevant" from "candidate". Default 0.3.
func WithThreshold(t float64) Option {
	return func(o *engineOptions) error {
		o.threshold = t
		return nil
	}
}
