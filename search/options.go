// Package search: functional configuration for the search drivers.
//
// Defaults are package constants (single source of truth); With*
// constructors panic only on nonsensical values — programmer errors,
// not data errors.

package search

import (
	"runtime"

	"github.com/katalvlaran/dendrofit/diagnostics"
	"github.com/katalvlaran/dendrofit/rank"
	"github.com/katalvlaran/dendrofit/term"
)

const (
	// DefaultWorkers of 0 sizes the pool to runtime.GOMAXPROCS(0).
	DefaultWorkers = 0

	// DefaultBest of 0 leaves the ranked output unbounded.
	DefaultBest = 0
)

// options collects the search configuration.
type options struct {
	workers  int
	effect   term.Effect
	best     int
	criteria []string
	rankOpts []rank.Option
	diagOpts []diagnostics.Option
}

// Option mutates search options. Safe to apply repeatedly.
type Option func(*options)

// defaultOptions returns the documented defaults.
func defaultOptions() options {
	return options{
		workers: DefaultWorkers,
		effect:  term.Additive,
		best:    DefaultBest,
	}
}

// poolSize resolves the effective worker count.
func (o options) poolSize() int {
	if o.workers > 0 {
		return o.workers
	}
	return runtime.GOMAXPROCS(0)
}

// WithWorkers bounds the fitting pool. Zero restores the default
// (one worker per available CPU). Panics on negative values.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("search: WithWorkers: n must be ≥ 0")
	}
	return func(o *options) { o.workers = n }
}

// WithEffect selects how categorical group columns enter grouped
// formulas: term.Additive (shifted intercepts) or term.Interactive
// (per-group slopes).
func WithEffect(e term.Effect) Option {
	return func(o *options) { o.effect = e }
}

// WithBest bounds ranked output to the top-K survivors. Zero means
// unbounded. Panics on negative values.
func WithBest(k int) Option {
	if k < 0 {
		panic("search: WithBest: k must be ≥ 0")
	}
	return func(o *options) { o.best = k }
}

// WithCriteria selects the ranking criteria (default: rank.DefaultCriteria).
func WithCriteria(names ...string) Option {
	return func(o *options) { o.criteria = append([]string(nil), names...) }
}

// WithAlpha forwards the significance level to the diagnostics battery.
func WithAlpha(alpha float64) Option {
	return func(o *options) { o.diagOpts = append(o.diagOpts, diagnostics.WithAlpha(alpha)) }
}

// WithPenalty forwards the failed-boolean penalty to the ranking engine.
func WithPenalty(k int) Option {
	return func(o *options) { o.rankOpts = append(o.rankOpts, rank.WithPenalty(k)) }
}

// rankOptions assembles the rank.Option list implied by the search options.
func (o options) rankOptions() []rank.Option {
	opts := append([]rank.Option(nil), o.rankOpts...)
	if len(o.criteria) > 0 {
		opts = append(opts, rank.WithCriteria(o.criteria...))
	}
	if o.best > 0 {
		opts = append(opts, rank.WithBest(o.best))
	}
	if len(o.diagOpts) > 0 {
		opts = append(opts, rank.WithDiagnostics(o.diagOpts...))
	}
	return opts
}
