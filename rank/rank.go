// Package rank: competition ranking, combined scores, and top-K selection.

package rank

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/dendrofit/diagnostics"
	"github.com/katalvlaran/dendrofit/fit"
)

var (
	// ErrNoModels indicates a ranking request over an empty model list.
	ErrNoModels = errors.New("rank: no models to rank")

	// ErrUnknownCriterion indicates a criterion name outside the catalog.
	// The wrapped message enumerates the allowed names.
	ErrUnknownCriterion = errors.New("rank: unknown criterion")
)

// DefaultPenalty, when left at 0, means "use the table size" as the
// rank of a failed boolean criterion.
const DefaultPenalty = 0

// options configures Rank.
type options struct {
	criteria []string
	penalty  int
	best     int
	diagOpts []diagnostics.Option
}

// Option mutates ranking options.
type Option func(*options)

// WithCriteria selects the diagnostic names to rank by (default:
// DefaultCriteria). Validation happens inside Rank so an unknown name
// is a returned error, not a panic.
func WithCriteria(names ...string) Option {
	return func(o *options) { o.criteria = append([]string(nil), names...) }
}

// WithPenalty overrides the rank assigned to a failed boolean
// criterion. Zero keeps the inherited heuristic (table size). Panics
// on negative values — a programmer error.
func WithPenalty(k int) Option {
	if k < 0 {
		panic("rank: WithPenalty: penalty must be ≥ 0")
	}
	return func(o *options) { o.penalty = k }
}

// WithBest bounds the output to the top-K models, re-ranked among
// themselves so the reported ranks are self-consistent for the subset.
// Zero means unbounded. Panics on negative values.
func WithBest(k int) Option {
	if k < 0 {
		panic("rank: WithBest: k must be ≥ 0")
	}
	return func(o *options) { o.best = k }
}

// WithDiagnostics forwards options (significance level, optional
// homoscedasticity test) to the diagnostics calculator.
func WithDiagnostics(opts ...diagnostics.Option) Option {
	return func(o *options) { o.diagOpts = append(o.diagOpts, opts...) }
}

// Row is one entry of a CriteriaTable: the model, its statistic set,
// its per-criterion ranks, and the combined rank.
type Row struct {
	Model    *fit.Model
	Stats    diagnostics.Set
	Ranks    map[string]int
	Combined int
}

// CriteriaTable is the ordered result of one ranking call, best first.
// It is created fresh per call and never mutates its models.
type CriteriaTable struct {
	Criteria []string
	Rows     []Row
}

// Best returns the top-ranked model.
func (t *CriteriaTable) Best() *fit.Model { return t.Rows[0].Model }

// Rank computes diagnostics for every model, assigns competition ranks
// per criterion, sums them into a combined rank, and returns the table
// sorted ascending by combined rank (stable: ties keep input order).
func Rank(models []*fit.Model, opts ...Option) (*CriteriaTable, error) {
	o := options{criteria: DefaultCriteria()}
	for _, opt := range opts {
		opt(&o)
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	for _, name := range o.criteria {
		if _, ok := catalog[name]; !ok {
			return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownCriterion, name, allowedList())
		}
	}

	diagOpts := o.diagOpts
	if containsName(o.criteria, Homoscedasticity) {
		diagOpts = append(diagOpts, diagnostics.WithHomoscedasticity())
	}
	stats := make([]diagnostics.Set, len(models))
	for i, m := range models {
		stats[i] = diagnostics.Compute(m, diagOpts...)
	}

	table := rankOnce(models, stats, o.criteria, o.penalty)
	if o.best > 0 && o.best < len(table.Rows) {
		// Re-rank only the survivors so their ranks are not leaked
		// from the full pool.
		top := make([]*fit.Model, o.best)
		topStats := make([]diagnostics.Set, o.best)
		for i := 0; i < o.best; i++ {
			top[i] = table.Rows[i].Model
			topStats[i] = table.Rows[i].Stats
		}
		table = rankOnce(top, topStats, o.criteria, o.penalty)
	}
	return table, nil
}

// rankOnce applies one pass of the ranking procedure to an aligned
// (models, stats) pair.
func rankOnce(models []*fit.Model, stats []diagnostics.Set, criteria []string, penalty int) *CriteriaTable {
	n := len(models)
	failRank := penalty
	if failRank == DefaultPenalty {
		failRank = n
	}

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Model: models[i], Stats: stats[i], Ranks: make(map[string]int, len(criteria))}
	}

	for _, name := range criteria {
		c := catalog[name]
		if c.boolean {
			for i := range rows {
				if c.flag(stats[i]) {
					rows[i].Ranks[name] = 1
				} else {
					rows[i].Ranks[name] = failRank
				}
			}
			continue
		}
		vals := make([]float64, n)
		for i := range stats {
			vals[i] = c.num(stats[i])
		}
		ranks := competitionRanks(vals, c.ascending)
		for i := range rows {
			rows[i].Ranks[name] = ranks[i]
		}
	}

	for i := range rows {
		sum := 0
		for _, name := range criteria {
			sum += rows[i].Ranks[name]
		}
		rows[i].Combined = sum
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Combined < rows[j].Combined })
	return &CriteriaTable{Criteria: append([]string(nil), criteria...), Rows: rows}
}

// competitionRanks assigns 1224-style ranks: a value's rank is one plus
// the number of strictly better values, so ties share a rank and the
// next distinct value skips the shared positions.
func competitionRanks(vals []float64, ascending bool) []int {
	ranks := make([]int, len(vals))
	for i, v := range vals {
		better := 0
		for _, w := range vals {
			if ascending && w < v || !ascending && w > v {
				better++
			}
		}
		ranks[i] = better + 1
	}
	return ranks
}

// containsName reports membership of a criterion name.
func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
