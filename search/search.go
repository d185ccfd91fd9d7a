// Package search: the parallel candidate-fitting driver.

package search

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/fit"
	"github.com/katalvlaran/dendrofit/rank"
	"github.com/katalvlaran/dendrofit/term"
)

var (
	// ErrBadPredictors indicates a predictor list that is not one or
	// two columns.
	ErrBadPredictors = errors.New("search: need exactly one or two predictor columns")

	// ErrAllCandidatesFailed indicates that no candidate in the
	// generated space was well-defined for this data.
	ErrAllCandidatesFailed = errors.New("search: every candidate model failed to fit")
)

// Run fits the full Cartesian product of response terms and design
// terms for the given columns and returns the candidates that fit, in
// catalog order. Candidates undefined for the data are pruned
// silently; validation errors and an empty survivor set are returned.
func Run(tbl *dataset.Table, response string, predictors []string, opts ...Option) ([]*fit.Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return run(tbl, response, predictors, nil, o)
}

// RankedRun runs the search and ranks the survivors into a
// CriteriaTable using the configured criteria and best-K bound.
func RankedRun(tbl *dataset.Table, response string, predictors []string, opts ...Option) (*rank.CriteriaTable, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	models, err := run(tbl, response, predictors, nil, o)
	if err != nil {
		return nil, err
	}
	return rank.Rank(models, o.rankOptions()...)
}

// BestModel runs the search and returns only the top-ranked model.
func BestModel(tbl *dataset.Table, response string, predictors []string, opts ...Option) (*fit.Model, error) {
	table, err := RankedRun(tbl, response, predictors, opts...)
	if err != nil {
		return nil, err
	}
	return table.Best(), nil
}

// run is the shared driver. groups, when non-empty, are categorical
// columns entering every formula under o.effect; the reduced table
// then also retains them.
func run(tbl *dataset.Table, response string, predictors, groups []string, o options) ([]*fit.Model, error) {
	if len(predictors) < 1 || len(predictors) > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadPredictors, len(predictors))
	}

	// Reduce to exactly the referenced columns, dropping incomplete
	// rows, and refuse the whole search when too few remain. This is
	// the only abort point before fitting begins.
	reduced, err := tbl.Reduce(append([]string{response}, predictors...), groups)
	if err != nil {
		return nil, err
	}
	if err = reduced.ValidateFit(len(predictors)); err != nil {
		return nil, err
	}

	// Generate the catalogs and evaluate every distinct transform once
	// into a read-only cache shared by all workers.
	responses := term.ResponseCatalog(response, predictors)
	var designs []term.DesignTerm
	if len(predictors) == 1 {
		designs = term.DesignCatalog(predictors[0])
	} else {
		designs = term.DesignCatalog2(predictors[0], predictors[1])
	}
	cache := fit.NewCache(reduced)
	for _, r := range responses {
		if err = cache.Add(r.Term); err != nil {
			return nil, err
		}
	}
	for _, d := range designs {
		if err = cache.Add(d.Regressors()...); err != nil {
			return nil, err
		}
	}

	// Enumerate the product once so every candidate owns a stable slot:
	// workers never contend and the output order is deterministic.
	formulas := make([]term.Formula, 0, len(responses)*len(designs))
	for _, r := range responses {
		for _, d := range designs {
			f := term.NewFormula(r, d)
			if len(groups) > 0 {
				f = f.WithGroups(o.effect, groups...)
			}
			formulas = append(formulas, f)
		}
	}

	results := make([]*fit.Model, len(formulas))
	var g errgroup.Group
	g.SetLimit(o.poolSize())
	for i := range formulas {
		i := i
		g.Go(func() error {
			m, err := fit.Fit(formulas[i], reduced, fit.WithCache(cache))
			if err != nil {
				if fit.IsCandidateFailure(err) {
					return nil // silent pruning: sibling fits continue
				}
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	models := make([]*fit.Model, 0, len(results))
	for _, m := range results {
		if m != nil {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, ErrAllCandidatesFailed
	}
	return models, nil
}
