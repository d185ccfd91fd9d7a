// Package search: the stratified (grouped) regression driver.

package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/fit"
	"github.com/katalvlaran/dendrofit/rank"
)

// ErrNoGroupColumns indicates a grouped search without group columns.
var ErrNoGroupColumns = errors.New("search: no group columns given")

// GroupedModel bundles the three tiers of a stratified fit: the
// general regression over all rows, the qualitative regression with
// categorical effects, and one regression per group. Built once by
// Grouped, then queried through Predict.
type GroupedModel struct {
	General     *fit.Model
	Qualitative *fit.Model
	ByGroup     map[string]*fit.Model

	groups     []string
	predictors []string
	ranges     map[string]map[string][2]float64 // group label → predictor → [min, max]
}

// Grouped fits the stratified variant: the best general model, the
// best model with categorical main effects (or interactions, per
// WithEffect), and the best model per group for every group that has
// enough rows. Groups too small to fit are simply absent from ByGroup;
// Predict falls back for their rows.
func Grouped(tbl *dataset.Table, response string, predictors, groupCols []string, opts ...Option) (*GroupedModel, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(groupCols) == 0 {
		return nil, ErrNoGroupColumns
	}

	general, err := BestModel(tbl, response, predictors, opts...)
	if err != nil {
		return nil, fmt.Errorf("general: %w", err)
	}

	qualModels, err := run(tbl, response, predictors, groupCols, o)
	if err != nil {
		return nil, fmt.Errorf("qualitative: %w", err)
	}
	qualTable, err := rank.Rank(qualModels, o.rankOptions()...)
	if err != nil {
		return nil, fmt.Errorf("qualitative: %w", err)
	}

	// Per-group fits over the partitioned table. A group that cannot
	// support a fit, or whose whole candidate space fails, is skipped:
	// its rows resolve through the fallback chain instead.
	reduced, err := tbl.Reduce(append([]string{response}, predictors...), groupCols)
	if err != nil {
		return nil, err
	}
	parts, err := reduced.Partition(groupCols)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[string]*fit.Model, len(parts))
	ranges := make(map[string]map[string][2]float64, len(parts))
	for _, part := range parts {
		if part.Table.ValidateFit(len(predictors)) != nil {
			continue
		}
		m, err := BestModel(part.Table, response, predictors, opts...)
		if err != nil {
			if errors.Is(err, ErrAllCandidatesFailed) || errors.Is(err, dataset.ErrInsufficientData) {
				continue
			}
			return nil, fmt.Errorf("group %q: %w", part.Label, err)
		}
		byGroup[part.Label] = m
		ranges[part.Label] = m.Ranges()
	}

	return &GroupedModel{
		General:     general,
		Qualitative: qualTable.Best(),
		ByGroup:     byGroup,
		groups:      append([]string(nil), groupCols...),
		predictors:  append([]string(nil), predictors...),
		ranges:      ranges,
	}, nil
}

// Predict resolves each row through the fallback chain: the row's
// group model when it exists and every predictor value lies inside
// the range that group was fit on, else the qualitative model, else
// the general model. The order deliberately avoids extrapolating a
// narrow group fit. Rows that no tier can predict stay NaN.
func (g *GroupedModel) Predict(tbl *dataset.Table) ([]float64, error) {
	labels, err := tbl.GroupLabels(g.groups)
	if err != nil {
		return nil, err
	}
	predCols := make([][]float64, len(g.predictors))
	for i, name := range g.predictors {
		col, err := tbl.Numeric(name)
		if err != nil {
			return nil, err
		}
		predCols[i] = col
	}

	// Predict once per tier over the whole table, then select per row.
	// Per-group predictions are computed lazily, only for labels that
	// actually occur.
	qual, err := g.Qualitative.Predict(tbl)
	if err != nil {
		return nil, err
	}
	gen, err := g.General.Predict(tbl)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[string][]float64, len(g.ByGroup))
	for _, lbl := range labels {
		m, ok := g.ByGroup[lbl]
		if !ok {
			continue
		}
		if _, done := byGroup[lbl]; done {
			continue
		}
		p, err := m.Predict(tbl)
		if err != nil {
			return nil, err
		}
		byGroup[lbl] = p
	}

	out := make([]float64, tbl.Len())
	for r := range out {
		out[r] = math.NaN()
		lbl := labels[r]
		if p, ok := byGroup[lbl]; ok && g.inRange(lbl, predCols, r) && !math.IsNaN(p[r]) {
			out[r] = p[r]
			continue
		}
		if !math.IsNaN(qual[r]) {
			out[r] = qual[r]
			continue
		}
		out[r] = gen[r]
	}
	return out, nil
}

// inRange reports whether every predictor value of row r lies inside
// the observed range of the group's training data.
func (g *GroupedModel) inRange(label string, predCols [][]float64, r int) bool {
	rg, ok := g.ranges[label]
	if !ok {
		return false
	}
	for i, name := range g.predictors {
		v := predCols[i][r]
		bounds, ok := rg[name]
		if !ok {
			return false
		}
		if math.IsNaN(v) || v < bounds[0] || v > bounds[1] {
			return false
		}
	}
	return true
}
