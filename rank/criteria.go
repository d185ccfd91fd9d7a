// Package rank: the read-only criterion catalog.
//
// The catalog is constructed once at process start and never mutated,
// so it is safe for concurrent ranking calls by construction.

package rank

import (
	"sort"
	"strings"

	"github.com/katalvlaran/dendrofit/diagnostics"
)

// Criterion names accepted by Rank.
const (
	R2               = "r2"
	AdjR2            = "adjr2"
	Syx              = "syx"
	RMSE             = "rmse"
	MAE              = "mae"
	AIC              = "aic"
	BIC              = "bic"
	Significance     = "significance"
	Normality        = "normality"
	Homoscedasticity = "homoscedasticity"
)

// criterion describes how one diagnostic participates in ranking.
type criterion struct {
	boolean   bool
	ascending bool // numeric only: true when smaller is better
	num       func(diagnostics.Set) float64
	flag      func(diagnostics.Set) bool
}

// catalog maps every allowed criterion name to its ranking behavior.
var catalog = map[string]criterion{
	R2:    {ascending: false, num: func(s diagnostics.Set) float64 { return s.R2 }},
	AdjR2: {ascending: false, num: func(s diagnostics.Set) float64 { return s.AdjR2 }},
	Syx:   {ascending: true, num: func(s diagnostics.Set) float64 { return s.Syx }},
	RMSE:  {ascending: true, num: func(s diagnostics.Set) float64 { return s.RMSE }},
	MAE:   {ascending: true, num: func(s diagnostics.Set) float64 { return s.MAE }},
	AIC:   {ascending: true, num: func(s diagnostics.Set) float64 { return s.AIC }},
	BIC:   {ascending: true, num: func(s diagnostics.Set) float64 { return s.BIC }},

	Significance:     {boolean: true, flag: func(s diagnostics.Set) bool { return s.AllSignificant }},
	Normality:        {boolean: true, flag: func(s diagnostics.Set) bool { return s.Normal }},
	Homoscedasticity: {boolean: true, flag: func(s diagnostics.Set) bool { return s.Homoscedastic }},
}

// DefaultCriteria is the recommended subset used when the caller picks
// none: adjusted R² and Syx% for fit quality, significance and
// normality for assumption health.
func DefaultCriteria() []string {
	return []string{AdjR2, Syx, Significance, Normality}
}

// AllowedCriteria returns every accepted criterion name, sorted.
func AllowedCriteria() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// allowedList renders the accepted names for error messages.
func allowedList() string { return strings.Join(AllowedCriteria(), ", ") }
