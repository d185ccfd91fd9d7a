// Package fit: design-matrix assembly and the Cholesky-based solver.
//
// Purpose:
//   - Turn a Formula plus a reduced table into a solved Model, or an
//     explicit candidate-failure sentinel.
//   - Keep every statistic downstream of this file on the original
//     response scale: after a transformed-response fit the residuals,
//     SSR and σ² are recomputed from back-transformed fitted values.
//
// Determinism:
//   - Column order is fixed: intercept, design regressors in catalog
//     order, dummy columns in sorted-level order, interaction columns
//     in (regressor, dummy) order. Identical inputs yield identical
//     coefficient vectors.

package fit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/term"
)

// interceptName labels the constant column in coefficient reports.
const interceptName = "(Intercept)"

// options collects the functional configuration of Fit.
type options struct {
	cache *Cache
}

// Option mutates fit options. Safe to apply repeatedly.
type Option func(*options)

// WithCache reuses a pre-populated transform cache (see Cache). The
// cache must have been built against the same table passed to Fit.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// Fit solves the regression the formula describes against the reduced
// table and returns an immutable Model.
//
// Candidate failures — a transform that is non-finite for some row, a
// rank-deficient design, or exhausted degrees of freedom — come back
// as sentinels classified by IsCandidateFailure; the search driver
// drops those candidates silently. Any other error is a caller error.
func Fit(f term.Formula, tbl *dataset.Table, opts ...Option) (*Model, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cache := o.cache
	if cache == nil {
		cache = NewCache(tbl)
	}

	if f.Design.Arity() == 0 {
		return nil, fitErrorf(opFit, ErrEmptyDesign)
	}

	// Transformed response z and the raw response y (original scale).
	z, err := cache.Column(f.Response.Term)
	if err != nil {
		return nil, fitErrorf(opFit, err)
	}
	yName := f.Response.Columns()[0]
	y, err := tbl.Numeric(yName)
	if err != nil {
		return nil, fitErrorf(opFit, err)
	}
	if !allFinite(z) {
		return nil, fitErrorf(opFit, ErrNonFiniteTransform)
	}

	// Numeric design columns, one per regressor, in catalog order.
	regs := f.Design.Regressors()
	numCols := make([][]float64, len(regs))
	numNames := make([]string, len(regs))
	for i, reg := range regs {
		col, err := cache.Column(reg)
		if err != nil {
			return nil, fitErrorf(opFit, err)
		}
		if !allFinite(col) {
			return nil, fitErrorf(opFit, ErrNonFiniteTransform)
		}
		numCols[i] = col
		numNames[i] = reg.Name()
	}

	// Dummy columns for the group levels (reference level omitted),
	// plus dummy×regressor interactions in interactive mode.
	cols, names, levels, err := appendGroupColumns(tbl, f, numCols, numNames)
	if err != nil {
		return nil, fitErrorf(opFit, err)
	}

	n := tbl.Len()
	p := 1 + len(cols) // intercept + every design column
	df := n - p
	if df <= 0 {
		return nil, fitErrorf(opFit, ErrNoDegreesOfFreedom)
	}

	// Assemble X row-major: intercept first.
	x := mat.NewDense(n, p, nil)
	for r := 0; r < n; r++ {
		x.Set(r, 0, 1)
		for j, col := range cols {
			x.Set(r, j+1, col[r])
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), z...))

	// Normal equations: factorize X'X once, solve by substitution.
	// The factorization is kept on the Model for standard errors.
	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	chol := new(mat.Cholesky)
	if ok := chol.Factorize(&xtx); !ok {
		return nil, fitErrorf(opFit, ErrNotPositiveDefinite)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fitErrorf(opFit, ErrNotPositiveDefinite)
	}

	// Transformed-scale residuals and variance.
	var zhat mat.VecDense
	zhat.MulVec(x, &beta)
	ssrT := 0.0
	for r := 0; r < n; r++ {
		d := z[r] - zhat.AtVec(r)
		ssrT += d * d
	}
	sigma2T := ssrT / float64(df)

	// Back-transform to the original scale. The Meyer factor exp(σ²/2)
	// compensates the downward bias of exponentiating a log-scale fit;
	// it is neutral (→1) as σ²→0.
	correction := 1.0
	if f.Response.IsLogarithmic() {
		correction = math.Exp(sigma2T / 2)
	}
	fitted := make([]float64, n)
	resid := make([]float64, n)
	if f.Response.IsIdentity() {
		for r := 0; r < n; r++ {
			fitted[r] = zhat.AtVec(r)
			resid[r] = y[r] - fitted[r]
		}
	} else {
		var xPred []float64
		if f.Response.NeedsPredictor() {
			xPred, err = tbl.Numeric(f.Response.Columns()[1])
			if err != nil {
				return nil, fitErrorf(opFit, err)
			}
		}
		for r := 0; r < n; r++ {
			xv := 0.0
			if xPred != nil {
				xv = xPred[r]
			}
			fitted[r] = f.Response.Invert(zhat.AtVec(r), xv, correction)
			resid[r] = y[r] - fitted[r]
		}
		if !allFinite(fitted) {
			return nil, fitErrorf(opFit, ErrNonFiniteTransform)
		}
	}

	// All downstream statistics read these original-scale quantities;
	// comparing a log(y) fit to a y fit on transformed-scale residuals
	// would be meaningless.
	ssr := floats.Dot(resid, resid)
	ymean := stat.Mean(y, nil)
	sst := 0.0
	for _, v := range y {
		d := v - ymean
		sst += d * d
	}

	coef := make([]float64, p)
	copy(coef, beta.RawVector().Data)

	return &Model{
		formula:    f,
		data:       tbl,
		levels:     levels,
		coef:       coef,
		coefNames:  append([]string{interceptName}, names...),
		chol:       chol,
		n:          n,
		p:          p,
		sigma2T:    sigma2T,
		sigma2:     ssr / float64(df),
		correction: correction,
		fitted:     fitted,
		resid:      resid,
		ssr:        ssr,
		sst:        sst,
		ymean:      ymean,
	}, nil
}

// appendGroupColumns extends the numeric design columns with dummy
// indicators for every non-reference group level and, in interactive
// mode, with dummy×regressor products. Returns the full column set,
// the matching names, and the per-group-column level lists (first
// level = reference) needed again at prediction time.
func appendGroupColumns(tbl *dataset.Table, f term.Formula,
	numCols [][]float64, numNames []string) ([][]float64, []string, map[string][]string, error) {

	cols := append([][]float64(nil), numCols...)
	names := append([]string(nil), numNames...)
	if len(f.Groups) == 0 {
		return cols, names, nil, nil
	}

	n := tbl.Len()
	levels := make(map[string][]string, len(f.Groups))
	for _, g := range f.Groups {
		lv, err := tbl.Levels(g)
		if err != nil {
			return nil, nil, nil, err
		}
		levels[g] = lv
		raw, err := tbl.Categorical(g)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, level := range lv[1:] { // lv[0] is the reference level
			dummy := make([]float64, n)
			for r := 0; r < n; r++ {
				if raw[r] == level {
					dummy[r] = 1
				}
			}
			cols = append(cols, dummy)
			names = append(names, g+"="+level)
			if f.Effect == term.Interactive {
				for i, num := range numCols {
					inter := make([]float64, n)
					for r := 0; r < n; r++ {
						inter[r] = dummy[r] * num[r]
					}
					cols = append(cols, inter)
					names = append(names, numNames[i]+" * "+g+"="+level)
				}
			}
		}
	}
	return cols, names, levels, nil
}

// allFinite reports whether every value is neither NaN nor ±Inf.
func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
