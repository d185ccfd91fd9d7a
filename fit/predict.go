// Package fit: applying a fitted model to new observation rows.

package fit

import (
	"math"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/term"
)

// Predict applies the model to new predictor rows and returns
// predictions on the original response scale: the design row is built
// from the same term definitions as the fit, multiplied by the stored
// coefficients, inverted through the response transform, and corrected
// by the model's own Meyer factor.
//
// Missing predictor values (NaN), domain failures of a transform, and
// group levels unseen at fit time all propagate as NaN predictions —
// never as an error — so callers can fill what is predictable and fall
// back for the rest.
func (m *Model) Predict(tbl *dataset.Table) ([]float64, error) {
	if m == nil {
		return nil, fitErrorf(opPredict, ErrNilModel)
	}

	// Resolve every referenced column against the new table up front;
	// an absent column is a caller error, not a missing value.
	regs := m.formula.Design.Regressors()
	regCols := make([][][]float64, len(regs)) // per regressor, per input column
	for i, reg := range regs {
		names := reg.Columns()
		cols := make([][]float64, len(names))
		for j, name := range names {
			col, err := tbl.Numeric(name)
			if err != nil {
				return nil, fitErrorf(opPredict, err)
			}
			cols[j] = col
		}
		regCols[i] = cols
	}
	groupCols := make([][]string, len(m.formula.Groups))
	for i, g := range m.formula.Groups {
		col, err := tbl.Categorical(g)
		if err != nil {
			return nil, fitErrorf(opPredict, err)
		}
		groupCols[i] = col
	}
	var xPred []float64
	if m.formula.Response.NeedsPredictor() {
		col, err := tbl.Numeric(m.formula.Response.Columns()[1])
		if err != nil {
			return nil, fitErrorf(opPredict, err)
		}
		xPred = col
	}

	n := tbl.Len()
	out := make([]float64, n)
	row := make([]float64, 8) // scratch for regressor inputs
	numVals := make([]float64, len(regs))
	for r := 0; r < n; r++ {
		out[r] = m.predictRow(r, regs, regCols, groupCols, xPred, row, numVals)
	}
	return out, nil
}

// predictRow computes one prediction, or NaN on any missing input,
// domain failure, or unseen group level.
func (m *Model) predictRow(r int, regs []term.Term, regCols [][][]float64,
	groupCols [][]string, xPred []float64, row, numVals []float64) float64 {

	// Numeric regressor values for this row, in design order.
	for i, reg := range regs {
		cols := regCols[i]
		vals := row[:len(cols)]
		for j, col := range cols {
			vals[j] = col[r]
		}
		numVals[i] = reg.Eval(vals)
		if math.IsNaN(numVals[i]) || math.IsInf(numVals[i], 0) {
			return math.NaN()
		}
	}

	z := m.coef[0]
	j := 1
	for _, v := range numVals {
		z += m.coef[j] * v
		j++
	}

	// Group dummies and interactions, mirroring the fit-time ordering.
	for gi, g := range m.formula.Groups {
		level := groupCols[gi][r]
		lv := m.levels[g]
		if !containsLevel(lv, level) {
			return math.NaN() // unseen level: let grouped callers fall back
		}
		for _, known := range lv[1:] {
			d := 0.0
			if level == known {
				d = 1
			}
			z += m.coef[j] * d
			j++
			if m.formula.Effect == term.Interactive {
				for _, v := range numVals {
					z += m.coef[j] * d * v
					j++
				}
			}
		}
	}

	xv := 0.0
	if xPred != nil {
		xv = xPred[r]
		if math.IsNaN(xv) {
			return math.NaN()
		}
	}
	return m.formula.Response.Invert(z, xv, m.correction)
}

// FillMissing predicts only the rows whose response value is missing in
// tbl and returns a column that keeps observed values where present and
// substitutes predictions elsewhere — the gap-filling contract used by
// inventory collaborators.
func (m *Model) FillMissing(tbl *dataset.Table) ([]float64, error) {
	if m == nil {
		return nil, fitErrorf(opPredict, ErrNilModel)
	}
	y, err := tbl.Numeric(m.formula.Response.Columns()[0])
	if err != nil {
		return nil, fitErrorf(opPredict, err)
	}
	pred, err := m.Predict(tbl)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(y))
	for r := range y {
		if math.IsNaN(y[r]) {
			out[r] = pred[r]
		} else {
			out[r] = y[r]
		}
	}
	return out, nil
}

// containsLevel reports membership in a sorted level list.
func containsLevel(levels []string, v string) bool {
	for _, l := range levels {
		if l == v {
			return true
		}
	}
	return false
}

// Ranges returns the observed [min, max] of each numeric column of the
// training table, keyed by column name. Grouped prediction uses these
// to refuse extrapolating a narrow per-group fit.
func (m *Model) Ranges() map[string][2]float64 {
	out := make(map[string][2]float64)
	for _, name := range m.data.NumericNames() {
		col, err := m.data.Numeric(name)
		if err != nil || len(col) == 0 {
			continue
		}
		lo, hi := col[0], col[0]
		for _, v := range col[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		out[name] = [2]float64{lo, hi}
	}
	return out
}
