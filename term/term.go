// Package term: the Term value object and its combination constructors.

package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/dendrofit/dataset"
)

// BreastHeight is the forestry convention subtracted from total height
// by the shifted response transforms: 1.3 m, the measurement height of
// diameter at breast height.
const BreastHeight = 1.3

// Term is an immutable algebraic transform of one or two numeric
// columns. Identity and hashing are by symbolic name: two Terms with
// the same Name() compute the same column and may share a cache slot.
type Term struct {
	name string
	cols []string
	fn   func(v []float64) float64
}

// NewTerm builds a Term over the given columns. The eval function
// receives the row values aligned with cols. It must be pure and must
// express domain failures as NaN/Inf, never by panicking.
func NewTerm(name string, cols []string, fn func(v []float64) float64) Term {
	return Term{name: name, cols: append([]string(nil), cols...), fn: fn}
}

// Name returns the symbolic name (the equality/cache key).
func (t Term) Name() string { return t.name }

// Columns returns the referenced column names in eval order.
func (t Term) Columns() []string { return append([]string(nil), t.cols...) }

// Eval applies the transform to one row of values aligned with Columns().
func (t Term) Eval(v []float64) float64 { return t.fn(v) }

// EvalColumn evaluates the term over every row of the table, returning
// a fresh column. Unknown columns error; domain failures propagate as
// non-finite values in the output.
func (t Term) EvalColumn(tbl *dataset.Table) ([]float64, error) {
	cols := make([][]float64, len(t.cols))
	for i, name := range t.cols {
		col, err := tbl.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("term %s: %w", t.name, err)
		}
		cols[i] = col
	}
	out := make([]float64, tbl.Len())
	row := make([]float64, len(cols))
	for r := range out {
		for i, col := range cols {
			row[i] = col[r]
		}
		out[r] = t.fn(row)
	}
	return out, nil
}

// unary builds a one-column Term.
func unary(name, col string, fn func(x float64) float64) Term {
	return NewTerm(name, []string{col}, func(v []float64) float64 { return fn(v[0]) })
}

// Product returns the cross-product regressor a·b. Both operands keep
// their own column sets; the product consumes their concatenation.
func Product(a, b Term) Term {
	cols := append(a.Columns(), b.Columns()...)
	na, nb := len(a.cols), len(b.cols)
	return NewTerm(a.name+" * "+b.name, cols, func(v []float64) float64 {
		return a.fn(v[:na]) * b.fn(v[na:na+nb])
	})
}

// DesignTerm is an additive combination of regressor Terms: one design
// matrix column per regressor, plus the intercept added by the fitter.
type DesignTerm struct {
	name string
	regs []Term
}

// NewDesignTerm sums the given regressors into one candidate right-hand side.
func NewDesignTerm(regs ...Term) DesignTerm {
	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name()
	}
	return DesignTerm{name: strings.Join(names, " + "), regs: append([]Term(nil), regs...)}
}

// Name returns the symbolic name, e.g. "d + log(d)^2".
func (d DesignTerm) Name() string { return d.name }

// Regressors returns the additive components in order.
func (d DesignTerm) Regressors() []Term { return append([]Term(nil), d.regs...) }

// Arity reports the number of design-matrix columns (excluding intercept).
func (d DesignTerm) Arity() int { return len(d.regs) }

// sq avoids math.Pow for the hot integer powers.
func sq(x float64) float64 { return x * x }

// safeLog maps non-positive arguments to NaN so that a domain failure
// is always a quiet non-finite value (math.Log(0) would yield -Inf,
// which the fitter also prunes, but NaN keeps the two failure modes
// uniform for the missing-value path in prediction).
func safeLog(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log(x)
}
