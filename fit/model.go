// Package fit: the immutable FittedModel and its coefficient report.

package fit

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/term"
)

// Model is one solved regression. It owns its formula, references the
// reduced table it was fit on, and carries the coefficient vector, the
// original-scale residual state, and the cached Cholesky factorization
// of X'X. A Model is immutable once constructed; ranking only reads
// and reorders models, never mutates them.
type Model struct {
	formula   term.Formula
	data      *dataset.Table
	levels    map[string][]string // per group column, sorted; [0] = reference
	coef      []float64
	coefNames []string
	chol      *mat.Cholesky

	n, p       int
	sigma2T    float64 // transformed-scale residual variance (inference scale)
	sigma2     float64 // original-scale residual variance (comparison scale)
	correction float64 // Meyer factor exp(σ²/2); 1 for non-logarithmic responses

	fitted []float64 // original scale
	resid  []float64 // original scale
	ssr    float64
	sst    float64
	ymean  float64
}

// Formula returns the formula this model was fit from.
func (m *Model) Formula() term.Formula { return m.formula }

// Data returns the reduced table the model was fit on (read-only).
func (m *Model) Data() *dataset.Table { return m.data }

// N reports the number of observations used.
func (m *Model) N() int { return m.n }

// P reports the number of estimated coefficients (including intercept).
func (m *Model) P() int { return m.p }

// Coefficients returns a copy of the coefficient vector, intercept first.
func (m *Model) Coefficients() []float64 { return append([]float64(nil), m.coef...) }

// CoefficientNames returns the design-column labels aligned with Coefficients.
func (m *Model) CoefficientNames() []string { return append([]string(nil), m.coefNames...) }

// Sigma2 returns the original-scale residual variance SSR/(n−p).
func (m *Model) Sigma2() float64 { return m.sigma2 }

// Correction returns the stored Meyer bias-correction factor (1 when
// the response transform is not logarithmic).
func (m *Model) Correction() float64 { return m.correction }

// Fitted returns the fitted values on the original response scale.
func (m *Model) Fitted() []float64 { return append([]float64(nil), m.fitted...) }

// Residuals returns the residuals on the original response scale.
func (m *Model) Residuals() []float64 { return append([]float64(nil), m.resid...) }

// SSR returns the original-scale residual sum of squares.
func (m *Model) SSR() float64 { return m.ssr }

// SST returns the total sum of squares of the raw response.
func (m *Model) SST() float64 { return m.sst }

// ResponseMean returns the mean of the raw response column.
func (m *Model) ResponseMean() float64 { return m.ymean }

// CoefficientStat reports one coefficient with its standard error,
// t-statistic, and two-sided p-value.
type CoefficientStat struct {
	Name     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
}

// CoefficientStats derives standard errors from the diagonal of
// σ²·(X'X)⁻¹ through the cached Cholesky factorization — the inverse
// is obtained from the factors computed at fit time, never by a fresh
// matrix inversion. σ² here is the transformed-scale variance: the
// inference belongs to the scale the regression was actually solved on.
func (m *Model) CoefficientStats() ([]CoefficientStat, error) {
	if m == nil {
		return nil, fitErrorf(opCoef, ErrNilModel)
	}
	var inv mat.SymDense
	if err := m.chol.InverseTo(&inv); err != nil {
		return nil, fitErrorf(opCoef, ErrNotPositiveDefinite)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.n - m.p)}
	out := make([]CoefficientStat, m.p)
	for j := 0; j < m.p; j++ {
		se := math.Sqrt(m.sigma2T * inv.At(j, j))
		t := m.coef[j] / se
		out[j] = CoefficientStat{
			Name:     m.coefNames[j],
			Estimate: m.coef[j],
			StdErr:   se,
			T:        t,
			P:        2 * dist.CDF(-math.Abs(t)),
		}
	}
	return out, nil
}

// Equation renders the fitted model as human-readable text, e.g.
//
//	log(h) = 1.2735 + 0.5412·log(d)
func (m *Model) Equation() string {
	var b strings.Builder
	b.WriteString(m.formula.Response.Name())
	b.WriteString(" = ")
	fmt.Fprintf(&b, "%.4g", m.coef[0])
	for j := 1; j < m.p; j++ {
		c := m.coef[j]
		if c < 0 {
			fmt.Fprintf(&b, " - %.4g·%s", -c, m.coefNames[j])
		} else {
			fmt.Fprintf(&b, " + %.4g·%s", c, m.coefNames[j])
		}
	}
	return b.String()
}
