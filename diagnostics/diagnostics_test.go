package diagnostics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/diagnostics"
	"github.com/katalvlaran/dendrofit/fit"
	"github.com/katalvlaran/dendrofit/term"
)

// sampleModel fits height ~ diameter on a small field sample with a
// strong linear signal and modest noise.
func sampleModel(t *testing.T) *fit.Model {
	t.Helper()
	h := []float64{10.2, 15.3, 14.8, 9.7, 16.5, 13.1, 11.6, 12.4, 14.2, 15.0}
	d := []float64{20.5, 25.3, 24.1, 18.7, 26.2, 22.5, 19.8, 21.0, 23.4, 24.5}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))

	resp := term.ResponseCatalog("h", []string{"d"})[0]
	m, err := fit.Fit(term.NewFormula(resp, term.DesignCatalog("d")[0]), tbl)
	require.NoError(t, err)
	return m
}

// TestCompute_Identities cross-checks every numeric statistic against
// its definition evaluated from the model's own accessors.
func TestCompute_Identities(t *testing.T) {
	m := sampleModel(t)
	s := diagnostics.Compute(m)

	n := float64(m.N())
	p := float64(m.P())
	ssr := m.SSR()

	assert.InDelta(t, 1-ssr/m.SST(), s.R2, 1e-12)
	assert.InDelta(t, 1-(1-s.R2)*(n-1)/(n-p), s.AdjR2, 1e-12)
	assert.InDelta(t, math.Sqrt(ssr/(n-p))/m.ResponseMean()*100, s.Syx, 1e-12)
	assert.InDelta(t, math.Sqrt(ssr/n), s.RMSE, 1e-12)
	assert.InDelta(t, -2*s.LogLik+2*p, s.AIC, 1e-12)
	assert.InDelta(t, p*(math.Log(n)-2), s.BIC-s.AIC, 1e-12)
	assert.Greater(t, s.MAE, 0.0)
	assert.LessOrEqual(t, s.MAE, s.RMSE, "RMSE dominates MAE")
}

// TestCompute_AssumptionFlags: this sample has a clearly significant
// slope and unremarkable residuals, so both default flags hold; the
// Breusch–Pagan flag defaults to true because it was not requested.
func TestCompute_AssumptionFlags(t *testing.T) {
	s := diagnostics.Compute(sampleModel(t))
	assert.True(t, s.AllSignificant)
	assert.True(t, s.Normal)
	assert.True(t, s.Homoscedastic, "not requested, so never penalized")
}

// TestCompute_PerfectFit: a noiseless fit reports R² = 1 and zero error
// statistics.
func TestCompute_PerfectFit(t *testing.T) {
	d := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	h := make([]float64, len(d))
	for i, v := range d {
		h[i] = 2 + 3*v
	}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	resp := term.ResponseCatalog("h", []string{"d"})[0]
	m, err := fit.Fit(term.NewFormula(resp, term.DesignCatalog("d")[0]), tbl)
	require.NoError(t, err)

	s := diagnostics.Compute(m)
	assert.InDelta(t, 1, s.R2, 1e-9)
	assert.InDelta(t, 0, s.RMSE, 1e-9)
	assert.InDelta(t, 0, s.MAE, 1e-9)
}

// TestCompute_DetectsHeteroscedasticity: residual spread growing with
// the fitted value must trip the Breusch–Pagan flag when requested.
func TestCompute_DetectsHeteroscedasticity(t *testing.T) {
	n := 12
	d := make([]float64, n)
	h := make([]float64, n)
	sign := 1.0
	for i := 0; i < n; i++ {
		d[i] = float64(i + 1)
		h[i] = 2 + 3*d[i] + sign*0.4*d[i]
		sign = -sign
	}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	resp := term.ResponseCatalog("h", []string{"d"})[0]
	m, err := fit.Fit(term.NewFormula(resp, term.DesignCatalog("d")[0]), tbl)
	require.NoError(t, err)

	s := diagnostics.Compute(m, diagnostics.WithHomoscedasticity())
	assert.False(t, s.Homoscedastic, "fan-shaped residuals reject constant variance")
}

// TestCompute_OutlierBreaksNormality: one gross outlier in otherwise
// tight residuals makes Shapiro–Wilk reject.
func TestCompute_OutlierBreaksNormality(t *testing.T) {
	n := 20
	d := make([]float64, n)
	h := make([]float64, n)
	sign := 1.0
	for i := 0; i < n; i++ {
		d[i] = float64(i + 10)
		h[i] = 2 + 3*d[i] + sign*0.2
		sign = -sign
	}
	h[7] += 25 // one wildly mis-measured tree

	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	resp := term.ResponseCatalog("h", []string{"d"})[0]
	m, err := fit.Fit(term.NewFormula(resp, term.DesignCatalog("d")[0]), tbl)
	require.NoError(t, err)

	s := diagnostics.Compute(m)
	assert.False(t, s.Normal)
}

// TestCompute_AlphaTightensSignificance: with α pushed to an extreme
// the same coefficients stop counting as significant.
func TestCompute_AlphaTightensSignificance(t *testing.T) {
	m := sampleModel(t)
	loose := diagnostics.Compute(m)
	strict := diagnostics.Compute(m, diagnostics.WithAlpha(1e-12))
	assert.True(t, loose.AllSignificant)
	assert.False(t, strict.AllSignificant)
}

// TestWithAlpha_PanicsOutOfRange guards the programmer-error contract.
func TestWithAlpha_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { diagnostics.WithAlpha(0) })
	assert.Panics(t, func() { diagnostics.WithAlpha(1) })
	assert.NotPanics(t, func() { diagnostics.WithAlpha(0.10) })
}
