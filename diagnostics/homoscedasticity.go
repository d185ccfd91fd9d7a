// Package diagnostics: non-constant-variance (Breusch–Pagan) test on
// residuals against fitted values.

package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// homoscedastic runs the Koenker form of the Breusch–Pagan test:
// regress the squared residuals on the fitted values, take LM = n·R²
// of that auxiliary regression against χ²(1), and report
// fails-to-reject at alpha. Degenerate inputs degrade to false.
func homoscedastic(resid, fitted []float64, alpha float64) bool {
	n := len(resid)
	if n < 4 || len(fitted) != n {
		return false
	}
	u2 := make([]float64, n)
	for i, r := range resid {
		u2[i] = r * r
	}

	// Auxiliary simple regression u² = a + b·fitted: R² is the squared
	// Pearson correlation, no matrix solve needed for one regressor.
	r := stat.Correlation(fitted, u2, nil)
	if math.IsNaN(r) {
		return false
	}
	lm := float64(n) * r * r
	chi2 := distuv.ChiSquared{K: 1}
	p := 1 - chi2.CDF(lm)
	if math.IsNaN(p) {
		return false
	}
	return p >= alpha
}
