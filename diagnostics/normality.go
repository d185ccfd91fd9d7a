// Package diagnostics: residual normality testing.
//
// Below exactTestLimit observations the exact Shapiro–Wilk test is
// used (Royston's AS R94 approximation for the coefficients and the
// p-value transform); at or above it the asymptotic Jarque–Bera test
// takes over. Both reduce to a single boolean: "fails to reject
// normality at the given level". Any internal failure — degenerate
// variance, out-of-range W, too few points — degrades to false.

package diagnostics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// shapiroMinN is the smallest sample Shapiro–Wilk is defined for.
const shapiroMinN = 3

// normalResiduals dispatches on the sample size and reduces the chosen
// test to a fails-to-reject boolean.
func normalResiduals(resid []float64, alpha float64) bool {
	var p float64
	var ok bool
	if len(resid) < exactTestLimit {
		p, ok = shapiroWilk(resid)
	} else {
		p, ok = jarqueBera(resid)
	}
	if !ok || math.IsNaN(p) {
		return false
	}
	return p >= alpha
}

// jarqueBera computes the asymptotic JB statistic from sample skewness
// and excess kurtosis, with a χ²(2) tail probability.
func jarqueBera(x []float64) (pvalue float64, ok bool) {
	n := float64(len(x))
	if n < 4 {
		return 0, false
	}
	mean := stat.Mean(x, nil)
	var m2, m3, m4 float64
	for _, v := range x {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n
	if m2 <= 0 {
		return 0, false
	}
	skew := m3 / math.Pow(m2, 1.5)
	exKurt := m4/(m2*m2) - 3
	jb := n / 6 * (skew*skew + exKurt*exKurt/4)
	chi2 := distuv.ChiSquared{K: 2}
	return 1 - chi2.CDF(jb), true
}

// shapiroWilk computes Royston's approximation of the Shapiro–Wilk W
// statistic and its p-value for 3 ≤ n < 5000.
func shapiroWilk(x []float64) (pvalue float64, ok bool) {
	n := len(x)
	if n < shapiroMinN {
		return 0, false
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	// Expected normal order statistics m and their sum of squares.
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	m := make([]float64, n)
	ssm := 0.0
	for i := 0; i < n; i++ {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	// Royston's polynomial-corrected weights a.
	a := make([]float64, n)
	rsn := 1 / math.Sqrt(float64(n))
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		a[2] = -a[0]
	} else {
		cn := m[n-1] / math.Sqrt(ssm)
		an := cn + polyval(rsn, 0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056)
		if n <= 5 {
			phi := (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			sp := math.Sqrt(phi)
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / sp
			}
			a[n-1] = an
			a[0] = -an
		} else {
			cn1 := m[n-2] / math.Sqrt(ssm)
			an1 := cn1 + polyval(rsn, 0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633)
			phi := (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			sp := math.Sqrt(phi)
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / sp
			}
			a[n-1], a[n-2] = an, an1
			a[0], a[1] = -an, -an1
		}
	}

	// W = (Σ aᵢ x₍ᵢ₎)² / Σ (xᵢ − x̄)².
	mean := stat.Mean(sorted, nil)
	var num, den float64
	for i, v := range sorted {
		num += a[i] * v
		d := v - mean
		den += d * d
	}
	if den <= 0 {
		return 0, false
	}
	w := num * num / den
	if w <= 0 || w > 1+1e-9 {
		return 0, false
	}
	if w > 1 {
		w = 1
	}

	// p-value via the normalizing transform of ln(1−W).
	nf := float64(n)
	lw := math.Log(1 - w)
	var z float64
	switch {
	case n < 12:
		gamma := -2.273 + 0.459*nf
		if gamma-lw <= 0 {
			return 1, true // W ≈ 1: no evidence against normality
		}
		mu := 0.5440 - 0.39978*nf + 0.025054*nf*nf - 0.0006714*nf*nf*nf
		sigma := math.Exp(1.3822 - 0.77857*nf + 0.062767*nf*nf - 0.0020322*nf*nf*nf)
		z = (-math.Log(gamma-lw) - mu) / sigma
	default:
		ln := math.Log(nf)
		mu := 0.0038915*ln*ln*ln - 0.083751*ln*ln - 0.31082*ln - 1.5861
		sigma := math.Exp(0.0030302*ln*ln - 0.082676*ln - 0.4803)
		z = (lw - mu) / sigma
	}
	return 1 - norm.CDF(z), true
}

// polyval evaluates c0 + c1·x + c2·x² + ... in ascending-degree order.
func polyval(x float64, coeffs ...float64) float64 {
	out, pow := 0.0, 1.0
	for _, c := range coeffs {
		out += c * pow
		pow *= x
	}
	return out
}
