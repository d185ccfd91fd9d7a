// Package diagnostics: the statistic set and its calculator.

package diagnostics

import (
	"math"

	"github.com/katalvlaran/dendrofit/fit"
)

// DefaultAlpha is the significance level for the boolean assumption
// flags (coefficient significance, normality, homoscedasticity).
const DefaultAlpha = 0.05

// exactTestLimit is the observation count below which the exact
// normality test (Shapiro–Wilk) is used; at or above it the asymptotic
// Jarque–Bera test takes over.
const exactTestLimit = 100

// Set is the fixed statistic vector computed for one fitted model.
// Numeric statistics are always valid floats for a model that fit;
// boolean flags are conservative (false on any internal test failure).
type Set struct {
	R2     float64 // 1 − SSR/SST
	AdjR2  float64 // 1 − (1−R²)(n−1)/(n−p)
	Syx    float64 // √(SSR/(n−p)) / mean(y) × 100
	RMSE   float64 // √(SSR/n)
	MAE    float64 // mean |residual|
	LogLik float64 // Gaussian log-likelihood of the residuals
	AIC    float64 // −2·loglik + 2p
	BIC    float64 // −2·loglik + p·ln(n)

	AllSignificant bool // every coefficient p-value < α
	Normal         bool // residuals fail to reject normality at 0.05
	Homoscedastic  bool // Breusch–Pagan fails to reject at 0.05
}

// options configures the calculator.
type options struct {
	alpha         float64
	homoscedastic bool
}

// Option mutates diagnostics options.
type Option func(*options)

// WithAlpha overrides the significance level for the boolean flags.
// Panics if alpha is not in (0, 1) — a programmer error.
func WithAlpha(alpha float64) Option {
	if alpha <= 0 || alpha >= 1 {
		panic("diagnostics: WithAlpha: alpha must be in (0,1)")
	}
	return func(o *options) { o.alpha = alpha }
}

// WithHomoscedasticity enables the Breusch–Pagan flag (off by default;
// when off, Homoscedastic is reported as true so it never penalizes a
// ranking that did not request it).
func WithHomoscedasticity() Option {
	return func(o *options) { o.homoscedastic = true }
}

// Compute derives the full statistic set from the model's stored
// original-scale residuals, so models with different response
// transforms stay comparable.
func Compute(m *fit.Model, opts ...Option) Set {
	o := options{alpha: DefaultAlpha}
	for _, opt := range opts {
		opt(&o)
	}

	n := float64(m.N())
	p := float64(m.P())
	ssr := m.SSR()
	sst := m.SST()
	resid := m.Residuals()

	var s Set
	s.R2 = 1 - ssr/sst
	s.AdjR2 = 1 - (1-s.R2)*(n-1)/(n-p)
	s.Syx = math.Sqrt(ssr/(n-p)) / m.ResponseMean() * 100
	s.RMSE = math.Sqrt(ssr / n)
	mae := 0.0
	for _, r := range resid {
		mae += math.Abs(r)
	}
	s.MAE = mae / n

	// Gaussian log-likelihood with the ML variance estimate SSR/n.
	s.LogLik = -n / 2 * (math.Log(2*math.Pi) + math.Log(ssr/n) + 1)
	s.AIC = -2*s.LogLik + 2*p
	s.BIC = -2*s.LogLik + p*math.Log(n)

	s.AllSignificant = allSignificant(m, o.alpha)
	s.Normal = normalResiduals(resid, o.alpha)
	if o.homoscedastic {
		s.Homoscedastic = homoscedastic(resid, m.Fitted(), o.alpha)
	} else {
		s.Homoscedastic = true
	}
	return s
}

// allSignificant reports whether every coefficient's two-sided p-value
// is below alpha. Degrades to false if the stats cannot be derived.
func allSignificant(m *fit.Model, alpha float64) bool {
	stats, err := m.CoefficientStats()
	if err != nil {
		return false
	}
	for _, c := range stats {
		if math.IsNaN(c.P) || c.P >= alpha {
			return false
		}
	}
	return true
}
