// Package term: response transform kinds and their explicit inverses.
//
// The transform kind is a tagged enum carried by every ResponseTerm,
// together with the inverse function and the logarithmic flag that
// triggers Meyer bias correction. Back-transformation therefore never
// inspects a symbolic name to pick an inverse.

package term

import "math"

// Kind identifies a response transform.
type Kind int

const (
	// Identity — y.
	Identity Kind = iota
	// Log — ln(y).
	Log
	// LogBH — ln(y − 1.3).
	LogBH
	// Log1p — ln(1 + y).
	Log1p
	// Inv — 1/y.
	Inv
	// InvBH — 1/(y − 1.3).
	InvBH
	// InvSqrt — 1/√y.
	InvSqrt
	// InvSqrtBH — 1/√(y − 1.3).
	InvSqrtBH
	// RatioSqrt — x/√y (single-predictor searches only).
	RatioSqrt
	// RatioSqrtBH — x/√(y − 1.3).
	RatioSqrtBH
	// RatioSq — x²/y.
	RatioSq
	// RatioSqBH — x²/(y − 1.3).
	RatioSqBH
)

// ResponseTerm is a Term tagged with its Kind, its inverse, and whether
// the transform is logarithmic (and so needs exp(σ²/2) correction on
// back-transformation). Ratio kinds additionally consume the predictor
// value when inverting.
type ResponseTerm struct {
	Term
	kind        Kind
	logarithmic bool
	ratio       bool
	inverse     func(z, x, c float64) float64
}

// Kind returns the transform tag.
func (r ResponseTerm) Kind() Kind { return r.kind }

// IsIdentity reports whether the response is untransformed.
func (r ResponseTerm) IsIdentity() bool { return r.kind == Identity }

// IsLogarithmic reports whether back-transformed predictions need the
// multiplicative exp(σ²/2) bias correction.
func (r ResponseTerm) IsLogarithmic() bool { return r.logarithmic }

// NeedsPredictor reports whether Invert consumes the predictor value
// (true for the four ratio kinds).
func (r ResponseTerm) NeedsPredictor() bool { return r.ratio }

// Invert maps a fitted value z back to the original response scale.
// x is the row's predictor value, ignored by non-ratio kinds. c is the
// Meyer correction factor: logarithmic kinds multiply it into the
// exponentiated component *before* any breast-height shift, so the
// shift constant is never inflated; non-logarithmic kinds ignore it.
// Pass c = 1 for an uncorrected inversion.
func (r ResponseTerm) Invert(z, x, c float64) float64 { return r.inverse(z, x, c) }

// newResponse wires one response transform. y is the response column,
// x the predictor column ("" for non-ratio kinds).
func newResponse(kind Kind, name, y, x string,
	fwd func(y, x float64) float64, inv func(z, x, c float64) float64, logarithmic bool) ResponseTerm {

	cols := []string{y}
	ratio := x != ""
	if ratio {
		cols = append(cols, x)
	}
	t := NewTerm(name, cols, func(v []float64) float64 {
		if ratio {
			return fwd(v[0], v[1])
		}
		return fwd(v[0], 0)
	})
	return ResponseTerm{Term: t, kind: kind, logarithmic: logarithmic, ratio: ratio, inverse: inv}
}

// ResponseCatalog returns the response transform list for a search over
// the given response column and predictors. With exactly one predictor
// the four ratio scales are included; with two predictors the reduced
// eight-term list is returned. Generation is pure and deterministic.
func ResponseCatalog(y string, predictors []string) []ResponseTerm {
	out := []ResponseTerm{
		newResponse(Identity, y, y, "",
			func(v, _ float64) float64 { return v },
			func(z, _, _ float64) float64 { return z }, false),
		newResponse(Log, "log("+y+")", y, "",
			func(v, _ float64) float64 { return safeLog(v) },
			func(z, _, c float64) float64 { return c * math.Exp(z) }, true),
		newResponse(LogBH, "log("+y+" - 1.3)", y, "",
			func(v, _ float64) float64 { return safeLog(v - BreastHeight) },
			func(z, _, c float64) float64 { return c*math.Exp(z) + BreastHeight }, true),
		newResponse(Log1p, "log1p("+y+")", y, "",
			func(v, _ float64) float64 { return math.Log1p(v) },
			func(z, _, c float64) float64 { return c*math.Exp(z) - 1 }, true),
		newResponse(Inv, "1/"+y, y, "",
			func(v, _ float64) float64 { return 1 / v },
			func(z, _, _ float64) float64 { return 1 / z }, false),
		newResponse(InvBH, "1/("+y+" - 1.3)", y, "",
			func(v, _ float64) float64 { return 1 / (v - BreastHeight) },
			func(z, _, _ float64) float64 { return 1/z + BreastHeight }, false),
		newResponse(InvSqrt, "1/sqrt("+y+")", y, "",
			func(v, _ float64) float64 { return 1 / math.Sqrt(v) },
			func(z, _, _ float64) float64 { return 1 / (z * z) }, false),
		newResponse(InvSqrtBH, "1/sqrt("+y+" - 1.3)", y, "",
			func(v, _ float64) float64 { return 1 / math.Sqrt(v-BreastHeight) },
			func(z, _, _ float64) float64 { return 1/(z*z) + BreastHeight }, false),
	}
	if len(predictors) != 1 {
		return out
	}
	x := predictors[0]
	out = append(out,
		newResponse(RatioSqrt, x+"/sqrt("+y+")", y, x,
			func(v, xv float64) float64 { return xv / math.Sqrt(v) },
			func(z, xv, _ float64) float64 { return sq(xv / z) }, false),
		newResponse(RatioSqrtBH, x+"/sqrt("+y+" - 1.3)", y, x,
			func(v, xv float64) float64 { return xv / math.Sqrt(v-BreastHeight) },
			func(z, xv, _ float64) float64 { return sq(xv/z) + BreastHeight }, false),
		newResponse(RatioSq, x+"^2/"+y, y, x,
			func(v, xv float64) float64 { return sq(xv) / v },
			func(z, xv, _ float64) float64 { return sq(xv) / z }, false),
		newResponse(RatioSqBH, x+"^2/("+y+" - 1.3)", y, x,
			func(v, xv float64) float64 { return sq(xv) / (v - BreastHeight) },
			func(z, xv, _ float64) float64 { return sq(xv)/z + BreastHeight }, false),
	)
	return out
}
