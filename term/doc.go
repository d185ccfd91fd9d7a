// Package term defines the algebraic transforms explored by the model
// search: response terms (with explicit inverses and a logarithmic flag
// driving bias correction), predictor base transforms, their additive
// and multiplicative combinations, and the Formula pairing one response
// term with one design term.
//
// 🌲 The catalogs
//
//	ResponseCatalog enumerates every classic forestry response scale:
//		• y, ln(y), ln(y−1.3), ln(1+y)
//		• 1/y, 1/(y−1.3), 1/√y, 1/√(y−1.3)
//		• and, for single-predictor searches, the ratio scales
//		  x/√y, x/√(y−1.3), x²/y, x²/(y−1.3)
//
//	DesignCatalog enumerates the six base predictor transforms
//	{x, x², ln(x), ln²(x), 1/x, 1/x²} and every additive combination
//	of two and three of them — 41 candidate right-hand sides.
//	DesignCatalog2 extends this to two predictors with cross sums and
//	cross products, 87 candidates in total.
//
// Terms are immutable value objects. Equality is by symbolic name, so
// the search can evaluate each distinct transform exactly once and
// share the column across every formula that reuses it.
//
// Domain failures (log of a non-positive value, y − 1.3 ≤ 0, division
// by zero) never panic at generation or evaluation time: they surface
// as non-finite values that the fitter prunes per candidate.
//
// The 1.3 m breast-height shift is exported as BreastHeight.
package term
