// Package fit solves one candidate regression: it assembles the design
// matrix for a Formula, solves the normal equations through a Cholesky
// factorization of X'X, and — when the response was transformed —
// recomputes residuals on the original measurement scale with Meyer
// bias correction, so that every downstream statistic compares models
// across response scales honestly.
//
// 🌲 The pipeline
//
//	build X (intercept + design columns + dummy columns)
//	  → factorize X'X (Cholesky; failure = rank-deficient candidate)
//	  → solve for β by substitution against the factorization
//	  → residuals, σ² = SSR/(n−p) on the transformed scale
//	  → invert the response transform, apply exp(σ²/2) when logarithmic
//	  → recompute residuals/SSR/σ² on the original scale
//
// Per-candidate failures are explicit, inspectable sentinel errors
// (ErrNonFiniteTransform, ErrNotPositiveDefinite,
// ErrNoDegreesOfFreedom), matched with errors.Is and classified by
// IsCandidateFailure. The search driver drops failing candidates
// silently; tests can assert exactly which candidates fail on
// adversarial data.
//
// A Model is immutable once constructed. Its cached factorization also
// serves the coefficient standard errors, so (X'X)⁻¹ is never formed
// from scratch.
//
// Linear algebra is gonum/mat throughout.
package fit
