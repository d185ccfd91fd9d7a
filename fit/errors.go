// Package fit: sentinel error set.
// Algorithms return these sentinels (possibly wrapped with operation
// context via fitErrorf) and tests match them with errors.Is. The three
// candidate-failure sentinels are exactly the conditions under which
// the search driver silently drops a candidate; everything else is a
// caller error and surfaces immediately.

package fit

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFiniteTransform indicates a transform evaluated to NaN/Inf
	// for at least one row — the candidate is undefined for this data.
	ErrNonFiniteTransform = errors.New("fit: transform produced non-finite value")

	// ErrNotPositiveDefinite indicates X'X failed the Cholesky
	// factorization: the design matrix is rank-deficient.
	ErrNotPositiveDefinite = errors.New("fit: X'X not positive definite")

	// ErrNoDegreesOfFreedom indicates n − p ≤ 0 residual degrees of freedom.
	ErrNoDegreesOfFreedom = errors.New("fit: no residual degrees of freedom")

	// ErrEmptyDesign indicates a formula whose design term has no regressors.
	ErrEmptyDesign = errors.New("fit: design term has no regressors")

	// ErrNilModel indicates a nil *Model receiver or argument.
	ErrNilModel = errors.New("fit: nil model")
)

// Operation name constants for unified error wrapping.
const (
	opFit     = "Fit"
	opPredict = "Predict"
	opCoef    = "CoefficientStats"
)

// fitErrorf wraps err with an operation tag, preserving the sentinel
// for errors.Is. Call only with err != nil.
func fitErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// IsCandidateFailure reports whether err is one of the per-candidate
// failure modes the search prunes silently, as opposed to a caller
// error that must surface.
func IsCandidateFailure(err error) bool {
	return errors.Is(err, ErrNonFiniteTransform) ||
		errors.Is(err, ErrNotPositiveDefinite) ||
		errors.Is(err, ErrNoDegreesOfFreedom)
}
