package lhtss

import "errors"

// All errors returned by this package wrap one of these, use errors.Is to
// test for them.
var (
	// ErrConfiguration is returned for invalid inputs: mismatched dimensions,
	// non-finite values, an illuminant with no overlap with the luminance
	// curve or a solver Config that cannot be used.
	ErrConfiguration = errors.New("lhtss: invalid configuration")

	// ErrNonConvergence is returned when the iteration cap is reached without
	// meeting the tolerance, or when the target cannot be reached by any
	// reflectance in (0,1).
	ErrNonConvergence = errors.New("lhtss: solver did not converge")

	// ErrNumerical is returned when the Newton step cannot be computed
	// reliably: a singular or ill-conditioned Jacobian, or non-finite values.
	ErrNumerical = errors.New("lhtss: numerical failure")

	// ErrSingular is returned by the factorization when a zero pivot is
	// encountered. Solve wraps it together with ErrNumerical.
	ErrSingular = errors.New("lhtss: singular matrix")
)
