package core

import "errors"

// Error kinds shared by all wavelet packages. Package-level sentinels wrap
// one of these so callers can test either the specific cause or the kind
// with errors.Is.
var (
	// ErrInvalidConfiguration reports parameters that can never produce a
	// result: bad padding or boundary modes, non-positive lengths or strides,
	// filters longer than the signal, or mismatched coefficient pyramids.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNumericalInstability reports a near-singular basis encountered while
	// orthogonalising boundary rows.
	ErrNumericalInstability = errors.New("numerical instability")
)
