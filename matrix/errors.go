// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinel errors. Operations wrap them as "<Op>: <sentinel>", so match with
// errors.Is. User input never causes a panic; only invalid Option arguments do.
//
// When several problems apply, the first one reported is, in order: nil
// operand, bad shape or index or non-finite value, operand mismatch, numeric
// breakdown (singular pivot, no convergence).
var (
	// ErrInvalidDimensions: a requested row or column count is not positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange: an index passed to At, Set, Row or Col is outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch: operand shapes disagree, input rows are ragged,
	// or there are too few observations for a statistic.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry: a matrix required to be symmetric is not, within tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf: a NaN or ±Inf reached a place that requires finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix: a nil matrix or vector argument.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed: Jacobi rotations did not converge within the budget.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrSingular: LU found no non-zero pivot in some column.
	ErrSingular = errors.New("matrix: singular matrix")
)
