// SPDX-License-Identifier: MIT
// Package: matrix
//
// Validators shared by kernels, factorizations and the statistics layer.
// Each returns a sentinel (ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf,
// ErrAsymmetry) prefixed with the validator name, so callers only need to add
// their own op tag.

package matrix

import (
	"fmt"
	"math"
)

func checkErr(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}

// isNil treats a typed nil *Dense stored in the interface as nil.
func isNil(m Matrix) bool {
	if m == nil {
		return true
	}
	d, ok := m.(*Dense)
	return ok && d == nil
}

// ValidateNotNil returns ErrNilMatrix for a nil (or typed nil) matrix.
func ValidateNotNil(m Matrix) error {
	if isNil(m) {
		return checkErr("ValidateNotNil", ErrNilMatrix)
	}
	return nil
}

// ValidateVecLen rejects a nil vector and any length other than n.
func ValidateVecLen(x []float64, n int) error {
	switch {
	case x == nil:
		return checkErr("ValidateVecLen", ErrNilMatrix)
	case len(x) != n:
		return checkErr(fmt.Sprintf("ValidateVecLen(len=%d, want %d)", len(x), n), ErrDimensionMismatch)
	}
	return nil
}

// ValidateBinarySameShape requires both operands non-nil and of equal shape.
func ValidateBinarySameShape(a, b Matrix) error {
	const name = "ValidateBinarySameShape"
	if isNil(a) || isNil(b) {
		return checkErr(name, ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return checkErr(fmt.Sprintf("%s(%dx%d vs %dx%d)", name, a.Rows(), a.Cols(), b.Rows(), b.Cols()),
			ErrDimensionMismatch)
	}
	return nil
}

// ValidateSquareNonNil requires a non-nil n×n matrix.
func ValidateSquareNonNil(m Matrix) error {
	const name = "ValidateSquareNonNil"
	if isNil(m) {
		return checkErr(name, ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return checkErr(fmt.Sprintf("%s(%dx%d)", name, m.Rows(), m.Cols()), ErrDimensionMismatch)
	}
	return nil
}

// ValidateMulCompatible requires non-nil operands with a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	const name = "ValidateMulCompatible"
	if isNil(a) || isNil(b) {
		return checkErr(name, ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return checkErr(fmt.Sprintf("%s(%dx%d · %dx%d)", name, a.Rows(), a.Cols(), b.Rows(), b.Cols()),
			ErrDimensionMismatch)
	}
	return nil
}

// ValidateTolerance returns |tol|, or ErrNaNInf when tol is not finite.
func ValidateTolerance(tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, checkErr("ValidateTolerance", ErrNaNInf)
	}
	return math.Abs(tol), nil
}

// ValidateSymmetric reports ErrAsymmetry at the first pair i<j with
// |m[i,j] - m[j,i]| > tol.
func ValidateSymmetric(m Matrix, tol float64) error {
	const name = "ValidateSymmetric"
	if err := ValidateSquareNonNil(m); err != nil {
		return checkErr(name, err)
	}
	tol, err := ValidateTolerance(tol)
	if err != nil {
		return checkErr(name, err)
	}

	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			upper, _ := m.At(i, j)
			lower, _ := m.At(j, i)
			if math.Abs(upper-lower) > tol {
				return fmt.Errorf("%s(%d,%d): %w", name, i, j, ErrAsymmetry)
			}
		}
	}
	return nil
}

// ValidateFinite returns ErrNaNInf tagged with the first non-finite cell.
// Dense already refuses such values in Set; other Matrix implementations may not.
func ValidateFinite(m Matrix) error {
	const name = "ValidateFinite"
	if isNil(m) {
		return checkErr(name, ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok {
		for k, v := range d.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s(%d,%d): %w", name, k/d.c, k%d.c, ErrNaNInf)
			}
		}
		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return checkErr(name, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s(%d,%d): %w", name, i, j, ErrNaNInf)
			}
		}
	}
	return nil
}
