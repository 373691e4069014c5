// SPDX-License-Identifier: MIT
// Package matrix - basic kernels: Add, Sub, Mul, Transpose, Scale, MatVec.
//
// Every kernel validates its operands, allocates a fresh *Dense result and
// leaves the inputs untouched. Operands that are not *Dense are first copied
// into one, so the arithmetic itself always runs over flat row-major slices.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
)

// matrixErrorf prefixes err with an operation tag. Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseCopy returns an independent *Dense holding the values of m.
func denseCopy(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("denseCopy", err)
	}
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf("denseCopy", err)
	}
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf("denseCopy", err)
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, matrixErrorf("denseCopy", err)
			}
		}
	}
	return out, nil
}

// asDense returns m itself when it is a *Dense and a copy otherwise.
// The result must be treated as read-only.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	return denseCopy(m)
}

// combine returns a + sign*b.
func combine(op string, a, b Matrix, sign float64) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(op, err)
	}
	out, err := denseCopy(a)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	for k, v := range db.data {
		out.data[k] += sign * v
	}
	return out, nil
}

// Add returns a + b. Shapes must match.
func Add(a, b Matrix) (Matrix, error) { return combine(opAdd, a, b, 1) }

// Sub returns a - b. Shapes must match.
func Sub(a, b Matrix) (Matrix, error) { return combine(opSub, a, b, -1) }

// Mul returns the product a·b, requiring a.Cols == b.Rows.
// The inner loop runs i→k→j over contiguous rows of b and skips zero a[i,k].
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	n, m := da.c, db.c
	for i := 0; i < da.r; i++ {
		dst := out.data[i*m : (i+1)*m]
		for k, aik := range da.data[i*n : (i+1)*n] {
			if aik == 0 {
				continue
			}
			for j, bkj := range db.data[k*m : (k+1)*m] {
				dst[j] += aik * bkj
			}
		}
	}
	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for k, v := range src.data {
		i, j := k/src.c, k%src.c
		out.data[j*src.r+i] = v
	}
	return out, nil
}

// Scale returns alpha·m. A non-finite alpha is ErrNaNInf.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	out, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k := range out.data {
		out.data[k] *= alpha
	}
	return out, nil
}

// MatVec returns m·x, with len(x) == m.Cols().
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	for i := range y {
		var acc float64
		for j, v := range d.data[i*d.c : (i+1)*d.c] {
			acc += v * x[j]
		}
		y[i] = acc
	}
	return y, nil
}
