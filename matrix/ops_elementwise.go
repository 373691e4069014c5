// SPDX-License-Identifier: MIT
// Package: matrix
//
// Column-wise broadcasts and element comparisons used by the statistics
// layer and by tests. All of them walk the flat row-major buffer once.

package matrix

import "math"

const (
	opBroadcastCols = "broadcastCols"
	opScaleCols     = "scaleCols"
	opAllClose      = "AllClose"
	opMaxAbsDiff    = "MaxAbsDiff"
)

// eachColumn returns a copy of X with out[i,j] = f(X[i,j], vec[j]).
func eachColumn(op string, X Matrix, vec []float64, f func(x, v float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if err := ValidateVecLen(vec, X.Cols()); err != nil {
		return nil, matrixErrorf(op, err)
	}
	out, err := denseCopy(X)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	for k, x := range out.data {
		out.data[k] = f(x, vec[k%out.c])
	}
	return out, nil
}

// ewBroadcastSubCols subtracts colMeans[j] from column j.
func ewBroadcastSubCols(X Matrix, colMeans []float64) (Matrix, error) {
	return asMatrix(eachColumn(opBroadcastCols, X, colMeans, func(x, m float64) float64 { return x - m }))
}

// ewBroadcastAddCols adds colMeans[j] to column j.
func ewBroadcastAddCols(X Matrix, colMeans []float64) (Matrix, error) {
	return asMatrix(eachColumn(opBroadcastCols, X, colMeans, func(x, m float64) float64 { return x + m }))
}

// ewScaleCols multiplies column j by scale[j].
func ewScaleCols(X Matrix, scale []float64) (Matrix, error) {
	return asMatrix(eachColumn(opScaleCols, X, scale, func(x, s float64) float64 { return x * s }))
}

// asMatrix keeps a failed *Dense result from becoming a non-nil interface.
func asMatrix(d *Dense, err error) (Matrix, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}

// pairwise validates a and b and hands their flat buffers to f.
func pairwise(op string, a, b Matrix, f func(x, y []float64)) error {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return matrixErrorf(op, err)
	}
	da, err := asDense(a)
	if err != nil {
		return matrixErrorf(op, err)
	}
	db, err := asDense(b)
	if err != nil {
		return matrixErrorf(op, err)
	}
	f(da.data, db.data)
	return nil
}

// ewAllClose reports whether |a-b| ≤ atol + rtol·|b| for every element.
// Both tolerances are taken by magnitude.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	rtol, err := ValidateTolerance(rtol)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if atol, err = ValidateTolerance(atol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	ok := true
	err = pairwise(opAllClose, a, b, func(x, y []float64) {
		for k := range x {
			if math.Abs(x[k]-y[k]) > atol+rtol*math.Abs(y[k]) {
				ok = false
				return
			}
		}
	})
	return ok && err == nil, err
}

// ewMaxAbsDiff returns the largest |a[i,j]-b[i,j]|.
func ewMaxAbsDiff(a, b Matrix) (float64, error) {
	var worst float64
	err := pairwise(opMaxAbsDiff, a, b, func(x, y []float64) {
		for k := range x {
			worst = math.Max(worst, math.Abs(x[k]-y[k]))
		}
	})
	if err != nil {
		return 0, err
	}
	return worst, nil
}
