// SPDX-License-Identifier: MIT
// Package pca - solver dispatch and the two in-house solvers.
//
// Every solver receives the preprocessed (centered, optionally z-scored)
// n×d matrix and returns the full spectrum: m = min(n, d) axes in columns,
// ordered by descending sample variance. Sign canonicalization and the
// truncation to k components happen in Fit.

package pca

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvpca/matrix"
)

// spectrum is the solver output shared by Fit.
type spectrum struct {
	axes     *matrix.Dense // d×m, column j is the j-th principal axis
	variance []float64     // m sample variances, non-increasing
}

type solveFunc func(xc matrix.Matrix, o Options) (spectrum, error)

// solverFor returns the implementation behind s.
func solverFor(s Solver) (solveFunc, error) {
	switch s {
	case SolverLibrary:
		return solveLibrary, nil
	case SolverEigen:
		return solveEigen, nil
	case SolverSVD:
		return solveSVD, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSolver, s)
	}
}

// solveEigen diagonalizes the sample covariance (Xcᵀ Xc)/(n-1).
func solveEigen(xc matrix.Matrix, o Options) (spectrum, error) {
	cov, _, err := matrix.Covariance(xc)
	if err != nil {
		return spectrum{}, err
	}

	// Scale the absolute Jacobi threshold with the covariance magnitude.
	scale := 1.0
	d := cov.Rows()
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v, _ := cov.At(i, j)
			scale = math.Max(scale, math.Abs(v))
		}
	}
	vals, vecs, err := matrix.Eigen(cov, o.Tolerance*scale, o.MaxIter)
	if err != nil {
		return spectrum{}, err
	}
	vals, vecs, err = matrix.SortEigenDescending(vals, vecs)
	if err != nil {
		return spectrum{}, err
	}

	m := min(xc.Rows(), d)
	axes, err := leadingColumns(vecs, m)
	if err != nil {
		return spectrum{}, err
	}
	variance := make([]float64, m)
	for j := 0; j < m; j++ {
		variance[j] = math.Max(vals[j], 0) // round-off can push null eigenvalues below zero
	}

	return spectrum{axes: axes, variance: variance}, nil
}

// solveSVD factorizes Xc = U·Σ·Vᵀ; variances are σ²/(n-1).
func solveSVD(xc matrix.Matrix, o Options) (spectrum, error) {
	_, s, v, err := matrix.SVD(xc, matrix.WithEpsilon(o.Tolerance), matrix.WithMaxIter(o.MaxIter))
	if err != nil {
		return spectrum{}, err
	}
	axes, err := leadingColumns(v, len(s))
	if err != nil {
		return spectrum{}, err
	}
	inv := 1.0 / float64(xc.Rows()-1)
	variance := make([]float64, len(s))
	for j, sv := range s {
		variance[j] = sv * sv * inv
	}

	return spectrum{axes: axes, variance: variance}, nil
}

// leadingColumns copies the first m columns of q into a fresh r×m Dense.
func leadingColumns(q matrix.Matrix, m int) (*matrix.Dense, error) {
	r := q.Rows()
	out, err := matrix.NewDense(r, m)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < m; j++ {
			if v, err = q.At(i, j); err != nil {
				return nil, err
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
