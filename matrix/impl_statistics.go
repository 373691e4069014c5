// SPDX-License-Identifier: MIT
// Package: matrix
//
// Column statistics for PCA: means, centering, covariance and z-scores.
// Rows are observations and columns are variables throughout.

package matrix

import "math"

const (
	opColumnMeans          = "ColumnMeans"
	opCenterColumns        = "CenterColumns"
	opUncenterColumns      = "UncenterColumns"
	opCovariance           = "Covariance"
	opPopulationCovariance = "PopulationCovariance"
	opStandardizeColumns   = "StandardizeColumns"
)

// Covariance denominators are r - ddof.
const (
	ddofPopulation = 0
	ddofSample     = 1
)

func columnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	means := make([]float64, d.c)
	for k, v := range d.data {
		means[k%d.c] += v
	}
	for j := range means {
		means[j] /= float64(d.r)
	}
	return means, nil
}

// centerColumns returns a centered copy of X and the means it subtracted.
func centerColumns(X Matrix) (Matrix, []float64, error) {
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	return Xc, means, nil
}

func uncenterColumns(Xc Matrix, means []float64) (Matrix, error) {
	X, err := ewBroadcastAddCols(Xc, means)
	if err != nil {
		return nil, matrixErrorf(opUncenterColumns, err)
	}
	return X, nil
}

// covarianceDDOF returns XcᵀXc / (r - ddof) and the column means.
// Fewer than ddof+1 rows is ErrDimensionMismatch. The result is exactly
// symmetric: the lower triangle is copied from the upper one.
func covarianceDDOF(X Matrix, ddof int, op string) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(op, err)
	}
	if X.Rows() <= ddof {
		return nil, nil, matrixErrorf(op, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(op, err)
	}
	XcT, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(op, err)
	}
	gram, err := Mul(XcT, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(op, err)
	}
	cov, err := Scale(gram, 1/float64(X.Rows()-ddof))
	if err != nil {
		return nil, nil, matrixErrorf(op, err)
	}

	c := cov.(*Dense)
	for i := 0; i < c.r; i++ {
		for j := 0; j < i; j++ {
			c.data[i*c.c+j] = c.data[j*c.c+i]
		}
	}
	return c, means, nil
}

// standardizeColumns returns (X - mean) / std per column, with the sample
// (r-1) standard deviation. A constant column has std 0 and stays all zeros.
// At least two rows are required.
func standardizeColumns(X Matrix) (Matrix, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	if X.Rows() < 2 {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, ErrDimensionMismatch)
	}

	centered, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	xc := centered.(*Dense)

	stds := make([]float64, xc.c)
	for k, v := range xc.data {
		stds[k%xc.c] += v * v
	}
	factors := make([]float64, xc.c)
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / float64(xc.r-1))
		if stds[j] > 0 {
			factors[j] = 1 / stds[j]
		}
	}

	Z, err := ewScaleCols(xc, factors)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	return Z, means, stds, nil
}
