// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin entry points for constructors and the statistics layer.
//   - Each facade delegates to the canonical implementation; no logic is duplicated.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "math"

// ---------- Constructors ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ToRows copies any Matrix into freshly allocated rows; nil gives nil.
// A *Dense is copied directly, other implementations are read through At.
func ToRows(m Matrix) [][]float64 {
	if isNil(m) {
		return nil
	}
	d, err := asDense(m)
	if err != nil {
		return nil
	}
	return d.ToRows()
}

// ---------- Comparisons ----------

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Shapes must match; negative tolerances are taken by magnitude.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// MaxAbsDiff returns the largest element-wise |a-b|.
func MaxAbsDiff(a, b Matrix) (float64, error) { return ewMaxAbsDiff(a, b) }

// ---------- Statistics ----------

// ColumnMeans returns the arithmetic mean of every column.
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// CenterColumns returns X with each column mean subtracted, plus those means.
func CenterColumns(X Matrix) (Matrix, []float64, error) { return centerColumns(X) }

// UncenterColumns adds means back to every column; the inverse of CenterColumns.
func UncenterColumns(Xc Matrix, means []float64) (Matrix, error) {
	return uncenterColumns(Xc, means)
}

// Covariance returns the sample covariance of the columns, (Xcᵀ Xc)/(r-1),
// and the means used for centering. Requires r ≥ 2.
func Covariance(X Matrix) (Matrix, []float64, error) {
	return covarianceDDOF(X, ddofSample, opCovariance)
}

// PopulationCovariance returns (Xcᵀ Xc)/r and the column means. Requires r ≥ 1.
func PopulationCovariance(X Matrix) (Matrix, []float64, error) {
	return covarianceDDOF(X, ddofPopulation, opPopulationCovariance)
}

// StandardizeColumns z-scores each column with its sample standard deviation.
// Columns with zero deviation become zero columns. Requires r ≥ 2.
func StandardizeColumns(X Matrix) (Matrix, []float64, []float64, error) {
	return standardizeColumns(X)
}

// CenterColumnsWith subtracts the given means (for example, ones fitted on other
// data) from every column. len(means) must equal X.Cols().
func CenterColumnsWith(X Matrix, means []float64) (Matrix, error) {
	out, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, matrixErrorf(opCenterColumns, err)
	}

	return out, nil
}

// ScaleColumns multiplies column j by factors[j]. len(factors) must equal X.Cols().
func ScaleColumns(X Matrix, factors []float64) (Matrix, error) {
	for _, f := range factors {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, matrixErrorf(opScaleCols, ErrNaNInf)
		}
	}
	return ewScaleCols(X, factors)
}
