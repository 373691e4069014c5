// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Spectral helpers on top of Eigen: descending sort, sign canonicalization,
//     the thin SVD and its reconstruction, orthonormality measurement.
//
// SVD method:
//   - For tall or square M (r ≥ c): eigen-decompose G = MᵀM, order λ descending,
//     σ_i = sqrt(max(λ_i,0)), V = eigenvectors, u_i = M·v_i / σ_i.
//   - Eigenvalues under rankTol·λ_max give σ_i = 0; their u_i come from
//     Gram–Schmidt over the canonical basis, so U keeps orthonormal columns
//     on rank-deficient input.
//   - Wide M (r < c) factorizes Mᵀ and swaps the factors.
//
// Determinism:
//   - Stable index sort; first-largest entry wins sign ties; basis vectors tried in order.

package matrix

import (
	"math"
	"sort"
)

const (
	opSortEigen    = "SortEigenDescending"
	opCanonSigns   = "CanonicalizeSigns"
	opSVD          = "SVD"
	opReconstruct  = "Reconstruct"
	opOrthoDev     = "OrthonormalDeviation"
	opNewDiag      = "NewDiag"
	completionNorm = 1e-8 // minimum residual norm accepted during basis completion
)

// SortEigenDescending reorders eigenpairs so values are non-increasing.
// vecs holds eigenvectors in columns (as returned by Eigen); inputs are not mutated.
// Ties keep their original relative order.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(vals) != vecs.Cols()).
// Complexity: Time O(n log n + n^2), Space O(n^2).
func SortEigenDescending(vals []float64, vecs Matrix) ([]float64, Matrix, error) {
	if err := ValidateNotNil(vecs); err != nil {
		return nil, nil, matrixErrorf(opSortEigen, err)
	}
	if err := ValidateVecLen(vals, vecs.Cols()); err != nil {
		return nil, nil, matrixErrorf(opSortEigen, err)
	}
	src, err := denseCopy(vecs)
	if err != nil {
		return nil, nil, matrixErrorf(opSortEigen, err)
	}

	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

	outVals := make([]float64, n)
	out, err := NewDense(src.r, src.c)
	if err != nil {
		return nil, nil, matrixErrorf(opSortEigen, err)
	}
	var i, dst int
	for dst = 0; dst < n; dst++ {
		outVals[dst] = vals[order[dst]]
		for i = 0; i < src.r; i++ {
			out.data[i*src.c+dst] = src.data[i*src.c+order[dst]]
		}
	}

	return outVals, out, nil
}

// CanonicalizeSigns flips every column whose largest-magnitude entry is negative.
// The first entry wins among equal magnitudes. An all-zero column is left as is.
// Complexity: Time O(r*c), Space O(r*c).
func CanonicalizeSigns(q Matrix) (Matrix, error) {
	out, err := denseCopy(q)
	if err != nil {
		return nil, matrixErrorf(opCanonSigns, err)
	}
	var i, j, pick int
	var best, a float64
	for j = 0; j < out.c; j++ {
		best, pick = -1, 0
		for i = 0; i < out.r; i++ {
			a = math.Abs(out.data[i*out.c+j])
			if a > best {
				best, pick = a, i
			}
		}
		if out.data[pick*out.c+j] >= 0 {
			continue
		}
		for i = 0; i < out.r; i++ {
			out.data[i*out.c+j] = -out.data[i*out.c+j]
		}
	}

	return out, nil
}

// NewDiag returns the square matrix with vals on the diagonal.
// Errors: ErrInvalidDimensions (empty vals), ErrNaNInf.
func NewDiag(vals []float64) (*Dense, error) {
	n := len(vals)
	d, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opNewDiag, err)
	}
	for i, v := range vals {
		if err = d.Set(i, i, v); err != nil {
			return nil, matrixErrorf(opNewDiag, err)
		}
	}

	return d, nil
}

// SVD computes the thin singular value decomposition M = U·diag(S)·Vᵀ.
//
// Returns (k = min(r,c)):
//   - U: r×k with orthonormal columns.
//   - S: k singular values, non-increasing, non-negative.
//   - V: c×k with orthonormal columns (right singular vectors).
//
// Options: WithEpsilon (Jacobi tolerance, scaled by max|MᵀM|), WithMaxIter,
// WithRankTolerance.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(r*c^2 + maxIter*c), Space O(r*c + c^2).
func SVD(m Matrix, opts ...Option) (Matrix, []float64, Matrix, error) {
	if err := ValidateFinite(m); err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}
	cfg := gatherOptions(opts...)

	if m.Rows() < m.Cols() {
		mt, err := Transpose(m)
		if err != nil {
			return nil, nil, nil, matrixErrorf(opSVD, err)
		}
		u, s, v, err := svdTall(mt, cfg)
		if err != nil {
			return nil, nil, nil, matrixErrorf(opSVD, err)
		}

		return v, s, u, nil
	}

	u, s, v, err := svdTall(m, cfg)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}

	return u, s, v, nil
}

// svdTall implements SVD for r ≥ c.
func svdTall(m Matrix, cfg Options) (*Dense, []float64, *Dense, error) {
	md, err := denseCopy(m)
	if err != nil {
		return nil, nil, nil, err
	}
	r, c := md.r, md.c

	// Stage 1: Gram matrix G = MᵀM (exactly symmetric: same k order for G[i,j] and G[j,i]).
	mt, err := Transpose(md)
	if err != nil {
		return nil, nil, nil, err
	}
	g, err := Mul(mt, md)
	if err != nil {
		return nil, nil, nil, err
	}

	// Stage 2: eigenpairs, descending, canonical signs.
	scale := 1.0
	for _, v := range g.(*Dense).data {
		scale = math.Max(scale, math.Abs(v))
	}
	vals, q, err := Eigen(g, cfg.eps*scale, cfg.maxIter)
	if err != nil {
		return nil, nil, nil, err
	}
	vals, q, err = SortEigenDescending(vals, q)
	if err != nil {
		return nil, nil, nil, err
	}
	if q, err = CanonicalizeSigns(q); err != nil {
		return nil, nil, nil, err
	}
	v := q.(*Dense)

	// Stage 3: σ and the left vectors; λ_j ≤ rankTol·λ_max counts as zero.
	s := make([]float64, c)
	cutoff := cfg.rankTol * math.Max(vals[0], 0)
	for j := 0; j < c; j++ {
		if vals[j] > cutoff && vals[j] > 0 {
			s[j] = math.Sqrt(vals[j])
		}
	}

	u, err := NewDense(r, c)
	if err != nil {
		return nil, nil, nil, err
	}
	filled := make([]bool, c)
	var i, j, k int
	var acc float64
	for j = 0; j < c; j++ {
		if s[j] == 0 {
			continue
		}
		for i = 0; i < r; i++ {
			acc = 0
			for k = 0; k < c; k++ {
				acc += md.data[i*c+k] * v.data[k*c+j]
			}
			u.data[i*c+j] = acc / s[j]
		}
		orthonormalizeColumn(u, j, filled)
		filled[j] = true
	}

	// Stage 4: complete the null-space columns.
	for j = 0; j < c; j++ {
		if !filled[j] {
			completeColumn(u, j, filled)
			filled[j] = true
		}
	}

	return u, s, v, nil
}

// orthonormalizeColumn removes from column j its projections on the filled
// columns (modified Gram–Schmidt) and normalizes it. Returns the residual norm;
// the column is left unnormalized when that norm is at most completionNorm.
func orthonormalizeColumn(u *Dense, j int, filled []bool) float64 {
	r, c := u.r, u.c
	var i, k int
	var dot, norm float64
	for k = 0; k < c; k++ {
		if !filled[k] {
			continue
		}
		dot = 0
		for i = 0; i < r; i++ {
			dot += u.data[i*c+j] * u.data[i*c+k]
		}
		for i = 0; i < r; i++ {
			u.data[i*c+j] -= dot * u.data[i*c+k]
		}
	}
	norm = 0
	for i = 0; i < r; i++ {
		norm += u.data[i*c+j] * u.data[i*c+j]
	}
	norm = math.Sqrt(norm)
	if norm > completionNorm {
		for i = 0; i < r; i++ {
			u.data[i*c+j] /= norm
		}
	}

	return norm
}

// completeColumn fills column j of u with the first canonical basis vector
// that survives orthonormalizeColumn against the filled columns.
func completeColumn(u *Dense, j int, filled []bool) {
	var i, e int
	for e = 0; e < u.r; e++ {
		for i = 0; i < u.r; i++ {
			u.data[i*u.c+j] = 0
		}
		u.data[e*u.c+j] = 1
		if orthonormalizeColumn(u, j, filled) > completionNorm {
			return
		}
	}
}

// Reconstruct returns U·diag(S)·Vᵀ.
// Errors: ErrNilMatrix, ErrDimensionMismatch (U.Cols, len(S), V.Cols disagree).
func Reconstruct(u Matrix, s []float64, v Matrix) (Matrix, error) {
	if err := ValidateNotNil(u); err != nil {
		return nil, matrixErrorf(opReconstruct, err)
	}
	if err := ValidateNotNil(v); err != nil {
		return nil, matrixErrorf(opReconstruct, err)
	}
	if len(s) != u.Cols() || len(s) != v.Cols() {
		return nil, matrixErrorf(opReconstruct, ErrDimensionMismatch)
	}
	us, err := ewScaleCols(u, s)
	if err != nil {
		return nil, matrixErrorf(opReconstruct, err)
	}
	vt, err := Transpose(v)
	if err != nil {
		return nil, matrixErrorf(opReconstruct, err)
	}
	out, err := Mul(us, vt)
	if err != nil {
		return nil, matrixErrorf(opReconstruct, err)
	}

	return out, nil
}

// OrthonormalDeviation returns max |QᵀQ − I|, i.e. how far the columns of q are
// from an orthonormal set. Zero means exactly orthonormal.
func OrthonormalDeviation(q Matrix) (float64, error) {
	qt, err := Transpose(q)
	if err != nil {
		return 0, matrixErrorf(opOrthoDev, err)
	}
	g, err := Mul(qt, q)
	if err != nil {
		return 0, matrixErrorf(opOrthoDev, err)
	}
	id, err := NewIdentity(q.Cols())
	if err != nil {
		return 0, matrixErrorf(opOrthoDev, err)
	}
	dev, err := ewMaxAbsDiff(g, id)
	if err != nil {
		return 0, matrixErrorf(opOrthoDev, err)
	}

	return dev, nil
}
