// SPDX-License-Identifier: MIT
// Package matrix - square factorizations: Jacobi Eigen, LU with partial pivoting, Inverse.

package matrix

import "math"

const (
	opEigen   = "Eigen"
	opLU      = "LU"
	opInverse = "Inverse"
)

// Eigen diagonalizes a symmetric matrix with classical Jacobi rotations.
//
// Each sweep finds the off-diagonal entry of largest magnitude (first one in
// i→j order on ties) and rotates it to zero, folding the rotation into the
// eigenvector matrix. Iteration stops once every off-diagonal entry is below
// tol; running out of maxIter rotations first is ErrMatrixEigenFailed.
//
// The returned eigenvalues are in diagonal order, not sorted; column j of the
// returned matrix is the unit eigenvector for eigenvalue j. See
// SortEigenDescending and CanonicalizeSigns for the PCA ordering.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (tol), ErrAsymmetry,
// ErrMatrixEigenFailed.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	tol, _ = ValidateTolerance(tol)

	a, err := denseCopy(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	v, err := NewIdentity(a.r)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	for rotations := 0; ; rotations++ {
		p, q, largest := a.largestOffDiagonal()
		if largest < tol {
			break
		}
		if rotations >= maxIter {
			return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
		}
		a.jacobiRotate(v, p, q)
	}

	vals := make([]float64, a.r)
	for i := range vals {
		vals[i] = a.data[i*a.c+i]
	}
	return vals, v, nil
}

// largestOffDiagonal scans the strict upper triangle of a square matrix.
func (m *Dense) largestOffDiagonal() (p, q int, largest float64) {
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if x := math.Abs(m.data[i*n+j]); x > largest {
				p, q, largest = i, j, x
			}
		}
	}
	return p, q, largest
}

// jacobiRotate zeroes m[p,q] (and m[q,p]) with a plane rotation and applies
// the same rotation to the columns p, q of v.
func (m *Dense) jacobiRotate(v *Dense, p, q int) {
	n := m.r
	app, aqq, apq := m.data[p*n+p], m.data[q*n+q], m.data[p*n+q]

	// Smaller root of t² + 2θt - 1 = 0; θ == 0 gives a 45° rotation.
	theta := (aqq - app) / (2 * apq)
	t := 1 / (math.Abs(theta) + math.Hypot(theta, 1))
	if theta < 0 {
		t = -t
	}
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	for k := 0; k < n; k++ {
		if k == p || k == q {
			continue
		}
		akp, akq := m.data[k*n+p], m.data[k*n+q]
		m.data[k*n+p] = c*akp - s*akq
		m.data[p*n+k] = m.data[k*n+p]
		m.data[k*n+q] = s*akp + c*akq
		m.data[q*n+k] = m.data[k*n+q]
	}
	m.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
	m.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
	m.data[p*n+q], m.data[q*n+p] = 0, 0

	for k := 0; k < n; k++ {
		vkp, vkq := v.data[k*n+p], v.data[k*n+q]
		v.data[k*n+p] = c*vkp - s*vkq
		v.data[k*n+q] = s*vkp + c*vkq
	}
}

// LU factors the rows of m, reordered by perm, as L·U: row i of L·U is row
// perm[i] of m. L has a unit diagonal and U is upper triangular.
//
// Each column takes the remaining row with the largest magnitude as its pivot
// (the first such row on ties), so ErrSingular means every candidate in some
// column is exactly zero.
func LU(m Matrix) (Matrix, Matrix, []int, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	// a holds U above the diagonal and the L multipliers below it.
	a, err := denseCopy(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	n := a.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a.data[i*n+k]) > math.Abs(a.data[p*n+k]) {
				p = i
			}
		}
		if a.data[p*n+k] == 0 {
			return nil, nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			a.swapRows(p, k)
			perm[p], perm[k] = perm[k], perm[p]
		}

		pivot := a.data[k*n+k]
		for i := k + 1; i < n; i++ {
			f := a.data[i*n+k] / pivot
			a.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	for i := 0; i < n; i++ {
		copy(l.data[i*n:i*n+i], a.data[i*n:i*n+i])
		copy(u.data[i*n+i:(i+1)*n], a.data[i*n+i:(i+1)*n])
	}
	return l, u, perm, nil
}

func (m *Dense) swapRows(i, j int) {
	ri, rj := m.data[i*m.c:(i+1)*m.c], m.data[j*m.c:(j+1)*m.c]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// Inverse returns m⁻¹ by solving L·U·x = P·e_j for each unit vector e_j.
// Errors are those of LU.
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	lm, um, perm, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	l, u := lm.(*Dense), um.(*Dense)
	n := l.r

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	y := make([]float64, n)
	for col := 0; col < n; col++ {
		// L·y = P·e_col
		for i := 0; i < n; i++ {
			var rhs float64
			if perm[i] == col {
				rhs = 1
			}
			for k := 0; k < i; k++ {
				rhs -= l.data[i*n+k] * y[k]
			}
			y[i] = rhs
		}
		// U·x = y, written straight into column col
		for i := n - 1; i >= 0; i-- {
			rhs := y[i]
			for k := i + 1; k < n; k++ {
				rhs -= u.data[i*n+k] * inv.data[k*n+col]
			}
			inv.data[i*n+col] = rhs / u.data[i*n+i]
		}
	}
	return inv, nil
}
