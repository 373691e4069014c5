// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/stretchr/testify/require"
)

// pcaExample is the 6×2 walkthrough data, row-major.
var pcaExample = []float64{
	-1, -1,
	-2, -1,
	-3, -2,
	1, 1,
	2, 1,
	3, 2,
}

// hide{X} is a Matrix that is not a *Dense, so kernels take their
// interface path.
type hide struct{ matrix.Matrix }

func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	return m
}

// NewFilledDense builds an r×c matrix from row-major vals.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)
	return m
}

// RandFilledDense fills an r×c matrix with uniform values in [-1, 1) from seed.
func RandFilledDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = 2*rng.Float64() - 1
	}
	return NewFilledDense(t, r, c, vals)
}

func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)
	return v
}

// CompareExact requires m to hold exactly the values in want.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i, row := range want {
		require.Equal(t, len(row), m.Cols(), "cols of row %d", i)
		for j, w := range row {
			require.Equal(t, w, MustAt(t, m, i, j), "m[%d,%d]", i, j)
		}
	}
}

// CompareClose requires matrix.AllClose(a, b, rtol, atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "not close (rtol=%g atol=%g)\ngot:\n%v\nwant:\n%v", rtol, atol, a, b)
}

func sliceClose(t *testing.T, got, want []float64, rtol, atol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for k := range got {
		require.LessOrEqual(t, math.Abs(got[k]-want[k]), atol+rtol*math.Abs(want[k]),
			"index %d: got %g want %g", k, got[k], want[k])
	}
}

func ExpectPanic(t *testing.T, fn func()) {
	t.Helper()
	require.Panics(t, fn)
}

// propOrthonormal requires max|QᵀQ - I| ≤ tol.
func propOrthonormal(t *testing.T, q matrix.Matrix, tol float64) {
	t.Helper()
	dev, err := matrix.OrthonormalDeviation(q)
	require.NoError(t, err)
	require.LessOrEqual(t, dev, tol, "QᵀQ deviates from I")
}

// propEigenEquation requires A·q_j ≈ λ_j·q_j for every column q_j.
func propEigenEquation(t *testing.T, a matrix.Matrix, vals []float64, q matrix.Matrix, tol float64) {
	t.Helper()
	dq, ok := q.(*matrix.Dense)
	require.True(t, ok)
	for j := range vals {
		v, err := dq.Col(j)
		require.NoError(t, err)
		av, err := matrix.MatVec(a, v)
		require.NoError(t, err)
		for i := range v {
			require.InDelta(t, vals[j]*v[i], av[i], tol, "column %d row %d", j, i)
		}
	}
}
