// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelpers_InterfaceHiding_Fallback ensures hide{} defeats the *Dense fast path
// while producing identical results.
func TestHelpers_InterfaceHiding_Fallback(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 4, 3, 11)
	b := RandFilledDense(t, 3, 5, 12)

	_, isDense := matrix.Matrix(hide{a}).(*matrix.Dense)
	require.False(t, isDense)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	CompareClose(t, fast, slow, 0, 1e-15)
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 2, 2, []float64{10, 20, 30, 40})

	for _, tc := range []struct {
		name string
		x, y matrix.Matrix
	}{
		{"fast", a, b},
		{"fallback", hide{a}, b},
	} {
		sum, err := matrix.Add(tc.x, tc.y)
		require.NoError(t, err, tc.name)
		CompareExact(t, [][]float64{{11, 22}, {33, 44}}, sum)

		diff, err := matrix.Sub(tc.y, tc.x)
		require.NoError(t, err, tc.name)
		CompareExact(t, [][]float64{{9, 18}, {27, 36}}, diff)
	}

	_, err := matrix.Add(a, MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	t.Parallel()

	// [2×3]·[3×2]
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})
	want := [][]float64{{58, 64}, {139, 154}}

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareExact(t, want, got)

	got, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	CompareExact(t, want, got)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestTranspose_Involution_NoMutation: (Aᵀ)ᵀ == A and A is untouched.
func TestTranspose_Involution_NoMutation(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	orig := a.Clone()

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)

	slow, err := matrix.Transpose(hide{a})
	require.NoError(t, err)
	CompareClose(t, at, slow, 0, 0)

	att, err := matrix.Transpose(at)
	require.NoError(t, err)
	CompareClose(t, att, a, 0, 0)
	CompareClose(t, a, orig, 0, 0)

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScale(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, -2, 3, -4})
	got, err := matrix.Scale(hide{a}, -0.5)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-0.5, 1}, {-1.5, 2}}, got)

	_, err = matrix.Scale(a, math.NaN())
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	for _, m := range []matrix.Matrix{a, hide{a}} {
		y, err := matrix.MatVec(m, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 7}, y)
	}

	_, err := matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
