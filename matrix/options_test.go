// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
)

// TestDefaultOptions_Documented verifies that NewOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewOptions()
	if o.Epsilon() != matrix.DefaultEpsilon {
		t.Fatalf("eps default mismatch: got %v, want %v", o.Epsilon(), matrix.DefaultEpsilon)
	}
	if o.MaxIter() != matrix.DefaultMaxIter {
		t.Fatalf("maxIter default mismatch: got %v, want %v", o.MaxIter(), matrix.DefaultMaxIter)
	}
	if o.RankTolerance() != matrix.DefaultRankTolerance {
		t.Fatalf("rankTol default mismatch: got %v, want %v", o.RankTolerance(), matrix.DefaultRankTolerance)
	}
}

// TestOptions_LastWinsAndNilSkipped ensures the order rule and nil tolerance.
func TestOptions_LastWinsAndNilSkipped(t *testing.T) {
	o := matrix.NewOptions(matrix.WithMaxIter(3), nil, matrix.WithMaxIter(7), matrix.WithEpsilon(1e-9))
	if o.MaxIter() != 7 {
		t.Fatalf("last-writer-wins failed: maxIter=%d, want 7", o.MaxIter())
	}
	if o.Epsilon() != 1e-9 {
		t.Fatalf("eps=%v, want 1e-9", o.Epsilon())
	}
	if o = matrix.NewOptions(matrix.WithRankTolerance(0)); o.RankTolerance() != 0 {
		t.Fatalf("rankTol=%v, want 0", o.RankTolerance())
	}
}

// TestOptions_PanicOnInvalid checks that nonsensical parameters panic.
func TestOptions_PanicOnInvalid(t *testing.T) {
	ExpectPanic(t, func() { matrix.WithEpsilon(-1) })
	ExpectPanic(t, func() { matrix.WithEpsilon(math.NaN()) })
	ExpectPanic(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	ExpectPanic(t, func() { matrix.WithMaxIter(0) })
	ExpectPanic(t, func() { matrix.WithRankTolerance(1) })
	ExpectPanic(t, func() { matrix.WithRankTolerance(math.NaN()) })
}
