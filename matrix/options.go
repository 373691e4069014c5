// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for iterative kernels and the
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import (
	"fmt"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the Jacobi convergence threshold on the largest
	// off-diagonal magnitude, and the symmetry tolerance for Eigen inputs.
	DefaultEpsilon = 1e-12

	// DefaultMaxIter caps the number of Jacobi rotations.
	DefaultMaxIter = 500

	// DefaultRankTolerance is the relative cutoff on eigenvalues of MᵀM (times the
	// largest one) at or below which SVD reports a zero singular value.
	DefaultRankTolerance = 1e-10

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// Panic messages for invalid option parameters.
const (
	panicEpsilon = "matrix: WithEpsilon requires a finite eps >= 0, got %v"
	panicMaxIter = "matrix: WithMaxIter requires n > 0, got %d"
	panicRankTol = "matrix: WithRankTolerance requires a finite tol in [0,1), got %v"
)

// Option mutates Options during gatherOptions.
type Option func(*Options)

// Options holds resolved settings for iterative kernels (Eigen-backed SVD).
// Fields are unexported; use the WithX constructors.
type Options struct {
	eps     float64
	maxIter int
	rankTol float64
}

// Epsilon returns the resolved convergence tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// MaxIter returns the resolved rotation cap.
func (o Options) MaxIter() int { return o.maxIter }

// RankTolerance returns the resolved relative rank cutoff.
func (o Options) RankTolerance() float64 { return o.rankTol }

// WithEpsilon sets the convergence/symmetry tolerance.
// Panics when eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf(panicEpsilon, eps))
	}

	return func(o *Options) { o.eps = eps }
}

// WithMaxIter sets the Jacobi rotation cap. Panics when n <= 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf(panicMaxIter, n))
	}

	return func(o *Options) { o.maxIter = n }
}

// WithRankTolerance sets the relative cutoff for zero singular values.
// Panics when tol is outside [0,1) or non-finite.
func WithRankTolerance(tol float64) Option {
	if tol < 0 || tol >= 1 || math.IsNaN(tol) {
		panic(fmt.Sprintf(panicRankTol, tol))
	}

	return func(o *Options) { o.rankTol = tol }
}

// NewOptions resolves opts over the defaults; exported for callers that need
// to inspect the effective configuration.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:     DefaultEpsilon,
		maxIter: DefaultMaxIter,
		rankTol: DefaultRankTolerance,
	}
}

// gatherOptions applies user options in order (last wins); nil options are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
