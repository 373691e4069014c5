// SPDX-License-Identifier: MIT
// Package pca defines the principal component analysis model, its solvers
// and configuration options.
//
// A Model is fitted on an n×d data matrix X (rows are samples, columns are
// features). Fitting centers X (and optionally z-scores it), finds the
// principal axes, and keeps the first k of them in descending order of
// explained variance.
//
// Solvers:
//
//	– SolverLibrary: gonum's stat.PC (SVD of the centered data inside gonum).
//	– SolverEigen:   Jacobi eigen-decomposition of the sample covariance matrix.
//	– SolverSVD:     the matrix package's thin SVD of the centered data.
//
// All solvers agree up to tolerance: every component is sign-canonicalized so
// its largest-magnitude loading is positive.
//
// Complexity (n samples, d features):
//
//	– Eigen: O(n·d² + maxIter·d).
//	– SVD:   O(n·d² + maxIter·d) (Gram matrix route).
//	– Transform / InverseTransform: O(n·d·k).
//
// Options:
//
//	– Components:  number of components k; 0 means min(n, d).
//	– Solver:      which solver computes the axes.
//	– Whiten:      divide scores by sqrt(explained variance).
//	– Standardize: z-score every column before fitting.
//	– Tolerance:   Jacobi convergence threshold.
//	– MaxIter:     Jacobi rotation cap.
//	– Logger:      *slog.Logger for Debug traces (discard by default).
//
// Errors (sentinel):
//
//	– ErrNotFitted        Transform/InverseTransform before Fit.
//	– ErrFeatureMismatch  input column count differs from the fitted one.
//	– ErrBadComponents    k < 0 or k > min(n, d).
//	– ErrTooFewSamples    fewer than two rows.
//	– ErrLibraryFailed    gonum refused the decomposition.
//
// Example usage:
//
//	m := pca.New(pca.WithComponents(2), pca.WithSolver(pca.SolverEigen))
//	scores, err := m.FitTransform(X)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.ExplainedVarianceRatio())
package pca

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/lvpca/matrix"
)

// Sentinel errors returned by the pca package.
var (
	// ErrNotFitted indicates use of a Model before a successful Fit.
	ErrNotFitted = errors.New("pca: model is not fitted")

	// ErrFeatureMismatch indicates that the input column count differs from
	// the number of features seen during Fit (or k for InverseTransform).
	ErrFeatureMismatch = errors.New("pca: feature count mismatch")

	// ErrBadComponents indicates a component count outside [0, min(n, d)].
	ErrBadComponents = errors.New("pca: invalid number of components")

	// ErrTooFewSamples indicates fewer than two samples (sample variance undefined).
	ErrTooFewSamples = errors.New("pca: need at least two samples")

	// ErrLibraryFailed indicates that gonum's stat.PC reported failure.
	ErrLibraryFailed = errors.New("pca: library decomposition failed")

	// ErrUnknownSolver indicates an unrecognized solver name.
	ErrUnknownSolver = errors.New("pca: unknown solver")
)

// Solver selects the algorithm that computes the principal axes.
type Solver int

const (
	// SolverLibrary delegates to gonum's stat.PC.
	SolverLibrary Solver = iota

	// SolverEigen diagonalizes the sample covariance matrix with Jacobi rotations.
	SolverEigen

	// SolverSVD takes the thin SVD of the centered data.
	SolverSVD
)

var solverNames = [...]string{
	SolverLibrary: "library",
	SolverEigen:   "eigen",
	SolverSVD:     "svd",
}

// String returns the lower-case solver name used in configuration and reports.
func (s Solver) String() string {
	if s < 0 || int(s) >= len(solverNames) {
		return fmt.Sprintf("Solver(%d)", int(s))
	}
	return solverNames[s]
}

// ParseSolver maps a case-insensitive name ("library", "eigen", "svd") to a Solver.
func ParseSolver(name string) (Solver, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range solverNames {
		if n == key {
			return Solver(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
}

// Options configures a Model.
//
// Components  – number of retained components; 0 keeps min(n, d).
// Solver      – algorithm for the principal axes. Default SolverLibrary.
// Whiten      – scale scores to unit variance.
// Standardize – z-score columns before fitting (correlation PCA).
// Tolerance   – Jacobi convergence threshold. Default matrix.DefaultEpsilon.
// MaxIter     – Jacobi rotation cap. Default matrix.DefaultMaxIter.
// Logger      – Debug-level traces; never nil after DefaultOptions.
type Options struct {
	Components  int
	Solver      Solver
	Whiten      bool
	Standardize bool
	Tolerance   float64
	MaxIter     int
	Logger      *slog.Logger
}

// Option represents a functional option for configuring a Model.
type Option func(*Options)

// WithComponents sets the number of retained components (0 = all).
// Range checks happen in Fit, where n and d are known.
func WithComponents(k int) Option {
	return func(o *Options) { o.Components = k }
}

// WithSolver selects the solver. Panics on an undefined Solver value.
func WithSolver(s Solver) Option {
	if s < SolverLibrary || s > SolverSVD {
		panic(fmt.Sprintf("pca: WithSolver: %v", s))
	}
	return func(o *Options) { o.Solver = s }
}

// WithWhiten enables whitening of the projected scores.
func WithWhiten() Option {
	return func(o *Options) { o.Whiten = true }
}

// WithStandardize z-scores every feature before fitting.
func WithStandardize() Option {
	return func(o *Options) { o.Standardize = true }
}

// WithTolerance sets the Jacobi convergence threshold.
// Panics unless tol is finite and positive.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("pca: WithTolerance requires a finite tol > 0, got %v", tol))
	}
	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIter sets the Jacobi rotation cap. Panics when n <= 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("pca: WithMaxIter requires n > 0, got %d", n))
	}
	return func(o *Options) { o.MaxIter = n }
}

// WithLogger routes Debug traces to l. A nil logger keeps the discard default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns the documented defaults:
// all components, SolverLibrary, no whitening, no standardization,
// matrix.DefaultEpsilon, matrix.DefaultMaxIter, a discard logger.
func DefaultOptions() Options {
	return Options{
		Components: 0,
		Solver:     SolverLibrary,
		Tolerance:  matrix.DefaultEpsilon,
		MaxIter:    matrix.DefaultMaxIter,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
