// SPDX-License-Identifier: MIT
// Package walkthrough runs a narrated principal component analysis of a small
// matrix, side by side with the hand derivation it abbreviates.
//
// Run fits a library PCA, projects and reconstructs the data, then recomputes
// the same axes by hand twice: once from the eigen-decomposition of the
// population covariance matrix and once from the SVD of the centered data.
// Every intermediate artifact is recorded as a Step, and the identities that
// tie the three routes together are recorded as Checks.
//
// Steps (in order):
//
//	input, library-fit, transform, inverse-transform, centered, covariance,
//	eigen, manual-projection, eigvec-inverse, svd, svd-reconstruction, summary.
//
// Checks:
//
//	– orthonormal-eigenvectors  eᵢ·eⱼ = δᵢⱼ for the covariance eigenvectors.
//	– roundtrip                 InverseTransform(Transform(X)) = X.
//	– singular-eigen-relation   σⱼ = √(n·λⱼ) with λ from the population covariance.
//	– svd-reconstruction        U·Σ·Vᵀ = Xc.
//	– library-matches-manual    library axes and variances equal the eigen route.
//	– inverse-equals-transpose  V⁻¹ = Vᵀ for the eigenvector matrix.
//
// Tolerances are absolute for dimensionless quantities (dot products, axis
// loadings) and scaled by max(1, max|·|) for quantities in data units.
//
// Example usage:
//
//	rep, err := walkthrough.Run(dataset.Example())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = walkthrough.Render(os.Stdout, rep, walkthrough.RenderOptions{})
//	if !rep.Passed() {
//	    os.Exit(1)
//	}
package walkthrough

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvpca/pca"
)

// DefaultTolerance is the base tolerance for every Check.
const DefaultTolerance = 1e-10

// Sentinel errors returned by the walkthrough package.
var (
	// ErrUnknownRenderFormat indicates an unsupported report format name.
	ErrUnknownRenderFormat = errors.New("walkthrough: unknown render format")
)

// Step is one recorded stage of the walkthrough.
type Step struct {
	Name     string        `json:"name" yaml:"name"`
	Title    string        `json:"title" yaml:"title"`
	Note     string        `json:"note,omitempty" yaml:"note,omitempty"`
	Matrices []NamedMatrix `json:"matrices,omitempty" yaml:"matrices,omitempty"`
	Vectors  []NamedVector `json:"vectors,omitempty" yaml:"vectors,omitempty"`
}

// NamedMatrix is a labeled artifact, stored row-major.
type NamedMatrix struct {
	Label string      `json:"label" yaml:"label"`
	Rows  [][]float64 `json:"rows" yaml:"rows,flow"`
}

// NamedVector is a labeled list of scalars.
type NamedVector struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values,flow"`
}

// Check is the outcome of one numerical identity.
type Check struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	MaxError    float64 `json:"max_error" yaml:"max_error"`
	Tolerance   float64 `json:"tolerance" yaml:"tolerance"`
	Passed      bool    `json:"passed" yaml:"passed"`
}

// Report is everything Run produced.
type Report struct {
	Samples   int     `json:"samples" yaml:"samples"`
	Features  int     `json:"features" yaml:"features"`
	Solver    string  `json:"solver" yaml:"solver"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Steps     []Step  `json:"steps" yaml:"steps"`
	Checks    []Check `json:"checks" yaml:"checks"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the checks that did not pass, in report order.
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Step returns the step with the given name, or false.
func (r *Report) Step(name string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Check returns the check with the given name, or false.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Options configures Run.
//
// Tolerance – base tolerance for every Check. Default DefaultTolerance.
// Solver    – solver used for the library side. Default pca.SolverLibrary.
// Logger    – Debug traces of steps and checks; discard by default.
type Options struct {
	Tolerance float64
	Solver    pca.Solver
	Logger    *slog.Logger
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithTolerance sets the base check tolerance. Panics unless tol is finite and positive.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("walkthrough: WithTolerance requires a finite tol > 0, got %v", tol))
	}
	return func(o *Options) { o.Tolerance = tol }
}

// WithSolver picks the solver behind the library-fit step. Panics on an undefined Solver value.
func WithSolver(s pca.Solver) Option {
	if _, err := pca.ParseSolver(s.String()); err != nil {
		panic(fmt.Sprintf("walkthrough: WithSolver: %v", err))
	}
	return func(o *Options) { o.Solver = s }
}

// WithLogger routes Debug traces to l. A nil logger keeps the discard default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns DefaultTolerance, pca.SolverLibrary and a discard logger.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		Solver:    pca.SolverLibrary,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
