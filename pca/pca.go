// SPDX-License-Identifier: MIT
// Package pca - the Model: Fit, Transform, InverseTransform and accessors.

package pca

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/katalvlaran/lvpca/matrix"
)

// Model is a principal component analysis fitted on an n×d matrix.
// The zero value is not usable; construct with New.
type Model struct {
	opts Options

	fitted  bool
	n, d, k int

	mean       []float64     // per-feature means, len d
	scale      []float64     // per-feature stds (1 for constant columns); nil unless Standardize
	components *matrix.Dense // k×d, row i is the i-th principal axis
	variance   []float64     // len k, sample variance along each axis
	ratio      []float64     // len k, variance / total variance
	singular   []float64     // len k, singular values of the preprocessed data
	noise      float64       // mean variance of the discarded axes
}

// New returns an unfitted Model configured by opts over DefaultOptions.
func New(opts ...Option) *Model {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return &Model{opts: o}
}

// Fit learns the mean, optional scale and principal axes of X.
//
// Implementation:
//   - Stage 1: Validate X (finite, n ≥ 2) and resolve k against min(n, d).
//   - Stage 2: Center (or z-score) X.
//   - Stage 3: Run the configured solver for the full spectrum; canonicalize signs.
//   - Stage 4: Keep the first k axes; derive ratios, singular values, noise variance.
//
// Errors:
//   - ErrTooFewSamples, ErrBadComponents, ErrLibraryFailed, matrix sentinels.
//
// A failed Fit leaves a previously fitted Model unchanged.
func (m *Model) Fit(X matrix.Matrix) error {
	if err := matrix.ValidateFinite(X); err != nil {
		return fmt.Errorf("pca: Fit: %w", err)
	}
	n, d := X.Rows(), X.Cols()
	if n < 2 {
		return fmt.Errorf("pca: Fit: n=%d: %w", n, ErrTooFewSamples)
	}
	full := min(n, d)
	k := m.opts.Components
	if k == 0 {
		k = full
	}
	if k < 0 || k > full {
		return fmt.Errorf("pca: Fit: k=%d with min(n,d)=%d: %w", m.opts.Components, full, ErrBadComponents)
	}

	xc, mean, scale, err := m.preprocess(X)
	if err != nil {
		return fmt.Errorf("pca: Fit: %w", err)
	}

	solve, err := solverFor(m.opts.Solver)
	if err != nil {
		return fmt.Errorf("pca: Fit: %w", err)
	}
	sp, err := solve(xc, m.opts)
	if err != nil {
		return fmt.Errorf("pca: Fit(%s): %w", m.opts.Solver, err)
	}
	axes, err := matrix.CanonicalizeSigns(sp.axes)
	if err != nil {
		return fmt.Errorf("pca: Fit: %w", err)
	}

	components, err := matrix.NewDense(k, d)
	if err != nil {
		return fmt.Errorf("pca: Fit: %w", err)
	}
	var v float64
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			v, _ = axes.At(j, i)
			_ = components.Set(i, j, v)
		}
	}

	var total float64
	for _, ev := range sp.variance {
		total += ev
	}
	variance := slices.Clone(sp.variance[:k])
	ratio := make([]float64, k)
	singular := make([]float64, k)
	for i, ev := range variance {
		if total > 0 {
			ratio[i] = ev / total
		}
		singular[i] = math.Sqrt(ev * float64(n-1))
	}
	var noise float64
	if rest := sp.variance[k:]; len(rest) > 0 {
		for _, ev := range rest {
			noise += ev
		}
		noise /= float64(len(rest))
	}

	m.fitted = true
	m.n, m.d, m.k = n, d, k
	m.mean, m.scale = mean, scale
	m.components = components
	m.variance, m.ratio, m.singular, m.noise = variance, ratio, singular, noise

	m.opts.Logger.Debug("pca fitted",
		slog.String("solver", m.opts.Solver.String()),
		slog.Int("samples", n),
		slog.Int("features", d),
		slog.Int("components", k),
		slog.Bool("whiten", m.opts.Whiten),
		slog.Bool("standardize", m.opts.Standardize),
		slog.Any("explained_variance", variance),
	)

	return nil
}

// FitTransform fits X and returns its projection onto the principal axes.
func (m *Model) FitTransform(X matrix.Matrix) (matrix.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// Transform projects X (n'×d) onto the fitted axes, returning n'×k scores.
// Errors: ErrNotFitted, ErrFeatureMismatch, matrix sentinels.
func (m *Model) Transform(X matrix.Matrix) (matrix.Matrix, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("pca: Transform: %w", err)
	}
	if X.Cols() != m.d {
		return nil, fmt.Errorf("pca: Transform: got %d features, fitted %d: %w", X.Cols(), m.d, ErrFeatureMismatch)
	}

	xp, err := matrix.CenterColumnsWith(X, m.mean)
	if err != nil {
		return nil, fmt.Errorf("pca: Transform: %w", err)
	}
	if m.scale != nil {
		if xp, err = matrix.ScaleColumns(xp, reciprocals(m.scale)); err != nil {
			return nil, fmt.Errorf("pca: Transform: %w", err)
		}
	}
	ct, err := matrix.Transpose(m.components)
	if err != nil {
		return nil, fmt.Errorf("pca: Transform: %w", err)
	}
	z, err := matrix.Mul(xp, ct)
	if err != nil {
		return nil, fmt.Errorf("pca: Transform: %w", err)
	}
	if m.opts.Whiten {
		if z, err = matrix.ScaleColumns(z, reciprocals(m.whitenScale())); err != nil {
			return nil, fmt.Errorf("pca: Transform: %w", err)
		}
	}

	return z, nil
}

// InverseTransform maps n'×k scores back to the original n'×d feature space.
// With k = min(n, d) this inverts Transform up to round-off.
// Errors: ErrNotFitted, ErrFeatureMismatch, matrix sentinels.
func (m *Model) InverseTransform(Z matrix.Matrix) (matrix.Matrix, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := matrix.ValidateNotNil(Z); err != nil {
		return nil, fmt.Errorf("pca: InverseTransform: %w", err)
	}
	if Z.Cols() != m.k {
		return nil, fmt.Errorf("pca: InverseTransform: got %d components, fitted %d: %w", Z.Cols(), m.k, ErrFeatureMismatch)
	}

	var err error
	z := Z
	if m.opts.Whiten {
		if z, err = matrix.ScaleColumns(z, m.whitenScale()); err != nil {
			return nil, fmt.Errorf("pca: InverseTransform: %w", err)
		}
	}
	xp, err := matrix.Mul(z, m.components)
	if err != nil {
		return nil, fmt.Errorf("pca: InverseTransform: %w", err)
	}
	if m.scale != nil {
		if xp, err = matrix.ScaleColumns(xp, m.scale); err != nil {
			return nil, fmt.Errorf("pca: InverseTransform: %w", err)
		}
	}
	x, err := matrix.UncenterColumns(xp, m.mean)
	if err != nil {
		return nil, fmt.Errorf("pca: InverseTransform: %w", err)
	}

	return x, nil
}

// preprocess centers X, or z-scores it when Standardize is set.
// Constant columns get scale 1 so Transform and InverseTransform stay inverse.
func (m *Model) preprocess(X matrix.Matrix) (matrix.Matrix, []float64, []float64, error) {
	if !m.opts.Standardize {
		xc, mean, err := matrix.CenterColumns(X)
		return xc, mean, nil, err
	}
	z, mean, stds, err := matrix.StandardizeColumns(X)
	if err != nil {
		return nil, nil, nil, err
	}
	for j, s := range stds {
		if s == 0 {
			stds[j] = 1
		}
	}

	return z, mean, stds, nil
}

// whitenScale returns sqrt(variance) per component, 1 for null directions.
func (m *Model) whitenScale() []float64 {
	out := make([]float64, m.k)
	for i, ev := range m.variance {
		out[i] = 1
		if ev > 0 {
			out[i] = math.Sqrt(ev)
		}
	}
	return out
}

func reciprocals(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 1 / x
	}
	return out
}

// ---------- accessors (copies; nil/zero before Fit) ----------

// Fitted reports whether Fit has succeeded at least once.
func (m *Model) Fitted() bool { return m.fitted }

// Components returns the k×d matrix whose rows are the principal axes.
func (m *Model) Components() *matrix.Dense {
	if !m.fitted {
		return nil
	}
	return m.components.Clone().(*matrix.Dense)
}

// ExplainedVariance returns the sample variance captured by each component.
func (m *Model) ExplainedVariance() []float64 { return slices.Clone(m.variance) }

// ExplainedVarianceRatio returns each component's share of the total variance.
func (m *Model) ExplainedVarianceRatio() []float64 { return slices.Clone(m.ratio) }

// SingularValues returns the singular values of the preprocessed training data.
func (m *Model) SingularValues() []float64 { return slices.Clone(m.singular) }

// Mean returns the per-feature training means.
func (m *Model) Mean() []float64 { return slices.Clone(m.mean) }

// Scale returns the per-feature standard deviations, or nil without Standardize.
func (m *Model) Scale() []float64 { return slices.Clone(m.scale) }

// NoiseVariance returns the mean variance of the discarded components (0 when k = min(n, d)).
func (m *Model) NoiseVariance() float64 { return m.noise }

// NComponents returns the fitted number of components k.
func (m *Model) NComponents() int { return m.k }

// NSamples returns the number of training rows.
func (m *Model) NSamples() int { return m.n }

// NFeatures returns the number of training columns.
func (m *Model) NFeatures() int { return m.d }

// Solver returns the configured solver.
func (m *Model) Solver() Solver { return m.opts.Solver }
