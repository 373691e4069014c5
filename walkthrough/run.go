// SPDX-License-Identifier: MIT

package walkthrough

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/pca"
)

// Step names, in execution order.
const (
	StepInput            = "input"
	StepLibraryFit       = "library-fit"
	StepTransform        = "transform"
	StepInverseTransform = "inverse-transform"
	StepCentered         = "centered"
	StepCovariance       = "covariance"
	StepEigen            = "eigen"
	StepManualProjection = "manual-projection"
	StepEigvecInverse    = "eigvec-inverse"
	StepSVD              = "svd"
	StepSVDReconstruct   = "svd-reconstruction"
	StepSummary          = "summary"
)

// Check names.
const (
	CheckOrthonormal      = "orthonormal-eigenvectors"
	CheckRoundTrip        = "roundtrip"
	CheckSingularEigen    = "singular-eigen-relation"
	CheckSVDReconstruct   = "svd-reconstruction"
	CheckLibraryManual    = "library-matches-manual"
	CheckInverseTranspose = "inverse-equals-transpose"
)

// runner accumulates the report while Run walks through the steps.
type runner struct {
	o   Options
	rep *Report
}

func (w *runner) step(s Step) {
	w.rep.Steps = append(w.rep.Steps, s)
	w.o.Logger.Debug("walkthrough step", slog.String("step", s.Name))
}

func (w *runner) check(name, desc string, maxErr, tol float64) {
	c := Check{Name: name, Description: desc, MaxError: maxErr, Tolerance: tol, Passed: maxErr <= tol}
	w.rep.Checks = append(w.rep.Checks, c)
	w.o.Logger.Debug("walkthrough check",
		slog.String("check", name),
		slog.Bool("passed", c.Passed),
		slog.Float64("max_error", maxErr),
		slog.Float64("tolerance", tol),
	)
}

// Run executes the walkthrough on X (n×d, n ≥ 2).
// A failing identity is reported in the returned Report, not as an error;
// errors mean a step could not be computed at all.
func Run(X matrix.Matrix, opts ...Option) (*Report, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if err := matrix.ValidateFinite(X); err != nil {
		return nil, fmt.Errorf("walkthrough: %w", err)
	}

	n, d := X.Rows(), X.Cols()
	w := &runner{o: o, rep: &Report{
		Samples:   n,
		Features:  d,
		Solver:    o.Solver.String(),
		Tolerance: o.Tolerance,
	}}
	dataScale := scaleOf(X)

	// ---------- library route ----------

	w.step(Step{
		Name:     StepInput,
		Title:    "Input data",
		Note:     fmt.Sprintf("%d samples × %d features; each row is one sample.", n, d),
		Matrices: []NamedMatrix{named("X", X)},
	})

	model := pca.New(pca.WithSolver(o.Solver), pca.WithLogger(o.Logger))
	if err := model.Fit(X); err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepLibraryFit, err)
	}
	k := model.NComponents()
	w.step(Step{
		Name:     StepLibraryFit,
		Title:    "Library PCA fit",
		Note:     fmt.Sprintf("%s solver, %d components; rows of W are the principal axes.", o.Solver, k),
		Matrices: []NamedMatrix{named("W", model.Components())},
		Vectors: []NamedVector{
			{Label: "mean", Values: model.Mean()},
			{Label: "explained variance", Values: model.ExplainedVariance()},
			{Label: "explained variance ratio", Values: model.ExplainedVarianceRatio()},
			{Label: "singular values", Values: model.SingularValues()},
		},
	})

	Z, err := model.Transform(X)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepTransform, err)
	}
	w.step(Step{
		Name:     StepTransform,
		Title:    "Transform",
		Note:     "Z = (X − mean)·Wᵀ, the coordinates of each sample along the principal axes.",
		Matrices: []NamedMatrix{named("Z", Z)},
	})

	Xr, err := model.InverseTransform(Z)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepInverseTransform, err)
	}
	w.step(Step{
		Name:     StepInverseTransform,
		Title:    "Inverse transform",
		Note:     "X' = Z·W + mean; with every component kept nothing is lost.",
		Matrices: []NamedMatrix{named("X'", Xr)},
	})
	diff, err := matrix.MaxAbsDiff(Xr, X)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", CheckRoundTrip, err)
	}
	w.check(CheckRoundTrip, "InverseTransform(Transform(X)) equals X", diff, o.Tolerance*dataScale)

	// ---------- covariance / eigen route ----------

	Xc, means, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepCentered, err)
	}
	w.step(Step{
		Name:     StepCentered,
		Title:    "Centered data",
		Note:     "Xc = X − column means.",
		Matrices: []NamedMatrix{named("Xc", Xc)},
		Vectors:  []NamedVector{{Label: "column means", Values: means}},
	})

	C, _, err := matrix.PopulationCovariance(X)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepCovariance, err)
	}
	w.step(Step{
		Name:     StepCovariance,
		Title:    "Covariance matrix",
		Note:     "C = Xcᵀ·Xc / n (population normalization).",
		Matrices: []NamedMatrix{named("C", C)},
	})

	lambda, V, err := eigenDescending(C)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepEigen, err)
	}
	w.step(Step{
		Name:     StepEigen,
		Title:    "Eigen-decomposition of C",
		Note:     "C·V = V·diag(λ); columns of V are the principal axes, largest λ first.",
		Matrices: []NamedMatrix{named("V", V)},
		Vectors:  []NamedVector{{Label: "eigenvalues", Values: lambda}},
	})
	axes := columns(V)
	w.check(CheckOrthonormal, "eigenvectors of C satisfy eᵢ·eⱼ = δᵢⱼ", orthonormalError(axes), o.Tolerance)

	P, err := matrix.Mul(Xc, V)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepManualProjection, err)
	}
	w.step(Step{
		Name:     StepManualProjection,
		Title:    "Manual projection",
		Note:     "Xc·V reproduces the library scores column for column.",
		Matrices: []NamedMatrix{named("Xc·V", P)},
	})

	libErr, err := libraryError(model, Z, P, lambda, axes, n, dataScale)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", CheckLibraryManual, err)
	}
	w.check(CheckLibraryManual, "library axes, variances and scores equal the eigen route", libErr, o.Tolerance)

	Vinv, err := matrix.Inverse(V)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepEigvecInverse, err)
	}
	Vt, err := matrix.Transpose(V)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepEigvecInverse, err)
	}
	w.step(Step{
		Name:     StepEigvecInverse,
		Title:    "Inverse of the eigenvector matrix",
		Note:     "V is orthogonal, so its LU inverse is its transpose.",
		Matrices: []NamedMatrix{named("V⁻¹", Vinv), named("Vᵀ", Vt)},
	})
	diff, err = matrix.MaxAbsDiff(Vinv, Vt)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", CheckInverseTranspose, err)
	}
	w.check(CheckInverseTranspose, "V⁻¹ equals Vᵀ", diff, o.Tolerance)

	// ---------- SVD route ----------

	U, S, Vs, err := matrix.SVD(Xc)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepSVD, err)
	}
	Vst, err := matrix.Transpose(Vs)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepSVD, err)
	}
	Sigma, err := matrix.NewDiag(S)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepSVD, err)
	}
	w.step(Step{
		Name:     StepSVD,
		Title:    "Singular value decomposition of Xc",
		Note:     "Xc = U·Σ·Vᵀ; the rows of Vᵀ are the principal axes up to sign.",
		Matrices: []NamedMatrix{named("U", U), named("Σ", Sigma), named("Vᵀ", Vst)},
		Vectors:  []NamedVector{{Label: "singular values", Values: S}},
	})
	w.check(CheckSingularEigen, "σⱼ equals √(n·λⱼ)", singularEigenError(S, lambda, n), o.Tolerance*scaleOfSlice(S))

	R, err := matrix.Reconstruct(U, S, Vs)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", StepSVDReconstruct, err)
	}
	w.step(Step{
		Name:     StepSVDReconstruct,
		Title:    "SVD reconstruction",
		Note:     "U·Σ·Vᵀ multiplied back together.",
		Matrices: []NamedMatrix{named("U·Σ·Vᵀ", R)},
	})
	diff, err = matrix.MaxAbsDiff(R, Xc)
	if err != nil {
		return nil, fmt.Errorf("walkthrough: %s: %w", CheckSVDReconstruct, err)
	}
	w.check(CheckSVDReconstruct, "U·Σ·Vᵀ equals Xc", diff, o.Tolerance*dataScale)

	w.step(Step{
		Name:  StepSummary,
		Title: "Summary",
		Note:  strings.Join(narrative(w.rep, model), "\n"),
	})

	return w.rep, nil
}

// eigenDescending diagonalizes the symmetric C and returns eigenvalues in
// descending order with sign-canonical eigenvector columns.
func eigenDescending(C matrix.Matrix) ([]float64, matrix.Matrix, error) {
	tol := matrix.DefaultEpsilon * scaleOf(C)
	vals, vecs, err := matrix.Eigen(C, tol, matrix.DefaultMaxIter)
	if err != nil {
		return nil, nil, err
	}
	if vals, vecs, err = matrix.SortEigenDescending(vals, vecs); err != nil {
		return nil, nil, err
	}
	if vecs, err = matrix.CanonicalizeSigns(vecs); err != nil {
		return nil, nil, err
	}
	return vals, vecs, nil
}

// narrative turns the computed report into plain sentences.
func narrative(rep *Report, model *pca.Model) []string {
	var lines []string
	for i, r := range model.ExplainedVarianceRatio() {
		lines = append(lines, fmt.Sprintf("PC%d explains %.2f%% of the variance.", i+1, 100*r))
	}
	lines = append(lines,
		"The library's components are the eigenvectors of the covariance matrix, ordered by eigenvalue.",
		"The singular values of the centered data are √(n·λ), so the SVD finds the same axes without forming C.",
		"Projecting with every component and mapping back reproduces the input exactly.",
	)
	failed := rep.Failed()
	if len(failed) == 0 {
		lines = append(lines, fmt.Sprintf("All %d checks passed.", len(rep.Checks)))
		return lines
	}
	names := make([]string, len(failed))
	for i, c := range failed {
		names[i] = c.Name
	}
	lines = append(lines, fmt.Sprintf("%d of %d checks failed: %s.", len(failed), len(rep.Checks), strings.Join(names, ", ")))

	return lines
}

// named snapshots m as a NamedMatrix.
func named(label string, m matrix.Matrix) NamedMatrix {
	return NamedMatrix{Label: label, Rows: matrix.ToRows(m)}
}

// columns returns the columns of m as separate slices.
func columns(m matrix.Matrix) [][]float64 {
	cols := make([][]float64, m.Cols())
	for j := range cols {
		cols[j] = make([]float64, m.Rows())
		for i := range cols[j] {
			cols[j][i], _ = m.At(i, j)
		}
	}
	return cols
}

// isNull reports whether λ is negligible next to lmax.
func isNull(l, lmax float64) bool {
	return l <= matrix.DefaultRankTolerance*lmax
}

func clampZero(v float64) float64 { return math.Max(v, 0) }
