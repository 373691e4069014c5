// SPDX-License-Identifier: MIT

package walkthrough

import (
	"math"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/viterin/vek"
)

// orthonormalError returns max over i,j of |eᵢ·eⱼ − δᵢⱼ|, with |‖eᵢ‖ − 1| on the diagonal.
func orthonormalError(axes [][]float64) float64 {
	var worst float64
	for i := range axes {
		worst = math.Max(worst, math.Abs(vek.Norm(axes[i])-1))
		for j := i; j < len(axes); j++ {
			dot := vek.Dot(axes[i], axes[j])
			if i == j {
				dot--
			}
			worst = math.Max(worst, math.Abs(dot))
		}
	}
	return worst
}

// singularEigenError compares σⱼ with √(n·λⱼ); negligible λ map to σ = 0.
func singularEigenError(s, lambda []float64, n int) float64 {
	if len(lambda) == 0 {
		return 0
	}
	lmax := clampZero(lambda[0])
	var worst float64
	for j, sv := range s {
		want := 0.0
		if !isNull(lambda[j], lmax) {
			want = math.Sqrt(float64(n) * clampZero(lambda[j]))
		}
		worst = math.Max(worst, math.Abs(sv-want))
	}
	return worst
}

// libraryError compares the fitted model with the eigen route:
// axes (absolute), variances (relative to the largest) and scores
// (relative to the data scale). Null directions are not unique and only
// their variances are compared.
func libraryError(model *pca.Model, Z, P matrix.Matrix, lambda []float64, axes [][]float64, n int, dataScale float64) (float64, error) {
	comps := model.Components()
	variance := model.ExplainedVariance()
	toSample := float64(n) / float64(n-1)
	lmax := clampZero(lambda[0])
	varScale := math.Max(1, lmax*toSample)
	scores, manual := columns(Z), columns(P)

	var worst float64
	for j := 0; j < model.NComponents(); j++ {
		worst = math.Max(worst, math.Abs(variance[j]-clampZero(lambda[j])*toSample)/varScale)
		if isNull(lambda[j], lmax) {
			continue
		}
		row, err := comps.Row(j)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, maxAbsDiff(row, axes[j]))
		worst = math.Max(worst, maxAbsDiff(scores[j], manual[j])/dataScale)
	}
	return worst, nil
}

func maxAbsDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return vek.Max(vek.Abs(vek.Sub(a, b)))
}

// scaleOf returns max(1, max|mᵢⱼ|).
func scaleOf(m matrix.Matrix) float64 {
	flat := make([]float64, 0, m.Rows()*m.Cols())
	for _, row := range matrix.ToRows(m) {
		flat = append(flat, row...)
	}
	return scaleOfSlice(flat)
}

func scaleOfSlice(v []float64) float64 {
	if len(v) == 0 {
		return 1
	}
	return math.Max(1, vek.Max(vek.Abs(v)))
}
