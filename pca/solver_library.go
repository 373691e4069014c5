// SPDX-License-Identifier: MIT

package pca

import (
	"github.com/katalvlaran/lvpca/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// solveLibrary runs gonum's stat.PC on the preprocessed data.
// stat.PC centers again internally, which is a no-op here.
func solveLibrary(xc matrix.Matrix, _ Options) (spectrum, error) {
	g, err := toGonum(xc)
	if err != nil {
		return spectrum{}, err
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(g, nil); !ok {
		return spectrum{}, ErrLibraryFailed
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs) // d×min(n,d)
	axes, err := fromGonum(&vecs)
	if err != nil {
		return spectrum{}, err
	}

	return spectrum{axes: axes, variance: pc.VarsTo(nil)}, nil
}

// toGonum copies any matrix.Matrix into a *mat.Dense.
func toGonum(m matrix.Matrix) (*mat.Dense, error) {
	r, c := m.Rows(), m.Cols()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// fromGonum copies a gonum matrix into a *matrix.Dense.
func fromGonum(g mat.Matrix) (*matrix.Dense, error) {
	r, c := g.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, g.At(i, j))
		}
	}

	return matrix.NewDenseFrom(r, c, data)
}
