// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/katalvlaran/lvpca/internal/config"
	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/spf13/cobra"
)

func newFitCmd(a *app) *cobra.Command {
	var scores bool

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a PCA model and print its components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			X, err := a.data()
			if err != nil {
				return err
			}
			opts := append(a.cfg.PCAOptions(), pca.WithLogger(a.logger))
			m := pca.New(opts...)
			Z, err := m.FitTransform(X)
			if err != nil {
				return err
			}

			steps := []walkthrough.Step{fitStep(m)}
			if scores {
				steps = append(steps, walkthrough.Step{
					Name:     walkthrough.StepTransform,
					Title:    "Scores",
					Matrices: []walkthrough.NamedMatrix{{Label: "Z", Rows: matrix.ToRows(Z)}},
				})
			}
			return walkthrough.RenderSteps(a.out, steps, a.renderOptions())
		},
	}
	d := config.Default()
	f := cmd.Flags()
	f.BoolVar(&scores, "scores", false, "also print the projected data")
	// Model settings only affect fit; walk and verify always keep every component.
	f.Int("components", d.Components, "number of components to keep (0 = all)")
	f.Bool("whiten", d.Whiten, "scale scores to unit variance")
	f.Bool("standardize", d.Standardize, "z-score features before fitting")

	return cmd
}

func fitStep(m *pca.Model) walkthrough.Step {
	note := fmt.Sprintf("%d samples × %d features, %s solver, %d components", m.NSamples(), m.NFeatures(), m.Solver(), m.NComponents())
	if m.NComponents() < min(m.NSamples(), m.NFeatures()) {
		note += fmt.Sprintf(", noise variance %.6g", m.NoiseVariance())
	}
	vectors := []walkthrough.NamedVector{
		{Label: "mean", Values: m.Mean()},
		{Label: "explained variance", Values: m.ExplainedVariance()},
		{Label: "explained variance ratio", Values: m.ExplainedVarianceRatio()},
		{Label: "singular values", Values: m.SingularValues()},
	}
	if s := m.Scale(); s != nil {
		vectors = append(vectors, walkthrough.NamedVector{Label: "scale", Values: s})
	}

	return walkthrough.Step{
		Name:     walkthrough.StepLibraryFit,
		Title:    "PCA model",
		Note:     note + ".",
		Matrices: []walkthrough.NamedMatrix{{Label: "components", Rows: m.Components().ToRows()}},
		Vectors:  vectors,
	}
}

