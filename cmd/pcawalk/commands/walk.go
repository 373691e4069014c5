// SPDX-License-Identifier: MIT

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newWalkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "walk",
		Short: "Run the full walkthrough and print every step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := a.run()
			if err != nil {
				return err
			}
			return walkthrough.Render(a.out, rep, a.renderOptions())
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run the walkthrough and report only the identity checks",
		Long:  "verify exits with status 2 when any identity check fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := a.run()
			if err != nil {
				return err
			}
			if err = a.writeChecks(rep); err != nil {
				return err
			}
			if failed := rep.Failed(); len(failed) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrChecksFailed, len(failed), len(rep.Checks))
			}
			return nil
		},
	}
}

func (a *app) run() (*walkthrough.Report, error) {
	X, err := a.data()
	if err != nil {
		return nil, err
	}
	opts := append(a.cfg.WalkthroughOptions(), walkthrough.WithLogger(a.logger))
	return walkthrough.Run(X, opts...)
}

// verifyResult is the machine-readable verify output.
type verifyResult struct {
	Passed bool                `json:"passed" yaml:"passed"`
	Checks []walkthrough.Check `json:"checks" yaml:"checks"`
}

func (a *app) writeChecks(rep *walkthrough.Report) error {
	res := verifyResult{Passed: rep.Passed(), Checks: rep.Checks}
	switch a.cfg.OutputFormat() {
	case walkthrough.FormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case walkthrough.FormatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, c := range rep.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(a.out, "%s  %-24s  max error %.1e  tol %.0e\n", status, c.Name, c.MaxError, c.Tolerance)
	}
	if res.Passed {
		fmt.Fprintf(a.out, "all %d checks passed\n", len(rep.Checks))
	}
	return nil
}
