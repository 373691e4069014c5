// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/katalvlaran/lvpca/dataset"
	"github.com/spf13/cobra"
)

func newDatasetCmd(a *app) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Print the input table (the built-in example unless --data is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := dataset.ParseFormat(as)
			if err != nil {
				return err
			}
			X, err := a.data()
			if err != nil {
				return err
			}
			return dataset.Write(a.out, X, f)
		},
	}
	cmd.Flags().StringVar(&as, "as", dataset.FormatCSV.String(), "table format: csv, json or yaml")

	return cmd
}
