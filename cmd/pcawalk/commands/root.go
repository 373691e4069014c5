// SPDX-License-Identifier: MIT
// Package commands wires the pcawalk cobra command tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/katalvlaran/lvpca/dataset"
	"github.com/katalvlaran/lvpca/internal/config"
	"github.com/katalvlaran/lvpca/internal/logging"
	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// ErrChecksFailed is returned by verify when any identity does not hold.
var ErrChecksFailed = errors.New("one or more checks failed")

// app carries state shared by every command after PersistentPreRunE.
type app struct {
	out, errOut io.Writer
	cfgFile     string
	cfg         config.Config
	logger      *slog.Logger
}

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: logging.Discard()}
	d := config.Default()

	root := &cobra.Command{
		Use:   "pcawalk",
		Short: "Principal component analysis, step by step",
		Long: `pcawalk fits a PCA on a small matrix and derives the same result by hand,
from the covariance eigen-decomposition and from the SVD of the centered data.

Without --data it uses the six-point example [[-1,-1],[-2,-1],[-3,-2],[1,1],[2,1],[3,2]].`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.String("data", d.Data, "input table (.csv, .json, .yaml); default is the built-in example")
	pf.String("solver", d.Solver, "PCA solver: library, eigen or svd")
	pf.Float64("tolerance", d.Tolerance, "base tolerance for identity checks")
	pf.StringP("output", "o", d.Output, "output format: text, json or yaml")
	pf.Int("precision", d.Precision, "decimals in text output")
	pf.Bool("color", d.Color, "style headings in text output")
	pf.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	pf.String("log-format", d.Log.Format, "log format: text or json")

	root.AddCommand(
		newWalkCmd(a),
		newFitCmd(a),
		newVerifyCmd(a),
		newDatasetCmd(a),
	)

	return root
}

// Execute runs the CLI against the process streams and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, ErrChecksFailed) {
			return 2
		}
		return 1
	}
	return 0
}

// init resolves configuration and the logger for the running command.
func (a *app) init(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(a.errOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	a.logger.Debug("config resolved",
		slog.String("command", cmd.Name()),
		slog.String("solver", cfg.Solver),
		slog.String("data", cfg.Data),
		slog.String("output", cfg.Output),
	)

	return nil
}

// data loads the configured table or the built-in example.
func (a *app) data() (*matrix.Dense, error) {
	if a.cfg.Data == "" {
		return dataset.Example(), nil
	}
	X, err := dataset.Load(a.cfg.Data)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dataset loaded", slog.String("path", a.cfg.Data), slog.Int("rows", X.Rows()), slog.Int("cols", X.Cols()))
	return X, nil
}

// renderOptions maps the configuration onto walkthrough rendering.
func (a *app) renderOptions() walkthrough.RenderOptions {
	opts := walkthrough.RenderOptions{
		Format:    a.cfg.OutputFormat(),
		Precision: a.cfg.Precision,
	}
	if a.cfg.Color {
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99"))
		opts.Heading = func(s string) string { return style.Render(s) }
	}
	return opts
}
