// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvpca/internal/config"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("solver", "library", "")
	fs.Float64("tolerance", 1e-10, "")
	fs.Int("components", 0, "")
	fs.String("output", "text", "")
	fs.String("log-level", "warn", "")
	fs.String("config", "", "") // not a configuration key
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Equal(t, pca.SolverLibrary, c.SolverValue())
	assert.Equal(t, walkthrough.FormatText, c.OutputFormat())
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "pcawalk.yaml", `
solver: svd
tolerance: 1e-8
components: 1
whiten: true
output: json
log:
  level: debug
  format: json
`)
	c, err := config.Load(config.New(), path)
	require.NoError(t, err)

	assert.Equal(t, pca.SolverSVD, c.SolverValue())
	assert.Equal(t, 1e-8, c.Tolerance)
	assert.Equal(t, 1, c.Components)
	assert.True(t, c.Whiten)
	assert.False(t, c.Standardize)
	assert.Equal(t, walkthrough.FormatJSON, c.OutputFormat())
	assert.Equal(t, config.Log{Level: "debug", Format: "json"}, c.Log)
	assert.Equal(t, walkthrough.DefaultPrecision, c.Precision)
}

// TestLoad_Precedence covers flag > env > file > default. No t.Parallel: uses t.Setenv.
func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "pcawalk.yaml", "solver: svd\ncomponents: 1\noutput: yaml\n")
	t.Setenv("PCAWALK_SOLVER", "eigen")
	t.Setenv("PCAWALK_LOG_LEVEL", "error")

	v := config.New()
	fs := flagSet()
	require.NoError(t, config.BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--components=2"}))

	c, err := config.Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "eigen", c.Solver, "env over file")
	assert.Equal(t, 2, c.Components, "flag over file")
	assert.Equal(t, "yaml", c.Output, "file over flag default")
	assert.Equal(t, "error", c.Log.Level)
	assert.Equal(t, 1e-10, c.Tolerance, "default")
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	bad := map[string]string{
		"solver":     "solver: qr\n",
		"tolerance":  "tolerance: 0\n",
		"components": "components: -1\n",
		"output":     "output: html\n",
		"precision":  "precision: 40\n",
		"log level":  "log:\n  level: loud\n",
		"log format": "log:\n  format: xml\n",
	}
	for name, body := range bad {
		path := writeFile(t, "bad.yaml", body)
		_, err := config.Load(config.New(), path)
		assert.ErrorIs(t, err, config.ErrInvalid, name)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c := config.Default()
	c.Solver = "eigen"
	c.Whiten = true
	c.Standardize = true
	c.Components = 1
	require.NoError(t, c.Validate())

	o := pca.DefaultOptions()
	for _, fn := range c.PCAOptions() {
		fn(&o)
	}
	assert.Equal(t, pca.SolverEigen, o.Solver)
	assert.Equal(t, 1, o.Components)
	assert.True(t, o.Whiten)
	assert.True(t, o.Standardize)

	w := walkthrough.DefaultOptions()
	for _, fn := range c.WalkthroughOptions() {
		fn(&w)
	}
	assert.Equal(t, pca.SolverEigen, w.Solver)
	assert.Equal(t, c.Tolerance, w.Tolerance)
}
