// SPDX-License-Identifier: MIT
package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvpca/cmd/pcawalk/commands"
	"github.com/katalvlaran/lvpca/dataset"
	"github.com/katalvlaran/lvpca/internal/config"
	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes pcawalk with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := commands.NewRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func tempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestWalk_Text(t *testing.T) {
	out, _, err := run(t, "walk")
	require.NoError(t, err)

	assert.Contains(t, out, "PCA walkthrough: 6 samples × 2 features, solver library")
	assert.Contains(t, out, "== Covariance matrix ==")
	assert.Contains(t, out, "== Singular value decomposition of Xc ==")
	assert.Contains(t, out, "PASS  svd-reconstruction")
	assert.Contains(t, out, "All 6 checks passed.")
}

func TestWalk_JSON(t *testing.T) {
	out, _, err := run(t, "walk", "-o", "json", "--solver", "svd")
	require.NoError(t, err)

	var rep walkthrough.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "svd", rep.Solver)
	assert.True(t, rep.Passed())
	assert.Len(t, rep.Steps, 12)
}

func TestWalk_Color(t *testing.T) {
	out, _, err := run(t, "walk", "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "Covariance matrix")
	assert.NotContains(t, out, "== Covariance matrix ==")
}

func TestWalk_ConfigFile(t *testing.T) {
	cfg := tempFile(t, "pcawalk.yaml", "output: yaml\nsolver: eigen\nlog:\n  level: debug\n")
	out, errOut, err := run(t, "walk", "--config", cfg)
	require.NoError(t, err)

	var rep walkthrough.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "eigen", rep.Solver)
	assert.Contains(t, errOut, "config resolved")
	assert.Contains(t, errOut, "walkthrough step")
}

func TestVerify(t *testing.T) {
	out, _, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  orthonormal-eigenvectors")
	assert.Contains(t, out, "all 6 checks passed")

	out, _, err = run(t, "verify", "-o", "json")
	require.NoError(t, err)
	var res struct {
		Passed bool                `json:"passed"`
		Checks []walkthrough.Check `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Passed)
	assert.Len(t, res.Checks, 6)
}

func TestVerify_DataFile(t *testing.T) {
	data := tempFile(t, "points.csv", "x,y,z\n2,0,1\n1,3,0\n0,1,4\n5,2,2\n3,3,1\n")
	out, _, err := run(t, "verify", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "all 6 checks passed")
}

func TestWalk_AxisAlignedData(t *testing.T) {
	data := tempFile(t, "axis.csv", "x,y\n1,0\n-1,0\n0,2\n0,-2\n")
	out, _, err := run(t, "walk", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  inverse-equals-transpose")
	assert.Contains(t, out, "All 6 checks passed.")
}

func TestFit(t *testing.T) {
	out, _, err := run(t, "fit", "--components", "1", "--scores")
	require.NoError(t, err)

	assert.Contains(t, out, "== PCA model ==")
	assert.Contains(t, out, "6 samples × 2 features, library solver, 1 components, noise variance 0.0604569.")
	assert.Contains(t, out, "components (1×2)")
	assert.Contains(t, out, "  0.8385  0.5449")
	assert.Contains(t, out, "Z (6×1)")
}

func TestFit_Standardize(t *testing.T) {
	out, _, err := run(t, "fit", "--standardize", "-o", "json")
	require.NoError(t, err)

	var steps []walkthrough.Step
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 1)
	labels := make([]string, 0, len(steps[0].Vectors))
	for _, v := range steps[0].Vectors {
		labels = append(labels, v.Label)
	}
	assert.Contains(t, labels, "scale")
}

func TestDataset(t *testing.T) {
	out, _, err := run(t, "dataset")
	require.NoError(t, err)
	assert.Equal(t, "-1,-1\n-2,-1\n-3,-2\n1,1\n2,1\n3,2\n", out)

	out, _, err = run(t, "dataset", "--as", "yaml")
	require.NoError(t, err)
	X, err := dataset.Parse(bytes.NewBufferString(out), dataset.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, dataset.Example().ToRows(), X.ToRows())

	_, _, err = run(t, "dataset", "--as", "xml")
	assert.ErrorIs(t, err, dataset.ErrUnknownFormat)
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "walk", "--solver", "qr")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = run(t, "walk", "--data", filepath.Join(t.TempDir(), "nothing.csv"))
	assert.Error(t, err)

	_, _, err = run(t, "fit", "--components", "5")
	assert.Error(t, err)

	_, _, err = run(t, "walk", "extra")
	assert.Error(t, err)

	// model flags belong to fit only
	for _, args := range [][]string{
		{"walk", "--components", "1"},
		{"verify", "--whiten"},
		{"dataset", "--standardize"},
	} {
		_, _, err = run(t, args...)
		assert.ErrorContains(t, err, "unknown flag", args)
	}
}
