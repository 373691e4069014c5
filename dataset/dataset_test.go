// SPDX-License-Identifier: MIT
package dataset_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvpca/dataset"
	"github.com/katalvlaran/lvpca/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wantRows = [][]float64{{-1, -1}, {-2, -1}, {-3, -2}, {1, 1}, {2, 1}, {3, 2}}

func TestExample(t *testing.T) {
	t.Parallel()

	X := dataset.Example()
	assert.Equal(t, wantRows, X.ToRows())

	// Mutating one copy must not leak into the next.
	require.NoError(t, X.Set(0, 0, 42))
	v, err := dataset.Example().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, v)
}

func TestLoad_Fixtures(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"example.csv", "example.json", "example.yaml"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			X, err := dataset.Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, wantRows, X.ToRows())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := dataset.Load(filepath.Join("testdata", "example.txt"))
	assert.ErrorIs(t, err, dataset.ErrUnknownFormat)

	_, err = dataset.Load(filepath.Join("testdata", "missing.csv"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, dataset.ErrUnknownFormat)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  dataset.Format
		input   string
		want    [][]float64
		wantErr error
	}{
		{"csv plain", dataset.FormatCSV, "1,2\n3,4\n", [][]float64{{1, 2}, {3, 4}}, nil},
		{"csv spaces and comment", dataset.FormatCSV, "# c\n 1, 2\n3 ,4\n", [][]float64{{1, 2}, {3, 4}}, nil},
		{"csv header", dataset.FormatCSV, "a,b\n1,2\n", [][]float64{{1, 2}}, nil},
		{"csv bad value", dataset.FormatCSV, "1,2\n3,x\n", nil, dataset.ErrParse},
		{"csv ragged", dataset.FormatCSV, "1,2\n3\n", nil, dataset.ErrRagged},
		{"csv nan", dataset.FormatCSV, "1,NaN\n", nil, dataset.ErrNonFinite},
		{"csv empty", dataset.FormatCSV, "", nil, dataset.ErrEmpty},
		{"csv header only", dataset.FormatCSV, "a,b\n", nil, dataset.ErrEmpty},

		{"json keyed", dataset.FormatJSON, `{"rows": [[1, 2], [3, 4]]}`, [][]float64{{1, 2}, {3, 4}}, nil},
		{"json bare", dataset.FormatJSON, ` [[1.5], [2]] `, [][]float64{{1.5}, {2}}, nil},
		{"json ragged", dataset.FormatJSON, `[[1, 2], [3]]`, nil, dataset.ErrRagged},
		{"json syntax", dataset.FormatJSON, `[[1, 2]`, nil, dataset.ErrParse},
		{"json no rows", dataset.FormatJSON, `{}`, nil, dataset.ErrEmpty},
		{"json blank", dataset.FormatJSON, "  \n", nil, dataset.ErrEmpty},
		{"json empty row", dataset.FormatJSON, `[[]]`, nil, dataset.ErrEmpty},

		{"yaml keyed", dataset.FormatYAML, "rows:\n  - [1, 2]\n  - [3, 4]\n", [][]float64{{1, 2}, {3, 4}}, nil},
		{"yaml bare", dataset.FormatYAML, "- [1, 2]\n- [3, 4]\n", [][]float64{{1, 2}, {3, 4}}, nil},
		{"yaml nan", dataset.FormatYAML, "- [1, .nan]\n", nil, dataset.ErrNonFinite},
		{"yaml scalar", dataset.FormatYAML, "hello\n", nil, dataset.ErrParse},
		{"yaml bad value", dataset.FormatYAML, "- [1, x]\n", nil, dataset.ErrParse},
		{"yaml empty", dataset.FormatYAML, "", nil, dataset.ErrEmpty},

		{"unknown format", dataset.Format(9), "1,2\n", nil, dataset.ErrUnknownFormat},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			X, err := dataset.Parse(strings.NewReader(tc.input), tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, X.ToRows())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]dataset.Format{
		"a.csv":         dataset.FormatCSV,
		"dir/B.JSON":    dataset.FormatJSON,
		"c.yaml":        dataset.FormatYAML,
		"/tmp/d.yml":    dataset.FormatYAML,
		"archive.1.csv": dataset.FormatCSV,
	}
	for path, want := range cases {
		got, err := dataset.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"noext", "x.tsv", "dir.csv/file"} {
		_, err := dataset.FormatFromPath(path)
		assert.ErrorIs(t, err, dataset.ErrUnknownFormat, path)
	}
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "csv", dataset.FormatCSV.String())
	assert.Equal(t, "json", dataset.FormatJSON.String())
	assert.Equal(t, "yaml", dataset.FormatYAML.String())
	assert.Equal(t, "Format(5)", dataset.Format(5).String())
}

// TestWrite checks that every encoder output is accepted by the matching decoder.
func TestWrite(t *testing.T) {
	t.Parallel()

	X, err := matrix.NewDenseFromRows([][]float64{{0.1, -2}, {1e-9, 3.25}})
	require.NoError(t, err)

	for _, f := range []dataset.Format{dataset.FormatCSV, dataset.FormatJSON, dataset.FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, dataset.Write(&buf, X, f), f.String())
		got, err := dataset.Parse(&buf, f)
		require.NoError(t, err, f.String())
		assert.Equal(t, X.ToRows(), got.ToRows(), f.String())
	}

	var buf bytes.Buffer
	require.NoError(t, dataset.Write(&buf, dataset.Example(), dataset.FormatCSV))
	assert.Equal(t, "-1,-1\n-2,-1\n-3,-2\n1,1\n2,1\n3,2\n", buf.String())

	assert.ErrorIs(t, dataset.Write(&buf, X, dataset.Format(7)), dataset.ErrUnknownFormat)
	assert.ErrorIs(t, dataset.Write(&buf, nil, dataset.FormatCSV), matrix.ErrNilMatrix)
}
