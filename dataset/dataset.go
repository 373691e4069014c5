// SPDX-License-Identifier: MIT

package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvpca/matrix"
	"gopkg.in/yaml.v3"
)

// exampleRows is the classic six-point PCA demonstration set.
var exampleRows = [][]float64{
	{-1, -1},
	{-2, -1},
	{-3, -2},
	{1, 1},
	{2, 1},
	{3, 2},
}

// Example returns a fresh copy of the 6×2 walkthrough matrix.
func Example() *matrix.Dense {
	X, err := matrix.NewDenseFromRows(exampleRows)
	if err != nil {
		panic(err) // constant input
	}
	return X
}

// FormatFromPath picks a Format from the file extension (.csv, .json, .yaml, .yml).
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Load reads the table at path, choosing the decoder by extension.
func Load(path string) (*matrix.Dense, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: Load: %w", err)
	}
	defer fh.Close()

	X, err := Parse(fh, f)
	if err != nil {
		return nil, fmt.Errorf("dataset: Load(%s): %w", filepath.Base(path), err)
	}
	return X, nil
}

// Parse decodes a table of format f from r.
func Parse(r io.Reader, f Format) (*matrix.Dense, error) {
	var (
		rows [][]float64
		err  error
	)
	switch f {
	case FormatCSV:
		rows, err = parseCSV(r)
	case FormatJSON:
		rows, err = parseJSON(r)
	case FormatYAML:
		rows, err = parseYAML(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}

	return build(rows)
}

func parseCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // width is checked by build

	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", ErrParse, err)
		}
		row, perr := parseRecord(rec)
		if perr != nil {
			if len(rows) == 0 && isHeader(rec) {
				continue
			}
			return nil, fmt.Errorf("%w: csv record %d: %v", ErrParse, line, perr)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRecord(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for j, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

// isHeader reports whether no field of rec parses as a number.
func isHeader(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

func parseJSON(r io.Reader) ([][]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if data[0] == '[' {
		var rows [][]float64
		if err = json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrParse, err)
		}
		return rows, nil
	}
	var doc document
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrParse, err)
	}
	return doc.Rows, nil
}

func parseYAML(r io.Reader) ([][]float64, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: yaml: %v", ErrParse, err)
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	var err error
	switch root.Kind {
	case yaml.SequenceNode:
		var rows [][]float64
		if err = root.Decode(&rows); err == nil {
			return rows, nil
		}
	case yaml.MappingNode:
		var doc document
		if err = root.Decode(&doc); err == nil {
			return doc.Rows, nil
		}
	default:
		err = errors.New("unexpected top-level node")
	}

	return nil, fmt.Errorf("%w: yaml: %v", ErrParse, err)
}

// build validates shape and finiteness before constructing the matrix.
func build(rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w at (%d,%d)", ErrNonFinite, i, j)
			}
		}
	}

	return matrix.NewDenseFromRows(rows)
}

// Write encodes X as format f. CSV uses the shortest exact float representation.
func Write(w io.Writer, X matrix.Matrix, f Format) error {
	if err := matrix.ValidateNotNil(X); err != nil {
		return fmt.Errorf("dataset: Write: %w", err)
	}
	rows := matrix.ToRows(X)

	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		rec := make([]string, X.Cols())
		for _, row := range rows {
			for j, v := range row {
				rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("dataset: Write: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Rows: rows})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Rows: rows}); err != nil {
			return fmt.Errorf("dataset: Write: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

