// SPDX-License-Identifier: MIT
// Package dataset provides the walkthrough's example matrix and readers and
// writers for small numeric tables in CSV, JSON and YAML.
//
// Row i of a table is sample i and column j is feature j. Every row must have
// the same width and every value must be finite.
//
// Formats:
//
//	– FormatCSV:  comma-separated values; '#' starts a comment line; a first
//	              record that is not entirely numeric is treated as a header.
//	– FormatJSON: {"rows": [[...], ...]} or a bare [[...], ...].
//	– FormatYAML: a "rows:" key holding a sequence of sequences, or a bare sequence.
//
// Errors (sentinel):
//
//	– ErrEmpty          no rows, or rows without columns.
//	– ErrRagged         rows of different widths.
//	– ErrNonFinite      NaN or ±Inf in the input.
//	– ErrUnknownFormat  unrecognized format name or file extension.
//	– ErrParse          a value or document that could not be decoded.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the dataset package.
var (
	// ErrEmpty indicates a table with no rows or no columns.
	ErrEmpty = errors.New("dataset: empty table")

	// ErrRagged indicates rows of unequal width.
	ErrRagged = errors.New("dataset: ragged rows")

	// ErrNonFinite indicates a NaN or infinite value.
	ErrNonFinite = errors.New("dataset: non-finite value")

	// ErrUnknownFormat indicates an unsupported format name or extension.
	ErrUnknownFormat = errors.New("dataset: unknown format")

	// ErrParse wraps decoder failures.
	ErrParse = errors.New("dataset: parse error")
)

// Format identifies a table encoding.
type Format int

const (
	// FormatCSV is comma-separated values.
	FormatCSV Format = iota

	// FormatJSON is a JSON document.
	FormatJSON

	// FormatYAML is a YAML document.
	FormatYAML
)

var formatNames = [...]string{
	FormatCSV:  "csv",
	FormatJSON: "json",
	FormatYAML: "yaml",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat maps "csv", "json", "yaml" or "yml" (any case) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// document is the keyed JSON/YAML layout.
type document struct {
	Rows [][]float64 `json:"rows" yaml:"rows,flow"`
}
