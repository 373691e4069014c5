// SPDX-License-Identifier: MIT

package walkthrough

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderFormat selects the report encoding.
type RenderFormat int

const (
	// FormatText is the human-readable layout with aligned matrices.
	FormatText RenderFormat = iota

	// FormatJSON is indented JSON of the Report.
	FormatJSON

	// FormatYAML is YAML of the Report.
	FormatYAML
)

// DefaultPrecision is the number of decimals in text output.
const DefaultPrecision = 4

var renderFormatNames = [...]string{
	FormatText: "text",
	FormatJSON: "json",
	FormatYAML: "yaml",
}

// String returns the lower-case format name.
func (f RenderFormat) String() string {
	if f < 0 || int(f) >= len(renderFormatNames) {
		return fmt.Sprintf("RenderFormat(%d)", int(f))
	}
	return renderFormatNames[f]
}

// ParseRenderFormat maps "text", "json" or "yaml" (any case) to a RenderFormat.
func ParseRenderFormat(name string) (RenderFormat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range renderFormatNames {
		if n == key {
			return RenderFormat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRenderFormat, name)
}

// RenderOptions controls Render.
//
// Format    – output encoding. Default FormatText.
// Precision – decimals for text output; 0 means DefaultPrecision.
// Heading   – styles section titles in text output; nil prints "== title ==".
type RenderOptions struct {
	Format    RenderFormat
	Precision int
	Heading   func(string) string
}

// Render writes rep to w.
func Render(w io.Writer, rep *Report, opts RenderOptions) error {
	switch opts.Format {
	case FormatText:
		return renderText(w, rep, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("walkthrough: Render: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownRenderFormat, opts.Format)
	}
}

// RenderSteps writes steps without the report header or checks.
// JSON and YAML encode the slice itself.
func RenderSteps(w io.Writer, steps []Step, opts RenderOptions) error {
	switch opts.Format {
	case FormatText:
		prec, heading := textDefaults(opts)
		bw := bufio.NewWriter(w)
		for _, s := range steps {
			writeStep(bw, s, prec, heading)
		}
		return bw.Flush()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(steps); err != nil {
			return fmt.Errorf("walkthrough: RenderSteps: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownRenderFormat, opts.Format)
	}
}

func textDefaults(opts RenderOptions) (int, func(string) string) {
	prec := opts.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}
	heading := opts.Heading
	if heading == nil {
		heading = func(s string) string { return "== " + s + " ==" }
	}
	return prec, heading
}

func renderText(w io.Writer, rep *Report, opts RenderOptions) error {
	prec, heading := textDefaults(opts)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "PCA walkthrough: %d samples × %d features, solver %s, tolerance %g\n",
		rep.Samples, rep.Features, rep.Solver, rep.Tolerance)

	checksDone := false
	for _, s := range rep.Steps {
		if s.Name == StepSummary {
			writeChecks(bw, rep.Checks, heading)
			checksDone = true
		}
		writeStep(bw, s, prec, heading)
	}
	if !checksDone {
		writeChecks(bw, rep.Checks, heading)
	}

	return bw.Flush()
}

func writeStep(w io.Writer, s Step, prec int, heading func(string) string) {
	fmt.Fprintf(w, "\n%s\n", heading(s.Title))
	if s.Note != "" {
		fmt.Fprintln(w, s.Note)
	}
	for _, m := range s.Matrices {
		cols := 0
		if len(m.Rows) > 0 {
			cols = len(m.Rows[0])
		}
		fmt.Fprintf(w, "\n%s (%d×%d)\n", m.Label, len(m.Rows), cols)
		writeMatrix(w, m.Rows, prec)
	}
	if len(s.Vectors) > 0 {
		fmt.Fprintln(w)
	}
	for _, v := range s.Vectors {
		cells := make([]string, len(v.Values))
		for i, x := range v.Values {
			cells[i] = formatNumber(x, prec)
		}
		fmt.Fprintf(w, "%s: %s\n", v.Label, strings.Join(cells, "  "))
	}
}

// writeMatrix prints rows right-aligned to a common cell width.
func writeMatrix(w io.Writer, rows [][]float64, prec int) {
	cells := make([][]string, len(rows))
	width := 0
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = formatNumber(v, prec)
			width = max(width, len(cells[i][j]))
		}
	}
	for _, row := range cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", width-len(c)))
			b.WriteString(c)
		}
		fmt.Fprintln(w, b.String())
	}
}

func writeChecks(w io.Writer, checks []Check, heading func(string) string) {
	if len(checks) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", heading("Checks"))
	width := 0
	for _, c := range checks {
		width = max(width, len(c.Name))
	}
	for _, c := range checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s  %-*s  max error %.1e  tol %.0e  %s\n",
			status, width, c.Name, c.MaxError, c.Tolerance, c.Description)
	}
}

// formatNumber renders v with prec decimals; values that round to zero print without a sign.
func formatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
