// SPDX-License-Identifier: MIT

// Package matrix - Dense, the row-major implementation of Matrix.
//
// Layout: element (i, j) lives at data[i*c+j]. Accessors return errors
// instead of panicking, and every write path goes through the same
// finite-value guard.

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dense stores an r×c matrix in one contiguous row-major slice.
type Dense struct {
	r, c   int
	data   []float64
	finite bool // reject NaN/±Inf on write
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

func denseErr(method string, i, j int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, i, j, err)
}

func (m *Dense) rejects(v float64) bool {
	return m.finite && (math.IsNaN(v) || math.IsInf(v, 0))
}

// NewDense returns a zero-filled rows×cols matrix.
// Both dimensions must be positive, otherwise ErrInvalidDimensions.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), finite: DefaultValidateNaNInf}, nil
}

// NewDenseFrom copies a row-major slice of length rows*cols into a new matrix.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	const op = "NewDenseFrom"
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	if len(data) != len(m.data) {
		return nil, fmt.Errorf("%s: got %d values for %dx%d: %w", op, len(data), rows, cols, ErrDimensionMismatch)
	}
	for k, v := range data {
		if m.rejects(v) {
			return nil, denseErr(op, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)
	return m, nil
}

// NewDenseFromRows copies equally sized rows into a new matrix.
// No rows, or an empty first row, is ErrInvalidDimensions; ragged rows are
// ErrDimensionMismatch.
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	const op = "NewDenseFromRows"
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(op, ErrInvalidDimensions)
	}
	c := len(rows[0])
	m, err := NewDense(len(rows), c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", op, i, len(row), c, ErrDimensionMismatch)
		}
		for j, v := range row {
			if m.rejects(v) {
				return nil, denseErr(op, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*c:], row)
	}
	return m, nil
}

func (m *Dense) Rows() int { return m.r }

func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows, Cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

func (m *Dense) inBounds(i, j int) bool {
	return i >= 0 && i < m.r && j >= 0 && j < m.c
}

// At returns m[i,j], or ErrOutOfRange.
func (m *Dense) At(i, j int) (float64, error) {
	if !m.inBounds(i, j) {
		return 0, denseErr("At", i, j, ErrOutOfRange)
	}
	return m.data[i*m.c+j], nil
}

// Set writes m[i,j] = v. Out-of-range indices give ErrOutOfRange and
// non-finite values give ErrNaNInf.
func (m *Dense) Set(i, j int, v float64) error {
	if !m.inBounds(i, j) {
		return denseErr("Set", i, j, ErrOutOfRange)
	}
	if m.rejects(v) {
		return denseErr("Set", i, j, ErrNaNInf)
	}
	m.data[i*m.c+j] = v
	return nil
}

// Clone returns an independent copy with the same value guard.
func (m *Dense) Clone() Matrix {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...), finite: m.finite}
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErr("Row", i, 0, ErrOutOfRange)
	}
	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// Col returns a copy of column j.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErr("Col", 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+j]
	}
	return out, nil
}

// ToRows returns the matrix as freshly allocated rows.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}
	return out
}

// String prints one bracketed row per line, e.g. "[1, -2]\n[0.5, 3]\n".
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// Do calls f for every element in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for k, v := range m.data {
		if !f(k/m.c, k%m.c, v) {
			return
		}
	}
}

// Apply overwrites every element with f(i, j, v) in row-major order.
// A non-finite result stops the pass with ErrNaNInf; earlier cells keep
// their new values.
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	for k, v := range m.data {
		i, j := k/m.c, k%m.c
		nv := f(i, j, v)
		if m.rejects(nv) {
			return denseErr("Apply", i, j, ErrNaNInf)
		}
		m.data[k] = nv
	}
	return nil
}
