// SPDX-License-Identifier: MIT

package matrix

// Matrix is a mutable two-dimensional array of float64.
//
// Kernels accept any implementation through At/Set and switch to a direct
// slice loop when handed a *Dense.
type Matrix interface {
	Rows() int
	Cols() int

	// At returns element (i, j), or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set writes element (i, j). Implementations return ErrOutOfRange for bad
	// indices and may reject non-finite values.
	Set(i, j int, v float64) error

	// Clone returns a deep copy that shares no storage with the receiver.
	Clone() Matrix
}
