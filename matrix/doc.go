// Package matrix offers the dense linear-algebra primitives behind the PCA
// walkthrough: a row-major Dense type, strict validators, and the kernels a
// principal component analysis is built from.
//
// The matrix package provides:
//
//   - Dense with safe At/Set (errors, never panics) and an optional NaN/Inf guard.
//   - Products and reshapes: Mul, Transpose, Scale, MatVec, Add, Sub.
//   - Factorizations: LU, Inverse, Eigen (Jacobi, symmetric input), SVD (thin,
//     derived from the eigen-decomposition of the Gram matrix).
//   - Statistics: ColumnMeans, CenterColumns, Covariance, PopulationCovariance,
//     StandardizeColumns.
//   - Comparisons: AllClose, MaxAbsDiff, OrthonormalDeviation.
//
// Every kernel keeps a fixed loop order, so results are bit-for-bit
// reproducible for identical inputs. Inputs are never mutated; each kernel
// allocates a fresh *Dense result.
//
// Matrices here are small and dense by assumption. LU uses partial pivoting
// only, and the SVD squares the condition number; both are fine for
// well-conditioned teaching data and nothing more.
package matrix
