// Package lvpca is a step-by-step playground for principal component
// analysis: fit a PCA with a library call, then take it apart by hand and
// watch the pieces line up.
//
// 🚀 What is lvpca?
//
//	A small, dependency-light toolkit that brings together:
//		• Matrix primitives: dense row-major matrices, validators, kernels
//		• Factorizations: LU, inverse, Jacobi eigen-decomposition, thin SVD
//		• Statistics: column means, centering, sample & population covariance
//		• PCA model: Fit / Transform / InverseTransform over three solvers
//		• Walkthrough: every intermediate matrix plus the identities that tie them together
//		• CLI: pcawalk walk | fit | verify | dataset
//
// ✨ Identities checked on every run:
//
//   - Eigenvectors of the covariance matrix are orthonormal.
//   - InverseTransform(Transform(X)) = X with every component kept.
//   - Singular values of the centered data are √(n·λ) of the population covariance.
//   - U·Σ·Vᵀ reproduces the centered data.
//
// Packages:
//
//	matrix/      - Dense matrix, kernels, Eigen, LU/Inverse, SVD, statistics
//	pca/         - Model, solvers (gonum stat.PC, covariance eigen, manual SVD)
//	dataset/     - the six-point example + CSV/JSON/YAML tables
//	walkthrough/ - Run, Report, Checks, text/JSON/YAML rendering
//	cmd/pcawalk/ - cobra CLI, viper configuration
//
// The example data:
//
//	X = [[-1,-1], [-2,-1], [-3,-2], [1,1], [2,1], [3,2]]
//
// lies close to a line through the origin, so the first component carries
// over 99% of the variance.
//
//	go run github.com/katalvlaran/lvpca/cmd/pcawalk walk
package lvpca
