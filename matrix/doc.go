// SPDX-License-Identifier: MIT

// Package matrix is the numeric substrate shared by the design-matrix and
// GLM packages.
//
// What lives here:
//
//   - Dense: a row-major float64 matrix with safe At/Set (errors, never panics)
//     and an optional finite-value policy (NaN/±Inf rejected on ingestion).
//   - Stacking: VStack (rows, e.g. runs in run order) and HStack (columns,
//     e.g. regressors of interest followed by drift columns).
//   - Kernels: Mul, Transpose, Sub.
//   - Statistics: ZScoreColumns (population std, constant columns → 0).
//   - Gonum bridge: ToGonum / FromGonum for factorizations.
//
// Every operation allocates its result; operands are never mutated.
//
//	x, _ := matrix.FromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})
//	z, means, stds, _ := matrix.ZScoreColumns(x)
package matrix
