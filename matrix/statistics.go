// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column z-scoring for voxel time series (rows = timepoints, cols = voxels).
//
// Policy:
//   - Population standard deviation (divide by r).
//   - A column whose std is ≤ eps is centered and left at zero instead of dividing by ~0.

package matrix

import "gonum.org/v1/gonum/stat"

const opZScoreColumns = "ZScoreColumns"

// ZScoreColumns returns (X - mean) / std per column, plus the means and stds.
// X is not mutated.
//
// Errors:
//   - ErrNilMatrix for nil input.
//
// Complexity: Time O(r*c), Space O(r*c).
func ZScoreColumns(X *Dense, opts ...Option) (*Dense, []float64, []float64, error) {
	if X == nil {
		return nil, nil, nil, matrixErrorf(opZScoreColumns, ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	r, c := X.r, X.c
	out := X.clone()
	means := make([]float64, c)
	stds := make([]float64, c)
	col := make([]float64, r)

	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			col[i] = X.data[i*c+j]
		}
		means[j], stds[j] = stat.PopMeanStdDev(col, nil)
		for i = 0; i < r; i++ {
			if stds[j] <= o.eps {
				out.data[i*c+j] = 0
				continue
			}
			out.data[i*c+j] = (col[i] - means[j]) / stds[j]
		}
	}

	return out, means, stds, nil
}
