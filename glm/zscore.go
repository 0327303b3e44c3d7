// SPDX-License-Identifier: MIT

package glm

import (
	"fmt"

	"github.com/katalvlaran/neuroglm/matrix"
)

// ZScoreRuns z-scores every column of y separately within each run, where
// runs[t] is the run index of row t and each run is one contiguous block.
// Voxels whose standard deviation within a run is at most the tolerance
// (matrix.DefaultEpsilon, or matrix.WithEpsilon among opts) become zero in
// that run. y is not mutated.
//
// Errors:
//   - ErrInvalidInput for nil y.
//   - ErrShapeMismatch when len(runs) != y.Rows() or a run is not contiguous.
func ZScoreRuns(y *matrix.Dense, runs []int, opts ...matrix.Option) (*matrix.Dense, error) {
	if y == nil {
		return nil, fmt.Errorf("ZScoreRuns: %w", ErrInvalidInput)
	}
	t, v := y.Shape()
	if len(runs) != t {
		return nil, fmt.Errorf("ZScoreRuns: %d run indices for %d timepoints: %w", len(runs), t, ErrShapeMismatch)
	}

	cols := make([]int, v)
	for j := range cols {
		cols[j] = j
	}
	var blocks []*matrix.Dense
	seen := make(map[int]bool)
	start := 0
	for i := 1; i <= t; i++ {
		if i < t && runs[i] == runs[start] {
			continue
		}
		if seen[runs[start]] {
			return nil, fmt.Errorf("ZScoreRuns: run %d is not contiguous (reappears at row %d): %w", runs[start], start, ErrShapeMismatch)
		}
		seen[runs[start]] = true

		rows := make([]int, i-start)
		for k := range rows {
			rows[k] = start + k
		}
		blk, err := y.Induced(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("ZScoreRuns: %w", err)
		}
		z, _, _, err := matrix.ZScoreColumns(blk, opts...)
		if err != nil {
			return nil, fmt.Errorf("ZScoreRuns: %w", err)
		}
		blocks = append(blocks, z)
		start = i
	}

	return matrix.VStack(blocks...)
}
