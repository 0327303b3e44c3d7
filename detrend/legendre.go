// SPDX-License-Identifier: MIT

package detrend

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/neuroglm/matrix"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned for degenerate timepoint counts or degrees.
var ErrInvalidInput = errors.New("detrend: invalid input")

// Grid returns n points evenly spaced over [-1, 1] (both ends included).
// Errors:
//   - ErrInvalidInput when n < 2.
func Grid(n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("Grid: n=%d, need at least 2 timepoints: %w", n, ErrInvalidInput)
	}

	return floats.Span(make([]float64, n), -1, 1), nil
}

// Legendre returns the n×(degree+1) matrix whose column d is P_d evaluated
// on Grid(n).
//
// Errors:
//   - ErrInvalidInput when n < 2 or degree < 0.
//
// Complexity: O(n·degree).
func Legendre(n, degree int) (*matrix.Dense, error) {
	if degree < 0 {
		return nil, fmt.Errorf("Legendre: degree=%d: %w", degree, ErrInvalidInput)
	}
	x, err := Grid(n)
	if err != nil {
		return nil, fmt.Errorf("Legendre: %w", err)
	}

	cols := make([][]float64, degree+1)
	cols[0] = make([]float64, n)
	for i := range cols[0] {
		cols[0][i] = 1
	}
	if degree >= 1 {
		cols[1] = append([]float64(nil), x...)
	}
	var d, i int
	for d = 1; d < degree; d++ {
		next := make([]float64, n)
		a := float64(2*d+1) / float64(d+1)
		b := float64(d) / float64(d+1)
		for i = 0; i < n; i++ {
			next[i] = a*x[i]*cols[d][i] - b*cols[d-1][i]
		}
		cols[d+1] = next
	}

	return matrix.FromColumns(cols)
}

// PerRun evaluates Legendre(runLength, degree) independently for every run
// and stacks the blocks vertically in run order. The result has
// Σ runLengths rows and degree+1 columns; each run gets its own [-1, 1] grid.
//
// Errors:
//   - ErrInvalidInput for an empty run list, a run shorter than 2, or degree < 0.
func PerRun(runLengths []int, degree int) (*matrix.Dense, error) {
	if len(runLengths) == 0 {
		return nil, fmt.Errorf("PerRun: no runs: %w", ErrInvalidInput)
	}
	blocks := make([]*matrix.Dense, len(runLengths))
	for r, n := range runLengths {
		blk, err := Legendre(n, degree)
		if err != nil {
			return nil, fmt.Errorf("PerRun: run %d: %w", r, err)
		}
		blocks[r] = blk
	}

	return matrix.VStack(blocks...)
}

// Names returns the column labels "poly0".."poly<degree>".
func Names(degree int) []string {
	if degree < 0 {
		return nil
	}
	out := make([]string, degree+1)
	for d := range out {
		out[d] = fmt.Sprintf("poly%d", d)
	}

	return out
}
