// SPDX-License-Identifier: MIT

package glm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/neuroglm/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Contrast weights the interest coefficients, one entry per interest column.
type Contrast []float64

// Validate checks the contrast against k interest columns.
//
// Errors:
//   - ErrShapeMismatch when len(c) != k.
//   - ErrInvalidContrast for an all-zero or non-finite vector, or |Σc| > tol.
func (c Contrast) Validate(k int, tol float64) error {
	if len(c) != k {
		return fmt.Errorf("contrast has %d entries for %d interest columns: %w", len(c), k, ErrShapeMismatch)
	}
	if err := matrix.ValidateFinite(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContrast, err)
	}
	if floats.Norm(c, math.Inf(1)) == 0 {
		return fmt.Errorf("contrast is all zeros: %w", ErrInvalidContrast)
	}
	if s := floats.Sum(c); math.Abs(s) > tol {
		return fmt.Errorf("contrast %v sums to %g: %w", []float64(c), s, ErrInvalidContrast)
	}

	return nil
}

// NewContrast builds the balanced contrast "mean(plus) − mean(minus)" over
// the interest column names (e.g. design.Matrix.InterestNames()).
//
// Errors:
//   - ErrInvalidContrast for an empty side, a name not in names, or a name
//     appearing on both sides.
func NewContrast(names, plus, minus []string) (Contrast, error) {
	if len(plus) == 0 || len(minus) == 0 {
		return nil, fmt.Errorf("NewContrast: both sides need at least one name: %w", ErrInvalidContrast)
	}
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	c := make(Contrast, len(names))
	side := make(map[string]int)
	assign := func(list []string, w float64, tag int) error {
		for _, n := range list {
			i, ok := pos[n]
			if !ok {
				return fmt.Errorf("NewContrast: unknown column %q: %w", n, ErrInvalidContrast)
			}
			if prev, dup := side[n]; dup && prev != tag {
				return fmt.Errorf("NewContrast: %q is on both sides: %w", n, ErrInvalidContrast)
			}
			side[n] = tag
			c[i] += w
		}

		return nil
	}
	if err := assign(plus, 1/float64(len(plus)), +1); err != nil {
		return nil, err
	}
	if err := assign(minus, -1/float64(len(minus)), -1); err != nil {
		return nil, err
	}

	return c, nil
}

// ContrastMap computes cᵀ·B for a K×V coefficient block, one value per voxel.
// It validates c with tol (DefaultContrastTol when tol < 0).
func ContrastMap(interestBetas *matrix.Dense, c Contrast, tol float64) ([]float64, error) {
	if interestBetas == nil {
		return nil, fmt.Errorf("ContrastMap: %w", ErrInvalidInput)
	}
	if tol < 0 {
		tol = DefaultContrastTol
	}
	k, v := interestBetas.Shape()
	if err := c.Validate(k, tol); err != nil {
		return nil, fmt.Errorf("ContrastMap: %w", err)
	}
	b, err := matrix.ToGonum(interestBetas)
	if err != nil {
		return nil, fmt.Errorf("ContrastMap: %w", err)
	}
	var out mat.VecDense
	out.MulVec(b.T(), mat.NewVecDense(k, append([]float64(nil), c...)))

	return mat.Col(make([]float64, v), 0, &out), nil
}

// Contrast returns cᵀ·β_interest for every voxel.
func (r *Result) Contrast(c Contrast) ([]float64, error) {
	b, err := r.InterestBetas()
	if err != nil {
		return nil, fmt.Errorf("Contrast: %w", err)
	}

	return ContrastMap(b, c, r.opts.contrastTol)
}

// TStat returns the per-voxel t statistic cᵀβ / sqrt(σ²·cᵀ(XᵀX)⁻¹c), with
// c padded by zeros on the confound columns. The variance factor comes from
// the Cholesky factor of XᵀX computed by Fit.
//
// Errors:
//   - as Contrast; ErrNoResidualDOF when DOF == 0.
//
// Voxels with zero residual variance get ±Inf (or NaN for a zero effect).
func (r *Result) TStat(c Contrast) ([]float64, error) {
	if r.dof == 0 {
		return nil, fmt.Errorf("TStat: %w", ErrNoResidualDOF)
	}
	effect, err := r.Contrast(c)
	if err != nil {
		return nil, fmt.Errorf("TStat: %w", err)
	}

	_, p := r.dm.Shape()
	full := mat.NewVecDense(p, nil)
	for i, j := range r.interest {
		full.SetVec(j, c[i])
	}
	var z mat.VecDense
	if err = r.xtx.SolveVecTo(&z, full); err != nil {
		return nil, fmt.Errorf("TStat: %v: %w", err, ErrRankDeficient)
	}
	factor := mat.Dot(full, &z)

	t := make([]float64, len(effect))
	for v, e := range effect {
		t[v] = e / math.Sqrt(r.sigma2[v]*factor)
	}

	return t, nil
}
