// SPDX-License-Identifier: MIT

package hrf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/neuroglm/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Canonical samples the double-gamma response at t = 0, tr, 2·tr, … ≤ length:
//
//	h(t) = Gamma(t; peakShape, 1) − ratio · Gamma(t; undershootShape, 1)
//
// and, unless WithoutNormalization is given, scales it to unit sum so that a
// sustained block plateaus at ~1.
//
// Errors:
//   - ErrInvalidInput for a non-positive or non-finite tr, a tr longer
//     than the kernel support, or (when normalizing) a kernel whose samples
//     do not sum to a positive value.
func Canonical(tr float64, opts ...Option) (Kernel, error) {
	if !positiveFinite(tr) {
		return nil, fmt.Errorf("Canonical: tr=%g: %w", tr, ErrInvalidInput)
	}
	o := gatherOptions(opts...)
	if tr > o.length {
		return nil, fmt.Errorf("Canonical: tr=%g exceeds kernel length %g: %w", tr, o.length, ErrInvalidInput)
	}

	peak := distuv.Gamma{Alpha: o.peakShape, Beta: 1}
	under := distuv.Gamma{Alpha: o.undershootShape, Beta: 1}

	n := int(math.Floor(o.length/tr)) + 1
	k := make(Kernel, n)
	var t float64
	for i := 1; i < n; i++ { // both densities vanish at t=0 for shapes > 1
		t = float64(i) * tr
		k[i] = peak.Prob(t) - o.undershootRatio*under.Prob(t)
	}

	if o.normalize {
		s := floats.Sum(k)
		if !(s > 0) {
			return nil, fmt.Errorf("Canonical: kernel sums to %g at tr=%g, need a positive area: %w", s, tr, ErrInvalidInput)
		}
		floats.Scale(1/s, k)
	}

	return k, nil
}

// Convolve returns the causal convolution of x with k truncated to len(x):
//
//	y[t] = Σ_{j=0}^{min(t, len(k)-1)} k[j]·x[t−j]
//
// x and k are not mutated.
//
// Errors:
//   - ErrInvalidInput for an empty x or k, or a NaN/±Inf kernel sample.
//
// Complexity: O(len(x)·len(k)).
func Convolve(x []float64, k Kernel) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("Convolve: empty signal: %w", ErrInvalidInput)
	}
	if len(k) == 0 {
		return nil, fmt.Errorf("Convolve: empty kernel: %w", ErrInvalidInput)
	}
	if err := matrix.ValidateFinite(k); err != nil {
		return nil, fmt.Errorf("Convolve: kernel: %w: %w", ErrInvalidInput, err)
	}

	y := make([]float64, len(x))
	var t, j int
	var acc float64
	for t = range x {
		acc = 0
		for j = 0; j < len(k) && j <= t; j++ {
			acc += k[j] * x[t-j]
		}
		y[t] = acc
	}

	return y, nil
}

// ConvolveColumns convolves every column of b with k independently and
// returns a new matrix of the same shape.
func ConvolveColumns(b *matrix.Dense, k Kernel) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, fmt.Errorf("ConvolveColumns: %w", err)
	}
	r, c := b.Shape()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("ConvolveColumns: %w", err)
	}
	for j := 0; j < c; j++ {
		col, err := b.Col(j)
		if err != nil {
			return nil, fmt.Errorf("ConvolveColumns: %w", err)
		}
		y, err := Convolve(col, k)
		if err != nil {
			return nil, fmt.Errorf("ConvolveColumns: column %d: %w", j, err)
		}
		if err = out.SetCol(j, y); err != nil {
			return nil, fmt.Errorf("ConvolveColumns: %w", err)
		}
	}

	return out, nil
}
