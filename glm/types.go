// SPDX-License-Identifier: MIT

package glm

import (
	"errors"
	"math"
)

var (
	// ErrInvalidInput is returned for nil or non-finite inputs.
	ErrInvalidInput = errors.New("glm: invalid input")

	// ErrShapeMismatch is returned when Y and X disagree in timepoints, or a
	// contrast length differs from the number of interest columns.
	ErrShapeMismatch = errors.New("glm: shape mismatch")

	// ErrRankDeficient is returned when the design has collinear columns or
	// fewer timepoints than columns.
	ErrRankDeficient = errors.New("glm: rank-deficient design")

	// ErrInvalidContrast is returned for empty, non-finite or non-zero-sum
	// contrast vectors, and for unknown or overlapping names in NewContrast.
	ErrInvalidContrast = errors.New("glm: invalid contrast")

	// ErrNoResidualDOF is returned by TStat when T == P leaves no residual
	// degrees of freedom to estimate the noise variance.
	ErrNoResidualDOF = errors.New("glm: no residual degrees of freedom")
)

// Defaults (single source of truth).
const (
	// DefaultContrastTol bounds |Σc| for a contrast to count as zero-sum.
	DefaultContrastTol = 1e-9
)

// Option configures Fit.
type Option func(*Options)

// Options holds the resolved Fit configuration.
type Options struct {
	rankTol     float64 // <= 0 means max(T,P)·eps·σmax
	contrastTol float64
}

// WithRankTol fixes the singular-value threshold below which a direction of
// X counts as degenerate. Panics on a negative or non-finite value.
func WithRankTol(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("glm: WithRankTol: tol must be finite and >= 0")
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithContrastTol sets the zero-sum tolerance used by Result.Contrast and Result.TStat.
func WithContrastTol(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("glm: WithContrastTol: tol must be finite and >= 0")
	}

	return func(o *Options) { o.contrastTol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{contrastTol: DefaultContrastTol}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
