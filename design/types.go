// SPDX-License-Identifier: MIT

package design

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/neuroglm/boxcar"
	"github.com/katalvlaran/neuroglm/matrix"
)

var (
	// ErrInvalidInput is returned for empty or degenerate inputs (no labels,
	// bad categories, empty kernel, runs too short to detrend).
	ErrInvalidInput = errors.New("design: invalid input")

	// ErrShapeMismatch is returned for inconsistent run/timepoint counts or
	// confound blocks whose rows do not match the session.
	ErrShapeMismatch = errors.New("design: shape mismatch")
)

// Kind tags a design column as reported (Interest) or fitted-only (Confound).
type Kind int

const (
	// Interest columns are convolved category regressors.
	Interest Kind = iota
	// Confound columns are drift polynomials and caller-supplied nuisance regressors.
	Confound
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Interest:
		return "interest"
	case Confound:
		return "confound"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoDegree marks a column that is not a drift polynomial.
const NoDegree = -1

// Column is the provenance of one design column.
type Column struct {
	Kind   Kind   // Interest or Confound
	Name   string // category, "poly<d>", or caller confound name
	Degree int    // polynomial degree for drift columns; NoDegree otherwise
}

// DetrendPolicy selects where Legendre grids are laid out.
type DetrendPolicy int

const (
	// DetrendPerRun evaluates one grid per run and stacks the blocks.
	DetrendPerRun DetrendPolicy = iota
	// DetrendFullTimeline evaluates one grid across the whole session.
	DetrendFullTimeline
)

// Defaults (single source of truth).
const (
	DefaultDegree        = 4
	DefaultDetrendPolicy = DetrendPerRun
	DefaultRestLabel     = boxcar.DefaultRestLabel
)

// Option configures Build.
type Option func(*Options)

// Options holds the resolved Build configuration.
type Options struct {
	degree    int
	policy    DetrendPolicy
	rest      string
	confounds []confoundBlock
}

type confoundBlock struct {
	x     *matrix.Dense
	names []string
}

// WithDegree sets the maximum Legendre degree. Panics on a negative degree.
func WithDegree(d int) Option {
	if d < 0 {
		panic("design: WithDegree: degree must be >= 0")
	}

	return func(o *Options) { o.degree = d }
}

// WithDetrendPolicy selects DetrendPerRun or DetrendFullTimeline.
func WithDetrendPolicy(p DetrendPolicy) Option {
	if p != DetrendPerRun && p != DetrendFullTimeline {
		panic("design: WithDetrendPolicy: unknown policy")
	}

	return func(o *Options) { o.policy = p }
}

// WithRestLabel overrides the null condition tag.
func WithRestLabel(rest string) Option {
	if rest == "" {
		panic("design: WithRestLabel: label must be non-empty")
	}

	return func(o *Options) { o.rest = rest }
}

// WithConfounds appends caller-supplied nuisance regressors (e.g. six
// motion parameters) after the drift columns. x must have one row per
// session timepoint and one name per column; both are checked by Build.
// Repeated calls append in order.
func WithConfounds(x *matrix.Dense, names []string) Option {
	return func(o *Options) {
		o.confounds = append(o.confounds, confoundBlock{x: x, names: append([]string(nil), names...)})
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		degree: DefaultDegree,
		policy: DefaultDetrendPolicy,
		rest:   DefaultRestLabel,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
