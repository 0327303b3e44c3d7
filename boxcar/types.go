// SPDX-License-Identifier: MIT

package boxcar

import "errors"

// DefaultRestLabel is the null condition tag used by the course datasets.
const DefaultRestLabel = "rest"

var (
	// ErrInvalidInput is returned for empty inputs, empty or duplicated
	// category names, or a category equal to the rest label.
	ErrInvalidInput = errors.New("boxcar: invalid input")

	// ErrShapeMismatch is returned when labels and run indices disagree in
	// length, a run is not contiguous, or runs have unequal lengths.
	ErrShapeMismatch = errors.New("boxcar: shape mismatch")
)

// Run is one contiguous acquisition block of the session.
type Run struct {
	Index  int      // run index as found in the run sequence
	Start  int      // offset of the first timepoint in the session
	Labels []string // labels of this run (a copy)
}

// Len reports the run's timepoint count.
func (r Run) Len() int { return len(r.Labels) }

// Option configures Build.
type Option func(*Options)

// Options holds the resolved Build configuration.
type Options struct {
	rest string
}

// WithRestLabel overrides the null condition tag. Panics on an empty label.
func WithRestLabel(rest string) Option {
	if rest == "" {
		panic("boxcar: WithRestLabel: label must be non-empty")
	}

	return func(o *Options) { o.rest = rest }
}

func gatherOptions(opts ...Option) Options {
	o := Options{rest: DefaultRestLabel}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
