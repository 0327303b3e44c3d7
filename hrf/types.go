// SPDX-License-Identifier: MIT

package hrf

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for empty or non-finite signals/kernels and
// for non-positive repetition times.
var ErrInvalidInput = errors.New("hrf: invalid input")

// Kernel is an impulse response sampled at the acquisition interval;
// Kernel[0] is the response at lag 0.
type Kernel []float64

// NewKernel validates and copies caller-provided samples.
// Errors:
//   - ErrInvalidInput for an empty kernel or a NaN/±Inf sample.
func NewKernel(samples []float64) (Kernel, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("NewKernel: empty kernel: %w", ErrInvalidInput)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("NewKernel: sample %d = %g: %w", i, v, ErrInvalidInput)
		}
	}

	return append(Kernel(nil), samples...), nil
}

// Defaults of the canonical double-gamma response (seconds, gamma shapes, ratio).
const (
	DefaultPeakShape       = 6.0
	DefaultUndershootShape = 16.0
	DefaultUndershootRatio = 1.0 / 6.0
	DefaultLength          = 32.0
)

// Option configures Canonical.
type Option func(*Options)

// Options holds the resolved Canonical configuration.
type Options struct {
	peakShape       float64
	undershootShape float64
	undershootRatio float64
	length          float64
	normalize       bool
}

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// WithPeakShape sets the gamma shape of the main response (its mode is shape-1 seconds).
func WithPeakShape(shape float64) Option {
	if !positiveFinite(shape) {
		panic("hrf: WithPeakShape: shape must be finite and > 0")
	}

	return func(o *Options) { o.peakShape = shape }
}

// WithUndershootShape sets the gamma shape of the post-stimulus undershoot.
func WithUndershootShape(shape float64) Option {
	if !positiveFinite(shape) {
		panic("hrf: WithUndershootShape: shape must be finite and > 0")
	}

	return func(o *Options) { o.undershootShape = shape }
}

// WithUndershootRatio sets the undershoot amplitude relative to the peak (0 disables it).
func WithUndershootRatio(ratio float64) Option {
	if ratio < 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		panic("hrf: WithUndershootRatio: ratio must be finite and >= 0")
	}

	return func(o *Options) { o.undershootRatio = ratio }
}

// WithLength sets the kernel support in seconds.
func WithLength(seconds float64) Option {
	if !positiveFinite(seconds) {
		panic("hrf: WithLength: length must be finite and > 0")
	}

	return func(o *Options) { o.length = seconds }
}

// WithoutNormalization keeps the raw density difference instead of scaling to unit sum.
func WithoutNormalization() Option {
	return func(o *Options) { o.normalize = false }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		peakShape:       DefaultPeakShape,
		undershootShape: DefaultUndershootShape,
		undershootRatio: DefaultUndershootRatio,
		length:          DefaultLength,
		normalize:       true,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
