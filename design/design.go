// SPDX-License-Identifier: MIT

package design

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/neuroglm/boxcar"
	"github.com/katalvlaran/neuroglm/detrend"
	"github.com/katalvlaran/neuroglm/hrf"
	"github.com/katalvlaran/neuroglm/matrix"
)

const (
	opBuild   = "design.Build"
	opNew     = "design.New"
	opReorder = "design.Reorder"
)

// Matrix is an immutable design matrix with per-column provenance.
// Accessors return copies; the zero value is not usable.
type Matrix struct {
	x          *matrix.Dense
	cols       []Column
	runLengths []int
}

// classify maps a stage error onto this package's taxonomy while keeping the
// stage sentinel reachable through errors.Is.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, boxcar.ErrShapeMismatch), errors.Is(err, matrix.ErrDimensionMismatch):
		return fmt.Errorf("%s: %w: %w", op, ErrShapeMismatch, err)
	case errors.Is(err, boxcar.ErrInvalidInput),
		errors.Is(err, detrend.ErrInvalidInput),
		errors.Is(err, hrf.ErrInvalidInput),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Build assembles the design matrix for a session.
//
// Implementation:
//   - Stage 1: split labels into contiguous, equal-length runs (boxcar.SplitRuns).
//   - Stage 2: per run, build category boxcars and convolve them with k.
//   - Stage 3: stack the convolved runs vertically in run order.
//   - Stage 4: build drift columns under the detrend policy.
//   - Stage 5: validate and append caller confounds, then HStack everything.
//
// Returns:
//   - *Matrix with rows = runs × runLength and columns
//     len(categories) + degree + 1 (+ confound columns), interest first.
//
// Errors:
//   - ErrShapeMismatch: labels/runs length differ, non-contiguous or unequal
//     runs, confound rows ≠ session length.
//   - ErrInvalidInput: empty labels, bad category list, empty kernel, runs
//     shorter than 2 timepoints, confound names not matching its columns,
//     non-finite confound values.
func Build(labels []string, runs []int, categories []string, k hrf.Kernel, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)

	// Stage 1
	parts, err := boxcar.SplitRuns(labels, runs)
	if err != nil {
		return nil, classify(opBuild, err)
	}

	// Stage 2-3
	blocks := make([]*matrix.Dense, len(parts))
	lengths := make([]int, len(parts))
	for r, run := range parts {
		b, err := boxcar.Build(run.Labels, categories, boxcar.WithRestLabel(o.rest))
		if err != nil {
			return nil, classify(fmt.Sprintf("%s: run %d", opBuild, run.Index), err)
		}
		if blocks[r], err = hrf.ConvolveColumns(b, k); err != nil {
			return nil, classify(fmt.Sprintf("%s: run %d", opBuild, run.Index), err)
		}
		lengths[r] = run.Len()
	}
	interest, err := matrix.VStack(blocks...)
	if err != nil {
		return nil, classify(opBuild, err)
	}

	// Stage 4
	var drift *matrix.Dense
	switch o.policy {
	case DetrendFullTimeline:
		drift, err = detrend.Legendre(len(labels), o.degree)
	default:
		drift, err = detrend.PerRun(lengths, o.degree)
	}
	if err != nil {
		return nil, classify(opBuild, err)
	}

	cols := make([]Column, 0, len(categories)+o.degree+1)
	for _, c := range categories {
		cols = append(cols, Column{Kind: Interest, Name: c, Degree: NoDegree})
	}
	for d, name := range detrend.Names(o.degree) {
		cols = append(cols, Column{Kind: Confound, Name: name, Degree: d})
	}

	// Stage 5
	all := []*matrix.Dense{interest, drift}
	for i, cb := range o.confounds {
		if cb.x == nil {
			return nil, fmt.Errorf("%s: confound block %d is nil: %w", opBuild, i, ErrInvalidInput)
		}
		r, c := cb.x.Shape()
		if r != len(labels) {
			return nil, fmt.Errorf("%s: confound block %d has %d rows, session has %d: %w",
				opBuild, i, r, len(labels), ErrShapeMismatch)
		}
		if len(cb.names) != c {
			return nil, fmt.Errorf("%s: confound block %d has %d columns but %d names: %w",
				opBuild, i, c, len(cb.names), ErrInvalidInput)
		}
		if err = matrix.ValidateFinite(cb.x.RawCopy()); err != nil {
			return nil, fmt.Errorf("%s: confound block %d: %w: %w", opBuild, i, ErrInvalidInput, err)
		}
		all = append(all, cb.x)
		for _, name := range cb.names {
			cols = append(cols, Column{Kind: Confound, Name: name, Degree: NoDegree})
		}
	}
	x, err := matrix.HStack(all...)
	if err != nil {
		return nil, classify(opBuild, err)
	}

	return &Matrix{x: x, cols: cols, runLengths: lengths}, nil
}

// New wraps an externally built matrix with its provenance list. x is copied.
// The whole matrix is treated as a single run.
//
// Errors:
//   - ErrInvalidInput for nil x, no interest column, an unknown Kind, or a
//     NaN/±Inf entry (wrapping matrix.ErrNaNInf with its coordinates).
//   - ErrShapeMismatch when len(cols) != x.Cols().
func New(x *matrix.Dense, cols []Column) (*Matrix, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrInvalidInput)
	}
	r, c := x.Shape()
	if len(cols) != c {
		return nil, fmt.Errorf("%s: %d columns but %d provenance entries: %w", opNew, c, len(cols), ErrShapeMismatch)
	}
	interest := 0
	for j, col := range cols {
		switch col.Kind {
		case Interest:
			interest++
		case Confound:
		default:
			return nil, fmt.Errorf("%s: column %d has %v: %w", opNew, j, col.Kind, ErrInvalidInput)
		}
	}
	if interest == 0 {
		return nil, fmt.Errorf("%s: no interest column: %w", opNew, ErrInvalidInput)
	}

	checked, err := matrix.NewDenseFrom(r, c, x.RawCopy(), matrix.WithValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opNew, ErrInvalidInput, err)
	}

	return &Matrix{x: checked, cols: append([]Column(nil), cols...), runLengths: []int{r}}, nil
}

// Dense returns a copy of the numeric matrix.
func (m *Matrix) Dense() *matrix.Dense { return m.x.Copy() }

// Shape reports (timepoints, columns).
func (m *Matrix) Shape() (rows, cols int) { return m.x.Shape() }

// Columns returns a copy of the provenance list.
func (m *Matrix) Columns() []Column { return append([]Column(nil), m.cols...) }

// RunLengths returns the per-run timepoint counts in run order.
func (m *Matrix) RunLengths() []int { return append([]int(nil), m.runLengths...) }

// InterestIndices lists the column indices tagged Interest, ascending.
func (m *Matrix) InterestIndices() []int { return m.indices(Interest) }

// ConfoundIndices lists the column indices tagged Confound, ascending.
func (m *Matrix) ConfoundIndices() []int { return m.indices(Confound) }

// NumInterest is len(InterestIndices()).
func (m *Matrix) NumInterest() int { return len(m.indices(Interest)) }

// InterestNames lists the names of the interest columns in column order.
func (m *Matrix) InterestNames() []string {
	var out []string
	for _, c := range m.cols {
		if c.Kind == Interest {
			out = append(out, c.Name)
		}
	}

	return out
}

func (m *Matrix) indices(k Kind) []int {
	var out []int
	for j, c := range m.cols {
		if c.Kind == k {
			out = append(out, j)
		}
	}

	return out
}

// Reorder returns a new Matrix whose column j is column perm[j] of m.
// perm must be a permutation of 0..cols-1.
func (m *Matrix) Reorder(perm []int) (*Matrix, error) {
	_, c := m.x.Shape()
	if len(perm) != c {
		return nil, fmt.Errorf("%s: permutation of length %d for %d columns: %w", opReorder, len(perm), c, ErrShapeMismatch)
	}
	seen := make([]bool, c)
	cols := make([]Column, c)
	for j, p := range perm {
		if p < 0 || p >= c || seen[p] {
			return nil, fmt.Errorf("%s: perm[%d]=%d is not a permutation entry: %w", opReorder, j, p, ErrInvalidInput)
		}
		seen[p] = true
		cols[j] = m.cols[p]
	}
	x, err := m.x.Columns(perm)
	if err != nil {
		return nil, classify(opReorder, err)
	}

	return &Matrix{x: x, cols: cols, runLengths: m.RunLengths()}, nil
}

// String prints the shape and one provenance line per column.
func (m *Matrix) String() string {
	r, c := m.x.Shape()
	var sb strings.Builder
	fmt.Fprintf(&sb, "design %d×%d (%d runs)\n", r, c, len(m.runLengths))
	for j, col := range m.cols {
		fmt.Fprintf(&sb, "  %2d %-8s %s\n", j, col.Kind, col.Name)
	}

	return sb.String()
}
