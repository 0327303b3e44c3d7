// SPDX-License-Identifier: MIT

package boxcar

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/neuroglm/matrix"
)

// Build returns the len(labels)×len(categories) indicator matrix:
// entry (t, k) is 1 exactly when labels[t] == categories[k].
//
// Behavior highlights:
//   - Rest and labels outside the category list give all-zero rows.
//   - A category absent from labels gives an all-zero column (not an error).
//   - Rows sum to at most 1 because categories are distinct.
//
// Errors:
//   - ErrInvalidInput for empty labels or categories, an empty or duplicated
//     category, or a category equal to the rest label.
//
// Complexity: O(T + K) time, O(T·K) space.
func Build(labels []string, categories []string, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	if len(labels) == 0 {
		return nil, fmt.Errorf("Build: no labels: %w", ErrInvalidInput)
	}
	col, err := indexCategories(categories, o.rest)
	if err != nil {
		return nil, err
	}

	b, err := matrix.NewDense(len(labels), len(categories))
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	for t, lbl := range labels {
		k, ok := col[lbl]
		if !ok {
			continue
		}
		if err = b.Set(t, k, 1); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return b, nil
}

// indexCategories validates the category list and maps name → column.
func indexCategories(categories []string, rest string) (map[string]int, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("Build: no categories: %w", ErrInvalidInput)
	}
	col := make(map[string]int, len(categories))
	for k, c := range categories {
		switch {
		case c == "":
			return nil, fmt.Errorf("Build: category %d is empty: %w", k, ErrInvalidInput)
		case c == rest:
			return nil, fmt.Errorf("Build: category %d is the rest label %q: %w", k, rest, ErrInvalidInput)
		}
		if prev, dup := col[c]; dup {
			return nil, fmt.Errorf("Build: category %q at %d duplicates %d: %w", c, k, prev, ErrInvalidInput)
		}
		col[c] = k
	}

	return col, nil
}

// SplitRuns partitions the session labels by run index, preserving order.
// Each run must be one contiguous block and all runs must have the same length.
//
// Errors:
//   - ErrInvalidInput for empty input.
//   - ErrShapeMismatch when len(labels) != len(runs), a run index reappears
//     after another run started, or run lengths differ (the message names
//     the offending run and both lengths).
func SplitRuns(labels []string, runs []int) ([]Run, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("SplitRuns: no labels: %w", ErrInvalidInput)
	}
	if len(labels) != len(runs) {
		return nil, fmt.Errorf("SplitRuns: %d labels vs %d run indices: %w", len(labels), len(runs), ErrShapeMismatch)
	}

	var out []Run
	seen := make(map[int]bool)
	start := 0
	for t := 1; t <= len(runs); t++ {
		if t < len(runs) && runs[t] == runs[start] {
			continue
		}
		idx := runs[start]
		if seen[idx] {
			return nil, fmt.Errorf("SplitRuns: run %d is not contiguous (reappears at timepoint %d): %w", idx, start, ErrShapeMismatch)
		}
		seen[idx] = true
		out = append(out, Run{
			Index:  idx,
			Start:  start,
			Labels: append([]string(nil), labels[start:t]...),
		})
		start = t
	}

	want := out[0].Len()
	for _, r := range out[1:] {
		if r.Len() != want {
			return nil, fmt.Errorf("SplitRuns: run %d has %d timepoints, run %d has %d: %w",
				r.Index, r.Len(), out[0].Index, want, ErrShapeMismatch)
		}
	}

	return out, nil
}

// Categories returns the sorted distinct labels, excluding rest.
func Categories(labels []string, rest string) []string {
	set := make(map[string]struct{})
	for _, l := range labels {
		if l != rest {
			set[l] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)

	return out
}
