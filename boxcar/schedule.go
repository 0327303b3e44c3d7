// SPDX-License-Identifier: MIT

package boxcar

import "fmt"

// Schedule describes a blocked acquisition used for simulations and pilots:
// every run opens with Lead rest timepoints, then shows each category once
// for BlockLength timepoints followed by Gap rest timepoints, and is padded
// with rest up to RunLength. Run r presents the categories rotated left by r,
// so the block order differs between runs.
type Schedule struct {
	Categories  []string
	Runs        int
	RunLength   int
	Lead        int
	BlockLength int
	Gap         int
	Rest        string // DefaultRestLabel when empty
}

// Labels expands the schedule into parallel label and run-index sequences.
//
// Errors:
//   - ErrInvalidInput for no categories, non-positive Runs/RunLength/BlockLength,
//     negative Lead/Gap, or a layout that does not fit in RunLength.
func (s Schedule) Labels() ([]string, []int, error) {
	rest := s.Rest
	if rest == "" {
		rest = DefaultRestLabel
	}
	if len(s.Categories) == 0 || s.Runs <= 0 || s.RunLength <= 0 || s.BlockLength <= 0 || s.Lead < 0 || s.Gap < 0 {
		return nil, nil, fmt.Errorf("Schedule.Labels: %+v: %w", s, ErrInvalidInput)
	}
	need := s.Lead + len(s.Categories)*(s.BlockLength+s.Gap)
	if need > s.RunLength {
		return nil, nil, fmt.Errorf("Schedule.Labels: layout needs %d timepoints, run has %d: %w", need, s.RunLength, ErrInvalidInput)
	}

	n := s.Runs * s.RunLength
	labels := make([]string, 0, n)
	runs := make([]int, 0, n)
	k := len(s.Categories)
	for r := 0; r < s.Runs; r++ {
		run := make([]string, 0, s.RunLength)
		run = appendN(run, rest, s.Lead)
		for b := 0; b < k; b++ {
			run = appendN(run, s.Categories[(b+r)%k], s.BlockLength)
			run = appendN(run, rest, s.Gap)
		}
		run = appendN(run, rest, s.RunLength-len(run))
		labels = append(labels, run...)
		for range run {
			runs = append(runs, r)
		}
	}

	return labels, runs, nil
}

func appendN(dst []string, v string, n int) []string {
	for i := 0; i < n; i++ {
		dst = append(dst, v)
	}

	return dst
}
