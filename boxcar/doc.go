// SPDX-License-Identifier: MIT

// Package boxcar turns a per-timepoint stimulus label sequence into binary
// indicator regressors, one column per stimulus category.
//
// Labels are compared as exact strings. The rest label (DefaultRestLabel
// unless overridden with WithRestLabel) never gets a column, so rest
// timepoints are all-zero rows; a category that never occurs in a run is a
// legitimate all-zero column.
//
//	runs, err := boxcar.SplitRuns(labels, runIdx)    // contiguous, equal-length runs
//	cats := boxcar.Categories(labels, boxcar.DefaultRestLabel)
//	b, err := boxcar.Build(runs[0].Labels, cats)     // runLen × len(cats)
package boxcar
