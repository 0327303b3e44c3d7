// SPDX-License-Identifier: MIT

// Package design assembles the task design matrix of a block-design fMRI
// session.
//
// Pipeline (leaf to root):
//
//	labels, run indices ─► boxcar.SplitRuns ─► boxcar.Build (per run)
//	                    ─► hrf.ConvolveColumns (per run)
//	                    ─► matrix.VStack (run order)            = interest block
//	drift               ─► detrend.PerRun / detrend.Legendre    = confound block
//	caller confounds    ─► WithConfounds                        = confound block
//	X = [interest | drift | confounds]
//
// Every column carries its provenance (Column.Kind, Column.Name,
// Column.Degree), so the estimator never has to guess which coefficients
// are reported.
//
// Detrending policy:
//
//	DetrendPerRun (default): each run gets its own Legendre block on a
//	[-1, 1] grid spanning that run; blocks are stacked vertically. Drift
//	structure never leaks across run boundaries.
//	DetrendFullTimeline: one Legendre block over the whole concatenated
//	session.
//
// Both policies produce degree+1 drift columns, so the shape is always
// (runs × runLength) × (categories + degree + 1 [+ extra confounds]).
package design
