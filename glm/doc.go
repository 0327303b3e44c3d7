// SPDX-License-Identifier: MIT

// Package glm fits the general linear model Y = Xβ + ε voxel by voxel and
// reduces the coefficients to contrast maps.
//
// Fit solves min ||Y − Xβ||² with a Householder QR factorization (gonum
// mat.QR); XᵀX is never inverted explicitly. Before solving, the numerical
// rank of X is measured from its singular values and a rank-deficient design
// (for example two identical category columns) is rejected with
// ErrRankDeficient. There is no minimum-norm fallback: an arbitrary split of
// a collinear effect would make every contrast that touches it meaningless.
//
// Contrasts:
//
//	face vs. house  c = [+1, −1, 0, 0, …]        (one entry per interest column)
//	map             = cᵀ · β_interest             (one value per voxel)
//	t               = cᵀβ / sqrt(σ² · cᵀ(XᵀX)⁻¹c)
//
// Contrast vectors must sum to zero so that they measure a relative effect;
// confound coefficients are fitted but never reported.
//
// ZScoreRuns standardizes each voxel within each run, the preprocessing the
// course applies before fitting.
package glm
