// SPDX-License-Identifier: MIT

// Package hrf convolves indicator regressors with a hemodynamic response kernel.
//
// 🚀 What is the HRF?
//
//	The BOLD signal lags neural activity by seconds and rises and falls
//	slowly. A predicted response is obtained by convolving the stimulus
//	boxcar with a fixed impulse response sampled at the repetition time (TR).
//
// ✨ Key features:
//   - Canonical: SPM-style double-gamma kernel (peak shape 6, undershoot shape 16,
//     ratio 1/6, 32 s support, unit sum), configurable through options.
//   - Convolve: causal linear convolution truncated to the input length, so
//     the regressor stays aligned with the acquisition grid.
//   - ConvolveColumns: the same, applied independently per matrix column.
//
// Convolution is linear and time-invariant: Convolve(a+b) == Convolve(a)+Convolve(b).
//
// ⚙️ Usage:
//
//	k, err := hrf.Canonical(2.5)
//	pred, err := hrf.ConvolveColumns(boxcars, k)
//
// Performance:
//
//   - Time:   O(T·L) per column for a kernel of L samples
//   - Memory: O(T) per column
package hrf
