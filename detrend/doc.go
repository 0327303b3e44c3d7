// SPDX-License-Identifier: MIT

// Package detrend builds Legendre polynomial drift regressors.
//
// Slow scanner drift in an fMRI time series is absorbed by a handful of
// low-order polynomials. Legendre polynomials are used because they are
// mutually orthogonal on [-1, 1], so adding a higher degree barely changes
// the fit of the lower ones:
//
//	P0(x) = 1
//	P1(x) = x
//	(d+1)·P_{d+1}(x) = (2d+1)·x·P_d(x) − d·P_{d−1}(x)
//
// Usage:
//
//	drift, err := detrend.Legendre(121, 4) // 121×5, column 0 constant
//	drift, err := detrend.PerRun([]int{121, 121, 121}, 4) // 363×5, one grid per run
//
// A single timepoint has no span to normalize over, so n==1 is rejected with
// ErrInvalidInput instead of producing NaN.
package detrend
