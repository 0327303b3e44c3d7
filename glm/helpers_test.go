// SPDX-License-Identifier: MIT

package glm_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/neuroglm/boxcar"
	"github.com/katalvlaran/neuroglm/design"
	"github.com/katalvlaran/neuroglm/hrf"
	"github.com/katalvlaran/neuroglm/matrix"
	"github.com/stretchr/testify/require"
)

var categories = []string{"face", "house", "cat", "bottle", "scissors", "shoe", "chair", "scrambledpix"}

const (
	nRuns   = 12
	runLen  = 121
	degree  = 4
	nVoxels = 40
	seed    = 1
)

// haxbyDesign builds the 8-category, 12×121, degree-4 design used across tests.
func haxbyDesign(t testing.TB) (*design.Matrix, []int) {
	t.Helper()
	labels, runs, err := boxcar.Schedule{
		Categories:  categories,
		Runs:        nRuns,
		RunLength:   runLen,
		Lead:        6,
		BlockLength: 9,
		Gap:         5,
	}.Labels()
	require.NoError(t, err)
	k, err := hrf.Canonical(2.5)
	require.NoError(t, err)
	dm, err := design.Build(labels, runs, categories, k, design.WithDegree(degree))
	require.NoError(t, err)

	return dm, runs
}

// randomDense fills an r×c matrix with N(0, scale²) draws.
func randomDense(t testing.TB, rng *rand.Rand, r, c int, scale float64) *matrix.Dense {
	t.Helper()
	buf := make([]float64, r*c)
	for i := range buf {
		buf[i] = scale * rng.NormFloat64()
	}
	m, err := matrix.NewDenseFrom(r, c, buf)
	require.NoError(t, err)

	return m
}

// synthesize returns (βtrue, Y = Xβtrue + σ·noise).
func synthesize(t testing.TB, dm *design.Matrix, sigma float64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows, p := dm.Shape()
	beta := randomDense(t, rng, p, nVoxels, 1)
	y, err := matrix.Mul(dm.Dense(), beta)
	require.NoError(t, err)
	if sigma > 0 {
		noise := randomDense(t, rng, rows, nVoxels, sigma)
		buf := y.RawCopy()
		nb := noise.RawCopy()
		for i := range buf {
			buf[i] += nb[i]
		}
		y, err = matrix.NewDenseFrom(rows, nVoxels, buf)
		require.NoError(t, err)
	}

	return beta, y
}

func maxAbsDiff(t testing.TB, a, b *matrix.Dense) float64 {
	t.Helper()
	ra, rb := a.RawCopy(), b.RawCopy()
	require.Equal(t, len(ra), len(rb))
	var m float64
	for i := range ra {
		d := ra[i] - rb[i]
		if d < 0 {
			d = -d
		}
		if d > m {
			m = d
		}
	}

	return m
}
