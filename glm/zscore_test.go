// SPDX-License-Identifier: MIT

package glm_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/neuroglm/glm"
	"github.com/katalvlaran/neuroglm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestZScoreRuns(t *testing.T) {
	t.Parallel()

	const perRun, runs = 50, 3
	rng := rand.New(rand.NewSource(5))
	buf := make([]float64, perRun*runs*2)
	idx := make([]int, perRun*runs)
	for i := range idx {
		idx[i] = i / perRun
		buf[i*2] = 10*float64(idx[i]) + 3*rng.NormFloat64()
		buf[i*2+1] = 7 // constant voxel
	}
	y, err := matrix.NewDenseFrom(perRun*runs, 2, buf)
	require.NoError(t, err)

	z, err := glm.ZScoreRuns(y, idx)
	require.NoError(t, err)
	col, err := z.Col(0)
	require.NoError(t, err)
	flat, err := z.Col(1)
	require.NoError(t, err)

	for r := 0; r < runs; r++ {
		seg := col[r*perRun : (r+1)*perRun]
		mean, std := stat.PopMeanStdDev(seg, nil)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, std, 1e-12)
	}
	for _, v := range flat {
		assert.Zero(t, v)
	}
	assert.Equal(t, buf, y.RawCopy())
}

// TestZScoreRuns_ConstantTolerance: a near-flat voxel is standardized under
// the default tolerance and zeroed under a coarser one.
func TestZScoreRuns_ConstantTolerance(t *testing.T) {
	t.Parallel()

	buf := []float64{5, 5.01, 4.99, 5, 3, 3.01, 2.99, 3}
	y, err := matrix.NewDenseFrom(len(buf), 1, buf)
	require.NoError(t, err)
	runs := []int{0, 0, 0, 0, 1, 1, 1, 1}

	fine, err := glm.ZScoreRuns(y, runs)
	require.NoError(t, err)
	col, err := fine.Col(0)
	require.NoError(t, err)
	_, std := stat.PopMeanStdDev(col[:4], nil)
	assert.InDelta(t, 1, std, 1e-9)

	coarse, err := glm.ZScoreRuns(y, runs, matrix.WithEpsilon(0.1))
	require.NoError(t, err)
	assert.Equal(t, make([]float64, len(buf)), coarse.RawCopy())
}

func TestZScoreRuns_Errors(t *testing.T) {
	t.Parallel()

	y, err := matrix.NewDense(4, 1)
	require.NoError(t, err)

	_, err = glm.ZScoreRuns(nil, nil)
	assert.ErrorIs(t, err, glm.ErrInvalidInput)
	_, err = glm.ZScoreRuns(y, []int{0, 0, 1})
	assert.ErrorIs(t, err, glm.ErrShapeMismatch)
	_, err = glm.ZScoreRuns(y, []int{0, 1, 0, 1})
	assert.ErrorIs(t, err, glm.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "not contiguous")
}
