// SPDX-License-Identifier: MIT

package boxcar_test

import (
	"testing"

	"github.com/katalvlaran/neuroglm/boxcar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_Labels(t *testing.T) {
	t.Parallel()

	s := boxcar.Schedule{
		Categories:  []string{"a", "b"},
		Runs:        2,
		RunLength:   8,
		Lead:        1,
		BlockLength: 2,
		Gap:         1,
	}
	labels, runs, err := s.Labels()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"rest", "a", "a", "rest", "b", "b", "rest", "rest",
		"rest", "b", "b", "rest", "a", "a", "rest", "rest",
	}, labels)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1}, runs)

	split, err := boxcar.SplitRuns(labels, runs)
	require.NoError(t, err)
	assert.Len(t, split, 2)
}

func TestSchedule_DoesNotFit(t *testing.T) {
	t.Parallel()

	s := boxcar.Schedule{Categories: []string{"a", "b"}, Runs: 1, RunLength: 5, BlockLength: 3}
	_, _, err := s.Labels()
	assert.ErrorIs(t, err, boxcar.ErrInvalidInput)

	_, _, err = boxcar.Schedule{Runs: 1, RunLength: 5, BlockLength: 1}.Labels()
	assert.ErrorIs(t, err, boxcar.ErrInvalidInput)
}
