// SPDX-License-Identifier: MIT

package design_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/neuroglm/boxcar"
	"github.com/katalvlaran/neuroglm/design"
	"github.com/katalvlaran/neuroglm/detrend"
	"github.com/katalvlaran/neuroglm/hrf"
	"github.com/katalvlaran/neuroglm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var haxbyCategories = []string{"face", "house", "cat", "bottle", "scissors", "shoe", "chair", "scrambledpix"}

// session returns labels and run indices for runs×121 timepoints.
func session(t *testing.T, runs int) ([]string, []int) {
	t.Helper()
	labels, idx, err := boxcar.Schedule{
		Categories:  haxbyCategories,
		Runs:        runs,
		RunLength:   121,
		Lead:        6,
		BlockLength: 9,
		Gap:         5,
	}.Labels()
	require.NoError(t, err)

	return labels, idx
}

func canonical(t *testing.T) hrf.Kernel {
	t.Helper()
	k, err := hrf.Canonical(2.5)
	require.NoError(t, err)

	return k
}

func TestBuild_SingleRunShape(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 1)
	for _, d := range []int{0, 2, 4} {
		dm, err := design.Build(labels, runs, haxbyCategories, canonical(t), design.WithDegree(d))
		require.NoError(t, err)
		r, c := dm.Shape()
		assert.Equal(t, 121, r)
		assert.Equal(t, len(haxbyCategories)+d+1, c, "degree %d", d)
	}
}

func TestBuild_TwelveRunsShape(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 12)
	dm, err := design.Build(labels, runs, haxbyCategories, canonical(t))
	require.NoError(t, err)

	r, c := dm.Shape()
	assert.Equal(t, 1452, r)
	assert.Equal(t, 8+design.DefaultDegree+1, c)
	assert.Len(t, dm.RunLengths(), 12)
}

func TestBuild_ColumnProvenance(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 2)
	dm, err := design.Build(labels, runs, haxbyCategories, canonical(t), design.WithDegree(2))
	require.NoError(t, err)

	cols := dm.Columns()
	require.Len(t, cols, 11)
	for j, cat := range haxbyCategories {
		assert.Equal(t, design.Column{Kind: design.Interest, Name: cat, Degree: design.NoDegree}, cols[j])
	}
	for d := 0; d <= 2; d++ {
		assert.Equal(t, design.Column{Kind: design.Confound, Name: detrend.Names(2)[d], Degree: d}, cols[8+d])
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, dm.InterestIndices())
	assert.Equal(t, []int{8, 9, 10}, dm.ConfoundIndices())
	assert.Equal(t, 8, dm.NumInterest())
	assert.Equal(t, haxbyCategories, dm.InterestNames())
	assert.Contains(t, dm.String(), "interest face")
}

// TestBuild_InterestBlockIsConvolvedBoxcar rebuilds run 1 by hand.
func TestBuild_InterestBlockIsConvolvedBoxcar(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 3)
	k := canonical(t)
	dm, err := design.Build(labels, runs, haxbyCategories, k)
	require.NoError(t, err)
	x := dm.Dense()

	b, err := boxcar.Build(labels[121:242], haxbyCategories)
	require.NoError(t, err)
	want, err := hrf.ConvolveColumns(b, k)
	require.NoError(t, err)

	for i := 0; i < 121; i++ {
		for j := range haxbyCategories {
			w, _ := want.At(i, j)
			g, _ := x.At(121+i, j)
			assert.Equal(t, w, g, "row %d col %d", i, j)
		}
	}

	// The response of one run does not spill into the next: the first
	// timepoint of run 1 is rest and its convolved value is zero.
	for j := range haxbyCategories {
		g, _ := x.At(121, j)
		assert.Equal(t, 0.0, g)
	}
}

func TestBuild_DetrendPolicies(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 2)
	k := canonical(t)
	perRun, err := design.Build(labels, runs, haxbyCategories, k, design.WithDegree(1))
	require.NoError(t, err)
	full, err := design.Build(labels, runs, haxbyCategories, k,
		design.WithDegree(1), design.WithDetrendPolicy(design.DetrendFullTimeline))
	require.NoError(t, err)

	pr, fu := perRun.Dense(), full.Dense()
	_, c1 := perRun.Shape()
	_, c2 := full.Shape()
	assert.Equal(t, c1, c2, "both policies emit degree+1 drift columns")

	linCol := 9 // poly1
	first, _ := pr.At(121, linCol)
	assert.InDelta(t, -1.0, first, 1e-12, "per-run grid restarts at -1 on each run")
	mid, _ := fu.At(121, linCol)
	assert.Greater(t, mid, 0.0, "full-timeline grid keeps increasing across runs")
	last, _ := fu.At(241, linCol)
	assert.InDelta(t, 1.0, last, 1e-12)
}

func TestBuild_UnequalRunsFail(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 2)
	labels = labels[:len(labels)-1]
	runs = runs[:len(runs)-1]

	_, err := design.Build(labels, runs, haxbyCategories, canonical(t))
	assert.ErrorIs(t, err, design.ErrShapeMismatch)
	assert.ErrorIs(t, err, boxcar.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "120")
}

func TestBuild_InvalidInput(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 1)
	_, err := design.Build(labels, runs, nil, canonical(t))
	assert.ErrorIs(t, err, design.ErrInvalidInput)

	_, err = design.Build(labels, runs, haxbyCategories, nil)
	assert.ErrorIs(t, err, design.ErrInvalidInput)

	_, err = design.Build(labels[:2], runs[:3], haxbyCategories, canonical(t))
	assert.ErrorIs(t, err, design.ErrShapeMismatch)

	_, err = design.Build([]string{"face"}, []int{0}, haxbyCategories, canonical(t))
	assert.ErrorIs(t, err, design.ErrInvalidInput, "a one-timepoint run cannot be detrended")
}

func TestBuild_WithConfounds(t *testing.T) {
	t.Parallel()

	labels, runs := session(t, 2)
	motion := make([][]float64, 2)
	for j := range motion {
		motion[j] = make([]float64, len(labels))
		for i := range motion[j] {
			motion[j][i] = float64((i*(j+3))%7) / 7
		}
	}
	mx, err := matrix.FromColumns(motion)
	require.NoError(t, err)

	dm, err := design.Build(labels, runs, haxbyCategories, canonical(t),
		design.WithConfounds(mx, []string{"tx", "ty"}))
	require.NoError(t, err)
	_, c := dm.Shape()
	assert.Equal(t, 8+5+2, c)
	cols := dm.Columns()
	assert.Equal(t, "ty", cols[c-1].Name)
	assert.Equal(t, design.Confound, cols[c-1].Kind)
	got, _ := dm.Dense().At(10, c-1)
	want, _ := mx.At(10, 1)
	assert.Equal(t, want, got)

	_, err = design.Build(labels, runs, haxbyCategories, canonical(t),
		design.WithConfounds(mx, []string{"tx"}))
	assert.ErrorIs(t, err, design.ErrInvalidInput)

	short, err := mx.Induced([]int{0, 1, 2}, []int{0, 1})
	require.NoError(t, err)
	_, err = design.Build(labels, runs, haxbyCategories, canonical(t),
		design.WithConfounds(short, []string{"tx", "ty"}))
	assert.ErrorIs(t, err, design.ErrShapeMismatch)

	raw := mx.RawCopy()
	raw[5] = math.Inf(1)
	spiked, err := matrix.NewDenseFrom(len(labels), 2, raw, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = design.Build(labels, runs, haxbyCategories, canonical(t),
		design.WithConfounds(spiked, []string{"tx", "ty"}))
	assert.ErrorIs(t, err, design.ErrInvalidInput)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestNew_And_Reorder(t *testing.T) {
	t.Parallel()

	x, err := matrix.FromRows([][]float64{{1, 0, 1}, {0, 1, 1}, {1, 1, 1}})
	require.NoError(t, err)
	cols := []design.Column{
		{Kind: design.Interest, Name: "a", Degree: design.NoDegree},
		{Kind: design.Interest, Name: "b", Degree: design.NoDegree},
		{Kind: design.Confound, Name: "poly0", Degree: 0},
	}
	dm, err := design.New(x, cols)
	require.NoError(t, err)
	require.NoError(t, x.Set(0, 0, 9))
	v, _ := dm.Dense().At(0, 0)
	assert.Equal(t, 1.0, v, "New copies its input")

	re, err := dm.Reorder([]int{2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, re.InterestNames())
	assert.Equal(t, []int{1, 2}, re.InterestIndices())
	v, _ = re.Dense().At(1, 2)
	assert.Equal(t, 0.0, v)

	_, err = dm.Reorder([]int{0, 0, 1})
	assert.ErrorIs(t, err, design.ErrInvalidInput)
	_, err = dm.Reorder([]int{0})
	assert.ErrorIs(t, err, design.ErrShapeMismatch)

	_, err = design.New(x, cols[:2])
	assert.ErrorIs(t, err, design.ErrShapeMismatch)
	_, err = design.New(x, []design.Column{cols[2], cols[2], cols[2]})
	assert.ErrorIs(t, err, design.ErrInvalidInput)
	_, err = design.New(nil, cols)
	assert.ErrorIs(t, err, design.ErrInvalidInput)
}

func TestNew_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	x, err := matrix.NewDenseFrom(2, 2, []float64{1, 0, math.NaN(), 1}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = design.New(x, []design.Column{
		{Kind: design.Interest, Name: "a", Degree: design.NoDegree},
		{Kind: design.Confound, Name: "poly0", Degree: 0},
	})
	assert.ErrorIs(t, err, design.ErrInvalidInput)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
	assert.Contains(t, err.Error(), "(1,0)")
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "interest", design.Interest.String())
	assert.Equal(t, "confound", design.Confound.String())
	assert.Equal(t, "Kind(7)", design.Kind(7).String())
}
