// SPDX-License-Identifier: MIT

// Package matrix provides the few dense kernels the pipeline composes:
// Mul (delegated to gonum's BLAS-backed product), Transpose, Sub and the
// VStack/HStack builders.
//
// Determinism:
//   - Fixed i→j traversal for all explicit loops; no map iteration.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opSub       = "Sub"
	opVStack    = "VStack"
	opHStack    = "HStack"
)

// matrixErrorf wraps err with an operation tag. Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes C = A × B into a fresh Dense.
// Errors:
//   - ErrNilMatrix for nil operands; ErrDimensionMismatch when a.Cols != b.Rows.
//
// Complexity: O(r·k·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(fmt.Sprintf("%s: (%d×%d)·(%d×%d)", opMul, a.r, a.c, b.r, b.c), ErrDimensionMismatch)
	}
	ga := mat.NewDense(a.r, a.c, a.data)
	gb := mat.NewDense(b.r, b.c, b.data)
	var gc mat.Dense
	gc.Mul(ga, gb)

	out, err := FromGonum(&gc, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out.validateNaNInf = a.validateNaNInf

	return out, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
func Transpose(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opTranspose, ErrNilMatrix)
	}
	out, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out.validateNaNInf = m.validateNaNInf
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Sub computes a − b element-wise into a fresh Dense (e.g. residuals Y − Xβ).
// Errors:
//   - ErrNilMatrix for nil operands; ErrDimensionMismatch for different shapes.
//
// Complexity: O(r·c).
func Sub(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opSub, ErrNilMatrix)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	out := a.clone()
	for k := range out.data {
		out.data[k] -= b.data[k]
	}

	return out, nil
}

// VStack concatenates blocks top to bottom. All blocks must share Cols().
// The first block's numeric policy is inherited.
//
// Errors:
//   - ErrEmptyInput for no blocks; ErrNilMatrix for a nil block;
//     ErrDimensionMismatch naming the first block with a different width.
func VStack(blocks ...*Dense) (*Dense, error) {
	if len(blocks) == 0 {
		return nil, matrixErrorf(opVStack, ErrEmptyInput)
	}
	rows, cols := 0, -1
	for b, blk := range blocks {
		if blk == nil {
			return nil, matrixErrorf(fmt.Sprintf("%s: block %d", opVStack, b), ErrNilMatrix)
		}
		if cols >= 0 && blk.c != cols {
			return nil, matrixErrorf(fmt.Sprintf("%s: block %d has %d cols, want %d", opVStack, b, blk.c, cols), ErrDimensionMismatch)
		}
		cols = blk.c
		rows += blk.r
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	out.validateNaNInf = blocks[0].validateNaNInf
	off := 0
	for _, blk := range blocks {
		off += copy(out.data[off:], blk.data)
	}

	return out, nil
}

// HStack concatenates blocks left to right. All blocks must share Rows().
func HStack(blocks ...*Dense) (*Dense, error) {
	if len(blocks) == 0 {
		return nil, matrixErrorf(opHStack, ErrEmptyInput)
	}
	rows, cols := -1, 0
	for b, blk := range blocks {
		if blk == nil {
			return nil, matrixErrorf(fmt.Sprintf("%s: block %d", opHStack, b), ErrNilMatrix)
		}
		if rows >= 0 && blk.r != rows {
			return nil, matrixErrorf(fmt.Sprintf("%s: block %d has %d rows, want %d", opHStack, b, blk.r, rows), ErrDimensionMismatch)
		}
		rows = blk.r
		cols += blk.c
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	out.validateNaNInf = blocks[0].validateNaNInf
	var i int
	for i = 0; i < rows; i++ {
		dst := out.data[i*cols : (i+1)*cols]
		off := 0
		for _, blk := range blocks {
			off += copy(dst[off:], blk.data[i*blk.c:(i+1)*blk.c])
		}
	}

	return out, nil
}
