// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a *mat.Dense (both are row-major, so this is one copy).
// Factorizations (QR, SVD, Cholesky) run on the gonum value; m stays untouched.
func ToGonum(m *Dense) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("ToGonum: %w", ErrNilMatrix)
	}

	return mat.NewDense(m.r, m.c, m.RawCopy()), nil
}

// FromGonum copies any gonum matrix into a fresh Dense under the default policy.
// Errors:
//   - ErrNilMatrix for nil input; ErrInvalidDimensions for empty shapes;
//     ErrNaNInf if a non-finite value is present.
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("FromGonum: %w", ErrNilMatrix)
	}
	r, c := g.Dims()
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("FromGonum(%d,%d): %w", r, c, ErrInvalidDimensions)
	}
	buf := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			buf[i*c+j] = g.At(i, j)
		}
	}

	return NewDenseFrom(r, c, buf, opts...)
}
