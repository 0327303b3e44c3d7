// SPDX-License-Identifier: MIT

package glm

import (
	"fmt"

	"github.com/katalvlaran/neuroglm/design"
	"github.com/katalvlaran/neuroglm/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const opFit = "glm.Fit"

// machineEps is the float64 unit roundoff spacing at 1 (2⁻⁵²).
const machineEps = 0x1p-52

// Result is an immutable fitted model. Accessors return copies.
type Result struct {
	dm       *design.Matrix
	beta     *matrix.Dense // P×V
	resid    *matrix.Dense // T×V
	sigma2   []float64     // per voxel, ||r||²/dof
	dof      int
	rank     int
	xtx      *mat.Cholesky // factor of XᵀX (upper triangle) for contrast variances
	interest []int
	opts     Options
}

// Fit estimates β for every voxel column of y against the design dm.
//
// Implementation:
//   - Stage 1: validate non-nil, finite Y with as many rows as X.
//   - Stage 2: measure the numerical rank of X from its singular values.
//   - Stage 3: solve the least-squares problem with Householder QR.
//   - Stage 4: fitted values Xβ, residuals, per-voxel σ², and a Cholesky
//     factor of XᵀX.
//
// Errors:
//   - ErrInvalidInput for nil inputs or a NaN/±Inf entry in X or Y.
//   - ErrShapeMismatch when y.Rows() != X.Rows() (message carries both shapes).
//   - ErrRankDeficient when T < P or rank(X) < P (message carries rank and P).
//
// Determinism:
//   - No randomness; identical inputs give identical outputs.
//
// Complexity:
//   - Time O(T·P² + T·P·V), Space O(T·(P+V)).
func Fit(dm *design.Matrix, y *matrix.Dense, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	// Stage 1
	if dm == nil || y == nil {
		return nil, fmt.Errorf("%s: nil design or response: %w", opFit, ErrInvalidInput)
	}
	t, p := dm.Shape()
	ty, v := y.Shape()
	if ty != t {
		return nil, fmt.Errorf("%s: design is %d×%d but response is %d×%d: %w", opFit, t, p, ty, v, ErrShapeMismatch)
	}
	xd := dm.Dense()
	if err := matrix.ValidateFinite(xd.RawCopy()); err != nil {
		return nil, fmt.Errorf("%s: design: %w: %w", opFit, ErrInvalidInput, err)
	}
	if err := matrix.ValidateFinite(y.RawCopy()); err != nil {
		return nil, fmt.Errorf("%s: response: %w: %w", opFit, ErrInvalidInput, err)
	}
	if t < p {
		return nil, fmt.Errorf("%s: %d timepoints for %d columns: %w", opFit, t, p, ErrRankDeficient)
	}

	x, err := matrix.ToGonum(xd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	yg, err := matrix.ToGonum(y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}

	// Stage 2
	rank, err := numericalRank(x, o.rankTol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	if rank < p {
		return nil, fmt.Errorf("%s: design %d×%d has rank %d: %w", opFit, t, p, rank, ErrRankDeficient)
	}

	// Stage 3
	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err = qr.SolveTo(&beta, false, yg); err != nil {
		return nil, fmt.Errorf("%s: QR solve: %v: %w", opFit, err, ErrRankDeficient)
	}

	// Stage 4
	betaD, err := matrix.FromGonum(&beta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	fitted, err := matrix.Mul(xd, betaD)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	resid, err := matrix.Sub(y, fitted)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}

	dof := t - p
	sigma2 := make([]float64, v)
	if dof > 0 {
		for j := 0; j < v; j++ {
			col, err := resid.Col(j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opFit, err)
			}
			sigma2[j] = floats.Dot(col, col) / float64(dof)
		}
	}

	xt, err := matrix.Transpose(xd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	xtx, err := matrix.Mul(xt, xd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	chol := new(mat.Cholesky)
	if !chol.Factorize(mat.NewSymDense(p, xtx.RawCopy())) {
		return nil, fmt.Errorf("%s: XᵀX is not positive definite: %w", opFit, ErrRankDeficient)
	}

	return &Result{
		dm:       dm,
		beta:     betaD,
		resid:    resid,
		sigma2:   sigma2,
		dof:      dof,
		rank:     rank,
		xtx:      chol,
		interest: dm.InterestIndices(),
		opts:     o,
	}, nil
}

// numericalRank counts singular values above tol, or above
// max(T,P)·eps·σmax when tol <= 0.
func numericalRank(x *mat.Dense, tol float64) (int, error) {
	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDNone) {
		return 0, fmt.Errorf("SVD did not converge: %w", ErrRankDeficient)
	}
	s := svd.Values(nil)
	if len(s) == 0 {
		return 0, nil
	}
	if tol <= 0 {
		r, c := x.Dims()
		tol = float64(max(r, c)) * machineEps * s[0]
	}
	rank := 0
	for _, sv := range s {
		if sv > tol {
			rank++
		}
	}

	return rank, nil
}

// Design returns the design the model was fitted against.
func (r *Result) Design() *design.Matrix { return r.dm }

// Betas returns all coefficients (P×V), confounds included.
func (r *Result) Betas() *matrix.Dense { return r.beta.Copy() }

// InterestBetas returns the rows of Betas that belong to interest columns,
// in design column order (K×V).
func (r *Result) InterestBetas() (*matrix.Dense, error) {
	rows := make([][]float64, len(r.interest))
	for i, j := range r.interest {
		row, err := r.beta.Row(j)
		if err != nil {
			return nil, fmt.Errorf("InterestBetas: %w", err)
		}
		rows[i] = row
	}

	return matrix.FromRows(rows)
}

// Residuals returns Y − Xβ (T×V).
func (r *Result) Residuals() *matrix.Dense { return r.resid.Copy() }

// Sigma2 returns the per-voxel residual variance ||r||²/DOF (zeros when DOF == 0).
func (r *Result) Sigma2() []float64 { return append([]float64(nil), r.sigma2...) }

// DOF is T − P.
func (r *Result) DOF() int { return r.dof }

// Rank is the numerical rank of X (always P for a successful fit).
func (r *Result) Rank() int { return r.rank }
