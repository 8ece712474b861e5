package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
)

// AffineMapping solves for A and b such that A*xs[i] + b = ys[i] for all i.
// The points xs must form an affine basis of their space, i.e. there must be
// exactly len(xs[0])+1 of them, so that the assembled system of order
// dimX*dimY+dimY is square. When dimX is zero A is nil and b is the image of
// the single point.
func AffineMapping(xs, ys [][]float64) (A *mat.Dense, b []float64, err error) {
	if len(xs) != len(ys) {
		err = errors.IllPosedf("affine mapping needs equal point counts, have %d and %d",
			len(xs), len(ys))
		return
	}
	if len(xs) == 0 {
		err = errors.IllPosedf("affine mapping of an empty point set")
		return
	}
	var (
		dimX, dimY = len(xs[0]), len(ys[0])
		n          = dimX*dimY + dimY
	)
	if dimX == 0 {
		if len(xs) != 1 {
			err = errors.IllPosedf("affine mapping from %d points of a zero dimensional space", len(xs))
			return
		}
		b = Copy(ys[0])
		return
	}
	if dimY == 0 {
		err = errors.IllPosedf("affine mapping into a zero dimensional space")
		return
	}
	if len(xs)*dimY != n {
		err = errors.IllPosedf("affine mapping from %d points in R^%d is not uniquely determined",
			len(xs), dimX)
		return
	}
	M := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	for i := range xs {
		if len(xs[i]) != dimX || len(ys[i]) != dimY {
			err = errors.IllPosedf("affine mapping point %d has inconsistent dimension", i)
			return
		}
		// One row per component of A * x_i + b
		for j := 0; j < dimY; j++ {
			row := i*dimY + j
			for k := 0; k < dimX; k++ {
				M.Set(row, dimX*j+k, xs[i][k])
			}
			M.Set(row, dimX*dimY+j, 1)
			rhs.SetVec(row, ys[i][j])
		}
	}
	var (
		lu  mat.LU
		sol mat.VecDense
	)
	lu.Factorize(M)
	if err = lu.SolveVecTo(&sol, false, rhs); err != nil {
		err = errors.Mark(errors.Wrapf(err, "affine mapping system is singular"), errors.ErrIllPosed)
		return
	}
	A = mat.NewDense(dimY, dimX, nil)
	for j := 0; j < dimY; j++ {
		for k := 0; k < dimX; k++ {
			A.Set(j, k, sol.AtVec(dimX*j+k))
		}
	}
	b = make([]float64, dimY)
	for j := range b {
		b[j] = sol.AtVec(dimX*dimY + j)
	}
	return
}

// NewRows stacks equal length vectors as the rows of a matrix.
func NewRows(rows [][]float64) (m *mat.Dense) {
	m = mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return
}

// ApplyAffine evaluates A*x + b. A nil A is the constant map to b.
func ApplyAffine(A *mat.Dense, b, x []float64) (y []float64) {
	y = Copy(b)
	if A == nil {
		return
	}
	nr, nc := A.Dims()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			y[i] += A.At(i, j) * x[j]
		}
	}
	return
}

// SingularValues returns the singular values of a in descending order.
func SingularValues(a mat.Matrix) (s []float64, err error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		r, c := a.Dims()
		err = errors.IllPosedf("singular value decomposition of a %dx%d matrix failed", r, c)
		return
	}
	return svd.Values(nil), nil
}

// NumericalRank counts the singular values above tol.
func NumericalRank(s []float64, tol float64) (rank int) {
	for _, val := range s {
		if val > tol {
			rank++
		}
	}
	return
}

// SpanAndComplement returns orthonormal bases, stored in columns, for the row
// space of a and for its orthogonal complement. Either may be nil when empty.
func SpanAndComplement(a mat.Matrix) (span, complement *mat.Dense) {
	var (
		svd   mat.SVD
		v     mat.Dense
		_, nc = a.Dims()
	)
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		panic("singular value decomposition failed")
	}
	svd.VTo(&v)
	rank := NumericalRank(svd.Values(nil), RANKTOL)
	if rank > 0 {
		span = mat.DenseCopyOf(v.Slice(0, nc, 0, rank))
	}
	if rank < nc {
		complement = mat.DenseCopyOf(v.Slice(0, nc, rank, nc))
	}
	return
}

// SubspaceIntersection returns an orthonormal basis for the intersection of
// the column spaces of A (m x p) and B (m x q), stored in the columns of the
// result, along with its dimension. The principal angles between the spaces
// are found from the SVD of Qa^T Qb (Golub and van Loan, 3rd ed. p. 604); a
// direction belongs to both spaces when its cosine is within OVERLAPTOL of one.
func SubspaceIntersection(A, B mat.Matrix) (U *mat.Dense, rank int, err error) {
	var (
		ma, _ = A.Dims()
		mb, _ = B.Dims()
	)
	if ma != mb {
		err = errors.IllPosedf("subspace intersection dimension error: R^%d and R^%d", ma, mb)
		return
	}
	qa, qb := reducedQ(A), reducedQ(B)
	var C mat.Dense
	C.Mul(qa.T(), qb)
	var (
		svd mat.SVD
		y   mat.Dense
	)
	if ok := svd.Factorize(&C, mat.SVDThin); !ok {
		err = errors.IllPosedf("subspace intersection: principal angle decomposition failed")
		return
	}
	svd.UTo(&y)
	for _, c := range svd.Values(nil) {
		if math.Abs(1.-c) < OVERLAPTOL {
			rank++
		}
	}
	if rank == 0 {
		return
	}
	var full mat.Dense
	full.Mul(qa, &y)
	U = mat.DenseCopyOf(full.Slice(0, ma, 0, rank))
	return
}

func reducedQ(a mat.Matrix) *mat.Dense {
	var (
		qr     mat.QR
		q      mat.Dense
		nr, nc = a.Dims()
	)
	qr.Factorize(a)
	qr.QTo(&q)
	return mat.DenseCopyOf(q.Slice(0, nr, 0, nc))
}
