// Package polynomial provides polynomial spaces on reference cells: a
// monomial expansion per cell, sets of (vector valued) polynomials given by
// coefficients in that expansion, orthonormal bases and Nedelec spaces.
package polynomial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/quadrature"
	"github.com/notargets/febasis/reference"
)

// PolynomialSet is a list of polynomials with values of a fixed shape. Row m
// of the coefficients holds polynomial m, component c occupying columns
// c*N through (c+1)*N-1 for an expansion of size N.
type PolynomialSet struct {
	expansion *Expansion
	degree    int
	shape     []int
	coeffs    *mat.Dense
}

// NewPolynomialSet wraps coefficients over an expansion. The degree is the
// largest complete degree of the space, at most the expansion degree.
func NewPolynomialSet(ex *Expansion, degree int, shape []int, coeffs *mat.Dense) (ps *PolynomialSet, err error) {
	ps = &PolynomialSet{
		expansion: ex,
		degree:    degree,
		shape:     append([]int(nil), shape...),
		coeffs:    coeffs,
	}
	if _, nc := coeffs.Dims(); nc != ps.NumComponents()*ex.Size() {
		err = errors.Configf("polynomial set coefficients have %d columns, expected %d",
			nc, ps.NumComponents()*ex.Size())
		return nil, err
	}
	return
}

// ONPolynomialSet returns an L2 orthonormal basis of the degree polynomials
// on cell, scalar or with the given value shape. Vector valued members come
// in component blocks: member c*N+n is the n-th scalar function in
// component c.
func ONPolynomialSet(cell reference.Cell, degree int, shape ...int) (ps *PolynomialSet, err error) {
	ex, err := NewExpansion(cell, degree)
	if err != nil {
		return
	}
	q, err := quadrature.Create(cell, 2*degree)
	if err != nil {
		return
	}
	tab, err := ex.Tabulate(0, q.Points)
	if err != nil {
		return
	}
	var (
		E = tab[MultiIndex{}]
		N = ex.Size()
		A = mat.NewDense(q.NumPoints(), N, nil)
	)
	for k, w := range q.Weights {
		sw := math.Sqrt(w)
		for n := 0; n < N; n++ {
			A.Set(k, n, sw*E.At(n, k))
		}
	}
	X, err := orthonormalize(A)
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "orthonormalizing degree %d monomials on %s", degree, cell.Key()),
			errors.ErrIllPosed)
		return
	}
	ncomp := 1
	for _, s := range shape {
		ncomp *= s
	}
	coeffs := mat.NewDense(ncomp*N, ncomp*N, nil)
	for c := 0; c < ncomp; c++ {
		coeffs.Slice(c*N, (c+1)*N, c*N, (c+1)*N).(*mat.Dense).Copy(X.T())
	}
	return NewPolynomialSet(ex, degree, shape, coeffs)
}

// orthonormalize returns the upper triangular X with orthonormal columns in
// A*X, from two passes of Householder QR. The second pass removes the loss of
// orthogonality the first leaves behind on an ill conditioned A.
func orthonormalize(A *mat.Dense) (X *mat.Dense, err error) {
	_, n := A.Dims()
	X = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, i, 1)
	}
	B := mat.DenseCopyOf(A)
	for pass := 0; pass < 2; pass++ {
		var (
			qr   mat.QR
			r    mat.Dense
			rinv mat.TriDense
		)
		qr.Factorize(B)
		qr.RTo(&r)
		R := mat.NewTriDense(n, mat.Upper, nil)
		R.Copy(r.Slice(0, n, 0, n))
		if err = rinv.InverseTri(R); err != nil {
			return
		}
		var next, nextX mat.Dense
		next.Mul(B, &rinv)
		nextX.Mul(X, &rinv)
		B, X = &next, &nextX
	}
	return
}

func (ps *PolynomialSet) Cell() reference.Cell { return ps.expansion.cell }

func (ps *PolynomialSet) Degree() int { return ps.degree }

// EmbeddedDegree is the degree of the expansion holding the set.
func (ps *PolynomialSet) EmbeddedDegree() int { return ps.expansion.degree }

func (ps *PolynomialSet) ValueShape() []int { return ps.shape }

func (ps *PolynomialSet) NumComponents() (n int) {
	n = 1
	for _, s := range ps.shape {
		n *= s
	}
	return
}

// Size is the number of polynomials in the set.
func (ps *PolynomialSet) Size() int {
	nr, _ := ps.coeffs.Dims()
	return nr
}

func (ps *PolynomialSet) Expansion() *Expansion { return ps.expansion }

func (ps *PolynomialSet) Coeffs() *mat.Dense { return ps.coeffs }

// WithCoeffs returns a set over the same expansion with new coefficients.
func (ps *PolynomialSet) WithCoeffs(coeffs *mat.Dense) (*PolynomialSet, error) {
	return NewPolynomialSet(ps.expansion, ps.degree, ps.shape, coeffs)
}

// Tabulate evaluates the members and their derivatives up to total order
// at the points. For each derivative the result has Size()*NumComponents()
// rows, row m*ncomp+c holding component c of member m, and one column per
// point.
func (ps *PolynomialSet) Tabulate(order int, pts [][]float64) (tab map[MultiIndex]*mat.Dense, err error) {
	etab, err := ps.expansion.Tabulate(order, pts)
	if err != nil {
		return
	}
	var (
		M     = ps.Size()
		N     = ps.expansion.Size()
		ncomp = ps.NumComponents()
	)
	tab = make(map[MultiIndex]*mat.Dense, len(etab))
	for alpha, E := range etab {
		T := mat.NewDense(M*ncomp, len(pts), nil)
		var R mat.Dense
		for c := 0; c < ncomp; c++ {
			R.Reset()
			R.Mul(ps.coeffs.Slice(0, M, c*N, (c+1)*N), E)
			for m := 0; m < M; m++ {
				T.SetRow(m*ncomp+c, R.RawRowView(m))
			}
		}
		tab[alpha] = T
	}
	return
}
