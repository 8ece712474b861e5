package polynomial

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/reference"
	"github.com/notargets/febasis/utils"
)

// NedelecSpace returns a basis for the first kind Nedelec space of degree r
// on a triangle or tetrahedron, P_{r-1}^d plus x^perp q in 2D or x cross q in
// 3D for homogeneous q of degree r-1. The basis is embedded in degree r
// monomials; its size is r(r+2) in 2D and r(r+2)(r+3)/2 in 3D.
func NedelecSpace(cell reference.Cell, r int) (ps *PolynomialSet, err error) {
	s, ok := cell.(*reference.Simplex)
	if !ok || s.SpatialDimension() < 2 || s.SpatialDimension() > 3 {
		err = errors.Unsupportedf("nedelec space on %s", cell.Key())
		return
	}
	if r < 1 {
		err = errors.Configf("nedelec degree must be at least 1, have %d", r)
		return
	}
	ex, err := NewExpansion(cell, r)
	if err != nil {
		return
	}
	var (
		sd   = s.SpatialDimension()
		N    = ex.Size()
		rows [][]float64
	)
	newRow := func() []float64 { return make([]float64, sd*N) }
	set := func(row []float64, comp int, e []int, val float64) {
		i, ok := ex.Index(e)
		if !ok {
			panic("monomial outside the expansion")
		}
		row[comp*N+i] += val
	}
	shift := func(e []int, k int) (out []int) {
		out = append([]int(nil), e...)
		out[k]++
		return
	}
	for _, e := range ex.Exponents() {
		var total int
		for _, v := range e {
			total += v
		}
		if total < r {
			for c := 0; c < sd; c++ {
				row := newRow()
				set(row, c, e, 1)
				rows = append(rows, row)
			}
		}
		if total != r-1 {
			continue
		}
		switch sd {
		case 2:
			// (y q, -x q)
			row := newRow()
			set(row, 0, shift(e, 1), 1)
			set(row, 1, shift(e, 0), -1)
			rows = append(rows, row)
		case 3:
			// x cross (q e_k) for each unit vector e_k
			for k := 0; k < 3; k++ {
				var (
					row    = newRow()
					k1, k2 = (k + 1) % 3, (k + 2) % 3
				)
				set(row, k1, shift(e, k2), 1)
				set(row, k2, shift(e, k1), -1)
				rows = append(rows, row)
			}
		}
	}
	coeffs := independentRows(utils.NewRows(rows))
	return NewPolynomialSet(ex, r-1, []int{sd}, coeffs)
}

// independentRows returns an orthonormal basis for the row space of a.
func independentRows(a *mat.Dense) *mat.Dense {
	var (
		svd   mat.SVD
		v     mat.Dense
		_, nc = a.Dims()
	)
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		panic("singular value decomposition failed")
	}
	svd.VTo(&v)
	rank := utils.NumericalRank(svd.Values(nil), utils.RANKTOL)
	basis := mat.NewDense(rank, nc, nil)
	for i := 0; i < rank; i++ {
		basis.SetRow(i, mat.Col(nil, i, &v))
	}
	return basis
}
