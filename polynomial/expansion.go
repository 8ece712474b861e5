package polynomial

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/reference"
	"github.com/notargets/febasis/utils"
)

// Expansion is the monomial basis of the polynomial space carried by a cell:
// total degree on simplices, degree per coordinate on hypercubes, and the
// product of the factor spaces on tensor product cells.
type Expansion struct {
	cell      reference.Cell
	sd        int
	degree    int
	exponents [][]int
	index     map[string]int
}

// NewExpansion returns the monomial basis of the given degree on cell.
func NewExpansion(cell reference.Cell, degree int) (ex *Expansion, err error) {
	if degree < 0 {
		err = errors.Configf("polynomial degree must be non-negative, have %d", degree)
		return
	}
	sd := cell.SpatialDimension()
	if sd > MaxSpatialDim {
		err = errors.Unsupportedf("polynomials in %d dimensions, limit is %d", sd, MaxSpatialDim)
		return
	}
	blocks, err := blockDims(cell)
	if err != nil {
		return
	}
	blockExps := make([][][]int, len(blocks))
	lens := make([]int, len(blocks))
	for i, b := range blocks {
		for o := 0; o <= degree; o++ {
			blockExps[i] = append(blockExps[i], reference.MultiIndexEqual(b, o, 0)...)
		}
		lens[i] = len(blockExps[i])
	}
	ex = &Expansion{
		cell:   cell,
		sd:     sd,
		degree: degree,
		index:  make(map[string]int),
	}
	if len(blocks) == 0 {
		ex.exponents = [][]int{{}}
	} else {
		for _, sel := range combin.Cartesian(lens) {
			e := make([]int, 0, sd)
			for i, k := range sel {
				e = append(e, blockExps[i][k]...)
			}
			ex.exponents = append(ex.exponents, e)
		}
	}
	for i, e := range ex.exponents {
		ex.index[exponentKey(e)] = i
	}
	return
}

// blockDims returns the coordinate count of each independent block of
// variables in the polynomial space of cell.
func blockDims(cell reference.Cell) (blocks []int, err error) {
	switch c := cell.(type) {
	case *reference.Simplex:
		if sd := c.SpatialDimension(); sd > 0 {
			blocks = []int{sd}
		}
	case *reference.Hypercube:
		for i := 0; i < c.SpatialDimension(); i++ {
			blocks = append(blocks, 1)
		}
	case *reference.TensorProductCell:
		for _, f := range c.Factors() {
			var fb []int
			if fb, err = blockDims(f); err != nil {
				return
			}
			blocks = append(blocks, fb...)
		}
	default:
		err = errors.Unsupportedf("polynomial space on %s", cell.Key())
	}
	return
}

func exponentKey(e []int) string {
	b := make([]byte, len(e))
	for i, v := range e {
		b[i] = byte(v)
	}
	return string(b)
}

func (ex *Expansion) Cell() reference.Cell { return ex.cell }

func (ex *Expansion) Degree() int { return ex.degree }

// Size is the number of monomials.
func (ex *Expansion) Size() int { return len(ex.exponents) }

// Exponents returns the exponent tuple of each monomial.
func (ex *Expansion) Exponents() [][]int { return ex.exponents }

// Index returns the position of the monomial with the given exponents.
func (ex *Expansion) Index(e []int) (i int, ok bool) {
	i, ok = ex.index[exponentKey(e)]
	return
}

// Tabulate evaluates every derivative of total order up to order of every
// monomial at the points. Each matrix is Size() x len(pts).
func (ex *Expansion) Tabulate(order int, pts [][]float64) (tab map[MultiIndex]*mat.Dense, err error) {
	if len(pts) == 0 {
		err = errors.Configf("tabulation needs at least one point")
		return
	}
	for i, p := range pts {
		if len(p) != ex.sd {
			err = errors.Configf("point %d has dimension %d, cell has %d", i, len(p), ex.sd)
			return
		}
	}
	tab = make(map[MultiIndex]*mat.Dense)
	for _, alpha := range DerivativeIndices(ex.sd, order) {
		E := mat.NewDense(ex.Size(), len(pts), nil)
		for n, e := range ex.exponents {
			for q, x := range pts {
				E.Set(n, q, monomialDerivative(e, alpha, x))
			}
		}
		tab[alpha] = E
	}
	return
}

func monomialDerivative(e []int, alpha MultiIndex, x []float64) (v float64) {
	v = 1
	for i, ei := range e {
		if alpha[i] > ei {
			return 0
		}
		v *= utils.FallingFactorial(ei, alpha[i]) * utils.POW(x[i], ei-alpha[i])
	}
	return
}
