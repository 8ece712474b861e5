package element

import (
	"github.com/notargets/febasis/dual"
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/pullback"
	"github.com/notargets/febasis/reference"
)

// lattice is a cell that places lattice points on its entities.
type lattice interface {
	reference.Cell
	MakePoints(dim, entity, order int, variant string) ([][]float64, error)
}

// NewLagrange returns the continuous Lagrange element of the given degree:
// P_k on simplices and Q_k on hypercubes, with point evaluation nodes at the
// equispaced or gll lattice points, entity by entity in ascending dimension.
func NewLagrange(cell reference.Cell, degree int, variant string) (el *CiarletElement, err error) {
	if degree < 1 {
		err = errors.Configf("Lagrange elements need degree >= 1, have %d", degree)
		return
	}
	var (
		lc        lattice
		permsFunc func(dim, order int) map[int][]int
	)
	switch c := cell.(type) {
	case *reference.Simplex:
		lc, permsFunc = c, reference.SimplexLatticePermutations
	case *reference.Hypercube:
		lc, permsFunc = c, reference.HypercubeLatticePermutations
	case *reference.TensorProductCell:
		if !reference.IsHypercube(c) {
			err = errors.Unsupportedf("Lagrange elements on %s", c.Key())
			return
		}
		var flat reference.Cell
		if flat, err = reference.FlattenReferenceCube(c); err != nil {
			return
		}
		return NewLagrange(flat, degree, variant)
	default:
		err = errors.Unsupportedf("Lagrange elements on %s", cell.Key())
		return
	}
	if variant == "" {
		variant = reference.Equispaced
	}
	var (
		nodes []*dual.Functional
		ids   = make(dual.EntityIDs)
		perms = make(dual.EntityPermutations)
		top   = lc.Topology()
	)
	for _, dim := range top.Dims() {
		ids[dim] = make([][]int, len(top[dim]))
		perms[dim] = make([]map[int][]int, len(top[dim]))
		for e := range top[dim] {
			var pts [][]float64
			if pts, err = lc.MakePoints(dim.Int(), e, degree, variant); err != nil {
				return
			}
			ids[dim][e] = make([]int, len(pts))
			for i, pt := range pts {
				ids[dim][e][i] = len(nodes)
				nodes = append(nodes, dual.NewPointEvaluation(lc, pt))
			}
			perms[dim][e] = permsFunc(dim.Int(), degree)
		}
	}
	ds, err := dual.New(nodes, lc, ids, perms)
	if err != nil {
		return
	}
	space, err := polynomial.ONPolynomialSet(lc, degree)
	if err != nil {
		return
	}
	return NewCiarletElement(space, ds, ElementOptions{
		Family:     Lagrange,
		Variant:    variant,
		Degree:     degree,
		FormDegree: 0,
		Mapping:    pullback.Affine,
	})
}
