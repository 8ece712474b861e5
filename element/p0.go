package element

import (
	"github.com/notargets/febasis/dual"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/pullback"
	"github.com/notargets/febasis/reference"
)

// NewP0 returns the piecewise constant element: a single point evaluation
// at the centroid, owned by the cell itself.
func NewP0(cell reference.Cell) (el *CiarletElement, err error) {
	var (
		verts    = cell.Vertices()
		centroid = make([]float64, cell.SpatialDimension())
		top      = cell.Topology()
		cellDim  = cell.Dimension()
		ids      = make(dual.EntityIDs)
		perms    = make(dual.EntityPermutations)
	)
	for _, v := range verts {
		for i := range centroid {
			centroid[i] += v[i] / float64(len(verts))
		}
	}
	for dim, ents := range top {
		var (
			size = cell.SymmetryGroupSize(dim)
			dofs = []int{}
		)
		if dim == cellDim {
			dofs = []int{0}
		}
		ids[dim] = make([][]int, len(ents))
		perms[dim] = make([]map[int][]int, len(ents))
		for e := range ents {
			ids[dim][e] = dofs
			perms[dim][e] = make(map[int][]int, size)
			for o := 0; o < size; o++ {
				perms[dim][e][o] = dofs
			}
		}
	}
	ds, err := dual.New([]*dual.Functional{dual.NewPointEvaluation(cell, centroid)}, cell, ids, perms)
	if err != nil {
		return
	}
	space, err := polynomial.ONPolynomialSet(cell, 0)
	if err != nil {
		return
	}
	return NewCiarletElement(space, ds, ElementOptions{
		Family:     P0,
		Degree:     0,
		FormDegree: cell.Dimension().Sum(),
		Mapping:    pullback.L2Piola,
	})
}
