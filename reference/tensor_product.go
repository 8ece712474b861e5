package reference

import (
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/notargets/febasis/errors"
)

// TensorProductCell is the Cartesian product of simple reference cells. Its
// entity dimensions are tuples with one component per factor.
type TensorProductCell struct {
	cellBase
	cells []Cell
}

// NewTensorProductCell forms the product of the factor cells. Vertices are
// ordered with the last factor varying fastest.
func NewTensorProductCell(cells ...Cell) (tp *TensorProductCell, err error) {
	if len(cells) == 0 || len(cells) > MaxFactors {
		err = errors.Configf("tensor product needs 1 to %d factors, have %d", MaxFactors, len(cells))
		return
	}
	for _, c := range cells {
		if c.Dimension().IsTuple() {
			err = errors.Unsupportedf("nested tensor product factor %v", c.Key())
			return
		}
	}
	var (
		nverts   = make([]int, len(cells))
		dimLists = make([][]Dim, len(cells))
		dimLens  = make([]int, len(cells))
	)
	for i, c := range cells {
		nverts[i] = len(c.Vertices())
		dimLists[i] = c.Topology().Dims()
		dimLens[i] = len(dimLists[i])
	}
	var vertices [][]float64
	for _, idx := range combin.Cartesian(nverts) {
		var v []float64
		for i, j := range idx {
			v = append(v, cells[i].Vertices()[j]...)
		}
		vertices = append(vertices, v)
	}
	topology := make(Topology)
	for _, dsel := range combin.Cartesian(dimLens) {
		var (
			parts  = make([]int, len(cells))
			topds  = make([][][]int, len(cells))
			counts = make([]int, len(cells))
		)
		for i, k := range dsel {
			d := dimLists[i][k]
			parts[i] = d.Int()
			topds[i] = cells[i].Topology()[d]
			counts[i] = len(topds[i])
		}
		dim := T(parts...)
		for _, ents := range combin.Cartesian(counts) {
			vlens := make([]int, len(cells))
			for i, e := range ents {
				vlens[i] = len(topds[i][e])
			}
			var vs []int
			for _, vsel := range combin.Cartesian(vlens) {
				sub := make([]int, len(cells))
				for i, k := range vsel {
					sub[i] = topds[i][ents[i]][k]
				}
				vs = append(vs, combin.IdxFor(sub, nverts))
			}
			topology[dim] = append(topology[dim], vs)
		}
	}
	var cb cellBase
	if cb, err = newCellBase(TENSORPRODUCT, vertices, topology); err != nil {
		return
	}
	tp = &TensorProductCell{cellBase: cb, cells: cells}
	return
}

// Factors returns the factor cells.
func (tp *TensorProductCell) Factors() []Cell { return tp.cells }

func (tp *TensorProductCell) Dimension() Dim {
	parts := make([]int, len(tp.cells))
	for i, c := range tp.cells {
		parts[i] = c.Dimension().Int()
	}
	return T(parts...)
}

func (tp *TensorProductCell) Key() string {
	keys := make([]string, len(tp.cells))
	for i, c := range tp.cells {
		keys[i] = c.Key()
	}
	return "(" + strings.Join(keys, " * ") + ")"
}

func (tp *TensorProductCell) String() string { return tp.Key() }

func (tp *TensorProductCell) checkDim(dim Dim) (err error) {
	if !dim.IsTuple() || dim.Len() != len(tp.cells) {
		err = errors.Configf("%v needs a dimension tuple of length %d, have %v", tp, len(tp.cells), dim)
	}
	return
}

// ConstructSubelement returns the product of the factor subelements.
func (tp *TensorProductCell) ConstructSubelement(dim Dim) (c Cell, err error) {
	if err = tp.checkDim(dim); err != nil {
		return
	}
	subs := make([]Cell, len(tp.cells))
	for i, f := range tp.cells {
		if subs[i], err = f.ConstructSubelement(D(dim.At(i))); err != nil {
			return
		}
	}
	return NewTensorProductCell(subs...)
}

// unravel splits a flat entity index of dimension dim into factor indices.
func (tp *TensorProductCell) unravel(dim Dim, entity int) (alpha []int, err error) {
	if err = tp.checkDim(dim); err != nil {
		return
	}
	if err = tp.checkEntity(dim, entity); err != nil {
		return
	}
	shape := make([]int, len(tp.cells))
	for i, c := range tp.cells {
		shape[i] = len(c.Topology()[D(dim.At(i))])
	}
	return combin.SubFor(nil, entity, shape), nil
}

func (tp *TensorProductCell) EntityTransform(dim Dim, entity int) (tr Transform, err error) {
	alpha, err := tp.unravel(dim, entity)
	if err != nil {
		return
	}
	sct := make([]Transform, len(tp.cells))
	for i, c := range tp.cells {
		if sct[i], err = c.EntityTransform(D(dim.At(i)), alpha[i]); err != nil {
			return
		}
	}
	slices := splitSlices(dim.Parts())
	tr = func(x []float64) (y []float64) {
		for i, t := range sct {
			y = append(y, t(x[slices[i][0]:slices[i][1]])...)
		}
		return
	}
	return
}

func (tp *TensorProductCell) Volume() (v float64) {
	v = 1
	for _, c := range tp.cells {
		v *= c.Volume()
	}
	return
}

// ReferenceNormal returns the facet normal scaled to unit infinity norm. The
// facet dimension differs from the cell dimension in exactly one factor,
// whose own reference normal fills that factor's coordinates.
func (tp *TensorProductCell) ReferenceNormal(facetDim Dim, facet int) (n []float64, err error) {
	alpha, err := tp.unravel(facetDim, facet)
	if err != nil {
		return
	}
	var (
		dim   = tp.Dimension()
		cellI = -1
	)
	for i := range tp.cells {
		switch dim.At(i) - facetDim.At(i) {
		case 0:
		case 1:
			if cellI >= 0 {
				err = errors.Configf("%v has no facets of dimension %v", tp, facetDim)
				return
			}
			cellI = i
		default:
			err = errors.Configf("%v has no facets of dimension %v", tp, facetDim)
			return
		}
	}
	if cellI < 0 {
		err = errors.Configf("%v has no facets of dimension %v", tp, facetDim)
		return
	}
	for i, c := range tp.cells {
		if i != cellI {
			n = append(n, make([]float64, c.SpatialDimension())...)
			continue
		}
		var ni []float64
		if ni, err = c.ReferenceNormal(D(facetDim.At(i)), alpha[i]); err != nil {
			return
		}
		n = append(n, ni...)
	}
	return
}

func (tp *TensorProductCell) subPoints(pt []float64) [][]float64 {
	dims := make([]int, len(tp.cells))
	for i, c := range tp.cells {
		dims[i] = c.SpatialDimension()
	}
	slices := splitSlices(dims)
	sub := make([][]float64, len(tp.cells))
	for i, s := range slices {
		sub[i] = pt[s[0]:s[1]]
	}
	return sub
}

// ContainsPoint holds when every factor contains its slice of the point.
func (tp *TensorProductCell) ContainsPoint(pt []float64, eps float64) bool {
	for i, p := range tp.subPoints(pt) {
		if !tp.cells[i].ContainsPoint(p, eps) {
			return false
		}
	}
	return true
}

// DistanceToPointL1 sums the factor distances.
func (tp *TensorProductCell) DistanceToPointL1(pt []float64) (dist float64) {
	for i, p := range tp.subPoints(pt) {
		dist += tp.cells[i].DistanceToPointL1(p)
	}
	return
}

// FactorSymmetryGroupSizes returns the symmetry group size of each factor
// of an entity of dimension dim.
func (tp *TensorProductCell) FactorSymmetryGroupSizes(dim Dim) (sizes []int) {
	sizes = make([]int, len(tp.cells))
	for i, c := range tp.cells {
		sizes[i] = c.SymmetryGroupSize(D(dim.At(i)))
	}
	return
}

// SymmetryGroupSize returns the number of product orientations. Orientation
// tuples are numbered row major, the last factor varying fastest.
func (tp *TensorProductCell) SymmetryGroupSize(dim Dim) (n int) {
	n = 1
	for _, s := range tp.FactorSymmetryGroupSizes(dim) {
		n *= s
	}
	return
}

func (tp *TensorProductCell) CellOrientationReflectionMap() []int {
	maps := make([][]int, len(tp.cells))
	for i, c := range tp.cells {
		maps[i] = c.CellOrientationReflectionMap()
	}
	return TensorProductReflectionMap(maps)
}

func splitSlices(lengths []int) (slices [][2]int) {
	slices = make([][2]int, len(lengths))
	var start int
	for i, l := range lengths {
		slices[i] = [2]int{start, start + l}
		start += l
	}
	return
}
