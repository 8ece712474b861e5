package reference

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/utils"
)

// Hypercube is the UFC quadrilateral or hexahedron: a product of UFC
// intervals whose tuple entity dimensions are flattened to their sums.
type Hypercube struct {
	cellBase
	product   *TensorProductCell
	unflatMap map[Entity]Entity
	flatMap   map[Entity]Entity
}

var hypercubeShapes = map[int]Shape{2: QUADRILATERAL, 3: HEXAHEDRON}

// NewUFCHypercube returns the UFC quadrilateral (dim 2) or hexahedron (dim 3).
func NewUFCHypercube(dim int) (h *Hypercube, err error) {
	shape, ok := hypercubeShapes[dim]
	if !ok {
		err = errors.Configf("no UFC hypercube of dimension %d", dim)
		return
	}
	factors := make([]Cell, dim)
	for i := range factors {
		if factors[i], err = UFCSimplex(1); err != nil {
			return
		}
	}
	product, err := NewTensorProductCell(factors...)
	if err != nil {
		return
	}
	pt := product.Topology()
	var cb cellBase
	if cb, err = newCellBase(shape, product.Vertices(), Topology(FlattenEntities(map[Dim][][]int(pt)))); err != nil {
		return
	}
	h = &Hypercube{
		cellBase:  cb,
		product:   product,
		unflatMap: unflatteningMap(pt),
		flatMap:   make(map[Entity]Entity),
	}
	for flat, tuple := range h.unflatMap {
		h.flatMap[tuple] = flat
	}
	return
}

func NewUFCQuadrilateral() (*Hypercube, error) { return NewUFCHypercube(2) }

func NewUFCHexahedron() (*Hypercube, error) { return NewUFCHypercube(3) }

// FlattenEntities concatenates per-dimension entity data of a tensor product
// cell under the summed dimension, in ascending tuple order.
func FlattenEntities[T any](m map[Dim][]T) (flat map[Dim][]T) {
	dims := make([]Dim, 0, len(m))
	for d := range m {
		dims = append(dims, d)
	}
	SortDims(dims)
	flat = make(map[Dim][]T)
	for _, d := range dims {
		fd := D(d.Sum())
		flat[fd] = append(flat[fd], m[d]...)
	}
	return
}

func unflatteningMap(pt Topology) (unflat map[Entity]Entity) {
	counter := make(map[int]int)
	unflat = make(map[Entity]Entity)
	for _, d := range pt.Dims() {
		fd := d.Sum()
		for e := range pt[d] {
			unflat[Entity{D(fd), counter[fd]}] = Entity{d, e}
			counter[fd]++
		}
	}
	return
}

// Product returns the tensor product of intervals the cube flattens.
func (h *Hypercube) Product() *TensorProductCell { return h.product }

// Unflatten maps a flat entity to the tensor product entity.
func (h *Hypercube) Unflatten(dim Dim, entity int) (tdim Dim, tentity int, err error) {
	te, ok := h.unflatMap[Entity{dim, entity}]
	if !ok {
		err = errors.Configf("%v has no entity (%v, %d)", h, dim, entity)
		return
	}
	return te.Dim, te.Index, nil
}

// Flatten maps a tensor product entity to the flat entity.
func (h *Hypercube) Flatten(tdim Dim, tentity int) (dim Dim, entity int, err error) {
	fe, ok := h.flatMap[Entity{tdim, tentity}]
	if !ok {
		err = errors.Configf("%v has no product entity (%v, %d)", h, tdim, tentity)
		return
	}
	return fe.Dim, fe.Index, nil
}

func (h *Hypercube) Dimension() Dim { return D(h.SpatialDimension()) }

func (h *Hypercube) Key() string { return "ufc-" + h.shape.String() }

func (h *Hypercube) String() string { return h.Key() }

func (h *Hypercube) ConstructSubelement(dim Dim) (c Cell, err error) {
	sd := h.SpatialDimension()
	if !dim.IsTuple() && dim.Int() < 0 {
		err = errors.Unsupportedf("subelement of negative dimension %v", dim)
		return
	}
	if dim.IsTuple() || dim.Int() > sd {
		err = errors.Configf("%v has no subelement of dimension %v", h, dim)
		return
	}
	switch d := dim.Int(); {
	case d == sd:
		return h, nil
	case d < 2:
		return UFCSimplex(d)
	default:
		return NewUFCHypercube(d)
	}
}

func (h *Hypercube) EntityTransform(dim Dim, entity int) (tr Transform, err error) {
	tdim, te, err := h.Unflatten(dim, entity)
	if err != nil {
		return
	}
	return h.product.EntityTransform(tdim, te)
}

func (h *Hypercube) Volume() float64 { return h.product.Volume() }

func (h *Hypercube) ReferenceNormal(facetDim Dim, facet int) (n []float64, err error) {
	if facetDim != D(h.SpatialDimension()-1) {
		err = errors.Configf("%v reference normals need facet dimension %d, have %v",
			h, h.SpatialDimension()-1, facetDim)
		return
	}
	tdim, te, err := h.Unflatten(facetDim, facet)
	if err != nil {
		return
	}
	return h.product.ReferenceNormal(tdim, te)
}

func (h *Hypercube) ContainsPoint(pt []float64, eps float64) bool {
	return h.product.ContainsPoint(pt, eps)
}

func (h *Hypercube) DistanceToPointL1(pt []float64) float64 {
	return h.product.DistanceToPointL1(pt)
}

// SymmetryGroupSize is the order of the hyperoctahedral group, 2^d d!.
func (h *Hypercube) SymmetryGroupSize(dim Dim) int {
	return []int{1, 2, 8, 48}[dim.Int()]
}

func (h *Hypercube) CellOrientationReflectionMap() []int {
	return h.product.CellOrientationReflectionMap()
}

// MakePoints returns the interior points of the order tensor lattice on an
// entity, the first axis varying slowest.
func (h *Hypercube) MakePoints(dim, entity, order int, variant string) (pts [][]float64, err error) {
	if err = h.checkEntity(D(dim), entity); err != nil {
		return
	}
	if dim == 0 {
		return [][]float64{utils.Copy(h.vertices[h.topology[D(0)][entity][0]])}, nil
	}
	var x1d []float64
	switch variant {
	case "", Equispaced:
		for i := 1; i < order; i++ {
			x1d = append(x1d, float64(i)/float64(order))
		}
	case GLL:
		if order > 1 {
			x := gllFamily(order)
			x1d = x[1:order]
		}
	default:
		err = errors.Configf("unknown point variant %q", variant)
		return
	}
	if len(x1d) == 0 {
		return
	}
	tr, err := h.EntityTransform(D(dim), entity)
	if err != nil {
		return
	}
	lens := make([]int, dim)
	for i := range lens {
		lens[i] = len(x1d)
	}
	for _, idx := range combin.Cartesian(lens) {
		x := make([]float64, dim)
		for i, j := range idx {
			x[i] = x1d[j]
		}
		pts = append(pts, tr(x))
	}
	return
}

// IsHypercube reports whether a cell is an interval, a flattened cube or a
// tensor product of such cells.
func IsHypercube(c Cell) bool {
	switch cell := c.(type) {
	case *Simplex:
		return cell.Shape() == LINE
	case *Hypercube:
		return true
	case *TensorProductCell:
		for _, f := range cell.Factors() {
			if !IsHypercube(f) {
				return false
			}
		}
		return true
	}
	return false
}

// FlattenReferenceCube returns the UFC hypercube matching a tensor product
// of intervals. Points and intervals are returned unchanged.
func FlattenReferenceCube(c Cell) (Cell, error) {
	sum := c.Dimension().Sum()
	if sum <= 1 {
		return c, nil
	}
	if !IsHypercube(c) {
		return nil, errors.Unsupportedf("%s is not a hypercube", c.Key())
	}
	return NewUFCHypercube(sum)
}
