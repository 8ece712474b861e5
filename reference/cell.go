package reference

import (
	"github.com/notargets/febasis/errors"
)

// Transform maps reference coordinates of a sub-entity into the coordinates
// of its parent cell.
type Transform func(x []float64) []float64

// Cell is a reference cell: a fixed polytope with vertex coordinates and a
// combinatorial topology over which elements are defined.
type Cell interface {
	Shape() Shape
	Vertices() [][]float64
	Topology() Topology
	// SubEntities lists, for each entity, the entities whose vertex sets it
	// contains (itself included), in sorted order.
	SubEntities() map[Dim][][]Entity
	// Connectivity maps a (dim0, dim1) pair with dim1 <= dim0 to the dim1
	// entities of each dim0 entity. Tensor product dimensions are absent.
	Connectivity() map[[2]int][][]int
	SpatialDimension() int
	Dimension() Dim
	VerticesOfSubcomplex(ids []int) [][]float64
	ConstructSubelement(dim Dim) (Cell, error)
	EntityTransform(dim Dim, entity int) (Transform, error)
	Volume() float64
	ReferenceNormal(facetDim Dim, facet int) ([]float64, error)
	ContainsPoint(pt []float64, eps float64) bool
	DistanceToPointL1(pt []float64) float64
	SymmetryGroupSize(dim Dim) int
	CellOrientationReflectionMap() []int
	// Key identifies the cell by value, two cells with equal keys are equal.
	Key() string
}

// Equal reports whether two cells are the same reference cell.
func Equal(a, b Cell) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

type cellBase struct {
	shape        Shape
	vertices     [][]float64
	topology     Topology
	subEntities  map[Dim][][]Entity
	connectivity map[[2]int][][]int
}

func newCellBase(shape Shape, vertices [][]float64, topology Topology) (cb cellBase, err error) {
	if len(vertices) == 0 {
		err = errors.Configf("cell %v has no vertices", shape)
		return
	}
	sd := len(vertices[0])
	for i, v := range vertices {
		if len(v) != sd {
			err = errors.Configf("cell %v vertex %d has dimension %d, expected %d", shape, i, len(v), sd)
			return
		}
	}
	for d, ents := range topology {
		for e, verts := range ents {
			for _, v := range verts {
				if v < 0 || v >= len(vertices) {
					err = errors.Configf("cell %v entity (%v, %d) names vertex %d of %d",
						shape, d, e, v, len(vertices))
					return
				}
			}
		}
	}
	cb = cellBase{
		shape:    shape,
		vertices: vertices,
		topology: topology,
	}
	cb.buildSubEntities()
	cb.buildConnectivity()
	return
}

func (cb *cellBase) buildSubEntities() {
	dims := cb.topology.Dims()
	cb.subEntities = make(map[Dim][][]Entity, len(dims))
	for _, d := range dims {
		ents := cb.topology[d]
		cb.subEntities[d] = make([][]Entity, len(ents))
		for e, verts := range ents {
			set := make(map[int]bool, len(verts))
			for _, v := range verts {
				set[v] = true
			}
			var subs []Entity
			for _, d2 := range dims {
				for e2, verts2 := range cb.topology[d2] {
					if isSubset(verts2, set) {
						subs = append(subs, Entity{Dim: d2, Index: e2})
					}
				}
			}
			SortEntities(subs)
			cb.subEntities[d][e] = subs
		}
	}
}

func (cb *cellBase) buildConnectivity() {
	cb.connectivity = make(map[[2]int][][]int)
	for _, d0 := range cb.topology.Dims() {
		if d0.IsTuple() {
			continue
		}
		dim0 := d0.Int()
		for _, subs := range cb.subEntities[d0] {
			for dim1 := 0; dim1 <= dim0; dim1++ {
				ids := []int{}
				for _, s := range subs {
					if !s.Dim.IsTuple() && s.Dim.Int() == dim1 {
						ids = append(ids, s.Index)
					}
				}
				key := [2]int{dim0, dim1}
				cb.connectivity[key] = append(cb.connectivity[key], ids)
			}
		}
	}
}

func isSubset(verts []int, set map[int]bool) bool {
	for _, v := range verts {
		if !set[v] {
			return false
		}
	}
	return true
}

func (cb *cellBase) Shape() Shape { return cb.shape }

func (cb *cellBase) Vertices() [][]float64 { return cb.vertices }

func (cb *cellBase) Topology() Topology { return cb.topology }

func (cb *cellBase) SubEntities() map[Dim][][]Entity { return cb.subEntities }

func (cb *cellBase) Connectivity() map[[2]int][][]int { return cb.connectivity }

func (cb *cellBase) SpatialDimension() int { return len(cb.vertices[0]) }

func (cb *cellBase) VerticesOfSubcomplex(ids []int) (verts [][]float64) {
	verts = make([][]float64, len(ids))
	for i, id := range ids {
		verts[i] = cb.vertices[id]
	}
	return
}

func (cb *cellBase) checkEntity(dim Dim, entity int) (err error) {
	ents, ok := cb.topology[dim]
	if !ok {
		return errors.Configf("%v cell has no entities of dimension %v", cb.shape, dim)
	}
	if entity < 0 || entity >= len(ents) {
		return errors.Configf("%v cell has %d entities of dimension %v, requested %d",
			cb.shape, len(ents), dim, entity)
	}
	return
}

// EntityCounts returns the number of entities of each dimension in
// ascending dimension order.
func EntityCounts(c Cell) (dims []Dim, counts []int) {
	top := c.Topology()
	dims = top.Dims()
	counts = make([]int, len(dims))
	for i, d := range dims {
		counts[i] = len(top[d])
	}
	return
}
