package reference

import (
	"fmt"
	"sort"
	"strings"
)

// Shape is the code of a reference cell shape.
type Shape int

const (
	POINT         Shape = 0
	LINE          Shape = 1
	TRIANGLE      Shape = 2
	TETRAHEDRON   Shape = 3
	QUADRILATERAL Shape = 11
	HEXAHEDRON    Shape = 111
	TENSORPRODUCT Shape = 99
)

func (s Shape) String() string {
	switch s {
	case POINT:
		return "point"
	case LINE:
		return "interval"
	case TRIANGLE:
		return "triangle"
	case TETRAHEDRON:
		return "tetrahedron"
	case QUADRILATERAL:
		return "quadrilateral"
	case HEXAHEDRON:
		return "hexahedron"
	case TENSORPRODUCT:
		return "tensorproduct"
	}
	return "unknown"
}

// MaxFactors is the largest number of factor cells in a tensor product cell.
const MaxFactors = 4

// Dim is the dimension of a topological entity. Simple cells use a single
// integer dimension, tensor product cells carry one dimension per factor.
// Dim is comparable and is used as a map key.
type Dim struct {
	tuple bool
	n     int8
	c     [MaxFactors]int8
}

// D returns the dimension d of a simple cell entity.
func D(d int) Dim {
	return Dim{n: 1, c: [MaxFactors]int8{int8(d)}}
}

// T returns a tensor product dimension with one component per factor.
func T(ds ...int) Dim {
	if len(ds) > MaxFactors {
		panic(fmt.Errorf("tensor product dimension has %d factors, limit is %d", len(ds), MaxFactors))
	}
	dim := Dim{tuple: true, n: int8(len(ds))}
	for i, d := range ds {
		dim.c[i] = int8(d)
	}
	return dim
}

func (d Dim) IsTuple() bool { return d.tuple }

func (d Dim) Len() int { return int(d.n) }

func (d Dim) At(i int) int { return int(d.c[i]) }

// Int returns the integer dimension of a simple cell entity, or the summed
// dimension of a tensor product entity.
func (d Dim) Int() int { return d.Sum() }

func (d Dim) Sum() (s int) {
	for i := 0; i < int(d.n); i++ {
		s += int(d.c[i])
	}
	return
}

func (d Dim) Parts() (p []int) {
	p = make([]int, d.n)
	for i := range p {
		p[i] = int(d.c[i])
	}
	return
}

// Less orders dimensions lexicographically by component.
func (d Dim) Less(o Dim) bool {
	for i := 0; i < int(d.n) && i < int(o.n); i++ {
		if d.c[i] != o.c[i] {
			return d.c[i] < o.c[i]
		}
	}
	return d.n < o.n
}

func (d Dim) String() string {
	if !d.tuple {
		return fmt.Sprintf("%d", d.c[0])
	}
	parts := make([]string, d.n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d", d.c[i])
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Entity names the index-th entity of dimension Dim.
type Entity struct {
	Dim   Dim
	Index int
}

func (e Entity) Less(o Entity) bool {
	if e.Dim != o.Dim {
		return e.Dim.Less(o.Dim)
	}
	return e.Index < o.Index
}

func (e Entity) String() string {
	return fmt.Sprintf("(%v, %d)", e.Dim, e.Index)
}

// Topology maps an entity dimension to the ordered vertex indices of each
// entity of that dimension.
type Topology map[Dim][][]int

// Dims returns the entity dimensions in ascending order.
func (t Topology) Dims() (dims []Dim) {
	dims = make([]Dim, 0, len(t))
	for d := range t {
		dims = append(dims, d)
	}
	SortDims(dims)
	return
}

func SortDims(dims []Dim) {
	sort.Slice(dims, func(i, j int) bool { return dims[i].Less(dims[j]) })
}

func SortEntities(ents []Entity) {
	sort.Slice(ents, func(i, j int) bool { return ents[i].Less(ents[j]) })
}
