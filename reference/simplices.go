package reference

import (
	"strings"

	"github.com/notargets/febasis/errors"
)

var (
	ufcTopologies = map[int]Topology{
		0: {D(0): {{0}}},
		1: {D(0): {{0}, {1}}, D(1): {{0, 1}}},
		2: {
			D(0): {{0}, {1}, {2}},
			D(1): {{1, 2}, {0, 2}, {0, 1}},
			D(2): {{0, 1, 2}},
		},
		3: {
			D(0): {{0}, {1}, {2}, {3}},
			D(1): {{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
			D(2): {{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
			D(3): {{0, 1, 2, 3}},
		},
	}
	defaultTopologies = map[int]Topology{
		1: {D(0): {{0}, {1}}, D(1): {{0, 1}}},
		2: {
			D(0): {{0}, {1}, {2}},
			D(1): {{1, 2}, {2, 0}, {0, 1}},
			D(2): {{0, 1, 2}},
		},
		3: {
			D(0): {{0}, {1}, {2}, {3}},
			D(1): {{1, 2}, {2, 0}, {0, 1}, {0, 3}, {1, 3}, {2, 3}},
			D(2): {{1, 3, 2}, {2, 3, 0}, {3, 1, 0}, {0, 1, 2}},
			D(3): {{0, 1, 2, 3}},
		},
	}
	intrepidTopologies = map[int]Topology{
		2: {
			D(0): {{0}, {1}, {2}},
			D(1): {{0, 1}, {1, 2}, {2, 0}},
			D(2): {{0, 1, 2}},
		},
		3: {
			D(0): {{0}, {1}, {2}, {3}},
			D(1): {{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
			D(2): {{0, 1, 3}, {1, 2, 3}, {0, 3, 2}, {0, 2, 1}},
			D(3): {{0, 1, 2, 3}},
		},
	}
	simplexShapes = []Shape{POINT, LINE, TRIANGLE, TETRAHEDRON}
)

// ufcVertices returns the origin followed by the unit vectors of R^sd.
func ufcVertices(sd int) (verts [][]float64) {
	verts = make([][]float64, sd+1)
	for i := range verts {
		verts[i] = make([]float64, sd)
		if i > 0 {
			verts[i][i-1] = 1
		}
	}
	return
}

// defaultVertices returns the biunit simplex: (-1,...,-1) followed by the
// points with a single coordinate raised to 1.
func defaultVertices(sd int) (verts [][]float64) {
	verts = ufcVertices(sd)
	for _, v := range verts {
		for j := range v {
			v[j] = 2*v[j] - 1
		}
	}
	return
}

// NewSimplex returns the reference simplex of a family and dimension 0..3.
// Intrepid numbering only differs from UFC for triangles and tetrahedra.
func NewSimplex(family Family, dim int) (s *Simplex, err error) {
	if dim < 0 || dim > 3 {
		err = errors.Configf("no %v simplex of dimension %d", family, dim)
		return
	}
	if dim == 0 {
		return newSimplex(UFC, POINT, [][]float64{{}}, ufcTopologies[0])
	}
	shape := simplexShapes[dim]
	switch family {
	case UFC:
		return newSimplex(UFC, shape, ufcVertices(dim), ufcTopologies[dim])
	case Default:
		return newSimplex(Default, shape, defaultVertices(dim), defaultTopologies[dim])
	case Intrepid:
		if dim == 1 {
			return newSimplex(UFC, shape, ufcVertices(dim), ufcTopologies[dim])
		}
		return newSimplex(Intrepid, shape, ufcVertices(dim), intrepidTopologies[dim])
	}
	err = errors.Configf("unknown simplex family %v", family)
	return
}

// UFCSimplex returns the UFC reference simplex of dimension 0..3.
func UFCSimplex(dim int) (*Simplex, error) { return NewSimplex(UFC, dim) }

// DefaultSimplex returns the biunit reference simplex of dimension 0..3.
func DefaultSimplex(dim int) (*Simplex, error) { return NewSimplex(Default, dim) }

// NewPoint returns the reference point.
func NewPoint() *Simplex {
	s, err := NewSimplex(UFC, 0)
	if err != nil {
		panic(err)
	}
	return s
}

// UFCCell returns the UFC reference cell with the given name. Names of
// tensor product cells join the factor names with " * ".
func UFCCell(name string) (c Cell, err error) {
	if strings.Contains(name, " * ") {
		parts := strings.Split(name, " * ")
		factors := make([]Cell, len(parts))
		for i, part := range parts {
			if factors[i], err = UFCCell(part); err != nil {
				return
			}
		}
		return NewTensorProductCell(factors...)
	}
	switch strings.TrimSpace(name) {
	case "vertex", "point":
		return UFCSimplex(0)
	case "interval":
		return UFCSimplex(1)
	case "triangle":
		return UFCSimplex(2)
	case "tetrahedron":
		return UFCSimplex(3)
	case "quadrilateral":
		return NewUFCQuadrilateral()
	case "hexahedron":
		return NewUFCHexahedron()
	}
	err = errors.Configf("unknown UFC cell %q", name)
	return
}
