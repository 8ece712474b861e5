package reference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/utils"
)

// Family selects the vertex coordinates and entity numbering of a simplex.
type Family int

const (
	// UFC simplices have the origin and unit vectors as vertices.
	UFC Family = iota
	// Default simplices have vertices at -1 and 1.
	Default
	// Intrepid simplices share UFC coordinates with a cyclic numbering.
	Intrepid
)

func (f Family) String() string {
	switch f {
	case UFC:
		return "ufc"
	case Default:
		return "default"
	case Intrepid:
		return "intrepid"
	}
	return "unknown"
}

// Simplex is a reference point, interval, triangle or tetrahedron.
type Simplex struct {
	cellBase
	family Family
	// Affine map from cell coordinates to UFC coordinates
	toUFC  *mat.Dense
	toUFCb []float64
}

func newSimplex(family Family, shape Shape, vertices [][]float64, topology Topology) (s *Simplex, err error) {
	var cb cellBase
	if cb, err = newCellBase(shape, vertices, topology); err != nil {
		return
	}
	s = &Simplex{cellBase: cb, family: family}
	sd := len(vertices[0])
	if sd > 0 && len(vertices) == sd+1 {
		if s.toUFC, s.toUFCb, err = utils.AffineMapping(vertices, ufcVertices(sd)); err != nil {
			return nil, err
		}
	}
	return
}

func (s *Simplex) Family() Family { return s.family }

func (s *Simplex) Dimension() Dim { return D(s.SpatialDimension()) }

func (s *Simplex) Key() string {
	if s.shape == POINT {
		return "point"
	}
	return fmt.Sprintf("%v-%v", s.family, s.shape)
}

func (s *Simplex) String() string { return s.Key() }

// ConstructSubelement returns the reference simplex of the given dimension
// within the same family.
func (s *Simplex) ConstructSubelement(dim Dim) (c Cell, err error) {
	if !dim.IsTuple() && dim.Int() < 0 {
		err = errors.Unsupportedf("subelement of negative dimension %v", dim)
		return
	}
	if dim.IsTuple() || dim.Int() > s.SpatialDimension() {
		err = errors.Configf("%v has no subelement of dimension %v", s, dim)
		return
	}
	if dim.Int() == s.SpatialDimension() {
		return s, nil
	}
	family := s.family
	if family == Intrepid && dim.Int() < 2 {
		family = UFC
	}
	return NewSimplex(family, dim.Int())
}

// FacetElement returns the reference cell of the facets.
func (s *Simplex) FacetElement() (Cell, error) {
	return s.ConstructSubelement(D(s.SpatialDimension() - 1))
}

func (s *Simplex) EntityTransform(dim Dim, entity int) (tr Transform, err error) {
	if dim.IsTuple() {
		err = errors.Configf("%v has no entities of dimension %v", s, dim)
		return
	}
	if err = s.checkEntity(dim, entity); err != nil {
		return
	}
	switch dim.Int() {
	case 0:
		vertex := s.vertices[s.topology[dim][entity][0]]
		tr = func([]float64) []float64 { return utils.Copy(vertex) }
		return
	case s.SpatialDimension():
		tr = func(x []float64) []float64 { return utils.Copy(x) }
		return
	}
	var sub Cell
	if sub, err = s.ConstructSubelement(dim); err != nil {
		return
	}
	A, b, err := utils.AffineMapping(sub.Vertices(), s.VerticesOfSubcomplex(s.topology[dim][entity]))
	if err != nil {
		return
	}
	tr = func(x []float64) []float64 { return utils.ApplyAffine(A, b, x) }
	return
}

// Volume is |det A|/d! for the affine map A from the UFC simplex.
func (s *Simplex) Volume() float64 {
	sd := s.SpatialDimension()
	if sd == 0 {
		return 1
	}
	A := mat.NewDense(sd, sd, nil)
	for i, v := range s.vertices[1:] {
		for j := range v {
			A.Set(j, i, v[j]-s.vertices[0][j])
		}
	}
	return math.Abs(mat.Det(A)) / float64(utils.Factorial(sd))
}

// VolumeOfSubcomplex returns the measure of an entity of the simplex.
func (s *Simplex) VolumeOfSubcomplex(dim, entity int) (v float64, err error) {
	if err = s.checkEntity(D(dim), entity); err != nil {
		return
	}
	return SimplexVolume(s.VerticesOfSubcomplex(s.topology[D(dim)][entity]))
}

// SimplexVolume returns the measure of the simplex spanned by verts in its
// own dimension, which may be lower than the dimension of the coordinates.
func SimplexVolume(verts [][]float64) (v float64, err error) {
	sd := len(verts) - 1
	if sd < 0 {
		err = errors.Configf("volume of an empty vertex set")
		return
	}
	if sd == 0 {
		return 1, nil
	}
	A, _, err := utils.AffineMapping(ufcVertices(sd), verts)
	if err != nil {
		return
	}
	sv, err := utils.SingularValues(A)
	if err != nil {
		return
	}
	v = 1.
	for _, val := range sv {
		if val > utils.RANKTOL {
			v *= val
		}
	}
	v /= float64(utils.Factorial(sd))
	return
}

func (s *Simplex) checkFacet(facet int) (err error) {
	sd := s.SpatialDimension()
	if sd == 0 {
		return errors.Configf("a point has no facets")
	}
	return s.checkEntity(D(sd-1), facet)
}

// ComputeNormal returns the outward unit normal to a facet.
func (s *Simplex) ComputeNormal(facet int) (n []float64, err error) {
	if err = s.checkFacet(facet); err != nil {
		return
	}
	sd := s.SpatialDimension()
	if s.shape == LINE {
		vi := s.topology[D(0)][facet][0]
		n = make([]float64, sd)
		floats.SubTo(n, s.vertices[vi], s.vertices[1-vi])
		floats.Scale(1/floats.Norm(n, 2), n)
		return
	}
	var (
		cellVerts  = s.VerticesOfSubcomplex(s.topology[D(sd)][0])
		facetIDs   = s.topology[D(sd-1)][facet]
		facetVerts = s.VerticesOfSubcomplex(facetIDs)
	)
	span, _ := utils.SpanAndComplement(utils.NewRows(differences(cellVerts)))
	_, normalSpace := utils.SpanAndComplement(utils.NewRows(differences(facetVerts)))
	if span == nil || normalSpace == nil {
		err = errors.IllPosedf("%v facet %d is degenerate", s, facet)
		return
	}
	U, rank, err := utils.SubspaceIntersection(normalSpace, span)
	if err != nil {
		return
	}
	if rank != 1 {
		err = errors.IllPosedf("%v facet %d normal space has dimension %d", s, facet, rank)
		return
	}
	n = mat.Col(nil, 0, U)
	// Orient from the vertex off the facet toward the facet
	off := -1
	inFacet := make(map[int]bool, len(facetIDs))
	for _, v := range facetIDs {
		inFacet[v] = true
	}
	for _, v := range s.topology[D(sd)][0] {
		if !inFacet[v] {
			if off >= 0 {
				err = errors.IllPosedf("%v facet %d misses more than one vertex", s, facet)
				return
			}
			off = v
		}
	}
	if off < 0 {
		err = errors.IllPosedf("%v facet %d contains every vertex", s, facet)
		return
	}
	toFacet := make([]float64, sd)
	floats.SubTo(toFacet, s.vertices[facetIDs[0]], s.vertices[off])
	if floats.Dot(toFacet, n) < 0 {
		floats.Scale(-1, n)
	}
	return
}

// ComputeUFCNormal returns the facet normal in the UFC convention: the unit
// vector along (t1, -t0) for the edge tangent t of a triangle, and
// -2 t0 x t1 / |t0 x t1| for the face tangents of a tetrahedron, which has
// length 2. These need not point outward.
func (s *Simplex) ComputeUFCNormal(facet int) (n []float64, err error) {
	if err = s.checkFacet(facet); err != nil {
		return
	}
	var ts [][]float64
	switch s.shape {
	case TRIANGLE:
		if ts, err = s.ComputeTangents(1, facet); err != nil {
			return
		}
		n = []float64{ts[0][1], -ts[0][0]}
		floats.Scale(1/floats.Norm(n, 2), n)
	case TETRAHEDRON:
		if ts, err = s.ComputeTangents(2, facet); err != nil {
			return
		}
		n = cross(ts[0], ts[1])
		floats.Scale(-2/floats.Norm(n, 2), n)
	default:
		return s.ComputeNormal(facet)
	}
	return
}

// ComputeScaledNormal returns the outward normal scaled by the facet volume.
func (s *Simplex) ComputeScaledNormal(facet int) (n []float64, err error) {
	if n, err = s.ComputeNormal(facet); err != nil {
		return
	}
	vol, err := s.VolumeOfSubcomplex(s.SpatialDimension()-1, facet)
	if err != nil {
		return
	}
	floats.Scale(vol, n)
	return
}

// ReferenceNormal returns the outward facet normal scaled to unit infinity
// norm.
func (s *Simplex) ReferenceNormal(facetDim Dim, facet int) (n []float64, err error) {
	if facetDim != D(s.SpatialDimension()-1) {
		err = errors.Configf("%v reference normals need facet dimension %d, have %v",
			s, s.SpatialDimension()-1, facetDim)
		return
	}
	if n, err = s.ComputeNormal(facet); err != nil {
		return
	}
	floats.Scale(1/floats.Norm(n, math.Inf(1)), n)
	return
}

// ComputeTangents returns the differences between the vertices of an entity
// and its first vertex. These are not normalized.
func (s *Simplex) ComputeTangents(dim, entity int) (ts [][]float64, err error) {
	if err = s.checkEntity(D(dim), entity); err != nil {
		return
	}
	return differences(s.VerticesOfSubcomplex(s.topology[D(dim)][entity])), nil
}

func (s *Simplex) ComputeNormalizedTangents(dim, entity int) (ts [][]float64, err error) {
	if ts, err = s.ComputeTangents(dim, entity); err != nil {
		return
	}
	for _, t := range ts {
		floats.Scale(1/floats.Norm(t, 2), t)
	}
	return
}

// ComputeEdgeTangent returns v1 - v0 for an edge.
func (s *Simplex) ComputeEdgeTangent(edge int) (t []float64, err error) {
	ts, err := s.ComputeTangents(1, edge)
	if err != nil {
		return
	}
	return ts[0], nil
}

func (s *Simplex) ComputeNormalizedEdgeTangent(edge int) (t []float64, err error) {
	ts, err := s.ComputeNormalizedTangents(1, edge)
	if err != nil {
		return
	}
	return ts[0], nil
}

// ComputeFaceTangents returns the two tangents of a tetrahedron face.
func (s *Simplex) ComputeFaceTangents(face int) (ts [][]float64, err error) {
	if s.SpatialDimension() != 3 {
		err = errors.Unsupportedf("face tangents on %v", s)
		return
	}
	return s.ComputeTangents(2, face)
}

// ComputeFaceEdgeTangents returns the tangents of every edge of a k-face,
// binom(k+1, 2) vectors ordered by source vertex then destination.
func (s *Simplex) ComputeFaceEdgeTangents(dim, entity int) (ts [][]float64, err error) {
	if err = s.checkEntity(D(dim), entity); err != nil {
		return
	}
	vs := s.VerticesOfSubcomplex(s.topology[D(dim)][entity])
	for src := 0; src < dim; src++ {
		for dst := src + 1; dst <= dim; dst++ {
			t := make([]float64, len(vs[src]))
			floats.SubTo(t, vs[dst], vs[src])
			ts = append(ts, t)
		}
	}
	return
}

// MakePoints returns the points of the order lattice strictly inside the
// given entity.
func (s *Simplex) MakePoints(dim, entity, order int, variant string) (pts [][]float64, err error) {
	if err = s.checkEntity(D(dim), entity); err != nil {
		return
	}
	if dim == 0 {
		return [][]float64{utils.Copy(s.vertices[s.topology[D(0)][entity][0]])}, nil
	}
	return MakeLattice(s.VerticesOfSubcomplex(s.topology[D(dim)][entity]), order, 1, variant)
}

// Barycentric returns the barycentric coordinates of a point.
func (s *Simplex) Barycentric(pt []float64) (bary []float64) {
	x := pt
	if s.toUFC != nil && s.family != UFC {
		x = utils.ApplyAffine(s.toUFC, s.toUFCb, pt)
	}
	bary = make([]float64, len(x)+1)
	bary[0] = 1 - floats.Sum(x)
	copy(bary[1:], x)
	return
}

func (s *Simplex) ContainsPoint(pt []float64, eps float64) bool {
	return s.DistanceToPointL1(pt) <= eps
}

// DistanceToPointL1 returns the sum of the negative barycentric coordinates
// of the point, zero inside the cell.
func (s *Simplex) DistanceToPointL1(pt []float64) float64 {
	if s.SpatialDimension() == 0 {
		return 0
	}
	var sum float64
	for _, b := range s.Barycentric(pt) {
		sum += b - math.Abs(b)
	}
	return math.Abs(-0.5 * sum)
}

func (s *Simplex) SymmetryGroupSize(dim Dim) int {
	return utils.Factorial(dim.Int() + 1)
}

func (s *Simplex) CellOrientationReflectionMap() []int {
	return SimplexReflectionMap(s.SpatialDimension())
}

func differences(vs [][]float64) (ds [][]float64) {
	for _, v := range vs[1:] {
		d := make([]float64, len(v))
		floats.SubTo(d, v, vs[0])
		ds = append(ds, d)
	}
	return
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
