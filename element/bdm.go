package element

import (
	"github.com/notargets/febasis/dual"
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/pullback"
	"github.com/notargets/febasis/quadrature"
	"github.com/notargets/febasis/reference"
)

// NewBDM returns the Brezzi-Douglas-Marini element of the given degree on a
// triangle or tetrahedron: the full vector P_k space with normal moments on
// the facets and, above degree one, moments against the Nedelec space of
// degree k-1 in the interior.
func NewBDM(cell reference.Cell, degree int, variant string) (el *CiarletElement, err error) {
	if degree < 1 {
		err = errors.Configf("BDM elements need degree >= 1, have %d", degree)
		return
	}
	s, ok := cell.(*reference.Simplex)
	if !ok || (s.SpatialDimension() != 2 && s.SpatialDimension() != 3) {
		err = errors.Unsupportedf("BDM elements on %s", cell.Key())
		return
	}
	kind, extra, err := ParseVariant(variant)
	if err != nil {
		return
	}
	if variant == "" {
		variant = string(IntegralVariant)
	}
	var (
		sd     = s.SpatialDimension()
		interp = degree + extra
		nodes  []*dual.Functional
		ids    = make(dual.EntityIDs)
	)
	for _, dim := range s.Topology().Dims() {
		ids[dim] = make([][]int, len(s.Topology()[dim]))
		for e := range ids[dim] {
			ids[dim][e] = []int{}
		}
	}
	var facetNodes [][]*dual.Functional
	switch kind {
	case PointVariant:
		facetNodes, err = bdmFacetPoints(s, degree)
	default:
		facetNodes, err = bdmFacetMoments(s, degree, interp+degree)
	}
	if err != nil {
		return
	}
	for f, fn := range facetNodes {
		for _, node := range fn {
			ids[reference.D(sd-1)][f] = append(ids[reference.D(sd-1)][f], len(nodes))
			nodes = append(nodes, node)
		}
	}
	if degree > 1 {
		qdeg := interp + degree - 1
		if kind == PointVariant {
			qdeg = 2*degree - 1
		}
		var interior []*dual.Functional
		if interior, err = bdmInteriorMoments(s, degree, qdeg); err != nil {
			return
		}
		for _, node := range interior {
			ids[reference.D(sd)][0] = append(ids[reference.D(sd)][0], len(nodes))
			nodes = append(nodes, node)
		}
	}
	ds, err := dual.New(nodes, s, ids, nil)
	if err != nil {
		return
	}
	space, err := polynomial.ONPolynomialSet(s, degree, sd)
	if err != nil {
		return
	}
	return NewCiarletElement(space, ds, ElementOptions{
		Family:     BDM,
		Variant:    variant,
		Degree:     degree,
		FormDegree: sd - 1,
		Mapping:    pullback.ContravariantPiola,
	})
}

// bdmFacetPoints places scaled normal evaluations at the interior points of
// the order sd+degree lattice on every facet.
func bdmFacetPoints(s *reference.Simplex, degree int) (nodes [][]*dual.Functional, err error) {
	sd := s.SpatialDimension()
	nodes = make([][]*dual.Functional, len(s.Topology()[reference.D(sd-1)]))
	for f := range nodes {
		var pts [][]float64
		if pts, err = s.MakePoints(sd-1, f, sd+degree, reference.Equispaced); err != nil {
			return
		}
		for _, pt := range pts {
			var node *dual.Functional
			if node, err = dual.NewPointScaledNormalEvaluation(s, f, pt); err != nil {
				return
			}
			nodes[f] = append(nodes[f], node)
		}
	}
	return
}

// bdmFacetMoments integrates the scaled normal component against an
// orthonormal basis of P_degree on every facet.
func bdmFacetMoments(s *reference.Simplex, degree, qdeg int) (nodes [][]*dual.Functional, err error) {
	sd := s.SpatialDimension()
	facet, err := s.ConstructSubelement(reference.D(sd - 1))
	if err != nil {
		return
	}
	q, err := quadrature.Create(facet, qdeg)
	if err != nil {
		return
	}
	P, err := polynomial.ONPolynomialSet(facet, degree)
	if err != nil {
		return
	}
	tab, err := P.Tabulate(0, q.Points)
	if err != nil {
		return
	}
	phis := tab[polynomial.MultiIndex{}]
	nodes = make([][]*dual.Functional, len(s.Topology()[reference.D(sd-1)]))
	for f := range nodes {
		for m := 0; m < P.Size(); m++ {
			var node *dual.Functional
			if node, err = dual.NewIntegralMomentOfScaledNormalEvaluation(s, q, phis.RawRowView(m), f); err != nil {
				return
			}
			nodes[f] = append(nodes[f], node)
		}
	}
	return
}

// bdmInteriorMoments integrates against the members of the Nedelec space of
// degree-1 over the cell.
func bdmInteriorMoments(s *reference.Simplex, degree, qdeg int) (nodes []*dual.Functional, err error) {
	ned, err := polynomial.NedelecSpace(s, degree-1)
	if err != nil {
		return
	}
	q, err := quadrature.Create(s, qdeg)
	if err != nil {
		return
	}
	tab, err := ned.Tabulate(0, q.Points)
	if err != nil {
		return
	}
	var (
		vals = tab[polynomial.MultiIndex{}]
		sd   = s.SpatialDimension()
	)
	for m := 0; m < ned.Size(); m++ {
		phi := make([][]float64, q.NumPoints())
		for k := range phi {
			phi[k] = make([]float64, sd)
			for c := range phi[k] {
				phi[k][c] = vals.At(m*sd+c, k)
			}
		}
		var node *dual.Functional
		if node, err = dual.NewFrobeniusIntegralMoment(s, q, phi); err != nil {
			return
		}
		nodes = append(nodes, node)
	}
	return
}
