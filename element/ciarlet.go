// Package element assembles Ciarlet finite elements from a polynomial space
// and a dual set, and builds the Lagrange, P0 and Brezzi-Douglas-Marini
// families on reference cells.
package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/dual"
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/logger"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/pullback"
	"github.com/notargets/febasis/quadrature"
	"github.com/notargets/febasis/reference"
)

// MaxCondition bounds the condition number of the dual evaluation matrix.
// Above it the nodes do not determine the space reliably.
const MaxCondition = 4.5e12

// SupportTolerance is the smallest squared integral over an entity for a
// basis function to count as supported there.
const SupportTolerance = 1.e-8

// CiarletElement is a polynomial space together with a dual set, carried
// in the nodal basis: node i applied to basis function j is delta_ij.
type CiarletElement struct {
	family     string
	variant    string
	degree     int
	formDegree int
	mapping    pullback.Mapping
	space      *polynomial.PolynomialSet
	basis      *polynomial.PolynomialSet
	dual       *dual.DualSet
}

// ElementOptions carries the descriptive data of an element that the
// assembly stores without interpreting.
type ElementOptions struct {
	Family     string
	Variant    string
	Degree     int
	FormDegree int
	Mapping    pullback.Mapping
}

// NewCiarletElement computes the nodal basis of space with respect to the
// nodes of ds. With V[i][m] the value of node i on member m of the space,
// the nodal coefficients are V^-T times the coefficients of the space.
func NewCiarletElement(space *polynomial.PolynomialSet, ds *dual.DualSet, opts ElementOptions) (el *CiarletElement, err error) {
	if ds.Size() != space.Size() {
		err = errors.IllPosedf("%s: %d nodes for a polynomial space of dimension %d",
			opts.Family, ds.Size(), space.Size())
		return
	}
	V, err := ds.EvaluationMatrix(space)
	if err != nil {
		return
	}
	var lu mat.LU
	lu.Factorize(V.T())
	if cond := lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > MaxCondition {
		err = errors.IllPosedf("%s of degree %d on %s is not unisolvent, condition number %g",
			opts.Family, opts.Degree, ds.Cell().Key(), cond)
		return
	}
	var coeffs mat.Dense
	if err = lu.SolveTo(&coeffs, false, space.Coeffs()); err != nil {
		err = errors.Mark(errors.Wrapf(err, "%s nodal basis", opts.Family), errors.ErrIllPosed)
		return
	}
	basis, err := space.WithCoeffs(&coeffs)
	if err != nil {
		return
	}
	el = &CiarletElement{
		family:     opts.Family,
		variant:    opts.Variant,
		degree:     opts.Degree,
		formDegree: opts.FormDegree,
		mapping:    opts.Mapping,
		space:      space,
		basis:      basis,
		dual:       ds,
	}
	logger.Debugw("assembled element",
		logger.FieldFamily, el.family,
		logger.FieldCell, el.Cell().Key(),
		logger.FieldDegree, el.degree,
		logger.FieldVariant, el.variant,
		logger.FieldDofs, el.SpaceDimension())
	return
}

func (el *CiarletElement) Cell() reference.Cell { return el.dual.Cell() }

func (el *CiarletElement) Family() string { return el.family }

func (el *CiarletElement) Variant() string { return el.variant }

func (el *CiarletElement) Degree() int { return el.degree }

// FormDegree is the differential form degree: 0 for H1, sd-1 for H(div)
// and sd for L2 elements.
func (el *CiarletElement) FormDegree() int { return el.formDegree }

func (el *CiarletElement) Mapping() pullback.Mapping { return el.mapping }

func (el *CiarletElement) Nodes() []*dual.Functional { return el.dual.Nodes() }

func (el *CiarletElement) DualSet() *dual.DualSet { return el.dual }

// Space is the polynomial space in its original spanning basis.
func (el *CiarletElement) Space() *polynomial.PolynomialSet { return el.space }

// Basis is the polynomial space in the nodal basis.
func (el *CiarletElement) Basis() *polynomial.PolynomialSet { return el.basis }

func (el *CiarletElement) SpaceDimension() int { return el.basis.Size() }

func (el *CiarletElement) ValueShape() []int { return el.basis.ValueShape() }

func (el *CiarletElement) EntityDofs() dual.EntityIDs { return el.dual.EntityIDs() }

func (el *CiarletElement) EntityClosureDofs() dual.EntityIDs { return el.dual.EntityClosureIDs() }

func (el *CiarletElement) EntityPermutations() dual.EntityPermutations {
	return el.dual.EntityPermutations()
}

// Key identifies the element by value.
func (el *CiarletElement) Key() string {
	if el.variant == "" {
		return fmt.Sprintf("%s(%s,%d)", el.family, el.Cell().Key(), el.degree)
	}
	return fmt.Sprintf("%s(%s,%d,%s)", el.family, el.Cell().Key(), el.degree, el.variant)
}

func (el *CiarletElement) String() string { return el.Key() }

// Tabulate evaluates the nodal basis and its derivatives up to total order.
// Row j*ncomp+c of each matrix holds component c of basis function j.
func (el *CiarletElement) Tabulate(order int, pts [][]float64) (map[polynomial.MultiIndex]*mat.Dense, error) {
	return el.basis.Tabulate(order, pts)
}

// PushForward tabulates the basis at pts and carries the values onto a
// physical cell whose map from the reference cell has Jacobian J, using the
// element's mapping. The layout matches Tabulate.
func (el *CiarletElement) PushForward(J mat.Matrix, pts [][]float64) (vals *mat.Dense, err error) {
	tab, err := el.basis.Tabulate(0, pts)
	if err != nil {
		return
	}
	var (
		ref      = tab[polynomial.MultiIndex{}]
		strategy = el.mapping.Strategy()
		ncomp    = el.basis.NumComponents()
		v        = make([]float64, ncomp)
	)
	vals = mat.NewDense(el.SpaceDimension()*ncomp, len(pts), nil)
	for j := 0; j < el.SpaceDimension(); j++ {
		for k := range pts {
			for c := range v {
				v[c] = ref.At(j*ncomp+c, k)
			}
			var u []float64
			if u, err = strategy.Apply(J, v); err != nil {
				return nil, errors.Wrapf(err, "%s push forward", el.Key())
			}
			for c, uc := range u {
				vals.Set(j*ncomp+c, k, uc)
			}
		}
	}
	return
}

// DualMatrix applies the nodes to the nodal basis. It is the identity up to
// the accuracy of the solve.
func (el *CiarletElement) DualMatrix() (*mat.Dense, error) {
	return el.dual.EvaluationMatrix(el.basis)
}

// Interpolate applies every node to f, giving the coefficients of the
// interpolant of f in the nodal basis.
func (el *CiarletElement) Interpolate(f func(x []float64) []float64) (coeffs []float64) {
	coeffs = make([]float64, el.dual.Size())
	for i, node := range el.dual.Nodes() {
		coeffs[i] = node.Evaluate(f)
	}
	return
}

// EntitySupportDofs returns, for every entity of dimension dim, the basis
// functions that do not vanish on it.
func (el *CiarletElement) EntitySupportDofs(dim reference.Dim) (support [][]int, err error) {
	var (
		cell  = el.Cell()
		ents  = cell.Topology()[dim]
		ncomp = el.basis.NumComponents()
		qdeg  = max(2*el.basis.EmbeddedDegree(), 1)
	)
	if ents == nil {
		err = errors.Configf("%s has no entities of dimension %v", cell.Key(), dim)
		return
	}
	support = make([][]int, len(ents))
	for e := range ents {
		q, pts, err := quadrature.CreateOnEntity(cell, dim, e, qdeg)
		if err != nil {
			return nil, err
		}
		tab, err := el.basis.Tabulate(0, pts)
		if err != nil {
			return nil, err
		}
		vals := tab[polynomial.MultiIndex{}]
		support[e] = []int{}
		for j := 0; j < el.SpaceDimension(); j++ {
			var sum float64
			for k, w := range q.Weights {
				for c := 0; c < ncomp; c++ {
					v := vals.At(j*ncomp+c, k)
					sum += w * v * v
				}
			}
			if sum > SupportTolerance {
				support[e] = append(support[e], j)
			}
		}
	}
	return
}
