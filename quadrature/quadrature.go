// Package quadrature provides integration rules on reference cells: collapsed
// Gauss-Jacobi rules on simplices and tensor products of Gauss-Legendre
// rules on hypercubes and product cells.
package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/reference"
	"github.com/notargets/febasis/utils"
)

// Rule is a set of points on a reference cell with integration weights.
type Rule struct {
	cell    reference.Cell
	Degree  int
	Points  [][]float64
	Weights []float64
}

func (r *Rule) Cell() reference.Cell { return r.cell }

func (r *Rule) NumPoints() int { return len(r.Points) }

// Integrate applies the rule to f.
func (r *Rule) Integrate(f func(x []float64) float64) (sum float64) {
	for i, x := range r.Points {
		sum += r.Weights[i] * f(x)
	}
	return
}

// Create returns a rule on cell that integrates polynomials of total degree
// up to degree exactly (per factor degree on product cells).
func Create(cell reference.Cell, degree int) (r *Rule, err error) {
	if degree < 0 {
		err = errors.Configf("quadrature degree must be non-negative, have %d", degree)
		return
	}
	// Points per direction of the collapsed Gauss rules
	m := (degree + 2) / 2
	switch c := cell.(type) {
	case *reference.Simplex:
		r, err = simplexRule(c, m)
	case *reference.Hypercube:
		if r, err = Create(c.Product(), degree); err != nil {
			return
		}
	case *reference.TensorProductCell:
		r, err = productRule(c, degree)
	default:
		err = errors.Unsupportedf("quadrature on %s", cell.Key())
	}
	if err != nil {
		return
	}
	r.cell, r.Degree = cell, degree
	return
}

func simplexRule(s *reference.Simplex, m int) (r *Rule, err error) {
	sd := s.SpatialDimension()
	var pts [][]float64
	var wts []float64
	switch sd {
	case 0:
		return &Rule{Points: [][]float64{{}}, Weights: []float64{1}}, nil
	case 1:
		x, w := utils.JacobiGQ(0, 0, m-1)
		for i := range x {
			pts = append(pts, []float64{0.5 * (1 + x[i])})
			wts = append(wts, 0.5*w[i])
		}
	case 2:
		a, wa := utils.JacobiGQ(0, 0, m-1)
		b, wb := utils.JacobiGQ(1, 0, m-1)
		for i := range a {
			for j := range b {
				y := 0.5 * (1 + b[j])
				x := 0.5 * (1 + a[i]) * (1 - y)
				pts = append(pts, []float64{x, y})
				wts = append(wts, wa[i]*wb[j]/8)
			}
		}
	case 3:
		a, wa := utils.JacobiGQ(0, 0, m-1)
		b, wb := utils.JacobiGQ(1, 0, m-1)
		c, wc := utils.JacobiGQ(2, 0, m-1)
		for i := range a {
			for j := range b {
				for k := range c {
					z := 0.5 * (1 + c[k])
					y := 0.5 * (1 + b[j]) * (1 - z)
					x := 0.5 * (1 + a[i]) * (1 - y - z)
					pts = append(pts, []float64{x, y, z})
					wts = append(wts, wa[i]*wb[j]*wc[k]/64)
				}
			}
		}
	default:
		err = errors.Unsupportedf("quadrature on a simplex of dimension %d", sd)
		return
	}
	r = &Rule{Points: pts, Weights: wts}
	if s.Family() != reference.UFC {
		err = r.mapFromUFC(s)
	}
	return
}

// mapFromUFC moves a rule on the UFC simplex onto the vertices of s.
func (r *Rule) mapFromUFC(s *reference.Simplex) (err error) {
	ufc, err := reference.UFCSimplex(s.SpatialDimension())
	if err != nil {
		return
	}
	A, b, err := utils.AffineMapping(ufc.Vertices(), s.Vertices())
	if err != nil {
		return
	}
	scale := math.Abs(mat.Det(A))
	for i, x := range r.Points {
		r.Points[i] = utils.ApplyAffine(A, b, x)
		r.Weights[i] *= scale
	}
	return
}

func productRule(tp *reference.TensorProductCell, degree int) (r *Rule, err error) {
	factors := tp.Factors()
	rules := make([]*Rule, len(factors))
	lens := make([]int, len(factors))
	for i, f := range factors {
		if rules[i], err = Create(f, degree); err != nil {
			return
		}
		lens[i] = rules[i].NumPoints()
	}
	r = &Rule{}
	for _, idx := range combin.Cartesian(lens) {
		var (
			pt = []float64{}
			w  = 1.
		)
		for i, j := range idx {
			pt = append(pt, rules[i].Points[j]...)
			w *= rules[i].Weights[j]
		}
		r.Points = append(r.Points, pt)
		r.Weights = append(r.Weights, w)
	}
	return
}

// CreateOnEntity returns a rule of the given degree on the reference cell of
// an entity, with its points also mapped into the coordinates of cell.
func CreateOnEntity(cell reference.Cell, dim reference.Dim, entity, degree int) (r *Rule, mapped [][]float64, err error) {
	sub, err := cell.ConstructSubelement(dim)
	if err != nil {
		return
	}
	if r, err = Create(sub, degree); err != nil {
		return
	}
	tr, err := cell.EntityTransform(dim, entity)
	if err != nil {
		return
	}
	mapped = make([][]float64, r.NumPoints())
	for i, x := range r.Points {
		mapped[i] = tr(x)
	}
	return
}
