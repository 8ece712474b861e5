// Package dual holds the degrees of freedom of finite elements: linear
// functionals on polynomial spaces and the dual sets that attach them to the
// entities of a reference cell.
package dual

import (
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/quadrature"
	"github.com/notargets/febasis/reference"
)

type Kind int

const (
	PointEvaluation Kind = iota
	PointScaledNormalEvaluation
	IntegralMoment
	IntegralMomentOfScaledNormalEvaluation
	FrobeniusIntegralMoment
)

func (k Kind) String() string {
	switch k {
	case PointEvaluation:
		return "PointEvaluation"
	case PointScaledNormalEvaluation:
		return "PointScaledNormalEvaluation"
	case IntegralMoment:
		return "IntegralMoment"
	case IntegralMomentOfScaledNormalEvaluation:
		return "IntegralMomentOfScaledNormalEvaluation"
	case FrobeniusIntegralMoment:
		return "FrobeniusIntegralMoment"
	}
	return "Unknown"
}

// Functional is a weighted sum of point values,
// l(f) = sum_q sum_c Weights[q][c] f_c(Points[q]).
type Functional struct {
	kind    Kind
	cell    reference.Cell
	shape   []int
	points  [][]float64
	weights [][]float64
}

// ScaledNormaler is a cell with volume scaled facet normals.
type ScaledNormaler interface {
	ComputeScaledNormal(facet int) ([]float64, error)
}

func (f *Functional) Kind() Kind { return f.kind }

func (f *Functional) Cell() reference.Cell { return f.cell }

// ValueShape is the value shape of the functions the functional acts on.
func (f *Functional) ValueShape() []int { return f.shape }

func (f *Functional) NumComponents() (n int) {
	n = 1
	for _, s := range f.shape {
		n *= s
	}
	return
}

func (f *Functional) Points() [][]float64 { return f.points }

// Weights holds one weight per point and value component.
func (f *Functional) Weights() [][]float64 { return f.weights }

// Evaluate applies the functional to fn, which returns the value
// components of the function at a point.
func (f *Functional) Evaluate(fn func(x []float64) []float64) (sum float64) {
	for q, x := range f.points {
		val := fn(x)
		for c, w := range f.weights[q] {
			sum += w * val[c]
		}
	}
	return
}

// NewPointEvaluation returns f -> f(pt).
func NewPointEvaluation(cell reference.Cell, pt []float64) *Functional {
	return &Functional{
		kind:    PointEvaluation,
		cell:    cell,
		points:  [][]float64{pt},
		weights: [][]float64{{1}},
	}
}

// NewPointScaledNormalEvaluation returns u -> u(pt).n for the outward normal
// of a facet scaled by the facet volume.
func NewPointScaledNormalEvaluation(cell reference.Cell, facet int, pt []float64) (f *Functional, err error) {
	n, err := scaledNormal(cell, facet)
	if err != nil {
		return
	}
	f = &Functional{
		kind:    PointScaledNormalEvaluation,
		cell:    cell,
		shape:   []int{cell.SpatialDimension()},
		points:  [][]float64{pt},
		weights: [][]float64{n},
	}
	return
}

// NewIntegralMoment returns f -> int f phi over the cell, with phi given at
// the points of rule.
func NewIntegralMoment(cell reference.Cell, rule *quadrature.Rule, phi []float64) (f *Functional, err error) {
	if len(phi) != rule.NumPoints() {
		err = errors.Configf("moment weight has %d values for %d quadrature points", len(phi), rule.NumPoints())
		return
	}
	f = &Functional{
		kind:   IntegralMoment,
		cell:   cell,
		points: rule.Points,
	}
	for q, w := range rule.Weights {
		f.weights = append(f.weights, []float64{w * phi[q]})
	}
	return
}

// NewIntegralMomentOfScaledNormalEvaluation returns u -> int u.n phi over a
// facet. The rule lives on the reference facet and phi is given at its
// points, which are mapped onto the facet.
func NewIntegralMomentOfScaledNormalEvaluation(cell reference.Cell, rule *quadrature.Rule, phi []float64,
	facet int) (f *Functional, err error) {
	if len(phi) != rule.NumPoints() {
		err = errors.Configf("moment weight has %d values for %d quadrature points", len(phi), rule.NumPoints())
		return
	}
	n, err := scaledNormal(cell, facet)
	if err != nil {
		return
	}
	sd := cell.SpatialDimension()
	tr, err := cell.EntityTransform(reference.D(sd-1), facet)
	if err != nil {
		return
	}
	f = &Functional{
		kind:  IntegralMomentOfScaledNormalEvaluation,
		cell:  cell,
		shape: []int{sd},
	}
	for q, x := range rule.Points {
		f.points = append(f.points, tr(x))
		wq := make([]float64, sd)
		for i := range wq {
			wq[i] = rule.Weights[q] * phi[q] * n[i]
		}
		f.weights = append(f.weights, wq)
	}
	return
}

// NewFrobeniusIntegralMoment returns u -> int u:phi over the cell for a
// vector valued phi given as phi[q][c] at the points of rule.
func NewFrobeniusIntegralMoment(cell reference.Cell, rule *quadrature.Rule, phi [][]float64) (f *Functional, err error) {
	if len(phi) != rule.NumPoints() || len(phi) == 0 {
		err = errors.Configf("moment weight has %d values for %d quadrature points", len(phi), rule.NumPoints())
		return
	}
	f = &Functional{
		kind:   FrobeniusIntegralMoment,
		cell:   cell,
		shape:  []int{len(phi[0])},
		points: rule.Points,
	}
	for q, w := range rule.Weights {
		wq := make([]float64, len(phi[q]))
		for c, val := range phi[q] {
			wq[c] = w * val
		}
		f.weights = append(f.weights, wq)
	}
	return
}

func scaledNormal(cell reference.Cell, facet int) (n []float64, err error) {
	sn, ok := cell.(ScaledNormaler)
	if !ok {
		err = errors.Unsupportedf("scaled normals on %s", cell.Key())
		return
	}
	return sn.ComputeScaledNormal(facet)
}
