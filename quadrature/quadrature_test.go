package quadrature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/reference"
	"github.com/notargets/febasis/utils"
)

func monomial(alpha ...int) func(x []float64) float64 {
	return func(x []float64) (v float64) {
		v = 1
		for i, a := range alpha {
			v *= utils.POW(x[i], a)
		}
		return
	}
}

func fact(n int) float64 { return float64(utils.Factorial(n)) }

func TestWeightsSumToVolume(t *testing.T) {
	for _, name := range []string{"vertex", "interval", "triangle", "tetrahedron",
		"quadrilateral", "hexahedron", "triangle * interval"} {
		cell, err := reference.UFCCell(name)
		require.NoError(t, err)
		for degree := 0; degree < 5; degree++ {
			r, err := Create(cell, degree)
			require.NoError(t, err)
			assert.InDelta(t, cell.Volume(), floats.Sum(r.Weights), 1.e-12, name)
			for _, p := range r.Points {
				assert.True(t, cell.ContainsPoint(p, 1.e-12))
			}
		}
	}
	for d := 1; d <= 3; d++ {
		s, err := reference.DefaultSimplex(d)
		require.NoError(t, err)
		r, err := Create(s, 3)
		require.NoError(t, err)
		assert.InDelta(t, s.Volume(), floats.Sum(r.Weights), 1.e-12)
		for _, p := range r.Points {
			assert.True(t, s.ContainsPoint(p, 1.e-12))
		}
	}
}

func TestSimplexExactness(t *testing.T) {
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	tet, err := reference.UFCSimplex(3)
	require.NoError(t, err)
	for degree := 0; degree <= 6; degree++ {
		r2, err := Create(tri, degree)
		require.NoError(t, err)
		r3, err := Create(tet, degree)
		require.NoError(t, err)
		for a := 0; a <= degree; a++ {
			for b := 0; a+b <= degree; b++ {
				exact := fact(a) * fact(b) / fact(a+b+2)
				assert.InDelta(t, exact, r2.Integrate(monomial(a, b)), 1.e-13)
				for c := 0; a+b+c <= degree; c++ {
					exact := fact(a) * fact(b) * fact(c) / fact(a+b+c+3)
					assert.InDelta(t, exact, r3.Integrate(monomial(a, b, c)), 1.e-13)
				}
			}
		}
	}
}

func TestProductExactness(t *testing.T) {
	quad, err := reference.NewUFCQuadrilateral()
	require.NoError(t, err)
	r, err := Create(quad, 5)
	require.NoError(t, err)
	assert.Equal(t, 9, r.NumPoints())
	assert.True(t, reference.Equal(quad, r.Cell()))
	for a := 0; a <= 5; a++ {
		for b := 0; b <= 5; b++ {
			exact := 1. / float64((a+1)*(b+1))
			assert.InDelta(t, exact, r.Integrate(monomial(a, b)), 1.e-13)
		}
	}
	_, err = Create(quad, -1)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestCreateOnEntity(t *testing.T) {
	tet, err := reference.UFCSimplex(3)
	require.NoError(t, err)
	r, mapped, err := CreateOnEntity(tet, reference.D(2), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, r.NumPoints(), len(mapped))
	assert.Equal(t, reference.TRIANGLE, r.Cell().Shape())
	for _, p := range mapped {
		assert.InDelta(t, 1., floats.Sum(p), 1.e-12)
	}
	quad, err := reference.NewUFCQuadrilateral()
	require.NoError(t, err)
	_, mapped, err = CreateOnEntity(quad, reference.D(1), 1, 3)
	require.NoError(t, err)
	for _, p := range mapped {
		assert.InDelta(t, 1., p[0], 1.e-15)
	}
}
