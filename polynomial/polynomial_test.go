package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/quadrature"
	"github.com/notargets/febasis/reference"
)

func TestDerivativeIndices(t *testing.T) {
	mis := DerivativeIndices(2, 2)
	assert.Equal(t, 6, len(mis))
	assert.Equal(t, MultiIndex{}, mis[0])
	assert.Equal(t, 0, mis[0].Order())
	assert.Equal(t, 2, mis[5].Order())
	assert.Equal(t, []MultiIndex{{}}, DerivativeIndices(0, 3))
	assert.Equal(t, "(0,2)", NewMultiIndex(0, 2).String())
}

func TestExpansionSize(t *testing.T) {
	for _, tc := range []struct {
		cell   string
		degree int
		size   int
	}{
		{"vertex", 3, 1},
		{"interval", 3, 4},
		{"triangle", 2, 6},
		{"tetrahedron", 2, 10},
		{"quadrilateral", 2, 9},
		{"hexahedron", 1, 8},
		{"triangle * interval", 2, 18},
	} {
		t.Run(tc.cell, func(t *testing.T) {
			cell, err := reference.UFCCell(tc.cell)
			require.NoError(t, err)
			ex, err := NewExpansion(cell, tc.degree)
			require.NoError(t, err)
			assert.Equal(t, tc.size, ex.Size())
		})
	}
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	_, err = NewExpansion(tri, -1)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestExpansionTabulate(t *testing.T) {
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	ex, err := NewExpansion(tri, 2)
	require.NoError(t, err)
	pts := [][]float64{{0.5, 0.25}, {0.1, 0.7}}
	tab, err := ex.Tabulate(2, pts)
	require.NoError(t, err)
	assert.Equal(t, 6, len(tab))
	ixy, ok := ex.Index([]int{1, 1})
	require.True(t, ok)
	ixx, ok := ex.Index([]int{2, 0})
	require.True(t, ok)
	for q, p := range pts {
		assert.InDelta(t, p[0]*p[1], tab[MultiIndex{}].At(ixy, q), 1.e-15)
		assert.InDelta(t, p[1], tab[NewMultiIndex(1, 0)].At(ixy, q), 1.e-15)
		assert.InDelta(t, 1., tab[NewMultiIndex(1, 1)].At(ixy, q), 1.e-15)
		assert.InDelta(t, 2*p[0], tab[NewMultiIndex(1, 0)].At(ixx, q), 1.e-15)
		assert.InDelta(t, 2., tab[NewMultiIndex(2, 0)].At(ixx, q), 1.e-15)
		assert.InDelta(t, 0., tab[NewMultiIndex(0, 1)].At(ixx, q), 1.e-15)
	}
	_, err = ex.Tabulate(0, [][]float64{{0.5}})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func checkOrthonormal(t *testing.T, ps *PolynomialSet) {
	q, err := quadrature.Create(ps.Cell(), 2*ps.EmbeddedDegree())
	require.NoError(t, err)
	tab, err := ps.Tabulate(0, q.Points)
	require.NoError(t, err)
	vals := tab[MultiIndex{}]
	ncomp := ps.NumComponents()
	for i := 0; i < ps.Size(); i++ {
		for j := 0; j < ps.Size(); j++ {
			var sum float64
			for c := 0; c < ncomp; c++ {
				for k, w := range q.Weights {
					sum += w * vals.At(i*ncomp+c, k) * vals.At(j*ncomp+c, k)
				}
			}
			want := 0.
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, sum, 1.e-9, "%s members %d %d", ps.Cell().Key(), i, j)
		}
	}
}

func TestONPolynomialSet(t *testing.T) {
	for _, name := range []string{"vertex", "interval", "triangle", "tetrahedron",
		"quadrilateral", "triangle * interval"} {
		cell, err := reference.UFCCell(name)
		require.NoError(t, err)
		for degree := 0; degree <= 3; degree++ {
			ps, err := ONPolynomialSet(cell, degree)
			require.NoError(t, err)
			checkOrthonormal(t, ps)
		}
	}
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	ps, err := ONPolynomialSet(tri, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, ps.Size())
	assert.Equal(t, []int{2}, ps.ValueShape())
	checkOrthonormal(t, ps)
	tab, err := ps.Tabulate(0, [][]float64{{0.2, 0.3}})
	require.NoError(t, err)
	// Member 7 lives in the second component
	assert.Equal(t, 0., tab[MultiIndex{}].At(7*2, 0))
	assert.NotEqual(t, 0., tab[MultiIndex{}].At(7*2+1, 0))
}

func TestONPolynomialSetHighDegree(t *testing.T) {
	// The monomial Gram matrices here have condition numbers near 1e12
	for _, tc := range []struct {
		cell   string
		degree int
	}{
		{"interval", 8},
		{"triangle", 6},
		{"triangle * interval", 4},
	} {
		cell, err := reference.UFCCell(tc.cell)
		require.NoError(t, err)
		ps, err := ONPolynomialSet(cell, tc.degree)
		require.NoError(t, err)
		checkOrthonormal(t, ps)
	}
}

func TestNedelecSpace(t *testing.T) {
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	tet, err := reference.UFCSimplex(3)
	require.NoError(t, err)
	for r := 1; r <= 3; r++ {
		nd, err := NedelecSpace(tri, r)
		require.NoError(t, err)
		assert.Equal(t, r*(r+2), nd.Size())
		assert.Equal(t, r-1, nd.Degree())
		nd3, err := NedelecSpace(tet, r)
		require.NoError(t, err)
		assert.Equal(t, r*(r+2)*(r+3)/2, nd3.Size())
	}
	// The lowest order space is spanned by constants and (y, -x)
	nd, err := NedelecSpace(tri, 1)
	require.NoError(t, err)
	tab, err := nd.Tabulate(1, [][]float64{{0.3, 0.6}})
	require.NoError(t, err)
	var curl float64
	dx, dy := tab[NewMultiIndex(1, 0)], tab[NewMultiIndex(0, 1)]
	for m := 0; m < nd.Size(); m++ {
		// Divergence free: d/dx u + d/dy v
		assert.InDelta(t, 0., dx.At(m*2, 0)+dy.At(m*2+1, 0), 1.e-12)
		c := dx.At(m*2+1, 0) - dy.At(m*2, 0)
		curl += c * c
	}
	assert.NotEqual(t, 0., curl)

	line, err := reference.UFCSimplex(1)
	require.NoError(t, err)
	_, err = NedelecSpace(line, 1)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	_, err = NedelecSpace(tri, 0)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
