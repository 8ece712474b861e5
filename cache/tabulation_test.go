package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/febasis/element"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/reference"
)

func TestTabulations(t *testing.T) {
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	p1, err := element.NewLagrange(tri, 1, "")
	require.NoError(t, err)
	p2, err := element.NewLagrange(tri, 2, "")
	require.NoError(t, err)

	c := NewTabulations()
	pts := [][]float64{{0.1, 0.2}, {0.3, 0.3}}
	a, err := c.Tabulate(p1, 1, pts)
	require.NoError(t, err)
	// Equal values in a new slice hit the same entry
	b, err := c.Tabulate(p1, 1, [][]float64{{0.1, 0.2}, {0.3, 0.3}})
	require.NoError(t, err)
	assert.Same(t, a[polynomial.MultiIndex{}], b[polynomial.MultiIndex{}])
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	_, err = c.Tabulate(p1, 0, pts)
	require.NoError(t, err)
	_, err = c.Tabulate(p2, 1, pts)
	require.NoError(t, err)
	_, err = c.Tabulate(p1, 1, [][]float64{{0.1, 0.2}, {0.3, 0.30000001}})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	_, err = c.Tabulate(p1, 0, [][]float64{{0.1, 0.2, 0.3}})
	assert.Error(t, err)
	assert.Equal(t, 4, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestPointsHash(t *testing.T) {
	assert.Equal(t, PointsHash([][]float64{{1, 2}}), PointsHash([][]float64{{1, 2}}))
	assert.NotEqual(t, PointsHash([][]float64{{1, 2}}), PointsHash([][]float64{{2, 1}}))
	assert.NotEqual(t, PointsHash([][]float64{{1}, {2}}), PointsHash([][]float64{{1, 2}}))
}

func TestTabulationsConcurrent(t *testing.T) {
	tri, err := reference.UFCSimplex(2)
	require.NoError(t, err)
	el, err := element.NewLagrange(tri, 3, "")
	require.NoError(t, err)
	var (
		c  = NewTabulations()
		wg sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Tabulate(el, 1, [][]float64{{0.25, 0.25}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
	hits, misses := c.Stats()
	assert.Equal(t, 8, hits+misses)
}
