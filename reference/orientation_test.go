package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinct(perms map[int][]int) int {
	seen := make(map[string]bool)
	for _, p := range perms {
		seen[indexKey(p)] = true
	}
	return len(seen)
}

func TestMultiIndexEqual(t *testing.T) {
	assert.Equal(t, [][]int{{3, 1}, {2, 2}, {1, 3}}, MultiIndexEqual(2, 4, 1))
	assert.Equal(t, 6, len(MultiIndexEqual(3, 2, 0)))
	assert.Equal(t, 3, len(MultiIndexEqual(3, 4, 1)))
	assert.Empty(t, MultiIndexEqual(3, 2, 1))
	for _, a := range MultiIndexEqual(4, 6, 1) {
		var sum int
		for _, v := range a {
			assert.GreaterOrEqual(t, v, 1)
			sum += v
		}
		assert.Equal(t, 6, sum)
	}
}

func TestSimplexLatticePermutations(t *testing.T) {
	assert.Equal(t, map[int][]int{0: {0}}, SimplexLatticePermutations(0, 3))

	edge := SimplexLatticePermutations(1, 4)
	assert.Equal(t, []int{0, 1, 2}, edge[0])
	assert.Equal(t, []int{2, 1, 0}, edge[1])

	face := SimplexLatticePermutations(2, 4)
	require.Equal(t, 6, len(face))
	assert.Equal(t, []int{0, 1, 2}, face[0])
	assert.Equal(t, 6, distinct(face))
	for _, p := range face {
		assert.ElementsMatch(t, []int{0, 1, 2}, p)
	}

	empty := SimplexLatticePermutations(2, 2)
	assert.Equal(t, 6, len(empty))
	for _, p := range empty {
		assert.Empty(t, p)
	}
	assert.Equal(t, 24, len(SimplexLatticePermutations(3, 5)))
}

func TestHypercubeLatticePermutations(t *testing.T) {
	edge := HypercubeLatticePermutations(1, 4)
	require.Equal(t, 2, len(edge))
	assert.Equal(t, []int{0, 1, 2}, edge[0])
	assert.Equal(t, []int{2, 1, 0}, edge[1])

	face := HypercubeLatticePermutations(2, 3)
	require.Equal(t, 8, len(face))
	assert.Equal(t, []int{0, 1, 2, 3}, face[0])
	assert.Equal(t, []int{1, 0, 3, 2}, face[1])
	assert.Equal(t, 8, distinct(face))

	assert.Equal(t, 48, len(HypercubeLatticePermutations(3, 3)))
}

func TestParity(t *testing.T) {
	assert.Equal(t, 0, Parity([]int{0, 1, 2}))
	assert.Equal(t, 1, Parity([]int{1, 0, 2}))
	assert.Equal(t, 0, Parity([]int{1, 2, 0}))
	assert.Equal(t, []int{0, 1}, SimplexReflectionMap(1))
	assert.Equal(t, []int{0, 1, 1, 0}, TensorProductReflectionMap([][]int{{0, 1}, {0, 1}}))
}
