package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/febasis/errors"
)

func intervalSquare(t *testing.T) *TensorProductCell {
	line, err := UFCSimplex(1)
	require.NoError(t, err)
	tp, err := NewTensorProductCell(line, line)
	require.NoError(t, err)
	return tp
}

func TestTensorProductTopology(t *testing.T) {
	tp := intervalSquare(t)
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, tp.Vertices())
	assert.Equal(t, T(1, 1), tp.Dimension())
	assert.Equal(t, 2, tp.SpatialDimension())
	top := tp.Topology()
	assert.Equal(t, [][]int{{0}, {1}, {2}, {3}}, top[T(0, 0)])
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, top[T(0, 1)])
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, top[T(1, 0)])
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, top[T(1, 1)])
	assert.Equal(t, []Dim{T(0, 0), T(0, 1), T(1, 0), T(1, 1)}, top.Dims())
	checkSubEntities(t, tp)
	assert.Empty(t, tp.Connectivity())

	tri, err := UFCSimplex(2)
	require.NoError(t, err)
	line, err := UFCSimplex(1)
	require.NoError(t, err)
	prism, err := NewTensorProductCell(tri, line)
	require.NoError(t, err)
	assert.Equal(t, 6, len(prism.Vertices()))
	assert.Equal(t, 3, prism.SpatialDimension())
	assert.Equal(t, 3, len(prism.Topology()[T(1, 1)]))
	assert.Equal(t, 2, len(prism.Topology()[T(2, 0)]))
	checkSubEntities(t, prism)

	_, err = NewTensorProductCell(prism, line)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	_, err = NewTensorProductCell()
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestTensorProductGeometry(t *testing.T) {
	tp := intervalSquare(t)
	assert.InDelta(t, 1., tp.Volume(), 1.e-12)
	assert.True(t, tp.ContainsPoint([]float64{0.5, 0.5}, 0))
	assert.False(t, tp.ContainsPoint([]float64{0.5, 1.5}, 0.1))
	assert.InDelta(t, 2., tp.DistanceToPointL1([]float64{2, -1}), 1.e-15)

	n, err := tp.ReferenceNormal(T(0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0}, n)
	n, err = tp.ReferenceNormal(T(0, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, n)
	n, err = tp.ReferenceNormal(T(1, 0), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, n)
	_, err = tp.ReferenceNormal(T(0, 0), 0)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	tr, err := tp.EntityTransform(T(0, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.25}, tr([]float64{0.25}))
	tr, err = tp.EntityTransform(T(1, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0}, tr([]float64{0.25}))
	tr, err = tp.EntityTransform(T(0, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, tr(nil))
	_, err = tp.EntityTransform(D(1), 0)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	sub, err := tp.ConstructSubelement(T(0, 1))
	require.NoError(t, err)
	assert.Equal(t, T(0, 1), sub.Dimension())
	assert.Equal(t, "(point * ufc-interval)", sub.Key())
}

func TestTensorProductOrientation(t *testing.T) {
	tp := intervalSquare(t)
	assert.Equal(t, []int{2, 2}, tp.FactorSymmetryGroupSizes(T(1, 1)))
	assert.Equal(t, 4, tp.SymmetryGroupSize(T(1, 1)))
	assert.Equal(t, 2, tp.SymmetryGroupSize(T(0, 1)))
	assert.Equal(t, []int{0, 1, 1, 0}, tp.CellOrientationReflectionMap())

	other := intervalSquare(t)
	assert.True(t, Equal(tp, other))
}
