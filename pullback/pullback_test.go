package pullback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
)

func TestMappings(t *testing.T) {
	// Stretch x by 2, y by 3
	J := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	v := []float64{1, 1}
	{
		u, err := Affine.Strategy().Apply(J, v)
		require.NoError(t, err)
		assert.Equal(t, v, u)
	}
	{
		u, err := CovariantPiola.Strategy().Apply(J, v)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.5, 1. / 3.}, u, 1.e-14)
	}
	{
		u, err := ContravariantPiola.Strategy().Apply(J, v)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{2. / 6., 3. / 6.}, u, 1.e-14)
	}
	{
		u, err := L2Piola.Strategy().Apply(J, []float64{6})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1}, u, 1.e-14)
	}
	// Input is not modified
	assert.Equal(t, []float64{1, 1}, v)
}

func TestMappingErrors(t *testing.T) {
	_, err := ContravariantPiola.Strategy().Apply(mat.NewDense(2, 2, nil), []float64{1, 1})
	assert.True(t, errors.Is(err, errors.ErrIllPosed))
	_, err = CovariantPiola.Strategy().Apply(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), []float64{1, 1, 1})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	for _, m := range []Mapping{Affine, CovariantPiola, ContravariantPiola, L2Piola} {
		mm, err := NewMapping(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, mm)
	}
	_, err = NewMapping("double piola")
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
