package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
)

func TestAffineMapping(t *testing.T) {
	// Interval [0,1] onto the hypotenuse of the UFC triangle
	{
		xs := [][]float64{{0}, {1}}
		ys := [][]float64{{1, 0}, {0, 1}}
		A, b, err := AffineMapping(xs, ys)
		require.NoError(t, err)
		nr, nc := A.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 1, nc)
		assert.InDelta(t, -1., A.At(0, 0), 1.e-12)
		assert.InDelta(t, 1., A.At(1, 0), 1.e-12)
		assert.InDeltaSlice(t, []float64{1, 0}, b, 1.e-12)
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, ApplyAffine(A, b, []float64{0.5}), 1.e-12)
	}
	// Biunit triangle onto the UFC triangle
	{
		xs := [][]float64{{-1, -1}, {1, -1}, {-1, 1}}
		ys := [][]float64{{0, 0}, {1, 0}, {0, 1}}
		A, b, err := AffineMapping(xs, ys)
		require.NoError(t, err)
		for i := range xs {
			assert.InDeltaSlice(t, ys[i], ApplyAffine(A, b, xs[i]), 1.e-12)
		}
		assert.InDelta(t, 0.25, mat.Det(A), 1.e-12)
	}
	// Zero dimensional source
	{
		A, b, err := AffineMapping([][]float64{{}}, [][]float64{{0.3, 0.7}})
		require.NoError(t, err)
		assert.Nil(t, A)
		assert.Equal(t, []float64{0.3, 0.7}, ApplyAffine(A, b, nil))
	}
	// Unequal point counts
	{
		_, _, err := AffineMapping([][]float64{{0}, {1}}, [][]float64{{0}})
		assert.True(t, errors.Is(err, errors.ErrIllPosed))
	}
	// Not uniquely determined
	{
		_, _, err := AffineMapping([][]float64{{0, 0}, {1, 0}}, [][]float64{{0}, {1}})
		assert.True(t, errors.Is(err, errors.ErrIllPosed))
	}
	// Degenerate source points
	{
		_, _, err := AffineMapping([][]float64{{0, 0}, {1, 1}, {2, 2}},
			[][]float64{{0, 0}, {1, 0}, {0, 1}})
		assert.True(t, errors.Is(err, errors.ErrIllPosed))
	}
}

func TestSpanAndComplement(t *testing.T) {
	a := mat.NewDense(1, 3, []float64{0, 0, 2})
	span, comp := SpanAndComplement(a)
	require.NotNil(t, span)
	require.NotNil(t, comp)
	_, ns := span.Dims()
	_, nc := comp.Dims()
	assert.Equal(t, 1, ns)
	assert.Equal(t, 2, nc)
	assert.InDelta(t, 1., math.Abs(span.At(2, 0)), 1.e-12)
	for j := 0; j < nc; j++ {
		assert.InDelta(t, 0., comp.At(2, j), 1.e-12)
	}
}

func TestSingularValues(t *testing.T) {
	sv, err := SingularValues(mat.NewDense(3, 2, []float64{0, 2, 3, 0, 0, 0}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 2}, sv, 1.e-14)
	assert.Equal(t, 1, NumericalRank([]float64{1, 1.e-15}, RANKTOL))
}

func TestSubspaceIntersection(t *testing.T) {
	// The xy plane and the xz plane meet along the x axis
	{
		A := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})
		B := mat.NewDense(3, 2, []float64{1, 0, 0, 0, 0, 1})
		U, rank, err := SubspaceIntersection(A, B)
		require.NoError(t, err)
		assert.Equal(t, 1, rank)
		assert.InDelta(t, 1., math.Abs(U.At(0, 0)), 1.e-12)
		assert.InDelta(t, 0., U.At(1, 0), 1.e-12)
		assert.InDelta(t, 0., U.At(2, 0), 1.e-12)
	}
	// Two distinct lines
	{
		A := mat.NewDense(2, 1, []float64{1, 0})
		B := mat.NewDense(2, 1, []float64{1, 1})
		U, rank, err := SubspaceIntersection(A, B)
		require.NoError(t, err)
		assert.Equal(t, 0, rank)
		assert.Nil(t, U)
	}
	{
		_, _, err := SubspaceIntersection(mat.NewDense(2, 1, nil), mat.NewDense(3, 1, nil))
		assert.True(t, errors.Is(err, errors.ErrIllPosed))
	}
}

func TestFallingFactorial(t *testing.T) {
	assert.Equal(t, 6., FallingFactorial(3, 3))
	assert.Equal(t, 12., FallingFactorial(4, 2))
	assert.Equal(t, 1., FallingFactorial(5, 0))
	assert.Equal(t, 0., FallingFactorial(2, 3))
	assert.Equal(t, 24, Factorial(4))
}

func TestJacobiGQ(t *testing.T) {
	// Legendre rule integrates x^(2N+1) exactly
	for N := 0; N < 6; N++ {
		x, w := JacobiGQ(0, 0, N)
		assert.Equal(t, N+1, len(x))
		for p := 0; p <= 2*N+1; p++ {
			var sum float64
			for i := range x {
				sum += w[i] * POW(x[i], p)
			}
			exact := 0.
			if p%2 == 0 {
				exact = 2. / float64(p+1)
			}
			assert.InDelta(t, exact, sum, 1.e-12)
		}
	}
	// The (1,0) weight has total mass 2
	_, w := JacobiGQ(1, 0, 3)
	var sum float64
	for _, val := range w {
		sum += val
	}
	assert.InDelta(t, 2., sum, 1.e-12)
}

// jacobiMoment integrates (1-x)^alpha x^p over [-1,1]
func jacobiMoment(alpha, p int) (m float64) {
	binom := 1.
	for k := 0; k <= alpha; k++ {
		if (k+p)%2 == 0 {
			sign := 1.
			if k%2 == 1 {
				sign = -1
			}
			m += sign * binom * 2 / float64(k+p+1)
		}
		binom = binom * float64(alpha-k) / float64(k+1)
	}
	return
}

func TestJacobiGQAsymmetric(t *testing.T) {
	x, w := JacobiGQ(1, 0, 1)
	assert.InDeltaSlice(t, []float64{(-1 - math.Sqrt(6)) / 5, (-1 + math.Sqrt(6)) / 5}, x, 1.e-12)
	assert.InDelta(t, -0.6899, x[0], 1.e-4)
	assert.InDelta(t, 0.2899, x[1], 1.e-4)
	assert.InDelta(t, 2., w[0]+w[1], 1.e-12)
	for _, alpha := range []int{1, 2} {
		for N := 0; N < 6; N++ {
			x, w := JacobiGQ(float64(alpha), 0, N)
			for p := 0; p <= 2*N+1; p++ {
				var sum float64
				for i := range x {
					sum += w[i] * POW(x[i], p)
				}
				assert.InDelta(t, jacobiMoment(alpha, p), sum, 1.e-12, "alpha %d N %d p %d", alpha, N, p)
			}
		}
	}
	assert.InDelta(t, -4./3., jacobiMoment(2, 1), 1.e-15)
	assert.InDelta(t, -2./5., jacobiMoment(1, 3), 1.e-15)
}

func TestJacobiGL(t *testing.T) {
	x := JacobiGL(0, 0, 4)
	assert.Equal(t, 5, len(x))
	assert.Equal(t, -1., x[0])
	assert.Equal(t, 1., x[4])
	assert.InDelta(t, 0., x[2], 1.e-12)
	assert.InDelta(t, -math.Sqrt(3./7.), x[1], 1.e-12)
}
