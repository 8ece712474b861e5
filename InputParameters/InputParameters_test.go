package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/febasis/errors"
)

func TestElementRequest(t *testing.T) {
	er := &ElementRequest{}
	require.NoError(t, er.Parse([]byte(ExampleFile)))
	assert.Equal(t, "Quadratic Lagrange", er.Title)
	assert.Equal(t, "Lagrange", er.Family)
	assert.Equal(t, "triangle", er.Cell)
	assert.Equal(t, 2, er.Degree)
	assert.Equal(t, "equispaced", er.Variant)
	assert.Equal(t, 1, er.Order)
	assert.Equal(t, [][]float64{{0.25, 0.25}, {0.5, 0.1}}, er.Points)
	assert.Equal(t, "affine", er.Mapping)
	J := er.JacobianMatrix()
	require.NotNil(t, J)
	assert.Equal(t, 2., J.At(0, 0))
	assert.Equal(t, 0., J.At(1, 0))
	assert.Nil(t, (&ElementRequest{}).JacobianMatrix())

	er = &ElementRequest{}
	err := er.Parse([]byte("Family: BDM\nDegree: 1\n"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	er = &ElementRequest{}
	err = er.Parse([]byte("Family: [BDM\n"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	er = &ElementRequest{}
	err = er.Parse([]byte("Family: BDM\nCell: triangle\nDegree: 1\nMapping: double piola\n"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	er = &ElementRequest{}
	err = er.Parse([]byte("Family: BDM\nCell: triangle\nDegree: 1\nJacobian: [[1, 0], [0]]\n"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestElementRequests(t *testing.T) {
	data := `
Elements:
  p1:
    Family: P
    Cell: interval
    Degree: 1
  bdm:
    Family: BDM
    Cell: tetrahedron
    Degree: 2
    Variant: integral(1)
`
	ers := &ElementRequests{}
	require.NoError(t, ers.Parse([]byte(data)))
	assert.Equal(t, []string{"bdm", "p1"}, ers.Names())
	assert.Equal(t, "integral(1)", ers.Elements["bdm"].Variant)

	ers = &ElementRequests{}
	err := ers.Parse([]byte("Elements:\n  bad:\n    Family: P\n    Cell: triangle\n    Degree: -1\n"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
