package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/febasis/InputParameters"
	"github.com/notargets/febasis/cache"
	"github.com/notargets/febasis/errors"
)

func TestRequestFromFlags(t *testing.T) {
	require.NoError(t, ElementCmd.Flags().Set("family", "BDM"))
	require.NoError(t, ElementCmd.Flags().Set("cell", "tetrahedron"))
	require.NoError(t, ElementCmd.Flags().Set("degree", "2"))
	er, err := requestFromFlags(ElementCmd)
	require.NoError(t, err)
	assert.Equal(t, "BDM", er.Family)
	assert.Equal(t, "tetrahedron", er.Cell)
	assert.Equal(t, 2, er.Degree)
	el, err := buildElement(er)
	require.NoError(t, err)
	assert.Equal(t, 30, el.SpaceDimension())

	file := filepath.Join(t.TempDir(), "element.yaml")
	require.NoError(t, os.WriteFile(file, []byte(InputParameters.ExampleFile), 0o644))
	require.NoError(t, ElementCmd.Flags().Set("inputFile", file))
	er, err = requestFromFlags(ElementCmd)
	require.NoError(t, err)
	assert.Equal(t, "triangle", er.Cell)
	assert.Len(t, er.Points, 2)
}

func TestBuildElementErrors(t *testing.T) {
	_, err := buildElement(&InputParameters.ElementRequest{Family: "P", Cell: "prism", Degree: 1})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	_, err = buildElement(&InputParameters.ElementRequest{Family: "BDM", Cell: "triangle", Degree: 0})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	_, err = buildElement(&InputParameters.ElementRequest{Family: "BDM", Cell: "triangle", Degree: 1,
		Mapping: "affine"})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	el, err := buildElement(&InputParameters.ElementRequest{Family: "BDM", Cell: "triangle", Degree: 1,
		Mapping: "contravariant piola"})
	require.NoError(t, err)
	assert.Equal(t, 6, el.SpaceDimension())
}

func TestPointFlags(t *testing.T) {
	require.NoError(t, TabulateCmd.Flags().Set("point", "0.25, 0.25"))
	require.NoError(t, TabulateCmd.Flags().Set("point", "0.5,0.1"))
	pts, err := pointFlags(TabulateCmd)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.25, 0.25}, {0.5, 0.1}}, pts)

	require.NoError(t, TabulateCmd.Flags().Set("jacobian", "2,0"))
	require.NoError(t, TabulateCmd.Flags().Set("jacobian", "0,x"))
	_, err = floatRows(TabulateCmd, "jacobian")
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestTabulate(t *testing.T) {
	tabs := cache.NewTabulations()
	er := &InputParameters.ElementRequest{Family: "Lagrange", Cell: "quadrilateral", Degree: 2, Order: 1}
	require.NoError(t, tabulate(tabs, er))
	require.NoError(t, tabulate(tabs, er))
	hits, misses := tabs.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	// Push forward onto a physical cell
	er = &InputParameters.ElementRequest{Family: "BDM", Cell: "triangle", Degree: 1,
		Points: [][]float64{{0.25, 0.25}}, Jacobian: [][]float64{{2, 0}, {0, 1}}}
	require.NoError(t, tabulate(tabs, er))
	er.Jacobian = [][]float64{{1, 1}, {1, 1}}
	err := tabulate(tabs, er)
	assert.True(t, errors.Is(err, errors.ErrIllPosed))
}
