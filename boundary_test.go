package alphapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMatrix(t *testing.T, cx *Complex) ([]Entry, *BoundaryMatrix) {
	t.Helper()
	f, err := BuildFiltration(cx)
	require.NoError(t, err)
	_, boundaries, err := AssignIndices(cx, f)
	require.NoError(t, err)
	m, err := BuildBoundaryMatrix(f, boundaries)
	require.NoError(t, err)
	return f, m
}

func TestBuildBoundaryMatrixTriangle(t *testing.T) {
	_, m := buildMatrix(t, triangleComplex(0, 1, 2, true))

	assert.Equal(t, [][]int{nil, nil, nil, {0, 1}, {1, 2}, {0, 2}, {3, 4, 5}}, m.Columns)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2}, m.Dims)
	assert.Equal(t, 7, m.NumCols())
	assert.Equal(t, 2, m.MaxDim())
	assert.Equal(t, 9, m.NumEntries())
}

func TestBuildBoundaryMatrixUpperTriangular(t *testing.T) {
	ac, err := BuildAlphaComplex(randomAtoms(12, 0, 2, 11), DefaultConfig())
	require.NoError(t, err)
	_, m := buildMatrix(t, ac.Complex)

	for j, col := range m.Columns {
		if m.Dims[j] == 0 {
			assert.Empty(t, col)
			continue
		}
		assert.Len(t, col, m.Dims[j]+1)
		assert.IsIncreasing(t, col)
		assert.Less(t, col[len(col)-1], j)
	}
}

func TestBuildBoundaryMatrixRejectsLowerRow(t *testing.T) {
	f := []Entry{{Dim: 0}, {Dim: 1}}
	_, err := BuildBoundaryMatrix(f, [][]int{nil, {0, 1}})
	assert.ErrorIs(t, err, ErrMalformedFiltration)

	_, err = BuildBoundaryMatrix(f, [][]int{nil})
	assert.ErrorIs(t, err, ErrInvalidComplex)
}

func TestBoundaryMatrixEmpty(t *testing.T) {
	m, err := BuildBoundaryMatrix(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NumCols())
	assert.Equal(t, -1, m.MaxDim())
}
