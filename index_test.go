package alphapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignIndices(t *testing.T) {
	cx := NewComplex(3)
	e := CellID(0)
	cx.cells = append(cx.cells, Cell{Dim: 1, Weight: 1, Boundary: []CellID{2, 1}})
	cx.AddVertex(0)
	cx.AddVertex(0)

	f, err := BuildFiltration(cx)
	require.NoError(t, err)
	index, boundaries, err := AssignIndices(cx, f)
	require.NoError(t, err)

	assert.Equal(t, 0, index.Lookup(1).Index())
	assert.Equal(t, 1, index.Lookup(2).Index())
	assert.Equal(t, 2, index.Lookup(e).Index())
	// Face order of the cell is kept.
	assert.Equal(t, [][]int{nil, nil, {1, 0}}, boundaries)
}

func TestAssignIndicesUnresolvedBoundary(t *testing.T) {
	cx := NewComplex(3)
	a := cx.AddVertex(0)
	b := cx.AddVertex(0)
	e := cx.AddCell(1, a, b)

	f := []Entry{
		{Weight: 1, Dim: 1, Cell: e},
		{Weight: 0, Dim: 0, Cell: a},
		{Weight: 0, Dim: 0, Cell: b},
	}
	_, _, err := AssignIndices(cx, f)
	assert.ErrorIs(t, err, ErrUnresolvedBoundary)
}

func TestAssignIndicesBadFiltration(t *testing.T) {
	cx := NewComplex(2)
	a := cx.AddVertex(0)
	cx.AddVertex(0)

	_, _, err := AssignIndices(cx, []Entry{{Cell: a}})
	assert.ErrorIs(t, err, ErrInvalidComplex)

	_, _, err = AssignIndices(cx, []Entry{{Cell: a}, {Cell: a}})
	assert.ErrorIs(t, err, ErrInvalidComplex)
}
