package alphapers

import (
	"fmt"
	"slices"
)

// BoundaryMatrix is the sparse GF(2) boundary matrix of a filtration.
// Columns[j] holds the ascending row indices of the faces of the j-th cell;
// every row index is smaller than j.
type BoundaryMatrix struct {
	Columns [][]int
	Dims    []int
}

// NumCols returns the number of columns.
func (m *BoundaryMatrix) NumCols() int { return len(m.Columns) }

// MaxDim returns the largest column dimension, or -1 for an empty matrix.
func (m *BoundaryMatrix) MaxDim() int {
	d := -1
	for _, dim := range m.Dims {
		d = max(d, dim)
	}
	return d
}

// NumEntries returns the number of nonzero entries.
func (m *BoundaryMatrix) NumEntries() int {
	total := 0
	for _, col := range m.Columns {
		total += len(col)
	}
	return total
}

// BuildBoundaryMatrix turns the resolved boundaries from AssignIndices into
// sorted columns. A row index not strictly above its column reports
// ErrMalformedFiltration.
func BuildBoundaryMatrix(filtration []Entry, boundaries [][]int) (*BoundaryMatrix, error) {
	if len(filtration) != len(boundaries) {
		return nil, fmt.Errorf("alphapers: %d boundaries for %d filtration entries: %w",
			len(boundaries), len(filtration), ErrInvalidComplex)
	}

	m := &BoundaryMatrix{
		Columns: make([][]int, len(filtration)),
		Dims:    make([]int, len(filtration)),
	}
	for j, e := range filtration {
		m.Dims[j] = e.Dim
		if e.Dim == 0 {
			continue
		}
		col := slices.Clone(boundaries[j])
		slices.Sort(col)
		if len(col) > 0 && col[len(col)-1] >= j {
			return nil, fmt.Errorf("alphapers: column %d has row %d: %w",
				j, col[len(col)-1], ErrMalformedFiltration)
		}
		m.Columns[j] = col
	}
	return m, nil
}
