package alphapers

import "fmt"

// AssignIndices walks the filtration once, giving the cell at position k the
// index k, and resolves every boundary face to the index it received earlier
// in the walk. The returned boundaries are aligned with filtration and keep
// the face order of the cell; they are not sorted.
func AssignIndices(c *Complex, filtration []Entry) (*IndexMap, [][]int, error) {
	if len(filtration) != c.Len() {
		return nil, nil, fmt.Errorf("alphapers: filtration has %d entries for %d cells: %w",
			len(filtration), c.Len(), ErrInvalidComplex)
	}

	index := NewIndexMap(c.Len())
	boundaries := make([][]int, len(filtration))
	for k, e := range filtration {
		cell := c.Cell(e.Cell)
		if cell.Dim > 0 {
			faces := make([]int, len(cell.Boundary))
			for i, face := range cell.Boundary {
				idx, ok := index.Lookup(face).Get()
				if !ok {
					return nil, nil, fmt.Errorf("alphapers: face %d of %d-cell %d at position %d has no index: %w",
						face, cell.Dim, e.Cell, k, ErrUnresolvedBoundary)
				}
				faces[i] = idx
			}
			boundaries[k] = faces
		}
		if index.Lookup(e.Cell).IsAssigned() {
			return nil, nil, fmt.Errorf("alphapers: cell %d appears twice in the filtration: %w",
				e.Cell, ErrInvalidComplex)
		}
		index.Assign(e.Cell, k)
	}
	return index, boundaries, nil
}
