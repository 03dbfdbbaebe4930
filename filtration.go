package alphapers

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one position of a filtration.
type Entry struct {
	Weight float64
	Dim    int
	Cell   CellID
}

// BuildFiltration orders every cell of c by weight, then by dimension, so
// that each face precedes its cofaces. Cells equal on both keys keep their
// arena order. It fails if the complex is structurally invalid or if a face
// is heavier than one of its cofaces.
func BuildFiltration(c *Complex) ([]Entry, error) {
	if err := validateComplex(c); err != nil {
		return nil, err
	}

	cells := c.Cells()
	for id, cell := range cells {
		if math.IsNaN(cell.Weight) || math.IsInf(cell.Weight, 0) {
			return nil, fmt.Errorf("alphapers: cell %d has non-finite weight %v: %w",
				id, cell.Weight, ErrMalformedFiltration)
		}
		for _, face := range cell.Boundary {
			if fw := cells[face].Weight; fw > cell.Weight {
				return nil, fmt.Errorf("alphapers: face %d (weight %g) is heavier than its %d-cell %d (weight %g): %w",
					face, fw, cell.Dim, id, cell.Weight, ErrMalformedFiltration)
			}
		}
	}

	entries := make([]Entry, len(cells))
	for id, cell := range cells {
		entries[id] = Entry{Weight: cell.Weight, Dim: cell.Dim, Cell: CellID(id)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight < entries[j].Weight
		}
		return entries[i].Dim < entries[j].Dim
	})
	return entries, nil
}
