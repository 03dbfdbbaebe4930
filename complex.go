package alphapers

import (
	"fmt"
	"slices"
)

// MaxDim is the highest cell dimension a Complex may hold.
const MaxDim = 3

// CellID is a dense handle into a Complex. IDs are assigned in insertion
// order starting at 0.
type CellID int

// Cell is one simplex of a filtered complex. Boundary lists the immediate
// faces of the cell; it is empty for vertices.
type Cell struct {
	Dim      int
	Weight   float64
	Boundary []CellID
}

// Complex is an arena of cells. Cells refer to their faces by CellID; the
// references are only checked when the complex is filtered, so a face may be
// added after its coface as long as the final complex has no dangling IDs.
type Complex struct {
	cells []Cell
}

// NewComplex returns an empty Complex with room for capacity cells.
func NewComplex(capacity int) *Complex {
	return &Complex{cells: make([]Cell, 0, capacity)}
}

// Len returns the number of cells.
func (c *Complex) Len() int { return len(c.cells) }

// Cell returns the cell with the given id.
func (c *Complex) Cell(id CellID) Cell { return c.cells[id] }

// Cells returns the cells in insertion order. The slice must not be modified.
func (c *Complex) Cells() []Cell { return c.cells }

// AddVertex adds a 0-cell.
func (c *Complex) AddVertex(weight float64) CellID {
	id := CellID(len(c.cells))
	c.cells = append(c.cells, Cell{Dim: 0, Weight: weight})
	return id
}

// AddCell adds a cell of dimension len(boundary)-1 bounded by the given
// faces. The boundary slice is copied. AddCell with no faces adds a vertex.
func (c *Complex) AddCell(weight float64, boundary ...CellID) CellID {
	if len(boundary) == 0 {
		return c.AddVertex(weight)
	}
	id := CellID(len(c.cells))
	c.cells = append(c.cells, Cell{
		Dim:      len(boundary) - 1,
		Weight:   weight,
		Boundary: slices.Clone(boundary),
	})
	return id
}

// CountByDim returns the number of cells of each dimension 0..MaxDim.
func (c *Complex) CountByDim() [MaxDim + 1]int {
	var counts [MaxDim + 1]int
	for _, cell := range c.cells {
		if cell.Dim >= 0 && cell.Dim <= MaxDim {
			counts[cell.Dim]++
		}
	}
	return counts
}

// EulerCharacteristic returns the alternating sum of cell counts.
func (c *Complex) EulerCharacteristic() int {
	counts := c.CountByDim()
	return counts[0] - counts[1] + counts[2] - counts[3]
}

// validateComplex checks the structural part of the cell source contract.
// Weight ordering is checked by BuildFiltration.
func validateComplex(c *Complex) error {
	n := CellID(len(c.cells))
	for id, cell := range c.cells {
		if cell.Dim < 0 || cell.Dim > MaxDim {
			return fmt.Errorf("alphapers: cell %d has dimension %d outside 0..%d: %w",
				id, cell.Dim, MaxDim, ErrInvalidComplex)
		}
		if cell.Dim == 0 {
			if len(cell.Boundary) != 0 {
				return fmt.Errorf("alphapers: vertex %d has %d boundary faces: %w",
					id, len(cell.Boundary), ErrInvalidComplex)
			}
			continue
		}
		if len(cell.Boundary) != cell.Dim+1 {
			return fmt.Errorf("alphapers: %d-cell %d has %d boundary faces, want %d: %w",
				cell.Dim, id, len(cell.Boundary), cell.Dim+1, ErrInvalidComplex)
		}
		for i, face := range cell.Boundary {
			if face < 0 || face >= n {
				return fmt.Errorf("alphapers: cell %d references missing face %d: %w",
					id, face, ErrInvalidComplex)
			}
			if fd := c.cells[face].Dim; fd != cell.Dim-1 {
				return fmt.Errorf("alphapers: %d-cell %d has face %d of dimension %d: %w",
					cell.Dim, id, face, fd, ErrInvalidComplex)
			}
			if slices.Contains(cell.Boundary[:i], face) {
				return fmt.Errorf("alphapers: cell %d lists face %d twice: %w",
					id, face, ErrInvalidComplex)
			}
		}
	}
	return nil
}
