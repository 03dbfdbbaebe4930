package alphapers

import "fmt"

// Slot holds an optional dense index: a filtration index in an IndexMap, a
// CellID while an alpha complex is assembled. The zero Slot is unassigned.
type Slot[T ~int] struct {
	index    T
	assigned bool
}

// Assigned returns a Slot holding index.
func Assigned[T ~int](index T) Slot[T] {
	return Slot[T]{index: index, assigned: true}
}

// IsAssigned reports whether the slot holds an index.
func (s Slot[T]) IsAssigned() bool { return s.assigned }

// Index returns the held index. Reading an unassigned slot panics.
func (s Slot[T]) Index() T {
	if !s.assigned {
		panic("alphapers: read of unassigned slot")
	}
	return s.index
}

// Get returns the held index and whether the slot is assigned.
func (s Slot[T]) Get() (T, bool) { return s.index, s.assigned }

func (s Slot[T]) String() string {
	if !s.assigned {
		return "unassigned"
	}
	return fmt.Sprintf("assigned(%d)", s.index)
}

// IndexMap maps each CellID of a complex to its filtration index. Entries
// are filled in filtration order; a lookup only succeeds for cells that were
// already visited.
type IndexMap struct {
	slots []Slot[int]
}

// NewIndexMap returns an IndexMap with n unassigned entries.
func NewIndexMap(n int) *IndexMap {
	return &IndexMap{slots: make([]Slot[int], n)}
}

// Len returns the number of cells covered by the map.
func (m *IndexMap) Len() int { return len(m.slots) }

// Assign records index for id. Assigning a cell twice panics.
func (m *IndexMap) Assign(id CellID, index int) {
	if m.slots[id].assigned {
		panic(fmt.Sprintf("alphapers: cell %d assigned twice", id))
	}
	m.slots[id] = Assigned(index)
}

// Lookup returns the slot for id.
func (m *IndexMap) Lookup(id CellID) Slot[int] {
	return m.slots[id]
}
