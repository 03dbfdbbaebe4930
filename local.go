package alphapers

import "fmt"

// Local numbering inside a tetrahedron with vertices 0..3. Edges are
// numbered in lexicographic order of their vertex pairs and facet i is the
// facet opposite vertex i. A triangle uses the vertices 0..2, so it is
// facet 3.

// tetraEdges lists the local vertex pair of each edge slot.
var tetraEdges = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// edgeSlot maps a local vertex pair to its edge slot; -1 on the diagonal.
var edgeSlot = [4][4]int{
	{-1, 0, 1, 2},
	{0, -1, 3, 4},
	{1, 3, -1, 5},
	{2, 4, 5, -1},
}

// tetraFacets lists the local vertices of each facet, ascending.
var tetraFacets = [4][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}

// cellSlots records the CellIDs already given to the edges and facets of one
// top simplex, in local numbering.
type cellSlots struct {
	edges  [6]Slot[CellID]
	facets [4]Slot[CellID]
}

// facetBoundary returns the edges of the facet with the given local
// vertices.
func (s *cellSlots) facetBoundary(local [3]int) []CellID {
	return []CellID{
		s.edges[edgeSlot[local[0]][local[1]]].Index(),
		s.edges[edgeSlot[local[0]][local[2]]].Index(),
		s.edges[edgeSlot[local[1]][local[2]]].Index(),
	}
}

// meshAssembler turns top simplices given by atom indices into an arena
// Complex. Shared faces get one CellID; boundaries of facets and
// tetrahedra are composed from the slots of the enclosing top simplex.
type meshAssembler struct {
	cx        *Complex
	ids       map[simplexKey]CellID
	simplices [][]int
	weight    func(simplexKey) float64
}

func newMeshAssembler(capacity int, weight func(simplexKey) float64) *meshAssembler {
	return &meshAssembler{
		cx:        NewComplex(capacity),
		ids:       make(map[simplexKey]CellID, capacity),
		simplices: make([][]int, 0, capacity),
		weight:    weight,
	}
}

// resolve returns the CellID of key, adding the cell with the given
// boundary if it is new.
func (a *meshAssembler) resolve(key simplexKey, boundary ...CellID) CellID {
	if id, ok := a.ids[key]; ok {
		return id
	}
	id := a.cx.AddCell(a.weight(key), boundary...)
	a.ids[key] = id
	a.simplices = append(a.simplices, key.vertices())
	return id
}

// addVertex adds the vertex for atom v.
func (a *meshAssembler) addVertex(v int) CellID {
	return a.resolve(makeKey(v))
}

// addTop adds a top simplex (1 to 4 ascending atom indices) and all of its
// faces. Vertices must already be present.
func (a *meshAssembler) addTop(verts []int) CellID {
	m := len(verts)
	if m == 1 {
		return a.addVertex(verts[0])
	}

	var slots cellSlots
	for s, e := range tetraEdges {
		if e[1] >= m {
			continue
		}
		u, v := verts[e[0]], verts[e[1]]
		id := a.resolve(makeKey(u, v), a.vertexID(u), a.vertexID(v))
		slots.edges[s] = Assigned(id)
	}

	switch m {
	case 2:
		return slots.edges[0].Index()
	case 3:
		return a.resolve(makeKey(verts...), slots.facetBoundary(tetraFacets[3])...)
	}

	for f, local := range tetraFacets {
		key := makeKey(verts[local[0]], verts[local[1]], verts[local[2]])
		id := a.resolve(key, slots.facetBoundary(local)...)
		slots.facets[f] = Assigned(id)
	}
	return a.resolve(makeKey(verts...),
		slots.facets[0].Index(), slots.facets[1].Index(), slots.facets[2].Index(), slots.facets[3].Index())
}

func (a *meshAssembler) vertexID(v int) CellID {
	id, ok := a.ids[makeKey(v)]
	if !ok {
		panic(fmt.Sprintf("alphapers: vertex %d added after its cofaces", v))
	}
	return id
}
