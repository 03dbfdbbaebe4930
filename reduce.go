package alphapers

import "slices"

// Pair is a finite persistence pair of filtration indices. Birth is the
// index of the cell that creates the class and Death the index of the cell
// that destroys it.
type Pair struct {
	Birth int
	Death int
}

// Reduce reduces the boundary matrix over GF(2) and returns the persistence
// pairs ordered by birth, then death. Columns that reduce to zero and are
// never claimed by another column are essential classes and produce no
// pair. The matrix is not modified.
func Reduce(m *BoundaryMatrix, algo Algorithm, rep Representation) []Pair {
	n := m.NumCols()
	if n == 0 {
		return nil
	}

	var pairs []Pair
	switch algo {
	case AlgorithmStandard:
		pairs = standardReduce(m, rep)
	case AlgorithmTwistUnionFind:
		pairs = twistReduce(m, rep, 2)
		pairs = append(pairs, componentPairs(m)...)
	default:
		pairs = twistReduce(m, rep, 1)
	}

	slices.SortFunc(pairs, func(a, b Pair) int {
		if a.Birth != b.Birth {
			return a.Birth - b.Birth
		}
		return a.Death - b.Death
	})
	return pairs
}

// reduceColumn adds owner columns into cols[j] until its low row is
// unowned or the column is empty. owner[r] is the column whose low is r,
// or -1.
func reduceColumn(cols []column, owner []int, j int) {
	c := cols[j]
	for !c.isEmpty() {
		o := owner[c.low()]
		if o < 0 {
			return
		}
		c.add(cols[o])
	}
}

func newOwnerTable(n int) []int {
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	return owner
}

// standardReduce processes every column left to right.
func standardReduce(m *BoundaryMatrix, rep Representation) []Pair {
	cols := newColumns(m, rep)
	owner := newOwnerTable(len(cols))

	var pairs []Pair
	for j := range cols {
		reduceColumn(cols, owner, j)
		if !cols[j].isEmpty() {
			low := cols[j].low()
			owner[low] = j
			pairs = append(pairs, Pair{Birth: low, Death: j})
		}
	}
	return pairs
}

// twistReduce processes columns by decreasing dimension down to minDim.
// When column j ends with low row r, cell r is a birth and can never be a
// death, so column r is cleared before its own dimension is reached.
func twistReduce(m *BoundaryMatrix, rep Representation, minDim int) []Pair {
	cols := newColumns(m, rep)
	owner := newOwnerTable(len(cols))

	var pairs []Pair
	for d := m.MaxDim(); d >= minDim; d-- {
		for j := range cols {
			if m.Dims[j] != d || cols[j].isEmpty() {
				continue
			}
			reduceColumn(cols, owner, j)
			if cols[j].isEmpty() {
				continue
			}
			low := cols[j].low()
			owner[low] = j
			cols[low].clear()
			pairs = append(pairs, Pair{Birth: low, Death: j})
		}
	}
	return pairs
}

// componentPairs pairs the edge columns with the vertices they kill using
// the elder rule: an edge joining two components kills the one whose oldest
// vertex entered the filtration last. Edges inside a component close a
// cycle and produce no pair here.
func componentPairs(m *BoundaryMatrix) []Pair {
	uf := NewUnionFind(m.NumCols())

	var pairs []Pair
	for j, rows := range m.Columns {
		if m.Dims[j] != 1 || len(rows) != 2 {
			continue
		}
		ra, rb := uf.Find(rows[0]), uf.Find(rows[1])
		if ra == rb {
			continue
		}
		younger := max(uf.Oldest(ra), uf.Oldest(rb))
		pairs = append(pairs, Pair{Birth: younger, Death: j})
		uf.Union(ra, rb)
	}
	return pairs
}
