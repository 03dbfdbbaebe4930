package alphapers

import (
	"cmp"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// tetrahedronComplex builds a filled tetrahedron whose cells of each
// dimension share one weight.
func tetrahedronComplex(vw, ew, fw, tw float64) *Complex {
	cx := NewComplex(15)
	var v [4]CellID
	for i := range v {
		v[i] = cx.AddVertex(vw)
	}
	var e [6]CellID
	for s, pair := range tetraEdges {
		e[s] = cx.AddCell(ew, v[pair[0]], v[pair[1]])
	}
	var f [4]CellID
	for i, local := range tetraFacets {
		a, b, c := local[0], local[1], local[2]
		f[i] = cx.AddCell(fw, e[edgeSlot[a][b]], e[edgeSlot[a][c]], e[edgeSlot[b][c]])
	}
	cx.AddCell(tw, f[0], f[1], f[2], f[3])
	return cx
}

// triangleComplex builds three vertices and three edges, plus the filling
// triangle when fill is true.
func triangleComplex(vw, ew, fw float64, fill bool) *Complex {
	cx := NewComplex(7)
	a, b, c := cx.AddVertex(vw), cx.AddVertex(vw), cx.AddVertex(vw)
	ab := cx.AddCell(ew, a, b)
	bc := cx.AddCell(ew, b, c)
	ac := cx.AddCell(ew, a, c)
	if fill {
		cx.AddCell(fw, ab, bc, ac)
	}
	return cx
}

// permuteComplex returns a copy of c in which old cell i has id perm[i].
func permuteComplex(c *Complex, perm []int) *Complex {
	cells := make([]Cell, c.Len())
	for i, cell := range c.Cells() {
		boundary := make([]CellID, len(cell.Boundary))
		for k, face := range cell.Boundary {
			boundary[k] = CellID(perm[face])
		}
		cells[perm[i]] = Cell{Dim: cell.Dim, Weight: cell.Weight, Boundary: boundary}
	}
	return &Complex{cells: cells}
}

// randomAtoms returns n atoms in a 10Å cube with radii in [rmin, rmax).
func randomAtoms(n int, rmin, rmax float64, seed int64) []Atom {
	rng := rand.New(rand.NewSource(seed))
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = Atom{
			X:      rng.Float64() * 10,
			Y:      rng.Float64() * 10,
			Z:      rng.Float64() * 10,
			Radius: rmin + rng.Float64()*(rmax-rmin),
		}
	}
	return atoms
}

func compareIntervals(a, b Interval) int {
	if c := cmp.Compare(a.Birth, b.Birth); c != 0 {
		return c
	}
	return cmp.Compare(a.Death, b.Death)
}

func lessInterval(a, b Interval) bool { return compareIntervals(a, b) < 0 }

// repeat returns n copies of iv.
func repeat(iv Interval, n int) []Interval {
	out := make([]Interval, n)
	for i := range out {
		out[i] = iv
	}
	return out
}

func vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
