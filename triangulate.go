package alphapers

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/combin"
)

// perturbScale is the size of the weight perturbation relative to the
// power spread of the cloud.
const perturbScale = 1e-10

// initialNeighbors is the number of nearest centers first tried when
// looking for a regular simplex at the starting vertex.
const initialNeighbors = 12

// ctxCheckInterval is the number of loop iterations between two context
// checks.
const ctxCheckInterval = 64

// perturbWeights returns a copy of pts whose weights are raised by distinct
// pseudo-random amounts between one and two times perturbScale*spread. Five
// atoms with a common orthosphere no longer share one after the shift, so
// the regular triangulation of the copy is unique. It refines the regular
// subdivision of pts whenever the original ties are closer than the shift.
func perturbWeights(pts []weightedPoint, spread float64) []weightedPoint {
	rng := rand.New(rand.NewSource(1))
	out := slices.Clone(pts)
	for i := range out {
		out[i].weight += perturbScale * spread * (1 + rng.Float64())
	}
	return out
}

// triangulator grows a regular triangulation one facet at a time. Across
// each facet it picks the point whose orthosphere with the facet is reached
// first when moving the facet's orthocenter away from the known side.
type triangulator struct {
	pts   []weightedPoint
	tree  *powerTree
	dim   int
	frame [3]r3.Vec

	// planeEps is the distance below which a point counts as lying on a
	// facet's hyperplane.
	planeEps float64
}

// regularTriangulation returns the top simplices of the regular
// triangulation of pts, whose affine hull has dimension dim and direction
// spanned by the first dim vectors of frame. pts should be in general
// position with respect to their weights; see perturbWeights. The result
// is sorted.
func regularTriangulation(ctx context.Context, pts []weightedPoint, dim int, frame [3]r3.Vec, spread float64) ([]simplexKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dim == 0 || len(pts) == 1 {
		return []simplexKey{makeKey(0)}, nil
	}
	tr := &triangulator{
		pts:      pts,
		tree:     newPowerTree(pts, defaultLeafSize),
		dim:      dim,
		frame:    frame,
		planeEps: rankTolerance * math.Sqrt(spread),
	}

	first, err := tr.initialSimplex(ctx)
	if err != nil {
		return nil, err
	}

	tops := []simplexKey{first}
	seen := map[simplexKey]bool{first: true}
	wrapped := make(map[simplexKey]bool)
	for i := 0; i < len(tops); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		verts := tops[i].vertices()
		for drop, apex := range verts {
			facet := make([]int, 0, dim)
			facet = append(facet, verts[:drop]...)
			facet = append(facet, verts[drop+1:]...)
			fk := makeKey(facet...)
			if wrapped[fk] {
				continue
			}
			wrapped[fk] = true

			q, ok := tr.wrapFacet(facet, apex)
			if !ok {
				continue
			}
			next := append(slices.Clone(facet), q)
			slices.Sort(next)
			key := makeKey(next...)
			if !seen[key] {
				seen[key] = true
				tops = append(tops, key)
			}
		}
	}

	slices.SortFunc(tops, compareKeys)
	return tops, nil
}

func compareKeys(a, b simplexKey) int {
	return slices.Compare(a[:], b[:])
}

// initialSimplex finds a regular simplex incident to the lexicographically
// smallest center, which is a vertex of the convex hull and therefore of
// the triangulation. Candidates are drawn from a growing set of its nearest
// centers.
func (tr *triangulator) initialSimplex(ctx context.Context) (simplexKey, error) {
	p0 := 0
	for i, p := range tr.pts {
		if lessVec(p.pos, tr.pts[p0].pos) {
			p0 = i
		}
	}
	order := make([]int, 0, len(tr.pts)-1)
	for i := range tr.pts {
		if i != p0 {
			order = append(order, i)
		}
	}
	origin := tr.pts[p0].pos
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(r3.Norm2(r3.Sub(tr.pts[a].pos, origin)), r3.Norm2(r3.Sub(tr.pts[b].pos, origin)))
	})

	verts := make([]int, tr.dim+1)
	comb := make([]int, tr.dim)
	tried := 0
	for k := min(initialNeighbors, len(order)); ; k = min(2*k, len(order)) {
		gen := combin.NewCombinationGenerator(k, tr.dim)
		for gen.Next() {
			if tried%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return simplexKey{}, err
				}
			}
			tried++
			gen.Combination(comb)
			verts[0] = p0
			for i, c := range comb {
				verts[i+1] = order[c]
			}
			sorted := slices.Clone(verts)
			slices.Sort(sorted)
			if tr.isRegular(sorted) {
				return makeKey(sorted...), nil
			}
		}
		if k == len(order) {
			break
		}
	}
	return simplexKey{}, fmt.Errorf("alphapers: no regular %d-simplex found among %d atoms", tr.dim, len(tr.pts))
}

// isRegular reports whether verts span a non-degenerate simplex whose
// orthosphere has no other point of smaller power.
func (tr *triangulator) isRegular(verts []int) bool {
	center, r2, ok := orthosphere(tr.pts, verts)
	return ok && !tr.tree.anyBelow(center, r2, verts)
}

// wrapFacet returns the point forming a regular simplex with facet on the
// side of the facet away from apex. It reports false when no point lies on
// that side, that is when the facet is on the boundary of the convex hull.
//
// The orthocenters of all simplices containing facet lie on the line
// c + t·n through the facet's orthocenter c, with n normal to the facet
// inside the affine hull. A point q reaches equal power with the facet at
// t = (π(c, q) - π(c, facet)) / (2 n·(q - c)), and the neighbor across the
// facet is the point on the far side with the smallest t.
func (tr *triangulator) wrapFacet(facet []int, apex int) (int, bool) {
	c, pi0, ok := orthosphere(tr.pts, facet)
	if !ok {
		return -1, false
	}
	n := tr.facetNormal(facet)
	if r3.Dot(n, r3.Sub(tr.pts[apex].pos, c)) > 0 {
		n = r3.Scale(-1, n)
	}

	best, bestT := -1, math.Inf(1)
	for i, p := range tr.pts {
		b := r3.Dot(n, r3.Sub(p.pos, c))
		if b <= tr.planeEps {
			continue
		}
		if t := (power(c, p) - pi0) / (2 * b); t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}

// facetNormal returns a unit vector inside the affine hull that is normal
// to the facet.
func (tr *triangulator) facetNormal(facet []int) r3.Vec {
	p0 := tr.pts[facet[0]].pos
	var n r3.Vec
	switch tr.dim {
	case 1:
		n = tr.frame[0]
	case 2:
		n = r3.Cross(tr.frame[2], r3.Sub(tr.pts[facet[1]].pos, p0))
	default:
		n = r3.Cross(r3.Sub(tr.pts[facet[1]].pos, p0), r3.Sub(tr.pts[facet[2]].pos, p0))
	}
	return r3.Unit(n)
}

// lessVec orders vectors by X, then Y, then Z.
func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
