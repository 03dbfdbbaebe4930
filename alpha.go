package alphapers

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is a sphere in 3D: a center and a radius. Its weight in the power
// metric is Radius².
type Atom struct {
	X, Y, Z float64
	Radius  float64
}

// AtomsFromRows converts [x, y, z, r] rows into atoms.
func AtomsFromRows(rows [][]float64) ([]Atom, error) {
	atoms := make([]Atom, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("alphapers: row %d has %d values, want 4 (x, y, z, r)", i, len(row))
		}
		atoms[i] = Atom{X: row[0], Y: row[1], Z: row[2], Radius: row[3]}
	}
	return atoms, nil
}

// AlphaComplex is a weighted alpha complex together with the atoms spanned
// by each of its cells.
type AlphaComplex struct {
	*Complex

	// Simplices[id] lists the atom indices of cell id in ascending order.
	Simplices [][]int
}

// simplexKey identifies a simplex by its ascending point indices, padded
// with -1.
type simplexKey [4]int

func makeKey(verts ...int) simplexKey {
	k := simplexKey{-1, -1, -1, -1}
	copy(k[:], verts)
	return k
}

func (k simplexKey) dim() int {
	d := -1
	for _, v := range k {
		if v >= 0 {
			d++
		}
	}
	return d
}

func (k simplexKey) vertices() []int {
	return slices.Clone(k[:k.dim()+1])
}

// weightedPoint is an atom center with weight Radius². index is the
// position of the atom in the caller's input.
type weightedPoint struct {
	pos    r3.Vec
	weight float64
	index  int
}

// power returns the power distance of z to p.
func power(z r3.Vec, p weightedPoint) float64 {
	return r3.Norm2(r3.Sub(z, p.pos)) - p.weight
}

// orthosphere returns the center and squared radius of the smallest sphere
// orthogonal to the given points: the point of their affine hull with equal
// power to all of them. ok is false when the points are affinely dependent
// or so close to it that the center is not reliable.
func orthosphere(pts []weightedPoint, verts []int) (center r3.Vec, radius2 float64, ok bool) {
	p0 := pts[verts[0]]
	k := len(verts) - 1
	if k == 0 {
		// 0 - w rather than -w keeps a zero weight from turning into -0.
		return p0.pos, 0 - p0.weight, true
	}

	edges := make([]r3.Vec, k)
	rhs := mat.NewVecDense(k, nil)
	for i := range edges {
		pi := pts[verts[i+1]]
		edges[i] = r3.Sub(pi.pos, p0.pos)
		rhs.SetVec(i, 0.5*(r3.Norm2(edges[i])-pi.weight+p0.weight))
	}
	gram := mat.NewSymDense(k, nil)
	for i := range edges {
		for j := i; j < k; j++ {
			gram.SetSym(i, j, r3.Dot(edges[i], edges[j]))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(gram) || chol.Cond() > maxGramCond {
		return r3.Vec{}, 0, false
	}
	var lambda mat.VecDense
	if err := chol.SolveVecTo(&lambda, rhs); err != nil {
		return r3.Vec{}, 0, false
	}

	center = p0.pos
	for i, e := range edges {
		center = r3.Add(center, r3.Scale(lambda.AtVec(i), e))
	}
	return center, power(center, p0), true
}

// maxGramCond is the largest condition number of the edge Gram matrix
// accepted by orthosphere. Coplanar or collinear points that only miss
// exact dependence through rounding land far above it.
const maxGramCond = 1e12

// isEmptyOrthosphere reports whether no point outside verts has power
// smaller than radius2 (within tol) with respect to center.
func isEmptyOrthosphere(tree *powerTree, verts []int, center r3.Vec, radius2, tol float64) bool {
	return !tree.anyBelow(center, radius2-tol, verts)
}

// affineDim returns the dimension of the affine hull of the points.
func affineDim(pts []weightedPoint, tol float64) int {
	d, _ := affineFrame(pts, tol)
	return d
}

// affineFrame returns the dimension of the affine hull of the points and an
// orthonormal basis of R³ whose first d vectors span the hull's direction.
// For d == 2 the last vector is the normal of the plane.
func affineFrame(pts []weightedPoint, tol float64) (int, [3]r3.Vec) {
	frame := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	n := len(pts)
	if n < 2 {
		return 0, frame
	}
	var centroid r3.Vec
	for _, p := range pts {
		centroid = r3.Add(centroid, p.pos)
	}
	centroid = r3.Scale(1/float64(n), centroid)

	a := mat.NewDense(n, 3, nil)
	for i, p := range pts {
		d := r3.Sub(p.pos, centroid)
		a.SetRow(i, []float64{d.X, d.Y, d.Z})
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFullV) {
		return 3, frame
	}
	var v mat.Dense
	svd.VTo(&v)
	for j := range frame {
		frame[j] = r3.Vec{X: v.At(0, j), Y: v.At(1, j), Z: v.At(2, j)}
	}
	return svd.Rank(tol), frame
}

// prepareAtoms validates the atoms and collapses atoms sharing a center to
// the one with the largest radius (the first on ties); the others have an
// empty power cell.
func prepareAtoms(atoms []Atom) ([]weightedPoint, error) {
	pts := make([]weightedPoint, 0, len(atoms))
	seen := make(map[r3.Vec]int, len(atoms))
	for i, a := range atoms {
		for _, v := range []float64{a.X, a.Y, a.Z, a.Radius} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("alphapers: atom %d has non-finite value %v", i, v)
			}
		}
		if a.Radius < 0 {
			return nil, fmt.Errorf("alphapers: atom %d has negative radius %g", i, a.Radius)
		}
		p := weightedPoint{pos: r3.Vec{X: a.X, Y: a.Y, Z: a.Z}, weight: a.Radius * a.Radius, index: i}
		if j, ok := seen[p.pos]; ok {
			if p.weight > pts[j].weight {
				pts[j] = p
			}
			continue
		}
		seen[p.pos] = len(pts)
		pts = append(pts, p)
	}
	return pts, nil
}

// simplexInfo is the per-simplex state used while assigning alpha values.
type simplexInfo struct {
	key     simplexKey
	radius2 float64
	gabriel bool
	alpha   float64
	cofaces []*simplexInfo
}

// BuildAlphaComplex computes the weighted alpha complex of the atoms. The
// regular triangulation is grown facet by facet from a simplex at a hull
// vertex, which takes O(n²) time for n distinct centers. Ties between
// cospherical atoms are broken by a tiny per-atom weight perturbation, so
// exactly one triangulation is chosen. Each simplex is weighted by its
// squared orthoradius if that orthosphere has no atom of smaller power (the
// simplex is Gabriel), and by the smallest weight of its cofaces otherwise.
// Weights that agree within the scaled tolerance are merged.
func BuildAlphaComplex(atoms []Atom, cfg Config) (*AlphaComplex, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return buildAlphaComplex(context.Background(), atoms, cfg)
}

func buildAlphaComplex(ctx context.Context, atoms []Atom, cfg Config) (*AlphaComplex, error) {
	pts, err := prepareAtoms(atoms)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return &AlphaComplex{Complex: NewComplex(0)}, nil
	}

	spread := max(1, maxPowerSpread(pts))
	tol := cfg.Tolerance * spread
	d, frame := affineFrame(pts, rankTolerance)
	cfg.Logger.Debug("triangulating",
		zap.Int("atoms", len(atoms)),
		zap.Int("distinct_centers", len(pts)),
		zap.Int("affine_dim", d))
	tops, err := regularTriangulation(ctx, perturbWeights(pts, spread), d, frame, spread)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("regular triangulation",
		zap.Int("atoms", len(atoms)),
		zap.Int("distinct_centers", len(pts)),
		zap.Int("affine_dim", d),
		zap.Int("top_simplices", len(tops)))

	infos, byDim := collectFaces(tops)
	var faces []*simplexInfo
	for _, ss := range byDim {
		faces = append(faces, ss...)
	}
	tree := newPowerTree(pts, defaultLeafSize)
	if err := computeFaceGeometryParallel(ctx, tree, faces, tol, cfg.Workers); err != nil {
		return nil, err
	}
	assignAlpha(byDim)
	snapAlphas(faces, tol)

	asm := newMeshAssembler(len(infos), func(k simplexKey) float64 { return infos[k].alpha })
	verts := slices.Clone(byDim[0])
	slices.SortFunc(verts, func(a, b *simplexInfo) int { return a.key[0] - b.key[0] })
	for _, v := range verts {
		asm.addVertex(v.key[0])
	}
	for _, top := range tops {
		asm.addTop(top.vertices())
	}

	// Report atoms by their input position rather than their index among
	// the distinct centers.
	for _, s := range asm.simplices {
		for i, v := range s {
			s[i] = pts[v].index
		}
		slices.Sort(s)
	}
	return &AlphaComplex{Complex: asm.cx, Simplices: asm.simplices}, nil
}

// rankTolerance is the relative singular value cutoff for affineFrame.
const rankTolerance = 1e-10

// maxPowerSpread returns the squared diagonal of the bounding box of the
// centers plus the largest weight. It bounds the magnitude of the power
// values compared by the geometric predicates.
func maxPowerSpread(pts []weightedPoint) float64 {
	var lo, hi r3.Vec
	var wmax float64
	for i, p := range pts {
		if i == 0 {
			lo, hi = p.pos, p.pos
		}
		lo = r3.Vec{X: min(lo.X, p.pos.X), Y: min(lo.Y, p.pos.Y), Z: min(lo.Z, p.pos.Z)}
		hi = r3.Vec{X: max(hi.X, p.pos.X), Y: max(hi.Y, p.pos.Y), Z: max(hi.Z, p.pos.Z)}
		wmax = max(wmax, p.weight)
	}
	return r3.Norm2(r3.Sub(hi, lo)) + wmax
}

// collectFaces builds the info for every face of the top simplices and
// links each simplex to its immediate cofaces. byDim lists the simplices of
// each dimension in first-seen order.
func collectFaces(tops []simplexKey) (map[simplexKey]*simplexInfo, [MaxDim + 1][]*simplexInfo) {
	infos := make(map[simplexKey]*simplexInfo)
	var byDim [MaxDim + 1][]*simplexInfo

	var visit func(key simplexKey) *simplexInfo
	visit = func(key simplexKey) *simplexInfo {
		if info, ok := infos[key]; ok {
			return info
		}
		info := &simplexInfo{key: key}
		infos[key] = info
		d := key.dim()
		byDim[d] = append(byDim[d], info)
		if d == 0 {
			return info
		}
		verts := key.vertices()
		for drop := range verts {
			face := make([]int, 0, d)
			face = append(face, verts[:drop]...)
			face = append(face, verts[drop+1:]...)
			fi := visit(makeKey(face...))
			fi.cofaces = append(fi.cofaces, info)
		}
		return info
	}

	for _, top := range tops {
		visit(top)
	}
	return infos, byDim
}

// assignAlpha sets alpha from the highest dimension down. A Gabriel simplex
// keeps its squared orthoradius, any other takes the smallest alpha of its
// cofaces. The result is clamped so no face exceeds a coface.
func assignAlpha(byDim [MaxDim + 1][]*simplexInfo) {
	for d := MaxDim; d >= 0; d-- {
		for _, s := range byDim[d] {
			if len(s.cofaces) == 0 {
				s.alpha = s.radius2
				continue
			}
			lowest := math.Inf(1)
			for _, c := range s.cofaces {
				lowest = min(lowest, c.alpha)
			}
			if s.gabriel {
				s.alpha = min(s.radius2, lowest)
			} else {
				s.alpha = lowest
			}
		}
	}
}

// snapAlphas merges alpha values that lie within tol of their predecessor in
// sorted order onto the first value of the run, so values that differ only
// by rounding compare equal. The merge is monotone and keeps every face at
// or below its cofaces.
func snapAlphas(faces []*simplexInfo, tol float64) {
	sorted := slices.Clone(faces)
	slices.SortStableFunc(sorted, func(a, b *simplexInfo) int { return cmp.Compare(a.alpha, b.alpha) })
	var anchor, prev float64
	for i, s := range sorted {
		if i == 0 || s.alpha-prev > tol {
			anchor = s.alpha
			if anchor == 0 {
				anchor = 0 // drop the sign of -0
			}
		}
		prev = s.alpha
		s.alpha = anchor
	}
}
