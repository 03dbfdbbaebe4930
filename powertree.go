package alphapers

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// powerTree is a KD-tree over weighted points for power distance range
// queries. Points are reordered internally via an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - each node keeps its bounding box and the largest weight below it
//
// A built tree is read-only and safe for concurrent queries.
type powerTree struct {
	pts       []weightedPoint
	leafSize  int
	idxArray  []int // permutation: tree-order position → point index
	nodes     []treeNode
	boundsMin []r3.Vec
	boundsMax []r3.Vec
	maxWeight []float64
	numNodes  int
}

// treeNode describes a single node of a powerTree.
type treeNode struct {
	idxStart, idxEnd int
	isLeaf           bool
}

// defaultLeafSize is the leaf capacity used by buildAlphaComplex.
const defaultLeafSize = 8

// newPowerTree builds a tree over pts. leafSize controls the max points per
// leaf node.
func newPowerTree(pts []weightedPoint, leafSize int) *powerTree {
	if leafSize < 1 {
		leafSize = 1
	}
	n := len(pts)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := treeMaxNodes(n, leafSize)
	t := &powerTree{
		pts:       pts,
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]treeNode, maxNodes),
		boundsMin: make([]r3.Vec, maxNodes),
		boundsMax: make([]r3.Vec, maxNodes),
		maxWeight: make([]float64, maxNodes),
	}
	if n > 0 {
		t.numNodes = t.buildNode(0, 0, n)
	}
	return t
}

// treeMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func treeMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	for v := 1; v < leaves; v *= 2 {
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2
}

// buildNode recursively builds the tree for points in idxArray[start:end]
// and returns the number of nodes in the subtree.
func (t *powerTree) buildNode(nodeID, start, end int) int {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, treeNode{})
		t.boundsMin = append(t.boundsMin, r3.Vec{})
		t.boundsMax = append(t.boundsMax, r3.Vec{})
		t.maxWeight = append(t.maxWeight, 0)
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = treeNode{idxStart: start, idxEnd: end, isLeaf: true}
		return 1
	}

	// Split the axis with the greatest spread at the median.
	spread := r3.Sub(t.boundsMax[nodeID], t.boundsMin[nodeID])
	axis := 0
	if spread.Y > spread.X {
		axis = 1
	}
	if spread.Z > max(spread.X, spread.Y) {
		axis = 2
	}
	t.sortByAxis(start, end, axis)
	mid := start + count/2

	t.nodes[nodeID] = treeNode{idxStart: start, idxEnd: end}
	return 1 + t.buildNode(2*nodeID+1, start, mid) + t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds sets the bounding box and largest weight of the points
// idxArray[start:end].
func (t *powerTree) computeNodeBounds(nodeID, start, end int) {
	first := t.pts[t.idxArray[start]]
	lo, hi, w := first.pos, first.pos, first.weight
	for _, k := range t.idxArray[start+1 : end] {
		p := t.pts[k]
		lo = r3.Vec{X: min(lo.X, p.pos.X), Y: min(lo.Y, p.pos.Y), Z: min(lo.Z, p.pos.Z)}
		hi = r3.Vec{X: max(hi.X, p.pos.X), Y: max(hi.Y, p.pos.Y), Z: max(hi.Z, p.pos.Z)}
		w = max(w, p.weight)
	}
	t.boundsMin[nodeID], t.boundsMax[nodeID], t.maxWeight[nodeID] = lo, hi, w
}

// sortByAxis sorts idxArray[start:end] by one coordinate.
func (t *powerTree) sortByAxis(start, end, axis int) {
	sub := t.idxArray[start:end]
	sort.Slice(sub, func(i, j int) bool {
		return coord(t.pts[sub[i]].pos, axis) < coord(t.pts[sub[j]].pos, axis)
	})
}

func coord(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// anyBelow reports whether a point not listed in skip has power distance
// below threshold from z.
func (t *powerTree) anyBelow(z r3.Vec, threshold float64, skip []int) bool {
	if t.numNodes == 0 {
		return false
	}
	return t.search(0, z, threshold, skip)
}

func (t *powerTree) search(nodeID int, z r3.Vec, threshold float64, skip []int) bool {
	if t.minPower(nodeID, z) >= threshold {
		return false
	}
	node := t.nodes[nodeID]
	if node.isLeaf {
		for _, k := range t.idxArray[node.idxStart:node.idxEnd] {
			if slices.Contains(skip, k) {
				continue
			}
			if power(z, t.pts[k]) < threshold {
				return true
			}
		}
		return false
	}

	// Nearer child first.
	near, far := 2*nodeID+1, 2*nodeID+2
	if t.minPower(far, z) < t.minPower(near, z) {
		near, far = far, near
	}
	return t.search(near, z, threshold, skip) || t.search(far, z, threshold, skip)
}

// minPower returns a lower bound on the power distance from z to any point
// in the node: the squared distance to its box minus its largest weight.
func (t *powerTree) minPower(nodeID int, z r3.Vec) float64 {
	lo, hi := t.boundsMin[nodeID], t.boundsMax[nodeID]
	gap := r3.Vec{
		X: max(lo.X-z.X, 0, z.X-hi.X),
		Y: max(lo.Y-z.Y, 0, z.Y-hi.Y),
		Z: max(lo.Z-z.Z, 0, z.Z-hi.Z),
	}
	return r3.Norm2(gap) - t.maxWeight[nodeID]
}
