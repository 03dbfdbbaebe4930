package alphapers

// UnionFind implements a disjoint-set data structure with path compression
// and union by size. Each set also remembers its smallest member, which for
// filtration indices is the oldest cell of the component.
type UnionFind struct {
	parent []int
	size   []int
	oldest []int
}

// NewUnionFind creates a UnionFind over the elements 0..n-1, each in its
// own set.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	size := make([]int, n)
	oldest := make([]int, n)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
		size[i] = 1
		oldest[i] = i
	}
	return &UnionFind{
		parent: parent,
		size:   size,
		oldest: oldest,
	}
}

// Find returns the root of the set containing x, with path compression.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Oldest returns the smallest element of the set containing x.
func (uf *UnionFind) Oldest(x int) int {
	return uf.oldest[uf.Find(x)]
}

// Union merges the sets containing x and y by attaching the smaller tree
// under the larger. Returns the new root.
func (uf *UnionFind) Union(x, y int) int {
	rootX := uf.Find(x)
	rootY := uf.Find(y)
	if rootX == rootY {
		return rootX
	}

	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	uf.oldest[rootX] = min(uf.oldest[rootX], uf.oldest[rootY])
	return rootX
}
