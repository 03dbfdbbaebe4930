// Package alphapers computes persistent homology of weighted point clouds
// (atom centers with radii) through the weighted alpha complex.
//
// For every topological feature of dimension 0 (components), 1 (loops) and
// 2 (voids) that appears while the atoms grow, it reports the scale at which
// the feature is born and the scale at which it dies. Scales follow the
// power metric: an atom of radius r has grown to radius sqrt(r² + alpha) at
// scale alpha, so atoms start at alpha = -r².
//
// Basic usage:
//
//	atoms := []alphapers.Atom{{X: 0, Y: 0, Z: 0, Radius: 1.7}, ...}
//	result, err := alphapers.Compute(atoms, alphapers.DefaultConfig())
//	// result.Diagrams[d] lists the (birth, death) intervals of dimension d
//
// ComputeContext and ComputeBatch take a context and stop with its error
// once it is done.
//
// For callers with their own cell complex (for example exported from a
// triangulation library):
//
//	cx := alphapers.NewComplex(n)
//	a := cx.AddVertex(0)
//	b := cx.AddVertex(0)
//	cx.AddCell(1, a, b)
//	result, err := alphapers.ComputeComplex(cx, alphapers.DefaultConfig())
//
// # Pipeline
//
// The stages are exported and can be run one by one:
//
//	filtration, err := alphapers.BuildFiltration(cx)           // sort by (weight, dim)
//	_, faces, err := alphapers.AssignIndices(cx, filtration)   // face indices
//	m, err := alphapers.BuildBoundaryMatrix(filtration, faces) // sparse GF(2) columns
//	pairs := alphapers.Reduce(m, alphapers.AlgorithmTwist, alphapers.RepresentationVector)
//	dgms := alphapers.ExtractDiagrams(filtration, pairs)
//
// Classes that never die are not reported, and intervals whose birth equals
// their death are dropped.
package alphapers
