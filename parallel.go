package alphapers

import (
	"context"
	"fmt"
	"sync"
)

// computeFaceGeometry computes the orthosphere and Gabriel flag of every
// face.
func computeFaceGeometry(ctx context.Context, tree *powerTree, faces []*simplexInfo, tol float64) error {
	return faceGeometryInRange(ctx, tree, faces, tol, 0, len(faces))
}

// computeFaceGeometryParallel is computeFaceGeometry split across
// numWorkers goroutines. Each worker handles a contiguous range of faces
// and only writes to those, so the result is identical to the sequential
// one. On failure the error of the lowest range is returned. Falls back to
// computeFaceGeometry if numWorkers <= 1.
func computeFaceGeometryParallel(ctx context.Context, tree *powerTree, faces []*simplexInfo, tol float64, numWorkers int) error {
	total := len(faces)
	if numWorkers <= 1 || total <= 1 {
		return computeFaceGeometry(ctx, tree, faces, tol)
	}

	perWorker := (total + numWorkers - 1) / numWorkers
	errs := make([]error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := min(start+perWorker, total)
		if start >= total {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			errs[w] = faceGeometryInRange(ctx, tree, faces, tol, start, end)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// faceGeometryInRange handles faces[start:end].
func faceGeometryInRange(ctx context.Context, tree *powerTree, faces []*simplexInfo, tol float64, start, end int) error {
	for i := start; i < end; i++ {
		if (i-start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s := faces[i]
		verts := s.key.vertices()
		center, r2, ok := orthosphere(tree.pts, verts)
		if !ok {
			return fmt.Errorf("alphapers: degenerate face %v of a regular simplex", verts)
		}
		s.radius2 = r2
		s.gabriel = isEmptyOrthosphere(tree, verts, center, r2, tol)
	}
	return nil
}
