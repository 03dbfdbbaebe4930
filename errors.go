package alphapers

import "errors"

var (
	// ErrMalformedFiltration reports a boundary face that would enter the
	// filtration after its coface: a face weight above its coface weight, a
	// non-finite weight, or a boundary row that is not above its column.
	ErrMalformedFiltration = errors.New("malformed filtration")

	// ErrUnresolvedBoundary reports a boundary face that had no filtration
	// index yet when its coface was indexed.
	ErrUnresolvedBoundary = errors.New("unresolved boundary reference")

	// ErrInvalidComplex reports a cell complex that breaks the cell source
	// contract: dangling references, dimensions outside 0..3, or a boundary
	// that does not have dim+1 distinct faces of dimension dim-1.
	ErrInvalidComplex = errors.New("invalid cell complex")
)
