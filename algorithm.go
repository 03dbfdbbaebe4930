package alphapers

// autoBitmapColumns is the matrix width from which RepresentationAuto
// switches to bitmap columns. Below it, sorted slices are faster because
// alpha complex columns are short and most additions touch few rows.
const autoBitmapColumns = 1 << 20

// selectRepresentation resolves RepresentationAuto into a concrete column
// representation based on the matrix size.
func selectRepresentation(rep Representation, m *BoundaryMatrix) Representation {
	if rep != RepresentationAuto {
		return rep
	}
	if m.NumCols() >= autoBitmapColumns {
		return RepresentationBitmap
	}
	return RepresentationVector
}
