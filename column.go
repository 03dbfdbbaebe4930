package alphapers

import "github.com/RoaringBitmap/roaring/v2"

// column is a working copy of a boundary column during reduction.
// Addition is over GF(2): rows present in both operands cancel.
type column interface {
	isEmpty() bool
	// low returns the largest row index. It must not be called on an
	// empty column.
	low() int
	add(other column)
	clear()
	rows() []int
}

// newColumns copies the matrix into working columns of the chosen
// representation.
func newColumns(m *BoundaryMatrix, rep Representation) []column {
	cols := make([]column, len(m.Columns))
	for j, rows := range m.Columns {
		switch rep {
		case RepresentationBitmap:
			cols[j] = newBitmapColumn(rows)
		default:
			cols[j] = newVectorColumn(rows)
		}
	}
	return cols
}

// vectorColumn stores rows as an ascending slice.
type vectorColumn struct {
	entries []int
	scratch []int
}

func newVectorColumn(rows []int) *vectorColumn {
	entries := make([]int, len(rows))
	copy(entries, rows)
	return &vectorColumn{entries: entries}
}

func (c *vectorColumn) isEmpty() bool { return len(c.entries) == 0 }

func (c *vectorColumn) low() int { return c.entries[len(c.entries)-1] }

func (c *vectorColumn) add(other column) {
	o := other.(*vectorColumn)
	c.scratch = symmetricDifference(c.scratch[:0], c.entries, o.entries)
	c.entries, c.scratch = c.scratch, c.entries
}

func (c *vectorColumn) clear() {
	c.entries = c.entries[:0]
}

func (c *vectorColumn) rows() []int {
	out := make([]int, len(c.entries))
	copy(out, c.entries)
	return out
}

// symmetricDifference appends to dst the merge of two ascending slices with
// shared elements removed.
func symmetricDifference(dst, a, b []int) []int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			dst = append(dst, a[i])
			i++
		case a[i] > b[j]:
			dst = append(dst, b[j])
			j++
		default:
			i++
			j++
		}
	}
	dst = append(dst, a[i:]...)
	return append(dst, b[j:]...)
}

// bitmapColumn stores rows in a roaring bitmap; addition is XOR.
type bitmapColumn struct {
	bm *roaring.Bitmap
}

func newBitmapColumn(rows []int) *bitmapColumn {
	bm := roaring.New()
	for _, r := range rows {
		bm.Add(uint32(r))
	}
	return &bitmapColumn{bm: bm}
}

func (c *bitmapColumn) isEmpty() bool { return c.bm.IsEmpty() }

func (c *bitmapColumn) low() int { return int(c.bm.Maximum()) }

func (c *bitmapColumn) add(other column) {
	c.bm.Xor(other.(*bitmapColumn).bm)
}

func (c *bitmapColumn) clear() { c.bm.Clear() }

func (c *bitmapColumn) rows() []int {
	vals := c.bm.ToArray()
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}
