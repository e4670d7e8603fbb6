package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

type mergeRange struct {
	firstRow, firstCol int
	lastRow, lastCol   int
}

func (m mergeRange) overlaps(firstRow, firstCol, lastRow, lastCol int) bool {
	return firstRow <= m.lastRow && lastRow >= m.firstRow &&
		firstCol <= m.lastCol && lastCol >= m.firstCol
}

func (m mergeRange) String() string {
	return coord.RangeToString(m.firstRow, m.firstCol, m.lastRow, m.lastCol)
}

// MergeRange merges a range of cells. The first cell gets s, the others
// formatted blanks so the merged area keeps its borders.
func (w *Worksheet) MergeRange(firstRow, firstCol, lastRow, lastCol int, s string, f Format) error {
	if firstRow == lastRow && firstCol == lastCol {
		return ooxml.Invalid("cannot merge a single cell %s", coord.CellToString(firstRow, firstCol))
	}
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if !coord.Valid(lastRow, lastCol) || !coord.Valid(firstRow, firstCol) {
		return ooxml.ErrIndexOutOfRange.New(coord.RangeToString(firstRow, firstCol, lastRow, lastCol))
	}
	for _, m := range w.merges {
		if m.overlaps(firstRow, firstCol, lastRow, lastCol) {
			return ooxml.Invalid("merge range %s overlaps %s",
				coord.RangeToString(firstRow, firstCol, lastRow, lastCol), m)
		}
	}
	for _, t := range w.tables {
		if t.overlaps(firstRow, firstCol, lastRow, lastCol) {
			return ooxml.Invalid("merge range %s overlaps table %s",
				coord.RangeToString(firstRow, firstCol, lastRow, lastCol), t.Ref())
		}
	}
	if err := ooxml.CheckLength("string", s, ooxml.MaxString); err != nil {
		return err
	}
	if err := w.checkCell(firstRow, firstCol); err != nil {
		return err
	}

	if err := w.WriteString(firstRow, firstCol, s, f); err != nil {
		return err
	}
	for r := firstRow; r <= lastRow; r++ {
		for c := firstCol; c <= lastCol; c++ {
			if r == firstRow && c == firstCol {
				continue
			}
			if err := w.WriteBlank(r, c, f); err != nil {
				return err
			}
		}
	}
	w.widen(firstRow, firstCol, false, false)
	w.widen(lastRow, lastCol, false, false)
	w.merges = append(w.merges, mergeRange{firstRow, firstCol, lastRow, lastCol})
	return nil
}

func (w *Worksheet) writeMergeCells(x *ooxml.Doc) {
	if len(w.merges) == 0 {
		return
	}
	x.OTag("mergeCells").Attr("count", len(w.merges))
	for _, m := range w.merges {
		x.OTag("mergeCell").Attr("ref", m.String()).CTag()
	}
	x.CTag()
}
