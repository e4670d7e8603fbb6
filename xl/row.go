package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// Row holds the cells of one sheet row and its metadata.
type Row struct {
	Number    int     // 0-based
	Height    float64 // points; 0 uses the sheet default
	Hidden    bool
	Level     int
	Collapsed bool
	Format    Format

	changed bool // metadata was set explicitly
	cells   sortedMap[int, *Cell]
}

func newRow(n int) *Row {
	return &Row{Number: n}
}

// Cell returns the cell at col, if any.
func (r *Row) Cell(col int) (*Cell, bool) {
	return r.cells.Get(col)
}

// Len returns the number of cells.
func (r *Row) Len() int {
	return r.cells.Len()
}

func (r *Row) put(c *Cell) {
	r.cells.Set(c.Col, c)
}

// colRange returns the first and last occupied column.
func (r *Row) colRange() (int, int, bool) {
	first, _, ok := r.cells.First()
	if !ok {
		return 0, 0, false
	}
	last, _, _ := r.cells.Last()
	return first, last, true
}

// RowOptions are the optional row settings.
type RowOptions struct {
	Hidden    bool
	Level     int // outline level, clamped to 0..7
	Collapsed bool
}

// SetRow sets the height and format of a row. A height of 0 hides the row
// at the default height.
func (w *Worksheet) SetRow(row int, height float64, f Format, o *RowOptions) error {
	if o == nil {
		o = &RowOptions{}
	}
	minCol := 0
	if w.dim.colMin != coord.ColMax {
		minCol = w.dim.colMin
	}
	if err := w.checkCell(row, minCol); err != nil {
		return err
	}

	hidden := o.Hidden
	if height == 0 {
		hidden = true
		height = w.defaultRowHeight
	}
	level := clampLevel(o.Level)
	if level > w.outlineRowLevel {
		w.outlineRowLevel = level
	}

	r, err := w.rows.row(row)
	if err != nil {
		return err
	}
	r.Height = height
	r.Hidden = hidden
	r.Level = level
	r.Collapsed = o.Collapsed
	r.Format = f
	r.changed = true
	w.widen(row, minCol, false, false)
	if hidden || height != w.defaultRowHeight {
		w.rowSizeChanged = true
	}
	return nil
}

// SetRowPixels is SetRow with the height given in pixels.
func (w *Worksheet) SetRowPixels(row int, pixels int, f Format, o *RowOptions) error {
	return w.SetRow(row, float64(pixels)*0.75, f, o)
}

// SetDefaultRow changes the default row height and optionally hides all
// rows that were not set explicitly.
func (w *Worksheet) SetDefaultRow(height float64, hideUnused bool) {
	if height < 0 {
		height = w.defaultRowHeight
	}
	if height != w.defaultRowHeight {
		w.defaultRowHeight = height
		w.rowSizeChanged = true
		w.defaultRowSet = true
	}
	if hideUnused {
		w.zeroHeight = true
		w.defaultRowSet = true
	}
}

func clampLevel(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 7:
		return 7
	}
	return n
}

// writeRowStart opens <row> with its attributes. An empty row is closed
// right away by the caller's CTag.
func (w *Worksheet) writeRowStart(x *ooxml.Doc, r *Row, spans string) {
	height := r.Height
	if height == 0 {
		height = w.defaultRowHeight
	}
	x.OTag("row").Attr("r", r.Number+1)
	if spans != "" {
		x.Attr("spans", spans)
	}
	if r.Format != nil {
		if xf := r.Format.XFIndex(); xf != 0 {
			x.Attr("s", xf)
		}
		x.Attr("customFormat", 1)
	}
	if height != DefaultRowHeight {
		x.Attr("ht", ooxml.FormatShort(height))
	}
	if r.Hidden {
		x.Attr("hidden", 1)
	}
	if height != DefaultRowHeight {
		x.Attr("customHeight", 1)
	}
	if r.Level > 0 {
		x.Attr("outlineLevel", r.Level)
	}
	if r.Collapsed {
		x.Attr("collapsed", 1)
	}
}

// writeRow writes one row and its cells.
func (w *Worksheet) writeRow(x *ooxml.Doc, r *Row, spans string) {
	w.writeRowStart(x, r, spans)
	for _, c := range r.cells.All() {
		c.write(x, w.styleOf(c, r))
	}
	x.CTag()
}

// styleOf resolves the xf index: cell format, then row, then column.
func (w *Worksheet) styleOf(c *Cell, r *Row) int {
	switch {
	case c.Format != nil:
		return c.Format.XFIndex()
	case r != nil && r.Format != nil:
		return r.Format.XFIndex()
	}
	if f := w.cols.format(c.Col); f != nil {
		return f.XFIndex()
	}
	return 0
}
