package xl

import (
	"fmt"
	"math/bits"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// Excel defaults for Calibri 11.
const (
	DefaultColWidth  = 8.43
	DefaultColPixels = 64
	DefaultRowHeight = 15.0
	DefaultRowPixels = 20

	maxDigitWidth = 7
	cellPadding   = 5
)

// ColumnOptions are the optional column settings.
type ColumnOptions struct {
	Hidden    bool
	Level     int // outline level, clamped to 0..7
	Collapsed bool
}

type colInfo struct {
	first, last int
	width       float64
	format      Format
	hidden      bool
	level       int
	collapsed   bool
}

// colStore holds column ranges indexed by their first column, and for
// each column the range set last that covers it.
type colStore struct {
	opts  []*colInfo
	byCol []*colInfo
}

func growTo[T any](s []T, n int) []T {
	if n <= len(s) {
		return s
	}
	size := 1 << bits.Len(uint(n-1))
	return append(s, make([]T, size-len(s))...)
}

func (cs *colStore) set(ci *colInfo) {
	cs.opts = growTo(cs.opts, ci.first+1)
	cs.opts[ci.first] = ci
	cs.byCol = growTo(cs.byCol, ci.last+1)
	for c := ci.first; c <= ci.last; c++ {
		cs.byCol[c] = ci
	}
}

// find returns the range set last that contains col.
func (cs *colStore) find(col int) *colInfo {
	if col < len(cs.byCol) {
		return cs.byCol[col]
	}
	return nil
}

func (cs *colStore) format(col int) Format {
	if ci := cs.find(col); ci != nil {
		return ci.format
	}
	return nil
}

func (cs *colStore) empty() bool {
	for _, ci := range cs.opts {
		if ci != nil {
			return false
		}
	}
	return true
}

// SetColumn sets the width, in character units, and the format of a range
// of columns. A negative width keeps the Excel default.
func (w *Worksheet) SetColumn(first, last int, width float64, f Format, o *ColumnOptions) error {
	if o == nil {
		o = &ColumnOptions{}
	}
	if first > last {
		first, last = last, first
	}
	if width < 0 {
		width = DefaultColWidth
	}

	// only formatted or hidden columns count towards the dimension
	ignoreCol := !(f != nil || (width != DefaultColWidth && o.Hidden))
	if !coord.Valid(0, first) || !coord.Valid(0, last) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("columns %d:%d", first, last))
	}
	w.widen(0, first, true, ignoreCol)
	w.widen(0, last, true, ignoreCol)

	level := clampLevel(o.Level)
	if level > w.outlineColLevel {
		w.outlineColLevel = level
	}
	if o.Hidden || width != DefaultColWidth {
		w.colSizeChanged = true
	}
	w.cols.set(&colInfo{
		first:     first,
		last:      last,
		width:     width,
		format:    f,
		hidden:    o.Hidden,
		level:     level,
		collapsed: o.Collapsed,
	})
	return nil
}

// SetColumnPixels is SetColumn with the width given in pixels.
func (w *Worksheet) SetColumnPixels(first, last int, pixels int, f Format, o *ColumnOptions) error {
	return w.SetColumn(first, last, pixelsToWidth(pixels), f, o)
}

// ColumnWidth returns the stored width of col in character units.
func (w *Worksheet) ColumnWidth(col int) (float64, bool) {
	if ci := w.cols.find(col); ci != nil {
		return ci.width, true
	}
	return DefaultColWidth, false
}

func pixelsToWidth(px int) float64 {
	if px == DefaultColPixels {
		return DefaultColWidth
	}
	if px <= 12 {
		return float64(px) / (maxDigitWidth + cellPadding)
	}
	return float64(px-cellPadding) / maxDigitWidth
}

// widthToPixels converts a width in character units to pixels.
func widthToPixels(width float64) int {
	if width < 1 {
		return int(width*(maxDigitWidth+cellPadding) + 0.5)
	}
	return int(width*maxDigitWidth+0.5) + cellPadding
}

// charWidth converts a user width to the width Excel stores, which is
// rounded to whole pixels and 1/256 of a character.
func charWidth(width float64) float64 {
	if width <= 0 {
		return 0
	}
	px := widthToPixels(width)
	return float64(int(float64(px)/maxDigitWidth*256)) / 256
}

func (w *Worksheet) writeCols(x *ooxml.Doc) {
	if w.cols.empty() {
		return
	}
	x.OTag("cols")
	for _, ci := range w.cols.opts {
		if ci != nil {
			writeColInfo(x, ci)
		}
	}
	x.CTag()
}

func writeColInfo(x *ooxml.Doc, ci *colInfo) {
	width := ci.width
	custom := true
	if width == DefaultColWidth {
		if ci.hidden {
			width = 0
		} else {
			custom = false
		}
	}
	x.OTag("col")
	x.Attr("min", ci.first+1)
	x.Attr("max", ci.last+1)
	x.Attr("width", ooxml.FormatFloat(charWidth(width)))
	if ci.format != nil {
		if xf := ci.format.XFIndex(); xf != 0 {
			x.Attr("style", xf)
		}
	}
	if ci.hidden {
		x.Attr("hidden", 1)
	}
	if custom {
		x.Attr("customWidth", 1)
	}
	if ci.level > 0 {
		x.Attr("outlineLevel", ci.level)
	}
	if ci.collapsed {
		x.Attr("collapsed", 1)
	}
	x.CTag()
}
