package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// ObjectAnchor controls how an image or chart follows the cells under it.
type ObjectAnchor int

const (
	AnchorDefault ObjectAnchor = iota
	// MoveAndSize moves and resizes the object with its cells.
	MoveAndSize
	// MoveDontSize moves the object with its cells without resizing it.
	MoveDontSize
	// DontMoveDontSize keeps the object in place.
	DontMoveDontSize
	// MoveAndSizeAfter behaves like MoveAndSize but the object is placed as
	// if hidden rows and columns were visible.
	MoveAndSizeAfter
)

// vertices is the pixel placement of an object: the cells that hold its
// corners, the offsets inside those cells, and its absolute position.
type vertices struct {
	colFrom, rowFrom int
	xFrom, yFrom     float64
	colTo, rowTo     int
	xTo, yTo         float64
	xAbs, yAbs       float64
	width, height    float64
}

// anchorPoint is a corner in EMU.
type anchorPoint struct {
	col, row       int
	colOff, rowOff int64
}

// emuPlacement is a placement converted for DrawingML.
type emuPlacement struct {
	from, to      anchorPoint
	xAbs, yAbs    int64
	width, height int64
}

// sizeCol returns the width of col in pixels. Hidden columns count as 0
// unless the anchor ignores hidden cells.
func (w *Worksheet) sizeCol(col int, anchor ObjectAnchor) int {
	ci := w.cols.find(col)
	if ci == nil {
		return DefaultColPixels
	}
	if ci.hidden && anchor != MoveAndSizeAfter {
		return 0
	}
	return widthToPixels(ci.width)
}

// sizeRow returns the height of row in pixels.
func (w *Worksheet) sizeRow(row int, anchor ObjectAnchor) int {
	r := w.rows.find(row)
	if r == nil {
		return w.defaultRowPixels()
	}
	if r.Hidden && anchor != MoveAndSizeAfter {
		return 0
	}
	h := r.Height
	if h == 0 {
		h = w.defaultRowHeight
	}
	return int(4.0 / 3.0 * h)
}

func (w *Worksheet) defaultRowPixels() int {
	return int(4.0 / 3.0 * w.defaultRowHeight)
}

// positionObject places an object of the given pixel size whose top left
// corner is at (xOff, yOff) inside cell (row, col).
func (w *Worksheet) positionObject(row, col int, xOff, yOff, width, height float64, anchor ObjectAnchor) vertices {
	colStart, rowStart := col, row
	x1, y1 := xOff, yOff
	objWidth, objHeight := width, height

	// negative offsets move the start to an earlier cell; this walk and
	// the absolute position always skip hidden cells
	for x1 < 0 && colStart > 0 {
		x1 += float64(w.sizeCol(colStart-1, AnchorDefault))
		colStart--
	}
	for y1 < 0 && rowStart > 0 {
		y1 += float64(w.sizeRow(rowStart-1, AnchorDefault))
		rowStart--
	}
	x1, y1 = max(x1, 0), max(y1, 0)

	var xAbs, yAbs float64
	if w.colSizeChanged {
		for i := 0; i < colStart; i++ {
			xAbs += float64(w.sizeCol(i, AnchorDefault))
		}
	} else {
		xAbs = float64(DefaultColPixels * colStart)
	}
	xAbs += x1
	if w.rowSizeChanged {
		for i := 0; i < rowStart; i++ {
			yAbs += float64(w.sizeRow(i, AnchorDefault))
		}
	} else {
		yAbs = float64(w.defaultRowPixels() * rowStart)
	}
	yAbs += y1

	// offsets larger than the cell move the start on
	for colStart < coord.ColMax-1 && x1 >= float64(w.sizeCol(colStart, anchor)) {
		x1 -= float64(w.sizeCol(colStart, anchor))
		colStart++
	}
	for rowStart < coord.RowMax-1 && y1 >= float64(w.sizeRow(rowStart, anchor)) {
		y1 -= float64(w.sizeRow(rowStart, anchor))
		rowStart++
	}

	colEnd, rowEnd := colStart, rowStart
	// the start offset only adds to the size of a visible cell
	if w.sizeCol(colStart, anchor) > 0 {
		width += x1
	}
	if w.sizeRow(rowStart, anchor) > 0 {
		height += y1
	}
	for colEnd < coord.ColMax-1 && width >= float64(w.sizeCol(colEnd, anchor)) {
		width -= float64(w.sizeCol(colEnd, anchor))
		colEnd++
	}
	for rowEnd < coord.RowMax-1 && height >= float64(w.sizeRow(rowEnd, anchor)) {
		height -= float64(w.sizeRow(rowEnd, anchor))
		rowEnd++
	}

	return vertices{
		colFrom: colStart, rowFrom: rowStart,
		xFrom: x1, yFrom: y1,
		colTo: colEnd, rowTo: rowEnd,
		xTo: width, yTo: height,
		xAbs: xAbs, yAbs: yAbs,
		width: objWidth, height: objHeight,
	}
}

// positionObjectEMUs is positionObject in EMU as DrawingML stores it.
func (w *Worksheet) positionObjectEMUs(row, col int, xOff, yOff, width, height float64, anchor ObjectAnchor) emuPlacement {
	v := w.positionObject(row, col, xOff, yOff, width, height, anchor)
	return emuPlacement{
		from: anchorPoint{
			col: v.colFrom, row: v.rowFrom,
			colOff: int64(v.xFrom * ooxml.EMUPerPixel),
			rowOff: int64(v.yFrom * ooxml.EMUPerPixel),
		},
		to: anchorPoint{
			col: v.colTo, row: v.rowTo,
			colOff: ooxml.PixelsToEMU(v.xTo),
			rowOff: ooxml.PixelsToEMU(v.yTo),
		},
		xAbs:   int64(v.xAbs * ooxml.EMUPerPixel),
		yAbs:   int64(v.yAbs * ooxml.EMUPerPixel),
		width:  ooxml.PixelsToEMU(width),
		height: ooxml.PixelsToEMU(height),
	}
}
