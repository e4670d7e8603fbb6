package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

type paneKind int

const (
	paneNone paneKind = iota
	paneFrozen
	paneFrozenSplit
	paneSplit
)

type pane struct {
	kind            paneKind
	row, col        int     // frozen panes
	ySplit, xSplit  float64 // split panes, points and character widths
	topRow, leftCol int
}

type outlineSettings struct {
	changed   bool
	hidden    bool
	above     bool
	left      bool
	autoStyle bool
}

type sheetView struct {
	zoom          int
	hideGridlines bool
	hideHeaders   bool
	hideZeros     bool
	rightToLeft   bool
	pageView      bool
	selected      bool
	active        bool
	hidden        bool
	tabColor      ooxml.Color

	pane      pane
	selection struct {
		activeCell, sqref string
	}
	outline outlineSettings
}

func newSheetView() sheetView {
	return sheetView{zoom: 100}
}

// Gridlines shows or hides the gridlines on screen and on the printout.
func (w *Worksheet) Gridlines(screen, print bool) {
	w.view.hideGridlines = !screen
	w.page.printGridlines = print
}

// SetZoom sets the screen zoom, 10 to 400 percent.
func (w *Worksheet) SetZoom(scale int) {
	if scale < 10 || scale > 400 {
		w.log.Warnf("ignoring zoom %d outside 10..400", scale)
		return
	}
	w.view.zoom = scale
}

// RightToLeft displays the sheet with column A on the right.
func (w *Worksheet) RightToLeft() {
	w.view.rightToLeft = true
}

// HideZeros shows zero values as empty cells.
func (w *Worksheet) HideZeros() {
	w.view.hideZeros = true
}

// HideRowColHeaders hides the row numbers and column letters on screen.
func (w *Worksheet) HideRowColHeaders() {
	w.view.hideHeaders = true
}

// SetPageView shows the sheet in page layout view.
func (w *Worksheet) SetPageView() {
	w.view.pageView = true
}

// SetTabColor colours the sheet tab.
func (w *Worksheet) SetTabColor(c ooxml.Color) {
	w.view.tabColor = c
}

// Select marks the sheet tab as selected.
func (w *Worksheet) Select() {
	w.view.selected = true
	w.view.hidden = false
}

// Activate makes the sheet the one shown when the workbook opens.
func (w *Worksheet) Activate() {
	w.view.selected = true
	w.view.active = true
	w.view.hidden = false
}

// Hide hides the sheet. The active sheet cannot be hidden.
func (w *Worksheet) Hide() {
	w.view.hidden = true
	w.view.selected = false
	w.view.active = false
}

// Selected reports whether the tab is selected.
func (w *Worksheet) Selected() bool { return w.view.selected }

// Active reports whether the sheet was activated.
func (w *Worksheet) Active() bool { return w.view.active }

// Hidden reports whether the sheet is hidden.
func (w *Worksheet) Hidden() bool { return w.view.hidden }

// SetSelection selects a range of cells. The first cell is the active one.
func (w *Worksheet) SetSelection(firstRow, firstCol, lastRow, lastCol int) error {
	if !coord.Valid(firstRow, firstCol) || !coord.Valid(lastRow, lastCol) {
		return ooxml.ErrIndexOutOfRange.New("selection")
	}
	active := coord.CellToString(firstRow, firstCol)
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	sqref := coord.RangeToString(firstRow, firstCol, lastRow, lastCol)
	if sqref == "A1" {
		w.view.selection.activeCell, w.view.selection.sqref = "", ""
		return nil
	}
	w.view.selection.activeCell, w.view.selection.sqref = active, sqref
	return nil
}

// FreezePanes freezes the rows above row and the columns left of col.
func (w *Worksheet) FreezePanes(row, col int) error {
	return w.FreezePanesOpt(row, col, row, col, false)
}

// FreezePanesOpt freezes panes with the lower pane scrolled to topRow and
// leftCol. A split freeze can be dragged apart by the user.
func (w *Worksheet) FreezePanesOpt(row, col, topRow, leftCol int, split bool) error {
	if !coord.Valid(row, col) || !coord.Valid(topRow, leftCol) {
		return ooxml.ErrIndexOutOfRange.New("freeze panes")
	}
	kind := paneFrozen
	if split {
		kind = paneFrozenSplit
	}
	w.view.pane = pane{kind: kind, row: row, col: col, topRow: topRow, leftCol: leftCol}
	return nil
}

// SplitPanes splits the window at vertical points from the top and
// horizontal character widths from the left.
func (w *Worksheet) SplitPanes(vertical, horizontal float64) {
	w.view.pane = pane{kind: paneSplit, ySplit: vertical, xSplit: horizontal}
}

// OutlineSettings controls the outline symbols and the position of the
// summary rows and columns.
func (w *Worksheet) OutlineSettings(visible, summaryAbove, summaryLeft, autoStyle bool) {
	w.view.outline = outlineSettings{
		changed:   true,
		hidden:    !visible,
		above:     summaryAbove,
		left:      summaryLeft,
		autoStyle: autoStyle,
	}
}

func (w *Worksheet) writeSheetPr(x *ooxml.Doc) {
	v := &w.view
	fit := w.page.fitToPage
	filter := w.filterMode()
	if !fit && !filter && !v.tabColor.IsSet() && !v.outline.changed {
		return
	}
	x.OTag("sheetPr")
	if filter {
		x.Attr("filterMode", 1)
	}
	if v.tabColor.IsSet() {
		x.OTag("tabColor").Attr("rgb", v.tabColor.ARGB()).CTag()
	}
	if o := &v.outline; o.changed {
		x.OTag("outlinePr")
		if o.autoStyle {
			x.Attr("applyStyles", 1)
		}
		if o.above {
			x.Attr("summaryBelow", 0)
		}
		if o.left {
			x.Attr("summaryRight", 0)
		}
		if o.hidden {
			x.Attr("showOutlineSymbols", 0)
		}
		x.CTag()
	}
	if fit {
		x.OTag("pageSetUpPr").Attr("fitToPage", 1).CTag()
	}
	x.CTag()
}

func (w *Worksheet) writeSheetViews(x *ooxml.Doc) {
	v := &w.view
	x.OTag("sheetViews")
	x.OTag("sheetView")
	if v.hideGridlines {
		x.Attr("showGridLines", 0)
	}
	if v.hideHeaders {
		x.Attr("showRowColHeaders", 0)
	}
	if v.hideZeros {
		x.Attr("showZeros", 0)
	}
	if v.rightToLeft {
		x.Attr("rightToLeft", 1)
	}
	if v.selected {
		x.Attr("tabSelected", 1)
	}
	if v.outline.hidden {
		x.Attr("showOutlineSymbols", 0)
	}
	if v.pageView {
		x.Attr("view", "pageLayout")
	}
	if v.zoom != 100 && !v.pageView {
		x.Attr("zoomScale", v.zoom)
	}
	x.Attr("workbookViewId", 0)

	switch v.pane.kind {
	case paneFrozen, paneFrozenSplit:
		w.writeFrozenPane(x)
	case paneSplit:
		w.writeSplitPane(x)
	default:
		if v.selection.sqref != "" {
			x.OTag("selection").Attr("activeCell", v.selection.activeCell).Attr("sqref", v.selection.sqref).CTag()
		}
	}
	x.CTag() // sheetView
	x.CTag() // sheetViews
}

func writeSelection(x *ooxml.Doc, pane, active, sqref string) {
	x.OTag("selection").Attr("pane", pane)
	if active != "" {
		x.Attr("activeCell", active)
	}
	if sqref != "" {
		x.Attr("sqref", sqref)
	}
	x.CTag()
}

func activePane(row, col bool) string {
	switch {
	case row && col:
		return "bottomRight"
	case col:
		return "topRight"
	}
	return "bottomLeft"
}

func (w *Worksheet) writeFrozenPane(x *ooxml.Doc) {
	p := &w.view.pane
	if p.row == 0 && p.col == 0 {
		return
	}
	topLeft := coord.CellToString(p.topRow, p.leftCol)
	active := activePane(p.row > 0, p.col > 0)

	x.OTag("pane")
	if p.col > 0 {
		x.Attr("xSplit", p.col)
	}
	if p.row > 0 {
		x.Attr("ySplit", p.row)
	}
	x.Attr("topLeftCell", topLeft)
	x.Attr("activePane", active)
	if p.kind == paneFrozenSplit {
		x.Attr("state", "frozenSplit")
	} else {
		x.Attr("state", "frozen")
	}
	x.CTag()

	cell, sqref := w.view.selection.activeCell, w.view.selection.sqref
	if sqref == "" {
		cell, sqref = topLeft, topLeft
	}
	if p.row > 0 && p.col > 0 {
		writeSelection(x, "topRight", coord.CellToString(0, p.col), coord.CellToString(0, p.col))
		writeSelection(x, "bottomLeft", coord.CellToString(p.row, 0), coord.CellToString(p.row, 0))
	}
	writeSelection(x, active, cell, sqref)
}

// splitWidth converts a split position in character widths to twips.
func splitWidth(width float64) float64 {
	var px int
	if width < 1 {
		px = int(width*(maxDigitWidth+cellPadding) + 0.5)
	} else {
		px = int(width*maxDigitWidth+0.5) + cellPadding
	}
	return float64(px)*0.75*20 + 390
}

func (w *Worksheet) writeSplitPane(x *ooxml.Doc) {
	p := &w.view.pane
	if p.ySplit == 0 && p.xSplit == 0 {
		return
	}
	var ySplit, xSplit float64
	if p.ySplit > 0 {
		ySplit = p.ySplit*20 + 300
	}
	if p.xSplit > 0 {
		xSplit = splitWidth(p.xSplit)
	}
	topRow := int(0.5 + (ySplit-300)/20/15)
	leftCol := int(0.5 + (xSplit-390)/20/3*4/64)
	topRow, leftCol = max(topRow, 0), max(leftCol, 0)
	topLeft := coord.CellToString(topRow, leftCol)
	active := activePane(ySplit > 0, xSplit > 0)

	x.OTag("pane")
	if xSplit > 0 {
		x.Attr("xSplit", ooxml.FormatFloat(xSplit))
	}
	if ySplit > 0 {
		x.Attr("ySplit", ooxml.FormatFloat(ySplit))
	}
	x.Attr("topLeftCell", topLeft)
	if ySplit > 0 || xSplit > 0 {
		x.Attr("activePane", active)
	}
	x.CTag()

	cell, sqref := w.view.selection.activeCell, w.view.selection.sqref
	if sqref == "" {
		cell, sqref = topLeft, topLeft
	}
	if ySplit > 0 && xSplit > 0 {
		writeSelection(x, "topRight", "", "")
		writeSelection(x, "bottomLeft", "", "")
	}
	writeSelection(x, active, cell, sqref)
}

func (w *Worksheet) writeSheetFormatPr(x *ooxml.Doc) {
	x.OTag("sheetFormatPr")
	x.Attr("defaultRowHeight", ooxml.FormatFloat(w.defaultRowHeight))
	if w.defaultRowHeight != DefaultRowHeight {
		x.Attr("customHeight", 1)
	}
	if w.zeroHeight {
		x.Attr("zeroHeight", 1)
	}
	if w.outlineRowLevel > 0 {
		x.Attr("outlineLevelRow", w.outlineRowLevel)
	}
	if w.outlineColLevel > 0 {
		x.Attr("outlineLevelCol", w.outlineColLevel)
	}
	x.CTag()
}
