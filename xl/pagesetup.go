package xl

import (
	"slices"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/adnsv/srw/xml"
)

// MaxPageBreaks is the Excel limit of manual breaks per direction.
const MaxPageBreaks = 1023

// Default page margins in inches.
const (
	DefaultMarginLeft   = 0.7
	DefaultMarginRight  = 0.7
	DefaultMarginTop    = 0.75
	DefaultMarginBottom = 0.75
	DefaultMarginHeader = 0.3
	DefaultMarginFooter = 0.3
)

type area struct {
	inUse              bool
	firstRow, firstCol int
	lastRow, lastCol   int
}

type pageSetup struct {
	changed   bool
	landscape bool
	paper     int
	scale     int
	fitToPage bool
	fitWidth  int
	fitHeight int
	startPage int
	across    bool

	left, right, top, bottom float64
	headerMargin             float64
	footerMargin             float64

	header, footer string

	centerH, centerV bool
	headings         bool
	printGridlines   bool

	rowBreaks []int
	colBreaks []int

	printArea  area
	repeatRows area
	repeatCols area
}

func newPageSetup() pageSetup {
	return pageSetup{
		scale:        100,
		fitWidth:     1,
		fitHeight:    1,
		left:         DefaultMarginLeft,
		right:        DefaultMarginRight,
		top:          DefaultMarginTop,
		bottom:       DefaultMarginBottom,
		headerMargin: DefaultMarginHeader,
		footerMargin: DefaultMarginFooter,
	}
}

// SetLandscape prints the sheet in landscape orientation.
func (w *Worksheet) SetLandscape() {
	w.page.landscape = true
	w.page.changed = true
}

// SetPortrait prints the sheet in portrait orientation, the default.
func (w *Worksheet) SetPortrait() {
	w.page.landscape = false
	w.page.changed = true
}

// SetPaper selects the paper size by its Excel index, e.g. 9 for A4.
func (w *Worksheet) SetPaper(paper int) {
	if paper < 0 {
		w.log.Warnf("ignoring paper size %d", paper)
		return
	}
	w.page.paper = paper
	w.page.changed = true
}

// SetMargins sets the page margins in inches. A negative value keeps the
// default.
func (w *Worksheet) SetMargins(left, right, top, bottom float64) {
	pick := func(v, def float64) float64 {
		if v < 0 {
			return def
		}
		return v
	}
	w.page.left = pick(left, DefaultMarginLeft)
	w.page.right = pick(right, DefaultMarginRight)
	w.page.top = pick(top, DefaultMarginTop)
	w.page.bottom = pick(bottom, DefaultMarginBottom)
}

// SetHeader sets the page header using Excel's &L, &C, &R control codes.
// A negative margin keeps the default.
func (w *Worksheet) SetHeader(s string, margin float64) error {
	if err := ooxml.CheckLength("header", s, ooxml.MaxMediumString); err != nil {
		return err
	}
	w.page.header = s
	if margin >= 0 {
		w.page.headerMargin = margin
	}
	return nil
}

// SetFooter sets the page footer. A negative margin keeps the default.
func (w *Worksheet) SetFooter(s string, margin float64) error {
	if err := ooxml.CheckLength("footer", s, ooxml.MaxMediumString); err != nil {
		return err
	}
	w.page.footer = s
	if margin >= 0 {
		w.page.footerMargin = margin
	}
	return nil
}

// SetPrintScale sets the print zoom, 10 to 400 percent. It has no effect
// together with FitToPages.
func (w *Worksheet) SetPrintScale(scale int) {
	if scale < 10 || scale > 400 {
		w.log.Warnf("ignoring print scale %d outside 10..400", scale)
		return
	}
	w.page.fitToPage = false
	w.page.scale = scale
	w.page.changed = true
}

// FitToPages fits the printout into width by height pages. Zero leaves
// that direction unconstrained.
func (w *Worksheet) FitToPages(width, height int) {
	w.page.fitToPage = true
	w.page.fitWidth = width
	w.page.fitHeight = height
	w.page.changed = true
}

// SetStartPage sets the number of the first printed page.
func (w *Worksheet) SetStartPage(n int) {
	w.page.startPage = n
	w.page.changed = true
}

// PrintAcross prints pages left to right before going down.
func (w *Worksheet) PrintAcross() {
	w.page.across = true
	w.page.changed = true
}

// CenterHorizontally centers the printout on the page.
func (w *Worksheet) CenterHorizontally() {
	w.page.centerH = true
}

// CenterVertically centers the printout on the page.
func (w *Worksheet) CenterVertically() {
	w.page.centerV = true
}

// PrintRowColHeaders prints the row numbers and column letters.
func (w *Worksheet) PrintRowColHeaders() {
	w.page.headings = true
}

func setBreaks(what string, breaks []int, limit int) ([]int, error) {
	if len(breaks) > MaxPageBreaks {
		return nil, ooxml.Invalid("%d %s breaks exceed the limit of %d", len(breaks), what, MaxPageBreaks)
	}
	res := slices.Clone(breaks)
	slices.Sort(res)
	res = slices.Compact(res)
	for _, b := range res {
		if b <= 0 || b >= limit {
			return nil, ooxml.ErrIndexOutOfRange.New(what + " break")
		}
	}
	return res, nil
}

// SetRowBreaks places manual page breaks above the given rows.
func (w *Worksheet) SetRowBreaks(rows []int) error {
	b, err := setBreaks("row", rows, coord.RowMax)
	if err != nil {
		return err
	}
	w.page.rowBreaks = b
	return nil
}

// SetColBreaks places manual page breaks left of the given columns.
func (w *Worksheet) SetColBreaks(cols []int) error {
	b, err := setBreaks("column", cols, coord.ColMax)
	if err != nil {
		return err
	}
	w.page.colBreaks = b
	return nil
}

// PrintArea limits printing to a range. The whole sheet is the default
// and selecting it is ignored.
func (w *Worksheet) PrintArea(firstRow, firstCol, lastRow, lastCol int) error {
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if err := w.checkDimensions(firstRow, firstCol, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(lastRow, lastCol, true, true); err != nil {
		return err
	}
	if firstRow == 0 && firstCol == 0 && lastRow == coord.RowMax-1 && lastCol == coord.ColMax-1 {
		w.log.Warn("ignoring print area covering the whole sheet")
		return nil
	}
	w.page.printArea = area{true, firstRow, firstCol, lastRow, lastCol}
	return nil
}

// RepeatRows prints the rows at the top of every page.
func (w *Worksheet) RepeatRows(firstRow, lastRow int) error {
	if lastRow < firstRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if err := w.checkDimensions(lastRow, 0, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(firstRow, 0, true, true); err != nil {
		return err
	}
	w.page.repeatRows = area{inUse: true, firstRow: firstRow, lastRow: lastRow}
	return nil
}

// RepeatColumns prints the columns at the left of every page.
func (w *Worksheet) RepeatColumns(firstCol, lastCol int) error {
	if lastCol < firstCol {
		firstCol, lastCol = lastCol, firstCol
	}
	if err := w.checkDimensions(0, lastCol, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(0, firstCol, true, true); err != nil {
		return err
	}
	w.page.repeatCols = area{inUse: true, firstCol: firstCol, lastCol: lastCol}
	return nil
}

// DefinedName is a sheet-local name the workbook part must declare.
type DefinedName struct {
	Name   string
	Ref    string
	Hidden bool
}

// DefinedNames returns the built-in names implied by the autofilter, print
// area and print titles of the sheet.
func (w *Worksheet) DefinedNames() []DefinedName {
	var res []DefinedName
	if f := &w.filter; f.inUse {
		res = append(res, DefinedName{
			Name:   "_xlnm._FilterDatabase",
			Ref:    coord.RangeToFormula(w.name, f.firstRow, f.firstCol, f.lastRow, f.lastCol),
			Hidden: true,
		})
	}
	if a := &w.page.printArea; a.inUse {
		var ref string
		switch {
		case a.firstRow == 0 && a.lastRow == coord.RowMax-1:
			ref = coord.ColsToFormula(w.name, a.firstCol, a.lastCol)
		case a.firstCol == 0 && a.lastCol == coord.ColMax-1:
			ref = coord.RowsToFormula(w.name, a.firstRow, a.lastRow)
		default:
			ref = coord.RangeToFormula(w.name, a.firstRow, a.firstCol, a.lastRow, a.lastCol)
		}
		res = append(res, DefinedName{Name: "_xlnm.Print_Area", Ref: ref})
	}
	var titles string
	if c := &w.page.repeatCols; c.inUse {
		titles = coord.ColsToFormula(w.name, c.firstCol, c.lastCol)
	}
	if r := &w.page.repeatRows; r.inUse {
		if titles != "" {
			titles += ","
		}
		titles += coord.RowsToFormula(w.name, r.firstRow, r.lastRow)
	}
	if titles != "" {
		res = append(res, DefinedName{Name: "_xlnm.Print_Titles", Ref: titles})
	}
	return res
}

func (w *Worksheet) writePrintOptions(x *ooxml.Doc) {
	p := &w.page
	if !p.centerH && !p.centerV && !p.headings && !p.printGridlines {
		return
	}
	x.OTag("printOptions")
	if p.centerH {
		x.Attr("horizontalCentered", 1)
	}
	if p.centerV {
		x.Attr("verticalCentered", 1)
	}
	if p.headings {
		x.Attr("headings", 1)
	}
	if p.printGridlines {
		x.Attr("gridLines", 1)
	}
	x.CTag()
}

func writePageMargins(x *ooxml.Doc, p *pageSetup) {
	x.OTag("pageMargins")
	x.Attr("left", ooxml.FormatFloat(p.left))
	x.Attr("right", ooxml.FormatFloat(p.right))
	x.Attr("top", ooxml.FormatFloat(p.top))
	x.Attr("bottom", ooxml.FormatFloat(p.bottom))
	x.Attr("header", ooxml.FormatFloat(p.headerMargin))
	x.Attr("footer", ooxml.FormatFloat(p.footerMargin))
	x.CTag()
}

func writePageSetup(x *ooxml.Doc, p *pageSetup) {
	if !p.changed {
		return
	}
	x.OTag("pageSetup")
	if p.paper > 0 {
		x.Attr("paperSize", p.paper)
	}
	if p.scale != 100 {
		x.Attr("scale", p.scale)
	}
	if p.fitToPage && p.fitWidth != 1 {
		x.Attr("fitToWidth", p.fitWidth)
	}
	if p.fitToPage && p.fitHeight != 1 {
		x.Attr("fitToHeight", p.fitHeight)
	}
	if p.across {
		x.Attr("pageOrder", "overThenDown")
	}
	if p.startPage > 1 {
		x.Attr("firstPageNumber", p.startPage)
	}
	if p.landscape {
		x.Attr("orientation", "landscape")
	} else {
		x.Attr("orientation", "portrait")
	}
	if p.startPage > 0 {
		x.Attr("useFirstPageNumber", 1)
	}
	x.CTag()
}

func writeHeaderFooter(x *ooxml.Doc, p *pageSetup) {
	if p.header == "" && p.footer == "" {
		return
	}
	x.OTag("headerFooter")
	if p.header != "" {
		x.Text("oddHeader", p.header)
	}
	if p.footer != "" {
		x.Text("oddFooter", p.footer)
	}
	x.CTag()
}

func (w *Worksheet) writeBreaks(x *ooxml.Doc) {
	writeBrk := func(tag xml.NameString, breaks []int, limit int) {
		if len(breaks) == 0 {
			return
		}
		x.OTag(tag).Attr("count", len(breaks)).Attr("manualBreakCount", len(breaks))
		for _, b := range breaks {
			x.OTag("brk").Attr("id", b).Attr("max", limit).Attr("man", 1).CTag()
		}
		x.CTag()
	}
	writeBrk("rowBreaks", w.page.rowBreaks, coord.ColMax-1)
	writeBrk("colBreaks", w.page.colBreaks, coord.RowMax-1)
}
