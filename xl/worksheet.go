package xl

import (
	"fmt"
	"strings"
	"time"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/sirupsen/logrus"
)

// Options configure a worksheet. A nil *Options gives the defaults.
type Options struct {
	// ConstantMemory keeps only the current row in memory. Rows must be
	// written in ascending order and strings are stored inline.
	ConstantMemory bool
	// TmpDir is where the row stream lives in constant memory mode. Empty
	// means os.TempDir.
	TmpDir string
	// UseMemoryStream keeps the row stream in memory instead of a file.
	UseMemoryStream bool
	// UseFutureFunctions adds the _xlfn. prefix to Excel 2010+ functions.
	UseFutureFunctions bool
	// HyperlinkFormat is applied to hyperlink cells written without a format.
	HyperlinkFormat Format
	// Logger receives warnings. Defaults to logrus.StandardLogger.
	Logger *logrus.Logger
	// Strings interns shared strings. Defaults to a private table.
	Strings StringTable
}

// Worksheet is the in-memory model of one worksheet part and of the
// drawing, comment, VML and table parts hanging off it.
type Worksheet struct {
	name    string
	opts    Options
	log     *logrus.Entry
	strings StringTable

	dim  dimension
	rows rowSink
	cols colStore

	defaultRowHeight float64
	defaultRowSet    bool
	zeroHeight       bool
	rowSizeChanged   bool
	colSizeChanged   bool
	outlineRowLevel  int
	outlineColLevel  int

	merges      []mergeRange
	hyperlinks  sortedMap[cellKey, *hyperlink]
	comments    sortedMap[cellKey, *comment]
	commentOpts commentDefaults
	validations []*Validation
	condFormats map[string][]*condRule
	priority    int
	filter      autoFilter
	tables      []*Table

	objects    []*drawingObject
	charts     []*chart.Chart
	background *mediaRef
	media      *mediaRegistry

	page    pageSetup
	view    sheetView
	protect *protection
	ignored map[IgnoreKind][]string

	// part numbers assigned by the workbook
	index     int
	drawingID int
	commentID int
	vmlDataID int
	tableBase int
}

type dimension struct {
	rowMin, rowMax int
	colMin, colMax int
}

// NewWorksheet creates an empty worksheet.
func NewWorksheet(name string, o *Options) (*Worksheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	if o == nil {
		o = &Options{}
	}
	logger := o.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	w := &Worksheet{
		name:             name,
		opts:             *o,
		log:              logger.WithField("sheet", name),
		strings:          o.Strings,
		dim:              dimension{rowMin: coord.RowMax, colMin: coord.ColMax},
		defaultRowHeight: DefaultRowHeight,
		condFormats:      map[string][]*condRule{},
		page:             newPageSetup(),
		view:             newSheetView(),
		ignored:          map[IgnoreKind][]string{},
	}
	if w.strings == nil {
		w.strings = NewSharedStrings()
	}
	if o.ConstantMemory {
		s, err := newStreamRows(w, o.TmpDir, o.UseMemoryStream)
		if err != nil {
			return nil, err
		}
		w.rows = s
	} else {
		w.rows = &memoryRows{ws: w}
	}
	return w, nil
}

// Name returns the sheet name.
func (w *Worksheet) Name() string {
	return w.name
}

// Close releases the row stream of a constant memory worksheet.
func (w *Worksheet) Close() error {
	return w.rows.close()
}

// Dimension returns the used range as written in <dimension ref>.
func (w *Worksheet) Dimension() string {
	d := w.dim
	switch {
	case d.rowMin == coord.RowMax && d.colMin == coord.ColMax:
		return "A1"
	case d.rowMin == coord.RowMax:
		return coord.RangeToString(0, d.colMin, 0, d.colMax)
	case d.colMin == coord.ColMax:
		return coord.RangeToString(d.rowMin, 0, d.rowMax, 0)
	}
	return coord.RangeToString(d.rowMin, d.colMin, d.rowMax, d.colMax)
}

// checkDimensions validates a cell position and widens the used range.
// Lookups that must not widen the range set ignoreRow and ignoreCol.
func (w *Worksheet) checkDimensions(row, col int, ignoreRow, ignoreCol bool) error {
	if !coord.Valid(row, col) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("cell (%d, %d)", row, col))
	}
	if !ignoreRow && !ignoreCol && !w.rows.accepts(row) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("row %d was already written", row+1))
	}
	w.widen(row, col, ignoreRow, ignoreCol)
	return nil
}

// checkCell validates a cell coordinate without touching the dimension;
// put widens it once the cell is stored.
func (w *Worksheet) checkCell(row, col int) error {
	if !coord.Valid(row, col) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("cell (%d, %d)", row, col))
	}
	if !w.rows.accepts(row) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("row %d was already written", row+1))
	}
	return nil
}

func (w *Worksheet) widen(row, col int, ignoreRow, ignoreCol bool) {
	if !ignoreRow {
		w.dim.rowMin = min(w.dim.rowMin, row)
		w.dim.rowMax = max(w.dim.rowMax, row)
	}
	if !ignoreCol {
		w.dim.colMin = min(w.dim.colMin, col)
		w.dim.colMax = max(w.dim.colMax, col)
	}
}

func (w *Worksheet) put(c *Cell) error {
	r, err := w.rows.row(c.Row)
	if err != nil {
		return err
	}
	r.put(c)
	w.widen(c.Row, c.Col, false, false)
	return nil
}

// Cell returns the cell at (row, col) if it is still held in memory.
func (w *Worksheet) Cell(row, col int) (*Cell, bool) {
	r := w.rows.find(row)
	if r == nil {
		return nil, false
	}
	return r.Cell(col)
}

// WriteNumber writes a numeric cell.
func (w *Worksheet) WriteNumber(row, col int, v float64, f Format) error {
	if !ooxml.Finite(v) {
		return ooxml.Invalid("number %v cannot be stored", v)
	}
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	return w.put(&Cell{Row: row, Col: col, Type: CellTypeNumber, Format: f, number: v})
}

// WriteString writes a string cell. An empty string writes a blank.
func (w *Worksheet) WriteString(row, col int, s string, f Format) error {
	if s == "" {
		return w.WriteBlank(row, col, f)
	}
	if err := ooxml.CheckLength("string", s, ooxml.MaxString); err != nil {
		return err
	}
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	s = ooxml.EscapeControl(s)
	c := &Cell{Row: row, Col: col, Format: f}
	if w.rows.streaming() {
		c.Type = CellTypeInlineString
		c.text = s
	} else {
		c.Type = CellTypeSharedString
		c.sst, c.text = w.strings.Intern(s, false)
	}
	return w.put(c)
}

// WriteRichString writes a string made of differently formatted runs.
func (w *Worksheet) WriteRichString(row, col int, runs []RichRun, f Format) error {
	if len(runs) == 0 {
		return ooxml.ErrNullParameter.New("rich string runs")
	}
	markup, plain, err := richMarkup(runs)
	if err != nil {
		return err
	}
	if err := ooxml.CheckLength("rich string", plain, ooxml.MaxString); err != nil {
		return err
	}
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	c := &Cell{Row: row, Col: col, Format: f, result: plain}
	if w.rows.streaming() {
		c.Type = CellTypeInlineRichString
		c.text = markup
	} else {
		c.Type = CellTypeSharedString
		c.sst, _ = w.strings.Intern(markup, true)
		c.text = plain
	}
	return w.put(c)
}

// WriteFormula writes a formula with a cached result of 0.
func (w *Worksheet) WriteFormula(row, col int, formula string, f Format) error {
	return w.WriteFormulaNum(row, col, formula, f, 0)
}

// WriteFormulaNum writes a formula with a numeric cached result.
func (w *Worksheet) WriteFormulaNum(row, col int, formula string, f Format, result float64) error {
	c, err := w.formulaCell(row, col, formula, f)
	if err != nil {
		return err
	}
	c.number = result
	return w.put(c)
}

// WriteFormulaStr writes a formula with a string cached result.
func (w *Worksheet) WriteFormulaStr(row, col int, formula string, f Format, result string) error {
	c, err := w.formulaCell(row, col, formula, f)
	if err != nil {
		return err
	}
	c.result, c.isStr = result, true
	return w.put(c)
}

func (w *Worksheet) formulaCell(row, col int, formula string, f Format) (*Cell, error) {
	if formula == "" {
		return nil, ooxml.ErrNullParameter.New("formula")
	}
	if err := w.checkCell(row, col); err != nil {
		return nil, err
	}
	return &Cell{Row: row, Col: col, Type: CellTypeFormula, Format: f, text: w.prepareFormula(formula)}, nil
}

func (w *Worksheet) prepareFormula(formula string) string {
	formula = strings.TrimPrefix(formula, "=")
	if w.opts.UseFutureFunctions {
		formula = expandFutureFunctions(formula)
	}
	return formula
}

// WriteArrayFormula writes a legacy CSE array formula over a range.
func (w *Worksheet) WriteArrayFormula(firstRow, firstCol, lastRow, lastCol int, formula string, f Format) error {
	return w.writeArray(firstRow, firstCol, lastRow, lastCol, formula, f, 0, false)
}

// WriteArrayFormulaNum is WriteArrayFormula with a cached result.
func (w *Worksheet) WriteArrayFormulaNum(firstRow, firstCol, lastRow, lastCol int, formula string, f Format, result float64) error {
	return w.writeArray(firstRow, firstCol, lastRow, lastCol, formula, f, result, false)
}

// WriteDynamicArrayFormula writes a dynamic array formula over a range.
func (w *Worksheet) WriteDynamicArrayFormula(firstRow, firstCol, lastRow, lastCol int, formula string, f Format) error {
	return w.writeArray(firstRow, firstCol, lastRow, lastCol, formula, f, 0, true)
}

// WriteDynamicArrayFormulaNum is WriteDynamicArrayFormula with a cached
// result.
func (w *Worksheet) WriteDynamicArrayFormulaNum(firstRow, firstCol, lastRow, lastCol int, formula string, f Format, result float64) error {
	return w.writeArray(firstRow, firstCol, lastRow, lastCol, formula, f, result, true)
}

// WriteDynamicFormula writes a single cell dynamic array formula.
func (w *Worksheet) WriteDynamicFormula(row, col int, formula string, f Format) error {
	return w.writeArray(row, col, row, col, formula, f, 0, true)
}

func (w *Worksheet) writeArray(firstRow, firstCol, lastRow, lastCol int, formula string, f Format, result float64, dynamic bool) error {
	if formula == "" {
		return ooxml.ErrNullParameter.New("array formula")
	}
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if err := w.checkCell(firstRow, firstCol); err != nil {
		return err
	}
	if err := w.checkCell(lastRow, lastCol); err != nil {
		return err
	}

	formula = strings.TrimPrefix(formula, "{")
	formula = strings.TrimSuffix(formula, "}")
	typ := CellTypeArrayFormula
	if dynamic {
		typ = CellTypeDynamicArrayFormula
	}
	c := &Cell{
		Row:    firstRow,
		Col:    firstCol,
		Type:   typ,
		Format: f,
		text:   w.prepareFormula(formula),
		number: result,
		ref:    coord.RangeToString(firstRow, firstCol, lastRow, lastCol),
	}
	if err := w.put(c); err != nil {
		return err
	}
	w.widen(lastRow, lastCol, false, false)

	// the rest of the range holds formatted zeroes
	if w.rows.streaming() {
		return nil
	}
	for r := firstRow; r <= lastRow; r++ {
		for col := firstCol; col <= lastCol; col++ {
			if r == firstRow && col == firstCol {
				continue
			}
			if err := w.WriteNumber(r, col, 0, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteBlank writes an empty formatted cell. Without a format there is
// nothing to store and the call does nothing.
func (w *Worksheet) WriteBlank(row, col int, f Format) error {
	if f == nil {
		return nil
	}
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	return w.put(&Cell{Row: row, Col: col, Type: CellTypeBlank, Format: f})
}

// WriteBoolean writes a TRUE or FALSE cell.
func (w *Worksheet) WriteBoolean(row, col int, v bool, f Format) error {
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	c := &Cell{Row: row, Col: col, Type: CellTypeBool, Format: f}
	if v {
		c.number = 1
	}
	return w.put(c)
}

// WriteDateTime writes t as an Excel serial date. The format should carry
// a date number format for Excel to display it as a date.
func (w *Worksheet) WriteDateTime(row, col int, t time.Time, f Format) error {
	return w.WriteNumber(row, col, DateToSerial(t), f)
}
