package xl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

// WorkbookOptions apply to every worksheet of a workbook.
type WorkbookOptions struct {
	ConstantMemory     bool
	TmpDir             string
	UseMemoryStream    bool
	UseFutureFunctions bool
	HyperlinkFormat    Format
	Logger             *logrus.Logger
}

// Workbook numbers the parts of several sheets, shares one string table
// and one media registry between them, and writes every part to storage.
// The workbook part itself, styles and content types are left to the
// caller.
type Workbook struct {
	opts    WorkbookOptions
	log     *logrus.Logger
	strings *SharedStrings
	media   *mediaRegistry

	sheets      []*Worksheet
	chartsheets []*Chartsheet
	order       []string // sheet names in tab order
	names       map[string]bool
	charts      []*chart.Chart
}

// NewWorkbook creates an empty workbook. A nil o gives the defaults.
func NewWorkbook(o *WorkbookOptions) *Workbook {
	if o == nil {
		o = &WorkbookOptions{}
	}
	logger := o.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Workbook{
		opts:    *o,
		log:     logger,
		strings: NewSharedStrings(),
		media:   newMediaRegistry(),
		names:   map[string]bool{},
	}
}

var nameFold = cases.Fold()

func (wb *Workbook) checkName(name string) error {
	if err := validateSheetName(name); err != nil {
		return err
	}
	if wb.names[nameFold.String(name)] {
		return ooxml.Invalid("duplicate sheet name %q", name)
	}
	return nil
}

func (wb *Workbook) register(name string) {
	wb.names[nameFold.String(name)] = true
	wb.order = append(wb.order, name)
}

// AddSheet appends a worksheet. An empty name gives SheetN.
func (wb *Workbook) AddSheet(name string) (*Worksheet, error) {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", len(wb.sheets)+1)
	}
	if err := wb.checkName(name); err != nil {
		return nil, err
	}
	ws, err := NewWorksheet(name, &Options{
		ConstantMemory:     wb.opts.ConstantMemory,
		TmpDir:             wb.opts.TmpDir,
		UseMemoryStream:    wb.opts.UseMemoryStream,
		UseFutureFunctions: wb.opts.UseFutureFunctions,
		HyperlinkFormat:    wb.opts.HyperlinkFormat,
		Logger:             wb.log,
		Strings:            wb.strings,
	})
	if err != nil {
		return nil, err
	}
	wb.register(name)
	ws.media = wb.media
	ws.index = len(wb.sheets) + 1
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

// AddChartsheet appends a chartsheet. An empty name gives ChartN.
func (wb *Workbook) AddChartsheet(name string) (*Chartsheet, error) {
	if name == "" {
		name = fmt.Sprintf("Chart%d", len(wb.chartsheets)+1)
	}
	if err := wb.checkName(name); err != nil {
		return nil, err
	}
	cs, err := NewChartsheet(name, wb.log)
	if err != nil {
		return nil, err
	}
	wb.register(name)
	wb.chartsheets = append(wb.chartsheets, cs)
	return cs, nil
}

// AddChart creates a chart owned by the workbook. It still has to be
// inserted into a worksheet or set on a chartsheet.
func (wb *Workbook) AddChart(t chart.Type) (*chart.Chart, error) {
	c, err := chart.New(t)
	if err != nil {
		return nil, err
	}
	c.SetLogger(wb.log)
	wb.charts = append(wb.charts, c)
	return c, nil
}

// Worksheets returns the worksheets in insertion order.
func (wb *Workbook) Worksheets() []*Worksheet {
	return wb.sheets
}

// Chartsheets returns the chartsheets in insertion order.
func (wb *Workbook) Chartsheets() []*Chartsheet {
	return wb.chartsheets
}

// SheetNames returns every sheet name in tab order.
func (wb *Workbook) SheetNames() []string {
	return wb.order
}

// Worksheet looks a worksheet up by name, ignoring case.
func (wb *Workbook) Worksheet(name string) (*Worksheet, bool) {
	key := nameFold.String(name)
	for _, ws := range wb.sheets {
		if nameFold.String(ws.name) == key {
			return ws, true
		}
	}
	return nil, false
}

// SharedStrings returns the string table shared by all worksheets.
func (wb *Workbook) SharedStrings() *SharedStrings {
	return wb.strings
}

// SheetName is a defined name scoped to a sheet, as listed in workbook.xml.
type SheetName struct {
	DefinedName
	Sheet string
}

// DefinedNames returns the built-in names of all worksheets.
func (wb *Workbook) DefinedNames() []SheetName {
	var res []SheetName
	for _, ws := range wb.sheets {
		for _, dn := range ws.DefinedNames() {
			res = append(res, SheetName{DefinedName: dn, Sheet: ws.name})
		}
	}
	return res
}

// prepare assigns the workbook-wide part numbers and fills the chart
// caches from the cells held in memory.
func (wb *Workbook) prepare() error {
	drawingID, commentID, vmlDataID, tableBase, chartID := 0, 0, 1, 0, 0
	tableNames := map[string]bool{}

	for _, ws := range wb.sheets {
		// parts are built in parallel and may only read the sheet
		if sr, ok := ws.rows.(*streamRows); ok {
			if err := sr.flush(); err != nil {
				return err
			}
		}
		if ws.HasDrawing() {
			drawingID++
			ws.drawingID = drawingID
		}
		if ws.HasComments() {
			commentID++
			ws.commentID = commentID
			ws.vmlDataID = vmlDataID
			vmlDataID += 1 + ws.comments.Len()/1024
		}
		ws.tableBase = tableBase
		for i, t := range ws.tables {
			t.ID = tableBase + i + 1
			if t.Name == "" {
				t.Name = fmt.Sprintf("Table%d", t.ID)
			}
			key := nameFold.String(t.Name)
			if tableNames[key] {
				return ooxml.Invalid("duplicate table name %q", t.Name)
			}
			tableNames[key] = true
		}
		tableBase += len(ws.tables)
		for _, c := range ws.charts {
			chartID++
			c.SetID(chartID)
		}
	}
	for _, cs := range wb.chartsheets {
		if cs.chart == nil {
			return ooxml.ErrNullParameter.New(fmt.Sprintf("chart of chartsheet %q", cs.name))
		}
		drawingID++
		cs.drawingID = drawingID
		chartID++
		cs.chart.SetID(chartID)
	}
	for _, c := range wb.charts {
		if !c.InUse() {
			wb.log.Warn("chart was never inserted and is not written")
		}
	}

	for _, c := range wb.allCharts() {
		for _, r := range c.Ranges() {
			wb.fillCache(r)
		}
	}
	return nil
}

func (wb *Workbook) allCharts() []*chart.Chart {
	var res []*chart.Chart
	for _, ws := range wb.sheets {
		res = append(res, ws.charts...)
	}
	for _, cs := range wb.chartsheets {
		res = append(res, cs.chart)
	}
	return res
}

const maxCachePoints = 1 << 16

// fillCache copies the cell values of a chart range into its cache. Ranges
// that already carry data, point at other workbooks, or at sheets written
// in constant memory mode are left alone.
func (wb *Workbook) fillCache(r *coord.Range) {
	if len(r.Cache()) > 0 {
		return
	}
	sheet, firstRow, firstCol, lastRow, lastCol, ok := r.Bounds()
	if !ok || (lastRow-firstRow+1)*(lastCol-firstCol+1) > maxCachePoints {
		return
	}
	ws, found := wb.Worksheet(sheet)
	if !found || ws.rows.streaming() {
		return
	}
	points := make([]coord.Point, 0, (lastRow-firstRow+1)*(lastCol-firstCol+1))
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			c, ok := ws.Cell(row, col)
			if !ok {
				points = append(points, coord.Point{NoData: true})
				continue
			}
			points = append(points, c.point())
		}
	}
	r.SetCache(points)
}

type part struct {
	path  string
	build func(io.Writer) error
}

func (wb *Workbook) parts() []part {
	var pp []part
	add := func(path string, build func(io.Writer) error) {
		pp = append(pp, part{path, build})
	}
	for _, ws := range wb.sheets {
		add(fmt.Sprintf("xl/worksheets/sheet%d.xml", ws.index), ws.Assemble)
		if ws.HasRels() {
			add(fmt.Sprintf("xl/worksheets/_rels/sheet%d.xml.rels", ws.index), ws.AssembleRels)
		}
		if ws.HasDrawing() {
			add(fmt.Sprintf("xl/drawings/drawing%d.xml", ws.drawingID), ws.AssembleDrawing)
			add(fmt.Sprintf("xl/drawings/_rels/drawing%d.xml.rels", ws.drawingID), ws.AssembleDrawingRels)
		}
		if ws.HasComments() {
			add(fmt.Sprintf("xl/comments%d.xml", ws.commentID), ws.AssembleComments)
			add(fmt.Sprintf("xl/drawings/vmlDrawing%d.vml", ws.commentID), ws.AssembleVML)
		}
		for i := range ws.tables {
			add(fmt.Sprintf("xl/tables/table%d.xml", ws.tableID(i)), func(out io.Writer) error {
				return ws.AssembleTable(i, out)
			})
		}
	}
	for i, cs := range wb.chartsheets {
		add(fmt.Sprintf("xl/chartsheets/sheet%d.xml", i+1), cs.Assemble)
		add(fmt.Sprintf("xl/chartsheets/_rels/sheet%d.xml.rels", i+1), cs.AssembleRels)
		add(fmt.Sprintf("xl/drawings/drawing%d.xml", cs.drawingID), cs.AssembleDrawing)
		add(fmt.Sprintf("xl/drawings/_rels/drawing%d.xml.rels", cs.drawingID), cs.AssembleDrawingRels)
	}
	for _, c := range wb.allCharts() {
		add(fmt.Sprintf("xl/charts/chart%d.xml", c.ID()), c.Assemble)
	}
	return pp
}

// Assemble writes every sheet, drawing, comment, table, chart, media and
// shared string part to storage. Parts are generated concurrently and
// stored in a fixed order. Charts are single-shot, so a workbook with
// charts can be assembled once.
func (wb *Workbook) Assemble(ctx context.Context, storage ooxml.Storage) error {
	if storage == nil {
		return ooxml.ErrNullParameter.New("storage")
	}
	if err := wb.prepare(); err != nil {
		return err
	}

	pp := wb.parts()
	blobs := make([][]byte, len(pp))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range pp {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			buf := &bytes.Buffer{}
			if err := p.build(buf); err != nil {
				return err
			}
			blobs[i] = buf.Bytes()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var total int
	for i, p := range pp {
		if err := storage.WriteBlob(p.path, blobs[i]); err != nil {
			return ooxml.ErrOutput.Wrap(err, p.path)
		}
		total += len(blobs[i])
	}
	for _, m := range wb.media.all() {
		if err := storage.WriteBlob("xl/media/"+m.name, m.blob); err != nil {
			return ooxml.ErrOutput.Wrap(err, m.name)
		}
		total += len(m.blob)
	}
	if wb.strings.Len() > 0 {
		buf := &bytes.Buffer{}
		if err := wb.strings.Assemble(buf); err != nil {
			return err
		}
		if err := storage.WriteBlob("xl/sharedStrings.xml", buf.Bytes()); err != nil {
			return ooxml.ErrOutput.Wrap(err, "xl/sharedStrings.xml")
		}
		total += buf.Len()
	}
	wb.log.WithField("parts", len(pp)).Debugf("assembled workbook parts, %s", humanize.Bytes(uint64(total)))
	return nil
}

// Close releases the row streams of constant memory worksheets.
func (wb *Workbook) Close() error {
	var first error
	for _, ws := range wb.sheets {
		if err := ws.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func validateSheetName(s string) error {
	if s == "" {
		return ooxml.ErrNullParameter.New("sheet name")
	}
	if err := ooxml.CheckLength("sheet name", s, ooxml.MaxTitleLength); err != nil {
		return err
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return ooxml.Invalid("sheet name %q cannot start or end with an apostrophe", s)
	}
	if strings.ContainsAny(s, `:\/?*[]`) {
		return ooxml.Invalid(`sheet name %q cannot contain any of :\/?*[]`, s)
	}
	return nil
}
