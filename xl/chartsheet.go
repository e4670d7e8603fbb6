package xl

import (
	"fmt"
	"io"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/sirupsen/logrus"
)

// Chartsheet is a sheet that holds a single full page chart.
type Chartsheet struct {
	name    string
	log     *logrus.Entry
	chart   *chart.Chart
	page    pageSetup
	view    sheetView
	protect *protection

	drawingID int
}

// NewChartsheet creates an empty chartsheet. SetChart must be called
// before assembly.
func NewChartsheet(name string, logger *logrus.Logger) (*Chartsheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cs := &Chartsheet{
		name: name,
		log:  logger.WithField("chartsheet", name),
		page: newPageSetup(),
		view: newSheetView(),
	}
	cs.page.landscape = true
	cs.page.changed = true
	return cs, nil
}

// Name returns the sheet name.
func (cs *Chartsheet) Name() string {
	return cs.name
}

// SetChart places the chart on the sheet.
func (cs *Chartsheet) SetChart(c *chart.Chart) error {
	if c == nil {
		return ooxml.ErrNullParameter.New("chart")
	}
	if err := c.Attach(false); err != nil {
		return err
	}
	if c.ID() == 0 {
		c.SetID(1)
	}
	cs.chart = c
	return nil
}

// Chart returns the chart of the sheet.
func (cs *Chartsheet) Chart() *chart.Chart {
	return cs.chart
}

// SetPortrait prints the chart in portrait orientation. Chartsheets
// default to landscape.
func (cs *Chartsheet) SetPortrait() {
	cs.page.landscape = false
}

// SetPaper selects the paper size by its Excel index.
func (cs *Chartsheet) SetPaper(paper int) {
	if paper < 0 {
		cs.log.Warnf("ignoring paper size %d", paper)
		return
	}
	cs.page.paper = paper
}

// SetMargins sets the page margins in inches. A negative value keeps the
// default.
func (cs *Chartsheet) SetMargins(left, right, top, bottom float64) {
	pick := func(v, def float64) float64 {
		if v < 0 {
			return def
		}
		return v
	}
	cs.page.left = pick(left, DefaultMarginLeft)
	cs.page.right = pick(right, DefaultMarginRight)
	cs.page.top = pick(top, DefaultMarginTop)
	cs.page.bottom = pick(bottom, DefaultMarginBottom)
}

// SetHeader sets the page header.
func (cs *Chartsheet) SetHeader(s string) error {
	if err := ooxml.CheckLength("header", s, ooxml.MaxMediumString); err != nil {
		return err
	}
	cs.page.header = s
	return nil
}

// SetFooter sets the page footer.
func (cs *Chartsheet) SetFooter(s string) error {
	if err := ooxml.CheckLength("footer", s, ooxml.MaxMediumString); err != nil {
		return err
	}
	cs.page.footer = s
	return nil
}

// SetZoom sets the screen zoom, 10 to 400 percent.
func (cs *Chartsheet) SetZoom(scale int) {
	if scale < 10 || scale > 400 {
		cs.log.Warnf("ignoring zoom %d outside 10..400", scale)
		return
	}
	cs.view.zoom = scale
}

// SetTabColor colours the sheet tab.
func (cs *Chartsheet) SetTabColor(c ooxml.Color) {
	cs.view.tabColor = c
}

// Select marks the sheet tab as selected.
func (cs *Chartsheet) Select() {
	cs.view.selected = true
	cs.view.hidden = false
}

// Activate makes the sheet the one shown when the workbook opens.
func (cs *Chartsheet) Activate() {
	cs.view.selected = true
	cs.view.active = true
	cs.view.hidden = false
}

// Hide hides the sheet.
func (cs *Chartsheet) Hide() {
	cs.view.hidden = true
	cs.view.selected = false
	cs.view.active = false
}

// Active reports whether the sheet was activated.
func (cs *Chartsheet) Active() bool { return cs.view.active }

// Hidden reports whether the sheet is hidden.
func (cs *Chartsheet) Hidden() bool { return cs.view.hidden }

// Protect locks the chart. Objects and Content in o unlock the chart
// objects and the chart data respectively.
func (cs *Chartsheet) Protect(password string, o *ProtectOptions) error {
	if err := ooxml.CheckLength("password", password, ooxml.MaxMediumString); err != nil {
		return err
	}
	p := &protection{}
	if o != nil {
		p.opts = *o
	}
	if password != "" {
		p.hash = PasswordHash(password)
	}
	cs.protect = p
	return nil
}

func (cs *Chartsheet) drawingTarget() string {
	return fmt.Sprintf("../drawings/drawing%d.xml", max(cs.drawingID, 1))
}

// AssembleRels writes the _rels/sheetN.xml.rels part of the chartsheet.
func (cs *Chartsheet) AssembleRels(out io.Writer) error {
	rels := &ooxml.Rels{}
	rels.Add(ooxml.RelDrawing, cs.drawingTarget(), false)
	return rels.WriteTo(out)
}

// AssembleDrawing writes the drawing part that holds the chart.
func (cs *Chartsheet) AssembleDrawing(out io.Writer) error {
	return writeAbsoluteChart(out, "rId1")
}

// AssembleDrawingRels writes the relationships of the drawing part.
func (cs *Chartsheet) AssembleDrawingRels(out io.Writer) error {
	if cs.chart == nil {
		return ooxml.ErrNullParameter.New("chartsheet chart")
	}
	rels := &ooxml.Rels{}
	rels.Add(ooxml.RelChart, fmt.Sprintf("../charts/chart%d.xml", cs.chart.ID()), false)
	return rels.WriteTo(out)
}

// Assemble writes the chartsheet part.
func (cs *Chartsheet) Assemble(out io.Writer) error {
	if cs.chart == nil {
		return ooxml.ErrNullParameter.New("chartsheet chart")
	}
	x := ooxml.NewDoc(out)
	x.OTag("chartsheet")
	x.Attr("xmlns", ooxml.NSMain)
	x.Attr("xmlns:r", ooxml.NSRelations)

	x.OTag("sheetPr")
	if cs.view.tabColor.IsSet() {
		x.OTag("tabColor").Attr("rgb", cs.view.tabColor.ARGB()).CTag()
	}
	x.CTag()

	x.OTag("sheetViews")
	x.OTag("sheetView")
	if cs.view.selected {
		x.Attr("tabSelected", 1)
	}
	if cs.view.zoom != 100 {
		x.Attr("zoomScale", cs.view.zoom)
	}
	x.Attr("zoomToFit", 1)
	x.Attr("workbookViewId", 0)
	x.CTag()
	x.CTag()

	if p := cs.protect; p != nil {
		x.OTag("sheetProtection")
		if p.hash != "" {
			x.Attr("password", p.hash)
		}
		if !p.opts.Content {
			x.Attr("content", 1)
		}
		if !p.opts.Objects {
			x.Attr("objects", 1)
		}
		x.CTag()
	}

	writePageMargins(x, &cs.page)
	writePageSetup(x, &cs.page)
	writeHeaderFooter(x, &cs.page)
	x.OTag("drawing").Attr("r:id", "rId1").CTag()

	x.CTag() // chartsheet
	return x.Close("chartsheet")
}
