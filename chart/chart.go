// Package chart models a DrawingML chart and writes its chartN.xml part.
//
// A chart's type is fixed when it is created. The type selects how the
// plot area is written and the defaults for grouping, markers, axes and
// gridlines; later calls only change attributes. A chart is attached to
// one sheet and assembled once.
package chart

import (
	"strconv"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/sirupsen/logrus"
)

// Type selects the chart family and its sub-type.
type Type int

const (
	TypeNone Type = iota
	TypeArea
	TypeAreaStacked
	TypeAreaStackedPercent
	TypeBar
	TypeBarStacked
	TypeBarStackedPercent
	TypeColumn
	TypeColumnStacked
	TypeColumnStackedPercent
	TypeDoughnut
	TypeLine
	TypeLineStacked
	TypeLineStackedPercent
	TypePie
	TypeScatter
	TypeScatterStraight
	TypeScatterStraightWithMarkers
	TypeScatterSmooth
	TypeScatterSmoothWithMarkers
	TypeRadar
	TypeRadarWithMarkers
	TypeRadarFilled
)

type family int

const (
	familyArea family = iota
	familyBar
	familyLine
	familyPie
	familyScatter
	familyRadar
)

// BlanksAs controls how empty cells are plotted.
type BlanksAs int

const (
	BlanksAsGap BlanksAs = iota
	BlanksAsZero
	BlanksAsConnected
)

var blanksNames = [...]string{"gap", "zero", "span"}

// Chart is a single chart part.
type Chart struct {
	typ    Type
	family family
	plot   plotter
	id     int
	series []*Series

	// XAxis is the horizontal axis and YAxis the vertical one. In bar
	// charts the horizontal axis carries the values.
	XAxis *Axis
	YAxis *Axis

	title  title
	legend legend

	style         int
	grouping      string
	defaultMarker *Marker
	crossBetween  string
	hasMarkerFlag bool // <c:marker val="1"/> after the line series
	smooth        bool // series are smoothed by default

	chartArea shape
	plotArea  shape

	blanksAs   BlanksAs
	showHidden bool
	rotation   int
	holeSize   int
	gap        int
	hasGap     bool
	overlap    int
	hasOverlap bool

	embedded   bool
	inUse      bool
	assembled  bool
	catNumeric bool // set while writing series, read by the category axis

	log *logrus.Entry
}

type shape struct {
	line    *Line
	fill    *Fill
	pattern *Pattern
}

// New creates a chart of the given type with that type's defaults.
func New(t Type) (*Chart, error) {
	c := &Chart{
		typ:          t,
		style:        2,
		holeSize:     50,
		crossBetween: "between",
		XAxis:        newAxis("b"),
		YAxis:        newAxis("l"),
		log:          logrus.NewEntry(logrus.StandardLogger()),
	}
	c.YAxis.majorGridlines = &Gridlines{Visible: true}

	switch t {
	case TypeArea, TypeAreaStacked, TypeAreaStackedPercent:
		c.family = familyArea
		c.plot = areaPlot{}
		c.grouping = stackedGrouping(t-TypeArea, "standard")
		c.crossBetween = "midCat"

	case TypeBar, TypeBarStacked, TypeBarStackedPercent:
		c.family = familyBar
		c.plot = barPlot{dir: "bar"}
		c.grouping = stackedGrouping(t-TypeBar, "clustered")
		// the horizontal axis holds the values in a bar chart
		c.XAxis.majorGridlines = &Gridlines{Visible: true}
		c.YAxis.majorGridlines = nil

	case TypeColumn, TypeColumnStacked, TypeColumnStackedPercent:
		c.family = familyBar
		c.plot = barPlot{dir: "col"}
		c.grouping = stackedGrouping(t-TypeColumn, "clustered")

	case TypeLine, TypeLineStacked, TypeLineStackedPercent:
		c.family = familyLine
		c.plot = linePlot{}
		c.grouping = stackedGrouping(t-TypeLine, "standard")
		c.defaultMarker = &Marker{Type: MarkerNone}
		c.hasMarkerFlag = true

	case TypePie:
		c.family = familyPie
		c.plot = piePlot{}

	case TypeDoughnut:
		c.family = familyPie
		c.plot = piePlot{doughnut: true}

	case TypeScatter, TypeScatterStraightWithMarkers:
		c.family = familyScatter
		c.plot = scatterPlot{style: "lineMarker"}
		c.crossBetween = "midCat"

	case TypeScatterStraight:
		c.family = familyScatter
		c.plot = scatterPlot{style: "lineMarker"}
		c.crossBetween = "midCat"
		c.defaultMarker = &Marker{Type: MarkerNone}

	case TypeScatterSmooth:
		c.family = familyScatter
		c.plot = scatterPlot{style: "smoothMarker"}
		c.crossBetween = "midCat"
		c.defaultMarker = &Marker{Type: MarkerNone}
		c.smooth = true

	case TypeScatterSmoothWithMarkers:
		c.family = familyScatter
		c.plot = scatterPlot{style: "smoothMarker"}
		c.crossBetween = "midCat"
		c.smooth = true

	case TypeRadar, TypeRadarWithMarkers, TypeRadarFilled:
		c.family = familyRadar
		style := "marker"
		if t == TypeRadarFilled {
			style = "filled"
		}
		if t == TypeRadar {
			c.defaultMarker = &Marker{Type: MarkerNone}
		}
		c.plot = radarPlot{style: style}
		c.XAxis.majorGridlines = &Gridlines{Visible: true}
		c.YAxis.majorTick = TickCross

	default:
		return nil, ooxml.Invalid("chart type %d", t)
	}
	return c, nil
}

func stackedGrouping(sub Type, plain string) string {
	switch sub {
	case 1:
		return "stacked"
	case 2:
		return "percentStacked"
	}
	return plain
}

// Type returns the chart type.
func (c *Chart) Type() Type {
	return c.typ
}

// SetLogger directs warnings to l.
func (c *Chart) SetLogger(l *logrus.Logger) {
	if l != nil {
		c.log = logrus.NewEntry(l)
	}
}

// ID returns the workbook-wide chart number used for axis ids.
func (c *Chart) ID() int {
	return c.id
}

// SetID assigns the workbook-wide chart number.
func (c *Chart) SetID(id int) {
	c.id = id
}

// Embedded reports whether the chart sits on a worksheet rather than
// filling a chartsheet.
func (c *Chart) Embedded() bool {
	return c.embedded
}

// AddSeries appends a series. Either reference may be empty and set later
// with SetCategories or SetValues.
func (c *Chart) AddSeries(categories, values string) *Series {
	s := &Series{}
	if categories != "" {
		s.categories = coord.FormulaRange(categories)
	}
	if values != "" {
		s.values = coord.FormulaRange(values)
	}
	if c.smooth {
		s.smooth = true
	}
	c.series = append(c.series, s)
	return s
}

// Series returns the series in the order they were added.
func (c *Chart) Series() []*Series {
	return c.series
}

// SetTitle sets a literal chart title.
func (c *Chart) SetTitle(name string) {
	c.title.name = name
	c.title.rng = nil
	c.title.off = false
}

// SetTitleRange takes the chart title from a cell.
func (c *Chart) SetTitleRange(sheet string, row, col int) {
	c.title.rng = coord.NewRange(sheet, row, col, row, col)
	c.title.name = ""
	c.title.off = false
}

// SetTitleFont sets the title font.
func (c *Chart) SetTitleFont(f *Font) {
	c.title.font = f
}

// SetTitleOverlay lets the title overlap the plot area.
func (c *Chart) SetTitleOverlay(overlay bool) {
	c.title.overlay = overlay
}

// TitleOff suppresses the automatic title Excel shows for single series
// charts.
func (c *Chart) TitleOff() {
	c.title.off = true
}

// SetLegendPosition moves or hides the legend.
func (c *Chart) SetLegendPosition(p LegendPosition) {
	c.legend.position = p
}

// SetLegendFont sets the legend font.
func (c *Chart) SetLegendFont(f *Font) {
	c.legend.font = f
}

// DeleteLegendEntries removes series, by zero-based index, from the legend.
func (c *Chart) DeleteLegendEntries(indices ...int) {
	c.legend.deleted = append(c.legend.deleted[:0], indices...)
}

// SetStyle picks one of the 48 built-in chart styles.
func (c *Chart) SetStyle(id int) {
	if id < 1 || id > 48 {
		c.log.Warnf("chart style %d is outside 1..48, using the default", id)
		id = 2
	}
	c.style = id
}

// SetChartArea formats the chart background.
func (c *Chart) SetChartArea(line *Line, fill *Fill, pattern *Pattern) {
	c.chartArea = shape{line: line, fill: fill, pattern: pattern}
}

// SetPlotArea formats the plot area background.
func (c *Chart) SetPlotArea(line *Line, fill *Fill, pattern *Pattern) {
	c.plotArea = shape{line: line, fill: fill, pattern: pattern}
}

// ShowBlanksAs controls how empty cells are plotted.
func (c *Chart) ShowBlanksAs(b BlanksAs) {
	c.blanksAs = b
}

// ShowHiddenData plots data in hidden rows and columns.
func (c *Chart) ShowHiddenData() {
	c.showHidden = true
}

// SetRotation sets the angle of the first pie or doughnut slice.
func (c *Chart) SetRotation(degrees int) {
	if degrees < 0 || degrees > 360 {
		c.log.Warnf("chart rotation %d is outside 0..360, ignored", degrees)
		return
	}
	c.rotation = degrees
}

// SetHoleSize sets the doughnut hole size as a percentage.
func (c *Chart) SetHoleSize(pct int) {
	if pct < 10 || pct > 90 {
		c.log.Warnf("doughnut hole size %d is outside 10..90, ignored", pct)
		return
	}
	c.holeSize = pct
}

// SetGap sets the gap between bar clusters as a percentage of bar width.
func (c *Chart) SetGap(pct int) {
	if pct < 0 || pct > 500 {
		c.log.Warnf("bar gap %d is outside 0..500, ignored", pct)
		return
	}
	c.gap, c.hasGap = pct, true
}

// SetOverlap sets the overlap of bars within a cluster.
func (c *Chart) SetOverlap(pct int) {
	if pct < -100 || pct > 100 {
		c.log.Warnf("bar overlap %d is outside -100..100, ignored", pct)
		return
	}
	c.overlap, c.hasOverlap = pct, true
}

// Attach marks the chart as placed on a sheet. A chart can only be placed
// once and needs at least one series with values.
func (c *Chart) Attach(embedded bool) error {
	if c.inUse {
		return ooxml.Invalid("chart is already placed on a sheet")
	}
	if len(c.series) == 0 {
		return ooxml.Invalid("chart has no series")
	}
	for i, s := range c.series {
		if s.values.Empty() {
			return ooxml.ErrNullParameter.New("values of series " + strconv.Itoa(i))
		}
	}
	c.inUse = true
	c.embedded = embedded
	return nil
}

// InUse reports whether the chart has been placed on a sheet.
func (c *Chart) InUse() bool {
	return c.inUse
}

// Ranges returns every reference the chart plots, so the caller can fill
// in the data caches before assembly.
func (c *Chart) Ranges() []*coord.Range {
	var rr []*coord.Range
	add := func(r *coord.Range) {
		if r != nil {
			rr = append(rr, r)
		}
	}
	add(c.title.rng)
	add(c.XAxis.title.rng)
	add(c.YAxis.title.rng)
	for _, s := range c.series {
		add(s.nameRange)
		add(s.categories)
		add(s.values)
	}
	return rr
}
