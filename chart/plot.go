package chart

import "github.com/adnsv/go-xlw/ooxml"

// plotter writes the family specific parts of the plot area: the
// <c:xxxChart> element holding the series, and the axes.
type plotter interface {
	writeChart(c *Chart, x *ooxml.Doc)
	writeAxes(c *Chart, x *ooxml.Doc)
}

// axisIDs are unique per chart so that several charts can share a drawing.
func (c *Chart) axisIDs() (int, int) {
	base := (5001 + c.id) * 10000
	return base + 1, base + 2
}

func (c *Chart) writeAxisIDs(x *ooxml.Doc) {
	a, b := c.axisIDs()
	x.IntVal("c:axId", a)
	x.IntVal("c:axId", b)
}

func (c *Chart) writeAllSeries(x *ooxml.Doc) {
	for i, s := range c.series {
		c.writeSeries(x, s, i)
	}
}

// sideways reports whether the bars run horizontally.
func (c *Chart) sideways() bool {
	return c.typ >= TypeBar && c.typ <= TypeBarStackedPercent
}

// writeCatValAxes writes the usual category axis plus value axis pair.
// Bar charts turn the plot sideways, so their vertical axis holds the
// categories.
func (c *Chart) writeCatValAxes(x *ooxml.Doc) {
	cat, val := c.XAxis, c.YAxis
	if c.sideways() {
		cat, val = c.YAxis, c.XAxis
	}
	catID, valID := c.axisIDs()
	c.writeCatAx(x, cat, val, catID, valID, c.catNumeric)
	c.writeValAx(x, val, cat, valID, catID)
}

type areaPlot struct{}

func (areaPlot) writeChart(c *Chart, x *ooxml.Doc) {
	x.OTag("c:areaChart")
	x.Val("c:grouping", c.grouping)
	c.writeAllSeries(x)
	c.writeAxisIDs(x)
	x.CTag()
}

func (areaPlot) writeAxes(c *Chart, x *ooxml.Doc) {
	c.writeCatValAxes(x)
}

type barPlot struct {
	dir string
}

func (p barPlot) writeChart(c *Chart, x *ooxml.Doc) {
	x.OTag("c:barChart")
	x.Val("c:barDir", p.dir)
	x.Val("c:grouping", c.grouping)
	c.writeAllSeries(x)
	if c.hasGap {
		x.IntVal("c:gapWidth", c.gap)
	}
	switch {
	case c.hasOverlap:
		x.IntVal("c:overlap", c.overlap)
	case c.grouping != "clustered":
		// stacked bars sit on top of each other
		x.IntVal("c:overlap", 100)
	}
	c.writeAxisIDs(x)
	x.CTag()
}

func (barPlot) writeAxes(c *Chart, x *ooxml.Doc) {
	c.writeCatValAxes(x)
}

type linePlot struct{}

func (linePlot) writeChart(c *Chart, x *ooxml.Doc) {
	x.OTag("c:lineChart")
	x.Val("c:grouping", c.grouping)
	c.writeAllSeries(x)
	if c.hasMarkerFlag {
		x.IntVal("c:marker", 1)
	}
	c.writeAxisIDs(x)
	x.CTag()
}

func (linePlot) writeAxes(c *Chart, x *ooxml.Doc) {
	c.writeCatValAxes(x)
}

type piePlot struct {
	doughnut bool
}

func (p piePlot) writeChart(c *Chart, x *ooxml.Doc) {
	if p.doughnut {
		x.OTag("c:doughnutChart")
	} else {
		x.OTag("c:pieChart")
	}
	x.IntVal("c:varyColors", 1)
	c.writeAllSeries(x)
	x.IntVal("c:firstSliceAng", c.rotation)
	if p.doughnut {
		x.IntVal("c:holeSize", c.holeSize)
	}
	x.CTag()
}

func (piePlot) writeAxes(c *Chart, x *ooxml.Doc) {}

type scatterPlot struct {
	style string
}

func (p scatterPlot) writeChart(c *Chart, x *ooxml.Doc) {
	x.OTag("c:scatterChart")
	x.Val("c:scatterStyle", p.style)
	c.writeAllSeries(x)
	c.writeAxisIDs(x)
	x.CTag()
}

// writeAxes writes two value axes; the horizontal one takes the place of
// the category axis.
func (scatterPlot) writeAxes(c *Chart, x *ooxml.Doc) {
	xID, yID := c.axisIDs()
	c.writeValAx(x, c.XAxis, c.YAxis, xID, yID)
	c.writeValAx(x, c.YAxis, c.XAxis, yID, xID)
}

type radarPlot struct {
	style string
}

func (p radarPlot) writeChart(c *Chart, x *ooxml.Doc) {
	x.OTag("c:radarChart")
	x.Val("c:radarStyle", p.style)
	c.writeAllSeries(x)
	c.writeAxisIDs(x)
	x.CTag()
}

func (radarPlot) writeAxes(c *Chart, x *ooxml.Doc) {
	c.writeCatValAxes(x)
}
