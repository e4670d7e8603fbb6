package chart

import (
	"io"
	"strconv"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// LegendPosition places or hides the legend.
type LegendPosition int

const (
	LegendRight LegendPosition = iota
	LegendNone
	LegendTop
	LegendBottom
	LegendLeft
	LegendOverlayRight
	LegendOverlayLeft
	LegendOverlayTopRight
)

type legend struct {
	position LegendPosition
	font     *Font
	deleted  []int
}

type title struct {
	name    string
	rng     *coord.Range
	font    *Font
	overlay bool
	off     bool
}

// write emits <c:title> for a literal or cell title; a title with neither
// is left to Excel.
func (t *title) write(x *ooxml.Doc, vertical bool) {
	switch {
	case !t.rng.Empty():
		x.OTag("c:title")
		x.OTag("c:tx")
		writeStrRef(x, t.rng)
		x.CTag()
		x.OTag("c:layout").CTag()
		if t.overlay {
			x.IntVal("c:overlay", 1)
		}
		writeTxPr(x, t.font, vertical)
		x.CTag()
	case t.name != "":
		x.OTag("c:title")
		x.OTag("c:tx")
		writeRich(x, t.name, t.font, vertical)
		x.CTag()
		x.OTag("c:layout").CTag()
		if t.overlay {
			x.IntVal("c:overlay", 1)
		}
		x.CTag()
	}
}

// Assemble writes the chart part. A chart can be assembled only once.
func (c *Chart) Assemble(w io.Writer) error {
	if c.assembled {
		return ooxml.ErrAlreadyAssembled.New("chart")
	}
	for i, s := range c.series {
		if s.values.Empty() {
			return ooxml.ErrNullParameter.New("values of series " + strconv.Itoa(i))
		}
		if c.family == familyScatter && s.categories.Empty() {
			return ooxml.ErrNullParameter.New("x values of scatter series " + strconv.Itoa(i))
		}
	}
	c.assembled = true
	c.catNumeric = false

	x := ooxml.NewDoc(w)
	x.OTag("c:chartSpace")
	x.Attr("xmlns:c", ooxml.NSChart)
	x.Attr("xmlns:a", ooxml.NSDrawingML)
	x.Attr("xmlns:r", ooxml.NSRelations)
	x.Val("c:lang", "en-US")
	if c.style != 2 {
		x.IntVal("c:style", c.style)
	}

	x.OTag("c:chart")
	if c.title.off {
		x.IntVal("c:autoTitleDeleted", 1)
	} else {
		c.title.write(x, false)
	}
	x.OTag("c:plotArea")
	x.OTag("c:layout").CTag()
	c.plot.writeChart(c, x)
	c.plot.writeAxes(c, x)
	writeSpPr(x, c.plotArea.line, c.plotArea.fill, c.plotArea.pattern)
	x.CTag()
	c.writeLegend(x)
	if c.showHidden {
		x.IntVal("c:plotVisOnly", 0)
	} else {
		x.IntVal("c:plotVisOnly", 1)
	}
	if c.blanksAs != BlanksAsGap {
		x.Val("c:dispBlanksAs", blanksNames[c.blanksAs])
	}
	x.CTag()

	writeSpPr(x, c.chartArea.line, c.chartArea.fill, c.chartArea.pattern)
	if c.embedded {
		writePrintSettings(x)
	}
	x.CTag()
	return x.Close("chart")
}

func writePrintSettings(x *ooxml.Doc) {
	x.OTag("c:printSettings")
	x.OTag("c:headerFooter").CTag()
	x.OTag("c:pageMargins")
	x.Attr("b", 0.75).Attr("l", 0.7).Attr("r", 0.7).Attr("t", 0.75)
	x.Attr("header", 0.3).Attr("footer", 0.3)
	x.CTag()
	x.OTag("c:pageSetup").CTag()
	x.CTag()
}

func (c *Chart) writeLegend(x *ooxml.Doc) {
	var pos string
	overlay := false
	switch c.legend.position {
	case LegendNone:
		return
	case LegendTop:
		pos = "t"
	case LegendBottom:
		pos = "b"
	case LegendLeft:
		pos = "l"
	case LegendOverlayRight:
		pos, overlay = "r", true
	case LegendOverlayLeft:
		pos, overlay = "l", true
	case LegendOverlayTopRight:
		pos, overlay = "tr", true
	default:
		pos = "r"
	}

	x.OTag("c:legend")
	x.Val("c:legendPos", pos)
	for _, i := range c.legend.deleted {
		x.OTag("c:legendEntry")
		x.IntVal("c:idx", i)
		x.IntVal("c:delete", 1)
		x.CTag()
	}
	x.OTag("c:layout").CTag()
	if overlay {
		x.IntVal("c:overlay", 1)
	}
	switch {
	case c.family == familyPie:
		// pie legends carry explicit left-to-right text
		x.OTag("c:txPr")
		writeBodyPr(x, c.legend.font, false)
		x.OTag("a:lstStyle").CTag()
		x.OTag("a:p")
		x.OTag("a:pPr").Attr("rtl", 0)
		writeDefRPr(x, c.legend.font)
		x.CTag()
		x.OTag("a:endParaRPr").Attr("lang", "en-US").CTag()
		x.CTag()
		x.CTag()
	case c.legend.font != nil:
		writeTxPr(x, c.legend.font, false)
	}
	x.CTag()
}

func (c *Chart) hasMarkers() bool {
	return c.family == familyLine || c.family == familyScatter || c.family == familyRadar
}

func (c *Chart) writeSeries(x *ooxml.Doc, s *Series, idx int) {
	x.OTag("c:ser")
	x.IntVal("c:idx", idx)
	x.IntVal("c:order", idx)
	writeSeriesName(x, s)

	line := s.line
	if c.typ == TypeScatter && line == nil {
		// markers only
		line = &Line{Width: 2.25, None: true}
	}
	writeSpPr(x, line, s.fill, s.pattern)

	if c.hasMarkers() {
		m := s.marker
		if m == nil {
			m = c.defaultMarker
		}
		writeMarker(x, m)
	}
	if c.family == familyBar && s.invertIfNegative {
		x.IntVal("c:invertIfNegative", 1)
	}
	for i, p := range s.points {
		if p == nil {
			continue
		}
		x.OTag("c:dPt")
		x.IntVal("c:idx", i)
		writeSpPr(x, p.Line, p.Fill, p.Pattern)
		x.CTag()
	}
	if s.labels != nil {
		c.writeLabels(x, s.labels)
	}
	if s.trendline != nil && c.family != familyPie && c.family != familyRadar {
		writeTrendline(x, s.trendline)
	}

	if c.family == familyScatter {
		x.OTag("c:xVal")
		writeDataRef(x, s.categories)
		x.CTag()
		x.OTag("c:yVal")
		writeNumRef(x, s.values)
		x.CTag()
	} else {
		if !s.categories.Empty() {
			x.OTag("c:cat")
			if writeDataRef(x, s.categories) {
				c.catNumeric = true
			}
			x.CTag()
		}
		x.OTag("c:val")
		writeNumRef(x, s.values)
		x.CTag()
	}

	if (c.family == familyLine || c.family == familyScatter) && s.smooth {
		x.IntVal("c:smooth", 1)
	}
	x.CTag()
}

func writeSeriesName(x *ooxml.Doc, s *Series) {
	switch {
	case !s.nameRange.Empty():
		x.OTag("c:tx")
		writeStrRef(x, s.nameRange)
		x.CTag()
	case s.name != "":
		x.OTag("c:tx")
		x.Text("c:v", s.name)
		x.CTag()
	}
}

func writeMarker(x *ooxml.Doc, m *Marker) {
	if m == nil || m.Type == MarkerAutomatic || int(m.Type) >= len(markerSymbols) {
		return
	}
	x.OTag("c:marker")
	x.Val("c:symbol", markerSymbols[m.Type])
	if m.Size >= 2 && m.Size <= 72 {
		x.IntVal("c:size", m.Size)
	}
	writeSpPr(x, m.Line, m.Fill, m.Pattern)
	x.CTag()
}

func (c *Chart) writeLabels(x *ooxml.Doc, d *DataLabels) {
	x.OTag("c:dLbls")
	if d.NumFormat != "" {
		x.OTag("c:numFmt").Attr("formatCode", d.NumFormat).Attr("sourceLinked", 0).CTag()
	}
	if d.Font != nil {
		writeTxPr(x, d.Font, false)
	}
	if d.Position != LabelDefault && int(d.Position) < len(labelPositions) {
		x.Val("c:dLblPos", labelPositions[d.Position])
	}
	if d.LegendKey {
		x.IntVal("c:showLegendKey", 1)
	}
	if d.Value {
		x.IntVal("c:showVal", 1)
	}
	if d.Category {
		x.IntVal("c:showCatName", 1)
	}
	if d.SeriesName {
		x.IntVal("c:showSerName", 1)
	}
	if d.Percentage && c.family == familyPie {
		x.IntVal("c:showPercent", 1)
	}
	if d.Separator != "" {
		x.Text("c:separator", d.Separator)
	}
	if d.LeaderLines && c.family == familyPie {
		x.IntVal("c:showLeaderLines", 1)
	}
	x.CTag()
}

func writeTrendline(x *ooxml.Doc, t *Trendline) {
	x.OTag("c:trendline")
	if t.Name != "" {
		x.Text("c:name", t.Name)
	}
	writeSpPr(x, t.Line, nil, nil)
	x.Val("c:trendlineType", trendlineNames[t.Type])
	switch t.Type {
	case TrendlinePolynomial:
		order := t.Order
		if order < 2 || order > 6 {
			order = 2
		}
		x.IntVal("c:order", order)
	case TrendlineMovingAverage:
		period := t.Period
		if period < 2 {
			period = 2
		}
		x.IntVal("c:period", period)
	}
	if t.Forward > 0 {
		x.Val("c:forward", ooxml.FormatFloat(t.Forward))
	}
	if t.Backward > 0 {
		x.Val("c:backward", ooxml.FormatFloat(t.Backward))
	}
	if t.HasIntercept {
		x.Val("c:intercept", ooxml.FormatFloat(t.Intercept))
	}
	if t.DisplayRSquared {
		x.IntVal("c:dispRSqr", 1)
	}
	if t.DisplayEquation {
		x.IntVal("c:dispEq", 1)
		x.OTag("c:trendlineLbl")
		x.OTag("c:numFmt").Attr("formatCode", "General").Attr("sourceLinked", 0).CTag()
		x.CTag()
	}
	x.CTag()
}

// writeDataRef writes a category or X reference as a string reference
// when its cache holds text and as a number reference otherwise. It
// reports whether the number form was used.
func writeDataRef(x *ooxml.Doc, r *coord.Range) bool {
	if r.HasStringCache() {
		writeStrRef(x, r)
		return false
	}
	writeNumRef(x, r)
	return true
}

func writeNumRef(x *ooxml.Doc, r *coord.Range) {
	x.OTag("c:numRef")
	x.Text("c:f", r.Formula())
	if cache := r.Cache(); len(cache) > 0 {
		x.OTag("c:numCache")
		x.Text("c:formatCode", "General")
		x.IntVal("c:ptCount", len(cache))
		for i, p := range cache {
			if p.NoData {
				continue
			}
			v := p.Number
			if p.IsString {
				v = 0
			}
			x.OTag("c:pt").Attr("idx", i)
			x.Text("c:v", ooxml.FormatFloat(v))
			x.CTag()
		}
		x.CTag()
	}
	x.CTag()
}

func writeStrRef(x *ooxml.Doc, r *coord.Range) {
	x.OTag("c:strRef")
	x.Text("c:f", r.Formula())
	if cache := r.Cache(); len(cache) > 0 {
		x.OTag("c:strCache")
		x.IntVal("c:ptCount", len(cache))
		for i, p := range cache {
			if p.NoData {
				continue
			}
			s := p.String
			if !p.IsString {
				s = ooxml.FormatFloat(p.Number)
			}
			x.OTag("c:pt").Attr("idx", i)
			x.Text("c:v", s)
			x.CTag()
		}
		x.CTag()
	}
	x.CTag()
}
