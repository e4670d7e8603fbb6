package chart

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// TickMark is the style of axis tick marks.
type TickMark int

const (
	TickDefault TickMark = iota
	TickNone
	TickInside
	TickOutside
	TickCross
)

var tickNames = [...]string{"", "none", "in", "out", "cross"}

// TickLabelPosition places the axis numbers.
type TickLabelPosition int

const (
	TickLabelNextTo TickLabelPosition = iota
	TickLabelHigh
	TickLabelLow
	TickLabelNone
)

var tickLabelNames = [...]string{"nextTo", "high", "low", "none"}

// Gridlines formats major or minor gridlines.
type Gridlines struct {
	Visible bool
	Line    *Line
}

type crossing int

const (
	crossAuto crossing = iota
	crossMin
	crossMax
	crossAt
)

// Axis holds the settings of one chart axis.
type Axis struct {
	position string
	title    title

	numFormat string
	numFont   *Font

	min, max       float64
	hasMin, hasMax bool
	logBase        int
	reverse        bool
	hidden         bool

	majorGridlines *Gridlines
	minorGridlines *Gridlines
	majorTick      TickMark
	minorTick      TickMark
	labelPosition  TickLabelPosition

	crossing   crossing
	crossValue float64

	majorUnit, minorUnit float64

	line    *Line
	fill    *Fill
	pattern *Pattern
}

func newAxis(position string) *Axis {
	return &Axis{position: position}
}

// SetName sets a literal axis title.
func (a *Axis) SetName(name string) {
	a.title.name = name
	a.title.rng = nil
}

// SetNameRange takes the axis title from a cell.
func (a *Axis) SetNameRange(sheet string, row, col int) {
	a.title.rng = coord.NewRange(sheet, row, col, row, col)
	a.title.name = ""
}

// SetNameFont sets the axis title font.
func (a *Axis) SetNameFont(f *Font) {
	a.title.font = f
}

// SetNumFont sets the font of the axis numbers.
func (a *Axis) SetNumFont(f *Font) {
	a.numFont = f
}

// SetNumFormat sets the number format of the axis numbers.
func (a *Axis) SetNumFormat(format string) {
	a.numFormat = format
}

// SetMin fixes the lower bound of a value axis.
func (a *Axis) SetMin(v float64) {
	a.min, a.hasMin = v, true
}

// SetMax fixes the upper bound of a value axis.
func (a *Axis) SetMax(v float64) {
	a.max, a.hasMax = v, true
}

// SetLogBase makes a value axis logarithmic. Bases outside 2..1000 turn
// the log scale off.
func (a *Axis) SetLogBase(base int) {
	if base < 2 || base > 1000 {
		base = 0
	}
	a.logBase = base
}

// SetReverse plots the axis in reverse order.
func (a *Axis) SetReverse() {
	a.reverse = true
}

// Off hides the axis.
func (a *Axis) Off() {
	a.hidden = true
}

// SetMajorGridlines shows or hides the major gridlines.
func (a *Axis) SetMajorGridlines(visible bool, line *Line) {
	a.majorGridlines = &Gridlines{Visible: visible, Line: line}
}

// SetMinorGridlines shows or hides the minor gridlines.
func (a *Axis) SetMinorGridlines(visible bool, line *Line) {
	a.minorGridlines = &Gridlines{Visible: visible, Line: line}
}

// SetMajorTickMark sets the major tick mark style.
func (a *Axis) SetMajorTickMark(t TickMark) {
	a.majorTick = t
}

// SetMinorTickMark sets the minor tick mark style.
func (a *Axis) SetMinorTickMark(t TickMark) {
	a.minorTick = t
}

// SetLabelPosition places the axis numbers.
func (a *Axis) SetLabelPosition(p TickLabelPosition) {
	a.labelPosition = p
}

// SetCrossingMin makes the other axis cross this one at its minimum.
func (a *Axis) SetCrossingMin() {
	a.crossing = crossMin
}

// SetCrossingMax makes the other axis cross this one at its maximum.
func (a *Axis) SetCrossingMax() {
	a.crossing = crossMax
}

// SetCrossingAt makes the other axis cross this one at value v.
func (a *Axis) SetCrossingAt(v float64) {
	a.crossing, a.crossValue = crossAt, v
}

// SetMajorUnit sets the interval between major ticks.
func (a *Axis) SetMajorUnit(v float64) {
	a.majorUnit = v
}

// SetMinorUnit sets the interval between minor ticks.
func (a *Axis) SetMinorUnit(v float64) {
	a.minorUnit = v
}

// SetFormat formats the axis line and background.
func (a *Axis) SetFormat(line *Line, fill *Fill, pattern *Pattern) {
	a.line, a.fill, a.pattern = line, fill, pattern
}

func (a *Axis) vertical() bool {
	return a.position == "l" || a.position == "r"
}

func (a *Axis) writeScaling(x *ooxml.Doc) {
	x.OTag("c:scaling")
	if a.logBase > 0 {
		x.IntVal("c:logBase", a.logBase)
	}
	if a.reverse {
		x.Val("c:orientation", "maxMin")
	} else {
		x.Val("c:orientation", "minMax")
	}
	if a.hasMax {
		x.Val("c:max", ooxml.FormatFloat(a.max))
	}
	if a.hasMin {
		x.Val("c:min", ooxml.FormatFloat(a.min))
	}
	x.CTag()
}

// writeAxPos mirrors the position when the crossing axis is reversed.
func (a *Axis) writeAxPos(x *ooxml.Doc, other *Axis) {
	pos := a.position
	if other.reverse {
		switch pos {
		case "l":
			pos = "r"
		case "b":
			pos = "t"
		}
	}
	x.Val("c:axPos", pos)
}

func writeGridlines(x *ooxml.Doc, name string, g *Gridlines) {
	if g == nil || !g.Visible {
		return
	}
	switch name {
	case "major":
		x.OTag("c:majorGridlines")
	default:
		x.OTag("c:minorGridlines")
	}
	writeSpPr(x, g.Line, nil, nil)
	x.CTag()
}

func (a *Axis) writeHead(x *ooxml.Doc, id int, other *Axis) {
	x.IntVal("c:axId", id)
	a.writeScaling(x)
	if a.hidden {
		x.IntVal("c:delete", 1)
	}
	a.writeAxPos(x, other)
	writeGridlines(x, "major", a.majorGridlines)
	writeGridlines(x, "minor", a.minorGridlines)
	a.title.write(x, a.vertical())
}

func (a *Axis) writeNumFmt(x *ooxml.Doc) {
	code, linked := a.numFormat, 0
	if code == "" || code == "General" {
		code, linked = "General", 1
	}
	x.OTag("c:numFmt").Attr("formatCode", code).Attr("sourceLinked", linked).CTag()
}

func (a *Axis) writeTicks(x *ooxml.Doc) {
	if a.majorTick != TickDefault {
		x.Val("c:majorTickMark", tickNames[a.majorTick])
	}
	if a.minorTick != TickDefault {
		x.Val("c:minorTickMark", tickNames[a.minorTick])
	}
	x.Val("c:tickLblPos", tickLabelNames[a.labelPosition])
	writeSpPr(x, a.line, a.fill, a.pattern)
	if a.numFont != nil {
		writeTxPr(x, a.numFont, false)
	}
}

// writeCrosses writes where this axis crosses other, a setting that is
// held by the crossed axis.
func writeCrosses(x *ooxml.Doc, other *Axis) {
	switch other.crossing {
	case crossMin:
		x.Val("c:crosses", "min")
	case crossMax:
		x.Val("c:crosses", "max")
	case crossAt:
		x.Val("c:crossesAt", ooxml.FormatFloat(other.crossValue))
	default:
		x.Val("c:crosses", "autoZero")
	}
}

func (a *Axis) writeUnits(x *ooxml.Doc) {
	if a.majorUnit > 0 {
		x.Val("c:majorUnit", ooxml.FormatFloat(a.majorUnit))
	}
	if a.minorUnit > 0 {
		x.Val("c:minorUnit", ooxml.FormatFloat(a.minorUnit))
	}
}

// writeCatAx writes a category axis. The number format is only written
// when the categories are numeric or the format was set explicitly.
func (c *Chart) writeCatAx(x *ooxml.Doc, cat, val *Axis, catID, valID int, numeric bool) {
	x.OTag("c:catAx")
	cat.writeHead(x, catID, val)
	if numeric || cat.numFormat != "" {
		cat.writeNumFmt(x)
	}
	cat.writeTicks(x)
	x.IntVal("c:crossAx", valID)
	if !cat.hidden || !c.sideways() {
		writeCrosses(x, val)
	}
	x.IntVal("c:auto", 1)
	x.Val("c:lblAlgn", "ctr")
	x.IntVal("c:lblOffset", 100)
	x.CTag()
}

// writeValAx writes a value axis. Scatter charts use it for both axes.
func (c *Chart) writeValAx(x *ooxml.Doc, val, cat *Axis, valID, catID int) {
	x.OTag("c:valAx")
	val.writeHead(x, valID, cat)
	val.writeNumFmt(x)
	val.writeTicks(x)
	x.IntVal("c:crossAx", catID)
	if !val.hidden || !c.sideways() {
		writeCrosses(x, cat)
	}
	x.Val("c:crossBetween", c.crossBetween)
	val.writeUnits(x)
	x.CTag()
}
