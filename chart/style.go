package chart

import (
	"math"

	"github.com/adnsv/go-xlw/ooxml"
)

// DashType is the line dash pattern. DashDefault leaves it to Excel.
type DashType int

const (
	DashDefault DashType = iota
	DashSolid
	DashRoundDot
	DashSquareDot
	DashDash
	DashDashDot
	DashLongDash
	DashLongDashDot
	DashLongDashDotDot
	DashDot
	DashSystemDashDot
	DashSystemDashDotDot
)

var dashNames = [...]string{
	"", "solid", "sysDot", "sysDash", "dash", "dashDot", "lgDash",
	"lgDashDot", "lgDashDotDot", "dot", "sysDashDot", "sysDashDotDot",
}

// Line formats lines and borders. Width is in points.
type Line struct {
	Color        ooxml.Color
	None         bool
	Width        float64
	Dash         DashType
	Transparency int // percent, 0..100
}

// Fill is a solid fill.
type Fill struct {
	Color        ooxml.Color
	None         bool
	Transparency int
}

// PatternType is one of the DrawingML preset patterns.
type PatternType int

const (
	PatternNone PatternType = iota
	Pattern5Percent
	Pattern10Percent
	Pattern20Percent
	Pattern25Percent
	Pattern30Percent
	Pattern40Percent
	Pattern50Percent
	Pattern60Percent
	Pattern70Percent
	Pattern75Percent
	Pattern80Percent
	Pattern90Percent
	PatternLightDownwardDiagonal
	PatternLightUpwardDiagonal
	PatternDarkDownwardDiagonal
	PatternDarkUpwardDiagonal
	PatternWideDownwardDiagonal
	PatternWideUpwardDiagonal
	PatternLightVertical
	PatternLightHorizontal
	PatternNarrowVertical
	PatternNarrowHorizontal
	PatternDarkVertical
	PatternDarkHorizontal
	PatternDashedDownwardDiagonal
	PatternDashedUpwardDiagonal
	PatternDashedHorizontal
	PatternDashedVertical
	PatternSmallConfetti
	PatternLargeConfetti
	PatternZigzag
	PatternWave
	PatternDiagonalBrick
	PatternHorizontalBrick
	PatternWeave
	PatternPlaid
	PatternDivot
	PatternDottedGrid
	PatternDottedDiamond
	PatternShingle
	PatternTrellis
	PatternSphere
	PatternSmallGrid
	PatternLargeGrid
	PatternSmallCheck
	PatternLargeCheck
	PatternOutlinedDiamond
	PatternSolidDiamond
)

var patternNames = [...]string{
	"", "pct5", "pct10", "pct20", "pct25", "pct30", "pct40", "pct50",
	"pct60", "pct70", "pct75", "pct80", "pct90", "ltDnDiag", "ltUpDiag",
	"dkDnDiag", "dkUpDiag", "wdDnDiag", "wdUpDiag", "ltVert", "ltHorz",
	"narVert", "narHorz", "dkVert", "dkHorz", "dashDnDiag", "dashUpDiag",
	"dashHorz", "dashVert", "smConfetti", "lgConfetti", "zigZag", "wave",
	"diagBrick", "horzBrick", "weave", "plaid", "divot", "dotGrid",
	"dotDmnd", "shingle", "trellis", "sphere", "smGrid", "lgGrid",
	"smCheck", "lgCheck", "openDmnd", "solidDmnd",
}

// Pattern is a two colour pattern fill. An unset background is white.
type Pattern struct {
	Type PatternType
	FG   ooxml.Color
	BG   ooxml.Color
}

// Font formats chart text. Rotation is in degrees, -90..90.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Rotation  int
	Color     ooxml.Color
	Baseline  int
}

// lineWidthEMU rounds to the nearest quarter point, the resolution of
// Excel's width picker.
func lineWidthEMU(pt float64) int {
	quarter := math.Floor((pt+0.125)*4) / 4
	return int(0.5 + 12700*quarter)
}

func writeColor(x *ooxml.Doc, c ooxml.Color, transparency int) {
	x.OTag("a:srgbClr").Attr("val", c.RGB())
	if transparency > 0 && transparency <= 100 {
		x.OTag("a:alpha").Attr("val", (100-transparency)*1000).CTag()
	}
	x.CTag()
}

func writeSolidFill(x *ooxml.Doc, c ooxml.Color, transparency int) {
	x.OTag("a:solidFill")
	writeColor(x, c, transparency)
	x.CTag()
}

func writeLine(x *ooxml.Doc, l *Line) {
	x.OTag("a:ln")
	if l.Width > 0 {
		x.Attr("w", lineWidthEMU(l.Width))
	}
	if l.None {
		x.OTag("a:noFill").CTag()
	} else if l.Color.IsSet() {
		writeSolidFill(x, l.Color, l.Transparency)
	}
	if l.Dash != DashDefault && int(l.Dash) < len(dashNames) {
		x.Val("a:prstDash", dashNames[l.Dash])
	}
	x.CTag()
}

func writePattern(x *ooxml.Doc, p *Pattern) {
	if p.Type == PatternNone || int(p.Type) >= len(patternNames) {
		return
	}
	fg, bg := p.FG, p.BG
	if !fg.IsSet() {
		fg = ooxml.ColorBlack
	}
	if !bg.IsSet() {
		bg = ooxml.ColorWhite
	}
	x.OTag("a:pattFill").Attr("prst", patternNames[p.Type])
	x.OTag("a:fgClr")
	writeColor(x, fg, 0)
	x.CTag()
	x.OTag("a:bgClr")
	writeColor(x, bg, 0)
	x.CTag()
	x.CTag()
}

// writeSpPr writes <c:spPr> when any of the formats is given. A pattern
// replaces the solid fill.
func writeSpPr(x *ooxml.Doc, line *Line, fill *Fill, pattern *Pattern) {
	if line == nil && fill == nil && pattern == nil {
		return
	}
	x.OTag("c:spPr")
	switch {
	case pattern != nil && pattern.Type != PatternNone:
		writePattern(x, pattern)
	case fill != nil && fill.None:
		x.OTag("a:noFill").CTag()
	case fill != nil && fill.Color.IsSet():
		writeSolidFill(x, fill.Color, fill.Transparency)
	}
	if line != nil {
		writeLine(x, line)
	}
	x.CTag()
}

func writeFontAttrs(x *ooxml.Doc, f *Font) {
	if f == nil {
		return
	}
	if f.Size > 0 {
		x.Attr("sz", int(f.Size*100+0.5))
	}
	if f.Bold {
		x.Attr("b", 1)
	}
	if f.Italic {
		x.Attr("i", 1)
	}
	if f.Underline {
		x.Attr("u", "sng")
	}
	if f.Baseline != 0 {
		x.Attr("baseline", f.Baseline)
	}
}

func writeFontChildren(x *ooxml.Doc, f *Font) {
	if f == nil {
		return
	}
	if f.Color.IsSet() {
		writeSolidFill(x, f.Color, 0)
	}
	if f.Name != "" {
		x.OTag("a:latin").Attr("typeface", f.Name).CTag()
	}
}

func writeDefRPr(x *ooxml.Doc, f *Font) {
	x.OTag("a:defRPr")
	writeFontAttrs(x, f)
	writeFontChildren(x, f)
	x.CTag()
}

// writeBodyPr writes <a:bodyPr>. Vertical axis titles are turned a quarter
// turn unless the font gives its own rotation.
func writeBodyPr(x *ooxml.Doc, f *Font, vertical bool) {
	x.OTag("a:bodyPr")
	rot, has := 0, false
	if f != nil && f.Rotation != 0 {
		rot, has = f.Rotation*60000, true
	} else if vertical {
		rot, has = -5400000, true
	}
	if has {
		x.Attr("rot", rot).Attr("vert", "horz")
	}
	x.CTag()
}

// writeRich writes a literal text body for titles.
func writeRich(x *ooxml.Doc, text string, f *Font, vertical bool) {
	x.OTag("c:rich")
	writeBodyPr(x, f, vertical)
	x.OTag("a:lstStyle").CTag()
	x.OTag("a:p")
	x.OTag("a:pPr")
	writeDefRPr(x, f)
	x.CTag()
	x.OTag("a:r")
	x.OTag("a:rPr").Attr("lang", "en-US")
	writeFontAttrs(x, f)
	writeFontChildren(x, f)
	x.CTag()
	x.Text("a:t", text)
	x.CTag()
	x.CTag()
	x.CTag()
}

// writeTxPr writes the text properties used by axis numbers, legends,
// data labels and range titles.
func writeTxPr(x *ooxml.Doc, f *Font, vertical bool) {
	x.OTag("c:txPr")
	writeBodyPr(x, f, vertical)
	x.OTag("a:lstStyle").CTag()
	x.OTag("a:p")
	x.OTag("a:pPr")
	writeDefRPr(x, f)
	x.CTag()
	x.OTag("a:endParaRPr").Attr("lang", "en-US").CTag()
	x.CTag()
	x.CTag()
}
