package xl

import (
	"strconv"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/adnsv/srw/xml"
)

// Cell is one occupied position of a worksheet.
type Cell struct {
	Row    int // 0-based
	Col    int // 0-based
	Type   CellType
	Format Format // not owned; nil uses the row or column format

	number float64 // Number, Bool, formula numeric result
	sst    int     // SharedString index
	text   string  // string payload, rich markup or formula text
	result string  // formula string result
	isStr  bool    // result is a string
	ref    string  // array formula range
}

// CellType is the type of cell value type.
type CellType int

// Cell value types enumeration.
const (
	CellTypeUnset CellType = iota
	CellTypeBool
	CellTypeBlank
	CellTypeFormula
	CellTypeArrayFormula
	CellTypeDynamicArrayFormula
	CellTypeInlineString
	CellTypeInlineRichString
	CellTypeNumber
	CellTypeSharedString
)

// Number returns the value of a number or boolean cell, or the numeric
// result of a formula.
func (c *Cell) Number() float64 {
	return c.number
}

// Text returns the string of a string cell, the markup of a rich string,
// or the text of a formula.
func (c *Cell) Text() string {
	return c.text
}

// Result returns the cached string result of a formula cell.
func (c *Cell) Result() (string, bool) {
	return c.result, c.isStr
}

// point turns a cell into a chart cache value.
func (c *Cell) point() coord.Point {
	switch c.Type {
	case CellTypeNumber, CellTypeBool:
		return coord.Point{Number: c.number}
	case CellTypeSharedString, CellTypeInlineString:
		return coord.Point{String: c.text, IsString: true}
	case CellTypeInlineRichString:
		return coord.Point{String: c.result, IsString: true}
	case CellTypeFormula, CellTypeArrayFormula, CellTypeDynamicArrayFormula:
		if c.isStr {
			return coord.Point{String: c.result, IsString: true}
		}
		return coord.Point{Number: c.number}
	}
	return coord.Point{NoData: true}
}

// write emits the <c> element. style is the resolved xf index.
func (c *Cell) write(x *ooxml.Doc, style int) {
	x.OTag("c").Attr("r", coord.CellToString(c.Row, c.Col))
	if style != 0 {
		x.Attr("s", style)
	}

	switch c.Type {
	case CellTypeNumber:
		x.Text("v", ooxml.FormatFloat(c.number))

	case CellTypeSharedString:
		x.Attr("t", "s")
		x.Text("v", strconv.Itoa(c.sst))

	case CellTypeInlineString:
		x.Attr("t", "inlineStr")
		x.OTag("is")
		writeT(x, c.text)
		x.CTag()

	case CellTypeInlineRichString:
		x.Attr("t", "inlineStr")
		x.OTag("is").RawString(xml.RawString(c.text)).CTag()

	case CellTypeFormula:
		if c.isStr {
			x.Attr("t", "str")
		}
		x.Text("f", c.text)
		x.Text("v", c.value())

	case CellTypeArrayFormula, CellTypeDynamicArrayFormula:
		if c.isStr {
			x.Attr("t", "str")
		}
		if c.Type == CellTypeDynamicArrayFormula {
			x.Attr("cm", 1)
		}
		x.OTag("f").Attr("t", "array").Attr("ref", c.ref).String(c.text).CTag()
		x.Text("v", c.value())

	case CellTypeBool:
		x.Attr("t", "b")
		x.Text("v", ooxml.Bool01(c.number != 0))

	case CellTypeBlank:
		// formatted placeholder only
	}
	x.CTag()
}

func (c *Cell) value() string {
	if c.isStr {
		return c.result
	}
	return ooxml.FormatFloat(c.number)
}
