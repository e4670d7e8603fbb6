package coord

import "strings"

// Point is one cached value of a range. Charts embed these so a reader
// can draw the series without recalculating the workbook.
type Point struct {
	Number   float64
	String   string
	IsString bool
	NoData   bool
}

// Range is a rectangular reference on a named sheet. It can be set either
// from a formula or from numeric corners; whichever was set last wins and
// the other form is derived from it.
type Range struct {
	formula string // without the leading '='
	sheet   string

	firstRow, firstCol int
	lastRow, lastCol   int
	valid              bool // corners are known

	cache          []Point
	hasStringCache bool
}

// NewRange builds a range from corners. Swapped corners are put in order.
func NewRange(sheet string, firstRow, firstCol, lastRow, lastCol int) *Range {
	r := &Range{}
	r.SetCells(sheet, firstRow, firstCol, lastRow, lastCol)
	return r
}

// FormulaRange builds a range from a reference such as "Sheet1!$A$1:$A$5".
func FormulaRange(formula string) *Range {
	r := &Range{}
	r.SetFormula(formula)
	return r
}

// SetFormula replaces the range with a formula. The corners are parsed
// from it when possible; a formula that does not parse is still kept and
// written out verbatim, it just cannot carry cached data.
func (r *Range) SetFormula(formula string) {
	r.formula = strings.TrimPrefix(formula, "=")
	r.cache = nil
	r.hasStringCache = false
	sheet, fr, fc, lr, lc, err := ParseFormula(r.formula)
	if err != nil {
		r.valid = false
		r.sheet = ""
		return
	}
	r.sheet = sheet
	r.firstRow, r.firstCol, r.lastRow, r.lastCol = fr, fc, lr, lc
	r.valid = true
}

// SetCells replaces the range with explicit corners. The formula is
// rebuilt from them on demand.
func (r *Range) SetCells(sheet string, firstRow, firstCol, lastRow, lastCol int) {
	r.firstRow, r.firstCol, r.lastRow, r.lastCol = Normalize(firstRow, firstCol, lastRow, lastCol)
	r.sheet = sheet
	r.valid = true
	r.formula = ""
	r.cache = nil
	r.hasStringCache = false
}

// Formula returns the reference, building it from the corners if needed.
func (r *Range) Formula() string {
	if r == nil {
		return ""
	}
	if r.formula == "" && r.valid {
		r.formula = RangeToFormula(r.sheet, r.firstRow, r.firstCol, r.lastRow, r.lastCol)
	}
	return r.formula
}

// Empty reports whether the range has no reference at all.
func (r *Range) Empty() bool {
	return r == nil || (r.formula == "" && !r.valid)
}

// Bounds returns the sheet and corners. ok is false when the range was set
// from a formula that could not be parsed.
func (r *Range) Bounds() (sheet string, firstRow, firstCol, lastRow, lastCol int, ok bool) {
	if r == nil || !r.valid {
		return "", 0, 0, 0, 0, false
	}
	return r.sheet, r.firstRow, r.firstCol, r.lastRow, r.lastCol, true
}

// IsVector reports whether the range is a single row or a single column,
// the only shapes that can carry a data cache.
func (r *Range) IsVector() bool {
	return r != nil && r.valid && (r.firstRow == r.lastRow || r.firstCol == r.lastCol)
}

// Len returns the number of cells in a vector range.
func (r *Range) Len() int {
	if !r.IsVector() {
		return 0
	}
	return (r.lastRow - r.firstRow + 1) * (r.lastCol - r.firstCol + 1)
}

// SetCache stores cached values for the range.
func (r *Range) SetCache(points []Point) {
	r.cache = points
	r.hasStringCache = false
	for _, p := range points {
		if p.IsString {
			r.hasStringCache = true
			break
		}
	}
}

// Cache returns the cached values, if any.
func (r *Range) Cache() []Point {
	if r == nil {
		return nil
	}
	return r.cache
}

// HasStringCache reports whether any cached value is a string.
func (r *Range) HasStringCache() bool {
	return r != nil && r.hasStringCache
}
