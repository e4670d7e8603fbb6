// Package coord converts zero-based (row, col) pairs to A1-style cell,
// range and formula references and back.
package coord

import (
	"strconv"
	"strings"
)

// Excel sheet limits.
const (
	RowMax = 1 << 20 // 1048576 rows
	ColMax = 1 << 14 // 16384 columns
)

// ColToName converts a zero-based column to its letters: 0 is "A", 26 is
// "AA".
func ColToName(col int) string {
	var buf [8]byte
	i := len(buf)
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// CellToString converts a zero-based cell to "A1" form.
func CellToString(row, col int) string {
	return ColToName(col) + strconv.Itoa(row+1)
}

// AbsCell converts a zero-based cell to "$A$1" form.
func AbsCell(row, col int) string {
	return "$" + ColToName(col) + "$" + strconv.Itoa(row+1)
}

// RangeToString returns "A1:B5", or "A1" when the range is a single cell.
func RangeToString(firstRow, firstCol, lastRow, lastCol int) string {
	if firstRow == lastRow && firstCol == lastCol {
		return CellToString(firstRow, firstCol)
	}
	return CellToString(firstRow, firstCol) + ":" + CellToString(lastRow, lastCol)
}

// AbsRange returns "$A$1:$B$5", or "$A$1" for a single cell.
func AbsRange(firstRow, firstCol, lastRow, lastCol int) string {
	if firstRow == lastRow && firstCol == lastCol {
		return AbsCell(firstRow, firstCol)
	}
	return AbsCell(firstRow, firstCol) + ":" + AbsCell(lastRow, lastCol)
}

func plainSheetName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// QuoteSheet quotes a sheet name for use in a formula when it contains
// characters outside [A-Za-z0-9_]. Embedded quotes are doubled. Names that
// already start with a quote are returned as given.
func QuoteSheet(name string) string {
	if name == "" || strings.HasPrefix(name, "'") || plainSheetName(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// RangeToFormula returns an absolute reference such as "Sheet1!$A$1:$B$5".
func RangeToFormula(sheet string, firstRow, firstCol, lastRow, lastCol int) string {
	return QuoteSheet(sheet) + "!" + AbsRange(firstRow, firstCol, lastRow, lastCol)
}

// RowsToFormula returns a whole-row reference such as "Sheet1!$1:$3".
func RowsToFormula(sheet string, firstRow, lastRow int) string {
	return QuoteSheet(sheet) + "!$" + strconv.Itoa(firstRow+1) + ":$" + strconv.Itoa(lastRow+1)
}

// ColsToFormula returns a whole-column reference such as "Sheet1!$A:$B".
func ColsToFormula(sheet string, firstCol, lastCol int) string {
	return QuoteSheet(sheet) + "!$" + ColToName(firstCol) + ":$" + ColToName(lastCol)
}

// Valid reports whether a cell lies inside the sheet limits.
func Valid(row, col int) bool {
	return row >= 0 && row < RowMax && col >= 0 && col < ColMax
}

// Normalize orders the corners of a range so that first <= last.
func Normalize(firstRow, firstCol, lastRow, lastCol int) (int, int, int, int) {
	if firstRow > lastRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if firstCol > lastCol {
		firstCol, lastCol = lastCol, firstCol
	}
	return firstRow, firstCol, lastRow, lastCol
}
