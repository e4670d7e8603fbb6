package coord

import (
	"strings"

	"github.com/adnsv/go-xlw/ooxml"
)

// NameToCol converts column letters to a zero-based column.
func NameToCol(name string) (int, error) {
	name = strings.TrimPrefix(name, "$")
	if name == "" || len(name) > 3 {
		return 0, ooxml.Invalid("column name %q", name)
	}
	col := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, ooxml.Invalid("column name %q", name)
		}
		col = col*26 + int(c-'A'+1)
	}
	col--
	if col >= ColMax {
		return 0, ooxml.ErrIndexOutOfRange.New("column " + name)
	}
	return col, nil
}

// ParseCell converts "B3" or "$B$3" to zero-based (2, 1).
func ParseCell(ref string) (row, col int, err error) {
	s := strings.ReplaceAll(ref, "$", "")
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, ooxml.Invalid("cell reference %q", ref)
	}
	col, err = NameToCol(s[:i])
	if err != nil {
		return 0, 0, err
	}
	row = 0
	for _, c := range s[i:] {
		if c < '0' || c > '9' {
			return 0, 0, ooxml.Invalid("cell reference %q", ref)
		}
		row = row*10 + int(c-'0')
		if row > RowMax {
			return 0, 0, ooxml.ErrIndexOutOfRange.New("row in " + ref)
		}
	}
	if row == 0 {
		return 0, 0, ooxml.Invalid("cell reference %q", ref)
	}
	return row - 1, col, nil
}

// ParseRange converts "A1:B5" or "A1" to zero-based corners. Swapped
// corners are put in order.
func ParseRange(ref string) (firstRow, firstCol, lastRow, lastCol int, err error) {
	a, b, found := strings.Cut(ref, ":")
	firstRow, firstCol, err = ParseCell(a)
	if err != nil {
		return
	}
	if !found {
		return firstRow, firstCol, firstRow, firstCol, nil
	}
	lastRow, lastCol, err = ParseCell(b)
	if err != nil {
		return
	}
	firstRow, firstCol, lastRow, lastCol = Normalize(firstRow, firstCol, lastRow, lastCol)
	return
}

// ParseFormula splits a reference such as "=Sheet1!$A$1:$A$5" or
// "'My Data'!B2" into its sheet name and zero-based corners.
func ParseFormula(formula string) (sheet string, firstRow, firstCol, lastRow, lastCol int, err error) {
	f := strings.TrimPrefix(formula, "=")
	i := strings.LastIndexByte(f, '!')
	if i < 0 {
		err = ooxml.Invalid("range formula %q has no sheet name", formula)
		return
	}
	sheet = f[:i]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	firstRow, firstCol, lastRow, lastCol, err = ParseRange(f[i+1:])
	return
}
