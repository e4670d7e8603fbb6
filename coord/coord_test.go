package coord

import (
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColToName(t *testing.T) {
	for col, want := range map[int]string{
		0:     "A",
		25:    "Z",
		26:    "AA",
		51:    "AZ",
		52:    "BA",
		701:   "ZZ",
		702:   "AAA",
		16383: "XFD",
	} {
		assert.Equal(t, want, ColToName(col))
		back, err := NameToCol(want)
		require.NoError(t, err)
		assert.Equal(t, col, back)
	}
}

func TestCellToString(t *testing.T) {
	assert.Equal(t, "A1", CellToString(0, 0))
	assert.Equal(t, "B3", CellToString(2, 1))
	assert.Equal(t, "XFD1048576", CellToString(RowMax-1, ColMax-1))
	assert.Equal(t, "$C$4", AbsCell(3, 2))
}

func TestRangeToString(t *testing.T) {
	assert.Equal(t, "A1:B5", RangeToString(0, 0, 4, 1))
	assert.Equal(t, "A1", RangeToString(0, 0, 0, 0))
	assert.Equal(t, "$A$1:$A$5", AbsRange(0, 0, 4, 0))
	assert.Equal(t, "$B$2", AbsRange(1, 1, 1, 1))
}

func TestRangeToFormula(t *testing.T) {
	assert.Equal(t, "Sheet1!$A$1:$B$5", RangeToFormula("Sheet1", 0, 0, 4, 1))
	assert.Equal(t, "'Sales Data'!$A$1", RangeToFormula("Sales Data", 0, 0, 0, 0))
	assert.Equal(t, "'O''Brien'!$A$1:$A$2", RangeToFormula("O'Brien", 0, 0, 1, 0))
	assert.Equal(t, "'Ünits'!$A$1:$A$2", RangeToFormula("Ünits", 0, 0, 1, 0))
	assert.Equal(t, "My_Sheet2!$A$1:$A$2", RangeToFormula("My_Sheet2", 0, 0, 1, 0))
	assert.Equal(t, "Sheet1!$1:$3", RowsToFormula("Sheet1", 0, 2))
	assert.Equal(t, "'a b'!$A:$B", ColsToFormula("a b", 0, 1))
}

func TestCellRoundTrip(t *testing.T) {
	rows := []int{0, 1, 9, 15, 16, 99, 1000, 65535, 65536, RowMax - 2, RowMax - 1}
	cols := []int{0, 1, 25, 26, 27, 255, 256, 701, 702, 16000, ColMax - 1}
	for _, r := range rows {
		for _, c := range cols {
			pr, pc, err := ParseCell(CellToString(r, c))
			require.NoError(t, err)
			assert.Equal(t, r, pr)
			assert.Equal(t, c, pc)

			pr, pc, err = ParseCell(AbsCell(r, c))
			require.NoError(t, err)
			assert.Equal(t, [2]int{r, c}, [2]int{pr, pc})
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, ref := range []string{"", "A", "1", "A0", "1A", "A1B", "ABCD1", "A-1"} {
		_, _, err := ParseCell(ref)
		assert.Error(t, err, ref)
	}
	_, _, err := ParseCell("A1048577")
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(err))
	_, err = NameToCol("XFE")
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(err))
}

func TestParseRange(t *testing.T) {
	fr, fc, lr, lc, err := ParseRange("B5:A1")
	require.NoError(t, err)
	assert.Equal(t, [4]int{0, 0, 4, 1}, [4]int{fr, fc, lr, lc})

	fr, fc, lr, lc, err = ParseRange("C3")
	require.NoError(t, err)
	assert.Equal(t, [4]int{2, 2, 2, 2}, [4]int{fr, fc, lr, lc})
}

func TestParseFormula(t *testing.T) {
	sheet, fr, fc, lr, lc, err := ParseFormula("=Sheet1!$A$1:$A$5")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet)
	assert.Equal(t, [4]int{0, 0, 4, 0}, [4]int{fr, fc, lr, lc})

	sheet, _, _, _, _, err = ParseFormula("'O''Brien'!B2")
	require.NoError(t, err)
	assert.Equal(t, "O'Brien", sheet)

	_, _, _, _, _, err = ParseFormula("A1:B2")
	assert.True(t, ooxml.ErrParameterValidation.Is(err))
}

func TestRangeLastSetWins(t *testing.T) {
	r := FormulaRange("=Sheet1!$A$1:$A$5")
	assert.Equal(t, "Sheet1!$A$1:$A$5", r.Formula())
	sheet, fr, fc, lr, lc, ok := r.Bounds()
	assert.True(t, ok)
	assert.Equal(t, "Sheet1", sheet)
	assert.Equal(t, [4]int{0, 0, 4, 0}, [4]int{fr, fc, lr, lc})
	assert.Equal(t, 5, r.Len())

	r.SetCells("Data", 9, 2, 1, 2)
	assert.Equal(t, "Data!$C$2:$C$10", r.Formula())

	r.SetFormula("Other!$B$1:$D$1")
	sheet, _, fc, _, lc, ok = r.Bounds()
	assert.True(t, ok)
	assert.Equal(t, "Other", sheet)
	assert.Equal(t, 1, fc)
	assert.Equal(t, 3, lc)
	assert.True(t, r.IsVector())
}

func TestRangeUnparsedFormula(t *testing.T) {
	r := FormulaRange("=MyNamedRange")
	assert.Equal(t, "MyNamedRange", r.Formula())
	_, _, _, _, _, ok := r.Bounds()
	assert.False(t, ok)
	assert.False(t, r.IsVector())
	assert.False(t, r.Empty())

	var nilRange *Range
	assert.True(t, nilRange.Empty())
	assert.Equal(t, "", nilRange.Formula())
}

func TestRangeCache(t *testing.T) {
	r := NewRange("Sheet1", 0, 0, 2, 0)
	r.SetCache([]Point{{Number: 1}, {NoData: true}, {Number: 3}})
	assert.False(t, r.HasStringCache())
	assert.Len(t, r.Cache(), 3)

	r.SetCache([]Point{{String: "a", IsString: true}})
	assert.True(t, r.HasStringCache())

	// a new reference drops the stale cache
	r.SetCells("Sheet1", 0, 1, 2, 1)
	assert.Nil(t, r.Cache())
	assert.False(t, r.HasStringCache())
}
