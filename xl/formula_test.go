package xl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpandFutureFunctions(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"SUM(A1:A5)", "SUM(A1:A5)"},
		{"STDEV.S(B1:B5)", "_xlfn.STDEV.S(B1:B5)"},
		{"FILTER(A1:A5,B1:B5>2)", "_xlfn._xlws.FILTER(A1:A5,B1:B5>2)"},
		{"SORT(UNIQUE(A1:A9))", "_xlfn._xlws.SORT(_xlfn.UNIQUE(A1:A9))"},
		{`IFS(A1>1,"IFS(")`, `_xlfn.IFS(A1>1,"IFS(")`},
		{"'IFS sheet'!A1+IFS(A1,1)", "'IFS sheet'!A1+_xlfn.IFS(A1,1)"},
		{"_xlfn.XLOOKUP(1,A:A,B:B)", "_xlfn.XLOOKUP(1,A:A,B:B)"},
		{"LET(x,1,x+1)", "_xlfn.LET(x,1,x+1)"},
	} {
		assert.Equal(t, tc.want, expandFutureFunctions(tc.in), tc.in)
	}
}

func TestDateToSerial(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, 1.0, DateToSerial(day(1900, time.January, 1)))
	assert.Equal(t, 59.0, DateToSerial(day(1900, time.February, 28)))
	assert.Equal(t, 61.0, DateToSerial(day(1900, time.March, 1)))
	assert.Equal(t, 45292.0, DateToSerial(day(2024, time.January, 1)))
	assert.Equal(t, 45292.5, DateToSerial(time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0.75, DateToSerial(time.Date(1899, time.December, 31, 18, 0, 0, 0, time.UTC)))

	// the wall clock is used regardless of the location
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, 45292.25, DateToSerial(time.Date(2024, time.January, 1, 6, 0, 0, 0, tokyo)))
}

func TestWriteDateTime(t *testing.T) {
	w, _ := newSheet(t, nil)
	date := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, w.WriteDateTime(0, 0, date, Style{XF: 9}))
	assert.Contains(t, sheetData(t, w), `<c r="A1" s="9"><v>45292.5</v></c>`)
}
