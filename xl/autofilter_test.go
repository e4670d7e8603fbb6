package xl

import (
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutofilter(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.Autofilter(50, 3, 0, 0))
	s := sheetXML(t, w)
	assert.Contains(t, s, `<sheetData/><autoFilter ref="A1:D51"/>`)
	assert.NotContains(t, s, `<sheetPr`)
}

func TestFilterRules(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.Autofilter(0, 1, 50, 4))
	require.NoError(t, w.FilterColumn(2, &FilterRule{Criteria: FilterGreaterThan, Value: "10"}))
	require.NoError(t, w.FilterColumn2(1,
		&FilterRule{Criteria: FilterEqual, Value: "East*"},
		&FilterRule{Criteria: FilterNonBlanks}, true))
	require.NoError(t, w.FilterList(4, []string{"April", "", "May"}))
	require.NoError(t, w.FilterColumn(3, &FilterRule{Criteria: FilterBlanks}))

	s := sheetXML(t, w)
	assert.Contains(t, s, `<sheetPr filterMode="1"/>`)
	assert.Contains(t, s, `<autoFilter ref="B1:E51">`+
		`<filterColumn colId="0"><customFilters and="1"><customFilter val="East*"/><customFilter operator="notEqual" val=" "/></customFilters></filterColumn>`+
		`<filterColumn colId="1"><customFilters><customFilter operator="greaterThan" val="10"/></customFilters></filterColumn>`+
		`<filterColumn colId="2"><filters blank="1"/></filterColumn>`+
		`<filterColumn colId="3"><filters blank="1"><filter val="April"/><filter val="May"/></filters></filterColumn>`+
		`</autoFilter>`)
}

func TestFilterReplacesColumn(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.Autofilter(0, 0, 10, 2))
	require.NoError(t, w.FilterList(0, []string{"a"}))
	require.NoError(t, w.FilterColumn(0, &FilterRule{Criteria: FilterLessThan, Value: "3"}))
	assert.Contains(t, sheetXML(t, w),
		`<filterColumn colId="0"><customFilters><customFilter operator="lessThan" val="3"/></customFilters></filterColumn></autoFilter>`)
}

func TestFilterErrors(t *testing.T) {
	w, _ := newSheet(t, nil)
	assert.True(t, ooxml.ErrParameterValidation.Is(w.FilterColumn(0, &FilterRule{Criteria: FilterEqual, Value: "x"})))

	require.NoError(t, w.Autofilter(0, 1, 10, 2))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.FilterColumn(0, &FilterRule{Criteria: FilterEqual, Value: "x"})))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.FilterColumn(1, &FilterRule{})))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.FilterColumn2(1,
		&FilterRule{Criteria: FilterBlanks}, &FilterRule{Criteria: FilterEqual, Value: "x"}, false)))
	assert.True(t, ooxml.ErrNullParameter.Is(w.FilterColumn(1, nil)))
	assert.True(t, ooxml.ErrNullParameter.Is(w.FilterList(1, nil)))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.Autofilter(0, 0, 1<<20, 0)))
}
