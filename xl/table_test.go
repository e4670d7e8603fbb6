package xl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableXML(t *testing.T, w *Worksheet, i int) string {
	t.Helper()
	return assemble(t, func(b *bytes.Buffer) error { return w.AssembleTable(i, b) })
}

func TestDefaultTable(t *testing.T) {
	w, _ := newSheet(t, nil)
	tbl, err := w.AddTable(2, 1, 5, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "B3:D6", tbl.Ref())

	assert.Equal(t, xmlDecl+
		`<table xmlns="`+ooxml.NSMain+`" id="1" name="Table1" displayName="Table1" ref="B3:D6" totalsRowShown="0">`+
		`<autoFilter ref="B3:D6"/>`+
		`<tableColumns count="3">`+
		`<tableColumn id="1" name="Column1"/><tableColumn id="2" name="Column2"/><tableColumn id="3" name="Column3"/>`+
		`</tableColumns>`+
		`<tableStyleInfo name="TableStyleMedium9" showFirstColumn="0" showLastColumn="0" showRowStripes="1" showColumnStripes="0"/>`+
		`</table>`, tableXML(t, w, 0))

	c, ok := w.Cell(2, 2)
	require.True(t, ok)
	assert.Equal(t, "Column2", c.Text())
	_, ok = w.Cell(3, 1)
	assert.False(t, ok)

	s := sheetXML(t, w)
	assert.Contains(t, s, `<tableParts count="1"><tablePart r:id="rId1"/></tableParts></worksheet>`)
	assert.Contains(t, sheetRelsXML(t, w), `<Relationship Id="rId1" Type="`+ooxml.RelTable+`" Target="../tables/table1.xml"/>`)
}

func TestTableTotalRow(t *testing.T) {
	w, _ := newSheet(t, nil)
	_, err := w.AddTable(0, 0, 4, 1, &TableOptions{
		Name:     "Sales",
		TotalRow: true,
		Columns: []*TableColumn{
			{Header: "Item", TotalString: "Total"},
			{Header: "Cost", TotalFunction: TotalSum, TotalValue: 42, Format: Style{XF: 3, DXF: 1}},
		},
	})
	require.NoError(t, err)

	s := tableXML(t, w, 0)
	assert.Contains(t, s, `name="Sales" displayName="Sales" ref="A1:B5" totalsRowCount="1">`)
	assert.Contains(t, s, `<autoFilter ref="A1:B4"/>`)
	assert.Contains(t, s, `<tableColumn id="1" name="Item" totalsRowLabel="Total"/>`)
	assert.Contains(t, s, `<tableColumn id="2" name="Cost" totalsRowFunction="sum" dataDxfId="1"/>`)

	d := sheetData(t, w)
	assert.Contains(t, d, `<c r="B5" s="3"><f>SUBTOTAL(109,[Cost])</f><v>42</v></c>`)
	c, ok := w.Cell(4, 0)
	require.True(t, ok)
	assert.Equal(t, "Total", c.Text())
}

func TestTableCalculatedColumn(t *testing.T) {
	w, _ := newSheet(t, nil)
	_, err := w.AddTable(0, 0, 2, 2, &TableOptions{
		Columns: []*TableColumn{
			{Header: "Low"},
			{Header: "High"},
			{Header: "Sum", Formula: "=SUM(Table1[@[Low]:[High]])"},
		},
	})
	require.NoError(t, err)

	s := tableXML(t, w, 0)
	assert.Contains(t, s, `<tableColumn id="3" name="Sum"><calculatedColumnFormula>SUM(Table1[[#This Row],[Low]:[High]])</calculatedColumnFormula></tableColumn>`)

	d := sheetData(t, w)
	assert.Contains(t, d, `<c r="C2"><f>SUM(Table1[[#This Row],[Low]:[High]])</f><v>0</v></c>`)
	assert.Contains(t, d, `<c r="C3"><f>SUM(Table1[[#This Row],[Low]:[High]])</f><v>0</v></c>`)
}

func TestTableOptions(t *testing.T) {
	w, _ := newSheet(t, nil)
	_, err := w.AddTable(0, 0, 3, 1, &TableOptions{
		NoHeaderRow:   true,
		NoBandedRows:  true,
		BandedColumns: true,
		FirstColumn:   true,
		StyleType:     TableStyleLight,
		StyleNumber:   11,
	})
	require.NoError(t, err)
	_, err = w.AddTable(0, 3, 3, 4, &TableOptions{NoAutofilter: true, StyleType: TableStyleNone})
	require.NoError(t, err)

	s := tableXML(t, w, 0)
	assert.Contains(t, s, `ref="A1:B4" headerRowCount="0" totalsRowShown="0"><tableColumns`)
	assert.Contains(t, s, `<tableStyleInfo name="TableStyleLight11" showFirstColumn="1" showLastColumn="0" showRowStripes="0" showColumnStripes="1"/>`)
	_, ok := w.Cell(0, 0)
	assert.False(t, ok)

	s = tableXML(t, w, 1)
	assert.Contains(t, s, `id="2" name="Table2"`)
	assert.NotContains(t, s, `<autoFilter`)
	assert.Contains(t, s, `<tableStyleInfo showFirstColumn="0"`)
}

func TestTableTotalHeaderEscape(t *testing.T) {
	w, _ := newSheet(t, nil)
	_, err := w.AddTable(0, 0, 2, 0, &TableOptions{
		TotalRow: true,
		Columns:  []*TableColumn{{Header: "Q#1 [net]", TotalFunction: TotalCount}},
	})
	require.NoError(t, err)
	assert.Contains(t, sheetData(t, w), `<f>SUBTOTAL(103,[Q'#1 '[net']])</f>`)
}

func TestTableErrors(t *testing.T) {
	w, _ := newSheet(t, nil)
	_, err := w.AddTable(0, 0, 5, 2, nil)
	require.NoError(t, err)
	require.NoError(t, w.MergeRange(10, 0, 10, 2, "m", nil))

	_, err = w.AddTable(5, 2, 8, 4, nil)
	assert.True(t, ooxml.ErrParameterValidation.Is(err), "overlaps a table")
	_, err = w.AddTable(9, 0, 12, 2, nil)
	assert.True(t, ooxml.ErrParameterValidation.Is(err), "overlaps a merge")
	_, err = w.AddTable(20, 0, 20, 2, nil)
	assert.True(t, ooxml.ErrParameterValidation.Is(err), "header only")

	for _, name := range []string{"A1", "xfd100", "R1C1", "c", "1st", "has space"} {
		_, err = w.AddTable(30, 0, 32, 1, &TableOptions{Name: name})
		assert.True(t, ooxml.ErrParameterValidation.Is(err), name)
	}
	_, err = w.AddTable(30, 0, 32, 1, &TableOptions{Name: strings.Repeat("n", 256)})
	assert.True(t, ooxml.Err255StringLengthExceeded.Is(err))

	_, err = w.AddTable(30, 0, 32, 1, &TableOptions{Columns: []*TableColumn{{Header: "Größe"}, {Header: "GRÖSSE"}}})
	assert.True(t, ooxml.ErrParameterValidation.Is(err), "headers differ only by case")
	_, err = w.AddTable(30, 0, 32, 1, &TableOptions{Columns: []*TableColumn{{TotalFunction: TotalFunction(42)}}})
	assert.True(t, ooxml.ErrParameterValidation.Is(err))
	_, err = w.AddTable(30, 0, 1<<20, 1, nil)
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(err))

	assert.Len(t, w.Tables(), 1)
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.AssembleTable(1, &bytes.Buffer{})))

	stream, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	_, err = stream.AddTable(0, 0, 2, 2, nil)
	assert.True(t, ooxml.ErrFeatureNotSupported.Is(err))
}
