package xl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamingRows(t *testing.T) {
	w, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	require.NoError(t, w.WriteNumber(0, 0, 1, nil))
	require.NoError(t, w.WriteNumber(0, 2, 2, nil))
	require.NoError(t, w.WriteString(1, 0, "x", nil))

	// the current row is still open
	require.NoError(t, w.WriteNumber(1, 1, 3, nil))
	_, ok := w.Cell(0, 0)
	assert.False(t, ok)
	_, ok = w.Cell(1, 1)
	assert.True(t, ok)

	assert.Equal(t, `<sheetData>`+
		`<row r="1"><c r="A1"><v>1</v></c><c r="C1"><v>2</v></c></row>`+
		`<row r="2"><c r="A2" t="inlineStr"><is><t>x</t></is></c><c r="B2"><v>3</v></c></row>`+
		`</sheetData>`, sheetData(t, w))
	assert.Equal(t, "A1:C2", w.Dimension())
}

func TestStreamingOrder(t *testing.T) {
	w, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	require.NoError(t, w.WriteNumber(5, 0, 1, nil))

	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.WriteNumber(4, 0, 1, nil)))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.WriteString(2, 3, "late", nil)))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.SetRow(0, 20, nil, nil)))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.MergeRange(1, 0, 1, 2, "m", nil)))

	// rejected writes leave the used range alone
	assert.Equal(t, "A6", w.Dimension())

	// sheet settings do not care about the row order
	require.NoError(t, w.SetColumn(0, 3, 12, nil, nil))
	require.NoError(t, w.DataValidationCell(0, 0, NewValidation(ValidateAny)))
	require.NoError(t, w.WriteComment(0, 0, "early", nil))
}

func TestStreamingFeatures(t *testing.T) {
	w, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	_, err := w.AddTable(0, 0, 3, 2, nil)
	assert.True(t, ooxml.ErrFeatureNotSupported.Is(err))

	require.NoError(t, w.WriteArrayFormula(0, 0, 1, 1, "{=A5:B6*2}", nil))
	s := sheetData(t, w)
	assert.Contains(t, s, `<c r="A1"><f t="array" ref="A1:B2">A5:B6*2</f><v>0</v></c>`)
	assert.NotContains(t, s, `r="B1"`)
}

func TestStreamingEmptyRows(t *testing.T) {
	w, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	require.NoError(t, w.SetRow(0, 30, nil, nil))
	require.NoError(t, w.SetRow(2, 0, nil, nil))
	require.NoError(t, w.WriteNumber(3, 0, 1, nil))
	assert.Equal(t, `<sheetData>`+
		`<row r="1" ht="30" customHeight="1"/>`+
		`<row r="3" hidden="1"/>`+
		`<row r="4"><c r="A4"><v>1</v></c></row>`+
		`</sheetData>`, sheetData(t, w))
}

func TestStreamingTempFile(t *testing.T) {
	dir := t.TempDir()
	w, _ := newSheet(t, &Options{ConstantMemory: true, TmpDir: dir})
	for r := 0; r < 100; r++ {
		require.NoError(t, w.WriteNumber(r, 0, float64(r), nil))
	}
	files, err := filepath.Glob(filepath.Join(dir, "xlw-rows-*"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	s := sheetData(t, w)
	assert.Contains(t, s, `<row r="1"><c r="A1"><v>0</v></c></row>`)
	assert.Contains(t, s, `<row r="100"><c r="A100"><v>99</v></c></row></sheetData>`)
	assert.Equal(t, s, sheetData(t, w))

	require.NoError(t, w.Close())
	_, err = os.Stat(files[0])
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, w.Close())
}

func TestStreamingMatchesMemory(t *testing.T) {
	write := func(w *Worksheet) {
		require.NoError(t, w.SetRow(0, 20, Style{XF: 1}, nil))
		require.NoError(t, w.WriteNumber(0, 0, 1.5, nil))
		require.NoError(t, w.WriteBoolean(0, 1, true, Style{XF: 2}))
		require.NoError(t, w.WriteFormula(1, 0, "A1*2", nil))
		require.NoError(t, w.WriteBlank(1, 1, Style{XF: 3}))
	}
	mem, _ := newSheet(t, nil)
	stream, _ := newSheet(t, &Options{ConstantMemory: true, UseMemoryStream: true})
	write(mem)
	write(stream)

	// identical apart from the spans hint
	want := `<row r="1" spans="1:2" s="1" customFormat="1" ht="20" customHeight="1"><c r="A1" s="1"><v>1.5</v></c><c r="B1" s="2" t="b"><v>1</v></c></row>`
	assert.Contains(t, sheetData(t, mem), want)
	assert.Contains(t, sheetData(t, stream), `<row r="1" s="1" customFormat="1" ht="20" customHeight="1"><c r="A1" s="1"><v>1.5</v></c><c r="B1" s="2" t="b"><v>1</v></c></row>`)
	assert.Contains(t, sheetData(t, stream), `<row r="2"><c r="A2"><f>A1*2</f><v>0</v></c><c r="B2" s="3"/></row>`)
}
