package xl

import (
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezePanes(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		w, _ := newSheet(t, nil)
		require.NoError(t, w.FreezePanes(1, 0))
		assert.Contains(t, sheetXML(t, w), `<sheetView workbookViewId="0">`+
			`<pane ySplit="1" topLeftCell="A2" activePane="bottomLeft" state="frozen"/>`+
			`<selection pane="bottomLeft" activeCell="A2" sqref="A2"/>`+
			`</sheetView>`)
	})
	t.Run("columns", func(t *testing.T) {
		w, _ := newSheet(t, nil)
		require.NoError(t, w.FreezePanes(0, 2))
		assert.Contains(t, sheetXML(t, w),
			`<pane xSplit="2" topLeftCell="C1" activePane="topRight" state="frozen"/>`+
				`<selection pane="topRight" activeCell="C1" sqref="C1"/>`)
	})
	t.Run("both", func(t *testing.T) {
		w, _ := newSheet(t, nil)
		require.NoError(t, w.FreezePanes(1, 1))
		assert.Contains(t, sheetXML(t, w),
			`<pane xSplit="1" ySplit="1" topLeftCell="B2" activePane="bottomRight" state="frozen"/>`+
				`<selection pane="topRight" activeCell="B1" sqref="B1"/>`+
				`<selection pane="bottomLeft" activeCell="A2" sqref="A2"/>`+
				`<selection pane="bottomRight" activeCell="B2" sqref="B2"/>`)
	})
	t.Run("scrolled split", func(t *testing.T) {
		w, _ := newSheet(t, nil)
		require.NoError(t, w.FreezePanesOpt(3, 0, 20, 0, true))
		require.NoError(t, w.SetSelection(24, 1, 24, 1))
		assert.Contains(t, sheetXML(t, w),
			`<pane ySplit="3" topLeftCell="A21" activePane="bottomLeft" state="frozenSplit"/>`+
				`<selection pane="bottomLeft" activeCell="B25" sqref="B25"/>`)
	})
	t.Run("origin", func(t *testing.T) {
		w, _ := newSheet(t, nil)
		require.NoError(t, w.FreezePanes(0, 0))
		assert.Contains(t, sheetXML(t, w), `<sheetViews><sheetView workbookViewId="0"/></sheetViews>`)
	})

	w, _ := newSheet(t, nil)
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.FreezePanes(1<<20, 0)))
}

func TestSplitPanes(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SplitPanes(15, 8.43)
	assert.Contains(t, sheetXML(t, w),
		`<pane xSplit="1350" ySplit="600" topLeftCell="B2" activePane="bottomRight"/>`+
			`<selection pane="topRight"/>`+
			`<selection pane="bottomLeft"/>`+
			`<selection pane="bottomRight" activeCell="B2" sqref="B2"/>`)

	w, _ = newSheet(t, nil)
	w.SplitPanes(30, 0)
	assert.Contains(t, sheetXML(t, w),
		`<pane ySplit="900" topLeftCell="A3" activePane="bottomLeft"/>`+
			`<selection pane="bottomLeft" activeCell="A3" sqref="A3"/>`)
}

func TestSheetViewOptions(t *testing.T) {
	w, hook := newSheet(t, nil)
	w.SetZoom(150)
	w.SetZoom(5)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	w.Gridlines(false, false)
	w.HideZeros()
	w.RightToLeft()
	w.Activate()
	assert.True(t, w.Selected())
	assert.Contains(t, sheetXML(t, w),
		`<sheetView showGridLines="0" showZeros="0" rightToLeft="1" tabSelected="1" zoomScale="150" workbookViewId="0"/>`)

	w.Hide()
	assert.True(t, w.Hidden())
	assert.False(t, w.Active())
	assert.False(t, w.Selected())
}

func TestPageView(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SetZoom(75)
	w.SetPageView()
	assert.Contains(t, sheetXML(t, w), `<sheetView view="pageLayout" workbookViewId="0"/>`)
}

func TestSheetPr(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SetTabColor(ooxml.Color(0xFF0000))
	assert.Contains(t, sheetXML(t, w), `<sheetPr><tabColor rgb="FFFF0000"/></sheetPr><dimension ref="A1"/>`)

	w.OutlineSettings(false, true, true, false)
	w.FitToPages(1, 0)
	assert.Contains(t, sheetXML(t, w),
		`<sheetPr><tabColor rgb="FFFF0000"/>`+
			`<outlinePr summaryBelow="0" summaryRight="0" showOutlineSymbols="0"/>`+
			`<pageSetUpPr fitToPage="1"/></sheetPr>`)
	assert.Contains(t, sheetXML(t, w), `<sheetView showOutlineSymbols="0" workbookViewId="0"/>`)
}

func TestSelection(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.SetSelection(3, 2, 3, 2))
	assert.Contains(t, sheetXML(t, w), `<sheetView workbookViewId="0"><selection activeCell="C4" sqref="C4"/></sheetView>`)

	// the active cell stays where the selection started
	require.NoError(t, w.SetSelection(5, 3, 1, 1))
	assert.Contains(t, sheetXML(t, w), `<selection activeCell="D6" sqref="B2:D6"/>`)

	require.NoError(t, w.SetSelection(0, 0, 0, 0))
	assert.Contains(t, sheetXML(t, w), `<sheetViews><sheetView workbookViewId="0"/></sheetViews>`)

	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.SetSelection(0, 0, 0, 1<<14)))
}

func TestDefaultRow(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SetDefaultRow(20, true)
	assert.Contains(t, sheetXML(t, w), `<sheetFormatPr defaultRowHeight="20" customHeight="1" zeroHeight="1"/>`)
}
