package xl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartsheet(t *testing.T) (*Chartsheet, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	cs, err := NewChartsheet("Chart1", logger)
	require.NoError(t, err)
	require.NoError(t, cs.SetChart(testChart(t)))
	return cs, hook
}

func TestChartsheet(t *testing.T) {
	cs, _ := newChartsheet(t)
	assert.Equal(t, "Chart1", cs.Name())
	assert.Equal(t, 1, cs.Chart().ID())
	assert.False(t, cs.Chart().Embedded())

	assert.Equal(t, xmlDecl+
		`<chartsheet xmlns="`+ooxml.NSMain+`" xmlns:r="`+ooxml.NSRelations+`">`+
		`<sheetPr/>`+
		`<sheetViews><sheetView zoomToFit="1" workbookViewId="0"/></sheetViews>`+
		`<pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/>`+
		`<pageSetup orientation="landscape"/>`+
		`<drawing r:id="rId1"/>`+
		`</chartsheet>`,
		assemble(t, func(b *bytes.Buffer) error { return cs.Assemble(b) }))

	assert.Equal(t, xmlDecl+
		`<Relationships xmlns="`+ooxml.NSPackageRels+`">`+
		`<Relationship Id="rId1" Type="`+ooxml.RelDrawing+`" Target="../drawings/drawing1.xml"/>`+
		`</Relationships>`,
		assemble(t, func(b *bytes.Buffer) error { return cs.AssembleRels(b) }))

	d := assemble(t, func(b *bytes.Buffer) error { return cs.AssembleDrawing(b) })
	assert.Contains(t, d, `<xdr:absoluteAnchor><xdr:pos x="0" y="0"/><xdr:ext cx="9308969" cy="6078325"/>`)
	assert.Contains(t, d, `<xdr:cNvPr id="2" name="Chart 1"/>`)
	assert.Contains(t, d, `<xdr:clientData/></xdr:absoluteAnchor></xdr:wsDr>`)

	assert.Contains(t,
		assemble(t, func(b *bytes.Buffer) error { return cs.AssembleDrawingRels(b) }),
		`<Relationship Id="rId1" Type="`+ooxml.RelChart+`" Target="../charts/chart1.xml"/>`)
}

func TestChartsheetSettings(t *testing.T) {
	cs, hook := newChartsheet(t)
	cs.SetPortrait()
	cs.SetPaper(9)
	cs.SetMargins(0.5, -1, -1, 1)
	require.NoError(t, cs.SetHeader("&CQuarterly & more"))
	require.NoError(t, cs.SetFooter("&P"))
	cs.SetZoom(80)
	cs.SetZoom(500)
	cs.SetTabColor(ooxml.Color(0xFF0000))
	cs.Activate()
	require.NoError(t, cs.Protect("password", nil))

	assert.Len(t, hook.AllEntries(), 1)
	assert.True(t, cs.Active())

	s := assemble(t, func(b *bytes.Buffer) error { return cs.Assemble(b) })
	assert.Contains(t, s, `<sheetPr><tabColor rgb="FFFF0000"/></sheetPr>`)
	assert.Contains(t, s, `<sheetView tabSelected="1" zoomScale="80" zoomToFit="1" workbookViewId="0"/>`)
	assert.Contains(t, s, `<sheetProtection password="83AF" content="1" objects="1"/>`)
	assert.Contains(t, s, `<pageMargins left="0.5" right="0.7" top="0.75" bottom="1" header="0.3" footer="0.3"/>`)
	assert.Contains(t, s, `<pageSetup paperSize="9" orientation="portrait"/>`)
	assert.Contains(t, s, `<headerFooter><oddHeader>&amp;CQuarterly &amp; more</oddHeader><oddFooter>&amp;P</oddFooter></headerFooter>`)

	cs.Hide()
	assert.True(t, cs.Hidden())
	assert.False(t, cs.Active())
}

func TestChartsheetProtectUnlocked(t *testing.T) {
	cs, _ := newChartsheet(t)
	require.NoError(t, cs.Protect("", &ProtectOptions{Content: true}))
	s := assemble(t, func(b *bytes.Buffer) error { return cs.Assemble(b) })
	assert.Contains(t, s, `<sheetProtection objects="1"/>`)
}

func TestChartsheetErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cs, err := NewChartsheet("Chart1", logger)
	require.NoError(t, err)

	assert.True(t, ooxml.ErrNullParameter.Is(cs.SetChart(nil)))
	assert.True(t, ooxml.ErrNullParameter.Is(cs.Assemble(&bytes.Buffer{})))
	assert.True(t, ooxml.ErrNullParameter.Is(cs.AssembleDrawingRels(&bytes.Buffer{})))

	empty, err := chart.New(chart.TypeLine)
	require.NoError(t, err)
	assert.True(t, ooxml.ErrParameterValidation.Is(cs.SetChart(empty)), "chart without series")

	c := testChart(t)
	require.NoError(t, cs.SetChart(c))
	other, err := NewChartsheet("Chart2", logger)
	require.NoError(t, err)
	assert.True(t, ooxml.ErrParameterValidation.Is(other.SetChart(c)), "chart already placed")

	_, err = NewChartsheet("bad/name", logger)
	assert.True(t, ooxml.ErrParameterValidation.Is(err))
	assert.True(t, ooxml.Err255StringLengthExceeded.Is(cs.SetHeader(strings.Repeat("h", 256))))
}
