package xl

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBlob(t *testing.T, w, h int) []byte {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, image.NewRGBA(image.Rect(0, 0, w, h))))
	return b.Bytes()
}

func drawingXML(t *testing.T, w *Worksheet) string {
	t.Helper()
	return assemble(t, func(b *bytes.Buffer) error { return w.AssembleDrawing(b) })
}

func drawingRelsXML(t *testing.T, w *Worksheet) string {
	t.Helper()
	return assemble(t, func(b *bytes.Buffer) error { return w.AssembleDrawingRels(b) })
}

func testChart(t *testing.T) *chart.Chart {
	t.Helper()
	c, err := chart.New(chart.TypeColumn)
	require.NoError(t, err)
	c.AddSeries("", "=Sheet1!$A$1:$A$5")
	return c
}

func TestInsertImage(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.InsertImage(2, 1, pngBlob(t, 32, 32), nil))
	require.True(t, w.HasDrawing())

	assert.Equal(t, xmlDecl+
		`<xdr:wsDr xmlns:xdr="`+ooxml.NSSheetDrawing+`" xmlns:a="`+ooxml.NSDrawingML+`">`+
		`<xdr:twoCellAnchor editAs="oneCell">`+
		`<xdr:from><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>2</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>`+
		`<xdr:to><xdr:col>1</xdr:col><xdr:colOff>304800</xdr:colOff><xdr:row>3</xdr:row><xdr:rowOff>114300</xdr:rowOff></xdr:to>`+
		`<xdr:pic>`+
		`<xdr:nvPicPr><xdr:cNvPr id="2" name="Picture 1" descr="image.png"/><xdr:cNvPicPr><a:picLocks noChangeAspect="1"/></xdr:cNvPicPr></xdr:nvPicPr>`+
		`<xdr:blipFill><a:blip xmlns:r="`+ooxml.NSRelations+`" r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></xdr:blipFill>`+
		`<xdr:spPr><a:xfrm><a:off x="609600" y="381000"/><a:ext cx="304800" cy="304800"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></xdr:spPr>`+
		`</xdr:pic>`+
		`<xdr:clientData/>`+
		`</xdr:twoCellAnchor>`+
		`</xdr:wsDr>`, drawingXML(t, w))

	assert.Equal(t, xmlDecl+
		`<Relationships xmlns="`+ooxml.NSPackageRels+`">`+
		`<Relationship Id="rId1" Type="`+ooxml.RelImage+`" Target="../media/image1.png"/>`+
		`</Relationships>`, drawingRelsXML(t, w))

	assert.Contains(t, sheetXML(t, w), `<drawing r:id="rId1"/></worksheet>`)
	assert.Contains(t, sheetRelsXML(t, w), `Type="`+ooxml.RelDrawing+`" Target="../drawings/drawing1.xml"`)
}

func TestImageOffsetAndScale(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.InsertImage(0, 0, pngBlob(t, 32, 10), &ImageOptions{
		XOffset: 12, YOffset: 7, XScale: 2, YScale: 2,
		Anchor: DontMoveDontSize, Description: "Logo",
	}))
	s := drawingXML(t, w)
	assert.Contains(t, s, `<xdr:twoCellAnchor editAs="absolute">`+
		`<xdr:from><xdr:col>0</xdr:col><xdr:colOff>114300</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>66675</xdr:rowOff></xdr:from>`+
		`<xdr:to><xdr:col>1</xdr:col><xdr:colOff>114300</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>66675</xdr:rowOff></xdr:to>`)
	assert.Contains(t, s, `descr="Logo"`)
	assert.Contains(t, s, `<a:off x="114300" y="66675"/><a:ext cx="609600" cy="190500"/>`)
}

func TestSharedImages(t *testing.T) {
	w, _ := newSheet(t, nil)
	blob := pngBlob(t, 8, 8)
	require.NoError(t, w.InsertImage(0, 0, blob, nil))
	require.NoError(t, w.InsertImage(5, 0, blob, nil))
	require.NoError(t, w.InsertImage(10, 0, pngBlob(t, 9, 9), nil))

	rels := drawingRelsXML(t, w)
	assert.Contains(t, rels, `<Relationship Id="rId1" Type="`+ooxml.RelImage+`" Target="../media/image1.png"/>`+
		`<Relationship Id="rId2" Type="`+ooxml.RelImage+`" Target="../media/image2.png"/></Relationships>`)

	s := drawingXML(t, w)
	assert.Contains(t, s, `<xdr:cNvPr id="3" name="Picture 2" descr="image.png"/>`)
	assert.Equal(t, 2, bytes.Count([]byte(s), []byte(`r:embed="rId1"`)))
	assert.Len(t, w.Media(), 2)
}

func TestImageURL(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.InsertImage(0, 0, pngBlob(t, 8, 8), &ImageOptions{URL: "https://example.com", Tip: "home"}))
	require.NoError(t, w.InsertImage(4, 0, pngBlob(t, 8, 8), &ImageOptions{URL: "internal:Sheet2!A1"}))

	s := drawingXML(t, w)
	assert.Contains(t, s, `<xdr:cNvPr id="2" name="Picture 1" descr="image.png">`+
		`<a:hlinkClick xmlns:r="`+ooxml.NSRelations+`" r:id="rId1" tooltip="home"/></xdr:cNvPr>`)
	assert.Contains(t, s, `<a:hlinkClick xmlns:r="`+ooxml.NSRelations+`" r:id="rId3"/>`)

	rels := drawingRelsXML(t, w)
	assert.Contains(t, rels, `<Relationship Id="rId1" Type="`+ooxml.RelHyperlink+`" Target="https://example.com" TargetMode="External"/>`)
	assert.Contains(t, rels, `<Relationship Id="rId2" Type="`+ooxml.RelImage+`" Target="../media/image1.png"/>`)
	assert.Contains(t, rels, `<Relationship Id="rId3" Type="`+ooxml.RelHyperlink+`" Target="#Sheet2!A1"/>`)

	assert.Error(t, w.InsertImage(0, 0, pngBlob(t, 8, 8), &ImageOptions{URL: "gopher://x"}))
}

func TestDecorativeImage(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.InsertImage(0, 0, pngBlob(t, 8, 8), &ImageOptions{Decorative: true, Description: "ignored"}))
	s := drawingXML(t, w)
	assert.Contains(t, s, `<xdr:cNvPr id="2" name="Picture 1"><a:extLst>`)
	assert.Contains(t, s, `<a16:creationId xmlns:a16="http://schemas.microsoft.com/office/drawing/2014/main" id="{00000000-0008-0000-0000-000000000002}"/>`)
	assert.Contains(t, s, `<adec:decorative xmlns:adec="http://schemas.microsoft.com/office/drawing/2017/decorative" val="1"/>`)
	assert.NotContains(t, s, `descr=`)
}

func TestImageErrors(t *testing.T) {
	w, _ := newSheet(t, nil)
	assert.True(t, ooxml.ErrNullParameter.Is(w.InsertImage(0, 0, nil, nil)))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.InsertImage(0, 0, []byte("not an image"), nil)))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.InsertImageInfo(0, 0, []byte{1}, ooxml.ImageInfo{Type: "png"}, nil)))
	assert.True(t, ooxml.ErrParameterValidation.Is(w.InsertImage(0, 0, pngBlob(t, 8, 8), &ImageOptions{Anchor: ObjectAnchor(9)})))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.InsertImage(1<<20, 0, pngBlob(t, 8, 8), nil)))
	assert.False(t, w.HasDrawing())
}

func TestBackground(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.SetBackground(pngBlob(t, 8, 8)))
	assert.False(t, w.HasDrawing())
	assert.Contains(t, sheetXML(t, w), `<picture r:id="rId1"/></worksheet>`)
	assert.Contains(t, sheetRelsXML(t, w), `Type="`+ooxml.RelImage+`" Target="../media/image1.png"`)
	assert.Contains(t, w.Media(), "xl/media/image1.png")
}

func TestInsertChart(t *testing.T) {
	w, _ := newSheet(t, nil)
	c := testChart(t)
	require.NoError(t, w.InsertChart(1, 1, c, nil))
	assert.Equal(t, 1, c.ID())
	assert.True(t, c.Embedded())
	assert.Equal(t, []*chart.Chart{c}, w.Charts())

	s := drawingXML(t, w)
	assert.Contains(t, s, `<xdr:twoCellAnchor>`+
		`<xdr:from><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>`+
		`<xdr:to><xdr:col>8</xdr:col><xdr:colOff>304800</xdr:colOff><xdr:row>15</xdr:row><xdr:rowOff>76200</xdr:rowOff></xdr:to>`+
		`<xdr:graphicFrame macro=""><xdr:nvGraphicFramePr><xdr:cNvPr id="2" name="Chart 1"/>`)
	assert.Contains(t, s, `<c:chart xmlns:c="`+ooxml.NSChart+`" xmlns:r="`+ooxml.NSRelations+`" r:id="rId1"/>`)
	assert.Contains(t, drawingRelsXML(t, w), `Type="`+ooxml.RelChart+`" Target="../charts/chart1.xml"`)

	assert.True(t, ooxml.ErrParameterValidation.Is(w.InsertChart(20, 1, c, nil)))
	empty, err := chart.New(chart.TypeLine)
	require.NoError(t, err)
	assert.True(t, ooxml.ErrParameterValidation.Is(w.InsertChart(20, 1, empty, nil)))
	assert.True(t, ooxml.ErrNullParameter.Is(w.InsertChart(20, 1, nil, nil)))
	assert.Len(t, w.Charts(), 1)
}

func TestPositionObject(t *testing.T) {
	w, _ := newSheet(t, nil)
	v := w.positionObject(0, 0, 0, 0, 480, 288, AnchorDefault)
	assert.Equal(t, vertices{
		colTo: 7, xTo: 32,
		rowTo: 14, yTo: 8,
		width: 480, height: 288,
	}, v)

	// negative offsets move the start back
	v = w.positionObject(2, 2, -10, -5, 10, 10, AnchorDefault)
	assert.Equal(t, 1, v.colFrom)
	assert.Equal(t, 54.0, v.xFrom)
	assert.Equal(t, 1, v.rowFrom)
	assert.Equal(t, 15.0, v.yFrom)

	// hidden columns take no room unless the anchor ignores them
	require.NoError(t, w.SetColumn(2, 2, 20, nil, &ColumnOptions{Hidden: true}))
	v = w.positionObject(0, 0, 0, 0, 480, 288, AnchorDefault)
	assert.Equal(t, 8, v.colTo)
	assert.Equal(t, 32.0, v.xTo)
	v = w.positionObject(0, 0, 0, 0, 480, 288, MoveAndSizeAfter)
	assert.Equal(t, 6, v.colTo)
	assert.Equal(t, 15.0, v.xTo)

	// taller rows shift the end row
	require.NoError(t, w.SetRow(3, 30, nil, nil))
	v = w.positionObject(0, 0, 0, 0, 64, 100, AnchorDefault)
	assert.Equal(t, 4, v.rowTo)
	assert.Equal(t, 0.0, v.yTo)
	assert.Equal(t, 0.0, v.yAbs)
}

func TestPositionObjectHiddenBefore(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.SetColumn(0, 0, -1, nil, &ColumnOptions{Hidden: true}))
	require.NoError(t, w.SetRow(0, 0, nil, nil))

	// cells before the object are measured the same way for every anchor
	for _, a := range []ObjectAnchor{AnchorDefault, MoveAndSize, MoveDontSize, DontMoveDontSize, MoveAndSizeAfter} {
		v := w.positionObject(2, 2, 0, 0, 10, 10, a)
		assert.Equal(t, 64.0, v.xAbs, a)
		assert.Equal(t, 20.0, v.yAbs, a)
		assert.Equal(t, 2, v.colFrom, a)
		assert.Equal(t, 2, v.rowFrom, a)

		v = w.positionObject(2, 2, -70, 0, 10, 10, a)
		assert.Equal(t, 0.0, v.xAbs, a)
		assert.Equal(t, 0.0, v.xFrom, a)
	}

	// a hidden column is only sized under MoveAndSizeAfter
	assert.Equal(t, 0, w.sizeCol(0, MoveAndSize))
	assert.Equal(t, DefaultColPixels, w.sizeCol(0, MoveAndSizeAfter))
	assert.Equal(t, 0, w.sizeRow(0, DontMoveDontSize))
	assert.Equal(t, DefaultRowPixels, w.sizeRow(0, MoveAndSizeAfter))

	v := w.positionObject(0, 0, 0, 0, 10, 10, AnchorDefault)
	assert.Equal(t, 1, v.colFrom)
	assert.Equal(t, 1, v.rowFrom)
	v = w.positionObject(0, 0, 0, 0, 10, 10, MoveAndSizeAfter)
	assert.Equal(t, 0, v.colFrom)
	assert.Equal(t, 0, v.rowFrom)
}

func TestSheetRelsOrder(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.WriteComment(0, 5, "note", nil))
	_, err := w.AddTable(9, 2, 12, 4, nil)
	require.NoError(t, err)
	require.NoError(t, w.InsertImage(0, 8, pngBlob(t, 8, 8), nil))
	require.NoError(t, w.WriteURL(0, 0, "https://example.com", nil))

	rels := sheetRelsXML(t, w)
	for i, typ := range []string{ooxml.RelHyperlink, ooxml.RelDrawing, ooxml.RelVMLDrawing, ooxml.RelTable, ooxml.RelComments} {
		assert.Contains(t, rels, `Id="rId`+string(rune('1'+i))+`" Type="`+typ+`"`)
	}
	assert.Contains(t, sheetXML(t, w),
		`<drawing r:id="rId2"/><legacyDrawing r:id="rId3"/><tableParts count="1"><tablePart r:id="rId4"/></tableParts></worksheet>`)
}
