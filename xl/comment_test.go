package xl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentsXML(t *testing.T, w *Worksheet) string {
	t.Helper()
	return assemble(t, func(b *bytes.Buffer) error { return w.AssembleComments(b) })
}

func vmlXML(t *testing.T, w *Worksheet) string {
	t.Helper()
	return assemble(t, func(b *bytes.Buffer) error { return w.AssembleVML(b) })
}

func TestComments(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SetCommentAuthor("Ann")
	require.NoError(t, w.WriteComment(2, 1, "Hello", nil))
	require.True(t, w.HasComments())

	assert.Equal(t, xmlDecl+
		`<comments xmlns="`+ooxml.NSMain+`">`+
		`<authors><author>Ann</author></authors>`+
		`<commentList>`+
		`<comment ref="B3" authorId="0"><text><r>`+
		`<rPr><sz val="8"/><color indexed="81"/><rFont val="Tahoma"/><family val="2"/></rPr>`+
		`<t>Hello</t>`+
		`</r></text></comment>`+
		`</commentList></comments>`, commentsXML(t, w))

	s := sheetXML(t, w)
	assert.Contains(t, s, `<legacyDrawing r:id="rId1"/></worksheet>`)
	rels := sheetRelsXML(t, w)
	assert.Contains(t, rels, `<Relationship Id="rId1" Type="`+ooxml.RelVMLDrawing+`" Target="../drawings/vmlDrawing1.vml"/>`)
	assert.Contains(t, rels, `<Relationship Id="rId2" Type="`+ooxml.RelComments+`" Target="../comments1.xml"/>`)
}

func TestCommentAuthors(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.SetCommentAuthor("Ann")
	require.NoError(t, w.WriteComment(4, 0, "second", nil))
	require.NoError(t, w.WriteComment(0, 0, " first ", &CommentOptions{Author: "Bob", FontName: "Arial", FontSize: 10, FontFamily: 3}))
	require.NoError(t, w.WriteComment(2, 0, "third", &CommentOptions{Author: "Ann"}))

	s := commentsXML(t, w)
	assert.Contains(t, s, `<authors><author>Bob</author><author>Ann</author></authors>`)
	assert.Contains(t, s, `<comment ref="A1" authorId="0"><text><r><rPr><sz val="10"/><color indexed="81"/><rFont val="Arial"/><family val="3"/></rPr><t xml:space="preserve"> first </t></r></text></comment>`)
	assert.Contains(t, s, `<comment ref="A3" authorId="1">`)
	assert.Contains(t, s, `<comment ref="A5" authorId="1">`)
	assert.Less(t, strings.Index(s, `ref="A3"`), strings.Index(s, `ref="A5"`))
}

func TestCommentVML(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.WriteComment(2, 1, "Hello", nil))
	require.NoError(t, w.WriteComment(0, 0, "Top", &CommentOptions{Visible: CommentVisible, Color: ooxml.Color(0xCCFFCC)}))

	s := vmlXML(t, w)
	assert.True(t, strings.HasPrefix(s, `<xml xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel">`))
	assert.Contains(t, s, `<o:shapelayout v:ext="edit"><o:idmap v:ext="edit" data="1"/></o:shapelayout>`)
	assert.Contains(t, s, `<v:shapetype id="_x0000_t202" coordsize="21600,21600" o:spt="202" path="m,l,21600r21600,l21600,xe">`)

	// shapes follow the cell order
	a1 := strings.Index(s, `id="_x0000_s1025"`)
	b3 := strings.Index(s, `id="_x0000_s1026"`)
	require.GreaterOrEqual(t, a1, 0)
	require.Greater(t, b3, a1)

	assert.Contains(t, s, `style="position:absolute;margin-left:59.25pt;margin-top:1.5pt;width:96pt;height:55.5pt;z-index:1;visibility:visible" fillcolor="#ccffcc"`)
	assert.Contains(t, s, `style="position:absolute;margin-left:107.25pt;margin-top:22.5pt;width:96pt;height:55.5pt;z-index:2;visibility:hidden" fillcolor="#ffffe1"`)
	assert.Contains(t, s, `<x:Anchor>2, 15, 1, 10, 4, 15, 5, 4</x:Anchor><x:AutoFill>False</x:AutoFill><x:Row>2</x:Row><x:Column>1</x:Column></x:ClientData>`)
	assert.Contains(t, s, `<x:Row>0</x:Row><x:Column>0</x:Column><x:Visible/></x:ClientData>`)
}

func TestShowComments(t *testing.T) {
	w, _ := newSheet(t, nil)
	w.ShowComments()
	require.NoError(t, w.WriteComment(1, 1, "shown", nil))
	require.NoError(t, w.WriteComment(3, 1, "kept hidden", &CommentOptions{Visible: CommentHidden}))
	s := vmlXML(t, w)
	assert.Equal(t, 1, strings.Count(s, "visibility:visible"))
	assert.Equal(t, 1, strings.Count(s, "visibility:hidden"))
	assert.Equal(t, 1, strings.Count(s, "<x:Visible/>"))
}

func TestCommentPlacement(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.WriteComment(0, 16383, "edge", nil))
	require.NoError(t, w.WriteComment(5, 5, "moved", &CommentOptions{Start: "D2", XOffset: 4, YOffset: 3, Width: 200, YScale: 2}))

	s := vmlXML(t, w)
	// top row and last column pull the box back in
	assert.Contains(t, s, `<x:Anchor>16380, 49, 0, 2, 16382, 49, 3, 16</x:Anchor>`)
	assert.Contains(t, s, `margin-left:147pt;margin-top:17.25pt;width:150pt;height:111pt`)

	assert.Error(t, w.WriteComment(0, 0, "x", &CommentOptions{Start: "not a cell"}))
	assert.True(t, ooxml.ErrMaxStringLengthExceeded.Is(w.WriteComment(0, 0, strings.Repeat("x", 32768), nil)))
	assert.True(t, ooxml.ErrIndexOutOfRange.Is(w.WriteComment(1<<20, 0, "x", nil)))
}
