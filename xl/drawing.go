package xl

import (
	"fmt"
	"io"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/adnsv/srw/xml"
)

const (
	nsDecorative = "http://schemas.microsoft.com/office/drawing/2017/decorative"
	nsA16        = "http://schemas.microsoft.com/office/drawing/2014/main"
)

// drawingRels numbers the relationships of the drawing part. Identical
// images share one relationship.
func (w *Worksheet) drawingRels() (*ooxml.Rels, []drawingIDs) {
	rels := &ooxml.Rels{}
	ids := make([]drawingIDs, len(w.objects))
	for i, obj := range w.objects {
		if obj.url != "" {
			ids[i].link = rels.Add(ooxml.RelHyperlink, obj.url, obj.external)
		}
		switch obj.kind {
		case drawingImage:
			target := obj.media.target()
			if id, ok := rels.Find(ooxml.RelImage, target); ok {
				ids[i].target = id
			} else {
				ids[i].target = rels.Add(ooxml.RelImage, target, false)
			}
		case drawingChart:
			ids[i].target = rels.Add(ooxml.RelChart, fmt.Sprintf("../charts/chart%d.xml", obj.chart.ID()), false)
		}
	}
	return rels, ids
}

type drawingIDs struct {
	target string
	link   string
}

// AssembleDrawing writes the drawingN.xml part holding the images and
// charts of the sheet.
func (w *Worksheet) AssembleDrawing(out io.Writer) error {
	_, ids := w.drawingRels()

	x := ooxml.NewDoc(out)
	openDrawing(x)
	for i, obj := range w.objects {
		p := w.positionObjectEMUs(obj.row, obj.col, obj.xOff, obj.yOff, obj.width, obj.height, obj.anchor)
		x.OTag("xdr:twoCellAnchor")
		switch obj.anchor {
		case MoveDontSize:
			x.Attr("editAs", "oneCell")
		case DontMoveDontSize:
			x.Attr("editAs", "absolute")
		}
		writeMarker(x, "xdr:from", p.from)
		writeMarker(x, "xdr:to", p.to)
		switch obj.kind {
		case drawingImage:
			writePicture(x, obj, i+2, i+1, p, ids[i])
		case drawingChart:
			writeGraphicFrame(x, i+2, fmt.Sprintf("Chart %d", i+1), ids[i].target)
		}
		x.OTag("xdr:clientData").CTag()
		x.CTag() // twoCellAnchor
	}
	x.CTag() // wsDr
	return x.Close("drawing")
}

// AssembleDrawingRels writes the _rels/drawingN.xml.rels part.
func (w *Worksheet) AssembleDrawingRels(out io.Writer) error {
	rels, _ := w.drawingRels()
	return rels.WriteTo(out)
}

func openDrawing(x *ooxml.Doc) {
	x.OTag("xdr:wsDr")
	x.Attr("xmlns:xdr", ooxml.NSSheetDrawing)
	x.Attr("xmlns:a", ooxml.NSDrawingML)
}

func writeMarker(x *ooxml.Doc, tag xml.NameString, a anchorPoint) {
	x.OTag(tag)
	x.OTag("xdr:col").Write(a.col).CTag()
	x.OTag("xdr:colOff").Write(a.colOff).CTag()
	x.OTag("xdr:row").Write(a.row).CTag()
	x.OTag("xdr:rowOff").Write(a.rowOff).CTag()
	x.CTag()
}

func writePicture(x *ooxml.Doc, obj *drawingObject, id, n int, p emuPlacement, ids drawingIDs) {
	x.OTag("xdr:pic")
	x.OTag("xdr:nvPicPr")
	x.OTag("xdr:cNvPr").Attr("id", id).Attr("name", fmt.Sprintf("Picture %d", n))
	if obj.description != "" && !obj.decorative {
		x.Attr("descr", obj.description)
	}
	if ids.link != "" {
		x.OTag("a:hlinkClick")
		x.Attr("xmlns:r", ooxml.NSRelations)
		x.Attr("r:id", ids.link)
		if obj.tip != "" {
			x.Attr("tooltip", obj.tip)
		}
		x.CTag()
	}
	if obj.decorative {
		x.OTag("a:extLst")
		x.OTag("a:ext").Attr("uri", "{FF2B5EF4-FFF2-40B4-BE49-F238E27FC236}")
		x.OTag("a16:creationId").Attr("xmlns:a16", nsA16).
			Attr("id", fmt.Sprintf("{00000000-0008-0000-0000-%012X}", id)).CTag()
		x.CTag()
		x.OTag("a:ext").Attr("uri", "{C183D7F6-B498-43B3-948B-1728B52AA6E4}")
		x.OTag("adec:decorative").Attr("xmlns:adec", nsDecorative).Attr("val", 1).CTag()
		x.CTag()
		x.CTag() // extLst
	}
	x.CTag() // cNvPr
	x.OTag("xdr:cNvPicPr")
	x.OTag("a:picLocks").Attr("noChangeAspect", 1).CTag()
	x.CTag()
	x.CTag() // nvPicPr

	x.OTag("xdr:blipFill")
	x.OTag("a:blip").Attr("xmlns:r", ooxml.NSRelations).Attr("r:embed", ids.target).CTag()
	x.OTag("a:stretch")
	x.OTag("a:fillRect").CTag()
	x.CTag()
	x.CTag() // blipFill

	x.OTag("xdr:spPr")
	x.OTag("a:xfrm")
	x.OTag("a:off").Attr("x", p.xAbs).Attr("y", p.yAbs).CTag()
	x.OTag("a:ext").Attr("cx", p.width).Attr("cy", p.height).CTag()
	x.CTag()
	x.OTag("a:prstGeom").Attr("prst", "rect")
	x.OTag("a:avLst").CTag()
	x.CTag()
	x.CTag() // spPr
	x.CTag() // pic
}

func writeGraphicFrame(x *ooxml.Doc, id int, name, rid string) {
	x.OTag("xdr:graphicFrame").Attr("macro", "")
	x.OTag("xdr:nvGraphicFramePr")
	x.OTag("xdr:cNvPr").Attr("id", id).Attr("name", name).CTag()
	x.OTag("xdr:cNvGraphicFramePr")
	x.OTag("a:graphicFrameLocks").Attr("noGrp", 1).CTag()
	x.CTag()
	x.CTag() // nvGraphicFramePr
	x.OTag("xdr:xfrm")
	x.OTag("a:off").Attr("x", 0).Attr("y", 0).CTag()
	x.OTag("a:ext").Attr("cx", 0).Attr("cy", 0).CTag()
	x.CTag()
	x.OTag("a:graphic")
	x.OTag("a:graphicData").Attr("uri", ooxml.NSChart)
	x.OTag("c:chart")
	x.Attr("xmlns:c", ooxml.NSChart)
	x.Attr("xmlns:r", ooxml.NSRelations)
	x.Attr("r:id", rid)
	x.CTag()
	x.CTag() // graphicData
	x.CTag() // graphic
	x.CTag() // graphicFrame
}

// Chartsheet charts fill the page from the origin.
const (
	chartsheetWidthEMU  = 9308969
	chartsheetHeightEMU = 6078325
)

// writeAbsoluteChart writes the drawing of a chartsheet: one chart in an
// absolute anchor.
func writeAbsoluteChart(out io.Writer, rid string) error {
	x := ooxml.NewDoc(out)
	openDrawing(x)
	x.OTag("xdr:absoluteAnchor")
	x.OTag("xdr:pos").Attr("x", 0).Attr("y", 0).CTag()
	x.OTag("xdr:ext").Attr("cx", chartsheetWidthEMU).Attr("cy", chartsheetHeightEMU).CTag()
	writeGraphicFrame(x, 2, "Chart 1", rid)
	x.OTag("xdr:clientData").CTag()
	x.CTag() // absoluteAnchor
	x.CTag() // wsDr
	return x.Close("drawing")
}
