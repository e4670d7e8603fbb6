package xl

import (
	"fmt"
	"io"
	"strings"

	"github.com/adnsv/go-xlw/ooxml"
)

// AssembleVML writes the vmlDrawingN.vml part that draws the comment boxes.
// VML is legacy markup read by Excel without an XML declaration.
func (w *Worksheet) AssembleVML(out io.Writer) error {
	dataID := max(w.vmlDataID, 1)
	x := ooxml.NewFragment(out)
	x.OTag("xml")
	x.Attr("xmlns:v", ooxml.NSVML)
	x.Attr("xmlns:o", ooxml.NSOffice)
	x.Attr("xmlns:x", ooxml.NSExcel)

	x.OTag("o:shapelayout").Attr("v:ext", "edit")
	x.OTag("o:idmap").Attr("v:ext", "edit").Attr("data", dataID).CTag()
	x.CTag()

	x.OTag("v:shapetype")
	x.Attr("id", "_x0000_t202")
	x.Attr("coordsize", "21600,21600")
	x.Attr("o:spt", 202)
	x.Attr("path", "m,l,21600r21600,l21600,xe")
	x.OTag("v:stroke").Attr("joinstyle", "miter").CTag()
	x.OTag("v:path").Attr("gradientshapeok", "t").Attr("o:connecttype", "rect").CTag()
	x.CTag()

	i := 0
	for _, c := range w.comments.All() {
		i++
		w.writeCommentShape(x, c, 1024*dataID+i, i)
	}

	x.CTag() // xml
	return x.Close("vml drawing")
}

func (w *Worksheet) writeCommentShape(x *ooxml.Doc, c *comment, id, z int) {
	v := w.commentBox(c)
	visible := c.isVisible(w.commentOpts.visible)
	visibility := "hidden"
	if visible {
		visibility = "visible"
	}
	fill := "#ffffe1"
	if c.color.IsSet() {
		fill = "#" + strings.ToLower(c.color.RGB())
	}

	style := fmt.Sprintf("position:absolute;margin-left:%spt;margin-top:%spt;width:%spt;height:%spt;z-index:%d;visibility:%s",
		ptString(v.xAbs), ptString(v.yAbs), ptString(v.width), ptString(v.height), z, visibility)

	x.OTag("v:shape")
	x.Attr("id", fmt.Sprintf("_x0000_s%d", id))
	x.Attr("type", "#_x0000_t202")
	x.Attr("style", style)
	x.Attr("fillcolor", fill)
	x.Attr("o:insetmode", "auto")

	x.OTag("v:fill").Attr("color2", fill).CTag()
	x.OTag("v:shadow").Attr("on", "t").Attr("color", "black").Attr("obscured", "t").CTag()
	x.OTag("v:path").Attr("o:connecttype", "none").CTag()
	x.OTag("v:textbox").Attr("style", "mso-direction-alt:auto")
	x.OTag("div").Attr("style", "text-align:left").String("").CTag()
	x.CTag()

	x.OTag("x:ClientData").Attr("ObjectType", "Note")
	x.OTag("x:MoveWithCells").CTag()
	x.OTag("x:SizeWithCells").CTag()
	x.Text("x:Anchor", fmt.Sprintf("%d, %d, %d, %d, %d, %d, %d, %d",
		v.colFrom, int(v.xFrom), v.rowFrom, int(v.yFrom),
		v.colTo, int(v.xTo), v.rowTo, int(v.yTo)))
	x.Text("x:AutoFill", "False")
	x.Text("x:Row", fmt.Sprint(c.row))
	x.Text("x:Column", fmt.Sprint(c.col))
	if visible {
		x.OTag("x:Visible").CTag()
	}
	x.CTag() // x:ClientData

	x.CTag() // v:shape
}

// ptString converts pixels to points for VML styles.
func ptString(px float64) string {
	return fmt.Sprintf("%.15g", px*0.75)
}
