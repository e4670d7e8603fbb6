package xl

import (
	"io"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// AssembleComments writes the commentsN.xml part of the sheet.
func (w *Worksheet) AssembleComments(out io.Writer) error {
	authors := map[string]int{}
	var names []string
	for _, c := range w.comments.All() {
		a := w.commentAuthor(c)
		if _, ok := authors[a]; !ok {
			authors[a] = len(names)
			names = append(names, a)
		}
	}

	x := ooxml.NewDoc(out)
	x.OTag("comments").Attr("xmlns", ooxml.NSMain)

	x.OTag("authors")
	for _, a := range names {
		x.Text("author", a)
	}
	x.CTag()

	x.OTag("commentList")
	for _, c := range w.comments.All() {
		x.OTag("comment")
		x.Attr("ref", coord.CellToString(c.row, c.col))
		x.Attr("authorId", authors[w.commentAuthor(c)])
		x.OTag("text")
		x.OTag("r")
		x.OTag("rPr")
		x.OTag("sz").Attr("val", c.fontSize).CTag()
		x.OTag("color").Attr("indexed", 81).CTag()
		x.Val("rFont", c.font)
		x.IntVal("family", c.family)
		x.CTag() // rPr
		writeT(x, c.text)
		x.CTag() // r
		x.CTag() // text
		x.CTag() // comment
	}
	x.CTag() // commentList

	x.CTag() // comments
	return x.Close("comments")
}
