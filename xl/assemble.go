package xl

import (
	"fmt"
	"io"

	"github.com/adnsv/go-xlw/ooxml"
)

// sheetRels holds the relationship ids of one assembly pass.
type sheetRels struct {
	rels       ooxml.Rels
	links      map[cellKey]string
	drawing    string
	vml        string
	background string
	tables     []string
}

// buildRels numbers the relationships of the sheet part. The numbering
// only depends on the sheet content, so the part and its rels file agree
// and repeated passes give the same ids.
func (w *Worksheet) buildRels() *sheetRels {
	sr := &sheetRels{links: map[cellKey]string{}}
	for k, h := range w.hyperlinks.All() {
		if h.external {
			sr.links[k] = sr.rels.Add(ooxml.RelHyperlink, h.target, true)
		}
	}
	if w.HasDrawing() {
		sr.drawing = sr.rels.Add(ooxml.RelDrawing, fmt.Sprintf("../drawings/drawing%d.xml", max(w.drawingID, 1)), false)
	}
	if w.HasComments() {
		sr.vml = sr.rels.Add(ooxml.RelVMLDrawing, fmt.Sprintf("../drawings/vmlDrawing%d.vml", max(w.commentID, 1)), false)
	}
	if w.background != nil {
		sr.background = sr.rels.Add(ooxml.RelImage, w.background.target(), false)
	}
	for i := range w.tables {
		sr.tables = append(sr.tables, sr.rels.Add(ooxml.RelTable, fmt.Sprintf("../tables/table%d.xml", w.tableID(i)), false))
	}
	if w.HasComments() {
		sr.rels.Add(ooxml.RelComments, fmt.Sprintf("../comments%d.xml", max(w.commentID, 1)), false)
	}
	return sr
}

func (w *Worksheet) tableID(i int) int {
	if id := w.tables[i].ID; id > 0 {
		return id
	}
	return w.tableBase + i + 1
}

// HasRels reports whether the sheet part needs a relationship file.
func (w *Worksheet) HasRels() bool {
	return w.buildRels().rels.Len() > 0
}

// AssembleRels writes the _rels/sheetN.xml.rels part.
func (w *Worksheet) AssembleRels(out io.Writer) error {
	return w.buildRels().rels.WriteTo(out)
}

// Assemble writes the sheetN.xml part. A sheet can be assembled any number
// of times; unchanged content gives identical bytes.
func (w *Worksheet) Assemble(out io.Writer) error {
	sr := w.buildRels()

	x := ooxml.NewDoc(out)
	x.OTag("worksheet")
	x.Attr("xmlns", ooxml.NSMain)
	x.Attr("xmlns:r", ooxml.NSRelations)

	w.writeSheetPr(x)
	x.OTag("dimension").Attr("ref", w.Dimension()).CTag()
	w.writeSheetViews(x)
	w.writeSheetFormatPr(x)
	w.writeCols(x)

	x.OTag("sheetData")
	if err := w.rows.writeData(x); err != nil {
		return err
	}
	x.CTag()

	writeSheetProtection(x, w.protect)
	w.writeAutoFilter(x)
	w.writeMergeCells(x)
	w.writeConditionalFormats(x)
	w.writeDataValidations(x)
	w.writeHyperlinks(x, sr.links)
	w.writePrintOptions(x)
	writePageMargins(x, &w.page)
	writePageSetup(x, &w.page)
	writeHeaderFooter(x, &w.page)
	w.writeBreaks(x)
	w.writeIgnoredErrors(x)

	if sr.drawing != "" {
		x.OTag("drawing").Attr("r:id", sr.drawing).CTag()
	}
	if sr.vml != "" {
		x.OTag("legacyDrawing").Attr("r:id", sr.vml).CTag()
	}
	if sr.background != "" {
		x.OTag("picture").Attr("r:id", sr.background).CTag()
	}
	if len(sr.tables) > 0 {
		x.OTag("tableParts").Attr("count", len(sr.tables))
		for _, id := range sr.tables {
			x.OTag("tablePart").Attr("r:id", id).CTag()
		}
		x.CTag()
	}

	x.CTag() // worksheet
	if err := x.Close("worksheet"); err != nil {
		return err
	}
	w.log.WithField("bytes", x.Written()).Debug("assembled worksheet")
	return nil
}
