package xl

import (
	"fmt"
	"io"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// AssembleTable writes the tableN.xml part of the i-th table of the sheet.
func (w *Worksheet) AssembleTable(i int, out io.Writer) error {
	if i < 0 || i >= len(w.tables) {
		return ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("table %d", i))
	}
	t := w.tables[i]
	id := w.tableID(i)
	name := t.Name
	if name == "" {
		name = fmt.Sprintf("Table%d", id)
	}

	x := ooxml.NewDoc(out)
	x.OTag("table")
	x.Attr("xmlns", ooxml.NSMain)
	x.Attr("id", id)
	x.Attr("name", name)
	x.Attr("displayName", name)
	x.Attr("ref", t.Ref())
	if t.opts.NoHeaderRow {
		x.Attr("headerRowCount", 0)
	}
	if t.opts.TotalRow {
		x.Attr("totalsRowCount", 1)
	} else {
		x.Attr("totalsRowShown", 0)
	}

	if !t.opts.NoAutofilter && !t.opts.NoHeaderRow {
		last := t.lastRow
		if t.opts.TotalRow {
			last--
		}
		x.OTag("autoFilter").Attr("ref", coord.RangeToString(t.firstRow, t.firstCol, last, t.lastCol)).CTag()
	}

	x.OTag("tableColumns").Attr("count", len(t.columns))
	for n, tc := range t.columns {
		x.OTag("tableColumn")
		x.Attr("id", n+1)
		x.Attr("name", tc.name)
		if t.opts.TotalRow {
			if tc.function != TotalNone {
				x.Attr("totalsRowFunction", totalFunctions[tc.function].name)
			} else if tc.label != "" {
				x.Attr("totalsRowLabel", tc.label)
			}
		}
		if tc.dxf != nil {
			x.Attr("dataDxfId", tc.dxf.DXFIndex())
		}
		if tc.formula != "" {
			x.Text("calculatedColumnFormula", tc.formula)
		}
		x.CTag()
	}
	x.CTag() // tableColumns

	x.OTag("tableStyleInfo")
	if style := t.styleName(); style != "" {
		x.Attr("name", style)
	}
	x.Attr("showFirstColumn", ooxml.Bool01(t.opts.FirstColumn))
	x.Attr("showLastColumn", ooxml.Bool01(t.opts.LastColumn))
	x.Attr("showRowStripes", ooxml.Bool01(!t.opts.NoBandedRows))
	x.Attr("showColumnStripes", ooxml.Bool01(t.opts.BandedColumns))
	x.CTag()

	x.CTag() // table
	return x.Close("table")
}

func (t *Table) styleName() string {
	switch t.opts.StyleType {
	case TableStyleLight:
		return fmt.Sprintf("TableStyleLight%d", t.opts.StyleNumber)
	case TableStyleMedium:
		return fmt.Sprintf("TableStyleMedium%d", t.opts.StyleNumber)
	case TableStyleDark:
		return fmt.Sprintf("TableStyleDark%d", t.opts.StyleNumber)
	case TableStyleNone:
		return ""
	}
	return "TableStyleMedium9"
}
