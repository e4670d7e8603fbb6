package xl

import (
	"strings"

	"github.com/adnsv/go-xlw/ooxml"
)

// Font represents font formatting properties of a rich string run.
// These properties correspond to the SpreadsheetML rPr element.
type Font struct {
	Name          string        // font name ("" = Calibri)
	Size          float64       // font size in points (0 = use default of 11)
	Bold          bool          // bold text
	Italic        bool          // italic text
	Underline     UnderlineType // underline style
	Strikethrough bool          // strikethrough text
	Script        ScriptType    // superscript or subscript
	Color         ooxml.Color   // text colour (ColorNone = theme text colour)
	Family        int           // font family (0 = swiss)
}

// UnderlineType represents the type of underline formatting.
type UnderlineType string

// Underline type constants (ST_UnderlineValues).
const (
	UnderlineNone             UnderlineType = ""                 // no underline (default)
	UnderlineSingle           UnderlineType = "single"           // single underline
	UnderlineDouble           UnderlineType = "double"           // double underline
	UnderlineSingleAccounting UnderlineType = "singleAccounting" // single accounting underline
	UnderlineDoubleAccounting UnderlineType = "doubleAccounting" // double accounting underline
)

// ScriptType raises or lowers text.
type ScriptType int

const (
	ScriptNone ScriptType = iota
	ScriptSuperscript
	ScriptSubscript
)

const defaultFontName = "Calibri"

// IsDefault reports whether no property of f is set. A default font
// leaves its run in the cell's font, like a nil one.
func (f *Font) IsDefault() bool {
	return f.Name == "" && f.Size == 0 && !f.Bold && !f.Italic &&
		f.Underline == UnderlineNone && !f.Strikethrough &&
		f.Script == ScriptNone && f.Color == ooxml.ColorNone && f.Family == 0
}

// writeRPr writes the run properties of a rich string fragment.
func (f *Font) writeRPr(x *ooxml.Doc) {
	x.OTag("rPr")
	if f.Bold {
		x.OTag("b").CTag()
	}
	if f.Italic {
		x.OTag("i").CTag()
	}
	if f.Strikethrough {
		x.OTag("strike").CTag()
	}
	switch f.Underline {
	case UnderlineNone:
	case UnderlineSingle:
		x.OTag("u").CTag()
	default:
		x.Val("u", string(f.Underline))
	}
	switch f.Script {
	case ScriptSuperscript:
		x.Val("vertAlign", "superscript")
	case ScriptSubscript:
		x.Val("vertAlign", "subscript")
	}
	size := f.Size
	if size <= 0 {
		size = 11
	}
	x.Val("sz", ooxml.FormatFloat(size))
	if f.Color.IsSet() {
		x.OTag("color").Attr("rgb", f.Color.ARGB()).CTag()
	} else {
		x.OTag("color").Attr("theme", 1).CTag()
	}
	name := f.Name
	if name == "" {
		name = defaultFontName
	}
	x.Val("rFont", name)
	family := f.Family
	if family == 0 {
		family = 2
	}
	x.IntVal("family", family)
	if strings.EqualFold(name, defaultFontName) {
		x.Val("scheme", "minor")
	}
	x.CTag()
}

// RichRun is one fragment of a rich string. A nil or default Font leaves
// the fragment in the cell's font.
type RichRun struct {
	Font *Font
	Text string
}

// richMarkup renders runs as the <r> sequence stored in <si> or <is>.
func richMarkup(runs []RichRun) (markup, plain string, err error) {
	if len(runs) < 2 {
		return "", "", ooxml.Invalid("a rich string needs at least two runs")
	}
	var b, p strings.Builder
	x := ooxml.NewFragment(&b)
	for i, r := range runs {
		if r.Text == "" {
			return "", "", ooxml.Invalid("rich string run %d is empty", i)
		}
		text := ooxml.EscapeControl(r.Text)
		p.WriteString(r.Text)
		x.OTag("r")
		if r.Font != nil && !r.Font.IsDefault() {
			r.Font.writeRPr(x)
		}
		writeT(x, text)
		x.CTag()
	}
	if err := x.Close("rich string"); err != nil {
		return "", "", err
	}
	return b.String(), p.String(), nil
}

// writeT writes <t>, preserving edge whitespace when present.
func writeT(x *ooxml.Doc, s string) {
	x.OTag("t")
	if ooxml.NeedsPreserve(s) {
		x.Attr("xml:space", "preserve")
	}
	x.String(s)
	x.CTag()
}
