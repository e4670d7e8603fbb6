package xl

import (
	"fmt"
	"strings"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/adnsv/srw/xml"
)

// ProtectOptions list what users may still do on a protected sheet.
type ProtectOptions struct {
	FormatCells         bool
	FormatColumns       bool
	FormatRows          bool
	InsertColumns       bool
	InsertRows          bool
	InsertHyperlinks    bool
	DeleteColumns       bool
	DeleteRows          bool
	Sort                bool
	Autofilter          bool
	PivotTables         bool
	Objects             bool
	Scenarios           bool
	NoSelectLockedCells bool
	NoSelectUnlocked    bool
	NoSheet             bool
	Content             bool
}

type protection struct {
	hash string
	opts ProtectOptions
}

// Protect locks the sheet. An empty password protects without one.
func (w *Worksheet) Protect(password string, o *ProtectOptions) error {
	if err := ooxml.CheckLength("password", password, ooxml.MaxMediumString); err != nil {
		return err
	}
	p := &protection{}
	if o != nil {
		p.opts = *o
	}
	if password != "" {
		p.hash = PasswordHash(password)
	}
	w.protect = p
	return nil
}

// PasswordHash is the legacy 16-bit Excel password verifier as uppercase
// hex.
func PasswordHash(password string) string {
	var hash uint32
	b := []byte(password)
	for i, c := range b {
		v := uint32(c) << (i + 1)
		low := v & 0x7fff
		high := (v & (0x7fff << 15)) >> 15
		hash ^= low | high
	}
	hash ^= uint32(len(b))
	hash ^= 0xCE4B
	return fmt.Sprintf("%X", hash)
}

func writeSheetProtection(x *ooxml.Doc, p *protection) {
	if p == nil {
		return
	}
	o := &p.opts
	x.OTag("sheetProtection")
	if p.hash != "" {
		x.Attr("password", p.hash)
	}
	if !o.NoSheet {
		x.Attr("sheet", 1)
	}
	if o.Content {
		x.Attr("content", 1)
	}
	if !o.Objects {
		x.Attr("objects", 1)
	}
	if !o.Scenarios {
		x.Attr("scenarios", 1)
	}
	if o.FormatCells {
		x.Attr("formatCells", 0)
	}
	if o.FormatColumns {
		x.Attr("formatColumns", 0)
	}
	if o.FormatRows {
		x.Attr("formatRows", 0)
	}
	if o.InsertColumns {
		x.Attr("insertColumns", 0)
	}
	if o.InsertRows {
		x.Attr("insertRows", 0)
	}
	if o.InsertHyperlinks {
		x.Attr("insertHyperlinks", 0)
	}
	if o.DeleteColumns {
		x.Attr("deleteColumns", 0)
	}
	if o.DeleteRows {
		x.Attr("deleteRows", 0)
	}
	if o.NoSelectLockedCells {
		x.Attr("selectLockedCells", 1)
	}
	if o.Sort {
		x.Attr("sort", 0)
	}
	if o.Autofilter {
		x.Attr("autoFilter", 0)
	}
	if o.PivotTables {
		x.Attr("pivotTables", 0)
	}
	if o.NoSelectUnlocked {
		x.Attr("selectUnlockedCells", 1)
	}
	x.CTag()
}

// IgnoreKind is a class of cell warning Excel can be told to suppress.
type IgnoreKind int

const (
	IgnoreNumberStoredAsText IgnoreKind = iota
	IgnoreEvalError
	IgnoreFormulaDiffers
	IgnoreFormulaRange
	IgnoreFormulaUnlocked
	IgnoreEmptyCellReference
	IgnoreListDataValidation
	IgnoreCalculatedColumn
	IgnoreTwoDigitTextYear
	ignoreKinds
)

var ignoreAttrs = [ignoreKinds]xml.NameString{
	"numberStoredAsText",
	"evalError",
	"formula",
	"formulaRange",
	"unlockedFormula",
	"emptyCellReference",
	"listDataValidation",
	"calculatedColumn",
	"twoDigitTextYear",
}

// IgnoreErrors suppresses a warning over a space separated list of ranges,
// e.g. "A1:B5 D7".
func (w *Worksheet) IgnoreErrors(kind IgnoreKind, sqref string) error {
	if kind < 0 || kind >= ignoreKinds {
		return ooxml.Invalid("unknown ignored error kind %d", kind)
	}
	if strings.TrimSpace(sqref) == "" {
		return ooxml.ErrNullParameter.New("ignored error range")
	}
	w.ignored[kind] = append(w.ignored[kind], sqref)
	return nil
}

func (w *Worksheet) writeIgnoredErrors(x *ooxml.Doc) {
	if len(w.ignored) == 0 {
		return
	}
	x.OTag("ignoredErrors")
	for k := IgnoreKind(0); k < ignoreKinds; k++ {
		refs, ok := w.ignored[k]
		if !ok {
			continue
		}
		x.OTag("ignoredError")
		x.Attr("sqref", strings.Join(refs, " "))
		x.Attr(ignoreAttrs[k], 1)
		x.CTag()
	}
	x.CTag()
}
