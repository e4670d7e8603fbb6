package xl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"golang.org/x/text/cases"
)

// TableStyleType is the family of the built-in table style.
type TableStyleType int

const (
	TableStyleDefault TableStyleType = iota
	TableStyleLight
	TableStyleMedium
	TableStyleDark
	TableStyleNone
)

// TotalFunction aggregates a column in the total row.
type TotalFunction int

const (
	TotalNone TotalFunction = iota
	TotalAverage
	TotalCountNums
	TotalCount
	TotalMax
	TotalMin
	TotalStdDev
	TotalSum
	TotalVar
)

var totalFunctions = [...]struct {
	name     string
	subtotal int
}{
	{"", 0},
	{"average", 101},
	{"countNums", 102},
	{"count", 103},
	{"max", 104},
	{"min", 105},
	{"stdDev", 107},
	{"sum", 109},
	{"var", 110},
}

// TableColumn configures one column of a table.
type TableColumn struct {
	Header        string
	HeaderFormat  Format
	Formula       string // calculated column, "@" refers to the current row
	Format        Format
	TotalString   string
	TotalFunction TotalFunction
	TotalValue    float64 // cached result of TotalFunction
}

// TableOptions are the optional table settings.
type TableOptions struct {
	Name          string
	NoHeaderRow   bool
	NoAutofilter  bool
	NoBandedRows  bool
	BandedColumns bool
	FirstColumn   bool
	LastColumn    bool
	TotalRow      bool
	StyleType     TableStyleType
	StyleNumber   int
	Columns       []*TableColumn
}

// Table is a worksheet table (a ListObject in Excel terms).
type Table struct {
	Name string
	ID   int // workbook-wide part number, assigned on assembly

	firstRow, firstCol int
	lastRow, lastCol   int
	opts               TableOptions
	columns            []tableColumn
}

type tableColumn struct {
	name     string
	label    string
	function TotalFunction
	formula  string
	dxf      Format
}

var (
	tableNamePattern = regexp.MustCompile(`^[A-Za-z_\\][A-Za-z0-9_.\\]*$`)
	cellLikeName     = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]+$`)
	rcLikeName       = regexp.MustCompile(`^[RrCc]$|^[Rr][0-9]*[Cc][0-9]*$`)
)

func validateTableName(name string) error {
	if err := ooxml.CheckLength("table name", name, ooxml.MaxMediumString); err != nil {
		return err
	}
	if !tableNamePattern.MatchString(name) {
		return ooxml.Invalid("table name %q must start with a letter or underscore and hold only letters, digits, underscores and periods", name)
	}
	if cellLikeName.MatchString(name) || rcLikeName.MatchString(name) {
		return ooxml.Invalid("table name %q looks like a cell reference", name)
	}
	return nil
}

func (t *Table) overlaps(firstRow, firstCol, lastRow, lastCol int) bool {
	return firstRow <= t.lastRow && lastRow >= t.firstRow &&
		firstCol <= t.lastCol && lastCol >= t.firstCol
}

// Ref returns the table range, e.g. "B3:F7".
func (t *Table) Ref() string {
	return coord.RangeToString(t.firstRow, t.firstCol, t.lastRow, t.lastCol)
}

// AddTable turns a range into a table. The header cells, calculated
// columns and the total row are written into the sheet. Tables need the
// whole range in memory and are not available in constant memory mode.
func (w *Worksheet) AddTable(firstRow, firstCol, lastRow, lastCol int, o *TableOptions) (*Table, error) {
	if w.rows.streaming() {
		return nil, ooxml.ErrFeatureNotSupported.New("worksheet tables")
	}
	if o == nil {
		o = &TableOptions{}
	}
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if !coord.Valid(firstRow, firstCol) || !coord.Valid(lastRow, lastCol) {
		return nil, ooxml.ErrIndexOutOfRange.New(coord.RangeToString(firstRow, firstCol, lastRow, lastCol))
	}
	if !o.NoHeaderRow && firstRow == lastRow {
		return nil, ooxml.Invalid("table %s needs a data row below the header", coord.RangeToString(firstRow, firstCol, lastRow, lastCol))
	}
	if o.Name != "" {
		if err := validateTableName(o.Name); err != nil {
			return nil, err
		}
	}
	for _, t := range w.tables {
		if t.overlaps(firstRow, firstCol, lastRow, lastCol) {
			return nil, ooxml.Invalid("table range %s overlaps table %s", coord.RangeToString(firstRow, firstCol, lastRow, lastCol), t.Ref())
		}
	}
	for _, m := range w.merges {
		if m.overlaps(firstRow, firstCol, lastRow, lastCol) {
			return nil, ooxml.Invalid("table range %s overlaps merged range %s", coord.RangeToString(firstRow, firstCol, lastRow, lastCol), m)
		}
	}

	t := &Table{
		Name:     o.Name,
		firstRow: firstRow, firstCol: firstCol,
		lastRow: lastRow, lastCol: lastCol,
		opts: *o,
	}
	t.opts.Columns = nil

	fold := cases.Fold()
	seen := map[string]bool{}
	user := o.Columns
	for i := 0; i <= lastCol-firstCol; i++ {
		tc := tableColumn{name: fmt.Sprintf("Column%d", i+1)}
		var uc *TableColumn
		if i < len(user) && user[i] != nil {
			uc = user[i]
		}
		if uc != nil {
			if uc.Header != "" {
				if err := ooxml.CheckLength("table header", uc.Header, ooxml.MaxMediumString); err != nil {
					return nil, err
				}
				tc.name = uc.Header
			}
			tc.label = uc.TotalString
			tc.function = uc.TotalFunction
			tc.dxf = uc.Format
			if uc.Formula != "" {
				f := strings.TrimPrefix(uc.Formula, "=")
				tc.formula = strings.ReplaceAll(f, "@", "[#This Row],")
			}
			if tc.function < TotalNone || int(tc.function) >= len(totalFunctions) {
				return nil, ooxml.Invalid("unknown total function %d", tc.function)
			}
		}
		key := fold.String(tc.name)
		if seen[key] {
			return nil, ooxml.Invalid("duplicate table header %q", tc.name)
		}
		seen[key] = true
		t.columns = append(t.columns, tc)
	}

	if err := w.writeTableCells(t, user); err != nil {
		return nil, err
	}
	w.widen(firstRow, firstCol, false, false)
	w.widen(lastRow, lastCol, false, false)
	w.tables = append(w.tables, t)
	return t, nil
}

// writeTableCells stores the header row, calculated columns and total row
// in the sheet.
func (w *Worksheet) writeTableCells(t *Table, user []*TableColumn) error {
	dataFirst, dataLast := t.firstRow, t.lastRow
	if !t.opts.NoHeaderRow {
		dataFirst++
	}
	if t.opts.TotalRow {
		dataLast--
	}
	for i, tc := range t.columns {
		col := t.firstCol + i
		var uc *TableColumn
		if i < len(user) {
			uc = user[i]
		}
		if !t.opts.NoHeaderRow {
			var hf Format
			if uc != nil {
				hf = uc.HeaderFormat
			}
			if err := w.WriteString(t.firstRow, col, tc.name, hf); err != nil {
				return err
			}
		}
		if tc.formula != "" {
			for r := dataFirst; r <= dataLast; r++ {
				if err := w.WriteFormula(r, col, tc.formula, tc.dxf); err != nil {
					return err
				}
			}
		}
		if t.opts.TotalRow {
			switch {
			case tc.function != TotalNone:
				formula := fmt.Sprintf("SUBTOTAL(%d,[%s])", totalFunctions[tc.function].subtotal, escapeTableName(tc.name))
				if err := w.WriteFormulaNum(t.lastRow, col, formula, tc.dxf, uc.TotalValue); err != nil {
					return err
				}
			case tc.label != "":
				if err := w.WriteString(t.lastRow, col, tc.label, nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

var tableNameEscaper = strings.NewReplacer("'", "''", "#", "'#", "[", "'[", "]", "']")

func escapeTableName(s string) string {
	return tableNameEscaper.Replace(s)
}

// Tables returns the tables of the sheet in insertion order.
func (w *Worksheet) Tables() []*Table {
	return w.tables
}
