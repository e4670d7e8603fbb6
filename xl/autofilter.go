package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// FilterCriteria is the comparison of an autofilter rule.
type FilterCriteria int

const (
	FilterNone FilterCriteria = iota
	FilterEqual
	FilterNotEqual
	FilterGreaterThan
	FilterLessThan
	FilterGreaterThanOrEqual
	FilterLessThanOrEqual
	FilterBlanks
	FilterNonBlanks
)

var filterOperators = [...]string{
	"", "", "notEqual", "greaterThan", "lessThan",
	"greaterThanOrEqual", "lessThanOrEqual", "", "",
}

// FilterRule is one condition on an autofilter column. Value may be a
// number or a string with * and ? wildcards.
type FilterRule struct {
	Criteria FilterCriteria
	Value    string
}

type filterColumn struct {
	rules  []FilterRule
	and    bool
	list   []string
	blanks bool
}

type autoFilter struct {
	inUse              bool
	firstRow, firstCol int
	lastRow, lastCol   int
	columns            sortedMap[int, *filterColumn]
}

// Autofilter adds filter buttons to the header row of a range. A sheet has
// at most one autofilter; a later call replaces it.
func (w *Worksheet) Autofilter(firstRow, firstCol, lastRow, lastCol int) error {
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if err := w.checkDimensions(firstRow, firstCol, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(lastRow, lastCol, true, true); err != nil {
		return err
	}
	w.filter = autoFilter{
		inUse:    true,
		firstRow: firstRow, firstCol: firstCol,
		lastRow: lastRow, lastCol: lastCol,
	}
	return nil
}

func (w *Worksheet) filterColumn(col int) (*filterColumn, error) {
	if !w.filter.inUse {
		return nil, ooxml.Invalid("filter on column %s without an autofilter", coord.ColToName(col))
	}
	if col < w.filter.firstCol || col > w.filter.lastCol {
		return nil, ooxml.Invalid("column %s is outside the autofilter range", coord.ColToName(col))
	}
	fc := &filterColumn{}
	w.filter.columns.Set(col, fc)
	return fc, nil
}

// FilterColumn sets a single condition on a column of the autofilter.
func (w *Worksheet) FilterColumn(col int, rule *FilterRule) error {
	if rule == nil {
		return ooxml.ErrNullParameter.New("filter rule")
	}
	if rule.Criteria == FilterNone {
		return ooxml.Invalid("filter rule has no criteria")
	}
	fc, err := w.filterColumn(col)
	if err != nil {
		return err
	}
	if rule.Criteria == FilterBlanks {
		fc.blanks = true
		return nil
	}
	fc.rules = []FilterRule{*rule}
	return nil
}

// FilterColumn2 sets two conditions joined with AND or OR.
func (w *Worksheet) FilterColumn2(col int, rule1, rule2 *FilterRule, and bool) error {
	if rule1 == nil || rule2 == nil {
		return ooxml.ErrNullParameter.New("filter rule")
	}
	if rule1.Criteria == FilterNone || rule2.Criteria == FilterNone ||
		rule1.Criteria == FilterBlanks || rule2.Criteria == FilterBlanks {
		return ooxml.Invalid("filter rules need comparison criteria")
	}
	fc, err := w.filterColumn(col)
	if err != nil {
		return err
	}
	fc.rules = []FilterRule{*rule1, *rule2}
	fc.and = and
	return nil
}

// FilterList shows the rows whose column value is one of values. An empty
// string in values also shows blank cells.
func (w *Worksheet) FilterList(col int, values []string) error {
	if len(values) == 0 {
		return ooxml.ErrNullParameter.New("filter list")
	}
	fc, err := w.filterColumn(col)
	if err != nil {
		return err
	}
	for _, v := range values {
		if v == "" {
			fc.blanks = true
		} else {
			fc.list = append(fc.list, v)
		}
	}
	return nil
}

// filterMode reports whether any column of the autofilter has a rule.
func (w *Worksheet) filterMode() bool {
	return w.filter.inUse && w.filter.columns.Len() > 0
}

func (w *Worksheet) writeAutoFilter(x *ooxml.Doc) {
	f := &w.filter
	if !f.inUse {
		return
	}
	x.OTag("autoFilter").Attr("ref", coord.RangeToString(f.firstRow, f.firstCol, f.lastRow, f.lastCol))
	for col, fc := range f.columns.All() {
		x.OTag("filterColumn").Attr("colId", col-f.firstCol)
		switch {
		case len(fc.rules) > 0:
			x.OTag("customFilters")
			if fc.and {
				x.Attr("and", 1)
			}
			for _, r := range fc.rules {
				writeCustomFilter(x, r)
			}
			x.CTag()
		default:
			x.OTag("filters")
			if fc.blanks {
				x.Attr("blank", 1)
			}
			for _, v := range fc.list {
				x.OTag("filter").Attr("val", v).CTag()
			}
			x.CTag()
		}
		x.CTag()
	}
	x.CTag()
}

func writeCustomFilter(x *ooxml.Doc, r FilterRule) {
	x.OTag("customFilter")
	if r.Criteria == FilterNonBlanks {
		x.Attr("operator", "notEqual").Attr("val", " ")
	} else {
		if op := filterOperators[r.Criteria]; op != "" {
			x.Attr("operator", op)
		}
		x.Attr("val", r.Value)
	}
	x.CTag()
}
