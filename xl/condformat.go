package xl

import (
	"fmt"
	"strings"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// CondType is the kind of a conditional format rule.
type CondType int

const (
	CondCell CondType = iota
	CondText
	CondTimePeriod
	CondAverage
	CondDuplicate
	CondUnique
	CondTop
	CondBottom
	CondBlanks
	CondNoBlanks
	CondErrors
	CondNoErrors
	CondFormula
	Cond2ColorScale
	Cond3ColorScale
	CondDataBar
	CondIconSet
)

// CondCriteria refines CondCell, CondText, CondTimePeriod and CondAverage
// rules.
type CondCriteria int

const (
	CondEqual CondCriteria = iota
	CondNotEqual
	CondGreaterThan
	CondLessThan
	CondGreaterThanOrEqual
	CondLessThanOrEqual
	CondBetween
	CondNotBetween

	CondTextContaining
	CondTextNotContaining
	CondTextBeginsWith
	CondTextEndsWith

	CondYesterday
	CondToday
	CondTomorrow
	CondLast7Days
	CondLastWeek
	CondThisWeek
	CondNextWeek
	CondLastMonth
	CondThisMonth
	CondNextMonth

	CondAverageAbove
	CondAverageBelow
	CondAverageAboveOrEqual
	CondAverageBelowOrEqual
	CondAverage1StdDevAbove
	CondAverage1StdDevBelow
	CondAverage2StdDevAbove
	CondAverage2StdDevBelow
	CondAverage3StdDevAbove
	CondAverage3StdDevBelow
)

var cellOperators = map[CondCriteria]string{
	CondEqual:              "equal",
	CondNotEqual:           "notEqual",
	CondGreaterThan:        "greaterThan",
	CondLessThan:           "lessThan",
	CondGreaterThanOrEqual: "greaterThanOrEqual",
	CondLessThanOrEqual:    "lessThanOrEqual",
	CondBetween:            "between",
	CondNotBetween:         "notBetween",
}

// time period formulas; %[1]s is the first cell of the range
var timePeriods = map[CondCriteria][2]string{
	CondYesterday: {"yesterday", "FLOOR(%[1]s,1)=TODAY()-1"},
	CondToday:     {"today", "FLOOR(%[1]s,1)=TODAY()"},
	CondTomorrow:  {"tomorrow", "FLOOR(%[1]s,1)=TODAY()+1"},
	CondLast7Days: {"last7Days", "AND(TODAY()-FLOOR(%[1]s,1)<=6,FLOOR(%[1]s,1)<=TODAY())"},
	CondLastWeek:  {"lastWeek", "AND(TODAY()-ROUNDDOWN(%[1]s,0)>=(WEEKDAY(TODAY())),TODAY()-ROUNDDOWN(%[1]s,0)<(WEEKDAY(TODAY())+7))"},
	CondThisWeek:  {"thisWeek", "AND(TODAY()-ROUNDDOWN(%[1]s,0)<=WEEKDAY(TODAY())-1,ROUNDDOWN(%[1]s,0)-TODAY()<=7-WEEKDAY(TODAY()))"},
	CondNextWeek:  {"nextWeek", "AND(ROUNDDOWN(%[1]s,0)-TODAY()>(7-WEEKDAY(TODAY())),ROUNDDOWN(%[1]s,0)-TODAY()<(15-WEEKDAY(TODAY())))"},
	CondLastMonth: {"lastMonth", "AND(MONTH(%[1]s)=MONTH(TODAY())-1,OR(YEAR(%[1]s)=YEAR(TODAY()),AND(MONTH(%[1]s)=1,YEAR(%[1]s)=YEAR(TODAY())-1)))"},
	CondThisMonth: {"thisMonth", "AND(MONTH(%[1]s)=MONTH(TODAY()),YEAR(%[1]s)=YEAR(TODAY()))"},
	CondNextMonth: {"nextMonth", "AND(MONTH(%[1]s)=MONTH(TODAY())+1,OR(YEAR(%[1]s)=YEAR(TODAY()),AND(MONTH(%[1]s)=12,YEAR(%[1]s)=YEAR(TODAY())+1)))"},
}

// CondRuleType is the kind of a colour scale, data bar or icon threshold.
type CondRuleType int

const (
	CondRuleDefault CondRuleType = iota
	CondRuleMinimum
	CondRuleNumber
	CondRulePercent
	CondRulePercentile
	CondRuleFormula
	CondRuleMaximum
)

var cfvoTypes = [...]string{"", "min", "num", "percent", "percentile", "formula", "max"}

// IconStyle is the icon set of a CondIconSet rule.
type IconStyle int

const (
	Icons3TrafficLights IconStyle = iota
	Icons3Arrows
	Icons3ArrowsGray
	Icons3Flags
	Icons3TrafficLightsRimmed
	Icons3Signs
	Icons3Symbols
	Icons3SymbolsUncircled
	Icons4Arrows
	Icons4ArrowsGray
	Icons4RedToBlack
	Icons4Ratings
	Icons4TrafficLights
	Icons5Arrows
	Icons5ArrowsGray
	Icons5Ratings
	Icons5Quarters
)

var iconStyles = [...]struct {
	name  string
	count int
}{
	{"3TrafficLights1", 3}, {"3Arrows", 3}, {"3ArrowsGray", 3}, {"3Flags", 3},
	{"3TrafficLights2", 3}, {"3Signs", 3}, {"3Symbols", 3}, {"3Symbols2", 3},
	{"4Arrows", 4}, {"4ArrowsGray", 4}, {"4RedToBlack", 4}, {"4Rating", 4},
	{"4TrafficLights", 4}, {"5Arrows", 5}, {"5ArrowsGray", 5}, {"5Rating", 5},
	{"5Quarters", 5},
}

// CondFormat describes one conditional format rule.
type CondFormat struct {
	Type     CondType
	Criteria CondCriteria

	// Value is the comparison value of a cell rule, the text of a text
	// rule or the formula of a formula rule. Numbers, quoted strings and
	// cell references are written as given.
	Value    string
	MinValue string // between rules
	MaxValue string

	Rank    int // top and bottom rules, defaults to 10
	Percent bool

	Format     Format
	StopIfTrue bool
	// MultiRange replaces the sqref with a space separated list of
	// ranges, e.g. "B3:K6 B9:K12".
	MultiRange string

	// thresholds of colour scales, data bars and the icon set
	MinRule, MidRule, MaxRule                CondRuleType
	MinRuleValue, MidRuleValue, MaxRuleValue string
	MinColor, MidColor, MaxColor             ooxml.Color
	BarColor                                 ooxml.Color

	IconStyle    IconStyle
	ReverseIcons bool
	IconsOnly    bool
}

type condRule struct {
	CondFormat
	priority  int
	firstCell string
}

// ConditionalFormatCell adds a conditional format to one cell.
func (w *Worksheet) ConditionalFormatCell(row, col int, cf *CondFormat) error {
	return w.ConditionalFormatRange(row, col, row, col, cf)
}

// ConditionalFormatRange adds a conditional format to a range. Rules with
// the same range are grouped; priorities follow insertion order.
func (w *Worksheet) ConditionalFormatRange(firstRow, firstCol, lastRow, lastCol int, cf *CondFormat) error {
	if cf == nil {
		return ooxml.ErrNullParameter.New("conditional format")
	}
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if err := w.checkDimensions(firstRow, firstCol, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(lastRow, lastCol, true, true); err != nil {
		return err
	}
	if err := cf.validate(); err != nil {
		return err
	}

	sqref := coord.RangeToString(firstRow, firstCol, lastRow, lastCol)
	if cf.MultiRange != "" {
		sqref = strings.Join(strings.Fields(cf.MultiRange), " ")
	}
	w.priority++
	r := &condRule{CondFormat: *cf, priority: w.priority, firstCell: coord.CellToString(firstRow, firstCol)}
	w.condFormats[sqref] = append(w.condFormats[sqref], r)
	return nil
}

func (cf *CondFormat) validate() error {
	switch cf.Type {
	case CondCell:
		if _, ok := cellOperators[cf.Criteria]; !ok {
			return ooxml.Invalid("criteria %d does not apply to cell rules", cf.Criteria)
		}
		if cf.Criteria == CondBetween || cf.Criteria == CondNotBetween {
			if cf.MinValue == "" || cf.MaxValue == "" {
				return ooxml.ErrNullParameter.New("conditional format minimum and maximum")
			}
		} else if cf.Value == "" {
			return ooxml.ErrNullParameter.New("conditional format value")
		}
	case CondText:
		if cf.Criteria < CondTextContaining || cf.Criteria > CondTextEndsWith {
			return ooxml.Invalid("criteria %d does not apply to text rules", cf.Criteria)
		}
		if cf.Value == "" {
			return ooxml.ErrNullParameter.New("conditional format text")
		}
		return ooxml.CheckLength("conditional format text", cf.Value, ooxml.MaxMediumString)
	case CondTimePeriod:
		if _, ok := timePeriods[cf.Criteria]; !ok {
			return ooxml.Invalid("criteria %d does not apply to time period rules", cf.Criteria)
		}
	case CondAverage:
		if cf.Criteria != CondEqual && (cf.Criteria < CondAverageAbove || cf.Criteria > CondAverage3StdDevBelow) {
			return ooxml.Invalid("criteria %d does not apply to average rules", cf.Criteria)
		}
	case CondFormula:
		if cf.Value == "" {
			return ooxml.ErrNullParameter.New("conditional format formula")
		}
	case CondIconSet:
		if cf.IconStyle < 0 || int(cf.IconStyle) >= len(iconStyles) {
			return ooxml.Invalid("unknown icon style %d", cf.IconStyle)
		}
	case Cond2ColorScale, Cond3ColorScale, CondDataBar:
		for _, t := range []CondRuleType{cf.MinRule, cf.MidRule, cf.MaxRule} {
			if t < CondRuleDefault || t > CondRuleMaximum {
				return ooxml.Invalid("unknown threshold type %d", t)
			}
		}
	case CondDuplicate, CondUnique, CondTop, CondBottom, CondBlanks, CondNoBlanks,
		CondErrors, CondNoErrors:
	default:
		return ooxml.Invalid("unknown conditional format type %d", cf.Type)
	}
	return nil
}

func (w *Worksheet) writeConditionalFormats(x *ooxml.Doc) {
	ooxml.Enumerate(w.condFormats, func(sqref string, rules []*condRule) error {
		x.OTag("conditionalFormatting").Attr("sqref", sqref)
		for _, r := range rules {
			r.write(x)
		}
		x.CTag()
		return nil
	})
}

func (r *condRule) open(x *ooxml.Doc, typ string) {
	x.OTag("cfRule").Attr("type", typ)
	if r.Format != nil {
		x.Attr("dxfId", r.Format.DXFIndex())
	}
	x.Attr("priority", r.priority)
	if r.StopIfTrue {
		x.Attr("stopIfTrue", 1)
	}
}

func (r *condRule) write(x *ooxml.Doc) {
	cell := r.firstCell
	switch r.Type {
	case CondCell:
		r.open(x, "cellIs")
		x.Attr("operator", cellOperators[r.Criteria])
		if r.Criteria == CondBetween || r.Criteria == CondNotBetween {
			x.Text("formula", strings.TrimPrefix(r.MinValue, "="))
			x.Text("formula", strings.TrimPrefix(r.MaxValue, "="))
		} else {
			x.Text("formula", strings.TrimPrefix(r.Value, "="))
		}

	case CondText:
		text := r.Value
		n := ooxml.Len(text)
		switch r.Criteria {
		case CondTextContaining:
			r.open(x, "containsText")
			x.Attr("operator", "containsText").Attr("text", text)
			x.Text("formula", fmt.Sprintf(`NOT(ISERROR(SEARCH("%s",%s)))`, text, cell))
		case CondTextNotContaining:
			r.open(x, "notContainsText")
			x.Attr("operator", "notContains").Attr("text", text)
			x.Text("formula", fmt.Sprintf(`ISERROR(SEARCH("%s",%s))`, text, cell))
		case CondTextBeginsWith:
			r.open(x, "beginsWith")
			x.Attr("operator", "beginsWith").Attr("text", text)
			x.Text("formula", fmt.Sprintf(`LEFT(%s,%d)="%s"`, cell, n, text))
		case CondTextEndsWith:
			r.open(x, "endsWith")
			x.Attr("operator", "endsWith").Attr("text", text)
			x.Text("formula", fmt.Sprintf(`RIGHT(%s,%d)="%s"`, cell, n, text))
		}

	case CondTimePeriod:
		p := timePeriods[r.Criteria]
		r.open(x, "timePeriod")
		x.Attr("timePeriod", p[0])
		x.Text("formula", fmt.Sprintf(p[1], cell))

	case CondAverage:
		r.open(x, "aboveAverage")
		switch r.Criteria {
		case CondAverageBelow:
			x.Attr("aboveAverage", 0)
		case CondAverageAboveOrEqual:
			x.Attr("equalAverage", 1)
		case CondAverageBelowOrEqual:
			x.Attr("aboveAverage", 0).Attr("equalAverage", 1)
		case CondAverage1StdDevAbove:
			x.Attr("stdDev", 1)
		case CondAverage1StdDevBelow:
			x.Attr("aboveAverage", 0).Attr("stdDev", 1)
		case CondAverage2StdDevAbove:
			x.Attr("stdDev", 2)
		case CondAverage2StdDevBelow:
			x.Attr("aboveAverage", 0).Attr("stdDev", 2)
		case CondAverage3StdDevAbove:
			x.Attr("stdDev", 3)
		case CondAverage3StdDevBelow:
			x.Attr("aboveAverage", 0).Attr("stdDev", 3)
		}

	case CondDuplicate:
		r.open(x, "duplicateValues")
	case CondUnique:
		r.open(x, "uniqueValues")

	case CondTop, CondBottom:
		r.open(x, "top10")
		if r.Percent {
			x.Attr("percent", 1)
		}
		if r.Type == CondBottom {
			x.Attr("bottom", 1)
		}
		rank := r.Rank
		if rank <= 0 {
			rank = 10
		}
		x.Attr("rank", rank)

	case CondBlanks:
		r.open(x, "containsBlanks")
		x.Text("formula", fmt.Sprintf("LEN(TRIM(%s))=0", cell))
	case CondNoBlanks:
		r.open(x, "notContainsBlanks")
		x.Text("formula", fmt.Sprintf("LEN(TRIM(%s))>0", cell))
	case CondErrors:
		r.open(x, "containsErrors")
		x.Text("formula", fmt.Sprintf("ISERROR(%s)", cell))
	case CondNoErrors:
		r.open(x, "notContainsErrors")
		x.Text("formula", fmt.Sprintf("NOT(ISERROR(%s))", cell))

	case CondFormula:
		r.open(x, "expression")
		x.Text("formula", strings.TrimPrefix(r.Value, "="))

	case Cond2ColorScale:
		r.openScale(x, "colorScale")
		x.OTag("colorScale")
		writeCfvo(x, r.MinRule, CondRuleMinimum, r.MinRuleValue, "0")
		writeCfvo(x, r.MaxRule, CondRuleMaximum, r.MaxRuleValue, "0")
		writeCfColor(x, r.MinColor, 0xFF7128)
		writeCfColor(x, r.MaxColor, 0xFFEF9C)
		x.CTag()

	case Cond3ColorScale:
		r.openScale(x, "colorScale")
		x.OTag("colorScale")
		writeCfvo(x, r.MinRule, CondRuleMinimum, r.MinRuleValue, "0")
		writeCfvo(x, r.MidRule, CondRulePercentile, r.MidRuleValue, "50")
		writeCfvo(x, r.MaxRule, CondRuleMaximum, r.MaxRuleValue, "0")
		writeCfColor(x, r.MinColor, 0xF8696B)
		writeCfColor(x, r.MidColor, 0xFFEB84)
		writeCfColor(x, r.MaxColor, 0x63BE7B)
		x.CTag()

	case CondDataBar:
		r.openScale(x, "dataBar")
		x.OTag("dataBar")
		writeCfvo(x, r.MinRule, CondRuleMinimum, r.MinRuleValue, "0")
		writeCfvo(x, r.MaxRule, CondRuleMaximum, r.MaxRuleValue, "0")
		writeCfColor(x, r.BarColor, 0x638EC6)
		x.CTag()

	case CondIconSet:
		r.openScale(x, "iconSet")
		style := iconStyles[r.IconStyle]
		x.OTag("iconSet")
		if r.IconStyle != Icons3TrafficLights {
			x.Attr("iconSet", style.name)
		}
		if r.IconsOnly {
			x.Attr("showValue", 0)
		}
		if r.ReverseIcons {
			x.Attr("reverse", 1)
		}
		step := 100 / style.count
		for i := 0; i < style.count; i++ {
			v := i * step
			if style.count == 3 && i == 2 {
				v = 67
			}
			x.OTag("cfvo").Attr("type", "percent").Attr("val", v).CTag()
		}
		x.CTag()
	}
	x.CTag() // cfRule
}

// openScale starts a rule that carries no differential format.
func (r *condRule) openScale(x *ooxml.Doc, typ string) {
	x.OTag("cfRule").Attr("type", typ).Attr("priority", r.priority)
	if r.StopIfTrue {
		x.Attr("stopIfTrue", 1)
	}
}

func writeCfvo(x *ooxml.Doc, t, def CondRuleType, val, defVal string) {
	if t == CondRuleDefault {
		t = def
	}
	if val == "" {
		val = defVal
	}
	x.OTag("cfvo").Attr("type", cfvoTypes[t]).Attr("val", strings.TrimPrefix(val, "=")).CTag()
}

func writeCfColor(x *ooxml.Doc, c, def ooxml.Color) {
	if !c.IsSet() {
		c = def
	}
	x.OTag("color").Attr("rgb", c.ARGB()).CTag()
}
