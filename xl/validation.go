package xl

import (
	"strings"
	"time"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// ValidationType selects what a data validation checks.
type ValidationType int

const (
	ValidateAny ValidationType = iota
	ValidateWhole
	ValidateDecimal
	ValidateList
	ValidateDate
	ValidateTime
	ValidateLength
	ValidateCustom
)

var validationTypes = [...]string{"", "whole", "decimal", "list", "date", "time", "textLength", "custom"}

// ValidationCriteria compares the cell value with the limits.
type ValidationCriteria int

const (
	CriteriaBetween ValidationCriteria = iota
	CriteriaNotBetween
	CriteriaEqual
	CriteriaNotEqual
	CriteriaGreaterThan
	CriteriaLessThan
	CriteriaGreaterThanOrEqual
	CriteriaLessThanOrEqual
)

var validationOperators = [...]string{
	"between", "notBetween", "equal", "notEqual",
	"greaterThan", "lessThan", "greaterThanOrEqual", "lessThanOrEqual",
}

// ValidationErrorStyle is the icon and behaviour of the error dialog.
type ValidationErrorStyle int

const (
	ErrorStyleStop ValidationErrorStyle = iota
	ErrorStyleWarning
	ErrorStyleInformation
)

var errorStyles = [...]string{"stop", "warning", "information"}

// Validation is a data validation rule. Numeric limits go in Value,
// Minimum and Maximum; the Formula fields override them with a formula or
// cell reference, and the Date fields are used by date and time rules.
type Validation struct {
	Type     ValidationType
	Criteria ValidationCriteria

	Value, Minimum, Maximum                      float64
	ValueFormula, MinimumFormula, MaximumFormula string
	ValueDate, MinimumDate, MaximumDate          time.Time

	// List is the literal source of a list rule. ValueFormula can point
	// at a range instead.
	List []string

	IgnoreBlank bool
	Dropdown    bool
	ShowInput   bool
	ShowError   bool
	ErrorStyle  ValidationErrorStyle

	InputTitle   string
	InputMessage string
	ErrorTitle   string
	ErrorMessage string

	sqref    string
	formula1 string
	formula2 string
}

// NewValidation returns a rule with the Excel dialog defaults switched on.
func NewValidation(t ValidationType) *Validation {
	return &Validation{
		Type:        t,
		IgnoreBlank: true,
		Dropdown:    true,
		ShowInput:   true,
		ShowError:   true,
	}
}

// DataValidationCell adds a validation to one cell.
func (w *Worksheet) DataValidationCell(row, col int, v *Validation) error {
	return w.DataValidationRange(row, col, row, col, v)
}

// DataValidationRange adds a validation to a range of cells.
func (w *Worksheet) DataValidationRange(firstRow, firstCol, lastRow, lastCol int, v *Validation) error {
	if v == nil {
		return ooxml.ErrNullParameter.New("validation")
	}
	firstRow, firstCol, lastRow, lastCol = coord.Normalize(firstRow, firstCol, lastRow, lastCol)
	if err := w.checkDimensions(firstRow, firstCol, true, true); err != nil {
		return err
	}
	if err := w.checkDimensions(lastRow, lastCol, true, true); err != nil {
		return err
	}

	if err := ooxml.CheckLength("validation input title", v.InputTitle, ooxml.MaxShortString); err != nil {
		return err
	}
	if err := ooxml.CheckLength("validation error title", v.ErrorTitle, ooxml.MaxShortString); err != nil {
		return err
	}
	if err := ooxml.CheckLength("validation input message", v.InputMessage, ooxml.MaxMediumString); err != nil {
		return err
	}
	if err := ooxml.CheckLength("validation error message", v.ErrorMessage, ooxml.MaxMediumString); err != nil {
		return err
	}
	if v.Type < ValidateAny || v.Type > ValidateCustom {
		return ooxml.Invalid("unknown validation type %d", v.Type)
	}
	if v.Criteria < CriteriaBetween || v.Criteria > CriteriaLessThanOrEqual {
		return ooxml.Invalid("unknown validation criteria %d", v.Criteria)
	}
	if v.ErrorStyle < ErrorStyleStop || v.ErrorStyle > ErrorStyleInformation {
		return ooxml.Invalid("unknown validation error style %d", v.ErrorStyle)
	}

	dv := *v
	dv.List = append([]string(nil), v.List...)
	dv.sqref = coord.RangeToString(firstRow, firstCol, lastRow, lastCol)
	if err := dv.buildFormulas(); err != nil {
		return err
	}
	w.validations = append(w.validations, &dv)
	return nil
}

func (v *Validation) between() bool {
	return v.Criteria == CriteriaBetween || v.Criteria == CriteriaNotBetween
}

// buildFormulas turns the limits into formula1 and formula2.
func (v *Validation) buildFormulas() error {
	switch v.Type {
	case ValidateAny:
		return nil

	case ValidateList:
		if v.ValueFormula != "" {
			v.formula1 = strings.TrimPrefix(v.ValueFormula, "=")
			return nil
		}
		if len(v.List) == 0 {
			return ooxml.ErrNullParameter.New("validation list")
		}
		joined := strings.Join(v.List, ",")
		if err := ooxml.CheckLength("validation list", joined, ooxml.MaxMediumString); err != nil {
			return err
		}
		v.formula1 = `"` + joined + `"`
		return nil

	case ValidateCustom:
		if v.ValueFormula == "" {
			return ooxml.ErrNullParameter.New("custom validation formula")
		}
		v.formula1 = strings.TrimPrefix(v.ValueFormula, "=")
		return nil
	}

	limit := func(n float64, formula string, t time.Time) string {
		switch {
		case formula != "":
			return strings.TrimPrefix(formula, "=")
		case (v.Type == ValidateDate || v.Type == ValidateTime) && !t.IsZero():
			return ooxml.FormatFloat(DateToSerial(t))
		}
		return ooxml.FormatFloat(n)
	}
	if v.between() {
		v.formula1 = limit(v.Minimum, v.MinimumFormula, v.MinimumDate)
		v.formula2 = limit(v.Maximum, v.MaximumFormula, v.MaximumDate)
	} else {
		v.formula1 = limit(v.Value, v.ValueFormula, v.ValueDate)
	}
	return nil
}

func (w *Worksheet) writeDataValidations(x *ooxml.Doc) {
	if len(w.validations) == 0 {
		return
	}
	x.OTag("dataValidations").Attr("count", len(w.validations))
	for _, v := range w.validations {
		x.OTag("dataValidation")
		if v.Type != ValidateAny {
			x.Attr("type", validationTypes[v.Type])
			if v.Criteria != CriteriaBetween && v.Type != ValidateList && v.Type != ValidateCustom {
				x.Attr("operator", validationOperators[v.Criteria])
			}
		}
		if v.ErrorStyle != ErrorStyleStop {
			x.Attr("errorStyle", errorStyles[v.ErrorStyle])
		}
		if v.IgnoreBlank {
			x.Attr("allowBlank", 1)
		}
		if !v.Dropdown && v.Type == ValidateList {
			// the attribute hides the arrow
			x.Attr("showDropDown", 1)
		}
		if v.ShowInput {
			x.Attr("showInputMessage", 1)
		}
		if v.ShowError {
			x.Attr("showErrorMessage", 1)
		}
		if v.ErrorTitle != "" {
			x.Attr("errorTitle", v.ErrorTitle)
		}
		if v.ErrorMessage != "" {
			x.Attr("error", v.ErrorMessage)
		}
		if v.InputTitle != "" {
			x.Attr("promptTitle", v.InputTitle)
		}
		if v.InputMessage != "" {
			x.Attr("prompt", v.InputMessage)
		}
		x.Attr("sqref", v.sqref)
		if v.formula1 != "" {
			x.Text("formula1", v.formula1)
		}
		if v.formula2 != "" {
			x.Text("formula2", v.formula2)
		}
		x.CTag()
	}
	x.CTag()
}
