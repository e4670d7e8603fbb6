package chart

import (
	"github.com/adnsv/go-xlw/coord"
)

// MarkerType is the symbol drawn at each data point.
type MarkerType int

const (
	MarkerAutomatic MarkerType = iota
	MarkerNone
	MarkerSquare
	MarkerDiamond
	MarkerTriangle
	MarkerX
	MarkerStar
	MarkerShortDash
	MarkerLongDash
	MarkerCircle
	MarkerPlus
)

var markerSymbols = [...]string{
	"auto", "none", "square", "diamond", "triangle", "x", "star", "dot",
	"dash", "circle", "plus",
}

// Marker formats point markers on line, scatter and radar series.
type Marker struct {
	Type    MarkerType
	Size    int // 2..72
	Line    *Line
	Fill    *Fill
	Pattern *Pattern
}

// LabelPosition places data labels relative to their point.
type LabelPosition int

const (
	LabelDefault LabelPosition = iota
	LabelCenter
	LabelRight
	LabelLeft
	LabelAbove
	LabelBelow
	LabelInsideBase
	LabelInsideEnd
	LabelOutsideEnd
	LabelBestFit
)

var labelPositions = [...]string{
	"", "ctr", "r", "l", "t", "b", "inBase", "inEnd", "outEnd", "bestFit",
}

// DataLabels selects what is shown next to each point.
type DataLabels struct {
	Value       bool
	Category    bool
	SeriesName  bool
	Percentage  bool // pie and doughnut only
	LegendKey   bool
	LeaderLines bool // pie and doughnut only
	Position    LabelPosition
	Separator   string
	NumFormat   string
	Font        *Font
}

// TrendlineType selects the regression.
type TrendlineType int

const (
	TrendlineLinear TrendlineType = iota
	TrendlineExponential
	TrendlineLog
	TrendlineMovingAverage
	TrendlinePolynomial
	TrendlinePower
)

var trendlineNames = [...]string{"linear", "exp", "log", "movingAvg", "poly", "power"}

// Trendline adds a regression line to a series. Order applies to
// polynomial lines and Period to moving averages.
type Trendline struct {
	Type            TrendlineType
	Order           int
	Period          int
	Name            string
	Forward         float64
	Backward        float64
	Intercept       float64
	HasIntercept    bool
	DisplayEquation bool
	DisplayRSquared bool
	Line            *Line
}

// PointFormat overrides the format of a single point. A nil entry in the
// slice passed to SetPoints keeps the series format for that point.
type PointFormat struct {
	Line    *Line
	Fill    *Fill
	Pattern *Pattern
}

// Series is one plotted data series.
type Series struct {
	categories *coord.Range
	values     *coord.Range
	name       string
	nameRange  *coord.Range

	line    *Line
	fill    *Fill
	pattern *Pattern
	marker  *Marker
	points  []*PointFormat

	labels    *DataLabels
	trendline *Trendline

	smooth           bool
	invertIfNegative bool
}

// SetCategories sets the category (or scatter X) range from corners.
func (s *Series) SetCategories(sheet string, firstRow, firstCol, lastRow, lastCol int) {
	if s.categories == nil {
		s.categories = &coord.Range{}
	}
	s.categories.SetCells(sheet, firstRow, firstCol, lastRow, lastCol)
}

// SetValues sets the value range from corners.
func (s *Series) SetValues(sheet string, firstRow, firstCol, lastRow, lastCol int) {
	if s.values == nil {
		s.values = &coord.Range{}
	}
	s.values.SetCells(sheet, firstRow, firstCol, lastRow, lastCol)
}

// Categories returns the category range, nil if unset.
func (s *Series) Categories() *coord.Range {
	return s.categories
}

// Values returns the value range, nil if unset.
func (s *Series) Values() *coord.Range {
	return s.values
}

// SetName sets a literal series name shown in the legend.
func (s *Series) SetName(name string) {
	s.name = name
	s.nameRange = nil
}

// SetNameRange takes the series name from a cell.
func (s *Series) SetNameRange(sheet string, row, col int) {
	s.nameRange = coord.NewRange(sheet, row, col, row, col)
	s.name = ""
}

func (s *Series) SetLine(l *Line) { s.line = l }
func (s *Series) SetFill(f *Fill) { s.fill = f }
func (s *Series) SetPattern(p *Pattern) { s.pattern = p }
func (s *Series) SetMarker(m *Marker) { s.marker = m }
func (s *Series) SetLabels(d *DataLabels) { s.labels = d }
func (s *Series) SetTrendline(t *Trendline) { s.trendline = t }

// SetPoints formats individual points, starting with the first.
func (s *Series) SetPoints(points []*PointFormat) {
	s.points = points
}

// SetSmooth smooths line and scatter series.
func (s *Series) SetSmooth(smooth bool) {
	s.smooth = smooth
}

// SetInvertIfNegative uses inverted fill for negative bars.
func (s *Series) SetInvertIfNegative() {
	s.invertIfNegative = true
}
