package ooxml

import (
	"math"
	"strconv"
)

// EMUPerPixel is the DrawingML unit count for one pixel at 96 dpi.
const EMUPerPixel = 9525

// FormatFloat renders v the way Excel stores numbers: up to 16 significant
// digits with trailing zeros dropped, switching to exponent form for very
// large and very small magnitudes.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'G', 16, 64)
}

// FormatShort renders v with up to 6 significant digits, used for row
// heights and similar attributes.
func FormatShort(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Finite reports whether v can be stored in a cell.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PixelsToEMU converts a pixel distance, rounding to the nearest unit.
func PixelsToEMU(px float64) int64 {
	return int64(0.5 + px*EMUPerPixel)
}

// Bool01 renders a flag the way SpreadsheetML attributes expect it.
func Bool01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
