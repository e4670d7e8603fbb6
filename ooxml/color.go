package ooxml

import "fmt"

// Color is a 24-bit RGB value such as 0xFF0000. ColorNone is the zero
// value, so an unset colour field is simply left out.
type Color uint32

const (
	ColorNone  Color = 0
	ColorBlack Color = 0x1000000 // distinct from ColorNone
	ColorWhite Color = 0xFFFFFF
	ColorRed   Color = 0xFF0000
	ColorGreen Color = 0x008000
	ColorBlue  Color = 0x0000FF
)

// IsSet reports whether the colour was given.
func (c Color) IsSet() bool {
	return c != ColorNone
}

// RGB returns the six hex digit form used by DrawingML, e.g. "FF0000".
func (c Color) RGB() string {
	return fmt.Sprintf("%06X", uint32(c)&0xFFFFFF)
}

// ARGB returns the opaque eight digit form used by SpreadsheetML, e.g.
// "FFFF0000".
func (c Color) ARGB() string {
	return "FF" + c.RGB()
}
