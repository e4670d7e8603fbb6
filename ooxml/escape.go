package ooxml

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var escapedSeq = regexp.MustCompile(`_x[0-9a-fA-F]{4}_`)

func isControl(c byte) bool {
	return c < 0x20 && c != '\t' && c != '\n'
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if isControl(s[i]) {
			return true
		}
	}
	return false
}

// EscapeControl rewrites control characters that XML 1.0 cannot carry into
// Excel's _xHHHH_ form. Existing _xHHHH_ sequences are protected with
// _x005F_ so they survive a round trip. Tab and line feed pass through.
func EscapeControl(s string) string {
	if !hasControl(s) {
		return s
	}
	s = escapedSeq.ReplaceAllStringFunc(s, func(m string) string {
		return "_x005F" + m
	})
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isControl(c) {
			fmt.Fprintf(&b, "_x%04X_", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// NeedsPreserve reports whether a <t> element holding s must carry
// xml:space="preserve", i.e. whether s has leading or trailing whitespace.
func NeedsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return isSpace(s[0]) || isSpace(s[len(s)-1])
}

// Len counts characters the way Excel limits do.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
