package ooxml

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

// Excel string limits.
const (
	MaxTitleLength  = 31
	MaxShortString  = 32
	MaxMediumString = 255
	MaxString       = 32767
)

var (
	// ErrIndexOutOfRange is returned for rows or columns past the sheet
	// limits, and for rows written out of order in constant memory mode.
	ErrIndexOutOfRange = errors.NewKind("index out of range: %s")

	// ErrParameterValidation is returned for malformed input.
	ErrParameterValidation = errors.NewKind("invalid parameter: %s")

	// Err32StringLengthExceeded is returned for strings over 32 characters.
	Err32StringLengthExceeded = errors.NewKind("%s exceeds the 32 character limit")

	// Err255StringLengthExceeded is returned for strings over 255 characters.
	Err255StringLengthExceeded = errors.NewKind("%s exceeds the 255 character limit")

	// ErrMaxStringLengthExceeded is returned for strings over 32767 characters.
	ErrMaxStringLengthExceeded = errors.NewKind("%s exceeds the 32767 character limit")

	// ErrNullParameter is returned when a required argument is missing.
	ErrNullParameter = errors.NewKind("required parameter is missing: %s")

	// ErrFeatureNotSupported is returned for operations that the current
	// worksheet mode cannot carry out.
	ErrFeatureNotSupported = errors.NewKind("%s is not supported in constant memory mode")

	// ErrAlreadyAssembled is returned when a single-shot part is assembled
	// twice or attached to a second owner.
	ErrAlreadyAssembled = errors.NewKind("%s has already been used")

	// ErrOutput wraps failures of the underlying stream or storage.
	ErrOutput = errors.NewKind("failed to write %s")
)

// CheckLength validates s against one of the Excel string limits and
// returns the matching error kind.
func CheckLength(what, s string, limit int) error {
	if Len(s) <= limit {
		return nil
	}
	switch limit {
	case MaxShortString:
		return Err32StringLengthExceeded.New(what)
	case MaxMediumString:
		return Err255StringLengthExceeded.New(what)
	case MaxString:
		return ErrMaxStringLengthExceeded.New(what)
	}
	return ErrParameterValidation.New(fmt.Sprintf("%s exceeds %d characters", what, limit))
}

// Invalid is shorthand for ErrParameterValidation with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return ErrParameterValidation.New(fmt.Sprintf(format, args...))
}
