package bitfield

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by DecodeError and EncodeError.
var (
	// ErrUnknownVariant means a decoded bit pattern names no enum value.
	ErrUnknownVariant = errors.New("bitfield: bit pattern matches no known value")

	// ErrOverflow means a value does not fit its field width.
	ErrOverflow = errors.New("bitfield: value exceeds field width")

	// ErrInvalidCode means an enum value has no numeric code.
	ErrInvalidCode = errors.New("bitfield: value has no numeric code")

	// ErrUnknownField means a field name is not part of the layout.
	ErrUnknownField = errors.New("bitfield: unknown field")
)

// DecodeError reports a field whose raw bits could not be converted to the
// field's type.
type DecodeError struct {
	Field Field
	Raw   uint32
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: raw bits 0x%X: %v", e.Field, e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a field whose value cannot be represented in its bit
// range.
type EncodeError struct {
	Field Field
	Value uint32
	Err   error
}

func (e *EncodeError) Error() string {
	if errors.Is(e.Err, ErrInvalidCode) {
		return fmt.Sprintf("encode %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("encode %s: value 0x%X: %v", e.Field, e.Value, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// FieldName returns the name of the field that failed, or "" when err does
// not come from this package.
func FieldName(err error) string {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Field.Name
	}
	var ee *EncodeError
	if errors.As(err, &ee) {
		return ee.Field.Name
	}
	return ""
}
