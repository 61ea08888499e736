package mctp

import "fmt"

// CompletionCode is the result of an MCTP control command (DSP0236 Table 13).
//
// Codes outside the named set are command specific: the byte itself carries
// the meaning, so every 8-bit pattern is a valid CompletionCode.
type CompletionCode uint8

const (
	// CompletionCodeSuccess indicates the request completed normally.
	CompletionCodeSuccess CompletionCode = 0x00

	// CompletionCodeError is a generic failure.
	CompletionCodeError CompletionCode = 0x01

	// CompletionCodeErrorInvalidData indicates a request field was invalid.
	CompletionCodeErrorInvalidData CompletionCode = 0x02

	// CompletionCodeErrorInvalidLength indicates a wrong message length.
	CompletionCodeErrorInvalidLength CompletionCode = 0x03

	// CompletionCodeErrorNotReady indicates the receiver cannot accept the request yet.
	CompletionCodeErrorNotReady CompletionCode = 0x04

	// CompletionCodeErrorUnsupportedCmd indicates the command is not supported.
	CompletionCodeErrorUnsupportedCmd CompletionCode = 0x05
)

// CommandSpecific returns the completion code carrying b.
// If b is a named code the named value is returned.
func CommandSpecific(b uint8) CompletionCode {
	return CompletionCode(b)
}

// ParseCompletionCode converts a raw 8-bit code to a CompletionCode.
// It fails only for values wider than 8 bits.
func ParseCompletionCode(raw uint32) (CompletionCode, bool) {
	if raw > 0xFF {
		return 0, false
	}
	return CompletionCode(raw), true
}

// IsCommandSpecific returns true if c is outside the named completion codes.
func (c CompletionCode) IsCommandSpecific() bool {
	return c > CompletionCodeErrorUnsupportedCmd
}

// IsSuccess returns true if c indicates success.
func (c CompletionCode) IsSuccess() bool {
	return c == CompletionCodeSuccess
}

// Value returns the raw byte of c.
func (c CompletionCode) Value() uint8 {
	return uint8(c)
}

// Code returns the numeric code of c. Every completion code has one.
func (c CompletionCode) Code() (uint32, bool) {
	return uint32(c), true
}

// String returns the completion code name.
func (c CompletionCode) String() string {
	switch c {
	case CompletionCodeSuccess:
		return "SUCCESS"
	case CompletionCodeError:
		return "ERROR"
	case CompletionCodeErrorInvalidData:
		return "ERROR_INVALID_DATA"
	case CompletionCodeErrorInvalidLength:
		return "ERROR_INVALID_LENGTH"
	case CompletionCodeErrorNotReady:
		return "ERROR_NOT_READY"
	case CompletionCodeErrorUnsupportedCmd:
		return "ERROR_UNSUPPORTED_CMD"
	default:
		return fmt.Sprintf("COMMAND_SPECIFIC(0x%02X)", uint8(c))
	}
}
