package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
)

// Field names of the version number word.
const (
	FieldMajor  = "major"
	FieldMinor  = "minor"
	FieldUpdate = "update"
	FieldAlpha  = "alpha"
)

// noUpdate is the update byte of a version without an update number.
const noUpdate = 0xFF

var numberLayout = bitfield.MustLayout(
	bitfield.Range(FieldMajor, 24, 31),
	bitfield.Range(FieldMinor, 16, 23),
	bitfield.Range(FieldUpdate, 8, 15),
	bitfield.Range(FieldAlpha, 0, 7),
)

// Number is an MCTP version number as reported by Get MCTP Version Support.
//
// On the wire each of major, minor and update is one BCD byte; single
// digits carry 0xF in the high nibble. An update byte of 0xFF means the
// version has no update number. Alpha is 0 or a lowercase ASCII letter.
type Number struct {
	Major     uint8
	Minor     uint8
	Update    uint8
	HasUpdate bool
	Alpha     byte
}

// ParseNumber decodes a version number word.
func ParseNumber(word uint32) (Number, error) {
	dec := numberLayout.NewDecoder(word)
	n := Number{
		Major: uint8(bitfield.DecodeEnum(dec, FieldMajor, parseBCD)),
		Minor: uint8(bitfield.DecodeEnum(dec, FieldMinor, parseBCD)),
	}
	if raw := dec.Uint(FieldUpdate); raw != noUpdate {
		n.Update = uint8(bitfield.DecodeEnum(dec, FieldUpdate, parseBCD))
		n.HasUpdate = true
	}
	n.Alpha = byte(bitfield.DecodeEnum(dec, FieldAlpha, parseAlpha))
	if err := dec.Err(); err != nil {
		return Number{}, err
	}
	return n, nil
}

// Uint32 encodes n to its word form.
func (n Number) Uint32() (uint32, error) {
	enc := numberLayout.NewEncoder().
		Enum(FieldMajor, bcd(n.Major)).
		Enum(FieldMinor, bcd(n.Minor))
	if n.HasUpdate {
		enc.Enum(FieldUpdate, bcd(n.Update))
	} else {
		enc.Uint(FieldUpdate, noUpdate)
	}
	return enc.Enum(FieldAlpha, alpha(n.Alpha)).Word()
}

// ParseNumberString parses "major.minor[.update][alpha]", e.g. "1.3.1a".
func ParseNumberString(s string) (Number, error) {
	var n Number
	rest := s
	if l := len(rest); l > 0 && rest[l-1] >= 'a' && rest[l-1] <= 'z' {
		n.Alpha = rest[l-1]
		rest = rest[:l-1]
	}

	parts := strings.Split(rest, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Number{}, fmt.Errorf("invalid version number %q: expected major.minor[.update]", s)
	}
	vals := make([]uint8, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil || v > 99 {
			return Number{}, fmt.Errorf("invalid version number %q: component %q", s, p)
		}
		vals[i] = uint8(v)
	}
	n.Major, n.Minor = vals[0], vals[1]
	if len(vals) == 3 {
		n.Update = vals[2]
		n.HasUpdate = true
	}
	return n, nil
}

// SpecVersion returns the major and minor components of n.
func (n Number) SpecVersion() SpecVersion {
	return SpecVersion{Major: n.Major, Minor: n.Minor}
}

// String returns n as "major.minor[.update][alpha]".
func (n Number) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d", n.Major, n.Minor)
	if n.HasUpdate {
		fmt.Fprintf(&b, ".%d", n.Update)
	}
	if n.Alpha != 0 {
		b.WriteByte(n.Alpha)
	}
	return b.String()
}

// bcd is a 0-99 value encoded as one BCD byte.
type bcd uint8

func (v bcd) Code() (uint32, bool) {
	switch {
	case v < 10:
		return 0xF0 | uint32(v), true
	case v < 100:
		return uint32(v/10)<<4 | uint32(v%10), true
	default:
		return 0, false
	}
}

func parseBCD(raw uint32) (bcd, bool) {
	hi, lo := raw>>4, raw&0x0F
	switch {
	case lo > 9:
		return 0, false
	case hi == 0xF:
		return bcd(lo), true
	case hi <= 9:
		return bcd(hi*10 + lo), true
	default:
		return 0, false
	}
}

// alpha is the optional pre-release letter.
type alpha byte

func (a alpha) Code() (uint32, bool) {
	_, ok := parseAlpha(uint32(a))
	return uint32(a), ok
}

func parseAlpha(raw uint32) (alpha, bool) {
	if raw == 0 || (raw >= 'a' && raw <= 'z') {
		return alpha(raw), true
	}
	return 0, false
}
