// Package version provides MCTP base specification version parsing and the
// version number encoding used by the Get MCTP Version Support command.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the MCTP base specification version (DSP0236) implemented by
// this library.
const Current = "1.3"

// SpecVersion represents a parsed "major.minor" specification version.
type SpecVersion struct {
	Major uint8
	Minor uint8
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SpecVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SpecVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || parts[0] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || parts[1] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SpecVersion{Major: uint8(major), Minor: uint8(minor)}, nil
}

// String returns the version as "major.minor".
func (v SpecVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v SpecVersion) Compatible(other SpecVersion) bool {
	return v.Major == other.Major
}

// Number returns v as a version number with no update or alpha.
func (v SpecVersion) Number() Number {
	return Number{Major: v.Major, Minor: v.Minor}
}

// CurrentNumber returns the version number of Current.
func CurrentNumber() Number {
	v, _ := Parse(Current)
	return v.Number()
}
