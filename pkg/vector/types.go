// Package vector loads and checks MCTP header test vectors.
//
// A vector file is YAML:
//
//	vectors:
//	  - name: vendor pci
//	    shape: vendor_pci
//	    bytes: "7E 12 34 00"
//	    fields:
//	      message_type: 0x7E
//	      pci_vendor_id: 0x1234
//	  - name: unknown message type
//	    shape: generic
//	    bytes: "42000000"
//	    error: message_type
//
// Bytes are hex, most significant byte first. Check decodes the bytes with
// the named shape, compares the listed fields, re-encodes the header and
// compares the result with Canonical (or with the input when Canonical is
// empty, after clearing the shape's unused bits).
package vector

import (
	"fmt"
	"strconv"
)

// File is the top-level structure of a vector file.
type File struct {
	// Description is free text shown by tools.
	Description string `yaml:"description,omitempty"`

	// Vectors are checked in order.
	Vectors []Vector `yaml:"vectors"`
}

// Vector is a single header test vector.
type Vector struct {
	// Name identifies the vector in reports.
	Name string `yaml:"name"`

	// Shape is the header shape: generic, control or vendor_pci.
	Shape string `yaml:"shape"`

	// Bytes is the 4-byte header in hex, most significant byte first.
	Bytes string `yaml:"bytes"`

	// Canonical is the expected re-encoded header when it differs from
	// Bytes beyond the unused bits.
	Canonical string `yaml:"canonical,omitempty"`

	// Fields lists expected raw field values. Unlisted fields are not checked.
	Fields map[string]uint32 `yaml:"fields,omitempty"`

	// Error names the field expected to fail decoding.
	Error string `yaml:"error,omitempty"`

	// Source is the file the vector was loaded from.
	Source string `yaml:"-"`
}

// LoadError provides details about a vector loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	if e.Line > 0 {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// CheckError reports a vector whose result differs from its expectation.
type CheckError struct {
	Vector  string
	Message string
	Cause   error
}

func (e *CheckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vector %q: %s: %v", e.Vector, e.Message, e.Cause)
	}
	return fmt.Sprintf("vector %q: %s", e.Vector, e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}
