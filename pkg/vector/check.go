package vector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
	"github.com/mctp-protocol/mctp-go/pkg/log"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// Result is the outcome of checking one vector.
type Result struct {
	Vector Vector

	// Header is the decoded header, nil when decoding failed.
	Header mctp.Header

	// Encoded is the re-encoded word, valid when Header is set.
	Encoded uint32

	// Err is nil when the vector passed.
	Err error
}

// Passed reports whether the vector matched its expectation.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Checker checks vectors and reports each decode and encode to Logger.
type Checker struct {
	// Logger receives decode and encode events. Nil disables logging.
	Logger log.Logger

	// SessionID tags logged events.
	SessionID string
}

// Check checks a single vector without logging.
func Check(v Vector) Result {
	return (&Checker{}).Check(v)
}

// Check decodes v, compares fields and the re-encoded word.
func (c *Checker) Check(v Vector) Result {
	res := Result{Vector: v}
	fail := func(format string, args ...any) Result {
		res.Err = &CheckError{Vector: v.Name, Message: fmt.Sprintf(format, args...)}
		return res
	}

	shape, err := mctp.ParseShape(v.Shape)
	if err != nil {
		res.Err = &CheckError{Vector: v.Name, Message: "invalid shape", Cause: err}
		return res
	}
	word, err := ParseWord(v.Bytes)
	if err != nil {
		res.Err = &CheckError{Vector: v.Name, Message: "invalid bytes", Cause: err}
		return res
	}

	h, err := shape.Parse(word)
	c.log(log.NewDecodeEvent(c.SessionID, shape, word, h, err), v)

	if v.Error != "" {
		if err == nil {
			return fail("decoded successfully, want error in field %s", v.Error)
		}
		var de *bitfield.DecodeError
		if !errors.As(err, &de) {
			res.Err = &CheckError{Vector: v.Name, Message: "unexpected error", Cause: err}
			return res
		}
		if de.Field.Name != v.Error {
			return fail("error in field %s, want %s", de.Field.Name, v.Error)
		}
		return res
	}
	if err != nil {
		res.Err = &CheckError{Vector: v.Name, Message: "decode failed", Cause: err}
		return res
	}
	res.Header = h

	encoded, err := h.Uint32()
	c.log(log.NewEncodeEvent(c.SessionID, h, encoded, err), v)
	if err != nil {
		res.Err = &CheckError{Vector: v.Name, Message: "re-encode failed", Cause: err}
		return res
	}
	res.Encoded = encoded

	values := make(map[string]uint32)
	for _, fv := range shape.Fields(encoded) {
		values[fv.Field.Name] = fv.Value
	}
	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if got, want := values[name], v.Fields[name]; got != want {
			return fail("field %s = 0x%X, want 0x%X", name, got, want)
		}
	}

	want := word &^ shape.Layout().UnusedMask()
	if v.Canonical != "" {
		if want, err = ParseWord(v.Canonical); err != nil {
			res.Err = &CheckError{Vector: v.Name, Message: "invalid canonical", Cause: err}
			return res
		}
	}
	if encoded != want {
		return fail("re-encoded %s, want %s", FormatWord(encoded), FormatWord(want))
	}
	return res
}

// Run checks every vector in order.
func (c *Checker) Run(vectors []Vector) []Result {
	results := make([]Result, len(vectors))
	for i, v := range vectors {
		results[i] = c.Check(v)
	}
	return results
}

func (c *Checker) log(event log.Event, v Vector) {
	if c.Logger == nil {
		return
	}
	event.Source = v.Name
	if v.Source != "" {
		event.Source = v.Source + ":" + v.Name
	}
	c.Logger.Log(event)
}
