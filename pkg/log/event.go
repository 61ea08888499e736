package log

import (
	"errors"
	"fmt"
	"time"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// Event represents one captured header codec operation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the capture session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates whether a word was received or produced.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Source describes where the word came from (file, shell, argument).
	Source string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Header *HeaderEvent    `cbor:"6,keyasint,omitempty"`
	Error  *ErrorEventData `cbor:"7,keyasint,omitempty"`
}

// Direction indicates the codec direction.
type Direction uint8

const (
	// DirectionIn indicates a decoded (received) word.
	DirectionIn Direction = 0
	// DirectionOut indicates an encoded (transmitted) word.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryHeader indicates a successfully decoded or encoded header.
	CategoryHeader Category = 0
	// CategoryError indicates a failed decode or encode.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryHeader:
		return "HEADER"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// HeaderEvent captures a header word and its fields.
type HeaderEvent struct {
	// Shape is the header layout the word was interpreted with.
	Shape mctp.Shape `cbor:"1,keyasint"`

	// Word is the raw 32-bit header.
	Word uint32 `cbor:"2,keyasint"`

	// Fields maps field names to their raw values.
	Fields map[string]uint32 `cbor:"3,keyasint,omitempty"`

	// Summary is the human-readable form of the decoded header.
	Summary string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures a codec failure.
type ErrorEventData struct {
	// Shape is the header layout being decoded or encoded.
	Shape mctp.Shape `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Field is the name of the failing field, if known.
	Field string `cbor:"3,keyasint,omitempty"`

	// Raw is the offending field value, if known.
	Raw *uint32 `cbor:"4,keyasint,omitempty"`

	// Word is the input word for decode failures.
	Word *uint32 `cbor:"5,keyasint,omitempty"`
}

// NewDecodeEvent builds an event for decoding word as shape.
// h is the decoded header and err the decode error; exactly one is used.
func NewDecodeEvent(sessionID string, shape mctp.Shape, word uint32, h mctp.Header, err error) Event {
	event := Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: DirectionIn,
	}
	if err != nil {
		event.Category = CategoryError
		event.Error = newErrorData(shape, err)
		event.Error.Word = &word
		return event
	}
	event.Category = CategoryHeader
	event.Header = newHeaderEvent(shape, word, h)
	return event
}

// NewEncodeEvent builds an event for encoding h, which produced word or err.
func NewEncodeEvent(sessionID string, h mctp.Header, word uint32, err error) Event {
	shape := mctp.ShapeOf(h)
	event := Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: DirectionOut,
	}
	if err != nil {
		event.Category = CategoryError
		event.Error = newErrorData(shape, err)
		return event
	}
	event.Category = CategoryHeader
	event.Header = newHeaderEvent(shape, word, h)
	return event
}

func newHeaderEvent(shape mctp.Shape, word uint32, h mctp.Header) *HeaderEvent {
	he := &HeaderEvent{
		Shape:  shape,
		Word:   word,
		Fields: make(map[string]uint32),
	}
	for _, fv := range shape.Fields(word) {
		he.Fields[fv.Field.Name] = fv.Value
	}
	if s, ok := h.(fmt.Stringer); ok {
		he.Summary = s.String()
	}
	return he
}

func newErrorData(shape mctp.Shape, err error) *ErrorEventData {
	data := &ErrorEventData{
		Shape:   shape,
		Message: err.Error(),
	}

	var de *bitfield.DecodeError
	var ee *bitfield.EncodeError
	switch {
	case errors.As(err, &de):
		raw := de.Raw
		data.Field = de.Field.Name
		data.Raw = &raw
	case errors.As(err, &ee):
		raw := ee.Value
		data.Field = ee.Field.Name
		data.Raw = &raw
	}
	return data
}
