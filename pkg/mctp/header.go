package mctp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
)

// HeaderSize is the size of an encoded header in bytes.
const HeaderSize = 4

// Field names shared by the header layouts. Decode and encode errors name
// the failing field with these values.
const (
	FieldIntegrityCheck = "integrity_check"
	FieldMessageType    = "message_type"
	FieldRest           = "rest"
	FieldRequestBit     = "request_bit"
	FieldDatagramBit    = "datagram_bit"
	FieldInstanceID     = "instance_id"
	FieldCommandCode    = "command_code"
	FieldCompletionCode = "completion_code"
	FieldPCIVendorID    = "pci_vendor_id"
)

// ErrShortHeader is returned when a byte slice is not exactly HeaderSize long.
var ErrShortHeader = errors.New("mctp: header must be 4 bytes")

var (
	integrityCheckField = bitfield.Bits(FieldIntegrityCheck, 31)
	messageTypeField    = bitfield.Range(FieldMessageType, 24, 30)
)

var messageHeaderLayout = bitfield.MustLayout(
	integrityCheckField,
	messageTypeField,
	bitfield.Range(FieldRest, 0, 23),
)

// Header is implemented by every header shape.
type Header interface {
	// Uint32 encodes the header to its raw word.
	Uint32() (uint32, error)

	// Generic returns the header viewed as a MessageHeader.
	Generic() (MessageHeader, error)
}

// MessageHeader is the generic header common to all MCTP messages.
// Based on MessageType the word can be decoded again as a more specific
// header such as ControlMessageHeader.
type MessageHeader struct {
	IntegrityCheck uint8
	MessageType    MessageType
	Rest           uint32
}

// ParseMessageHeader decodes a raw word into a MessageHeader.
func ParseMessageHeader(word uint32) (MessageHeader, error) {
	dec := messageHeaderLayout.NewDecoder(word)
	h := MessageHeader{
		IntegrityCheck: uint8(dec.Uint(FieldIntegrityCheck)),
		MessageType:    bitfield.DecodeEnum(dec, FieldMessageType, ParseMessageType),
		Rest:           dec.Uint(FieldRest),
	}
	if err := dec.Err(); err != nil {
		return MessageHeader{}, err
	}
	return h, nil
}

// Uint32 encodes h to its raw word.
func (h MessageHeader) Uint32() (uint32, error) {
	return messageHeaderLayout.NewEncoder().
		Uint(FieldIntegrityCheck, uint32(h.IntegrityCheck)).
		Enum(FieldMessageType, h.MessageType).
		Uint(FieldRest, h.Rest).
		Word()
}

// Generic returns h unchanged after checking that it encodes.
func (h MessageHeader) Generic() (MessageHeader, error) {
	if _, err := h.Uint32(); err != nil {
		return MessageHeader{}, err
	}
	return h, nil
}

// Shape returns the specific header shape selected by the message type.
func (h MessageHeader) Shape() Shape {
	return ShapeFor(h.MessageType)
}

// MarshalBinary encodes h as four bytes, most significant first.
func (h MessageHeader) MarshalBinary() ([]byte, error) {
	return marshalWord(h)
}

// UnmarshalBinary decodes four bytes, most significant first, into h.
func (h *MessageHeader) UnmarshalBinary(data []byte) error {
	return unmarshalWord(data, h, ParseMessageHeader)
}

// String returns a human-readable representation of h.
func (h MessageHeader) String() string {
	return fmt.Sprintf("MessageHeader{ic=%d type=%s rest=0x%06X}", h.IntegrityCheck, h.MessageType, h.Rest)
}

// Shape names a header layout.
type Shape uint8

const (
	// ShapeGeneric is the generic MessageHeader.
	ShapeGeneric Shape = 0
	// ShapeControl is the ControlMessageHeader.
	ShapeControl Shape = 1
	// ShapeVendorDefinedPCI is the VendorDefinedPciMessageHeader.
	ShapeVendorDefinedPCI Shape = 2
)

// ShapeFor returns the most specific shape defined for t.
// Message types without a specific shape map to ShapeGeneric.
func ShapeFor(t MessageType) Shape {
	switch t {
	case MessageTypeControl:
		return ShapeControl
	case MessageTypeVendorDefinedPCI:
		return ShapeVendorDefinedPCI
	default:
		return ShapeGeneric
	}
}

// DetectShape returns the shape registered for the message type in word.
// Words whose generic header does not decode map to ShapeGeneric, so that
// decoding them reports the generic field error.
func DetectShape(word uint32) Shape {
	g, err := ParseMessageHeader(word)
	if err != nil {
		return ShapeGeneric
	}
	return g.Shape()
}

// ParseShape parses a shape name as produced by String.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "generic":
		return ShapeGeneric, nil
	case "control":
		return ShapeControl, nil
	case "vendor_pci":
		return ShapeVendorDefinedPCI, nil
	default:
		return 0, fmt.Errorf("unknown header shape %q (valid: generic, control, vendor_pci)", s)
	}
}

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeGeneric:
		return "generic"
	case ShapeControl:
		return "control"
	case ShapeVendorDefinedPCI:
		return "vendor_pci"
	default:
		return "unknown"
	}
}

// Parse decodes word with the layout of s.
func (s Shape) Parse(word uint32) (Header, error) {
	var (
		h   Header
		err error
	)
	switch s {
	case ShapeGeneric:
		h, err = ParseMessageHeader(word)
	case ShapeControl:
		h, err = ParseControlMessageHeader(word)
	case ShapeVendorDefinedPCI:
		h, err = ParseVendorDefinedPciMessageHeader(word)
	default:
		return nil, fmt.Errorf("unknown header shape %d", s)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Layout returns the bit layout of s, or nil for an unknown shape.
func (s Shape) Layout() *bitfield.Layout {
	switch s {
	case ShapeGeneric:
		return messageHeaderLayout
	case ShapeControl:
		return controlMessageHeaderLayout
	case ShapeVendorDefinedPCI:
		return vendorDefinedPciMessageHeaderLayout
	default:
		return nil
	}
}

func marshalWord(h Header) ([]byte, error) {
	word, err := h.Uint32()
	if err != nil {
		return nil, err
	}
	return binary.BigEndian.AppendUint32(make([]byte, 0, HeaderSize), word), nil
}

func unmarshalWord[T any](data []byte, dst *T, parse func(uint32) (T, error)) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d", ErrShortHeader, len(data))
	}
	v, err := parse(binary.BigEndian.Uint32(data))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ShapeOf returns the shape of h.
func ShapeOf(h Header) Shape {
	switch h.(type) {
	case ControlMessageHeader, *ControlMessageHeader:
		return ShapeControl
	case VendorDefinedPciMessageHeader, *VendorDefinedPciMessageHeader:
		return ShapeVendorDefinedPCI
	default:
		return ShapeGeneric
	}
}

// FieldValue is the raw value of one field of a word.
type FieldValue struct {
	Field bitfield.Field
	Value uint32
}

// Fields splits word into the raw field values of s's layout, in
// declaration order. No field is validated.
func (s Shape) Fields(word uint32) []FieldValue {
	layout := s.Layout()
	if layout == nil {
		return nil
	}
	fields := layout.Fields()
	out := make([]FieldValue, len(fields))
	for i, f := range fields {
		out[i] = FieldValue{Field: f, Value: f.Extract(word)}
	}
	return out
}
