package mctp

import (
	"fmt"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
)

var controlMessageHeaderLayout = bitfield.MustLayout(
	integrityCheckField,
	messageTypeField,
	bitfield.Bits(FieldRequestBit, 23),
	bitfield.Bits(FieldDatagramBit, 22),
	bitfield.Range(FieldInstanceID, 16, 20),
	bitfield.Range(FieldCommandCode, 8, 15),
	bitfield.Range(FieldCompletionCode, 0, 7),
)

// ControlMessageHeader is the header of an MCTP control message, used when
// the message type is MessageTypeControl. Bit 21 is unused.
type ControlMessageHeader struct {
	IntegrityCheck uint8
	MessageType    MessageType
	RequestBit     uint8
	DatagramBit    uint8
	InstanceID     uint8
	CommandCode    CommandCode
	CompletionCode CompletionCode
}

// ParseControlMessageHeader decodes a raw word into a ControlMessageHeader.
func ParseControlMessageHeader(word uint32) (ControlMessageHeader, error) {
	dec := controlMessageHeaderLayout.NewDecoder(word)
	h := ControlMessageHeader{
		IntegrityCheck: uint8(dec.Uint(FieldIntegrityCheck)),
		MessageType:    bitfield.DecodeEnum(dec, FieldMessageType, ParseMessageType),
		RequestBit:     uint8(dec.Uint(FieldRequestBit)),
		DatagramBit:    uint8(dec.Uint(FieldDatagramBit)),
		InstanceID:     uint8(dec.Uint(FieldInstanceID)),
		CommandCode:    bitfield.DecodeEnum(dec, FieldCommandCode, ParseCommandCode),
		CompletionCode: bitfield.DecodeEnum(dec, FieldCompletionCode, ParseCompletionCode),
	}
	if err := dec.Err(); err != nil {
		return ControlMessageHeader{}, err
	}
	return h, nil
}

// Uint32 encodes h to its raw word.
func (h ControlMessageHeader) Uint32() (uint32, error) {
	return controlMessageHeaderLayout.NewEncoder().
		Uint(FieldIntegrityCheck, uint32(h.IntegrityCheck)).
		Enum(FieldMessageType, h.MessageType).
		Uint(FieldRequestBit, uint32(h.RequestBit)).
		Uint(FieldDatagramBit, uint32(h.DatagramBit)).
		Uint(FieldInstanceID, uint32(h.InstanceID)).
		Enum(FieldCommandCode, h.CommandCode).
		Enum(FieldCompletionCode, h.CompletionCode).
		Word()
}

// Generic converts h to a MessageHeader by decoding its encoded word.
// It only fails when h itself cannot be encoded.
func (h ControlMessageHeader) Generic() (MessageHeader, error) {
	word, err := h.Uint32()
	if err != nil {
		return MessageHeader{}, err
	}
	return ParseMessageHeader(word)
}

// IsRequest returns true if the request bit is set.
func (h ControlMessageHeader) IsRequest() bool {
	return h.RequestBit == 1
}

// IsDatagram returns true if the datagram bit is set.
func (h ControlMessageHeader) IsDatagram() bool {
	return h.DatagramBit == 1
}

// MarshalBinary encodes h as four bytes, most significant first.
func (h ControlMessageHeader) MarshalBinary() ([]byte, error) {
	return marshalWord(h)
}

// UnmarshalBinary decodes four bytes, most significant first, into h.
func (h *ControlMessageHeader) UnmarshalBinary(data []byte) error {
	return unmarshalWord(data, h, ParseControlMessageHeader)
}

// String returns a human-readable representation of h.
func (h ControlMessageHeader) String() string {
	return fmt.Sprintf("ControlMessageHeader{ic=%d type=%s rq=%d d=%d iid=%d cmd=%s cc=%s}",
		h.IntegrityCheck, h.MessageType, h.RequestBit, h.DatagramBit,
		h.InstanceID, h.CommandCode, h.CompletionCode)
}
