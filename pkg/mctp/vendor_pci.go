package mctp

import (
	"fmt"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
)

// Bits 0-7 of the vendor-defined PCI header are unused: ignored on decode
// and written as zero on encode.
var vendorDefinedPciMessageHeaderLayout = bitfield.MustLayout(
	integrityCheckField,
	messageTypeField,
	bitfield.Range(FieldPCIVendorID, 8, 23),
)

// VendorDefinedPciMessageHeader is the header of a vendor-defined message
// identified by a PCI vendor ID.
type VendorDefinedPciMessageHeader struct {
	IntegrityCheck uint8
	MessageType    MessageType
	PCIVendorID    uint16
}

// ParseVendorDefinedPciMessageHeader decodes a raw word into a
// VendorDefinedPciMessageHeader.
func ParseVendorDefinedPciMessageHeader(word uint32) (VendorDefinedPciMessageHeader, error) {
	dec := vendorDefinedPciMessageHeaderLayout.NewDecoder(word)
	h := VendorDefinedPciMessageHeader{
		IntegrityCheck: uint8(dec.Uint(FieldIntegrityCheck)),
		MessageType:    bitfield.DecodeEnum(dec, FieldMessageType, ParseMessageType),
		PCIVendorID:    uint16(dec.Uint(FieldPCIVendorID)),
	}
	if err := dec.Err(); err != nil {
		return VendorDefinedPciMessageHeader{}, err
	}
	return h, nil
}

// Uint32 encodes h to its raw word.
func (h VendorDefinedPciMessageHeader) Uint32() (uint32, error) {
	return vendorDefinedPciMessageHeaderLayout.NewEncoder().
		Uint(FieldIntegrityCheck, uint32(h.IntegrityCheck)).
		Enum(FieldMessageType, h.MessageType).
		Uint(FieldPCIVendorID, uint32(h.PCIVendorID)).
		Word()
}

// Generic converts h to a MessageHeader by decoding its encoded word.
// It only fails when h itself cannot be encoded.
func (h VendorDefinedPciMessageHeader) Generic() (MessageHeader, error) {
	word, err := h.Uint32()
	if err != nil {
		return MessageHeader{}, err
	}
	return ParseMessageHeader(word)
}

// MarshalBinary encodes h as four bytes, most significant first.
func (h VendorDefinedPciMessageHeader) MarshalBinary() ([]byte, error) {
	return marshalWord(h)
}

// UnmarshalBinary decodes four bytes, most significant first, into h.
func (h *VendorDefinedPciMessageHeader) UnmarshalBinary(data []byte) error {
	return unmarshalWord(data, h, ParseVendorDefinedPciMessageHeader)
}

// String returns a human-readable representation of h.
func (h VendorDefinedPciMessageHeader) String() string {
	return fmt.Sprintf("VendorDefinedPciMessageHeader{ic=%d type=%s vendor=0x%04X}",
		h.IntegrityCheck, h.MessageType, h.PCIVendorID)
}
