package mctp

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beWord(b ...byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func beBytes(word uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, word)
}

func TestMessageHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header MessageHeader
	}{
		{"control", MessageHeader{IntegrityCheck: 0, MessageType: MessageTypeControl}},
		{"control with ic", MessageHeader{IntegrityCheck: 1, MessageType: MessageTypeControl}},
		{"vendor pci", MessageHeader{IntegrityCheck: 0, MessageType: MessageTypeVendorDefinedPCI}},
		{"vendor pci with ic", MessageHeader{IntegrityCheck: 1, MessageType: MessageTypeVendorDefinedPCI}},
		{"pldm with rest", MessageHeader{MessageType: MessageTypePLDM, Rest: 0xABCDEF}},
		{"spdm max rest", MessageHeader{IntegrityCheck: 1, MessageType: MessageTypeSPDM, Rest: 0xFFFFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, err := tt.header.Uint32()
			require.NoError(t, err)

			parsed, err := ParseMessageHeader(beWord(beBytes(word)...))
			require.NoError(t, err)
			assert.Equal(t, tt.header, parsed)
		})
	}
}

func TestMessageHeaderExactRoundTrip(t *testing.T) {
	// Every word with a known message type decodes and re-encodes unchanged.
	words := []uint32{0x0000_0000, 0x8000_0000, 0x7E12_3400, 0xFF12_34FF, 0x0512_3456, 0x81FF_FFFF}
	for _, w := range words {
		h, err := ParseMessageHeader(w)
		require.NoError(t, err, "word 0x%08X", w)

		got, err := h.Uint32()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestMessageHeaderRejectsUnknownMessageType(t *testing.T) {
	h, err := ParseMessageHeader(beWord(0x42, 0x00, 0x00, 0x00))
	require.Error(t, err)
	assert.Equal(t, MessageHeader{}, h)

	var de *bitfield.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, FieldMessageType, de.Field.Name)
	assert.Equal(t, uint32(0x42), de.Raw)
	assert.ErrorIs(t, err, bitfield.ErrUnknownVariant)
}

func TestMessageHeaderEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		header MessageHeader
		field  string
		cause  error
	}{
		{"integrity check overflow", MessageHeader{IntegrityCheck: 2}, FieldIntegrityCheck, bitfield.ErrOverflow},
		{"unknown message type", MessageHeader{MessageType: 0x42}, FieldMessageType, bitfield.ErrInvalidCode},
		{"message type wider than field", MessageHeader{MessageType: 0x80}, FieldMessageType, bitfield.ErrInvalidCode},
		{"rest overflow", MessageHeader{Rest: 0x0100_0000}, FieldRest, bitfield.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.header.Uint32()
			require.Error(t, err)

			var ee *bitfield.EncodeError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.field, ee.Field.Name)
			assert.ErrorIs(t, err, tt.cause)

			_, err = tt.header.Generic()
			assert.Error(t, err)
		})
	}
}

func TestMessageHeaderBinary(t *testing.T) {
	h := MessageHeader{IntegrityCheck: 1, MessageType: MessageTypeVendorDefinedPCI, Rest: 0x123400}

	data, err := h.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFE, 0x12, 0x34, 0x00}, data)

	var parsed MessageHeader
	require.NoError(t, parsed.UnmarshalBinary(data))
	assert.Equal(t, h, parsed)

	err = parsed.UnmarshalBinary([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrShortHeader)
	assert.Equal(t, h, parsed, "failed unmarshal must leave destination unchanged")
}

func TestMessageHeaderUnmarshalBinaryInvalid(t *testing.T) {
	var h MessageHeader
	err := h.UnmarshalBinary([]byte{0x42, 0x00, 0x00, 0x00})
	assert.Equal(t, FieldMessageType, bitfield.FieldName(err))
}

func TestShapeFor(t *testing.T) {
	assert.Equal(t, ShapeControl, ShapeFor(MessageTypeControl))
	assert.Equal(t, ShapeVendorDefinedPCI, ShapeFor(MessageTypeVendorDefinedPCI))
	assert.Equal(t, ShapeGeneric, ShapeFor(MessageTypePLDM))
	assert.Equal(t, ShapeGeneric, ShapeFor(MessageTypeVendorDefinedIANA))

	h := MessageHeader{MessageType: MessageTypeControl}
	assert.Equal(t, ShapeControl, h.Shape())
}

func TestDetectShape(t *testing.T) {
	assert.Equal(t, ShapeControl, DetectShape(beWord(0x80, 0x80, 0x02, 0x00)))
	assert.Equal(t, ShapeVendorDefinedPCI, DetectShape(beWord(0x7E, 0x12, 0x34, 0x00)))
	assert.Equal(t, ShapeGeneric, DetectShape(beWord(0x05, 0xFF, 0xFF, 0xFF)))
	assert.Equal(t, ShapeGeneric, DetectShape(beWord(0x42, 0x00, 0x00, 0x00)))
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{ShapeGeneric, ShapeControl, ShapeVendorDefinedPCI} {
		parsed, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseShape("ethernet")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Shape(9).String())
}

func TestShapeParse(t *testing.T) {
	word := beWord(0x7E, 0x12, 0x34, 0x00)

	h, err := ShapeVendorDefinedPCI.Parse(word)
	require.NoError(t, err)
	assert.Equal(t, VendorDefinedPciMessageHeader{MessageType: MessageTypeVendorDefinedPCI, PCIVendorID: 0x1234}, h)
	assert.Equal(t, ShapeVendorDefinedPCI, ShapeOf(h))

	h, err = ShapeGeneric.Parse(word)
	require.NoError(t, err)
	assert.Equal(t, ShapeGeneric, ShapeOf(h))

	h, err = ShapeControl.Parse(0)
	require.NoError(t, err)
	assert.Equal(t, ShapeControl, ShapeOf(h))

	h, err = ShapeControl.Parse(beWord(0x00, 0x00, 0xFF, 0x00))
	assert.Error(t, err)
	assert.Nil(t, h)

	_, err = Shape(9).Parse(0)
	assert.Error(t, err)
	assert.Nil(t, Shape(9).Layout())
	assert.Nil(t, Shape(9).Fields(0))
}

func TestShapeFields(t *testing.T) {
	fields := ShapeControl.Fields(beWord(0x80, 0xDF, 0x0F, 0x80))
	require.Len(t, fields, 7)

	got := make(map[string]uint32, len(fields))
	for _, fv := range fields {
		got[fv.Field.Name] = fv.Value
	}
	assert.Equal(t, map[string]uint32{
		FieldIntegrityCheck: 1,
		FieldMessageType:    0,
		FieldRequestBit:     1,
		FieldDatagramBit:    1,
		FieldInstanceID:     0x1F,
		FieldCommandCode:    0x0F,
		FieldCompletionCode: 0x80,
	}, got)
	assert.Equal(t, FieldIntegrityCheck, fields[0].Field.Name)
}

func TestHeaderInterface(t *testing.T) {
	var _ Header = MessageHeader{}
	var _ Header = ControlMessageHeader{}
	var _ Header = VendorDefinedPciMessageHeader{}
}
