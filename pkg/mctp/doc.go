// Package mctp defines the MCTP message header shapes and their wire codec.
//
// Every MCTP message body starts with a 32-bit header word. The top byte
// carries the integrity-check bit and the 7-bit message type; the meaning of
// the remaining 24 bits depends on that message type.
//
// # Header Shapes
//
//   - MessageHeader: integrity check, message type, opaque 24-bit rest.
//     Used to find out which specific shape applies.
//   - ControlMessageHeader: MCTP control messages (request/datagram bits,
//     instance ID, command code, completion code).
//   - VendorDefinedPciMessageHeader: vendor-defined messages keyed by a
//     16-bit PCI vendor ID. The low byte is unused.
//
// Each shape decodes from a raw word with ParseX and encodes with Uint32.
// Decoding is all-or-nothing: on error the zero value is returned together
// with a *bitfield.DecodeError naming the field. Encoding fails only when a
// field value does not fit its bit range or an enum value has no code.
//
// # Byte Order
//
// Uint32 and ParseX work on the word as an integer. MarshalBinary and
// UnmarshalBinary use four bytes with the most significant byte first,
// which is the order the header bytes appear in an MCTP packet.
//
// # Narrowing to the Generic Header
//
// ControlMessageHeader.Generic and VendorDefinedPciMessageHeader.Generic
// re-encode the header and decode the resulting word as a MessageHeader, so
// the generic and specific encodings always agree bit for bit.
package mctp
