// Package bitfield packs and unpacks named bit ranges of a 32-bit word.
//
// A Layout declares the ordered fields of a register-style value. Each field
// occupies an inclusive range [Low:High] where bit 0 is the least
// significant bit of the word.
//
// # Encoding
//
// An Encoder starts from a zero accumulator and ORs every field value into
// its range. Bits not covered by any field stay zero. A value that does not
// fit its field width is rejected rather than truncated.
//
//	enc := layout.NewEncoder()
//	enc.Uint("instance_id", 3)
//	enc.Enum("command_code", code)
//	word, err := enc.Word()
//
// # Decoding
//
// A Decoder extracts each field by mask and shift. Plain unsigned fields
// always decode. Enum fields go through DecodeEnum, which fails with a
// DecodeError when the extracted pattern names no value.
//
//	dec := layout.NewDecoder(word)
//	id := dec.Uint("instance_id")
//	code := bitfield.DecodeEnum(dec, "command_code", ParseCommandCode)
//	if err := dec.Err(); err != nil {
//	    return Header{}, err
//	}
//
// Both Encoder and Decoder keep the first error and ignore later calls, so
// callers check once at the end.
package bitfield
