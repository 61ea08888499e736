package bitfield

import "fmt"

// WordBits is the width of every word handled by this package.
const WordBits = 32

// Field is a named inclusive bit range within a 32-bit word.
type Field struct {
	Name string
	Low  uint8
	High uint8
}

// Bits returns a single-bit field at position bit.
func Bits(name string, bit uint8) Field {
	return Field{Name: name, Low: bit, High: bit}
}

// Range returns a field spanning bits low through high inclusive.
func Range(name string, low, high uint8) Field {
	return Field{Name: name, Low: low, High: high}
}

// Width returns the number of bits the field occupies.
func (f Field) Width() uint8 {
	return f.High - f.Low + 1
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint32 {
	if f.Width() >= WordBits {
		return ^uint32(0)
	}
	return uint32(1)<<f.Width() - 1
}

// Mask returns the field's bits in word position.
func (f Field) Mask() uint32 {
	return f.Max() << f.Low
}

// Extract returns the field value held in word.
func (f Field) Extract(word uint32) uint32 {
	return (word >> f.Low) & f.Max()
}

// Fits reports whether v can be stored in the field without truncation.
func (f Field) Fits(v uint32) bool {
	return v <= f.Max()
}

// String returns the field in name[low:high] notation.
func (f Field) String() string {
	if f.Low == f.High {
		return fmt.Sprintf("%s[%d]", f.Name, f.Low)
	}
	return fmt.Sprintf("%s[%d:%d]", f.Name, f.Low, f.High)
}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field %s: empty name", f)
	}
	if f.Low > f.High {
		return fmt.Errorf("field %s: low bit above high bit", f)
	}
	if f.High >= WordBits {
		return fmt.Errorf("field %s: bit %d outside %d-bit word", f, f.High, WordBits)
	}
	return nil
}
