package bitfield

// Enum is implemented by field types that map to a numeric code.
// Code returns false when the value has no valid code.
type Enum interface {
	Code() (uint32, bool)
}

// Encoder accumulates field values into a word.
type Encoder struct {
	layout *Layout
	word   uint32
	err    error
}

// NewEncoder returns an Encoder with every bit cleared.
func (l *Layout) NewEncoder() *Encoder {
	return &Encoder{layout: l}
}

// Uint stores v in the named field.
func (e *Encoder) Uint(name string, v uint32) *Encoder {
	if e.err != nil {
		return e
	}
	f, err := e.layout.lookup(name)
	if err != nil {
		e.err = err
		return e
	}
	if !f.Fits(v) {
		e.err = &EncodeError{Field: f, Value: v, Err: ErrOverflow}
		return e
	}
	e.word |= v << f.Low
	return e
}

// Enum stores the numeric code of v in the named field.
func (e *Encoder) Enum(name string, v Enum) *Encoder {
	if e.err != nil {
		return e
	}
	code, ok := v.Code()
	if !ok {
		f, err := e.layout.lookup(name)
		if err != nil {
			e.err = err
			return e
		}
		e.err = &EncodeError{Field: f, Value: code, Err: ErrInvalidCode}
		return e
	}
	return e.Uint(name, code)
}

// Word returns the encoded word, or the first error encountered.
func (e *Encoder) Word() (uint32, error) {
	if e.err != nil {
		return 0, e.err
	}
	return e.word, nil
}

// Decoder extracts field values from a word.
type Decoder struct {
	layout *Layout
	word   uint32
	err    error
}

// NewDecoder returns a Decoder reading from word.
func (l *Layout) NewDecoder(word uint32) *Decoder {
	return &Decoder{layout: l, word: word}
}

// Uint returns the raw value of the named field.
func (d *Decoder) Uint(name string) uint32 {
	if d.err != nil {
		return 0
	}
	f, err := d.layout.lookup(name)
	if err != nil {
		d.err = err
		return 0
	}
	return f.Extract(d.word)
}

// Err returns the first error encountered while decoding.
func (d *Decoder) Err() error {
	return d.err
}

// Word returns the word being decoded.
func (d *Decoder) Word() uint32 {
	return d.word
}

// DecodeEnum extracts the named field and converts it with parse.
// A pattern parse rejects is recorded on d as a DecodeError.
func DecodeEnum[T any](d *Decoder, name string, parse func(uint32) (T, bool)) T {
	var zero T
	if d.err != nil {
		return zero
	}
	f, err := d.layout.lookup(name)
	if err != nil {
		d.err = err
		return zero
	}
	raw := f.Extract(d.word)
	v, ok := parse(raw)
	if !ok {
		d.err = &DecodeError{Field: f, Raw: raw, Err: ErrUnknownVariant}
		return zero
	}
	return v
}
