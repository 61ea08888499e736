package bitfield

import "fmt"

// Layout is an ordered set of non-overlapping fields over a 32-bit word.
// A Layout is immutable after construction and safe for concurrent use.
type Layout struct {
	fields []Field
	index  map[string]int
	used   uint32
}

// NewLayout validates fields and returns a Layout.
// Fields must have unique names and must not overlap.
func NewLayout(fields ...Field) (*Layout, error) {
	l := &Layout{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := l.index[f.Name]; dup {
			return nil, fmt.Errorf("field %s: duplicate name", f)
		}
		if l.used&f.Mask() != 0 {
			return nil, fmt.Errorf("field %s: overlaps another field", f)
		}
		l.index[f.Name] = len(l.fields)
		l.fields = append(l.fields, f)
		l.used |= f.Mask()
	}
	return l, nil
}

// MustLayout is like NewLayout but panics on an invalid declaration.
// Intended for package-level layout variables.
func MustLayout(fields ...Field) *Layout {
	l, err := NewLayout(fields...)
	if err != nil {
		panic(fmt.Sprintf("bitfield: invalid layout: %v", err))
	}
	return l
}

// Fields returns a copy of the declared fields in declaration order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Field returns the field with the given name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// UsedMask returns the bits covered by at least one field.
func (l *Layout) UsedMask() uint32 {
	return l.used
}

// UnusedMask returns the bits covered by no field.
func (l *Layout) UnusedMask() uint32 {
	return ^l.used
}

func (l *Layout) lookup(name string) (Field, error) {
	f, ok := l.Field(name)
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}
