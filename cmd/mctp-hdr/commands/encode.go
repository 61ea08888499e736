package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
	"github.com/mctp-protocol/mctp-go/pkg/transport"
)

// HeaderDescription is a header described by field values, as read from YAML:
//
//	shape: control
//	request_bit: 1
//	instance_id: 3
//	command_code: 0x02
//
// Omitted fields are zero. When Shape is empty it is chosen from
// message_type.
type HeaderDescription struct {
	Shape  string            `yaml:"shape,omitempty"`
	Fields map[string]uint32 `yaml:",inline"`
}

// ParseHeaderDescription parses a header description from YAML bytes.
func ParseHeaderDescription(data []byte) (*HeaderDescription, error) {
	var desc HeaderDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse header description: %w", err)
	}
	return &desc, nil
}

// Build converts the description to a typed header. Field overflow and
// invalid enum values are reported as *bitfield.EncodeError.
func (hs *HeaderDescription) Build() (mctp.Header, error) {
	shape := mctp.ShapeGeneric
	if hs.Shape != "" {
		s, err := mctp.ParseShape(hs.Shape)
		if err != nil {
			return nil, err
		}
		shape = s
	} else if mt, ok := mctp.ParseMessageType(hs.Fields[mctp.FieldMessageType]); ok {
		shape = mctp.ShapeFor(mt)
	}

	layout := shape.Layout()
	names := make([]string, 0, len(hs.Fields))
	for name := range hs.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := layout.Field(name); !ok {
			return nil, fmt.Errorf("%w: %q is not part of the %s layout", bitfield.ErrUnknownField, name, shape)
		}
	}

	enc := layout.NewEncoder()
	for _, f := range layout.Fields() {
		enc.Uint(f.Name, hs.Fields[f.Name])
	}
	word, err := enc.Word()
	if err != nil {
		return nil, err
	}

	h, err := shape.Parse(word)
	if err != nil {
		var de *bitfield.DecodeError
		if errors.As(err, &de) {
			return nil, &bitfield.EncodeError{Field: de.Field, Value: de.Raw, Err: de.Err}
		}
		return nil, err
	}
	return h, nil
}

// RunEncode encodes the header described in the YAML file at path.
// A path of "-" reads standard input. When output is set the encoded
// frame is appended to that binary capture.
func RunEncode(s *Session, path, output string, w io.Writer) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read header description: %w", err)
	}

	desc, err := ParseHeaderDescription(data)
	if err != nil {
		return err
	}
	h, err := encodeDescription(s, desc, path, w)
	if err != nil || output == "" {
		return err
	}
	return appendFrame(s, output, h)
}

// appendFrame appends h to the binary capture at path.
func appendFrame(s *Session, path string, h mctp.Header) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}

	writer := transport.NewHeaderWriter(f)
	if s.Order != nil {
		writer.SetByteOrder(s.Order)
	}
	if err := writer.WriteHeader(h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeDescription(s *Session, desc *HeaderDescription, source string, w io.Writer) (mctp.Header, error) {
	h, err := desc.Build()
	if err != nil {
		return nil, err
	}
	word, err := s.Encode(h, source)
	if err != nil {
		return nil, err
	}
	formatHeader(w, mctp.ShapeOf(h), word, h)
	return h, nil
}
