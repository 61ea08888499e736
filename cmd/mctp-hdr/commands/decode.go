package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mctp-protocol/mctp-go/pkg/bitfield"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
	"github.com/mctp-protocol/mctp-go/pkg/transport"
	"github.com/mctp-protocol/mctp-go/pkg/vector"
)

// RunDecode decodes a hex word and prints the header.
func RunDecode(s *Session, input string, shape *mctp.Shape, w io.Writer) error {
	word, err := s.ParseWord(input)
	if err != nil {
		return fmt.Errorf("invalid header %q: %w", input, err)
	}

	h, sh, err := s.Decode(word, shape, "argument")
	if err != nil {
		formatDecodeError(w, sh, word, err)
		return err
	}
	formatHeader(w, sh, word, h)
	return nil
}

// StreamSummary counts the frames of a decoded header stream.
type StreamSummary struct {
	Frames int
	Failed int
}

// RunDecodeFile decodes every header in a binary capture of back-to-back
// 4-byte words. Frames that fail to decode are reported and skipped.
func RunDecodeFile(s *Session, path string, shape *mctp.Shape, w io.Writer) (StreamSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return StreamSummary{}, fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	return decodeStream(s, f, shape, w)
}

func decodeStream(s *Session, r io.Reader, shape *mctp.Shape, w io.Writer) (StreamSummary, error) {
	var summary StreamSummary

	reader := transport.NewHeaderReader(r)
	reader.SetShape(shape)
	reader.SetLogger(s.Logger, s.ID)
	if s.Order != nil {
		reader.SetByteOrder(s.Order)
	}

	for {
		h, word, err := reader.ReadHeader()
		if err == io.EOF {
			break
		}
		if errors.Is(err, transport.ErrFrameTruncated) {
			fmt.Fprintf(w, "#%d truncated\n", reader.Count())
			summary.Failed++
			break
		}

		summary.Frames++
		fmt.Fprintf(w, "#%d ", reader.Count()-1)
		used := mctp.DetectShape(word)
		if shape != nil {
			used = *shape
		}
		if err != nil {
			var de *bitfield.DecodeError
			if !errors.As(err, &de) {
				return summary, err
			}
			summary.Failed++
			formatDecodeError(w, used, word, err)
			continue
		}
		formatHeader(w, used, word, h)
	}
	return summary, nil
}

// formatHeader writes the decoded header and its field table.
func formatHeader(w io.Writer, shape mctp.Shape, word uint32, h mctp.Header) {
	fmt.Fprintf(w, "%s  0x%08X  [%s]\n", shape, word, vector.FormatWord(word))
	if s, ok := h.(fmt.Stringer); ok {
		fmt.Fprintf(w, "  %s\n", s.String())
	}
	for _, fv := range shape.Fields(word) {
		fmt.Fprintf(w, "  %-16s %-10s 0x%X\n", fv.Field.Name, bitRange(fv.Field), fv.Value)
	}
	if unused := shape.Layout().UnusedMask(); unused != 0 {
		fmt.Fprintf(w, "  %-16s %-10s 0x%08X\n", "(unused)", "", word&unused)
	}
}

// formatDecodeError writes a decode failure, naming the field when known.
func formatDecodeError(w io.Writer, shape mctp.Shape, word uint32, err error) {
	fmt.Fprintf(w, "%s  0x%08X  [%s]\n", shape, word, vector.FormatWord(word))
	var de *bitfield.DecodeError
	if errors.As(err, &de) {
		fmt.Fprintf(w, "  error: field %s %s = 0x%X: %v\n", de.Field.Name, bitRange(de.Field), de.Raw, de.Err)
		return
	}
	fmt.Fprintf(w, "  error: %v\n", err)
}

func bitRange(f bitfield.Field) string {
	if f.Low == f.High {
		return fmt.Sprintf("[%d]", f.Low)
	}
	return fmt.Sprintf("[%d:%d]", f.Low, f.High)
}
