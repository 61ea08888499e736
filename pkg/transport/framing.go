package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/mctp-protocol/mctp-go/pkg/log"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// FrameSize is the size of one header frame in bytes.
const FrameSize = mctp.HeaderSize

// ErrFrameTruncated indicates the stream ended inside a header.
var ErrFrameTruncated = errors.New("header frame truncated")

// HeaderWriter writes header words to an underlying writer.
type HeaderWriter struct {
	w     io.Writer
	order binary.ByteOrder
	mu    sync.Mutex

	// Logging support (optional)
	logger    log.Logger
	sessionID string
	count     int
}

// NewHeaderWriter creates a new big-endian header writer.
func NewHeaderWriter(w io.Writer) *HeaderWriter {
	return &HeaderWriter{
		w:     w,
		order: binary.BigEndian,
	}
}

// SetByteOrder sets the byte order used for each word.
func (hw *HeaderWriter) SetByteOrder(order binary.ByteOrder) {
	hw.order = order
}

// SetLogger configures logging for this writer.
// Pass nil to disable logging.
func (hw *HeaderWriter) SetLogger(logger log.Logger, sessionID string) {
	hw.logger = logger
	hw.sessionID = sessionID
}

// WriteHeader encodes h and writes it as one frame.
// Thread-safe: can be called from multiple goroutines.
func (hw *HeaderWriter) WriteHeader(h mctp.Header) error {
	word, err := h.Uint32()

	hw.mu.Lock()
	defer hw.mu.Unlock()

	if hw.logger != nil {
		event := log.NewEncodeEvent(hw.sessionID, h, word, err)
		event.Source = "frame " + strconv.Itoa(hw.count)
		hw.logger.Log(event)
	}
	if err != nil {
		return err
	}
	if err := hw.writeWord(word); err != nil {
		return err
	}
	hw.count++
	return nil
}

// WriteWord writes a raw word without validating it.
func (hw *HeaderWriter) WriteWord(word uint32) error {
	hw.mu.Lock()
	defer hw.mu.Unlock()

	if err := hw.writeWord(word); err != nil {
		return err
	}
	hw.count++
	return nil
}

func (hw *HeaderWriter) writeWord(word uint32) error {
	var buf [FrameSize]byte
	hw.order.PutUint32(buf[:], word)
	if _, err := hw.w.Write(buf[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// HeaderReader reads header words from an underlying reader.
type HeaderReader struct {
	r     io.Reader
	order binary.ByteOrder
	shape *mctp.Shape
	buf   [FrameSize]byte
	count int

	// Logging support (optional)
	logger    log.Logger
	sessionID string
}

// NewHeaderReader creates a new big-endian header reader.
func NewHeaderReader(r io.Reader) *HeaderReader {
	return &HeaderReader{
		r:     r,
		order: binary.BigEndian,
	}
}

// SetByteOrder sets the byte order used for each word.
func (hr *HeaderReader) SetByteOrder(order binary.ByteOrder) {
	hr.order = order
}

// SetShape fixes the layout used by ReadHeader. Nil restores dispatch on
// the message type.
func (hr *HeaderReader) SetShape(shape *mctp.Shape) {
	hr.shape = shape
}

// SetLogger configures logging for this reader.
// Pass nil to disable logging.
func (hr *HeaderReader) SetLogger(logger log.Logger, sessionID string) {
	hr.logger = logger
	hr.sessionID = sessionID
}

// Count returns the number of frames read so far.
func (hr *HeaderReader) Count() int {
	return hr.count
}

// ReadWord reads the next raw word.
// Returns io.EOF at a frame boundary and ErrFrameTruncated inside a frame.
func (hr *HeaderReader) ReadWord() (uint32, error) {
	if _, err := io.ReadFull(hr.r, hr.buf[:]); err != nil {
		if err == io.EOF {
			return 0, err
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrFrameTruncated
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}
	hr.count++
	return hr.order.Uint32(hr.buf[:]), nil
}

// ReadHeader reads and decodes the next header. The raw word is returned
// even when decoding fails.
func (hr *HeaderReader) ReadHeader() (mctp.Header, uint32, error) {
	word, err := hr.ReadWord()
	if err != nil {
		return nil, 0, err
	}

	shape := mctp.DetectShape(word)
	if hr.shape != nil {
		shape = *hr.shape
	}
	h, err := shape.Parse(word)

	if hr.logger != nil {
		event := log.NewDecodeEvent(hr.sessionID, shape, word, h, err)
		event.Source = "frame " + strconv.Itoa(hr.count-1)
		hr.logger.Log(event)
	}
	if err != nil {
		return nil, word, fmt.Errorf("frame %d: %w", hr.count-1, err)
	}
	return h, word, nil
}

// Framer combines header reading and writing.
type Framer struct {
	*HeaderReader
	*HeaderWriter
}

// NewFramer creates a new framer for bidirectional header streams.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		HeaderReader: NewHeaderReader(rw),
		HeaderWriter: NewHeaderWriter(rw),
	}
}

// SetLogger configures logging for both directions.
func (f *Framer) SetLogger(logger log.Logger, sessionID string) {
	f.HeaderReader.SetLogger(logger, sessionID)
	f.HeaderWriter.SetLogger(logger, sessionID)
}

// SetByteOrder sets the byte order for both directions.
func (f *Framer) SetByteOrder(order binary.ByteOrder) {
	f.HeaderReader.SetByteOrder(order)
	f.HeaderWriter.SetByteOrder(order)
}
