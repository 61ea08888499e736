// Package commands implements the mctp-hdr CLI commands.
package commands

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mctp-protocol/mctp-go/pkg/log"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
	"github.com/mctp-protocol/mctp-go/pkg/vector"
)

// Session ties the commands of one CLI invocation to a protocol logger.
type Session struct {
	// ID tags every event logged by this session.
	ID string

	// Logger receives decode and encode events.
	Logger log.Logger

	// Order is the byte order of hex input. Nil means big endian.
	Order binary.ByteOrder
}

// NewSession creates a session with a fresh ID.
func NewSession(logger log.Logger) *Session {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Session{
		ID:     uuid.New().String(),
		Logger: logger,
		Order:  binary.BigEndian,
	}
}

// ParseWord parses a hex word in the session's byte order.
func (s *Session) ParseWord(in string) (uint32, error) {
	word, err := vector.ParseWord(in)
	if err != nil {
		return 0, err
	}
	if s.Order == binary.LittleEndian {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], word)
		word = binary.LittleEndian.Uint32(b[:])
	}
	return word, nil
}

// Decode decodes word with shape. A nil shape decodes the generic header
// first and then uses the shape registered for its message type.
func (s *Session) Decode(word uint32, shape *mctp.Shape, source string) (mctp.Header, mctp.Shape, error) {
	sh := mctp.DetectShape(word)
	if shape != nil {
		sh = *shape
	}

	h, err := sh.Parse(word)
	event := log.NewDecodeEvent(s.ID, sh, word, h, err)
	event.Source = source
	s.Logger.Log(event)
	return h, sh, err
}

// Encode encodes h and logs the result.
func (s *Session) Encode(h mctp.Header, source string) (uint32, error) {
	word, err := h.Uint32()
	event := log.NewEncodeEvent(s.ID, h, word, err)
	event.Source = source
	s.Logger.Log(event)
	return word, err
}

// ParseShapeFlag parses a -shape value. "auto" returns nil.
func ParseShapeFlag(s string) (*mctp.Shape, error) {
	s = strings.ToLower(s)
	if s == "" || s == "auto" {
		return nil, nil
	}
	shape, err := mctp.ParseShape(s)
	if err != nil {
		return nil, err
	}
	return &shape, nil
}

// ParseOrderFlag parses a -order value (case-insensitive).
func ParseOrderFlag(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "", "big", "be":
		return binary.BigEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("invalid byte order: %s (must be big or little)", s)
	}
}
