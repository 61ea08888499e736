package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mctp-protocol/mctp-go/pkg/log"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

func TestFormatHeaderEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionIn,
		Category:  log.CategoryHeader,
		Source:    "capture.yaml",
		Header: &log.HeaderEvent{
			Shape: mctp.ShapeVendorDefinedPCI,
			Word:  0x7E12_3400,
			Fields: map[string]uint32{
				mctp.FieldIntegrityCheck: 0,
				mctp.FieldMessageType:    0x7E,
				mctp.FieldPCIVendorID:    0x1234,
			},
			Summary: "VendorDefinedPciMessageHeader{...}",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[sess:abc12345]",
		"IN",
		"HEADER",
		"vendor_pci",
		"Source: capture.yaml",
		"Word: 0x7E123400",
		"pci_vendor_id: 0x1234",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}

	// fields print in layout order
	if strings.Index(output, "message_type") > strings.Index(output, "pci_vendor_id") {
		t.Errorf("fields not in layout order: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	raw := uint32(0x42)
	word := uint32(0x4200_0000)
	event := log.Event{
		SessionID: "short",
		Direction: log.DirectionIn,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Shape:   mctp.ShapeGeneric,
			Message: "decode failed",
			Field:   mctp.FieldMessageType,
			Raw:     &raw,
			Word:    &word,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"[sess:short]",
		"ERROR",
		"generic",
		"Message: decode failed",
		"Field: message_type",
		"Raw: 0x42",
		"Word: 0x42000000",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestParseDirectionAndCategoryFlags(t *testing.T) {
	if d, err := ParseDirectionFlag("OUT"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(OUT) = %v, %v", d, err)
	}
	if _, err := ParseDirectionFlag("sideways"); err == nil {
		t.Error("expected error for invalid direction")
	}
	if c, err := ParseCategoryFlag("error"); err != nil || c != log.CategoryError {
		t.Errorf("ParseCategoryFlag(error) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("frame"); err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestRunViewWithCapturedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.mlog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	s := NewSession(fl)
	var discard bytes.Buffer
	if err := RunDecode(s, "7E123400", nil, &discard); err != nil {
		t.Fatalf("RunDecode failed: %v", err)
	}
	_ = RunDecode(s, "42000000", nil, &discard)
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()
	if strings.Count(output, "[sess:"+s.ID[:8]+"]") != 2 {
		t.Errorf("expected two events for the session, got: %s", output)
	}

	errCat := log.CategoryError
	buf.Reset()
	if err := RunView(path, log.Filter{Category: &errCat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Contains(buf.String(), "HEADER") || !strings.Contains(buf.String(), "Field: message_type") {
		t.Errorf("filter not applied: %s", buf.String())
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView(filepath.Join(t.TempDir(), "missing.mlog"), log.Filter{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}
