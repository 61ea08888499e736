package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
	logger.Log(Event{Header: &HeaderEvent{}})
	logger.Log(Event{Error: &ErrorEventData{}})
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}

	multi := NewMultiLogger(mock1, nil, mock2)
	multi.Log(Event{SessionID: "sess-123"})

	for i, mock := range []*mockLogger{mock1, mock2} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].SessionID != "sess-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, mock.events[0].SessionID, "sess-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	NewMultiLogger().Log(Event{})
}

func TestSlogAdapterLogsHeaderEvent(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(slogger).Log(Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Direction: DirectionIn,
		Category:  CategoryHeader,
		Source:    "shell",
		Header: &HeaderEvent{
			Shape:   mctp.ShapeVendorDefinedPCI,
			Word:    0x7E12_3400,
			Summary: "VendorDefinedPciMessageHeader{...}",
		},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	want := map[string]any{
		"level":      "DEBUG",
		"session_id": "sess-123",
		"direction":  "IN",
		"category":   "HEADER",
		"source":     "shell",
		"shape":      "vendor_pci",
		"word":       "0x7E123400",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterLogsErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	raw := uint32(0x42)
	word := uint32(0x4200_0000)
	NewSlogAdapter(slogger).Log(Event{
		SessionID: "sess-123",
		Category:  CategoryError,
		Error: &ErrorEventData{
			Shape:   mctp.ShapeGeneric,
			Message: "bad type",
			Field:   mctp.FieldMessageType,
			Raw:     &raw,
			Word:    &word,
		},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", entry["level"])
	}
	if entry["field"] != mctp.FieldMessageType {
		t.Errorf("field: got %v, want %q", entry["field"], mctp.FieldMessageType)
	}
	if entry["raw"] != float64(0x42) {
		t.Errorf("raw: got %v, want %v", entry["raw"], 0x42)
	}
	if entry["word"] != "0x42000000" {
		t.Errorf("word: got %v, want 0x42000000", entry["word"])
	}
}

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "s-1", Direction: DirectionIn, Category: CategoryHeader,
			Header: &HeaderEvent{Shape: mctp.ShapeControl, Word: 1}},
		{Timestamp: time.Now(), SessionID: "s-2", Direction: DirectionOut, Category: CategoryHeader,
			Header: &HeaderEvent{Shape: mctp.ShapeVendorDefinedPCI, Word: 2}},
		{Timestamp: time.Now(), SessionID: "s-1", Direction: DirectionIn, Category: CategoryError,
			Error: &ErrorEventData{Shape: mctp.ShapeGeneric, Message: "x"}},
	}
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[1].Header == nil || read[1].Header.Word != 2 {
		t.Errorf("event order not preserved: %+v", read[1])
	}
}

func TestReaderFilters(t *testing.T) {
	events := []Event{
		{SessionID: "s-1", Direction: DirectionIn, Category: CategoryHeader,
			Header: &HeaderEvent{Shape: mctp.ShapeControl}},
		{SessionID: "s-2", Direction: DirectionOut, Category: CategoryHeader,
			Header: &HeaderEvent{Shape: mctp.ShapeVendorDefinedPCI}},
		{SessionID: "s-1", Direction: DirectionIn, Category: CategoryError,
			Error: &ErrorEventData{Shape: mctp.ShapeControl}},
		{SessionID: "s-1", Direction: DirectionIn, Category: CategoryHeader},
	}
	path := createTestLogFile(t, events)

	out := DirectionOut
	errCat := CategoryError
	control := mctp.ShapeControl
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "s-1"}, 3},
		{"direction", Filter{Direction: &out}, 1},
		{"category", Filter{Category: &errCat}, 1},
		{"shape", Filter{Shape: &control}, 2},
		{"session and shape", Filter{SessionID: "s-2", Shape: &control}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.mlog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{SessionID: "s"})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if got := len(readAll(t, reader)); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}

func TestFileLoggerCloseTwiceAndLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	logger.Log(Event{SessionID: "ignored"})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size: got %d, want 0", info.Size())
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const goroutines = 8
	const perGoroutine = 25
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Log(Event{SessionID: "c", Header: &HeaderEvent{Word: uint32(i)}})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if got := len(readAll(t, reader)); got != goroutines*perGoroutine {
		t.Errorf("got %d events, want %d", got, goroutines*perGoroutine)
	}
}
