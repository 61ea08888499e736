package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mctp-protocol/mctp-go/pkg/log"
	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] DIRECTION CATEGORY shape
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	var shape mctp.Shape
	switch {
	case event.Header != nil:
		shape = event.Header.Shape
	case event.Error != nil:
		shape = event.Error.Shape
	}

	fmt.Fprintf(w, "%s [sess:%s] %-3s %-6s %s\n", ts, sessID, event.Direction, event.Category, shape)
	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.Header != nil:
		formatHeaderDetails(w, event.Header)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatHeaderDetails writes the header word and fields in layout order.
func formatHeaderDetails(w io.Writer, h *log.HeaderEvent) {
	fmt.Fprintf(w, "  Word: 0x%08X\n", h.Word)
	if h.Summary != "" {
		fmt.Fprintf(w, "  Header: %s\n", h.Summary)
	}

	names := make([]string, 0, len(h.Fields))
	if layout := h.Shape.Layout(); layout != nil {
		for _, f := range layout.Fields() {
			if _, ok := h.Fields[f.Name]; ok {
				names = append(names, f.Name)
			}
		}
	}
	if len(names) != len(h.Fields) {
		names = names[:0]
		for name := range h.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %s: 0x%X\n", name, h.Fields[name])
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Field != "" {
		fmt.Fprintf(w, "  Field: %s\n", e.Field)
	}
	if e.Raw != nil {
		fmt.Fprintf(w, "  Raw: 0x%X\n", *e.Raw)
	}
	if e.Word != nil {
		fmt.Fprintf(w, "  Word: 0x%08X\n", *e.Word)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "header":
		return log.CategoryHeader, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be header or error)", s)
	}
}

// RunView prints the events of a protocol log file that match filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
