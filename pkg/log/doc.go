// Package log provides structured protocol capture for MCTP header codecs.
//
// This package defines the Logger interface and Event types for recording
// every header decode and encode performed by a tool or endpoint. It is
// separate from operational logging (slog): protocol capture keeps a
// machine-readable trace of raw words and their decoded fields.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a CBOR file
//	logger, _ := log.NewFileLogger("/var/log/mctp/bmc.mlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Events are built from codec results with NewDecodeEvent and
// NewEncodeEvent.
//
// # Event Types
//
//   - HeaderEvent: a word and its fields for one header shape
//   - ErrorEventData: a failed decode or encode, naming the field
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with the .mlog
// extension. The mctp-hdr CLI can print them.
package log
