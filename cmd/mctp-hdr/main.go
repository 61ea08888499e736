// Command mctp-hdr decodes, encodes and verifies MCTP message headers.
//
// Usage:
//
//	mctp-hdr [global flags] <command> [flags] [args]
//
// Commands:
//
//	decode   Decode a 4-byte header given in hex
//	encode   Encode a header described in YAML
//	verify   Check YAML test vectors
//	shell    Interactive decoder
//	log      View a protocol log captured with -protocol-log
//	version  Show or convert MCTP version numbers
//
// Examples:
//
//	# Decode a vendor-defined PCI header
//	mctp-hdr decode 7E123400
//
//	# Decode as a control header regardless of message type
//	mctp-hdr decode -shape control "00 80 02 00"
//
//	# Encode a header and capture the operation
//	mctp-hdr -protocol-log run.mlog encode -f header.yaml
//
//	# Check vectors
//	mctp-hdr verify pkg/vector/testdata
//
//	# Show only decode failures from a capture
//	mctp-hdr log -category error run.mlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mctp-protocol/mctp-go/cmd/mctp-hdr/commands"
	"github.com/mctp-protocol/mctp-go/pkg/log"
)

const usage = `mctp-hdr - MCTP Message Header Tool

Usage:
  mctp-hdr [global flags] <command> [flags] [args]

Commands:
  decode   Decode a 4-byte header given in hex
  encode   Encode a header described in YAML
  verify   Check YAML test vectors
  shell    Interactive decoder
  log      View a protocol log captured with -protocol-log
  version  Show or convert MCTP version numbers

Global flags:
  -log-level string      Log level (debug, info, warn, error) (default "info")
  -protocol-log string   Capture decode and encode events to a CBOR log file

Use "mctp-hdr <command> -help" for more information about a command.
`

var (
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	protocolLog = flag.String("protocol-log", "", "Capture decode and encode events to a CBOR log file")
)

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	switch cmd {
	case "log":
		runLog(args)
		return
	case "version":
		runVersion(args)
		return
	}
	if cmd == "-h" || cmd == "-help" || cmd == "--help" || cmd == "help" {
		fmt.Print(usage)
		return
	}

	session, closeLog, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var code int
	switch cmd {
	case "decode":
		code = runDecode(session, args)
	case "encode":
		code = runEncode(session, args)
	case "verify":
		code = runVerify(session, args)
	case "shell":
		code = runShell(session, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		code = 1
	}

	closeLog()
	os.Exit(code)
}

// newSession builds the session logger from the global flags.
func newSession() (*commands.Session, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", *logLevel)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	closeLog := func() {}
	if *protocolLog != "" {
		fl, err := log.NewFileLogger(*protocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open protocol log: %w", err)
		}
		loggers = append(loggers, fl)
		closeLog = func() {
			if err := fl.Close(); err != nil {
				slog.Warn("failed to close protocol log", "error", err)
			}
		}
	}

	session := commands.NewSession(log.NewMultiLogger(loggers...))
	slog.Debug("session started", "session_id", session.ID, "protocol_log", *protocolLog)
	return session, closeLog, nil
}

func runDecode(session *commands.Session, args []string) int {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mctp-hdr decode - Decode a 4-byte header given in hex

Usage:
  mctp-hdr decode [flags] <hex>
  mctp-hdr decode [flags] -f <capture.bin>

The header may be split over several arguments ("7E 12 34 00").

Flags:
`)
		fs.PrintDefaults()
	}

	shapeFlag := fs.String("shape", "auto", "Header shape (auto, generic, control, vendor_pci)")
	order := fs.String("order", "big", "Byte order of the hex input (big, little)")
	file := fs.String("f", "", "Decode a binary capture of back-to-back 4-byte headers")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 && *file == "" {
		fmt.Fprintln(os.Stderr, "Error: header bytes or capture file (-f) required")
		fs.Usage()
		return 1
	}

	shape, err := commands.ParseShapeFlag(*shapeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if session.Order, err = commands.ParseOrderFlag(*order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *file != "" {
		summary, err := commands.RunDecodeFile(session, *file, shape, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("\n%d frames, %d failed\n", summary.Frames, summary.Failed)
		if summary.Failed > 0 {
			return 1
		}
		return 0
	}

	input := strings.Join(fs.Args(), "")
	if err := commands.RunDecode(session, input, shape, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runEncode(session *commands.Session, args []string) int {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mctp-hdr encode - Encode a header described in YAML

Usage:
  mctp-hdr encode [-o capture.bin] -f <header.yaml>

The file maps field names to values, with an optional shape:

  shape: control
  request_bit: 1
  command_code: 0x02

Flags:
`)
		fs.PrintDefaults()
	}

	file := fs.String("f", "", "Header description file (- for stdin)")
	output := fs.String("o", "", "Append the encoded header to a binary capture file")
	order := fs.String("order", "big", "Byte order of the capture file (big, little)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: header description (-f) required")
		fs.Usage()
		return 1
	}

	var err error
	if session.Order, err = commands.ParseOrderFlag(*order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := commands.RunEncode(session, *file, *output, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runVerify(session *commands.Session, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mctp-hdr verify - Check YAML test vectors

Usage:
  mctp-hdr verify <vectors.yaml|dir>...

`)
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: vector file or directory required")
		fs.Usage()
		return 1
	}

	summary, err := commands.RunVerify(session, fs.Args(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

func runShell(session *commands.Session, args []string) int {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	order := fs.String("order", "big", "Byte order of the hex input (big, little)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	var err error
	if session.Order, err = commands.ParseOrderFlag(*order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := commands.NewShell(session, os.Stdout).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runLog(args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mctp-hdr log - View a protocol log in human-readable format

Usage:
  mctp-hdr log [flags] <file.mlog>

Flags:
`)
		fs.PrintDefaults()
	}

	sessionID := fs.String("session", "", "Filter by session ID")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (header, error)")
	shapeFlag := fs.String("shape", "", "Filter by shape (generic, control, vendor_pci)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	// Build filter
	filter := log.Filter{SessionID: *sessionID}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}

	if *shapeFlag != "" {
		s, err := commands.ParseShapeFlag(*shapeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Shape = s
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runVersion(args []string) {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mctp-hdr version - Show or convert MCTP version numbers

Usage:
  mctp-hdr version                 Show the supported base specification
  mctp-hdr version <hex>           Decode a version number word (e.g. F1F3FF00)
  mctp-hdr version <major.minor>   Encode a version number (e.g. 1.3.1)

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := commands.RunVersion(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
