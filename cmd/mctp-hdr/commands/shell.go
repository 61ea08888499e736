package commands

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// Shell is an interactive header decoder.
type Shell struct {
	session *Session
	out     io.Writer
}

// NewShell creates a shell writing to out.
func NewShell(s *Session, out io.Writer) *Shell {
	return &Shell{session: s, out: out}
}

// Run starts the interactive command loop. It returns when the user exits,
// input ends, or ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mctp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh.out = rl.Stdout()
	sh.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		if sh.Execute(line) {
			return nil
		}
	}
}

// Execute runs one input line. It returns true when the shell should exit.
func (sh *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		sh.printHelp()

	case "decode", "d":
		sh.cmdDecode(args)

	case "encode", "e":
		sh.cmdEncode(args)

	case "order":
		sh.cmdOrder(args)

	case "quit", "exit", "q":
		fmt.Fprintln(sh.out, "Exiting...")
		return true

	default:
		// Bare hex words decode with the shape of their message type.
		sh.decode(nil, strings.Join(parts, ""))
	}
	return false
}

func (sh *Shell) printHelp() {
	fmt.Fprint(sh.out, `Commands:
  <hex>                         Decode a header, shape from message type
  decode [shape] <hex>          Decode with shape (generic, control, vendor_pci)
  encode [shape=s] f=v ...      Encode field values, e.g. encode request_bit=1 command_code=2
  order [big|little]            Show or set the byte order of hex input
  help                          Show this help
  quit                          Exit
`)
}

func (sh *Shell) cmdDecode(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: decode [shape] <hex>")
		return
	}

	var shape *mctp.Shape
	if s, err := ParseShapeFlag(args[0]); err == nil && len(args) > 1 {
		shape = s
		args = args[1:]
	}
	sh.decode(shape, strings.Join(args, ""))
}

func (sh *Shell) decode(shape *mctp.Shape, input string) {
	word, err := sh.session.ParseWord(input)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid header %q: %v\n", input, err)
		return
	}
	h, used, err := sh.session.Decode(word, shape, "shell")
	if err != nil {
		formatDecodeError(sh.out, used, word, err)
		return
	}
	formatHeader(sh.out, used, word, h)
}

func (sh *Shell) cmdEncode(args []string) {
	desc := &HeaderDescription{Fields: make(map[string]uint32)}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(sh.out, "Invalid argument %q (expected field=value)\n", arg)
			return
		}
		if name == "shape" {
			desc.Shape = value
			continue
		}
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			fmt.Fprintf(sh.out, "Invalid value for %s: %v\n", name, err)
			return
		}
		desc.Fields[name] = uint32(v)
	}

	if _, err := encodeDescription(sh.session, desc, "shell", sh.out); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
	}
}

func (sh *Shell) cmdOrder(args []string) {
	if len(args) > 0 {
		order, err := ParseOrderFlag(args[0])
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %v\n", err)
			return
		}
		sh.session.Order = order
	}
	fmt.Fprintf(sh.out, "Byte order: %s\n", orderName(sh.session))
}

func orderName(s *Session) string {
	if s.Order == binary.LittleEndian {
		return "little"
	}
	return "big"
}
