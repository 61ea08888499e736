package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mctp-protocol/mctp-go/pkg/vector"
	"github.com/mctp-protocol/mctp-go/pkg/version"
)

// RunVersion prints the supported base specification version. With an
// argument it converts between a version number word (hex) and its
// "major.minor[.update][alpha]" form.
func RunVersion(arg string, w io.Writer) error {
	if arg == "" {
		n := version.CurrentNumber()
		word, err := n.Uint32()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "MCTP base specification %s (version number 0x%08X)\n", version.Current, word)
		return nil
	}

	if strings.Contains(arg, ".") {
		n, err := version.ParseNumberString(arg)
		if err != nil {
			return err
		}
		word, err := n.Uint32()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  0x%08X  [%s]\n", n, word, vector.FormatWord(word))
		return nil
	}

	word, err := vector.ParseWord(arg)
	if err != nil {
		return fmt.Errorf("invalid version number %q: %w", arg, err)
	}
	n, err := version.ParseNumber(word)
	if err != nil {
		return err
	}
	compat := "incompatible"
	if current, _ := version.Parse(version.Current); n.SpecVersion().Compatible(current) {
		compat = "compatible"
	}
	fmt.Fprintf(w, "0x%08X  %s  (%s with %s)\n", word, n, compat, version.Current)
	return nil
}
