package commands

import (
	"fmt"
	"io"

	"github.com/mctp-protocol/mctp-go/pkg/vector"
)

// VerifySummary counts vector results.
type VerifySummary struct {
	Passed int
	Failed int
}

// RunVerify checks all vectors found in paths (files or directories) and
// prints one line per vector.
func RunVerify(s *Session, paths []string, w io.Writer) (VerifySummary, error) {
	var summary VerifySummary

	vectors, err := vector.LoadPaths(paths...)
	if err != nil {
		return summary, err
	}

	checker := &vector.Checker{Logger: s.Logger, SessionID: s.ID}
	for _, res := range checker.Run(vectors) {
		if res.Passed() {
			summary.Passed++
			fmt.Fprintf(w, "PASS  %s\n", res.Vector.Name)
			continue
		}
		summary.Failed++
		fmt.Fprintf(w, "FAIL  %s\n      %v\n", res.Vector.Name, res.Err)
	}

	fmt.Fprintf(w, "\n%d passed, %d failed\n", summary.Passed, summary.Failed)
	return summary, nil
}
