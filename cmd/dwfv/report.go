package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/psurply/dwfv"
)

// writeStats prints the scope tree with one line per signal:
//
//	# top
//	#   ! (clk) - width: 1, edges: 64, from: 0, to: 630
func writeStats(out io.Writer, w *dwfv.Waveform) {
	w.Root().Walk(func(sc *dwfv.Scope, depth int) bool {
		indent := scopeIndent(sc, depth)
		if sc.Name != "" {
			fmt.Fprintf(out, "# %s%s\n", indent, sc.Name)
			indent += "  "
		}
		for _, s := range sc.Signals() {
			first, _ := s.FirstEdge()
			last, _ := s.LastEdge()
			fmt.Fprintf(out, "# %s%s - width: %d, edges: %d, from: %d, to: %d\n",
				indent, s, s.Width, s.EdgeCount(), first, last)
		}
		return true
	})
}

// writeValuesAt prints each signal's held value at time t. A signal with an
// edge exactly at t is shown with "->" instead of "=". radix selects the
// hex or binary rendering.
func writeValuesAt(out io.Writer, w *dwfv.Waveform, t uint64, radix string) {
	w.Root().Walk(func(sc *dwfv.Scope, depth int) bool {
		indent := scopeIndent(sc, depth)
		if sc.Name != "" {
			fmt.Fprintf(out, "%s%s\n", indent, sc.Name)
			indent += "  "
		}
		for _, s := range sc.Signals() {
			v, mid := s.ValueAt(t)
			op := "="
			if mid {
				op = "->"
			}
			fmt.Fprintf(out, "%s%s %s %s\n", indent, s, op, render(v, radix))
		}
		return true
	})
}

// scopeIndent returns the indentation for a scope line. The root scope is
// unnamed and does not occupy a level.
func scopeIndent(sc *dwfv.Scope, depth int) string {
	if sc.Name == "" {
		return ""
	}
	return strings.Repeat("  ", depth-1)
}

func render(v dwfv.Value, radix string) string {
	if radix == "bin" {
		return v.Bin()
	}
	return v.Hex()
}
