package dwfv

import (
	"io"
	"iter"

	"github.com/psurply/dwfv/internal/query"
	"github.com/psurply/dwfv/internal/vcd"
)

// Decode parses a complete VCD trace into an immutable Waveform. Any syntax
// or consistency problem aborts the load with a *DecodeError; a partially
// built waveform is never returned.
func Decode(r io.Reader) (*Waveform, error) {
	return vcd.Decode(r)
}

// DecodeLimit parses a trace but ignores value changes recorded after the
// given timestamp. The header is always fully parsed, so every signal is
// declared; only the edge streams are cut short.
func DecodeLimit(r io.Reader, limit uint64) (*Waveform, error) {
	return vcd.DecodeLimit(r, limit)
}

// Compile parses a query expression and binds it against the waveform,
// resolving the signal reference and adjusting the literal to the signal's
// width. Errors are *CompileError values carrying the offending token and
// its offset; a failed compile leaves the waveform untouched.
func Compile(w *Waveform, expr string) (*Query, error) {
	return query.Compile(w, expr)
}

// Search compiles an expression and returns its lazy result sequence in one
// step, for callers that do not need to inspect the compiled query.
func Search(w *Waveform, expr string) (iter.Seq[Range], error) {
	q, err := query.Compile(w, expr)
	if err != nil {
		return nil, err
	}
	return q.Results(), nil
}
