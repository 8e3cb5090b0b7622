package wave

import (
	"fmt"
	"strings"
)

// Waveform is the decoded trace: the scope tree, the timescale, the global
// time bounds, and the identifier-code index used while decoding. A Waveform
// is mutable only through the decoder; once decoding returns it is treated
// as immutable and any number of goroutines may read it concurrently.
type Waveform struct {
	root   *Scope
	byCode map[string]*Signal

	timescale Timescale
	end       uint64
}

// NewWaveform returns an empty waveform with a 1 ps timescale, the default
// the decoder assumes until a timescale directive is seen.
func NewWaveform() *Waveform {
	return &Waveform{
		root:      NewScope(),
		byCode:    make(map[string]*Signal),
		timescale: Timescale{Magnitude: 1, Unit: Picosecond},
	}
}

// Root returns the root of the scope tree.
func (w *Waveform) Root() *Scope { return w.root }

// Timescale returns the duration of one timestamp unit.
func (w *Waveform) Timescale() Timescale { return w.timescale }

// SetTimescale records the trace's declared timescale.
func (w *Waveform) SetTimescale(ts Timescale) { w.timescale = ts }

// End returns the upper time bound: the largest timestamp seen while
// decoding. The global bounds are [0, End].
func (w *Waveform) End() uint64 { return w.end }

// ExtendTime grows the upper time bound. Timestamp markers without any
// value-change records still extend the trace.
func (w *Waveform) ExtendTime(t uint64) {
	if t > w.end {
		w.end = t
	}
}

// Declare registers a new signal under the given scope and indexes its
// identifier code. Some producers re-declare a code for aliased nets; the
// first declaration wins and later ones are ignored.
func (w *Waveform) Declare(sc *Scope, code, name string, width int) *Signal {
	if prev, ok := w.byCode[code]; ok {
		return prev
	}
	s := &Signal{Code: code, Name: name, Width: width}
	sc.addSignal(s)
	w.byCode[code] = s
	return s
}

// SignalByCode resolves a VCD identifier code. Only the decoder uses this;
// consumers address signals by name or path.
func (w *Waveform) SignalByCode(code string) (*Signal, bool) {
	s, ok := w.byCode[code]
	return s, ok
}

// Signals returns every declared signal in depth-first, declaration order.
func (w *Waveform) Signals() []*Signal {
	var out []*Signal
	w.root.Walk(func(sc *Scope, _ int) bool {
		out = append(out, sc.signals...)
		return true
	})
	return out
}

// ResolveSignal binds a signal reference to a signal. A dotted name is
// resolved as a hierarchical path from the root; a bare name matches the
// first signal with that leaf name in depth-first, declaration order.
func (w *Waveform) ResolveSignal(name string) (*Signal, error) {
	if strings.Contains(name, ".") {
		parts := strings.Split(name, ".")
		sc := w.root
		for _, p := range parts[:len(parts)-1] {
			if sc = sc.Child(p); sc == nil {
				return nil, fmt.Errorf("signal not found: %s", name)
			}
		}
		leaf := parts[len(parts)-1]
		for _, s := range sc.signals {
			if s.Name == leaf {
				return s, nil
			}
		}
		return nil, fmt.Errorf("signal not found: %s", name)
	}

	var found *Signal
	w.root.Walk(func(sc *Scope, _ int) bool {
		for _, s := range sc.signals {
			if s.Name == name {
				found = s
				return false
			}
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("signal not found: %s", name)
	}
	return found, nil
}
