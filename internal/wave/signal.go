package wave

import (
	"fmt"
	"sort"
)

// Edge is a single recorded value change at one timestamp.
type Edge struct {
	Time  uint64
	Value Value
}

// Signal is one named wire or bus in the design hierarchy. Its edge sequence
// is strictly increasing in time and is append-only during decoding; once
// the owning Waveform is built the signal is immutable and safe for
// concurrent readers.
type Signal struct {
	// Code is the short identifier binding value-change records to this
	// signal. It is only meaningful while decoding.
	Code string
	// Name is the declared signal name.
	Name string
	// Width is the declared width in bits.
	Width int

	scope *Scope
	edges []Edge
}

// Scope returns the scope the signal was declared in.
func (s *Signal) Scope() *Scope { return s.scope }

// Path returns the dot-separated hierarchical name of the signal.
func (s *Signal) Path() string {
	if s.scope == nil || s.scope.Path() == "" {
		return s.Name
	}
	return s.scope.Path() + "." + s.Name
}

// Append records a value change. Values are resized to the declared width.
// A second change at the timestamp of the last edge overwrites it (last one
// wins within a time step). Timestamps must otherwise arrive in increasing
// order; the decoder enforces this globally before calling Append.
func (s *Signal) Append(t uint64, v Value) {
	v = v.Resize(s.Width)
	if n := len(s.edges); n > 0 && s.edges[n-1].Time == t {
		s.edges[n-1].Value = v
		return
	}
	s.edges = append(s.edges, Edge{Time: t, Value: v})
}

// Edges returns the recorded edges in increasing time order. The caller must
// not modify the slice.
func (s *Signal) Edges() []Edge { return s.edges }

// EdgeCount returns the number of recorded edges.
func (s *Signal) EdgeCount() int { return len(s.edges) }

// FirstEdge returns the timestamp of the first edge, if any.
func (s *Signal) FirstEdge() (uint64, bool) {
	if len(s.edges) == 0 {
		return 0, false
	}
	return s.edges[0].Time, true
}

// LastEdge returns the timestamp of the last edge, if any.
func (s *Signal) LastEdge() (uint64, bool) {
	if len(s.edges) == 0 {
		return 0, false
	}
	return s.edges[len(s.edges)-1].Time, true
}

// searchEdge returns the index of the first edge with Time > t.
func (s *Signal) searchEdge(t uint64) int {
	return sort.Search(len(s.edges), func(i int) bool { return s.edges[i].Time > t })
}

// ValueAt returns the held value at time t: the value set by the latest edge
// at or before t. Before the first edge the value is all-X. midTransition
// reports that t lands exactly on an edge, which the at-time report renders
// differently; it does not affect the value.
func (s *Signal) ValueAt(t uint64) (v Value, midTransition bool) {
	i := s.searchEdge(t)
	if i == 0 {
		return NewValue(s.Width, BitX), false
	}
	e := s.edges[i-1]
	return e.Value, e.Time == t
}

// EdgeAt returns the value of the edge recorded exactly at t, if any.
func (s *Signal) EdgeAt(t uint64) (Value, bool) {
	i := s.searchEdge(t)
	if i > 0 && s.edges[i-1].Time == t {
		return s.edges[i-1].Value, true
	}
	return Value{}, false
}

// NextRisingEdge returns the timestamp of the first edge after t whose value
// is non-zero. Used by browsing consumers on single-bit signals.
func (s *Signal) NextRisingEdge(t uint64) (uint64, bool) {
	zero := NewValue(s.Width, Bit0)
	for _, e := range s.edges[s.searchEdge(t):] {
		if !e.Value.Equal(zero) {
			return e.Time, true
		}
	}
	return 0, false
}

// NextFallingEdge returns the timestamp of the first edge after t whose
// value is zero.
func (s *Signal) NextFallingEdge(t uint64) (uint64, bool) {
	zero := NewValue(s.Width, Bit0)
	for _, e := range s.edges[s.searchEdge(t):] {
		if e.Value.Equal(zero) {
			return e.Time, true
		}
	}
	return 0, false
}

// PrevRisingEdge returns the timestamp of the last edge strictly before t
// whose value is non-zero.
func (s *Signal) PrevRisingEdge(t uint64) (uint64, bool) {
	zero := NewValue(s.Width, Bit0)
	if t == 0 {
		return 0, false
	}
	end := s.searchEdge(t - 1)
	for i := end - 1; i >= 0; i-- {
		if !s.edges[i].Value.Equal(zero) {
			return s.edges[i].Time, true
		}
	}
	return 0, false
}

// String renders the signal as "code (name)", the form used by the stats
// and at-time reports.
func (s *Signal) String() string {
	return fmt.Sprintf("%s (%s)", s.Code, s.Name)
}
