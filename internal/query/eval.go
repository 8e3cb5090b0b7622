package query

import (
	"fmt"
	"iter"
)

// Range is one query result: the half-open interval [Begin, End) during
// which a level predicate holds, or a degenerate range (Begin == End) for
// the instant a transition predicate matched.
type Range struct {
	Begin uint64
	End   uint64
}

// Instant reports whether the range is a single point in time.
func (r Range) Instant() bool { return r.Begin == r.End }

// String renders "310-330" for intervals and "350" for instants; these
// strings are the findings output of the when command.
func (r Range) String() string {
	if r.Instant() {
		return fmt.Sprintf("%d", r.Begin)
	}
	return fmt.Sprintf("%d-%d", r.Begin, r.End)
}

// Results returns the matches in increasing start order as a lazy sequence.
// The walk holds no resources, so a consumer may stop iterating at any
// point; re-calling Results restarts from the beginning.
func (q *Query) Results() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		switch q.kind {
		case Transition:
			q.transitions(yield)
		default:
			q.levels(yield)
		}
	}
}

// All materializes the full result set.
func (q *Query) All() []Range {
	var out []Range
	for r := range q.Results() {
		out = append(out, r)
	}
	return out
}

// keep applies the time qualifiers to a candidate start timestamp.
// stop reports that no later candidate can match either (the walk is in
// increasing start order, so a failed strict before-bound is final).
func (q *Query) keep(begin uint64) (ok, stop bool) {
	if q.hasBefore && begin >= q.before {
		return false, true
	}
	if q.hasAfter && begin <= q.after {
		return false, false
	}
	return true, false
}

// levels emits one range per maximal run of edges holding the target value.
// A run ends at the first differing edge's timestamp; the final run, if
// still open, ends at the waveform's upper time bound.
func (q *Query) levels(yield func(Range) bool) {
	var (
		begin   uint64
		holding bool
	)
	for _, e := range q.signal.Edges() {
		if e.Value.Equal(q.target) {
			if !holding {
				begin, holding = e.Time, true
			}
			continue
		}
		if holding {
			holding = false
			if ok, stop := q.keep(begin); stop {
				return
			} else if ok && !yield(Range{Begin: begin, End: e.Time}) {
				return
			}
		}
	}
	if holding {
		if ok, _ := q.keep(begin); ok {
			yield(Range{Begin: begin, End: q.wf.End()})
		}
	}
}

// transitions emits an instant for every edge that changes the signal into
// the target value. The very first edge counts as a transition when it
// matches: before it the signal is undefined, not equal to any concrete
// value.
func (q *Query) transitions(yield func(Range) bool) {
	edges := q.signal.Edges()
	for i, e := range edges {
		if !e.Value.Equal(q.target) {
			continue
		}
		if i > 0 && edges[i-1].Value.Equal(q.target) {
			continue
		}
		ok, stop := q.keep(e.Time)
		if stop {
			return
		}
		if ok && !yield(Range{Begin: e.Time, End: e.Time}) {
			return
		}
	}
}
