// Package dwfv loads digital-signal traces in Value Change Dump (VCD)
// format and answers questions about them: the value any signal holds at an
// arbitrary simulation time, and the times at which a small temporal query
// expression is true.
//
// # Pipeline
//
// A trace is decoded in one pass into an immutable [Waveform]: a scope tree
// mirroring the design hierarchy, each scope holding [Signal] values whose
// edges are kept in strictly increasing time order. Once [Decode] returns,
// the waveform never changes, so any number of goroutines may query it
// concurrently without synchronization.
//
// # Usage
//
// Decode a trace, then look up values or search:
//
//	w, err := dwfv.Decode(f)
//	if err != nil { ... }
//
//	sig, err := w.ResolveSignal("logic.value")
//	v, mid := sig.ValueAt(320)
//
//	q, err := dwfv.Compile(w, "$value <- h4 and after 400")
//	if err != nil { ... }
//	for r := range q.Results() {
//		fmt.Println(r) // "690"
//	}
//
// # Query language
//
// A query names one signal, compares it to a value, and optionally narrows
// the matches with time windows:
//
//	$name =  <literal>    level: intervals during which the value holds
//	$name <- <literal>    transition: instants the signal becomes the value
//	... and after <t>     keep matches starting strictly after t
//	... and before <t>    keep matches starting strictly before t
//
// "equals" and "is" are synonyms for "=", "becomes" for "<-". Literals are
// decimal by default; "b"- and "h"-prefixed literals are binary and
// hexadecimal, and their digits may be x (unknown) or z (high impedance).
// Literals are implicitly adjusted to the named signal's declared width.
//
// Query evaluation is lazy: [Query.Results] produces matches in time order
// and a consumer that stops early costs nothing and corrupts nothing.
package dwfv
