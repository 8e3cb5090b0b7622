package dwfv

import (
	"github.com/psurply/dwfv/internal/query"
	"github.com/psurply/dwfv/internal/vcd"
	"github.com/psurply/dwfv/internal/wave"
)

// Public type aliases for the internal model and query types. These are Go
// type aliases (=), identical to the internal types at compile time, so no
// conversion is ever needed.

type Bit = wave.Bit
type Value = wave.Value
type Edge = wave.Edge
type Signal = wave.Signal
type Scope = wave.Scope
type Waveform = wave.Waveform
type Timescale = wave.Timescale
type TimeUnit = wave.TimeUnit

type Query = query.Query
type Range = query.Range

type DecodeError = vcd.DecodeError
type CompileError = query.CompileError

const (
	Bit0 = wave.Bit0
	Bit1 = wave.Bit1
	BitX = wave.BitX
	BitZ = wave.BitZ
)

const (
	// Level predicates match intervals during which a signal holds a value.
	Level = query.Level
	// Transition predicates match the instants a signal changes into a value.
	Transition = query.Transition
)
