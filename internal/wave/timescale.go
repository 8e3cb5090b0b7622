package wave

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeUnit is the physical unit one timestamp increment represents.
type TimeUnit int

const (
	Femtosecond TimeUnit = iota
	Picosecond
	Nanosecond
	Microsecond
	Millisecond
	Second
)

func (u TimeUnit) String() string {
	switch u {
	case Femtosecond:
		return "fs"
	case Picosecond:
		return "ps"
	case Nanosecond:
		return "ns"
	case Microsecond:
		return "us"
	case Millisecond:
		return "ms"
	default:
		return "s"
	}
}

// ParseTimeUnit parses a unit suffix ("fs" through "s").
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch s {
	case "fs":
		return Femtosecond, nil
	case "ps":
		return Picosecond, nil
	case "ns":
		return Nanosecond, nil
	case "us":
		return Microsecond, nil
	case "ms":
		return Millisecond, nil
	case "s":
		return Second, nil
	}
	return 0, fmt.Errorf("unknown time unit %q", s)
}

// Timescale is the real-world duration of one timestamp unit, e.g. 100 ps.
type Timescale struct {
	Magnitude uint64
	Unit      TimeUnit
}

// ParseTimescale parses a timescale token such as "1ns" or "100 ps"
// (magnitude and unit already joined into one string).
func ParseTimescale(s string) (Timescale, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return Timescale{}, fmt.Errorf("invalid timescale %q: missing magnitude", s)
	}
	mag, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return Timescale{}, fmt.Errorf("invalid timescale %q", s)
	}
	unit, err := ParseTimeUnit(strings.TrimSpace(s[i:]))
	if err != nil {
		return Timescale{}, fmt.Errorf("invalid timescale %q: %w", s, err)
	}
	return Timescale{Magnitude: mag, Unit: unit}, nil
}

func (t Timescale) String() string {
	return fmt.Sprintf("%d%s", t.Magnitude, t.Unit)
}
