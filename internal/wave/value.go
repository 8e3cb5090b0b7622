package wave

import (
	"fmt"
	"strconv"
	"strings"
)

// Bit is the state of a single wire: low, high, unknown, or high-impedance.
type Bit uint8

const (
	Bit0 Bit = iota
	Bit1
	BitX
	BitZ
)

// Rune returns the display character for a bit.
func (b Bit) Rune() rune {
	switch b {
	case Bit0:
		return '0'
	case Bit1:
		return '1'
	case BitZ:
		return 'z'
	default:
		return 'x'
	}
}

// bitFromRune maps a VCD state character to a Bit. Simulator-specific states
// (u, w, -) collapse to BitX. Returns false for characters that are not state
// characters at all.
func bitFromRune(r rune) (Bit, bool) {
	switch r {
	case '0':
		return Bit0, true
	case '1':
		return Bit1, true
	case 'x', 'X', 'u', 'U', 'w', 'W', '-':
		return BitX, true
	case 'z', 'Z':
		return BitZ, true
	default:
		return 0, false
	}
}

// Value is a fixed-width bit vector, most-significant bit first.
// The zero Value has width 0 and is not a valid signal value.
type Value struct {
	bits []Bit
}

// NewValue returns a Value of the given width with every bit set to fill.
func NewValue(width int, fill Bit) Value {
	bits := make([]Bit, width)
	for i := range bits {
		bits[i] = fill
	}
	return Value{bits: bits}
}

// FromUint returns the Value of v in the given width, truncating high bits
// if v does not fit.
func FromUint(v uint64, width int) Value {
	bits := make([]Bit, width)
	for i := width - 1; i >= 0; i-- {
		if v&1 == 1 {
			bits[i] = Bit1
		}
		v >>= 1
	}
	return Value{bits: bits}
}

// ParseBin parses a binary literal. Each digit is a state character, so
// "10xz" is a valid four-bit value.
func ParseBin(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("empty binary literal")
	}
	bits := make([]Bit, 0, len(s))
	for _, r := range s {
		b, ok := bitFromRune(r)
		if !ok {
			return Value{}, fmt.Errorf("invalid binary digit %q in %q", r, s)
		}
		bits = append(bits, b)
	}
	return Value{bits: bits}, nil
}

// ParseHex parses a hexadecimal literal into a value of width 4*len(s).
// A digit may itself be x or z, expanding to four unknown or high-impedance
// bits.
func ParseHex(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("empty hex literal")
	}
	bits := make([]Bit, 0, 4*len(s))
	for _, r := range s {
		switch {
		case r == 'x' || r == 'X':
			bits = append(bits, BitX, BitX, BitX, BitX)
		case r == 'z' || r == 'Z':
			bits = append(bits, BitZ, BitZ, BitZ, BitZ)
		default:
			n, err := strconv.ParseUint(string(r), 16, 8)
			if err != nil {
				return Value{}, fmt.Errorf("invalid hex digit %q in %q", r, s)
			}
			for shift := 3; shift >= 0; shift-- {
				if n>>uint(shift)&1 == 1 {
					bits = append(bits, Bit1)
				} else {
					bits = append(bits, Bit0)
				}
			}
		}
	}
	return Value{bits: bits}, nil
}

// ParseDec parses an unsigned decimal literal into its minimal width
// (one bit for zero).
func ParseDec(s string) (Value, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid decimal literal %q", s)
	}
	width := 1
	for v := n; v > 1; v >>= 1 {
		width++
	}
	return FromUint(n, width), nil
}

// Width returns the number of bits in the value.
func (v Value) Width() int { return len(v.bits) }

// Bits returns the bit vector, most-significant first. The caller must not
// modify it.
func (v Value) Bits() []Bit { return v.bits }

// Resize returns a copy of v adjusted to the given width. Truncation drops
// the most-significant bits. Extension replicates the current MSB when it is
// x or z and pads with zero otherwise.
func (v Value) Resize(width int) Value {
	if width == len(v.bits) {
		return v
	}
	if width < len(v.bits) {
		bits := make([]Bit, width)
		copy(bits, v.bits[len(v.bits)-width:])
		return Value{bits: bits}
	}
	fill := Bit0
	if len(v.bits) > 0 && (v.bits[0] == BitX || v.bits[0] == BitZ) {
		fill = v.bits[0]
	}
	bits := make([]Bit, width)
	for i := 0; i < width-len(v.bits); i++ {
		bits[i] = fill
	}
	copy(bits[width-len(v.bits):], v.bits)
	return Value{bits: bits}
}

// Equal reports whether two values have identical widths and bits. X and Z
// bits only equal themselves.
func (v Value) Equal(o Value) bool {
	if len(v.bits) != len(o.bits) {
		return false
	}
	for i, b := range v.bits {
		if o.bits[i] != b {
			return false
		}
	}
	return true
}

// IsDefined reports whether every bit is a concrete 0 or 1.
func (v Value) IsDefined() bool {
	for _, b := range v.bits {
		if b != Bit0 && b != Bit1 {
			return false
		}
	}
	return true
}

// Hex renders the value as a fixed-width hexadecimal string, one character
// per nibble. A nibble containing an x or z bit renders as that bit's
// letter. The rendering is prefixed with "h", matching the at-time report
// format.
func (v Value) Hex() string {
	var sb strings.Builder
	sb.WriteByte('h')
	n := len(v.bits)
	pad := (4 - n%4) % 4
	nibble := 0
	undef := Bit(0)
	hasUndef := false
	for i := -pad; i < n; i++ {
		var b Bit
		if i >= 0 {
			b = v.bits[i]
		}
		switch b {
		case BitX, BitZ:
			if !hasUndef {
				undef, hasUndef = b, true
			}
		case Bit1:
			nibble |= 1 << uint(3-(i+pad)%4)
		}
		if (i+pad)%4 == 3 {
			if hasUndef {
				sb.WriteRune(undef.Rune())
			} else {
				sb.WriteByte("0123456789abcdef"[nibble])
			}
			nibble, hasUndef = 0, false
		}
	}
	return sb.String()
}

// Bin renders the value as a "b"-prefixed binary string.
func (v Value) Bin() string {
	var sb strings.Builder
	sb.WriteByte('b')
	for _, b := range v.bits {
		sb.WriteRune(b.Rune())
	}
	return sb.String()
}

// String renders the value in hexadecimal.
func (v Value) String() string { return v.Hex() }
