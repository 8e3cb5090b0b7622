package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBin(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseBin(s)
	require.NoError(t, err)
	return v
}

func TestParseBin(t *testing.T) {
	t.Parallel()

	v, err := ParseBin("10xz")
	require.NoError(t, err)
	assert.Equal(t, 4, v.Width())
	assert.Equal(t, []Bit{Bit1, Bit0, BitX, BitZ}, v.Bits())

	// Simulator-specific states collapse to x.
	v, err = ParseBin("uw-")
	require.NoError(t, err)
	assert.Equal(t, []Bit{BitX, BitX, BitX}, v.Bits())

	_, err = ParseBin("")
	require.Error(t, err)
	_, err = ParseBin("102")
	require.Error(t, err)
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	v, err := ParseHex("a5")
	require.NoError(t, err)
	assert.Equal(t, 8, v.Width())
	assert.Equal(t, "b10100101", v.Bin())

	// An x or z digit expands to four bits of that state.
	v, err = ParseHex("x")
	require.NoError(t, err)
	assert.Equal(t, []Bit{BitX, BitX, BitX, BitX}, v.Bits())

	v, err = ParseHex("Z1")
	require.NoError(t, err)
	assert.Equal(t, "bzzzz0001", v.Bin())

	_, err = ParseHex("")
	require.Error(t, err)
	_, err = ParseHex("g")
	require.Error(t, err)
}

func TestParseDec(t *testing.T) {
	t.Parallel()

	v, err := ParseDec("4")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Width())
	assert.Equal(t, "b100", v.Bin())

	// Zero still occupies one bit.
	v, err = ParseDec("0")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Width())
	assert.Equal(t, "b0", v.Bin())

	_, err = ParseDec("abc")
	require.Error(t, err)
	_, err = ParseDec("-1")
	require.Error(t, err)
}

func TestFromUint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b00010011", FromUint(0x13, 8).Bin())
	// High bits beyond the width are dropped.
	assert.Equal(t, "b0011", FromUint(0x13, 4).Bin())
}

func TestValue_Resize(t *testing.T) {
	t.Parallel()

	// Widening a defined value pads with zero.
	v := mustBin(t, "101").Resize(6)
	assert.Equal(t, "b000101", v.Bin())

	// Widening replicates an x or z MSB.
	assert.Equal(t, "bxxxx01", mustBin(t, "x01").Resize(6).Bin())
	assert.Equal(t, "bzzzz01", mustBin(t, "z01").Resize(6).Bin())

	// Narrowing drops the most-significant bits.
	assert.Equal(t, "b0111", mustBin(t, "10100111").Resize(4).Bin())

	// Same width returns the value unchanged.
	v = mustBin(t, "10")
	assert.True(t, v.Resize(2).Equal(v))
}

func TestValue_ResizeRoundTrip(t *testing.T) {
	t.Parallel()

	// Widening then narrowing back preserves the low-order bits.
	for _, s := range []string{"1", "1010", "x1", "z0z1"} {
		v := mustBin(t, s)
		got := v.Resize(16).Resize(v.Width())
		assert.True(t, got.Equal(v), "round trip of %s gave %s", v.Bin(), got.Bin())
	}
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, mustBin(t, "10x").Equal(mustBin(t, "10x")))
	// x only equals x, not 0, 1, or z.
	assert.False(t, mustBin(t, "x").Equal(mustBin(t, "0")))
	assert.False(t, mustBin(t, "x").Equal(mustBin(t, "1")))
	assert.False(t, mustBin(t, "x").Equal(mustBin(t, "z")))
	// Width differences never compare equal.
	assert.False(t, mustBin(t, "01").Equal(mustBin(t, "1")))
}

func TestValue_IsDefined(t *testing.T) {
	t.Parallel()

	assert.True(t, mustBin(t, "0110").IsDefined())
	assert.False(t, mustBin(t, "01x0").IsDefined())
	assert.False(t, mustBin(t, "z").IsDefined())
}

func TestValue_Hex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "h00001337", FromUint(0x1337, 32).Hex())
	assert.Equal(t, "h5", mustBin(t, "0101").Hex())

	// Widths that are not a multiple of four pad the leading nibble.
	assert.Equal(t, "h1", mustBin(t, "1").Hex())
	assert.Equal(t, "h13", mustBin(t, "10011").Hex())

	// A nibble containing any undefined bit renders as that letter.
	assert.Equal(t, "hx", mustBin(t, "10x1").Hex())
	assert.Equal(t, "hz7", mustBin(t, "1z0111").Hex())

	// String is the hex rendering.
	assert.Equal(t, "hff", FromUint(255, 8).String())
}

func TestNewValue(t *testing.T) {
	t.Parallel()

	v := NewValue(4, BitX)
	assert.Equal(t, "bxxxx", v.Bin())
	assert.False(t, v.IsDefined())
}
