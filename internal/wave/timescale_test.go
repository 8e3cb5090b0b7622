package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimescale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Timescale
	}{
		{"1ns", Timescale{1, Nanosecond}},
		{"100ps", Timescale{100, Picosecond}},
		{"10 us", Timescale{10, Microsecond}},
		{"1fs", Timescale{1, Femtosecond}},
		{"1s", Timescale{1, Second}},
	}
	for _, tt := range tests {
		ts, err := ParseTimescale(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, ts, tt.in)
	}

	for _, in := range []string{"", "ns", "100", "100lightyears"} {
		_, err := ParseTimescale(in)
		assert.Error(t, err, in)
	}
}

func TestTimescale_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100ps", Timescale{100, Picosecond}.String())
	assert.Equal(t, "1ms", Timescale{1, Millisecond}.String())
}
