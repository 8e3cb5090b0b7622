package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psurply/dwfv/internal/wave"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "trace.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestWaveform(t *testing.T) *wave.Waveform {
	t.Helper()
	w := wave.NewWaveform()
	ts, err := wave.ParseTimescale("1ns")
	require.NoError(t, err)
	w.SetTimescale(ts)

	top := w.Root().EnsureChild("top")
	clk := w.Declare(top, "!", "clk", 1)
	clk.Append(0, wave.FromUint(0, 1))
	clk.Append(10, wave.FromUint(1, 1))
	clk.Append(20, wave.FromUint(0, 1))

	cpu := top.EnsureChild("cpu")
	state := w.Declare(cpu, "#", "state", 8)
	state.Append(0, wave.FromUint(0x13, 8))
	state.Append(15, wave.FromUint(0x37, 8))

	w.ExtendTime(30)
	return w
}

func TestMigrate_TablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"trace", "scopes", "signals", "edges"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestExport(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Export(newTestWaveform(t)))

	var (
		timescale string
		end       uint64
	)
	err := s.db.QueryRow("SELECT timescale, end_time FROM trace WHERE id = 1").
		Scan(&timescale, &end)
	require.NoError(t, err)
	assert.Equal(t, "1ns", timescale)
	assert.Equal(t, uint64(30), end)

	n, err := s.CountEdges("")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = s.CountEdges("top.clk")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	width, err := s.SignalWidth("top.cpu.state")
	require.NoError(t, err)
	assert.Equal(t, 8, width)
}

func TestExport_ScopeTree(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Export(newTestWaveform(t)))

	// cpu's parent must be top; top's parent is the unnamed root.
	var parentPath string
	err := s.db.QueryRow(`
		SELECT p.path FROM scopes c
		JOIN scopes p ON p.id = c.parent_id
		WHERE c.path = 'top.cpu'`).Scan(&parentPath)
	require.NoError(t, err)
	assert.Equal(t, "top", parentPath)
}

func TestExport_EdgeValues(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Export(newTestWaveform(t)))

	var value string
	err := s.db.QueryRow(`
		SELECT e.value FROM edges e
		JOIN signals s ON s.id = e.signal_id
		WHERE s.path = 'top.cpu.state' AND e.time = 15`).Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, "h37", value)
}

func TestExport_Reexport(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	w := newTestWaveform(t)
	require.NoError(t, s.Export(w))

	// Exporting again replaces the trace row; scope and signal rows get
	// fresh ids per export.
	require.NoError(t, s.Export(w))
	var n int64
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM trace").Scan(&n))
	assert.Equal(t, int64(1), n)
}

func TestCountEdges_UnknownPath(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Export(newTestWaveform(t)))

	n, err := s.CountEdges("top.nope")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = s.SignalWidth("top.nope")
	require.Error(t, err)
}
