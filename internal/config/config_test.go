package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dwfv.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "hex", cfg.Output.Radix)
	assert.Equal(t, 100*time.Millisecond, cfg.Follow.Debounce())
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[output]
radix = "bin"

[follow]
debounce_ms = 250

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bin", cfg.Output.Radix)
	assert.Equal(t, 250*time.Millisecond, cfg.Follow.Debounce())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "[output]\nradix = \"bin\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bin", cfg.Output.Radix)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Follow.DebounceMs)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[output\n"},
		{"bad radix", "[output]\nradix = \"octal\"\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
		{"negative debounce", "[follow]\ndebounce_ms = -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}
