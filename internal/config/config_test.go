package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumina.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
hash_mb = 256
workers = 3
depth = 12
log_level = "DEBUG"
`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 256, s.HashSizeMB)
	assert.Equal(t, 3, s.Workers)
	assert.Equal(t, 12, s.Depth)
	assert.Equal(t, "DEBUG", s.LogLevel)
	// Untouched fields keep their defaults.
	assert.Equal(t, Defaults().MoveTimeMs, s.MoveTimeMs)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("hash_mb = [whoops"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
