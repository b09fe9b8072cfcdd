package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestNewZapAdapter_WritesLogFile(t *testing.T) {
	chTemp(t)

	l, err := NewZapAdapter("bulk sweep!", false)
	require.NoError(t, err)

	l.Info("run started", "total", 3)
	l.WithField("job", "j1").Warn("item failed", "item", "abc")
	require.NoError(t, l.Close())

	entries, err := os.ReadDir("log")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "bulk_sweep")

	data, err := os.ReadFile(filepath.Join("log", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run started")
	assert.Contains(t, string(data), `"job":"j1"`)
}

func TestNewZapAdapter_DebugLevel(t *testing.T) {
	chTemp(t)

	l, err := NewZapAdapter("dbg", true)
	require.NoError(t, err)
	l.Debug("low level detail")
	require.NoError(t, l.Close())

	entries, err := os.ReadDir("log")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join("log", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "low level detail")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a-b_c", sanitize("a-b_c"))
	assert.Equal(t, "___", sanitize("а б"))
	assert.Equal(t, "run", sanitize(""))
	assert.Len(t, sanitize(strings.Repeat("x", 100)), 60)
}
