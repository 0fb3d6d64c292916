package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/webmanifest"
)

func TestDecode_OverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
format: json
hints: false
concurrency: 8
parse:
  duplicate_keys: warn
  max_depth: 32
`))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.Hints)
	assert.False(t, cfg.Schema)
	assert.Equal(t, 8, cfg.Concurrency)

	opt := cfg.ParseOpt()
	assert.Equal(t, webmanifest.Warn, opt.Strictness.OnDuplicateKey)
	assert.Equal(t, 32, opt.MaxDepth)
	assert.Zero(t, opt.MaxBytes)
}

func TestDecode_EmptyIsDefault(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "colour: red\n",
		"unknown nested":   "parse:\n  depth: 3\n",
		"bad format":       "format: xml\n",
		"zero concurrency": "concurrency: 0\n",
		"bad policy":       "parse:\n  duplicate_keys: maybe\n",
		"negative limit":   "parse:\n  max_bytes: -1\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Schema)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	t.Chdir(dir)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
