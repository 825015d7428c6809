package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxwasm/internal/event"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_TOMLDiscoveredUpward(t *testing.T) {
	root := t.TempDir()
	write(t, root, "saxwasm.toml", `
events = ["open_tag", "close_tag"]
chunk_size = 512
whitespace_text = true
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := Load("", nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "saxwasm.toml"), path)
	assert.Equal(t, 512, cfg.ChunkSize)
	assert.True(t, cfg.WhitespaceText)
	assert.Equal(t, DefaultMaxDiagnostics, cfg.MaxDiagnostics)
	assert.Equal(t, "pretty", cfg.Format)

	set, err := cfg.EventSet()
	require.NoError(t, err)
	assert.Equal(t, event.SetOf(event.OpenTag, event.CloseTag), set)
}

func TestLoad_YAMLExplicit(t *testing.T) {
	path := write(t, t.TempDir(), "custom.yml", "events: [text]\njobs: 4\nformat: json\nlog_level: debug\n")

	cfg, got, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := write(t, t.TempDir(), ".saxwasm.yaml", "")
	cfg, _, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_NothingFound(t *testing.T) {
	cfg, path, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name, file, body string
	}{
		{"unknown toml key", "a.toml", "colour = true\n"},
		{"unknown yaml key", "b.yaml", "colour: true\n"},
		{"bad event", "c.toml", `events = ["tags"]`},
		{"zero chunk", "d.yaml", "chunk_size: 0\n"},
		{"bad format", "e.toml", `format = "xml"`},
		{"negative jobs", "f.yml", "jobs: -1\n"},
		{"broken toml", "g.toml", "events = [\n"},
		{"unsupported ext", "h.ini", "x=1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := write(t, dir, tc.file, tc.body)
			_, _, err := Load(path, "")
			assert.Error(t, err)
		})
	}
}

func TestValidate_InvalidWraps(t *testing.T) {
	cfg := Default()
	cfg.Events = []string{"nope"}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestEventSet(t *testing.T) {
	cfg := Default()
	cfg.Events = []string{"text", "close_tag"}
	set, err := cfg.EventSet()
	require.NoError(t, err)
	assert.Equal(t, event.SetOf(event.Text, event.CloseTag), set)

	cfg.Events = []string{"text", "bogus"}
	_, err = cfg.EventSet()
	assert.ErrorIs(t, err, ErrInvalid)
}
