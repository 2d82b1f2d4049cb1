package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir substitutes for testing.T.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ModeLenient, cfg.Mode)
	assert.Equal(t, DefaultDirective, cfg.Directive)
	assert.False(t, cfg.CheckCollisions)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errsum.yaml")
	content := `
mode: strict
check-collisions: true
directive: failable
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, cfg.Mode)
	assert.True(t, cfg.CheckCollisions)
	assert.Equal(t, "failable", cfg.Directive)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errsum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("check-collisions: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeLenient, cfg.Mode)
	assert.Equal(t, DefaultDirective, cfg.Directive)
	assert.True(t, cfg.CheckCollisions)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errsum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [what\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errsum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: whatever\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestModeText(t *testing.T) {
	assert.Equal(t, "lenient", ModeLenient.String())
	assert.Equal(t, "strict", ModeStrict.String())
	assert.Equal(t, "invalid(17)", Mode(17).String())

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("strict")))
	assert.Equal(t, ModeStrict, m)
	require.Error(t, m.UnmarshalText([]byte("bogus")))
}
