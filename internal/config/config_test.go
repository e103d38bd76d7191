package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvExportDir, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 70, cfg.Export.Quality)
	assert.Equal(t, 12.0, cfg.Surface.StrokeWidth)
	assert.Equal(t, 4.0, cfg.Surface.TouchTolerance)
}

func TestLoadOverridesAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"surface": {"foreground": "#0000ff"},
		"export": {"format": "pdf", "quality": 90}
	}`), 0o644))
	t.Setenv(EnvExportDir, "/tmp/sketches")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", cfg.Surface.Foreground)
	assert.Equal(t, "#FFFFFF", cfg.Surface.Background)
	assert.Equal(t, "pdf", cfg.Export.Format)
	assert.Equal(t, 90, cfg.Export.Quality)
	assert.Equal(t, "/tmp/sketches", cfg.Export.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(EnvExportDir, "")
	t.Setenv(EnvLogLevel, "")
	cases := []string{
		`{"export": {"format": "gif"}}`,
		`{"export": {"quality": 0}}`,
		`{"surface": {"stroke_width": -1}}`,
		`{"surface": {"background": "white"}}`,
		`{not json`,
	}
	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, body)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)

	c, err = ParseColor("11223344")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#GGGGGG")
	assert.Error(t, err)
}
