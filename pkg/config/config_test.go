package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/grid/pkg/render"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.ModeFilled, opts.Mode)
	assert.Equal(t, render.FillEdge, opts.Fill)
	assert.Equal(t, render.ColorBackground, opts.Background)
	assert.Equal(t, render.ColorGreen, opts.Color)
	assert.True(t, opts.Clear)

	p := cfg.Projector(cfg.Height)
	assert.Equal(t, 200.0, p.Focal)
	assert.Equal(t, render.DefaultNear, p.Near)
	assert.Equal(t, 1.0, p.PixelAspect)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "grid.yaml", `
mode: wireframe
fill: scanline
width: 320
height: 200
background: "#000000"
color: ff0000
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "wireframe", cfg.Mode)
	assert.Equal(t, "scanline", cfg.Fill)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	// Unset fields keep defaults
	assert.Equal(t, 200.0, cfg.Focal)
	assert.Equal(t, "demo", cfg.Scene)

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.ModeWireframe, opts.Mode)
	assert.Equal(t, render.FillScanline, opts.Fill)
	assert.Equal(t, render.ColorBlack, opts.Background)
	assert.Equal(t, render.ColorRed, opts.Color)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "grid.toml", `
focal = 0.0
fov = 90.0
pixel_aspect = 2.0
fps = 30
scene = "cube"
model = "ship.glb"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 90.0, cfg.FOV)
	assert.Equal(t, "cube", cfg.Scene)
	assert.Equal(t, "ship.glb", cfg.Model)
	assert.Equal(t, time.Second/30, cfg.FrameDuration())

	// 90 degrees over 480 rows puts the edge of the view at 240 pixels
	p := cfg.Projector(480)
	assert.InDelta(t, 240.0, p.Focal, 1e-9)
	assert.Equal(t, 2.0, p.PixelAspect)
}

func TestLoadFOVOnly(t *testing.T) {
	cfg, err := Load(writeConfig(t, "grid.yaml", "fov: 60\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Zero(t, cfg.Focal)
	// 240 / tan(30 degrees)
	assert.InDelta(t, 415.692, cfg.Projector(480).Focal, 1e-3)

	cfg, err = Load(writeConfig(t, "grid.toml", "fov = 60.0\nfocal = 150.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.Focal, "an explicit focal length still wins")
}

func TestProjectorScalesFocal(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 200.0, cfg.Projector(480).Focal, 1e-12)
	assert.InDelta(t, 20.0, cfg.Projector(48).Focal, 1e-12)
	assert.InDelta(t, 400.0, cfg.Projector(960).Focal, 1e-12)

	// Field of view already depends on the viewport height
	cfg.Focal, cfg.FOV = 0, 90
	assert.InDelta(t, 24.0, cfg.Projector(48).Focal, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "grid.yaml", "width: [1, 2"))
	assert.ErrorContains(t, err, "parsing config")

	_, err = Load(writeConfig(t, "grid.toml", "width = "))
	assert.ErrorContains(t, err, "parsing config")

	_, err = Load(writeConfig(t, "grid.json", "{}"))
	assert.ErrorContains(t, err, "unknown format")

	_, err = Load(t.TempDir())
	assert.ErrorContains(t, err, "reading config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "dotted" }},
		{"fill", func(c *Config) { c.Fill = "flood" }},
		{"negative focal", func(c *Config) { c.Focal = -1 }},
		{"fov without focal", func(c *Config) { c.Focal, c.FOV = 0, 0 }},
		{"fov too wide", func(c *Config) { c.Focal, c.FOV = 0, 180 }},
		{"near", func(c *Config) { c.Near = 0 }},
		{"pixel aspect", func(c *Config) { c.PixelAspect = -2 }},
		{"viewport", func(c *Config) { c.Width = 0 }},
		{"background", func(c *Config) { c.Background = "blue" }},
		{"color", func(c *Config) { c.Color = "12345" }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := Default()
	cfg.Width, cfg.FPS = 0, 0
	err := cfg.Validate()
	assert.ErrorContains(t, err, "viewport")
	assert.ErrorContains(t, err, "fps")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"202020", 0x202020FF, false},
		{"#00ff00", render.ColorGreen, false},
		{"0x11223344", 0x11223344, false},
		{" FFFFFFFF ", render.ColorWhite, false},
		{"", 0, true},
		{"fff", 0, true},
		{"zzzzzz", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
