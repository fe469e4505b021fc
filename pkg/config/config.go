// Package config loads grid's render configuration from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/grid/pkg/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds everything needed to set up a render loop.
type Config struct {
	// Rendering
	Mode string `yaml:"mode" toml:"mode"` // filled or wireframe
	Fill string `yaml:"fill" toml:"fill"` // edge or scanline

	// Projection. Focal wins when both are set; a file that sets only fov
	// loads with Focal cleared.
	FOV         float64 `yaml:"fov" toml:"fov"`     // vertical field of view, degrees
	Focal       float64 `yaml:"focal" toml:"focal"` // pixels at Height rows
	Near        float64 `yaml:"near" toml:"near"`
	PixelAspect float64 `yaml:"pixel_aspect" toml:"pixel_aspect"`

	// Viewport for windowed and snapshot output; the terminal viewer sizes
	// itself to the terminal.
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	// Colors as hex RRGGBB or RRGGBBAA, with optional # or 0x prefix.
	// An empty Color keeps the scene's own coloring.
	Background string `yaml:"background" toml:"background"`
	Color      string `yaml:"color" toml:"color"`

	FPS      int    `yaml:"fps" toml:"fps"`
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Scene is a built-in scene name; Model, when set, is a glTF/GLB file
	// shown instead.
	Scene string `yaml:"scene" toml:"scene"`
	Model string `yaml:"model" toml:"model"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Mode:        "filled",
		Fill:        "edge",
		FOV:         0,
		Focal:       200,
		Near:        render.DefaultNear,
		PixelAspect: 1,
		Width:       640,
		Height:      480,
		Background:  "202020FF",
		FPS:         60,
		LogLevel:    "info",
		Scene:       "demo",
	}
}

// Load reads a config file, choosing the decoder from its extension
// (.yaml, .yml or .toml). Fields missing from the file keep their defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	var decode func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = yaml.Unmarshal
	case ".toml":
		decode = toml.Unmarshal
	default:
		return cfg, fmt.Errorf("config %s: unknown format %q", path, filepath.Ext(path))
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// A file that picks a field of view without a focal length means FOV
	// projection, not the default focal length.
	var keys map[string]any
	if err := decode(data, &keys); err == nil {
		_, hasFOV := keys["fov"]
		_, hasFocal := keys["focal"]
		if hasFOV && !hasFocal {
			cfg.Focal = 0
		}
	}

	return cfg, nil
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if _, err := render.ParseMode(c.Mode); err != nil {
		bad("mode: %v", err)
	}
	if _, err := render.ParseFillMode(c.Fill); err != nil {
		bad("fill: %v", err)
	}
	if c.Focal < 0 || math.IsNaN(c.Focal) {
		bad("focal must not be negative, got %v", c.Focal)
	}
	if c.Focal == 0 && !(c.FOV > 0 && c.FOV < 180) {
		bad("fov must be in (0, 180) degrees when focal is unset, got %v", c.FOV)
	}
	if !(c.Near > 0) {
		bad("near must be positive, got %v", c.Near)
	}
	if !(c.PixelAspect > 0) {
		bad("pixel_aspect must be positive, got %v", c.PixelAspect)
	}
	if c.Width <= 0 || c.Height <= 0 {
		bad("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := ParseColor(c.Background); err != nil {
		bad("background: %v", err)
	}
	if c.Color != "" {
		if _, err := ParseColor(c.Color); err != nil {
			bad("color: %v", err)
		}
	}
	if c.FPS <= 0 {
		bad("fps must be positive, got %d", c.FPS)
	}
	if _, err := c.SlogLevel(); err != nil {
		bad("log_level: %v", err)
	}

	return errors.Join(errs...)
}

// RenderOptions converts the config into renderer options.
func (c Config) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()

	var err error
	if opts.Mode, err = render.ParseMode(c.Mode); err != nil {
		return opts, err
	}
	if opts.Fill, err = render.ParseFillMode(c.Fill); err != nil {
		return opts, err
	}
	if opts.Background, err = ParseColor(c.Background); err != nil {
		return opts, fmt.Errorf("background: %w", err)
	}
	if c.Color != "" {
		if opts.Color, err = ParseColor(c.Color); err != nil {
			return opts, fmt.Errorf("color: %w", err)
		}
	}
	return opts, nil
}

// Projector builds the projector for a viewport of the given height. A
// fixed focal length is scaled by height/Height so a smaller viewport, such
// as a terminal, keeps the same field of view.
func (c Config) Projector(height int) render.Projector {
	var p render.Projector
	if c.Focal > 0 {
		focal := c.Focal
		if c.Height > 0 && height > 0 {
			focal *= float64(height) / float64(c.Height)
		}
		p = render.NewProjector(focal)
	} else {
		p = render.NewProjectorFOV(c.FOV*math.Pi/180, height)
	}
	if c.Near > 0 {
		p.Near = c.Near
	}
	if c.PixelAspect > 0 {
		p.PixelAspect = c.PixelAspect
	}
	return p
}

// FrameDuration is the target time per frame.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(max(c.FPS, 1))
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}

// ParseColor parses RRGGBB or RRGGBBAA hex, optionally prefixed with # or
// 0x. Six-digit colors are opaque.
func ParseColor(s string) (render.Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	h = strings.TrimPrefix(h, "0X")
	switch len(h) {
	case 6:
		h += "FF"
	case 8:
	default:
		return 0, fmt.Errorf("color %q: want RRGGBB or RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return render.Color(v), nil
}
