// Package viewer runs a demo scene: it owns the renderer, the camera
// controller and the view toggles shared by the terminal and window front
// ends.
package viewer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taigrr/grid/pkg/config"
	"github.com/taigrr/grid/pkg/control"
	"github.com/taigrr/grid/pkg/render"
	"github.com/taigrr/grid/pkg/scenes"
)

// Action is a one-shot view command bound to a key.
type Action int

const (
	ActionToggleWireframe Action = iota
	ActionToggleFill
	ActionToggleOverlay
	ActionTogglePause
	ActionToggleSmooth
	ActionToggleHUD
	ActionReset
)

// ActionBinding maps a key name to an action.
type ActionBinding struct {
	Name   string
	Action Action
}

// ActionBindings lists the default action keys.
var ActionBindings = []ActionBinding{
	{"x", ActionToggleWireframe},
	{"f", ActionToggleFill},
	{"g", ActionToggleOverlay},
	{"p", ActionTogglePause},
	{"m", ActionToggleSmooth},
	{"h", ActionToggleHUD},
	{"r", ActionReset},
}

// Controls is the key help shown in usage text.
var Controls = []string{
	"W/S         - Move forward/back",
	"A/D         - Strafe left/right",
	"Q/E         - Move down/up",
	"Arrows      - Turn and look",
	"X           - Toggle wireframe",
	"F           - Toggle edge/scanline fill",
	"G           - Toggle axes and ground grid overlay",
	"P           - Pause animation",
	"M           - Toggle motion smoothing",
	"H           - Toggle HUD",
	"R           - Reset view",
	"Esc         - Quit",
}

// Viewer holds everything a front end needs between frames. It is driven
// from a single goroutine.
type Viewer struct {
	Config   config.Config
	Demo     *scenes.Demo
	Renderer *render.Renderer
	Overlay  *render.Overlay
	Keys     *control.Keys
	Control  *control.Controller
	Meter    Meter

	ShowOverlay bool
	ShowHUD     bool
	Paused      bool

	home render.Camera
}

// New sets up a viewer for demo. The config must already be valid.
func New(cfg config.Config, demo *scenes.Demo) (*Viewer, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}

	r := render.NewRenderer(opts, cfg.Projector(cfg.Height))
	// A configured color replaces the scene's own coloring
	if cfg.Color == "" {
		r.ColorFunc = demo.Colors
	}
	if demo.Spin != nil {
		r.ModelFunc = demo.Spin.ModelFunc()
	}

	return &Viewer{
		Config:   cfg,
		Demo:     demo,
		Renderer: r,
		Overlay:  render.NewOverlay(demo.Camera, r.Projector, nil),
		Keys:     control.NewKeys(control.DefaultHold),
		Control:  control.NewController(cfg.FPS),
		ShowHUD:  true,
		home:     *demo.Camera,
	}, nil
}

// Camera returns the camera being driven.
func (v *Viewer) Camera() *render.Camera {
	return v.Demo.Camera
}

// Step advances one frame: held keys move the camera and the scene
// animation ticks unless paused.
func (v *Viewer) Step(now time.Time) {
	v.Control.Update(v.Demo.Camera, v.Keys.Input(now))
	if v.Demo.Spin != nil && !v.Paused {
		v.Demo.Spin.Step()
	}
}

// Draw renders the current frame into fb.
func (v *Viewer) Draw(fb *render.Framebuffer) render.Stats {
	// FOV-based projection depends on the viewport height
	v.Renderer.Projector = v.Config.Projector(fb.Height)
	stats := v.Renderer.RenderFrame(fb, v.Demo.Scene, v.Demo.Camera)

	if v.ShowOverlay {
		v.Overlay.Projector = v.Renderer.Projector
		v.Overlay.SetFramebuffer(fb)
		v.Overlay.DrawGrid(20, 1, -1, render.ColorGray)
		v.Overlay.DrawAxes(1)
	}
	return stats
}

// Do applies a one-shot action.
func (v *Viewer) Do(a Action) {
	opts := &v.Renderer.Options
	switch a {
	case ActionToggleWireframe:
		if opts.Mode == render.ModeWireframe {
			opts.Mode = render.ModeFilled
		} else {
			opts.Mode = render.ModeWireframe
		}
	case ActionToggleFill:
		if opts.Fill == render.FillScanline {
			opts.Fill = render.FillEdge
		} else {
			opts.Fill = render.FillScanline
		}
	case ActionToggleOverlay:
		v.ShowOverlay = !v.ShowOverlay
	case ActionTogglePause:
		v.Paused = !v.Paused
	case ActionToggleSmooth:
		v.Control.Smooth = !v.Control.Smooth
	case ActionToggleHUD:
		v.ShowHUD = !v.ShowHUD
	case ActionReset:
		*v.Demo.Camera = v.home
		v.Control.Reset()
		v.Keys.Reset()
	}
}

// Status is the one-line HUD text for a frame.
func (v *Viewer) Status(stats render.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s  %.0f fps  %d tris  %d drawn  %d dropped  %s/%s ",
		v.Demo.Name, v.Meter.FPS, stats.Triangles, stats.Drawn, stats.Dropped,
		v.Renderer.Options.Mode, v.Renderer.Options.Fill)
	if v.Paused {
		b.WriteString(" paused ")
	}
	return b.String()
}

// Snapshot advances the animation by frames steps, renders one frame at the
// configured viewport size and saves it, upscaled by scale, as PNG or WebP
// depending on the path's extension.
func (v *Viewer) Snapshot(path string, frames, scale int) (render.Stats, error) {
	for range frames {
		v.Step(time.Time{})
	}

	fb := render.NewFramebuffer(v.Config.Width, v.Config.Height)
	stats := v.Draw(fb)
	if err := fb.SaveImage(path, scale); err != nil {
		return stats, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("snapshot saved",
		"path", path,
		"width", fb.Width*max(scale, 1),
		"height", fb.Height*max(scale, 1),
		"drawn", stats.Drawn,
		"dropped", stats.Dropped,
	)
	return stats, nil
}

// Meter measures frames per second over one-second windows.
type Meter struct {
	FPS float64

	frames int
	since  time.Time
}

// Tick records a frame at now.
func (m *Meter) Tick(now time.Time) {
	if m.since.IsZero() {
		m.since = now
		return
	}
	m.frames++
	if elapsed := now.Sub(m.since); elapsed >= time.Second {
		m.FPS = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.since = now
	}
}
