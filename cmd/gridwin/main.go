// gridwin - software 3D renderer in a desktop window
// Same scenes and controls as grid, presented through an ebiten window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/grid/pkg/config"
	"github.com/taigrr/grid/pkg/control"
	"github.com/taigrr/grid/pkg/render"
	"github.com/taigrr/grid/pkg/scenes"
	"github.com/taigrr/grid/pkg/viewer"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML or TOML config file")
	sceneName   = flag.String("scene", "", "Built-in scene ("+strings.Join(scenes.Names(), ", ")+")")
	modelPath   = flag.String("model", "", "glTF/GLB model to view instead of a scene")
	windowScale = flag.Int("scale", 2, "Window size as a multiple of the framebuffer")
)

// keyNames maps binding names to ebiten keys.
var keyNames = map[string]ebiten.Key{
	"w":     ebiten.KeyW,
	"s":     ebiten.KeyS,
	"a":     ebiten.KeyA,
	"d":     ebiten.KeyD,
	"q":     ebiten.KeyQ,
	"e":     ebiten.KeyE,
	"f":     ebiten.KeyF,
	"g":     ebiten.KeyG,
	"h":     ebiten.KeyH,
	"m":     ebiten.KeyM,
	"p":     ebiten.KeyP,
	"r":     ebiten.KeyR,
	"x":     ebiten.KeyX,
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridwin - software 3D renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridwin [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		for _, line := range viewer.Controls {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
	}
	flag.Parse()

	if err := run(); err != nil {
		slog.Error("gridwin failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *modelPath != "" {
		cfg.Model = *modelPath
	} else if flag.NArg() > 0 {
		cfg.Model = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	demo, err := scenes.Open(cfg.Scene, cfg.Model)
	if err != nil {
		return err
	}
	v, err := viewer.New(cfg, demo)
	if err != nil {
		return err
	}
	slog.Info("scene loaded", "name", demo.Name, "triangles", demo.Scene.TriangleCount())

	g := newGame(v)
	ebiten.SetWindowTitle("grid - " + demo.Name)
	ebiten.SetWindowSize(cfg.Width*max(*windowScale, 1), cfg.Height*max(*windowScale, 1))
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game presents the viewer's framebuffer in an ebiten window.
type game struct {
	v     *viewer.Viewer
	fb    *render.Framebuffer
	pix   []byte
	img   *ebiten.Image
	stats render.Stats
}

func newGame(v *viewer.Viewer) *game {
	fb := render.NewFramebuffer(v.Config.Width, v.Config.Height)
	return &game{
		v:   v,
		fb:  fb,
		pix: make([]byte, 4*fb.Width*fb.Height),
		img: ebiten.NewImage(fb.Width, fb.Height),
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	// Windowing reports key state directly, so held keys never expire early
	for _, b := range control.Bindings {
		g.v.Keys.Set(b.Key, ebiten.IsKeyPressed(keyNames[b.Name]), now)
	}
	for _, b := range viewer.ActionBindings {
		if inpututil.IsKeyJustPressed(keyNames[b.Name]) {
			g.v.Do(b.Action)
		}
	}

	g.v.Step(now)
	g.v.Meter.Tick(now)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stats = g.v.Draw(g.fb)
	g.fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	if g.v.ShowHUD {
		ebitenutil.DebugPrint(screen, g.v.Status(g.stats))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
