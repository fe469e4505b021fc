// grid - software 3D renderer in the terminal
// Walk around a demo scene or a glTF model drawn with half-block pixels,
// or render a single frame to an image file.
//
// Controls:
//
//	W/S     - Move forward/back
//	A/D     - Strafe left/right
//	Q/E     - Move down/up
//	Arrows  - Turn and look
//	X       - Toggle wireframe
//	F       - Toggle edge/scanline fill
//	G       - Toggle axes and ground grid overlay
//	P       - Pause animation
//	M       - Toggle motion smoothing
//	H       - Toggle HUD
//	R       - Reset view
//	Esc     - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/taigrr/grid/pkg/config"
	"github.com/taigrr/grid/pkg/scenes"
	"github.com/taigrr/grid/pkg/viewer"
)

var (
	configPath = flag.String("config", "", "Path to a YAML or TOML config file")
	sceneName  = flag.String("scene", "", "Built-in scene ("+strings.Join(scenes.Names(), ", ")+")")
	modelPath  = flag.String("model", "", "glTF/GLB model to view instead of a scene")
	renderMode = flag.String("mode", "", "Render mode (filled, wireframe)")
	fillMode   = flag.String("fill", "", "Triangle fill (edge, scanline)")
	focal      = flag.Float64("focal", 0, "Focal length in pixels")
	fov        = flag.Float64("fov", 0, "Vertical field of view in degrees, used instead of -focal")
	targetFPS  = flag.Int("fps", 0, "Target FPS")
	width      = flag.Int("width", 0, "Snapshot width in pixels")
	height     = flag.Int("height", 0, "Snapshot height in pixels")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	snapshot   = flag.String("snapshot", "", "Render one frame to a .png or .webp file and exit")
	scale      = flag.Int("scale", 1, "Snapshot upscale factor")
	frames     = flag.Int("frames", 0, "Animation frames to advance before the snapshot")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "grid - software 3D renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: grid [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		for _, line := range viewer.Controls {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
	}
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if flag.NArg() > 0 && !set["model"] {
		*modelPath = flag.Arg(0)
		set["model"] = true
	}

	if err := run(set); err != nil {
		slog.Error("grid failed", "err", err)
		os.Exit(1)
	}
}

func run(set map[string]bool) error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, set)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	demo, err := scenes.Open(cfg.Scene, cfg.Model)
	if err != nil {
		return err
	}
	slog.Info("scene loaded",
		"name", demo.Name,
		"meshes", demo.Scene.MeshCount(),
		"triangles", demo.Scene.TriangleCount(),
	)

	v, err := viewer.New(cfg, demo)
	if err != nil {
		return err
	}

	if *snapshot != "" {
		_, err := v.Snapshot(*snapshot, *frames, *scale)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runTerminal(ctx, v)
}

// loadConfig reads path, or returns the defaults when no path is given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyFlags copies the flags named in set over cfg.
func applyFlags(cfg *config.Config, set map[string]bool) {
	if set["scene"] {
		cfg.Scene = *sceneName
	}
	if set["model"] {
		cfg.Model = *modelPath
	}
	if set["mode"] {
		cfg.Mode = *renderMode
	}
	if set["fill"] {
		cfg.Fill = *fillMode
	}
	if set["focal"] {
		cfg.Focal = *focal
	}
	if set["fov"] {
		cfg.FOV = *fov
		// An explicit field of view beats the file's focal length
		if !set["focal"] {
			cfg.Focal = 0
		}
	}
	if set["fps"] {
		cfg.FPS = *targetFPS
	}
	if set["width"] {
		cfg.Width = *width
	}
	if set["height"] {
		cfg.Height = *height
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
}
