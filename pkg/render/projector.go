package render

import (
	"math"

	"github.com/taigrr/grid/pkg/math3d"
)

// DefaultNear is the default near-plane depth.
const DefaultNear = 0.1

// guardBand bounds projected coordinates so edge functions stay well inside
// int64 range. Only points a hair in front of the near plane reach it.
const guardBand = 1 << 24

// Point is an integer pixel coordinate with the origin at the top left.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Projector maps camera-space points onto the pixel grid.
type Projector struct {
	Focal       float64 // focal length in pixels
	Near        float64 // points at or before this depth are rejected
	PixelAspect float64 // horizontal stretch, 1 for square pixels
}

// NewProjector creates a projector with the given focal length in pixels.
func NewProjector(focal float64) Projector {
	return Projector{
		Focal:       focal,
		Near:        DefaultNear,
		PixelAspect: 1,
	}
}

// NewProjectorFOV creates a projector whose vertical field of view is fov
// radians across a viewport of the given height.
func NewProjectorFOV(fov float64, height int) Projector {
	return NewProjector(FocalFromFOV(fov, height))
}

// FocalFromFOV converts a vertical field of view to a focal length.
func FocalFromFOV(fov float64, height int) float64 {
	return float64(height) / 2 / math.Tan(fov/2)
}

// Project maps camera-space p to a pixel of a width x height viewport.
// It reports false when p is not in front of the near plane or has a NaN or
// infinite coordinate. The result may lie outside the viewport;
// rasterization clips.
func (pr Projector) Project(p math3d.Vec3, width, height int) (Point, bool) {
	if !(p.Z > pr.Near) || !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return Point{}, false
	}
	x := math.Round(pr.Focal * pr.PixelAspect * p.X / p.Z)
	y := math.Round(pr.Focal * p.Y / p.Z)
	return Point{
		X: width/2 + int(clampGuard(x)),
		Y: height/2 - int(clampGuard(y)),
	}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampGuard(v float64) float64 {
	return math.Max(-guardBand, math.Min(guardBand, v))
}
