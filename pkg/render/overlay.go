package render

import (
	"github.com/taigrr/grid/pkg/math3d"
)

// Overlay draws 3D debug lines through the same camera and projector as the
// scene. Lines are drawn on top of whatever is already in the framebuffer.
type Overlay struct {
	Camera    *Camera
	Projector Projector
	fb        *Framebuffer
}

// NewOverlay creates a new overlay renderer.
func NewOverlay(camera *Camera, proj Projector, fb *Framebuffer) *Overlay {
	return &Overlay{
		Camera:    camera,
		Projector: proj,
		fb:        fb,
	}
}

// SetFramebuffer retargets the overlay.
func (o *Overlay) SetFramebuffer(fb *Framebuffer) {
	o.fb = fb
}

// DrawLine3D draws a world-space line. Like triangles, a line with an
// endpoint at or behind the near plane is dropped; it reports whether the
// line was drawn.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, color Color) bool {
	a, ok1 := o.Projector.Project(o.Camera.Transform(p1), o.fb.Width, o.fb.Height)
	b, ok2 := o.Projector.Project(o.Camera.Transform(p2), o.fb.Width, o.fb.Height)
	if !ok1 || !ok2 {
		return false
	}
	o.fb.DrawLine(a.X, a.Y, b.X, b.Y, color)
	return true
}

// DrawBox draws the edges of an axis-aligned box.
func (o *Overlay) DrawBox(minB, maxB math3d.Vec3, color Color) {
	vertices := [8]math3d.Vec3{
		{X: minB.X, Y: minB.Y, Z: minB.Z}, // 0: bottom-left-near
		{X: maxB.X, Y: minB.Y, Z: minB.Z}, // 1: bottom-right-near
		{X: maxB.X, Y: maxB.Y, Z: minB.Z}, // 2: top-right-near
		{X: minB.X, Y: maxB.Y, Z: minB.Z}, // 3: top-left-near
		{X: minB.X, Y: minB.Y, Z: maxB.Z}, // 4: bottom-left-far
		{X: maxB.X, Y: minB.Y, Z: maxB.Z}, // 5: bottom-right-far
		{X: maxB.X, Y: maxB.Y, Z: maxB.Z}, // 6: top-right-far
		{X: minB.X, Y: maxB.Y, Z: maxB.Z}, // 7: top-left-far
	}

	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	for _, edge := range edges {
		o.DrawLine3D(vertices[edge[0]], vertices[edge[1]], color)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (o *Overlay) DrawAxes(length float64) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	o.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	o.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a square grid of the given size on the plane Y = y.
func (o *Overlay) DrawGrid(size, step, y float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		o.DrawLine3D(math3d.V3(x, y, -half), math3d.V3(x, y, half), color)
	}
	for z := -half; z <= half; z += step {
		o.DrawLine3D(math3d.V3(-half, y, z), math3d.V3(half, y, z), color)
	}
}

// DrawPoint draws a point as a small 3D cross.
func (o *Overlay) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	o.DrawLine3D(math3d.V3(pos.X-h, pos.Y, pos.Z), math3d.V3(pos.X+h, pos.Y, pos.Z), color)
	o.DrawLine3D(math3d.V3(pos.X, pos.Y-h, pos.Z), math3d.V3(pos.X, pos.Y+h, pos.Z), color)
	o.DrawLine3D(math3d.V3(pos.X, pos.Y, pos.Z-h), math3d.V3(pos.X, pos.Y, pos.Z+h), color)
}
