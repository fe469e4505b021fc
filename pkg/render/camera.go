package render

import (
	"math"

	"github.com/taigrr/grid/pkg/math3d"
)

// maxPitch keeps the camera just short of looking straight up or down.
const maxPitch = math.Pi/2 - 0.01

// Camera is a yaw/pitch camera. Camera space has +X right, +Y up and +Z
// pointing away from the viewer.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians). Positive yaw turns right, positive pitch
	// looks down.
	Yaw   float64
	Pitch float64

	// Per-frame step sizes used by the controller
	MoveSpeed float64
	TurnSpeed float64
}

// NewCamera creates a camera at pos looking down +Z.
func NewCamera(pos math3d.Vec3) *Camera {
	return &Camera{
		Position:  pos,
		MoveSpeed: 0.1,
		TurnSpeed: 0.03,
	}
}

// Transform maps a world-space point into camera space.
func (c *Camera) Transform(world math3d.Vec3) math3d.Vec3 {
	return world.Sub(c.Position).RotateY(-c.Yaw).RotateX(-c.Pitch)
}

// ToWorld maps a camera-space point back into world space.
func (c *Camera) ToWorld(cam math3d.Vec3) math3d.Vec3 {
	return cam.RotateX(c.Pitch).RotateY(c.Yaw).Add(c.Position)
}

// ViewMatrix returns Transform as a matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(-c.Yaw))
	return rot.Mul(math3d.Translate(c.Position.Negate()))
}

// Forward returns the view direction in world space.
func (c *Camera) Forward() math3d.Vec3 {
	sp, cp := math.Sincos(c.Pitch)
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(sy*cp, -sp, cy*cp)
}

// Heading returns the horizontal component of Forward, normalized.
func (c *Camera) Heading() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(sy, 0, cy)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(cy, 0, -sy)
}

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Forward().Cross(c.Right())
}

// MoveForward moves the camera along its heading (or backward if negative).
// Movement stays level regardless of pitch.
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Heading().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate rotates the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = clampPitch(c.Pitch + deltaPitch)
	c.Yaw = math.Remainder(c.Yaw+deltaYaw, 2*math.Pi)
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == math3d.Zero3() {
		return
	}
	c.Yaw = math.Atan2(dir.X, dir.Z)
	c.Pitch = clampPitch(-math.Asin(dir.Y))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}
