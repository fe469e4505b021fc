package scenes

import (
	"github.com/taigrr/grid/pkg/math3d"
	"github.com/taigrr/grid/pkg/render"
)

// Spin tumbles meshes about X then Y and pushes them in front of the camera.
type Spin struct {
	AngleX, AngleY float64     // current angles (radians)
	RateX, RateY   float64     // radians added per Step
	Offset         math3d.Vec3 // translation applied after rotating
}

// NewSpin returns the default tumble: 0.01 and 0.013 rad per frame, five
// units down +Z.
func NewSpin() *Spin {
	return &Spin{
		RateX:  0.01,
		RateY:  0.013,
		Offset: math3d.V3(0, 0, 5),
	}
}

// Step advances the angles by one frame.
func (s *Spin) Step() {
	s.AngleX += s.RateX
	s.AngleY += s.RateY
}

// Matrix returns the current model transform.
func (s *Spin) Matrix() math3d.Mat4 {
	return math3d.Translate(s.Offset).
		Mul(math3d.RotateY(s.AngleY)).
		Mul(math3d.RotateX(s.AngleX))
}

// ModelFunc applies the current transform to every mesh.
func (s *Spin) ModelFunc() render.ModelFunc {
	return func(int) math3d.Mat4 {
		return s.Matrix()
	}
}
