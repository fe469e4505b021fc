// Package control turns keyboard intent into camera motion.
package control

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/grid/pkg/render"
)

// Input is one frame of movement intent. Each axis is clamped to [-1, 1].
type Input struct {
	Forward float64 // +1 forward, -1 back
	Strafe  float64 // +1 right, -1 left
	Lift    float64 // +1 up, -1 down
	Yaw     float64 // +1 turn right
	Pitch   float64 // +1 look up
}

func (in Input) axes() [numAxes]float64 {
	return [numAxes]float64{in.Forward, in.Strafe, in.Lift, in.Yaw, in.Pitch}
}

const numAxes = 5

// axis eases one input channel toward its target with a spring.
type axis struct {
	Value  float64
	vel    float64
	spring harmonica.Spring
}

func (a *axis) update(target float64) {
	a.Value, a.vel = a.spring.Update(a.Value, a.vel, target)
}

// Controller moves a camera once per frame. With smoothing enabled each
// axis follows its input through a critically damped spring, so motion
// ramps up and coasts to a stop instead of snapping.
type Controller struct {
	Smooth bool

	fps  int
	axes [numAxes]axis
}

// NewController creates a smoothing controller for the given frame rate.
func NewController(fps int) *Controller {
	c := &Controller{Smooth: true, fps: max(fps, 1)}
	c.Reset()
	return c
}

// Reset stops all motion.
func (c *Controller) Reset() {
	for i := range c.axes {
		// Frequency 6.0 = quick response, damping 1.0 = critically damped (no overshoot)
		c.axes[i] = axis{spring: harmonica.NewSpring(harmonica.FPS(c.fps), 6.0, 1.0)}
	}
}

// Velocity returns the smoothed intent applied on the last Update.
func (c *Controller) Velocity() Input {
	return Input{
		Forward: c.axes[0].Value,
		Strafe:  c.axes[1].Value,
		Lift:    c.axes[2].Value,
		Yaw:     c.axes[3].Value,
		Pitch:   c.axes[4].Value,
	}
}

// Update advances one frame: moves cam by up to MoveSpeed along its heading,
// right and up vectors, and turns it by up to TurnSpeed.
func (c *Controller) Update(cam *render.Camera, in Input) {
	for i, target := range in.axes() {
		target = clamp(target)
		if c.Smooth {
			c.axes[i].update(target)
		} else {
			c.axes[i].Value = target
		}
	}

	v := c.Velocity()
	cam.MoveForward(v.Forward * cam.MoveSpeed)
	cam.MoveRight(v.Strafe * cam.MoveSpeed)
	cam.MoveUp(v.Lift * cam.MoveSpeed)
	// Positive pitch looks down
	cam.Rotate(-v.Pitch*cam.TurnSpeed, v.Yaw*cam.TurnSpeed)
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
