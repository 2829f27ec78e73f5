// Package camera drives the model pose from mouse input.
package camera

import (
	"github.com/charmbracelet/harmonica"

	"github.com/Faultbox/meshview/internal/engine/transform"
)

// axis follows a target value with a critically damped spring.
type axis struct {
	value    float64
	velocity float64
	target   float64
	spring   harmonica.Spring
}

func (a *axis) update() {
	a.value, a.velocity = a.spring.Update(a.value, a.velocity, a.target)
}

func (a *axis) snap(v float64) {
	a.value = v
	a.velocity = 0
	a.target = v
}

// PoseController turns drag and wheel input into a smoothed transform.Pose.
// Input moves the target pose; Update eases the visible pose toward it.
type PoseController struct {
	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomStep        float32 // translation Z per wheel notch

	// Constraints
	MinZ float32
	MaxZ float32

	initial transform.Pose
	tx, ty  axis
	tz      axis
	rotX    axis
	rotY    axis
}

// NewPoseController creates a controller resting at initial. fps is the
// expected Update rate; frequency and damping tune the spring
// (damping 1 is critically damped).
func NewPoseController(initial transform.Pose, fps int, frequency, damping float64) *PoseController {
	spring := harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	c := &PoseController{
		DragSensitivity: 0.01,
		ZoomStep:        0.25,
		MinZ:            -100,
		MaxZ:            -0.5,
		initial:         initial,
	}
	for _, a := range c.axes() {
		a.spring = spring
	}
	c.Reset()
	return c
}

func (c *PoseController) axes() []*axis {
	return []*axis{&c.tx, &c.ty, &c.tz, &c.rotX, &c.rotY}
}

// HandleDrag rotates the target pose by a mouse drag delta in pixels.
func (c *PoseController) HandleDrag(deltaX, deltaY float32) {
	c.rotY.target += float64(deltaX * c.DragSensitivity)
	c.rotX.target += float64(deltaY * c.DragSensitivity)
}

// HandleZoom moves the target along Z by wheel notches. Positive delta
// moves the model toward the viewer.
func (c *PoseController) HandleZoom(delta float32) {
	z := float32(c.tz.target) + delta*c.ZoomStep
	if z < c.MinZ {
		z = c.MinZ
	}
	if z > c.MaxZ {
		z = c.MaxZ
	}
	c.tz.target = float64(z)
}

// Update advances the springs by one frame.
func (c *PoseController) Update() {
	for _, a := range c.axes() {
		a.update()
	}
}

// Reset returns both the target and visible pose to the initial pose.
func (c *PoseController) Reset() {
	c.tx.snap(float64(c.initial.TX))
	c.ty.snap(float64(c.initial.TY))
	c.tz.snap(float64(c.initial.TZ))
	c.rotX.snap(float64(c.initial.RotX))
	c.rotY.snap(float64(c.initial.RotY))
}

// Pose returns the current visible pose.
func (c *PoseController) Pose() transform.Pose {
	return transform.Pose{
		TX:   float32(c.tx.value),
		TY:   float32(c.ty.value),
		TZ:   float32(c.tz.value),
		RotX: float32(c.rotX.value),
		RotY: float32(c.rotY.value),
	}
}

// Target returns the pose the controller is easing toward.
func (c *PoseController) Target() transform.Pose {
	return transform.Pose{
		TX:   float32(c.tx.target),
		TY:   float32(c.ty.target),
		TZ:   float32(c.tz.target),
		RotX: float32(c.rotX.target),
		RotY: float32(c.rotY.target),
	}
}
