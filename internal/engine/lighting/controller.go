// Package lighting holds the directional light state and the held-key
// controller that nudges it.
package lighting

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Key identifies a directional key the controller reacts to.
type Key string

// Directional keys.
const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// KeyState reports which keys are currently held.
type KeyState interface {
	Held(k Key) bool
}

// KeySet is a KeyState backed by a map.
type KeySet map[Key]bool

// Held reports whether k is in the set.
func (s KeySet) Held(k Key) bool {
	return s[k]
}

// DefaultStep is the offset change per update for each held key.
const DefaultStep = 1

// Controller accumulates light offsets from held keys.
type Controller struct {
	X, Y float32
	Step float32
}

// NewController creates a controller with zero offsets and unit step.
func NewController() *Controller {
	return &Controller{Step: DefaultStep}
}

// Update applies one step for each held key. Up/down move Y (up decreases),
// left/right move X with left increasing it. Opposite keys cancel.
func (c *Controller) Update(keys KeyState) {
	if keys == nil {
		return
	}
	if keys.Held(KeyArrowUp) {
		c.Y -= c.Step
	}
	if keys.Held(KeyArrowDown) {
		c.Y += c.Step
	}
	if keys.Held(KeyArrowRight) {
		c.X -= c.Step
	}
	if keys.Held(KeyArrowLeft) {
		c.X += c.Step
	}
}

// Compose returns base + (X, Y, 0).
func (c *Controller) Compose(base math.Vec3) math.Vec3 {
	return base.Add(math.Vec3{X: c.X, Y: c.Y})
}

// Reset zeroes both offsets.
func (c *Controller) Reset() {
	c.X, c.Y = 0, 0
}
