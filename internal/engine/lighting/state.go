package lighting

import "github.com/Faultbox/meshview/pkg/math"

// State is the light the renderer uploads each frame.
type State struct {
	Position math.Vec3
	Ambient  float32
}

// DefaultState returns position (1,1,1) with ambient 0.5.
func DefaultState() State {
	return State{
		Position: math.Vec3{X: 1, Y: 1, Z: 1},
		Ambient:  0.5,
	}
}
