// Package transform builds the model-view-projection matrix for the mesh viewer.
package transform

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Pose is the camera pose applied to the mesh each frame.
// Rotations are in radians.
type Pose struct {
	TX, TY, TZ float32
	RotX, RotY float32
}

// Compose returns projection * T * Ry * Rx.
//
// A point is rotated about X first, then about Y, then translated, and
// finally projected. The order is fixed; changing it changes how the camera
// responds to input.
func Compose(projection math.Mat4, tx, ty, tz, rx, ry float32) math.Mat4 {
	rotation := math.RotateY(ry).Mul(math.RotateX(rx))
	model := math.Translate(tx, ty, tz).Mul(rotation)
	return projection.Mul(model)
}

// MVP composes the matrix for this pose.
func (p Pose) MVP(projection math.Mat4) math.Mat4 {
	return Compose(projection, p.TX, p.TY, p.TZ, p.RotX, p.RotY)
}
