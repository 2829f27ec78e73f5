package shading

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Flags select the shading branch.
type Flags struct {
	LightingEnabled bool
	TextureVisible  bool
}

// FallbackColor is written when neither lighting nor texturing is enabled.
var FallbackColor = math.Vec4{1, 0, 0, 1}

// Input is everything one fragment evaluation reads.
type Input struct {
	Normal   math.Vec3
	LightPos math.Vec3
	Ambient  float32
	Texel    math.Vec4
	Flags    Flags
}

// Diffuse returns the Lambertian term max(dot(n, l), 0) for the normalized
// normal and light direction.
func Diffuse(normal, lightPos math.Vec3) float32 {
	return max(normal.Normalize().Dot(lightPos.Normalize()), 0)
}

// Shade evaluates the fragment shader on the CPU. Branches are checked in
// priority order: lit-textured, unlit-textured, flat red. The lit result is
// not clamped.
func Shade(in Input) math.Vec4 {
	switch {
	case in.Flags.LightingEnabled:
		k := in.Ambient + Diffuse(in.Normal, in.LightPos)
		return math.Vec4{in.Texel[0] * k, in.Texel[1] * k, in.Texel[2] * k, 1}
	case in.Flags.TextureVisible:
		return in.Texel
	default:
		return FallbackColor
	}
}
