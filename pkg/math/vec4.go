package math

// Vec4 is a 4-component vector, also used for RGBA colours.
type Vec4 [4]float32

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// Mul returns the component-wise product.
func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v[0] * other[0], v[1] * other[1], v[2] * other[2], v[3] * other[3]}
}

// Splat returns a vector with all four components set to s.
func Splat(s float32) Vec4 {
	return Vec4{s, s, s, s}
}
