// Package gpu defines the narrow set of GPU commands the mesh renderer issues
// and an OpenGL implementation of it.
package gpu

import (
	"errors"
	"image"

	"github.com/Faultbox/meshview/pkg/math"
)

// ErrCreateFailed is returned when the driver hands back a zero object name.
var ErrCreateFailed = errors.New("gpu object creation failed")

// Device issues GPU commands. All methods must be called on the thread that
// owns the GL context.
type Device interface {
	UseProgram(program uint32)
	// UniformLocation returns -1 if the uniform is missing or inactive.
	UniformLocation(program uint32, name string) int32
	// AttribLocation returns -1 if the attribute is missing or inactive.
	AttribLocation(program uint32, name string) int32

	CreateVertexArray() (uint32, error)
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() (uint32, error)
	// BufferData replaces the whole contents of buffer.
	BufferData(buffer uint32, data []float32)
	// BindAttribute points attribute location at buffer with size floats per vertex.
	BindAttribute(location uint32, buffer uint32, size int32)
	DisableAttribute(location uint32)
	DeleteBuffer(buffer uint32)

	CreateTexture() (uint32, error)
	// UploadTexture binds texture and replaces level 0 with img.
	UploadTexture(texture uint32, img *image.RGBA)
	GenerateMipmap(texture uint32)
	// SetClampLinear sets clamp-to-edge wrapping and linear min/mag filtering.
	SetClampLinear(texture uint32)
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v math.Vec3)
	UniformMatrix4(location int32, m math.Mat4)

	// DrawTriangles draws count vertices as a triangle list.
	DrawTriangles(first, count int32)
}
