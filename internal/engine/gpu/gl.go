package gpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/pkg/math"
)

// GLDevice implements Device on an OpenGL 4.1 core context.
// gl.Init must have been called.
type GLDevice struct{}

// NewGLDevice returns a device bound to the current context.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

// UseProgram makes program current.
func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// UniformLocation looks up a uniform by name, returning -1 if absent.
func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return shader.GetUniform(program, name)
}

// AttribLocation looks up a vertex attribute by name, returning -1 if absent.
func (d *GLDevice) AttribLocation(program uint32, name string) int32 {
	return shader.GetAttrib(program, name)
}

// CreateVertexArray allocates a vertex array object.
func (d *GLDevice) CreateVertexArray() (uint32, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("vertex array: %w", ErrCreateFailed)
	}
	return vao, nil
}

// BindVertexArray makes vao current.
func (d *GLDevice) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

// DeleteVertexArray frees vao.
func (d *GLDevice) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

// CreateBuffer allocates an array buffer.
func (d *GLDevice) CreateBuffer() (uint32, error) {
	var buf uint32
	gl.GenBuffers(1, &buf)
	if buf == 0 {
		return 0, fmt.Errorf("buffer: %w", ErrCreateFailed)
	}
	return buf, nil
}

// BufferData replaces the contents of buffer with data as static draw.
func (d *GLDevice) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

// BindAttribute enables location and points it at buffer, size floats per vertex.
func (d *GLDevice) BindAttribute(location uint32, buffer uint32, size int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, 0, nil)
}

// DisableAttribute disables the vertex attribute array at location.
func (d *GLDevice) DisableAttribute(location uint32) {
	gl.DisableVertexAttribArray(location)
}

// DeleteBuffer frees buffer.
func (d *GLDevice) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

// CreateTexture allocates a texture object.
func (d *GLDevice) CreateTexture() (uint32, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("texture: %w", ErrCreateFailed)
	}
	return tex, nil
}

// UploadTexture replaces level 0 of texture with img as RGBA8.
func (d *GLDevice) UploadTexture(texture uint32, img *image.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// GenerateMipmap builds the mip chain and selects trilinear filtering.
func (d *GLDevice) GenerateMipmap(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// SetClampLinear clamps texture to the edge with linear filtering and no mipmaps.
func (d *GLDevice) SetClampLinear(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// BindTexture binds texture to the given texture unit.
func (d *GLDevice) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// DeleteTexture frees texture.
func (d *GLDevice) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

// Uniform1i sets an int or sampler uniform on the current program.
func (d *GLDevice) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// Uniform1f sets a float uniform on the current program.
func (d *GLDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

// Uniform3f sets a vec3 uniform on the current program.
func (d *GLDevice) Uniform3f(location int32, v math.Vec3) {
	gl.Uniform3f(location, v.X, v.Y, v.Z)
}

// UniformMatrix4 sets a column-major mat4 uniform on the current program.
func (d *GLDevice) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, m.Ptr())
}

// DrawTriangles draws count vertices from first as a triangle list.
func (d *GLDevice) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

var _ Device = (*GLDevice)(nil)
