// Package mesh draws a single textured, optionally lit triangle mesh.
package mesh

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/gpu"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/shading"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

var (
	// ErrResourceAcquisition wraps every failure to obtain a program,
	// uniform/attribute location, buffer or texture. It is not retryable.
	ErrResourceAcquisition = errors.New("resource acquisition failed")

	// ErrNoGeometry is returned by Draw before any SetMesh call.
	ErrNoGeometry = errors.New("no geometry loaded")
)

// State is the renderer's position in its upload/draw lifecycle.
type State int

const (
	// Uninitialized means no geometry has been uploaded.
	Uninitialized State = iota
	// GeometryLoaded means geometry is uploaded but not yet drawn, and no texture is bound.
	GeometryLoaded
	// Ready means untextured geometry has been drawn at least once.
	Ready
	// TexturedReady means both geometry and a texture are bound.
	TexturedReady
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case GeometryLoaded:
		return "geometry-loaded"
	case Ready:
		return "ready"
	case TexturedReady:
		return "textured-ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// textureUnit is the unit the sampler reads from.
const textureUnit = 0

// locations caches the program's uniform and attribute bindings.
type locations struct {
	mvp            int32
	showTex        int32
	enableLighting int32
	ambient        int32
	lightPos       int32
	sampler        int32

	pos      uint32
	texCoord uint32
}

// normalBinding is the optional normal stream. Only meaningful when valid.
type normalBinding struct {
	valid    bool
	buffer   uint32
	location uint32
}

// Renderer owns the GPU resources for one mesh and its texture.
//
// SetMesh and SetTexture must not run concurrently with Draw; all calls are
// expected on the GL thread.
type Renderer struct {
	dev     gpu.Device
	program uint32
	loc     locations
	log     *zap.Logger

	vao            uint32
	posBuffer      uint32
	texCoordBuffer uint32
	normals        normalBinding

	tex          uint32
	hasTexture   bool
	mipmapped    bool
	numTriangles int32

	light  lighting.State
	flags  shading.Flags
	lights *lighting.Controller
	keys   lighting.KeyState

	state State
}

// New resolves the program's bindings and allocates the vertex array and the
// position and texture coordinate buffers. lights may be nil, in which case
// the renderer owns a fresh controller.
//
// Any missing program, location or buffer is returned as an error wrapping
// ErrResourceAcquisition.
func New(dev gpu.Device, program uint32, lights *lighting.Controller) (*Renderer, error) {
	if program == 0 {
		return nil, fmt.Errorf("program: %w", ErrResourceAcquisition)
	}
	if lights == nil {
		lights = lighting.NewController()
	}

	r := &Renderer{
		dev:     dev,
		program: program,
		log:     logger.Named("mesh"),
		light:   lighting.DefaultState(),
		lights:  lights,
		state:   Uninitialized,
	}

	uniforms := []struct {
		name string
		dst  *int32
	}{
		{shading.UniformMVP, &r.loc.mvp},
		{shading.UniformShowTexture, &r.loc.showTex},
		{shading.UniformEnableLighting, &r.loc.enableLighting},
		{shading.UniformAmbient, &r.loc.ambient},
		{shading.UniformLightPos, &r.loc.lightPos},
	}
	for _, u := range uniforms {
		loc := dev.UniformLocation(program, u.name)
		if loc < 0 {
			return nil, fmt.Errorf("uniform %q: %w", u.name, ErrResourceAcquisition)
		}
		*u.dst = loc
	}

	var err error
	if r.loc.pos, err = r.attrib(shading.AttribPosition); err != nil {
		return nil, err
	}
	if r.loc.texCoord, err = r.attrib(shading.AttribTexCoord); err != nil {
		return nil, err
	}

	if r.vao, err = dev.CreateVertexArray(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceAcquisition, err)
	}
	if r.posBuffer, err = dev.CreateBuffer(); err != nil {
		r.Close()
		return nil, fmt.Errorf("position buffer: %w: %w", ErrResourceAcquisition, err)
	}
	if r.texCoordBuffer, err = dev.CreateBuffer(); err != nil {
		r.Close()
		return nil, fmt.Errorf("texcoord buffer: %w: %w", ErrResourceAcquisition, err)
	}

	r.log.Debug("renderer created",
		zap.Uint32("program", program),
		zap.Uint32("vao", r.vao),
	)
	return r, nil
}

func (r *Renderer) attrib(name string) (uint32, error) {
	loc := r.dev.AttribLocation(r.program, name)
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q: %w", name, ErrResourceAcquisition)
	}
	return uint32(loc), nil
}

// SetMesh replaces the geometry. positions holds 3 floats per vertex and
// texCoords 2; both must describe the same vertex count (not checked).
// normals is optional; the normal stream is allocated on first use.
//
// A failed call leaves the previous geometry in place.
func (r *Renderer) SetMesh(positions, texCoords, normals []float32) error {
	nb := r.normals
	if len(normals) > 0 && !nb.valid {
		var err error
		if nb, err = r.newNormalBinding(); err != nil {
			return err
		}
	}

	r.dev.BindVertexArray(r.vao)
	r.dev.BufferData(r.posBuffer, positions)
	r.dev.BufferData(r.texCoordBuffer, texCoords)

	// Vertex count, not triangle count; the draw call consumes it directly.
	r.numTriangles = int32(len(positions) / 3)

	if len(normals) > 0 {
		r.normals = nb
		r.dev.BufferData(r.normals.buffer, normals)
	} else if r.normals.valid {
		// Stale normals would not match the new vertex count.
		r.dev.DisableAttribute(r.normals.location)
		r.dev.DeleteBuffer(r.normals.buffer)
		r.normals = normalBinding{}
	}

	if r.hasTexture {
		r.state = TexturedReady
	} else {
		r.state = GeometryLoaded
	}

	r.log.Debug("mesh uploaded",
		zap.Int32("vertices", r.numTriangles),
		zap.Bool("normals", r.normals.valid),
		zap.Stringer("state", r.state),
	)
	return nil
}

func (r *Renderer) newNormalBinding() (normalBinding, error) {
	loc, err := r.attrib(shading.AttribNormal)
	if err != nil {
		return normalBinding{}, err
	}
	buf, err := r.dev.CreateBuffer()
	if err != nil {
		return normalBinding{}, fmt.Errorf("normal buffer: %w: %w", ErrResourceAcquisition, err)
	}
	return normalBinding{valid: true, buffer: buf, location: loc}, nil
}

// SetTexture uploads img as the mesh texture, replacing any previous one.
// Mipmaps are generated only when both dimensions are powers of two;
// otherwise sampling is clamped to the edge with linear filtering.
//
// A failed call leaves the previous texture bound.
func (r *Renderer) SetTexture(img *image.RGBA) error {
	if img == nil {
		return errors.New("set texture: nil image")
	}

	sampler := r.dev.UniformLocation(r.program, shading.UniformSampler)
	if sampler < 0 {
		return fmt.Errorf("uniform %q: %w", shading.UniformSampler, ErrResourceAcquisition)
	}
	tex, err := r.dev.CreateTexture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAcquisition, err)
	}

	if r.hasTexture {
		r.dev.DeleteTexture(r.tex)
	}
	r.tex = tex
	r.hasTexture = true
	r.loc.sampler = sampler

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	r.dev.UploadTexture(tex, img)

	r.mipmapped = texture.IsPowerOf2(w) && texture.IsPowerOf2(h)
	if r.mipmapped {
		r.dev.GenerateMipmap(tex)
	} else {
		r.dev.SetClampLinear(tex)
	}

	r.dev.UseProgram(r.program)
	r.dev.BindTexture(textureUnit, tex)
	r.dev.Uniform1i(sampler, textureUnit)

	if r.state != Uninitialized {
		r.state = TexturedReady
	}

	r.log.Debug("texture uploaded",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Bool("mipmapped", r.mipmapped),
	)
	return nil
}

// SetKeySource sets the held-key state polled by the light controller on
// every Draw.
func (r *Renderer) SetKeySource(keys lighting.KeyState) {
	r.keys = keys
}

// Draw uploads the per-frame uniforms and draws the mesh as a triangle list.
//
// Lighting is switched on by every Draw regardless of earlier EnableLighting
// calls. The light position uploaded is the base position plus the
// controller offsets as they were before this frame's key update.
func (r *Renderer) Draw(mvp math.Mat4) error {
	if r.state == Uninitialized {
		return ErrNoGeometry
	}

	r.dev.UseProgram(r.program)
	r.dev.UniformMatrix4(r.loc.mvp, mvp)
	r.dev.Uniform3f(r.loc.lightPos, r.LightPosition())
	r.dev.Uniform1f(r.loc.ambient, r.light.Ambient)
	r.dev.Uniform1i(r.loc.enableLighting, 1)
	r.flags.LightingEnabled = true

	r.dev.BindVertexArray(r.vao)
	r.dev.BindAttribute(r.loc.pos, r.posBuffer, 3)
	r.dev.BindAttribute(r.loc.texCoord, r.texCoordBuffer, 2)
	if r.normals.valid {
		r.dev.BindAttribute(r.normals.location, r.normals.buffer, 3)
	}
	if r.hasTexture {
		r.dev.BindTexture(textureUnit, r.tex)
	}

	r.lights.Update(r.keys)
	r.dev.DrawTriangles(0, r.numTriangles)

	if r.state == GeometryLoaded {
		r.state = Ready
	}
	return nil
}

// EnableLighting sets the lighting uniform immediately.
func (r *Renderer) EnableLighting(enable bool) {
	r.flags.LightingEnabled = enable
	r.dev.UseProgram(r.program)
	r.dev.Uniform1i(r.loc.enableLighting, boolToInt(enable))
}

// ShowTexture sets the texture visibility uniform immediately.
func (r *Renderer) ShowTexture(show bool) {
	r.flags.TextureVisible = show
	r.dev.UseProgram(r.program)
	r.dev.Uniform1i(r.loc.showTex, boolToInt(show))
}

// SetAmbientLight sets the ambient intensity. Values are not clamped.
func (r *Renderer) SetAmbientLight(ambient float32) {
	r.light.Ambient = ambient
	r.dev.UseProgram(r.program)
	r.dev.Uniform1f(r.loc.ambient, ambient)
}

// SetLightPosition replaces the base light position. Controller offsets
// are added on top of it.
func (r *Renderer) SetLightPosition(pos math.Vec3) {
	r.light.Position = pos
}

// LightPosition returns the position uploaded by the next Draw.
func (r *Renderer) LightPosition() math.Vec3 {
	return r.lights.Compose(r.light.Position)
}

// Light returns the base light state.
func (r *Renderer) Light() lighting.State {
	return r.light
}

// Flags returns the last shading flags pushed to the program.
func (r *Renderer) Flags() shading.Flags {
	return r.flags
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// NumTriangles returns the number of vertices submitted per draw.
func (r *Renderer) NumTriangles() int {
	return int(r.numTriangles)
}

// Mipmapped reports whether the current texture has mipmaps.
func (r *Renderer) Mipmapped() bool {
	return r.mipmapped
}

// Close releases all GPU objects owned by the renderer. The program is not
// deleted; it belongs to the caller.
func (r *Renderer) Close() {
	if r.hasTexture {
		r.dev.DeleteTexture(r.tex)
		r.hasTexture = false
	}
	if r.normals.valid {
		r.dev.DeleteBuffer(r.normals.buffer)
		r.normals = normalBinding{}
	}
	if r.texCoordBuffer != 0 {
		r.dev.DeleteBuffer(r.texCoordBuffer)
		r.texCoordBuffer = 0
	}
	if r.posBuffer != 0 {
		r.dev.DeleteBuffer(r.posBuffer)
		r.posBuffer = 0
	}
	if r.vao != 0 {
		r.dev.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	r.state = Uninitialized
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
