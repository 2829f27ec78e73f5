// Package shading holds the mesh shader program sources and a CPU
// evaluation of the same fragment logic.
package shading

import _ "embed"

// VertexShader is the vertex shader for mesh rendering.
//
//go:embed mesh.vert
var VertexShader string

// FragmentShader is the fragment shader for mesh rendering.
//
//go:embed mesh.frag
var FragmentShader string

// Names of the shader inputs the mesh renderer binds.
const (
	UniformMVP            = "mvp"
	UniformShowTexture    = "showTex"
	UniformEnableLighting = "enableLighting"
	UniformAmbient        = "ambient"
	UniformLightPos       = "lightPos"
	UniformSampler        = "tex"

	AttribPosition = "pos"
	AttribTexCoord = "texCoord"
	AttribNormal   = "normal"
)
