// Package geometry loads mesh files into flat, non-indexed vertex streams.
package geometry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// Mesh is a triangle list: every three consecutive vertices form one
// triangle. Positions and Normals hold 3 floats per vertex, TexCoords 2.
// Normals is either empty or the same length as Positions.
type Mesh struct {
	Positions []float32
	TexCoords []float32
	Normals   []float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.Positions) < 3 {
		return math.Vec3{}, math.Vec3{}
	}
	lo = m.position(0)
	hi = lo
	for i := 1; i < m.VertexCount(); i++ {
		p := m.position(i)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}

// FitUnitBox centres the mesh on the origin and scales it uniformly so the
// largest extent is 1.
func (m *Mesh) FitUnitBox() {
	lo, hi := m.Bounds()
	size := hi.Sub(lo)
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		return
	}
	center := lo.Add(size.Scale(0.5))
	scale := 1 / extent

	for i := 0; i < m.VertexCount(); i++ {
		p := m.position(i).Sub(center).Scale(scale)
		m.Positions[i*3+0] = p.X
		m.Positions[i*3+1] = p.Y
		m.Positions[i*3+2] = p.Z
	}
}

// ComputeFlatNormals replaces Normals with one face normal per triangle,
// repeated for its three vertices. Degenerate triangles get a zero normal.
func (m *Mesh) ComputeFlatNormals() {
	n := m.VertexCount()
	m.Normals = make([]float32, n*3)
	for tri := 0; tri+2 < n; tri += 3 {
		a, b, c := m.position(tri), m.position(tri+1), m.position(tri+2)
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for k := 0; k < 3; k++ {
			m.Normals[(tri+k)*3+0] = normal.X
			m.Normals[(tri+k)*3+1] = normal.Y
			m.Normals[(tri+k)*3+2] = normal.Z
		}
	}
}

func (m *Mesh) position(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[i*3], Y: m.Positions[i*3+1], Z: m.Positions[i*3+2]}
}

// Load reads an OBJ, glTF or GLB file based on its extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}
