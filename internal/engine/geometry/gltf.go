package geometry

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and merges every triangle primitive
// into one mesh. Node transforms are not applied. V coordinates are flipped
// to match the bottom-up texture layout used by the texture loader.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	m := &Mesh{}
	allNormals := true
	var normals []float32

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			p, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			m.Positions = append(m.Positions, p.Positions...)
			m.TexCoords = append(m.TexCoords, p.TexCoords...)
			if p.HasNormals() {
				normals = append(normals, p.Normals...)
			} else {
				allNormals = false
			}
		}
	}

	if m.VertexCount() == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle primitives", path)
	}
	if allNormals {
		m.Normals = normals
	}
	return m, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	hasNormals := len(normals) == len(positions)
	out := &Mesh{
		Positions: make([]float32, 0, len(indices)*3),
		TexCoords: make([]float32, 0, len(indices)*2),
	}
	if hasNormals {
		out.Normals = make([]float32, 0, len(indices)*3)
	}

	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		p := positions[idx]
		out.Positions = append(out.Positions, p[0], p[1], p[2])

		var u, v float32
		if int(idx) < len(uvs) {
			u, v = uvs[idx][0], 1-uvs[idx][1]
		}
		out.TexCoords = append(out.TexCoords, u, v)

		if hasNormals {
			n := normals[idx]
			out.Normals = append(out.Normals, n[0], n[1], n[2])
		}
	}
	return out, nil
}
