package geometry

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTriangleGLTF writes a one-triangle glTF with an embedded buffer:
// positions, texcoords and uint16 indices (0, 2, 1).
func writeTriangleGLTF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	uvs := []float32{0, 0, 1, 0, 0, 0.25}
	indices := []uint16{0, 2, 1}
	for _, data := range []any{positions, uvs, indices} {
		if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
			t.Fatal(err)
		}
	}

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 24},
    {"buffer": 0, "byteOffset": 60, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}, "indices": 2}]}]
}`, buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()))

	path := filepath.Join(t.TempDir(), "tri.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLTFExpandsIndices(t *testing.T) {
	m, err := Load(writeTriangleGLTF(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Fatalf("VertexCount = %d, want 3", m.VertexCount())
	}
	if m.HasNormals() {
		t.Error("expected no normals")
	}

	// Second emitted vertex is index 2: (0,1,0).
	if m.Positions[3] != 0 || m.Positions[4] != 1 {
		t.Errorf("vertex 1 = %v, want (0,1,0)", m.Positions[3:6])
	}
	// Its UV (0, 0.25) has V flipped to 0.75.
	if m.TexCoords[2] != 0 || m.TexCoords[3] != 0.75 {
		t.Errorf("uv 1 = %v, want (0,0.75)", m.TexCoords[2:4])
	}
}

func TestLoadGLTFMissingFile(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("expected error")
	}
}
