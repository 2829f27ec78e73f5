package geometry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuadIsFanTriangulated(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 6 {
		t.Fatalf("VertexCount = %d, want 6", m.VertexCount())
	}
	if len(m.TexCoords) != 12 {
		t.Errorf("len(TexCoords) = %d, want 12", len(m.TexCoords))
	}
	if !m.HasNormals() || len(m.Normals) != 18 {
		t.Fatalf("expected 18 normal floats, got %d", len(m.Normals))
	}

	// Second triangle is 1-3-4.
	want := []float32{0, 0, 0, 1, 1, 0, 0, 1, 0}
	for i, v := range want {
		if m.Positions[9+i] != v {
			t.Errorf("Positions[%d] = %v, want %v", 9+i, m.Positions[9+i], v)
		}
	}
	if m.TexCoords[10] != 0 || m.TexCoords[11] != 1 {
		t.Errorf("last uv = (%v,%v), want (0,1)", m.TexCoords[10], m.TexCoords[11])
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Fatalf("VertexCount = %d, want 3", m.VertexCount())
	}
	if m.Positions[3] != 1 || m.Positions[7] != 1 {
		t.Errorf("unexpected positions %v", m.Positions)
	}
}

func TestParseOBJMissingNormalsAndUVs(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.HasNormals() {
		t.Error("expected no normals")
	}
	for i, v := range m.TexCoords {
		if v != 0 {
			t.Errorf("TexCoords[%d] = %v, want 0", i, v)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad float", "v 0 x 0\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.OBJ")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.VertexCount() != 6 {
		t.Errorf("VertexCount = %d, want 6", m.VertexCount())
	}

	if _, err := Load(filepath.Join(dir, "mesh.ply")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFitUnitBox(t *testing.T) {
	m := &Mesh{Positions: []float32{
		2, 2, 2,
		6, 2, 2,
		2, 4, 3,
	}}
	m.FitUnitBox()

	lo, hi := m.Bounds()
	if !near(hi.X-lo.X, 1) {
		t.Errorf("x extent = %v, want 1", hi.X-lo.X)
	}
	if !near(lo.X+hi.X, 0) || !near(lo.Y+hi.Y, 0) || !near(lo.Z+hi.Z, 0) {
		t.Errorf("box not centred: lo=%v hi=%v", lo, hi)
	}
	if !near(hi.Y-lo.Y, 0.5) {
		t.Errorf("y extent = %v, want 0.5", hi.Y-lo.Y)
	}
}

func TestFitUnitBoxDegenerate(t *testing.T) {
	m := &Mesh{Positions: []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}}
	m.FitUnitBox()
	if m.Positions[0] != 1 {
		t.Errorf("degenerate mesh should be untouched, got %v", m.Positions)
	}
}

func TestComputeFlatNormals(t *testing.T) {
	m := &Mesh{Positions: []float32{
		0, 0, 0, 1, 0, 0, 0, 1, 0, // CCW in XY, normal +Z
		0, 0, 0, 0, 1, 0, 1, 0, 0, // CW, normal -Z
	}}
	m.ComputeFlatNormals()

	if len(m.Normals) != 18 {
		t.Fatalf("len(Normals) = %d, want 18", len(m.Normals))
	}
	for v := 0; v < 3; v++ {
		if m.Normals[v*3+2] != 1 {
			t.Errorf("vertex %d normal z = %v, want 1", v, m.Normals[v*3+2])
		}
		if m.Normals[(v+3)*3+2] != -1 {
			t.Errorf("vertex %d normal z = %v, want -1", v+3, m.Normals[(v+3)*3+2])
		}
	}
}

func TestBoundsEmpty(t *testing.T) {
	var m Mesh
	lo, hi := m.Bounds()
	if lo.X != 0 || hi.X != 0 {
		t.Errorf("empty bounds = %v %v", lo, hi)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestCube(t *testing.T) {
	m := Cube()
	if m.VertexCount() != 36 {
		t.Fatalf("VertexCount = %d, want 36", m.VertexCount())
	}
	lo, hi := m.Bounds()
	if lo.X != -0.5 || hi.Z != 0.5 {
		t.Errorf("bounds = %v %v, want unit cube", lo, hi)
	}

	// Stored normals agree with the winding of every triangle.
	stored := append([]float32(nil), m.Normals...)
	m.ComputeFlatNormals()
	for i := range stored {
		if !near(stored[i], m.Normals[i]) {
			t.Fatalf("normal component %d = %v, winding gives %v", i, stored[i], m.Normals[i])
		}
	}
}

func TestParseOBJWithByteOrderMark(t *testing.T) {
	src := "\xef\xbb\xbfv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.VertexCount())
	}
}
