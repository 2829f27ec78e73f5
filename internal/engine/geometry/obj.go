package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/encoding"
)

// objVertex indexes into the position, texcoord and normal pools (-1 = absent).
type objVertex struct {
	v, vt, vn int
}

// LoadOBJ reads a Wavefront OBJ file. Polygons are fan-triangulated; groups,
// objects and materials are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %q: %w", path, err)
	}
	return m, nil
}

// ParseOBJ parses OBJ text from r. UTF-8 and UTF-16 input with a byte
// order mark is accepted.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var positions, normals [][3]float32
	var uvs [][2]float32
	var tris [][3]objVertex

	scanner := bufio.NewScanner(encoding.NewTextReader(r))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v", "vn":
			vec, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if fields[0] == "v" {
				positions = append(positions, [3]float32{vec[0], vec[1], vec[2]})
			} else {
				normals = append(normals, [3]float32{vec[0], vec[1], vec[2]})
			}

		case "vt":
			vec, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, [2]float32{vec[0], vec[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			verts := make([]objVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fv, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				verts = append(verts, fv)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(verts); i++ {
				tris = append(tris, [3]objVertex{verts[0], verts[i], verts[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("no faces found")
	}

	m := &Mesh{
		Positions: make([]float32, 0, len(tris)*9),
		TexCoords: make([]float32, 0, len(tris)*6),
	}
	withNormals := true
	for _, tri := range tris {
		for _, fv := range tri {
			if fv.vn < 0 {
				withNormals = false
			}
		}
	}
	if withNormals {
		m.Normals = make([]float32, 0, len(tris)*9)
	}

	for _, tri := range tris {
		for _, fv := range tri {
			p := positions[fv.v]
			m.Positions = append(m.Positions, p[0], p[1], p[2])

			var uv [2]float32
			if fv.vt >= 0 {
				uv = uvs[fv.vt]
			}
			m.TexCoords = append(m.TexCoords, uv[0], uv[1])

			if withNormals {
				n := normals[fv.vn]
				m.Normals = append(m.Normals, n[0], n[1], n[2])
			}
		}
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based
// indices. Negative OBJ indices count back from the end of each pool.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objVertex, error) {
	parts := strings.Split(tok, "/")
	fv := objVertex{v: -1, vt: -1, vn: -1}

	var err error
	if fv.v, err = resolveIndex(parts[0], nv); err != nil || fv.v < 0 {
		return fv, fmt.Errorf("bad vertex index %q", tok)
	}
	if len(parts) > 1 {
		if fv.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return fv, fmt.Errorf("bad texcoord index %q", tok)
		}
	}
	if len(parts) > 2 {
		if fv.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return fv, fmt.Errorf("bad normal index %q", tok)
		}
	}
	return fv, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index.
// An empty string means absent and yields -1.
func resolveIndex(s string, poolSize int) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case n > 0 && n <= poolSize:
		return n - 1, nil
	case n < 0 && -n <= poolSize:
		return poolSize + n, nil
	default:
		return -1, fmt.Errorf("index %d out of range", n)
	}
}
