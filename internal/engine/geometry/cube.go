package geometry

// cubeFaces lists each face as its outward normal and four corners in
// counter-clockwise order seen from outside.
var cubeFaces = []struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// Cube returns a unit cube centred at the origin with per-face normals and
// a full [0,1] texture square on every face.
func Cube() *Mesh {
	uv := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	order := [6]int{0, 1, 2, 0, 2, 3}

	m := &Mesh{
		Positions: make([]float32, 0, 36*3),
		TexCoords: make([]float32, 0, 36*2),
		Normals:   make([]float32, 0, 36*3),
	}
	for _, f := range cubeFaces {
		for _, i := range order {
			c := f.corners[i]
			m.Positions = append(m.Positions, c[0]*0.5, c[1]*0.5, c[2]*0.5)
			m.TexCoords = append(m.TexCoords, uv[i][0], uv[i][1])
			m.Normals = append(m.Normals, f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return m
}
