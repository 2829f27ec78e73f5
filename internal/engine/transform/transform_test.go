package transform

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

const eps = 1e-6

func testProjection() math.Mat4 {
	return math.Perspective(float32(gomath.Pi/3), 1.5, 0.1, 100)
}

func TestComposeNoRotationIsTranslation(t *testing.T) {
	proj := testProjection()

	tests := []struct {
		name       string
		tx, ty, tz float32
	}{
		{"origin", 0, 0, 0},
		{"back", 0, 0, -5},
		{"offset", 1.5, -2, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(proj, tt.tx, tt.ty, tt.tz, 0, 0)
			want := proj.Mul(math.Translate(tt.tx, tt.ty, tt.tz))
			if !got.ApproxEqual(want, eps) {
				t.Errorf("Compose with zero rotation: got %v, want %v", got, want)
			}
		})
	}
}

func TestComposeRotateYMatchesAnalytic(t *testing.T) {
	for _, ry := range []float32{0, 0.25, 1, gomath.Pi / 2, 2.5, -1.2, gomath.Pi} {
		m := Compose(math.Identity(), 0, 0, 0, 0, ry)
		got := m.MulVec4(math.Vec4{1, 0, 0, 1})

		c := float32(gomath.Cos(float64(ry)))
		s := float32(gomath.Sin(float64(ry)))
		want := math.Vec4{c, 0, -s, 1}

		for i := range got {
			if d := got[i] - want[i]; d > eps || d < -eps {
				t.Errorf("ry=%f: got %v, want %v", ry, got, want)
				break
			}
		}
	}
}

func TestComposeRotateXConvention(t *testing.T) {
	rx := float32(0.7)
	m := Compose(math.Identity(), 0, 0, 0, rx, 0)
	got := m.MulVec4(math.Vec4{0, 1, 0, 1})

	c := float32(gomath.Cos(float64(rx)))
	s := float32(gomath.Sin(float64(rx)))
	// y' = y*cos - z*sin, z' = y*sin + z*cos with (y, z) = (1, 0)
	want := math.Vec4{0, c, s, 1}
	for i := range got {
		if d := got[i] - want[i]; d > eps || d < -eps {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestComposeStageOrder(t *testing.T) {
	proj := testProjection()
	tx, ty, tz := float32(0.5), float32(-1), float32(-4)
	rx, ry := float32(0.3), float32(-0.8)

	T := math.Translate(tx, ty, tz)
	Rx := math.RotateX(rx)
	Ry := math.RotateY(ry)

	want := proj.Mul(T.Mul(Ry.Mul(Rx)))
	got := Compose(proj, tx, ty, tz, rx, ry)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("Compose: got %v, want P*T*Ry*Rx = %v", got, want)
	}

	// Applying the stages one at a time to a point gives the same result.
	p := math.Vec4{0.2, 0.4, -0.6, 1}
	staged := proj.MulVec4(T.MulVec4(Ry.MulVec4(Rx.MulVec4(p))))
	direct := got.MulVec4(p)
	for i := range staged {
		if d := staged[i] - direct[i]; d > 1e-4 || d < -1e-4 {
			t.Fatalf("staged %v != composed %v", staged, direct)
		}
	}

	// Swapping the rotation order must give a different matrix.
	swapped := proj.Mul(T.Mul(Rx.Mul(Ry)))
	if got.ApproxEqual(swapped, eps) {
		t.Error("expected Rx*Ry order to differ from Ry*Rx")
	}
}

func TestPoseMVP(t *testing.T) {
	proj := testProjection()
	p := Pose{TX: 1, TY: 2, TZ: -3, RotX: 0.1, RotY: 0.2}
	if got, want := p.MVP(proj), Compose(proj, 1, 2, -3, 0.1, 0.2); got != want {
		t.Errorf("Pose.MVP: got %v, want %v", got, want)
	}
}
