package core

import (
	"math"
	"testing"
)

func almostEqualVec(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestTransformTranslateAlongHeading(t *testing.T) {
	tr := NewTransform()
	tr = tr.Translate(5)
	if !almostEqualVec(tr.Pos, Vec3{Z: 5}, 1e-9) {
		t.Fatalf("identity frame should grow along +Z, pos = %+v", tr.Pos)
	}

	tr = tr.RotateX(90).Translate(2)
	// After pitching 90 degrees about local X, the heading points along -Y.
	want := Vec3{Y: -2, Z: 5}
	if !almostEqualVec(tr.Pos, want, 1e-9) {
		t.Fatalf("pos after pitched translate = %+v, want %+v", tr.Pos, want)
	}
}

func TestTransformSpinPreservesHeading(t *testing.T) {
	tr := NewTransform().RotateX(37)
	h := tr.Heading()
	spun := tr.Spin(123)
	if !almostEqualVec(spun.Heading(), h, 1e-9) {
		t.Fatalf("Spin changed heading: %+v vs %+v", spun.Heading(), h)
	}
}

func TestTransformRotationOrthonormal(t *testing.T) {
	tr := NewTransform()
	for i := 0; i < 50; i++ {
		tr = tr.RotateX(17.3).Spin(41.1).RotateLocal(Vec3{X: 0.3, Y: 0.7, Z: 0.1}, 9.4)
	}
	for i := 0; i < 3; i++ {
		if l := tr.Rot.Col(i).Len(); math.Abs(l-1) > 1e-6 {
			t.Fatalf("column %d drifted off unit length: %v", i, l)
		}
	}
	if d := tr.Rot.Col(0).Dot(tr.Rot.Col(1)); math.Abs(d) > 1e-6 {
		t.Fatalf("columns no longer orthogonal: %v", d)
	}
}

func TestTransformRotateWorld(t *testing.T) {
	tr := NewTransform().RotateX(90) // heading -Y
	tr = tr.RotateWorld(Vec3{X: 1}, -90)
	if !almostEqualVec(tr.Heading(), Vec3{Z: 1}, 1e-9) {
		t.Fatalf("world-axis rotation did not restore heading: %+v", tr.Heading())
	}
}

func TestTransformDeclination(t *testing.T) {
	tr := NewTransform()
	if d := tr.Declination(); math.Abs(d) > 1e-9 {
		t.Fatalf("vertical frame declination = %v", d)
	}
	tr = tr.RotateX(90)
	if d := tr.Declination(); math.Abs(d-math.Pi/2) > 1e-9 {
		t.Fatalf("horizontal frame declination = %v, want pi/2", d)
	}
}

func TestAxisRotationMatchesRotateX(t *testing.T) {
	a := NewTransform().RotateX(33)
	b := NewTransform().RotateLocal(Vec3{X: 1}, 33)
	for i := range a.Rot {
		if math.Abs(a.Rot[i]-b.Rot[i]) > 1e-12 {
			t.Fatalf("RotateX and RotateLocal(X) disagree at %d", i)
		}
	}
}
