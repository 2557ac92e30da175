package render

import (
	"math"
	"testing"

	"arbor/internal/core"
)

func TestCameraProjectCentersTarget(t *testing.T) {
	cam := NewCamera(20)
	cam.Target = core.Vec3{Z: 5}

	x, y, depth, ok := cam.Project(cam.Target, 800, 600)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Fatalf("target projects to (%v, %v), want screen center", x, y)
	}
	if math.Abs(depth-20) > 1e-9 {
		t.Fatalf("target depth %v, want the orbit distance", depth)
	}
}

func TestCameraProjectRejectsBehind(t *testing.T) {
	cam := NewCamera(10)
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target))
	if _, _, _, ok := cam.Project(behind, 800, 600); ok {
		t.Fatal("point behind the eye reported visible")
	}
}

func TestCameraUpStaysUp(t *testing.T) {
	// A point above the target must land above the screen center for any
	// yaw, because +Z is world up.
	for _, yaw := range []float64{0, 1, 2.5, -1.3} {
		cam := NewCamera(20)
		cam.Yaw = yaw
		above := cam.Target.Add(core.Vec3{Z: 3})
		_, y, _, ok := cam.Project(above, 800, 600)
		if !ok {
			t.Fatalf("yaw %v: point not visible", yaw)
		}
		if y >= 300 {
			t.Fatalf("yaw %v: point above target projects to y=%v, want < 300", yaw, y)
		}
	}
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	cam := NewCamera(10)
	cam.Orbit(0, 10)
	if cam.Pitch > maxPitch {
		t.Fatalf("pitch %v exceeds clamp", cam.Pitch)
	}
	cam.Orbit(0, -20)
	if cam.Pitch < minPitch {
		t.Fatalf("pitch %v below clamp", cam.Pitch)
	}
}

func TestCameraZoomFloor(t *testing.T) {
	cam := NewCamera(1)
	for i := 0; i < 50; i++ {
		cam.Zoom(0.5)
	}
	if cam.Dist < minDist {
		t.Fatalf("distance %v below floor", cam.Dist)
	}
	cam.Zoom(2)
	if cam.Dist <= minDist {
		t.Fatal("zoom out did not increase distance")
	}
}
