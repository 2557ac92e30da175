package render

import (
	"math"

	"arbor/internal/core"
)

// Camera is an orbit camera around a target point, with +Z as world up.
type Camera struct {
	Target core.Vec3
	Dist   float64
	Yaw    float64 // radians around world Z
	Pitch  float64 // radians above the horizon
	FOV    float64 // vertical field of view, radians
}

const (
	minPitch = -1.4
	maxPitch = 1.4
	minDist  = 0.5
)

// NewCamera returns a camera orbiting the origin at the provided distance.
func NewCamera(dist float64) *Camera {
	return &Camera{Dist: dist, Pitch: 0.3, FOV: math.Pi / 4}
}

// Orbit rotates the camera around the target.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(minPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// Zoom scales the orbit distance. Factors below 1 move closer.
func (c *Camera) Zoom(factor float64) {
	c.Dist = math.Max(minDist, c.Dist*factor)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() core.Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(core.Vec3{
		X: c.Dist * cp * math.Cos(c.Yaw),
		Y: c.Dist * cp * math.Sin(c.Yaw),
		Z: c.Dist * math.Sin(c.Pitch),
	})
}

// axes returns the right, up and forward view vectors.
func (c *Camera) axes() (right, up, fwd core.Vec3) {
	fwd = c.Target.Sub(c.Eye()).Normalized()
	right = fwd.Cross(core.Vec3{Z: 1}).Normalized()
	up = right.Cross(fwd)
	return right, up, fwd
}

// Project maps a world-space point to screen coordinates on a w by h
// viewport. The returned depth is the distance along the view axis; points
// at or behind the eye report ok=false.
func (c *Camera) Project(pos core.Vec3, w, h int) (x, y, depth float64, ok bool) {
	right, up, fwd := c.axes()
	rel := pos.Sub(c.Eye())
	depth = rel.Dot(fwd)
	if depth < 1e-3 {
		return 0, 0, depth, false
	}
	focal := float64(h) / (2 * math.Tan(c.FOV/2))
	x = float64(w)/2 + rel.Dot(right)/depth*focal
	y = float64(h)/2 - rel.Dot(up)/depth*focal
	return x, y, depth, true
}
