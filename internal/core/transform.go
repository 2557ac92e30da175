package core

import "math"

// Vec3 is a 3-component vector. +Z is world up; a stem grows along the +Z
// axis of its local frame.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the componentwise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length, or the zero vector when v is
// degenerate.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Mat3 is a row-major 3x3 rotation matrix. Its columns are the local X, Y
// and Z axes expressed in parent coordinates.
type Mat3 [9]float64

// Identity returns the identity rotation.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*o[j] + m[i*3+1]*o[3+j] + m[i*3+2]*o[6+j]
		}
	}
	return r
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Col returns column i of m.
func (m Mat3) Col(i int) Vec3 { return Vec3{m[i], m[3+i], m[6+i]} }

// AxisRotation returns the rotation of angle radians about the given axis
// (Rodrigues form). The axis need not be normalized.
func AxisRotation(axis Vec3, angle float64) Mat3 {
	a := axis.Normalized()
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	return Mat3{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c,
	}
}

// Transform is a rigid frame: an orientation plus a position. It has value
// semantics; composition is always parent frame times a local delta, so a
// child frame can only ever be derived from its parent's.
type Transform struct {
	Rot Mat3
	Pos Vec3
}

// NewTransform returns an untranslated identity frame.
func NewTransform() Transform {
	return Transform{Rot: Identity()}
}

// Heading returns the local growth axis (+Z column) in world coordinates.
func (t Transform) Heading() Vec3 { return t.Rot.Col(2) }

// RotateX rotates the frame about its local X axis by deg degrees. This is
// the curvature rotation: positive angles pitch the heading forward.
func (t Transform) RotateX(deg float64) Transform {
	t.Rot = t.Rot.Mul(AxisRotation(Vec3{X: 1}, deg*math.Pi/180))
	return t
}

// Spin rotates the frame about its own heading by deg degrees.
func (t Transform) Spin(deg float64) Transform {
	t.Rot = t.Rot.Mul(AxisRotation(Vec3{Z: 1}, deg*math.Pi/180))
	return t
}

// RotateLocal rotates the frame about an arbitrary axis given in local
// coordinates by deg degrees.
func (t Transform) RotateLocal(axis Vec3, deg float64) Transform {
	t.Rot = t.Rot.Mul(AxisRotation(axis, deg*math.Pi/180))
	return t
}

// RotateWorld rotates the orientation about an axis given in world
// coordinates by deg degrees. The position is unchanged; this is the bend
// used by tropism and split divergence corrections.
func (t Transform) RotateWorld(axis Vec3, deg float64) Transform {
	t.Rot = AxisRotation(axis, deg*math.Pi/180).Mul(t.Rot)
	return t
}

// Translate advances the position by dist along the local heading.
func (t Transform) Translate(dist float64) Transform {
	t.Pos = t.Pos.Add(t.Heading().Scale(dist))
	return t
}

// Apply maps a point from the local frame into world coordinates.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.Rot.Apply(v).Add(t.Pos)
}

// Declination returns the angle in radians between the heading and world up.
func (t Transform) Declination() float64 {
	h := t.Heading()
	d := h.Z / math.Max(h.Len(), 1e-12)
	return math.Acos(math.Max(-1, math.Min(1, d)))
}
