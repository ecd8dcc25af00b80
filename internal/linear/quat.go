package linear

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat f32.Vec4

// QuatIdentity returns the rotation that leaves vectors unchanged.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle returns the rotation of angle radians around axis.
func QuatFromAxisAngle(axis f32.Vec3, angle float32) Quat {
	a := Normalize(axis)
	s, c := math.Sincos(float64(angle) / 2)
	sf := float32(s)
	return Quat{a[0] * sf, a[1] * sf, a[2] * sf, float32(c)}
}

// Mul returns the rotation q applied after p.
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		q[3]*p[0] + q[0]*p[3] + q[1]*p[2] - q[2]*p[1],
		q[3]*p[1] - q[0]*p[2] + q[1]*p[3] + q[2]*p[0],
		q[3]*p[2] + q[0]*p[1] - q[1]*p[0] + q[2]*p[3],
		q[3]*p[3] - q[0]*p[0] - q[1]*p[1] - q[2]*p[2],
	}
}

// Normalize returns q scaled to unit length. The zero quaternion becomes
// the identity.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v f32.Vec3) f32.Vec3 {
	u := f32.Vec3{q[0], q[1], q[2]}
	t := Scale(Cross(u, v), 2)
	return Add(Add(v, Scale(t, q[3])), Cross(u, t))
}
