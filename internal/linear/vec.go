package linear

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Add returns a + b.
func Add(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func Sub(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns v * s.
func Scale(v f32.Vec3, s float32) f32.Vec3 {
	return f32.Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a x b.
func Cross(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length returns the Euclidean length of v.
func Length(v f32.Vec3) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v f32.Vec3) f32.Vec3 {
	l := Length(v)
	if l == 0 {
		return v
	}
	return Scale(v, 1/l)
}

// Extend returns the 4-component vector (v, w).
func Extend(v f32.Vec3, w float32) f32.Vec4 {
	return f32.Vec4{v[0], v[1], v[2], w}
}
