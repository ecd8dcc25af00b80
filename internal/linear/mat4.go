package linear

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// Identity returns the 4x4 identity matrix.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product a * b.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var m f32.Mat4
	for r := range 4 {
		for c := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[4*r+k] * b[4*k+c]
			}
			m[4*r+c] = sum
		}
	}
	return m
}

// Translation returns a matrix translating by t.
func Translation(t f32.Vec3) f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, t[0],
		0, 1, 0, t[1],
		0, 0, 1, t[2],
		0, 0, 0, 1,
	}
}

// Rotation returns the rotation matrix of q.
func Rotation(q Quat) f32.Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	return f32.Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0,
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0,
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Compose returns translate(t) * rotate(q) * scale(s).
func Compose(t f32.Vec3, q Quat, s f32.Vec3) f32.Mat4 {
	m := Rotation(q)
	for r := range 3 {
		for c := range 3 {
			m[4*r+c] *= s[c]
		}
		m[4*r+3] = t[r]
	}
	return m
}

// Perspective returns a projection matrix for a vertical field of view
// fovy (radians), mapping -near to depth 0 and -far to depth 1.
func Perspective(fovy, aspect, near, far float32) f32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	nf := 1 / (near - far)
	return f32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far * nf, near * far * nf,
		0, 0, -1, 0,
	}
}

// InverseRigid inverts a matrix made only of rotation and translation.
func InverseRigid(m f32.Mat4) f32.Mat4 {
	t := f32.Vec3{m[3], m[7], m[11]}
	var inv f32.Mat4
	for r := range 3 {
		for c := range 3 {
			inv[4*r+c] = m[4*c+r]
		}
	}
	for r := range 3 {
		inv[4*r+3] = -(inv[4*r]*t[0] + inv[4*r+1]*t[1] + inv[4*r+2]*t[2])
	}
	inv[15] = 1
	return inv
}

// TransformPoint applies m to the point p (w = 1).
func TransformPoint(m f32.Mat4, p f32.Vec3) f32.Vec3 {
	w := m[12]*p[0] + m[13]*p[1] + m[14]*p[2] + m[15]
	if w == 0 {
		w = 1
	}
	return f32.Vec3{
		(m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3]) / w,
		(m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7]) / w,
		(m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11]) / w,
	}
}

// TransformDirection applies the upper 3x3 of m to d (w = 0).
func TransformDirection(m f32.Mat4, d f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*d[0] + m[1]*d[1] + m[2]*d[2],
		m[4]*d[0] + m[5]*d[1] + m[6]*d[2],
		m[8]*d[0] + m[9]*d[1] + m[10]*d[2],
	}
}

// PutMat4 writes m into dst as 16 little-endian float32 values in column
// major order, the layout of a WGSL mat4x4<f32>. dst must hold 64 bytes.
func PutMat4(dst []byte, m f32.Mat4) {
	_ = dst[63]
	for c := range 4 {
		for r := range 4 {
			binary.LittleEndian.PutUint32(dst[(4*c+r)*4:], math.Float32bits(m[4*r+c]))
		}
	}
}

// PutVec4 writes v into dst as 4 little-endian float32 values.
func PutVec4(dst []byte, v f32.Vec4) {
	_ = dst[15]
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(x))
	}
}
