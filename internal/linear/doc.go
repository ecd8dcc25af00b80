// Package linear implements the float32 vector, quaternion and matrix
// operations used by the scene graph and materials.
//
// Values use the types of golang.org/x/image/math/f32. Matrices are row
// major (m[4*r+c]) and transform column vectors (v' = M v). The projection
// helpers target the WebGPU clip space: right handed, camera looking down -Z,
// depth in [0, 1].
package linear
