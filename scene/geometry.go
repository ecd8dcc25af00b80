package scene

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// VertexStride is the byte size of one interleaved vertex: a float32x3
// position at location 0 followed by a float32x3 normal at location 1.
const VertexStride = 24

// VertexLayout returns the vertex buffer layout of mesh vertices.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}}
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Positions []f32.Vec3
	Normals   []f32.Vec3
	Indices   []uint16
}

// Empty reports whether there is nothing to draw.
func (g *Geometry) Empty() bool {
	return g == nil || len(g.Positions) == 0 || len(g.Indices) == 0
}

// vertexData interleaves positions and normals. Missing normals are zero.
func (g *Geometry) vertexData() []byte {
	buf := make([]byte, len(g.Positions)*VertexStride)
	for i, p := range g.Positions {
		var n f32.Vec3
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		dst := buf[i*VertexStride:]
		for j, v := range [6]float32{p[0], p[1], p[2], n[0], n[1], n[2]} {
			binary.LittleEndian.PutUint32(dst[4*j:], math.Float32bits(v))
		}
	}
	return buf
}

// indexData packs the indices, padded to a multiple of four bytes as
// buffer writes require.
func (g *Geometry) indexData() []byte {
	n := len(g.Indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range g.Indices {
		binary.LittleEndian.PutUint16(buf[2*i:], idx)
	}
	return buf
}

// Triangle returns a single triangle in the XY plane facing +Z.
func Triangle() *Geometry {
	n := f32.Vec3{0, 0, 1}
	return &Geometry{
		Positions: []f32.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0, 0.5, 0}},
		Normals:   []f32.Vec3{n, n, n},
		Indices:   []uint16{0, 1, 2},
	}
}

// Box returns an axis-aligned box centered at the origin with flat
// per-face normals.
func Box(width, height, depth float32) *Geometry {
	x, y, z := width/2, height/2, depth/2
	faces := []struct {
		normal  f32.Vec3
		corners [4]f32.Vec3
	}{
		{f32.Vec3{0, 0, 1}, [4]f32.Vec3{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}},
		{f32.Vec3{0, 0, -1}, [4]f32.Vec3{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}},
		{f32.Vec3{1, 0, 0}, [4]f32.Vec3{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}}},
		{f32.Vec3{-1, 0, 0}, [4]f32.Vec3{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}},
		{f32.Vec3{0, 1, 0}, [4]f32.Vec3{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}},
		{f32.Vec3{0, -1, 0}, [4]f32.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}},
	}
	g := &Geometry{}
	for _, f := range faces {
		base := uint16(len(g.Positions))
		for _, c := range f.corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, f.normal)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}
