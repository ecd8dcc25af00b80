package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/g3d/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ObjectUniformSize is the byte size of the per-object uniform block:
//
//	struct Object {
//	    model: mat4x4<f32>,
//	    mvp: mat4x4<f32>,
//	}
const ObjectUniformSize = 128

var errNoQueue = errors.New("scene: context has no queue")

// Material is a render.Material able to draw meshes.
type Material interface {
	render.Material

	// Prepare creates the material's GPU objects for ctx. It is called
	// whenever a mesh is primed and must be cheap when nothing changed.
	Prepare(ctx *render.Context) error
	// Bind sets the pipeline and the material bind group (group 0).
	Bind(rp hal.RenderPassEncoder)
	// ObjectLayout is the layout of the per-object bind group (group 1),
	// holding one ObjectUniformSize uniform buffer at binding 0. It is nil
	// until Prepare succeeds.
	ObjectLayout() hal.BindGroupLayout
}

// Mesh draws a Geometry with a Material.
//
// GPU buffers are created when the mesh is primed with a context and
// recreated when the device changes.
type Mesh struct {
	Object

	geometry *Geometry
	material Material
	order    int

	device    hal.Device
	queue     hal.Queue
	layout    hal.BindGroupLayout
	vertices  hal.Buffer
	indices   hal.Buffer
	uniforms  hal.Buffer
	bindGroup hal.BindGroup

	uniformData [ObjectUniformSize]byte
}

// NewMesh returns a mesh drawing g with m.
func NewMesh(label string, g *Geometry, m Material) *Mesh {
	mesh := &Mesh{geometry: g, material: m}
	mesh.Init(label)
	return mesh
}

// Geometry returns the geometry.
func (m *Mesh) Geometry() *Geometry { return m.geometry }

// SetGeometry replaces the geometry. Buffers are rebuilt on the next
// SetContext.
func (m *Mesh) SetGeometry(g *Geometry) {
	m.geometry = g
	m.releaseGeometry()
}

// Material returns the material as seen by the renderer.
func (m *Mesh) Material() render.Material {
	if m.material == nil {
		return nil
	}
	return m.material
}

// SetMaterial replaces the material.
func (m *Mesh) SetMaterial(mat Material) {
	m.material = mat
	m.releaseBindGroup()
}

// RenderOrder returns the sort key.
func (m *Mesh) RenderOrder() int { return m.order }

// SetRenderOrder sets the sort key.
func (m *Mesh) SetRenderOrder(order int) { m.order = order }

// Drawable reports whether the mesh has geometry, a material and its GPU
// resources.
func (m *Mesh) Drawable() bool {
	return !m.geometry.Empty() && m.material != nil && m.bindGroup != nil && m.indices != nil
}

// SetContext primes the mesh and its material with ctx, creating missing
// GPU resources. Failures are logged and leave the mesh undrawable.
func (m *Mesh) SetContext(ctx *render.Context) {
	m.Object.SetContext(ctx)
	if ctx == nil {
		return
	}
	if ctx.Device != m.device || ctx.Queue != m.queue {
		m.Release()
		m.device, m.queue = ctx.Device, ctx.Queue
	}
	if m.device == nil {
		return
	}
	if err := m.prepare(ctx); err != nil {
		g3d.Logger().Warn("scene: mesh not drawable", "mesh", m.label, "err", err)
	}
}

func (m *Mesh) prepare(ctx *render.Context) error {
	if m.material == nil || m.geometry.Empty() {
		return nil
	}
	if err := m.material.Prepare(ctx); err != nil {
		return fmt.Errorf("prepare material: %w", err)
	}
	if m.vertices == nil {
		if err := m.createGeometry(); err != nil {
			return err
		}
	}
	if m.uniforms == nil {
		buf, err := m.device.CreateBuffer(&hal.BufferDescriptor{
			Label: m.label + " Object Uniforms",
			Size:  ObjectUniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create uniform buffer: %w", err)
		}
		m.uniforms = buf
	}
	if layout := m.material.ObjectLayout(); m.bindGroup == nil || layout != m.layout {
		m.releaseBindGroup()
		bg, err := m.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  m.label + " Object Bind Group",
			Layout: layout,
			Entries: []gputypes.BindGroupEntry{{
				Binding:  0,
				Resource: gputypes.BufferBinding{Buffer: m.uniforms.NativeHandle(), Size: ObjectUniformSize},
			}},
		})
		if err != nil {
			return fmt.Errorf("create bind group: %w", err)
		}
		m.layout = layout
		m.bindGroup = bg
	}
	return nil
}

func (m *Mesh) createGeometry() error {
	if m.queue == nil {
		return errNoQueue
	}
	vdata, idata := m.geometry.vertexData(), m.geometry.indexData()

	vb, err := m.device.CreateBuffer(&hal.BufferDescriptor{
		Label: m.label + " Vertices",
		Size:  uint64(len(vdata)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	ib, err := m.device.CreateBuffer(&hal.BufferDescriptor{
		Label: m.label + " Indices",
		Size:  uint64(len(idata)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		m.device.DestroyBuffer(vb)
		return fmt.Errorf("create index buffer: %w", err)
	}
	m.vertices, m.indices = vb, ib

	if err := m.queue.WriteBuffer(vb, 0, vdata); err != nil {
		m.releaseGeometry()
		return fmt.Errorf("upload vertices: %w", err)
	}
	if err := m.queue.WriteBuffer(ib, 0, idata); err != nil {
		m.releaseGeometry()
		return fmt.Errorf("upload indices: %w", err)
	}
	return nil
}

// UpdateCamera uploads the model and model-view-projection matrices.
func (m *Mesh) UpdateCamera(camera render.Camera, _ render.Viewport) {
	if m.uniforms == nil || m.queue == nil {
		return
	}
	mvp := linear.Mul(camera.ProjectionMatrix(), linear.Mul(camera.ViewMatrix(), m.world))
	linear.PutMat4(m.uniformData[0:], m.world)
	linear.PutMat4(m.uniformData[64:], mvp)
	if err := m.queue.WriteBuffer(m.uniforms, 0, m.uniformData[:]); err != nil {
		g3d.Logger().Warn("scene: object uniform upload failed", "mesh", m.label, "err", err)
	}
}

// Draw records the indexed draw of the mesh.
func (m *Mesh) Draw(rp hal.RenderPassEncoder) {
	m.material.Bind(rp)
	rp.SetBindGroup(1, m.bindGroup, nil)
	rp.SetVertexBuffer(0, m.vertices, 0)
	rp.SetIndexBuffer(m.indices, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(m.geometry.Indices)), 1, 0, 0, 0)
}

// Release destroys the mesh's GPU resources. They are recreated on the
// next SetContext.
func (m *Mesh) Release() {
	m.releaseBindGroup()
	m.releaseGeometry()
	if m.uniforms != nil {
		m.device.DestroyBuffer(m.uniforms)
		m.uniforms = nil
	}
}

func (m *Mesh) releaseGeometry() {
	if m.vertices != nil {
		m.device.DestroyBuffer(m.vertices)
		m.vertices = nil
	}
	if m.indices != nil {
		m.device.DestroyBuffer(m.indices)
		m.indices = nil
	}
}

func (m *Mesh) releaseBindGroup() {
	if m.bindGroup != nil {
		m.device.DestroyBindGroup(m.bindGroup)
		m.bindGroup = nil
	}
	m.layout = nil
}
