package scene

import (
	"testing"

	"github.com/gogpu/g3d/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/require"
)

func newNoopContext(t *testing.T) *render.Context {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	require.NoError(t, err)
	adapters := instance.EnumerateAdapters(nil)
	require.NotEmpty(t, adapters)
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	require.NoError(t, err)
	t.Cleanup(func() {
		dev.Device.Destroy()
		instance.Destroy()
	})
	return &render.Context{
		Device:      dev.Device,
		Queue:       &writeRecorder{Queue: dev.Queue},
		ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth32Float,
		SampleCount: 1,
	}
}

type writeRecorder struct {
	hal.Queue
	writes [][]byte
}

func (q *writeRecorder) WriteBuffer(b hal.Buffer, offset uint64, data []byte) error {
	q.writes = append(q.writes, append([]byte(nil), data...))
	return q.Queue.WriteBuffer(b, offset, data)
}

// fakeMaterial is a Material with a real object layout on the context's
// device.
type fakeMaterial struct {
	layout   hal.BindGroupLayout
	prepares int
	binds    int
	err      error
}

func (m *fakeMaterial) Lighting() bool                                        { return false }
func (m *fakeMaterial) SetMaxLights(int)                                      {}
func (m *fakeMaterial) BindLights(hal.RenderPassEncoder, *render.LightBuffer) {}
func (m *fakeMaterial) Update()                                               {}
func (m *fakeMaterial) Bind(hal.RenderPassEncoder)                            { m.binds++ }
func (m *fakeMaterial) ObjectLayout() hal.BindGroupLayout                     { return m.layout }

func (m *fakeMaterial) Prepare(ctx *render.Context) error {
	m.prepares++
	if m.err != nil {
		return m.err
	}
	if m.layout != nil {
		return nil
	}
	layout, err := ctx.Device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{Label: "object"})
	if err != nil {
		return err
	}
	m.layout = layout
	return nil
}

// passRecorder counts the commands a mesh records.
type passRecorder struct {
	hal.RenderPassEncoder
	bindGroups   []uint32
	vertexBufs   int
	indexBufs    int
	indexedCount uint32
}

func newPassRecorder() *passRecorder {
	return &passRecorder{RenderPassEncoder: &noop.RenderPassEncoder{}}
}

func (p *passRecorder) SetBindGroup(index uint32, _ hal.BindGroup, _ []uint32) {
	p.bindGroups = append(p.bindGroups, index)
}

func (p *passRecorder) SetVertexBuffer(uint32, hal.Buffer, uint64) { p.vertexBufs++ }

func (p *passRecorder) SetIndexBuffer(hal.Buffer, gputypes.IndexFormat, uint64) { p.indexBufs++ }

func (p *passRecorder) DrawIndexed(indexCount, _, _ uint32, _ int32, _ uint32) {
	p.indexedCount += indexCount
}
