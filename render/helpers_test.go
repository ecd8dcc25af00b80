// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/math/f32"
)

// createNoopDevice opens a device on the noop backend.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

var errInjected = errors.New("injected failure")

// countingDevice counts texture and buffer lifecycles on top of a real
// device. Its pointer identity also distinguishes devices in context
// comparisons.
type countingDevice struct {
	hal.Device
	name string

	texturesCreated   int
	texturesDestroyed int
	buffersCreated    int
	buffersDestroyed  int

	failTextures bool
	labels       []string
}

func (d *countingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTextures {
		return nil, errInjected
	}
	d.texturesCreated++
	d.labels = append(d.labels, desc.Label)
	return d.Device.CreateTexture(desc)
}

func (d *countingDevice) DestroyTexture(t hal.Texture) {
	d.texturesDestroyed++
	d.Device.DestroyTexture(t)
}

func (d *countingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.buffersCreated++
	d.labels = append(d.labels, desc.Label)
	return d.Device.CreateBuffer(desc)
}

func (d *countingDevice) DestroyBuffer(b hal.Buffer) {
	d.buffersDestroyed++
	d.Device.DestroyBuffer(b)
}

func (d *countingDevice) liveTextures() int {
	return d.texturesCreated - d.texturesDestroyed
}

type bufferWrite struct {
	buffer hal.Buffer
	offset uint64
	data   []byte
}

// recordingQueue captures WriteBuffer calls.
type recordingQueue struct {
	hal.Queue
	writes []bufferWrite
}

func (q *recordingQueue) WriteBuffer(b hal.Buffer, offset uint64, data []byte) error {
	q.writes = append(q.writes, bufferWrite{buffer: b, offset: offset, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(b, offset, data)
}

// testGPU bundles a noop device with counting wrappers.
type testGPU struct {
	device *countingDevice
	queue  *recordingQueue
}

func newTestGPU(t *testing.T) *testGPU {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	return &testGPU{
		device: &countingDevice{Device: device, name: t.Name()},
		queue:  &recordingQueue{Queue: queue},
	}
}

func (g *testGPU) context(color, depth, stencil gputypes.TextureFormat, samples uint32) Context {
	return Context{
		Device:        g.device,
		Queue:         g.queue,
		ColorFormat:   color,
		DepthFormat:   depth,
		StencilFormat: stencil,
		SampleCount:   samples,
	}
}

// fakeView is a texture view with a distinct identity.
type fakeView struct {
	id int
}

func (*fakeView) Destroy()              {}
func (*fakeView) NativeHandle() uintptr { return 0 }

// userTexture builds a caller-owned attachment texture.
func userTexture(id int, format gputypes.TextureFormat, samples uint32) *Texture {
	return &Texture{
		Label:       "user",
		View:        &fakeView{id: id},
		Format:      format,
		Width:       800,
		Height:      600,
		SampleCount: samples,
	}
}

// recordingEncoder records the render pass descriptors it is asked for.
type recordingEncoder struct {
	hal.CommandEncoder
	descs  []hal.RenderPassDescriptor
	passes []*recordingPass
}

func newRecordingEncoder() *recordingEncoder {
	return &recordingEncoder{CommandEncoder: &noop.CommandEncoder{}}
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.descs = append(e.descs, *desc)
	p := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	e.passes = append(e.passes, p)
	return p
}

func (e *recordingEncoder) lastDesc(t *testing.T) hal.RenderPassDescriptor {
	t.Helper()
	if len(e.descs) == 0 {
		t.Fatal("no render pass was begun")
	}
	return e.descs[len(e.descs)-1]
}

// recordingPass records debug groups, draws and pass state as events.
type recordingPass struct {
	hal.RenderPassEncoder
	events   []string
	draws    int
	depth    int
	viewport [6]float32
	ended    bool
}

func (p *recordingPass) PushDebugGroup(label string) {
	p.depth++
	p.events = append(p.events, "push "+label)
}

func (p *recordingPass) PopDebugGroup() {
	p.depth--
	p.events = append(p.events, "pop")
}

func (p *recordingPass) SetViewport(x, y, w, h, minDepth, maxDepth float32) {
	p.viewport = [6]float32{x, y, w, h, minDepth, maxDepth}
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws++
}

func (p *recordingPass) End() { p.ended = true }

func (p *recordingPass) note(event string) {
	p.events = append(p.events, event)
}

// testNode is a plain scene node that counts its updates.
type testNode struct {
	label    string
	hidden   bool
	children []Node

	ctx           *Context
	contextSets   int
	updates       int
	cameraUpdates int
	lastViewport  Viewport
}

func newNode(label string, children ...Node) *testNode {
	return &testNode{label: label, children: children}
}

func (n *testNode) Label() string    { return n.label }
func (n *testNode) Visible() bool    { return !n.hidden }
func (n *testNode) Children() []Node { return n.children }

func (n *testNode) SetContext(ctx *Context) {
	n.ctx = ctx
	n.contextSets++
}

func (n *testNode) Update() { n.updates++ }

func (n *testNode) UpdateCamera(_ Camera, vp Viewport) {
	n.cameraUpdates++
	n.lastViewport = vp
}

func (n *testNode) add(children ...Node) { n.children = append(n.children, children...) }

// testRenderable draws one triangle and records itself on recording
// passes.
type testRenderable struct {
	testNode
	material  Material
	drawable  bool
	order     int
	panicDraw bool
}

func newRenderable(label string, order int, children ...Node) *testRenderable {
	return &testRenderable{testNode: testNode{label: label, children: children}, drawable: true, order: order}
}

func (r *testRenderable) Material() Material { return r.material }
func (r *testRenderable) Drawable() bool     { return r.drawable }
func (r *testRenderable) RenderOrder() int   { return r.order }

func (r *testRenderable) Draw(rp hal.RenderPassEncoder) {
	if r.panicDraw {
		panic("draw failed")
	}
	if p, ok := rp.(*recordingPass); ok {
		p.note("draw " + r.label)
	}
	rp.Draw(3, 1, 0, 0)
}

// testLight is a light whose data changes bump its generation.
type testLight struct {
	testNode
	data LightData
	gen  atomic.Uint64
}

func newLight(label string, intensity float32) *testLight {
	l := &testLight{testNode: testNode{label: label}}
	l.data.Color = f32.Vec4{1, 1, 1, intensity}
	l.data.Position[3] = float32(LightPoint)
	return l
}

func (l *testLight) LightData() LightData { return l.data }
func (l *testLight) Generation() uint64   { return l.gen.Load() }

func (l *testLight) setIntensity(v float32) {
	l.data.Color[3] = v
	l.gen.Add(1)
}

// litRenderable is both a light and a renderable.
type litRenderable struct {
	testLight
}

func newLitRenderable(label string) *litRenderable {
	r := &litRenderable{}
	r.label = label
	r.data.Color = f32.Vec4{1, 1, 1, 1}
	return r
}

func (r *litRenderable) Material() Material            { return nil }
func (r *litRenderable) Drawable() bool                { return true }
func (r *litRenderable) RenderOrder() int              { return 0 }
func (r *litRenderable) Draw(rp hal.RenderPassEncoder) { rp.Draw(3, 1, 0, 0) }

// testMaterial records the calls the encoder makes.
type testMaterial struct {
	lighting  bool
	maxLights int
	bound     *LightBuffer
	binds     int
	updates   int
}

func (m *testMaterial) Lighting() bool     { return m.lighting }
func (m *testMaterial) SetMaxLights(n int) { m.maxLights = n }

func (m *testMaterial) BindLights(_ hal.RenderPassEncoder, lights *LightBuffer) {
	m.bound = lights
	m.binds++
}

func (m *testMaterial) Update() { m.updates++ }

type testCamera struct {
	updates int
}

var identityMatrix = f32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func (c *testCamera) Update()                    { c.updates++ }
func (c *testCamera) ViewMatrix() f32.Mat4       { return identityMatrix }
func (c *testCamera) ProjectionMatrix() f32.Mat4 { return identityMatrix }

// viewportCamera records the viewports it receives and the order of its
// SetViewport and Update calls.
type viewportCamera struct {
	testCamera
	viewports []Viewport
	calls     []string
}

func (c *viewportCamera) SetViewport(vp Viewport) {
	c.viewports = append(c.viewports, vp)
	c.calls = append(c.calls, "viewport")
}

func (c *viewportCamera) Update() {
	c.testCamera.Update()
	c.calls = append(c.calls, "update")
}
