// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/g3d/render"
	"github.com/gogpu/g3d/scene"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f32"
)

// uniformSize is the byte size of the material uniform block: a vec4<f32>
// base color and a vec4<u32> of parameters.
const uniformSize = 32

var (
	// ErrNoDevice is returned by Prepare for a context without a device or
	// queue.
	ErrNoDevice = errors.New("material: context has no device")

	// ErrNoColorFormat is returned by Prepare for a context without a
	// color format.
	ErrNoColorFormat = errors.New("material: context has no color format")
)

// Option configures a Basic material.
type Option func(*Basic)

// WithLabel sets the label prefix of the material's GPU objects.
func WithLabel(label string) Option {
	return func(b *Basic) {
		b.label = label
	}
}

// WithColor sets the base color.
func WithColor(c gputypes.Color) Option {
	return func(b *Basic) {
		b.color = c
	}
}

// WithLighting enables shading with the renderer's lights.
func WithLighting(enabled bool) Option {
	return func(b *Basic) {
		b.lit = enabled
	}
}

// WithCullMode sets the face culling mode. The default culls back faces.
func WithCullMode(mode gputypes.CullMode) Option {
	return func(b *Basic) {
		b.cullMode = mode
	}
}

// WithDepthCompare sets the depth test. The default is Less; use Greater
// with a reversed depth range.
func WithDepthCompare(cmp gputypes.CompareFunction) Option {
	return func(b *Basic) {
		b.depthCompare = cmp
	}
}

// pipelineKey identifies the context state the GPU objects were built for.
type pipelineKey struct {
	device       hal.Device
	queue        hal.Queue
	colorFormat  gputypes.TextureFormat
	depthFormat  gputypes.TextureFormat
	sampleCount  uint32
	cullMode     gputypes.CullMode
	depthCompare gputypes.CompareFunction
}

// Basic is a flat-colored material, optionally lit.
//
// Basic implements scene.Material. It is not safe for concurrent use.
type Basic struct {
	label        string
	color        gputypes.Color
	lit          bool
	cullMode     gputypes.CullMode
	depthCompare gputypes.CompareFunction

	lights int
	dirty  bool

	key            pipelineKey
	shader         hal.ShaderModule
	materialLayout hal.BindGroupLayout
	objectLayout   hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipeline       hal.RenderPipeline
	uniforms       hal.Buffer
	placeholder    hal.Buffer

	bindGroup   hal.BindGroup
	boundLights hal.Buffer

	uniformData [uniformSize]byte
}

var _ scene.Material = (*Basic)(nil)

// NewBasic returns an opaque white, unlit material.
func NewBasic(opts ...Option) *Basic {
	b := &Basic{
		label:        "Basic Material",
		color:        gputypes.Color{R: 1, G: 1, B: 1, A: 1},
		cullMode:     gputypes.CullModeBack,
		depthCompare: gputypes.CompareFunctionLess,
		dirty:        true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Color returns the base color.
func (b *Basic) Color() gputypes.Color { return b.color }

// SetColor sets the base color.
func (b *Basic) SetColor(c gputypes.Color) {
	b.color = c
	b.dirty = true
}

// Lighting reports whether the material reads the light buffer.
func (b *Basic) Lighting() bool { return b.lit }

// SetLighting enables or disables lighting.
func (b *Basic) SetLighting(enabled bool) {
	b.lit = enabled
	b.dirty = true
}

// MaxLights returns the light count passed to the shader.
func (b *Basic) MaxLights() int { return b.lights }

// SetMaxLights sets the number of lights the shader iterates over.
func (b *Basic) SetMaxLights(n int) {
	n = max(n, 0)
	if n != b.lights {
		b.lights = n
		b.dirty = true
	}
}

// ObjectLayout returns the per-object bind group layout, or nil before
// Prepare.
func (b *Basic) ObjectLayout() hal.BindGroupLayout { return b.objectLayout }

// Ready reports whether the pipeline exists.
func (b *Basic) Ready() bool { return b.pipeline != nil }

// Prepare builds the pipeline for ctx. It does nothing when ctx matches
// the context the pipeline was built for.
func (b *Basic) Prepare(ctx *render.Context) error {
	if ctx == nil || ctx.Device == nil || ctx.Queue == nil {
		return ErrNoDevice
	}
	if ctx.ColorFormat == gputypes.TextureFormatUndefined {
		return ErrNoColorFormat
	}
	key := pipelineKey{
		device:       ctx.Device,
		queue:        ctx.Queue,
		colorFormat:  ctx.ColorFormat,
		depthFormat:  depthStencilFormat(ctx),
		sampleCount:  ctx.Samples(),
		cullMode:     b.cullMode,
		depthCompare: b.depthCompare,
	}
	if b.pipeline != nil && key == b.key {
		return nil
	}

	b.Release()
	b.key = key
	if err := b.create(); err != nil {
		b.Release()
		return err
	}
	g3d.Logger().Debug("material: pipeline created",
		"label", b.label, "color", key.colorFormat.String(),
		"depth", key.depthFormat.String(), "samples", key.sampleCount)
	return nil
}

// depthStencilFormat returns the format of the depth/stencil attachment
// the renderer binds for ctx: the depth format, or the stencil format when
// there is no depth.
func depthStencilFormat(ctx *render.Context) gputypes.TextureFormat {
	if ctx.DepthFormat != gputypes.TextureFormatUndefined {
		return ctx.DepthFormat
	}
	return ctx.StencilFormat
}

func (b *Basic) create() error { //nolint:funlen // one descriptor per GPU object
	device := b.key.device

	code, err := basicSPIRV()
	if err != nil {
		return err
	}
	b.shader, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  b.label + " Shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("material: create shader module: %w", err)
	}

	b.materialLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: b.label + " Layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, MinBindingSize: uniformSize},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage, MinBindingSize: render.LightDataSize},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("material: create material layout: %w", err)
	}

	b.objectLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: b.label + " Object Layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, MinBindingSize: scene.ObjectUniformSize},
		}},
	})
	if err != nil {
		return fmt.Errorf("material: create object layout: %w", err)
	}

	b.pipelineLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            b.label + " Pipeline Layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.materialLayout, b.objectLayout},
	})
	if err != nil {
		return fmt.Errorf("material: create pipeline layout: %w", err)
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  b.label + " Pipeline",
		Layout: b.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers:    scene.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    b.key.colorFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  b.cullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: b.key.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
	if f := b.key.depthFormat; f != gputypes.TextureFormatUndefined {
		ds := &hal.DepthStencilState{Format: f, DepthCompare: gputypes.CompareFunctionAlways}
		if f.HasDepth() {
			ds.DepthWriteEnabled = true
			ds.DepthCompare = b.depthCompare
		}
		desc.DepthStencil = ds
	}
	b.pipeline, err = device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("material: create pipeline: %w", err)
	}

	b.uniforms, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label + " Uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("material: create uniform buffer: %w", err)
	}
	b.placeholder, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label + " Empty Lights",
		Size:  render.LightDataSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("material: create placeholder light buffer: %w", err)
	}
	b.dirty = true
	return nil
}

// BindLights binds the material bind group with lights as the light
// storage buffer. A nil or empty light buffer binds a zeroed placeholder.
func (b *Basic) BindLights(rp hal.RenderPassEncoder, lights *render.LightBuffer) {
	if b.pipeline == nil {
		return
	}
	buf := b.placeholder
	if lights != nil && lights.Buffer != nil && lights.Count > 0 {
		buf = lights.Buffer
	}
	if err := b.bind(buf); err != nil {
		g3d.Logger().Warn("material: bind lights failed", "label", b.label, "err", err)
		return
	}
	rp.SetBindGroup(0, b.bindGroup, nil)
}

// bind makes the material bind group reference lights.
func (b *Basic) bind(lights hal.Buffer) error {
	if b.bindGroup != nil && b.boundLights == lights {
		return nil
	}
	b.releaseBindGroup()
	bg, err := b.key.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  b.label + " Bind Group",
		Layout: b.materialLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding:  0,
				Resource: gputypes.BufferBinding{Buffer: b.uniforms.NativeHandle(), Size: uniformSize},
			},
			{
				Binding:  1,
				Resource: gputypes.BufferBinding{Buffer: lights.NativeHandle()},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("material: create bind group: %w", err)
	}
	b.bindGroup = bg
	b.boundLights = lights
	return nil
}

// Update uploads the uniform block when it changed.
func (b *Basic) Update() {
	if !b.dirty || b.uniforms == nil {
		return
	}
	b.putUniforms()
	if err := b.key.queue.WriteBuffer(b.uniforms, 0, b.uniformData[:]); err != nil {
		g3d.Logger().Warn("material: uniform upload failed", "label", b.label, "err", err)
		return
	}
	b.dirty = false
}

func (b *Basic) putUniforms() {
	d := b.uniformData[:]
	c := b.color
	linear.PutVec4(d, f32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)})
	var lit uint32
	if b.lit {
		lit = 1
	}
	binary.LittleEndian.PutUint32(d[16:], uint32(b.lights))
	binary.LittleEndian.PutUint32(d[20:], lit)
	binary.LittleEndian.PutUint32(d[24:], 0)
	binary.LittleEndian.PutUint32(d[28:], 0)
}

// Bind sets the pipeline and the material bind group. Unlit materials
// bind the placeholder light buffer.
func (b *Basic) Bind(rp hal.RenderPassEncoder) {
	if b.pipeline == nil {
		return
	}
	b.Update()
	if b.bindGroup == nil {
		if err := b.bind(b.placeholder); err != nil {
			g3d.Logger().Warn("material: bind failed", "label", b.label, "err", err)
			return
		}
	}
	rp.SetPipeline(b.pipeline)
	rp.SetBindGroup(0, b.bindGroup, nil)
}

// Release destroys the material's GPU objects. Prepare recreates them.
func (b *Basic) Release() {
	device := b.key.device
	if device == nil {
		return
	}
	b.releaseBindGroup()
	if b.placeholder != nil {
		device.DestroyBuffer(b.placeholder)
		b.placeholder = nil
	}
	if b.uniforms != nil {
		device.DestroyBuffer(b.uniforms)
		b.uniforms = nil
	}
	if b.pipeline != nil {
		device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipelineLayout != nil {
		device.DestroyPipelineLayout(b.pipelineLayout)
		b.pipelineLayout = nil
	}
	if b.objectLayout != nil {
		device.DestroyBindGroupLayout(b.objectLayout)
		b.objectLayout = nil
	}
	if b.materialLayout != nil {
		device.DestroyBindGroupLayout(b.materialLayout)
		b.materialLayout = nil
	}
	if b.shader != nil {
		device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	b.key = pipelineKey{}
}

func (b *Basic) releaseBindGroup() {
	if b.bindGroup != nil {
		b.key.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	b.boundLights = nil
}
