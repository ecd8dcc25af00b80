// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilPass is returned when Draw is called without a pass.
	ErrNilPass = errors.New("render: nil pass")

	// ErrNilEncoder is returned when Draw is called without an encoder.
	ErrNilEncoder = errors.New("render: nil command encoder")

	// ErrNilScene is returned when a draw is requested without a scene root.
	ErrNilScene = errors.New("render: nil scene")

	// ErrNilCamera is returned when a draw is requested without a camera.
	ErrNilCamera = errors.New("render: nil camera")

	// ErrNilTarget is returned by DrawTo without a target texture.
	ErrNilTarget = errors.New("render: nil target")

	errNoDevice = errors.New("render: context has no device")
	errNoQueue  = errors.New("render: context has no queue")
)

// Renderer draws a scene graph into a render pass every frame.
//
// A Renderer owns its render targets and its light buffer. It is not safe
// for concurrent use: all methods must be called from the goroutine that
// records the frame.
type Renderer struct {
	opts options
	ctx  *Context

	targets *targetManager
	lights  lightAggregator

	viewport Viewport
}

// New creates a Renderer for ctx.
func New(ctx Context, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		opts:    o,
		ctx:     &ctx,
		targets: newTargetManager(o.label, ctx),
		lights:  lightAggregator{label: o.label, ctx: ctx},
	}
	w, h := o.width, o.height
	r.opts.width, r.opts.height = 0, 0
	r.Resize(w, h)
	r.updateViewport()
	return r
}

// Label returns the renderer label.
func (r *Renderer) Label() string { return r.opts.label }

// Context returns the current context.
func (r *Renderer) Context() Context { return *r.ctx }

// SetContext replaces the context. Nodes are primed with the new context
// on the next draw. A context that differs from the current one
// invalidates every render target; a device change also releases the
// light buffer.
func (r *Renderer) SetContext(ctx Context) {
	if ctx == *r.ctx {
		return
	}
	r.targets.setContext(ctx)
	r.lights.setContext(ctx)
	r.ctx = &ctx
}

// Size returns the size passed to the last Resize.
func (r *Renderer) Size() (width, height float32) {
	return r.opts.width, r.opts.height
}

// Viewport returns the full-frame viewport.
func (r *Renderer) Viewport() Viewport { return r.viewport }

// Resize sets the render target size. When the size actually changes,
// every render target is invalidated and the viewport recomputed.
func (r *Renderer) Resize(width, height float32) {
	if width == r.opts.width && height == r.opts.height {
		return
	}
	r.opts.width, r.opts.height = width, height
	r.targets.setSize(uint32(max(width, 0)), uint32(max(height, 0)))
	r.updateViewport()
}

// SetInvertViewportNearFar selects the reversed depth range (1, 0) in the
// Viewport handed to nodes, for cameras building reversed-Z projections.
// The depth range set on the pass always runs from the smaller to the
// larger value.
func (r *Renderer) SetInvertViewportNearFar(enabled bool) {
	r.opts.invertNearFar = enabled
	r.updateViewport()
}

func (r *Renderer) updateViewport() {
	near, far := float32(0), float32(1)
	if r.opts.invertNearFar {
		near, far = 1, 0
	}
	r.viewport = Viewport{
		Width:  r.opts.width,
		Height: r.opts.height,
		ZNear:  near,
		ZFar:   far,
	}
}

// SetSortObjects enables or disables sorting by RenderOrder.
func (r *Renderer) SetSortObjects(enabled bool) { r.opts.sort = enabled }

// SortObjects reports whether renderables are sorted by RenderOrder.
func (r *Renderer) SortObjects() bool { return r.opts.sort }

// SetClearColor sets the color clear value.
func (r *Renderer) SetClearColor(c gputypes.Color) { r.opts.clearColor = c }

// SetClearDepth sets the depth clear value.
func (r *Renderer) SetClearDepth(d float32) { r.opts.clearDepth = d }

// SetClearStencil sets the stencil clear value.
func (r *Renderer) SetClearStencil(s uint32) { r.opts.clearStencil = s }

// SetColorOps sets the color load/store operations.
func (r *Renderer) SetColorOps(ops AttachmentOps) { r.opts.color = ops }

// SetDepthOps sets the depth load/store operations.
func (r *Renderer) SetDepthOps(ops AttachmentOps) { r.opts.depth = ops }

// SetStencilOps sets the stencil load/store operations.
func (r *Renderer) SetStencilOps(ops AttachmentOps) { r.opts.stencil = ops }

// SetOnUpdate sets the hook run at the start of every frame update.
func (r *Renderer) SetOnUpdate(fn func()) { r.opts.onUpdate = fn }

// SetPreDraw sets the hook run before the scene's draws.
func (r *Renderer) SetPreDraw(fn DrawHook) { r.opts.preDraw = fn }

// SetPostDraw sets the hook run after the scene's draws.
func (r *Renderer) SetPostDraw(fn DrawHook) { r.opts.postDraw = fn }

// Target returns the current texture of a render target kind without
// creating it, or nil for an unknown kind. The texture is valid until the next resize or context
// change.
func (r *Renderer) Target(kind TargetKind) *Texture {
	if !kind.valid() {
		return nil
	}
	return r.targets.textures[kind]
}

// TargetDirty reports whether a render target kind will be re-evaluated
// on its next use.
func (r *Renderer) TargetDirty(kind TargetKind) bool {
	if !kind.valid() {
		return false
	}
	return r.targets.dirty[kind]
}

// LightBuffer returns the light buffer of the last frame, or nil.
func (r *Renderer) LightBuffer() *LightBuffer {
	return r.lights.buffer
}

// Release destroys the render targets and the light buffer. The renderer
// stays usable; resources are recreated on the next draw.
func (r *Renderer) Release() {
	r.targets.destroy()
	r.lights.release()
}

// Compile primes root and all of its descendants with the renderer's
// context. It is idempotent and should be called again after subtrees are
// added.
func (r *Renderer) Compile(root Node, camera Camera) {
	if root == nil {
		return
	}
	compile(r.ctx, root)
}

// Draw renders root as seen by camera into pass, recording into encoder.
//
// The encoder must be encoding; Draw opens and ends exactly one render
// pass. Attachments the pass leaves empty, or whose format or sample count
// do not match the context, are replaced with the renderer's own render
// targets. Resource failures are logged and the frame is drawn without
// the affected attachment. pass is restored before Draw returns.
func (r *Renderer) Draw(pass *RenderPass, encoder hal.CommandEncoder, root Node, camera Camera) error {
	switch {
	case pass == nil:
		return ErrNilPass
	case encoder == nil:
		return ErrNilEncoder
	case root == nil:
		return ErrNilScene
	case camera == nil:
		return ErrNilCamera
	}

	frame, lights := r.update(root, camera)

	saved := *pass
	defer func() { *pass = saved }()

	r.attachTargets(pass)
	r.applyOps(pass)

	desc := pass.descriptor()
	if desc.Label == "" {
		desc.Label = r.opts.label + " Encoder"
	}
	rp := encoder.BeginRenderPass(desc)
	defer rp.End()

	r.setViewport(rp)
	r.frameEncoder().encode(rp, root, frame, lights)
	return nil
}

// DrawTo is Draw with target substituted for the pass's output: the
// resolve attachment when multisampling, the color attachment otherwise.
// The original attachments are restored even if drawing panics.
func (r *Renderer) DrawTo(pass *RenderPass, encoder hal.CommandEncoder, root Node, camera Camera, target *Texture) error {
	if pass == nil {
		return ErrNilPass
	}
	if target == nil {
		return ErrNilTarget
	}

	saved := pass.Color
	defer func() { pass.Color = saved }()

	if r.ctx.Multisampled() {
		pass.Color.Resolve = target
	} else {
		pass.Color.Texture = target
	}
	return r.Draw(pass, encoder, root, camera)
}

// DrawInPass updates root and records its draws into a pass the caller
// opened. Render targets and load/store configuration are left to the
// caller.
func (r *Renderer) DrawInPass(rp hal.RenderPassEncoder, root Node, camera Camera) error {
	switch {
	case rp == nil:
		return ErrNilEncoder
	case root == nil:
		return ErrNilScene
	case camera == nil:
		return ErrNilCamera
	}
	frame, lights := r.update(root, camera)
	r.frameEncoder().encode(rp, root, frame, lights)
	return nil
}

// update runs the per-frame CPU work: the update hook, camera viewport and
// update, traversal and light buffer synchronization.
func (r *Renderer) update(root Node, camera Camera) (Frame, *LightBuffer) {
	if r.opts.onUpdate != nil {
		r.opts.onUpdate()
	}
	if vc, ok := camera.(ViewportCamera); ok {
		vc.SetViewport(r.viewport)
	}
	camera.Update()
	frame := traverse(r.ctx, root, camera, r.viewport)
	return frame, r.lights.sync(frame.Lights)
}

func (r *Renderer) frameEncoder() *frameEncoder {
	return &frameEncoder{
		label:    r.opts.label,
		sort:     r.opts.sort,
		preDraw:  r.opts.preDraw,
		postDraw: r.opts.postDraw,
	}
}

// attachTargets fills attachments that are missing or mismatched with the
// renderer's render targets.
func (r *Renderer) attachTargets(pass *RenderPass) {
	ctx := r.ctx
	samples := ctx.Samples()

	if samples > 1 && !pass.Color.Texture.matches(ctx.ColorFormat, samples) {
		in := pass.Color.Texture
		msaa := r.targets.ensure(TargetColor)
		if msaa != nil && pass.Color.Resolve == nil && in.matches(ctx.ColorFormat, 1) {
			pass.Color.Resolve = in
		}
		pass.Color.Texture = msaa
	}

	if !pass.Depth.Texture.matches(ctx.DepthFormat, samples) {
		pass.Depth.Texture = r.targets.ensure(TargetDepth)
		if ctx.Combined() {
			pass.Stencil.Texture = r.targets.ensure(TargetStencil)
		}
	}

	stencilFormat := ctx.format(TargetStencil)
	if !pass.Stencil.Texture.matches(stencilFormat, samples) {
		if ctx.Combined() && pass.Depth.Texture.matches(stencilFormat, samples) {
			pass.Stencil.Texture = pass.Depth.Texture
		} else {
			pass.Stencil.Texture = r.targets.ensure(TargetStencil)
		}
	}
}

// applyOps writes the renderer's clear values and load/store operations
// into pass.
func (r *Renderer) applyOps(pass *RenderPass) {
	o := &r.opts
	pass.Color.LoadOp = o.color.Load
	pass.Color.StoreOp = storeOp(o.color.Store)
	pass.Color.ClearValue = o.clearColor

	pass.Depth.LoadOp = o.depth.Load
	pass.Depth.StoreOp = storeOp(o.depth.Store)
	pass.Depth.ClearValue = o.clearDepth

	pass.Stencil.LoadOp = o.stencil.Load
	pass.Stencil.StoreOp = storeOp(o.stencil.Store)
	pass.Stencil.ClearValue = o.clearStencil
}

// storeOp maps a configured store operation onto one the backend accepts.
// Resolving is implied by a resolve attachment, so only Store survives;
// everything else discards.
func storeOp(op gputypes.StoreOp) gputypes.StoreOp {
	if op == gputypes.StoreOpStore {
		return gputypes.StoreOpStore
	}
	return gputypes.StoreOpDiscard
}

func (r *Renderer) setViewport(rp hal.RenderPassEncoder) {
	v := r.viewport
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	rp.SetViewport(v.X, v.Y, v.Width, v.Height, min(v.ZNear, v.ZFar), max(v.ZNear, v.ZFar))
}
