// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/gputypes"

// DefaultLabel is the label of a Renderer created without WithLabel.
const DefaultLabel = "g3d Renderer"

// Option configures a Renderer.
type Option func(*options)

// AttachmentOps are the load and store operations of one attachment.
type AttachmentOps struct {
	Load  gputypes.LoadOp
	Store gputypes.StoreOp
}

type options struct {
	label string
	sort  bool

	clearColor   gputypes.Color
	clearDepth   float32
	clearStencil uint32

	color   AttachmentOps
	depth   AttachmentOps
	stencil AttachmentOps

	invertNearFar bool
	width, height float32

	onUpdate func()
	preDraw  DrawHook
	postDraw DrawHook
}

func defaultOptions() options {
	return options{
		label:      DefaultLabel,
		clearColor: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		color:      AttachmentOps{Load: gputypes.LoadOpClear, Store: gputypes.StoreOpStore},
		depth:      AttachmentOps{Load: gputypes.LoadOpClear, Store: gputypes.StoreOpDiscard},
		stencil:    AttachmentOps{Load: gputypes.LoadOpClear, Store: gputypes.StoreOpDiscard},
	}
}

// WithLabel sets the label used for debug groups and texture labels.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithSortObjects enables sorting renderables by RenderOrder.
func WithSortObjects(enabled bool) Option {
	return func(o *options) {
		o.sort = enabled
	}
}

// WithClearColor sets the color the color attachment is cleared to.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithClearDepth sets the depth clear value.
func WithClearDepth(d float32) Option {
	return func(o *options) {
		o.clearDepth = d
	}
}

// WithClearStencil sets the stencil clear value.
func WithClearStencil(s uint32) Option {
	return func(o *options) {
		o.clearStencil = s
	}
}

// WithColorOps sets the load/store operations of the color attachment.
func WithColorOps(ops AttachmentOps) Option {
	return func(o *options) {
		o.color = ops
	}
}

// WithDepthOps sets the load/store operations of the depth attachment.
func WithDepthOps(ops AttachmentOps) Option {
	return func(o *options) {
		o.depth = ops
	}
}

// WithStencilOps sets the load/store operations of the stencil attachment.
func WithStencilOps(ops AttachmentOps) Option {
	return func(o *options) {
		o.stencil = ops
	}
}

// WithInvertViewportNearFar swaps the viewport depth range to (1, 0) for
// reversed-Z setups.
func WithInvertViewportNearFar(enabled bool) Option {
	return func(o *options) {
		o.invertNearFar = enabled
	}
}

// WithSize sets the initial target size, as if Resize had been called.
func WithSize(width, height float32) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithOnUpdate sets a hook run at the start of every frame update.
func WithOnUpdate(fn func()) Option {
	return func(o *options) {
		o.onUpdate = fn
	}
}

// WithPreDraw sets a hook run inside the pass before the scene's draws.
func WithPreDraw(fn DrawHook) Option {
	return func(o *options) {
		o.preDraw = fn
	}
}

// WithPostDraw sets a hook run inside the pass after the scene's draws.
func WithPostDraw(fn DrawHook) Option {
	return func(o *options) {
		o.postDraw = fn
	}
}
