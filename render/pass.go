// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ColorAttachment configures the primary color attachment of a pass.
type ColorAttachment struct {
	// Texture is rendered into. With MSAA it is the multisampled texture.
	Texture *Texture
	// Resolve receives the resolved image when Texture is multisampled.
	Resolve *Texture

	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// DepthAttachment configures the depth aspect of a pass.
type DepthAttachment struct {
	Texture    *Texture
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue float32
	ReadOnly   bool
}

// StencilAttachment configures the stencil aspect of a pass.
type StencilAttachment struct {
	Texture    *Texture
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue uint32
	ReadOnly   bool
}

// RenderPass is the pass configuration handed to Renderer.Draw: the
// attachment textures, their load/store operations and clear values.
//
// The renderer fills in missing or mismatched attachments from its own
// render targets and overwrites the operations and clear values with its
// configuration for the duration of a draw. The pass is restored to the
// caller's configuration before Draw returns.
type RenderPass struct {
	Label   string
	Color   ColorAttachment
	Depth   DepthAttachment
	Stencil StencilAttachment
}

// descriptor converts the pass into a HAL render pass descriptor.
//
// HAL passes carry a single depth/stencil view. The depth texture is used
// when present, otherwise the stencil texture. Depth operations are only
// emitted for formats with a depth aspect and stencil operations only for
// formats with a stencil aspect.
func (p *RenderPass) descriptor() *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{Label: p.Label}

	if p.Color.Texture != nil {
		desc.ColorAttachments = []hal.RenderPassColorAttachment{{
			View:          p.Color.Texture.View,
			ResolveTarget: p.Color.Resolve.view(),
			LoadOp:        p.Color.LoadOp,
			StoreOp:       p.Color.StoreOp,
			ClearValue:    p.Color.ClearValue,
		}}
	}

	ds := p.Depth.Texture
	if ds == nil {
		ds = p.Stencil.Texture
	}
	if ds == nil {
		return desc
	}

	att := &hal.RenderPassDepthStencilAttachment{View: ds.View}
	if ds.Format.HasDepth() {
		att.DepthLoadOp = p.Depth.LoadOp
		att.DepthStoreOp = p.Depth.StoreOp
		att.DepthClearValue = p.Depth.ClearValue
		att.DepthReadOnly = p.Depth.ReadOnly
	}
	if ds.Format.HasStencil() {
		att.StencilLoadOp = p.Stencil.LoadOp
		att.StencilStoreOp = p.Stencil.StoreOp
		att.StencilClearValue = p.Stencil.ClearValue
		att.StencilReadOnly = p.Stencil.ReadOnly
	}
	desc.DepthStencilAttachment = att
	return desc
}
