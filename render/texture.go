// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targetUsage is the usage of every texture the renderer allocates:
// render attachment plus shader read.
const targetUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding

// Texture is a 2D texture together with the view used to attach it.
//
// Textures owned by the renderer are valid until the next resize or
// context change. Callers supplying their own textures in a RenderPass keep
// ownership of them.
type Texture struct {
	Label   string
	Texture hal.Texture
	View    hal.TextureView

	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	SampleCount uint32
}

// matches reports whether t can serve as an attachment with the given
// format and sample count. A nil texture never matches.
func (t *Texture) matches(format gputypes.TextureFormat, samples uint32) bool {
	if t == nil {
		return false
	}
	s := t.SampleCount
	if s == 0 {
		s = 1
	}
	return t.Format == format && s == samples
}

// view returns the attachment view, or nil for a nil texture.
func (t *Texture) view() hal.TextureView {
	if t == nil {
		return nil
	}
	return t.View
}

// newTexture allocates a 2D render-target texture and its default view.
// Nothing is leaked on failure.
func newTexture(device hal.Device, label string, format gputypes.TextureFormat, w, h, samples uint32) (*Texture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         targetUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:     label + " View",
		Format:    format,
		Dimension: gputypes.TextureViewDimension2D,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return &Texture{
		Label:       label,
		Texture:     tex,
		View:        view,
		Format:      format,
		Width:       w,
		Height:      h,
		SampleCount: samples,
	}, nil
}

// destroy releases the view and the texture.
func (t *Texture) destroy(device hal.Device) {
	if t == nil || device == nil {
		return
	}
	if t.View != nil {
		device.DestroyTextureView(t.View)
		t.View = nil
	}
	if t.Texture != nil {
		device.DestroyTexture(t.Texture)
		t.Texture = nil
	}
}
