// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"
)

// TargetKind identifies one of the render targets managed by a Renderer.
type TargetKind int

const (
	// TargetColor is the multisampled color target. It only exists when the
	// context sample count is greater than one; otherwise the caller's
	// texture is rendered into directly.
	TargetColor TargetKind = iota
	// TargetDepth is the depth target.
	TargetDepth
	// TargetStencil is the stencil target. It shares the depth texture when
	// the depth format packs stencil.
	TargetStencil

	targetKinds = 3
)

// String returns the kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetColor:
		return "color"
	case TargetDepth:
		return "depth"
	case TargetStencil:
		return "stencil"
	default:
		return "unknown"
	}
}

func (k TargetKind) valid() bool { return k >= 0 && k < targetKinds }

func (k TargetKind) labelSuffix() string {
	switch k {
	case TargetColor:
		return " Color Texture"
	case TargetDepth:
		return " Depth Texture"
	default:
		return " Stencil Texture"
	}
}

// targetManager owns the color, depth and stencil render targets.
//
// Every kind carries a dirty flag. Configuration changes only set flags;
// textures are (re)created lazily by ensure. A slot that cannot be filled
// (undefined format, a dimension <= 1, single-sample color, allocation
// failure) is left empty and stays dirty so it is re-evaluated on the next
// ensure.
type targetManager struct {
	label string
	ctx   Context

	width  uint32
	height uint32

	textures [targetKinds]*Texture
	dirty    [targetKinds]bool
}

func newTargetManager(label string, ctx Context) *targetManager {
	m := &targetManager{label: label, ctx: ctx}
	m.invalidateAll()
	return m
}

// setContext switches to ctx. A device change destroys every texture with
// the old device first. Returns whether anything changed.
func (m *targetManager) setContext(ctx Context) bool {
	if ctx == m.ctx {
		return false
	}
	if ctx.Device != m.ctx.Device {
		m.destroy()
	}
	m.ctx = ctx
	m.invalidateAll()
	return true
}

// setSize records new target dimensions and invalidates every kind.
func (m *targetManager) setSize(w, h uint32) {
	m.width, m.height = w, h
	m.invalidateAll()
}

func (m *targetManager) invalidateAll() {
	for k := range m.dirty {
		m.dirty[k] = true
	}
}

// ensure returns a texture for kind that satisfies the current context and
// size, or nil when the slot cannot be filled. It only allocates when the
// kind is dirty.
func (m *targetManager) ensure(kind TargetKind) *Texture {
	if !m.dirty[kind] {
		return m.textures[kind]
	}

	if kind == TargetStencil && m.ctx.Combined() {
		depth := m.ensure(TargetDepth)
		m.release(TargetStencil)
		m.textures[TargetStencil] = depth
		if depth != nil {
			m.dirty[TargetStencil] = false
		}
		return depth
	}

	m.release(kind)

	format := m.ctx.format(kind)
	samples := m.ctx.Samples()
	switch {
	case format == gputypes.TextureFormatUndefined,
		m.width <= 1, m.height <= 1,
		kind == TargetColor && samples <= 1,
		m.ctx.Device == nil:
		return nil
	}

	tex, err := newTexture(m.ctx.Device, m.label+kind.labelSuffix(), format, m.width, m.height, samples)
	if err != nil {
		slogger().Warn("render: render target unavailable",
			"kind", kind.String(), "format", format.String(), "err", err)
		return nil
	}
	slogger().Debug("render: render target created",
		"label", tex.Label, "format", format.String(),
		"width", m.width, "height", m.height, "samples", samples)

	m.textures[kind] = tex
	m.dirty[kind] = false
	return tex
}

// release empties the slot for kind, destroying its texture unless the
// stencil slot only borrows the depth texture. Releasing the depth texture
// also empties a stencil slot sharing it.
func (m *targetManager) release(kind TargetKind) {
	t := m.textures[kind]
	if t == nil {
		return
	}
	m.textures[kind] = nil

	if kind == TargetStencil && t == m.textures[TargetDepth] {
		return
	}
	if kind == TargetDepth && t == m.textures[TargetStencil] {
		m.textures[TargetStencil] = nil
		m.dirty[TargetStencil] = true
	}
	t.destroy(m.ctx.Device)
}

// destroy releases every texture and marks all kinds dirty.
func (m *targetManager) destroy() {
	m.release(TargetStencil)
	m.release(TargetDepth)
	m.release(TargetColor)
	m.invalidateAll()
}
