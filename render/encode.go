// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"sort"

	"github.com/gogpu/wgpu/hal"
)

// DebugGrouper is implemented by pass encoders that support named debug
// groups. Pass encoders that do not implement it get their scopes logged at
// debug level instead.
type DebugGrouper interface {
	PushDebugGroup(label string)
	PopDebugGroup()
}

// DrawHook runs inside the renderer's pass, before or after the scene's
// draws.
type DrawHook func(rp hal.RenderPassEncoder)

// frameEncoder records the draws of a frame into a render pass.
type frameEncoder struct {
	label    string
	sort     bool
	preDraw  DrawHook
	postDraw DrawHook
}

// encode records frame into rp. Nothing is recorded when root is not
// visible or there is nothing to draw.
func (e *frameEncoder) encode(rp hal.RenderPassEncoder, root Node, frame Frame, lights *LightBuffer) {
	if !root.Visible() || len(frame.Renderables) == 0 {
		return
	}

	pushDebugGroup(rp, e.label+" Pass")
	defer popDebugGroup(rp)

	if e.preDraw != nil {
		e.preDraw(rp)
	}

	renderables := frame.Renderables
	if e.sort {
		renderables = make([]Renderable, len(frame.Renderables))
		copy(renderables, frame.Renderables)
		sort.SliceStable(renderables, func(i, j int) bool {
			return renderables[i].RenderOrder() < renderables[j].RenderOrder()
		})
	}

	for _, r := range renderables {
		encodeRenderable(rp, r, lights)
	}

	if e.postDraw != nil {
		e.postDraw(rp)
	}
}

func encodeRenderable(rp hal.RenderPassEncoder, r Renderable, lights *LightBuffer) {
	pushDebugGroup(rp, r.Label())
	defer popDebugGroup(rp)

	if m := r.Material(); m != nil && m.Lighting() {
		if lights != nil {
			m.SetMaxLights(lights.Count)
		} else {
			m.SetMaxLights(0)
		}
		m.BindLights(rp, lights)
		m.Update()
	}
	r.Draw(rp)
}

func pushDebugGroup(rp hal.RenderPassEncoder, label string) {
	if g, ok := rp.(DebugGrouper); ok {
		g.PushDebugGroup(label)
		return
	}
	slogger().Debug("render: push debug group", "label", label)
}

func popDebugGroup(rp hal.RenderPassEncoder) {
	if g, ok := rp.(DebugGrouper); ok {
		g.PopDebugGroup()
		return
	}
	slogger().Debug("render: pop debug group")
}
