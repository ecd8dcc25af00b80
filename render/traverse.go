// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Frame holds the lists collected by one traversal. It is frame scoped:
// the renderer builds a new Frame every draw and never keeps it.
type Frame struct {
	// Renderables in pre-order discovery order.
	Renderables []Renderable
	// Lights in pre-order discovery order.
	Lights []Light
}

// capability is the set of renderer-visible roles a node plays.
type capability uint8

const (
	capLight capability = 1 << iota
	capRenderable
)

// classify evaluates the capabilities of n once. Light takes priority over
// Renderable: a node implementing both is only ever collected as a light.
func classify(n Node) (capability, Light, Renderable) {
	var caps capability
	l, isLight := n.(Light)
	if isLight {
		caps |= capLight
	}
	r, isRenderable := n.(Renderable)
	if isRenderable {
		caps |= capRenderable
	}
	return caps, l, r
}

// traverser walks a scene graph once per frame.
type traverser struct {
	ctx      *Context
	camera   Camera
	viewport Viewport
	frame    Frame
}

// traverse walks root depth first in pre-order. Every node is primed with
// ctx and updated, visible or not. A node is collected only when it and all
// of its ancestors are visible.
func traverse(ctx *Context, root Node, camera Camera, viewport Viewport) Frame {
	t := traverser{ctx: ctx, camera: camera, viewport: viewport}
	t.visit(root, true)
	return t.frame
}

func (t *traverser) visit(n Node, ancestorVisible bool) {
	n.SetContext(t.ctx)
	n.Update()
	n.UpdateCamera(t.camera, t.viewport)

	visible := ancestorVisible && n.Visible()
	if visible {
		caps, light, renderable := classify(n)
		switch {
		case caps&capLight != 0:
			t.frame.Lights = append(t.frame.Lights, light)
		case caps&capRenderable != 0 && renderable.Drawable():
			t.frame.Renderables = append(t.frame.Renderables, renderable)
		}
	}

	for _, child := range n.Children() {
		t.visit(child, visible)
	}
}

// compile primes n and its descendants with ctx.
func compile(ctx *Context, n Node) {
	n.SetContext(ctx)
	for _, child := range n.Children() {
		compile(ctx, child)
	}
}
