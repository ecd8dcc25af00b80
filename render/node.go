// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f32"
)

// Viewport is the rectangle and depth range a pass renders into.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	ZNear, ZFar   float32
}

// Node is a scene-graph node as seen by the renderer.
//
// The renderer calls SetContext, Update and UpdateCamera on every node of
// the hierarchy every frame, visible or not, so implementations must make
// repeated calls cheap.
type Node interface {
	Label() string
	Visible() bool
	// Children returns the ordered children. Parents own their children;
	// the graph must be a tree.
	Children() []Node

	SetContext(ctx *Context)
	Update()
	UpdateCamera(camera Camera, viewport Viewport)
}

// Renderable is a node that produces one draw.
type Renderable interface {
	Node

	// Material may be nil.
	Material() Material
	Drawable() bool
	// RenderOrder is the ascending sort key used when sorting is enabled.
	RenderOrder() int
	// Draw records the node's draw commands. The material has already been
	// updated for this frame.
	Draw(rp hal.RenderPassEncoder)
}

// Light is a node emitting a LightData snapshot.
//
// Generation must change every time the data returned by LightData
// changes. It may be read while another goroutine mutates the light, so it
// should be backed by an atomic counter.
type Light interface {
	Node

	LightData() LightData
	Generation() uint64
}

// Material is the part of a material the renderer talks to.
type Material interface {
	// Lighting reports whether the material reads the light buffer.
	Lighting() bool
	// SetMaxLights sets the number of lights in the bound light buffer.
	SetMaxLights(n int)
	// BindLights binds the light buffer for the next draw. lights is nil
	// when the frame has no lights.
	BindLights(rp hal.RenderPassEncoder, lights *LightBuffer)
	// Update is the per-frame hook run before the owning renderable draws.
	Update()
}

// Camera provides the view and projection of a frame.
type Camera interface {
	// Update refreshes derived matrices. It runs once per frame before the
	// scene is traversed.
	Update()
	ViewMatrix() f32.Mat4
	ProjectionMatrix() f32.Mat4
}

// ViewportCamera is a Camera that derives its projection from the frame
// viewport. The renderer calls SetViewport before Camera.Update on every
// frame, whether or not the camera is part of the scene.
type ViewportCamera interface {
	Camera
	SetViewport(viewport Viewport)
}
