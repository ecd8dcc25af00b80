// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render is the per-frame core of g3d.
//
// A [Renderer] walks a scene graph once per frame, collects the visible
// lights and drawables, keeps a GPU light buffer and the color, depth and
// stencil render targets in sync with the current [Context] and viewport,
// and records one render pass into a caller-owned command encoder.
//
// # Key Principle
//
// The renderer RECEIVES its device, queue, command encoder and pass
// configuration from the host. It never submits work and never presents.
//
// # Frame Protocol
//
//	r.Compile(root, camera)                      // once, or after topology changes
//	r.Draw(pass, encoder, root, camera)          // every frame
//	r.DrawTo(pass, encoder, root, camera, tex)   // render into tex instead of the pass target
//	r.Resize(width, height)                      // on surface resize
//
// Each Draw runs traversal, light synchronization and encoding in that
// order on the calling goroutine. The render and light lists are
// frame-scoped values and are never retained between frames.
//
// # Scene Contract
//
// Scene objects implement [Node]. A node that also implements [Light] is
// collected as a light; otherwise a node implementing [Renderable] whose
// Drawable reports true is collected for drawing. Materials implement
// [Material].
//
// # Errors
//
// Draw fails only on nil arguments. Resources that cannot be created are
// logged at warn level through g3d.Logger and the frame renders without
// them.
package render
