// Package g3d is a scene-graph renderer core for the gogpu stack.
//
// # Overview
//
// g3d turns a hierarchy of scene objects and a camera into GPU draw calls
// each frame. The host application owns the GPU device, the command encoder
// and the presentation surface; g3d traverses the scene, keeps the
// render-target textures and the light buffer in sync with the current
// viewport and formats, and records one render pass per draw.
//
// # Packages
//
//   - render: the per-frame pipeline (Renderer, render targets, lights, traversal, encoding)
//   - scene: reference scene objects (transform hierarchy, meshes, lights, cameras)
//   - material: a reference WGSL material compiled with naga
//
// # Quick Start
//
//	ctx := render.Context{
//	    Device:      device,
//	    Queue:       queue,
//	    ColorFormat: gputypes.TextureFormatBGRA8Unorm,
//	    DepthFormat: gputypes.TextureFormatDepth32Float,
//	    SampleCount: 4,
//	}
//	r := render.New(ctx, render.WithSortObjects(true))
//	r.Resize(800, 600)
//	r.Compile(root, camera)
//
//	// every frame
//	encoder.BeginEncoding("frame")
//	if err := r.Draw(pass, encoder, root, camera); err != nil {
//	    return err
//	}
//	cmd, _ := encoder.EndEncoding()
//
// # Logging
//
// g3d is silent by default. Call [SetLogger] to receive diagnostics from
// every sub-package.
package g3d

// Version is the current version of the module.
const Version = "0.1.0"
