// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package material provides Basic, a reference material for scene meshes.
//
// Basic draws a flat base color. With lighting enabled it reads the
// renderer's light buffer and shades with a Lambertian diffuse term for
// directional, point and spot lights. Its WGSL shader is compiled to
// SPIR-V with naga once per process.
//
// Bind group layout:
//
//	group(0) binding(0): material uniforms (base color, light count, lit flag)
//	group(0) binding(1): read-only storage array of render.LightData
//	group(1) binding(0): per-object uniforms (scene.ObjectUniformSize bytes)
package material
