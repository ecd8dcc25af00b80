// Package scene provides reference scene objects for the render package.
//
// Objects form a tree through [Object.Add]. Every object carries a local
// transform (position, orientation, scale); its world matrix is the
// parent's world matrix times the local matrix and is recomputed by the
// renderer's traversal each frame, parents before children.
//
// The package provides:
//   - [Object]: a plain transform node, useful as a group
//   - [Mesh]: a [Geometry] drawn with a [Material]
//   - [PointLight], [DirectionalLight], [SpotLight]: lights for lit materials
//   - [PerspectiveCamera]: a render.Camera that can live in the tree
//   - [Spring], [Spring3]: damped springs for animating values between frames
package scene
