package scene

import (
	"math"

	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/g3d/render"
	"golang.org/x/image/math/f32"
)

// PerspectiveCamera looks down its world -Z axis.
//
// It implements render.Camera and render.ViewportCamera, and may also be
// added to the scene so it follows a parent. The view matrix is the
// inverse of the world matrix, so cameras must not be scaled.
type PerspectiveCamera struct {
	Object

	// FovY is the vertical field of view in radians.
	FovY float32
	// Aspect is width / height. When AutoAspect is set it follows the
	// renderer viewport.
	Aspect     float32
	AutoAspect bool
	Near, Far  float32

	reversed bool
	view     f32.Mat4
	proj     f32.Mat4
}

// NewPerspectiveCamera returns a camera with a 60 degree field of view,
// near 0.1, far 100 and an aspect ratio following the viewport.
func NewPerspectiveCamera(label string) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FovY:       math.Pi / 3,
		Aspect:     1,
		AutoAspect: true,
		Near:       0.1,
		Far:        100,
	}
	c.Init(label)
	c.view = linear.Identity()
	c.proj = linear.Identity()
	return c
}

// Update recomputes the view and projection matrices.
func (c *PerspectiveCamera) Update() {
	c.Object.Update()
	c.view = linear.InverseRigid(c.world)
	c.updateProjection()
}

func (c *PerspectiveCamera) updateProjection() {
	if c.reversed {
		c.proj = linear.Perspective(c.FovY, c.Aspect, c.Far, c.Near)
	} else {
		c.proj = linear.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	}
}

// UpdateCamera adopts the viewport aspect ratio when AutoAspect is set,
// and a reversed depth range when the viewport's near depth is greater
// than its far depth.
func (c *PerspectiveCamera) UpdateCamera(_ render.Camera, vp render.Viewport) {
	c.SetViewport(vp)
}

// SetViewport applies vp as UpdateCamera does and rebuilds the projection
// when the aspect ratio or depth direction changed. The renderer calls it
// before Update every frame, so cameras outside the scene follow the
// viewport too.
func (c *PerspectiveCamera) SetViewport(vp render.Viewport) {
	aspect, reversed := c.Aspect, vp.ZNear > vp.ZFar
	if c.AutoAspect && vp.Width > 0 && vp.Height > 0 {
		aspect = vp.Width / vp.Height
	}
	if aspect == c.Aspect && reversed == c.reversed {
		return
	}
	c.Aspect, c.reversed = aspect, reversed
	c.updateProjection()
}

// ViewMatrix returns the world-to-view matrix.
func (c *PerspectiveCamera) ViewMatrix() f32.Mat4 { return c.view }

// ProjectionMatrix returns the view-to-clip matrix.
func (c *PerspectiveCamera) ProjectionMatrix() f32.Mat4 { return c.proj }

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() f32.Mat4 {
	return linear.Mul(c.proj, c.view)
}

// Forward returns the world direction the camera looks at.
func (c *PerspectiveCamera) Forward() f32.Vec3 {
	return linear.Normalize(linear.TransformDirection(c.world, forward))
}
