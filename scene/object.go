package scene

import (
	"slices"

	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/g3d/render"
	"golang.org/x/image/math/f32"
)

// node is implemented by every type embedding Object.
type node interface {
	render.Node
	object() *Object
}

// Object is a scene node with a local transform and ordered children.
//
// The zero value is not ready for use; create objects with NewObject or
// embed one initialized with Init.
type Object struct {
	label    string
	hidden   bool
	parent   *Object
	children []render.Node

	position    f32.Vec3
	orientation linear.Quat
	scale       f32.Vec3

	world f32.Mat4
	ctx   *render.Context
}

// NewObject returns an object with the identity transform.
func NewObject(label string) *Object {
	o := &Object{}
	o.Init(label)
	return o
}

// Init resets o to the identity transform with the given label.
func (o *Object) Init(label string) {
	o.label = label
	o.orientation = linear.QuatIdentity()
	o.scale = f32.Vec3{1, 1, 1}
	o.world = linear.Identity()
}

func (o *Object) object() *Object { return o }

// Label returns the object label.
func (o *Object) Label() string { return o.label }

// SetLabel sets the object label.
func (o *Object) SetLabel(label string) { o.label = label }

// Visible reports whether the object is drawn. Hiding an object hides its
// whole subtree.
func (o *Object) Visible() bool { return !o.hidden }

// SetVisible shows or hides the object.
func (o *Object) SetVisible(visible bool) { o.hidden = !visible }

// Children returns the ordered children.
func (o *Object) Children() []render.Node { return o.children }

// Parent returns the parent object, or nil for a root.
func (o *Object) Parent() *Object { return o.parent }

// Add appends children to o. Scene objects are detached from their
// previous parent first.
func (o *Object) Add(children ...render.Node) {
	for _, c := range children {
		if n, ok := c.(node); ok {
			child := n.object()
			if child == o {
				panic("scene: object added to itself")
			}
			if child.parent != nil {
				child.parent.Remove(c)
			}
			child.parent = o
		}
		o.children = append(o.children, c)
	}
}

// Remove detaches child from o and reports whether it was a child.
func (o *Object) Remove(child render.Node) bool {
	i := slices.Index(o.children, child)
	if i < 0 {
		return false
	}
	o.children = slices.Delete(o.children, i, i+1)
	if n, ok := child.(node); ok {
		n.object().parent = nil
	}
	return true
}

// Position returns the local position.
func (o *Object) Position() f32.Vec3 { return o.position }

// SetPosition sets the local position.
func (o *Object) SetPosition(p f32.Vec3) { o.position = p }

// Translate moves the object by d in parent space.
func (o *Object) Translate(d f32.Vec3) { o.position = linear.Add(o.position, d) }

// Orientation returns the local orientation.
func (o *Object) Orientation() linear.Quat { return o.orientation }

// SetOrientation sets the local orientation.
func (o *Object) SetOrientation(q linear.Quat) { o.orientation = q.Normalize() }

// Rotate rotates the object by angle radians around axis in parent space.
func (o *Object) Rotate(axis f32.Vec3, angle float32) {
	o.orientation = linear.QuatFromAxisAngle(axis, angle).Mul(o.orientation).Normalize()
}

// Scale returns the local scale.
func (o *Object) Scale() f32.Vec3 { return o.scale }

// SetScale sets the local scale.
func (o *Object) SetScale(s f32.Vec3) { o.scale = s }

// LocalMatrix returns translate * rotate * scale.
func (o *Object) LocalMatrix() f32.Mat4 {
	return linear.Compose(o.position, o.orientation, o.scale)
}

// WorldMatrix returns the world matrix computed by the last Update.
func (o *Object) WorldMatrix() f32.Mat4 { return o.world }

// WorldPosition returns the translation of the world matrix.
func (o *Object) WorldPosition() f32.Vec3 {
	return f32.Vec3{o.world[3], o.world[7], o.world[11]}
}

// Context returns the context the object was last primed with.
func (o *Object) Context() *render.Context { return o.ctx }

// SetContext records ctx.
func (o *Object) SetContext(ctx *render.Context) { o.ctx = ctx }

// Update recomputes the world matrix from the parent's.
func (o *Object) Update() {
	local := o.LocalMatrix()
	if o.parent == nil {
		o.world = local
		return
	}
	o.world = linear.Mul(o.parent.world, local)
}

// UpdateCamera does nothing for plain objects.
func (o *Object) UpdateCamera(render.Camera, render.Viewport) {}
