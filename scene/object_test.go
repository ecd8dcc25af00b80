package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

func assertVec3(t *testing.T, want, got f32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestObjectDefaults(t *testing.T) {
	o := NewObject("root")
	assert.Equal(t, "root", o.Label())
	assert.True(t, o.Visible())
	assert.Nil(t, o.Parent())
	assert.Equal(t, f32.Vec3{1, 1, 1}, o.Scale())
	o.Update()
	assertVec3(t, f32.Vec3{}, o.WorldPosition())
}

func TestObjectWorldTransform(t *testing.T) {
	parent := NewObject("parent")
	parent.SetPosition(f32.Vec3{1, 0, 0})
	parent.Rotate(f32.Vec3{0, 1, 0}, math.Pi/2)

	child := NewObject("child")
	child.SetPosition(f32.Vec3{0, 0, -2})
	parent.Add(child)

	parent.Update()
	child.Update()

	// A quarter turn around +Y maps -Z onto -X.
	assertVec3(t, f32.Vec3{-1, 0, 0}, child.WorldPosition())
}

func TestObjectScaleInherited(t *testing.T) {
	parent := NewObject("parent")
	parent.SetScale(f32.Vec3{2, 2, 2})
	child := NewObject("child")
	child.SetPosition(f32.Vec3{1, 1, 1})
	parent.Add(child)

	parent.Update()
	child.Update()
	assertVec3(t, f32.Vec3{2, 2, 2}, child.WorldPosition())
}

func TestObjectReparent(t *testing.T) {
	a, b := NewObject("a"), NewObject("b")
	child := NewObject("child")

	a.Add(child)
	require.Same(t, a, child.Parent())

	b.Add(child)
	assert.Same(t, b, child.Parent())
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)

	assert.True(t, b.Remove(child))
	assert.False(t, b.Remove(child))
	assert.Nil(t, child.Parent())
}

func TestObjectAddSelfPanics(t *testing.T) {
	o := NewObject("o")
	assert.Panics(t, func() { o.Add(o) })
}

func TestObjectVisibility(t *testing.T) {
	o := NewObject("o")
	o.SetVisible(false)
	assert.False(t, o.Visible())
	o.SetVisible(true)
	assert.True(t, o.Visible())
}

func TestObjectTranslate(t *testing.T) {
	o := NewObject("o")
	o.Translate(f32.Vec3{1, 2, 3})
	o.Translate(f32.Vec3{1, 0, 0})
	assert.Equal(t, f32.Vec3{2, 2, 3}, o.Position())
}
