package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f32"
)

func TestSpringConverges(t *testing.T) {
	s := NewSpring(60, 6, 1, 0)
	assert.True(t, s.Settled(1e-6))

	s.SetTarget(10)
	assert.Equal(t, float32(10), s.Target())
	assert.False(t, s.Settled(1e-3))

	for range 600 {
		s.Update()
	}
	assert.InDelta(t, 10, s.Value(), 1e-3)
	assert.True(t, s.Settled(1e-3))
}

func TestSpringUnderdampedOvershoots(t *testing.T) {
	s := NewSpring(60, 8, 0.2, 0)
	s.SetTarget(1)
	var peak float32
	for range 120 {
		peak = max(peak, s.Update())
	}
	assert.Greater(t, peak, float32(1))
}

func TestSpring3(t *testing.T) {
	s := NewSpring3(60, 6, 1, f32.Vec3{1, 2, 3})
	assert.Equal(t, f32.Vec3{1, 2, 3}, s.Value())

	s.SetTarget(f32.Vec3{-1, 0, 5})
	for range 600 {
		s.Update()
	}
	assertVec3(t, f32.Vec3{-1, 0, 5}, s.Value())
	assert.True(t, s.Settled(1e-3))
}

func TestProjectile(t *testing.T) {
	p := NewProjectile(10, f32.Vec3{0, 10, 0}, f32.Vec3{1, 0, 0}, Gravity)
	pos := p.Update()
	assertVec3(t, f32.Vec3{0.1, 10, 0}, pos)

	pos = p.Update()
	assert.Less(t, pos[1], float32(10))
	assert.InDelta(t, -1.962, p.Velocity()[1], 1e-4)
}
