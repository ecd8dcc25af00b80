package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"golang.org/x/image/math/f32"
)

// Spring is a damped spring animating a scalar, such as a light
// intensity, one frame at a time.
type Spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewSpring returns a spring at rest at start, stepping at fps frames per
// second. frequency is the angular frequency; damping below 1 overshoots,
// 1 is critically damped and above 1 is sluggish.
func NewSpring(fps int, frequency, damping float64, start float32) *Spring {
	return &Spring{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    float64(start),
		target: float64(start),
	}
}

// SetTarget sets the equilibrium the spring moves towards.
func (s *Spring) SetTarget(target float32) { s.target = float64(target) }

// Target returns the equilibrium.
func (s *Spring) Target() float32 { return float32(s.target) }

// Update advances one frame and returns the new value.
func (s *Spring) Update() float32 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	return float32(s.pos)
}

// Value returns the current value.
func (s *Spring) Value() float32 { return float32(s.pos) }

// Settled reports whether the spring is within eps of its target and
// nearly at rest.
func (s *Spring) Settled(eps float32) bool {
	e := float64(eps)
	return math.Abs(s.pos-s.target) <= e && math.Abs(s.vel) <= e
}

// Spring3 animates a position with three independent springs.
type Spring3 struct {
	axes [3]Spring
}

// NewSpring3 returns a spring at rest at start. See NewSpring.
func NewSpring3(fps int, frequency, damping float64, start f32.Vec3) *Spring3 {
	s := &Spring3{}
	for i := range s.axes {
		s.axes[i] = *NewSpring(fps, frequency, damping, start[i])
	}
	return s
}

// SetTarget sets the equilibrium position.
func (s *Spring3) SetTarget(target f32.Vec3) {
	for i := range s.axes {
		s.axes[i].SetTarget(target[i])
	}
}

// Update advances one frame and returns the new position.
func (s *Spring3) Update() f32.Vec3 {
	var p f32.Vec3
	for i := range s.axes {
		p[i] = s.axes[i].Update()
	}
	return p
}

// Value returns the current position.
func (s *Spring3) Value() f32.Vec3 {
	return f32.Vec3{s.axes[0].Value(), s.axes[1].Value(), s.axes[2].Value()}
}

// Settled reports whether every axis has settled.
func (s *Spring3) Settled(eps float32) bool {
	for i := range s.axes {
		if !s.axes[i].Settled(eps) {
			return false
		}
	}
	return true
}

// Projectile moves a point under constant acceleration, one frame at a
// time.
type Projectile struct {
	p *harmonica.Projectile
}

// Gravity is the standard downward acceleration along -Y.
var Gravity = f32.Vec3{0, -9.81, 0}

// NewProjectile returns a projectile at pos with velocity vel and
// acceleration acc, stepping at fps frames per second.
func NewProjectile(fps int, pos, vel, acc f32.Vec3) *Projectile {
	return &Projectile{p: harmonica.NewProjectile(
		harmonica.FPS(fps),
		harmonica.Point{X: float64(pos[0]), Y: float64(pos[1]), Z: float64(pos[2])},
		harmonica.Vector{X: float64(vel[0]), Y: float64(vel[1]), Z: float64(vel[2])},
		harmonica.Vector{X: float64(acc[0]), Y: float64(acc[1]), Z: float64(acc[2])},
	)}
}

// Update advances one frame and returns the new position.
func (p *Projectile) Update() f32.Vec3 {
	pt := p.p.Update()
	return f32.Vec3{float32(pt.X), float32(pt.Y), float32(pt.Z)}
}

// Velocity returns the current velocity.
func (p *Projectile) Velocity() f32.Vec3 {
	v := p.p.Velocity()
	return f32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
