package scene

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/g3d/render"
	"golang.org/x/image/math/f32"
)

// forward is the local direction lights and cameras point to.
var forward = f32.Vec3{0, 0, -1}

// lightBase holds the state shared by all light types.
//
// Color, intensity, range and cone angles may be set from any goroutine.
// Transform setters inherited from Object are not synchronized and must be
// called on the goroutine that draws. Every change, including a change of
// the world transform seen by Update, bumps the generation so the renderer
// re-uploads the light buffer.
type lightBase struct {
	Object

	mu        sync.Mutex
	color     f32.Vec3
	intensity float32
	rng       float32

	gen       atomic.Uint64
	lastWorld f32.Mat4
}

func (l *lightBase) init(label string) {
	l.Object.Init(label)
	l.color = f32.Vec3{1, 1, 1}
	l.intensity = 1
}

// Generation returns a counter that changes with the light data.
func (l *lightBase) Generation() uint64 { return l.gen.Load() }

func (l *lightBase) set(fn func()) {
	l.mu.Lock()
	fn()
	l.mu.Unlock()
	l.gen.Add(1)
}

// SetColor sets the linear RGB color.
func (l *lightBase) SetColor(c f32.Vec3) { l.set(func() { l.color = c }) }

// Color returns the linear RGB color.
func (l *lightBase) Color() f32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

// SetIntensity sets the intensity. Negative values are clamped to zero.
func (l *lightBase) SetIntensity(i float32) { l.set(func() { l.intensity = max(0, i) }) }

// Intensity returns the intensity.
func (l *lightBase) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

// SetRange sets the falloff range. Zero or less means infinite.
// Directional lights ignore it.
func (l *lightBase) SetRange(r float32) { l.set(func() { l.rng = r }) }

// Range returns the falloff range.
func (l *lightBase) Range() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng
}

// Update recomputes the world matrix and bumps the generation when the
// light moved.
func (l *lightBase) Update() {
	l.Object.Update()
	if l.world != l.lastWorld {
		l.lastWorld = l.world
		l.gen.Add(1)
	}
}

// data fills the fields common to every light type. Callers hold mu.
func (l *lightBase) data(typ render.LightType) render.LightData {
	var invRange float32
	if l.rng > 0 {
		invRange = 1 / l.rng
	}
	dir := linear.Normalize(linear.TransformDirection(l.world, forward))
	return render.LightData{
		Color:     linear.Extend(l.color, l.intensity),
		Position:  linear.Extend(l.WorldPosition(), float32(typ)),
		Direction: linear.Extend(dir, invRange),
	}
}

// PointLight emits in all directions from its world position.
type PointLight struct {
	lightBase
}

// NewPointLight returns a white point light of intensity 1 and infinite
// range.
func NewPointLight(label string) *PointLight {
	l := &PointLight{}
	l.init(label)
	return l
}

// LightData returns the packed light record.
func (l *PointLight) LightData() render.LightData {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.data(render.LightPoint)
	d.Direction = f32.Vec4{0, 0, 0, d.Direction[3]}
	return d
}

// DirectionalLight emits parallel rays along its world -Z axis.
type DirectionalLight struct {
	lightBase
}

// NewDirectionalLight returns a white directional light of intensity 1
// pointing down -Z.
func NewDirectionalLight(label string) *DirectionalLight {
	l := &DirectionalLight{}
	l.init(label)
	return l
}

// LightData returns the packed light record.
func (l *DirectionalLight) LightData() render.LightData {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.data(render.LightDirectional)
	d.Position = f32.Vec4{0, 0, 0, float32(render.LightDirectional)}
	d.Direction[3] = 0
	return d
}

// SpotLight emits a cone along its world -Z axis from its world position.
type SpotLight struct {
	lightBase

	coneScale  float32
	coneOffset float32
	cosOuter   float32
}

// NewSpotLight returns a white spot light of intensity 1 with inner and
// outer cone angles of 0 and pi/4.
func NewSpotLight(label string) *SpotLight {
	l := &SpotLight{}
	l.init(label)
	l.SetConeAngles(0, math.Pi/4)
	return l
}

// SetConeAngles sets the inner and outer cone angles in radians. Angles
// are clamped to [0, pi/2] and the inner angle is kept below the outer
// one.
func (l *SpotLight) SetConeAngles(inner, outer float32) {
	i := max(0, min(float64(inner), math.Pi/2-1e-6))
	o := max(i+1e-6, min(float64(outer), math.Pi/2))
	cosi, coso := math.Cos(i), math.Cos(o)
	scale := 1 / (cosi - coso)
	l.set(func() {
		l.coneScale = float32(scale)
		l.coneOffset = float32(-coso * scale)
		l.cosOuter = float32(coso)
	})
}

// ConeAngles returns the clamped inner and outer cone angles.
func (l *SpotLight) ConeAngles() (inner, outer float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cosi := 1/float64(l.coneScale) + float64(l.cosOuter)
	return float32(math.Acos(min(cosi, 1))), float32(math.Acos(float64(l.cosOuter)))
}

// LightData returns the packed light record.
func (l *SpotLight) LightData() render.LightData {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.data(render.LightSpot)
	d.Spot = f32.Vec4{l.coneScale, l.coneOffset, 0, 0}
	return d
}
