package viz

import (
	"math"

	"github.com/san-kum/solarsim/internal/kinematics"
)

type Vec3 struct {
	X, Y, Z float64
}

func fromWorld(v kinematics.Vec3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

const (
	DefaultFOV           = 75.0
	DefaultNear          = 0.1
	DefaultFar           = 100.0
	DefaultDampingFactor = 0.05

	minPolar    = 1e-3
	minDistance = 1.0
	maxDistance = 60.0
	settleEps   = 1e-6
)

// DefaultCameraPosition is the starting eye point.
var DefaultCameraPosition = Vec3{-4, 4, 7}

type spherical struct {
	radius, azimuth, polar float64
}

func toSpherical(v Vec3) spherical {
	r := v.Length()
	if r == 0 {
		return spherical{radius: minDistance, polar: math.Pi / 2}
	}
	return spherical{
		radius:  r,
		azimuth: math.Atan2(v.X, v.Z),
		polar:   math.Acos(clampF(v.Y/r, -1, 1)),
	}
}

func (s spherical) vec() Vec3 {
	sp := math.Sin(s.polar)
	return Vec3{
		X: s.radius * sp * math.Sin(s.azimuth),
		Y: s.radius * math.Cos(s.polar),
		Z: s.radius * sp * math.Cos(s.azimuth),
	}
}

// OrbitCamera is a perspective camera orbiting Target. Rotate and Zoom
// queue input; Update applies it, with damping when enabled.
type OrbitCamera struct {
	Target        Vec3
	FOV           float64 // vertical, degrees
	Near, Far     float64
	Aspect        float64
	EnableDamping bool
	DampingFactor float64

	sph        spherical
	dAzimuth   float64
	dPolar     float64
	zoomFactor float64

	initial       spherical
	initialTarget Vec3
}

func NewOrbitCamera(position, target Vec3) *OrbitCamera {
	s := toSpherical(position.Sub(target))
	return &OrbitCamera{
		Target:        target,
		FOV:           DefaultFOV,
		Near:          DefaultNear,
		Far:           DefaultFar,
		Aspect:        1,
		EnableDamping: true,
		DampingFactor: DefaultDampingFactor,
		sph:           s,
		zoomFactor:    1,
		initial:       s,
		initialTarget: target,
	}
}

func (c *OrbitCamera) Position() Vec3    { return c.Target.Add(c.sph.vec()) }
func (c *OrbitCamera) Distance() float64 { return c.sph.radius }

// Rotate queues an orbit by the given azimuth and polar deltas in radians.
func (c *OrbitCamera) Rotate(dAzimuth, dPolar float64) {
	c.dAzimuth += dAzimuth
	c.dPolar += dPolar
}

// Zoom queues a dolly: factors below 1 move closer.
func (c *OrbitCamera) Zoom(factor float64) {
	if factor > 0 {
		c.zoomFactor *= factor
	}
}

func (c *OrbitCamera) ZoomIn()  { c.Zoom(1 / 1.2) }
func (c *OrbitCamera) ZoomOut() { c.Zoom(1.2) }

func (c *OrbitCamera) SetAspect(a float64) {
	if a > 0 && !math.IsInf(a, 0) {
		c.Aspect = a
	}
}

// Update applies queued input. With damping only a fraction of the queued
// motion lands per call and the remainder decays.
func (c *OrbitCamera) Update() {
	k := 1.0
	if c.EnableDamping {
		k = c.DampingFactor
	}

	c.sph.azimuth += c.dAzimuth * k
	c.sph.polar = clampF(c.sph.polar+c.dPolar*k, minPolar, math.Pi-minPolar)
	c.sph.radius = clampF(c.sph.radius*math.Pow(c.zoomFactor, k), minDistance, maxDistance)

	if c.EnableDamping {
		c.dAzimuth *= 1 - k
		c.dPolar *= 1 - k
		c.zoomFactor = math.Pow(c.zoomFactor, 1-k)
	} else {
		c.dAzimuth, c.dPolar, c.zoomFactor = 0, 0, 1
	}
	if math.Abs(c.dAzimuth) < settleEps {
		c.dAzimuth = 0
	}
	if math.Abs(c.dPolar) < settleEps {
		c.dPolar = 0
	}
	if math.Abs(c.zoomFactor-1) < settleEps {
		c.zoomFactor = 1
	}
}

// Reset returns to the pose the camera was created with and drops queued
// input.
func (c *OrbitCamera) Reset() {
	c.sph = c.initial
	c.Target = c.initialTarget
	c.dAzimuth, c.dPolar, c.zoomFactor = 0, 0, 1
}

func (c *OrbitCamera) basis() (right, up, forward Vec3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(Vec3{0, 1, 0}).Normalize()
	up = right.Cross(forward)
	return
}

func (c *OrbitCamera) focal() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

// Project maps a world point onto a w x h pixel plane. It returns pixel
// coordinates, view depth and whether the point is inside the frustum.
func (c *OrbitCamera) Project(p Vec3, w, h int) (int, int, float64, bool) {
	right, up, forward := c.basis()
	rel := p.Sub(c.Position())
	depth := rel.Dot(forward)
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}
	f := c.focal()
	ndcX := rel.Dot(right) * f / (depth * c.Aspect)
	ndcY := rel.Dot(up) * f / depth
	sx := int(math.Round((ndcX + 1) / 2 * float64(w)))
	sy := int(math.Round((1 - ndcY) / 2 * float64(h)))
	return sx, sy, depth, sx >= 0 && sx < w && sy >= 0 && sy < h
}

// ScreenRadius converts a world radius at depth into pixels on an h-pixel
// tall plane.
func (c *OrbitCamera) ScreenRadius(radius, depth float64, h int) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * c.focal() / depth * float64(h) / 2
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
