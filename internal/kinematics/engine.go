package kinematics

import "math"

// Rotation returns the body's absolute spin angles at time t.
func Rotation(b Body, t float64, p Params) Orientation {
	return Orientation{
		Y: b.Rates.Y * t * p.RotationSpeed,
		X: b.Rates.X * t * p.RotationSpeed,
	}
}

// OrbitAngle returns the body's angular position on its orbit at time t.
func OrbitAngle(b Body, t float64, p Params) float64 {
	phaseTime := t * b.PhaseSpeed
	return phaseTime * p.OrbitSpeed
}

// OrbitPosition places the body on a circle of radius OrbitRadius about the
// origin in the x-z plane.
func OrbitPosition(b Body, t float64, p Params) Vec3 {
	if b.Stationary() {
		return Vec3{}
	}
	sin, cos := math.Sincos(OrbitAngle(b, t, p))
	return Vec3{
		X: cos * b.OrbitRadius,
		Z: sin * b.OrbitRadius,
	}
}

// Pose computes the full transform of one body.
func Pose(b Body, t float64, p Params) Transform {
	return Transform{
		ID:       b.ID,
		Rotation: Rotation(b, t, p),
		Position: OrbitPosition(b, t, p),
	}
}

// Advance computes one frame for bodies, preserving their order.
func Advance(bodies []Body, t float64, p Params) Frame {
	f := Frame{
		Time:       t,
		Params:     p,
		Transforms: make([]Transform, len(bodies)),
	}
	for i, b := range bodies {
		f.Transforms[i] = Pose(b, t, p)
	}
	return f
}
