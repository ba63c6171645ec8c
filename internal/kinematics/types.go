package kinematics

import (
	"fmt"
	"math"
)

type BodyID string

const (
	Sun     BodyID = "sun"
	Mercury BodyID = "mercury"
	Venus   BodyID = "venus"
	Earth   BodyID = "earth"
	Mars    BodyID = "mars"
	Jupiter BodyID = "jupiter"
	Saturn  BodyID = "saturn"
	Uranus  BodyID = "uranus"
	Neptune BodyID = "neptune"
)

// AxisRates scales spin about the y and x axes with elapsed time.
type AxisRates struct {
	Y float64 `yaml:"y" json:"y"`
	X float64 `yaml:"x" json:"x"`
}

// Body holds the fixed attributes of one celestial body.
type Body struct {
	ID BodyID
	// OrbitRadius is signed: the body sits at (OrbitRadius, 0, 0) at phase 0.
	OrbitRadius float64
	Rates       AxisRates
	PhaseSpeed  float64
	Size        float64
}

// Stationary reports whether the body is pinned at the origin.
func (b Body) Stationary() bool { return b.OrbitRadius == 0 }

func (b Body) IsValid() bool {
	if b.ID == "" {
		return false
	}
	for _, v := range []float64{b.OrbitRadius, b.Rates.Y, b.Rates.X, b.PhaseSpeed, b.Size} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Params is the read-only view of the speed multipliers for one frame.
type Params struct {
	RotationSpeed float64 `json:"rotation_speed"`
	OrbitSpeed    float64 `json:"orbit_speed"`
}

type Orientation struct {
	Y, X float64
}

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Transform is the pose of one body for one frame.
type Transform struct {
	ID       BodyID
	Rotation Orientation
	Position Vec3
}

func (tr Transform) String() string {
	return fmt.Sprintf("%s rot=(%.3f, %.3f) pos=(%.3f, %.3f, %.3f)",
		tr.ID, tr.Rotation.Y, tr.Rotation.X, tr.Position.X, tr.Position.Y, tr.Position.Z)
}

// Frame is the output of one advance: a transform per body, in body order.
type Frame struct {
	Time       float64
	Params     Params
	Transforms []Transform
}

// Lookup returns the transform for id.
func (f Frame) Lookup(id BodyID) (Transform, bool) {
	for _, tr := range f.Transforms {
		if tr.ID == id {
			return tr, true
		}
	}
	return Transform{}, false
}

// ByID returns the frame's transforms keyed by body id.
func (f Frame) ByID() map[BodyID]Transform {
	m := make(map[BodyID]Transform, len(f.Transforms))
	for _, tr := range f.Transforms {
		m[tr.ID] = tr
	}
	return m
}
