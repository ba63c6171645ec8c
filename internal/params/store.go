// Package params holds the live-tunable animation parameters.
//
// A [Store] is written by the control panel and read once per frame through
// [Store.Params]. Both happen on the UI goroutine, so the store is not
// synchronized.
package params

import (
	"math"

	"github.com/san-kum/solarsim/internal/kinematics"
)

const (
	MinRotationSpeed     = 0.0
	MaxRotationSpeed     = 10.0
	DefaultRotationSpeed = 4.0

	MinOrbitSpeed     = 0.0
	MaxOrbitSpeed     = 2.0
	DefaultOrbitSpeed = 0.8

	// Step is the control panel's finest increment.
	Step = 0.01
)

// Control names a tunable multiplier.
type Control int

const (
	RotationSpeed Control = iota
	OrbitSpeed
)

func (c Control) String() string {
	switch c {
	case RotationSpeed:
		return "rotation"
	case OrbitSpeed:
		return "orbit"
	default:
		return "unknown"
	}
}

// Bounds returns the inclusive range of c.
func (c Control) Bounds() (lo, hi float64) {
	if c == OrbitSpeed {
		return MinOrbitSpeed, MaxOrbitSpeed
	}
	return MinRotationSpeed, MaxRotationSpeed
}

// CameraControl is the camera collaborator reset by the control panel.
type CameraControl interface {
	Reset()
}

type Store struct {
	rotationSpeed float64
	orbitSpeed    float64
	phaseSpeeds   map[kinematics.BodyID]float64
	camera        CameraControl
}

// New returns a store with the default multipliers.
func New(camera CameraControl) *Store {
	return &Store{
		rotationSpeed: DefaultRotationSpeed,
		orbitSpeed:    DefaultOrbitSpeed,
		phaseSpeeds:   make(map[kinematics.BodyID]float64),
		camera:        camera,
	}
}

// SetCamera attaches the camera collaborator after construction.
func (s *Store) SetCamera(c CameraControl) { s.camera = c }

func (s *Store) RotationSpeed() float64 { return s.rotationSpeed }
func (s *Store) OrbitSpeed() float64    { return s.orbitSpeed }

// SetRotationSpeed clamps v to [0, 10] and returns the stored value.
// NaN leaves the current value in place.
func (s *Store) SetRotationSpeed(v float64) float64 {
	s.rotationSpeed = clamp(v, MinRotationSpeed, MaxRotationSpeed, s.rotationSpeed)
	return s.rotationSpeed
}

// SetOrbitSpeed clamps v to [0, 2] and returns the stored value.
func (s *Store) SetOrbitSpeed(v float64) float64 {
	s.orbitSpeed = clamp(v, MinOrbitSpeed, MaxOrbitSpeed, s.orbitSpeed)
	return s.orbitSpeed
}

func (s *Store) Get(c Control) float64 {
	if c == OrbitSpeed {
		return s.orbitSpeed
	}
	return s.rotationSpeed
}

func (s *Store) Set(c Control, v float64) float64 {
	if c == OrbitSpeed {
		return s.SetOrbitSpeed(v)
	}
	return s.SetRotationSpeed(v)
}

// Nudge adds delta to c, snapping to the Step grid.
func (s *Store) Nudge(c Control, delta float64) float64 {
	v := math.Round((s.Get(c)+delta)/Step) * Step
	return s.Set(c, v)
}

// ResetCamera delegates to the camera collaborator.
func (s *Store) ResetCamera() {
	if s.camera != nil {
		s.camera.Reset()
	}
}

// Params snapshots the multipliers for one frame.
func (s *Store) Params() kinematics.Params {
	return kinematics.Params{
		RotationSpeed: s.rotationSpeed,
		OrbitSpeed:    s.orbitSpeed,
	}
}

// PhaseSpeeds returns a copy of the per-body phase speed table.
func (s *Store) PhaseSpeeds() map[kinematics.BodyID]float64 {
	out := make(map[kinematics.BodyID]float64, len(s.phaseSpeeds))
	for k, v := range s.phaseSpeeds {
		out[k] = v
	}
	return out
}

// InitPhaseSpeeds assigns phase speeds to bodies and records them. It is
// meant to be called once at startup.
func (s *Store) InitPhaseSpeeds(bodies []kinematics.Body, gen *PhaseGenerator) []kinematics.Body {
	out := AssignPhaseSpeeds(bodies, gen)
	for _, b := range out {
		if !b.Stationary() {
			s.phaseSpeeds[b.ID] = b.PhaseSpeed
		}
	}
	return out
}

func clamp(v, lo, hi, fallback float64) float64 {
	switch {
	case math.IsNaN(v):
		return fallback
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
