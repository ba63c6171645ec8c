package sim

import "github.com/san-kum/solarsim/internal/kinematics"

// Clock reports monotonic elapsed time since the animation started.
type Clock interface {
	ElapsedSeconds() float64
}

// Renderer consumes one frame of transforms. The loop never inspects what
// it produces.
type Renderer interface {
	Render(f kinematics.Frame)
}

// Camera is updated once per frame after the kinematics are applied.
type Camera interface {
	Update()
}

type Observer interface {
	OnFrame(f kinematics.Frame)
}

// ParamChange edits the multipliers once the clock reaches At. Nil fields
// are left untouched.
type ParamChange struct {
	At            float64  `yaml:"at" json:"at"`
	RotationSpeed *float64 `yaml:"rotation_speed,omitempty" json:"rotation_speed,omitempty"`
	OrbitSpeed    *float64 `yaml:"orbit_speed,omitempty" json:"orbit_speed,omitempty"`
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	Changes  []ParamChange
}

type Result struct {
	Frames     []kinematics.Frame
	Times      []float64
	StepsTaken int
}
