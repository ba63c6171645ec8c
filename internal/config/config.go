package config

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
	"github.com/san-kum/solarsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 30.0
	DefaultFPS      = 60
	DefaultLogLevel = "info"
	DefaultAssets   = "static"
)

type Config struct {
	RotationSpeed float64           `yaml:"rotation_speed"`
	OrbitSpeed    float64           `yaml:"orbit_speed"`
	Seed          int64             `yaml:"seed"`
	PhaseRange    string            `yaml:"phase_range"`
	Dt            float64           `yaml:"dt"`
	Duration      float64           `yaml:"duration"`
	FPS           int               `yaml:"fps"`
	LogLevel      string            `yaml:"log_level"`
	LogFile       string            `yaml:"log_file"`
	AssetsDir     string            `yaml:"assets_dir"`
	Bodies        []BodyConfig      `yaml:"bodies"`
	Changes       []sim.ParamChange `yaml:"changes"`
}

// BodyConfig overrides one entry of the default body table. Zero fields keep
// the default; a zero phase speed is drawn at startup.
type BodyConfig struct {
	ID          string                `yaml:"id"`
	OrbitRadius *float64              `yaml:"orbit_radius,omitempty"`
	Rates       *kinematics.AxisRates `yaml:"rates,omitempty"`
	PhaseSpeed  float64               `yaml:"phase_speed,omitempty"`
	Size        float64               `yaml:"size,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		RotationSpeed: params.DefaultRotationSpeed,
		OrbitSpeed:    params.DefaultOrbitSpeed,
		PhaseRange:    "wide",
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		LogLevel:      DefaultLogLevel,
		AssetsDir:     DefaultAssets,
	}
}

func Load(path string) (*Config, error) {
	return LoadWithBase(path, DefaultConfig())
}

// LoadWithBase reads path over base: keys present in the file replace the
// base values, the rest are kept. base is modified and returned.
func LoadWithBase(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges. Multipliers outside their bounds are rejected here
// rather than clamped so that a typo in a file is reported.
func (c *Config) Validate() error {
	if err := inRange("rotation_speed", c.RotationSpeed, params.MinRotationSpeed, params.MaxRotationSpeed); err != nil {
		return err
	}
	if err := inRange("orbit_speed", c.OrbitSpeed, params.MinOrbitSpeed, params.MaxOrbitSpeed); err != nil {
		return err
	}
	if _, err := params.ParsePhaseRange(c.PhaseRange); err != nil {
		return err
	}
	if err := sim.CheckTiming(c.Dt, c.Duration); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", c.FPS, kinematics.ErrParameterBounds)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, kinematics.ErrParameterBounds)
	}
	for _, b := range c.Bodies {
		if err := nonNegative("bodies."+b.ID+".phase_speed", b.PhaseSpeed); err != nil {
			return err
		}
		if err := nonNegative("bodies."+b.ID+".size", b.Size); err != nil {
			return err
		}
	}
	for _, ch := range c.Changes {
		if ch.RotationSpeed != nil {
			if err := inRange("changes.rotation_speed", *ch.RotationSpeed, params.MinRotationSpeed, params.MaxRotationSpeed); err != nil {
				return err
			}
		}
		if ch.OrbitSpeed != nil {
			if err := inRange("changes.orbit_speed", *ch.OrbitSpeed, params.MinOrbitSpeed, params.MaxOrbitSpeed); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildBodies applies the body overrides to the default table.
func (c *Config) BuildBodies() ([]kinematics.Body, error) {
	bodies := kinematics.DefaultBodies()
	index := make(map[kinematics.BodyID]int, len(bodies))
	for i, b := range bodies {
		index[b.ID] = i
	}

	for _, bc := range c.Bodies {
		i, ok := index[kinematics.BodyID(bc.ID)]
		if !ok {
			return nil, fmt.Errorf("bodies: %q: %w", bc.ID, kinematics.ErrUnknownBody)
		}
		b := &bodies[i]
		if bc.OrbitRadius != nil {
			b.OrbitRadius = *bc.OrbitRadius
		}
		if bc.Rates != nil {
			b.Rates = *bc.Rates
		}
		if bc.PhaseSpeed != 0 {
			b.PhaseSpeed = bc.PhaseSpeed
		}
		if bc.Size != 0 {
			b.Size = bc.Size
		}
	}
	return bodies, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:       c.Dt,
		Duration: c.Duration,
		Seed:     c.Seed,
		Changes:  c.Changes,
	}
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s=%v must be finite and non-negative: %w", name, v, kinematics.ErrParameterBounds)
	}
	return nil
}

func inRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%s=%v outside [%v, %v]: %w", name, v, lo, hi, kinematics.ErrParameterBounds)
	}
	return nil
}
