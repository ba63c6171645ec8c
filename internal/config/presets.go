package config

import (
	"sort"

	"github.com/san-kum/solarsim/internal/sim"
)

func speed(v float64) *float64 { return &v }

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"legacy": {
		RotationSpeed: 4, OrbitSpeed: 0.8, PhaseRange: "legacy",
		Dt: DefaultDt, Duration: DefaultDuration, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
	},
	"frozen": {
		RotationSpeed: 0, OrbitSpeed: 0.8, PhaseRange: "wide",
		Dt: DefaultDt, Duration: DefaultDuration, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
	},
	"still": {
		RotationSpeed: 4, OrbitSpeed: 0, PhaseRange: "wide",
		Dt: DefaultDt, Duration: DefaultDuration, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
	},
	"fast": {
		RotationSpeed: 10, OrbitSpeed: 2, PhaseRange: "wide",
		Dt: DefaultDt, Duration: DefaultDuration, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
	},
	"lockstep": {
		RotationSpeed: 4, OrbitSpeed: 0.8, PhaseRange: "wide",
		Dt: DefaultDt, Duration: DefaultDuration, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
		Bodies: []BodyConfig{
			{ID: "mercury", PhaseSpeed: 1}, {ID: "venus", PhaseSpeed: 1}, {ID: "earth", PhaseSpeed: 1},
			{ID: "mars", PhaseSpeed: 1}, {ID: "jupiter", PhaseSpeed: 1}, {ID: "saturn", PhaseSpeed: 1},
			{ID: "uranus", PhaseSpeed: 1}, {ID: "neptune", PhaseSpeed: 1},
		},
	},
	"spin-down": {
		RotationSpeed: 4, OrbitSpeed: 0.8, PhaseRange: "wide",
		Dt: DefaultDt, Duration: 20, FPS: DefaultFPS, LogLevel: DefaultLogLevel, AssetsDir: DefaultAssets,
		Changes: []sim.ParamChange{
			{At: 5, RotationSpeed: speed(2)},
			{At: 10, RotationSpeed: speed(0)},
			{At: 15, OrbitSpeed: speed(0)},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	c.Changes = append([]sim.ParamChange(nil), cfg.Changes...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
