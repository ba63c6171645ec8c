package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
)

// Recorder runs the frame loop headless at a fixed step and keeps every frame.
type Recorder struct {
	system    *kinematics.System
	store     *params.Store
	observers []Observer
	log       zerolog.Logger
}

func NewRecorder(system *kinematics.System, store *params.Store) *Recorder {
	return &Recorder{
		system:    system,
		store:     store,
		observers: make([]Observer, 0),
		log:       zerolog.Nop(),
	}
}

func (r *Recorder) AddObserver(o Observer)       { r.observers = append(r.observers, o) }
func (r *Recorder) SetLogger(log zerolog.Logger) { r.log = log }

// Record steps t = 0, Dt, 2*Dt, ... up to Duration. Scheduled changes are
// written to the store before the first frame whose time reaches them.
func (r *Recorder) Record(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Frames: make([]kinematics.Frame, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	changes := make([]ParamChange, len(cfg.Changes))
	copy(changes, cfg.Changes)
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].At < changes[j].At })

	clock := &ManualClock{}
	loop := NewLoop(r.system, r.store, clock, nil, nil)
	loop.SetLogger(r.log)
	for _, o := range r.observers {
		loop.AddObserver(o)
	}

	next := 0
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		clock.Set(t)
		for next < len(changes) && changes[next].At <= t {
			r.apply(changes[next])
			next++
		}

		f := loop.Tick()
		result.Frames = append(result.Frames, f)
		result.Times = append(result.Times, t)
		if i > 0 {
			result.StepsTaken++
		}
	}

	return result, nil
}

func (r *Recorder) apply(c ParamChange) {
	if c.RotationSpeed != nil {
		r.store.SetRotationSpeed(*c.RotationSpeed)
	}
	if c.OrbitSpeed != nil {
		r.store.SetOrbitSpeed(*c.OrbitSpeed)
	}
	r.log.Debug().Float64("at", c.At).Interface("params", r.store.Params()).Msg("scheduled change applied")
}

// MaxSteps caps the number of frames a single recording may allocate.
const MaxSteps = 1_000_000

func validateConfig(cfg Config) error {
	if !positiveFinite(cfg.Dt) {
		return fmt.Errorf("dt must be positive and finite, got %f: %w", cfg.Dt, kinematics.ErrParameterBounds)
	}
	if !positiveFinite(cfg.Duration) {
		return fmt.Errorf("duration must be positive and finite, got %f: %w", cfg.Duration, kinematics.ErrParameterBounds)
	}
	if n := cfg.Duration / cfg.Dt; n > MaxSteps {
		return fmt.Errorf("duration/dt gives %.0f steps, limit %d: %w", n, MaxSteps, kinematics.ErrParameterBounds)
	}
	for _, c := range cfg.Changes {
		if c.At < 0 || math.IsNaN(c.At) {
			return fmt.Errorf("change at t=%f: %w", c.At, kinematics.ErrParameterBounds)
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// CheckTiming reports whether dt and duration describe a recording that
// Record would accept.
func CheckTiming(dt, duration float64) error {
	return validateConfig(Config{Dt: dt, Duration: duration})
}
