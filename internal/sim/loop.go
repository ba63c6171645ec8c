package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
)

// Loop runs one frame per Tick: read the clock, advance every body under the
// store's current multipliers, hand the frame to the renderer, then update
// the camera. It has no notion of when it is invoked.
type Loop struct {
	system    *kinematics.System
	store     *params.Store
	clock     Clock
	renderer  Renderer
	camera    Camera
	observers []Observer
	stats     *Stats
	log       zerolog.Logger
	last      kinematics.Frame
	ticked    bool
}

// NewLoop wires the collaborators. renderer and camera may be nil.
func NewLoop(system *kinematics.System, store *params.Store, clock Clock, renderer Renderer, camera Camera) *Loop {
	return &Loop{
		system:    system,
		store:     store,
		clock:     clock,
		renderer:  renderer,
		camera:    camera,
		observers: make([]Observer, 0),
		stats:     NewStats(),
		log:       zerolog.Nop(),
	}
}

func (l *Loop) AddObserver(o Observer)       { l.observers = append(l.observers, o) }
func (l *Loop) SetLogger(log zerolog.Logger) { l.log = log }
func (l *Loop) Stats() *Stats                { return l.stats }
func (l *Loop) Last() kinematics.Frame       { return l.last }
func (l *Loop) System() *kinematics.System   { return l.system }

// Tick computes, renders and returns the current frame.
func (l *Loop) Tick() kinematics.Frame {
	l.stats.Begin()

	t := l.clock.ElapsedSeconds()
	p := l.store.Params()
	if l.ticked && p != l.last.Params {
		l.log.Debug().
			Float64("t", t).
			Float64("rotation_speed", p.RotationSpeed).
			Float64("orbit_speed", p.OrbitSpeed).
			Msg("parameters changed")
	}

	f := l.system.Advance(t, p)

	if l.renderer != nil {
		l.renderer.Render(f)
	}
	if l.camera != nil {
		l.camera.Update()
	}
	for _, o := range l.observers {
		o.OnFrame(f)
	}

	l.last = f
	l.ticked = true
	l.stats.End()
	return f
}

// Run ticks every interval until ctx is done. Cancellation only stops
// scheduling the next frame; a frame in progress always completes.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Info().Dur("interval", interval).Int("bodies", l.system.Len()).Msg("frame loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info().Int("frames", l.stats.Frames()).Msg("frame loop stopped")
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}
