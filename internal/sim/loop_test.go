package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
)

type recordingRenderer struct {
	frames []kinematics.Frame
	order  *[]string
}

func (r *recordingRenderer) Render(f kinematics.Frame) {
	r.frames = append(r.frames, f)
	if r.order != nil {
		*r.order = append(*r.order, "render")
	}
}

type countingCamera struct {
	updates int
	resets  int
	order   *[]string
}

func (c *countingCamera) Update() {
	c.updates++
	if c.order != nil {
		*c.order = append(*c.order, "camera")
	}
}

func (c *countingCamera) Reset() { c.resets++ }

func newTestSystem(t *testing.T) (*kinematics.System, *params.Store) {
	t.Helper()
	store := params.New(nil)
	bodies := store.InitPhaseSpeeds(kinematics.DefaultBodies(), params.NewPhaseGenerator(1, params.WidePhaseRange))
	sys, err := kinematics.NewSystem(bodies)
	require.NoError(t, err)
	return sys, store
}

func TestLoopTick(t *testing.T) {
	sys, store := newTestSystem(t)
	clock := &ManualClock{}
	var order []string
	r := &recordingRenderer{order: &order}
	cam := &countingCamera{order: &order}

	loop := NewLoop(sys, store, clock, r, cam)
	clock.Set(2.5)
	f := loop.Tick()

	assert.Equal(t, 2.5, f.Time)
	assert.Len(t, f.Transforms, 9)
	assert.Equal(t, sys.Advance(2.5, store.Params()), f)
	assert.Equal(t, []string{"render", "camera"}, order)
	assert.Equal(t, f, loop.Last())
	assert.Equal(t, 1, loop.Stats().Frames())
}

func TestLoopPicksUpEditsNextFrame(t *testing.T) {
	sys, store := newTestSystem(t)
	clock := &ManualClock{}
	loop := NewLoop(sys, store, clock, nil, nil)

	clock.Set(3)
	before := loop.Tick()
	earth, _ := before.Lookup(kinematics.Earth)
	assert.NotZero(t, earth.Rotation.Y)

	store.SetRotationSpeed(0)
	clock.Advance(1.0 / 60)
	after := loop.Tick()
	for _, tr := range after.Transforms {
		assert.Equal(t, kinematics.Orientation{}, tr.Rotation, tr.ID)
	}
	assert.Equal(t, 0.0, after.Params.RotationSpeed)
}

func TestLoopRewind(t *testing.T) {
	sys, store := newTestSystem(t)
	clock := &ManualClock{}
	loop := NewLoop(sys, store, clock, nil, nil)

	clock.Set(10)
	first := loop.Tick()
	clock.Set(50)
	loop.Tick()
	clock.Set(10)
	assert.Equal(t, first, loop.Tick())
}

type frameCounter struct{ n int }

func (c *frameCounter) OnFrame(kinematics.Frame) { c.n++ }

func TestLoopRunStopsOnCancel(t *testing.T) {
	sys, store := newTestSystem(t)
	loop := NewLoop(sys, store, NewWallClock(), nil, nil)
	counter := &frameCounter{}
	loop.AddObserver(counter)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, counter.n)
	assert.Equal(t, counter.n, loop.Stats().Frames())
}

func TestLoopRunRejectsBadInterval(t *testing.T) {
	sys, store := newTestSystem(t)
	loop := NewLoop(sys, store, &ManualClock{}, nil, nil)
	assert.Error(t, loop.Run(context.Background(), 0))
}

func TestResetCameraThroughStore(t *testing.T) {
	cam := &countingCamera{}
	store := params.New(cam)
	store.ResetCamera()
	assert.Equal(t, 1, cam.resets)
}

func TestWallClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := newWallClock(func() time.Time { return now })
	assert.Equal(t, 0.0, c.ElapsedSeconds())

	now = now.Add(1500 * time.Millisecond)
	assert.InDelta(t, 1.5, c.ElapsedSeconds(), 1e-9)

	c.Restart()
	assert.Equal(t, 0.0, c.ElapsedSeconds())
}

func TestWallClockPause(t *testing.T) {
	now := time.Unix(100, 0)
	c := newWallClock(func() time.Time { return now })

	now = now.Add(2 * time.Second)
	c.Pause()
	assert.True(t, c.Paused())
	now = now.Add(10 * time.Second)
	assert.InDelta(t, 2, c.ElapsedSeconds(), 1e-9)

	c.Resume()
	now = now.Add(time.Second)
	assert.InDelta(t, 3, c.ElapsedSeconds(), 1e-9)
	assert.False(t, c.Paused())
}

func TestStatsFPS(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewStats()
	s.now = func() time.Time { return now }

	for i := 0; i < 31; i++ {
		s.Begin()
		now = now.Add(2 * time.Millisecond)
		s.End()
		now = now.Add(time.Second/30 - 2*time.Millisecond)
	}

	assert.InDelta(t, 30, s.FPS(), 0.5)
	assert.Equal(t, 2*time.Millisecond, s.FrameTime())
	assert.Equal(t, 31, s.Frames())
}
