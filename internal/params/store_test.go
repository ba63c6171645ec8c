package params

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/solarsim/internal/kinematics"
)

type fakeCamera struct{ resets int }

func (c *fakeCamera) Reset() { c.resets++ }

func TestNewDefaults(t *testing.T) {
	s := New(nil)
	if s.RotationSpeed() != 4 {
		t.Errorf("expected rotation speed 4, got %f", s.RotationSpeed())
	}
	if s.OrbitSpeed() != 0.8 {
		t.Errorf("expected orbit speed 0.8, got %f", s.OrbitSpeed())
	}
	p := s.Params()
	if p.RotationSpeed != 4 || p.OrbitSpeed != 0.8 {
		t.Errorf("unexpected params snapshot %+v", p)
	}
}

func TestSetRotationSpeedClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 6.5, 6.5},
		{"lower bound", 0, 0},
		{"upper bound", 10, 10},
		{"below", -3, 0},
		{"above", 11, 10},
		{"inf", math.Inf(1), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			if got := s.SetRotationSpeed(tt.in); got != tt.want {
				t.Errorf("SetRotationSpeed(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if s.Params().RotationSpeed != tt.want {
				t.Errorf("snapshot did not pick up %v", tt.want)
			}
		})
	}
}

func TestSetOrbitSpeedClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.25, 1.25},
		{-0.1, 0},
		{2.5, 2},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		s := New(nil)
		if got := s.SetOrbitSpeed(tt.in); got != tt.want {
			t.Errorf("SetOrbitSpeed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNaNIgnored(t *testing.T) {
	s := New(nil)
	s.SetRotationSpeed(math.NaN())
	s.SetOrbitSpeed(math.NaN())
	if s.RotationSpeed() != DefaultRotationSpeed || s.OrbitSpeed() != DefaultOrbitSpeed {
		t.Errorf("NaN changed the store: %+v", s.Params())
	}
}

func TestNudge(t *testing.T) {
	s := New(nil)
	if got := s.Nudge(OrbitSpeed, 0.1); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("expected 0.9, got %f", got)
	}
	for i := 0; i < 50; i++ {
		s.Nudge(OrbitSpeed, 0.1)
	}
	if s.OrbitSpeed() != MaxOrbitSpeed {
		t.Errorf("expected clamp at %f, got %f", MaxOrbitSpeed, s.OrbitSpeed())
	}
	if got := s.Nudge(RotationSpeed, -100); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestControlBounds(t *testing.T) {
	lo, hi := RotationSpeed.Bounds()
	if lo != 0 || hi != 10 {
		t.Errorf("rotation bounds = [%v, %v]", lo, hi)
	}
	lo, hi = OrbitSpeed.Bounds()
	if lo != 0 || hi != 2 {
		t.Errorf("orbit bounds = [%v, %v]", lo, hi)
	}
	if OrbitSpeed.String() != "orbit" {
		t.Errorf("unexpected name %q", OrbitSpeed.String())
	}
}

func TestResetCameraDelegates(t *testing.T) {
	cam := &fakeCamera{}
	s := New(cam)
	before := s.Params()
	s.ResetCamera()
	s.ResetCamera()
	if cam.resets != 2 {
		t.Errorf("expected 2 resets, got %d", cam.resets)
	}
	if s.Params() != before {
		t.Error("reset camera changed the multipliers")
	}

	New(nil).ResetCamera()
}

func TestInitPhaseSpeeds(t *testing.T) {
	s := New(nil)
	gen := NewPhaseGenerator(7, WidePhaseRange)
	bodies := s.InitPhaseSpeeds(kinematics.DefaultBodies(), gen)

	table := s.PhaseSpeeds()
	if len(table) != 8 {
		t.Fatalf("expected 8 phase speeds, got %d", len(table))
	}
	if _, ok := table[kinematics.Sun]; ok {
		t.Error("sun should not get a phase speed")
	}
	for _, b := range bodies {
		if b.Stationary() {
			if b.PhaseSpeed != 0 {
				t.Errorf("%s: expected 0, got %f", b.ID, b.PhaseSpeed)
			}
			continue
		}
		if table[b.ID] != b.PhaseSpeed {
			t.Errorf("%s: table %f, body %f", b.ID, table[b.ID], b.PhaseSpeed)
		}
	}

	table[kinematics.Earth] = 99
	if s.PhaseSpeeds()[kinematics.Earth] == 99 {
		t.Error("PhaseSpeeds leaked the internal map")
	}
}

func TestParsePhaseRange(t *testing.T) {
	r, err := ParsePhaseRange("")
	if err != nil || r != WidePhaseRange {
		t.Errorf("default: got %+v, %v", r, err)
	}
	r, err = ParsePhaseRange("legacy")
	if err != nil || r != LegacyPhaseRange {
		t.Errorf("legacy: got %+v, %v", r, err)
	}
	if _, err := ParsePhaseRange("huge"); !errors.Is(err, kinematics.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
