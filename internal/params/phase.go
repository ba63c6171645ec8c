package params

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/solarsim/internal/kinematics"
)

// PhaseRange is the half-open interval [Min, Max) phase speeds are drawn from.
type PhaseRange struct {
	Min, Max float64
}

var (
	// WidePhaseRange spreads orbits across [0.3, 1.0).
	WidePhaseRange = PhaseRange{Min: 0.3, Max: 1.0}

	// LegacyPhaseRange reproduces the narrower [0.3, 0.6) spread of the
	// first browser demo.
	LegacyPhaseRange = PhaseRange{Min: 0.3, Max: 0.6}
)

// ParsePhaseRange maps a config name to a range.
func ParsePhaseRange(name string) (PhaseRange, error) {
	switch name {
	case "", "wide":
		return WidePhaseRange, nil
	case "legacy":
		return LegacyPhaseRange, nil
	default:
		return PhaseRange{}, fmt.Errorf("phase range %q (want wide or legacy): %w", name, kinematics.ErrParameterBounds)
	}
}

func (r PhaseRange) Contains(v float64) bool { return v >= r.Min && v < r.Max }

type PhaseGenerator struct {
	rng *rand.Rand
	r   PhaseRange
}

func NewPhaseGenerator(seed int64, r PhaseRange) *PhaseGenerator {
	return &PhaseGenerator{rng: rand.New(rand.NewSource(seed)), r: r}
}

// Next returns a phase speed uniformly distributed in the generator's range.
func (g *PhaseGenerator) Next() float64 {
	v := g.rng.Float64()*(g.r.Max-g.r.Min) + g.r.Min
	if v >= g.r.Max {
		v = math.Nextafter(g.r.Max, g.r.Min)
	}
	return v
}

// AssignPhaseSpeeds returns a copy of bodies where every orbiting body
// without a preset phase speed draws one from gen. Stationary bodies keep 0.
func AssignPhaseSpeeds(bodies []kinematics.Body, gen *PhaseGenerator) []kinematics.Body {
	out := make([]kinematics.Body, len(bodies))
	for i, b := range bodies {
		if !b.Stationary() && b.PhaseSpeed == 0 {
			b.PhaseSpeed = gen.Next()
		}
		out[i] = b
	}
	return out
}
