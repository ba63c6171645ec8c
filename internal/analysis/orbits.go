package analysis

import (
	"math"

	"github.com/san-kum/solarsim/internal/kinematics"
)

// OrbitPeriod is the time for one revolution of b at the given orbit
// multiplier. It is +Inf for stationary or non-moving bodies.
func OrbitPeriod(b kinematics.Body, p kinematics.Params) float64 {
	w := math.Abs(b.PhaseSpeed * p.OrbitSpeed)
	if b.Stationary() || w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// SpinPeriod is the time for one turn about the y axis.
func SpinPeriod(b kinematics.Body, p kinematics.Params) float64 {
	w := math.Abs(b.Rates.Y * p.RotationSpeed)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

type OrbitReport struct {
	ID       kinematics.BodyID
	Expected float64
	Measured float64
	// Resolution is the frequency bin width converted to a period error
	// bound at Measured.
	Resolution float64
	Measurable bool
}

// Orbits measures each body's orbital period from frames sampled every dt.
// Expected periods use the first frame's multipliers.
func Orbits(frames []kinematics.Frame, bodies []kinematics.Body, dt float64) []OrbitReport {
	reports := make([]OrbitReport, 0, len(bodies))
	if len(frames) == 0 {
		return reports
	}
	p := frames[0].Params
	span := float64(len(frames)) * dt

	for _, b := range bodies {
		r := OrbitReport{ID: b.ID, Expected: OrbitPeriod(b, p), Measured: math.Inf(1), Resolution: math.Inf(1)}
		if !b.Stationary() {
			xs := make([]float64, 0, len(frames))
			for _, f := range frames {
				if tr, ok := f.Lookup(b.ID); ok {
					xs = append(xs, tr.Position.X)
				}
			}
			if freq, ok := DominantFrequency(xs, dt); ok {
				r.Measured = 1 / freq
				r.Resolution = r.Measured * r.Measured / span
				r.Measurable = true
			}
		}
		reports = append(reports, r)
	}
	return reports
}
