package kinematics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsim/internal/kinematics"
)

func withPhase(bodies []kinematics.Body, speed float64) []kinematics.Body {
	for i := range bodies {
		if !bodies[i].Stationary() {
			bodies[i].PhaseSpeed = speed
		}
	}
	return bodies
}

var _ = Describe("Engine", func() {
	var (
		bodies   []kinematics.Body
		defaults kinematics.Params
	)

	BeforeEach(func() {
		bodies = withPhase(kinematics.DefaultBodies(), 0.7)
		defaults = kinematics.Params{RotationSpeed: 4, OrbitSpeed: 0.8}
	})

	Describe("Rotation", func() {
		It("scales both axes by elapsed time and the multiplier", func() {
			earth := bodies[3]
			rot := kinematics.Rotation(earth, 2.5, defaults)
			Expect(rot.Y).To(BeNumerically("~", 0.1*2.5*4, 1e-12))
			Expect(rot.X).To(BeNumerically("~", 0.15*2.5*4, 1e-12))
		})

		It("holds every body at zero when the multiplier is zero", func() {
			p := kinematics.Params{RotationSpeed: 0, OrbitSpeed: 0.8}
			for _, t := range []float64{0, 0.016, 1, 42, 1e6} {
				for _, b := range bodies {
					Expect(kinematics.Rotation(b, t, p)).To(Equal(kinematics.Orientation{}))
				}
			}
		})

		It("is absolute so rewinding time restores the earlier pose", func() {
			b := bodies[5]
			early := kinematics.Rotation(b, 3, defaults)
			_ = kinematics.Rotation(b, 300, defaults)
			Expect(kinematics.Rotation(b, 3, defaults)).To(Equal(early))
		})
	})

	Describe("OrbitPosition", func() {
		It("pins stationary bodies at the origin for every t", func() {
			sun := bodies[0]
			Expect(sun.Stationary()).To(BeTrue())
			for _, t := range []float64{0, 0.5, 7, 1234.5} {
				pos := kinematics.OrbitPosition(sun, t, defaults)
				Expect(pos.X).To(BeZero())
				Expect(pos.Z).To(BeZero())
			}
		})

		It("starts every body at its phase-0 position", func() {
			for _, b := range bodies {
				pos := kinematics.OrbitPosition(b, 0, defaults)
				Expect(pos.X).To(Equal(b.OrbitRadius))
				Expect(pos.Z).To(BeZero())
			}
		})

		It("collapses to phase 0 when the orbit multiplier is zero", func() {
			p := kinematics.Params{RotationSpeed: 4, OrbitSpeed: 0}
			for _, t := range []float64{0.1, 10, 99.9} {
				for _, b := range bodies {
					pos := kinematics.OrbitPosition(b, t, p)
					Expect(pos.X).To(Equal(b.OrbitRadius))
					Expect(pos.Z).To(BeZero())
				}
			}
		})

		It("matches the earth reference point", func() {
			earth := kinematics.Body{ID: kinematics.Earth, OrbitRadius: -3.8, PhaseSpeed: 1.0}
			p := kinematics.Params{RotationSpeed: 4, OrbitSpeed: 0.8}

			Expect(kinematics.OrbitAngle(earth, 1.0, p)).To(BeNumerically("~", 0.8, 1e-12))
			pos := kinematics.OrbitPosition(earth, 1.0, p)
			Expect(pos.X).To(BeNumerically("~", math.Cos(0.8)*-3.8, 1e-12))
			Expect(pos.Z).To(BeNumerically("~", math.Sin(0.8)*-3.8, 1e-12))
			Expect(pos.X).To(BeNumerically("~", -2.647, 1e-3))
			Expect(pos.Z).To(BeNumerically("~", -2.726, 1e-3))
			Expect(pos.Y).To(BeZero())
		})

		It("stays on the orbit circle", func() {
			for _, b := range bodies[1:] {
				pos := kinematics.OrbitPosition(b, 17.3, defaults)
				Expect(pos.Length()).To(BeNumerically("~", math.Abs(b.OrbitRadius), 1e-9))
			}
		})

		It("applies the phase speed before the global multiplier", func() {
			b := kinematics.Body{ID: "probe", OrbitRadius: 2, PhaseSpeed: 0.5}
			p := kinematics.Params{OrbitSpeed: 2}
			Expect(kinematics.OrbitAngle(b, 3, p)).To(BeNumerically("~", (3*0.5)*2, 1e-12))
		})
	})

	Describe("Advance", func() {
		It("is deterministic for identical inputs", func() {
			a := kinematics.Advance(bodies, 12.34, defaults)
			b := kinematics.Advance(bodies, 12.34, defaults)
			Expect(a).To(Equal(b))
		})

		It("emits one transform per body in table order", func() {
			f := kinematics.Advance(bodies, 1, defaults)
			Expect(f.Transforms).To(HaveLen(len(bodies)))
			for i, tr := range f.Transforms {
				Expect(tr.ID).To(Equal(bodies[i].ID))
			}
			Expect(f.Time).To(Equal(1.0))
			Expect(f.Params).To(Equal(defaults))
		})

		It("yields zero rotation and phase-0 positions at t = 0", func() {
			f := kinematics.Advance(bodies, 0, defaults)
			for i, tr := range f.Transforms {
				Expect(tr.Rotation).To(Equal(kinematics.Orientation{}))
				Expect(tr.Position.X).To(Equal(bodies[i].OrbitRadius))
				Expect(tr.Position.Z).To(BeZero())
			}
		})

		It("reflects a rotation multiplier change on the very next frame", func() {
			before := kinematics.Advance(bodies, 5, defaults)
			Expect(before.Transforms[3].Rotation.Y).NotTo(BeZero())

			stopped := defaults
			stopped.RotationSpeed = 0
			after := kinematics.Advance(bodies, 5.016, stopped)
			for _, tr := range after.Transforms {
				Expect(tr.Rotation).To(Equal(kinematics.Orientation{}))
			}
		})

		It("indexes transforms by body id", func() {
			f := kinematics.Advance(bodies, 2, defaults)
			tr, ok := f.Lookup(kinematics.Mars)
			Expect(ok).To(BeTrue())
			Expect(f.ByID()).To(HaveKeyWithValue(kinematics.Mars, tr))

			_, ok = f.Lookup("pluto")
			Expect(ok).To(BeFalse())
		})
	})
})
