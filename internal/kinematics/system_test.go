package kinematics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsim/internal/kinematics"
)

var _ = Describe("System", func() {
	It("builds from the default table", func() {
		sys, err := kinematics.NewSystem(kinematics.DefaultBodies())
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Len()).To(Equal(9))

		earth, err := sys.Body(kinematics.Earth)
		Expect(err).NotTo(HaveOccurred())
		Expect(earth.OrbitRadius).To(Equal(-3.8))
	})

	It("rejects an empty table", func() {
		_, err := kinematics.NewSystem(nil)
		Expect(err).To(MatchError(kinematics.ErrEmptySystem))
	})

	It("rejects duplicate ids", func() {
		bodies := append(kinematics.DefaultBodies(), kinematics.Body{ID: kinematics.Earth, OrbitRadius: 3})
		_, err := kinematics.NewSystem(bodies)
		Expect(errors.Is(err, kinematics.ErrDuplicateBody)).To(BeTrue())

		var be *kinematics.BodyError
		Expect(errors.As(err, &be)).To(BeTrue())
		Expect(be.ID).To(Equal(kinematics.Earth))
	})

	DescribeTable("rejects invalid bodies",
		func(b kinematics.Body) {
			_, err := kinematics.NewSystem([]kinematics.Body{b})
			Expect(errors.Is(err, kinematics.ErrInvalidBody)).To(BeTrue())
		},
		Entry("empty id", kinematics.Body{OrbitRadius: 1}),
		Entry("NaN radius", kinematics.Body{ID: "x", OrbitRadius: math.NaN()}),
		Entry("Inf rate", kinematics.Body{ID: "x", Rates: kinematics.AxisRates{Y: math.Inf(1)}}),
		Entry("NaN phase", kinematics.Body{ID: "x", PhaseSpeed: math.NaN()}),
	)

	It("reports unknown ids", func() {
		sys, err := kinematics.NewSystem(kinematics.DefaultBodies())
		Expect(err).NotTo(HaveOccurred())
		_, err = sys.Body("pluto")
		Expect(err).To(MatchError(kinematics.ErrUnknownBody))
	})

	It("does not expose its table for mutation", func() {
		sys, err := kinematics.NewSystem(kinematics.DefaultBodies())
		Expect(err).NotTo(HaveOccurred())
		bodies := sys.Bodies()
		bodies[1].OrbitRadius = 100

		mercury, _ := sys.Body(kinematics.Mercury)
		Expect(mercury.OrbitRadius).To(Equal(-1.5))
	})

	It("advances the same as the free function", func() {
		bodies := kinematics.DefaultBodies()
		sys, err := kinematics.NewSystem(bodies)
		Expect(err).NotTo(HaveOccurred())
		p := kinematics.Params{RotationSpeed: 4, OrbitSpeed: 0.8}
		Expect(sys.Advance(3, p)).To(Equal(kinematics.Advance(bodies, 3, p)))
	})
})
