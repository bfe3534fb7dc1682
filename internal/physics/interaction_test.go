package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/integrators"
	"github.com/san-kum/swingsim/internal/physics"
)

const tick = 1.0 / 60.0

var _ = Describe("SpringPendulum interaction", func() {
	var p *physics.SpringPendulum

	BeforeEach(func() {
		p = physics.NewSpringPendulum()
		for i := 0; i < 30; i++ {
			p.Step(tick)
		}
		Expect(p.Velocity().Len()).To(BeNumerically(">", 0))
	})

	Describe("drag transitions", func() {
		It("keeps velocity untouched when drag begins twice", func() {
			v := p.Velocity()
			p.BeginDrag()
			p.BeginDrag()
			Expect(p.Dragging()).To(BeTrue())
			Expect(p.Velocity()).To(Equal(v))
		})

		It("treats endDrag while free as a velocity reset only", func() {
			pos := p.Position()
			p.EndDrag()
			Expect(p.Dragging()).To(BeFalse())
			Expect(p.Velocity()).To(Equal(mgl64.Vec2{}))
			Expect(p.Position()).To(Equal(pos))
		})

		It("rejects position overrides outside a drag", func() {
			Expect(p.DragTo(mgl64.Vec2{1, 1})).To(MatchError(physics.ErrNotDragging))
		})

		It("resumes from rest at the released position", func() {
			p.BeginDrag()
			Expect(p.DragTo(mgl64.Vec2{2, -2})).To(Succeed())
			p.EndDrag()

			Expect(p.Velocity()).To(Equal(mgl64.Vec2{}))
			Expect(p.Position()).To(Equal(mgl64.Vec2{2, -2}))
		})
	})

	Describe("stepping while dragging", func() {
		BeforeEach(func() {
			p.BeginDrag()
			Expect(p.DragTo(mgl64.Vec2{0, 2})).To(Succeed())
		})

		It("does not integrate", func() {
			v := p.Velocity()
			for i := 0; i < 10; i++ {
				p.Step(tick)
			}
			Expect(p.Position()).To(Equal(mgl64.Vec2{0, 2}))
			Expect(p.Velocity()).To(Equal(v))
		})

		It("still refreshes angle and length from the override", func() {
			Expect(p.DragTo(mgl64.Vec2{-1, -1})).To(Succeed())
			p.Step(tick)
			Expect(p.Angle()).To(BeNumerically("~", -math.Pi/4, 1e-12))
			Expect(p.Radius()).To(BeNumerically("~", math.Sqrt2, 1e-12))
			Expect(p.Diagnostics().Dragging).To(BeTrue())
		})
	})

	Describe("reconfiguration", func() {
		It("preserves position and velocity at the instant of the call", func() {
			pos, vel := p.Position(), p.Velocity()
			Expect(p.SetMass(4)).To(Succeed())
			Expect(p.Position()).To(Equal(pos))
			Expect(p.Velocity()).To(Equal(vel))
			Expect(p.Diagnostics().GravityForce).To(BeNumerically("~", 4*physics.DefaultGravity, 1e-12))
		})

		It("keeps the previous mass when the new one is rejected", func() {
			err := p.SetMass(0)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			Expect(p.Params().Mass).To(Equal(physics.DefaultMass))
		})

		It("applies a mode switch on the next force computation", func() {
			p.BeginDrag()
			Expect(p.DragTo(mgl64.Vec2{0, -1})).To(Succeed())
			p.EndDrag()

			Expect(p.SetMode(physics.Rope)).To(Succeed())
			p.Step(tick)
			Expect(p.Diagnostics().TensionForce).To(BeZero())
			Expect(p.Diagnostics().Taut).To(BeFalse())

			Expect(p.SetMode(physics.Spring)).To(Succeed())
			p.Step(tick)
			Expect(p.Diagnostics().TensionForce).To(BeNumerically(">", 0))
		})
	})

	Describe("reset operations", func() {
		It("initialize returns to the hanging position from any state", func() {
			p.BeginDrag()
			Expect(p.DragTo(mgl64.Vec2{5, 5})).To(Succeed())
			p.Initialize()

			Expect(p.Dragging()).To(BeFalse())
			Expect(p.Velocity()).To(Equal(mgl64.Vec2{}))
			Expect(p.Position()[0]).To(BeNumerically("~", -1.5, 1e-9))
			Expect(p.Position()[1]).To(BeNumerically("~", -2.598076, 1e-6))
		})

		It("resetDynamics leaves the position alone", func() {
			pos := p.Position()
			p.ResetDynamics()
			Expect(p.Position()).To(Equal(pos))
			Expect(p.Velocity()).To(Equal(mgl64.Vec2{}))
		})
	})
})

var _ = Describe("integration schemes", func() {
	DescribeTable("a released spring swings back toward the pivot",
		func(name string) {
			scheme, err := integrators.New(name)
			Expect(err).NotTo(HaveOccurred())

			p := physics.NewSpringPendulum()
			p.SetScheme(scheme)
			p.BeginDrag()
			Expect(p.DragTo(mgl64.Vec2{0, -5})).To(Succeed())
			p.EndDrag()

			p.Step(tick)
			Expect(p.Velocity()[1]).To(BeNumerically(">", 0))
			Expect(p.Diagnostics().TensionForce).To(BeNumerically("~", 40, 1e-9))
		},
		Entry("symplectic", "symplectic"),
		Entry("explicit euler", "euler"),
		Entry("velocity verlet", "verlet"),
	)
})
