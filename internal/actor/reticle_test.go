package actor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxy/internal/actor"
)

var _ = Describe("Reticle", func() {
	var r actor.Reticle

	BeforeEach(func() {
		r = actor.NewReticle(320, 180)
	})

	It("starts centred", func() {
		x, y := r.Center()
		Expect(x).To(Equal(int16(160)))
		Expect(y).To(Equal(int16(90)))
	})

	It("clamps to half a sprite past each edge", func() {
		for k := 0; k < 200; k++ {
			r.Move(-2, -2)
		}
		Expect(r.X).To(Equal(int16(-actor.ReticleSize / 2)))
		Expect(r.Y).To(Equal(int16(-actor.ReticleSize / 2)))

		for k := 0; k < 400; k++ {
			r.Move(2, 2)
		}
		Expect(r.X).To(Equal(int16(320 - actor.ReticleSize/2)))
		Expect(r.Y).To(Equal(int16(180 - actor.ReticleSize/2)))
	})

	It("is the identity before it spins", func() {
		t := r.Transform()
		Expect(t.A).To(Equal(t.D))
		Expect(t.B).To(Equal(int32(0)))
		Expect(t.C).To(Equal(int32(0)))
	})

	It("keeps its centre fixed while spinning and pulsing", func() {
		for k := 0; k < 300; k++ {
			t := r.Tick()
			sx, sy := t.Apply(actor.ReticleSize/2, actor.ReticleSize/2)
			Expect(sx).To(BeNumerically("~", actor.ReticleSize/2, 1))
			Expect(sy).To(BeNumerically("~", actor.ReticleSize/2, 1))
		}
	})

	It("pulses its scale around one", func() {
		lo, hi := int32(1<<16), int32(0)
		for k := 0; k < 64; k++ {
			t := r.Tick()
			// rotation-invariant scale: A*A + C*C ~ scale^2
			s := t.A*t.A + t.C*t.C
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		Expect(lo).To(BeNumerically("<", 256*256))
		Expect(hi).To(BeNumerically(">", 256*256))
	})
})
