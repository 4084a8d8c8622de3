package actor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/field"
)

var _ = Describe("Manager", func() {
	var (
		cfg actor.Config
		m   *actor.Manager
	)

	BeforeEach(func() {
		cfg = actor.DefaultConfig()
		m = actor.NewManager(cfg)
	})

	Describe("spawning", func() {
		It("fills the enemy pool and then declines", func() {
			for k := 0; k < cfg.EnemyCapacity; k++ {
				Expect(m.Spawn(actor.Enemy, 200, 90+int16(k))).To(BeTrue())
			}
			before := m.Enemies()
			Expect(m.Spawn(actor.Enemy, 200, 120)).To(BeFalse())
			Expect(m.Count(actor.Enemy)).To(Equal(cfg.EnemyCapacity))
			Expect(m.Enemies()).To(Equal(before))
		})

		It("keeps the pools independent", func() {
			for k := 0; k < cfg.EnemyCapacity; k++ {
				m.Spawn(actor.Enemy, 220, 90)
			}
			Expect(m.Spawn(actor.Guardian, 100, 90)).To(BeTrue())
			Expect(m.Spawn(actor.Gardener, 100, 60)).To(BeTrue())
			Expect(m.ActiveTotal()).To(Equal(cfg.EnemyCapacity + 2))
		})

		It("reuses the first free slot without compacting", func() {
			m.Spawn(actor.Enemy, 200, 90)
			m.Spawn(actor.Enemy, 210, 90)
			m.Spawn(actor.Enemy, 220, 90)
			before := m.Enemies()

			m.Deactivate(actor.Enemy, 1)
			Expect(m.Spawn(actor.Enemy, 160, 40)).To(BeTrue())

			after := m.Enemies()
			Expect(after[0]).To(Equal(before[0]))
			Expect(after[2]).To(Equal(before[2]))
			Expect(after[1].Active).To(BeTrue())
			Expect(after[1].Omega).NotTo(Equal(before[1].Omega))
			Expect(after[3].Active).To(BeFalse())
		})

		It("freezes eccentricity at spawn", func() {
			m.SetEccentricity(32)
			m.Spawn(actor.Enemy, 220, 90)
			m.SetEccentricity(160)
			m.Spawn(actor.Enemy, 220, 90)
			for k := 0; k < 20; k++ {
				m.Tick()
			}

			enemies := m.Enemies()
			Expect(enemies[0].Eccentricity).To(Equal(uint8(32)))
			Expect(enemies[1].Eccentricity).To(Equal(uint8(160)))
			Expect(m.Eccentricity()).To(Equal(uint8(160)))
		})

		It("floors worker and enemy radii differently", func() {
			m.Spawn(actor.Enemy, 162, 90)
			m.Spawn(actor.Guardian, 162, 90)
			Expect(m.Enemies()[0].Radius).To(Equal(cfg.EnemyMinRadius))
			Expect(m.Workers()[0].Radius).To(Equal(cfg.WorkerMinRadius))
		})

		It("starts enemies infecting and workers clean", func() {
			m.Spawn(actor.Enemy, 220, 90)
			m.Spawn(actor.Gardener, 100, 90)
			Expect(m.Enemies()[0].Infecting).To(BeTrue())
			Expect(m.Workers()[0].Infecting).To(BeFalse())
		})
	})

	Describe("ticking", func() {
		It("returns one sprite per slot with only active ones visible", func() {
			m.Spawn(actor.Enemy, 220, 90)
			m.Spawn(actor.Guardian, 100, 90)

			sprites := m.Tick()
			Expect(sprites).To(HaveLen(cfg.EnemyCapacity + cfg.WorkerCapacity))
			visible := 0
			for _, s := range sprites {
				if s.Visible {
					visible++
				}
			}
			Expect(visible).To(Equal(2))
		})

		It("moves active actors along their orbit", func() {
			m.Spawn(actor.Enemy, 220, 90)
			start := m.Enemies()[0]
			for k := 0; k < 10; k++ {
				m.Tick()
			}
			now := m.Enemies()[0]
			Expect(now.Angle).NotTo(Equal(start.Angle))
			Expect([]int16{now.X, now.Y}).NotTo(Equal([]int16{start.X, start.Y}))
		})

		It("cycles the animation frame every period", func() {
			m.Spawn(actor.Enemy, 220, 90)
			for k := 0; k < int(cfg.AnimPeriod); k++ {
				m.Tick()
			}
			Expect(m.Enemies()[0].Frame).To(Equal(uint8(1)))
			for k := 0; k < int(cfg.AnimPeriod)*(int(cfg.AnimFrames)-1); k++ {
				m.Tick()
			}
			Expect(m.Enemies()[0].Frame).To(Equal(uint8(0)))
		})
	})

	Describe("contacts", func() {
		It("lets a guardian destroy an enemy it touches", func() {
			m.Spawn(actor.Enemy, 220, 90)
			m.Spawn(actor.Guardian, 220, 90)
			m.Tick()
			Expect(m.Count(actor.Enemy)).To(Equal(0))
			Expect(m.Count(actor.Guardian)).To(Equal(1))
		})

		It("lets a gardener cure an enemy without destroying it", func() {
			m.Spawn(actor.Enemy, 220, 90)
			m.Spawn(actor.Gardener, 220, 90)
			m.Tick()
			e := m.Enemies()[0]
			Expect(e.Active).To(BeTrue())
			Expect(e.Infecting).To(BeFalse())
		})

		It("ignores actors that are far apart", func() {
			m.Spawn(actor.Enemy, 230, 90)
			m.Spawn(actor.Guardian, 100, 90)
			m.Tick()
			Expect(m.Count(actor.Enemy)).To(Equal(1))
		})
	})

	Describe("zones", func() {
		It("reports infect boxes for infecting enemies and heal boxes for gardeners", func() {
			m.Spawn(actor.Enemy, 230, 90)
			m.Spawn(actor.Gardener, 100, 90)
			m.Spawn(actor.Guardian, 160, 20)
			m.Tick()

			zones := m.Zones()
			Expect(zones).To(HaveLen(2))
			Expect(zones[0].Effect).To(Equal(field.EffectInfect))
			Expect(zones[1].Effect).To(Equal(field.EffectHeal))

			ex, ey := m.Enemies()[0].Pixel()
			Expect(zones[0].Contains(ex, ey)).To(BeTrue())
		})

		It("drops the zone of a cured enemy", func() {
			m.Spawn(actor.Enemy, 220, 90)
			m.Spawn(actor.Gardener, 220, 90)
			m.Tick()
			for _, z := range m.Zones() {
				Expect(z.Effect).To(Equal(field.EffectHeal))
			}
		})
	})

	It("resets to empty pools", func() {
		m.Spawn(actor.Enemy, 220, 90)
		m.Spawn(actor.Guardian, 100, 90)
		m.SetEccentricity(200)
		m.Reset()
		Expect(m.ActiveTotal()).To(Equal(0))
		Expect(m.Eccentricity()).To(Equal(cfg.Eccentricity))
	})
})

var _ = Describe("Kind", func() {
	DescribeTable("round-trips names",
		func(k actor.Kind, name string, worker bool) {
			Expect(k.String()).To(Equal(name))
			Expect(k.IsWorker()).To(Equal(worker))
			parsed, ok := actor.ParseKind(name)
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(k))
		},
		Entry("enemy", actor.Enemy, "enemy", false),
		Entry("guardian", actor.Guardian, "guardian", true),
		Entry("gardener", actor.Gardener, "gardener", true),
	)

	It("rejects unknown names", func() {
		_, ok := actor.ParseKind("comet")
		Expect(ok).To(BeFalse())
	})
})
