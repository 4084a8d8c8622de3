package field

import (
	"testing"
)

type testSurface struct {
	w, h   int
	pix    []uint8
	reads  []int
	record bool
}

func newTestSurface(w, h int) *testSurface {
	return &testSurface{w: w, h: h, pix: make([]uint8, w*h), reads: make([]int, w*h)}
}

func (s *testSurface) Size() (int, int) { return s.w, s.h }

func (s *testSurface) SetPixel(x, y int, c uint8) { s.pix[y*s.w+x] = c }

func (s *testSurface) GetPixel(x, y int) uint8 {
	if s.record {
		s.reads[y*s.w+x]++
	}
	return s.pix[y*s.w+x]
}

type staticZones []Zone

func (z staticZones) Zones() []Zone { return z }

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.N = 20
	cfg.DecayBatch = 97
	cfg.ParticleBatch = 33
	return cfg
}

func newSim(t *testing.T, cfg Config, w, h int) (*Simulator, *testSurface) {
	t.Helper()
	surf := newTestSurface(w, h)
	sim, err := New(cfg, surf)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	return sim, surf
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func TestTickReportsFrameExactlyOnce(t *testing.T) {
	cfg := smallConfig()
	sim, _ := newSim(t, cfg, 64, 36)

	half := 64 * 36 / 2
	perFrame := ceilDiv(half, cfg.DecayBatch) + 1 + ceilDiv(cfg.N*cfg.N, cfg.ParticleBatch)

	for frame := 0; frame < 4; frame++ {
		for call := 1; call <= perFrame; call++ {
			done := sim.Tick()
			if call < perFrame && done {
				t.Fatalf("frame %d: completed early at call %d of %d", frame, call, perFrame)
			}
			if call == perFrame && !done {
				t.Fatalf("frame %d: not completed after %d calls (phase %s)", frame, perFrame, sim.Phase())
			}
		}
	}
	if sim.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", sim.Frames())
	}
	if sim.Phase() != PhaseDecay {
		t.Errorf("expected decay phase after a frame, got %s", sim.Phase())
	}
}

func TestPhaseOrder(t *testing.T) {
	sim, _ := newSim(t, smallConfig(), 64, 36)
	seen := []Phase{sim.Phase()}
	for !sim.Tick() {
		if p := sim.Phase(); p != seen[len(seen)-1] {
			seen = append(seen, p)
		}
	}
	want := []Phase{PhaseDecay, PhaseTime, PhaseParticles}
	if len(seen) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestDecayCoversEveryCellOncePerTwoFrames(t *testing.T) {
	for _, dims := range [][2]int{{64, 36}, {33, 7}} {
		cfg := smallConfig()
		sim, surf := newSim(t, cfg, dims[0], dims[1])

		for frame := 0; frame < 2; frame++ {
			for {
				surf.record = sim.Phase() == PhaseDecay
				if sim.Tick() {
					break
				}
			}
		}
		surf.record = false

		for k, n := range surf.reads {
			if n != 1 {
				t.Fatalf("%dx%d: cell %d visited %d times in two frames", dims[0], dims[1], k, n)
			}
		}
	}
}

func TestDecayBatchClampsToRemainder(t *testing.T) {
	cfg := smallConfig()
	cfg.DecayBatch = 1000
	sim, _ := newSim(t, cfg, 40, 30) // 600 cells per pass

	sim.Tick()
	if sim.Phase() != PhaseTime {
		t.Fatalf("expected the whole pass in one call, phase %s", sim.Phase())
	}
	parity, visited, total := sim.DecayCursor()
	if parity != 1 || visited != 0 || total != 600 {
		t.Errorf("expected fresh odd pass, got parity=%d visited=%d total=%d", parity, visited, total)
	}
}

func TestParticlesVisitedOncePerFrameInOrder(t *testing.T) {
	cfg := smallConfig()
	sim, _ := newSim(t, cfg, 64, 36)

	for sim.Phase() != PhaseParticles {
		sim.Tick()
	}

	processed := 0
	for {
		i, j := sim.Cursor()
		before := i*cfg.N + j
		done := sim.Tick()
		if done {
			processed += cfg.N*cfg.N - before
			break
		}
		i, j = sim.Cursor()
		after := i*cfg.N + j
		if after <= before {
			t.Fatalf("cursor moved backwards: %d -> %d", before, after)
		}
		if after-before > cfg.ParticleBatch {
			t.Fatalf("batch processed %d > %d", after-before, cfg.ParticleBatch)
		}
		processed += after - before
	}
	if processed != cfg.N*cfg.N {
		t.Errorf("expected %d particles, processed %d", cfg.N*cfg.N, processed)
	}
}

func TestFeedbackMatchesSimulator(t *testing.T) {
	cfg := smallConfig()
	cfg.ParticleBatch = 1
	sim, _ := newSim(t, cfg, 64, 36)
	sim.Randomize(99)

	for sim.Phase() != PhaseParticles {
		sim.Tick()
	}

	for step := 0; step < 3*cfg.N; step++ {
		fx, fy, tm := sim.Accumulators()
		i, _ := sim.Cursor()
		wantX, wantY, _, _ := Feedback(fx, fy, tm, sim.rows[i])
		sim.Tick()
		gotX, gotY, _ := sim.Accumulators()
		if gotX != wantX || gotY != wantY {
			t.Fatalf("step %d: expected (%d,%d), got (%d,%d)", step, wantX, wantY, gotX, gotY)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	cfg := smallConfig()
	a, surfA := newSim(t, cfg, 64, 36)
	b, surfB := newSim(t, cfg, 64, 36)
	a.Randomize(7)
	b.Randomize(7)

	for k := 0; k < 500; k++ {
		if a.Tick() != b.Tick() {
			t.Fatalf("tick %d: completion diverged", k)
		}
	}
	ax, ay, at := a.Accumulators()
	bx, by, bt := b.Accumulators()
	if ax != bx || ay != by || at != bt {
		t.Fatalf("accumulators diverged: (%d,%d,%d) vs (%d,%d,%d)", ax, ay, at, bx, by, bt)
	}
	for k := range surfA.pix {
		if surfA.pix[k] != surfB.pix[k] {
			t.Fatalf("surfaces differ at %d", k)
		}
	}
}

func TestRandomizeIsPure(t *testing.T) {
	cfg := smallConfig()
	sim, _ := newSim(t, cfg, 64, 36)

	sim.Randomize(1234)
	x1, y1, t1 := sim.Accumulators()
	sim.Randomize(4321)
	sim.Randomize(1234)
	x2, y2, t2 := sim.Accumulators()
	if x1 != x2 || y1 != y2 || t1 != t2 {
		t.Errorf("same seed gave (%d,%d,%d) and (%d,%d,%d)", x1, y1, t1, x2, y2, t2)
	}
	if t1 < 0 || t1 >= cfg.TimePeriod {
		t.Errorf("seeded time %d outside [0,%d)", t1, cfg.TimePeriod)
	}
}

func TestTimeWraps(t *testing.T) {
	cfg := smallConfig()
	cfg.TimeStep = 700
	cfg.TimePeriod = 1000
	sim, _ := newSim(t, cfg, 64, 36)

	want := []int16{700, 400, 100, 800}
	for _, w := range want {
		for sim.Phase() != PhaseTime {
			sim.Tick()
		}
		sim.Tick()
		if _, _, tm := sim.Accumulators(); tm != w {
			t.Fatalf("expected time %d, got %d", w, tm)
		}
	}
}

func TestFrameDrawsAndDecays(t *testing.T) {
	cfg := smallConfig()
	sim, surf := newSim(t, cfg, 64, 36)

	for !sim.Tick() {
	}
	lit := 0
	for _, c := range surf.pix {
		if c != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected the first frame to light pixels")
	}

	// decay passes only, alternating parity: 15 -> 0 takes four passes per parity
	for k := 0; k < 10; k++ {
		for sim.Phase() == PhaseDecay {
			sim.Tick()
		}
		sim.phase = PhaseDecay
		sim.startDecayPass(sim.parity)
	}
	for k, c := range surf.pix {
		if c != 0 {
			t.Fatalf("cell %d still lit (%#x) after repeated decay", k, c)
		}
	}
}

func TestInfectionZones(t *testing.T) {
	cfg := smallConfig()
	sim, _ := newSim(t, cfg, 64, 36)

	sim.SetZones(staticZones{{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000, Effect: EffectInfect}})
	for !sim.Tick() {
	}
	if got := sim.InfectedRows(); got != cfg.N {
		t.Fatalf("expected every row infected, got %d", got)
	}

	sim.SetZones(staticZones{{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000, Effect: EffectHeal}})
	for !sim.Tick() {
	}
	if got := sim.InfectedRows(); got != 0 {
		t.Errorf("expected every row healed, got %d infected", got)
	}
}

func TestEraseClearsPreviousPosition(t *testing.T) {
	cfg := smallConfig()
	cfg.Erase = true
	cfg.RingGain = 0
	cfg.N = 2
	cfg.ParticleBatch = 1
	sim, surf := newSim(t, cfg, 64, 36)

	for !sim.Tick() {
	}
	k := 0
	ox, oy := sim.lastX[k], sim.lastY[k]
	if ox == noPosition {
		t.Skip("first particle landed off-screen")
	}
	for sim.Phase() != PhaseParticles {
		sim.Tick()
	}
	sim.Tick() // particle (0,0) again
	nx, ny := sim.lastX[k], sim.lastY[k]
	if (nx != ox || ny != oy) && surf.pix[int(oy)*64+int(ox)] != 0 {
		t.Errorf("old position (%d,%d) not erased", ox, oy)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny n", func(c *Config) { c.N = 1 }},
		{"zero decay batch", func(c *Config) { c.DecayBatch = 0 }},
		{"zero particle batch", func(c *Config) { c.ParticleBatch = 0 }},
		{"huge scale", func(c *Config) { c.Scale = 200 }},
		{"step beyond period", func(c *Config) { c.TimeStep = c.TimePeriod }},
		{"gain overflow", func(c *Config) { c.CenterGain = 16 }},
		{"no decay rule", func(c *Config) { c.Decay = nil }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestNewRejectsNilSurface(t *testing.T) {
	if _, err := New(DefaultConfig(), nil); err == nil {
		t.Error("expected error for nil surface")
	}
}

func BenchmarkTick(b *testing.B) {
	surf := newTestSurface(320, 180)
	sim, err := New(DefaultConfig(), surf)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Tick()
	}
}
