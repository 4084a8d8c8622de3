package metrics

import (
	"github.com/san-kum/galaxy/internal/engine"
)

// ActiveActors is the mean number of active actors in both pools.
type ActiveActors struct {
	name    string
	sum     int
	samples int
}

func NewActiveActors() *ActiveActors {
	return &ActiveActors{
		name: "active_actors",
	}
}

func (a *ActiveActors) Name() string {
	return a.name
}

func (a *ActiveActors) Observe(v engine.View, f engine.Frame) {
	for _, s := range f.Sprites {
		if s.Visible {
			a.sum++
		}
	}
	a.samples++
}

func (a *ActiveActors) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.samples)
}

func (a *ActiveActors) Reset() {
	a.sum = 0
	a.samples = 0
}

// SpawnRate counts successful spawns, player and periodic, per refresh.
type SpawnRate struct {
	name     string
	spawns   int
	declined int
	samples  int
}

func NewSpawnRate() *SpawnRate {
	return &SpawnRate{
		name: "spawn_rate",
	}
}

func (s *SpawnRate) Name() string {
	return s.name
}

func (s *SpawnRate) Observe(v engine.View, f engine.Frame) {
	if f.Spawned {
		s.spawns++
	}
	if f.EnemySpawn {
		s.spawns++
	}
	if f.Declined {
		s.declined++
	}
	s.samples++
}

func (s *SpawnRate) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.spawns) / float64(s.samples)
}

// Declined returns how many player spawns hit a full pool.
func (s *SpawnRate) Declined() int { return s.declined }

func (s *SpawnRate) Reset() {
	s.spawns = 0
	s.declined = 0
	s.samples = 0
}
