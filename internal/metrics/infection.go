package metrics

import (
	"github.com/san-kum/galaxy/internal/engine"
)

// Infection is the mean fraction of field rows infected.
type Infection struct {
	name    string
	sum     float64
	peak    float64
	samples int
}

func NewInfection() *Infection {
	return &Infection{
		name: "infection",
	}
}

func (i *Infection) Name() string {
	return i.name
}

func (i *Infection) Observe(v engine.View, f engine.Frame) {
	rows := v.Rows()
	if rows == 0 {
		return
	}
	ratio := float64(v.InfectedRows()) / float64(rows)
	i.sum += ratio
	if ratio > i.peak {
		i.peak = ratio
	}
	i.samples++
}

func (i *Infection) Value() float64 {
	if i.samples == 0 {
		return 0
	}
	return i.sum / float64(i.samples)
}

// Peak returns the highest ratio observed since Reset.
func (i *Infection) Peak() float64 { return i.peak }

func (i *Infection) Reset() {
	i.sum = 0
	i.peak = 0
	i.samples = 0
}
