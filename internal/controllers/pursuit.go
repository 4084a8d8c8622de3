package controllers

import (
	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/fixed"
)

// Pursuit steers the reticle toward the nearest infecting enemy with a
// proportional-derivative law and drops a worker once it is within Range.
// Gains are Q8.8.
type Pursuit struct {
	Kp      int32
	Kd      int32
	MaxStep int8
	Range   int16
	Kind    actor.Kind
	prevX   int32
	prevY   int32
	first   bool
}

func NewPursuit(kp, kd int32, kind actor.Kind) *Pursuit {
	return &Pursuit{
		Kp:      kp,
		Kd:      kd,
		MaxStep: 2,
		Range:   6,
		Kind:    kind,
		first:   true,
	}
}

func (p *Pursuit) Compute(v engine.View, refresh uint64) engine.Input {
	rx, ry := v.Reticle()
	tx, ty, ok := nearestInfecting(v.Enemies(), rx, ry)
	if !ok {
		p.first = true
		return engine.Input{}
	}

	ex, ey := int32(tx-rx), int32(ty-ry)
	if p.first {
		p.prevX, p.prevY = ex, ey
		p.first = false
	}

	ux := (p.Kp*ex + p.Kd*(ex-p.prevX)) >> fixed.Shift
	uy := (p.Kp*ey + p.Kd*(ey-p.prevY)) >> fixed.Shift
	p.prevX, p.prevY = ex, ey

	in := engine.Input{
		DX:   p.limit(ux),
		DY:   p.limit(uy),
		Kind: p.Kind,
	}
	if fixed.Abs16(int16(ex)) <= p.Range && fixed.Abs16(int16(ey)) <= p.Range && v.Cooldown() == 0 {
		in.Spawn = true
	}
	return in
}

func (p *Pursuit) limit(u int32) int8 {
	m := int32(p.MaxStep)
	if u > m {
		return p.MaxStep
	}
	if u < -m {
		return -p.MaxStep
	}
	return int8(u)
}

func nearestInfecting(enemies []actor.Actor, rx, ry int16) (x, y int16, ok bool) {
	best := int32(-1)
	for k := range enemies {
		e := &enemies[k]
		if !e.Active || !e.Infecting {
			continue
		}
		ex, ey := e.Pixel()
		dx, dy := int32(ex-rx), int32(ey-ry)
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, x, y, ok = d, ex, ey, true
		}
	}
	return x, y, ok
}
