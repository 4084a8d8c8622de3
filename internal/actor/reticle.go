package actor

import "github.com/san-kum/galaxy/internal/fixed"

// ReticleSize is the side of the square reticle sprite, pixels.
const ReticleSize = 32

const reticlePivot = ReticleSize / 2

// Transform is a Q8.8 affine matrix plus translation that maps destination
// pixels back into sprite space, rotating and scaling about the sprite centre.
type Transform struct {
	A, B, C, D int32
	TX, TY     int32
	X, Y       int16 // top-left on screen
}

// Reticle is the player's pulsing, rotating cursor.
type Reticle struct {
	X, Y       int16
	RotateRate fixed.Angle
	PulseRate  fixed.Angle
	angle      fixed.Angle
	pulse      fixed.Angle
	minX, minY int16
	maxX, maxY int16
}

// NewReticle centres a reticle on a w x h screen. It may hang half off
// any edge.
func NewReticle(w, h int16) Reticle {
	return Reticle{
		X:          w/2 - reticlePivot,
		Y:          h/2 - reticlePivot,
		minX:       -reticlePivot,
		minY:       -reticlePivot,
		maxX:       w - reticlePivot,
		maxY:       h - reticlePivot,
		RotateRate: 1,
		PulseRate:  4,
	}
}

// Move shifts the reticle and clamps it to the screen.
func (r *Reticle) Move(dx, dy int8) {
	r.X = fixed.Clamp16(r.X+int16(dx), r.minX, r.maxX)
	r.Y = fixed.Clamp16(r.Y+int16(dy), r.minY, r.maxY)
}

// Center returns the screen pixel under the reticle's centre.
func (r *Reticle) Center() (x, y int16) {
	return r.X + reticlePivot, r.Y + reticlePivot
}

// Tick advances the spin and pulse and returns the sprite transform.
func (r *Reticle) Tick() Transform {
	r.angle += r.RotateRate
	r.pulse += r.PulseRate
	return r.Transform()
}

// Transform returns the current sprite transform without advancing.
func (r *Reticle) Transform() Transform {
	scale := int32(fixed.Unit) + int32(fixed.Sin(r.pulse))*51>>8

	s, c := fixed.SinCos(r.angle)
	a := scale * int32(c) >> fixed.Shift
	b := scale * int32(s) >> fixed.Shift

	t := Transform{A: a, B: -b, C: b, D: a, X: r.X, Y: r.Y}
	// keep the pivot fixed: p = M*p + T
	t.TX = reticlePivot<<fixed.Shift - (t.A*reticlePivot + t.B*reticlePivot)
	t.TY = reticlePivot<<fixed.Shift - (t.C*reticlePivot + t.D*reticlePivot)
	return t
}

// Apply maps destination pixel (x, y), relative to the sprite's top-left,
// to sprite-space coordinates.
func (t Transform) Apply(x, y int32) (sx, sy int32) {
	sx = (t.A*x + t.B*y + t.TX) >> fixed.Shift
	sy = (t.C*x + t.D*y + t.TY) >> fixed.Shift
	return sx, sy
}
