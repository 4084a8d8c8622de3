// Package orbit integrates bodies along parametric ellipses and fits
// orbital elements from a single screen point.
//
// Everything is 16-bit fixed point. Position derivation multiplies the
// radius by sine-table values, so the radius is bounded by MaxRadius to keep
// radius*Amplitude inside unsigned 16-bit space. Division appears only in Fit,
// which runs once per spawn.
package orbit

import "github.com/san-kum/galaxy/internal/fixed"

const (
	// MinSpeed floors the modulated angular rate so bodies never stall or reverse
	MinSpeed = 20
	MaxSpeed = 255

	// MaxRadius keeps (a + a*e) * Amplitude below 65536
	MaxRadius = 85

	// SpeedK sets speed = SpeedK / a, so wider orbits move slower
	SpeedK = 6000

	// ApoapsisPhase is the parametric phase at which the unrotated ellipse is farthest from its focus
	ApoapsisPhase fixed.Angle = 128
)

// Point is a screen coordinate; whole pixels or Q12.4 depending on context.
type Point struct {
	X, Y int16
}

// Elements describes one orbit.
type Elements struct {
	Radius       uint8       // semi-major axis, pixels
	Eccentricity uint8       // 0..255 maps to 0..~1
	Omega        fixed.Angle // periapsis orientation
	Speed        uint8       // base angular rate, Q8.8 angle units per step
}

// Bounds clamps the semi-major axis produced by Fit.
type Bounds struct {
	MinRadius uint8
	MaxRadius uint8
}

// SemiMinor returns b = a(1-e).
func (e Elements) SemiMinor() int16 {
	return int16(fixed.MulShiftU(uint16(e.Radius), fixed.Unit-uint16(e.Eccentricity)))
}

// FocusOffset returns a*e, the distance from ellipse centre to focus.
func (e Elements) FocusOffset() int16 {
	return int16(fixed.MulShiftU(uint16(e.Radius), uint16(e.Eccentricity)))
}

// Offset returns the focus-relative pixel offset at the given Q8.8 phase,
// rotated by omega.
func Offset(angle uint16, el Elements) (dx, dy int16) {
	s, c := fixed.SinCos(fixed.Angle(angle >> 8))

	relX := fixed.MulShift(int16(el.Radius), c) - el.FocusOffset()
	relY := fixed.MulShift(el.SemiMinor(), s)

	so, co := fixed.SinCos(el.Omega)
	dx = fixed.MulShift(relX, co) - fixed.MulShift(relY, so)
	dy = fixed.MulShift(relX, so) + fixed.MulShift(relY, co)
	return dx, dy
}

// Position returns the Q12.4 screen position at the given phase.
// anchor is in whole pixels.
func Position(angle uint16, el Elements, anchor Point) Point {
	dx, dy := Offset(angle, el)
	return Point{
		X: fixed.ToSub(anchor.X + dx),
		Y: fixed.ToSub(anchor.Y + dy),
	}
}

// ModulatedSpeed returns the Kepler-lite angular rate at the given phase:
// speed - ((speed*e)>>8 * cos)>>8, floored at MinSpeed.
func ModulatedSpeed(angle uint16, el Elements) int16 {
	c := fixed.Cos(fixed.Angle(angle >> 8))
	mod := int16(fixed.MulShiftU(uint16(el.Speed), uint16(el.Eccentricity)))
	speed := int16(el.Speed) - fixed.MulShift(mod, c)
	if speed < MinSpeed {
		speed = MinSpeed
	}
	return speed
}

// Step returns the position at the current phase and the advanced phase.
func Step(angle uint16, el Elements, anchor Point) (Point, uint16) {
	pos := Position(angle, el, anchor)
	return pos, angle + uint16(ModulatedSpeed(angle, el))
}

// Fit derives elements so that click becomes the apoapsis of an orbit whose
// focus sits on anchor. The returned phase starts the body at apoapsis.
func Fit(click, anchor Point, eccentricity uint8, bounds Bounds) (Elements, uint16) {
	dx := click.X - anchor.X
	dy := click.Y - anchor.Y

	phi := fixed.AngleFromVector(dx, dy)
	r := int32(fixed.OctagonalDistance(dx, dy))

	// r = a(1+e) at apoapsis
	a := r * fixed.Unit / (fixed.Unit + int32(eccentricity))

	hi := int32(bounds.MaxRadius)
	if hi == 0 || hi > MaxRadius {
		hi = MaxRadius
	}
	lo := int32(bounds.MinRadius)
	if lo > hi {
		lo = hi
	}
	if a < lo {
		a = lo
	}
	if a > hi {
		a = hi
	}
	if a < 1 {
		a = 1
	}

	speed := SpeedK / a
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	el := Elements{
		Radius:       uint8(a),
		Eccentricity: eccentricity,
		Omega:        phi + ApoapsisPhase,
		Speed:        uint8(speed),
	}
	return el, uint16(ApoapsisPhase) << 8
}
