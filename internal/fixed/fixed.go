// Package fixed holds the integer fixed-point helpers shared by the orbit
// model and the particle field. Nothing here allocates or divides per frame.
package fixed

// Q8.8 and Q12.4 constants
const (
	Shift = 8
	Unit  = 1 << Shift // 1.0 in Q8.8

	SubShift = 4
	SubUnit  = 1 << SubShift // 1.0 in Q12.4

	// RadianUnits is one radian expressed in angle units (256 / 2π ≈ 40.74)
	RadianUnits = 41
)

// Angle is a binary angle, 256 units per full turn.
type Angle = uint8

// MulShift returns (a * b) >> Shift.
// The product is formed on absolute values in 16-bit unsigned space and the
// sign is reapplied, so |a|*|b| must stay below 65536.
func MulShift(a, b int16) int16 {
	negative := (a < 0) != (b < 0)
	ua, ub := uint16(a), uint16(b)
	if a < 0 {
		ua = uint16(-a)
	}
	if b < 0 {
		ub = uint16(-b)
	}

	res := int16((ua * ub) >> Shift)
	if negative {
		return -res
	}
	return res
}

// MulShiftU is MulShift for operands already known to be non-negative.
func MulShiftU(a, b uint16) uint16 {
	return (a * b) >> Shift
}

// RadiansToAngle converts a Q8.8 radian value to angle units.
// Integer and fractional parts are scaled separately to keep the
// intermediate within 16 bits for the accumulator range used by the field.
func RadiansToAngle(v int16) Angle {
	whole := (v >> Shift) * RadianUnits
	frac := ((v & (Unit - 1)) * RadianUnits) >> Shift
	return Angle(whole + frac)
}

// ToSub converts whole pixels to Q12.4.
func ToSub(px int16) int16 { return px << SubShift }

// FromSub converts Q12.4 to whole pixels, flooring.
func FromSub(v int16) int16 { return v >> SubShift }

// Abs16 returns |v|.
func Abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp16 bounds v to [lo, hi].
func Clamp16(v, lo, hi int16) int16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
