package field

import (
	"fmt"
	"sort"
)

// MaxLevel is the brightest value of one colour channel.
const MaxLevel = 15

// Channel selects one nibble of a cell.
type Channel uint8

const (
	ChannelPink Channel = 1 << iota
	ChannelCyan
	ChannelBoth = ChannelPink | ChannelCyan
)

// Pack builds a colour byte: pink in the high nibble, cyan in the low.
func Pack(pink, cyan uint8) uint8 {
	return (pink&MaxLevel)<<4 | cyan&MaxLevel
}

// Pink returns the high nibble.
func Pink(c uint8) uint8 { return c >> 4 }

// Cyan returns the low nibble.
func Cyan(c uint8) uint8 { return c & MaxLevel }

// Add brightens the selected channels, saturating at MaxLevel.
func Add(c uint8, ch Channel, gain uint8) uint8 {
	p, q := Pink(c), Cyan(c)
	if ch&ChannelPink != 0 {
		p = saturate(p + gain)
	}
	if ch&ChannelCyan != 0 {
		q = saturate(q + gain)
	}
	return Pack(p, q)
}

func saturate(v uint8) uint8 {
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

// DecayRule fades one channel level. Implementations must never raise a
// level and must reach zero from any level in a bounded number of steps.
type DecayRule interface {
	Name() string
	Apply(level uint8) uint8
}

// Halve drops a level to half, rounding down: 15, 7, 3, 1, 0.
type Halve struct{}

func (Halve) Name() string            { return "halve" }
func (Halve) Apply(level uint8) uint8 { return level >> 1 }

// Subtract removes a constant per application, clamping at zero.
type Subtract struct {
	Amount uint8
}

func (s Subtract) Name() string { return "subtract" }

func (s Subtract) Apply(level uint8) uint8 {
	amount := s.Amount
	if amount == 0 {
		amount = 1
	}
	if level <= amount {
		return 0
	}
	return level - amount
}

// ApplyCell fades both channels of a colour byte.
func ApplyCell(rule DecayRule, c uint8) uint8 {
	return Pack(rule.Apply(Pink(c)), rule.Apply(Cyan(c)))
}

var decayRules = map[string]func(amount uint8) DecayRule{
	"halve":    func(uint8) DecayRule { return Halve{} },
	"subtract": func(amount uint8) DecayRule { return Subtract{Amount: amount} },
}

// NewDecayRule returns the named rule.
func NewDecayRule(name string, amount uint8) (DecayRule, error) {
	fn, ok := decayRules[name]
	if !ok {
		return nil, fmt.Errorf("unknown decay rule: %s", name)
	}
	return fn(amount), nil
}

// DecayRules lists registered rule names.
func DecayRules() []string {
	names := make([]string, 0, len(decayRules))
	for name := range decayRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
