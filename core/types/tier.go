package types

import (
	"fmt"
	"strings"
)

// Tier is the number of perfect stats an order guarantees, F2 through F6.
// The zero value is invalid.
type Tier uint8

const (
	TierF2 Tier = iota + 2
	TierF3
	TierF4
	TierF5
	TierF6
)

const (
	// MinTier is the lowest orderable tier
	MinTier = TierF2

	// MaxTier is the highest tier; upgrades stop here
	MaxTier = TierF6
)

// AllTiers lists every tier in ascending order.
var AllTiers = []Tier{TierF2, TierF3, TierF4, TierF5, TierF6}

// ParseTier parses "F5" or "f5"
func ParseTier(s string) (Tier, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 2 || (s[0] != 'F' && s[0] != 'f') {
		return 0, false
	}
	t := Tier(s[1] - '0')
	if s[1] < '0' || s[1] > '9' || !t.Valid() {
		return 0, false
	}
	return t, true
}

// Valid reports whether t is within F2..F6
func (t Tier) Valid() bool {
	return t >= MinTier && t <= MaxTier
}

// Perfect returns the number of perfect stats the tier stands for
func (t Tier) Perfect() int {
	return int(t)
}

// Advance moves the tier up by n steps, capped at F6. It never moves down.
func (t Tier) Advance(n int) Tier {
	if n <= 0 {
		return t
	}
	if int(t)+n >= int(MaxTier) {
		return MaxTier
	}
	return t + Tier(n)
}

// String returns "F5"
func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("F?(%d)", uint8(t))
	}
	return fmt.Sprintf("F%d", uint8(t))
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, ok := ParseTier(string(text))
	if !ok {
		return fmt.Errorf("unknown tier %q", string(text))
	}
	*t = parsed
	return nil
}
