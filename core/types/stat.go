// Package types - Stat identifiers and stat sets
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatID identifies one of the six battle stats. The zero value is invalid.
type StatID uint8

const (
	StatHP StatID = iota + 1
	StatAttack
	StatDefense
	StatSpecialAttack
	StatSpecialDefense
	StatSpeed
)

// AllStats lists every stat in canonical order.
var AllStats = []StatID{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

var statNames = [...]string{
	StatHP:             "hp",
	StatAttack:         "atk",
	StatDefense:        "def",
	StatSpecialAttack:  "spa",
	StatSpecialDefense: "spd",
	StatSpeed:          "spe",
}

// statSynonyms maps every accepted spelling to its canonical stat.
// "special" is the historical shorthand for special attack.
var statSynonyms = map[string]StatID{
	"hp":              StatHP,
	"atk":             StatAttack,
	"attack":          StatAttack,
	"def":             StatDefense,
	"defense":         StatDefense,
	"spa":             StatSpecialAttack,
	"special-attack":  StatSpecialAttack,
	"special":         StatSpecialAttack,
	"spd":             StatSpecialDefense,
	"special-defense": StatSpecialDefense,
	"spe":             StatSpeed,
	"speed":           StatSpeed,
}

// ParseStat normalizes a stat name or synonym, case-insensitively.
func ParseStat(s string) (StatID, bool) {
	id, ok := statSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return id, ok
}

// Valid reports whether s is one of the six stats
func (s StatID) Valid() bool {
	return s >= StatHP && s <= StatSpeed
}

// String returns the canonical short name
func (s StatID) String() string {
	if !s.Valid() {
		return fmt.Sprintf("stat(%d)", uint8(s))
	}
	return statNames[s]
}

// MarshalText implements encoding.TextMarshaler
func (s StatID) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stat %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *StatID) UnmarshalText(text []byte) error {
	id, ok := ParseStat(string(text))
	if !ok {
		return fmt.Errorf("unknown stat %q", string(text))
	}
	*s = id
	return nil
}

// StatSet is a set of stats. Iteration follows canonical stat order.
type StatSet uint8

// NewStatSet builds a set from the given stats
func NewStatSet(stats ...StatID) StatSet {
	var set StatSet
	for _, s := range stats {
		set = set.Add(s)
	}
	return set
}

func (set StatSet) bit(s StatID) StatSet {
	return 1 << (s - 1)
}

// Add returns the set with s included
func (set StatSet) Add(s StatID) StatSet {
	if !s.Valid() {
		return set
	}
	return set | set.bit(s)
}

// Has reports membership
func (set StatSet) Has(s StatID) bool {
	return s.Valid() && set&set.bit(s) != 0
}

// Len returns the number of stats in the set
func (set StatSet) Len() int {
	n := 0
	for _, s := range AllStats {
		if set.Has(s) {
			n++
		}
	}
	return n
}

// Empty reports whether the set has no members
func (set StatSet) Empty() bool {
	return set == 0
}

// Stats returns the members in canonical order
func (set StatSet) Stats() []StatID {
	out := make([]StatID, 0, set.Len())
	for _, s := range AllStats {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Names returns the canonical member names in order
func (set StatSet) Names() []string {
	stats := set.Stats()
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.String()
	}
	return out
}

// String renders the set as "atk, spe"
func (set StatSet) String() string {
	return strings.Join(set.Names(), ", ")
}

// MarshalJSON encodes the set as an ordered list of names
func (set StatSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Names())
}

// UnmarshalJSON decodes a list of stat names or synonyms
func (set *StatSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out StatSet
	for _, name := range names {
		id, ok := ParseStat(name)
		if !ok {
			return fmt.Errorf("unknown stat %q", name)
		}
		out = out.Add(id)
	}
	*set = out
	return nil
}
