package types

import "fmt"

const (
	// MaxEVPerStat is the effort value cap for a single stat
	MaxEVPerStat = 252

	// MaxEVTotal is the effort value cap across all stats
	MaxEVTotal = 510

	// EVsPerVitamin is the number of effort values one vitamin grants
	EVsPerVitamin = 10
)

// EVSpread holds requested effort values per stat
type EVSpread map[StatID]int

// Total sums the spread
func (e EVSpread) Total() int {
	total := 0
	for _, v := range e {
		total += v
	}
	return total
}

// Vitamins counts the vitamins needed: one per full 10 EVs of each stat.
func (e EVSpread) Vitamins() int {
	n := 0
	for _, v := range e {
		n += v / EVsPerVitamin
	}
	return n
}

// Validate checks the per-stat and total caps
func (e EVSpread) Validate() error {
	for _, stat := range AllStats {
		v := e[stat]
		if v < 0 || v > MaxEVPerStat {
			return fmt.Errorf("%s EVs must be between 0 and %d, got %d", stat, MaxEVPerStat, v)
		}
	}
	for stat := range e {
		if !stat.Valid() {
			return fmt.Errorf("unknown stat %d in EV spread", uint8(stat))
		}
	}
	if total := e.Total(); total > MaxEVTotal {
		return fmt.Errorf("total EVs must not exceed %d, got %d", MaxEVTotal, total)
	}
	return nil
}

// String renders non-zero entries as "252 atk / 252 spe / 4 hp" in canonical order
func (e EVSpread) String() string {
	out := ""
	for _, stat := range AllStats {
		v := e[stat]
		if v == 0 {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += fmt.Sprintf("%d %s", v, stat)
	}
	return out
}
