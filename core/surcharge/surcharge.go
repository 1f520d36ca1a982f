// Package surcharge prices the order add-ons that sit outside the IV tier:
// hidden ability, egg moves, trained level, stat training and megastones.
package surcharge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"mandashop/core/pricing"
	"mandashop/core/types"
	"mandashop/internal/errors"
)

// MaxEggMoves is the number of move slots a creature has
const MaxEggMoves = 4

// Kind names a surcharge line item
type Kind string

const (
	KindHiddenAbility Kind = "hidden_ability"
	KindEggMoves      Kind = "egg_moves"
	KindLevel         Kind = "level"
	KindVitamins      Kind = "vitamins"
	KindMegastone     Kind = "megastone"
)

// Options are the add-ons requested for one order.
type Options struct {
	Line types.ProductLine

	HiddenAbility bool
	EggMoves      []string

	// Level is the trained level; zero means untrained
	Level int

	// EVs is the requested stat training; nil means none
	EVs types.EVSpread

	// Megastone is a catalog name; empty means none
	Megastone string
}

// Item is one priced add-on
type Item struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
	Amount int64  `json:"amount"`
}

// Breakdown lists the priced add-ons of an order
type Breakdown struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}

// Amount returns the amount charged for kind, or zero
func (b Breakdown) Amount(kind Kind) int64 {
	for _, item := range b.Items {
		if item.Kind == kind {
			return item.Amount
		}
	}
	return 0
}

// Calculator prices add-ons. It is immutable after construction.
type Calculator struct {
	rates      pricing.Surcharges
	megastones map[string]int64
}

// NewCalculator creates a calculator from surcharge rates and a megastone catalog.
func NewCalculator(rates pricing.Surcharges, megastones map[string]int64) *Calculator {
	catalog := make(map[string]int64, len(megastones))
	for name, price := range megastones {
		catalog[strings.ToLower(name)] = price
	}
	return &Calculator{rates: rates, megastones: catalog}
}

// FromTable creates a calculator from a price table
func FromTable(table *pricing.Table) *Calculator {
	return NewCalculator(table.Surcharges, table.Megastones)
}

// Levels returns the trainable levels in ascending order
func (c *Calculator) Levels() []int {
	levels := make([]int, 0, len(c.rates.Levels))
	for level := range c.rates.Levels {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// Calculate validates opts and prices every requested add-on.
func (c *Calculator) Calculate(opts Options) (Breakdown, error) {
	var b Breakdown
	competitive := opts.Line == types.LineCompetitive

	if opts.HiddenAbility {
		b.Items = append(b.Items, Item{Kind: KindHiddenAbility, Detail: "hidden ability", Amount: c.rates.HiddenAbility})
	}

	if moves := cleanMoves(opts.EggMoves); len(moves) > 0 {
		if len(moves) > MaxEggMoves {
			return Breakdown{}, errors.Inputf("at most %d egg moves can be ordered, got %d", MaxEggMoves, len(moves))
		}
		amount := decimal.NewFromInt(c.rates.EggMove).Mul(decimal.NewFromInt(int64(len(moves))))
		b.Items = append(b.Items, Item{Kind: KindEggMoves, Detail: strings.Join(moves, ", "), Amount: amount.IntPart()})
	}

	if opts.Level != 0 {
		if !competitive {
			return Breakdown{}, errors.Input("level training is only available on the competitive line")
		}
		price, ok := c.rates.Levels[opts.Level]
		if !ok {
			return Breakdown{}, errors.Inputf("level %d is not offered (available: %s)", opts.Level, joinInts(c.Levels()))
		}
		b.Items = append(b.Items, Item{Kind: KindLevel, Detail: fmt.Sprintf("level %d", opts.Level), Amount: price})
	}

	if len(opts.EVs) > 0 {
		if !competitive {
			return Breakdown{}, errors.Input("stat training is only available on the competitive line")
		}
		if err := opts.EVs.Validate(); err != nil {
			return Breakdown{}, errors.Wrap(errors.TypeInput, "invalid EV spread", err)
		}
		if n := opts.EVs.Vitamins(); n > 0 {
			amount := decimal.NewFromInt(c.rates.Vitamin).Mul(decimal.NewFromInt(int64(n)))
			b.Items = append(b.Items, Item{
				Kind:   KindVitamins,
				Detail: fmt.Sprintf("%d vitamins (%s)", n, opts.EVs),
				Amount: amount.IntPart(),
			})
		}
	}

	if name := strings.TrimSpace(opts.Megastone); name != "" {
		if !competitive {
			return Breakdown{}, errors.Input("megastones are only available on the competitive line")
		}
		price, ok := c.megastones[strings.ToLower(name)]
		if !ok {
			return Breakdown{}, errors.NotFound("megastone", name)
		}
		b.Items = append(b.Items, Item{Kind: KindMegastone, Detail: name, Amount: price})
	}

	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(decimal.NewFromInt(item.Amount))
	}
	b.Total = total.IntPart()
	return b, nil
}

// cleanMoves drops blanks and the storefront's "none" placeholders
func cleanMoves(moves []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range moves {
		m = strings.TrimSpace(m)
		key := strings.ToLower(m)
		if m == "" || key == "none" || key == "nenhum" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
