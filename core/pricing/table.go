// Package pricing resolves IV specifications into final tiers and prices.
// Prices come from a Table built in code or loaded from an HCL file.
package pricing

import (
	"fmt"

	"mandashop/core/notation"
	"mandashop/core/types"
)

// TierPrices maps a final tier to its price in the table currency.
type TierPrices map[types.Tier]int64

// Table holds every price the storefront quotes.
type Table struct {
	// Currency is informational; all amounts are integers in this currency
	Currency string `json:"currency"`

	// Lines holds the standard and competitive tier prices
	Lines map[types.ProductLine]TierPrices `json:"lines"`

	// NoGender holds the no-gender tier prices per breeding choice
	NoGender map[types.BreedingChoice]TierPrices `json:"no_gender"`

	// Surcharges are the add-on rates outside the tier price
	Surcharges Surcharges `json:"surcharges"`

	// Megastones maps a megastone name to its price
	Megastones map[string]int64 `json:"megastones"`
}

// Surcharges are the flat add-on rates of an order.
type Surcharges struct {
	HiddenAbility int64 `json:"hidden_ability"`
	EggMove       int64 `json:"egg_move"`
	Vitamin       int64 `json:"vitamin"`

	// Levels maps a trained level to its price
	Levels map[int]int64 `json:"levels"`
}

// DefaultTable returns the storefront's current price list.
func DefaultTable() *Table {
	linePrices := func() TierPrices {
		return TierPrices{
			types.TierF2: 25000,
			types.TierF3: 30000,
			types.TierF4: 40000,
			types.TierF5: 70000,
			types.TierF6: 90000,
		}
	}

	return &Table{
		Currency: "BRL",
		Lines: map[types.ProductLine]TierPrices{
			types.LineStandard:    linePrices(),
			types.LineCompetitive: linePrices(),
		},
		NoGender: map[types.BreedingChoice]TierPrices{
			types.BreedingBreedable: {types.TierF5: 120000, types.TierF6: 200000},
			types.BreedingCastrated: {types.TierF5: 110000, types.TierF6: 190000},
		},
		Surcharges: Surcharges{
			HiddenAbility: 15000,
			EggMove:       10000,
			Vitamin:       400,
			Levels:        map[int]int64{50: 40000, 100: 80000},
		},
		Megastones: map[string]int64{
			"Charizardite X": 50000,
			"Charizardite Y": 50000,
			"Gengarite":      45000,
		},
	}
}

// NoGenderBreeding resolves the breeding choice used for a no-gender price.
// An unspecified choice prices as castrated.
func NoGenderBreeding(b types.BreedingChoice) types.BreedingChoice {
	if b == types.BreedingUnspecified {
		return types.BreedingCastrated
	}
	return b
}

// Price looks up the price of a final tier. Breeding is only consulted for
// the no-gender line.
func (t *Table) Price(tier types.Tier, line types.ProductLine, breeding types.BreedingChoice) (int64, bool) {
	var prices TierPrices
	if line == types.LineNoGender {
		prices = t.NoGender[NoGenderBreeding(breeding)]
	} else {
		prices = t.Lines[line]
	}

	price, ok := prices[tier]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// Megastone returns the catalog price of a megastone
func (t *Table) Megastone(name string) (int64, bool) {
	price, ok := t.Megastones[name]
	return price, ok
}

// Missing lists every orderable combination without a positive price.
// An empty result means every valid IV spec can be quoted.
func (t *Table) Missing() []string {
	var missing []string

	for _, line := range []types.ProductLine{types.LineStandard, types.LineCompetitive} {
		for tier := notation.Standard.MinTier; tier <= notation.Standard.MaxTier; tier++ {
			if _, ok := t.Price(tier, line, types.BreedingUnspecified); !ok {
				missing = append(missing, fmt.Sprintf("%s/%s", line, tier))
			}
		}
	}

	for _, breeding := range types.AllBreedingChoices {
		for tier := notation.NoGender.MinTier; tier <= notation.NoGender.MaxTier; tier++ {
			if _, ok := t.Price(tier, types.LineNoGender, breeding); !ok {
				missing = append(missing, fmt.Sprintf("%s/%s/%s", types.LineNoGender, tier, breeding))
			}
		}
	}

	s := t.Surcharges
	if s.HiddenAbility <= 0 {
		missing = append(missing, "surcharges/hidden_ability")
	}
	if s.EggMove <= 0 {
		missing = append(missing, "surcharges/egg_move")
	}
	if s.Vitamin <= 0 {
		missing = append(missing, "surcharges/vitamin")
	}

	return missing
}
