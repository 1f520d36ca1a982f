package pricing

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"mandashop/core/types"
	"mandashop/internal/errors"
)

// tableFile is the HCL layout of a price table:
//
//	currency = "BRL"
//
//	line "standard" {
//	  prices = { F2 = 25000, F6 = 90000 }
//	}
//
//	line "no-gender" {
//	  breeding "breedable" {
//	    prices = { F5 = 120000, F6 = 200000 }
//	  }
//	}
//
//	surcharges {
//	  hidden_ability = 15000
//	  egg_move       = 10000
//	  vitamin        = 400
//	  levels         = { "50" = 40000, "100" = 80000 }
//	}
//
//	megastone "Gengarite" {
//	  price = 45000
//	}
type tableFile struct {
	Currency   string           `hcl:"currency,optional"`
	Lines      []lineBlock      `hcl:"line,block"`
	Surcharges *surchargeBlock  `hcl:"surcharges,block"`
	Megastones []megastoneBlock `hcl:"megastone,block"`
}

type lineBlock struct {
	Name     string           `hcl:"name,label"`
	Prices   map[string]int64 `hcl:"prices,optional"`
	Breeding []breedingBlock  `hcl:"breeding,block"`
}

type breedingBlock struct {
	Choice string           `hcl:"choice,label"`
	Prices map[string]int64 `hcl:"prices"`
}

type surchargeBlock struct {
	HiddenAbility int64            `hcl:"hidden_ability"`
	EggMove       int64            `hcl:"egg_move"`
	Vitamin       int64            `hcl:"vitamin"`
	Levels        map[string]int64 `hcl:"levels,optional"`
}

type megastoneBlock struct {
	Name  string `hcl:"name,label"`
	Price int64  `hcl:"price"`
}

// LoadTable reads a price table from an HCL file.
func LoadTable(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read price table", err).WithContext("path", path)
	}
	return ParseTable(src, path)
}

// ParseTable decodes an HCL price table. filename is only used in diagnostics.
func ParseTable(src []byte, filename string) (*Table, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Config("failed to parse price table", diags).WithContext("path", filename)
	}

	var raw tableFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Config("failed to decode price table", diags).WithContext("path", filename)
	}

	table, err := raw.build()
	if err != nil {
		return nil, errors.Config("invalid price table", err).WithContext("path", filename)
	}
	return table, nil
}

func (f *tableFile) build() (*Table, error) {
	table := &Table{
		Currency:   f.Currency,
		Lines:      make(map[types.ProductLine]TierPrices),
		NoGender:   make(map[types.BreedingChoice]TierPrices),
		Megastones: make(map[string]int64),
	}

	for _, lb := range f.Lines {
		line, err := types.ParseProductLine(lb.Name)
		if err != nil {
			return nil, err
		}

		if line == types.LineNoGender {
			if len(lb.Prices) > 0 {
				return nil, fmt.Errorf("line %q: prices belong in breeding blocks", lb.Name)
			}
			for _, bb := range lb.Breeding {
				choice, err := types.ParseBreedingChoice(bb.Choice)
				if err != nil || choice == types.BreedingUnspecified {
					return nil, fmt.Errorf("line %q: unknown breeding choice %q", lb.Name, bb.Choice)
				}
				prices, err := tierPrices(bb.Prices)
				if err != nil {
					return nil, fmt.Errorf("line %q breeding %q: %w", lb.Name, bb.Choice, err)
				}
				table.NoGender[choice] = prices
			}
			continue
		}

		if len(lb.Breeding) > 0 {
			return nil, fmt.Errorf("line %q: breeding blocks are only allowed on the no-gender line", lb.Name)
		}
		prices, err := tierPrices(lb.Prices)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", lb.Name, err)
		}
		table.Lines[line] = prices
	}

	if f.Surcharges != nil {
		table.Surcharges = Surcharges{
			HiddenAbility: f.Surcharges.HiddenAbility,
			EggMove:       f.Surcharges.EggMove,
			Vitamin:       f.Surcharges.Vitamin,
			Levels:        make(map[int]int64),
		}
		for key, price := range f.Surcharges.Levels {
			level, err := strconv.Atoi(key)
			if err != nil || level < 1 || level > 100 {
				return nil, fmt.Errorf("surcharges: invalid level %q", key)
			}
			table.Surcharges.Levels[level] = price
		}
	}

	for _, mb := range f.Megastones {
		if _, dup := table.Megastones[mb.Name]; dup {
			return nil, fmt.Errorf("megastone %q defined twice", mb.Name)
		}
		table.Megastones[mb.Name] = mb.Price
	}

	return table, nil
}

func tierPrices(raw map[string]int64) (TierPrices, error) {
	prices := make(TierPrices, len(raw))
	for key, price := range raw {
		tier, ok := types.ParseTier(key)
		if !ok {
			return nil, fmt.Errorf("unknown tier %q", key)
		}
		if price <= 0 {
			return nil, fmt.Errorf("price for %s must be positive, got %d", tier, price)
		}
		prices[tier] = price
	}
	return prices, nil
}
