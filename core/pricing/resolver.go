package pricing

import (
	"fmt"

	"go.uber.org/zap"

	"mandashop/core/types"
	"mandashop/internal/logging"
)

// Resolver turns a validated IV spec into a price quote.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	table  *Table
	logger *zap.Logger
}

// NewResolver creates a resolver over table. A nil table uses DefaultTable
// and a nil logger falls back to the global logger.
func NewResolver(table *Table, logger *zap.Logger) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{
		table:  table,
		logger: logging.OrNop(logger).Named("pricing"),
	}
}

// Table returns the table the resolver prices from
func (r *Resolver) Table() *Table {
	return r.table
}

// Upgrade advances base one step per zeroed stat, capped at F6.
func Upgrade(base types.Tier, zeroed int) types.Tier {
	return base.Advance(zeroed)
}

// Explain describes an upgrade, e.g. "Upgrade: F4 → F6 (2 zeroed IVs)".
func Explain(base, final types.Tier, zeroed int) string {
	noun := "IVs"
	if zeroed == 1 {
		noun = "IV"
	}
	return fmt.Sprintf("Upgrade: %s → %s (%d zeroed %s)", base, final, zeroed, noun)
}

// Quote prices spec for the given product line. It never fails: a missing
// table entry yields price 0 and a Diagnostic.
func (r *Resolver) Quote(spec *types.IVSpec, line types.ProductLine, breeding types.BreedingChoice) types.PriceQuote {
	zeroed := spec.ZeroedCount()
	final := Upgrade(spec.BaseTier, zeroed)

	quote := types.PriceQuote{
		BaseTier:    spec.BaseTier,
		FinalTier:   final,
		Upgraded:    final != spec.BaseTier,
		ZeroedCount: zeroed,
	}
	if quote.Upgraded {
		quote.UpgradeExplanation = Explain(spec.BaseTier, final, zeroed)
	}

	price, ok := r.table.Price(final, line, breeding)
	if !ok {
		key := fmt.Sprintf("%s/%s", line, final)
		if line == types.LineNoGender {
			key += "/" + string(NoGenderBreeding(breeding))
		}
		quote.Diagnostic = fmt.Sprintf("price table has no entry for %s", key)
		r.logger.Warn("missing price table entry",
			zap.String("key", key),
			zap.String("spec", spec.Canonical()))
		return quote
	}

	quote.Price = price
	r.logger.Debug("quoted IV spec",
		zap.String("spec", spec.Canonical()),
		zap.Stringer("line", line),
		zap.Stringer("final_tier", final),
		zap.Int64("price", price))
	return quote
}
