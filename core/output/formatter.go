// Package output renders quotes and price tables for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"mandashop/core/notation"
	"mandashop/core/pricing"
	"mandashop/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote writes a single quote
	RenderQuote(w io.Writer, result *QuoteResult) error

	// RenderTable writes a price table with its coverage gaps
	RenderTable(w io.Writer, table *pricing.Table) error
}

// QuoteResult is one parsed and priced IV notation
type QuoteResult struct {
	Line      types.ProductLine    `json:"line"`
	Breeding  types.BreedingChoice `json:"breeding,omitempty"`
	Canonical string               `json:"canonical"`
	Spec      *types.IVSpec        `json:"spec"`
	Quote     types.PriceQuote     `json:"quote"`

	// PriceDisplay is the storefront rendering of Quote.Price
	PriceDisplay string `json:"price_display"`
}

// NewQuoteResult assembles a result from a parsed spec and its quote
func NewQuoteResult(line types.ProductLine, breeding types.BreedingChoice, spec *types.IVSpec, quote types.PriceQuote) *QuoteResult {
	if line == types.LineNoGender {
		breeding = pricing.NoGenderBreeding(breeding)
	} else {
		breeding = types.BreedingUnspecified
	}
	return &QuoteResult{
		Line:         line,
		Breeding:     breeding,
		Canonical:    spec.Canonical(),
		Spec:         spec,
		Quote:        quote,
		PriceDisplay: types.FormatK(quote.Price),
	}
}

// New returns the formatter for a format name
func New(format string) (Formatter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatCLI, "":
		return cliFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected cli or json)", format)
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) RenderQuote(w io.Writer, r *QuoteResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Line:\t%s\n", r.Line)
	if r.Breeding != types.BreedingUnspecified {
		fmt.Fprintf(tw, "Breeding:\t%s\n", r.Breeding)
	}
	fmt.Fprintf(tw, "Notation:\t%s\n", r.Canonical)
	if !r.Spec.Zeroed.Empty() {
		fmt.Fprintf(tw, "Zeroed:\t%s\n", strings.Join(r.Spec.Zeroed.Names(), ", "))
	}
	if !r.Spec.Informational.Empty() {
		fmt.Fprintf(tw, "Informational:\t%s\n", strings.Join(r.Spec.Informational.Names(), ", "))
	}
	if r.Quote.Upgraded {
		fmt.Fprintf(tw, "Tier:\t%s\n", r.Quote.UpgradeExplanation)
	} else {
		fmt.Fprintf(tw, "Tier:\t%s\n", r.Quote.FinalTier)
	}
	if r.Quote.Diagnostic != "" {
		fmt.Fprintf(tw, "Price:\tunavailable (%s)\n", r.Quote.Diagnostic)
	} else {
		fmt.Fprintf(tw, "Price:\t%s\n", r.PriceDisplay)
	}
	return tw.Flush()
}

func (cliFormatter) RenderTable(w io.Writer, table *pricing.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Currency:\t%s\n\n", table.Currency)

	fmt.Fprintln(tw, "LINE\tTIER\tPRICE")
	for _, line := range []types.ProductLine{types.LineStandard, types.LineCompetitive} {
		for tier := notation.Standard.MinTier; tier <= notation.Standard.MaxTier; tier++ {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", line, tier, priceCell(table.Lines[line], tier))
		}
	}
	for _, b := range []types.BreedingChoice{types.BreedingBreedable, types.BreedingCastrated} {
		for tier := notation.NoGender.MinTier; tier <= notation.NoGender.MaxTier; tier++ {
			fmt.Fprintf(tw, "%s (%s)\t%s\t%s\n", types.LineNoGender, b, tier, priceCell(table.NoGender[b], tier))
		}
	}

	s := table.Surcharges
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SURCHARGE\tPRICE")
	fmt.Fprintf(tw, "hidden ability\t%s\n", types.FormatK(s.HiddenAbility))
	fmt.Fprintf(tw, "egg move (each)\t%s\n", types.FormatK(s.EggMove))
	fmt.Fprintf(tw, "vitamin (each)\t%d\n", s.Vitamin)
	levels := make([]int, 0, len(s.Levels))
	for level := range s.Levels {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		fmt.Fprintf(tw, "level %d\t%s\n", level, types.FormatK(s.Levels[level]))
	}

	if len(table.Megastones) > 0 {
		names := make([]string, 0, len(table.Megastones))
		for name := range table.Megastones {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "MEGASTONE\tPRICE")
		for _, name := range names {
			fmt.Fprintf(tw, "%s\t%s\n", name, types.FormatK(table.Megastones[name]))
		}
	}

	if missing := table.Missing(); len(missing) > 0 {
		fmt.Fprintf(tw, "\nMissing entries: %s\n", strings.Join(missing, ", "))
	}
	return tw.Flush()
}

func priceCell(prices pricing.TierPrices, tier types.Tier) string {
	if p, ok := prices[tier]; ok && p > 0 {
		return types.FormatK(p)
	}
	return "-"
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) RenderQuote(w io.Writer, r *QuoteResult) error {
	return writeJSON(w, r)
}

func (jsonFormatter) RenderTable(w io.Writer, table *pricing.Table) error {
	return writeJSON(w, struct {
		Table   *pricing.Table `json:"table"`
		Missing []string       `json:"missing"`
	}{table, table.Missing()})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
