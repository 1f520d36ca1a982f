// Package notation parses and validates IV notation strings such as
// "F4, 0atk, -spe" into normalized IV specifications.
package notation

import (
	"fmt"

	"mandashop/core/types"
)

// Grammar describes the token shapes one product line accepts.
type Grammar struct {
	// Name identifies the grammar in messages
	Name string

	// MinTier and MaxTier bound the accepted tier tokens
	MinTier types.Tier
	MaxTier types.Tier

	// ZeroPrefix marks a zeroed stat ("0" in 0atk)
	ZeroPrefix byte

	// InfoPrefix marks an informational stat ("-" in -atk). Zero disables the form.
	InfoPrefix byte

	// MaxZeroTokens caps the number of zeroing tokens. Zero means unlimited.
	MaxZeroTokens int

	// RangeMessage is reported for tier tokens outside MinTier..MaxTier
	RangeMessage string
}

var (
	// Standard is the grammar of the standard and competitive lines
	Standard = Grammar{
		Name:         "standard",
		MinTier:      types.TierF2,
		MaxTier:      types.TierF6,
		ZeroPrefix:   '0',
		InfoPrefix:   '-',
		RangeMessage: "only F2 to F6 are accepted",
	}

	// NoGender accepts only F5/F6 and at most one zeroed stat
	NoGender = Grammar{
		Name:          "no-gender",
		MinTier:       types.TierF5,
		MaxTier:       types.TierF6,
		ZeroPrefix:    '0',
		InfoPrefix:    '-',
		MaxZeroTokens: 1,
		RangeMessage:  "no-gender orders accept only F5 or F6",
	}

	// Legacy reads historical order strings where "-atk" meant a zeroed stat
	// and there was no informational form. No product line selects it.
	Legacy = Grammar{
		Name:         "legacy",
		MinTier:      types.TierF2,
		MaxTier:      types.TierF6,
		ZeroPrefix:   '-',
		RangeMessage: "only F2 to F6 are accepted",
	}
)

// ForLine returns the grammar a product line validates with
func ForLine(line types.ProductLine) (Grammar, error) {
	switch line {
	case types.LineStandard, types.LineCompetitive:
		return Standard, nil
	case types.LineNoGender:
		return NoGender, nil
	}
	return Grammar{}, fmt.Errorf("no grammar for product line %q", line)
}

func (g Grammar) tierRange() string {
	if g.MinTier == g.MaxTier-1 {
		return fmt.Sprintf("%s or %s", g.MinTier, g.MaxTier)
	}
	return fmt.Sprintf("%s-%s", g.MinTier, g.MaxTier)
}

// Help returns the accepted formats, suitable for showing next to an error.
func (g Grammar) Help() string {
	help := fmt.Sprintf("Tokens must be separated by commas, e.g. \"%s, %catk\".\n", g.MaxTier-1, g.ZeroPrefix)
	help += fmt.Sprintf("Tier (exactly one): %s\n", g.tierRange())
	help += fmt.Sprintf("Zeroed IVs (raise the tier and price): %catk, %cspe, %chp, ...", g.ZeroPrefix, g.ZeroPrefix, g.ZeroPrefix)
	if g.MaxZeroTokens > 0 {
		help += fmt.Sprintf(" (at most %d)", g.MaxZeroTokens)
	}
	if g.InfoPrefix != 0 {
		help += fmt.Sprintf("\nInformational IVs (no price effect): %catk, %cspe, %chp, ...", g.InfoPrefix, g.InfoPrefix, g.InfoPrefix)
	}
	return help
}
