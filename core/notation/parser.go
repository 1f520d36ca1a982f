package notation

import (
	"strings"

	"mandashop/core/types"
	"mandashop/internal/errors"
)

// Parse validates input under the grammar of the given product line.
func Parse(input string, line types.ProductLine) (*types.IVSpec, error) {
	g, err := ForLine(line)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "cannot validate IV notation", err)
	}
	return ParseWith(input, g)
}

// ParseWith validates input under g. On failure the error is a
// *ValidationError listing every problem found, never just the first.
func ParseWith(input string, g Grammar) (*types.IVSpec, error) {
	if strings.TrimSpace(input) == "" || len(Split(input)) == 0 {
		return nil, &ValidationError{Kind: errors.TypeEmptyInput, Grammar: g}
	}

	verr := &ValidationError{Kind: errors.TypeMalformedNotation, Grammar: g}
	spec := &types.IVSpec{}
	tierSeen := false
	zeroTokens := 0

	for _, tok := range Lex(input, g) {
		switch tok.Kind {
		case TierToken:
			if !tok.InRange(g) {
				verr.add(ReasonTierOutOfRange, tok.Raw, "tier %q is not allowed: %s", tok.Raw, g.RangeMessage)
			}
			if tierSeen {
				verr.add(ReasonDuplicateTier, tok.Raw, "duplicate tier %q: only one tier is allowed", tok.Raw)
				continue
			}
			tierSeen = true
			spec.BaseTier = tok.Tier
		case ZeroToken:
			zeroTokens++
			spec.Zeroed = spec.Zeroed.Add(tok.Stat)
		case InfoToken:
			spec.Informational = spec.Informational.Add(tok.Stat)
		default:
			verr.add(ReasonUnrecognizedToken, tok.Raw, "%q is not a valid token", tok.Raw)
		}
	}

	if !tierSeen {
		verr.add(ReasonMissingTier, "", "a tier (%s) is required", g.tierRange())
	}
	if g.MaxZeroTokens > 0 && zeroTokens > g.MaxZeroTokens {
		verr.add(ReasonTooManyZeroed, "", "%s orders allow at most %d zeroed IV, got %d", g.Name, g.MaxZeroTokens, zeroTokens)
	}

	if len(verr.Reasons) > 0 {
		return nil, verr
	}
	return spec, nil
}

// Validate reports only whether input is acceptable for the product line.
func Validate(input string, line types.ProductLine) error {
	_, err := Parse(input, line)
	return err
}
