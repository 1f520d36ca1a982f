package notation

import (
	"fmt"

	"mandashop/core/types"
)

const (
	// PerfectIV is the maximum individual value of a stat
	PerfectIV = 31
)

// FromSpread encodes a full per-stat IV selection into canonical notation.
// Stats at 31 count toward the tier, stats at 0 become zeroed tokens and any
// other value becomes an informational token. Missing stats count as 31.
func FromSpread(ivs map[types.StatID]int) (string, error) {
	spec := &types.IVSpec{}
	perfect := 0

	for _, stat := range types.AllStats {
		v, ok := ivs[stat]
		if !ok {
			v = PerfectIV
		}
		switch {
		case v < 0 || v > PerfectIV:
			return "", fmt.Errorf("%s IV must be between 0 and %d, got %d", stat, PerfectIV, v)
		case v == PerfectIV:
			perfect++
		case v == 0:
			spec.Zeroed = spec.Zeroed.Add(stat)
		default:
			spec.Informational = spec.Informational.Add(stat)
		}
	}

	spec.BaseTier = types.Tier(perfect)
	if !spec.BaseTier.Valid() {
		return "", fmt.Errorf("at least %d perfect IVs are required, got %d", types.MinTier.Perfect(), perfect)
	}
	return spec.Canonical(), nil
}
