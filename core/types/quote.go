package types

// PriceQuote is the resolver's answer for one IV specification.
type PriceQuote struct {
	// BaseTier is the tier the customer asked for
	BaseTier Tier `json:"base_tier"`

	// FinalTier is BaseTier after zeroed-stat upgrades
	FinalTier Tier `json:"final_tier"`

	// Price is the table price of FinalTier, in whole currency units
	Price int64 `json:"price"`

	// Upgraded is true when FinalTier differs from BaseTier
	Upgraded bool `json:"upgraded"`

	// UpgradeExplanation is a display string, empty unless Upgraded
	UpgradeExplanation string `json:"upgrade_explanation,omitempty"`

	// ZeroedCount is the number of zeroed stats that drove the upgrade
	ZeroedCount int `json:"zeroed_count"`

	// Diagnostic names a missing price table entry. Empty on success.
	Diagnostic string `json:"diagnostic,omitempty"`
}
