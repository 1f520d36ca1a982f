package types

import "strings"

// IVSpec is a validated, normalized IV notation.
type IVSpec struct {
	// BaseTier is the single tier token of the input
	BaseTier Tier `json:"base_tier"`

	// Zeroed holds stats marked zero-valued; each raises the effective tier
	Zeroed StatSet `json:"zeroed"`

	// Informational holds stats carried for display only
	Informational StatSet `json:"informational"`
}

// ZeroedCount is the number of distinct zeroed stats
func (s *IVSpec) ZeroedCount() int {
	return s.Zeroed.Len()
}

// Canonical re-serializes the spec: tier first, then zeroed and informational
// stats in canonical stat order.
func (s *IVSpec) Canonical() string {
	parts := []string{s.BaseTier.String()}
	for _, stat := range s.Zeroed.Stats() {
		parts = append(parts, "0"+stat.String())
	}
	for _, stat := range s.Informational.Stats() {
		parts = append(parts, "-"+stat.String())
	}
	return strings.Join(parts, ", ")
}

// String returns the canonical form
func (s *IVSpec) String() string {
	return s.Canonical()
}
