package types

// Species is the subset of species data that decides which product lines
// may sell it.
type Species struct {
	Name        string `json:"name"`
	IsLegendary bool   `json:"is_legendary"`
	IsMythical  bool   `json:"is_mythical"`

	// Genderless is true when the species has no gender at all
	Genderless bool `json:"genderless"`
}

// Restricted reports whether the species is legendary or mythical
func (s *Species) Restricted() bool {
	return s.IsLegendary || s.IsMythical
}
