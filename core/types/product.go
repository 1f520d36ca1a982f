package types

import (
	"fmt"
	"strings"
)

// ProductLine is the order category. It selects the notation grammar and the
// price table.
type ProductLine string

const (
	LineStandard    ProductLine = "standard"
	LineCompetitive ProductLine = "competitive"
	LineNoGender    ProductLine = "no-gender"
)

// AllProductLines lists the supported product lines
var AllProductLines = []ProductLine{LineStandard, LineCompetitive, LineNoGender}

var productLineAliases = map[string]ProductLine{
	"standard":    LineStandard,
	"normal":      LineStandard,
	"competitive": LineCompetitive,
	"competitivo": LineCompetitive,
	"no-gender":   LineNoGender,
	"nogender":    LineNoGender,
	"genderless":  LineNoGender,
}

// ParseProductLine accepts canonical names and the storefront's aliases.
func ParseProductLine(s string) (ProductLine, error) {
	if line, ok := productLineAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return line, nil
	}
	return "", fmt.Errorf("unknown product line %q (expected standard, competitive or no-gender)", s)
}

// String returns the string representation
func (p ProductLine) String() string {
	return string(p)
}

// Valid reports whether p is a known product line
func (p ProductLine) Valid() bool {
	switch p {
	case LineStandard, LineCompetitive, LineNoGender:
		return true
	}
	return false
}

// BreedingChoice records whether the ordered creature can breed.
// Only the no-gender price table depends on it.
type BreedingChoice string

const (
	BreedingUnspecified BreedingChoice = ""
	BreedingBreedable   BreedingChoice = "breedable"
	BreedingCastrated   BreedingChoice = "castrated"
)

// AllBreedingChoices lists the specified choices
var AllBreedingChoices = []BreedingChoice{BreedingBreedable, BreedingCastrated}

var breedingAliases = map[string]BreedingChoice{
	"breedable": BreedingBreedable,
	"breedavel": BreedingBreedable,
	"breedável": BreedingBreedable,
	"castrated": BreedingCastrated,
	"castrado":  BreedingCastrated,
}

// ParseBreedingChoice accepts English and storefront spellings. Empty input
// yields BreedingUnspecified.
func ParseBreedingChoice(s string) (BreedingChoice, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BreedingUnspecified, nil
	}
	if choice, ok := breedingAliases[s]; ok {
		return choice, nil
	}
	return BreedingUnspecified, fmt.Errorf("unknown breeding choice %q (expected breedable or castrated)", s)
}

// String returns the string representation
func (b BreedingChoice) String() string {
	if b == BreedingUnspecified {
		return "unspecified"
	}
	return string(b)
}
