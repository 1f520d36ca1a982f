package types

import (
	"encoding/json"
	"testing"
)

func TestParseStatSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want StatID
	}{
		{"hp", StatHP},
		{"ATK", StatAttack},
		{"attack", StatAttack},
		{"Defense", StatDefense},
		{"special-attack", StatSpecialAttack},
		{"special", StatSpecialAttack},
		{"special-defense", StatSpecialDefense},
		{"spd", StatSpecialDefense},
		{"speed", StatSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStat(tt.in)
			if !ok {
				t.Fatalf("ParseStat(%q) rejected", tt.in)
			}
			if got != tt.want {
				t.Errorf("ParseStat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "sp", "special-speed", "hpp"} {
		if _, ok := ParseStat(bad); ok {
			t.Errorf("ParseStat(%q) should fail", bad)
		}
	}
}

func TestStatSetOrderAndDedup(t *testing.T) {
	set := NewStatSet(StatSpeed, StatAttack, StatSpeed, StatHP)

	if set.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", set.Len())
	}
	if got := set.String(); got != "hp, atk, spe" {
		t.Errorf("expected canonical order, got %q", got)
	}
	if set.Has(StatDefense) {
		t.Error("unexpected member def")
	}
	if !NewStatSet().Empty() {
		t.Error("empty set should be empty")
	}
}

func TestStatSetJSON(t *testing.T) {
	set := NewStatSet(StatSpeed, StatAttack)
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["atk","spe"]` {
		t.Errorf("unexpected encoding %s", data)
	}

	var decoded StatSet
	if err := json.Unmarshal([]byte(`["speed","attack"]`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != set {
		t.Errorf("decoded %v, want %v", decoded, set)
	}
}

func TestTierAdvance(t *testing.T) {
	tests := []struct {
		base Tier
		n    int
		want Tier
	}{
		{TierF4, 0, TierF4},
		{TierF4, 1, TierF5},
		{TierF4, 2, TierF6},
		{TierF4, 5, TierF6},
		{TierF5, 1, TierF6},
		{TierF5, 3, TierF6},
		{TierF6, 1, TierF6},
		{TierF2, 2, TierF4},
		{TierF3, -1, TierF3},
	}

	for _, tt := range tests {
		got := tt.base.Advance(tt.n)
		if got != tt.want {
			t.Errorf("%s.Advance(%d) = %s, want %s", tt.base, tt.n, got, tt.want)
		}
	}
}

func TestTierAdvanceMonotonic(t *testing.T) {
	for _, base := range AllTiers {
		prev := base
		for n := 0; n <= 6; n++ {
			got := base.Advance(n)
			if got < prev {
				t.Fatalf("%s.Advance(%d) = %s went below %s", base, n, got, prev)
			}
			if got > MaxTier {
				t.Fatalf("%s.Advance(%d) = %s exceeds cap", base, n, got)
			}
			prev = got
		}
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range AllTiers {
		got, ok := ParseTier(tier.String())
		if !ok || got != tier {
			t.Errorf("ParseTier(%s) = %v, %v", tier, got, ok)
		}
	}
	if got, ok := ParseTier("f3"); !ok || got != TierF3 {
		t.Errorf("lowercase tier rejected: %v %v", got, ok)
	}
	for _, bad := range []string{"F1", "F7", "F", "F10", "G5", ""} {
		if _, ok := ParseTier(bad); ok {
			t.Errorf("ParseTier(%q) should fail", bad)
		}
	}
}

func TestProductLineAndBreedingAliases(t *testing.T) {
	lines := map[string]ProductLine{
		"normal":      LineStandard,
		"Competitivo": LineCompetitive,
		"genderless":  LineNoGender,
		"no-gender":   LineNoGender,
	}
	for in, want := range lines {
		got, err := ParseProductLine(in)
		if err != nil || got != want {
			t.Errorf("ParseProductLine(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseProductLine("legendary"); err == nil {
		t.Error("expected error for unknown line")
	}

	choices := map[string]BreedingChoice{
		"":          BreedingUnspecified,
		"Breedável": BreedingBreedable,
		"breedavel": BreedingBreedable,
		"castrado":  BreedingCastrated,
	}
	for in, want := range choices {
		got, err := ParseBreedingChoice(in)
		if err != nil || got != want {
			t.Errorf("ParseBreedingChoice(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBreedingChoice("maybe"); err == nil {
		t.Error("expected error for unknown breeding choice")
	}
}

func TestCanonical(t *testing.T) {
	spec := &IVSpec{
		BaseTier:      TierF4,
		Zeroed:        NewStatSet(StatSpeed, StatAttack),
		Informational: NewStatSet(StatDefense),
	}
	if got := spec.Canonical(); got != "F4, 0atk, 0spe, -def" {
		t.Errorf("Canonical() = %q", got)
	}
}

func TestFormatK(t *testing.T) {
	tests := []struct {
		amount  int64
		want    string
		rounded string
	}{
		{90000, "90k", "90k"},
		{1200, "1.2k", "1k"},
		{1500, "1.5k", "2k"},
		{950, "950", "950"},
		{0, "0", "0"},
		{215400, "215.4k", "215k"},
	}
	for _, tt := range tests {
		if got := FormatK(tt.amount); got != tt.want {
			t.Errorf("FormatK(%d) = %q, want %q", tt.amount, got, tt.want)
		}
		if got := FormatKRounded(tt.amount); got != tt.rounded {
			t.Errorf("FormatKRounded(%d) = %q, want %q", tt.amount, got, tt.rounded)
		}
	}
}

func TestEVSpread(t *testing.T) {
	evs := EVSpread{StatAttack: 252, StatSpeed: 252, StatHP: 6}
	if err := evs.Validate(); err != nil {
		t.Fatalf("valid spread rejected: %v", err)
	}
	if got := evs.Vitamins(); got != 50 {
		t.Errorf("Vitamins() = %d, want 50", got)
	}
	if got := evs.String(); got != "6 hp / 252 atk / 252 spe" {
		t.Errorf("String() = %q", got)
	}

	bad := []EVSpread{
		{StatAttack: 253},
		{StatAttack: -1},
		{StatAttack: 252, StatSpeed: 252, StatHP: 10},
	}
	for _, e := range bad {
		if err := e.Validate(); err == nil {
			t.Errorf("expected %v to be rejected", e)
		}
	}
}
