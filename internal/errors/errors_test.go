package errors

import (
	"fmt"
	"testing"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Type
	}{
		{"direct", Input("missing species"), TypeInput},
		{"wrapped", fmt.Errorf("loading: %w", Pricing("price table is incomplete", nil)), TypePricing},
		{"plain", fmt.Errorf("boom"), TypeInternal},
		{"nil", nil, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	cause := fmt.Errorf("unknown product line")
	err := Wrapf(TypeInput, cause, "invalid product line %q", "shiny")

	if err.Detail() != `invalid product line "shiny": unknown product line` {
		t.Errorf("Unexpected detail %q", err.Detail())
	}
	if err.Unwrap() != cause {
		t.Error("Expected the cause to be kept")
	}
	if !IsType(err, TypeInput) {
		t.Errorf("Expected INPUT_ERROR, got %s", err.Type)
	}
}
