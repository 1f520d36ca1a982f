package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mandashop/core/notation"
	"mandashop/core/order"
	"mandashop/core/output"
	"mandashop/core/types"
	"mandashop/internal/config"
	"mandashop/internal/errors"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace([]string{})
		} else if f.Value.Type() != "stringToInt" {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.Set(config.Default())
	resetFlags(rootCmd)
	orderReq = order.Request{}
	orderEVs = map[string]int{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "mandashop version "+version) {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"standard", []string{"validate", "f4, 0ATK, -spe"}, "valid standard notation: F4, 0atk, -spe"},
		{"no-gender", []string{"validate", "F6, 0spa", "--line", "genderless"}, "valid no-gender notation: F6, 0spa"},
		{"legacy", []string{"validate", "F5, -atk", "--legacy"}, "valid standard notation: F5, 0atk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("validate failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	out, err := execute(t, "validate", "F4, 0atk, -spe", "--tokens")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"tier", "zeroed", "informational"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected token kind %q in %q", want, out)
		}
	}
}

func TestValidateMalformed(t *testing.T) {
	_, err := execute(t, "validate", "F3, F5, 0xyz")
	if err == nil {
		t.Fatal("Expected an error")
	}

	var verr *notation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected a validation error, got %T", err)
	}
	if !verr.Has(notation.ReasonDuplicateTier) || !verr.Has(notation.ReasonUnrecognizedToken) {
		t.Errorf("Expected duplicate and unrecognized reasons, got %+v", verr.Reasons)
	}

	msg := errorMessage(err)
	if !strings.Contains(msg, "Tokens must be separated by commas") {
		t.Errorf("Expected accepted formats in message, got %q", msg)
	}
}

func TestValidateUnknownLine(t *testing.T) {
	_, err := execute(t, "validate", "F4", "--line", "shiny")
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Expected INPUT error, got %v", err)
	}
}

func TestQuote(t *testing.T) {
	out, err := execute(t, "quote", "F4, 0atk, 0spe")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !strings.Contains(out, "Upgrade: F4 → F6 (2 zeroed IVs)") || !strings.Contains(out, "90k") {
		t.Errorf("Unexpected quote output:\n%s", out)
	}
}

func TestQuoteJSON(t *testing.T) {
	out, err := execute(t, "quote", "F5, 0atk", "--line", "no-gender", "--breeding", "breedavel", "--format", "json")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	var result output.QuoteResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out, err)
	}
	if result.Quote.FinalTier != types.TierF6 || result.Quote.Price != 200000 {
		t.Errorf("Unexpected quote %+v", result.Quote)
	}
	if result.Breeding != types.BreedingBreedable {
		t.Errorf("Expected breedable, got %s", result.Breeding)
	}
}

func TestQuoteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want errors.Type
	}{
		{"bad breeding", []string{"quote", "F5", "--line", "no-gender", "--breeding", "maybe"}, errors.TypeInput},
		{"bad format", []string{"quote", "F5", "--format", "html"}, errors.TypeInput},
		{"out of range", []string{"quote", "F4", "--line", "no-gender"}, errors.TypeMalformedNotation},
		{"empty", []string{"quote", "  "}, errors.TypeEmptyInput},
		{"bad table", []string{"quote", "F4", "--pricing", "does-not-exist.hcl"}, errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.IsType(err, tt.want) {
				t.Errorf("Expected %s error, got %v", tt.want, err)
			}
		})
	}
}

func TestPricingShow(t *testing.T) {
	out, err := execute(t, "pricing", "show", "--pricing", "../../../configs/pricing.hcl")
	if err != nil {
		t.Fatalf("pricing show failed: %v", err)
	}
	for _, want := range []string{"BRL", "competitive", "Gengarite", "45k"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}

func TestPricingCheck(t *testing.T) {
	out, err := execute(t, "pricing", "check")
	if err != nil {
		t.Fatalf("Default table should be complete: %v", err)
	}
	if !strings.Contains(out, "price table OK") {
		t.Errorf("Unexpected output %q", out)
	}

	path := filepath.Join(t.TempDir(), "partial.hcl")
	partial := `
line "standard" {
  prices = {
    F2 = 25000
  }
}
`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = execute(t, "pricing", "check", "--pricing", path)
	if !errors.IsType(err, errors.TypePricing) {
		t.Fatalf("Expected PRICING error, got %v", err)
	}
	if !strings.Contains(err.Error(), "standard/F3") {
		t.Errorf("Expected missing standard/F3 in %q", err.Error())
	}
}

func TestSpread(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"all perfect", []string{"spread"}, "F6", false},
		{"zeroed attack", []string{"spread", "--atk", "0"}, "F5, 0atk", false},
		{"informational", []string{"spread", "--atk", "0", "--spe", "12"}, "F4, 0atk, -spe", false},
		{"out of range", []string{"spread", "--hp", "32"}, "", true},
		{"no-gender rejects F4", []string{"spread", "--atk", "0", "--spe", "0", "--line", "no-gender"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("spread failed: %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	out, err := execute(t, "order",
		"--player", "Ash",
		"--species", "Charizard",
		"--ability", "Blaze",
		"--ivs", "F4, 0atk",
		"--breeding", "castrado",
		"--hidden-ability")
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}
	for _, want := range []string{"NEW ORDER", "Charizard", "F4 → F5", "Yes (+15k)", "85k"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}

func TestOrderCompetitiveJSON(t *testing.T) {
	out, err := execute(t, "order",
		"--line", "competitive",
		"--species", "Gengar",
		"--ability", "Cursed Body",
		"--ivs", "F5, 0atk",
		"--breeding", "castrated",
		"--level", "50",
		"--ev", "spa=252,spe=252",
		"--egg-move", "Perish Song",
		"--megastone", "Gengarite",
		"--format", "json")
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}

	var summary order.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	// F6 90000 + egg move 10000 + level 50 40000 + 50 vitamins 20000 + Gengarite 45000
	if summary.Total != 205000 {
		t.Errorf("Expected total 205000, got %d", summary.Total)
	}
	if summary.Request.EVs[types.StatSpeed] != 252 {
		t.Errorf("Expected EVs to be carried, got %v", summary.Request.EVs)
	}
}

func TestOrderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want errors.Type
	}{
		{"missing species", []string{"order", "--ability", "Blaze", "--ivs", "F4", "--breeding", "castrated"}, errors.TypeInput},
		{"bad ev stat", []string{"order", "--species", "Mew", "--ev", "luck=4"}, errors.TypeInput},
		{"send without webhook", []string{"order", "--species", "Eevee", "--ability", "Run Away", "--ivs", "F4", "--breeding", "castrated", "--send"}, errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.IsType(err, tt.want) {
				t.Errorf("Expected %s error, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "server:") || !strings.Contains(out, "8080") {
		t.Errorf("Expected server address in:\n%s", out)
	}
}
