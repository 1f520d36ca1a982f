package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mandashop/core/notation"
	"mandashop/core/types"
	"mandashop/internal/errors"
)

var (
	validateLine   string
	validateLegacy bool
	validateTokens bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <ivs>",
	Short: "Validate IV notation for a product line",
	Long: `Validate an IV notation string and print its canonical form.

Examples:
  mandashop validate "F4, 0atk, -spe"
  mandashop validate "F6, 0spa" --line no-gender
  mandashop validate "F5, -atk" --legacy`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateLine, "line", "l", "standard", "product line (standard, competitive, no-gender)")
	validateCmd.Flags().BoolVar(&validateLegacy, "legacy", false, "read historical strings where -stat meant a zeroed IV")
	validateCmd.Flags().BoolVar(&validateTokens, "tokens", false, "list how each token was read")
}

func runValidate(cmd *cobra.Command, args []string) error {
	line, grammar, err := resolveGrammar(validateLine, validateLegacy)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if validateTokens {
		for _, tok := range notation.Lex(args[0], grammar) {
			fmt.Fprintf(out, "%-10s %s\n", tok.Raw, tok.Kind)
		}
	}

	spec, err := notation.ParseWith(args[0], grammar)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "valid %s notation: %s\n", line, spec.Canonical())
	return nil
}

// resolveGrammar picks the grammar for a product line flag, or the legacy
// grammar when requested.
func resolveGrammar(rawLine string, legacy bool) (types.ProductLine, notation.Grammar, error) {
	line, err := types.ParseProductLine(rawLine)
	if err != nil {
		return "", notation.Grammar{}, errors.Wrap(errors.TypeInput, "invalid product line", err)
	}
	if legacy {
		return line, notation.Legacy, nil
	}
	grammar, err := notation.ForLine(line)
	if err != nil {
		return "", notation.Grammar{}, errors.Wrap(errors.TypeInput, "invalid product line", err)
	}
	return line, grammar, nil
}
