package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mandashop/core/notation"
	"mandashop/core/output"
	"mandashop/core/types"
	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

var (
	quoteLine     string
	quoteBreeding string
	quoteFormat   string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <ivs>",
	Short: "Resolve the final tier and price of an IV notation",
	Long: `Parse an IV notation, apply zeroed-IV upgrades and look up the price.

Examples:
  mandashop quote "F4, 0atk, 0spe"
  mandashop quote "F5, 0atk" --line no-gender --breeding breedable
  mandashop quote "F3" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteLine, "line", "l", "standard", "product line (standard, competitive, no-gender)")
	quoteCmd.Flags().StringVarP(&quoteBreeding, "breeding", "b", "", "breeding choice for no-gender orders (breedable, castrated)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "cli", "output format (cli, json)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	formatter, err := output.New(quoteFormat)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid format", err)
	}
	line, err := types.ParseProductLine(quoteLine)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid product line", err)
	}
	breeding, err := types.ParseBreedingChoice(quoteBreeding)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid breeding choice", err)
	}

	spec, err := notation.Parse(args[0], line)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	quote := a.Resolver.Quote(spec, line, breeding)
	logging.Debug("quoted",
		zap.String("notation", spec.Canonical()),
		zap.Stringer("final_tier", quote.FinalTier),
		zap.Int64("price", quote.Price))

	return formatter.RenderQuote(cmd.OutOrStdout(), output.NewQuoteResult(line, breeding, spec, quote))
}
