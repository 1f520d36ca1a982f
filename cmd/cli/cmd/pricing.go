package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mandashop/core/output"
	"mandashop/internal/errors"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Inspect the price table",
	Long: `Price table commands.

The table comes from --pricing, the config's pricing.table_path, or the
built-in defaults, in that order.`,
}

var pricingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every tier price, surcharge and megastone",
	RunE:  runPricingShow,
}

var pricingCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail if any orderable tier has no price",
	Long: `Load the price table and report every product line, tier and breeding
combination that a valid IV notation can reach but the table does not price.

Exits non-zero when the table is incomplete. Safe to run in CI.`,
	RunE: runPricingCheck,
}

var pricingFormat string

func init() {
	rootCmd.AddCommand(pricingCmd)
	pricingCmd.AddCommand(pricingShowCmd)
	pricingCmd.AddCommand(pricingCheckCmd)

	pricingShowCmd.Flags().StringVarP(&pricingFormat, "format", "f", "cli", "output format (cli, json)")
}

func runPricingShow(cmd *cobra.Command, args []string) error {
	formatter, err := output.New(pricingFormat)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid format", err)
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	return formatter.RenderTable(cmd.OutOrStdout(), a.Table)
}

func runPricingCheck(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	missing := a.Table.Missing()
	if len(missing) > 0 {
		return errors.Pricing(fmt.Sprintf("price table is incomplete: %s", strings.Join(missing, ", ")), nil)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "price table OK: every orderable tier is priced")
	return nil
}
