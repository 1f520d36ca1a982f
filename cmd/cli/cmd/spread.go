package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mandashop/core/notation"
	"mandashop/core/types"
	"mandashop/internal/errors"
)

var (
	spreadIVs  = map[types.StatID]*int{}
	spreadLine string
)

var spreadCmd = &cobra.Command{
	Use:   "spread",
	Short: "Encode a per-stat IV selection as notation",
	Long: `Encode six individual values into IV notation. Stats at 31 count
toward the tier, stats at 0 become zeroed IVs and anything else is
carried as informational.

Examples:
  mandashop spread --atk 0
  mandashop spread --atk 0 --spe 12 --line competitive`,
	Args: cobra.NoArgs,
	RunE: runSpread,
}

func init() {
	rootCmd.AddCommand(spreadCmd)

	for _, stat := range types.AllStats {
		v := new(int)
		spreadIVs[stat] = v
		spreadCmd.Flags().IntVar(v, stat.String(), notation.PerfectIV, fmt.Sprintf("%s IV (0-31)", stat))
	}
	spreadCmd.Flags().StringVarP(&spreadLine, "line", "l", "standard", "product line the notation must be valid for")
}

func runSpread(cmd *cobra.Command, args []string) error {
	ivs := make(map[types.StatID]int, len(spreadIVs))
	for stat, v := range spreadIVs {
		ivs[stat] = *v
	}

	encoded, err := notation.FromSpread(ivs)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "cannot encode IV spread", err)
	}

	line, err := types.ParseProductLine(spreadLine)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid product line", err)
	}
	if err := notation.Validate(encoded, line); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return nil
}
