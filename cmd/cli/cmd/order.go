package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mandashop/adapters/webhook"
	"mandashop/core/order"
	"mandashop/core/types"
	"mandashop/internal/errors"
)

var (
	orderReq      order.Request
	orderLine     string
	orderBreeding string
	orderEVs      map[string]int
	orderFormat   string
	orderSend     bool
	orderTimeout  time.Duration
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Compose an order and print its shop notification",
	Long: `Compose a priced order from flags, the same way the storefront does,
and print the notification the shop receives. With --send the message is
also delivered to the configured webhook.

Examples:
  mandashop order --species Charizard --ability Blaze --ivs "F4, 0atk" --breeding castrated
  mandashop order --line competitive --species Gengar --ability "Cursed Body" \
    --ivs "F5, 0atk" --breeding castrated --level 50 --ev spa=252,spe=252 --megastone Gengarite`,
	Args: cobra.NoArgs,
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)

	f := orderCmd.Flags()
	f.StringVar(&orderReq.Player, "player", "", "in-game player name")
	f.StringVar(&orderReq.Discord, "discord", "", "customer Discord handle")
	f.StringVarP(&orderLine, "line", "l", "standard", "product line (standard, competitive, no-gender)")
	f.StringVar(&orderReq.Species, "species", "", "Pokémon species")
	f.StringVar(&orderReq.Nature, "nature", "", "nature")
	f.StringVar(&orderReq.Ability, "ability", "", "ability")
	f.StringVar(&orderReq.Gender, "gender", "", "gender")
	f.StringVar(&orderReq.IVs, "ivs", "", "IV notation, e.g. \"F4, 0atk\"")
	f.StringVarP(&orderBreeding, "breeding", "b", "", "breeding choice (breedable, castrated)")
	f.BoolVar(&orderReq.HiddenAbility, "hidden-ability", false, "add the hidden ability")
	f.StringSliceVar(&orderReq.EggMoves, "egg-move", nil, "egg move, repeatable")
	f.IntVar(&orderReq.Level, "level", 0, "trained level (competitive only)")
	f.StringToIntVar(&orderEVs, "ev", nil, "EVs by stat, e.g. spa=252,spe=252 (competitive only)")
	f.StringVar(&orderReq.Megastone, "megastone", "", "megastone (competitive only)")
	f.StringVarP(&orderFormat, "format", "f", "text", "output format (text, json)")
	f.BoolVar(&orderSend, "send", false, "deliver the notification to the configured webhook")
	f.DurationVar(&orderTimeout, "timeout", 30*time.Second, "timeout for species lookups and delivery")
}

func runOrder(cmd *cobra.Command, args []string) error {
	req := orderReq
	line, err := types.ParseProductLine(orderLine)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid product line", err)
	}
	req.Line = line
	if req.Breeding, err = types.ParseBreedingChoice(orderBreeding); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid breeding choice", err)
	}
	if req.EVs, err = parseEVs(orderEVs); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	if orderSend && a.Notifier == nil {
		return errors.Config("--send needs notify.webhook_url or MANDASHOP_WEBHOOK_URL", nil)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), orderTimeout)
	defer cancel()

	summary, err := a.Composer.Compose(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch orderFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	case "text", "":
		fmt.Fprintln(out, order.FormatNotification(summary))
	default:
		return errors.Inputf("unknown output format %q (expected text or json)", orderFormat)
	}

	if orderSend {
		if err := a.Notifier.Send(ctx, webhook.OrderMessage(summary)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "notification sent for order %s\n", summary.ID)
	}
	return nil
}

func parseEVs(raw map[string]int) (types.EVSpread, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	evs := make(types.EVSpread, len(raw))
	for name, value := range raw {
		stat, ok := types.ParseStat(name)
		if !ok {
			return nil, errors.Inputf("unknown stat %q in --ev", name)
		}
		evs[stat] += value
	}
	return evs, nil
}
