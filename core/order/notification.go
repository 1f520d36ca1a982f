package order

import (
	"fmt"
	"strings"

	"mandashop/core/surcharge"
	"mandashop/core/types"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

var lineHeaders = map[types.ProductLine]struct{ emoji, title string }{
	types.LineStandard:    {"📦", "NEW ORDER"},
	types.LineCompetitive: {"🎮", "COMPETITIVE ORDER"},
	types.LineNoGender:    {"🔮", "NO-GENDER ORDER"},
}

// FormatNotification renders the message the shop receives for a new order.
// Amounts are shown in whole thousands.
func FormatNotification(s *Summary) string {
	req := s.Request
	header, ok := lineHeaders[req.Line]
	if !ok {
		header = lineHeaders[types.LineStandard]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s %s**\n%s\n", header.emoji, header.title, rule)
	fmt.Fprintf(&b, "🧾 **Order:** %s\n", s.ID)
	fmt.Fprintf(&b, "👤 **Player:** %s\n", orDash(req.Player))
	fmt.Fprintf(&b, "💬 **Discord:** %s\n\n", orDash(req.Discord))

	fmt.Fprintf(&b, "%s **PRODUCT LINE:** %s\n", header.emoji, strings.ToUpper(req.Line.String()))
	fmt.Fprintf(&b, "🔵 **Pokémon:** %s\n", req.Species)
	fmt.Fprintf(&b, "🧬 **Breeding:** %s\n", title(req.Breeding.String()))
	if req.Nature != "" {
		fmt.Fprintf(&b, "🌿 **Nature:** %s\n", req.Nature)
	}
	fmt.Fprintf(&b, "⚡ **Ability:** %s\n", req.Ability)

	if req.Line == types.LineCompetitive {
		if len(req.EVs) > 0 {
			fmt.Fprintf(&b, "⚡ **EVs:** %s\n", req.EVs)
		}
		if req.Level > 0 {
			fmt.Fprintf(&b, "🎯 **Level:** %d\n", req.Level)
		}
	}
	if req.Line == types.LineNoGender {
		fmt.Fprintf(&b, "🔮 **No-gender tier:** %s %s\n", s.Quote.FinalTier, title(req.Breeding.String()))
	}
	if req.Gender != "" && req.Line != types.LineNoGender && !strings.EqualFold(req.Gender, "genderless") {
		fmt.Fprintf(&b, "⚧ **Gender:** %s\n", req.Gender)
	}

	ivLine := s.Quote.BaseTier.String()
	if s.Quote.Upgraded {
		ivLine += fmt.Sprintf(" → %s (upgrade)", s.Quote.FinalTier)
	}
	fmt.Fprintf(&b, "📊 **IVs:** %s\n", ivLine)
	if s.Spec != nil {
		if !s.Spec.Zeroed.Empty() {
			fmt.Fprintf(&b, "🔻 **Zeroed IVs:** %s\n", s.Spec.Zeroed)
		}
		if !s.Spec.Informational.Empty() {
			fmt.Fprintf(&b, "ℹ️ **Additional info:** %s\n", s.Spec.Informational)
		}
	}

	for _, item := range s.Surcharges.Items {
		if item.Kind == surcharge.KindEggMoves {
			fmt.Fprintf(&b, "🥚 **Egg Moves:** %s\n", item.Detail)
		}
	}

	if ha := s.Surcharges.Amount(surcharge.KindHiddenAbility); ha > 0 {
		fmt.Fprintf(&b, "✨ **Hidden Ability:** Yes (+%s)\n", types.FormatKRounded(ha))
	} else {
		b.WriteString("✨ **Hidden Ability:** No\n")
	}

	for _, item := range s.Surcharges.Items {
		if item.Kind == surcharge.KindMegastone {
			fmt.Fprintf(&b, "💎 **Megastone:** %s (+%s)\n", item.Detail, types.FormatKRounded(item.Amount))
		}
	}

	fmt.Fprintf(&b, "\n💰 **TOTAL:** %s\n%s", types.FormatKRounded(s.Total), rule)
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
