package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ncampa/cartera"
)

// SummaryMarkdown renders the full portfolio valuation to a markdown
// string: totals, composition indicators, and one table per rubro with
// the providers and assets inside it.
func SummaryMarkdown(p *cartera.Portfolio) string {
	var b strings.Builder
	c := p.Currencies

	fmt.Fprintf(&b, "# Portfolio on %s\n\n", cartera.DateOf(p.AsOf))
	fmt.Fprintf(&b, "Total: **%s** / **%s**\n\n", p.Total.Local, p.Total.Counter)
	fmt.Fprintf(&b, "Unrealized P/L: %s / %s\n\n", p.PL.Local.SignedString(), p.PL.Counter.SignedString())
	fmt.Fprintf(&b, "Hard-%s share: %s, %s-linked share: %s\n\n",
		c.Counter, p.HardPct, c.Counter, p.LinkedPct)

	for _, cat := range p.Rubros {
		fmt.Fprintf(&b, "## %s (%s)\n\n", cat.Rubro, cat.Policy)
		fmt.Fprintf(&b, "| Provider | Asset | Value %s | Value %s | P/L | FX |\n", c.Local, c.Counter)
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|:---|")
		for _, prov := range cat.Providers {
			for _, it := range prov.Items {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					prov.Name,
					assetLabel(it),
					valueCell(it.Value.Local, it),
					valueCell(it.Value.Counter, it),
					it.PL.Local.SignedString(),
					fxLabel(it),
				)
			}
			fmt.Fprintf(&b, "| **%s** | | **%s** | **%s** | %s | %s |\n",
				prov.Name,
				prov.Total.Local, prov.Total.Counter,
				prov.PL.Local.SignedString(),
				providerPolicy(prov),
			)
		}
		fmt.Fprintf(&b, "\nSubtotal: %s / %s\n\n", cat.Total.Local, cat.Total.Counter)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		printed := false
		for _, it := range p.Items() {
			switch {
			case it.PriceInfo.Quality == cartera.PriceMissing:
				fmt.Fprintf(w, "- %s/%s has no price; it is listed with a zero value.\n", it.Account, it.Symbol)
				printed = true
			case it.RateUnavailable:
				fmt.Fprintf(w, "- %s/%s could not be converted; only its native value is shown.\n", it.Account, it.Symbol)
				printed = true
			case it.RateFallback:
				fmt.Fprintf(w, "- %s/%s fell back to its automatic fx policy (%s).\n", it.Account, it.Symbol, it.Policy)
				printed = true
			}
		}
		return printed
	})

	return b.String()
}

// assetLabel is the display name of an item, annotated with its yield
// terms when it accrues interest.
func assetLabel(it cartera.Item) string {
	if it.Yield != nil && it.Yield.TNA > 0 {
		return fmt.Sprintf("%s (TNA %s)", it.Symbol, it.Yield.TNA)
	}
	return it.Symbol
}

// valueCell renders one side of an item's value, marking degraded
// prices so aggregates over stale data are distinguishable from live
// ones.
func valueCell(m cartera.Money, it cartera.Item) string {
	switch it.PriceInfo.Quality {
	case cartera.PriceMissing:
		return "n/a"
	case cartera.PriceStale:
		return m.String() + " (stale)"
	case cartera.PriceEstimated:
		return m.String() + " (est)"
	default:
		return m.String()
	}
}

// fxLabel shows which rate family/side valued an item.
func fxLabel(it cartera.Item) string {
	if it.PriceInfo.Quality == cartera.PriceMissing {
		return ""
	}
	if it.RateUnavailable {
		return "n/a"
	}
	if it.RateFallback {
		return it.Policy.String() + "!"
	}
	return it.Policy.String()
}

func providerPolicy(prov *cartera.Provider) string {
	if prov.Policy == nil {
		return "mixed"
	}
	return prov.Policy.String()
}
