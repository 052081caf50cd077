package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ncampa/cartera"
)

// DriversMarkdown renders a change-drivers report: the window's net
// change, its interest/fees/variation decomposition, and the ranked
// per-rubro and per-asset movers.
func DriversMarkdown(r *cartera.DriversReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Drivers %s on %s\n\n", r.Window, r.On)

	if r.Status == cartera.StatusMissingHistory {
		fmt.Fprintf(&b, "> **%s**: %s\n\n", r.Status, r.Hint)
	} else {
		fmt.Fprintf(&b, "Baseline snapshot: %s\n\n", r.Baseline)
	}

	fmt.Fprintln(&b, "| | Local | Counter |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	fmt.Fprintf(&b, "| Current | %s |\n", dualCells(r.Current))
	fmt.Fprintf(&b, "| Baseline | %s |\n", dualCells(r.Base))
	fmt.Fprintf(&b, "| Net change | %s |\n", signedDualCells(r.Net))
	fmt.Fprintf(&b, "| %s | %s |\n", interestLabel(r), signedDualCells(r.Interest))
	fmt.Fprintf(&b, "| Fees | %s |\n", signedDualCells(r.Fees))
	fmt.Fprintf(&b, "| Market variation | %s |\n", signedDualCells(r.Variation))
	fmt.Fprintln(&b)

	for _, row := range r.Rows {
		fmt.Fprintf(&b, "## %s: %s (%s)\n\n", row.Rubro, row.Delta.Local.SignedString(), pctCell(row.PctLocal))
		fmt.Fprintln(&b, "| Asset | Current | Change | % | New |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|:---:|")
		for _, a := range row.Assets {
			newMark := ""
			if a.New {
				newMark = "new"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				a.Key,
				a.Current.Local,
				a.Delta.Local.SignedString(),
				pctCell(a.PctLocal),
				newMark,
			)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

func interestLabel(r *cartera.DriversReport) string {
	if r.InterestEstimated {
		return "Interest (estimated)"
	}
	return "Interest"
}

// ProjectionMarkdown renders the per-rubro expected earnings over a
// horizon next to the current unrealized P/L. The two columns answer
// different questions and are kept apart.
func ProjectionMarkdown(cats []cartera.ProjectedCategory, horizonDays int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Projected earnings over %d days\n\n", horizonDays)
	fmt.Fprintln(&b, "Prices frozen: only yield accrual contributes to the projection.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Rubro | Projected | Unrealized P/L |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	total := false
	for _, pc := range cats {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			pc.Rubro,
			pc.Projected.Local.SignedString(),
			pc.Unrealized.Local.SignedString(),
		)
		if !pc.Projected.IsZero() {
			total = true
		}
	}
	ConditionalBlock(&b, func(w io.Writer) bool {
		if total {
			return false
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No yield-bearing holdings: nothing accrues over this horizon.")
		return true
	})

	return b.String()
}

// RiskMarkdown renders the snapshot-history risk statistics. Metrics
// the history is too short to support render as n/a, never as zero.
func RiskMarkdown(r *cartera.RiskReport, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Risk statistics (%s)\n\n", currency)
	fmt.Fprintf(&b, "Observations: %d snapshots\n\n", r.Observations)
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Annualized volatility | %s |\n", floatCell(r.Volatility))
	fmt.Fprintf(&b, "| Max drawdown | %s |\n", floatCell(r.MaxDrawdown))
	fmt.Fprintf(&b, "| Sharpe ratio | %s |\n", sharpeCell(r.Sharpe))

	if r.Volatility == nil {
		fmt.Fprintln(&b, "\nNine or more daily snapshots are needed for volatility and Sharpe.")
	}

	return b.String()
}

func sharpeCell(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
