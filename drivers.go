package cartera

import (
	"math"
	"sort"
)

// DriversStatus qualifies how a drivers report was computed.
type DriversStatus int

const (
	// StatusOK means a snapshot baseline was found for the window.
	StatusOK DriversStatus = iota
	// StatusMissingHistory means no snapshot covered the window's start
	// boundary; deltas fell back to each holding's own cost basis. The
	// report is valid but degraded, and must be labelled as such.
	StatusMissingHistory
)

func (s DriversStatus) String() string {
	if s == StatusMissingHistory {
		return "missing_history"
	}
	return "ok"
}

// AssetDelta is one asset's contribution to a period's change.
type AssetDelta struct {
	Key     AssetKey
	Current Dual
	Delta   Dual
	// PctLocal and PctCounter are nil when the baseline value is too
	// small to define a percentage (a new asset has no baseline at
	// all).
	PctLocal   *Percent
	PctCounter *Percent
	// New marks an asset with no baseline entry: its full current value
	// is the delta.
	New bool
}

// DriverRow aggregates a rubro's contribution to a period's change.
// Rows and the assets inside them are sorted by descending absolute
// delta, so the largest movers surface first in any ranked display.
type DriverRow struct {
	Rubro      Rubro
	Current    Dual
	Delta      Dual
	PctLocal   *Percent
	PctCounter *Percent
	Assets     []AssetDelta
}

// DriversReport decomposes the portfolio's change over a window.
type DriversReport struct {
	Window   Window
	On       Date
	Status   DriversStatus
	// Hint is a human-readable explanation when Status is degraded.
	Hint string
	// Baseline is the snapshot date diffed against; zero in cost-basis
	// fallback mode.
	Baseline Date

	Current Dual
	Base    Dual
	Net     Dual
	// Interest is the realized interest inside the window, or an
	// accrual estimate when no interest movement was recorded
	// (InterestEstimated is then true).
	Interest          Dual
	InterestEstimated bool
	// Fees is the negative sum of fee movements inside the window.
	Fees Dual
	// Variation is the residual mark-to-market component, defined as
	// Net − Interest − Fees so the decomposition always adds up
	// exactly.
	Variation Dual

	Rows []DriverRow
}

// ComputeDrivers diffs the current valuation against the snapshot
// baseline of a window and decomposes the net change into interest,
// fees and variation.
//
// Baseline selection: the most recent snapshot dated at or before the
// window's start boundary; the all-time window uses the earliest
// snapshot. When no snapshot qualifies the report falls back to
// cost-basis deltas with StatusMissingHistory; it never silently
// substitutes a nearer baseline.
func ComputeDrivers(current *Portfolio, series SnapshotSeries, movements []Movement, w Window, on Date) *DriversReport {
	c := current.Currencies
	r := &DriversReport{
		Window:  w,
		On:      on,
		Current: current.Total,
	}

	base, found := selectBaseline(series, w, on)
	baseline := make(map[AssetKey]Dual)
	if found {
		r.Baseline = base.Date
		r.Base = base.Total
		for k, v := range base.Breakdown {
			baseline[k] = v
		}
	} else {
		r.Status = StatusMissingHistory
		r.Hint = "no snapshot covers the start of " + w.String() + "; deltas are against cost basis"
		r.Base = ZeroDual(c)
		for _, it := range current.Items() {
			baseline[it.Key()] = addDual(baseline[it.Key()], it.Cost, c)
			r.Base = r.Base.Add(it.Cost)
		}
	}

	r.Rows = diffAssets(current, baseline, c)
	r.Net = r.Current.Sub(r.Base)
	decomposeNetIncome(r, current, movements, w, on, c)
	return r
}

// selectBaseline picks the snapshot a window diffs against.
func selectBaseline(series SnapshotSeries, w Window, on Date) (SnapshotRecord, bool) {
	if w == WindowAll {
		return series.Earliest()
	}
	start, _ := w.Start(on)
	return series.Baseline(start)
}

// diffAssets matches current items against baseline breakdown entries
// by asset key, and rolls the per-asset deltas up by rubro.
func diffAssets(current *Portfolio, baseline map[AssetKey]Dual, c Currencies) []DriverRow {
	// Current values per key, summed in case one asset appears under
	// several merged sub-ledgers.
	currents := make(map[AssetKey]Dual)
	var order []AssetKey
	for _, it := range current.Items() {
		key := it.Key()
		if _, ok := currents[key]; !ok {
			order = append(order, key)
		}
		currents[key] = addDual(currents[key], it.Value, c)
	}

	byRubro := make(map[Rubro][]AssetDelta)
	add := func(d AssetDelta) {
		rubro := RubroWallets
		if k, err := d.Key.Kind(); err == nil {
			rubro = k.Rubro()
		}
		byRubro[rubro] = append(byRubro[rubro], d)
	}

	for _, key := range order {
		cur := currents[key]
		base, ok := baseline[key]
		if !ok {
			// New asset: full current value is the delta, and with no
			// baseline there is no percentage to speak of.
			add(AssetDelta{Key: key, Current: cur, Delta: cur, New: true})
			continue
		}
		delta := cur.Sub(base)
		add(AssetDelta{
			Key:        key,
			Current:    cur,
			Delta:      delta,
			PctLocal:   pctOf(delta.Local, base.Local),
			PctCounter: pctOf(delta.Counter, base.Counter),
		})
	}
	// Assets that disappeared since the baseline still drive the
	// period: their whole baseline value was lost.
	var gone []AssetKey
	for key := range baseline {
		if _, ok := currents[key]; !ok {
			gone = append(gone, key)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, key := range gone {
		base := baseline[key]
		delta := ZeroDual(c).Sub(base)
		add(AssetDelta{
			Key:        key,
			Current:    ZeroDual(c),
			Delta:      delta,
			PctLocal:   pctOf(delta.Local, base.Local),
			PctCounter: pctOf(delta.Counter, base.Counter),
		})
	}

	var rows []DriverRow
	for rubro, assets := range byRubro {
		sort.SliceStable(assets, func(i, j int) bool {
			return math.Abs(assets[i].Delta.Local.AsFloat()) > math.Abs(assets[j].Delta.Local.AsFloat())
		})
		row := DriverRow{Rubro: rubro, Current: ZeroDual(c), Delta: ZeroDual(c), Assets: assets}
		base := ZeroDual(c)
		for _, a := range assets {
			row.Current = row.Current.Add(a.Current)
			row.Delta = row.Delta.Add(a.Delta)
			base = base.Add(a.Current.Sub(a.Delta))
		}
		row.PctLocal = pctOf(row.Delta.Local, base.Local)
		row.PctCounter = pctOf(row.Delta.Counter, base.Counter)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return math.Abs(rows[i].Delta.Local.AsFloat()) > math.Abs(rows[j].Delta.Local.AsFloat())
	})
	return rows
}

// decomposeNetIncome splits the window's net change into interest, fees
// and residual variation. The identity net == interest + fees +
// variation holds exactly because variation is defined as the residual.
func decomposeNetIncome(r *DriversReport, current *Portfolio, movements []Movement, w Window, on Date, c Currencies) {
	start, bounded := w.Start(on)
	if !bounded {
		// The all-time window is anchored on the baseline snapshot when
		// one exists; otherwise there is no accrual span to estimate.
		if !r.Baseline.IsZero() {
			start = r.Baseline
		} else {
			start = on
		}
	}

	realized := movementsIn(movements, MovementInterest, start, on)
	if len(realized) > 0 {
		r.Interest = sumMovements(realized, c)
	} else if days := on.Sub(start); days > 0 {
		r.Interest = estimateAccrual(current, days, c)
		r.InterestEstimated = true
	} else {
		r.Interest = ZeroDual(c)
	}

	fees := sumMovements(movementsIn(movements, MovementFee, start, on), c)
	r.Fees = Dual{Local: fees.Local.Abs(), Counter: fees.Counter.Abs()}.Neg()

	r.Variation = r.Net.Sub(r.Interest).Sub(r.Fees)
}

// estimateAccrual projects the linear interest of every yield-bearing
// item over a number of days, as the stand-in for unrecorded interest
// movements.
func estimateAccrual(current *Portfolio, days int, c Currencies) Dual {
	total := ZeroDual(c)
	for _, it := range current.Items() {
		if !it.Kind.YieldBearing() {
			continue
		}
		base, tna, ok := accrualBase(it)
		if !ok {
			continue
		}
		interest := Project(tna, base, days).Interest
		total.Local = total.Local.Add(M(interest.Decimal(), c.Local))
		if it.Rate.IsPositive() {
			total.Counter = total.Counter.Add(M(interest.Decimal().Div(it.Rate.Decimal()), c.Counter))
		}
	}
	return total
}

// ProjectedCategory is a rubro's forward-looking expected gain over a
// horizon, next to its already-existing unrealized P/L. The two figures
// answer different questions and are never folded into one number.
type ProjectedCategory struct {
	Rubro Rubro
	// Projected is the expected incremental gain over the horizon,
	// assuming no price change for market-priced instruments: only
	// yield accrual contributes.
	Projected Dual
	// Unrealized is the category's current unrealized P/L.
	Unrealized Dual
}

// ProjectedEarnings computes the expected gain per rubro over a horizon
// in days, with market prices frozen. A 365-day horizon uses the
// compounded annual projection; shorter horizons use the linear
// preview.
func ProjectedEarnings(current *Portfolio, horizonDays int) []ProjectedCategory {
	c := current.Currencies
	var out []ProjectedCategory
	for _, cat := range current.Rubros {
		pc := ProjectedCategory{
			Rubro:      cat.Rubro,
			Projected:  ZeroDual(c),
			Unrealized: cat.PL,
		}
		for _, prov := range cat.Providers {
			for _, it := range prov.Items {
				base, tna, ok := accrualBase(it)
				if !ok {
					continue
				}
				var interest Money
				if horizonDays >= daysPerYear {
					interest = ProjectAnnual(tna, base).Interest
				} else {
					interest = Project(tna, base, horizonDays).Interest
				}
				pc.Projected.Local = pc.Projected.Local.Add(M(interest.Decimal(), c.Local))
				if it.Rate.IsPositive() {
					pc.Projected.Counter = pc.Projected.Counter.Add(M(interest.Decimal().Div(it.Rate.Decimal()), c.Counter))
				}
			}
		}
		out = append(out, pc)
	}
	return out
}

// pctOf wraps RatioOf into the nullable pointer form report rows carry.
func pctOf(delta, base Money) *Percent {
	p, ok := RatioOf(delta, base)
	if !ok {
		return nil
	}
	return &p
}

// addDual accumulates into a possibly zero-valued Dual, keeping the
// reference currencies attached.
func addDual(d, e Dual, c Currencies) Dual {
	if d == (Dual{}) {
		d = ZeroDual(c)
	}
	return d.Add(e)
}
