package cartera

import (
	"testing"
	"time"
)

func TestComputeDrivers_Decomposition(t *testing.T) {
	on := NewDate(2025, 8, 15)
	holdings := []Holding{
		plazoFijo("galicia", 100000, 40),
		cedear("iol", "AAPL", 1, 1000),
	}
	p := Aggregate(holdings, AggregateOptions{Rates: testRates()})

	base := ZeroDual(DefaultCurrencies)
	base.Local = ARS(95000)
	base.Counter = USD(95)
	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: base,
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(FixedTerm, "galicia", "PF"): base,
		},
	}}
	movements := []Movement{
		{Type: MovementInterest, Account: "galicia", Amount: ARS(3000),
			When: time.Date(2025, 8, 5, 12, 0, 0, 0, time.UTC)},
		{Type: MovementFee, Account: "iol", Amount: ARS(500),
			When: time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)},
	}

	r := ComputeDrivers(p, series, movements, Window30D, on)

	if r.Status != StatusOK {
		t.Fatalf("status = %v, want ok", r.Status)
	}
	if r.Baseline != on.Add(-30) {
		t.Errorf("baseline = %v, want %v", r.Baseline, on.Add(-30))
	}
	if got := r.Net.Local.AsFloat(); !approx(got, 6000, 1e-6) {
		t.Errorf("net local = %v, want 6000", got)
	}
	if got := r.Interest.Local.AsFloat(); !approx(got, 3000, 1e-6) {
		t.Errorf("interest local = %v, want realized 3000", got)
	}
	if r.InterestEstimated {
		t.Error("InterestEstimated = true with a realized interest movement")
	}
	if got := r.Fees.Local.AsFloat(); !approx(got, -500, 1e-6) {
		t.Errorf("fees local = %v, want -500", got)
	}
	if got := r.Variation.Local.AsFloat(); !approx(got, 3500, 1e-6) {
		t.Errorf("variation local = %v, want 3500", got)
	}

	// The decomposition is a residual definition, so it adds up exactly.
	sum := r.Interest.Add(r.Fees).Add(r.Variation)
	if !sum.Local.Equal(r.Net.Local) || !sum.Counter.Equal(r.Net.Counter) {
		t.Errorf("interest+fees+variation = %v, want net %v", sum, r.Net)
	}
}

func TestComputeDrivers_NewAsset(t *testing.T) {
	on := NewDate(2025, 8, 15)
	holdings := []Holding{
		plazoFijo("galicia", 100000, 40),
		cedear("iol", "AAPL", 1, 1000),
	}
	p := Aggregate(holdings, AggregateOptions{Rates: testRates()})

	base := D(ARS(95000), USD(95))
	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: base,
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(FixedTerm, "galicia", "PF"): base,
		},
	}}

	r := ComputeDrivers(p, series, nil, Window30D, on)

	var cedearDelta *AssetDelta
	for i := range r.Rows {
		for j := range r.Rows[i].Assets {
			if r.Rows[i].Assets[j].Key == NewAssetKey(Cedear, "iol", "AAPL") {
				cedearDelta = &r.Rows[i].Assets[j]
			}
		}
	}
	if cedearDelta == nil {
		t.Fatal("cedear missing from driver rows")
	}
	if !cedearDelta.New {
		t.Error("New = false for asset absent from baseline")
	}
	if !cedearDelta.Delta.Equal(cedearDelta.Current) {
		t.Errorf("delta = %v, want full current value %v", cedearDelta.Delta, cedearDelta.Current)
	}
	if cedearDelta.PctLocal != nil {
		t.Errorf("PctLocal = %v, want nil for a new asset", *cedearDelta.PctLocal)
	}
}

func TestComputeDrivers_GoneAsset(t *testing.T) {
	on := NewDate(2025, 8, 15)
	p := Aggregate([]Holding{wallet("mp", 1000)}, AggregateOptions{Rates: testRates()})

	gone := NewAssetKey(Cedear, "iol", "AAPL")
	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: D(ARS(3000), USD(2.5)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(CashLocal, "mp", "ARS"): D(ARS(1000), USD(1)),
			gone:                                D(ARS(2000), USD(1.5)),
		},
	}}

	r := ComputeDrivers(p, series, nil, Window30D, on)

	var goneDelta *AssetDelta
	for i := range r.Rows {
		for j := range r.Rows[i].Assets {
			if r.Rows[i].Assets[j].Key == gone {
				goneDelta = &r.Rows[i].Assets[j]
			}
		}
	}
	if goneDelta == nil {
		t.Fatal("disappeared asset missing from driver rows")
	}
	if !goneDelta.Current.IsZero() {
		t.Errorf("current = %v, want zero", goneDelta.Current)
	}
	if got := goneDelta.Delta.Local.AsFloat(); !approx(got, -2000, 1e-6) {
		t.Errorf("delta local = %v, want -2000", got)
	}
	if goneDelta.PctLocal == nil || !goneDelta.PctLocal.Equal(-100) {
		t.Errorf("PctLocal = %v, want -100", goneDelta.PctLocal)
	}
}

func TestComputeDrivers_MissingHistoryFallsBackToCost(t *testing.T) {
	on := NewDate(2025, 8, 15)
	h := cedear("iol", "AAPL", 1, 1000)
	h.Cost = D(ARS(900), USD(0.8))
	p := Aggregate([]Holding{h}, AggregateOptions{Rates: testRates()})

	// A snapshot exists, but too recent to cover the 90d boundary. It
	// must not be substituted.
	series := SnapshotSeries{{
		Date:  on.Add(-10),
		Total: D(ARS(950), USD(0.82)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(Cedear, "iol", "AAPL"): D(ARS(950), USD(0.82)),
		},
	}}

	r := ComputeDrivers(p, series, nil, Window90D, on)

	if r.Status != StatusMissingHistory {
		t.Fatalf("status = %v, want missing_history", r.Status)
	}
	if r.Hint == "" {
		t.Error("hint empty on degraded report")
	}
	if !r.Baseline.IsZero() {
		t.Errorf("baseline = %v, want zero in fallback mode", r.Baseline)
	}
	if got := r.Base.Local.AsFloat(); !approx(got, 900, 1e-6) {
		t.Errorf("base local = %v, want cost basis 900, not the nearer snapshot", got)
	}
	if got := r.Net.Local.AsFloat(); !approx(got, 100, 1e-6) {
		t.Errorf("net local = %v, want 100", got)
	}
}

func TestComputeDrivers_AllTimeUsesEarliestSnapshot(t *testing.T) {
	on := NewDate(2025, 8, 15)
	p := Aggregate([]Holding{wallet("mp", 5000)}, AggregateOptions{Rates: testRates()})

	series := SnapshotSeries{
		{Date: on.Add(-100), Total: D(ARS(1000), USD(1)),
			Breakdown: map[AssetKey]Dual{NewAssetKey(CashLocal, "mp", "ARS"): D(ARS(1000), USD(1))}},
		{Date: on.Add(-10), Total: D(ARS(4000), USD(4)),
			Breakdown: map[AssetKey]Dual{NewAssetKey(CashLocal, "mp", "ARS"): D(ARS(4000), USD(4))}},
	}

	r := ComputeDrivers(p, series, nil, WindowAll, on)

	if r.Status != StatusOK {
		t.Fatalf("status = %v, want ok", r.Status)
	}
	if r.Baseline != on.Add(-100) {
		t.Errorf("baseline = %v, want earliest %v", r.Baseline, on.Add(-100))
	}
	if got := r.Net.Local.AsFloat(); !approx(got, 4000, 1e-6) {
		t.Errorf("net local = %v, want 4000", got)
	}
}

func TestComputeDrivers_EstimatesInterestFromAccrual(t *testing.T) {
	on := NewDate(2025, 8, 15)
	p := Aggregate([]Holding{plazoFijo("galicia", 100000, 40)},
		AggregateOptions{Rates: testRates()})

	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: D(ARS(98000), USD(98)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(FixedTerm, "galicia", "PF"): D(ARS(98000), USD(98)),
		},
	}}

	r := ComputeDrivers(p, series, nil, Window30D, on)

	if !r.InterestEstimated {
		t.Fatal("InterestEstimated = false without realized interest movements")
	}
	// 100000 × 40/100/365 × 30 ≈ 3287.67.
	if got := r.Interest.Local.AsFloat(); !approx(got, 3287.67, 0.01) {
		t.Errorf("estimated interest = %v, want ~3287.67", got)
	}
	// Counter side converts through the item's own resolved rate.
	if got := r.Interest.Counter.AsFloat(); !approx(got, 3.2877, 0.001) {
		t.Errorf("estimated counter interest = %v, want ~3.2877", got)
	}
}

func TestComputeDrivers_FlagsZeroEstimate(t *testing.T) {
	// No realized interest movements and no yield-bearing holdings: the
	// estimate path is still taken, and the flag reports it even though
	// the estimated amount is zero.
	on := NewDate(2025, 8, 15)
	p := Aggregate([]Holding{wallet("mp", 1000)},
		AggregateOptions{Rates: testRates()})

	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: D(ARS(900), USD(0.9)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(CashLocal, "mp", "ARS"): D(ARS(900), USD(0.9)),
		},
	}}

	r := ComputeDrivers(p, series, nil, Window30D, on)

	if !r.Interest.IsZero() {
		t.Errorf("estimated interest = %v, want zero", r.Interest)
	}
	if !r.InterestEstimated {
		t.Error("InterestEstimated = false on the estimate path")
	}
}

func TestComputeDrivers_RowsSortedByAbsoluteDelta(t *testing.T) {
	on := NewDate(2025, 8, 15)
	holdings := []Holding{
		wallet("mp", 1100),
		cedear("iol", "AAPL", 1, 1500),
		cedear("iol", "SPY", 1, 2000),
	}
	p := Aggregate(holdings, AggregateOptions{Rates: testRates()})

	series := SnapshotSeries{{
		Date:  on.Add(-30),
		Total: D(ARS(7100), USD(6)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(CashLocal, "mp", "ARS"):  D(ARS(1000), USD(1)),   // +100
			NewAssetKey(Cedear, "iol", "AAPL"):   D(ARS(1600), USD(1.3)), // -100
			NewAssetKey(Cedear, "iol", "SPY"):    D(ARS(4500), USD(3.7)), // -2500
		},
	}}

	r := ComputeDrivers(p, series, nil, Window30D, on)

	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(r.Rows))
	}
	// Equities moved −2600 against the wallet's +100.
	if r.Rows[0].Rubro != RubroEquities {
		t.Errorf("first row = %v, want equities", r.Rows[0].Rubro)
	}
	equities := r.Rows[0]
	if got := equities.Assets[0].Key; got != NewAssetKey(Cedear, "iol", "SPY") {
		t.Errorf("largest mover = %v, want SPY", got)
	}
}

func TestProjectedEarnings(t *testing.T) {
	holdings := []Holding{
		plazoFijo("galicia", 100000, 40),
		cedear("iol", "AAPL", 1, 1000),
	}
	p := Aggregate(holdings, AggregateOptions{Rates: testRates()})

	t.Run("short horizon is linear", func(t *testing.T) {
		cats := ProjectedEarnings(p, 30)
		var fixed *ProjectedCategory
		for i := range cats {
			if cats[i].Rubro == RubroFixedTerm {
				fixed = &cats[i]
			}
		}
		if fixed == nil {
			t.Fatal("no fixed-term category projected")
		}
		if got := fixed.Projected.Local.AsFloat(); !approx(got, 3287.67, 0.01) {
			t.Errorf("projected local = %v, want ~3287.67", got)
		}
	})

	t.Run("annual horizon compounds", func(t *testing.T) {
		cats := ProjectedEarnings(p, 365)
		var fixed *ProjectedCategory
		for i := range cats {
			if cats[i].Rubro == RubroFixedTerm {
				fixed = &cats[i]
			}
		}
		if fixed == nil {
			t.Fatal("no fixed-term category projected")
		}
		if got := fixed.Projected.Local.AsFloat(); !approx(got, 49149.8, 1) {
			t.Errorf("projected local = %v, want compounded ~49149.8", got)
		}
	})

	t.Run("market prices stay frozen", func(t *testing.T) {
		for _, pc := range ProjectedEarnings(p, 30) {
			if pc.Rubro == RubroEquities && !pc.Projected.IsZero() {
				t.Errorf("equities projected = %v, want zero without yield terms", pc.Projected)
			}
		}
	})
}
