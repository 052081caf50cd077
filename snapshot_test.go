package cartera

import (
	"strings"
	"testing"
	"time"
)

func TestNewSnapshotRecord(t *testing.T) {
	asOf := time.Date(2025, 8, 15, 22, 30, 0, 0, time.UTC)
	holdings := []Holding{
		wallet("mp", 1000),
		cedear("iol", "AAPL", 1, 2000),
	}
	p := Aggregate(holdings, AggregateOptions{Rates: testRates(), AsOf: asOf})

	rec := NewSnapshotRecord(p)

	if rec.Date != NewDate(2025, 8, 15) {
		t.Errorf("date = %v, want 2025-08-15", rec.Date)
	}
	if !rec.Total.Equal(p.Total) {
		t.Errorf("total = %v, want %v", rec.Total, p.Total)
	}
	if len(rec.Breakdown) != 2 {
		t.Fatalf("breakdown entries = %d, want 2", len(rec.Breakdown))
	}
	got, ok := rec.Breakdown[NewAssetKey(Cedear, "iol", "AAPL")]
	if !ok {
		t.Fatal("cedear missing from breakdown")
	}
	if !approx(got.Local.AsFloat(), 2000, 1e-6) {
		t.Errorf("cedear breakdown local = %v, want 2000", got.Local)
	}
}

func TestNewSnapshotRecord_SumsDuplicateKeys(t *testing.T) {
	// The same asset valued under two provider views folds into one
	// breakdown entry.
	c := DefaultCurrencies
	a := Item{Account: "iol", Symbol: "AAPL", Kind: Cedear, Value: D(ARS(1000), USD(1))}
	b := Item{Account: "iol", Symbol: "AAPL", Kind: Cedear, Value: D(ARS(500), USD(0.5))}
	p := &Portfolio{
		Currencies: c,
		AsOf:       time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Rubros: []*Category{{
			Rubro:     RubroEquities,
			Providers: []*Provider{rollupProvider("iol", []Item{a, b}, c)},
		}},
		Total: D(ARS(1500), USD(1.5)),
	}

	rec := NewSnapshotRecord(p)
	if len(rec.Breakdown) != 1 {
		t.Fatalf("breakdown entries = %d, want 1", len(rec.Breakdown))
	}
	got := rec.Breakdown[NewAssetKey(Cedear, "iol", "AAPL")]
	if !approx(got.Local.AsFloat(), 1500, 1e-6) {
		t.Errorf("summed breakdown local = %v, want 1500", got.Local)
	}
}

func TestSnapshotSeries_Baseline(t *testing.T) {
	on := NewDate(2025, 8, 15)
	series := SnapshotSeries{
		{Date: on.Add(-60)},
		{Date: on.Add(-30)},
		{Date: on.Add(-7)},
	}

	tests := []struct {
		name  string
		query Date
		want  Date
		ok    bool
	}{
		{name: "exact match", query: on.Add(-30), want: on.Add(-30), ok: true},
		{name: "between snapshots picks older", query: on.Add(-15), want: on.Add(-30), ok: true},
		{name: "after latest picks latest", query: on, want: on.Add(-7), ok: true},
		{name: "before earliest", query: on.Add(-90), ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := series.Baseline(tt.query)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && rec.Date != tt.want {
				t.Errorf("baseline = %v, want %v", rec.Date, tt.want)
			}
		})
	}
}

func TestSnapshotSeries_Bounds(t *testing.T) {
	on := NewDate(2025, 8, 15)
	series := SnapshotSeries{
		{Date: on.Add(-60)},
		{Date: on.Add(-30)},
		{Date: on.Add(-7)},
	}

	if rec, ok := series.Earliest(); !ok || rec.Date != on.Add(-60) {
		t.Errorf("Earliest() = %v, %v, want %v, true", rec.Date, ok, on.Add(-60))
	}
	if rec, ok := series.Latest(); !ok || rec.Date != on.Add(-7) {
		t.Errorf("Latest() = %v, %v, want %v, true", rec.Date, ok, on.Add(-7))
	}

	var empty SnapshotSeries
	if _, ok := empty.Earliest(); ok {
		t.Error("Earliest() ok = true on empty series")
	}
	if _, ok := empty.Latest(); ok {
		t.Error("Latest() ok = true on empty series")
	}
}

func TestSnapshotSeries_Validate(t *testing.T) {
	on := NewDate(2025, 8, 15)
	t.Run("ascending", func(t *testing.T) {
		series := SnapshotSeries{{Date: on.Add(-2)}, {Date: on.Add(-1)}, {Date: on}}
		if err := series.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
	t.Run("duplicate date", func(t *testing.T) {
		series := SnapshotSeries{{Date: on}, {Date: on}}
		if err := series.Validate(); err == nil {
			t.Error("Validate() = nil, want error on duplicate date")
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	on := NewDate(2025, 8, 15)
	rec := SnapshotRecord{
		Date:  on,
		Total: D(ARS(101000), USD(100.83)),
		Breakdown: map[AssetKey]Dual{
			NewAssetKey(FixedTerm, "galicia", "PF"): D(ARS(100000), USD(100)),
			NewAssetKey(Cedear, "iol", "AAPL"):      D(ARS(1000), USD(0.83)),
		},
	}

	var buf strings.Builder
	if err := EncodeSnapshot(&buf, rec); err != nil {
		t.Fatal(err)
	}
	older := SnapshotRecord{Date: on.Add(-1), Total: D(ARS(99000), USD(99))}
	if err := EncodeSnapshot(&buf, older); err != nil {
		t.Fatal(err)
	}

	series, err := DecodeSnapshots(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 {
		t.Fatalf("decoded %d records, want 2", len(series))
	}
	// Decoding sorts ascending regardless of file order.
	if series[0].Date != older.Date {
		t.Errorf("first record = %v, want older %v", series[0].Date, older.Date)
	}
	got := series[1]
	if got.Date != rec.Date {
		t.Errorf("date = %v, want %v", got.Date, rec.Date)
	}
	if !got.Total.Equal(rec.Total) {
		t.Errorf("total = %v, want %v", got.Total, rec.Total)
	}
	for key, want := range rec.Breakdown {
		if !got.Breakdown[key].Equal(want) {
			t.Errorf("breakdown[%s] = %v, want %v", key, got.Breakdown[key], want)
		}
	}
}

func TestDecodeSnapshots_RejectsDuplicateDates(t *testing.T) {
	on := NewDate(2025, 8, 15)
	var buf strings.Builder
	if err := EncodeSnapshot(&buf, SnapshotRecord{Date: on, Total: D(ARS(1), USD(1))}); err != nil {
		t.Fatal(err)
	}
	if err := EncodeSnapshot(&buf, SnapshotRecord{Date: on, Total: D(ARS(2), USD(2))}); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeSnapshots(strings.NewReader(buf.String())); err == nil {
		t.Error("DecodeSnapshots accepted duplicate dates")
	}
}
