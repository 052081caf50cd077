package cartera

import (
	"math"
	"testing"
)

func TestReturns(t *testing.T) {
	t.Run("daily ratios", func(t *testing.T) {
		got := Returns([]float64{100, 110, 99})
		want := []float64{0.10, -0.10}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if !approx(got[i], want[i], 1e-9) {
				t.Errorf("returns[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("short series", func(t *testing.T) {
		if got := Returns([]float64{100}); len(got) != 0 {
			t.Errorf("Returns(1 point) = %v, want empty", got)
		}
		if got := Returns(nil); len(got) != 0 {
			t.Errorf("Returns(nil) = %v, want empty", got)
		}
	})

	t.Run("zero predecessor", func(t *testing.T) {
		got := Returns([]float64{0, 100})
		if got[0] != 0 {
			t.Errorf("return after zero value = %v, want 0 not Inf", got[0])
		}
	})
}

func TestAnnualizedVolatility(t *testing.T) {
	t.Run("too few observations", func(t *testing.T) {
		returns := make([]float64, minVolatilityObs-1)
		if _, ok := AnnualizedVolatility(returns); ok {
			t.Error("ok = true with fewer than 8 observations")
		}
	})

	t.Run("scales daily stddev by sqrt of 365", func(t *testing.T) {
		returns := []float64{0.01, -0.01, 0.02, -0.02, 0.01, -0.01, 0.02, -0.02}
		got, ok := AnnualizedVolatility(returns)
		if !ok {
			t.Fatal("ok = false with 8 observations")
		}
		var mean float64
		for _, r := range returns {
			mean += r
		}
		mean /= float64(len(returns))
		var ss float64
		for _, r := range returns {
			ss += (r - mean) * (r - mean)
		}
		want := math.Sqrt(ss/float64(len(returns)-1)) * math.Sqrt(365)
		if !approx(got, want, 1e-9) {
			t.Errorf("volatility = %v, want %v", got, want)
		}
	})

	t.Run("flat series has zero volatility", func(t *testing.T) {
		returns := make([]float64, minVolatilityObs)
		got, ok := AnnualizedVolatility(returns)
		if !ok || got != 0 {
			t.Errorf("volatility = %v, %v; want 0, true", got, ok)
		}
	})
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{name: "single trough", values: []float64{100, 120, 90, 110}, want: -0.25, ok: true},
		{name: "monotonic rise", values: []float64{100, 110, 120}, want: 0, ok: true},
		{name: "later deeper trough", values: []float64{100, 80, 130, 65}, want: -0.5, ok: true},
		{name: "too short", values: []float64{100}, want: 0, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MaxDrawdown(tt.values)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !approx(got, tt.want, 1e-9) {
				t.Errorf("drawdown = %v, want %v", got, tt.want)
			}
			if got > 0 {
				t.Errorf("drawdown = %v, must be non-positive", got)
			}
		})
	}
}

func TestSharpeRatio(t *testing.T) {
	t.Run("flat returns have no sharpe", func(t *testing.T) {
		returns := make([]float64, minVolatilityObs)
		if _, ok := SharpeRatio(returns); ok {
			t.Error("ok = true on zero standard deviation")
		}
	})

	t.Run("positive drift", func(t *testing.T) {
		returns := []float64{0.01, 0.02, 0.01, 0.03, 0.02, 0.01, 0.02, 0.03}
		got, ok := SharpeRatio(returns)
		if !ok {
			t.Fatal("ok = false")
		}
		if got <= 0 {
			t.Errorf("sharpe = %v, want positive for all-positive returns", got)
		}
	})
}

func TestRiskMetrics(t *testing.T) {
	on := NewDate(2025, 8, 15)

	t.Run("short history reports nil metrics", func(t *testing.T) {
		series := SnapshotSeries{
			{Date: on.Add(-2), Total: D(ARS(100), USD(1))},
			{Date: on.Add(-1), Total: D(ARS(110), USD(1.1))},
		}
		r := RiskMetrics(series, "ARS", DefaultCurrencies)
		if r.Observations != 2 {
			t.Errorf("observations = %d, want 2", r.Observations)
		}
		if r.Volatility != nil {
			t.Errorf("volatility = %v, want nil below %d observations", *r.Volatility, minVolatilityObs)
		}
		if r.Sharpe != nil {
			t.Errorf("sharpe = %v, want nil", *r.Sharpe)
		}
		// Drawdown needs only two points.
		if r.MaxDrawdown == nil {
			t.Error("drawdown = nil, want a value from 2 points")
		}
	})

	t.Run("currency selects the value series", func(t *testing.T) {
		var series SnapshotSeries
		for i := 0; i < 10; i++ {
			local := 100.0 + float64(i)
			counter := 200.0 - float64(i)*5
			series = append(series, SnapshotRecord{
				Date:  on.Add(i - 10),
				Total: D(ARS(local), USD(counter)),
			})
		}
		local := RiskMetrics(series, "ARS", DefaultCurrencies)
		counter := RiskMetrics(series, "USD", DefaultCurrencies)
		if *local.MaxDrawdown != 0 {
			t.Errorf("local drawdown = %v, want 0 on a rising series", *local.MaxDrawdown)
		}
		if *counter.MaxDrawdown >= 0 {
			t.Errorf("counter drawdown = %v, want negative on a falling series", *counter.MaxDrawdown)
		}
	})
}
