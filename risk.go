package cartera

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// minVolatilityObs is the minimum number of return observations below
// which volatility and Sharpe carry no signal.
const minVolatilityObs = 8

// Returns converts a value series into daily returns:
// r_t = v_t/v_{t-1} − 1. A series shorter than two points yields an
// empty return series. Zero-valued predecessors contribute a zero
// return rather than an infinity.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns[i-1] = values[i]/values[i-1] - 1
		}
	}
	return returns
}

// AnnualizedVolatility is the standard deviation of daily returns
// scaled to a year: stddev × √365. ok is false when there are fewer
// than eight observations: no signal, which callers must not confuse
// with zero volatility.
func AnnualizedVolatility(returns []float64) (float64, bool) {
	if len(returns) < minVolatilityObs {
		return 0, false
	}
	return stat.StdDev(returns, nil) * math.Sqrt(daysPerYear), true
}

// MaxDrawdown is the worst peak-to-trough loss of a value series,
// expressed as a non-positive fraction of the running maximum. ok is
// false for series shorter than two points.
func MaxDrawdown(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (v - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return worst, true
}

// SharpeRatio is mean(returns)/stddev(returns) × √365, under a zero
// risk-free rate. ok is false with insufficient observations or a zero
// standard deviation.
func SharpeRatio(returns []float64) (float64, bool) {
	if len(returns) < minVolatilityObs {
		return 0, false
	}
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0, false
	}
	return stat.Mean(returns, nil) / sd * math.Sqrt(daysPerYear), true
}

// RiskReport bundles the risk statistics of a snapshot value series.
// Nil fields mean the series was too short to carry that signal.
type RiskReport struct {
	// Observations is the number of snapshots behind the statistics.
	Observations int
	Volatility   *float64
	MaxDrawdown  *float64
	Sharpe       *float64
}

// RiskMetrics derives the risk statistics from a snapshot series, over
// the totals in the chosen reference currency.
func RiskMetrics(series SnapshotSeries, currency string, c Currencies) *RiskReport {
	var values []float64
	if currency == c.Counter {
		values = series.CounterValues()
	} else {
		values = series.LocalValues()
	}
	r := &RiskReport{Observations: len(values)}
	returns := Returns(values)
	if v, ok := AnnualizedVolatility(returns); ok {
		r.Volatility = &v
	}
	if dd, ok := MaxDrawdown(values); ok {
		r.MaxDrawdown = &dd
	}
	if sh, ok := SharpeRatio(returns); ok {
		r.Sharpe = &sh
	}
	return r
}
