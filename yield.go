package cartera

import "math"

// daysPerYear is the accrual convention used across the engine, for
// both compounding and annualization.
const daysPerYear = 365

// EffectiveAnnualRate converts a nominal annual rate (TNA, percent)
// into the effective annual rate under daily compounding (TEA,
// percent): (1 + TNA/100/365)^365 − 1.
//
// A non-positive TNA yields zero, never a negative rate.
func EffectiveAnnualRate(tna Percent) Percent {
	if tna <= 0 {
		return 0
	}
	daily := float64(tna) / 100 / daysPerYear
	return Percent(100 * (math.Pow(1+daily, daysPerYear) - 1))
}

// Projection is the result of projecting interest accrual over a
// horizon.
type Projection struct {
	// TEA is the effective annual rate implied by the nominal rate.
	TEA Percent
	// Interest is the projected accrual over the horizon.
	Interest Money
	// Total is principal plus projected interest.
	Total Money
}

// Project computes a linear simple-interest projection of a nominal
// annual rate over a horizon in days: principal × TNA/100/365 × days.
// This is the short-horizon preview mode (1–90 days), kept linear for
// legibility.
//
// A non-positive TNA or horizon projects zero interest.
func Project(tna Percent, principal Money, days int) Projection {
	p := Projection{
		TEA:      EffectiveAnnualRate(tna),
		Interest: M(0, principal.Currency()),
		Total:    principal,
	}
	if tna <= 0 || days <= 0 {
		return p
	}
	daily := newDecimal(float64(tna) / 100 / daysPerYear)
	p.Interest = M(principal.Decimal().Mul(daily).Mul(newDecimal(days)), principal.Currency())
	p.Total = principal.Add(p.Interest)
	return p
}

// ProjectAnnual computes the one-year projection using the compounded
// effective rate: principal × TEA/100. Over a full year compounding
// dominates the linear preview; the two modes are intentionally
// different and both exposed.
func ProjectAnnual(tna Percent, principal Money) Projection {
	tea := EffectiveAnnualRate(tna)
	p := Projection{
		TEA:      tea,
		Interest: M(0, principal.Currency()),
		Total:    principal,
	}
	if tea <= 0 {
		return p
	}
	p.Interest = M(principal.Decimal().Mul(newDecimal(float64(tea)/100)), principal.Currency())
	p.Total = principal.Add(p.Interest)
	return p
}

// DailyInterest is the simple-interest accrual of one day:
// principal × TNA/100/365.
func DailyInterest(tna Percent, principal Money) Money {
	return Project(tna, principal, 1).Interest
}

// accrualBase returns the amount a yield-bearing item accrues interest
// on: the deposit principal for fixed terms, the recorded balance for
// yield wallets.
func accrualBase(it Item) (Money, Percent, bool) {
	if it.Yield == nil || it.Yield.TNA <= 0 {
		return Money{}, 0, false
	}
	if it.Kind == FixedTerm && it.FixedTerm != nil && !it.FixedTerm.Principal.IsZero() {
		return it.FixedTerm.Principal, it.Yield.TNA, true
	}
	if !it.Value.Local.IsZero() {
		return it.Value.Local, it.Yield.TNA, true
	}
	return Money{}, 0, false
}
