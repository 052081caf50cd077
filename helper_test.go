package cartera

// ARS is a helper for tests to create local-currency money from const.
func ARS(v float64) Money { return M(v, "ARS") }

// USD is a helper for tests to create counter-currency money from const.
func USD(v float64) Money { return M(v, "USD") }

// testRates is a quote table with distinct buy/sell prices per family,
// so the side crossover is observable.
func testRates() RateTable {
	return RateTable{
		Official: {Buy: ARS(1000), Sell: ARS(1050)},
		MEP:      {Buy: ARS(1200), Sell: ARS(1230)},
		Crypto:   {Buy: ARS(1250), Sell: ARS(1280)},
	}
}

// cedear builds a market-priced equity-proxy holding.
func cedear(account, symbol string, qty, price float64) Holding {
	return Holding{
		Account:  account,
		Symbol:   symbol,
		Kind:     Cedear,
		Quantity: Q(qty),
		Price:    ARS(price),
	}
}

// wallet builds a local-currency cash holding.
func wallet(account string, balance float64) Holding {
	return Holding{
		Account: account,
		Symbol:  "ARS",
		Kind:    CashLocal,
		Balance: ARS(balance),
	}
}

// plazoFijo builds a fixed-term deposit holding.
func plazoFijo(account string, principal, tna float64) Holding {
	return Holding{
		Account: account,
		Symbol:  "PF",
		Kind:    FixedTerm,
		Balance: ARS(principal),
		Yield:   &YieldTerms{TNA: Percent(tna)},
		FixedTerm: &FixedTermMeta{
			Principal: ARS(principal),
		},
	}
}

// approx reports whether two floats agree within a tolerance.
func approx(got, want, tol float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}
