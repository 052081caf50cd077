package cartera

import (
	"errors"
	"fmt"
)

// ErrRateUnavailable reports that a rate family/side resolved to a
// quote that cannot price anything (absent, zero or negative). It is
// recoverable: the aggregator falls back to the automatic policy.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateFamily identifies one of the exchange-rate markets quoted for the
// local/counter currency pair.
type RateFamily int

const (
	// Official is the official exchange rate.
	Official RateFamily = iota
	// MEP is the market-implied rate from dual-listed bonds.
	MEP
	// Crypto is the stablecoin-referenced rate.
	Crypto
)

func (f RateFamily) String() string {
	switch f {
	case Official:
		return "official"
	case MEP:
		return "mep"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// ParseRateFamily parses the string form of a rate family.
func ParseRateFamily(s string) (RateFamily, error) {
	switch s {
	case "official":
		return Official, nil
	case "mep":
		return MEP, nil
	case "crypto":
		return Crypto, nil
	default:
		return 0, fmt.Errorf("unknown rate family %q", s)
	}
}

// RateSide is the direction of the operation from the user's point of
// view: Buy is a purchase of counter currency (labelled "C"), Sell a
// sale of it (labelled "V").
type RateSide int

const (
	Buy RateSide = iota
	Sell
)

func (s RateSide) String() string {
	if s == Buy {
		return "C"
	}
	return "V"
}

// ParseRateSide parses the string form of a rate side ("C"/"buy",
// "V"/"sell").
func ParseRateSide(s string) (RateSide, error) {
	switch s {
	case "C", "c", "buy":
		return Buy, nil
	case "V", "v", "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown rate side %q", s)
	}
}

// RatePolicy is a (family, side) pair selecting which quote values a
// holding.
type RatePolicy struct {
	Family RateFamily
	Side   RateSide
}

func (p RatePolicy) String() string {
	return fmt.Sprintf("%s/%s", p.Family, p.Side)
}

// Quote holds the two-way prices of one rate family, expressed as local
// currency per unit of counter currency.
type Quote struct {
	Buy  Money
	Sell Money
}

// RateTable maps each quoted family to its two-way prices.
type RateTable map[RateFamily]Quote

// Resolve returns the quote to apply for a policy.
//
// The side crosses over: a purchase of counter currency (side Buy) is
// priced at the market's sell quote, and a sale (side Sell) at the
// market's buy quote. The rate a user pays to acquire currency is the
// counterpart's sell price. This inversion is deliberate and load
// bearing: every valuation in the system depends on it.
func (t RateTable) Resolve(family RateFamily, side RateSide) (Money, error) {
	q, ok := t[family]
	if !ok {
		return Money{}, fmt.Errorf("%w: no quote for family %s", ErrRateUnavailable, family)
	}
	var rate Money
	switch side {
	case Buy:
		rate = q.Sell
	case Sell:
		rate = q.Buy
	default:
		return Money{}, fmt.Errorf("%w: unknown side %d", ErrRateUnavailable, side)
	}
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("%w: %s/%s quote is not positive", ErrRateUnavailable, family, side)
	}
	return rate, nil
}

// OverrideKey addresses one manual fx preference.
type OverrideKey struct {
	Account string
	Kind    AssetKind
}

// Overrides is the per-(account, kind) manual rate-policy table. An
// absent entry means "automatic". Overrides naming accounts or kinds
// with no matching holdings are inert.
type Overrides map[OverrideKey]RatePolicy

// Get returns the override for an account and kind, if any.
func (o Overrides) Get(account string, kind AssetKind) (RatePolicy, bool) {
	p, ok := o[OverrideKey{Account: account, Kind: kind}]
	return p, ok
}

// Set records a manual policy for an account and kind.
func (o Overrides) Set(account string, kind AssetKind, p RatePolicy) {
	o[OverrideKey{Account: account, Kind: kind}] = p
}

// Clear removes the manual policy for an account and kind, returning to
// automatic resolution.
func (o Overrides) Clear(account string, kind AssetKind) {
	delete(o, OverrideKey{Account: account, Kind: kind})
}
