package cartera

import (
	"fmt"
	"strings"
	"time"
)

// PriceQuality qualifies how a holding's price was obtained. It is a
// display flag, not an error: aggregates over non-fresh prices must be
// distinguishable from live data.
type PriceQuality int

const (
	// PriceFresh is a live quote.
	PriceFresh PriceQuality = iota
	// PriceStale is the last known quote past its freshness horizon.
	PriceStale
	// PriceEstimated is a computed fallback (e.g. interpolated NAV).
	PriceEstimated
	// PriceMissing means no price could be resolved at all. The holding
	// stays in every listing with a zero value contribution.
	PriceMissing
)

func (q PriceQuality) String() string {
	switch q {
	case PriceFresh:
		return "fresh"
	case PriceStale:
		return "stale"
	case PriceEstimated:
		return "estimated"
	case PriceMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// ParsePriceQuality parses the string form of a price quality flag.
func ParsePriceQuality(s string) (PriceQuality, error) {
	switch s {
	case "", "fresh":
		return PriceFresh, nil
	case "stale":
		return PriceStale, nil
	case "estimated":
		return PriceEstimated, nil
	case "missing":
		return PriceMissing, nil
	default:
		return 0, fmt.Errorf("unknown price quality %q", s)
	}
}

// PriceInfo carries the provenance of a holding's price.
type PriceInfo struct {
	Quality PriceQuality
	Source  string
	AsOf    time.Time
}

// YieldTerms holds the interest terms of a yield-bearing holding.
type YieldTerms struct {
	// TNA is the nominal annual rate, as a percent.
	TNA Percent
	// TEA is the effective annual rate under daily compounding, as a
	// percent. Zero means "derive from TNA".
	TEA Percent
}

// FixedTermMeta holds the contract of a fixed-term deposit.
type FixedTermMeta struct {
	Principal Money
	Start     Date
	Maturity  Date
	// Contracted is the total interest promised at maturity.
	Contracted Money
}

// Holding is one raw position as supplied by the upstream data layer.
// The kind tag decides which optional payloads are meaningful; upstream
// tracks the cost basis independently per holding.
type Holding struct {
	Account string    `json:"account"`
	Symbol  string    `json:"symbol"`
	Kind    AssetKind `json:"kind"`

	// Quantity and unit price, for market-priced kinds.
	Quantity Quantity `json:"quantity,omitempty"`
	Price    Money    `json:"price,omitempty"`
	// Balance is the recorded value for cash-like kinds, in the native
	// currency of the kind.
	Balance Money `json:"balance,omitempty"`

	// Cost basis in both reference currencies.
	Cost Dual `json:"cost,omitempty"`

	Yield     *YieldTerms    `json:"yield,omitempty"`
	FixedTerm *FixedTermMeta `json:"fixedTerm,omitempty"`

	PriceInfo PriceInfo `json:"-"`
}

// Key returns the stable composite identifier of the holding, invariant
// across rate changes and price updates. It is the join key between a
// current valuation and a historical snapshot breakdown.
func (h Holding) Key() AssetKey {
	return NewAssetKey(h.Kind, h.Account, h.Symbol)
}

// NativeValue computes the holding's value in its native currency:
// the recorded balance for cash-like kinds, quantity times price
// otherwise. ok is false when the price is needed but missing.
func (h Holding) NativeValue() (Money, bool) {
	if h.Kind.CashLike() {
		return h.Balance, true
	}
	if h.PriceInfo.Quality == PriceMissing || h.Price.IsZero() {
		return Money{}, false
	}
	return h.Price.Mul(h.Quantity), true
}

// AssetKey is the composite "kind/account/symbol" identifier of an
// asset across time. Its string form is part of the snapshot record
// contract and must stay backward-compatible.
type AssetKey string

// NewAssetKey builds the composite key of an asset.
func NewAssetKey(kind AssetKind, account, symbol string) AssetKey {
	return AssetKey(kind.String() + "/" + account + "/" + symbol)
}

// Kind extracts the asset kind encoded in the key.
func (k AssetKey) Kind() (AssetKind, error) {
	s := string(k)
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return 0, fmt.Errorf("malformed asset key %q", s)
	}
	return ParseAssetKind(s[:i])
}

// Account extracts the account identifier encoded in the key.
func (k AssetKey) Account() string {
	parts := strings.SplitN(string(k), "/", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Symbol extracts the instrument symbol encoded in the key.
func (k AssetKey) Symbol() string {
	parts := strings.SplitN(string(k), "/", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
