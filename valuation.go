package cartera

import "time"

// Item is one valued holding inside a portfolio rollup.
type Item struct {
	Account  string
	Symbol   string
	Kind     AssetKind
	Quantity Quantity

	// Value is the holding's worth in both reference currencies. It is
	// zero when the price is missing, but the item itself is never
	// dropped from the listing.
	Value Dual
	// Cost is the upstream-tracked cost basis.
	Cost Dual
	// PL is the unrealized profit or loss (value minus cost). Zero when
	// the holding could not be priced.
	PL Dual
	// VNR is the net realizable value after the provider's disposal
	// commissions.
	VNR Dual

	// Policy is the rate policy actually applied, and Rate the resolved
	// quote. RateFallback marks an override that resolved to an
	// unusable quote and was replaced by the automatic policy.
	Policy          RatePolicy
	Rate            Money
	RateFallback    bool
	RateUnavailable bool

	PriceInfo PriceInfo
	Yield     *YieldTerms
	FixedTerm *FixedTermMeta
}

// Key returns the stable composite identifier of the item.
func (it Item) Key() AssetKey {
	return NewAssetKey(it.Kind, it.Account, it.Symbol)
}

// Priced reports whether the item contributed to value-dependent sums.
func (it Item) Priced() bool {
	return it.PriceInfo.Quality != PriceMissing && !it.RateUnavailable
}

// Provider is a custodian or venue grouping of items, with totals
// recomputed from its item list.
type Provider struct {
	Name  string
	Items []Item
	Total Dual
	PL    Dual
	VNR   Dual
	// Policy is set only when every priced item under the provider was
	// valued with the same (family, side); otherwise no single label
	// applies.
	Policy *RatePolicy
}

// Category groups the providers of one rubro.
type Category struct {
	Rubro     Rubro
	Providers []*Provider
	Total     Dual
	PL        Dual
	// Policy is the rubro's default fx policy label.
	Policy RatePolicy
}

// Portfolio is the root of the valuation rollup.
type Portfolio struct {
	Currencies Currencies
	AsOf       time.Time
	Rubros     []*Category
	Total      Dual
	PL         Dual
	// HardPct is the share of portfolio value held in instruments
	// natively denominated in the counter currency; LinkedPct the share
	// in counter-tracking but locally settled instruments. Both clamped
	// to [0,100].
	HardPct   Percent
	LinkedPct Percent
}

// Items iterates all items of the portfolio in rollup order.
func (p *Portfolio) Items() []Item {
	var items []Item
	for _, cat := range p.Rubros {
		for _, prov := range cat.Providers {
			items = append(items, prov.Items...)
		}
	}
	return items
}

// Category returns the rollup for a rubro, or nil when the portfolio
// holds nothing in it.
func (p *Portfolio) Category(r Rubro) *Category {
	for _, cat := range p.Rubros {
		if cat.Rubro == r {
			return cat
		}
	}
	return nil
}

// rollupProvider recomputes a provider aggregate from its item list.
// All provider totals in the system flow through here, so that a merged
// provider can never inherit a stale pre-computed sum.
func rollupProvider(name string, items []Item, c Currencies) *Provider {
	p := &Provider{
		Name:  name,
		Items: items,
		Total: ZeroDual(c),
		PL:    ZeroDual(c),
		VNR:   ZeroDual(c),
	}
	var policy *RatePolicy
	uniform := true
	for _, it := range items {
		p.Total = p.Total.Add(it.Value)
		p.PL = p.PL.Add(it.PL)
		p.VNR = p.VNR.Add(it.VNR)
		if !it.Priced() {
			continue
		}
		if policy == nil {
			pol := it.Policy
			policy = &pol
		} else if *policy != it.Policy {
			uniform = false
		}
	}
	if uniform && policy != nil {
		p.Policy = policy
	}
	return p
}

// mergeIdent identifies an asset across the sub-ledgers of one
// underlying account: the same instrument listed by both the holdings
// and the cash sub-ledger is one asset, whatever account label each
// ledger stamped on it.
type mergeIdent struct {
	kind   AssetKind
	symbol string
}

// MergeProviders presents several providers as one underlying account.
// It unions their item lists, deduplicated by (kind, symbol), and
// recomputes the aggregate from that union. It never adds the
// providers' pre-computed totals, which would double count assets
// mirrored in more than one sub-ledger.
func MergeProviders(name string, c Currencies, providers ...*Provider) *Provider {
	seen := make(map[mergeIdent]bool)
	var union []Item
	for _, p := range providers {
		for _, it := range p.Items {
			id := mergeIdent{kind: it.Kind, symbol: it.Symbol}
			if seen[id] {
				continue
			}
			seen[id] = true
			union = append(union, it)
		}
	}
	return rollupProvider(name, union, c)
}
