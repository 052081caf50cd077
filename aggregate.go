package cartera

import (
	"strings"
	"time"
)

// Commission holds one provider's trading costs: percentage on the buy
// side, percentage plus optional fixed fee on the sell side. The zero
// value means free trading.
type Commission struct {
	BuyPct   Percent `json:"buyPct,omitempty"`
	SellPct  Percent `json:"sellPct,omitempty"`
	FixedFee Money   `json:"fixedFee,omitempty"`
}

// Commissions maps a provider name to its commission settings.
type Commissions map[string]Commission

// DefaultCashSuffix is the naming convention marking the cash
// sub-ledger of a split account.
const DefaultCashSuffix = " cash"

// AggregateOptions parameterizes one valuation pass.
type AggregateOptions struct {
	Rates       RateTable
	Overrides   Overrides
	Commissions Commissions
	// Currencies defaults to DefaultCurrencies when zero.
	Currencies Currencies
	// AsOf stamps the portfolio; zero means now.
	AsOf time.Time
	// MergeSubLedgers unions "holdings"/"cash" sub-ledger pairs of the
	// same account (per CashSuffix) into one merged provider.
	MergeSubLedgers bool
	// CashSuffix defaults to DefaultCashSuffix.
	CashSuffix string
}

// Aggregate values every holding and rolls the result up item →
// provider → rubro → portfolio. It is a pure function of its inputs:
// holdings are read, never mutated, and repeated calls with the same
// inputs return equal portfolios.
//
// Holdings that cannot be priced, or whose rate cannot be resolved even
// through the automatic policy, are retained with a zero value
// contribution and a visible flag.
func Aggregate(holdings []Holding, opts AggregateOptions) *Portfolio {
	c := opts.Currencies
	if c == (Currencies{}) {
		c = DefaultCurrencies
	}
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	suffix := opts.CashSuffix
	if suffix == "" {
		suffix = DefaultCashSuffix
	}

	// Value each holding, preserving input order within each account.
	byAccount := make(map[string][]Item)
	var accounts []string
	for _, h := range holdings {
		it := valueHolding(h, opts, c)
		if _, ok := byAccount[h.Account]; !ok {
			accounts = append(accounts, h.Account)
		}
		byAccount[h.Account] = append(byAccount[h.Account], it)
	}

	if opts.MergeSubLedgers {
		accounts = mergeSubLedgers(byAccount, accounts, suffix)
	}

	// Split each account into per-rubro provider views, then roll up.
	type catKey struct {
		rubro   Rubro
		account string
	}
	providerItems := make(map[catKey][]Item)
	for _, account := range accounts {
		for _, it := range byAccount[account] {
			k := catKey{rubro: it.Kind.Rubro(), account: account}
			providerItems[k] = append(providerItems[k], it)
		}
	}

	p := &Portfolio{
		Currencies: c,
		AsOf:       asOf,
		Total:      ZeroDual(c),
		PL:         ZeroDual(c),
	}
	hard := ZeroDual(c)
	linked := ZeroDual(c)

	for _, r := range rubros {
		cat := &Category{
			Rubro:  r,
			Total:  ZeroDual(c),
			PL:     ZeroDual(c),
			Policy: rubroDefaultPolicy(r),
		}
		for _, account := range accounts {
			items, ok := providerItems[catKey{rubro: r, account: account}]
			if !ok {
				continue
			}
			prov := rollupProvider(account, items, c)
			cat.Providers = append(cat.Providers, prov)
			cat.Total = cat.Total.Add(prov.Total)
			cat.PL = cat.PL.Add(prov.PL)
			for _, it := range items {
				if it.Kind.CounterNative() {
					hard = hard.Add(it.Value)
				}
				if it.Kind.DollarLinked() {
					linked = linked.Add(it.Value)
				}
			}
		}
		if len(cat.Providers) == 0 {
			continue
		}
		p.Rubros = append(p.Rubros, cat)
		p.Total = p.Total.Add(cat.Total)
		p.PL = p.PL.Add(cat.PL)
	}

	if pct, ok := RatioOf(hard.Local, p.Total.Local); ok {
		p.HardPct = clampShare(pct)
	}
	if pct, ok := RatioOf(linked.Local, p.Total.Local); ok {
		p.LinkedPct = clampShare(pct)
	}
	return p
}

// valueHolding converts one raw holding into a valued item, resolving
// its exchange rate under the override-then-automatic policy chain.
func valueHolding(h Holding, opts AggregateOptions, c Currencies) Item {
	it := Item{
		Account:   h.Account,
		Symbol:    h.Symbol,
		Kind:      h.Kind,
		Quantity:  h.Quantity,
		Cost:      h.Cost,
		Value:     ZeroDual(c),
		PL:        ZeroDual(c),
		VNR:       ZeroDual(c),
		PriceInfo: h.PriceInfo,
		Yield:     h.Yield,
		FixedTerm: h.FixedTerm,
	}

	native, priced := h.NativeValue()
	if !priced {
		it.PriceInfo.Quality = PriceMissing
		it.Policy = h.Kind.DefaultPolicy()
		return it
	}

	it.Policy, it.Rate, it.RateFallback, it.RateUnavailable = resolvePolicy(h, opts)
	if it.RateUnavailable {
		// No usable quote on any policy: keep the native side visible,
		// the other side stays at zero and the row reads N/A.
		it.Value = nativeOnly(h.Kind, native, c)
		return it
	}

	if h.Kind.CounterNative() {
		it.Value = Dual{
			Local:   M(native.Decimal().Mul(it.Rate.Decimal()), c.Local),
			Counter: M(native.Decimal(), c.Counter),
		}
	} else {
		it.Value = Dual{
			Local:   M(native.Decimal(), c.Local),
			Counter: M(native.Decimal().Div(it.Rate.Decimal()), c.Counter),
		}
	}
	it.PL = it.Value.Sub(it.Cost)
	it.VNR = netRealizable(it.Value, opts.Commissions[h.Account], c)
	return it
}

// resolvePolicy picks the rate policy for a holding: the manual
// override when present and resolvable, the kind's automatic policy
// otherwise. A dead override is reported through fallback, an
// unresolvable automatic policy through unavailable.
func resolvePolicy(h Holding, opts AggregateOptions) (policy RatePolicy, rate Money, fallback, unavailable bool) {
	auto := h.Kind.DefaultPolicy()
	if ov, ok := opts.Overrides.Get(h.Account, h.Kind); ok {
		if r, err := opts.Rates.Resolve(ov.Family, ov.Side); err == nil {
			return ov, r, false, false
		}
		fallback = true
	}
	r, err := opts.Rates.Resolve(auto.Family, auto.Side)
	if err != nil {
		return auto, Money{}, fallback, true
	}
	return auto, r, fallback, false
}

// nativeOnly keeps a holding's known native side when no conversion is
// possible.
func nativeOnly(k AssetKind, native Money, c Currencies) Dual {
	d := ZeroDual(c)
	if k.CounterNative() {
		d.Counter = M(native.Decimal(), c.Counter)
	} else {
		d.Local = M(native.Decimal(), c.Local)
	}
	return d
}

// netRealizable applies the provider's disposal commissions to a value:
// value − sellPct×value − fixedFee, per reference currency. The fixed
// fee is charged on the side matching its own currency.
func netRealizable(value Dual, com Commission, c Currencies) Dual {
	vnr := Dual{
		Local:   applySellPct(value.Local, com.SellPct),
		Counter: applySellPct(value.Counter, com.SellPct),
	}
	if com.FixedFee.IsZero() {
		return vnr
	}
	if com.FixedFee.Currency() == c.Counter {
		vnr.Counter = vnr.Counter.Sub(M(com.FixedFee.Decimal(), c.Counter))
	} else {
		vnr.Local = vnr.Local.Sub(M(com.FixedFee.Decimal(), c.Local))
	}
	return vnr
}

// NetAcquisition applies the provider's acquisition commission to a
// value: value − buyPct×value.
func NetAcquisition(value Money, com Commission) Money {
	return applyPct(value, com.BuyPct)
}

func applySellPct(value Money, pct Percent) Money { return applyPct(value, pct) }

func applyPct(value Money, pct Percent) Money {
	if pct == 0 {
		return value
	}
	fee := M(value.Decimal().Mul(newDecimal(float64(pct)/100)), value.Currency())
	return value.Sub(fee)
}

// rubroDefaultPolicy is the fx policy label displayed for a category.
func rubroDefaultPolicy(r Rubro) RatePolicy {
	switch r {
	case RubroEquities:
		return RatePolicy{Family: MEP, Side: Sell}
	case RubroCrypto:
		return RatePolicy{Family: Crypto, Side: Sell}
	default:
		return RatePolicy{Family: Official, Side: Sell}
	}
}

// mergeSubLedgers rewrites the account map so that any "X"+suffix
// account folds into "X" when the base exists, deduplicated by
// (kind, symbol) so an asset mirrored in both sub-ledgers is counted
// once. It returns the surviving account order.
func mergeSubLedgers(byAccount map[string][]Item, accounts []string, suffix string) []string {
	var out []string
	for _, account := range accounts {
		base, found := strings.CutSuffix(account, suffix)
		if !found || base == "" {
			out = append(out, account)
			continue
		}
		if _, ok := byAccount[base]; !ok {
			out = append(out, account)
			continue
		}
		seen := make(map[mergeIdent]bool)
		for _, it := range byAccount[base] {
			seen[mergeIdent{kind: it.Kind, symbol: it.Symbol}] = true
		}
		for _, it := range byAccount[account] {
			id := mergeIdent{kind: it.Kind, symbol: it.Symbol}
			if seen[id] {
				continue
			}
			seen[id] = true
			it.Account = base
			byAccount[base] = append(byAccount[base], it)
		}
		delete(byAccount, account)
	}
	return out
}
