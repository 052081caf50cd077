package cartera

import "fmt"

// AssetKind tags a holding with its shape: which fields are meaningful,
// which rubro it belongs to, which currency it is natively denominated
// in, and which exchange-rate policy values it by default.
type AssetKind int

const (
	// CashLocal is a plain local-currency wallet balance.
	CashLocal AssetKind = iota
	// CashForeign is a counter-currency cash balance.
	CashForeign
	// YieldWallet is a local-currency wallet that accrues daily interest.
	YieldWallet
	// FixedTerm is a fixed-term deposit with principal, maturity and a
	// contracted nominal rate.
	FixedTerm
	// Cedear is a local-currency-settled certificate tracking a foreign
	// equity.
	Cedear
	// CryptoVolatile is a market-priced crypto asset.
	CryptoVolatile
	// CryptoStable is a stablecoin pegged to the counter currency.
	CryptoStable
	// FundShare is a mutual-fund share priced in local currency.
	FundShare
)

// assetKinds lists every kind, for exhaustive iteration.
var assetKinds = []AssetKind{
	CashLocal, CashForeign, YieldWallet, FixedTerm,
	Cedear, CryptoVolatile, CryptoStable, FundShare,
}

func (k AssetKind) String() string {
	switch k {
	case CashLocal:
		return "cash-local"
	case CashForeign:
		return "cash-foreign"
	case YieldWallet:
		return "yield-wallet"
	case FixedTerm:
		return "fixed-term"
	case Cedear:
		return "cedear"
	case CryptoVolatile:
		return "crypto"
	case CryptoStable:
		return "stablecoin"
	case FundShare:
		return "fund"
	default:
		return "unknown"
	}
}

// ParseAssetKind parses the string form of an asset kind.
func ParseAssetKind(s string) (AssetKind, error) {
	for _, k := range assetKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown asset kind %q", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (k AssetKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (k *AssetKind) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAssetKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Rubro is a top-level asset category grouping providers.
type Rubro int

const (
	RubroWallets Rubro = iota
	RubroFixedTerm
	RubroEquities
	RubroCrypto
	RubroFunds
)

// rubros lists every rubro in display order.
var rubros = []Rubro{RubroWallets, RubroFixedTerm, RubroEquities, RubroCrypto, RubroFunds}

func (r Rubro) String() string {
	switch r {
	case RubroWallets:
		return "wallets"
	case RubroFixedTerm:
		return "fixed-term"
	case RubroEquities:
		return "equities"
	case RubroCrypto:
		return "crypto"
	case RubroFunds:
		return "funds"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (r Rubro) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.String())), nil
}

// Rubro returns the category a kind rolls up into.
func (k AssetKind) Rubro() Rubro {
	switch k {
	case CashLocal, CashForeign, YieldWallet:
		return RubroWallets
	case FixedTerm:
		return RubroFixedTerm
	case Cedear:
		return RubroEquities
	case CryptoVolatile, CryptoStable:
		return RubroCrypto
	case FundShare:
		return RubroFunds
	default:
		return RubroWallets
	}
}

// DefaultPolicy returns the automatic exchange-rate policy for the kind.
func (k AssetKind) DefaultPolicy() RatePolicy {
	switch k {
	case Cedear:
		return RatePolicy{Family: MEP, Side: Sell}
	case CryptoVolatile, CryptoStable:
		return RatePolicy{Family: Crypto, Side: Sell}
	default:
		return RatePolicy{Family: Official, Side: Sell}
	}
}

// CounterNative reports whether the kind is natively denominated in the
// counter currency; its local value is obtained by multiplying by the
// rate, instead of dividing.
func (k AssetKind) CounterNative() bool {
	switch k {
	case CashForeign, CryptoVolatile, CryptoStable:
		return true
	default:
		return false
	}
}

// DollarLinked reports whether the kind tracks the counter currency
// while settling in local currency (the "currency-equivalent" bucket of
// the composition KPIs).
func (k AssetKind) DollarLinked() bool { return k == Cedear }

// CashLike reports whether the holding's native value is a recorded
// balance rather than quantity times price.
func (k AssetKind) CashLike() bool {
	switch k {
	case CashLocal, CashForeign, YieldWallet, FixedTerm:
		return true
	default:
		return false
	}
}

// YieldBearing reports whether the kind accrues interest from a nominal
// annual rate.
func (k AssetKind) YieldBearing() bool {
	return k == YieldWallet || k == FixedTerm
}
