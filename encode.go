package cartera

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file contains code to read the engine's feeds from, and write
// its records to, human-readable JSONL streams: one JSON object per
// line, git-friendly, append-only where the record is append-only.
// The persistence format belongs to the external stores; these codecs
// only pin the line shapes the engine depends on.

// lines iterates the non-blank lines of a stream, reporting the 1-based
// line number for error messages.
func lines(r io.Reader, visit func(n int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err := visit(n, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// jholding is the wire shape of one holdings-feed line.
type jholding struct {
	Account   string          `json:"account"`
	Symbol    string          `json:"symbol"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Balance   decimal.Decimal `json:"balance,omitempty"`
	CostLocal decimal.Decimal `json:"costLocal,omitempty"`
	CostUSD   decimal.Decimal `json:"costCounter,omitempty"`

	TNA decimal.Decimal `json:"tna,omitempty"`
	TEA decimal.Decimal `json:"tea,omitempty"`

	Principal  decimal.Decimal `json:"principal,omitempty"`
	Start      string          `json:"start,omitempty"`
	Maturity   string          `json:"maturity,omitempty"`
	Contracted decimal.Decimal `json:"contracted,omitempty"`

	PriceQuality string `json:"priceQuality,omitempty"`
	PriceSource  string `json:"priceSource,omitempty"`
	PriceAsOf    string `json:"priceAsOf,omitempty"`
}

// DecodeHoldings reads the raw holdings feed, one holding per line.
func DecodeHoldings(r io.Reader, c Currencies) ([]Holding, error) {
	var holdings []Holding
	err := lines(r, func(n int, line []byte) error {
		var j jholding
		if err := json.Unmarshal(line, &j); err != nil {
			return fmt.Errorf("holdings line %d: %w", n, err)
		}
		kind, err := ParseAssetKind(j.Kind)
		if err != nil {
			return fmt.Errorf("holdings line %d: %w", n, err)
		}
		quality, err := ParsePriceQuality(j.PriceQuality)
		if err != nil {
			return fmt.Errorf("holdings line %d: %w", n, err)
		}
		native := c.Local
		if kind.CounterNative() {
			native = c.Counter
		}
		h := Holding{
			Account:  j.Account,
			Symbol:   j.Symbol,
			Kind:     kind,
			Quantity: Q(j.Quantity),
			Price:    M(j.Price, native),
			Balance:  M(j.Balance, native),
			Cost:     Dual{Local: M(j.CostLocal, c.Local), Counter: M(j.CostUSD, c.Counter)},
			PriceInfo: PriceInfo{
				Quality: quality,
				Source:  j.PriceSource,
			},
		}
		if j.PriceAsOf != "" {
			if t, err := time.Parse(time.RFC3339, j.PriceAsOf); err == nil {
				h.PriceInfo.AsOf = t
			}
		}
		if !j.TNA.IsZero() || !j.TEA.IsZero() {
			h.Yield = &YieldTerms{
				TNA: Percent(j.TNA.InexactFloat64()),
				TEA: Percent(j.TEA.InexactFloat64()),
			}
		}
		if !j.Principal.IsZero() || j.Maturity != "" {
			ft := &FixedTermMeta{
				Principal:  M(j.Principal, native),
				Contracted: M(j.Contracted, native),
			}
			if j.Start != "" {
				if d, err := ParseDate(j.Start); err == nil {
					ft.Start = d
				}
			}
			if j.Maturity != "" {
				if d, err := ParseDate(j.Maturity); err == nil {
					ft.Maturity = d
				}
			}
			h.FixedTerm = ft
		}
		holdings = append(holdings, h)
		return nil
	})
	return holdings, err
}

// jquote is the wire shape of one rate family's two-way quote.
type jquote struct {
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
}

// DecodeRates reads the quote table: a single JSON object mapping
// family names to two-way quotes, in local currency per unit of counter
// currency.
func DecodeRates(r io.Reader, c Currencies) (RateTable, error) {
	var raw map[string]jquote
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("rates: %w", err)
	}
	table := make(RateTable, len(raw))
	for name, q := range raw {
		family, err := ParseRateFamily(name)
		if err != nil {
			return nil, fmt.Errorf("rates: %w", err)
		}
		table[family] = Quote{
			Buy:  M(q.Buy, c.Local),
			Sell: M(q.Sell, c.Local),
		}
	}
	return table, nil
}

// joverride is the wire shape of one persisted fx preference.
type joverride struct {
	Account string `json:"account"`
	Kind    string `json:"kind"`
	Family  string `json:"family"`
	Side    string `json:"side"`
}

// DecodeOverrides reads the persisted manual fx preferences, one per
// line.
func DecodeOverrides(r io.Reader) (Overrides, error) {
	overrides := make(Overrides)
	err := lines(r, func(n int, line []byte) error {
		var j joverride
		if err := json.Unmarshal(line, &j); err != nil {
			return fmt.Errorf("overrides line %d: %w", n, err)
		}
		kind, err := ParseAssetKind(j.Kind)
		if err != nil {
			return fmt.Errorf("overrides line %d: %w", n, err)
		}
		family, err := ParseRateFamily(j.Family)
		if err != nil {
			return fmt.Errorf("overrides line %d: %w", n, err)
		}
		side, err := ParseRateSide(j.Side)
		if err != nil {
			return fmt.Errorf("overrides line %d: %w", n, err)
		}
		overrides.Set(j.Account, kind, RatePolicy{Family: family, Side: side})
		return nil
	})
	return overrides, err
}

// EncodeOverrides writes the fx preferences, one per line, in a stable
// order.
func EncodeOverrides(w io.Writer, overrides Overrides) error {
	keys := make([]OverrideKey, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Account != keys[j].Account {
			return keys[i].Account < keys[j].Account
		}
		return keys[i].Kind < keys[j].Kind
	})
	for _, k := range keys {
		p := overrides[k]
		j := joverride{
			Account: k.Account,
			Kind:    k.Kind.String(),
			Family:  p.Family.String(),
			Side:    sideToken(p.Side),
		}
		if err := json.NewEncoder(w).Encode(j); err != nil {
			return err
		}
	}
	return nil
}

func sideToken(s RateSide) string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// DecodeCommissions reads the per-provider commission settings: a
// single JSON object mapping provider names to settings.
func DecodeCommissions(r io.Reader, c Currencies) (Commissions, error) {
	type jcommission struct {
		BuyPct   float64         `json:"buyPct,omitempty"`
		SellPct  float64         `json:"sellPct,omitempty"`
		FixedFee decimal.Decimal `json:"fixedFee,omitempty"`
	}
	var raw map[string]jcommission
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("commissions: %w", err)
	}
	out := make(Commissions, len(raw))
	for name, j := range raw {
		com := Commission{
			BuyPct:  Percent(j.BuyPct),
			SellPct: Percent(j.SellPct),
		}
		if !j.FixedFee.IsZero() {
			com.FixedFee = M(j.FixedFee, c.Local)
		}
		out[name] = com
	}
	return out, nil
}

// jmovement is the wire shape of one movements-feed line.
type jmovement struct {
	Type     string          `json:"type"`
	Account  string          `json:"account,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	When     string          `json:"when"`
}

// DecodeMovements reads the movements feed, one transaction per line.
func DecodeMovements(r io.Reader, c Currencies) ([]Movement, error) {
	var movements []Movement
	err := lines(r, func(n int, line []byte) error {
		var j jmovement
		if err := json.Unmarshal(line, &j); err != nil {
			return fmt.Errorf("movements line %d: %w", n, err)
		}
		t, err := ParseMovementType(j.Type)
		if err != nil {
			return fmt.Errorf("movements line %d: %w", n, err)
		}
		when, err := time.Parse(time.RFC3339, j.When)
		if err != nil {
			return fmt.Errorf("movements line %d: %w", n, err)
		}
		currency := j.Currency
		if currency == "" {
			currency = c.Local
		}
		movements = append(movements, Movement{
			Type:    t,
			Account: j.Account,
			Amount:  M(j.Amount, currency),
			When:    when,
		})
		return nil
	})
	return movements, err
}

// DecodeSnapshots reads a snapshot series, one record per line, and
// returns it sorted ascending.
func DecodeSnapshots(r io.Reader) (SnapshotSeries, error) {
	var series SnapshotSeries
	err := lines(r, func(n int, line []byte) error {
		var rec SnapshotRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("snapshots line %d: %w", n, err)
		}
		series = append(series, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	series.Sort()
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// EncodeSnapshot appends one snapshot record line.
func EncodeSnapshot(w io.Writer, rec SnapshotRecord) error {
	return json.NewEncoder(w).Encode(rec)
}
