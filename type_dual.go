package cartera

// Currencies names the two reference currencies every valuation is
// expressed in: the local (soft) currency and the counter (hard)
// currency.
type Currencies struct {
	Local   string
	Counter string
}

// DefaultCurrencies is the reference pair used when none is configured.
var DefaultCurrencies = Currencies{Local: "ARS", Counter: "USD"}

// Dual is a monetary amount carried in both reference currencies at once.
type Dual struct {
	Local   Money `json:"local"`
	Counter Money `json:"counter"`
}

// D pairs two amounts into a Dual.
func D(local, counter Money) Dual { return Dual{Local: local, Counter: counter} }

// ZeroDual returns a zero amount in both reference currencies.
func ZeroDual(c Currencies) Dual {
	return Dual{Local: M(0, c.Local), Counter: M(0, c.Counter)}
}

func (d Dual) Add(e Dual) Dual {
	return Dual{Local: d.Local.Add(e.Local), Counter: d.Counter.Add(e.Counter)}
}

func (d Dual) Sub(e Dual) Dual {
	return Dual{Local: d.Local.Sub(e.Local), Counter: d.Counter.Sub(e.Counter)}
}

func (d Dual) Neg() Dual {
	return Dual{Local: d.Local.Neg(), Counter: d.Counter.Neg()}
}

func (d Dual) IsZero() bool { return d.Local.IsZero() && d.Counter.IsZero() }

func (d Dual) Equal(e Dual) bool {
	return d.Local.Equal(e.Local) && d.Counter.Equal(e.Counter)
}

// In selects the side of the pair for a reference currency name,
// defaulting to the local side.
func (d Dual) In(c Currencies, currency string) Money {
	if currency == c.Counter {
		return d.Counter
	}
	return d.Local
}
