package cartera

import (
	"encoding/json"
	"testing"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := ARS(100.50)
	b := ARS(49.50)

	if got := a.Add(b); !got.Equal(ARS(150)) {
		t.Errorf("Add = %v, want 150", got)
	}
	if got := a.Sub(b); !got.Equal(ARS(51)) {
		t.Errorf("Sub = %v, want 51", got)
	}
	if got := a.Mul(Q(2)); !got.Equal(ARS(201)) {
		t.Errorf("Mul = %v, want 201", got)
	}
	if got := a.Div(Q(0)); !got.IsZero() {
		t.Errorf("Div by zero = %v, want zero money", got)
	}
	if got := ARS(-5).Abs(); !got.Equal(ARS(5)) {
		t.Errorf("Abs = %v, want 5", got)
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	in := USD(1234.56)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestRatio(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		p, ok := Ratio(25, 100)
		if !ok || !p.Equal(25) {
			t.Errorf("Ratio(25,100) = %v, %v; want 25, true", p, ok)
		}
	})
	t.Run("zero denominator is undefined, not zero", func(t *testing.T) {
		if _, ok := Ratio(25, 0); ok {
			t.Error("Ratio(_, 0) ok = true")
		}
	})
	t.Run("near-zero denominator", func(t *testing.T) {
		if _, ok := Ratio(25, 1e-12); ok {
			t.Error("Ratio over an epsilon denominator ok = true")
		}
	})
	t.Run("negative", func(t *testing.T) {
		p, ok := Ratio(-50, 200)
		if !ok || !p.Equal(-25) {
			t.Errorf("Ratio(-50,200) = %v, %v; want -25, true", p, ok)
		}
	})
}

func TestDual_In(t *testing.T) {
	d := D(ARS(1000), USD(1))
	if got := d.In(DefaultCurrencies, "USD"); !got.Equal(USD(1)) {
		t.Errorf("In(USD) = %v, want 1 USD", got)
	}
	if got := d.In(DefaultCurrencies, "ARS"); !got.Equal(ARS(1000)) {
		t.Errorf("In(ARS) = %v, want 1000 ARS", got)
	}
}

func TestDual_Neg(t *testing.T) {
	d := D(ARS(1000), USD(1)).Neg()
	if want := D(ARS(-1000), USD(-1)); !d.Equal(want) {
		t.Errorf("Neg() = %v, want %v", d, want)
	}
	if !ZeroDual(DefaultCurrencies).Neg().IsZero() {
		t.Error("Neg() of zero is not zero")
	}
}
