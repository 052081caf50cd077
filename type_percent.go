package cartera

import "fmt"

// Percent is a display percentage (42.5 means 42.5%).
type Percent float64

// ratioEpsilon is the smallest denominator magnitude for which a
// percentage is considered defined.
const ratioEpsilon = 1e-9

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Ratio returns num/den as a Percent. The second return value is false
// when the denominator is too small for the ratio to mean anything, so
// callers can render "n/a" instead of a division artifact.
func Ratio(num, den float64) (Percent, bool) {
	if den < ratioEpsilon && den > -ratioEpsilon {
		return 0, false
	}
	return Percent(100 * num / den), true
}

// RatioOf is Ratio over two monetary amounts.
func RatioOf(num, den Money) (Percent, bool) {
	return Ratio(num.AsFloat(), den.AsFloat())
}

// clampShare limits a composition percentage to the displayable [0,100] band.
func clampShare(p Percent) Percent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
