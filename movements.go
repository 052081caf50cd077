package cartera

import (
	"fmt"
	"time"
)

// MovementType identifies the kind of a recorded account movement.
type MovementType string

const (
	MovementInterest   MovementType = "interest"
	MovementFee        MovementType = "fee"
	MovementBuy        MovementType = "buy"
	MovementSell       MovementType = "sell"
	MovementDeposit    MovementType = "deposit"
	MovementWithdrawal MovementType = "withdrawal"
)

// ParseMovementType parses the string form of a movement type.
func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(s); t {
	case MovementInterest, MovementFee, MovementBuy, MovementSell,
		MovementDeposit, MovementWithdrawal:
		return t, nil
	default:
		return "", fmt.Errorf("unknown movement type %q", s)
	}
}

// Movement is one transaction from the upstream movements feed. The
// engine only reads movements, to attribute realized interest and fees
// inside a drivers window.
type Movement struct {
	Type    MovementType `json:"type"`
	Account string       `json:"account,omitempty"`
	Amount  Money        `json:"amount"`
	When    time.Time    `json:"when"`
}

// movementsIn filters movements of a type with a timestamp in (from, to].
func movementsIn(movements []Movement, t MovementType, from, to Date) []Movement {
	var out []Movement
	for _, m := range movements {
		if m.Type != t {
			continue
		}
		d := DateOf(m.When)
		if d.After(from) && !d.After(to) {
			out = append(out, m)
		}
	}
	return out
}

// sumMovements accumulates movement amounts into the matching side of a
// Dual: amounts in the local reference currency land on the local side,
// amounts in the counter currency on the counter side. Other currencies
// are ignored; the upstream feed normalizes to the reference pair.
func sumMovements(movements []Movement, c Currencies) Dual {
	total := ZeroDual(c)
	for _, m := range movements {
		switch m.Amount.Currency() {
		case c.Counter:
			total.Counter = total.Counter.Add(m.Amount)
		default:
			total.Local = total.Local.Add(m.Amount)
		}
	}
	return total
}
