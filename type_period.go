package cartera

import (
	"fmt"
	"strings"
)

// Window is a requested analysis period, always anchored on a reference
// date (usually today).
type Window int

const (
	// Window24H covers the last day.
	Window24H Window = iota
	// Window7D covers the last seven days.
	Window7D
	// Window30D covers the last thirty days.
	Window30D
	// Window90D covers the last ninety days.
	Window90D
	// Window1Y covers the last 365 days.
	Window1Y
	// WindowMTD covers the current month to date.
	WindowMTD
	// WindowYTD covers the current year to date.
	WindowYTD
	// WindowAll covers the whole history.
	WindowAll
)

func (w Window) String() string {
	switch w {
	case Window24H:
		return "24h"
	case Window7D:
		return "7d"
	case Window30D:
		return "30d"
	case Window90D:
		return "90d"
	case Window1Y:
		return "1y"
	case WindowMTD:
		return "mtd"
	case WindowYTD:
		return "ytd"
	case WindowAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseWindow parses a window token.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "24h", "1d", "day":
		return Window24H, nil
	case "7d", "week":
		return Window7D, nil
	case "30d", "month":
		return Window30D, nil
	case "90d", "quarter":
		return Window90D, nil
	case "1y", "year":
		return Window1Y, nil
	case "mtd":
		return WindowMTD, nil
	case "ytd":
		return WindowYTD, nil
	case "all", "max":
		return WindowAll, nil
	default:
		return 0, fmt.Errorf("unknown window %q", s)
	}
}

// Start returns the baseline target date of the window anchored on a
// reference date: the calendar day whose end-of-day snapshot represents
// the state "before the window". ok is false for WindowAll, which has
// no start boundary.
func (w Window) Start(on Date) (Date, bool) {
	switch w {
	case Window24H:
		return on.Add(-1), true
	case Window7D:
		return on.Add(-7), true
	case Window30D:
		return on.Add(-30), true
	case Window90D:
		return on.Add(-90), true
	case Window1Y:
		return on.Add(-365), true
	case WindowMTD:
		return on.StartOfMonth().Add(-1), true
	case WindowYTD:
		return on.StartOfYear().Add(-1), true
	default:
		return Date{}, false
	}
}

// Days returns the number of days covered by the window anchored on a
// reference date. ok is false for WindowAll.
func (w Window) Days(on Date) (int, bool) {
	start, ok := w.Start(on)
	if !ok {
		return 0, false
	}
	return on.Sub(start), true
}
