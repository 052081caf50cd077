package cartera

import (
	"fmt"
	"sort"
)

// SnapshotRecord is an immutable capture of the portfolio's valuation
// on one calendar date: the dual-currency total plus a per-asset
// breakdown keyed by the stable composite asset key.
//
// The record's shape is a persistence contract: drivers computed
// tomorrow must be able to diff against a record saved today, across
// schema versions.
type SnapshotRecord struct {
	Date      Date               `json:"date"`
	Total     Dual               `json:"total"`
	Breakdown map[AssetKey]Dual  `json:"breakdown"`
}

// NewSnapshotRecord captures a portfolio into a snapshot record. It is
// a pure constructor: the external persister saves exactly what the
// drivers engine will later diff against.
func NewSnapshotRecord(p *Portfolio) SnapshotRecord {
	rec := SnapshotRecord{
		Date:      DateOf(p.AsOf),
		Total:     p.Total,
		Breakdown: make(map[AssetKey]Dual),
	}
	for _, it := range p.Items() {
		key := it.Key()
		if prev, ok := rec.Breakdown[key]; ok {
			rec.Breakdown[key] = prev.Add(it.Value)
		} else {
			rec.Breakdown[key] = it.Value
		}
	}
	return rec
}

// SnapshotSeries is a list of snapshot records in ascending date order.
type SnapshotSeries []SnapshotRecord

// Sort orders the series ascending by date.
func (s SnapshotSeries) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Validate checks that the series is strictly ascending by date.
func (s SnapshotSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return fmt.Errorf("snapshot series not ascending: %s then %s", s[i-1].Date, s[i].Date)
		}
	}
	return nil
}

// Baseline returns the most recent snapshot dated at or before the
// given date.
func (s SnapshotSeries) Baseline(on Date) (SnapshotRecord, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if !s[i].Date.After(on) {
			return s[i], true
		}
	}
	return SnapshotRecord{}, false
}

// Earliest returns the oldest snapshot of the series.
func (s SnapshotSeries) Earliest() (SnapshotRecord, bool) {
	if len(s) == 0 {
		return SnapshotRecord{}, false
	}
	return s[0], true
}

// Latest returns the most recent snapshot of the series.
func (s SnapshotSeries) Latest() (SnapshotRecord, bool) {
	if len(s) == 0 {
		return SnapshotRecord{}, false
	}
	return s[len(s)-1], true
}

// Has reports whether a snapshot exists for the exact date.
func (s SnapshotSeries) Has(on Date) bool {
	for _, rec := range s {
		if rec.Date == on {
			return true
		}
	}
	return false
}

// LocalValues extracts the local-currency total series, for the risk
// metrics.
func (s SnapshotSeries) LocalValues() []float64 {
	out := make([]float64, len(s))
	for i, rec := range s {
		out[i] = rec.Total.Local.AsFloat()
	}
	return out
}

// CounterValues extracts the counter-currency total series.
func (s SnapshotSeries) CounterValues() []float64 {
	out := make([]float64, len(s))
	for i, rec := range s {
		out[i] = rec.Total.Counter.AsFloat()
	}
	return out
}

// SnapshotStore supplies previously captured snapshots. The engine only
// reads; appending and purging belong to the external scheduler or
// manual-save collaborator.
type SnapshotStore interface {
	Snapshots() (SnapshotSeries, error)
}

// OverrideStore supplies the persisted manual fx preferences. The
// engine only reads; mutation belongs to the external preference
// manager.
type OverrideStore interface {
	Overrides() (Overrides, error)
}
