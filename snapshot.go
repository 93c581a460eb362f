package shisan

import "sort"

// BreakdownEntry is the stored per-holding state inside a snapshot.
type BreakdownEntry struct {
	Value    Money    `json:"value"` // in the reporting currency
	Quantity Quantity `json:"quantity"`
}

// UnitPrice returns the stored per-unit value, or false when the entry holds
// no quantity.
func (b BreakdownEntry) UnitPrice() (Money, bool) {
	if !b.Quantity.IsPositive() {
		return Money{}, false
	}
	return b.Value.Div(b.Quantity), true
}

// Snapshot is one persisted daily record of the whole portfolio valuation.
// Snapshots are produced by the update and rebuild commands and consumed
// read-only by period comparisons.
type Snapshot struct {
	Date                Date                      `json:"date"`
	TotalValue          Money                     `json:"totalValue"`    // reporting currency
	TotalValueUSD       Money                     `json:"totalValueUSD"` // informational
	ExchangeRate        Quantity                  `json:"exchangeRate"`  // JPY per USD on that day
	Breakdown           map[string]BreakdownEntry `json:"breakdown"`     // holding key -> state
	CumulativeDividends Money                     `json:"cumulativeDividends,omitzero"`
}

// Entry returns the stored state of one holding in this snapshot.
func (s Snapshot) Entry(key string) (BreakdownEntry, bool) {
	e, ok := s.Breakdown[key]
	return e, ok
}

// Snapshots is a date-ascending series of daily snapshots.
type Snapshots []Snapshot

// sort orders the series by date ascending. Data files are kept sorted, this
// is a guard for hand-edited ones.
func (s Snapshots) sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Latest returns the most recent snapshot.
func (s Snapshots) Latest() (Snapshot, bool) {
	if len(s) == 0 {
		return Snapshot{}, false
	}
	return s[len(s)-1], true
}

// Previous returns the second most recent snapshot, falling back to the
// oldest when there is only one.
func (s Snapshots) Previous() (Snapshot, bool) {
	if len(s) == 0 {
		return Snapshot{}, false
	}
	if len(s) == 1 {
		return s[0], true
	}
	return s[len(s)-2], true
}

// EarliestAtOrAfter returns the first snapshot dated on or after the given
// day, falling back to the oldest available snapshot. A portfolio younger
// than the requested window still gets a comparison, over a shorter
// effective window.
func (s Snapshots) EarliestAtOrAfter(day Date) (Snapshot, bool) {
	if len(s) == 0 {
		return Snapshot{}, false
	}
	for _, snap := range s {
		if !snap.Date.Before(day) {
			return snap, true
		}
	}
	return s[0], true
}

// EarliestWithHolding returns the first snapshot dated on or after day that
// contains the given holding key.
func (s Snapshots) EarliestWithHolding(key string, day Date) (Snapshot, bool) {
	for _, snap := range s {
		if snap.Date.Before(day) {
			continue
		}
		if _, ok := snap.Breakdown[key]; ok {
			return snap, true
		}
	}
	return Snapshot{}, false
}

// Upsert inserts a snapshot, replacing any existing snapshot of the same
// date, and keeps the series sorted.
func (s Snapshots) Upsert(snap Snapshot) Snapshots {
	for i := range s {
		if s[i].Date == snap.Date {
			s[i] = snap
			return s
		}
	}
	s = append(s, snap)
	s.sort()
	return s
}
