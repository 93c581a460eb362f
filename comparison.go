package shisan

// HoldingChange is the per-holding result of a period comparison.
type HoldingChange struct {
	Change        Money // in the reporting currency
	ChangePercent Percent
}

// Comparison is the result of comparing the portfolio against a past
// snapshot. The zero Comparison is never returned on success; the second
// return value of Compare distinguishes "no data to compare" from a computed
// zero change.
type Comparison struct {
	Period             Period
	CurrentTotal       Money
	TotalChange        Money
	TotalChangePercent Percent
	Holdings           map[string]HoldingChange
	ComparisonDate     Date
	Realtime           bool // current side is a live valuation, not the stored latest snapshot
}

// daysearch is how many snapshots back the day comparison may look for a
// snapshot whose stored value actually differs, and the minimum difference
// (in reporting-currency units) that counts as movement. The update job can
// run twice on the same inputs and write two identical rows; comparing
// against those would report flat movement that never happened.
const daySearchWindow = 7

var dayThreshold = M(1, ReportingCurrency)

// Compare computes the period-over-period change of the portfolio.
//
// The current side is a live valuation when at least one holding's market is
// open, otherwise the latest snapshot's stored values, so a closed market
// never shows stale prices as if they were live.
//
// The comparison side comes from the snapshot history. For Day it is the
// latest snapshot when the current side is live (today's movement since the
// last recorded valuation), and the latest snapshot's predecessor when every
// market is closed (the latest snapshot itself is then the current side).
// For longer periods it is the earliest snapshot inside the window (or the
// oldest available, shortening the effective window).
//
// Per holding the change is a unit-price delta times the currently active
// quantity. Comparing value directly would report a same-day partial sale as
// a price collapse.
//
// ok is false when there is nothing to compare: no snapshots or no active
// holdings. Callers must render that distinctly from a zero change.
func Compare(holdings []Holding, snaps Snapshots, period Period, rates Rates, marketOpen map[string]bool) (c Comparison, ok bool) {
	if len(snaps) == 0 || len(holdings) == 0 {
		return Comparison{}, false
	}

	today := Today()
	start := period.ComparisonStart(today)
	latest, _ := snaps.Latest()

	realtime := false
	for _, h := range holdings {
		if marketOpen[h.Key] {
			realtime = true
			break
		}
	}

	var comparison Snapshot
	switch {
	case period == Day && realtime:
		comparison = latest
	case period == Day:
		comparison, _ = snaps.Previous()
	default:
		comparison, _ = snaps.EarliestAtOrAfter(start)
	}

	currentTotal := latest.TotalValue
	if realtime {
		currentTotal = TotalValue(holdings, rates)
	}

	c = Comparison{
		Period:         period,
		CurrentTotal:   currentTotal,
		Holdings:       make(map[string]HoldingChange, len(holdings)),
		ComparisonDate: comparison.Date,
		Realtime:       realtime,
	}

	refineDay := period == Day && !realtime
	totalChange := M(0, ReportingCurrency)
	for _, h := range holdings {
		change := holdingChange(h, snaps, latest, comparison, start, rates, marketOpen[h.Key], refineDay)
		c.Holdings[h.Key] = change
		totalChange = totalChange.Add(change.Change)
	}
	c.TotalChange = totalChange

	// percentage relative to the implied total at the start of the period
	base := currentTotal.Sub(totalChange)
	if base.IsPositive() {
		c.TotalChangePercent = Percent(totalChange.InexactFloat() / base.InexactFloat() * 100)
	}
	return c, true
}

// holdingChange computes the unit-price delta of one holding between the
// effective comparison snapshot and now.
func holdingChange(h Holding, snaps Snapshots, latest, comparison Snapshot, start Date, rates Rates, open, refineDay bool) HoldingChange {
	zero := HoldingChange{Change: M(0, ReportingCurrency)}

	// A holding bought after the nominal comparison date has no meaningful
	// value at that date. Compare against the first snapshot that knows it
	// instead, and report no change while none exists yet.
	if h.PurchaseDate.After(start) {
		effective, ok := snaps.EarliestWithHolding(h.Key, h.PurchaseDate)
		if !ok {
			return zero
		}
		comparison = effective
	} else if _, ok := comparison.Entry(h.Key); !ok {
		// Present before the window but absent from the comparison snapshot:
		// the history has a hole, there is no basis for a delta.
		return zero
	}

	if refineDay {
		if pEffective, ok := daySearch(h.Key, snaps, latest, comparison); ok {
			comparison = pEffective
		}
	}

	compUnit, ok := compUnitPrice(comparison, h.Key)
	if !ok {
		return zero
	}

	currentUnit := currentUnitPrice(h, latest, rates, open)
	delta := currentUnit.Sub(compUnit)

	change := HoldingChange{Change: delta.Mul(h.ActiveQuantity.OrZero())}
	if compUnit.IsPositive() {
		change.ChangePercent = Percent(delta.InexactFloat() / compUnit.InexactFloat() * 100)
	}
	return change
}

// daySearch implements the Day-period refinement: walk back through up to
// daySearchWindow snapshots before the latest for the nearest one whose
// stored value of this holding differs from the latest stored value by more
// than one reporting-currency unit. Returns false to keep the plain
// predecessor.
func daySearch(key string, snaps Snapshots, latest, comparison Snapshot) (Snapshot, bool) {
	// only refine the plain predecessor selection, not a newly-acquired base
	if prev, ok := snaps.Previous(); !ok || prev.Date != comparison.Date {
		return Snapshot{}, false
	}
	latestEntry, ok := latest.Entry(key)
	if !ok {
		return Snapshot{}, false
	}
	for i, steps := len(snaps)-2, 0; i >= 0 && steps < daySearchWindow; i, steps = i-1, steps+1 {
		entry, ok := snaps[i].Entry(key)
		if !ok {
			continue
		}
		diff := entry.Value.Sub(latestEntry.Value)
		if diff.IsNegative() {
			diff = diff.Neg()
		}
		if diff.GreaterThan(dayThreshold) {
			return snaps[i], true
		}
	}
	return Snapshot{}, false
}

// compUnitPrice returns the stored per-unit price of the holding in the
// comparison snapshot.
func compUnitPrice(comparison Snapshot, key string) (Money, bool) {
	entry, ok := comparison.Entry(key)
	if !ok {
		return Money{}, false
	}
	return entry.UnitPrice()
}

// currentUnitPrice is the live converted market price when the holding's
// market is open, and the latest stored unit price otherwise.
func currentUnitPrice(h Holding, latest Snapshot, rates Rates, open bool) Money {
	if open {
		return rates.Convert(h.Price())
	}
	if entry, ok := latest.Entry(h.Key); ok {
		if unit, ok := entry.UnitPrice(); ok {
			return unit
		}
	}
	return rates.Convert(h.Price())
}
