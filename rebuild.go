package shisan

// SnapshotOf computes the snapshot of a single day from the ledger and a
// rate table, valuing each holding with its current (already refreshed)
// price. Used by the update command to append today's row.
func SnapshotOf(l *Ledger, policy KeyPolicy, rates Rates, on Date) Snapshot {
	holdings := l.Consolidate(policy)
	snap := Snapshot{
		Date:                on,
		ExchangeRate:        rates.Rate("USD"),
		Breakdown:           make(map[string]BreakdownEntry, len(holdings)),
		CumulativeDividends: l.CumulativeDividends(on),
	}
	for _, h := range holdings {
		snap.Breakdown[h.Key] = BreakdownEntry{
			Value:    Value(h, rates),
			Quantity: h.ActiveQuantity,
		}
	}
	snap.TotalValue = TotalValue(holdings, rates)
	snap.TotalValueUSD = TotalValueIn(holdings, rates, "USD")
	return snap
}

// RebuildSnapshots regenerates the whole daily series from the ledger and
// the stored price history, walking every day from the earliest purchase to
// 'until'. Days where no lot exists yet produce no row. A lot without a
// stored price on a day is valued at its purchase price; a day without a
// stored exchange rate uses the nearest one, and parity as the last resort
// (both logged, the resulting rows are degraded).
//
// The walk nets sales per day, so a position sold in March stops
// contributing from its sell date even when rebuilding a full year.
func RebuildSnapshots(l *Ledger, db *PriceDB, policy KeyPolicy, until Date) Snapshots {
	first, ok := l.EarliestPurchase()
	if !ok {
		return nil
	}

	var out Snapshots
	for day := first; !day.After(until); day = day.Add(1) {
		snap, ok := rebuildDay(l, db, policy, day)
		if !ok {
			continue
		}
		out = out.Upsert(snap)
	}
	return out
}

// rebuildDay computes the snapshot of one historical day. ok is false when
// no lot existed yet on that day.
func rebuildDay(l *Ledger, db *PriceDB, policy KeyPolicy, day Date) (Snapshot, bool) {
	rate, ok := db.RateOn(day)
	if !ok {
		logf("no exchange rate stored around %s, valuing USD at parity", day)
		rate = Q(1)
	}
	rates := Rates{"USD": rate}

	snap := Snapshot{
		Date:                day,
		ExchangeRate:        rate,
		Breakdown:           make(map[string]BreakdownEntry),
		CumulativeDividends: l.CumulativeDividends(day),
		TotalValue:          M(0, ReportingCurrency),
	}

	hasData := false
	for lot := range l.Lots() {
		if lot.PurchaseDate.After(day) {
			continue
		}
		hasData = true

		active := l.ActiveQuantityAsOf(lot, day).OrZero()
		if active.IsZero() {
			continue
		}

		key := lot.Key(policy)
		price, ok := db.Price(key, day)
		if !ok {
			logf("no price stored for %q around %s, valuing at purchase price", key, day)
			price = lot.PurchasePrice
		}
		value := rates.Convert(price.Mul(active))

		entry := snap.Breakdown[key]
		entry.Value = entry.Value.Add(value)
		entry.Quantity = entry.Quantity.Add(active)
		snap.Breakdown[key] = entry

		snap.TotalValue = snap.TotalValue.Add(value)
	}
	if !hasData {
		return Snapshot{}, false
	}

	snap.TotalValueUSD = M(snap.TotalValue.value.Div(rate.value), "USD")
	return snap, true
}
