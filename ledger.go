package shisan

import (
	"iter"
	"sort"
)

// Ledger holds the raw records of a portfolio: purchase lots, sales against
// those lots, and dividends. It is the single source of truth; every view
// (consolidated holdings, valuations, comparisons) is a pure projection of
// it.
type Ledger struct {
	lots      []Lot
	sales     []Sale
	dividends []Dividend
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// stableSort keeps each record list in chronological order. Stable so that
// same-day records keep their insertion order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.lots, func(i, j int) bool {
		return l.lots[i].PurchaseDate.Before(l.lots[j].PurchaseDate)
	})
	sort.SliceStable(l.sales, func(i, j int) bool {
		return l.sales[i].SellDate.Before(l.sales[j].SellDate)
	})
	sort.SliceStable(l.dividends, func(i, j int) bool {
		return l.dividends[i].Date.Before(l.dividends[j].Date)
	})
}

// Lots returns an iterator over all lots in chronological order.
func (l *Ledger) Lots() iter.Seq[Lot] {
	return func(yield func(Lot) bool) {
		for _, lot := range l.lots {
			if !yield(lot) {
				return
			}
		}
	}
}

// Sales returns an iterator over all sales in chronological order.
func (l *Ledger) Sales() iter.Seq[Sale] {
	return func(yield func(Sale) bool) {
		for _, s := range l.sales {
			if !yield(s) {
				return
			}
		}
	}
}

// Dividends returns an iterator over all dividends in chronological order.
func (l *Ledger) Dividends() iter.Seq[Dividend] {
	return func(yield func(Dividend) bool) {
		for _, d := range l.dividends {
			if !yield(d) {
				return
			}
		}
	}
}

// Lot returns the lot with the given id.
func (l *Ledger) Lot(id string) (Lot, bool) {
	for _, lot := range l.lots {
		if lot.ID == id {
			return lot, true
		}
	}
	return Lot{}, false
}

// Sale returns the sale with the given id.
func (l *Ledger) Sale(id string) (Sale, bool) {
	for _, s := range l.sales {
		if s.ID == id {
			return s, true
		}
	}
	return Sale{}, false
}

func (l *Ledger) NumLots() int  { return len(l.lots) }
func (l *Ledger) NumSales() int { return len(l.sales) }

// SoldQuantityOf returns the total quantity sold against one lot.
func (l *Ledger) SoldQuantityOf(lotID string) Quantity {
	var sold Quantity
	for _, s := range l.sales {
		if s.LotID == lotID {
			sold = sold.Add(s.Quantity)
		}
	}
	return sold
}

// SoldQuantity returns the total quantity sold against any of the given lots.
func (l *Ledger) SoldQuantity(lotIDs ...string) Quantity {
	var sold Quantity
	for _, id := range lotIDs {
		sold = sold.Add(l.SoldQuantityOf(id))
	}
	return sold
}

// ActiveQuantity returns the lot quantity still held after netting out
// sales. The result can be negative if the data was edited out of band;
// callers that display positions clamp with Quantity.OrZero.
func (l *Ledger) ActiveQuantity(lot Lot) Quantity {
	return lot.Quantity.Sub(l.SoldQuantityOf(lot.ID))
}

// ActiveQuantityAsOf returns the active quantity of a lot counting only
// sales on or before the given day. Used when rebuilding historical
// snapshots.
func (l *Ledger) ActiveQuantityAsOf(lot Lot, day Date) Quantity {
	q := lot.Quantity
	for _, s := range l.sales {
		if s.LotID == lot.ID && !s.SellDate.After(day) {
			q = q.Sub(s.Quantity)
		}
	}
	return q
}

// EarliestPurchase returns the date of the oldest lot, or false for an empty
// ledger.
func (l *Ledger) EarliestPurchase() (Date, bool) {
	if len(l.lots) == 0 {
		return Date{}, false
	}
	earliest := l.lots[0].PurchaseDate
	for _, lot := range l.lots[1:] {
		if lot.PurchaseDate.Before(earliest) {
			earliest = lot.PurchaseDate
		}
	}
	return earliest, true
}

// CumulativeDividends sums all dividends recorded on or before the given
// day, in the reporting currency.
func (l *Ledger) CumulativeDividends(day Date) Money {
	total := M(0, ReportingCurrency)
	for _, d := range l.dividends {
		if !d.Date.After(day) {
			total = total.Add(d.Amount)
		}
	}
	return total
}
