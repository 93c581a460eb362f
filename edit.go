package shisan

import (
	"fmt"
	"slices"
)

// Mutations of the ledger live here. This is the boundary that validates;
// the projections (consolidation, valuation, comparison) assume the data
// they read has gone through it.

// AddLot validates the lot and appends it to the ledger.
func (l *Ledger) AddLot(lot Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}
	if _, exists := l.Lot(lot.ID); exists {
		return fmt.Errorf("lot %s already exists", lot.ID)
	}
	l.lots = append(l.lots, lot)
	l.stableSort()
	return nil
}

// RecordSale sells quantity units of the given lot at price on the given
// day. A zero quantity means "sell the whole active position" of that lot.
// An empty price currency is filled in from the lot. The sale is rejected
// when it would exceed the lot's active quantity, so active quantities never
// go negative through this path.
func (l *Ledger) RecordSale(lotID string, quantity Quantity, price Money, on Date) (Sale, error) {
	lot, ok := l.Lot(lotID)
	if !ok {
		return Sale{}, fmt.Errorf("no lot %s", lotID)
	}

	active := l.ActiveQuantity(lot)
	if quantity.IsZero() {
		quantity = active
	}
	if !quantity.IsPositive() {
		return Sale{}, fmt.Errorf("nothing to sell on lot %q", lot.Name)
	}
	if quantity.GreaterThan(active) {
		return Sale{}, fmt.Errorf("cannot sell %s of lot %q, only %s active", quantity, lot.Name, active)
	}
	if price.Currency() == "" {
		price = M(price.value, lot.Currency())
	}
	if price.Currency() != lot.Currency() {
		return Sale{}, fmt.Errorf("sale currency %s does not match lot currency %s", price.Currency(), lot.Currency())
	}

	sale := NewSale(lot, quantity, price, on)
	if err := sale.Validate(); err != nil {
		return Sale{}, err
	}
	l.sales = append(l.sales, sale)
	l.stableSort()
	return sale, nil
}

// RecordDividend attaches a dividend to the given lot's instrument.
func (l *Ledger) RecordDividend(lotID string, amount Money, on Date) (Dividend, error) {
	lot, ok := l.Lot(lotID)
	if !ok {
		return Dividend{}, fmt.Errorf("no lot %s", lotID)
	}
	div := NewDividend(lot, amount, on)
	if err := div.Validate(); err != nil {
		return Dividend{}, err
	}
	l.dividends = append(l.dividends, div)
	l.stableSort()
	return div, nil
}

// LotPatch is a direct correction of one lot. Zero fields keep the current
// value.
type LotPatch struct {
	Quantity      Quantity
	PurchasePrice Money
	PurchaseDate  Date
}

// EditLot applies a direct correction to one lot.
func (l *Ledger) EditLot(id string, patch LotPatch) error {
	i := slices.IndexFunc(l.lots, func(lot Lot) bool { return lot.ID == id })
	if i < 0 {
		return fmt.Errorf("no lot %s", id)
	}
	lot := l.lots[i]
	if !patch.Quantity.IsZero() {
		lot.Quantity = patch.Quantity
	}
	if !patch.PurchasePrice.IsZero() {
		lot.PurchasePrice = patch.PurchasePrice
	}
	if !patch.PurchaseDate.IsZero() {
		lot.PurchaseDate = patch.PurchaseDate
	}
	if err := lot.Validate(); err != nil {
		return err
	}
	l.lots[i] = lot
	l.stableSort()
	return nil
}

// HoldingPatch is a consolidated-level edit, applied to every constituent
// lot so the group stays coherent. Zero fields keep the current values.
type HoldingPatch struct {
	Name         string
	Symbol       string
	ISIN         string
	FundCode     string
	CurrentPrice Money
	Tags         []string // nil keeps, empty non-nil clears
}

// EditHolding applies the patch to every lot of the holding identified by
// key under the given policy.
func (l *Ledger) EditHolding(key string, policy KeyPolicy, patch HoldingPatch) error {
	h, ok := l.HoldingByKey(key, policy)
	if !ok {
		return fmt.Errorf("no holding %q", key)
	}
	for i := range l.lots {
		if !slices.Contains(h.LotIDs, l.lots[i].ID) {
			continue
		}
		lot := &l.lots[i]
		if patch.Name != "" {
			lot.Name = patch.Name
		}
		if patch.Symbol != "" {
			lot.Symbol = patch.Symbol
		}
		if patch.ISIN != "" {
			lot.ISIN = patch.ISIN
		}
		if patch.FundCode != "" {
			lot.FundCode = patch.FundCode
		}
		if !patch.CurrentPrice.IsZero() {
			lot.CurrentPrice = patch.CurrentPrice
		}
		if patch.Tags != nil {
			lot.Tags = normalizeTags(patch.Tags)
		}
	}
	return nil
}

// SetCurrentPrice writes a freshly fetched market price onto every lot of
// the holding, so the next consolidation values with it.
func (l *Ledger) SetCurrentPrice(key string, policy KeyPolicy, price Money) error {
	return l.EditHolding(key, policy, HoldingPatch{CurrentPrice: price})
}

// DeleteLot removes one lot. Sales referencing it are kept: they remain
// visible in the sell history but no longer net against any position.
// Irreversible; the caller is responsible for confirming first.
func (l *Ledger) DeleteLot(id string) error {
	i := slices.IndexFunc(l.lots, func(lot Lot) bool { return lot.ID == id })
	if i < 0 {
		return fmt.Errorf("no lot %s", id)
	}
	l.lots = slices.Delete(l.lots, i, i+1)
	return nil
}

// DeleteHolding removes every constituent lot of the holding. Irreversible;
// the caller is responsible for confirming first.
func (l *Ledger) DeleteHolding(key string, policy KeyPolicy) error {
	h, ok := l.HoldingByKey(key, policy)
	if !ok {
		return fmt.Errorf("no holding %q", key)
	}
	l.lots = slices.DeleteFunc(l.lots, func(lot Lot) bool {
		return slices.Contains(h.LotIDs, lot.ID)
	})
	return nil
}

// DeleteSale removes a sale record, which reopens the corresponding active
// quantity on its lot. If the lot itself was deleted meanwhile, nothing is
// restored: the two deletions are deliberately asymmetric and one-way.
func (l *Ledger) DeleteSale(id string) error {
	i := slices.IndexFunc(l.sales, func(s Sale) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("no sale %s", id)
	}
	l.sales = slices.Delete(l.sales, i, i+1)
	return nil
}

// DeleteDividend removes a dividend record.
func (l *Ledger) DeleteDividend(id string) error {
	i := slices.IndexFunc(l.dividends, func(d Dividend) bool { return d.ID == id })
	if i < 0 {
		return fmt.Errorf("no dividend %s", id)
	}
	l.dividends = slices.Delete(l.dividends, i, i+1)
	return nil
}
