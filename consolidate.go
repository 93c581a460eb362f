package shisan

import "sort"

// PurchaseRecord is one constituent lot of a consolidated holding, as shown
// in the per-holding purchase history.
type PurchaseRecord struct {
	LotID    string   `json:"lotId"`
	Date     Date     `json:"date"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
}

// Holding is the consolidated view of every lot sharing one instrument key.
// It is recomputed from the ledger on every read and never persisted.
type Holding struct {
	Key      string
	Name     string
	Type     AssetType
	Symbol   string
	ISIN     string
	FundCode string
	LotIDs   []string

	// Quantity and PurchasePrice form the weighted-average cost basis over
	// all constituent lots, sold or not.
	Quantity      Quantity
	PurchasePrice Money

	SoldQuantity   Quantity
	ActiveQuantity Quantity

	PurchaseDate    Date // earliest constituent purchase
	PurchaseRecords []PurchaseRecord
	Tags            []string
	CurrentPrice    Money // latest fetched price among constituents, zero when never fetched
}

// Currency returns the native currency of the holding.
func (h Holding) Currency() string { return h.PurchasePrice.Currency() }

// Price returns the price used for valuation: the fetched market price, or
// the weighted-average purchase price when no market price is known.
func (h Holding) Price() Money {
	if h.CurrentPrice.IsZero() {
		return h.PurchasePrice
	}
	return h.CurrentPrice
}

// CostBasis returns the invested cost of the still-held quantity, in the
// holding's native currency.
func (h Holding) CostBasis() Money {
	return h.PurchasePrice.Mul(h.ActiveQuantity.OrZero())
}

// Consolidate groups the ledger's lots into one Holding per instrument key
// and nets out sales. Holdings that are fully divested (active quantity not
// positive) are dropped: they no longer exist as positions.
//
// The weighted-average price is computed as total cost divided by total
// quantity, once per group, so the result does not depend on lot order.
func (l *Ledger) Consolidate(policy KeyPolicy) []Holding {
	type group struct {
		holding   Holding
		totalCost Money
	}

	var order []string
	groups := make(map[string]*group)

	for _, lot := range l.lots {
		key := lot.Key(policy)
		g, ok := groups[key]
		if !ok {
			g = &group{holding: Holding{
				Key:          key,
				Name:         lot.Name,
				Type:         lot.Type,
				PurchaseDate: lot.PurchaseDate,
			}}
			groups[key] = g
			order = append(order, key)
		}
		h := &g.holding

		h.LotIDs = append(h.LotIDs, lot.ID)
		h.Quantity = h.Quantity.Add(lot.Quantity)
		cost := lot.PurchasePrice.Mul(lot.Quantity)
		// Lots sharing a key may disagree on currency (two instruments under
		// one display name). The first lot's currency wins; the amount of a
		// mismatched lot is accounted as-is, which misstates the average but
		// keeps the holding computable.
		if have := g.totalCost.Currency(); have != "" && cost.Currency() != "" && cost.Currency() != have {
			logf("consolidating %q: lot %s is priced in %s, accounting it as %s", key, lot.ID, cost.Currency(), have)
			cost = M(cost.value, have)
		}
		g.totalCost = g.totalCost.Add(cost)
		if lot.PurchaseDate.Before(h.PurchaseDate) {
			h.PurchaseDate = lot.PurchaseDate
		}
		h.Tags = normalizeTags(append(h.Tags, lot.Tags...))
		// identifiers and fetched price: last write wins, later lots override
		if lot.Symbol != "" {
			h.Symbol = lot.Symbol
		}
		if lot.ISIN != "" {
			h.ISIN = lot.ISIN
		}
		if lot.FundCode != "" {
			h.FundCode = lot.FundCode
		}
		if lot.HasCurrentPrice() {
			h.CurrentPrice = lot.CurrentPrice
		}
		h.PurchaseRecords = append(h.PurchaseRecords, PurchaseRecord{
			LotID:    lot.ID,
			Date:     lot.PurchaseDate,
			Quantity: lot.Quantity,
			Price:    lot.PurchasePrice,
		})
	}

	holdings := make([]Holding, 0, len(order))
	for _, key := range order {
		g := groups[key]
		h := g.holding

		h.PurchasePrice = g.totalCost.Div(h.Quantity)
		h.SoldQuantity = l.SoldQuantity(h.LotIDs...)
		h.ActiveQuantity = h.Quantity.Sub(h.SoldQuantity)
		sort.SliceStable(h.PurchaseRecords, func(i, j int) bool {
			return h.PurchaseRecords[i].Date.Before(h.PurchaseRecords[j].Date)
		})

		if !h.ActiveQuantity.IsPositive() {
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings
}

// HoldingByKey consolidates the ledger and returns the holding with the
// given key.
func (l *Ledger) HoldingByKey(key string, policy KeyPolicy) (Holding, bool) {
	for _, h := range l.Consolidate(policy) {
		if h.Key == key {
			return h, true
		}
	}
	return Holding{}, false
}
