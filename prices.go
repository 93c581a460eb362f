package shisan

import (
	"iter"
	"sort"
)

// closestWindow is how far, in days, a historical price or rate lookup may
// stray from the requested day. Markets close on weekends and holidays and
// leave holes in the series.
const closestWindow = 3

// PriceDB holds the persisted price and exchange-rate history used to
// rebuild snapshots. Keys are holding keys (symbol or name, whatever the
// update job fetched under).
type PriceDB struct {
	prices map[string]*History[Money]
	rates  History[Quantity] // JPY per USD
}

func NewPriceDB() *PriceDB {
	return &PriceDB{prices: make(map[string]*History[Money])}
}

// AddPrice records a price for the given key on the given day.
func (db *PriceDB) AddPrice(key string, on Date, price Money) {
	h, ok := db.prices[key]
	if !ok {
		h = &History[Money]{}
		db.prices[key] = h
	}
	h.Append(on, price)
}

// Price returns the stored price nearest to the given day, within the
// closest-lookup window.
func (db *PriceDB) Price(key string, on Date) (Money, bool) {
	h, ok := db.prices[key]
	if !ok {
		return Money{}, false
	}
	return h.Closest(on, closestWindow)
}

// LatestPrice returns the most recent stored price for the key.
func (db *PriceDB) LatestPrice(key string) (Date, Money, bool) {
	h, ok := db.prices[key]
	if !ok {
		return Date{}, Money{}, false
	}
	return h.Latest()
}

// AddRate records the USD exchange rate of the given day.
func (db *PriceDB) AddRate(on Date, rate Quantity) {
	db.rates.Append(on, rate)
}

// RateOn returns the stored USD rate nearest to the given day within the
// closest-lookup window.
func (db *PriceDB) RateOn(on Date) (Quantity, bool) {
	return db.rates.Closest(on, closestWindow)
}

// Keys returns all keys with stored prices, sorted.
func (db *PriceDB) Keys() []string {
	keys := make([]string, 0, len(db.prices))
	for k := range db.prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Prices iterates the stored series of one key in chronological order.
func (db *PriceDB) Prices(key string) iter.Seq2[Date, Money] {
	h, ok := db.prices[key]
	if !ok {
		return func(yield func(Date, Money) bool) {}
	}
	return h.Values()
}

// Rates iterates the stored exchange rates in chronological order.
func (db *PriceDB) Rates() iter.Seq2[Date, Quantity] {
	return db.rates.Values()
}
