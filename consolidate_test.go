package shisan

import (
	"strings"
	"testing"
	"time"
)

func TestConsolidateWeightedAverage(t *testing.T) {
	l, _, _ := newTestLedger(t)
	h := singleHolding(t, l, KeyByName)

	// 10 at 100 plus 5 at 130: total cost 1650 over 15 units is 110.
	if want := Q(15); !h.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", h.Quantity, want)
	}
	if want := jpy(110); !h.PurchasePrice.Equal(want) {
		t.Errorf("PurchasePrice = %s, want %s", h.PurchasePrice, want)
	}
	if want := NewDate(2024, time.January, 1); h.PurchaseDate != want {
		t.Errorf("PurchaseDate = %s, want %s", h.PurchaseDate, want)
	}
	if len(h.PurchaseRecords) != 2 {
		t.Fatalf("got %d purchase records, want 2", len(h.PurchaseRecords))
	}
	if h.PurchaseRecords[0].Date.After(h.PurchaseRecords[1].Date) {
		t.Errorf("purchase records are not in chronological order")
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	l, _, _ := newTestLedger(t)

	first := singleHolding(t, l, KeyByName)
	second := singleHolding(t, l, KeyByName)

	if !first.Quantity.Equal(second.Quantity) {
		t.Errorf("Quantity changed between runs: %s then %s", first.Quantity, second.Quantity)
	}
	if !first.PurchasePrice.Equal(second.PurchasePrice) {
		t.Errorf("PurchasePrice changed between runs: %s then %s", first.PurchasePrice, second.PurchasePrice)
	}
}

func TestConsolidatePriceWithinLotBounds(t *testing.T) {
	l := NewLedger()
	lots := []Lot{
		NewLot("Fund A", Fund, Q(3), jpy(10000), NewDate(2023, time.May, 2)),
		NewLot("Fund A", Fund, Q(7), jpy(12500), NewDate(2023, time.August, 10)),
		NewLot("Fund A", Fund, Q(2), jpy(11000), NewDate(2024, time.February, 29)),
	}
	for _, lot := range lots {
		if err := l.AddLot(lot); err != nil {
			t.Fatal(err)
		}
	}
	h := singleHolding(t, l, KeyByName)

	// the weighted average must lie between the cheapest and the most
	// expensive lot
	if h.PurchasePrice.LessThan(jpy(10000)) || jpy(12500).LessThan(h.PurchasePrice) {
		t.Errorf("PurchasePrice = %s, want within [10000, 12500]", h.PurchasePrice)
	}
}

func TestConsolidateNetsOutSales(t *testing.T) {
	l, a, _ := newTestLedger(t)
	if _, err := l.RecordSale(a.ID, Q(4), jpy(140), NewDate(2024, time.April, 1)); err != nil {
		t.Fatal(err)
	}
	h := singleHolding(t, l, KeyByName)

	if want := Q(4); !h.SoldQuantity.Equal(want) {
		t.Errorf("SoldQuantity = %s, want %s", h.SoldQuantity, want)
	}
	if want := Q(11); !h.ActiveQuantity.Equal(want) {
		t.Errorf("ActiveQuantity = %s, want %s", h.ActiveQuantity, want)
	}
	// the cost basis keeps averaging over all lots, sold or not
	if want := jpy(110); !h.PurchasePrice.Equal(want) {
		t.Errorf("PurchasePrice = %s, want %s", h.PurchasePrice, want)
	}
}

func TestConsolidateDropsDivestedHoldings(t *testing.T) {
	l, a, b := newTestLedger(t)
	for _, lot := range []Lot{a, b} {
		if _, err := l.RecordSale(lot.ID, Q(0), jpy(140), NewDate(2024, time.April, 1)); err != nil {
			t.Fatal(err)
		}
	}
	if holdings := l.Consolidate(KeyByName); len(holdings) != 0 {
		t.Errorf("got %d holdings after full divestment, want 0", len(holdings))
	}
}

func TestConsolidateKeyPolicies(t *testing.T) {
	l := NewLedger()
	// same name, different symbols
	a := NewLot("Index Fund", ETF, Q(1), usd(100), NewDate(2024, time.January, 5))
	a.Symbol = "VOO"
	b := NewLot("Index Fund", ETF, Q(1), usd(100), NewDate(2024, time.January, 6))
	b.Symbol = "VTI"
	for _, lot := range []Lot{a, b} {
		if err := l.AddLot(lot); err != nil {
			t.Fatal(err)
		}
	}

	if got := len(l.Consolidate(KeyByName)); got != 1 {
		t.Errorf("KeyByName: got %d holdings, want 1", got)
	}
	if got := len(l.Consolidate(KeyByInstrument)); got != 2 {
		t.Errorf("KeyByInstrument: got %d holdings, want 2", got)
	}
}

func TestConsolidateKeepsFirstSeenOrder(t *testing.T) {
	l := NewLedger()
	names := []string{"Alpha", "Beta", "Gamma"}
	for i, name := range names {
		if err := l.AddLot(NewLot(name, Stock, Q(1), jpy(100), NewDate(2024, time.January, i+1))); err != nil {
			t.Fatal(err)
		}
	}
	holdings := l.Consolidate(KeyByName)
	if len(holdings) != 3 {
		t.Fatalf("got %d holdings, want 3", len(holdings))
	}
	for i, h := range holdings {
		if h.Key != names[i] {
			t.Errorf("holdings[%d].Key = %q, want %q", i, h.Key, names[i])
		}
	}
}

func TestHoldingPriceFallsBackToPurchase(t *testing.T) {
	l, _, _ := newTestLedger(t)
	h := singleHolding(t, l, KeyByName)

	if want := jpy(110); !h.Price().Equal(want) {
		t.Errorf("Price() without market price = %s, want %s", h.Price(), want)
	}
	if err := l.SetCurrentPrice(h.Key, KeyByName, jpy(150)); err != nil {
		t.Fatal(err)
	}
	h = singleHolding(t, l, KeyByName)
	if want := jpy(150); !h.Price().Equal(want) {
		t.Errorf("Price() with market price = %s, want %s", h.Price(), want)
	}
}

func TestConsolidateMixedCurrencyLots(t *testing.T) {
	lines := captureLog(t)
	l := NewLedger()
	// the same display name held once in JPY and once in USD
	if err := l.AddLot(NewLot("Gold", Other, Q(1), jpy(1000), NewDate(2024, time.January, 1))); err != nil {
		t.Fatal(err)
	}
	if err := l.AddLot(NewLot("Gold", Other, Q(1), usd(10), NewDate(2024, time.February, 1))); err != nil {
		t.Fatal(err)
	}

	h := singleHolding(t, l, KeyByName)

	// the first lot's currency wins and the mismatch is reported
	if want := "JPY"; h.Currency() != want {
		t.Errorf("Currency() = %s, want %s", h.Currency(), want)
	}
	// total cost 1000 + 10 over 2 units, the USD amount taken as-is
	if want := jpy(505); !h.PurchasePrice.Equal(want) {
		t.Errorf("PurchasePrice = %s, want %s", h.PurchasePrice, want)
	}
	logged := false
	for _, line := range *lines {
		if strings.Contains(line, "priced in") {
			logged = true
		}
	}
	if !logged {
		t.Error("currency mismatch was not logged")
	}
}
