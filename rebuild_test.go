package shisan

import (
	"strings"
	"testing"
	"time"
)

func TestSnapshotOf(t *testing.T) {
	l, a, _ := newTestLedger(t)
	if _, err := l.RecordSale(a.ID, Q(4), jpy(140), NewDate(2024, time.April, 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCurrentPrice("Toyota", KeyByName, jpy(150)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordDividend(a.ID, jpy(500), NewDate(2024, time.May, 1)); err != nil {
		t.Fatal(err)
	}

	on := NewDate(2024, time.June, 3)
	snap := SnapshotOf(l, KeyByName, Rates{"USD": Q(150)}, on)

	if snap.Date != on {
		t.Errorf("Date = %s, want %s", snap.Date, on)
	}
	// 11 active units at 150
	if want := jpy(1650); !snap.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", snap.TotalValue, want)
	}
	if want := usd(11); !snap.TotalValueUSD.Equal(want) {
		t.Errorf("TotalValueUSD = %s, want %s", snap.TotalValueUSD, want)
	}
	entry, ok := snap.Entry("Toyota")
	if !ok {
		t.Fatal("no breakdown entry for Toyota")
	}
	if !entry.Quantity.Equal(Q(11)) || !entry.Value.Equal(jpy(1650)) {
		t.Errorf("entry = %s units worth %s, want 11 worth 1650", entry.Quantity, entry.Value)
	}
	if want := jpy(500); !snap.CumulativeDividends.Equal(want) {
		t.Errorf("CumulativeDividends = %s, want %s", snap.CumulativeDividends, want)
	}
}

func TestRebuildSnapshots(t *testing.T) {
	lines := captureLog(t)

	l := NewLedger()
	lot := NewLot("Toyota", Stock, Q(10), jpy(100), NewDate(2024, time.June, 3))
	if err := l.AddLot(lot); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordSale(lot.ID, Q(4), jpy(105), NewDate(2024, time.June, 5)); err != nil {
		t.Fatal(err)
	}

	db := NewPriceDB()
	db.AddPrice("Toyota", NewDate(2024, time.June, 3), jpy(100))
	db.AddPrice("Toyota", NewDate(2024, time.June, 6), jpy(110))
	db.AddRate(NewDate(2024, time.June, 3), Q(150))

	snaps := RebuildSnapshots(l, db, KeyByName, NewDate(2024, time.June, 7))

	// one row per day from the first purchase
	if len(snaps) != 5 {
		t.Fatalf("rebuilt %d snapshots, want 5 (June 3 to 7)", len(snaps))
	}
	if want := jpy(1000); !snaps[0].TotalValue.Equal(want) {
		t.Errorf("June 3 TotalValue = %s, want %s", snaps[0].TotalValue, want)
	}
	// from the sale day only 6 units remain, valued at the nearest stored
	// price (June 6 close)
	if want := jpy(660); !snaps[2].TotalValue.Equal(want) {
		t.Errorf("June 5 TotalValue = %s, want %s", snaps[2].TotalValue, want)
	}
	entry, ok := snaps[2].Entry("Toyota")
	if !ok || !entry.Quantity.Equal(Q(6)) {
		t.Errorf("June 5 quantity = %s, %v, want 6", entry.Quantity, ok)
	}
	// the stored rate covers nearby days within the lookup window
	if !snaps[3].ExchangeRate.Equal(Q(150)) {
		t.Errorf("June 6 ExchangeRate = %s, want 150", snaps[3].ExchangeRate)
	}
	// past the window the rate degrades to parity, and that is logged
	if !snaps[4].ExchangeRate.Equal(Q(1)) {
		t.Errorf("June 7 ExchangeRate = %s, want the parity fallback", snaps[4].ExchangeRate)
	}
	if len(*lines) == 0 {
		t.Error("the parity fallback was not logged")
	}
}

func TestRebuildLogsPurchasePriceFallback(t *testing.T) {
	lines := captureLog(t)

	l := NewLedger()
	lot := NewLot("Toyota", Stock, Q(10), jpy(100), NewDate(2024, time.June, 3))
	if err := l.AddLot(lot); err != nil {
		t.Fatal(err)
	}
	db := NewPriceDB()
	db.AddPrice("Toyota", NewDate(2024, time.June, 3), jpy(120))
	db.AddRate(NewDate(2024, time.June, 3), Q(150))

	snaps := RebuildSnapshots(l, db, KeyByName, NewDate(2024, time.June, 10))
	if len(snaps) != 8 {
		t.Fatalf("rebuilt %d snapshots, want 8 (June 3 to 10)", len(snaps))
	}
	// June 10 is past the price lookup window: purchase price 100, not the
	// stored 120
	if want := jpy(1000); !snaps[7].TotalValue.Equal(want) {
		t.Errorf("June 10 TotalValue = %s, want %s", snaps[7].TotalValue, want)
	}
	logged := false
	for _, line := range *lines {
		if strings.Contains(line, "purchase price") {
			logged = true
		}
	}
	if !logged {
		t.Error("the purchase price fallback was not logged")
	}
}

func TestRebuildSnapshotsEmptyLedger(t *testing.T) {
	if snaps := RebuildSnapshots(NewLedger(), NewPriceDB(), KeyByName, Today()); len(snaps) != 0 {
		t.Errorf("rebuilt %d snapshots from an empty ledger, want none", len(snaps))
	}
}
