package shisan

import (
	"testing"
	"time"
)

func datedSnap(d int, total float64) Snapshot {
	return Snapshot{Date: NewDate(2024, time.June, d), TotalValue: jpy(total)}
}

func TestSnapshotsSelection(t *testing.T) {
	snaps := Snapshots{datedSnap(1, 100), datedSnap(5, 105), datedSnap(9, 110)}

	if latest, ok := snaps.Latest(); !ok || latest.Date != NewDate(2024, time.June, 9) {
		t.Errorf("Latest() = %s, %v", latest.Date, ok)
	}
	if prev, ok := snaps.Previous(); !ok || prev.Date != NewDate(2024, time.June, 5) {
		t.Errorf("Previous() = %s, %v", prev.Date, ok)
	}

	// a single-element series is its own predecessor
	one := Snapshots{datedSnap(1, 100)}
	if prev, ok := one.Previous(); !ok || prev.Date != NewDate(2024, time.June, 1) {
		t.Errorf("Previous() of one snapshot = %s, %v", prev.Date, ok)
	}

	if _, ok := Snapshots(nil).Latest(); ok {
		t.Error("Latest() of an empty series reported a snapshot")
	}
}

func TestSnapshotsEarliestAtOrAfter(t *testing.T) {
	snaps := Snapshots{datedSnap(5, 100), datedSnap(9, 110)}

	if s, ok := snaps.EarliestAtOrAfter(NewDate(2024, time.June, 6)); !ok || s.Date != NewDate(2024, time.June, 9) {
		t.Errorf("EarliestAtOrAfter(6th) = %s, %v, want the 9th", s.Date, ok)
	}
	// asking before the series starts falls back to the oldest: the window
	// shortens instead of failing
	if s, ok := snaps.EarliestAtOrAfter(NewDate(2024, time.June, 1)); !ok || s.Date != NewDate(2024, time.June, 5) {
		t.Errorf("EarliestAtOrAfter(1st) = %s, %v, want the 5th", s.Date, ok)
	}
	if s, ok := snaps.EarliestAtOrAfter(NewDate(2024, time.June, 20)); !ok || s.Date != NewDate(2024, time.June, 5) {
		t.Errorf("EarliestAtOrAfter(20th) = %s, %v, want the oldest fallback", s.Date, ok)
	}
}

func TestSnapshotsUpsert(t *testing.T) {
	var snaps Snapshots
	snaps = snaps.Upsert(datedSnap(5, 100))
	snaps = snaps.Upsert(datedSnap(1, 90))
	// same date replaces: the update job may run twice a day
	snaps = snaps.Upsert(datedSnap(5, 105))

	if len(snaps) != 2 {
		t.Fatalf("len = %d, want 2", len(snaps))
	}
	if snaps[0].Date != NewDate(2024, time.June, 1) {
		t.Errorf("snaps[0].Date = %s, series not sorted", snaps[0].Date)
	}
	if want := jpy(105); !snaps[1].TotalValue.Equal(want) {
		t.Errorf("snaps[1].TotalValue = %s, want the replacing %s", snaps[1].TotalValue, want)
	}
}

func TestBreakdownUnitPrice(t *testing.T) {
	e := BreakdownEntry{Value: jpy(1050), Quantity: Q(10)}
	unit, ok := e.UnitPrice()
	if !ok {
		t.Fatal("UnitPrice() on a held entry failed")
	}
	if want := jpy(105); !unit.Equal(want) {
		t.Errorf("UnitPrice() = %s, want %s", unit, want)
	}
	if _, ok := (BreakdownEntry{Value: jpy(100)}).UnitPrice(); ok {
		t.Error("UnitPrice() on a zero-quantity entry reported a price")
	}
}
