package shisan

import (
	"testing"
	"time"
)

func TestActiveQuantityNetsSalesByLot(t *testing.T) {
	l, a, b := newTestLedger(t)
	if _, err := l.RecordSale(a.ID, Q(4), jpy(140), NewDate(2024, time.April, 1)); err != nil {
		t.Fatal(err)
	}

	// the sale nets only against its originating lot
	if got, want := l.ActiveQuantity(a), Q(6); !got.Equal(want) {
		t.Errorf("ActiveQuantity(a) = %s, want %s", got, want)
	}
	if got, want := l.ActiveQuantity(b), Q(5); !got.Equal(want) {
		t.Errorf("ActiveQuantity(b) = %s, want %s", got, want)
	}
	if got, want := l.SoldQuantity(a.ID, b.ID), Q(4); !got.Equal(want) {
		t.Errorf("SoldQuantity(a, b) = %s, want %s", got, want)
	}
}

func TestActiveQuantityAsOf(t *testing.T) {
	l, a, _ := newTestLedger(t)
	if _, err := l.RecordSale(a.ID, Q(4), jpy(140), NewDate(2024, time.April, 1)); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		day  Date
		want Quantity
	}{
		{"before the sale", NewDate(2024, time.March, 31), Q(10)},
		{"on the sale day", NewDate(2024, time.April, 1), Q(6)},
		{"after the sale", NewDate(2024, time.June, 1), Q(6)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.ActiveQuantityAsOf(a, tc.day); !got.Equal(tc.want) {
				t.Errorf("ActiveQuantityAsOf(%s) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}

func TestEarliestPurchase(t *testing.T) {
	l := NewLedger()
	if _, ok := l.EarliestPurchase(); ok {
		t.Error("EarliestPurchase() on an empty ledger reported a date")
	}

	l, _, _ = newTestLedger(t)
	got, ok := l.EarliestPurchase()
	if !ok {
		t.Fatal("EarliestPurchase() found nothing")
	}
	if want := NewDate(2024, time.January, 1); got != want {
		t.Errorf("EarliestPurchase() = %s, want %s", got, want)
	}
}

func TestCumulativeDividends(t *testing.T) {
	l, a, _ := newTestLedger(t)
	for _, d := range []struct {
		on     Date
		amount float64
	}{
		{NewDate(2024, time.February, 1), 500},
		{NewDate(2024, time.May, 1), 300},
	} {
		if _, err := l.RecordDividend(a.ID, jpy(d.amount), d.on); err != nil {
			t.Fatal(err)
		}
	}

	testCases := []struct {
		name string
		day  Date
		want Money
	}{
		{"before any dividend", NewDate(2024, time.January, 15), jpy(0)},
		{"after the first", NewDate(2024, time.March, 1), jpy(500)},
		{"after both", NewDate(2024, time.December, 31), jpy(800)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.CumulativeDividends(tc.day); !got.Equal(tc.want) {
				t.Errorf("CumulativeDividends(%s) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}
