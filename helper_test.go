package shisan

import (
	"testing"
	"time"
)

func jpy(v float64) Money { return M(v, "JPY") }
func usd(v float64) Money { return M(v, "USD") }

// newTestLedger builds the standard consolidation fixture: two lots of the
// same instrument bought at different prices.
//
//	10 units at 100 on 2024-01-01
//	 5 units at 130 on 2024-03-01
func newTestLedger(t *testing.T) (*Ledger, Lot, Lot) {
	t.Helper()
	l := NewLedger()
	a := NewLot("Toyota", Stock, Q(10), jpy(100), NewDate(2024, time.January, 1))
	b := NewLot("Toyota", Stock, Q(5), jpy(130), NewDate(2024, time.March, 1))
	for _, lot := range []Lot{a, b} {
		if err := l.AddLot(lot); err != nil {
			t.Fatalf("AddLot(%s) failed: %v", lot.Name, err)
		}
	}
	return l, a, b
}

// singleHolding consolidates the ledger and asserts there is exactly one
// holding.
func singleHolding(t *testing.T, l *Ledger, policy KeyPolicy) Holding {
	t.Helper()
	holdings := l.Consolidate(policy)
	if len(holdings) != 1 {
		t.Fatalf("Consolidate() returned %d holdings, want 1", len(holdings))
	}
	return holdings[0]
}

// captureLog redirects the degraded-computation log during one test.
func captureLog(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	old := logf
	logf = func(format string, args ...any) { lines = append(lines, format) }
	t.Cleanup(func() { logf = old })
	return &lines
}
